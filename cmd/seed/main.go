package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oksasatya/go-portfolio-cms/config"
	"github.com/oksasatya/go-portfolio-cms/internal/application"
	"github.com/oksasatya/go-portfolio-cms/internal/container"
	"github.com/oksasatya/go-portfolio-cms/pkg/helpers"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		only    []string
		timeout time.Duration
		list    bool
	)
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Fill empty portfolio collections with default content",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c, err := container.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			seeder := application.NewSeeder(c.ContentRepos(), logger)
			if list {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(seeder.StepNames(), "\n"))
				return nil
			}

			results, runErr := seeder.Run(ctx, only...)
			for _, r := range results {
				status := "ok"
				if r.Error != "" {
					status = "failed: " + r.Error
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-8s %s\n", r.Name, r.Duration.Round(time.Millisecond), status)
			}

			blog := application.NewBlogService(c.Repos.BlogPosts, c.PostSearch(), logger)
			if n, err := blog.Reindex(ctx); err != nil {
				logger.WithError(err).Warn("blog reindex failed")
			} else if n > 0 {
				logger.WithField("posts", n).Info("blog search index rebuilt")
			}
			return runErr
		},
	}
	root.Flags().StringSliceVar(&only, "only", nil, "run only these steps (comma-separated)")
	root.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall deadline")
	root.Flags().BoolVar(&list, "list", false, "print the step names and exit")

	root.AddCommand(newHashPasswordCmd())
	return root
}

// newHashPasswordCmd prints a bcrypt hash for ADMIN_PASSWORD_HASH.
func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash to use as ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := helpers.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
