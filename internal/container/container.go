// Package container builds the process-wide infrastructure clients once and
// hands them out by reference.
package container

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/config"
	"github.com/oksasatya/go-portfolio-cms/internal/application"
	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/content"
	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
	pginfra "github.com/oksasatya/go-portfolio-cms/internal/infrastructure/postgres"
	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/sqlite"
	"github.com/oksasatya/go-portfolio-cms/pkg/helpers"
)

const pingTimeout = 3 * time.Second

// Container owns every client it builds; Close releases them.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Store docstore.Store
	Repos *content.Repositories

	Redis     *redis.Client            // nil when unreachable
	GCS       *storage.Client          // nil when GCS_BUCKET is unset
	ES        *elasticsearch.Client    // nil when ELASTICSEARCH_ADDRS is unset
	PostIndex *application.ESPostIndex // nil when ES is unavailable
	Rabbit    *helpers.RabbitPublisher // nil when RABBITMQ_URL is unset
	JWT       *helpers.JWTManager
}

// New opens the content store, which is mandatory, and the optional
// integrations, which are skipped with a warning when unconfigured or
// unreachable.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	c.Store = store
	c.Repos = content.NewRepositories(store, logger)

	c.Redis = c.openRedis(ctx)
	c.GCS = c.openGCS(ctx)
	c.ES, c.PostIndex = c.openSearch(ctx)
	c.Rabbit = c.openRabbit()

	c.JWT = helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	c.JWT.Issuer = cfg.AppName
	return c, nil
}

// OpenStore opens the document store selected by STORE_DRIVER. The postgres
// driver runs pending migrations first.
func OpenStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (docstore.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: cfg.DBMaxConnLife,
			ApplicationName: cfg.AppName,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.WithField("driver", cfg.StoreDriver).Info("content store ready")
		return pginfra.NewDocumentStore(pool), nil
	case config.StoreDriverSQLite:
		st, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		logger.WithFields(logrus.Fields{"driver": cfg.StoreDriver, "path": cfg.SQLitePath}).Info("content store ready")
		return st, nil
	case config.StoreDriverMemory:
		logger.WithField("driver", cfg.StoreDriver).Warn("content store is in memory; data is lost on exit")
		return docstore.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (c *Container) openRedis(ctx context.Context) *redis.Client {
	rdb := helpers.NewRedisClient(helpers.RedisOptions{
		Addr:       c.Config.RedisAddr,
		Password:   c.Config.RedisPassword,
		DB:         c.Config.RedisDB,
		ClientName: c.Config.AppName,
	})
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		c.Logger.WithError(err).WithField("addr", c.Config.RedisAddr).Warn("redis unavailable; sessions kept in memory and rate limits disabled")
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func (c *Container) openGCS(ctx context.Context) *storage.Client {
	if c.Config.GCSBucket == "" {
		c.Logger.Warn("GCS_BUCKET not set; image uploads disabled")
		return nil
	}
	client, err := helpers.NewGCSClient(ctx, c.Config.GCSCredentialsJSONPath)
	if err != nil {
		c.Logger.WithError(err).Warn("gcs client init failed; image uploads disabled")
		return nil
	}
	return client
}

func (c *Container) openSearch(ctx context.Context) (*elasticsearch.Client, *application.ESPostIndex) {
	addrs := c.Config.ESAddrs()
	if len(addrs) == 0 {
		c.Logger.Info("ELASTICSEARCH_ADDRS not set; blog search scans the store")
		return nil, nil
	}
	es, err := helpers.NewESClient(addrs, c.Config.ElasticsearchUser, c.Config.ElasticsearchPass)
	if err != nil {
		c.Logger.WithError(err).Warn("elasticsearch client init failed; blog search scans the store")
		return nil, nil
	}
	idx, err := application.NewESPostIndex(ctx, es, c.Config.ESPostsIndex)
	if err != nil {
		c.Logger.WithError(err).WithField("index", c.Config.ESPostsIndex).Warn("elasticsearch index unavailable; blog search scans the store")
		return es, nil
	}
	return es, idx
}

func (c *Container) openRabbit() *helpers.RabbitPublisher {
	if c.Config.RabbitMQURL == "" {
		c.Logger.Info("RABBITMQ_URL not set; contact notifications disabled")
		return nil
	}
	pub, err := helpers.NewRabbitPublisher(c.Config.RabbitMQURL, c.Config.RabbitMQEmailQueue, c.Config.AppName)
	if err != nil {
		c.Logger.WithError(err).Warn("rabbitmq unavailable; contact notifications disabled")
		return nil
	}
	return pub
}

// ContentRepos exposes the repositories through their interfaces.
func (c *Container) ContentRepos() application.ContentRepos {
	return application.ContentRepos{
		Profile:     c.Repos.Profile,
		Skills:      c.Repos.Skills,
		Experiences: c.Repos.Experiences,
		Projects:    c.Repos.Projects,
		BlogPosts:   c.Repos.BlogPosts,
		Contact:     c.Repos.Contact,
	}
}

// Sessions returns the Redis session store, or a process-local one when
// Redis is unavailable.
func (c *Container) Sessions() application.SessionStore {
	if c.Redis != nil {
		return application.NewRedisSessions(c.Redis)
	}
	return application.NewMemorySessions()
}

// Publisher returns the email job publisher, or nil when there is none.
func (c *Container) Publisher() application.JobPublisher {
	if c.Rabbit == nil {
		return nil
	}
	return c.Rabbit
}

// PostSearch returns the blog search index, or nil when there is none.
func (c *Container) PostSearch() application.PostIndex {
	if c.PostIndex == nil {
		return nil
	}
	return c.PostIndex
}

// ImageStorage returns the upload target, or nil when uploads are disabled.
func (c *Container) ImageStorage() application.ObjectStorage {
	if c.GCS == nil {
		return nil
	}
	return &application.GCSStorage{Client: c.GCS, Bucket: c.Config.GCSBucket}
}

func (c *Container) Close() {
	if c.Rabbit != nil {
		c.Rabbit.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			c.Logger.WithError(err).Warn("close content store")
		}
	}
}
