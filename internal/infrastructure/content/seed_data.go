package content

import "github.com/oksasatya/go-portfolio-cms/internal/domain/entity"

// Placeholder content inserted into empty collections so the public site
// never renders blank. Every function returns fresh values.

func DefaultProfile() entity.Profile {
	return entity.Profile{
		Name:      "Alex Morgan",
		Title:     "Backend Developer",
		Location:  "Remote",
		Email:     "hello@example.com",
		LinkedIn:  "www.linkedin.com/in/example/",
		Bio:       "Backend developer focused on Go services, relational and document databases, and APIs that stay boring in production. Edit this profile from the admin area.",
		Objective: "Backend Developer",
	}
}

func DefaultSkills() []entity.Skill {
	return []entity.Skill{
		{Name: "Go", Category: entity.SkillCategoryLanguage, Proficiency: 85, Icon: "go", Color: "#00add8", Featured: true, Order: intPtr(1)},
		{Name: "Gin", Category: entity.SkillCategoryFramework, Proficiency: 80, Icon: "gin", Color: "#008ecf", Featured: true, Order: intPtr(2)},
		{Name: "REST APIs", Category: entity.SkillCategoryFramework, Proficiency: 85, Icon: "api", Color: "#44cc11", Featured: true, Order: intPtr(3)},
		{Name: "PostgreSQL", Category: entity.SkillCategoryDatabase, Proficiency: 75, Icon: "postgresql", Color: "#336791", Featured: true, Order: intPtr(4)},
		{Name: "Git", Category: entity.SkillCategoryTool, Proficiency: 80, Icon: "git", Color: "#f05032", Featured: true, Order: intPtr(5)},
		{Name: "Unit testing", Category: entity.SkillCategoryTesting, Proficiency: 75, Icon: "test", Color: "#7d4cdb", Order: intPtr(6)},
	}
}

func DefaultExperiences() []entity.Experience {
	return []entity.Experience{
		{
			Title:       "Backend Developer",
			Company:     "Example Corp",
			Location:    "Remote",
			StartDate:   "2025-02-01",
			Current:     true,
			Description: "Building and maintaining internal services and public APIs.",
			Responsibilities: []string{
				"Design and maintain REST APIs consumed by web and mobile clients",
				"Model and tune PostgreSQL queries for reporting workloads",
				"Write unit and integration tests for every service change",
			},
			Technologies: []string{"Go", "PostgreSQL", "Redis", "Docker"},
			Order:        intPtr(1),
		},
		{
			Title:       "IT Assistant",
			Company:     "Sample Industries",
			Location:    "On site",
			StartDate:   "2020-11-01",
			EndDate:     strPtr("2021-12-31"),
			Description: "Supported development and maintenance of ERP modules.",
			Responsibilities: []string{
				"Maintained database scripts and data migrations",
				"Kept development and staging environments running on Docker",
			},
			Technologies: []string{"SQL", "Docker", "REST APIs"},
			Order:        intPtr(2),
		},
	}
}

func DefaultProjects() []entity.Project {
	return []entity.Project{
		{
			Title:        "Task Management API",
			Description:  "A RESTful task management API with token authentication, OpenAPI documentation and automated tests.",
			ImageURL:     "https://images.pexels.com/photos/546819/pexels-photo-546819.jpeg",
			Technologies: []string{"Go", "Gin", "PostgreSQL", "JWT"},
			GithubURL:    "https://github.com/example",
			Featured:     true,
			Order:        intPtr(1),
		},
		{
			Title:        "Library Management System",
			Description:  "Loans, returns, reservations and catalogue control for a university library, built in layers.",
			ImageURL:     "https://images.pexels.com/photos/1370295/pexels-photo-1370295.jpeg",
			Technologies: []string{"Go", "SQLite", "HTML"},
			GithubURL:    "https://github.com/example",
			Featured:     true,
			Order:        intPtr(2),
		},
		{
			Title:        "Event-driven Notifications",
			Description:  "Queue-backed notification pipeline with retries, templated emails and delivery metrics.",
			ImageURL:     "https://images.pexels.com/photos/1181271/pexels-photo-1181271.jpeg",
			Technologies: []string{"Go", "RabbitMQ", "Redis", "Docker"},
			GithubURL:    "https://github.com/example",
			Order:        intPtr(3),
		},
	}
}

func DefaultPosts() []entity.NewBlogPost {
	return []entity.NewBlogPost{
		{
			Title:       "Welcome to the New Blog!",
			Content:     "This is the content of my **first post**, written in *Markdown*.\n\n## Features\n\n- Post listing\n- Single post pages\n- Admin management\n\n```go\nfunc greet(message string) {\n\tfmt.Println(message)\n}\n```\n\nHope you enjoy it!",
			AuthorName:  "Alex Morgan",
			Tags:        []string{"introduction", "go"},
			IsPublished: true,
			Excerpt:     "A short introduction to the blog that ships with this portfolio.",
			ImageURL:    "https://images.pexels.com/photos/577585/pexels-photo-577585.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
		},
		{
			Title:       "Designing Small, Boring APIs",
			Content:     "Small APIs are easier to change than clever ones.\n\n### What helps\n\n1. **Explicit errors:** every failure has a name callers can test for.\n2. **Partial updates:** patch types make merge semantics visible.\n3. **Stable identifiers:** slugs and ids do not change under edits.\n\nThis portfolio's content layer follows the same rules.",
			AuthorName:  "Alex Morgan",
			Tags:        []string{"api", "design", "backend"},
			IsPublished: true,
			Excerpt:     "Notes on keeping HTTP APIs small, explicit and easy to evolve.",
			ImageURL:    "https://images.pexels.com/photos/169573/pexels-photo-169573.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
		},
	}
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
