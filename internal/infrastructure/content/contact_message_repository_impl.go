package content

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
)

// ContactMessageRepository is write-only: messages are created from the
// public form and never read back through the API.
type ContactMessageRepository struct {
	base
}

func NewContactMessageRepository(store docstore.Store, logger *logrus.Logger) *ContactMessageRepository {
	return &ContactMessageRepository{base{store: store, logger: logger, collection: CollectionContactMessages}}
}

// Create stamps the message with the store clock, marks it unreplied and
// stores it. ID and CreatedAt are written back into m.
func (r *ContactMessageRepository) Create(ctx context.Context, m *entity.ContactMessage) error {
	if m == nil {
		return invalid("nil contact message")
	}
	now, err := r.store.Now(ctx)
	if err != nil {
		return r.fail("create", logrus.Fields{"email": m.Email}, err)
	}
	m.CreatedAt = now
	m.Replied = false
	id, err := r.store.Add(ctx, r.collection, docstore.Data{
		"name":      m.Name,
		"email":     m.Email,
		"subject":   m.Subject,
		"message":   m.Message,
		"createdAt": m.CreatedAt,
		"replied":   m.Replied,
	})
	if err != nil {
		return r.fail("create", logrus.Fields{"email": m.Email}, err)
	}
	m.ID = id
	return nil
}

var _ repository.ContactMessageRepository = (*ContactMessageRepository)(nil)
