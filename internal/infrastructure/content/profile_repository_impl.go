package content

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-cms/internal/infrastructure/docstore"
)

// ProfileRepository manages the singleton profile document at entity.ProfileID.
type ProfileRepository struct {
	base
}

func NewProfileRepository(store docstore.Store, logger *logrus.Logger) *ProfileRepository {
	return &ProfileRepository{base{store: store, logger: logger, collection: CollectionProfile}}
}

func (r *ProfileRepository) Get(ctx context.Context) (*entity.Profile, error) {
	doc, err := r.store.Get(ctx, r.collection, entity.ProfileID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("get", logrus.Fields{"id": entity.ProfileID}, err)
	}
	p := decodeProfile(doc)
	return &p, nil
}

// Update merge-writes the patch, creating the profile if it does not exist
// yet, and returns the stored result.
func (r *ProfileRepository) Update(ctx context.Context, patch entity.ProfilePatch) (*entity.Profile, error) {
	data := encodeProfilePatch(patch)
	if err := r.store.Set(ctx, r.collection, entity.ProfileID, data, true); err != nil {
		return nil, r.fail("update", logrus.Fields{"id": entity.ProfileID}, err)
	}
	p, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &entity.Profile{ID: entity.ProfileID}
	}
	return p, nil
}

func (r *ProfileRepository) InitializeIfEmpty(ctx context.Context) error {
	p, err := r.Get(ctx)
	if err != nil || p != nil {
		return err
	}
	if _, err := r.Update(ctx, entity.PatchFromProfile(DefaultProfile())); err != nil {
		return err
	}
	r.logger.WithField("collection", r.collection).Info("seeded default content")
	return nil
}

func encodeProfilePatch(p entity.ProfilePatch) docstore.Data {
	data := docstore.Data{}
	set(data, "name", p.Name)
	set(data, "title", p.Title)
	set(data, "location", p.Location)
	set(data, "phone", p.Phone)
	set(data, "email", p.Email)
	set(data, "linkedin", p.LinkedIn)
	set(data, "bio", p.Bio)
	set(data, "objective", p.Objective)
	set(data, "photoUrl", p.PhotoURL)
	return data
}

func decodeProfile(d docstore.Document) entity.Profile {
	return entity.Profile{
		ID:        d.ID,
		Name:      d.Data.String("name"),
		Title:     d.Data.String("title"),
		Location:  d.Data.String("location"),
		Phone:     d.Data.String("phone"),
		Email:     d.Data.String("email"),
		LinkedIn:  d.Data.String("linkedin"),
		Bio:       d.Data.String("bio"),
		Objective: d.Data.String("objective"),
		PhotoURL:  d.Data.String("photoUrl"),
	}
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
