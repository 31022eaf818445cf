package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"idcard/internal/model"
	"idcard/internal/query"
)

// upsertAttempts bounds the find-or-create retries after a name conflict.
const upsertAttempts = 3

// UpsertFunc applies caller fields to t inside the upsert transaction.
// created is true when t is a new template. Returning an error aborts the upsert.
type UpsertFunc func(t *model.Template, created bool) error

// TemplateRepository defines template persistence operations.
type TemplateRepository interface {
	Create(ctx context.Context, template *model.Template) error
	Update(ctx context.Context, template *model.Template) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Template, error)
	FindByName(ctx context.Context, name string) (*model.Template, error)
	FindFirstNameContaining(ctx context.Context, term string) (*model.Template, error)
	FindNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	ListSummaries(ctx context.Context) ([]model.TemplateSummary, error)
	UpsertByName(ctx context.Context, name string, apply UpsertFunc) (*model.Template, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new template repository.
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// Create creates a new template. A taken name surfaces as gorm.ErrDuplicatedKey.
func (r *templateRepository) Create(ctx context.Context, template *model.Template) error {
	return r.db.WithContext(ctx).Create(template).Error
}

// Update saves every field of an existing template.
func (r *templateRepository) Update(ctx context.Context, template *model.Template) error {
	return r.db.WithContext(ctx).Save(template).Error
}

// FindByID finds a template by ID.
func (r *templateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	var template model.Template
	if err := r.db.WithContext(ctx).Where("id = ?", id.String()).Take(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindByName finds a template by exact name.
func (r *templateRepository) FindByName(ctx context.Context, name string) (*model.Template, error) {
	var template model.Template
	if err := r.db.WithContext(ctx).Where("name = ?", name).Take(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindFirstNameContaining returns the first template, in store order, whose
// name contains term ignoring case.
func (r *templateRepository) FindFirstNameContaining(ctx context.Context, term string) (*model.Template, error) {
	var filter query.Filter
	filter.AnyContains([]string{"name"}, term)

	var template model.Template
	if err := r.db.WithContext(ctx).Scopes(filter.Scope).Take(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindNamesByIDs returns the names of the templates that exist among ids.
func (r *templateRepository) FindNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	var rows []struct {
		ID   uuid.UUID
		Name string
	}
	if err := r.db.WithContext(ctx).Model(&model.Template{}).
		Select("id", "name").
		Where("id IN ?", keys).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// ListSummaries lists every template without its layout, newest first.
func (r *templateRepository) ListSummaries(ctx context.Context) ([]model.TemplateSummary, error) {
	var summaries []model.TemplateSummary
	if err := r.db.WithContext(ctx).Model(&model.Template{}).
		Select("id", "name", "thumbnail", "created_at", "updated_at").
		Order(query.NewestFirst).
		Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// UpsertByName finds the template named name under a row lock and applies
// the caller fields to it, or creates it when missing. A concurrent insert of
// the same name loses on the unique index and the whole step is retried.
func (r *templateRepository) UpsertByName(ctx context.Context, name string, apply UpsertFunc) (*model.Template, error) {
	var (
		saved *model.Template
		err   error
	)
	for attempt := 0; attempt < upsertAttempts; attempt++ {
		saved, err = r.upsertOnce(ctx, name, apply)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return saved, err
		}
	}
	return nil, err
}

func (r *templateRepository) upsertOnce(ctx context.Context, name string, apply UpsertFunc) (*model.Template, error) {
	var saved model.Template
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).
			Take(&saved).Error
		switch {
		case err == nil:
			if err := apply(&saved, false); err != nil {
				return err
			}
			return tx.Save(&saved).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			saved = model.Template{Name: name}
			if err := apply(&saved, true); err != nil {
				return err
			}
			return tx.Create(&saved).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Delete removes a template. Records referencing it are left alone.
func (r *templateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.Template{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
