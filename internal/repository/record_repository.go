package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"idcard/internal/attr"
	"idcard/internal/model"
	"idcard/internal/query"
)

// NameKeys are the data keys searched when looking records up by name.
var NameKeys = []string{"name", "Name", "Full Name"}

// RecordRepository defines record persistence operations.
type RecordRepository interface {
	Create(ctx context.Context, record *model.Record) error
	Update(ctx context.Context, record *model.Record) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Record, error)
	List(ctx context.Context, templateID *uuid.UUID, page query.Page) ([]model.Record, int64, error)
	SearchByName(ctx context.Context, term string) ([]model.Record, error)
	MergeData(ctx context.Context, id uuid.UUID, overlay attr.Bag) (*model.Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type recordRepository struct {
	db      *gorm.DB
	dialect query.Dialect
}

// NewRecordRepository creates a new record repository.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db, dialect: query.DialectOf(db)}
}

// Create creates a new record. The template reference is stored as given.
func (r *recordRepository) Create(ctx context.Context, record *model.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Update saves every field of an existing record.
func (r *recordRepository) Update(ctx context.Context, record *model.Record) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// FindByID finds a record by ID.
func (r *recordRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Record, error) {
	var record model.Record
	if err := r.db.WithContext(ctx).Where("id = ?", id.String()).Take(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns one page of records, newest first, optionally restricted to a
// template, plus the size of the whole filtered set.
func (r *recordRepository) List(ctx context.Context, templateID *uuid.UUID, page query.Page) ([]model.Record, int64, error) {
	var filter query.Filter
	if templateID != nil {
		filter.Eq("template_id", templateID.String())
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Record{}).
		Scopes(filter.Scope).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.Record
	if err := r.db.WithContext(ctx).
		Scopes(filter.Scope, page.Scope).
		Order(query.NewestFirst).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// SearchByName returns every record whose name-like data keys contain term,
// ignoring case, newest first.
func (r *recordRepository) SearchByName(ctx context.Context, term string) ([]model.Record, error) {
	exprs := make([]string, len(NameKeys))
	for i, key := range NameKeys {
		exprs[i] = query.JSONText(r.dialect, "data", key)
	}
	var filter query.Filter
	filter.AnyContains(exprs, term)

	var records []model.Record
	if err := r.db.WithContext(ctx).
		Scopes(filter.Scope).
		Order(query.NewestFirst).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// MergeData merges overlay into the stored data under a row lock.
func (r *recordRepository) MergeData(ctx context.Context, id uuid.UUID, overlay attr.Bag) (*model.Record, error) {
	var record model.Record
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id.String()).
			Take(&record).Error; err != nil {
			return err
		}
		record.Data = record.Data.Merge(overlay)
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a record.
func (r *recordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.Record{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
