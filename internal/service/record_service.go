package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"idcard/internal/attr"
	"idcard/internal/errors"
	"idcard/internal/model"
	"idcard/internal/query"
	"idcard/internal/repository"
)

// RecordInput carries caller fields for record writes. A nil Data or nil
// pointer means the field was not supplied.
type RecordInput struct {
	Data         attr.Bag
	TemplateID   *string
	TemplateName *string
}

// RecordService handles record operations.
type RecordService interface {
	ListRecords(ctx context.Context, page, limit int, templateID string) (query.Result[model.Record], error)
	GetRecord(ctx context.Context, id string) (*model.Record, error)
	SearchRecordsByName(ctx context.Context, term string) ([]model.Record, error)
	CreateRecord(ctx context.Context, in RecordInput) (*model.Record, error)
	UpdateRecord(ctx context.Context, id string, in RecordInput) (*model.Record, error)
	MergeRecordData(ctx context.Context, id string, overlay attr.Bag) (*model.Record, error)
	DeleteRecord(ctx context.Context, id string) error
}

type recordService struct {
	repo     repository.RecordRepository
	resolver *Resolver
	log      *logrus.Logger
}

// NewRecordService creates a new record service.
func NewRecordService(repo repository.RecordRepository, resolver *Resolver, log *logrus.Logger) RecordService {
	return &recordService{repo: repo, resolver: resolver, log: log}
}

// ListRecords returns one page of records, newest first. An empty templateID
// lists every record; a malformed one matches nothing.
func (s *recordService) ListRecords(ctx context.Context, page, limit int, templateID string) (query.Result[model.Record], error) {
	p := query.NewPage(page, limit)

	var filter *uuid.UUID
	if templateID = strings.TrimSpace(templateID); templateID != "" {
		tid, err := uuid.Parse(templateID)
		if err != nil {
			return query.NewResult[model.Record](nil, 0, p), nil
		}
		filter = &tid
	}

	records, total, err := s.repo.List(ctx, filter, p)
	if err != nil {
		return query.Result[model.Record]{}, storeError(err, errors.ErrRecordNotFound)
	}
	s.resolver.Shallow(ctx, records)
	return query.NewResult(records, total, p), nil
}

// GetRecord returns a record with its full template, or a nil template when
// the reference dangles.
func (s *recordService) GetRecord(ctx context.Context, id string) (*model.Record, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.ErrRecordNotFound
	}
	record, err := s.repo.FindByID(ctx, rid)
	if err != nil {
		return nil, storeError(err, errors.ErrRecordNotFound)
	}
	if err := s.resolver.Full(ctx, record); err != nil {
		return nil, storeError(err, errors.ErrRecordNotFound)
	}
	return record, nil
}

// SearchRecordsByName returns every record whose name fields contain term.
func (s *recordService) SearchRecordsByName(ctx context.Context, term string) ([]model.Record, error) {
	if strings.TrimSpace(term) == "" {
		return nil, errors.Validation("search term is required")
	}
	records, err := s.repo.SearchByName(ctx, term)
	if err != nil {
		return nil, storeError(err, errors.ErrRecordNotFound)
	}
	if len(records) == 0 {
		return nil, errors.ErrNoRecordsMatched
	}
	s.resolver.Shallow(ctx, records)
	return records, nil
}

func (s *recordService) CreateRecord(ctx context.Context, in RecordInput) (*model.Record, error) {
	if in.Data == nil {
		return nil, errors.Validation("data is required")
	}
	if in.TemplateID == nil || strings.TrimSpace(*in.TemplateID) == "" {
		return nil, errors.Validation("templateId is required")
	}
	tid, err := parseTemplateID(*in.TemplateID)
	if err != nil {
		return nil, err
	}

	record := &model.Record{
		Data:         in.Data,
		TemplateID:   tid,
		TemplateName: trimmed(in.TemplateName),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, duplicateOr(err, "id", record.ID.String(), errors.ErrRecordNotFound)
	}
	s.log.WithFields(logrus.Fields{"record_id": record.ID, "template_id": tid}).Info("record created")

	s.resolveOne(ctx, record)
	return record, nil
}

// UpdateRecord replaces each supplied top-level field. Data is replaced whole.
func (s *recordService) UpdateRecord(ctx context.Context, id string, in RecordInput) (*model.Record, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.ErrRecordNotFound
	}
	var tid uuid.UUID
	if in.TemplateID != nil {
		if tid, err = parseTemplateID(*in.TemplateID); err != nil {
			return nil, err
		}
	}

	record, err := s.repo.FindByID(ctx, rid)
	if err != nil {
		return nil, storeError(err, errors.ErrRecordNotFound)
	}
	if in.Data != nil {
		record.Data = in.Data
	}
	if in.TemplateID != nil {
		record.TemplateID = tid
	}
	if in.TemplateName != nil {
		record.TemplateName = trimmed(in.TemplateName)
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, duplicateOr(err, "id", record.ID.String(), errors.ErrRecordNotFound)
	}
	s.log.WithField("record_id", record.ID).Info("record updated")

	s.resolveOne(ctx, record)
	return record, nil
}

// MergeRecordData merges overlay into the stored data. Nested maps merge and
// null values remove keys.
func (s *recordService) MergeRecordData(ctx context.Context, id string, overlay attr.Bag) (*model.Record, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.ErrRecordNotFound
	}
	if overlay == nil {
		return nil, errors.Validation("data is required")
	}

	record, err := s.repo.MergeData(ctx, rid, overlay)
	if err != nil {
		return nil, storeError(err, errors.ErrRecordNotFound)
	}
	s.log.WithFields(logrus.Fields{"record_id": record.ID, "keys": overlay.Keys()}).Info("record data merged")

	s.resolveOne(ctx, record)
	return record, nil
}

func (s *recordService) DeleteRecord(ctx context.Context, id string) error {
	rid, err := uuid.Parse(id)
	if err != nil {
		return errors.ErrRecordNotFound
	}
	if err := s.repo.Delete(ctx, rid); err != nil {
		return storeError(err, errors.ErrRecordNotFound)
	}
	s.log.WithField("record_id", rid).Info("record deleted")
	return nil
}

// resolveOne sets the shallow template view on a single written record.
func (s *recordService) resolveOne(ctx context.Context, record *model.Record) {
	one := []model.Record{*record}
	s.resolver.Shallow(ctx, one)
	record.Template = one[0].Template
}

func parseTemplateID(raw string) (uuid.UUID, error) {
	tid, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, errors.Validation("templateId must be a UUID", "Field 'templateId' failed on the 'uuid' tag")
	}
	return tid, nil
}
