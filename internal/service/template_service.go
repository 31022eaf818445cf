package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"idcard/internal/cache"
	"idcard/internal/errors"
	"idcard/internal/model"
	"idcard/internal/repository"
)

// TemplateInput carries caller fields for template writes. Nil fields were not supplied.
type TemplateInput struct {
	Name         *string
	Thumbnail    *string
	TemplateData *model.TemplateData
}

// TemplateService handles template operations.
type TemplateService interface {
	ListTemplates(ctx context.Context) ([]model.TemplateSummary, error)
	GetTemplate(ctx context.Context, id string) (*model.Template, error)
	GetTemplateByName(ctx context.Context, term string) (*model.Template, error)
	CreateTemplate(ctx context.Context, in TemplateInput) (*model.Template, error)
	UpsertTemplate(ctx context.Context, in TemplateInput) (*model.Template, error)
	UpdateTemplate(ctx context.Context, id string, in TemplateInput) (*model.Template, error)
	DeleteTemplate(ctx context.Context, id string) error
}

type templateService struct {
	repo     repository.TemplateRepository
	cache    *cache.Client
	validate *validator.Validate
	log      *logrus.Logger

	// Per-name upsert locks, dropped once no upsert holds or waits on them
	locksMu sync.Mutex
	locks   map[string]*nameLock
}

type nameLock struct {
	mu   sync.Mutex
	refs int
}

// NewTemplateService creates a new template service. cache may be nil.
func NewTemplateService(repo repository.TemplateRepository, cache *cache.Client, log *logrus.Logger) TemplateService {
	return &templateService{
		repo:     repo,
		cache:    cache,
		validate: NewValidator(),
		log:      log,
		locks:    make(map[string]*nameLock),
	}
}

func templateCacheKey(id uuid.UUID) string {
	return "template:" + id.String()
}

// lockName serializes upserts of one name. The returned func unlocks it.
func (s *templateService) lockName(name string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[name]
	if !ok {
		l = &nameLock{}
		s.locks[name] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.locksMu.Lock()
		if l.refs--; l.refs == 0 {
			delete(s.locks, name)
		}
		s.locksMu.Unlock()
	}
}

func (s *templateService) invalidate(ctx context.Context, id uuid.UUID) {
	_ = s.cache.Delete(ctx, templateCacheKey(id))
}

func (s *templateService) ListTemplates(ctx context.Context) ([]model.TemplateSummary, error) {
	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, storeError(err, errors.ErrTemplateNotFound)
	}
	if summaries == nil {
		summaries = []model.TemplateSummary{}
	}
	return summaries, nil
}

// GetTemplate returns the template with the given id. Malformed ids are not found.
func (s *templateService) GetTemplate(ctx context.Context, id string) (*model.Template, error) {
	tid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.ErrTemplateNotFound
	}

	if data, _ := s.cache.Get(ctx, templateCacheKey(tid)); data != nil {
		var cached model.Template
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	template, err := s.repo.FindByID(ctx, tid)
	if err != nil {
		return nil, storeError(err, errors.ErrTemplateNotFound)
	}

	if payload, err := json.Marshal(template); err == nil {
		_ = s.cache.Set(ctx, templateCacheKey(tid), payload, s.cache.TTL())
	}
	return template, nil
}

// GetTemplateByName returns the first template whose name contains term, ignoring case.
func (s *templateService) GetTemplateByName(ctx context.Context, term string) (*model.Template, error) {
	template, err := s.repo.FindFirstNameContaining(ctx, term)
	if err != nil {
		return nil, storeError(err, errors.ErrTemplateNotFound)
	}
	return template, nil
}

func (s *templateService) CreateTemplate(ctx context.Context, in TemplateInput) (*model.Template, error) {
	name := trimmed(in.Name)
	if name == "" {
		return nil, errors.Validation("name is required")
	}
	if in.TemplateData == nil {
		return nil, errors.Validation("templateData is required")
	}

	_, err := s.repo.FindByName(ctx, name)
	switch {
	case err == nil:
		return nil, errors.Duplicate("name", name)
	case !stderrors.Is(err, gorm.ErrRecordNotFound):
		return nil, storeError(err, errors.ErrTemplateNotFound)
	}

	data := in.TemplateData.Clone()
	if err := validateTemplateData(s.validate, &data); err != nil {
		return nil, err
	}

	template := &model.Template{
		Name:         name,
		Thumbnail:    in.Thumbnail,
		TemplateData: datatypes.NewJSONType(data),
	}
	if err := s.repo.Create(ctx, template); err != nil {
		return nil, duplicateOr(err, "name", name, errors.ErrTemplateNotFound)
	}

	s.log.WithFields(logrus.Fields{"template_id": template.ID, "name": name}).Info("template created")
	return template, nil
}

// UpsertTemplate updates the template named in.Name with the supplied fields,
// or creates it when missing.
func (s *templateService) UpsertTemplate(ctx context.Context, in TemplateInput) (*model.Template, error) {
	name := trimmed(in.Name)
	if name == "" {
		return nil, errors.Validation("name is required")
	}

	var data *model.TemplateData
	if in.TemplateData != nil {
		copied := in.TemplateData.Clone()
		if err := validateTemplateData(s.validate, &copied); err != nil {
			return nil, err
		}
		data = &copied
	}

	unlock := s.lockName(name)
	defer unlock()

	created := false
	template, err := s.repo.UpsertByName(ctx, name, func(t *model.Template, isNew bool) error {
		created = isNew
		if isNew && data == nil {
			return errors.Validation("templateData is required")
		}
		if in.Thumbnail != nil {
			t.Thumbnail = in.Thumbnail
		}
		if data != nil {
			t.TemplateData = datatypes.NewJSONType(*data)
		}
		return nil
	})
	if err != nil {
		return nil, duplicateOr(err, "name", name, errors.ErrTemplateNotFound)
	}

	s.invalidate(ctx, template.ID)
	s.log.WithFields(logrus.Fields{
		"template_id": template.ID,
		"name":        name,
		"created":     created,
	}).Info("template upserted")
	return template, nil
}

// UpdateTemplate applies the supplied fields to the template with the given id.
func (s *templateService) UpdateTemplate(ctx context.Context, id string, in TemplateInput) (*model.Template, error) {
	tid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.ErrTemplateNotFound
	}

	var name string
	if in.Name != nil {
		if name = trimmed(in.Name); name == "" {
			return nil, errors.Validation("name must not be empty")
		}
	}
	var data *model.TemplateData
	if in.TemplateData != nil {
		copied := in.TemplateData.Clone()
		if err := validateTemplateData(s.validate, &copied); err != nil {
			return nil, err
		}
		data = &copied
	}

	template, err := s.repo.FindByID(ctx, tid)
	if err != nil {
		return nil, storeError(err, errors.ErrTemplateNotFound)
	}

	if name != "" && name != template.Name {
		existing, err := s.repo.FindByName(ctx, name)
		switch {
		case err == nil && existing.ID != template.ID:
			return nil, errors.Duplicate("name", name)
		case err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound):
			return nil, storeError(err, errors.ErrTemplateNotFound)
		}
		template.Name = name
	}
	if in.Thumbnail != nil {
		template.Thumbnail = in.Thumbnail
	}
	if data != nil {
		template.TemplateData = datatypes.NewJSONType(*data)
	}

	if err := s.repo.Update(ctx, template); err != nil {
		return nil, duplicateOr(err, "name", template.Name, errors.ErrTemplateNotFound)
	}
	s.invalidate(ctx, template.ID)
	s.log.WithField("template_id", template.ID).Info("template updated")
	return template, nil
}

// DeleteTemplate removes a template. Records referencing it are kept.
func (s *templateService) DeleteTemplate(ctx context.Context, id string) error {
	tid, err := uuid.Parse(id)
	if err != nil {
		return errors.ErrTemplateNotFound
	}
	if err := s.repo.Delete(ctx, tid); err != nil {
		return storeError(err, errors.ErrTemplateNotFound)
	}
	s.invalidate(ctx, tid)
	s.log.WithField("template_id", tid).Info("template deleted")
	return nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
