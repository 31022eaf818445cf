package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"idcard/internal/errors"
	"idcard/internal/model"
	"idcard/internal/repository"
)

// fullResolveTimeout bounds a shared template fetch.
const fullResolveTimeout = 10 * time.Second

// templateGetter is the cached single-template read used for full resolution.
type templateGetter interface {
	GetTemplate(ctx context.Context, id string) (*model.Template, error)
}

// Resolver fills in the template referenced by records on read. References to
// missing templates resolve to nil.
type Resolver struct {
	repo      repository.TemplateRepository
	templates templateGetter
	log       *logrus.Logger
	group     singleflight.Group
}

// NewResolver creates a resolver reading names from repo and full templates
// through templates.
func NewResolver(repo repository.TemplateRepository, templates TemplateService, log *logrus.Logger) *Resolver {
	return &Resolver{repo: repo, templates: templates, log: log}
}

// Shallow sets the id+name view on every record with one batched lookup.
// A failing lookup is logged and leaves every reference nil.
func (r *Resolver) Shallow(ctx context.Context, records []model.Record) {
	if len(records) == 0 {
		return
	}
	seen := make(map[uuid.UUID]struct{}, len(records))
	ids := make([]uuid.UUID, 0, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.TemplateID]; ok {
			continue
		}
		seen[rec.TemplateID] = struct{}{}
		ids = append(ids, rec.TemplateID)
	}

	names, err := r.repo.FindNamesByIDs(ctx, ids)
	if err != nil {
		r.log.WithError(err).WithField("templates", len(ids)).Warn("resolve template names")
		for i := range records {
			records[i].Template = nil
		}
		return
	}
	for i := range records {
		if name, ok := names[records[i].TemplateID]; ok {
			records[i].Template = model.ShallowView(records[i].TemplateID, name)
		} else {
			records[i].Template = nil
		}
	}
}

// Full sets the complete template view on record. Concurrent resolutions of
// the same template share one fetch. The shared fetch is detached from the
// caller that started it, so one caller going away does not fail the others.
func (r *Resolver) Full(ctx context.Context, record *model.Record) error {
	key := record.TemplateID.String()
	ch := r.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fullResolveTimeout)
		defer cancel()

		template, err := r.templates.GetTemplate(fetchCtx, key)
		if err != nil {
			if errors.KindOf(err) == errors.KindNotFound {
				return (*model.Template)(nil), nil
			}
			return nil, err
		}
		return template, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return fmt.Errorf("resolve template %s: %w", key, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return fmt.Errorf("resolve template %s: %w", key, res.Err)
	}

	template, _ := res.Val.(*model.Template)
	if template == nil {
		record.Template = nil
		return nil
	}
	record.Template = model.FullView(template)
	return nil
}
