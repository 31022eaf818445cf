package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "idcard/internal/errors"
	"idcard/internal/logger"
	"idcard/internal/model"
	"idcard/internal/repository"
)

func f64(v float64) *float64 { return &v }

func str(v string) *string { return &v }

func validLayout() *model.TemplateData {
	return &model.TemplateData{
		Canvas: &model.Canvas{Width: f64(340), Height: f64(210)},
		Elements: []model.Element{
			{ID: "title", Type: model.ElementText, Value: str("ACME Corp")},
		},
	}
}

func newTemplateService(repo *MockTemplateRepository) TemplateService {
	return NewTemplateService(repo, nil, logger.Discard())
}

func TestTemplateService_CreateTemplate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		input     TemplateInput
		setupMock func(*MockTemplateRepository)
		wantKind  apperrors.Kind
		wantErr   bool
	}{
		{
			name:      "missing name",
			input:     TemplateInput{Name: str("  "), TemplateData: validLayout()},
			setupMock: func(m *MockTemplateRepository) {},
			wantKind:  apperrors.KindValidation,
			wantErr:   true,
		},
		{
			name:      "missing template data",
			input:     TemplateInput{Name: str("Staff")},
			setupMock: func(m *MockTemplateRepository) {},
			wantKind:  apperrors.KindValidation,
			wantErr:   true,
		},
		{
			name:  "duplicate name",
			input: TemplateInput{Name: str("Staff"), TemplateData: validLayout()},
			setupMock: func(m *MockTemplateRepository) {
				m.On("FindByName", ctx, "Staff").Return(&model.Template{ID: uuid.New(), Name: "Staff"}, nil)
			},
			wantKind: apperrors.KindDuplicate,
			wantErr:  true,
		},
		{
			name: "opacity out of range",
			input: TemplateInput{Name: str("Staff"), TemplateData: &model.TemplateData{
				Canvas: &model.Canvas{Width: f64(1), Height: f64(1), BackgroundOpacity: f64(1.5)},
			}},
			setupMock: func(m *MockTemplateRepository) {
				m.On("FindByName", ctx, "Staff").Return(nil, gorm.ErrRecordNotFound)
			},
			wantKind: apperrors.KindValidation,
			wantErr:  true,
		},
		{
			name:  "unique index race",
			input: TemplateInput{Name: str("Staff"), TemplateData: validLayout()},
			setupMock: func(m *MockTemplateRepository) {
				m.On("FindByName", ctx, "Staff").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", ctx, mock.AnythingOfType("*model.Template")).Return(gorm.ErrDuplicatedKey)
			},
			wantKind: apperrors.KindDuplicate,
			wantErr:  true,
		},
		{
			name:  "successful creation",
			input: TemplateInput{Name: str(" Staff "), TemplateData: validLayout()},
			setupMock: func(m *MockTemplateRepository) {
				m.On("FindByName", ctx, "Staff").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", ctx, mock.MatchedBy(func(tpl *model.Template) bool {
					data := tpl.TemplateData.Data()
					return tpl.Name == "Staff" &&
						data.Canvas.BackgroundColor == model.DefaultBackgroundColor &&
						data.Elements[0].BorderStyle == model.BorderNone
				})).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockTemplateRepository)
			tt.setupMock(repo)
			svc := newTemplateService(repo)

			tpl, err := svc.CreateTemplate(ctx, tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, tpl)
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Staff", tpl.Name)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestTemplateService_CreateTemplateLeavesInputUntouched(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTemplateRepository)
	repo.On("FindByName", ctx, "Staff").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", ctx, mock.AnythingOfType("*model.Template")).Return(nil)
	svc := newTemplateService(repo)

	layout := validLayout()
	tpl, err := svc.CreateTemplate(ctx, TemplateInput{Name: str("Staff"), TemplateData: layout})
	require.NoError(t, err)

	assert.Equal(t, model.DefaultBackgroundColor, tpl.TemplateData.Data().Canvas.BackgroundColor)
	assert.Empty(t, layout.Canvas.BackgroundColor)
	assert.Nil(t, layout.Canvas.BackgroundOpacity)
	assert.Empty(t, layout.Elements[0].BorderStyle)
	repo.AssertExpectations(t)
}

func TestTemplateService_CreateTemplateValidationDetails(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTemplateRepository)
	repo.On("FindByName", ctx, "Staff").Return(nil, gorm.ErrRecordNotFound)
	svc := newTemplateService(repo)

	_, err := svc.CreateTemplate(ctx, TemplateInput{Name: str("Staff"), TemplateData: &model.TemplateData{
		Canvas:   &model.Canvas{Width: f64(1), Height: f64(1), BackgroundOpacity: f64(1.5), BorderStyle: "dotted"},
		Elements: []model.Element{{ID: "x", Type: "video"}},
	}})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Len(t, appErr.Details, 3)
	assert.Contains(t, appErr.Details, "Field 'templateData.canvas.backgroundOpacity' failed on the 'max' tag (value: 1)")
	assert.Contains(t, appErr.Details, "Field 'templateData.canvas.borderStyle' failed on the 'oneof' tag (value: none one two all)")
	assert.Contains(t, appErr.Details, "Field 'templateData.elements[0].type' failed on the 'oneof' tag (value: text image qr)")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTemplateService_GetTemplate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	tests := []struct {
		name      string
		id        string
		setupMock func(*MockTemplateRepository)
		wantKind  apperrors.Kind
		wantErr   bool
	}{
		{
			name:      "malformed id",
			id:        "not-a-uuid",
			setupMock: func(m *MockTemplateRepository) {},
			wantKind:  apperrors.KindNotFound,
			wantErr:   true,
		},
		{
			name: "missing",
			id:   id.String(),
			setupMock: func(m *MockTemplateRepository) {
				m.On("FindByID", ctx, id).Return(nil, gorm.ErrRecordNotFound)
			},
			wantKind: apperrors.KindNotFound,
			wantErr:  true,
		},
		{
			name: "store timeout",
			id:   id.String(),
			setupMock: func(m *MockTemplateRepository) {
				m.On("FindByID", ctx, id).Return(nil, context.DeadlineExceeded)
			},
			wantKind: apperrors.KindStoreUnavailable,
			wantErr:  true,
		},
		{
			name: "unexpected store error",
			id:   id.String(),
			setupMock: func(m *MockTemplateRepository) {
				m.On("FindByID", ctx, id).Return(nil, errors.New("syntax error"))
			},
			wantKind: apperrors.KindInternal,
			wantErr:  true,
		},
		{
			name: "found",
			id:   id.String(),
			setupMock: func(m *MockTemplateRepository) {
				m.On("FindByID", ctx, id).Return(&model.Template{
					ID:           id,
					Name:         "Staff",
					TemplateData: datatypes.NewJSONType(*validLayout()),
				}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockTemplateRepository)
			tt.setupMock(repo)
			svc := newTemplateService(repo)

			tpl, err := svc.GetTemplate(ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, id, tpl.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestTemplateService_GetTemplateByNameNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTemplateRepository)
	repo.On("FindFirstNameContaining", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)
	svc := newTemplateService(repo)

	_, err := svc.GetTemplateByName(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrTemplateNotFound)
}

func TestTemplateService_UpsertTemplateValidatesBeforeTouchingStore(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTemplateRepository)
	svc := newTemplateService(repo)

	_, err := svc.UpsertTemplate(ctx, TemplateInput{Name: str("Staff"), TemplateData: &model.TemplateData{}})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.UpsertTemplate(ctx, TemplateInput{TemplateData: validLayout()})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	repo.AssertNotCalled(t, "UpsertByName", mock.Anything, mock.Anything, mock.Anything)
}

func TestTemplateService_UpsertTemplateAppliesSuppliedFields(t *testing.T) {
	ctx := context.Background()
	existing := &model.Template{
		ID:           uuid.New(),
		Name:         "Staff",
		Thumbnail:    str("old.png"),
		TemplateData: datatypes.NewJSONType(*validLayout()),
	}

	repo := new(MockTemplateRepository)
	repo.On("UpsertByName", ctx, "Staff", mock.Anything).
		Run(func(args mock.Arguments) {
			apply := args.Get(2).(repository.UpsertFunc)
			require.NoError(t, apply(existing, false))
		}).
		Return(existing, nil)
	svc := newTemplateService(repo)

	tpl, err := svc.UpsertTemplate(ctx, TemplateInput{Name: str("Staff"), Thumbnail: str("new.png")})
	require.NoError(t, err)
	assert.Equal(t, "new.png", *tpl.Thumbnail)
	assert.Equal(t, "ACME Corp", *tpl.TemplateData.Data().Elements[0].Value)

	layout := validLayout()
	tpl, err = svc.UpsertTemplate(ctx, TemplateInput{Name: str("Staff"), TemplateData: layout})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultBackgroundColor, tpl.TemplateData.Data().Canvas.BackgroundColor)
	assert.Empty(t, layout.Canvas.BackgroundColor, "caller layout is not modified")
	repo.AssertExpectations(t)
}

func TestTemplateService_UpsertLocksAreReleased(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTemplateRepository)
	repo.On("UpsertByName", ctx, mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) {
			apply := args.Get(2).(repository.UpsertFunc)
			assert.NoError(t, apply(&model.Template{Name: args.String(1)}, true))
		}).
		Return(&model.Template{ID: uuid.New()}, nil)
	svc := NewTemplateService(repo, nil, logger.Discard()).(*templateService)

	names := []string{"Staff", "Visitor", "Contractor"}
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := svc.UpsertTemplate(ctx, TemplateInput{Name: str(name), TemplateData: validLayout()})
			assert.NoError(t, err)
		}(names[i%len(names)])
	}
	wg.Wait()

	svc.locksMu.Lock()
	defer svc.locksMu.Unlock()
	assert.Empty(t, svc.locks)
}

func TestTemplateService_UpsertTemplateCreateNeedsLayout(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTemplateRepository)
	var applyErr error
	repo.On("UpsertByName", ctx, "Visitor", mock.Anything).
		Run(func(args mock.Arguments) {
			apply := args.Get(2).(repository.UpsertFunc)
			applyErr = apply(&model.Template{Name: "Visitor"}, true)
		}).
		Return(nil, apperrors.Validation("templateData is required"))
	svc := newTemplateService(repo)

	_, err := svc.UpsertTemplate(ctx, TemplateInput{Name: str("Visitor"), Thumbnail: str("v.png")})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(applyErr))
}

func TestTemplateService_UpdateTemplate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("name collision", func(t *testing.T) {
		repo := new(MockTemplateRepository)
		repo.On("FindByID", ctx, id).Return(&model.Template{ID: id, Name: "Staff"}, nil)
		repo.On("FindByName", ctx, "Visitor").Return(&model.Template{ID: uuid.New(), Name: "Visitor"}, nil)
		svc := newTemplateService(repo)

		_, err := svc.UpdateTemplate(ctx, id.String(), TemplateInput{Name: str("Visitor")})
		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.KindDuplicate, appErr.Kind)
		assert.Equal(t, "name", appErr.Key)
		assert.Equal(t, "Visitor", appErr.Value)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing", func(t *testing.T) {
		repo := new(MockTemplateRepository)
		repo.On("FindByID", ctx, id).Return(nil, gorm.ErrRecordNotFound)
		svc := newTemplateService(repo)

		_, err := svc.UpdateTemplate(ctx, id.String(), TemplateInput{Thumbnail: str("x.png")})
		assert.ErrorIs(t, err, apperrors.ErrTemplateNotFound)
	})

	t.Run("rename", func(t *testing.T) {
		repo := new(MockTemplateRepository)
		repo.On("FindByID", ctx, id).Return(&model.Template{ID: id, Name: "Staff"}, nil)
		repo.On("FindByName", ctx, "Staff 2025").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Update", ctx, mock.MatchedBy(func(tpl *model.Template) bool {
			return tpl.Name == "Staff 2025"
		})).Return(nil)
		svc := newTemplateService(repo)

		tpl, err := svc.UpdateTemplate(ctx, id.String(), TemplateInput{Name: str("Staff 2025")})
		require.NoError(t, err)
		assert.Equal(t, "Staff 2025", tpl.Name)
		repo.AssertExpectations(t)
	})
}

func TestTemplateService_DeleteTemplate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	repo := new(MockTemplateRepository)
	repo.On("Delete", ctx, id).Return(gorm.ErrRecordNotFound).Once()
	repo.On("Delete", ctx, id).Return(nil).Once()
	svc := newTemplateService(repo)

	assert.ErrorIs(t, svc.DeleteTemplate(ctx, id.String()), apperrors.ErrTemplateNotFound)
	assert.NoError(t, svc.DeleteTemplate(ctx, id.String()))
	assert.ErrorIs(t, svc.DeleteTemplate(ctx, "bogus"), apperrors.ErrTemplateNotFound)
	repo.AssertExpectations(t)
}
