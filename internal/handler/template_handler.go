package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"idcard/internal/model"
	"idcard/internal/service"
)

// TemplateHandler handles template endpoints.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new template handler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// TemplateRequest is the payload of template writes. Omitted fields are left unchanged on updates.
type TemplateRequest struct {
	Name         *string             `json:"name" validate:"omitempty,max=255" example:"Employee Badge"`
	Thumbnail    *string             `json:"thumbnail" validate:"omitempty,max=2048" example:"https://cdn.example.com/badge.png"`
	TemplateData *model.TemplateData `json:"templateData" validate:"-"`
}

func (r TemplateRequest) input() service.TemplateInput {
	return service.TemplateInput{
		Name:         r.Name,
		Thumbnail:    r.Thumbnail,
		TemplateData: r.TemplateData,
	}
}

// ListTemplates godoc
// @Summary List templates
// @Description Returns every template without its layout, newest first.
// @Tags templates
// @Produce json
// @Success 200 {object} Response{data=[]model.TemplateSummary}
// @Failure 503 {object} errors.ErrorResponse
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c echo.Context) error {
	summaries, err := h.templateService.ListTemplates(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return okList(c, summaries)
}

// GetTemplate godoc
// @Summary Get template by id
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} Response{data=model.Template}
// @Failure 404 {object} errors.ErrorResponse
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c echo.Context) error {
	template, err := h.templateService.GetTemplate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, template)
}

// GetTemplateByName godoc
// @Summary Find template by name
// @Description Case-insensitive substring match; the first match is returned.
// @Tags templates
// @Produce json
// @Param name path string true "Name fragment"
// @Success 200 {object} Response{data=model.Template}
// @Failure 404 {object} errors.ErrorResponse
// @Router /templates/name/{name} [get]
func (h *TemplateHandler) GetTemplateByName(c echo.Context) error {
	template, err := h.templateService.GetTemplateByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, template)
}

// CreateTemplate godoc
// @Summary Create template
// @Tags templates
// @Accept json
// @Produce json
// @Param request body TemplateRequest true "Template payload"
// @Success 201 {object} Response{data=model.Template}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c echo.Context) error {
	var req TemplateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	template, err := h.templateService.CreateTemplate(c.Request().Context(), req.input())
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusCreated, template)
}

// UpsertTemplate godoc
// @Summary Create or update template by name
// @Description Updates the template with the given name, or creates it when missing.
// @Tags templates
// @Accept json
// @Produce json
// @Param request body TemplateRequest true "Template payload"
// @Success 200 {object} Response{data=model.Template}
// @Failure 400 {object} errors.ErrorResponse
// @Router /templates [put]
func (h *TemplateHandler) UpsertTemplate(c echo.Context) error {
	var req TemplateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	template, err := h.templateService.UpsertTemplate(c.Request().Context(), req.input())
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, template)
}

// UpdateTemplate godoc
// @Summary Update template by id
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param request body TemplateRequest true "Fields to change"
// @Success 200 {object} Response{data=model.Template}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /templates/{id} [put]
func (h *TemplateHandler) UpdateTemplate(c echo.Context) error {
	var req TemplateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	template, err := h.templateService.UpdateTemplate(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, template)
}

// DeleteTemplate godoc
// @Summary Delete template
// @Description Records referencing the template are kept.
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} Response
// @Failure 404 {object} errors.ErrorResponse
// @Router /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c echo.Context) error {
	if err := h.templateService.DeleteTemplate(c.Request().Context(), c.Param("id")); err != nil {
		return fail(err)
	}
	return ack(c, "Template deleted successfully")
}
