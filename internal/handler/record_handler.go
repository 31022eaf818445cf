package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"idcard/internal/service"
)

// RecordHandler handles record endpoints.
type RecordHandler struct {
	recordService service.RecordService
}

// NewRecordHandler creates a new record handler.
func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// RecordRequest is the payload of record writes. Omitted fields are left unchanged on updates.
type RecordRequest struct {
	Data         json.RawMessage `json:"data" swaggertype:"object"`
	TemplateID   *string         `json:"templateId" example:"3f9a7c1e-5b2d-4e8f-9a61-0c7d2e4b8f10"`
	TemplateName *string         `json:"templateName" validate:"omitempty,max=255" example:"Employee Badge"`
}

func (r RecordRequest) input() (service.RecordInput, error) {
	data, err := decodeBag("data", r.Data)
	if err != nil {
		return service.RecordInput{}, err
	}
	return service.RecordInput{
		Data:         data,
		TemplateID:   r.TemplateID,
		TemplateName: r.TemplateName,
	}, nil
}

// MergeDataRequest carries the keys merged into a record's data.
type MergeDataRequest struct {
	Data json.RawMessage `json:"data" swaggertype:"object"`
}

// ListQuery holds the list query parameters.
type ListQuery struct {
	Page       int
	Limit      int
	TemplateID string
}

// ListRecords godoc
// @Summary List records
// @Description Paginated, newest first, optionally filtered by template.
// @Tags records
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 500)" default(50)
// @Param templateId query string false "Template ID filter"
// @Success 200 {object} PageResponse{data=[]model.Record}
// @Failure 400 {object} errors.ErrorResponse
// @Router /records [get]
func (h *RecordHandler) ListRecords(c echo.Context) error {
	var q ListQuery
	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("limit", &q.Limit).
		String("templateId", &q.TemplateID).
		BindError()
	if err != nil {
		return badRequest("invalid query parameters", err)
	}

	res, err := h.recordService.ListRecords(c.Request().Context(), q.Page, q.Limit, q.TemplateID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, PageResponse{
		Success:     true,
		Data:        res.Items,
		Count:       len(res.Items),
		Total:       res.Total,
		TotalPages:  res.TotalPages,
		CurrentPage: res.Page,
	})
}

// GetRecord godoc
// @Summary Get record by id
// @Description The full template is embedded, or null when it no longer exists.
// @Tags records
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} Response{data=model.Record}
// @Failure 404 {object} errors.ErrorResponse
// @Router /records/{id} [get]
func (h *RecordHandler) GetRecord(c echo.Context) error {
	record, err := h.recordService.GetRecord(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, record)
}

// SearchRecordsByName godoc
// @Summary Search records by name
// @Description Case-insensitive substring match over data.name, data.Name and data["Full Name"].
// @Tags records
// @Produce json
// @Param name path string true "Name fragment"
// @Success 200 {object} Response{data=[]model.Record}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /records/name/{name} [get]
func (h *RecordHandler) SearchRecordsByName(c echo.Context) error {
	records, err := h.recordService.SearchRecordsByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return fail(err)
	}
	return okList(c, records)
}

// CreateRecord godoc
// @Summary Create record
// @Tags records
// @Accept json
// @Produce json
// @Param request body RecordRequest true "Record payload"
// @Success 201 {object} Response{data=model.Record}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /records [post]
func (h *RecordHandler) CreateRecord(c echo.Context) error {
	var req RecordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return fail(err)
	}
	record, err := h.recordService.CreateRecord(c.Request().Context(), in)
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusCreated, record)
}

// UpdateRecord godoc
// @Summary Update record
// @Description Replaces each supplied field; data is replaced whole.
// @Tags records
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body RecordRequest true "Fields to replace"
// @Success 200 {object} Response{data=model.Record}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /records/{id} [put]
func (h *RecordHandler) UpdateRecord(c echo.Context) error {
	var req RecordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return fail(err)
	}
	record, err := h.recordService.UpdateRecord(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, record)
}

// MergeRecordData godoc
// @Summary Merge record data
// @Description Merges the given keys into data. Nested objects merge; null removes a key.
// @Tags records
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body MergeDataRequest true "Keys to merge"
// @Success 200 {object} Response{data=model.Record}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /records/{id}/data [patch]
func (h *RecordHandler) MergeRecordData(c echo.Context) error {
	var req MergeDataRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	overlay, err := decodeBag("data", req.Data)
	if err != nil {
		return fail(err)
	}
	record, err := h.recordService.MergeRecordData(c.Request().Context(), c.Param("id"), overlay)
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, record)
}

// DeleteRecord godoc
// @Summary Delete record
// @Tags records
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} Response
// @Failure 404 {object} errors.ErrorResponse
// @Router /records/{id} [delete]
func (h *RecordHandler) DeleteRecord(c echo.Context) error {
	if err := h.recordService.DeleteRecord(c.Request().Context(), c.Param("id")); err != nil {
		return fail(err)
	}
	return ack(c, "Record deleted successfully")
}
