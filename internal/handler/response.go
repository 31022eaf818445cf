package handler

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"idcard/internal/attr"
	"idcard/internal/errors"
	"idcard/internal/service"
)

// Response is the success envelope.
type Response struct {
	Success bool   `json:"success" example:"true"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// PageResponse is the success envelope of a paginated list.
type PageResponse struct {
	Success     bool  `json:"success" example:"true"`
	Data        any   `json:"data"`
	Count       int   `json:"count" example:"50"`
	Total       int64 `json:"total" example:"120"`
	TotalPages  int   `json:"totalPages" example:"3"`
	CurrentPage int   `json:"currentPage" example:"1"`
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, Response{Success: true, Data: data})
}

func okList[T any](c echo.Context, items []T) error {
	n := len(items)
	return c.JSON(http.StatusOK, Response{Success: true, Data: items, Count: &n})
}

func ack(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

// fail converts a service error into an echo error carrying the failure envelope.
func fail(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// badRequest reports an unreadable request body or parameter.
func badRequest(message string, err error) error {
	detail := err.Error()
	var he *echo.HTTPError
	if stderrors.As(err, &he) {
		detail = fmt.Sprint(he.Message)
		if he.Internal != nil {
			detail = he.Internal.Error()
		}
	}
	return fail(errors.Validation(message, detail))
}

// bind decodes the request into req and validates its tags.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body", err)
	}
	if err := c.Validate(req); err != nil {
		return fail(errors.Validation("invalid request body", service.FormatValidationErrors(err, "")...))
	}
	return nil
}

// decodeBag decodes an attribute bag field. An absent field yields nil; null
// and non-object values are rejected.
func decodeBag(field string, raw json.RawMessage) (attr.Bag, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if string(raw) == "null" {
		return nil, errors.Validation(field+" must be an object")
	}
	var bag attr.Bag
	if err := json.Unmarshal(raw, &bag); err != nil {
		return nil, errors.Validation(field+" must be an object", err.Error())
	}
	if bag == nil {
		bag = attr.Bag{}
	}
	return bag, nil
}
