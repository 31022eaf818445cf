package router

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"idcard/docs"
	"idcard/internal/config"
	"idcard/internal/errors"
	"idcard/internal/handler"
	reqlog "idcard/internal/middleware"
	"idcard/internal/service"
)

const healthTimeout = 2 * time.Second

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *logrus.Logger,
	db *gorm.DB,
	templateHandler *handler.TemplateHandler,
	recordHandler *handler.RecordHandler,
) {
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(log)
	e.Validator = &CustomValidator{validator: service.NewValidator()}

	e.Use(middleware.RequestID())
	e.Use(reqlog.RequestLogger(log))
	e.Use(middleware.Recover())

	if cfg.Server.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.Server.SwaggerHost
	}

	e.GET("/healthz", health(db))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	templates := api.Group("/templates")
	templates.GET("", templateHandler.ListTemplates)
	templates.GET("/name/:name", templateHandler.GetTemplateByName)
	templates.GET("/:id", templateHandler.GetTemplate)
	templates.POST("", templateHandler.CreateTemplate)
	templates.PUT("", templateHandler.UpsertTemplate)
	templates.PUT("/:id", templateHandler.UpdateTemplate)
	templates.DELETE("/:id", templateHandler.DeleteTemplate)

	// /users is the legacy name of the record routes.
	for _, prefix := range []string{"/records", "/users"} {
		records := api.Group(prefix)
		records.GET("", recordHandler.ListRecords)
		records.GET("/name/:name", recordHandler.SearchRecordsByName)
		records.GET("/:id", recordHandler.GetRecord)
		records.POST("", recordHandler.CreateRecord)
		records.PUT("/:id", recordHandler.UpdateRecord)
		records.PATCH("/:id/data", recordHandler.MergeRecordData)
		records.DELETE("/:id", recordHandler.DeleteRecord)
	}
}

// health reports whether the store answers a ping.
func health(db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			httpErr := errors.MapErrorToHTTP(errors.Unavailable(err))
			return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return c.JSON(http.StatusOK, handler.Response{Success: true, Message: "ok"})
	}
}

// ErrorHandler renders every error in the failure envelope.
func ErrorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := errors.ErrorResponse{Error: "internal server error", Code: string(errors.KindInternal)}

		var he *echo.HTTPError
		if stderrors.As(err, &he) {
			status = he.Code
			switch msg := he.Message.(type) {
			case errors.ErrorResponse:
				body = msg
			default:
				body = errors.ErrorResponse{Error: fmt.Sprint(msg), Code: codeForStatus(status)}
			}
		} else {
			httpErr := errors.MapErrorToHTTP(err)
			status = httpErr.StatusCode
			body = httpErr.ToErrorResponse()
		}

		if status >= http.StatusInternalServerError {
			log.WithError(err).WithField("uri", c.Request().RequestURI).Error("request failed")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.WithError(writeErr).Warn("write error response")
		}
	}
}

func codeForStatus(status int) string {
	switch {
	case status == http.StatusNotFound:
		return string(errors.KindNotFound)
	case status == http.StatusConflict:
		return string(errors.KindDuplicate)
	case status == http.StatusServiceUnavailable:
		return string(errors.KindStoreUnavailable)
	case status >= 400 && status < 500:
		return string(errors.KindValidation)
	default:
		return string(errors.KindInternal)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
