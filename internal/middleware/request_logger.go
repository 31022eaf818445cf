package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one structured entry per request. The level follows the
// status class. Run it after middleware.RequestID so the id is available.
func RequestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// write the error response now so the logged status is final
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = res.Header().Get(echo.HeaderXRequestID)
			}

			entry := log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"http_method": req.Method,
				"uri":         req.RequestURI,
				"status_code": res.Status,
				"latency_ms":  time.Since(start).Milliseconds(),
				"client_ip":   c.RealIP(),
				"user_agent":  req.UserAgent(),
			})
			if err != nil {
				entry = entry.WithError(err)
			}

			switch {
			case res.Status >= 500:
				entry.Error("request completed with server error")
			case res.Status >= 400:
				entry.Warn("request completed with client error")
			default:
				entry.Info("request completed")
			}
			return nil
		}
	}
}
