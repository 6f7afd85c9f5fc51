package middleware

import (
	"log"
	"net/http"
	"time"

	"boutique/internal/common"

	"github.com/labstack/echo/v4"
)

// AuditMiddleware logs admin catalog mutations with the acting username
type AuditMiddleware struct {
	logf func(format string, args ...any)
}

func NewAuditMiddleware() *AuditMiddleware {
	return &AuditMiddleware{logf: log.Printf}
}

// AuditRequest records every mutating admin request, and every failed one
func (m *AuditMiddleware) AuditRequest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			method := c.Request().Method
			path := c.Path()
			if !m.shouldLog(method, err) {
				return err
			}

			username := "anonymous"
			if session, ok := common.SessionFromContext(c.Request().Context()); ok {
				username = session.Username
			}

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			if err != nil || status >= http.StatusBadRequest {
				m.logf("WARN: admin %s %s %s by %s -> %d (%s): %v", method, path, c.Param("id"), username, status, time.Since(start), err)
				return err
			}
			m.logf("INFO: admin %s %s %s by %s -> %d (%s)", method, path, c.Param("id"), username, status, time.Since(start))
			return err
		}
	}
}

func (m *AuditMiddleware) shouldLog(method string, reqErr error) bool {
	if reqErr != nil {
		return true
	}
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch || method == http.MethodDelete
}
