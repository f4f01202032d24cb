package middleware

import (
	"net/http"
	"strings"

	"creditos-backend/internal/domain/tenant"

	"github.com/labstack/echo/v4"
)

// Tenant scopes the request to X-Tenant-Id when the header is present.
func Tenant() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(HeaderTenantID))
			if raw == "" {
				return next(c)
			}
			if !reHex32.MatchString(raw) {
				return c.JSON(http.StatusBadRequest, errBody("invalid "+HeaderTenantID, "invalid_header"))
			}
			req := c.Request()
			c.SetRequest(req.WithContext(tenant.WithID(req.Context(), raw)))
			return next(c)
		}
	}
}
