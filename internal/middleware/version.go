package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

// APIVersion represents API version information
type APIVersion struct {
	Version    string     `json:"version"`
	Status     string     `json:"status"` // "active", "deprecated"
	SunsetDate *time.Time `json:"sunset_date,omitempty"`
	Message    string     `json:"message,omitempty"`
}

// VersionMiddleware stamps API responses with the served version.
type VersionMiddleware struct {
	current APIVersion
}

func NewVersionMiddleware(version string) *VersionMiddleware {
	return &VersionMiddleware{
		current: APIVersion{
			Version: version,
			Status:  "active",
			Message: "Current stable API version",
		},
	}
}

// Deprecate marks the served version as deprecated until sunset.
func (vm *VersionMiddleware) Deprecate(sunset time.Time, message string) {
	vm.current.Status = "deprecated"
	vm.current.SunsetDate = &sunset
	vm.current.Message = message
}

func (vm *VersionMiddleware) VersionHeader() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-API-Version", vm.current.Version)
			if vm.current.Status == "deprecated" && vm.current.SunsetDate != nil {
				h.Set("X-API-Deprecated", "true")
				h.Set("X-API-Sunset", vm.current.SunsetDate.Format(time.RFC3339))
				h.Set("Warning", `299 inventorymanager "This API version is deprecated and will be removed on `+
					vm.current.SunsetDate.Format("2006-01-02")+`"`)
			}
			if vm.current.Message != "" {
				h.Set("X-API-Message", vm.current.Message)
			}
			return next(c)
		}
	}
}
