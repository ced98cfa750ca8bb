package middleware

import (
	"inventorymanager/internal/common"
	"inventorymanager/internal/models"
	"inventorymanager/internal/services"

	"github.com/labstack/echo/v4"
)

// APIKeyHeader carries the plaintext token on guarded requests.
const APIKeyHeader = "Inventory-Api-Key"

type APIKeyMiddleware struct {
	apiKeyService services.APIKeyService
}

func NewAPIKeyMiddleware(apiKeyService services.APIKeyService) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		apiKeyService: apiKeyService,
	}
}

// Check authorizes the request's key for scope. Handlers call it directly
// when the scope comes from the request body.
func (m *APIKeyMiddleware) Check(c echo.Context, scope models.KeyScope) error {
	token := c.Request().Header.Get(APIKeyHeader)
	return m.apiKeyService.Authorize(c.Request().Context(), token, scope)
}

func (m *APIKeyMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := m.Check(c, models.AdminScope()); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequireWarehouseParam guards routes whose warehouse comes from the path.
func (m *APIKeyMiddleware) RequireWarehouseParam(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := common.ParseID(c, param)
			if err != nil {
				// No warehouse key can match an unparseable id.
				if err := m.Check(c, models.AdminScope()); err != nil {
					return err
				}
				return next(c)
			}
			if err := m.Check(c, models.WarehouseScope(id)); err != nil {
				return err
			}
			return next(c)
		}
	}
}
