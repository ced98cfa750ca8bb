package handlers

import (
	"inventorymanager/internal/caching"
	"inventorymanager/internal/hypermedia"
	"inventorymanager/internal/middleware"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// API bundles what the router needs.
type API struct {
	Items      *ItemHandlers
	Locations  *LocationHandlers
	Warehouses *WarehouseHandlers
	Stock      *StockHandlers
	Catalogue  *CatalogueHandlers
	Health     *HealthHandlers

	APIKeys *middleware.APIKeyMiddleware
	Cache   caching.ResponseCache
	Version *middleware.VersionMiddleware
	// Logger enables access logging when set.
	Logger *zerolog.Logger
}

// NewServer returns an echo instance with every route registered. Every
// route carries a trailing slash; CanonicalPath adds it to requests.
func NewServer(api API) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Pre(middleware.CanonicalPath())
	e.Use(middleware.RequestID())
	if api.Logger != nil {
		e.Use(middleware.RequestLogger(*api.Logger))
	}
	e.Use(middleware.Metrics())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.BodyLimit("1M"))

	e.GET("/health/", api.Health.HealthCheck)
	e.GET("/health/ready/", api.Health.ReadinessCheck)
	e.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))
	e.GET("/profiles/:resource/", Profile)
	e.GET(hypermedia.LinkRelationsURL, LinkRelations)

	v1 := e.Group("/api", api.Version.VersionHeader(), middleware.ResponseCache(api.Cache))
	v1.GET("/", EntryPoint)

	admin := api.APIKeys.RequireAdmin()
	warehouseKey := api.APIKeys.RequireWarehouseParam("warehouse_id")

	v1.GET("/items/", api.Items.ListItems)
	v1.POST("/items/", api.Items.CreateItem)
	v1.GET("/items/:item/", api.Items.GetItem)
	v1.PUT("/items/:item/", api.Items.UpdateItem)
	v1.DELETE("/items/:item/", api.Items.DeleteItem)

	v1.GET("/locations/", api.Locations.ListLocations)
	v1.POST("/locations/", api.Locations.CreateLocation)
	v1.GET("/locations/:location_id/", api.Locations.GetLocation)
	v1.PUT("/locations/:location_id/", api.Locations.UpdateLocation)
	v1.DELETE("/locations/:location_id/", api.Locations.DeleteLocation)

	v1.GET("/warehouses/", api.Warehouses.ListWarehouses)
	v1.POST("/warehouses/", api.Warehouses.CreateWarehouse, admin)
	v1.GET("/warehouses/:warehouse_id/", api.Warehouses.GetWarehouse)
	v1.PUT("/warehouses/:warehouse_id/", api.Warehouses.UpdateWarehouse, warehouseKey)
	v1.DELETE("/warehouses/:warehouse_id/", api.Warehouses.DeleteWarehouse, warehouseKey)

	v1.GET("/stocks/", api.Stock.ListStock)
	v1.POST("/stocks/", api.Stock.CreateStock)
	v1.GET("/stocks/item/:item/", api.Stock.ListStockForItem)
	v1.GET("/stocks/warehouse/:warehouse_id/", api.Stock.ListStockForWarehouse)
	v1.GET("/stocks/:warehouse_id/item/:item/", api.Stock.GetStock)
	v1.PUT("/stocks/:warehouse_id/item/:item/", api.Stock.UpdateStock, warehouseKey)
	v1.DELETE("/stocks/:warehouse_id/item/:item/", api.Stock.DeleteStock, warehouseKey)

	v1.GET("/catalogue/", api.Catalogue.ListCatalogue)
	v1.POST("/catalogue/", api.Catalogue.CreateCatalogueEntry, admin)
	v1.GET("/catalogue/item/:item/", api.Catalogue.ListCatalogueForItem)
	v1.GET("/catalogue/supplier/:supplier/", api.Catalogue.ListCatalogueForSupplier)
	v1.GET("/catalogue/supplier/:supplier/item/:item/", api.Catalogue.GetCatalogueEntry)
	v1.PUT("/catalogue/supplier/:supplier/item/:item/", api.Catalogue.UpdateCatalogueEntry, admin)
	v1.DELETE("/catalogue/supplier/:supplier/item/:item/", api.Catalogue.DeleteCatalogueEntry, admin)

	return e
}
