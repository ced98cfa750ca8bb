package handlers

import (
	"net/http"

	"inventorymanager/internal/common"
	"inventorymanager/internal/hypermedia"
	"inventorymanager/internal/models"
	"inventorymanager/internal/services"

	"github.com/labstack/echo/v4"
)

// WarehouseHandlers handles warehouse-related HTTP requests
type WarehouseHandlers struct {
	warehouseService services.WarehouseService
}

// NewWarehouseHandlers creates a new warehouse handlers instance
func NewWarehouseHandlers(warehouseService services.WarehouseService) *WarehouseHandlers {
	return &WarehouseHandlers{
		warehouseService: warehouseService,
	}
}

func warehouseSummary(w *models.Warehouse) *hypermedia.Document {
	return hypermedia.NewDocument(w).
		AddControl("self", hypermedia.WarehouseURL(w.ID)).
		AddControl("profile", hypermedia.WarehouseProfile).
		AddControlGetLocation(w.LocationID)
}

// ListWarehouses handles getting the list of all warehouses
func (h *WarehouseHandlers) ListWarehouses(c echo.Context) error {
	warehouses, err := h.warehouseService.List(c.Request().Context())
	if err != nil {
		return err
	}

	members := make([]*hypermedia.Document, 0, len(warehouses))
	for _, w := range warehouses {
		members = append(members, warehouseSummary(w))
	}

	body := hypermedia.New(nil).
		Set("warehouses", members).
		AddControl("self", hypermedia.WarehousesURL()).
		AddControlPost(hypermedia.NS+":add-warehouse", "Add new warehouse", hypermedia.WarehousesURL(), models.WarehouseSchema()).
		AddControlAllLocations().
		AddControlAllStock()
	return mason(c, http.StatusOK, body)
}

// CreateWarehouse handles creating a new warehouse
func (h *WarehouseHandlers) CreateWarehouse(c echo.Context) error {
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	doc, err := models.Decode[models.WarehouseDocument](models.WarehouseSchema(), raw)
	if err != nil {
		return err
	}

	warehouse, err := h.warehouseService.Create(c.Request().Context(), doc)
	if err != nil {
		return err
	}
	return created(c, hypermedia.WarehouseURL(warehouse.ID))
}

// GetWarehouse returns one warehouse with its location embedded
func (h *WarehouseHandlers) GetWarehouse(c echo.Context) error {
	id, err := common.ParseID(c, "warehouse_id")
	if err != nil {
		return err
	}
	detail, err := h.warehouseService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	self := hypermedia.WarehouseURL(id)
	body := hypermedia.New(detail.Warehouse).
		Set("location", detail.Location).
		AddControl("self", self).
		AddControl("profile", hypermedia.WarehouseProfile).
		AddControl("collection", hypermedia.WarehousesURL()).
		AddControlPut("Modify this warehouse", self, models.WarehouseSchema()).
		AddControlDelete("Delete this warehouse", self).
		AddControlGetLocation(detail.Location.ID).
		AddControlStockForWarehouse(id)
	return mason(c, http.StatusOK, body)
}

// UpdateWarehouse handles updating warehouse information
func (h *WarehouseHandlers) UpdateWarehouse(c echo.Context) error {
	id, err := common.ParseID(c, "warehouse_id")
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	doc, err := models.Decode[models.WarehouseDocument](models.WarehouseSchema(), raw)
	if err != nil {
		return err
	}

	if _, err := h.warehouseService.Update(c.Request().Context(), id, doc); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteWarehouse handles deleting a warehouse and, through the cascade,
// its stock
func (h *WarehouseHandlers) DeleteWarehouse(c echo.Context) error {
	id, err := common.ParseID(c, "warehouse_id")
	if err != nil {
		return err
	}
	if err := h.warehouseService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
