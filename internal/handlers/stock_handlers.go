package handlers

import (
	"net/http"

	"inventorymanager/internal/common"
	"inventorymanager/internal/hypermedia"
	"inventorymanager/internal/middleware"
	"inventorymanager/internal/models"
	"inventorymanager/internal/services"

	"github.com/labstack/echo/v4"
)

// StockHandlers serves /api/stocks/. Writes need a key for every
// warehouse they touch; the path warehouse is checked by route middleware,
// warehouses named only in the body are checked here.
type StockHandlers struct {
	stockService services.StockService
	apiKeys      *middleware.APIKeyMiddleware
}

func NewStockHandlers(stockService services.StockService, apiKeys *middleware.APIKeyMiddleware) *StockHandlers {
	return &StockHandlers{
		stockService: stockService,
		apiKeys:      apiKeys,
	}
}

func stockSummary(s *models.Stock) *hypermedia.Document {
	return hypermedia.NewDocument(s).
		AddControl("self", hypermedia.StockURL(s.WarehouseID, s.ItemName)).
		AddControl("profile", hypermedia.StockProfile).
		AddControlGetItem(s.ItemName).
		AddControlGetWarehouse(s.WarehouseID)
}

func stockList(stocks []*models.Stock) []*hypermedia.Document {
	members := make([]*hypermedia.Document, 0, len(stocks))
	for _, s := range stocks {
		members = append(members, stockSummary(s))
	}
	return members
}

func (h *StockHandlers) ListStock(c echo.Context) error {
	stocks, err := h.stockService.List(c.Request().Context())
	if err != nil {
		return err
	}

	body := hypermedia.New(nil).
		Set("stocks", stockList(stocks)).
		AddControl("self", hypermedia.StocksURL()).
		AddControlPost(hypermedia.NS+":add-stock", "Add new stock", hypermedia.StocksURL(), models.StockSchema()).
		AddControlAllItems().
		AddControlAllWarehouses()
	return mason(c, http.StatusOK, body)
}

func (h *StockHandlers) ListStockForItem(c echo.Context) error {
	name, err := common.PathParam(c, "item")
	if err != nil {
		return err
	}
	stocks, err := h.stockService.ListByItem(c.Request().Context(), name)
	if err != nil {
		return err
	}

	body := hypermedia.New(nil).
		Set("stocks", stockList(stocks)).
		AddControl("self", hypermedia.StockForItemURL(name)).
		AddControlGetItem(name).
		AddControlAllStock()
	return mason(c, http.StatusOK, body)
}

func (h *StockHandlers) ListStockForWarehouse(c echo.Context) error {
	id, err := common.ParseID(c, "warehouse_id")
	if err != nil {
		return err
	}
	stocks, err := h.stockService.ListByWarehouse(c.Request().Context(), id)
	if err != nil {
		return err
	}

	body := hypermedia.New(nil).
		Set("stocks", stockList(stocks)).
		AddControl("self", hypermedia.StockForWarehouseURL(id)).
		AddControlGetWarehouse(id).
		AddControlAllStock()
	return mason(c, http.StatusOK, body)
}

func (h *StockHandlers) CreateStock(c echo.Context) error {
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	doc, err := models.Decode[models.StockDocument](models.StockSchema(), raw)
	if err != nil {
		return err
	}
	if err := h.apiKeys.Check(c, models.WarehouseScope(*doc.WarehouseID)); err != nil {
		return err
	}

	stock, err := h.stockService.Create(c.Request().Context(), doc)
	if err != nil {
		return err
	}
	return created(c, hypermedia.StockURL(stock.WarehouseID, stock.ItemName))
}

func (h *StockHandlers) stockKey(c echo.Context) (int, string, error) {
	id, err := common.ParseID(c, "warehouse_id")
	if err != nil {
		return 0, "", err
	}
	name, err := common.PathParam(c, "item")
	if err != nil {
		return 0, "", err
	}
	return id, name, nil
}

func (h *StockHandlers) GetStock(c echo.Context) error {
	warehouseID, itemName, err := h.stockKey(c)
	if err != nil {
		return err
	}
	stock, err := h.stockService.Get(c.Request().Context(), warehouseID, itemName)
	if err != nil {
		return err
	}

	self := hypermedia.StockURL(stock.WarehouseID, stock.ItemName)
	body := hypermedia.New(stock).
		AddControl("self", self).
		AddControl("profile", hypermedia.StockProfile).
		AddControl("collection", hypermedia.StocksURL()).
		AddControlPut("Modify this stock entry", self, models.StockSchema()).
		AddControlDelete("Delete this stock entry", self).
		AddControlGetItem(stock.ItemName).
		AddControlGetWarehouse(stock.WarehouseID).
		AddControlStockForItem(stock.ItemName).
		AddControlStockForWarehouse(stock.WarehouseID)
	return mason(c, http.StatusOK, body)
}

func (h *StockHandlers) UpdateStock(c echo.Context) error {
	warehouseID, itemName, err := h.stockKey(c)
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	doc, err := models.Decode[models.StockDocument](models.StockSchema(), raw)
	if err != nil {
		return err
	}
	if doc.WarehouseID != nil && *doc.WarehouseID != warehouseID {
		if err := h.apiKeys.Check(c, models.WarehouseScope(*doc.WarehouseID)); err != nil {
			return err
		}
	}

	if _, err := h.stockService.Update(c.Request().Context(), warehouseID, itemName, doc); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *StockHandlers) DeleteStock(c echo.Context) error {
	warehouseID, itemName, err := h.stockKey(c)
	if err != nil {
		return err
	}
	if err := h.stockService.Delete(c.Request().Context(), warehouseID, itemName); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
