package handlers

import (
	"net/http"

	"inventorymanager/internal/common"
	"inventorymanager/internal/hypermedia"
	"inventorymanager/internal/models"
	"inventorymanager/internal/services"

	"github.com/labstack/echo/v4"
)

// ItemHandlers serves /api/items/.
type ItemHandlers struct {
	itemService services.ItemService
}

func NewItemHandlers(itemService services.ItemService) *ItemHandlers {
	return &ItemHandlers{
		itemService: itemService,
	}
}

func itemSummary(item *models.Item) *hypermedia.Document {
	return hypermedia.NewDocument(item).
		AddControl("self", hypermedia.ItemURL(item.Name)).
		AddControl("profile", hypermedia.ItemProfile)
}

func (h *ItemHandlers) ListItems(c echo.Context) error {
	items, err := h.itemService.List(c.Request().Context())
	if err != nil {
		return err
	}

	members := make([]*hypermedia.Document, 0, len(items))
	for _, item := range items {
		members = append(members, itemSummary(item))
	}

	body := hypermedia.New(nil).
		Set("items", members).
		AddControl("self", hypermedia.ItemsURL()).
		AddControlPost(hypermedia.NS+":add-item", "Add new item", hypermedia.ItemsURL(), models.ItemSchema()).
		AddControlAllCatalogue().
		AddControlAllStock().
		AddControlAllWarehouses()
	return mason(c, http.StatusOK, body)
}

func (h *ItemHandlers) CreateItem(c echo.Context) error {
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	doc, err := models.Decode[models.ItemDocument](models.ItemSchema(), raw)
	if err != nil {
		return err
	}

	item, err := h.itemService.Create(c.Request().Context(), doc)
	if err != nil {
		return err
	}
	return created(c, hypermedia.ItemURL(item.Name))
}

func (h *ItemHandlers) GetItem(c echo.Context) error {
	name, err := common.PathParam(c, "item")
	if err != nil {
		return err
	}
	item, err := h.itemService.Get(c.Request().Context(), name)
	if err != nil {
		return err
	}

	self := hypermedia.ItemURL(item.Name)
	body := hypermedia.New(item).
		AddControl("self", self).
		AddControl("profile", hypermedia.ItemProfile).
		AddControl("collection", hypermedia.ItemsURL()).
		AddControlPut("Modify this item", self, models.ItemSchema()).
		AddControlDelete("Delete this item", self).
		AddControlAllCatalogue().
		AddControlAllStock().
		AddControlCatalogueForItem(item.Name).
		AddControlStockForItem(item.Name)
	return mason(c, http.StatusOK, body)
}

func (h *ItemHandlers) UpdateItem(c echo.Context) error {
	name, err := common.PathParam(c, "item")
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	doc, err := models.Decode[models.ItemDocument](models.ItemSchema(), raw)
	if err != nil {
		return err
	}

	if _, err := h.itemService.Update(c.Request().Context(), name, doc); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ItemHandlers) DeleteItem(c echo.Context) error {
	name, err := common.PathParam(c, "item")
	if err != nil {
		return err
	}
	if err := h.itemService.Delete(c.Request().Context(), name); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
