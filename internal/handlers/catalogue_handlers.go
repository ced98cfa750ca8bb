package handlers

import (
	"net/http"

	"inventorymanager/internal/common"
	"inventorymanager/internal/hypermedia"
	"inventorymanager/internal/models"
	"inventorymanager/internal/services"

	"github.com/labstack/echo/v4"
)

type CatalogueHandlers struct {
	catalogueService services.CatalogueService
}

func NewCatalogueHandlers(catalogueService services.CatalogueService) *CatalogueHandlers {
	return &CatalogueHandlers{
		catalogueService: catalogueService,
	}
}

func catalogueList(entries []*models.CatalogueEntry) []*hypermedia.Document {
	members := make([]*hypermedia.Document, 0, len(entries))
	for _, e := range entries {
		members = append(members, hypermedia.NewDocument(e).
			AddControl("self", hypermedia.CatalogueEntryURL(e.SupplierName, e.ItemName)).
			AddControl("profile", hypermedia.CatalogueProfile).
			AddControlGetItem(e.ItemName))
	}
	return members
}

func (h *CatalogueHandlers) ListCatalogue(c echo.Context) error {
	entries, err := h.catalogueService.List(c.Request().Context())
	if err != nil {
		return err
	}

	body := hypermedia.New(nil).
		Set("catalogues", catalogueList(entries)).
		AddControl("self", hypermedia.CatalogueURL()).
		AddControlPost(hypermedia.NS+":add-catalogue", "Add new catalogue entry", hypermedia.CatalogueURL(), models.CatalogueSchema()).
		AddControlAllItems()
	return mason(c, http.StatusOK, body)
}

func (h *CatalogueHandlers) ListCatalogueForItem(c echo.Context) error {
	name, err := common.PathParam(c, "item")
	if err != nil {
		return err
	}
	entries, err := h.catalogueService.ListByItem(c.Request().Context(), name)
	if err != nil {
		return err
	}

	body := hypermedia.New(nil).
		Set("catalogues", catalogueList(entries)).
		AddControl("self", hypermedia.CatalogueForItemURL(name)).
		AddControlGetItem(name).
		AddControlAllCatalogue()
	return mason(c, http.StatusOK, body)
}

func (h *CatalogueHandlers) ListCatalogueForSupplier(c echo.Context) error {
	supplier, err := common.PathParam(c, "supplier")
	if err != nil {
		return err
	}
	entries, err := h.catalogueService.ListBySupplier(c.Request().Context(), supplier)
	if err != nil {
		return err
	}

	body := hypermedia.New(nil).
		Set("catalogues", catalogueList(entries)).
		AddControl("self", hypermedia.CatalogueForSupplierURL(supplier)).
		AddControlAllCatalogue()
	return mason(c, http.StatusOK, body)
}

func (h *CatalogueHandlers) CreateCatalogueEntry(c echo.Context) error {
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	doc, err := models.Decode[models.CatalogueDocument](models.CatalogueSchema(), raw)
	if err != nil {
		return err
	}

	entry, err := h.catalogueService.Create(c.Request().Context(), doc)
	if err != nil {
		return err
	}
	return created(c, hypermedia.CatalogueEntryURL(entry.SupplierName, entry.ItemName))
}

func (h *CatalogueHandlers) entryKey(c echo.Context) (string, string, error) {
	supplier, err := common.PathParam(c, "supplier")
	if err != nil {
		return "", "", err
	}
	name, err := common.PathParam(c, "item")
	if err != nil {
		return "", "", err
	}
	return supplier, name, nil
}

func (h *CatalogueHandlers) GetCatalogueEntry(c echo.Context) error {
	supplier, itemName, err := h.entryKey(c)
	if err != nil {
		return err
	}
	entry, err := h.catalogueService.Get(c.Request().Context(), supplier, itemName)
	if err != nil {
		return err
	}

	self := hypermedia.CatalogueEntryURL(entry.SupplierName, entry.ItemName)
	body := hypermedia.New(entry).
		AddControl("self", self).
		AddControl("profile", hypermedia.CatalogueProfile).
		AddControl("collection", hypermedia.CatalogueURL()).
		AddControlPut("Modify this catalogue entry", self, models.CatalogueSchema()).
		AddControlDelete("Delete this catalogue entry", self).
		AddControlGetItem(entry.ItemName).
		AddControlCatalogueForItem(entry.ItemName).
		AddControlCatalogueForSupplier(entry.SupplierName)
	return mason(c, http.StatusOK, body)
}

func (h *CatalogueHandlers) UpdateCatalogueEntry(c echo.Context) error {
	supplier, itemName, err := h.entryKey(c)
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	doc, err := models.Decode[models.CatalogueDocument](models.CatalogueSchema(), raw)
	if err != nil {
		return err
	}

	if _, err := h.catalogueService.Update(c.Request().Context(), supplier, itemName, doc); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogueHandlers) DeleteCatalogueEntry(c echo.Context) error {
	supplier, itemName, err := h.entryKey(c)
	if err != nil {
		return err
	}
	if err := h.catalogueService.Delete(c.Request().Context(), supplier, itemName); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
