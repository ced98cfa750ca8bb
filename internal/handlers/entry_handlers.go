package handlers

import (
	"embed"
	"fmt"
	"net/http"

	"inventorymanager/internal/common"
	"inventorymanager/internal/hypermedia"

	"github.com/labstack/echo/v4"
)

//go:embed static
var static embed.FS

// EntryPoint is the API root linking every collection.
func EntryPoint(c echo.Context) error {
	body := hypermedia.New(nil).
		AddControlAllCatalogue().
		AddControlAllWarehouses().
		AddControlAllItems().
		AddControlAllStock().
		AddControlAllLocations()
	return mason(c, http.StatusOK, body)
}

// Profile serves the human readable description of a resource type.
func Profile(c echo.Context) error {
	resource, err := common.PathParam(c, "resource")
	if err != nil {
		return err
	}
	page, err := static.ReadFile("static/profiles/" + resource + ".html")
	if err != nil {
		return fmt.Errorf("profile %q: %w", resource, common.ErrNotFound)
	}
	return c.HTMLBlob(http.StatusOK, page)
}

func LinkRelations(c echo.Context) error {
	page, err := static.ReadFile("static/link-relations.html")
	if err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, page)
}
