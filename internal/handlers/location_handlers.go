package handlers

import (
	"net/http"

	"inventorymanager/internal/common"
	"inventorymanager/internal/hypermedia"
	"inventorymanager/internal/models"
	"inventorymanager/internal/services"

	"github.com/labstack/echo/v4"
)

type LocationHandlers struct {
	locationService services.LocationService
}

func NewLocationHandlers(locationService services.LocationService) *LocationHandlers {
	return &LocationHandlers{
		locationService: locationService,
	}
}

func (h *LocationHandlers) ListLocations(c echo.Context) error {
	locations, err := h.locationService.List(c.Request().Context())
	if err != nil {
		return err
	}

	members := make([]*hypermedia.Document, 0, len(locations))
	for _, l := range locations {
		members = append(members, hypermedia.NewDocument(l).
			AddControl("self", hypermedia.LocationURL(l.ID)).
			AddControl("profile", hypermedia.LocationProfile))
	}

	body := hypermedia.New(nil).
		Set("locations", members).
		AddControl("self", hypermedia.LocationsURL()).
		AddControlPost(hypermedia.NS+":add-location", "Add new location", hypermedia.LocationsURL(), models.LocationSchema()).
		AddControlAllWarehouses()
	return mason(c, http.StatusOK, body)
}

func (h *LocationHandlers) CreateLocation(c echo.Context) error {
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	doc, err := models.Decode[models.LocationDocument](models.LocationSchema(), raw)
	if err != nil {
		return err
	}

	location, err := h.locationService.Create(c.Request().Context(), doc)
	if err != nil {
		return err
	}
	return created(c, hypermedia.LocationURL(location.ID))
}

func (h *LocationHandlers) GetLocation(c echo.Context) error {
	id, err := common.ParseID(c, "location_id")
	if err != nil {
		return err
	}
	location, err := h.locationService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	self := hypermedia.LocationURL(id)
	body := hypermedia.New(location).
		AddControl("self", self).
		AddControl("profile", hypermedia.LocationProfile).
		AddControl("collection", hypermedia.LocationsURL()).
		AddControlPut("Modify this location", self, models.LocationSchema()).
		AddControlDelete("Delete this location", self).
		AddControlAllWarehouses()
	return mason(c, http.StatusOK, body)
}

func (h *LocationHandlers) UpdateLocation(c echo.Context) error {
	id, err := common.ParseID(c, "location_id")
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	doc, err := models.Decode[models.LocationDocument](models.LocationSchema(), raw)
	if err != nil {
		return err
	}

	if _, err := h.locationService.Update(c.Request().Context(), id, doc); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LocationHandlers) DeleteLocation(c echo.Context) error {
	id, err := common.ParseID(c, "location_id")
	if err != nil {
		return err
	}
	if err := h.locationService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
