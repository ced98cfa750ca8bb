package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"inventorymanager/internal/common"
	"inventorymanager/internal/hypermedia"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// mason writes doc with the hypermedia media type.
func mason(c echo.Context, status int, doc *hypermedia.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return c.Blob(status, hypermedia.MediaType, body)
}

func created(c echo.Context, location string) error {
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.NoContent(http.StatusCreated)
}

func readBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", common.ErrValidation)
	}
	return body, nil
}

const forbiddenDetail = "A valid API key is required for this operation"

// classify maps an error to the status and envelope text of its response.
func classify(err error) (status int, title, detail string) {
	var he *echo.HTTPError
	switch {
	case errors.Is(err, common.ErrForbidden):
		// The reason stays in the log; every denial looks the same.
		return http.StatusForbidden, "Forbidden", forbiddenDetail
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, "Invalid JSON document", err.Error()
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, "Not found", err.Error()
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict, "Already exists", err.Error()
	case errors.Is(err, common.ErrReferenced):
		return http.StatusConflict, "Still referenced", err.Error()
	case errors.As(err, &he):
		return he.Code, http.StatusText(he.Code), fmt.Sprint(he.Message)
	}
	return http.StatusInternalServerError, "Internal server error", ""
}

// ErrorHandler renders every failed request as a Mason error envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, title, detail := classify(err)
	switch {
	case status >= http.StatusInternalServerError:
		log.Error().Err(err).Str("method", c.Request().Method).Str("path", c.Request().URL.Path).Msg("request failed")
	case status == http.StatusForbidden:
		log.Info().Err(err).Str("path", c.Request().URL.Path).Msg("api key rejected")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = mason(c, status, hypermedia.NewError(title, detail))
	}
	if err != nil {
		log.Error().Err(err).Msg("write error response")
	}
}
