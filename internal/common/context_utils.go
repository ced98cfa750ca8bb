package common

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// PathParam returns the unescaped value of a route segment. Routes are
// matched on the escaped path, so names containing '/' or '%' survive.
func PathParam(c echo.Context, name string) (string, error) {
	raw := c.Param(name)
	value, err := url.PathUnescape(raw)
	if err != nil || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%s %q: %w", name, raw, ErrNotFound)
	}
	return value, nil
}

// ParseID parses a positive int4 route segment written the way the API
// writes ids. Anything else ("02", "+2", out of range) cannot name an
// existing row and is reported as a lookup miss, so only the canonical
// spelling is ever cached.
func ParseID(c echo.Context, name string) (int, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 || strconv.FormatInt(id, 10) != raw {
		return 0, fmt.Errorf("%s %q: %w", name, raw, ErrNotFound)
	}
	return int(id), nil
}
