package middleware

import (
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// CanonicalPath runs before routing. It appends the trailing slash every
// route is registered with and re-escapes each segment the way the API's
// own links do, so every spelling of a resource path routes and caches
// under the one key its invalidation uses.
func CanonicalPath() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := c.Request().URL
			raw, path, ok := canonicalize(u.EscapedPath())
			if ok {
				u.RawPath = raw
				u.Path = path
			}
			return next(c)
		}
	}
}

// canonicalize returns the escaped and unescaped forms of p with every
// segment in url.PathEscape spelling and a trailing slash. ok is false when
// a segment holds an invalid escape; such paths are left for the router.
func canonicalize(p string) (raw, path string, ok bool) {
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	segments := strings.Split(p, "/")
	escaped := make([]string, len(segments))
	plain := make([]string, len(segments))
	for i, seg := range segments {
		value, err := url.PathUnescape(seg)
		if err != nil {
			return "", "", false
		}
		plain[i] = value
		escaped[i] = url.PathEscape(value)
	}
	return strings.Join(escaped, "/"), strings.Join(plain, "/"), true
}
