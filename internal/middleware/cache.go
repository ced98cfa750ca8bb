package middleware

import (
	"bytes"
	"net/http"

	"inventorymanager/internal/caching"
	"inventorymanager/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CacheHeader reports HIT or MISS on cacheable requests.
const CacheHeader = "X-Cache"

// bodyRecorder tees the response so a 200 can be stored after the handler
// returns.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *bodyRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// ResponseCache serves GET requests from cache keyed by the escaped path.
// Only 200 responses are stored. A cache failure falls through to the
// handler.
func ResponseCache(cache caching.ResponseCache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet {
				return next(c)
			}
			key := req.URL.EscapedPath()
			ctx := req.Context()

			hit, err := cache.Get(ctx, key)
			switch {
			case err != nil:
				metrics.CacheLookups.WithLabelValues("error").Inc()
				log.Warn().Err(err).Str("key", key).Msg("response cache read failed")
			case hit != nil:
				metrics.CacheLookups.WithLabelValues("hit").Inc()
				c.Response().Header().Set(CacheHeader, "HIT")
				return c.Blob(hit.Status, hit.ContentType, hit.Body)
			default:
				metrics.CacheLookups.WithLabelValues("miss").Inc()
			}

			c.Response().Header().Set(CacheHeader, "MISS")
			rec := &bodyRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				return err
			}
			if rec.status != http.StatusOK {
				return nil
			}
			entry := &caching.CachedResponse{
				Status:      rec.status,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        rec.body.Bytes(),
			}
			if err := cache.Set(ctx, key, entry); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("response cache write failed")
			}
			return nil
		}
	}
}
