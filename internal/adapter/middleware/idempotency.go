package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"asset-custody/pkg/id"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"

	// how long the "in-progress" marker lives if the handler never finishes
	provisionalLockTTL = 60 * time.Second
	// allowed client/server clock skew for Ax-Request-At
	maxClockSkew = 10 * time.Minute
)

type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// Idempotency replays the stored response when a client retries a mutating
// call with the same Ax-Request-Id. Calls without the header pass straight
// through. Keys are scoped by method, route and X-User-Id; the stored hash
// covers the concrete path and the body.
// Ax-Request-At must be epoch (s or ms) or RFC3339 with a zone.
func Idempotency(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			method := req.Method

			switch method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqID := strings.TrimSpace(req.Header.Get(HeaderRequestID))
			if reqID == "" {
				return next(c)
			}
			if !id.Valid(reqID) {
				return c.JSON(http.StatusBadRequest, errBody("invalid Ax-Request-Id format"))
			}

			reqAt, err := parseAxRequestAt(req.Header.Get(HeaderRequestAt))
			if err != nil {
				return c.JSON(http.StatusBadRequest, errBody(err.Error()))
			}
			now := nowUTC()
			if reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
				return c.JSON(http.StatusBadRequest, errBody("Ax-Request-At too skewed"))
			}

			userID, ok := parseUserID(req.Header.Get(HeaderUserID))
			if !ok {
				return c.JSON(http.StatusBadRequest, errBody("idempotent calls need a valid X-User-Id"))
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := requestHash(req.URL.Path, body)

			key := buildKey(method, c.Path(), userID, strings.ToLower(reqID))
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			entry := idempEntry{
				InProgress:  true,
				BodySHA256:  bhash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}
			ok, err = provisionalSet(ctx, rdb, key, entry)
			if err != nil {
				logrus.WithError(err).WithField("key", key).Error("idempotency store unavailable")
				return c.JSON(http.StatusServiceUnavailable, errBody("idempotency store unavailable"))
			}
			if !ok {
				cur, errLoad := loadEntry(ctx, rdb, key)
				if errLoad != nil {
					logrus.WithError(errLoad).WithField("key", key).Warn("idempotency entry load failed")
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return c.JSON(http.StatusConflict, errBody("Ax-Request-Id reused with a different path or body"))
				}
				if !cur.InProgress && cur.Code != 0 {
					c.Response().Header().Set("Ax-Idempotent-Replay", "true")
					if len(cur.Body) == 0 {
						return c.NoContent(cur.Code)
					}
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return c.JSON(http.StatusConflict, errBody("request is already in progress"))
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			// server errors are not final; let the client retry them
			if rec.code >= http.StatusInternalServerError {
				_ = rdb.Del(context.Background(), key).Err()
				return nil
			}
			final := idempEntry{
				InProgress:  false,
				Code:        rec.code,
				Body:        rec.buf.Bytes(),
				BodySHA256:  bhash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}
			if err := saveFinal(context.Background(), rdb, key, final, ttl); err != nil {
				logrus.WithError(err).WithField("key", key).Warn("idempotency final save failed")
			}
			return nil
		}
	}
}
