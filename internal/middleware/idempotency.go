package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader is the HTTP header carrying the client's idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long a response can be replayed.
	IdempotencyKeyTTL = 5 * time.Minute

	idempotencyReplayedHeader = "X-Idempotency-Replayed"
	maxIdempotentBody         = 10 << 20
)

// Idempotency replays the stored response of a POST retried with the same
// Idempotency-Key, caller, path and body. Only 2xx responses are stored.
type Idempotency struct {
	cache *idempotencyCache
}

// NewIdempotency creates the middleware state. Call Stop on shutdown.
func NewIdempotency(ttl time.Duration) *Idempotency {
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	return &Idempotency{cache: newIdempotencyCache(ttl)}
}

// Stop ends the background cleanup.
func (i *Idempotency) Stop() {
	i.cache.Stop()
}

// Handler returns the gin middleware.
func (i *Idempotency) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey, err := idempotencyCacheKey(c, key)
		if err != nil {
			c.Next()
			return
		}

		if cached, ok := i.cache.Get(cacheKey); ok {
			c.Header(idempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		rec := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		// Errors collected on the context are rendered further out in the chain,
		// so nothing has been written for them yet.
		if len(c.Errors) > 0 || !rec.Written() {
			return
		}
		status := rec.Status()
		if status >= 200 && status < 300 {
			i.cache.Set(cacheKey, &cachedResponse{
				StatusCode:  status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			})
		}
	}
}

// idempotencyCacheKey hashes the key with the caller, path and body, then
// restores the body for the handler.
func idempotencyCacheKey(c *gin.Context, key string) (string, error) {
	h := sha256.New()
	for _, part := range []string{key, GetSubject(c), c.Request.URL.Path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	if c.Request.Body != nil {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxIdempotentBody))
		if err != nil {
			return "", err
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
