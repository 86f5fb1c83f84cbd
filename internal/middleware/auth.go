package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/epq-service/internal/domain/dto"
	"github.com/guttosm/epq-service/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"

	// SubjectKey holds the authenticated caller in the gin context.
	SubjectKey ContextKey = "subject"
	// ScopesKey holds the caller's granted scopes in the gin context.
	ScopesKey ContextKey = "scopes"

	bearerPrefix = "Bearer "
)

// APIKeys validates static API keys given in plain text or as bcrypt hashes.
type APIKeys struct {
	plain  [][]byte
	hashes [][]byte
}

// NewAPIKeys builds a key set. Blank entries are ignored.
func NewAPIKeys(plain, bcryptHashes []string) *APIKeys {
	k := &APIKeys{}
	for _, p := range plain {
		if p = strings.TrimSpace(p); p != "" {
			k.plain = append(k.plain, []byte(p))
		}
	}
	for _, h := range bcryptHashes {
		if h = strings.TrimSpace(h); h != "" {
			k.hashes = append(k.hashes, []byte(h))
		}
	}
	return k
}

// Empty reports whether no key is configured.
func (k *APIKeys) Empty() bool {
	return k == nil || len(k.plain)+len(k.hashes) == 0
}

// Valid reports whether key matches a configured key.
func (k *APIKeys) Valid(key string) bool {
	if k == nil || key == "" {
		return false
	}
	candidate := []byte(key)
	for _, p := range k.plain {
		if subtle.ConstantTimeCompare(p, candidate) == 1 {
			return true
		}
	}
	for _, h := range k.hashes {
		if bcrypt.CompareHashAndPassword(h, candidate) == nil {
			return true
		}
	}
	return false
}

// KeySubject identifies an API key caller without exposing the key.
func KeySubject(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "key:" + hex.EncodeToString(sum[:6])
}

// AuthConfig configures Authenticate.
type AuthConfig struct {
	APIKeys   *APIKeys
	JWTSecret []byte
}

// Enabled reports whether any credential source is configured.
func (cfg AuthConfig) Enabled() bool {
	return !cfg.APIKeys.Empty() || len(cfg.JWTSecret) > 0
}

// Authenticate accepts either a bearer token or an API key and records the
// caller's subject and scopes. With nothing configured every request passes.
// API keys carry every scope.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	if !cfg.Enabled() {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" && len(cfg.JWTSecret) > 0 {
			token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
			if !strings.HasPrefix(header, bearerPrefix) || token == "" {
				abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
				return
			}
			claims, err := ParseToken(cfg.JWTSecret, token)
			if err != nil {
				abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
				return
			}
			setCaller(c, claims.Subject, claims.Scopes)
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}
		switch {
		case key == "" && cfg.APIKeys.Empty():
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyTokenRequired)
			return
		case key == "":
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyAPIKeyRequired)
			return
		case !cfg.APIKeys.Valid(key):
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidAPIKey)
			return
		}

		setCaller(c, KeySubject(key), AllScopes)
		c.Next()
	}
}

func setCaller(c *gin.Context, subject string, scopes []string) {
	c.Set(string(SubjectKey), subject)
	c.Set(string(ScopesKey), scopes)
}

// GetSubject returns the authenticated caller, or "" for anonymous requests.
func GetSubject(c *gin.Context) string {
	return c.GetString(string(SubjectKey))
}
