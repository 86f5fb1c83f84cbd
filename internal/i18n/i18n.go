// Package i18n translates user-facing API messages.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

var messages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:      "Invalid request",
		ErrKeyInvalidRequestBody:  "Invalid request body",
		ErrKeyInternalError:       "An unexpected error occurred",
		ErrKeyAPIKeyRequired:      "API key is required",
		ErrKeyInvalidAPIKey:       "Invalid API key",
		ErrKeyForbidden:           "Forbidden",
		ErrKeyNotFound:            "Not found",
		ErrKeyRateLimitExceeded:   "Too many requests, please try again later",
		ErrKeyInvalidToken:        "Invalid or expired token",
		ErrKeyTokenRequired:       "Authentication token is required",
		ErrKeyTimeout:             "The request took too long",
		ErrKeyInvalidField:        "Invalid value for %s",
		ErrKeyNoFeasibleSolution:  "No feasible lot size exists for these parameters",
		ErrKeyNonConvexResult:     "The critical point is not a minimum of the cost function",
		ErrKeyHistoryUnavailable:  "Optimisation history is temporarily unavailable",
		ErrKeyDemandFileRequired:  "A demand CSV file is required",
		ErrKeyInvalidDemandCSV:    "The demand CSV could not be read",
		ErrKeyInvalidHistoryQuery: "Invalid history query",
	},
	"pt": {
		ErrKeyInvalidRequest:      "Requisição inválida",
		ErrKeyInvalidRequestBody:  "Corpo da requisição inválido",
		ErrKeyInternalError:       "Ocorreu um erro inesperado",
		ErrKeyAPIKeyRequired:      "Chave de API é obrigatória",
		ErrKeyInvalidAPIKey:       "Chave de API inválida",
		ErrKeyForbidden:           "Proibido",
		ErrKeyNotFound:            "Não encontrado",
		ErrKeyRateLimitExceeded:   "Muitas requisições, tente novamente mais tarde",
		ErrKeyInvalidToken:        "Token inválido ou expirado",
		ErrKeyTokenRequired:       "Token de autenticação é obrigatório",
		ErrKeyTimeout:             "A requisição demorou demais",
		ErrKeyInvalidField:        "Valor inválido para %s",
		ErrKeyNoFeasibleSolution:  "Não existe lote viável para estes parâmetros",
		ErrKeyNonConvexResult:     "O ponto crítico não é um mínimo da função de custo",
		ErrKeyHistoryUnavailable:  "O histórico de otimizações está temporariamente indisponível",
		ErrKeyDemandFileRequired:  "É necessário um arquivo CSV de demanda",
		ErrKeyInvalidDemandCSV:    "Não foi possível ler o CSV de demanda",
		ErrKeyInvalidHistoryQuery: "Consulta de histórico inválida",
	},
}

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the built-in messages.
func NewTranslator() *Translator {
	return &Translator{messages: messages}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, falling back to
// DefaultLocale and then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Translatef formats the translated message with args.
func (t *Translator) Translatef(key, locale string, args ...interface{}) string {
	return fmt.Sprintf(t.Translate(key, locale), args...)
}

// Supported reports whether locale has a message table.
func Supported(locale string) bool {
	_, ok := messages[locale]
	return ok
}

// GetLocale returns the first supported language of the Accept-Language header.
func GetLocale(c *gin.Context) string {
	for _, part := range strings.Split(c.GetHeader(AcceptLanguageHeader), ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		lang = strings.ToLower(lang)
		if Supported(lang) {
			return lang
		}
	}
	return DefaultLocale
}
