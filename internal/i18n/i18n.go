// Package i18n translates user-facing API messages.
package i18n

import (
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

// Supported reports whether locale has a message table.
func (t *Translator) Supported(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale picks the first language of the Accept-Language header,
// reduced to its base tag, when it is supported.
func GetLocale(c *gin.Context) string {
	header := c.GetHeader(AcceptLanguageHeader)
	if header == "" {
		return DefaultLocale
	}

	first := strings.TrimSpace(strings.SplitN(header, ",", 2)[0])
	lang := strings.SplitN(first, ";", 2)[0]
	if idx := strings.Index(lang, "-"); idx > 0 {
		lang = lang[:idx]
	}
	lang = strings.ToLower(strings.TrimSpace(lang))

	if GetTranslator().Supported(lang) {
		return lang
	}
	return DefaultLocale
}

var messages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:      "Invalid request",
		ErrKeyInvalidRequestBody:  "Invalid request body",
		ErrKeyValidation:          "Invalid planning preferences",
		ErrKeyInvalidCatalog:      "The catalog cannot be used for planning",
		ErrKeyInternalError:       "An unexpected error occurred",
		ErrKeyInvariantViolation:  "The computed plan failed verification",
		ErrKeyUnauthorized:        "Unauthorized",
		ErrKeyAPIKeyRequired:      "API key is required",
		ErrKeyInvalidAPIKey:       "Invalid API key",
		ErrKeyTokenRequired:       "Authentication token is required",
		ErrKeyInvalidToken:        "Invalid or expired token",
		ErrKeyForbidden:           "Forbidden",
		ErrKeyNotFound:            "Not found",
		ErrKeyNoActiveCatalog:     "No active catalog is stored; send a catalog with the request",
		ErrKeyConflict:            "Conflict",
		ErrKeyRateLimitExceeded:   "Too many requests, please try again later",
		ErrKeyTimeout:             "Request timeout",
		ErrKeyServiceUnavailable:  "Service temporarily unavailable",
		ErrKeyStorageNotAvailable: "Catalog storage is not configured",
	},
	"pt": {
		ErrKeyInvalidRequest:      "Requisição inválida",
		ErrKeyInvalidRequestBody:  "Corpo da requisição inválido",
		ErrKeyValidation:          "Preferências de planejamento inválidas",
		ErrKeyInvalidCatalog:      "O catálogo não pode ser usado para o planejamento",
		ErrKeyInternalError:       "Ocorreu um erro inesperado",
		ErrKeyInvariantViolation:  "O plano calculado falhou na verificação",
		ErrKeyUnauthorized:        "Não autorizado",
		ErrKeyAPIKeyRequired:      "Chave de API é obrigatória",
		ErrKeyInvalidAPIKey:       "Chave de API inválida",
		ErrKeyTokenRequired:       "Token de autenticação é obrigatório",
		ErrKeyInvalidToken:        "Token inválido ou expirado",
		ErrKeyForbidden:           "Proibido",
		ErrKeyNotFound:            "Não encontrado",
		ErrKeyNoActiveCatalog:     "Nenhum catálogo ativo armazenado; envie um catálogo na requisição",
		ErrKeyConflict:            "Conflito",
		ErrKeyRateLimitExceeded:   "Muitas requisições, tente novamente mais tarde",
		ErrKeyTimeout:             "Tempo da requisição esgotado",
		ErrKeyServiceUnavailable:  "Serviço temporariamente indisponível",
		ErrKeyStorageNotAvailable: "O armazenamento de catálogos não está configurado",
	},
	"nl": {
		ErrKeyInvalidRequest:      "Ongeldig verzoek",
		ErrKeyInvalidRequestBody:  "Ongeldige aanvraag body",
		ErrKeyValidation:          "Ongeldige planningsvoorkeuren",
		ErrKeyInvalidCatalog:      "De catalogus kan niet worden gebruikt voor planning",
		ErrKeyInternalError:       "Er is een onverwachte fout opgetreden",
		ErrKeyInvariantViolation:  "Het berekende plan is niet door de controle gekomen",
		ErrKeyUnauthorized:        "Niet geautoriseerd",
		ErrKeyAPIKeyRequired:      "API-sleutel is vereist",
		ErrKeyInvalidAPIKey:       "Ongeldige API-sleutel",
		ErrKeyTokenRequired:       "Authenticatietoken is vereist",
		ErrKeyInvalidToken:        "Ongeldig of verlopen token",
		ErrKeyForbidden:           "Verboden",
		ErrKeyNotFound:            "Niet gevonden",
		ErrKeyNoActiveCatalog:     "Er is geen actieve catalogus opgeslagen; stuur een catalogus mee",
		ErrKeyConflict:            "Conflict",
		ErrKeyRateLimitExceeded:   "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyTimeout:             "Time-out van het verzoek",
		ErrKeyServiceUnavailable:  "Service tijdelijk niet beschikbaar",
		ErrKeyStorageNotAvailable: "Catalogusopslag is niet geconfigureerd",
	},
}
