// Package i18n translates user-facing API messages. Supported locales are en, pt and nl.
package i18n

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is used when the client states no supported preference.
	DefaultLocale = "en"
	// AcceptLanguageHeader carries the client's locale preferences.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator looks up messages by key and locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a Translator loaded with the built-in messages.
func NewTranslator() *Translator {
	return &Translator{messages: getDefaultMessages()}
}

// GetTranslator returns the process-wide Translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, falling back to the
// DefaultLocale message and finally to key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supports reports whether locale has its own message set.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale picks the supported locale the client prefers most, by
// Accept-Language quality. Region subtags are ignored, so pt-BR selects pt.
func GetLocale(c *gin.Context) string {
	tr := GetTranslator()
	for _, lang := range preferredLanguages(c.GetHeader(AcceptLanguageHeader)) {
		if tr.Supports(lang) {
			return lang
		}
	}
	return DefaultLocale
}

type weightedLanguage struct {
	lang string
	q    float64
}

// preferredLanguages parses an Accept-Language value into base language
// tags ordered by descending quality. Ties keep header order and q=0 entries
// are dropped.
func preferredLanguages(header string) []string {
	var ranked []weightedLanguage
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		lang, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(tag)), "-")
		if lang == "" || lang == "*" {
			continue
		}

		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				continue
			}
			q = parsed
		}
		if q <= 0 {
			continue
		}
		ranked = append(ranked, weightedLanguage{lang: lang, q: q})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].q > ranked[j].q })

	langs := make([]string, len(ranked))
	for i, r := range ranked {
		langs[i] = r.lang
	}
	return langs
}

func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			ErrKeyInvalidRequest:     "Invalid request",
			ErrKeyInvalidRequestBody: "Invalid request body",
			ErrKeyValidationFailed:   "Request validation failed",
			ErrKeyInternalError:      "An unexpected error occurred",
			ErrKeyUnauthorized:       "Unauthorized",
			ErrKeyAPIKeyRequired:     "API key is required",
			ErrKeyInvalidAPIKey:      "Invalid API key",
			ErrKeyInvalidToken:       "Invalid or expired token",
			ErrKeyTokenRequired:      "Authentication token is required",
			ErrKeyForbidden:          "Forbidden",
			ErrKeyScopeNotGranted:    "Requested scope is not granted to this client",
			ErrKeyNotFound:           "Not found",
			ErrKeyWarehouseNotFound:  "Warehouse not found",
			ErrKeyRateLimitExceeded:  "Too many requests, please try again later",
			ErrKeyConflict:           "A request with this idempotency key is already in progress",
			ErrKeyTimeout:            "Request timed out",
			ErrKeyCatalogUnavailable: "Warehouse catalog is not configured",
			ErrKeyStorageUnavailable: "Storage is temporarily unavailable",

			SuccessKeyAllocationPlanned:    "Order allocated",
			SuccessKeyAllocationImpossible: "Order cannot be fully shipped from the given warehouses",
			SuccessKeyWarehouseDeleted:     "Warehouse removed from the catalog",
		},
		"pt": {
			ErrKeyInvalidRequest:     "Requisição inválida",
			ErrKeyInvalidRequestBody: "Corpo da requisição inválido",
			ErrKeyValidationFailed:   "Falha na validação da requisição",
			ErrKeyInternalError:      "Ocorreu um erro inesperado",
			ErrKeyUnauthorized:       "Não autorizado",
			ErrKeyAPIKeyRequired:     "Chave de API é obrigatória",
			ErrKeyInvalidAPIKey:      "Chave de API inválida",
			ErrKeyInvalidToken:       "Token inválido ou expirado",
			ErrKeyTokenRequired:      "Token de autenticação é obrigatório",
			ErrKeyForbidden:          "Proibido",
			ErrKeyScopeNotGranted:    "O escopo solicitado não foi concedido a este cliente",
			ErrKeyNotFound:           "Não encontrado",
			ErrKeyWarehouseNotFound:  "Armazém não encontrado",
			ErrKeyRateLimitExceeded:  "Muitas requisições, tente novamente mais tarde",
			ErrKeyConflict:           "Uma requisição com esta chave de idempotência já está em andamento",
			ErrKeyTimeout:            "Tempo da requisição esgotado",
			ErrKeyCatalogUnavailable: "Catálogo de armazéns não configurado",
			ErrKeyStorageUnavailable: "Armazenamento temporariamente indisponível",

			SuccessKeyAllocationPlanned:    "Pedido alocado",
			SuccessKeyAllocationImpossible: "O pedido não pode ser totalmente enviado pelos armazéns informados",
			SuccessKeyWarehouseDeleted:     "Armazém removido do catálogo",
		},
		"nl": {
			ErrKeyInvalidRequest:     "Ongeldig verzoek",
			ErrKeyInvalidRequestBody: "Ongeldige aanvraag body",
			ErrKeyValidationFailed:   "Validatie van het verzoek mislukt",
			ErrKeyInternalError:      "Er is een onverwachte fout opgetreden",
			ErrKeyUnauthorized:       "Niet geautoriseerd",
			ErrKeyAPIKeyRequired:     "API-sleutel is vereist",
			ErrKeyInvalidAPIKey:      "Ongeldige API-sleutel",
			ErrKeyInvalidToken:       "Ongeldig of verlopen token",
			ErrKeyTokenRequired:      "Authenticatietoken is vereist",
			ErrKeyForbidden:          "Verboden",
			ErrKeyScopeNotGranted:    "De gevraagde scope is niet toegekend aan deze client",
			ErrKeyNotFound:           "Niet gevonden",
			ErrKeyWarehouseNotFound:  "Magazijn niet gevonden",
			ErrKeyRateLimitExceeded:  "Te veel verzoeken, probeer het later opnieuw",
			ErrKeyConflict:           "Een verzoek met deze idempotentiesleutel wordt al verwerkt",
			ErrKeyTimeout:            "Verzoek verlopen",
			ErrKeyCatalogUnavailable: "Magazijncatalogus is niet geconfigureerd",
			ErrKeyStorageUnavailable: "Opslag is tijdelijk niet beschikbaar",

			SuccessKeyAllocationPlanned:    "Bestelling toegewezen",
			SuccessKeyAllocationImpossible: "De bestelling kan niet volledig worden verzonden vanuit de opgegeven magazijnen",
			SuccessKeyWarehouseDeleted:     "Magazijn uit de catalogus verwijderd",
		},
	}
}
