// Package i18n provides internationalization support for the sale pack service.
// It handles translation of user-facing messages and error messages.
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
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "en-US,en;q=0.9,pt;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		// Extract base language (e.g., "en" from "en-US")
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		// Normalize to lowercase
		lang = strings.ToLower(lang)
		// Validate it's a supported locale
		if _, ok := GetTranslator().messages[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":          "Invalid request",
			"error.invalid_request_body":     "Invalid request body",
			"error.internal_error":           "An unexpected error occurred",
			"error.forbidden":                "Forbidden",
			"error.not_found":                "Not found",
			"error.rate_limit_exceeded":      "Too many requests, please try again later",
			"error.conflict":                 "Conflict",
			"error.timeout":                  "Request timeout",
			"error.service_unavailable":      "Service temporarily unavailable",
			"error.validation":               "Request validation failed",
			"error.order_not_found":          "Sale order not found",
			"error.order_line_not_found":     "Order line not found",
			"error.product_not_found":        "Product not found",
			"error.pricelist_not_found":      "Pricelist not found",
			"error.invalid_product":          "Invalid product",
			"error.invalid_pricelist":        "Invalid pricelist",
			"error.pack_cycle":               "A pack cannot contain itself",
			"error.pack_line_not_modifiable": "You can not change this line because is part of a pack included in this order",
			"error.child_line_creation":      "Pack component lines are created by the pack only",
			"title.parent_product":           "Parent Product",
		},
		"pt": {
			"error.invalid_request":          "Requisição inválida",
			"error.invalid_request_body":     "Corpo da requisição inválido",
			"error.internal_error":           "Ocorreu um erro inesperado",
			"error.forbidden":                "Proibido",
			"error.not_found":                "Não encontrado",
			"error.rate_limit_exceeded":      "Muitas requisições, tente novamente mais tarde",
			"error.conflict":                 "Conflito",
			"error.timeout":                  "Tempo limite da requisição excedido",
			"error.service_unavailable":      "Serviço temporariamente indisponível",
			"error.validation":               "Falha na validação da requisição",
			"error.order_not_found":          "Pedido de venda não encontrado",
			"error.order_line_not_found":     "Linha do pedido não encontrada",
			"error.product_not_found":        "Produto não encontrado",
			"error.pricelist_not_found":      "Lista de preços não encontrada",
			"error.invalid_product":          "Produto inválido",
			"error.invalid_pricelist":        "Lista de preços inválida",
			"error.pack_cycle":               "Um pacote não pode conter a si mesmo",
			"error.pack_line_not_modifiable": "Não é possível alterar esta linha porque ela faz parte de um pacote incluído neste pedido",
			"error.child_line_creation":      "Linhas de componentes são criadas apenas pelo pacote",
			"title.parent_product":           "Produto Pai",
		},
		"nl": {
			"error.invalid_request":          "Ongeldig verzoek",
			"error.invalid_request_body":     "Ongeldige aanvraag body",
			"error.internal_error":           "Er is een onverwachte fout opgetreden",
			"error.forbidden":                "Verboden",
			"error.not_found":                "Niet gevonden",
			"error.rate_limit_exceeded":      "Te veel verzoeken, probeer het later opnieuw",
			"error.conflict":                 "Conflict",
			"error.timeout":                  "Time-out van verzoek",
			"error.service_unavailable":      "Dienst tijdelijk niet beschikbaar",
			"error.validation":               "Validatie van het verzoek mislukt",
			"error.order_not_found":          "Verkooporder niet gevonden",
			"error.order_line_not_found":     "Orderregel niet gevonden",
			"error.product_not_found":        "Product niet gevonden",
			"error.pricelist_not_found":      "Prijslijst niet gevonden",
			"error.invalid_product":          "Ongeldig product",
			"error.invalid_pricelist":        "Ongeldige prijslijst",
			"error.pack_cycle":               "Een pakket kan zichzelf niet bevatten",
			"error.pack_line_not_modifiable": "U kunt deze regel niet wijzigen omdat deze deel uitmaakt van een pakket in deze order",
			"error.child_line_creation":      "Componentregels worden alleen door het pakket aangemaakt",
			"title.parent_product":           "Bovenliggend product",
		},
	}
}
