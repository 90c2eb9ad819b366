// Package format renders prices and contact links for the templates.
package format

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
)

const NoPrice = "Consultar precio"

// COP formats a price in Colombian pesos without decimals, e.g. "$ 1.250.000".
// Nil or zero prices read as NoPrice.
func COP(p *float64) string {
	if p == nil || *p <= 0 {
		return NoPrice
	}
	return "$ " + humanize.FormatFloat("#.###,", *p)
}

// Digits keeps only the digits of a phone number.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// WhatsApp builds a wa.me click-to-chat link.
func WhatsApp(number, text string) string {
	u := "https://wa.me/" + Digits(number)
	if text != "" {
		u += "?text=" + url.QueryEscape(text)
	}
	return u
}

// ProductMessage is the enquiry text attached to a catalog card.
func ProductMessage(name string) string {
	return "Hola, me interesa el producto: " + name + ". ¿Podrían darme más información?"
}
