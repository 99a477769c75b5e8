package models

import (
	"fmt"
	"math"
	"strings"
)

// Bilingual is an Arabic/English text pair, stored as a single JSON column
// and serialized on the wire as {"ar": ..., "en": ...}.
type Bilingual struct {
	Ar string `json:"ar"`
	En string `json:"en"`
}

// In returns the text for the requested language, falling back to the
// other language when one side is empty.
func (b Bilingual) In(lang string) string {
	if strings.EqualFold(lang, "ar") {
		if b.Ar != "" {
			return b.Ar
		}
		return b.En
	}
	if b.En != "" {
		return b.En
	}
	return b.Ar
}

func (b Bilingual) IsZero() bool {
	return b.Ar == "" && b.En == ""
}

// Price is a structured product price: a numeric amount plus currency and an
// optional bilingual unit ("per meter", ...). A nil Amount means the price is
// quoted on request ("Trade Pricing" in the storefront). Keeping the amount
// numeric lets discount math work on numbers instead of parsing display
// strings.
type Price struct {
	Amount   *float64  `json:"amount"`
	Currency string    `json:"currency,omitempty"`
	Unit     Bilingual `json:"unit,omitempty"`
}

// Discounted returns a copy of the price with the percentage discount
// applied, rounded to a whole amount. Prices without a numeric amount are
// returned unchanged.
func (p Price) Discounted(percentage float64) Price {
	if p.Amount == nil {
		return p
	}
	amount := math.Round(*p.Amount * (1 - percentage/100))
	return Price{Amount: &amount, Currency: p.Currency, Unit: p.Unit}
}

// Display renders the price for one locale, e.g. "120 EGP" or the
// on-request marker when no amount is set.
func (p Price) Display(lang string) string {
	if p.Amount == nil {
		if strings.EqualFold(lang, "ar") {
			return "سعر خاص للتجار"
		}
		return "Trade Pricing"
	}
	s := fmt.Sprintf("%.0f", *p.Amount)
	if p.Currency != "" {
		s += " " + p.Currency
	}
	if unit := p.Unit.In(lang); unit != "" {
		s += "/" + unit
	}
	return s
}
