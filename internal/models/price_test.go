package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceDiscountedRoundsToWholeAmount(t *testing.T) {
	amount := 999.0
	p := Price{Amount: &amount, Currency: "EGP"}

	discounted := p.Discounted(15)
	// 999 * 0.85 = 849.15, rounds to 849
	assert.Equal(t, 849.0, *discounted.Amount)
	assert.Equal(t, "EGP", discounted.Currency)

	// The original is untouched
	assert.Equal(t, 999.0, *p.Amount)
}

func TestPriceDiscountedKeepsTradePricing(t *testing.T) {
	p := Price{Currency: "EGP"}

	discounted := p.Discounted(50)
	assert.Nil(t, discounted.Amount)
}

func TestPriceDisplay(t *testing.T) {
	amount := 120.0
	p := Price{Amount: &amount, Currency: "EGP", Unit: Bilingual{Ar: "متر", En: "meter"}}

	assert.Equal(t, "120 EGP/meter", p.Display("en"))
	assert.Equal(t, "120 EGP/متر", p.Display("ar"))

	onRequest := Price{}
	assert.Equal(t, "Trade Pricing", onRequest.Display("en"))
	assert.Equal(t, "سعر خاص للتجار", onRequest.Display("ar"))
}

func TestBilingualFallsBackAcrossLanguages(t *testing.T) {
	b := Bilingual{En: "Aluminum"}
	assert.Equal(t, "Aluminum", b.In("ar"))

	b = Bilingual{Ar: "ألومنيوم"}
	assert.Equal(t, "ألومنيوم", b.In("en"))
}
