package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const displayDateLayout = "Jan 2, 2006 3:04 PM"

// FormatDate renders a timestamp for display. The zero time renders as "".
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(displayDateLayout)
}

var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"jpy": "¥",
}

// currencies without a minor unit
var zeroDecimalCurrencies = map[string]bool{
	"jpy": true,
	"krw": true,
}

// FormatPrice renders an amount in major units, e.g. "$12.50" or "1500 JPY"
// when no symbol is known.
func FormatPrice(amount float64, currency string) string {
	places := int32(2)
	if zeroDecimalCurrencies[currency] {
		places = 0
	}
	value := decimal.NewFromFloat(amount).StringFixed(places)
	if sym, ok := currencySymbols[currency]; ok {
		return sym + value
	}
	return fmt.Sprintf("%s %s", value, strings.ToUpper(currency))
}

// ToMinorUnits converts a major-unit price to the integer amount payment
// providers expect (cents for usd, yen for jpy).
func ToMinorUnits(amount float64, currency string) int64 {
	d := decimal.NewFromFloat(amount)
	if !zeroDecimalCurrencies[currency] {
		d = d.Mul(decimal.NewFromInt(100))
	}
	return d.Round(0).IntPart()
}
