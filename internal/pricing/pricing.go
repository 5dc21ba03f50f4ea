package pricing

import "github.com/shopspring/decimal"

var thousand = decimal.NewFromInt(1000)

// Normalize applies the marketplace price fixup. The upstream stores some
// prices in full rupiah and some in thousands; anything below 1000 is
// assumed to be the latter and scaled up. This is a documented workaround
// for inconsistent unit storage upstream, kept in one place so every page
// of the gateway displays the same number for the same raw value.
func Normalize(raw decimal.Decimal) decimal.Decimal {
	if raw.LessThan(thousand) {
		return raw.Mul(thousand)
	}
	return raw
}

// Min returns the lowest of the given prices, normalized. The second return
// is false when there are no prices at all, which callers must surface as
// "price unknown" rather than inventing a number.
func Min(prices []decimal.Decimal) (decimal.Decimal, bool) {
	if len(prices) == 0 {
		return decimal.Zero, false
	}
	min := prices[0]
	for _, p := range prices[1:] {
		if p.LessThan(min) {
			min = p
		}
	}
	return Normalize(min), true
}
