// Package pricing turns display prices into the best-effort numbers used for
// sorting and cart estimates. Nothing here is authoritative pricing.
package pricing

import (
	"regexp"

	"github.com/hardik88t/puredry/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	rangePattern  = regexp.MustCompile(`\$?(\d+(?:\.\d+)?)\s*-\s*\$?(\d+(?:\.\d+)?)`)
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
	two           = decimal.NewFromInt(2)
)

// UnitPrice resolves the estimate price for one unit: the explicit value,
// else the midpoint of a "$min - $max" range, else zero.
func UnitPrice(p domain.Price) decimal.Decimal {
	if p.HasValue() {
		return decimal.NewFromFloat(*p.Value)
	}
	m := rangePattern.FindStringSubmatch(p.PriceRange)
	if m == nil {
		return decimal.Zero
	}
	low, errLow := decimal.NewFromString(m[1])
	high, errHigh := decimal.NewFromString(m[2])
	if errLow != nil || errHigh != nil {
		return decimal.Zero
	}
	return low.Add(high).Div(two)
}

// SortKey is the value used by price ordering: the explicit value, else the
// first number in the range string, else zero.
func SortKey(p domain.Price) float64 {
	if p.HasValue() {
		return *p.Value
	}
	first := numberPattern.FindString(p.PriceRange)
	if first == "" {
		return 0
	}
	d, err := decimal.NewFromString(first)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// EstimateTotal sums unit price times quantity over the items.
func EstimateTotal(items []domain.CartItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := UnitPrice(item.Product.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.Round(2).InexactFloat64()
}
