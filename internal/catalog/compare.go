package catalog

import (
	"errors"
	"strconv"

	"github.com/hardik88t/puredry/internal/domain"
)

const MaxCompared = 3

var ErrNothingToCompare = errors.New("no products to compare")

type ComparisonRow struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

type Comparison struct {
	Products []domain.Product `json:"products"`
	Rows     []ComparisonRow  `json:"rows"`
}

type attribute struct {
	key   string
	label string
	value func(domain.Product) string
}

var comparisonAttributes = []attribute{
	{"category", "Category", func(p domain.Product) string { return string(p.Category) }},
	{"origin", "Origin", func(p domain.Product) string { return p.Specifications.Origin }},
	{"moisture", "Moisture Content", func(p domain.Product) string { return p.Specifications.Moisture }},
	{"shelf_life", "Shelf Life", func(p domain.Product) string { return p.Specifications.ShelfLife }},
	{"calories", "Calories (per 100g)", func(p domain.Product) string { return formatNumber(p.NutritionalInfo.Calories) }},
	{"protein", "Protein (g)", func(p domain.Product) string { return formatNumber(p.NutritionalInfo.Protein) }},
	{"fiber", "Fiber (g)", func(p domain.Product) string { return formatNumber(p.NutritionalInfo.Fiber) }},
	{"price_range", "Price Range", func(p domain.Product) string { return p.Price.PriceRange }},
	{"min_order", "Min Order Qty", func(p domain.Product) string { return p.MinOrderQuantity }},
}

// Compare builds the side-by-side attribute table for up to MaxCompared
// distinct products. Extra and repeated ids are ignored; an unknown id fails
// with ErrProductNotFound.
func (c *Catalog) Compare(ids []string) (Comparison, error) {
	seen := make(map[string]struct{}, len(ids))
	var products []domain.Product
	for _, id := range ids {
		if len(products) == MaxCompared {
			break
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		p, err := c.Get(id)
		if err != nil {
			return Comparison{}, err
		}
		products = append(products, p)
	}
	if len(products) == 0 {
		return Comparison{}, ErrNothingToCompare
	}

	rows := make([]ComparisonRow, 0, len(comparisonAttributes))
	for _, attr := range comparisonAttributes {
		row := ComparisonRow{Key: attr.key, Label: attr.label, Values: make([]string, len(products))}
		for i, p := range products {
			row.Values[i] = attr.value(p)
		}
		rows = append(rows, row)
	}
	return Comparison{Products: products, Rows: rows}, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
