package catalog

import (
	_ "embed"
	"fmt"

	"github.com/hardik88t/puredry/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultDataset []byte

type dataset struct {
	Categories []domain.ProductCategory `yaml:"categories"`
	Products   []domain.Product         `yaml:"products"`
}

// LoadDefault decodes the dataset compiled into the binary.
func LoadDefault() ([]domain.Product, []domain.ProductCategory, error) {
	return Decode(defaultDataset)
}

func Decode(raw []byte) ([]domain.Product, []domain.ProductCategory, error) {
	var ds dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, nil, fmt.Errorf("decode catalog dataset: %w", err)
	}

	seen := make(map[string]struct{}, len(ds.Products))
	for _, p := range ds.Products {
		if p.ID == "" {
			return nil, nil, fmt.Errorf("product %q has no id", p.Name)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
		if !p.Category.Valid() {
			return nil, nil, fmt.Errorf("product %q: unknown category %q", p.ID, p.Category)
		}
		if !p.Availability.Valid() {
			return nil, nil, fmt.Errorf("product %q: unknown availability %q", p.ID, p.Availability)
		}
	}
	return ds.Products, ds.Categories, nil
}
