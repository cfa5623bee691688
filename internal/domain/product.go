package domain

type Category string

const (
	CategoryVegetables  Category = "vegetables"
	CategoryFruits      Category = "fruits"
	CategoryHerbsSpices Category = "herbs-spices"
	CategoryCustom      Category = "custom"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryVegetables, CategoryFruits, CategoryHerbsSpices, CategoryCustom:
		return true
	}
	return false
}

type Availability string

const (
	AvailabilityInStock    Availability = "in-stock"
	AvailabilityLimited    Availability = "limited"
	AvailabilityOutOfStock Availability = "out-of-stock"
	AvailabilitySeasonal   Availability = "seasonal"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityInStock, AvailabilityLimited, AvailabilityOutOfStock, AvailabilitySeasonal:
		return true
	}
	return false
}

type Specifications struct {
	Moisture       string   `json:"moisture" yaml:"moisture"`
	ShelfLife      string   `json:"shelf_life" yaml:"shelf_life"`
	Packaging      []string `json:"packaging" yaml:"packaging"`
	Origin         string   `json:"origin" yaml:"origin"`
	Certifications []string `json:"certifications" yaml:"certifications"`
}

// NutritionalInfo values are per 100g.
type NutritionalInfo struct {
	Calories float64  `json:"calories" yaml:"calories"`
	Protein  float64  `json:"protein" yaml:"protein"`
	Carbs    float64  `json:"carbs" yaml:"carbs"`
	Fiber    float64  `json:"fiber" yaml:"fiber"`
	Vitamins []string `json:"vitamins" yaml:"vitamins"`
}

// Price is display data. Value and PriceRange are both optional; a zero
// Value counts as absent.
type Price struct {
	Currency   string   `json:"currency" yaml:"currency"`
	Unit       string   `json:"unit" yaml:"unit"`
	Value      *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	PriceRange string   `json:"price_range,omitempty" yaml:"price_range,omitempty"`
}

func (p Price) HasValue() bool {
	return p.Value != nil && *p.Value != 0
}

type Product struct {
	ID               string          `json:"id" yaml:"id"`
	Name             string          `json:"name" yaml:"name"`
	Category         Category        `json:"category" yaml:"category"`
	Description      string          `json:"description" yaml:"description"`
	ShortDescription string          `json:"short_description" yaml:"short_description"`
	Image            string          `json:"image,omitempty" yaml:"image,omitempty"`
	Images           []string        `json:"images,omitempty" yaml:"images,omitempty"`
	Specifications   Specifications  `json:"specifications" yaml:"specifications"`
	NutritionalInfo  NutritionalInfo `json:"nutritional_info" yaml:"nutritional_info"`
	Applications     []string        `json:"applications" yaml:"applications"`
	MinOrderQuantity string          `json:"min_order_quantity" yaml:"min_order_quantity"`
	Price            Price           `json:"price" yaml:"price"`
	Availability     Availability    `json:"availability" yaml:"availability"`
	Featured         bool            `json:"featured" yaml:"featured"`
	Tags             []string        `json:"tags" yaml:"tags"`
	SEOTitle         string          `json:"seo_title,omitempty" yaml:"seo_title,omitempty"`
	SEODescription   string          `json:"seo_description,omitempty" yaml:"seo_description,omitempty"`
}

// Clone returns a deep copy so cart snapshots never share slices with the
// catalog.
func (p Product) Clone() Product {
	c := p
	c.Images = cloneStrings(p.Images)
	c.Specifications.Packaging = cloneStrings(p.Specifications.Packaging)
	c.Specifications.Certifications = cloneStrings(p.Specifications.Certifications)
	c.NutritionalInfo.Vitamins = cloneStrings(p.NutritionalInfo.Vitamins)
	c.Applications = cloneStrings(p.Applications)
	c.Tags = cloneStrings(p.Tags)
	if p.Price.Value != nil {
		v := *p.Price.Value
		c.Price.Value = &v
	}
	return c
}

// ProductCategory.ProductCount is an advisory display counter and is not
// kept in sync with the product list.
type ProductCategory struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Slug         string `json:"slug" yaml:"slug"`
	Description  string `json:"description" yaml:"description"`
	Image        string `json:"image,omitempty" yaml:"image,omitempty"`
	Icon         string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color        string `json:"color,omitempty" yaml:"color,omitempty"`
	ProductCount int    `json:"product_count" yaml:"product_count"`
	Featured     bool   `json:"featured" yaml:"featured"`
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
