package model

import "time"

// Category groups catalog products.
type Category string

const (
	CategoryEveryday     Category = "everyday"
	CategoryLuxe         Category = "luxe"
	CategoryLimited      Category = "limited-edition"
	CategoryCustomizable Category = "customizable"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryEveryday, CategoryLuxe, CategoryLimited, CategoryCustomizable:
		return true
	}
	return false
}

// Product represents an item in the catalogue.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name" validate:"required"`
	Description   string    `json:"description"`
	Price         float64   `json:"price" validate:"gte=0"`
	OriginalPrice *float64  `json:"originalPrice,omitempty" validate:"omitempty,gte=0"`
	Image         string    `json:"image"`
	Category      Category  `json:"category" validate:"required,oneof=everyday luxe limited-edition customizable"`
	IsBestseller  bool      `json:"isBestseller"`
	OnSale        bool      `json:"onSale"`
	InStock       bool      `json:"inStock"`
	Sizes         []string  `json:"sizes"`
	Colors        []string  `json:"colors"`
	Rating        float64   `json:"rating"`
	Reviews       int       `json:"reviews"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProductFilter narrows the public product listing. Nil flags are ignored.
type ProductFilter struct {
	Category   Category
	Bestseller *bool
	OnSale     *bool
	InStock    *bool
}
