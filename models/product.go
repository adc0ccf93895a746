package models

import "time"

// Product categories.
const (
	CategoryDrink   = "drink"
	CategoryFood    = "food"
	CategoryDessert = "dessert"
)

type Product struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category  string    `gorm:"type:varchar(20);not null" json:"category"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// CatalogByID indexes a product list for order-total lookups.
func CatalogByID(products []Product) map[string]Product {
	catalog := make(map[string]Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}
	return catalog
}
