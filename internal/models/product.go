package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID          gocql.UUID `json:"id" db:"product_id"`
	SellerID    string     `json:"seller_id" db:"seller_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Price       float64    `json:"price" db:"price"`
	Stock       int        `json:"stock" db:"stock"`
	Category    string     `json:"category" db:"category"`
	ImageURLs   []string   `json:"image_urls" db:"image_urls"`
	// Géolocalisation optionnelle du vendeur (0,0 = non renseignée)
	Latitude  float64   `json:"latitude,omitempty" db:"latitude"`
	Longitude float64   `json:"longitude,omitempty" db:"longitude"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Catégories proposées sur la marketplace
var ProductCategories = []string{"licor", "energizante", "cerveza", "vino"}

func IsValidCategory(cat string) bool {
	for _, c := range ProductCategories {
		if c == cat {
			return true
		}
	}
	return false
}
