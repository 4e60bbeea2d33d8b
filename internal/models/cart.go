package models

type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// CartItem : une ligne du panier Redis. Le prix stocké n'est qu'un aperçu,
// le snapshot de checkout relit toujours le prix courant du produit.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// CartLine : ligne du snapshot de panier (prix et stock courants + sous-total)
type CartLine struct {
	ProductID string  `json:"product_id"`
	SellerID  string  `json:"seller_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Stock     int     `json:"stock"`
	Subtotal  float64 `json:"subtotal"`
	ImageURL  string  `json:"image_url,omitempty"`
}

type CartSnapshot struct {
	Lines []CartLine `json:"lines"`
	Total float64    `json:"total"`
}
