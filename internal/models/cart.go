package models

import "time"

// CartItem is a product line in a cart. A product appears at most once per cart.
type CartItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	CartID    string  `json:"cart_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_product"`
	ProductID uint    `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_product"`
	Product   Product `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Quantity  uint16  `json:"quantity" gorm:"not null"`
}

// Cart is an anonymous shopping cart identified by a UUID.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time  `json:"created_at"`
	Items     []CartItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
}
