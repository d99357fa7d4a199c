package models

import "time"

// Category groups products. It cannot be deleted while it has products.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:varchar(500)"`
	Products    []Product `json:"-"`
}

// Product represents a product in the store.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	CategoryID  uint      `json:"category_id" gorm:"not null;index"`
	Category    Category  `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Slug        string    `json:"slug" gorm:"type:varchar(255);index"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"type:decimal(6,2);not null"`
	Inventory   int       `json:"inventory" gorm:"not null"`
	CreatedAt   time.Time `json:"datetime_created"`
	UpdatedAt   time.Time `json:"datetime_modified"`
	Comments    []Comment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
