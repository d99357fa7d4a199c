package models

import "time"

// Comment moderation states.
const (
	CommentApproved    = "a"
	CommentNotApproved = "na"
)

// Comment is a user's review of a product.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	Status    string    `json:"status" gorm:"type:varchar(2);not null;default:'a'"`
	CreatedAt time.Time `json:"datetime_created"`
}
