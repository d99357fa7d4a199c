package models

// Address is a delivery address owned by a user.
type Address struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   uint   `json:"user_id" gorm:"not null;index"`
	Province string `json:"province" gorm:"type:varchar(255);not null"`
	City     string `json:"city" gorm:"type:varchar(255);not null"`
	Street   string `json:"street" gorm:"type:varchar(255);not null"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&Permission{}, &Group{}, &User{}, &Address{},
		&Category{}, &Product{}, &Comment{}, &Cart{}, &CartItem{},
	}
}
