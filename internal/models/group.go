package models

// ProductManagementGroup is the group allowed to edit the catalog.
const ProductManagementGroup = "Product Management"

// Permission is a named capability that can be bundled into groups.
type Permission struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"type:varchar(255);not null"`
	Codename string `json:"codename" gorm:"uniqueIndex;type:varchar(100);not null"`
}

// TableName returns the database table name for the Permission model.
func (Permission) TableName() string {
	return "permissions"
}

// Group is a named permission bundle with a set of member users.
type Group struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"uniqueIndex;type:varchar(150);not null"`
	Permissions []Permission `json:"permissions,omitempty" gorm:"many2many:group_permissions;constraint:OnDelete:CASCADE"`
	Users       []User       `json:"-" gorm:"many2many:user_groups;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name for the Group model.
func (Group) TableName() string {
	return "groups"
}
