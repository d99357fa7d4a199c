package models

import (
	"strings"
	"time"
)

// User is an account of the store. Email is the login identifier.
type User struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Email          string     `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password       string     `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, empty when unusable
	FirstName      string     `json:"first_name" gorm:"type:varchar(255)"`
	LastName       string     `json:"last_name" gorm:"type:varchar(255)"`
	BirthDate      *time.Time `json:"birth_date" gorm:"type:date"`
	NationalNumber string     `json:"national_number" gorm:"type:varchar(10)"`
	IsActive       bool       `json:"is_active" gorm:"not null;default:true"`
	IsAdmin        bool       `json:"is_admin" gorm:"not null;default:false"`
	IsSuperuser    bool       `json:"is_superuser" gorm:"not null;default:false"`
	DateJoined     time.Time  `json:"date_joined" gorm:"autoCreateTime"`
	LastLogin      *time.Time `json:"last_login"`
	Groups         []Group    `json:"groups,omitempty" gorm:"many2many:user_groups;constraint:OnDelete:CASCADE"`
	Addresses      []Address  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// HasUsablePassword reports whether the user can authenticate with a password.
func (u *User) HasUsablePassword() bool {
	return u.Password != ""
}

// FullName joins first and last name, falling back to the email.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// GroupNames lists the names of the groups the user belongs to.
func (u *User) GroupNames() []string {
	names := make([]string, 0, len(u.Groups))
	for _, g := range u.Groups {
		names = append(names, g.Name)
	}
	return names
}

// NormalizeEmail trims the address and lower-cases its domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
