package model

import (
	"fmt"
	"time"
)

// Role identifies what a user is allowed to do in the system.
type Role string

const (
	RoleDonor    Role = "donor"
	RoleDelivery Role = "delivery"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleDelivery, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// User represents a registered participant: donor, delivery person or admin.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:64;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"user_type" gorm:"column:user_type;type:varchar(20);not null;index"`
	Phone        string    `json:"phone" gorm:"size:20"`
	Address      string    `json:"address" gorm:"size:200"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Donations  []Donation `json:"donations,omitempty" gorm:"foreignKey:DonorID"`
	Deliveries []Delivery `json:"deliveries,omitempty" gorm:"foreignKey:DeliveryPersonID"`
}
