package model

import "time"

// Recipient is an organization that receives delivered food.
type Recipient struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"size:100;not null"`
	ContactPerson string    `json:"contact_person" gorm:"size:100"`
	Phone         string    `json:"phone" gorm:"size:20"`
	Address       string    `json:"address" gorm:"size:200"`
	RecipientType string    `json:"recipient_type" gorm:"size:50"` // e.g. "NGO", "Shelter", "Orphanage"
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Deliveries []Delivery `json:"deliveries,omitempty" gorm:"foreignKey:RecipientID"`
}
