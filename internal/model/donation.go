package model

import "time"

// DonationStatus represents the lifecycle state of a donation.
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusAssigned  DonationStatus = "assigned"
	DonationStatusInTransit DonationStatus = "in_transit"
	DonationStatusDelivered DonationStatus = "delivered"
)

// Donation represents surplus food pledged by a donor.
type Donation struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	DonorID        uint           `json:"donor_id" gorm:"not null;index"`
	FoodType       string         `json:"food_type" gorm:"size:100;not null"`
	Quantity       string         `json:"quantity" gorm:"size:100;not null"` // free-text, e.g. "5kg", "3 boxes"
	Freshness      string         `json:"freshness" gorm:"size:50"`          // e.g. "Fresh", "Day old", "Packaged"
	PickupLocation string         `json:"pickup_location" gorm:"size:200"`
	Status         DonationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	// Relations
	Donor    User      `json:"-" gorm:"foreignKey:DonorID"`
	Delivery *Delivery `json:"delivery,omitempty" gorm:"foreignKey:DonationID"`
}
