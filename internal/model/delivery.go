package model

import "time"

// DeliveryStatus represents the lifecycle state of a delivery.
type DeliveryStatus string

const (
	DeliveryStatusAssigned  DeliveryStatus = "assigned"
	DeliveryStatusOnTheWay  DeliveryStatus = "on_the_way"
	DeliveryStatusPickedUp  DeliveryStatus = "picked_up"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

var deliveryStatusOrder = map[DeliveryStatus]int{
	DeliveryStatusAssigned:  0,
	DeliveryStatusOnTheWay:  1,
	DeliveryStatusPickedUp:  2,
	DeliveryStatusDelivered: 3,
}

// Valid reports whether s is one of the known delivery statuses.
func (s DeliveryStatus) Valid() bool {
	_, ok := deliveryStatusOrder[s]
	return ok
}

// CanTransition reports whether a delivery may move from s to target.
// Forward movement and re-issuing the current status are allowed; re-issue
// overwrites the corresponding timestamp. Backward transitions are rejected.
func (s DeliveryStatus) CanTransition(target DeliveryStatus) bool {
	from, ok := deliveryStatusOrder[s]
	if !ok {
		return false
	}
	to, ok := deliveryStatusOrder[target]
	if !ok {
		return false
	}
	return to >= from
}

// Delivery is the logistics record moving one donation from its donor to a
// recipient via a delivery person.
type Delivery struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	DonationID       uint           `json:"donation_id" gorm:"uniqueIndex;not null"`
	DeliveryPersonID uint           `json:"delivery_person_id" gorm:"not null;index"`
	RecipientID      uint           `json:"recipient_id" gorm:"not null;index"`
	Status           DeliveryStatus `json:"status" gorm:"type:varchar(20);not null;default:'assigned';index"`
	PickupTime       *time.Time     `json:"pickup_time,omitempty"`
	DeliveryTime     *time.Time     `json:"delivery_time,omitempty"`
	ConfirmationType string         `json:"confirmation_type,omitempty" gorm:"size:50"` // e.g. "signature", "photo", "feedback"
	ConfirmationData string         `json:"confirmation_data,omitempty" gorm:"type:text"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	// Relations
	Donation       Donation  `json:"donation,omitempty" gorm:"foreignKey:DonationID"`
	DeliveryPerson User      `json:"-" gorm:"foreignKey:DeliveryPersonID"`
	Recipient      Recipient `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
}
