package models

import (
	"time"

	"github.com/google/uuid"
)

// Order links a user to a purchased product. OrderedAt is assigned by the
// server at creation time.
type Order struct {
	BaseModel
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	OrderedAt     time.Time `gorm:"not null" json:"ordered_at"`
	PaymentMethod string    `gorm:"not null" json:"payment_method"`
	Notes         string    `json:"notes"`
	Product       Product   `json:"product,omitempty"`
	User          User      `json:"user,omitempty"`
}
