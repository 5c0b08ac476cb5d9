package models

import "github.com/google/uuid"

// Product is a catalog item. Products referenced by orders are soft-deleted
// via IsDeleted instead of being removed.
type Product struct {
	BaseModel
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	IsDeleted   bool           `gorm:"not null;default:false" json:"is_deleted"`
	Category    Category       `json:"category,omitempty"`
	Countries   []Country      `gorm:"many2many:product_countries" json:"countries,omitempty"`
	Images      []ProductImage `json:"images,omitempty"`
}

// ProductImage stores the image bytes in the database alongside the MIME type.
type ProductImage struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	MimeType  string    `json:"mime_type"`
	Data      []byte    `json:"-"`
}
