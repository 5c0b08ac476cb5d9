package models

// Category groups products one-to-many.
type Category struct {
	BaseModel
	Name     string    `gorm:"not null" json:"name"`
	Products []Product `json:"products,omitempty"`
}

// Country is linked to products many-to-many (country of origin).
type Country struct {
	BaseModel
	Name     string    `gorm:"not null" json:"name"`
	Products []Product `gorm:"many2many:product_countries" json:"products,omitempty"`
}
