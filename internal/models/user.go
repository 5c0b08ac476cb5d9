package models

// Roles assignable to a user account.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User represents a registered account. Accounts are never hard-deleted.
type User struct {
	BaseModel
	Username     string  `gorm:"uniqueIndex;not null" json:"username"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Role         string  `gorm:"not null;default:User" json:"role"`
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	Phone        string  `json:"phone"`
	Orders       []Order `json:"orders,omitempty"`
}
