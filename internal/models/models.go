package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"  json:"email"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshToken rows are the user's set of currently valid refresh tokens.
// A user may hold several at once, one per device. Logout deletes the exact row.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Token     string    `gorm:"uniqueIndex;not null"     json:"token"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt int64     `gorm:"not null"                 json:"expires_at"`
}

type Cart struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey"           json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID"              json:"items"`
}

// Quantity is signed: the decrease path has no floor at zero, the stored value
// can go negative.
type CartItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	CartID      uuid.UUID `gorm:"type:uuid;index;not null" json:"cart_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"       json:"productId"`
	Quantity    int       `gorm:"not null"                 json:"quantity"`
	OrderStatus bool      `gorm:"default:false"            json:"orderStatus"`
}

type Product struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductName  string    `gorm:"not null"             json:"productName"`
	ProductDesc  string    `json:"productDesc"`
	ImageURL     string    `json:"imageURL"`
	ProductPrice string    `json:"productPrice"`
	ScreenOption string    `json:"screenOption"`
	Color        string    `json:"color"`
	Badges       string    `json:"badges"`
	Category     string    `json:"category"`
}

type Order struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID    uuid.UUID   `gorm:"type:uuid;index;not null" json:"user_id"`
	Items     []OrderItem `gorm:"foreignKey:OrderID"       json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem is a write-once snapshot of the product at order time, independent
// of later product mutation.
type OrderItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	OrderID      uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null"       json:"productId"`
	Quantity     int       `gorm:"not null"                 json:"quantity"`
	ProductName  string    `json:"productName"`
	ProductPrice float64   `json:"productPrice"`
	ImageURL     string    `json:"imageURL"`
}
