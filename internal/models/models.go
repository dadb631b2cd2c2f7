package models

import (
	"time"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// NextStatus returns the next step of the forward chain. ok is false for
// delivered and cancelled orders.
func NextStatus(s string) (string, bool) {
	switch s {
	case StatusPending:
		return StatusProcessing, true
	case StatusProcessing:
		return StatusShipped, true
	case StatusShipped:
		return StatusDelivered, true
	}
	return "", false
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"          json:"id"`
	Token     string `gorm:"unique;not null"     json:"token"`
	UserID    uint   `gorm:"index;not null"      json:"user_id"`
	ExpiresAt int64  `gorm:"not null"            json:"expires_at"`
	Revoked   bool   `gorm:"default:false"       json:"revoked"`
}

type Order struct {
	ID                   uint        `gorm:"primaryKey"     json:"id"`
	UserID               *uint       `gorm:"index"          json:"user_id"`
	Email                string      `gorm:"not null"       json:"email"`
	FirstName            string      `gorm:"not null"       json:"first_name"`
	LastName             string      `gorm:"not null"       json:"last_name"`
	Address              string      `gorm:"not null"       json:"address"`
	Apartment            string      `json:"apartment"`
	City                 string      `gorm:"not null"       json:"city"`
	PostalCode           string      `gorm:"not null"       json:"postal_code"`
	Country              string      `gorm:"not null"       json:"country"`
	PaymentMethod        string      `gorm:"not null"       json:"payment_method"`
	NameOnCard           string      `json:"name_on_card"`
	CardNumber           string      `json:"card_number"`
	Expiry               string      `json:"expiry"`
	CVC                  string      `json:"cvc"`
	RememberMe           bool        `json:"remember_me"`
	UseShippingAsBilling bool        `json:"use_shipping_as_billing"`
	Status               string      `gorm:"not null"       json:"status"`
	ShippingPrice        float64     `gorm:"not null"       json:"shipping_price"`
	Subtotal             float64     `gorm:"not null"       json:"subtotal"`
	Total                float64     `gorm:"not null"       json:"total"`
	CreatedAt            time.Time   `json:"created_at"`
	ShippedAt            *time.Time  `json:"shipped_at"`
	DeliveredAt          *time.Time  `json:"delivered_at"`
	CancelledAt          *time.Time  `json:"cancelled_at"`
	Items                []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem fields are snapshots taken at order time. Catalog changes must
// never touch rows that already exist.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey"                  json:"id"`
	OrderID   uint    `gorm:"index;not null"              json:"order_id"`
	ProductID int     `gorm:"not null"                    json:"product_id"`
	Title     string  `gorm:"not null"                    json:"title"`
	ImageURL  string  `json:"image_url"`
	Quantity  uint    `gorm:"default:1;check:quantity>0"  json:"quantity"`
	Price     float64 `gorm:"not null"                    json:"price"`
}

// Comment keeps the stable author id for ownership checks and the display
// string the author had at posting time, which is never updated afterwards.
type Comment struct {
	ID        uint      `gorm:"primaryKey"          json:"id"`
	ProductID int       `gorm:"index;not null"      json:"product_id"`
	UserID    uint      `gorm:"index"               json:"user_id"`
	User      string    `gorm:"not null"            json:"user"`
	Comment   string    `gorm:"size:500;not null"   json:"comment"`
	Rating    int       `gorm:"not null"            json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey"          json:"id"`
	Email     string    `gorm:"index;not null"      json:"email"`
	Token     string    `gorm:"unique;not null"     json:"token"`
	ExpiresAt time.Time `gorm:"not null"            json:"expires_at"`
}
