package model

import (
	"time"
)

// Cart is the singleton cart of a customer. FlatRate is the shipping cost
// charged once per cart regardless of item count.
type Cart struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FlatRate  int       `gorm:"not null;default:0" json:"flat_rate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint      `gorm:"not null;index;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// LineTotal is ROUND(quantity * price), filled only by the totals query.
	LineTotal float64 `gorm:"->;-:migration" json:"line_total"`

	// Relationships
	Cart    Cart    `gorm:"foreignKey:CartID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
