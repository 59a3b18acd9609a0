package model

import (
	"time"
)

// Checkout is the order record placed from a customer's cart.
type Checkout struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	FirstName     string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string `gorm:"type:varchar(100);not null" json:"last_name"`
	OrderAddress  string `gorm:"type:varchar(100);not null" json:"order_address"`
	City          string `gorm:"type:varchar(100);not null" json:"city"`
	Country       string `gorm:"type:varchar(100);not null" json:"country"`
	Postcode      int    `gorm:"not null" json:"postcode"`
	Mobile        string `gorm:"type:varchar(100);not null" json:"mobile"`
	Email         string `gorm:"type:varchar(100);not null" json:"email"`
	CreateAccount bool   `gorm:"default:false" json:"create_account"`
	OrderNotes    string `gorm:"type:text" json:"order_notes"`

	// OrderDate is written on insert only.
	OrderDate time.Time `gorm:"<-:create;autoCreateTime;not null" json:"order_date"`

	CartID     uint `gorm:"not null;index" json:"cart_id"`
	CustomerID uint `gorm:"not null;index" json:"customer_id"`

	Cart     Cart `gorm:"foreignKey:CartID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Customer User `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Checkout) TableName() string {
	return "checkouts"
}
