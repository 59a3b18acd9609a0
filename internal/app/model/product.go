package model

import (
	"time"
)

type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	ImageKey    string    `json:"-"`                  // object key in the image bucket
	ImageURL    string    `gorm:"-" json:"image_url"` // resolved per request
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Tags     []Tag    `gorm:"many2many:product_tags;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tags"`
}

func (Product) TableName() string {
	return "products"
}
