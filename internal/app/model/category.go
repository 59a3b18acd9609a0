package model

import (
	"time"
)

// Category is a node of the catalog tree. Roots have a nil ParentID.
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Parent *Category `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryFacet is a category annotated with its product count for the filter UI.
type CategoryFacet struct {
	Category
	Count int64 `json:"count"`
}
