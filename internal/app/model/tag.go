package model

// Tag labels products for filtering; many-to-many through product_tags.
type Tag struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}
