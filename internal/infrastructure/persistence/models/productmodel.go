package models

import "time"

// CategoryModel represents the database persistence model for product categories.
type CategoryModel struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;size:64;not null"`
}

// TableName specifies the table name for GORM
func (CategoryModel) TableName() string {
	return "product_category"
}

// ProductModel represents the database persistence model for products.
type ProductModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"size:64;not null"`
	CategoryID  uint      `gorm:"not null;index"`
	ProductType string    `gorm:"size:16;not null"`
	PicturePath *string   `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ProductModel) TableName() string {
	return "product"
}

// BeverageModel holds the beverage specific attributes of a product.
type BeverageModel struct {
	ProductID uint    `gorm:"primaryKey"`
	Size      float64 `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (BeverageModel) TableName() string {
	return "beverage"
}

// BeveragePricingModel holds one price per product and tier.
type BeveragePricingModel struct {
	ProductID uint    `gorm:"primaryKey"`
	Tier      string  `gorm:"primaryKey;size:16"`
	Price     float64 `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (BeveragePricingModel) TableName() string {
	return "beverage_pricing"
}
