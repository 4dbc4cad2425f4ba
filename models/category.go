package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDList is the jsonb list of member product ids
type UUIDList []uuid.UUID

// Category groups products by name and keeps a running total of their display prices
type Category struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name       string    `json:"name" gorm:"not null;uniqueIndex"`
	Products   UUIDList  `json:"products" gorm:"type:jsonb;not null"`
	TotalValue float64   `json:"totalValue" gorm:"column:total_value;type:numeric(14,2);not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - runs automatically before creating a record
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Category) TableName() string {
	return "categories"
}

// CatalogCategory is the compact category entry cached with the catalog
type CatalogCategory struct {
	Name          string `json:"name"`
	CategoryID    string `json:"categoryId"`
	TotalProducts int    `json:"totalProducts"`
}

// CategoryProperties is one row of the admin categories table
type CategoryProperties struct {
	Category struct {
		ID   uuid.UUID `json:"_id"`
		Name string    `json:"name"`
	} `json:"category"`
	Values struct {
		TotalProducts       int     `json:"totalProducts"`
		TotalValue          float64 `json:"totalValue"`
		AverageProductPrice float64 `json:"averageProductPrice"`
	} `json:"values"`
}

// CategoryDetails is the admin single category view
type CategoryDetails struct {
	ID                        uuid.UUID `json:"_id"`
	CategoryName              string    `json:"categoryName"`
	TotalProducts             int       `json:"totalProducts"`
	TotalValue                float64   `json:"totalValue"`
	AverageProductPrice       float64   `json:"averageProductPrice"`
	AverageDiscountPercentage int       `json:"averageDiscountPercentage"`
	Products                  []Product `json:"products"`
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type CreateCategoryRequest struct {
	Name               string      `json:"name" binding:"required" example:"Комоди"`
	ProductIDs         []uuid.UUID `json:"productIds"`
	PreviousCategoryID *uuid.UUID  `json:"previousCategoryId,omitempty"`
}

type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required" example:"Шафи-купе"`
}

type MoveProductsRequest struct {
	TargetCategoryID uuid.UUID   `json:"targetCategoryId" binding:"required"`
	ProductIDs       []uuid.UUID `json:"productIds" binding:"required,min=1"`
}

type CategoryDiscountRequest struct {
	Percentage float64 `json:"percentage" binding:"min=0,max=100" example:"15"`
}

type DeleteCategoryOptions struct {
	RemoveProducts bool `json:"removeProducts"`
}

// UUIDList methods
func (l *UUIDList) Scan(value interface{}) error {
	if value == nil {
		*l = make(UUIDList, 0)
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return errors.New("failed to scan UUIDList")
	}
	return json.Unmarshal(bytes, l)
}

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]uuid.UUID{})
	}
	return json.Marshal(l)
}
