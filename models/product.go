package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// JSONB Type Definitions
// ═══════════════════════════════════════════════════════════

// ProductParam is a free-form product attribute such as "Ширина, см" = "120"
type ProductParam struct {
	Name  string `json:"name" binding:"required" example:"Колір"`
	Value string `json:"value" example:"Білий"`
}

type (
	ParamList  []ProductParam
	StringList []string
)

// DefaultCategoryName is assigned to feed products without a resolvable category
const DefaultCategoryName = "No-category"

// ═══════════════════════════════════════════════════════════
// Main Product Model (GORM)
// ═══════════════════════════════════════════════════════════

type Product struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ExternalID  *string    `json:"externalId" gorm:"column:external_id;uniqueIndex"`
	Name        string     `json:"name" gorm:"not null;index"`
	IsAvailable bool       `json:"isAvailable" gorm:"column:is_available"`
	Quantity    int        `json:"quantity"`
	URL         string     `json:"url" gorm:"column:url"`
	Price       float64    `json:"price" gorm:"type:numeric(12,2);not null"`
	PriceToShow float64    `json:"priceToShow" gorm:"column:price_to_show;type:numeric(12,2);not null"`
	Images      StringList `json:"images" gorm:"type:jsonb;not null"`
	Vendor      string     `json:"vendor" gorm:"index"`
	Description string     `json:"description"`
	Category    string     `json:"category" gorm:"not null;index"`
	Params      ParamList  `json:"params" gorm:"type:jsonb;not null"`
	LikedBy     StringList `json:"likedBy" gorm:"column:liked_by;type:jsonb;not null"`
	IsFetched   bool       `json:"isFetched" gorm:"column:is_fetched;index"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

// Likes returns the like counter shown on product cards
func (p Product) Likes() int {
	return len(p.LikedBy)
}

// ParamValue returns the first value of the named param
func (p Product) ParamValue(name string) (string, bool) {
	for _, param := range p.Params {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type ProductRequest struct {
	ExternalID  *string        `json:"externalId" example:"10234"`
	Name        string         `json:"name" binding:"required" example:"Шафа Nordic"`
	IsAvailable bool           `json:"isAvailable" example:"true"`
	Quantity    int            `json:"quantity" binding:"min=0" example:"4"`
	URL         string         `json:"url" example:"https://supplier.example/products/10234"`
	Price       float64        `json:"price" binding:"min=0" example:"12999"`
	PriceToShow float64        `json:"priceToShow" binding:"min=0" example:"10999"`
	Images      []string       `json:"images"`
	Vendor      string         `json:"vendor" example:"Nordic Home"`
	Description string         `json:"description"`
	Category    string         `json:"category" binding:"required" example:"Шафи"`
	Params      []ProductParam `json:"params" binding:"dive"`
}

type UpdateProductRequest struct {
	Name        *string         `json:"name"`
	IsAvailable *bool           `json:"isAvailable"`
	Quantity    *int            `json:"quantity" binding:"omitempty,min=0"`
	URL         *string         `json:"url"`
	Price       *float64        `json:"price" binding:"omitempty,min=0"`
	PriceToShow *float64        `json:"priceToShow" binding:"omitempty,min=0"`
	Images      *[]string       `json:"images"`
	Vendor      *string         `json:"vendor"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	Params      *[]ProductParam `json:"params"`
}

// ToProduct builds a new product from a create request
func (r ProductRequest) ToProduct() Product {
	price := r.Price
	if price == 0 {
		price = r.PriceToShow
	}
	return Product{
		ExternalID:  r.ExternalID,
		Name:        r.Name,
		IsAvailable: r.IsAvailable,
		Quantity:    r.Quantity,
		URL:         r.URL,
		Price:       price,
		PriceToShow: r.PriceToShow,
		Images:      StringList(r.Images),
		Vendor:      r.Vendor,
		Description: r.Description,
		Category:    r.Category,
		Params:      ParamList(r.Params),
	}
}

// Apply copies every provided field onto the product
func (r UpdateProductRequest) Apply(p *Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.IsAvailable != nil {
		p.IsAvailable = *r.IsAvailable
	}
	if r.Quantity != nil {
		p.Quantity = *r.Quantity
	}
	if r.URL != nil {
		p.URL = *r.URL
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.PriceToShow != nil {
		p.PriceToShow = *r.PriceToShow
	}
	if r.Images != nil {
		p.Images = StringList(*r.Images)
	}
	if r.Vendor != nil {
		p.Vendor = *r.Vendor
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Params != nil {
		p.Params = ParamList(*r.Params)
	}
}

// ═══════════════════════════════════════════════════════════
// JSONB Scanner/Valuer for GORM (Custom slice types)
// ═══════════════════════════════════════════════════════════

// ParamList methods
func (p *ParamList) Scan(value interface{}) error {
	if value == nil {
		*p = make(ParamList, 0)
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return errors.New("failed to scan ParamList")
	}
	return json.Unmarshal(bytes, p)
}

func (p ParamList) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal([]ProductParam{})
	}
	return json.Marshal(p)
}

// StringList methods
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = make(StringList, 0)
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return errors.New("failed to scan StringList")
	}
	return json.Unmarshal(bytes, s)
}

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

// jsonBytes accepts both []byte and string column values
func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported jsonb value")
	}
}
