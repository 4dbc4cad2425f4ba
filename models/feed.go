package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentValue selects an element's text instead of an attribute
const ContentValue = "Content"

// FeedPath is one declarative lookup in a supplier feed.
//
//	{value: "picture", many: true}            -> every <picture> below the parent
//	{value: "id", attributeOf: "offer"}       -> id attribute of the <offer> parent
//	{value: "Content", attributeOf: "vendor"} -> text of the first <vendor> child
type FeedPath struct {
	Value       string `json:"value" validate:"required"`
	AttributeOf string `json:"attributeOf,omitempty"`
	Many        bool   `json:"many,omitempty"`
}

type FeedStartPaths struct {
	Categories *FeedPath `json:"categories,omitempty"`
	Products   FeedPath  `json:"products"`
}

type FeedCategoryPaths struct {
	Name        *FeedPath `json:"name,omitempty"`
	CategoryID  *FeedPath `json:"category_id,omitempty"`
	ReferenceBy *FeedPath `json:"reference_by,omitempty"`
}

type FeedProductPaths struct {
	ID            FeedPath  `json:"id"`
	Available     *FeedPath `json:"available,omitempty"`
	Quantity      *FeedPath `json:"quantity,omitempty"`
	URL           *FeedPath `json:"url,omitempty"`
	DiscountPrice FeedPath  `json:"discount_price"`
	Price         *FeedPath `json:"price,omitempty"`
	Images        *FeedPath `json:"images,omitempty"`
	Vendor        *FeedPath `json:"vendor,omitempty"`
	Name          FeedPath  `json:"name"`
	Description   *FeedPath `json:"description,omitempty"`
	Params        *FeedPath `json:"params,omitempty"`
	Category      *FeedPath `json:"category,omitempty"`
}

type FeedParamPaths struct {
	Name  *FeedPath `json:"name,omitempty"`
	Value *FeedPath `json:"value,omitempty"`
}

type FeedPaths struct {
	Start      FeedStartPaths    `json:"Start"`
	Categories FeedCategoryPaths `json:"Categories"`
	Products   FeedProductPaths  `json:"Products"`
	Params     FeedParamPaths    `json:"Params"`
}

// FeedConfig maps a supplier's XML schema onto Product fields
type FeedConfig struct {
	Paths FeedPaths `json:"paths"`
}

// DefaultFeedConfig describes a YML (Yandex Market Language) price list
func DefaultFeedConfig() FeedConfig {
	return FeedConfig{Paths: FeedPaths{
		Start: FeedStartPaths{
			Categories: &FeedPath{Value: "category"},
			Products:   FeedPath{Value: "offer"},
		},
		Categories: FeedCategoryPaths{
			Name:        &FeedPath{Value: ContentValue},
			CategoryID:  &FeedPath{Value: "id", AttributeOf: "category"},
			ReferenceBy: &FeedPath{Value: "id", AttributeOf: "category"},
		},
		Products: FeedProductPaths{
			ID:            FeedPath{Value: "id", AttributeOf: "offer"},
			Available:     &FeedPath{Value: "available", AttributeOf: "offer"},
			Quantity:      &FeedPath{Value: "stock_quantity"},
			URL:           &FeedPath{Value: "url"},
			DiscountPrice: FeedPath{Value: "price"},
			Price:         &FeedPath{Value: "price_old"},
			Images:        &FeedPath{Value: "picture", Many: true},
			Vendor:        &FeedPath{Value: "vendor"},
			Name:          FeedPath{Value: "name"},
			Description:   &FeedPath{Value: "description"},
			Params:        &FeedPath{Value: "param", Many: true},
			Category:      &FeedPath{Value: "categoryId"},
		},
		Params: FeedParamPaths{
			Name:  &FeedPath{Value: "name", AttributeOf: "param"},
			Value: &FeedPath{Value: ContentValue},
		},
	}}
}

// FeedConfigRecord stores a named path configuration for reuse
type FeedConfigRecord struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string         `json:"name" gorm:"not null;uniqueIndex"`
	Config    datatypes.JSON `json:"config" gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (r *FeedConfigRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (FeedConfigRecord) TableName() string {
	return "feed_configs"
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type SaveFeedConfigRequest struct {
	Name   string     `json:"name" binding:"required" example:"supplier-yml"`
	Config FeedConfig `json:"config" binding:"required"`
}

// FeedPreviewRequest carries the feed either inline or as a URL to download
type FeedPreviewRequest struct {
	XML        string      `json:"xml"`
	URL        string      `json:"url" binding:"omitempty,url"`
	Config     *FeedConfig `json:"config"`
	ConfigName string      `json:"configName"`
}

type FeedProceedRequest struct {
	Products    []Product `json:"products" binding:"required"`
	SelectedIDs []string  `json:"selectedIds" binding:"required"`
}

// FeedSyncResult summarizes one feed synchronization
type FeedSyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
	// Skipped counts selected feed rows whose external id belongs to a product
	// created in the admin console
	Skipped int `json:"skipped"`
}
