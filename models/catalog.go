// ════════════════════════════════════════════════════════════
// CATALOG MODELS
// File: models/catalog.go
// ════════════════════════════════════════════════════════════

package models

// CatalogPageSize is the fixed number of products on one catalog page
const CatalogPageSize = 12

// CatalogSnapshot is one complete assembled catalog as cached in Redis
type CatalogSnapshot struct {
	Products       []Product         `json:"filteredProducts"`
	Categories     []CatalogCategory `json:"categories"`
	FilterSettings FilterSettings    `json:"filterSettings"`
	Delay          int               `json:"delay"`
}

const (
	SortLowPrice  = "low_price"
	SortHighPrice = "high_price"
	// SortHighPriceLegacy is the spelling used by older storefront links
	SortHighPriceLegacy = "hight_price"
)

// PriceRange is an inclusive display price range; nil bounds are open
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// CatalogQuery is a parsed storefront catalog request
type CatalogQuery struct {
	Sort         string                `json:"sort,omitempty"`
	CategoryIDs  []string              `json:"categories,omitempty"`
	Vendors      []string              `json:"vendors,omitempty"`
	Search       string                `json:"search,omitempty"`
	Price        PriceRange            `json:"price"`
	SelectParams map[string][]string   `json:"selectParams,omitempty"`
	UnitParams   map[string]PriceRange `json:"unitParams,omitempty"`
	Page         int                   `json:"page,omitempty"`
}

// CatalogCounts are the sidebar counters computed before user filters apply
type CatalogCounts struct {
	Vendors    map[string]int `json:"vendors"`
	Categories map[string]int `json:"categories"`
	Available  int            `json:"available"`
}

// CatalogPage is one page of storefront results plus the sidebar facets
type CatalogPage struct {
	Products      []Product              `json:"products"`
	Page          int                    `json:"page"`
	TotalPages    int                    `json:"totalPages"`
	TotalProducts int                    `json:"totalProducts"`
	MinPrice      float64                `json:"minPrice"`
	MaxPrice      float64                `json:"maxPrice"`
	Vendors       []string               `json:"vendors"`
	Counts        CatalogCounts          `json:"counts"`
	SelectParams  map[string]SelectFacet `json:"selectParams"`
	UnitParams    map[string]UnitFacet   `json:"unitParams"`
	Categories    []CatalogCategory      `json:"categories"`
	Delay         int                    `json:"delay"`
}

// CatalogOverview is the admin dashboard summary of the current snapshot
type CatalogOverview struct {
	TotalProducts     int     `json:"totalProducts"`
	AvailableProducts int     `json:"availableProducts"`
	FetchedProducts   int     `json:"fetchedProducts"`
	Categories        int     `json:"categories"`
	EmptyCategories   int     `json:"emptyCategories"`
	Vendors           int     `json:"vendors"`
	TotalValue        float64 `json:"totalValue"`
	AveragePrice      float64 `json:"averagePrice"`
	DiscountedShare   float64 `json:"discountedShare"`
}
