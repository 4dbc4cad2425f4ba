package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ParamTypeSelect     = "select"
	ParamTypeUnitPrefix = "unit-"
)

// ParamKind is the facet shape of a filter parameter
type ParamKind int

const (
	ParamKindUnknown ParamKind = iota
	ParamKindSelect
	ParamKindUnit
)

// ParseParamType splits "select" / "unit-<unit>" into its kind and unit
func ParseParamType(t string) (ParamKind, string) {
	switch {
	case t == ParamTypeSelect:
		return ParamKindSelect, ""
	case strings.HasPrefix(t, ParamTypeUnitPrefix) && len(t) > len(ParamTypeUnitPrefix):
		return ParamKindUnit, strings.TrimPrefix(t, ParamTypeUnitPrefix)
	default:
		return ParamKindUnknown, ""
	}
}

// UnitType builds the "unit-<unit>" type string
func UnitType(unit string) string {
	return ParamTypeUnitPrefix + unit
}

// ═══════════════════════════════════════════════════════════
// Stored Filter Settings (single row)
// ═══════════════════════════════════════════════════════════

type FilterParam struct {
	Name          string `json:"name"`
	TotalProducts int    `json:"totalProducts"`
	Type          string `json:"type"`
}

type FilterCategory struct {
	CategoryID string        `json:"categoryId"`
	Params     []FilterParam `json:"params"`
}

type FilterCategoryList []FilterCategory

type Filter struct {
	ID         uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	Categories FilterCategoryList `json:"categories" gorm:"type:jsonb;not null"`
	Delay      int                `json:"delay" gorm:"not null"`
	UpdatedAt  time.Time          `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (f *Filter) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Filter) TableName() string {
	return "filters"
}

// ParamSetting is the per-parameter entry of FilterSettings
type ParamSetting struct {
	TotalProducts int    `json:"totalProducts"`
	Type          string `json:"type"`
}

// CategoryFilterSettings holds the enabled params of one category
type CategoryFilterSettings struct {
	Params map[string]ParamSetting `json:"params"`
}

// FilterSettings maps category id to its enabled params
type FilterSettings map[string]CategoryFilterSettings

// Settings converts the stored rows into the lookup map used by the catalog
func (f Filter) Settings() FilterSettings {
	settings := make(FilterSettings, len(f.Categories))
	for _, cat := range f.Categories {
		params := make(map[string]ParamSetting, len(cat.Params))
		for _, p := range cat.Params {
			params[p.Name] = ParamSetting{TotalProducts: p.TotalProducts, Type: p.Type}
		}
		settings[cat.CategoryID] = CategoryFilterSettings{Params: params}
	}
	return settings
}

// ═══════════════════════════════════════════════════════════
// Admin filter page
// ═══════════════════════════════════════════════════════════

// DerivedParam is a param observed on a category's products; Selected marks
// params already enabled in the saved settings
type DerivedParam struct {
	FilterParam
	Selected bool `json:"selected"`
}

// CategoryParams lists the params found on one category's products
type CategoryParams struct {
	Name          string         `json:"name"`
	TotalProducts int            `json:"totalProducts"`
	Params        []DerivedParam `json:"params"`
}

type SaveFilterCategory struct {
	CategoryName  string                 `json:"categoryName"`
	TotalProducts int                    `json:"totalProducts"`
	Params        map[string]FilterParam `json:"params" binding:"required"`
}

type SaveFilterRequest struct {
	Categories map[string]SaveFilterCategory `json:"categories" binding:"required"`
	Delay      *int                          `json:"delay" binding:"omitempty,min=0,max=10000"`
}

// ═══════════════════════════════════════════════════════════
// Realized facets
// ═══════════════════════════════════════════════════════════

type FacetValue struct {
	Value              string `json:"value"`
	ValueTotalProducts int    `json:"valueTotalProducts"`
}

type SelectFacet struct {
	TotalProducts int          `json:"totalProducts"`
	Type          string       `json:"type"`
	Values        []FacetValue `json:"values"`
}

type UnitFacet struct {
	TotalProducts int     `json:"totalProducts"`
	Type          string  `json:"type"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
}

// FilterCategoryList methods
func (l *FilterCategoryList) Scan(value interface{}) error {
	if value == nil {
		*l = make(FilterCategoryList, 0)
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return errors.New("failed to scan FilterCategoryList")
	}
	return json.Unmarshal(bytes, l)
}

func (l FilterCategoryList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]FilterCategory{})
	}
	return json.Marshal(l)
}
