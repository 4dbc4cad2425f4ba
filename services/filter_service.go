package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/utils"
)

// FilterService owns the single filter settings row and the facet derivation
type FilterService struct {
	db           *gorm.DB
	cache        CacheInvalidator
	defaultDelay int
}

func NewFilterService(db *gorm.DB, cache CacheInvalidator, defaultDelay int) *FilterService {
	return &FilterService{db: db, cache: cache, defaultDelay: defaultDelay}
}

// Get returns the stored settings row, or an empty one with the default delay
func (s *FilterService) Get(ctx context.Context) (*models.Filter, error) {
	var filter models.Filter
	err := s.db.WithContext(ctx).Order("updated_at DESC").First(&filter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Filter{Categories: models.FilterCategoryList{}, Delay: s.defaultDelay}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get filter settings: %w", err)
	}
	return &filter, nil
}

// GetFilterSettingsAndDelay returns the lookup map cached with the catalog
func (s *FilterService) GetFilterSettingsAndDelay(ctx context.Context) (models.FilterSettings, int, error) {
	filter, err := s.Get(ctx)
	if err != nil {
		return nil, 0, err
	}
	return filter.Settings(), filter.Delay, nil
}

// CategoryParams derives the admin filter page from the current products
func (s *FilterService) CategoryParams(ctx context.Context) (map[string]models.CategoryParams, error) {
	db := s.db.WithContext(ctx)

	var categories []models.Category
	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	var products []models.Product
	if err := db.Select("id", "category", "params").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	filter, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	return DeriveCategoryParams(categories, products, filter.Settings()), nil
}

// Save validates the admin selection against the products and replaces the settings row
func (s *FilterService) Save(ctx context.Context, req models.SaveFilterRequest) (*models.Filter, error) {
	var saved models.Filter

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var categories []models.Category
		if err := tx.Find(&categories).Error; err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		var products []models.Product
		if err := tx.Select("id", "category", "params").Find(&products).Error; err != nil {
			return fmt.Errorf("list products: %w", err)
		}

		derived := DeriveCategoryParams(categories, products, nil)
		list, err := buildFilterCategories(req, derived)
		if err != nil {
			return err
		}

		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).Order("updated_at DESC").First(&saved).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			saved = models.Filter{Categories: list, Delay: s.defaultDelay}
			if req.Delay != nil {
				saved.Delay = *req.Delay
			}
			if err := tx.Create(&saved).Error; err != nil {
				return fmt.Errorf("create filter settings: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("load filter settings: %w", err)
		}

		saved.Categories = list
		if req.Delay != nil {
			saved.Delay = *req.Delay
		}
		if err := tx.Save(&saved).Error; err != nil {
			return fmt.Errorf("update filter settings: %w", err)
		}
		// only one settings row is ever kept
		return tx.Where("id <> ?", saved.ID).Delete(&models.Filter{}).Error
	})
	if err != nil {
		return nil, err
	}

	utils.Log.Infof("✅ Filter settings saved: %d categories, delay %dms", len(saved.Categories), saved.Delay)
	invalidate(ctx, s.cache)
	return &saved, nil
}

// buildFilterCategories turns the admin payload into stored rows. Only params
// present on the category's products are accepted and counts come from the products.
func buildFilterCategories(req models.SaveFilterRequest, derived map[string]models.CategoryParams) (models.FilterCategoryList, error) {
	list := models.FilterCategoryList{}
	for categoryID, cat := range req.Categories {
		observed, ok := derived[categoryID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %s", ErrInvalidFilter, categoryID)
		}
		counts := make(map[string]int, len(observed.Params))
		for _, p := range observed.Params {
			counts[p.Name] = p.TotalProducts
		}

		entry := models.FilterCategory{CategoryID: categoryID, Params: []models.FilterParam{}}
		for key, param := range cat.Params {
			name := param.Name
			if name == "" {
				name = key
			}
			total, present := counts[name]
			if !present {
				return nil, fmt.Errorf("%w: param %q is not used by category %s", ErrInvalidFilter, name, observed.Name)
			}
			if kind, _ := models.ParseParamType(param.Type); kind == models.ParamKindUnknown {
				return nil, fmt.Errorf("%w: param %q has unsupported type %q", ErrInvalidFilter, name, param.Type)
			}
			entry.Params = append(entry.Params, models.FilterParam{Name: name, TotalProducts: total, Type: param.Type})
		}
		sortFilterParams(entry.Params)
		if len(entry.Params) > 0 {
			list = append(list, entry)
		}
	}
	sortFilterCategories(list)
	return list, nil
}

func sortFilterParams(params []models.FilterParam) {
	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })
}

func sortFilterCategories(list models.FilterCategoryList) {
	sort.Slice(list, func(i, j int) bool { return list[i].CategoryID < list[j].CategoryID })
}

// ════════════════════════════════════════════════════════════
// Derivation
// ════════════════════════════════════════════════════════════

// DeriveCategoryParams lists, per category id, every param found on the
// category's products with the number of products carrying it. The type is
// taken from saved settings when present, otherwise inferred from the values.
func DeriveCategoryParams(categories []models.Category, products []models.Product, saved models.FilterSettings) map[string]models.CategoryParams {
	byName := make(map[string][]models.Product, len(categories))
	for _, p := range products {
		byName[p.Category] = append(byName[p.Category], p)
	}

	result := make(map[string]models.CategoryParams, len(categories))
	for _, category := range categories {
		id := category.ID.String()
		members := byName[category.Name]

		type observed struct {
			count   int
			numeric bool
		}
		var order []string
		seen := make(map[string]*observed)
		for _, p := range members {
			counted := make(map[string]bool)
			for _, param := range p.Params {
				o, ok := seen[param.Name]
				if !ok {
					o = &observed{numeric: true}
					seen[param.Name] = o
					order = append(order, param.Name)
				}
				if !counted[param.Name] {
					counted[param.Name] = true
					o.count++
				}
				if _, isNum := ParseParamNumber(param.Value); !isNum {
					o.numeric = false
				}
			}
		}

		savedParams := saved[id].Params
		params := make([]models.DerivedParam, 0, len(order))
		for _, name := range order {
			o := seen[name]
			param := models.DerivedParam{FilterParam: models.FilterParam{Name: name, TotalProducts: o.count}}
			if setting, ok := savedParams[name]; ok {
				param.Type = setting.Type
				param.Selected = true
			} else {
				param.Type = inferParamType(name, o.numeric)
			}
			params = append(params, param)
		}

		result[id] = models.CategoryParams{
			Name:          category.Name,
			TotalProducts: len(members),
			Params:        params,
		}
	}
	return result
}

// inferParamType picks unit-<unit> for numeric params named like "Ширина, см"
func inferParamType(name string, numeric bool) string {
	if !numeric {
		return models.ParamTypeSelect
	}
	if unit, ok := unitSuffix(name); ok {
		return models.UnitType(unit)
	}
	return models.ParamTypeSelect
}

func unitSuffix(name string) (string, bool) {
	i := strings.LastIndex(name, ",")
	if i < 0 {
		return "", false
	}
	unit := strings.TrimSpace(name[i+1:])
	if unit == "" || utf8.RuneCountInString(unit) > 8 {
		return "", false
	}
	for _, r := range unit {
		if !unicode.IsLetter(r) && r != '.' && r != '²' && r != '³' {
			return "", false
		}
	}
	return unit, true
}

// ParseParamNumber reads a numeric param value such as "120" or "45,5"
func ParseParamNumber(v string) (float64, bool) {
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ════════════════════════════════════════════════════════════
// Facet realization
// ════════════════════════════════════════════════════════════

// RealizeFacets builds the storefront facets of the requested categories from
// the given products. Params absent from the settings are ignored.
func RealizeFacets(products []models.Product, settings models.FilterSettings, categoryIDs []string) (map[string]models.SelectFacet, map[string]models.UnitFacet) {
	selectFacets := make(map[string]models.SelectFacet)
	unitFacets := make(map[string]models.UnitFacet)

	for _, id := range categoryIDs {
		for name, setting := range settings[id].Params {
			switch kind, _ := models.ParseParamType(setting.Type); kind {
			case models.ParamKindSelect:
				if _, ok := selectFacets[name]; !ok {
					selectFacets[name] = models.SelectFacet{TotalProducts: setting.TotalProducts, Type: setting.Type, Values: []models.FacetValue{}}
				}
			case models.ParamKindUnit:
				if _, ok := unitFacets[name]; !ok {
					unitFacets[name] = models.UnitFacet{TotalProducts: setting.TotalProducts, Type: setting.Type}
				}
			}
		}
	}
	if len(selectFacets) == 0 && len(unitFacets) == 0 {
		return selectFacets, unitFacets
	}

	valueIndex := make(map[string]map[string]int)
	unitSeen := make(map[string]bool)
	for _, p := range products {
		counted := make(map[models.ProductParam]bool)
		for _, param := range p.Params {
			if facet, ok := selectFacets[param.Name]; ok {
				if counted[param] {
					continue
				}
				counted[param] = true
				idx, ok := valueIndex[param.Name]
				if !ok {
					idx = make(map[string]int)
					valueIndex[param.Name] = idx
				}
				if i, ok := idx[param.Value]; ok {
					facet.Values[i].ValueTotalProducts++
				} else {
					idx[param.Value] = len(facet.Values)
					facet.Values = append(facet.Values, models.FacetValue{Value: param.Value, ValueTotalProducts: 1})
				}
				selectFacets[param.Name] = facet
				continue
			}
			if facet, ok := unitFacets[param.Name]; ok {
				n, isNum := ParseParamNumber(param.Value)
				if !isNum {
					continue
				}
				if !unitSeen[param.Name] {
					facet.Min, facet.Max = n, n
					unitSeen[param.Name] = true
				} else {
					facet.Min = math.Min(facet.Min, n)
					facet.Max = math.Max(facet.Max, n)
				}
				unitFacets[param.Name] = facet
			}
		}
	}
	return selectFacets, unitFacets
}
