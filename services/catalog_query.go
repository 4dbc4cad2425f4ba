package services

import (
	"sort"
	"strings"

	"github.com/CopperGroup/JoyFer/models"
)

// QueryCatalog filters, sorts and paginates a catalog snapshot for the storefront.
// Sidebar data (counts, price bounds, vendors, facets) describes the
// category-filtered list before the user's other filters are applied.
func QueryCatalog(snap *models.CatalogSnapshot, q models.CatalogQuery) models.CatalogPage {
	page := models.CatalogPage{
		Products:     []models.Product{},
		Vendors:      []string{},
		SelectParams: map[string]models.SelectFacet{},
		UnitParams:   map[string]models.UnitFacet{},
		Counts: models.CatalogCounts{
			Vendors:    map[string]int{},
			Categories: map[string]int{},
		},
		Categories: []models.CatalogCategory{},
	}
	if snap == nil {
		page.Page = 1
		return page
	}
	page.Categories = snap.Categories
	page.Delay = snap.Delay

	// Step 1: Restrict to the requested categories
	products := filterByCategories(snap.Products, snap.Categories, q.CategoryIDs)

	// Step 2: Sidebar data from the category-filtered list
	fillSidebar(&page, products)
	if len(q.CategoryIDs) > 0 {
		page.SelectParams, page.UnitParams = RealizeFacets(products, snap.FilterSettings, q.CategoryIDs)
	}

	// Step 3: User filters
	products = applyFilters(products, q)

	// Step 4: Sort
	sortProducts(products, q.Sort)

	// Step 5: Paginate
	page.TotalProducts = len(products)
	page.TotalPages = (len(products) + models.CatalogPageSize - 1) / models.CatalogPageSize
	page.Page = q.Page
	if page.Page < 1 {
		page.Page = 1
	}
	start := (page.Page - 1) * models.CatalogPageSize
	if start < len(products) {
		end := start + models.CatalogPageSize
		if end > len(products) {
			end = len(products)
		}
		page.Products = products[start:end]
	}
	return page
}

// filterByCategories keeps products whose category name matches one of the ids.
// The result never aliases the snapshot slice.
func filterByCategories(products []models.Product, categories []models.CatalogCategory, ids []string) []models.Product {
	if len(ids) == 0 {
		out := make([]models.Product, len(products))
		copy(out, products)
		return out
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	names := make(map[string]bool, len(ids))
	for _, c := range categories {
		if wanted[c.CategoryID] {
			names[c.Name] = true
		}
	}

	out := make([]models.Product, 0)
	for _, p := range products {
		if names[p.Category] {
			out = append(out, p)
		}
	}
	return out
}

func fillSidebar(page *models.CatalogPage, products []models.Product) {
	seenVendor := make(map[string]bool)
	for i, p := range products {
		if i == 0 || p.PriceToShow < page.MinPrice {
			page.MinPrice = p.PriceToShow
		}
		if i == 0 || p.PriceToShow > page.MaxPrice {
			page.MaxPrice = p.PriceToShow
		}
		if p.Vendor != "" {
			page.Counts.Vendors[p.Vendor]++
			if !seenVendor[p.Vendor] {
				seenVendor[p.Vendor] = true
				page.Vendors = append(page.Vendors, p.Vendor)
			}
		}
		page.Counts.Categories[p.Category]++
		if p.IsAvailable {
			page.Counts.Available++
		}
	}
	sort.Strings(page.Vendors)
}

func applyFilters(products []models.Product, q models.CatalogQuery) []models.Product {
	vendors := make(map[string]bool, len(q.Vendors))
	for _, v := range q.Vendors {
		vendors[v] = true
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := products[:0]
	for _, p := range products {
		if len(vendors) > 0 && !vendors[p.Vendor] {
			continue
		}
		if !inRange(p.PriceToShow, q.Price) {
			continue
		}
		if !matchesSelectParams(p, q.SelectParams) || !matchesUnitParams(p, q.UnitParams) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func inRange(v float64, r models.PriceRange) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func matchesSelectParams(p models.Product, params map[string][]string) bool {
	for name, values := range params {
		if len(values) == 0 {
			continue
		}
		value, ok := p.ParamValue(name)
		if !ok {
			return false
		}
		found := false
		for _, v := range values {
			if v == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func matchesUnitParams(p models.Product, params map[string]models.PriceRange) bool {
	for name, r := range params {
		if r.Min == nil && r.Max == nil {
			continue
		}
		value, ok := p.ParamValue(name)
		if !ok {
			return false
		}
		n, isNum := ParseParamNumber(value)
		if !isNum || !inRange(n, r) {
			return false
		}
	}
	return true
}

func matchesSearch(p models.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(p.Vendor), needle) {
		return true
	}
	return p.ExternalID != nil && strings.Contains(strings.ToLower(*p.ExternalID), needle)
}

// sortProducts orders by display price; unknown sorts keep insertion order
func sortProducts(products []models.Product, order string) {
	switch order {
	case models.SortLowPrice:
		sort.SliceStable(products, func(i, j int) bool { return products[i].PriceToShow < products[j].PriceToShow })
	case models.SortHighPrice, models.SortHighPriceLegacy:
		sort.SliceStable(products, func(i, j int) bool { return products[i].PriceToShow > products[j].PriceToShow })
	}
}
