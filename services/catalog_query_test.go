package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CopperGroup/JoyFer/models"
)

func ptrTo[T any](v T) *T {
	return &v
}

func testSnapshot(products []models.Product) *models.CatalogSnapshot {
	return &models.CatalogSnapshot{
		Products: products,
		Categories: []models.CatalogCategory{
			{Name: "A", CategoryID: "cat-a", TotalProducts: 2},
			{Name: "B", CategoryID: "cat-b", TotalProducts: 1},
		},
		FilterSettings: models.FilterSettings{},
		Delay:          250,
	}
}

func TestQueryCatalog_CategoryFilterKeepsOrder(t *testing.T) {
	snap := testSnapshot([]models.Product{
		{Name: "first", Category: "A", PriceToShow: 10},
		{Name: "second", Category: "B", PriceToShow: 20},
		{Name: "third", Category: "A", PriceToShow: 5},
	})

	page := QueryCatalog(snap, models.CatalogQuery{CategoryIDs: []string{"cat-a"}})

	require.Len(t, page.Products, 2)
	assert.Equal(t, "first", page.Products[0].Name)
	assert.Equal(t, 10.0, page.Products[0].PriceToShow)
	assert.Equal(t, "third", page.Products[1].Name)
	assert.Equal(t, 5.0, page.Products[1].PriceToShow)
	assert.Equal(t, 2, page.TotalProducts)
	assert.Equal(t, 250, page.Delay)

	// the snapshot itself is untouched
	assert.Len(t, snap.Products, 3)
	assert.Equal(t, "second", snap.Products[1].Name)
}

func TestQueryCatalog_UnknownCategoryMatchesNothing(t *testing.T) {
	snap := testSnapshot([]models.Product{{Category: "A"}, {Category: "B"}})

	page := QueryCatalog(snap, models.CatalogQuery{CategoryIDs: []string{"missing"}})

	assert.Empty(t, page.Products)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Products)
}

func TestQueryCatalog_PagesAreContiguous(t *testing.T) {
	var products []models.Product
	for i := 0; i < 30; i++ {
		products = append(products, models.Product{Name: fmt.Sprintf("p%02d", i), Category: "A", PriceToShow: float64(100 - i)})
	}
	snap := testSnapshot(products)

	var all []models.Product
	for n := 1; n <= 3; n++ {
		page := QueryCatalog(snap, models.CatalogQuery{Page: n})
		assert.LessOrEqual(t, len(page.Products), models.CatalogPageSize)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, n, page.Page)
		all = append(all, page.Products...)
	}
	require.Len(t, all, 30)
	for i, p := range all {
		assert.Equal(t, fmt.Sprintf("p%02d", i), p.Name)
	}

	last := QueryCatalog(snap, models.CatalogQuery{Page: 3})
	assert.Len(t, last.Products, 6)

	beyond := QueryCatalog(snap, models.CatalogQuery{Page: 9})
	assert.Empty(t, beyond.Products)

	unspecified := QueryCatalog(snap, models.CatalogQuery{})
	assert.Equal(t, 1, unspecified.Page)
	assert.Equal(t, "p00", unspecified.Products[0].Name)
}

func TestQueryCatalog_PriceSortsReverseEachOther(t *testing.T) {
	prices := []float64{40, 10, 30, 20, 50}
	var products []models.Product
	for i, price := range prices {
		products = append(products, models.Product{Name: fmt.Sprintf("p%d", i), PriceToShow: price})
	}
	snap := testSnapshot(products)

	low := QueryCatalog(snap, models.CatalogQuery{Sort: models.SortLowPrice}).Products
	high := QueryCatalog(snap, models.CatalogQuery{Sort: models.SortHighPrice}).Products
	legacy := QueryCatalog(snap, models.CatalogQuery{Sort: models.SortHighPriceLegacy}).Products

	require.Len(t, low, len(prices))
	require.Len(t, high, len(prices))
	for i := range low {
		assert.Equal(t, low[i].Name, high[len(high)-1-i].Name)
	}
	assert.Equal(t, high, legacy)
	assert.Equal(t, 10.0, low[0].PriceToShow)
	assert.Equal(t, 50.0, high[0].PriceToShow)
}

func TestQueryCatalog_SidebarIgnoresUserFilters(t *testing.T) {
	snap := testSnapshot([]models.Product{
		{Name: "Desk", Category: "A", Vendor: "Nordic", PriceToShow: 100, IsAvailable: true},
		{Name: "Chair", Category: "A", Vendor: "Oak", PriceToShow: 40},
		{Name: "Lamp", Category: "B", Vendor: "Nordic", PriceToShow: 15, IsAvailable: true},
	})

	page := QueryCatalog(snap, models.CatalogQuery{
		Vendors: []string{"Oak"},
		Price:   models.PriceRange{Min: ptrTo(20.0)},
	})

	require.Len(t, page.Products, 1)
	assert.Equal(t, "Chair", page.Products[0].Name)
	assert.Equal(t, 15.0, page.MinPrice)
	assert.Equal(t, 100.0, page.MaxPrice)
	assert.Equal(t, []string{"Nordic", "Oak"}, page.Vendors)
	assert.Equal(t, 2, page.Counts.Vendors["Nordic"])
	assert.Equal(t, 2, page.Counts.Categories["A"])
	assert.Equal(t, 2, page.Counts.Available)
}

func TestQueryCatalog_SearchAndParams(t *testing.T) {
	snap := testSnapshot([]models.Product{
		{Name: "Шафа Nordic", Category: "A", ExternalID: ptrTo("SKU-1"), Params: models.ParamList{
			{Name: "Колір", Value: "Білий"}, {Name: "Ширина, см", Value: "120"},
		}},
		{Name: "Шафа Oak", Category: "A", ExternalID: ptrTo("SKU-2"), Params: models.ParamList{
			{Name: "Колір", Value: "Дуб"}, {Name: "Ширина, см", Value: "80"},
		}},
	})

	bySearch := QueryCatalog(snap, models.CatalogQuery{Search: "sku-2"})
	require.Len(t, bySearch.Products, 1)
	assert.Equal(t, "Шафа Oak", bySearch.Products[0].Name)

	bySelect := QueryCatalog(snap, models.CatalogQuery{SelectParams: map[string][]string{"Колір": {"Білий"}}})
	require.Len(t, bySelect.Products, 1)
	assert.Equal(t, "Шафа Nordic", bySelect.Products[0].Name)

	byUnit := QueryCatalog(snap, models.CatalogQuery{UnitParams: map[string]models.PriceRange{
		"Ширина, см": {Max: ptrTo(100.0)},
	}})
	require.Len(t, byUnit.Products, 1)
	assert.Equal(t, "Шафа Oak", byUnit.Products[0].Name)
}

func TestQueryCatalog_FacetsOnlyForCategorySearch(t *testing.T) {
	snap := testSnapshot([]models.Product{
		{Category: "A", Params: models.ParamList{{Name: "Колір", Value: "Білий"}, {Name: "Ширина, см", Value: "120"}}},
		{Category: "A", Params: models.ParamList{{Name: "Колір", Value: "Білий"}, {Name: "Ширина, см", Value: "80"}}},
		{Category: "B", Params: models.ParamList{{Name: "Колір", Value: "Чорний"}}},
	})
	snap.FilterSettings = models.FilterSettings{
		"cat-a": {Params: map[string]models.ParamSetting{
			"Колір":      {TotalProducts: 2, Type: models.ParamTypeSelect},
			"Ширина, см": {TotalProducts: 2, Type: "unit-см"},
		}},
	}

	plain := QueryCatalog(snap, models.CatalogQuery{})
	assert.Empty(t, plain.SelectParams)
	assert.Empty(t, plain.UnitParams)

	page := QueryCatalog(snap, models.CatalogQuery{CategoryIDs: []string{"cat-a"}})
	require.Contains(t, page.SelectParams, "Колір")
	assert.Equal(t, []models.FacetValue{{Value: "Білий", ValueTotalProducts: 2}}, page.SelectParams["Колір"].Values)
	require.Contains(t, page.UnitParams, "Ширина, см")
	assert.Equal(t, 80.0, page.UnitParams["Ширина, см"].Min)
	assert.Equal(t, 120.0, page.UnitParams["Ширина, см"].Max)
}

func TestQueryCatalog_NilSnapshot(t *testing.T) {
	page := QueryCatalog(nil, models.CatalogQuery{Page: 4})
	assert.Equal(t, 1, page.Page)
	assert.Empty(t, page.Products)
}
