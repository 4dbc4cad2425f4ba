package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CopperGroup/JoyFer/models"
)

func filterFixture() ([]models.Category, []models.Product) {
	wardrobes := models.Category{ID: uuid.MustParse("0190a0a0-0000-7000-8000-000000000001"), Name: "Шафи"}
	lamps := models.Category{ID: uuid.MustParse("0190a0a0-0000-7000-8000-000000000002"), Name: "Лампи"}

	products := []models.Product{
		{Category: "Шафи", Params: models.ParamList{
			{Name: "Колір", Value: "Білий"},
			{Name: "Ширина, см", Value: "120"},
		}},
		{Category: "Шафи", Params: models.ParamList{
			{Name: "Колір", Value: "Дуб"},
			{Name: "Ширина, см", Value: "80,5"},
			{Name: "Гарантія", Value: "24"},
		}},
		{Category: "Лампи", Params: models.ParamList{
			{Name: "Потужність, Вт", Value: "60"},
		}},
	}
	return []models.Category{wardrobes, lamps}, products
}

func TestDeriveCategoryParams_CountsAndInfersTypes(t *testing.T) {
	categories, products := filterFixture()

	derived := DeriveCategoryParams(categories, products, nil)

	wardrobes := derived[categories[0].ID.String()]
	assert.Equal(t, "Шафи", wardrobes.Name)
	assert.Equal(t, 2, wardrobes.TotalProducts)
	require.Len(t, wardrobes.Params, 3)

	assert.Equal(t, "Колір", wardrobes.Params[0].Name)
	assert.Equal(t, 2, wardrobes.Params[0].TotalProducts)
	assert.Equal(t, models.ParamTypeSelect, wardrobes.Params[0].Type)

	assert.Equal(t, "Ширина, см", wardrobes.Params[1].Name)
	assert.Equal(t, "unit-см", wardrobes.Params[1].Type)

	// numeric but without a unit suffix
	assert.Equal(t, "Гарантія", wardrobes.Params[2].Name)
	assert.Equal(t, 1, wardrobes.Params[2].TotalProducts)
	assert.Equal(t, models.ParamTypeSelect, wardrobes.Params[2].Type)
	assert.False(t, wardrobes.Params[2].Selected)

	lamps := derived[categories[1].ID.String()]
	require.Len(t, lamps.Params, 1)
	assert.Equal(t, "unit-Вт", lamps.Params[0].Type)
}

func TestDeriveCategoryParams_SavedTypeWins(t *testing.T) {
	categories, products := filterFixture()
	id := categories[0].ID.String()
	saved := models.FilterSettings{
		id: {Params: map[string]models.ParamSetting{"Ширина, см": {TotalProducts: 2, Type: models.ParamTypeSelect}}},
	}

	derived := DeriveCategoryParams(categories, products, saved)

	width := derived[id].Params[1]
	assert.Equal(t, models.ParamTypeSelect, width.Type)
	assert.True(t, width.Selected)
}

func TestBuildFilterCategories(t *testing.T) {
	categories, products := filterFixture()
	id := categories[0].ID.String()
	derived := DeriveCategoryParams(categories, products, nil)

	list, err := buildFilterCategories(models.SaveFilterRequest{Categories: map[string]models.SaveFilterCategory{
		id: {Params: map[string]models.FilterParam{
			"Ширина, см": {Name: "Ширина, см", TotalProducts: 99, Type: "unit-см"},
			"Колір":      {Type: models.ParamTypeSelect},
		}},
	}}, derived)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].CategoryID)
	assert.Equal(t, []models.FilterParam{
		{Name: "Колір", TotalProducts: 2, Type: models.ParamTypeSelect},
		{Name: "Ширина, см", TotalProducts: 2, Type: "unit-см"},
	}, list[0].Params)

	_, err = buildFilterCategories(models.SaveFilterRequest{Categories: map[string]models.SaveFilterCategory{
		id: {Params: map[string]models.FilterParam{"Вага": {Type: models.ParamTypeSelect}}},
	}}, derived)
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = buildFilterCategories(models.SaveFilterRequest{Categories: map[string]models.SaveFilterCategory{
		id: {Params: map[string]models.FilterParam{"Колір": {Type: "range"}}},
	}}, derived)
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = buildFilterCategories(models.SaveFilterRequest{Categories: map[string]models.SaveFilterCategory{
		"nope": {Params: map[string]models.FilterParam{}},
	}}, derived)
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestUnitSuffix(t *testing.T) {
	tests := []struct {
		name string
		unit string
		ok   bool
	}{
		{"Ширина, см", "см", true},
		{"Площа, м²", "м²", true},
		{"Вага,кг", "кг", true},
		{"Ширина", "", false},
		{"Розмір, 120x80", "", false},
		{"Опис, дуже довгий текст", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, ok := unitSuffix(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.unit, unit)
		})
	}
}

func TestParseParamNumber(t *testing.T) {
	n, ok := ParseParamNumber(" 45,5 ")
	assert.True(t, ok)
	assert.Equal(t, 45.5, n)

	_, ok = ParseParamNumber("Білий")
	assert.False(t, ok)

	_, ok = ParseParamNumber("")
	assert.False(t, ok)

	_, ok = ParseParamNumber("NaN")
	assert.False(t, ok)
}

func TestRealizeFacets(t *testing.T) {
	_, products := filterFixture()
	settings := models.FilterSettings{
		"c1": {Params: map[string]models.ParamSetting{
			"Колір":      {TotalProducts: 2, Type: models.ParamTypeSelect},
			"Ширина, см": {TotalProducts: 2, Type: "unit-см"},
			"Застарілий": {TotalProducts: 1, Type: "bogus"},
		}},
	}

	selects, units := RealizeFacets(products, settings, []string{"c1", "unknown"})

	require.Contains(t, selects, "Колір")
	color := selects["Колір"]
	assert.Equal(t, 2, color.TotalProducts)
	assert.Equal(t, []models.FacetValue{
		{Value: "Білий", ValueTotalProducts: 1},
		{Value: "Дуб", ValueTotalProducts: 1},
	}, color.Values)

	require.Contains(t, units, "Ширина, см")
	assert.Equal(t, 80.5, units["Ширина, см"].Min)
	assert.Equal(t, 120.0, units["Ширина, см"].Max)

	assert.NotContains(t, selects, "Застарілий")
	assert.NotContains(t, units, "Застарілий")
}

func TestRealizeFacets_CountsEachProductOnce(t *testing.T) {
	products := []models.Product{
		{Params: models.ParamList{{Name: "Колір", Value: "Білий"}, {Name: "Колір", Value: "Білий"}}},
		{Params: models.ParamList{{Name: "Колір", Value: "Білий"}}},
	}
	settings := models.FilterSettings{
		"c1": {Params: map[string]models.ParamSetting{
			"Колір": {TotalProducts: 2, Type: models.ParamTypeSelect},
		}},
	}

	selects, _ := RealizeFacets(products, settings, []string{"c1"})

	require.Contains(t, selects, "Колір")
	assert.Equal(t, []models.FacetValue{{Value: "Білий", ValueTotalProducts: 2}}, selects["Колір"].Values)
}
