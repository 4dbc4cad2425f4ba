package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CopperGroup/JoyFer/models"
)

func TestSummarizeCatalog(t *testing.T) {
	snap := &models.CatalogSnapshot{
		Products: []models.Product{
			{Vendor: "Nordic Home", Price: 100, PriceToShow: 80, IsAvailable: true, IsFetched: true},
			{Vendor: "Nordic Home", Price: 50, PriceToShow: 50},
			{Price: 20.5, PriceToShow: 20.5, IsAvailable: true},
		},
		Categories: []models.CatalogCategory{
			{Name: "Шафи", TotalProducts: 3},
			{Name: "Лампи", TotalProducts: 0},
		},
	}

	overview := SummarizeCatalog(snap)

	assert.Equal(t, models.CatalogOverview{
		TotalProducts:     3,
		AvailableProducts: 2,
		FetchedProducts:   1,
		Categories:        2,
		EmptyCategories:   1,
		Vendors:           1,
		TotalValue:        150.5,
		AveragePrice:      50.17,
		DiscountedShare:   33.33,
	}, overview)

	assert.Equal(t, models.CatalogOverview{}, SummarizeCatalog(nil))
}
