package services

import (
	"github.com/CopperGroup/JoyFer/models"
)

// SummarizeCatalog computes the dashboard counters from a snapshot
func SummarizeCatalog(snap *models.CatalogSnapshot) models.CatalogOverview {
	var overview models.CatalogOverview
	if snap == nil {
		return overview
	}

	vendors := make(map[string]struct{})
	discounted := 0
	for _, p := range snap.Products {
		overview.TotalProducts++
		overview.TotalValue += p.PriceToShow
		if p.IsAvailable {
			overview.AvailableProducts++
		}
		if p.IsFetched {
			overview.FetchedProducts++
		}
		if p.PriceToShow < p.Price {
			discounted++
		}
		if p.Vendor != "" {
			vendors[p.Vendor] = struct{}{}
		}
	}
	overview.Vendors = len(vendors)
	overview.TotalValue = round2(overview.TotalValue)

	for _, c := range snap.Categories {
		overview.Categories++
		if c.TotalProducts == 0 {
			overview.EmptyCategories++
		}
	}

	if overview.TotalProducts > 0 {
		overview.AveragePrice = round2(overview.TotalValue / float64(overview.TotalProducts))
		overview.DiscountedShare = round2(float64(discounted) / float64(overview.TotalProducts) * 100)
	}
	return overview
}
