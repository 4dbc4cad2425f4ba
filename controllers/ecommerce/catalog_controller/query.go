package catalog_controller

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/CopperGroup/JoyFer/models"
)

// ParseCatalogQuery decodes the storefront query string
func ParseCatalogQuery(values url.Values) (models.CatalogQuery, error) {
	q := models.CatalogQuery{
		Sort:         values.Get("sort"),
		Search:       strings.TrimSpace(values.Get("search")),
		CategoryIDs:  splitList(values["categories"]),
		Vendors:      splitList(values["vendor"]),
		SelectParams: map[string][]string{},
		UnitParams:   map[string]models.PriceRange{},
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("page: %w", err)
		}
		q.Page = page
	}

	var err error
	if q.Price.Min, err = parseBound(values.Get("minPrice")); err != nil {
		return q, fmt.Errorf("minPrice: %w", err)
	}
	if q.Price.Max, err = parseBound(values.Get("maxPrice")); err != nil {
		return q, fmt.Errorf("maxPrice: %w", err)
	}

	for key, vals := range values {
		if name, ok := bracketed(key, "param"); ok {
			q.SelectParams[name] = append(q.SelectParams[name], vals...)
			continue
		}
		if name, ok := bracketed(key, "min"); ok {
			r := q.UnitParams[name]
			if r.Min, err = parseBound(vals[0]); err != nil {
				return q, fmt.Errorf("min[%s]: %w", name, err)
			}
			q.UnitParams[name] = r
			continue
		}
		if name, ok := bracketed(key, "max"); ok {
			r := q.UnitParams[name]
			if r.Max, err = parseBound(vals[0]); err != nil {
				return q, fmt.Errorf("max[%s]: %w", name, err)
			}
			q.UnitParams[name] = r
		}
	}
	return q, nil
}

// splitList accepts both repeated keys and comma separated values
func splitList(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func bracketed(key, prefix string) (string, bool) {
	if !strings.HasPrefix(key, prefix+"[") || !strings.HasSuffix(key, "]") {
		return "", false
	}
	name := key[len(prefix)+1 : len(key)-1]
	return name, name != ""
}

func parseBound(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
