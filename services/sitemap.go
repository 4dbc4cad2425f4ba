package services

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/CopperGroup/JoyFer/models"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

var staticPages = []string{
	"/",
	"/info/contacts",
	"/info/warranty-services",
	"/info/delivery-payment",
}

// BuildSitemap renders the storefront sitemap: the static pages followed by
// one entry per catalog product
func BuildSitemap(domain string, products []models.Product) ([]byte, error) {
	domain = strings.TrimRight(domain, "/")

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNamespace)

	for _, page := range staticPages {
		addSitemapURL(urlset, domain+page)
	}
	for _, p := range products {
		addSitemapURL(urlset, fmt.Sprintf("%s/catalog/%s", domain, p.ID))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("render sitemap: %w", err)
	}
	return out, nil
}

func addSitemapURL(urlset *etree.Element, loc string) {
	url := urlset.CreateElement("url")
	url.CreateElement("loc").SetText(loc)
}
