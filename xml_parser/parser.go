package xml_parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/utils"
)

// MissingParamValue is stored for params that carry a name but no value
const MissingParamValue = "Не вказано"

// FeedCategory is one category entry read from the feed
type FeedCategory struct {
	Name string
	ID   string
	Ref  string
}

// Parse reads an XML feed into products using the given path configuration.
// An empty document or a feed without products yields nil and no error.
func Parse(xmlString string, cfg models.FeedConfig) ([]models.Product, error) {
	compiled, err := Compile(cfg)
	if err != nil {
		return nil, err
	}
	return ParseCompiled(xmlString, compiled)
}

func ParseCompiled(xmlString string, cfg *Config) ([]models.Product, error) {
	if strings.TrimSpace(xmlString) == "" {
		utils.Log.Warn("⚠️ No XML data found")
		return nil, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlString); err != nil {
		return nil, fmt.Errorf("malformed feed XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		utils.Log.Warn("⚠️ No XML data found")
		return nil, nil
	}

	categories := parseCategories(root, cfg)

	productElements := elements(root, cfg.Products)
	if len(productElements) == 0 {
		utils.Log.Warn("⚠️ No product data found in the XML")
		return nil, nil
	}

	products := make([]models.Product, 0, len(productElements))
	for _, el := range productElements {
		products = append(products, parseProduct(el, cfg, categories))
	}

	utils.WithFields(map[string]interface{}{
		"products":   len(products),
		"categories": len(categories),
	}).Info("✅ Feed parsed")
	return products, nil
}

// ParseCategories returns only the category list of a feed
func ParseCategories(xmlString string, cfg *Config) ([]FeedCategory, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlString); err != nil {
		return nil, fmt.Errorf("malformed feed XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, nil
	}
	return parseCategories(doc.Root(), cfg), nil
}

func parseCategories(root *etree.Element, cfg *Config) []FeedCategory {
	if cfg.Categories == nil {
		return nil
	}
	var categories []FeedCategory
	for _, el := range elements(root, *cfg.Categories) {
		categories = append(categories, FeedCategory{
			Name: firstValue(el, cfg.CategoryName),
			ID:   firstValue(el, cfg.CategoryID),
			Ref:  firstValue(el, cfg.ReferenceBy),
		})
	}
	return categories
}

func parseProduct(el *etree.Element, cfg *Config, categories []FeedCategory) models.Product {
	// Step 1: scalar fields
	id := firstValue(el, &cfg.ID)
	priceToShow := ParseNumber(firstValue(el, &cfg.DiscountPrice))
	price := ParseNumber(firstValue(el, cfg.Price))
	if price == 0 {
		price = priceToShow
	}

	isAvailable := true
	if cfg.Available != nil {
		isAvailable = strings.EqualFold(firstValue(el, cfg.Available), "true")
	}

	// Step 2: category reference
	category := ""
	if ref := firstValue(el, cfg.Category); ref != "" {
		for _, c := range categories {
			if c.Ref == ref {
				category = c.Name
				break
			}
		}
	}

	// Step 3: collections
	images := models.StringList{}
	if cfg.Images != nil {
		images = append(images, values(el, *cfg.Images)...)
	}

	params := models.ParamList{}
	if cfg.Params != nil {
		for _, paramEl := range elements(el, *cfg.Params) {
			name := firstValue(paramEl, cfg.ParamName)
			if name == "" {
				continue
			}
			value := firstValue(paramEl, cfg.ParamValue)
			if value == "" {
				value = MissingParamValue
			}
			params = append(params, models.ProductParam{Name: name, Value: value})
		}
	}

	product := models.Product{
		Name:        firstValue(el, &cfg.Name),
		IsAvailable: isAvailable,
		Quantity:    int(ParseNumber(firstValue(el, cfg.Quantity))),
		URL:         firstValue(el, cfg.URL),
		Price:       price,
		PriceToShow: priceToShow,
		Images:      images,
		Vendor:      firstValue(el, cfg.Vendor),
		Description: SanitizeDescription(firstValue(el, cfg.Description)),
		Category:    category,
		Params:      params,
		LikedBy:     models.StringList{},
		IsFetched:   true,
	}
	if id != "" {
		product.ExternalID = &id
	}
	return product
}

// ParseNumber reads "1 299,50" style numbers; anything unparsable is 0
func ParseNumber(raw string) float64 {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\t':
			return -1
		case ',':
			return '.'
		}
		return r
	}, strings.TrimSpace(raw))
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

// ═══════════════════════════════════════════════════════════
// Path evaluation
// ═══════════════════════════════════════════════════════════

// elements returns the elements an Elements path selects below parent
func elements(parent *etree.Element, p Path) []*etree.Element {
	if p.Strategy != Elements {
		return nil
	}
	return descendants(parent, p.Tag, p.Many)
}

// values evaluates any path to its string results
func values(parent *etree.Element, p Path) []string {
	var out []string
	switch p.Strategy {
	case ParentAttribute:
		if v := parent.SelectAttrValue(p.Name, ""); v != "" {
			out = append(out, v)
		}
	case ChildAttribute:
		for _, el := range descendants(parent, p.Tag, p.Many) {
			if v := el.SelectAttrValue(p.Name, ""); v != "" {
				out = append(out, v)
			}
		}
	case ChildText:
		for _, el := range descendants(parent, p.Tag, p.Many) {
			if v := strings.TrimSpace(textContent(el)); v != "" {
				out = append(out, v)
			}
		}
	case OwnText:
		if v := strings.TrimSpace(textContent(parent)); v != "" {
			out = append(out, v)
		}
	case Elements:
		for _, el := range descendants(parent, p.Tag, p.Many) {
			if v := strings.TrimSpace(textContent(el)); v != "" {
				out = append(out, v)
			}
		}
	default:
		panic(fmt.Sprintf("xml_parser: unhandled strategy %s", p.Strategy))
	}
	return out
}

func firstValue(parent *etree.Element, p *Path) string {
	if p == nil {
		return ""
	}
	single := *p
	single.Many = false
	if v := values(parent, single); len(v) > 0 {
		return v[0]
	}
	return ""
}

// descendants walks below parent in document order, excluding parent itself
func descendants(parent *etree.Element, tag string, many bool) []*etree.Element {
	var found []*etree.Element
	var walk func(e *etree.Element) bool
	walk = func(e *etree.Element) bool {
		for _, child := range e.ChildElements() {
			if child.FullTag() == tag {
				found = append(found, child)
				if !many {
					return true
				}
			}
			if walk(child) {
				return true
			}
		}
		return false
	}
	walk(parent)
	return found
}

// textContent concatenates all character data below e, CDATA included
func textContent(e *etree.Element) string {
	var sb strings.Builder
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				sb.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(e)
	return sb.String()
}
