package xml_parser

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/CopperGroup/JoyFer/models"
)

// Strategy is how one path reads data relative to its parent element
type Strategy int

const (
	// ParentAttribute reads attribute Name of the parent itself
	ParentAttribute Strategy = iota
	// ChildAttribute reads attribute Name of descendants tagged Tag
	ChildAttribute
	// ChildText reads the text of descendants tagged Tag
	ChildText
	// OwnText reads the parent's own text content
	OwnText
	// Elements selects descendants tagged Tag
	Elements
)

func (s Strategy) String() string {
	switch s {
	case ParentAttribute:
		return "ParentAttribute"
	case ChildAttribute:
		return "ChildAttribute"
	case ChildText:
		return "ChildText"
	case OwnText:
		return "OwnText"
	case Elements:
		return "Elements"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Path is a compiled FeedPath
type Path struct {
	Strategy Strategy
	Tag      string
	Name     string
	Many     bool
}

// compilePath resolves a FeedPath against the tag of the element it will be applied to
func compilePath(p models.FeedPath, parentTag string) Path {
	switch {
	case p.AttributeOf != "" && p.AttributeOf == parentTag:
		return Path{Strategy: ParentAttribute, Name: p.Value, Many: p.Many}
	case p.AttributeOf != "" && p.Value == models.ContentValue:
		return Path{Strategy: ChildText, Tag: p.AttributeOf, Many: p.Many}
	case p.AttributeOf != "":
		return Path{Strategy: ChildAttribute, Tag: p.AttributeOf, Name: p.Value, Many: p.Many}
	case p.Value == models.ContentValue:
		return Path{Strategy: OwnText}
	default:
		return Path{Strategy: Elements, Tag: p.Value, Many: p.Many}
	}
}

func compileOptional(p *models.FeedPath, parentTag string) *Path {
	if p == nil {
		return nil
	}
	c := compilePath(*p, parentTag)
	return &c
}

// Config is a FeedConfig compiled into typed extraction paths
type Config struct {
	Categories *Path
	Products   Path

	CategoryName *Path
	CategoryID   *Path
	ReferenceBy  *Path

	ID            Path
	Available     *Path
	Quantity      *Path
	URL           *Path
	DiscountPrice Path
	Price         *Path
	Images        *Path
	Vendor        *Path
	Name          Path
	Description   *Path
	Params        *Path
	Category      *Path

	ParamName  *Path
	ParamValue *Path
}

var validate = validator.New()

// Compile validates a FeedConfig and resolves every path into a strategy
func Compile(cfg models.FeedConfig) (*Config, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid feed config: %w", err)
	}

	paths := cfg.Paths
	if paths.Start.Products.AttributeOf != "" || paths.Start.Products.Value == models.ContentValue {
		return nil, fmt.Errorf("invalid feed config: Start.products must name an element")
	}

	productTag := paths.Start.Products.Value
	c := &Config{
		Products:      Path{Strategy: Elements, Tag: productTag, Many: true},
		ID:            compilePath(paths.Products.ID, productTag),
		Available:     compileOptional(paths.Products.Available, productTag),
		Quantity:      compileOptional(paths.Products.Quantity, productTag),
		URL:           compileOptional(paths.Products.URL, productTag),
		DiscountPrice: compilePath(paths.Products.DiscountPrice, productTag),
		Price:         compileOptional(paths.Products.Price, productTag),
		Vendor:        compileOptional(paths.Products.Vendor, productTag),
		Name:          compilePath(paths.Products.Name, productTag),
		Description:   compileOptional(paths.Products.Description, productTag),
		Category:      compileOptional(paths.Products.Category, productTag),
	}

	// images and params are always collections
	if p := paths.Products.Images; p != nil {
		img := compilePath(*p, productTag)
		img.Many = true
		c.Images = &img
	}
	if p := paths.Products.Params; p != nil {
		if p.AttributeOf != "" || p.Value == models.ContentValue {
			return nil, fmt.Errorf("invalid feed config: Products.params must name an element")
		}
		c.Params = &Path{Strategy: Elements, Tag: p.Value, Many: true}
		if paths.Params.Name == nil {
			return nil, fmt.Errorf("invalid feed config: Params.name is required when Products.params is set")
		}
		c.ParamName = compileOptional(paths.Params.Name, p.Value)
		c.ParamValue = compileOptional(paths.Params.Value, p.Value)
	}

	if p := paths.Start.Categories; p != nil {
		if p.AttributeOf != "" || p.Value == models.ContentValue {
			return nil, fmt.Errorf("invalid feed config: Start.categories must name an element")
		}
		cats := paths.Categories
		if cats.Name == nil || cats.ReferenceBy == nil {
			return nil, fmt.Errorf("invalid feed config: Categories.name and Categories.reference_by are required")
		}
		c.Categories = &Path{Strategy: Elements, Tag: p.Value, Many: true}
		c.CategoryName = compileOptional(cats.Name, p.Value)
		c.CategoryID = compileOptional(cats.CategoryID, p.Value)
		c.ReferenceBy = compileOptional(cats.ReferenceBy, p.Value)
	}

	return c, nil
}
