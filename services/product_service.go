package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalog_cache "github.com/CopperGroup/JoyFer/cache"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/utils"
)

// CacheInvalidator drops every cached catalog snapshot
type CacheInvalidator interface {
	ClearCatalogCache(ctx context.Context) error
}

// ProductService reads and writes products and keeps category aggregates in step
type ProductService struct {
	db    *gorm.DB
	cache CacheInvalidator
}

func NewProductService(db *gorm.DB, cache CacheInvalidator) *ProductService {
	return &ProductService{db: db, cache: cache}
}

// FetchAllProducts returns every product in insertion order
func (s *ProductService) FetchAllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("fetch all products: %w", err)
	}
	return products, nil
}

// FetchFetchedProducts returns the products that came from a feed
func (s *ProductService) FetchFetchedProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Where("is_fetched = ?", true).Order("created_at ASC, id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("fetch fetched products: %w", err)
	}
	return products, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &product, nil
}

// ProductListParams filters the admin product table
type ProductListParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

func (s *ProductService) List(ctx context.Context, params ProductListParams) ([]models.Product, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}

	query := s.db.WithContext(ctx).Model(&models.Product{})
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR vendor ILIKE ? OR external_id ILIKE ?", pattern, pattern, pattern)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	var products []models.Product
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

// Create inserts a product and adds it to its category
func (s *ProductService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	product := req.ToProduct()
	product.Category = strings.TrimSpace(product.Category)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		return syncCategoryAggregates(tx, product.Category)
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "created", product.ID)
	return &product, nil
}

// Update applies the provided fields; both the old and new category are re-aggregated
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req models.UpdateProductRequest) (*models.Product, error) {
	var product models.Product

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load product: %w", err)
		}

		previousCategory := product.Category
		req.Apply(&product)
		product.Category = strings.TrimSpace(product.Category)

		if err := tx.Save(&product).Error; err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		return syncCategoryAggregates(tx, previousCategory, product.Category)
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "updated", product.ID)
	return &product, nil
}

// Delete removes a product and drops it from its category
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load product: %w", err)
		}
		if err := tx.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return syncCategoryAggregates(tx, product.Category)
	})
	if err != nil {
		return err
	}

	s.afterMutation(ctx, "deleted", id)
	return nil
}

func (s *ProductService) afterMutation(ctx context.Context, action string, id uuid.UUID) {
	utils.Log.Infof("✅ Product %s: %s", action, id)
	invalidate(ctx, s.cache)
}

// invalidate drops the catalog cache after a committed mutation; failures only log
func invalidate(ctx context.Context, cache CacheInvalidator) {
	catalog_cache.InvalidateProperties()
	if cache == nil {
		return
	}
	if err := cache.ClearCatalogCache(ctx); err != nil {
		utils.Log.Errorf("❌ Failed to clear catalog cache: %v", err)
	}
}
