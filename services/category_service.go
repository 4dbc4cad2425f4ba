package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalog_cache "github.com/CopperGroup/JoyFer/cache"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/utils"
)

// CategoryService manages category aggregates. Every mutation runs in one
// transaction that locks the touched category rows and recomputes their
// member list and total value from the products table.
type CategoryService struct {
	db    *gorm.DB
	cache CacheInvalidator
}

func NewCategoryService(db *gorm.DB, cache CacheInvalidator) *CategoryService {
	return &CategoryService{db: db, cache: cache}
}

// ════════════════════════════════════════════════════════════
// Reads
// ════════════════════════════════════════════════════════════

// ListProperties returns one row per category for the admin table
func (s *CategoryService) ListProperties(ctx context.Context) ([]models.CategoryProperties, error) {
	if cached, ok := catalog_cache.GetProperties(); ok {
		return cached, nil
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	result := make([]models.CategoryProperties, 0, len(categories))
	for _, c := range categories {
		var row models.CategoryProperties
		row.Category.ID = c.ID
		row.Category.Name = c.Name
		row.Values.TotalProducts = len(c.Products)
		row.Values.TotalValue = c.TotalValue
		if n := len(c.Products); n > 0 {
			row.Values.AverageProductPrice = round2(c.TotalValue / float64(n))
		}
		result = append(result, row)
	}

	catalog_cache.SetProperties(result)
	return result, nil
}

// CatalogCategories returns the compact {name, categoryId, totalProducts} list
func (s *CategoryService) CatalogCategories(ctx context.Context) ([]models.CatalogCategory, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	result := make([]models.CatalogCategory, 0, len(categories))
	for _, c := range categories {
		result = append(result, models.CatalogCategory{
			Name:          c.Name,
			CategoryID:    c.ID.String(),
			TotalProducts: len(c.Products),
		})
	}
	return result, nil
}

// Get returns a category with its products and price statistics
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.CategoryDetails, error) {
	db := s.db.WithContext(ctx)

	var category models.Category
	if err := db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	var products []models.Product
	if err := db.Where("category = ?", category.Name).Order("created_at ASC, id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("get category products: %w", err)
	}

	return categoryDetails(category, products), nil
}

func categoryDetails(category models.Category, products []models.Product) *models.CategoryDetails {
	details := &models.CategoryDetails{
		ID:           category.ID,
		CategoryName: category.Name,
		Products:     products,
	}

	var listTotal float64
	for _, p := range products {
		details.TotalProducts++
		details.TotalValue += p.PriceToShow
		listTotal += p.Price
	}
	details.TotalValue = round2(details.TotalValue)
	if details.TotalProducts > 0 {
		details.AverageProductPrice = round2(details.TotalValue / float64(details.TotalProducts))
	}
	if listTotal > 0 {
		details.AverageDiscountPercentage = 100 - int(math.Round(details.TotalValue/listTotal*100))
	}
	return details
}

// ════════════════════════════════════════════════════════════
// Mutations
// ════════════════════════════════════════════════════════════

// Create makes a new category and moves the given products into it
func (s *CategoryService) Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	var category models.Category

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Category{}).Where("name = ?", name).Count(&existing).Error; err != nil {
			return fmt.Errorf("check category name: %w", err)
		}
		if existing > 0 {
			return ErrCategoryExists
		}

		category = models.Category{Name: name, Products: models.UUIDList{}}
		if err := tx.Create(&category).Error; err != nil {
			return fmt.Errorf("create category: %w", err)
		}

		touched := []string{name}
		if req.PreviousCategoryID != nil {
			var previous models.Category
			if err := tx.Select("name").First(&previous, "id = ?", *req.PreviousCategoryID).Error; err == nil {
				touched = append(touched, previous.Name)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("load previous category: %w", err)
			}
		}

		moved, err := reassignProducts(tx, req.ProductIDs, name)
		if err != nil {
			return err
		}
		touched = append(touched, moved...)

		if err := syncCategoryAggregates(tx, touched...); err != nil {
			return err
		}
		return tx.First(&category, "id = ?", category.ID).Error
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "created", category.Name)
	return &category, nil
}

// Rename changes a category's name on the category and on all of its products
func (s *CategoryService) Rename(ctx context.Context, id uuid.UUID, newName string) (*models.Category, error) {
	newName = strings.TrimSpace(newName)
	var category models.Category

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCategory(tx, id, &category); err != nil {
			return err
		}
		if category.Name == newName {
			return nil
		}

		var clash int64
		if err := tx.Model(&models.Category{}).Where("name = ? AND id <> ?", newName, id).Count(&clash).Error; err != nil {
			return fmt.Errorf("check category name: %w", err)
		}
		if clash > 0 {
			return ErrCategoryExists
		}

		oldName := category.Name
		if err := tx.Model(&category).Update("name", newName).Error; err != nil {
			return fmt.Errorf("rename category: %w", err)
		}
		category.Name = newName
		if err := tx.Model(&models.Product{}).Where("category = ?", oldName).Update("category", newName).Error; err != nil {
			return fmt.Errorf("rename category on products: %w", err)
		}
		return syncCategoryAggregates(tx, newName)
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "renamed", newName)
	return &category, nil
}

// MoveProducts moves products from the source category into the target category
func (s *CategoryService) MoveProducts(ctx context.Context, sourceID uuid.UUID, req models.MoveProductsRequest) error {
	var target models.Category

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var source models.Category
		if err := lockCategory(tx, sourceID, &source); err != nil {
			return err
		}
		if err := lockCategory(tx, req.TargetCategoryID, &target); err != nil {
			return err
		}

		moved, err := reassignProducts(tx, req.ProductIDs, target.Name)
		if err != nil {
			return err
		}
		return syncCategoryAggregates(tx, append(moved, source.Name, target.Name)...)
	})
	if err != nil {
		return err
	}

	s.afterMutation(ctx, "moved products into", target.Name)
	return nil
}

// SetDiscount reprices every product of the category to price minus percentage
func (s *CategoryService) SetDiscount(ctx context.Context, id uuid.UUID, percentage float64) error {
	if percentage < 0 || percentage > 100 {
		return fmt.Errorf("discount percentage must be between 0 and 100, got %v", percentage)
	}
	var category models.Category

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCategory(tx, id, &category); err != nil {
			return err
		}
		err := tx.Model(&models.Product{}).
			Where("category = ?", category.Name).
			Update("price_to_show", gorm.Expr("ROUND(price - price * ? / 100, 2)", percentage)).Error
		if err != nil {
			return fmt.Errorf("apply discount: %w", err)
		}
		return syncCategoryAggregates(tx, category.Name)
	})
	if err != nil {
		return err
	}

	s.afterMutation(ctx, fmt.Sprintf("discounted %.0f%%", percentage), category.Name)
	return nil
}

// Delete removes the category. Its products are deleted too when removeProducts
// is set, otherwise they move to the default category. The default category
// itself can only be dropped while empty or together with its products.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID, opts models.DeleteCategoryOptions) error {
	var category models.Category

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCategory(tx, id, &category); err != nil {
			return err
		}

		products := tx.Model(&models.Product{}).Where("category = ?", category.Name)
		touched := []string{}
		if category.Name == models.DefaultCategoryName && !opts.RemoveProducts {
			var held int64
			if err := tx.Model(&models.Product{}).Where("category = ?", category.Name).Count(&held).Error; err != nil {
				return fmt.Errorf("count category products: %w", err)
			}
			if held > 0 {
				return ErrDefaultCategory
			}
		}
		if opts.RemoveProducts {
			if err := tx.Where("category = ?", category.Name).Delete(&models.Product{}).Error; err != nil {
				return fmt.Errorf("delete category products: %w", err)
			}
		} else if category.Name != models.DefaultCategoryName {
			if err := products.Update("category", models.DefaultCategoryName).Error; err != nil {
				return fmt.Errorf("release category products: %w", err)
			}
			touched = append(touched, models.DefaultCategoryName)
		}

		if err := tx.Delete(&models.Category{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return syncCategoryAggregates(tx, touched...)
	})
	if err != nil {
		return err
	}

	s.afterMutation(ctx, "deleted", category.Name)
	return nil
}

func (s *CategoryService) afterMutation(ctx context.Context, action, name string) {
	utils.Log.Infof("✅ Category %s: %s", action, name)
	invalidate(ctx, s.cache)
}

// ════════════════════════════════════════════════════════════
// Aggregate maintenance
// ════════════════════════════════════════════════════════════

type categoryMember struct {
	ID          uuid.UUID
	PriceToShow float64
}

// syncCategoryAggregates recomputes products and total_value of every named
// category from the products table. Rows are locked in name order.
func syncCategoryAggregates(tx *gorm.DB, names ...string) error {
	for _, name := range uniqueSorted(names) {
		var category models.Category
		exists := true
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("name = ?", name).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			exists = false
		} else if err != nil {
			return fmt.Errorf("lock category %q: %w", name, err)
		}

		var members []categoryMember
		err = tx.Model(&models.Product{}).
			Select("id", "price_to_show").
			Where("category = ?", name).
			Order("created_at ASC, id ASC").
			Find(&members).Error
		if err != nil {
			return fmt.Errorf("load members of %q: %w", name, err)
		}
		ids, total := aggregateMembers(members)

		if !exists {
			if len(ids) == 0 {
				continue
			}
			created := models.Category{Name: name, Products: ids, TotalValue: total}
			if err := tx.Create(&created).Error; err != nil {
				return fmt.Errorf("create category %q: %w", name, err)
			}
			continue
		}

		err = tx.Model(&category).Updates(map[string]interface{}{
			"products":    ids,
			"total_value": total,
		}).Error
		if err != nil {
			return fmt.Errorf("update category %q: %w", name, err)
		}
	}
	return nil
}

func aggregateMembers(members []categoryMember) (models.UUIDList, float64) {
	ids := make(models.UUIDList, 0, len(members))
	var total float64
	for _, m := range members {
		ids = append(ids, m.ID)
		total += m.PriceToShow
	}
	return ids, round2(total)
}

// reassignProducts moves products into category name and returns the names they left
func reassignProducts(tx *gorm.DB, ids []uuid.UUID, name string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var previous []string
	if err := tx.Model(&models.Product{}).Where("id IN ?", ids).Distinct().Pluck("category", &previous).Error; err != nil {
		return nil, fmt.Errorf("load product categories: %w", err)
	}
	if err := tx.Model(&models.Product{}).Where("id IN ?", ids).Update("category", name).Error; err != nil {
		return nil, fmt.Errorf("move products: %w", err)
	}
	return previous, nil
}

func lockCategory(tx *gorm.DB, id uuid.UUID, category *models.Category) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock category: %w", err)
	}
	return nil
}

func uniqueSorted(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
