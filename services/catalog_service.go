package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/CopperGroup/JoyFer/metrics"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/utils"
)

type ProductFetcher interface {
	FetchAllProducts(ctx context.Context) ([]models.Product, error)
}

type CategoryLister interface {
	CatalogCategories(ctx context.Context) ([]models.CatalogCategory, error)
}

type FilterSettingsReader interface {
	GetFilterSettingsAndDelay(ctx context.Context) (models.FilterSettings, int, error)
}

// CatalogService serves the assembled catalog from the Redis snapshot and
// rebuilds it from the database on any miss.
type CatalogService struct {
	store      *CatalogStore
	products   ProductFetcher
	categories CategoryLister
	filters    FilterSettingsReader

	group    singleflight.Group
	lockWait time.Duration
	lockPoll time.Duration
}

func NewCatalogService(store *CatalogStore, products ProductFetcher, categories CategoryLister, filters FilterSettingsReader) *CatalogService {
	return &CatalogService{
		store:      store,
		products:   products,
		categories: categories,
		filters:    filters,
		lockWait:   store.opts.LockTTL,
		lockPoll:   100 * time.Millisecond,
	}
}

// FetchCatalog returns the full catalog snapshot. It never returns a partially
// read snapshot: any cache miss is answered by recomputation.
func (s *CatalogService) FetchCatalog(ctx context.Context) (*models.CatalogSnapshot, error) {
	snap, source, err := s.store.Load(ctx)
	if err == nil {
		metrics.RecordCatalogRead(source)
		return snap, nil
	}

	result, err, shared := s.group.Do("catalog", func() (interface{}, error) {
		return s.rebuild(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	if shared {
		utils.Log.Debug("Catalog rebuild shared with a concurrent caller")
	}
	return result.(*models.CatalogSnapshot), nil
}

// ClearCatalogCache drops every stored snapshot
func (s *CatalogService) ClearCatalogCache(ctx context.Context) error {
	return s.store.ClearCatalogCache(ctx)
}

func (s *CatalogService) rebuild(ctx context.Context) (*models.CatalogSnapshot, error) {
	// a previous flight may have published while this one queued
	if snap, source, err := s.store.Load(ctx); err == nil {
		metrics.RecordCatalogRead(source)
		return snap, nil
	}
	metrics.RecordCatalogRead(metrics.SourceRecompute)

	token := uuid.NewString()
	acquired, err := s.store.AcquireLock(ctx, token)
	if err != nil {
		utils.Log.Warnf("⚠️ Catalog lock unavailable, computing without caching: %v", err)
		return s.assemble(ctx)
	}
	if !acquired {
		if snap, ok := s.waitForPublish(ctx); ok {
			return snap, nil
		}
		utils.Log.Warn("⚠️ Catalog rebuild by another instance did not publish in time, computing without caching")
		return s.assemble(ctx)
	}
	defer s.store.ReleaseLock(ctx, token)

	epoch, err := s.store.Epoch(ctx)
	if err != nil {
		utils.Log.Warnf("⚠️ Failed to read invalidation epoch, computing without caching: %v", err)
		return s.assemble(ctx)
	}

	snap, err := s.assemble(ctx)
	if err != nil {
		return nil, err
	}

	if _, _, err := s.store.Publish(ctx, snap, epoch); err != nil {
		// the caller still gets fresh data; the next read retries the write
		utils.Log.Errorf("❌ Failed to cache catalog: %v", err)
	}
	return snap, nil
}

// assemble loads products, categories and filter settings from the database
func (s *CatalogService) assemble(ctx context.Context) (snap *models.CatalogSnapshot, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordCatalogRebuild(time.Since(start), err)
	}()

	products, err := s.products.FetchAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("Error fetching catalog data: %w", err)
	}
	categories, err := s.categories.CatalogCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("Error fetching catalog data: %w", err)
	}
	settings, delay, err := s.filters.GetFilterSettingsAndDelay(ctx)
	if err != nil {
		return nil, fmt.Errorf("Error fetching catalog data: %w", err)
	}

	if products == nil {
		products = []models.Product{}
	}
	if categories == nil {
		categories = []models.CatalogCategory{}
	}
	if settings == nil {
		settings = models.FilterSettings{}
	}

	utils.Log.Infof("[PERF] ⏱️  Catalog assembled from database in %v (%d products)", time.Since(start), len(products))
	return &models.CatalogSnapshot{
		Products:       products,
		Categories:     categories,
		FilterSettings: settings,
		Delay:          delay,
	}, nil
}

func (s *CatalogService) waitForPublish(ctx context.Context) (*models.CatalogSnapshot, bool) {
	deadline := time.NewTimer(s.lockWait)
	defer deadline.Stop()
	ticker := time.NewTicker(s.lockPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, false
		case <-deadline.C:
			return nil, false
		case <-ticker.C:
			if snap, source, err := s.store.Load(ctx); err == nil {
				metrics.RecordCatalogRead(source)
				return snap, true
			}
		}
	}
}
