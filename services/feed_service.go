package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CopperGroup/JoyFer/metrics"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/utils"
	"github.com/CopperGroup/JoyFer/xml_parser"
)

const (
	feedFetchTimeout = 30 * time.Second
	maxFeedSize      = 64 << 20
	feedBatchSize    = 100
)

// FeedService previews supplier feeds and syncs the selected products into the catalog
type FeedService struct {
	db     *gorm.DB
	cache  CacheInvalidator
	client *http.Client
}

func NewFeedService(db *gorm.DB, cache CacheInvalidator) *FeedService {
	return &FeedService{
		db:     db,
		cache:  cache,
		client: &http.Client{Timeout: feedFetchTimeout},
	}
}

// ════════════════════════════════════════════════════════════
// Preview
// ════════════════════════════════════════════════════════════

// Preview parses a feed without touching the database. The XML is taken from
// the request or downloaded from its URL; the config is inline, stored by name,
// or the default YML layout.
func (s *FeedService) Preview(ctx context.Context, req models.FeedPreviewRequest) ([]models.Product, error) {
	cfg, err := s.resolveConfig(ctx, req)
	if err != nil {
		return nil, err
	}

	document := req.XML
	if strings.TrimSpace(document) == "" {
		if req.URL == "" {
			return nil, fmt.Errorf("%w: either xml or url is required", ErrInvalidFeed)
		}
		document, err = s.download(ctx, req.URL)
		if err != nil {
			return nil, err
		}
	}

	compiled, err := xml_parser.Compile(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}
	products, err := xml_parser.ParseCompiled(document, compiled)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}
	if products == nil {
		products = []models.Product{}
	}

	utils.Log.Infof("📦 Feed preview parsed %d products", len(products))
	return products, nil
}

func (s *FeedService) resolveConfig(ctx context.Context, req models.FeedPreviewRequest) (models.FeedConfig, error) {
	switch {
	case req.Config != nil:
		return *req.Config, nil
	case req.ConfigName != "":
		record, err := s.GetConfig(ctx, req.ConfigName)
		if err != nil {
			return models.FeedConfig{}, err
		}
		var cfg models.FeedConfig
		if err := json.Unmarshal(record.Config, &cfg); err != nil {
			return models.FeedConfig{}, fmt.Errorf("decode feed config %q: %w", req.ConfigName, err)
		}
		return cfg, nil
	default:
		return models.DefaultFeedConfig(), nil
	}
}

func (s *FeedService) download(ctx context.Context, url string) (string, error) {
	start := time.Now()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}
	response, err := s.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("download feed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: feed url answered %s", ErrInvalidFeed, response.Status)
	}
	body, err := io.ReadAll(io.LimitReader(response.Body, maxFeedSize))
	if err != nil {
		return "", fmt.Errorf("read feed: %w", err)
	}

	utils.Log.Infof("[PERF] ⏱️  Feed downloaded in %v (%d bytes)", time.Since(start), len(body))
	return string(body), nil
}

// ════════════════════════════════════════════════════════════
// Proceed
// ════════════════════════════════════════════════════════════

// Proceed syncs a previewed feed. Fetched products missing from the feed are
// deleted, selected products update the row with the same external id or are
// created. Runs in one transaction.
func (s *FeedService) Proceed(ctx context.Context, req models.FeedProceedRequest) (*models.FeedSyncResult, error) {
	result := &models.FeedSyncResult{}

	selected := make(map[string]bool, len(req.SelectedIDs))
	for _, id := range req.SelectedIDs {
		selected[id] = true
	}
	inFeed := make(map[string]bool, len(req.Products))
	for _, p := range req.Products {
		if p.ExternalID != nil {
			inFeed[*p.ExternalID] = true
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("external_id IS NOT NULL AND is_fetched = ?", true).
			Find(&existing).Error
		if err != nil {
			return fmt.Errorf("load feed products: %w", err)
		}
		byExternalID := make(map[string]*models.Product, len(existing))
		for i := range existing {
			byExternalID[*existing[i].ExternalID] = &existing[i]
		}

		// admin-created products keep their external id and are never overwritten
		var owned []string
		err = tx.Model(&models.Product{}).
			Where("external_id IS NOT NULL AND is_fetched = ?", false).
			Pluck("external_id", &owned).Error
		if err != nil {
			return fmt.Errorf("load admin products: %w", err)
		}
		adminOwned := make(map[string]bool, len(owned))
		for _, id := range owned {
			adminOwned[id] = true
		}

		touched := make([]string, 0)

		// Step 1: Drop fetched products that left the feed
		var leftovers []models.Product
		for _, p := range existing {
			if !inFeed[*p.ExternalID] {
				leftovers = append(leftovers, p)
			}
		}
		if len(leftovers) > 0 {
			ids := make([]interface{}, 0, len(leftovers))
			for _, p := range leftovers {
				ids = append(ids, p.ID)
				touched = append(touched, p.Category)
			}
			if err := tx.Where("id IN ?", ids).Delete(&models.Product{}).Error; err != nil {
				return fmt.Errorf("delete leftover products: %w", err)
			}
			result.Deleted = len(leftovers)
		}

		// Step 2: Update or create the selected products
		processed := make(map[string]bool)
		var created []models.Product
		for _, incoming := range req.Products {
			if incoming.ExternalID == nil {
				continue
			}
			externalID := *incoming.ExternalID
			if !selected[externalID] || processed[externalID] {
				continue
			}
			processed[externalID] = true
			if adminOwned[externalID] {
				utils.Log.Warnf("⚠️ Feed product %s skipped: the external id belongs to an admin-created product", externalID)
				result.Skipped++
				continue
			}

			category := strings.TrimSpace(incoming.Category)
			if category == "" {
				category = models.DefaultCategoryName
			}

			if current, ok := byExternalID[externalID]; ok {
				touched = append(touched, current.Category, category)
				applyFeedProduct(current, incoming, category)
				if err := tx.Save(current).Error; err != nil {
					return fmt.Errorf("update product %s: %w", externalID, err)
				}
				result.Updated++
				continue
			}

			product := models.Product{
				ExternalID: &externalID,
				LikedBy:    models.StringList{},
			}
			applyFeedProduct(&product, incoming, category)
			created = append(created, product)
			touched = append(touched, category)
		}
		if len(created) > 0 {
			if err := tx.CreateInBatches(&created, feedBatchSize).Error; err != nil {
				return fmt.Errorf("create feed products: %w", err)
			}
			result.Created = len(created)
		}

		// Step 3: Re-aggregate every category the sync touched
		return syncCategoryAggregates(tx, touched...)
	})
	if err != nil {
		return nil, fmt.Errorf("Error proceeding products to DB: %w", err)
	}

	utils.Log.Infof("✅ Feed synced: %d created, %d updated, %d deleted, %d skipped", result.Created, result.Updated, result.Deleted, result.Skipped)
	metrics.RecordFeedSync(result.Created, result.Updated, result.Deleted)
	invalidate(ctx, s.cache)
	return result, nil
}

// applyFeedProduct copies the feed-owned fields; likes and ids stay untouched
func applyFeedProduct(dst *models.Product, src models.Product, category string) {
	dst.Name = src.Name
	dst.IsAvailable = src.IsAvailable
	dst.Quantity = src.Quantity
	dst.URL = src.URL
	dst.Price = src.Price
	dst.PriceToShow = src.PriceToShow
	dst.Images = src.Images
	if dst.Images == nil {
		dst.Images = models.StringList{}
	}
	dst.Vendor = src.Vendor
	dst.Description = src.Description
	dst.Params = src.Params
	if dst.Params == nil {
		dst.Params = models.ParamList{}
	}
	dst.Category = category
	dst.IsFetched = true
}

// ════════════════════════════════════════════════════════════
// Stored configs
// ════════════════════════════════════════════════════════════

func (s *FeedService) ListConfigs(ctx context.Context) ([]models.FeedConfigRecord, error) {
	var records []models.FeedConfigRecord
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list feed configs: %w", err)
	}
	return records, nil
}

func (s *FeedService) GetConfig(ctx context.Context, name string) (*models.FeedConfigRecord, error) {
	var record models.FeedConfigRecord
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get feed config: %w", err)
	}
	return &record, nil
}

// SaveConfig validates the path map and stores it under its name, replacing any previous one
func (s *FeedService) SaveConfig(ctx context.Context, req models.SaveFeedConfigRequest) (*models.FeedConfigRecord, error) {
	if _, err := xml_parser.Compile(req.Config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}
	raw, err := json.Marshal(req.Config)
	if err != nil {
		return nil, fmt.Errorf("encode feed config: %w", err)
	}

	record := models.FeedConfigRecord{Name: strings.TrimSpace(req.Name), Config: raw}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"config", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return nil, fmt.Errorf("save feed config: %w", err)
	}

	utils.Log.Infof("✅ Feed config saved: %s", record.Name)
	return &record, nil
}

func (s *FeedService) DeleteConfig(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Where("name = ?", name).Delete(&models.FeedConfigRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete feed config: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
