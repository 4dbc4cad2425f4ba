package services

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options carries the tunables the services are built with
type Options struct {
	ChunkSize   int
	L1TTL       time.Duration
	LockTTL     time.Duration
	FilterDelay int
	StoreDomain string
}

// Registry holds the process-wide service instances
type Registry struct {
	Store        *CatalogStore
	Catalog      *CatalogService
	Products     *ProductService
	Categories   *CategoryService
	Filters      *FilterService
	Feed         *FeedService
	Users        *UserService
	ActivityLogs *ActivityLogService
	StoreDomain  string
}

// NewRegistry wires every service on top of one database and one Redis client
func NewRegistry(db *gorm.DB, rdb *redis.Client, opts Options) *Registry {
	store := NewCatalogStore(rdb, CatalogStoreOptions{
		ChunkSize: opts.ChunkSize,
		L1TTL:     opts.L1TTL,
		LockTTL:   opts.LockTTL,
	})

	products := NewProductService(db, store)
	categories := NewCategoryService(db, store)
	filters := NewFilterService(db, store, opts.FilterDelay)

	return &Registry{
		Store:        store,
		Catalog:      NewCatalogService(store, products, categories, filters),
		Products:     products,
		Categories:   categories,
		Filters:      filters,
		Feed:         NewFeedService(db, store),
		Users:        NewUserService(db, GetJWTService()),
		ActivityLogs: NewActivityLogService(db),
		StoreDomain:  opts.StoreDomain,
	}
}

var registry *Registry

// Init installs the registry used by the HTTP handlers
func Init(r *Registry) {
	registry = r
}

func GetRegistry() *Registry                     { return registry }
func GetCatalogService() *CatalogService         { return registry.Catalog }
func GetProductService() *ProductService         { return registry.Products }
func GetCategoryService() *CategoryService       { return registry.Categories }
func GetFilterService() *FilterService           { return registry.Filters }
func GetFeedService() *FeedService               { return registry.Feed }
func GetUserService() *UserService               { return registry.Users }
func GetActivityLogService() *ActivityLogService { return registry.ActivityLogs }
