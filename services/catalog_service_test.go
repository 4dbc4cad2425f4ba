package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CopperGroup/JoyFer/models"
)

type fakeSources struct {
	calls    atomic.Int32
	products []models.Product
	hook     func()
}

func (f *fakeSources) FetchAllProducts(ctx context.Context) ([]models.Product, error) {
	f.calls.Add(1)
	if f.hook != nil {
		f.hook()
	}
	return f.products, nil
}

func (f *fakeSources) CatalogCategories(ctx context.Context) ([]models.CatalogCategory, error) {
	return []models.CatalogCategory{{Name: "Шафи", CategoryID: "c1", TotalProducts: len(f.products)}}, nil
}

func (f *fakeSources) GetFilterSettingsAndDelay(ctx context.Context) (models.FilterSettings, int, error) {
	return models.FilterSettings{
		"c1": {Params: map[string]models.ParamSetting{"Колір": {TotalProducts: 1, Type: models.ParamTypeSelect}}},
	}, 300, nil
}

func newTestStore(t *testing.T, chunkSize int) (*CatalogStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCatalogStore(rdb, CatalogStoreOptions{ChunkSize: chunkSize, LockTTL: 2 * time.Second}), mr
}

func sampleProducts(n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = models.Product{
			Name:        fmt.Sprintf("Шафа №%d", i),
			Category:    "Шафи",
			PriceToShow: float64(1000 + i),
			Images:      models.StringList{"https://img.example/1.jpg"},
			Params:      models.ParamList{{Name: "Колір", Value: "Білий"}},
			LikedBy:     models.StringList{},
		}
	}
	return products
}

func TestSplitChunks_RoundTrip(t *testing.T) {
	payload, err := json.Marshal(sampleProducts(40))
	require.NoError(t, err)

	for _, threshold := range []int{1, 7, 64, 1000, len(payload), len(payload) * 2} {
		chunks := SplitChunks(payload, threshold)
		assert.Equal(t, string(payload), strings.Join(chunks, ""), "threshold %d", threshold)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), threshold)
			if threshold > 3 {
				assert.True(t, utf8.ValidString(c), "chunk split a rune at threshold %d", threshold)
			}
		}
	}
}

func TestSplitChunks_Count(t *testing.T) {
	ascii := []byte(strings.Repeat("x", 28))
	for threshold := 1; threshold <= 30; threshold++ {
		assert.Len(t, SplitChunks(ascii, threshold), (len(ascii)+threshold-1)/threshold, "threshold %d", threshold)
	}

	// a cut near each € has to back off; the pieces still come out at ceil(32/t)
	payload := []byte("ab€cd€ef€gh€ij€kl€mn")
	for _, threshold := range []int{9, 10, 11} {
		chunks := SplitChunks(payload, threshold)
		assert.Len(t, chunks, (len(payload)+threshold-1)/threshold, "threshold %d", threshold)
		assert.Equal(t, string(payload), strings.Join(chunks, ""))
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), threshold)
			assert.True(t, utf8.ValidString(c))
		}
	}

	// one € per piece is the best a threshold of 5 allows
	assert.Equal(t, []string{"€", "€", "€", "€"}, SplitChunks([]byte("€€€€"), 5))
}

func TestCatalogStore_PublishAndLoad(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 200)

	snap := &models.CatalogSnapshot{
		Products:       sampleProducts(10),
		Categories:     []models.CatalogCategory{{Name: "Шафи", CategoryID: "c1", TotalProducts: 10}},
		FilterSettings: models.FilterSettings{},
		Delay:          250,
	}

	epoch, err := store.Epoch(ctx)
	require.NoError(t, err)
	version, published, err := store.Publish(ctx, snap, epoch)
	require.NoError(t, err)
	require.True(t, published)

	current, err := mr.Get(CatalogCurrentKey)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(version), current)
	assert.True(t, mr.Exists(chunkKey(version, 1)), "payload should span several chunks")

	store.l1.Invalidate()
	loaded, source, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "redis", source)
	assert.Equal(t, snap.Categories, loaded.Categories)
	assert.Equal(t, 250, loaded.Delay)
	require.Len(t, loaded.Products, 10)
	assert.Equal(t, snap.Products[9].Name, loaded.Products[9].Name)

	_, source, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "l1", source)
}

func TestCatalogStore_PublishDropsPreviousVersion(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 0)
	snap := &models.CatalogSnapshot{Products: sampleProducts(1), Categories: []models.CatalogCategory{}, FilterSettings: models.FilterSettings{}}

	first, _, err := store.Publish(ctx, snap, "0")
	require.NoError(t, err)
	second, _, err := store.Publish(ctx, snap, "0")
	require.NoError(t, err)

	assert.Greater(t, second, first)
	assert.False(t, mr.Exists(chunkCountKey(first)))
	assert.True(t, mr.Exists(chunkCountKey(second)))
}

func TestCatalogStore_StalePublishIsDiscarded(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 0)

	epoch, err := store.Epoch(ctx)
	require.NoError(t, err)
	require.NoError(t, store.ClearCatalogCache(ctx))

	snap := &models.CatalogSnapshot{Products: sampleProducts(2), Categories: []models.CatalogCategory{}, FilterSettings: models.FilterSettings{}}
	version, published, err := store.Publish(ctx, snap, epoch)
	require.NoError(t, err)
	assert.False(t, published)
	assert.False(t, mr.Exists(CatalogCurrentKey))
	assert.False(t, mr.Exists(chunkCountKey(version)))
}

func TestCatalogStore_ClearRemovesCatalogKeys(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 100)
	require.NoError(t, mr.Set("session:abc", "keep"))

	snap := &models.CatalogSnapshot{Products: sampleProducts(5), Categories: []models.CatalogCategory{}, FilterSettings: models.FilterSettings{}}
	_, _, err := store.Publish(ctx, snap, "0")
	require.NoError(t, err)

	require.NoError(t, store.ClearCatalogCache(ctx))

	for _, key := range mr.Keys() {
		assert.NotContains(t, key, "catalog")
	}
	assert.True(t, mr.Exists("session:abc"))
	_, _, err = store.Load(ctx)
	assert.ErrorIs(t, err, errCacheMiss)
}

func TestCatalogStore_Lock(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 0)

	ok, err := store.AcquireLock(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.AcquireLock(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)

	// a foreign token does not release the lock
	store.ReleaseLock(ctx, "b")
	assert.True(t, mr.Exists(CatalogLockKey))

	store.ReleaseLock(ctx, "a")
	assert.False(t, mr.Exists(CatalogLockKey))
}

func TestCatalogStore_ClearKeepsRebuildLock(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 0)

	ok, err := store.AcquireLock(ctx, "holder")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.ClearCatalogCache(ctx))
	assert.True(t, mr.Exists(CatalogLockKey))

	ok, err = store.AcquireLock(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok, "a cleared cache must not let a second rebuild start")
}

func TestCatalogService_RecomputesOnMissAndCaches(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 150)
	sources := &fakeSources{products: sampleProducts(6)}
	svc := NewCatalogService(store, sources, sources, sources)

	snap, err := svc.FetchCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Products, 6)
	assert.Equal(t, 300, snap.Delay)
	assert.Equal(t, int32(1), sources.calls.Load())
	assert.True(t, mr.Exists(CatalogCurrentKey))

	_, err = svc.FetchCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), sources.calls.Load())
	assert.False(t, mr.Exists(CatalogLockKey))
}

func TestCatalogService_MissingChunkTriggersRecompute(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 150)
	sources := &fakeSources{products: sampleProducts(6)}
	svc := NewCatalogService(store, sources, sources, sources)

	_, err := svc.FetchCatalog(ctx)
	require.NoError(t, err)

	current, err := mr.Get(CatalogCurrentKey)
	require.NoError(t, err)
	var version int64
	_, err = fmt.Sscan(current, &version)
	require.NoError(t, err)
	require.True(t, mr.Exists(chunkCountKey(version)))

	store.l1.Invalidate()
	mr.Del(chunkKey(version, 0))

	snap, err := svc.FetchCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Products, 6)
	assert.Equal(t, int32(2), sources.calls.Load())
}

func TestCatalogService_ConcurrentMissesShareOneRebuild(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, 0)
	release := make(chan struct{})
	sources := &fakeSources{products: sampleProducts(3)}
	sources.hook = func() { <-release }
	svc := NewCatalogService(store, sources, sources, sources)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := svc.FetchCatalog(ctx)
			assert.NoError(t, err)
			assert.Len(t, snap.Products, 3)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), sources.calls.Load())
}

func TestCatalogService_InvalidationDuringRebuild(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 0)
	sources := &fakeSources{products: sampleProducts(2)}
	sources.hook = func() {
		// an admin edit lands while the snapshot is being assembled
		sources.hook = nil
		require.NoError(t, store.ClearCatalogCache(ctx))
	}
	svc := NewCatalogService(store, sources, sources, sources)

	snap, err := svc.FetchCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Products, 2)
	assert.False(t, mr.Exists(CatalogCurrentKey), "stale snapshot must not be published")

	_, err = svc.FetchCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), sources.calls.Load())
	assert.True(t, mr.Exists(CatalogCurrentKey))
}

func TestCatalogService_WaitsForLockHolder(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, 0)
	sources := &fakeSources{products: sampleProducts(4)}
	svc := NewCatalogService(store, sources, sources, sources)
	svc.lockPoll = 10 * time.Millisecond

	ok, err := store.AcquireLock(ctx, "other-instance")
	require.NoError(t, err)
	require.True(t, ok)

	go func() {
		time.Sleep(50 * time.Millisecond)
		snap := &models.CatalogSnapshot{Products: sampleProducts(4), Categories: []models.CatalogCategory{}, FilterSettings: models.FilterSettings{}}
		_, _, _ = store.Publish(ctx, snap, "0")
		store.ReleaseLock(ctx, "other-instance")
	}()

	snap, err := svc.FetchCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Products, 4)
	assert.Equal(t, int32(0), sources.calls.Load())
}
