package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/redis/go-redis/v9"

	catalog_cache "github.com/CopperGroup/JoyFer/cache"
	"github.com/CopperGroup/JoyFer/metrics"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/utils"
)

// ════════════════════════════════════════════════════════════
// Redis key layout
// ════════════════════════════════════════════════════════════
//
// Every snapshot key contains "catalog" so that *catalog* matches all of them.
// The sequence and epoch counters and the rebuild lock live outside that
// namespace and survive invalidation, which keeps versions monotonic.

const (
	CatalogCurrentKey = "catalog_current"
	CatalogLockKey    = "storefront:rebuild_lock"
	CatalogKeyPattern = "*catalog*"

	snapshotSeqKey = "storefront:snapshot_seq"
	epochKey       = "storefront:invalidation_epoch"

	DefaultChunkSize = 512 * 1024
)

func chunkKey(v int64, i int) string   { return fmt.Sprintf("catalog_%d_chunk_%d", v, i) }
func chunkCountKey(v int64) string     { return fmt.Sprintf("catalog_%d_chunk_count", v) }
func categoriesKey(v int64) string     { return fmt.Sprintf("catalog_%d_categories", v) }
func filterSettingsKey(v int64) string { return fmt.Sprintf("catalog_%d_filter_settings", v) }
func delayKey(v int64) string          { return fmt.Sprintf("catalog_%d_delay", v) }
func versionMetaKeys(v int64) []string {
	return []string{categoriesKey(v), filterSettingsKey(v), delayKey(v)}
}

// errCacheMiss means the published snapshot is absent or incomplete
var errCacheMiss = errors.New("catalog cache miss")

// publishScript moves catalog_current to the new version only if no
// invalidation happened since the snapshot's sources were read.
var publishScript = redis.NewScript(`
local epoch = redis.call('GET', KEYS[1]) or '0'
if epoch ~= ARGV[1] then
  return 0
end
redis.call('SET', KEYS[2], ARGV[2])
return 1
`)

var releaseLockScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`)

type CatalogStoreOptions struct {
	ChunkSize int
	L1TTL     time.Duration
	LockTTL   time.Duration
}

// CatalogStore keeps chunked, versioned catalog snapshots in Redis with an
// in-process copy of the last one read.
type CatalogStore struct {
	rdb  *redis.Client
	l1   *catalog_cache.SnapshotCache
	opts CatalogStoreOptions
}

func NewCatalogStore(rdb *redis.Client, opts CatalogStoreOptions) *CatalogStore {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = time.Minute
	}
	return &CatalogStore{
		rdb:  rdb,
		l1:   catalog_cache.NewSnapshotCache(opts.L1TTL),
		opts: opts,
	}
}

// ════════════════════════════════════════════════════════════
// Read
// ════════════════════════════════════════════════════════════

// Load returns the published snapshot and where it was served from. Any
// missing key or undecodable payload is reported as errCacheMiss.
func (s *CatalogStore) Load(ctx context.Context) (*models.CatalogSnapshot, string, error) {
	version, err := s.rdb.Get(ctx, CatalogCurrentKey).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.Log.Warnf("⚠️ Catalog pointer read failed: %v", err)
		}
		return nil, "", errCacheMiss
	}

	if snap, ok := s.l1.Get(version); ok {
		return snap, metrics.SourceL1, nil
	}

	snap, err := s.loadVersion(ctx, version)
	if err != nil {
		utils.Log.Debugf("Catalog v%d not served from Redis: %v", version, err)
		return nil, "", errCacheMiss
	}

	s.l1.Set(version, snap)
	return snap, metrics.SourceRedis, nil
}

func (s *CatalogStore) loadVersion(ctx context.Context, version int64) (*models.CatalogSnapshot, error) {
	count, err := s.rdb.Get(ctx, chunkCountKey(version)).Int()
	if err != nil {
		return nil, fmt.Errorf("chunk count: %w", err)
	}
	if count <= 0 {
		return nil, fmt.Errorf("invalid chunk count %d", count)
	}

	keys := make([]string, count)
	for i := range keys {
		keys[i] = chunkKey(version, i)
	}
	chunks, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read chunks: %w", err)
	}

	var sb strings.Builder
	for i, c := range chunks {
		part, ok := c.(string)
		if !ok {
			return nil, fmt.Errorf("chunk %d missing", i)
		}
		sb.WriteString(part)
	}

	snap := &models.CatalogSnapshot{}
	if err := json.Unmarshal([]byte(sb.String()), &snap.Products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	meta, err := s.rdb.MGet(ctx, versionMetaKeys(version)...).Result()
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	categories, ok1 := meta[0].(string)
	settings, ok2 := meta[1].(string)
	delay, ok3 := meta[2].(string)
	if !ok1 || !ok2 || !ok3 {
		return nil, errors.New("metadata missing")
	}
	if err := json.Unmarshal([]byte(categories), &snap.Categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	if err := json.Unmarshal([]byte(settings), &snap.FilterSettings); err != nil {
		return nil, fmt.Errorf("decode filter settings: %w", err)
	}
	if snap.Delay, err = strconv.Atoi(delay); err != nil {
		return nil, fmt.Errorf("decode delay: %w", err)
	}
	return snap, nil
}

// ════════════════════════════════════════════════════════════
// Write
// ════════════════════════════════════════════════════════════

// Epoch returns the invalidation counter; pass it to Publish after the
// snapshot sources have been read.
func (s *CatalogStore) Epoch(ctx context.Context) (string, error) {
	epoch, err := s.rdb.Get(ctx, epochKey).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return epoch, err
}

// Publish writes snap under a fresh version and then points catalog_current
// at it. It reports false when an invalidation raced the write; the new
// version is discarded in that case.
func (s *CatalogStore) Publish(ctx context.Context, snap *models.CatalogSnapshot, epoch string) (int64, bool, error) {
	productsJSON, err := json.Marshal(snap.Products)
	if err != nil {
		return 0, false, fmt.Errorf("encode products: %w", err)
	}
	categoriesJSON, err := json.Marshal(snap.Categories)
	if err != nil {
		return 0, false, fmt.Errorf("encode categories: %w", err)
	}
	settingsJSON, err := json.Marshal(snap.FilterSettings)
	if err != nil {
		return 0, false, fmt.Errorf("encode filter settings: %w", err)
	}

	version, err := s.rdb.Incr(ctx, snapshotSeqKey).Result()
	if err != nil {
		return 0, false, fmt.Errorf("next snapshot version: %w", err)
	}
	previous, err := s.rdb.Get(ctx, CatalogCurrentKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, false, fmt.Errorf("read catalog pointer: %w", err)
	}

	chunks := SplitChunks(productsJSON, s.opts.ChunkSize)

	// Step 1: every key of the version in one MULTI/EXEC
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, c := range chunks {
			pipe.Set(ctx, chunkKey(version, i), c, 0)
		}
		pipe.Set(ctx, chunkCountKey(version), len(chunks), 0)
		pipe.Set(ctx, categoriesKey(version), categoriesJSON, 0)
		pipe.Set(ctx, filterSettingsKey(version), settingsJSON, 0)
		pipe.Set(ctx, delayKey(version), snap.Delay, 0)
		return nil
	})
	if err != nil {
		return 0, false, fmt.Errorf("write snapshot v%d: %w", version, err)
	}

	// Step 2: publish
	published, err := publishScript.Run(ctx, s.rdb, []string{epochKey, CatalogCurrentKey}, epoch, version).Int()
	if err != nil {
		s.deleteVersion(ctx, version, len(chunks))
		return 0, false, fmt.Errorf("publish snapshot v%d: %w", version, err)
	}
	if published == 0 {
		utils.Log.Warnf("⚠️ Catalog v%d discarded: cache was invalidated while it was built", version)
		s.deleteVersion(ctx, version, len(chunks))
		return version, false, nil
	}

	// Step 3: drop the version readers no longer resolve
	if previous > 0 && previous != version {
		s.dropVersion(ctx, previous)
	}

	s.l1.Set(version, snap)
	metrics.SetCatalogChunks(len(chunks))
	utils.Log.Infof("✅ Catalog v%d published: %d products, %d chunks", version, len(snap.Products), len(chunks))
	return version, true, nil
}

func (s *CatalogStore) deleteVersion(ctx context.Context, version int64, chunks int) {
	keys := append(versionMetaKeys(version), chunkCountKey(version))
	for i := 0; i < chunks; i++ {
		keys = append(keys, chunkKey(version, i))
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		utils.Log.Warnf("⚠️ Failed to delete catalog v%d: %v", version, err)
	}
}

// dropVersion deletes an old version whose chunk count is read from Redis
func (s *CatalogStore) dropVersion(ctx context.Context, version int64) {
	count, err := s.rdb.Get(ctx, chunkCountKey(version)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		utils.Log.Warnf("⚠️ Failed to read chunk count of catalog v%d: %v", version, err)
		return
	}
	s.deleteVersion(ctx, version, count)
}

// ════════════════════════════════════════════════════════════
// Invalidation
// ════════════════════════════════════════════════════════════

// ClearCatalogCache removes every *catalog* key and the in-process copy
func (s *CatalogStore) ClearCatalogCache(ctx context.Context) error {
	if err := s.rdb.Incr(ctx, epochKey).Err(); err != nil {
		return fmt.Errorf("bump invalidation epoch: %w", err)
	}
	s.l1.Invalidate()

	var cursor uint64
	deleted := 0
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, CatalogKeyPattern, 100).Result()
		if err != nil {
			return fmt.Errorf("error clearing catalog cache: %w", err)
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("error clearing catalog cache: %w", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	utils.Log.Infof("🧹 Catalog cache cleared (%d keys)", deleted)
	return nil
}

// ════════════════════════════════════════════════════════════
// Rebuild lock
// ════════════════════════════════════════════════════════════

func (s *CatalogStore) AcquireLock(ctx context.Context, token string) (bool, error) {
	return s.rdb.SetNX(ctx, CatalogLockKey, token, s.opts.LockTTL).Result()
}

func (s *CatalogStore) ReleaseLock(ctx context.Context, token string) {
	if err := releaseLockScript.Run(ctx, s.rdb, []string{CatalogLockKey}, token).Err(); err != nil {
		utils.Log.Warnf("⚠️ Failed to release catalog lock: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// Chunking
// ════════════════════════════════════════════════════════════

// SplitChunks cuts data into pieces of at most threshold bytes without
// splitting a UTF-8 sequence. It yields the fewest pieces those two rules
// allow, which is ceil(len/threshold) unless a multi-byte rune straddles a
// cut, and keeps them close to equal in size.
func SplitChunks(data []byte, threshold int) []string {
	if threshold <= 0 {
		threshold = DefaultChunkSize
	}
	if len(data) == 0 {
		return []string{""}
	}

	n := countChunks(data, 0, threshold)
	chunks := make([]string, 0, n)
	for start := 0; start < len(data); {
		left := n - len(chunks)
		remaining := len(data) - start
		end := cutAt(data, start, (remaining+left-1)/left)
		if widest := cutAt(data, start, threshold); end != widest && countChunks(data, end, threshold) > left-1 {
			// the even cut backed off too far
			end = widest
		}
		chunks = append(chunks, string(data[start:end]))
		start = end
	}
	return chunks
}

// cutAt returns the last rune boundary within size bytes of start
func cutAt(data []byte, start, size int) int {
	end := start + size
	if end >= len(data) {
		return len(data)
	}
	for cut := end; cut > start; cut-- {
		if utf8.RuneStart(data[cut]) {
			return cut
		}
	}
	return end
}

// countChunks is the fewest pieces data[start:] can be cut into
func countChunks(data []byte, start, threshold int) int {
	n := 0
	for start < len(data) {
		start = cutAt(data, start, threshold)
		n++
	}
	return n
}
