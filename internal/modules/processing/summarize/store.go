package summarize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/biulino/ai-summary-plugin/internal/models"
	"github.com/biulino/ai-summary-plugin/internal/pkg/metrics"
	"github.com/biulino/ai-summary-plugin/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	cachePrefix         = "ai_summary:"
	summaryCachePrefix  = cachePrefix + "summary:"
	responseCachePrefix = cachePrefix + "response:"

	summaryCacheTTL  = 24 * time.Hour
	responseCacheTTL = time.Hour
)

// Stats describes the stored summary population for the admin surface.
type Stats struct {
	Total      int64            `json:"total"`
	Done       int64            `json:"done"`
	ByProvider map[string]int64 `json:"by_provider"`
}

// Store persists summaries in the database and mirrors them into Redis.
// The database is the source of truth; the cache only absorbs read load
// and a Redis outage degrades to plain database reads.
type Store struct {
	db      *gorm.DB
	cache   *redis.Client
	metrics *metrics.Recorder
	logger  *zap.Logger
}

func NewStore(db *gorm.DB, cache *redis.Client, recorder *metrics.Recorder, logger *zap.Logger) *Store {
	return &Store{db: db, cache: cache, metrics: recorder, logger: logger}
}

func cacheKey(prefix, raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return prefix + hex.EncodeToString(sum[:])
}

// Get returns the summary for a document, or nil when none is stored.
// Cache hits skip the database; misses fall through and backfill.
func (s *Store) Get(ctx context.Context, documentID string) (*models.SummaryModel, error) {
	key := cacheKey(summaryCachePrefix, documentID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			var summary models.SummaryModel
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				s.metrics.CacheHit()
				return &summary, nil
			}
			// Unreadable cache entries are dropped, not trusted.
			_ = s.cache.Del(ctx, key)
		}
		s.metrics.CacheMiss()
	}

	var summary models.SummaryModel
	if err := s.db.First(&summary, "document_id = ?", documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	s.fillCache(ctx, key, &summary)
	return &summary, nil
}

// Set upserts the summary row for a document and refreshes the cache.
func (s *Store) Set(ctx context.Context, summary *models.SummaryModel) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "document_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"summary_text", "key_points", "faq_items",
			"provider", "generated_at", "done", "updated_at",
		}),
	}).Create(summary).Error
	if err != nil {
		return err
	}

	s.fillCache(ctx, cacheKey(summaryCachePrefix, summary.DocumentID), summary)
	return nil
}

// Delete removes the stored summary and its cache entry.
func (s *Store) Delete(ctx context.Context, documentID string) error {
	if err := s.db.Delete(&models.SummaryModel{}, "document_id = ?", documentID).Error; err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, cacheKey(summaryCachePrefix, documentID)); err != nil {
			s.logger.Warn("summary cache delete failed", zap.Error(err))
		}
	}
	return nil
}

// CachedResponse returns a previously cached raw provider response for the
// given prepared content, or "" when nothing usable is cached.
func (s *Store) CachedResponse(ctx context.Context, content string) string {
	if s.cache == nil {
		return ""
	}
	cached, err := s.cache.Get(ctx, cacheKey(responseCachePrefix, content))
	if err != nil {
		s.logger.Warn("response cache read failed", zap.Error(err))
		return ""
	}
	if cached == "" {
		s.metrics.CacheMiss()
	} else {
		s.metrics.CacheHit()
	}
	return cached
}

// CacheResponse stores a raw provider response keyed by the prepared content,
// so a retry within the hour skips the provider call.
func (s *Store) CacheResponse(ctx context.Context, content, raw string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(responseCachePrefix, content), raw, responseCacheTTL); err != nil {
		s.logger.Warn("response cache write failed", zap.Error(err))
	}
}

// SweepResponseCache drops the short-lived raw-response entries. Runs on a
// schedule; summary entries are left to their own TTL.
func (s *Store) SweepResponseCache(ctx context.Context) (int64, error) {
	if s.cache == nil {
		return 0, nil
	}
	return s.cache.PurgePrefix(ctx, responseCachePrefix)
}

// ClearCache drops every cache entry the plugin owns. Stored rows survive.
func (s *Store) ClearCache(ctx context.Context) (int64, error) {
	if s.cache == nil {
		return 0, nil
	}
	return s.cache.PurgePrefix(ctx, cachePrefix)
}

// Stats counts stored summaries, total and per provider.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByProvider: map[string]int64{}}

	if err := s.db.WithContext(ctx).Model(&models.SummaryModel{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.SummaryModel{}).
		Where("done = ?", true).Count(&stats.Done).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Provider string
		N        int64
	}
	err := s.db.WithContext(ctx).Model(&models.SummaryModel{}).
		Select("provider, count(*) as n").
		Group("provider").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.Provider != "" {
			stats.ByProvider[row.Provider] = row.N
		}
	}
	return stats, nil
}

func (s *Store) fillCache(ctx context.Context, key string, summary *models.SummaryModel) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, summaryCacheTTL); err != nil {
		s.logger.Warn("summary cache write failed", zap.Error(err))
	}
}
