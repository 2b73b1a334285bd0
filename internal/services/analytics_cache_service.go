package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alimgiray/reviewboard/internal/models"
	"github.com/alimgiray/reviewboard/pkg/logger"
)

var (
	ErrInvalidAnalyticsPayload = errors.New("analytics payload must be valid JSON")
	ErrInvalidAnalyticsKey     = errors.New("analytics key is required")
)

// AnalyticsStore persists cache entries
type AnalyticsStore interface {
	Get(key string) (*models.CachedAnalytics, error)
	Put(key string, value json.RawMessage, storedAt time.Time) error
	Delete(key string) error
}

// AnalyticsCacheService caches AI analytics payloads (summaries, comment
// categories, common learnings) that are produced elsewhere.
type AnalyticsCacheService struct {
	store AnalyticsStore
	ttl   time.Duration
	now   func() time.Time
}

func NewAnalyticsCacheService(store AnalyticsStore, ttl time.Duration) *AnalyticsCacheService {
	return &AnalyticsCacheService{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the cached entry when present and younger than the TTL.
// Expired entries are removed on read.
func (s *AnalyticsCacheService) Get(key string) (*models.CachedAnalytics, bool, error) {
	key, err := normalizeAnalyticsKey(key)
	if err != nil {
		return nil, false, err
	}

	entry, err := s.store.Get(key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read analytics cache %q: %w", key, err)
	}

	if entry.IsExpired(s.now(), s.ttl) {
		if err := s.store.Delete(key); err != nil {
			logger.Component("analytics_cache").WithError(err).WithField("key", key).Warn("Failed to purge expired entry")
		}
		return nil, false, nil
	}
	return entry, true, nil
}

// Put stores value under key with the current time
func (s *AnalyticsCacheService) Put(key string, value json.RawMessage) (*models.CachedAnalytics, error) {
	key, err := normalizeAnalyticsKey(key)
	if err != nil {
		return nil, err
	}
	if !json.Valid(value) {
		return nil, ErrInvalidAnalyticsPayload
	}

	entry := &models.CachedAnalytics{Key: key, Value: value, StoredAt: s.now().UTC()}
	if err := s.store.Put(entry.Key, entry.Value, entry.StoredAt); err != nil {
		return nil, fmt.Errorf("failed to write analytics cache %q: %w", key, err)
	}
	return entry, nil
}

func normalizeAnalyticsKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidAnalyticsKey
	}
	return key, nil
}
