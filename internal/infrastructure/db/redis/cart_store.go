package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shopflow/storefront-api/internal/api/metrics"
	"github.com/shopflow/storefront-api/internal/core/domain"
)

const defaultCartTTL = 30 * 24 * time.Hour

// CartStore persists one cart snapshot per identity, backed by Redis.
// Key format: cart:<user_id>
//
// Snapshots are stored as versioned JSON. Legacy payloads (a bare entry
// array, written before snapshots carried a version) are migrated on read;
// payloads that parse as neither shape are counted, logged, and replaced by
// an empty cart instead of failing the request or vanishing silently.
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCartStore creates a CartStore wrapping the given Redis client. The TTL
// is refreshed on every save; a zero ttl falls back to 30 days.
func NewCartStore(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *CartStore {
	if ttl <= 0 {
		ttl = defaultCartTTL
	}
	return &CartStore{client: client, ttl: ttl, logger: logger}
}

// Load returns the caller's snapshot, or an empty current-version snapshot
// when none is stored.
func (s *CartStore) Load(ctx context.Context, userID string) (*domain.CartSnapshot, error) {
	payload, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.NewCartSnapshot(), nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	snapshot, result, decodeErr := decodeSnapshot(payload)
	metrics.CartSnapshotRestoresTotal.WithLabelValues(result).Inc()

	switch result {
	case restoreMigrated:
		s.logger.Info().Str("user_id", userID).Msg("cart snapshot migrated from legacy shape")
	case restoreReset:
		s.logger.Warn().Err(decodeErr).Str("user_id", userID).Msg("cart snapshot unparseable, resetting to empty")
	}
	return snapshot, nil
}

// Save persists the snapshot and refreshes its TTL.
func (s *CartStore) Save(ctx context.Context, userID string, snapshot *domain.CartSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Clear removes the caller's snapshot entirely.
func (s *CartStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *CartStore) key(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

// Restore results, used as the metric label.
const (
	restoreCurrent  = "current"
	restoreMigrated = "migrated"
	restoreReset    = "reset"
)

// decodeSnapshot parses a stored payload into a current-version snapshot.
// It reports how the payload was handled: already current, migrated from a
// legacy shape, or reset because nothing could make sense of it. The
// returned error is diagnostic only; decodeSnapshot always yields a usable
// snapshot.
func decodeSnapshot(payload []byte) (*domain.CartSnapshot, string, error) {
	var snapshot domain.CartSnapshot
	if err := json.Unmarshal(payload, &snapshot); err == nil {
		switch {
		case snapshot.Version == domain.CartSnapshotVersion:
			return &snapshot, restoreCurrent, nil
		case snapshot.Version == 0:
			// Pre-versioning object shape: same fields, no version stamp.
			snapshot.Version = domain.CartSnapshotVersion
			return &snapshot, restoreMigrated, nil
		default:
			// A future version this build cannot interpret.
			return domain.NewCartSnapshot(), restoreReset,
				fmt.Errorf("unsupported cart snapshot version %d", snapshot.Version)
		}
	}

	// Oldest shape: a bare array of entries.
	var entries []domain.CartEntry
	if err := json.Unmarshal(payload, &entries); err == nil {
		migrated := domain.NewCartSnapshot()
		migrated.Items = entries
		return migrated, restoreMigrated, nil
	}

	return domain.NewCartSnapshot(), restoreReset,
		errors.New("cart payload is neither a snapshot object nor an entry array")
}
