package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
)

const defaultTradesKey = "tradejournal:trades"

// Store implements ports.TradeStore over a Redis key-value service. The whole
// collection lives under a single list-valued key holding a JSON array, the
// way the journal's key-value layout defines it. Writes are read-append-write
// with no locking: two concurrent importers are last-write-wins.
type Store struct {
	client redis.UniversalClient
	key    string
	logger ports.Logger
}

// Config holds configuration for the Redis store.
type Config struct {
	Client redis.UniversalClient
	Key    string // Defaults to "tradejournal:trades"
	Logger ports.Logger
}

// New creates a new Redis store instance. The client is created once at
// startup and reused for every call; there is no reconnect-per-request.
func New(cfg Config) (*Store, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Redis store")
	}
	if cfg.Client == nil {
		return nil, fmt.Errorf("redis client is required for Redis store")
	}
	key := cfg.Key
	if key == "" {
		key = defaultTradesKey
	}
	return &Store{client: cfg.Client, key: key, logger: cfg.Logger}, nil
}

// Ping verifies the connection to the key-value service.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ports.ErrStoreUnavailable, err)
	}
	return nil
}

// SaveAll appends records to the stored collection and writes the whole list
// back. Each record is assigned an ID on save.
func (s *Store) SaveAll(ctx context.Context, records []domain.TradeRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	existing, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}
	}
	existing = append(existing, records...)

	data, err := json.Marshal(existing)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal trade collection: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return 0, fmt.Errorf("%w: failed to write trade collection: %v", ports.ErrSaveFailed, err)
	}
	s.logger.Debug(ctx, "Trades saved", map[string]interface{}{"count": len(records), "total": len(existing)})
	return len(records), nil
}

// GetAll retrieves the full trade collection.
func (s *Store) GetAll(ctx context.Context) ([]domain.TradeRecord, error) {
	return s.load(ctx)
}

// ClearAll deletes the collection key.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: failed to delete trade collection: %v", ports.ErrDeleteFailed, err)
	}
	s.logger.Debug(ctx, "Trades cleared")
	return nil
}

func (s *Store) load(ctx context.Context) ([]domain.TradeRecord, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []domain.TradeRecord{}, nil // Missing key is an empty collection
		}
		return nil, fmt.Errorf("%w: failed to read trade collection: %v", ports.ErrStoreUnavailable, err)
	}
	var records []domain.TradeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trade collection: %w", err)
	}
	return records, nil
}
