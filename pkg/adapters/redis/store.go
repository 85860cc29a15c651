// Package redis provides Redis-backed adapters: a checkpoint store whose
// sequence guard is enforced atomically server-side, and a distributed
// locker for multi-replica deployments.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/quorumbank/teller/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// saveScript checks the stored turn sequence and replaces the checkpoint in
// one atomic step. A brand-new thread must write sequence 0; an existing one
// must write the stored sequence (no-progress re-save) or exactly one more.
// Returns 1 on success, 0 on a sequence conflict.
const saveScript = `
local prev = redis.call("GET", KEYS[2])
local next = tonumber(ARGV[2])
if prev then
	prev = tonumber(prev)
	if next ~= prev and next ~= prev + 1 then
		return 0
	end
else
	if next ~= 0 then
		return 0
	end
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[2])
if tonumber(ARGV[3]) > 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[3])
	redis.call("PEXPIRE", KEYS[2], ARGV[3])
end
redis.call("ZADD", KEYS[3], ARGV[4], ARGV[5])
return 1
`

// Store implements ports.CheckpointStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets the expiration for thread checkpoints (default: none).
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithPrefix sets the key prefix (default "teller:thread:").
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// NewStore creates a Redis checkpoint store on an existing client.
func NewStore(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: "teller:thread:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) stateKey(threadID string) string { return s.prefix + threadID }
func (s *Store) seqKey(threadID string) string   { return s.prefix + "seq:" + threadID }
func (s *Store) indexKey() string                { return s.prefix + "index" }

// Save replaces the checkpoint atomically with the sequence guard.
func (s *Store) Save(ctx context.Context, threadID string, state *domain.WorkflowState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Index score mirrors the expiry so List can prune lazily; entries
	// without a TTL are scored far in the future.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	res, err := s.client.Eval(ctx, saveScript,
		[]string{s.stateKey(threadID), s.seqKey(threadID), s.indexKey()},
		string(data),
		strconv.FormatUint(state.TurnSequence, 10),
		strconv.FormatInt(s.ttl.Milliseconds(), 10),
		strconv.FormatFloat(score, 'f', -1, 64),
		threadID,
	).Result()
	if err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	if ok, _ := res.(int64); ok != 1 {
		return domain.ErrConcurrentModification
	}
	return nil
}

// Load retrieves the current checkpoint.
func (s *Store) Load(ctx context.Context, threadID string) (*domain.WorkflowState, error) {
	val, err := s.client.Get(ctx, s.stateKey(threadID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrThreadNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var state domain.WorkflowState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &state, nil
}

// Delete removes the checkpoint and its index entry.
func (s *Store) Delete(ctx context.Context, threadID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.stateKey(threadID))
	pipe.Del(ctx, s.seqKey(threadID))
	pipe.ZRem(ctx, s.indexKey(), threadID)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns active threads, lazily pruning expired index entries.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired threads: %w", err)
	}

	threads, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	return threads, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
