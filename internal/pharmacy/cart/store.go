package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/wellport/wellport-backend/pkg/logger"
	"github.com/wellport/wellport-backend/pkg/redis"
)

type kvStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type keyer interface {
	CartKey(userKey string) string
	BreakdownKey(userKey string) string
}

// Store persists cart lines and cached breakdowns in Redis, one bucket per
// user key. Reads are tolerant: a missing key, a transport error, or a corrupt
// payload all come back as an empty cart so the caller can always render.
type Store struct {
	store kvStore
	keyer keyer
	logg  *logger.Logger
	ttl   time.Duration
}

// NewStore wires the cart store. The redis client satisfies both small
// interfaces; tests substitute in-memory fakes.
func NewStore(client *redis.Client, logg *logger.Logger, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Store{store: client, keyer: client, logg: logg, ttl: ttl}, nil
}

// Key normalizes an identity into a cart bucket key. Blank identities share
// the guest bucket.
func Key(identity string) string {
	trimmed := strings.TrimSpace(identity)
	if trimmed == "" {
		return GuestKey
	}
	return trimmed
}

// Load returns the cart lines for a user key. Load never fails: any error is
// logged and an empty cart is returned.
func (s *Store) Load(ctx context.Context, userKey string) []Line {
	raw, err := s.store.Get(ctx, s.keyer.CartKey(userKey))
	if err != nil {
		if !redis.IsNil(err) {
			s.logg.Warn(s.logg.WithField(ctx, "cart_key", userKey), "cart load failed, serving empty cart")
		}
		return []Line{}
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "cart_key", userKey), "cart payload corrupt, serving empty cart")
		return []Line{}
	}
	if lines == nil {
		lines = []Line{}
	}
	return lines
}

// Save replaces the stored cart wholesale.
func (s *Store) Save(ctx context.Context, userKey string, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.store.Set(ctx, s.keyer.CartKey(userKey), string(payload), s.ttl); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

// Clear removes the cart and its cached breakdown together so a stale price
// summary never outlives the cart it described.
func (s *Store) Clear(ctx context.Context, userKey string) error {
	if err := s.store.Del(ctx, s.keyer.CartKey(userKey), s.keyer.BreakdownKey(userKey)); err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	return nil
}

// SaveBreakdown caches the latest priced view of the cart.
func (s *Store) SaveBreakdown(ctx context.Context, userKey string, bd Breakdown) error {
	payload, err := json.Marshal(bd)
	if err != nil {
		return fmt.Errorf("encoding breakdown: %w", err)
	}
	if err := s.store.Set(ctx, s.keyer.BreakdownKey(userKey), string(payload), s.ttl); err != nil {
		return fmt.Errorf("saving breakdown: %w", err)
	}
	return nil
}

// LoadBreakdown returns the cached breakdown, or ok=false when none is stored
// or the payload cannot be decoded.
func (s *Store) LoadBreakdown(ctx context.Context, userKey string) (Breakdown, bool) {
	raw, err := s.store.Get(ctx, s.keyer.BreakdownKey(userKey))
	if err != nil {
		return Breakdown{}, false
	}
	var bd Breakdown
	if err := json.Unmarshal([]byte(raw), &bd); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "cart_key", userKey), "breakdown payload corrupt")
		return Breakdown{}, false
	}
	return bd, true
}
