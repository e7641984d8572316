package cart

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/wellport/wellport-backend/pkg/enums"
	"github.com/wellport/wellport-backend/pkg/logger"
)

type memoryKV struct {
	values map[string]string
	getErr error
	setErr error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}}
}

func (m *memoryKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value.(string)
	return nil
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	val, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *memoryKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

type staticKeyer struct{}

func (staticKeyer) CartKey(userKey string) string      { return "wp:cart:" + userKey }
func (staticKeyer) BreakdownKey(userKey string) string { return "wp:breakdown:" + userKey }

func newTestStore() (*Store, *memoryKV) {
	kv := newMemoryKV()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	return &Store{store: kv, keyer: staticKeyer{}, logg: logg, ttl: time.Hour}, kv
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore()
	want := []Line{line(enums.VendorA, "p1", 2)}

	if err := store.Save(context.Background(), "user-1", want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := store.Load(context.Background(), "user-1")
	if len(got) != 1 || got[0].ProductID != "p1" || got[0].Quantity != 2 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoadNeverFails(t *testing.T) {
	t.Parallel()

	store, kv := newTestStore()

	// Missing key.
	if got := store.Load(context.Background(), "user-1"); len(got) != 0 {
		t.Fatalf("missing cart should be empty, got %+v", got)
	}

	// Corrupt payload.
	kv.values["wp:cart:user-1"] = "{not json"
	if got := store.Load(context.Background(), "user-1"); got == nil || len(got) != 0 {
		t.Fatalf("corrupt cart should be empty non-nil, got %+v", got)
	}

	// Transport failure.
	kv.getErr = errors.New("connection refused")
	if got := store.Load(context.Background(), "user-1"); got == nil || len(got) != 0 {
		t.Fatalf("transport failure should be empty non-nil, got %+v", got)
	}
}

func TestClearRemovesCartAndBreakdown(t *testing.T) {
	t.Parallel()

	store, kv := newTestStore()
	if err := store.Save(context.Background(), "user-1", []Line{line(enums.VendorA, "p1", 1)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.SaveBreakdown(context.Background(), "user-1", Breakdown{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Clear(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := kv.values["wp:cart:user-1"]; ok {
		t.Fatal("cart key should be gone")
	}
	if _, ok := kv.values["wp:breakdown:user-1"]; ok {
		t.Fatal("breakdown key should be gone")
	}
}

func TestLoadBreakdownMissing(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore()
	if _, ok := store.LoadBreakdown(context.Background(), "user-1"); ok {
		t.Fatal("missing breakdown should report ok=false")
	}
}
