package redis

import (
	"testing"
	"time"

	"github.com/wellport/wellport-backend/pkg/config"
)

func TestBuildKeyNamespacing(t *testing.T) {
	t.Parallel()

	c := &Client{}
	if got := c.CartKey("user-1"); got != "wp:cart:user-1" {
		t.Fatalf("unexpected cart key %q", got)
	}
	if got := c.BreakdownKey("guest"); got != "wp:breakdown:guest" {
		t.Fatalf("unexpected breakdown key %q", got)
	}
	if got := c.AccessSessionKey("abc"); got != "wp:session:access:abc" {
		t.Fatalf("unexpected session key %q", got)
	}
	if got := c.CartKey("  "); got != "wp:cart" {
		t.Fatalf("blank parts should be dropped, got %q", got)
	}
}

func TestOptionsFromConfigPrefersURL(t *testing.T) {
	t.Parallel()

	opts, err := optionsFromConfig(config.RedisConfig{
		URL:         "redis://localhost:6379/2",
		PoolSize:    7,
		DialTimeout: 3 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("db should come from url, got %d", opts.DB)
	}
	if opts.PoolSize != 7 {
		t.Fatalf("pool size fallback not applied, got %d", opts.PoolSize)
	}
}

func TestOptionsFromConfigRequiresEndpoint(t *testing.T) {
	t.Parallel()

	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address is set")
	}
}
