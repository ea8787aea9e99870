package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/invest-compare/internal/config"
	"github.com/iwvelando/invest-compare/pkg/comparison"
	"github.com/iwvelando/invest-compare/pkg/constants"
	"github.com/redis/go-redis/v9"
)

func TestKey(t *testing.T) {
	in := comparison.StockInput{Name: "Fund", InitialAmount: 1000, AnnualReturnRate: 7, Years: 10}

	first, err := Key(constants.KindStocks, in)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	second, _ := Key(constants.KindStocks, in)
	if first != second {
		t.Errorf("Key() is not stable: %s != %s", first, second)
	}
	if !strings.HasPrefix(first, constants.KindStocks+":") {
		t.Errorf("Key() = %s, expected kind prefix", first)
	}

	in.Years = 11
	changed, _ := Key(constants.KindStocks, in)
	if changed == first {
		t.Error("Key() should change when the input changes")
	}

	other, _ := Key(constants.KindRealEstate, comparison.StockInput{Name: "Fund", InitialAmount: 1000, AnnualReturnRate: 7, Years: 10})
	if other == first {
		t.Error("Key() should differ between kinds")
	}

	if _, err := Key("bad", make(chan int)); err == nil {
		t.Error("expected error for an unmarshalable input")
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, err := m.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get() on empty cache = %v, %v", ok, err)
	}

	value := []byte("report")
	if err := m.Set(ctx, "k", value, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value[0] = 'X'

	got, ok, err := m.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if string(got) != "report" {
		t.Errorf("Get() = %q, stored value must be copied", got)
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	if err := m.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	now = now.Add(30 * time.Second)
	if _, ok, _ := m.Get(ctx, "k"); !ok {
		t.Error("entry should still be present before its ttl")
	}

	now = now.Add(30 * time.Second)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("entry should expire at its ttl")
	}
	if m.Len() != 0 {
		t.Errorf("expired entry should be removed, Len() = %d", m.Len())
	}
}

func TestRedisUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := NewRedisWithClient(client)
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, ok, err := r.Get(ctx, "k"); err == nil || ok {
		t.Errorf("Get() against an unreachable server = %v, %v; expected error", ok, err)
	}
	if err := r.Set(ctx, "k", []byte("v"), time.Minute); err == nil {
		t.Error("Set() against an unreachable server should fail")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.CacheConfig
		wantNil   bool
		wantType  string
		wantError bool
	}{
		{name: "Disabled", cfg: config.CacheConfig{Backend: constants.CacheBackendNone}, wantNil: true},
		{name: "Default memory", cfg: config.CacheConfig{}, wantType: "memory"},
		{name: "Memory", cfg: config.CacheConfig{Backend: constants.CacheBackendMemory}, wantType: "memory"},
		{name: "Redis", cfg: config.CacheConfig{Backend: constants.CacheBackendRedis}, wantType: "redis"},
		{name: "Unknown", cfg: config.CacheConfig{Backend: "memcached"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg)
			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if tt.wantNil {
				if c != nil {
					t.Errorf("expected nil cache, got %T", c)
				}
				return
			}
			switch c.(type) {
			case *Memory:
				if tt.wantType != "memory" {
					t.Errorf("got memory cache, expected %s", tt.wantType)
				}
			case *Redis:
				if tt.wantType != "redis" {
					t.Errorf("got redis cache, expected %s", tt.wantType)
				}
				c.(*Redis).Close()
			default:
				t.Errorf("unexpected cache type %T", c)
			}
		})
	}
}
