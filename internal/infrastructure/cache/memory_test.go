package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newMemoryWithFakeClock(t *testing.T) (*Memory, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	return NewMemoryWithClock(clock.now), clock
}

func TestMemoryGetMissingKey(t *testing.T) {
	m, _ := newMemoryWithFakeClock(t)

	if _, found := m.Get(context.Background(), "daily|leo||today|en"); found {
		t.Fatalf("Get() expected found=false for missing key")
	}
}

func TestMemorySetThenGetWithinTTL(t *testing.T) {
	m, clock := newMemoryWithFakeClock(t)
	ctx := context.Background()
	payload := json.RawMessage(`{"sign":"leo","mood":"Energetic"}`)

	m.Set(ctx, "daily|leo||today|en", payload, 30*time.Minute)

	clock.advance(29 * time.Minute)
	got, found := m.Get(ctx, "daily|leo||today|en")
	if !found {
		t.Fatalf("Get() expected found=true within ttl")
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("Get() payload = %s, want %s", got, payload)
	}
}

func TestMemoryEntryExpiresAtBoundary(t *testing.T) {
	m, clock := newMemoryWithFakeClock(t)
	ctx := context.Background()

	m.Set(ctx, "k", json.RawMessage(`{}`), 30*time.Minute)

	// Valid strictly while now < expiresAt, so the boundary itself is stale.
	clock.advance(30 * time.Minute)
	if _, found := m.Get(ctx, "k"); found {
		t.Fatalf("Get() expected found=false at exact expiry")
	}
}

func TestMemoryExpiredEntryIsIgnoredNotDeleted(t *testing.T) {
	m, clock := newMemoryWithFakeClock(t)
	ctx := context.Background()

	m.Set(ctx, "k", json.RawMessage(`{"old":true}`), time.Minute)
	clock.advance(2 * time.Minute)

	if _, found := m.Get(ctx, "k"); found {
		t.Fatalf("Get() expected found=false after expiry")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, expired entry should remain until overwritten", m.Len())
	}

	// Repeated reads stay absent and still do not delete.
	if _, found := m.Get(ctx, "k"); found {
		t.Fatalf("Get() expected found=false on repeated read")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d after repeated read", m.Len())
	}
}

func TestMemorySetOverwritesExpiredEntry(t *testing.T) {
	m, clock := newMemoryWithFakeClock(t)
	ctx := context.Background()

	m.Set(ctx, "k", json.RawMessage(`{"old":true}`), time.Minute)
	clock.advance(2 * time.Minute)
	m.Set(ctx, "k", json.RawMessage(`{"new":true}`), time.Minute)

	got, found := m.Get(ctx, "k")
	if !found {
		t.Fatalf("Get() expected found=true after overwrite")
	}
	if string(got) != `{"new":true}` {
		t.Fatalf("Get() payload = %s, want replacement", got)
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, overwrite must replace not append", m.Len())
	}
}

func TestMemoryKeysAreIndependent(t *testing.T) {
	m, _ := newMemoryWithFakeClock(t)
	ctx := context.Background()

	keys := []string{
		"daily|leo||today|en",
		"daily|virgo||today|en",
		"daily|leo||tomorrow|en",
		"daily|leo||today|tr",
		"personalized|leo||today|en",
	}
	for i, key := range keys {
		m.Set(ctx, key, json.RawMessage{byte('0' + i)}, time.Hour)
	}

	for i, key := range keys {
		got, found := m.Get(ctx, key)
		if !found {
			t.Fatalf("Get(%q) expected found=true", key)
		}
		if want := (json.RawMessage{byte('0' + i)}); !bytes.Equal(got, want) {
			t.Fatalf("Get(%q) = %s, want %s", key, got, want)
		}
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			m.Set(ctx, "k", json.RawMessage(`{}`), time.Minute)
		}
	}()
	for i := 0; i < 1000; i++ {
		m.Get(ctx, "k")
	}
	<-done
}
