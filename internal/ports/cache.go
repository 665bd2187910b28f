package ports

import (
	"context"
	"encoding/json"
	"time"
)

// ReadingCache stores shaped reading payloads under request-derived keys for
// a bounded time window. Implementations serve an entry only while it is
// fresh; an expired entry behaves as absent.
type ReadingCache interface {
	Get(ctx context.Context, key string) (payload json.RawMessage, found bool)
	Set(ctx context.Context, key string, payload json.RawMessage, ttl time.Duration)
}
