package cache

import (
	"strings"
	"time"

	"github.com/haulware/carriergate/internal/clock"
	eligibilitydomain "github.com/haulware/carriergate/internal/eligibility/domain"
)

const defaultSnapshotTTL = 24 * time.Hour

// SnapshotCache stores carrier registry snapshots keyed by MC number.
type SnapshotCache interface {
	GetSnapshot(mcNumber string) (eligibilitydomain.Snapshot, bool)
	SetSnapshot(mcNumber string, snapshot eligibilitydomain.Snapshot)
}

type snapshotCache struct {
	snapshots Cache[string, eligibilitydomain.Snapshot]
	ttl       time.Duration
}

// NewSnapshotCache returns an in-memory cache that holds each carrier
// snapshot for a day.
func NewSnapshotCache(clk clock.Clock) SnapshotCache {
	return &snapshotCache{
		snapshots: NewTTLCache[string, eligibilitydomain.Snapshot](clk),
		ttl:       defaultSnapshotTTL,
	}
}

func (c *snapshotCache) GetSnapshot(mcNumber string) (eligibilitydomain.Snapshot, bool) {
	return c.snapshots.Get(cacheKey(mcNumber))
}

func (c *snapshotCache) SetSnapshot(mcNumber string, snapshot eligibilitydomain.Snapshot) {
	c.snapshots.Set(cacheKey(mcNumber), snapshot, c.ttl)
}

func cacheKey(parts ...string) string {
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		values = append(values, strings.ToLower(trimmed))
	}
	return strings.Join(values, "|")
}
