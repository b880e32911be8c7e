package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/haulware/carriergate/internal/clock"
	eligibilitydomain "github.com/haulware/carriergate/internal/eligibility/domain"
)

func TestTTLCacheServesUntilExpiry(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	c := NewTTLCache[string, int](clk)

	c.Set("a", 1, time.Minute)

	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, got)

	clk.Advance(59 * time.Second)
	_, ok = c.Get("a")
	assert.True(t, ok)

	clk.Advance(time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestTTLCacheOverwriteRestartsExpiry(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	c := NewTTLCache[string, string](clk)

	c.Set("a", "first", time.Minute)
	clk.Advance(45 * time.Second)
	c.Set("a", "second", time.Minute)
	clk.Advance(30 * time.Second)

	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestTTLCachePrunesExpiredOnSet(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	c := NewTTLCache[string, int](clk).(*ttlCache[string, int])

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	clk.Advance(2 * time.Minute)

	c.Set("c", 3, time.Minute)
	assert.Len(t, c.entries, 1)
}

func TestSnapshotCacheNormalizesKeys(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	c := NewSnapshotCache(clk)

	snapshot := eligibilitydomain.Snapshot{
		MCNumber:       "123456",
		LegalName:      "Acme Freight LLC",
		AllowToOperate: "Y",
		OutOfService:   "N",
		Source:         eligibilitydomain.SourceLive,
	}
	c.SetSnapshot("  123456 ", snapshot)

	got, ok := c.GetSnapshot("123456")
	assert.True(t, ok)
	assert.Equal(t, snapshot, got)
}

func TestSnapshotCacheMissesAfterTTL(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	c := NewSnapshotCache(clk)

	c.SetSnapshot("123456", eligibilitydomain.Snapshot{MCNumber: "123456"})

	clk.Advance(24*time.Hour - time.Second)
	_, ok := c.GetSnapshot("123456")
	assert.True(t, ok)

	clk.Advance(time.Second)
	_, ok = c.GetSnapshot("123456")
	assert.False(t, ok)
}
