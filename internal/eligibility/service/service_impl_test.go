package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/haulware/carriergate/internal/clock"
	"github.com/haulware/carriergate/internal/config"
	"github.com/haulware/carriergate/internal/eligibility/domain"
)

type fakeProvider struct {
	mu       sync.Mutex
	calls    int
	snapshot domain.Snapshot
	err      error
}

func (f *fakeProvider) FetchSnapshot(ctx context.Context, mcNumber string) (domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return domain.Snapshot{}, f.err
	}
	return f.snapshot, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newService(cfg config.Config, clk clock.Clock, provider domain.Provider) domain.Service {
	return New(Params{
		Config:   cfg,
		Log:      zap.NewNop(),
		Clock:    clk,
		Provider: provider,
	})
}

func TestLookupWithoutWebKeyServesFallback(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	provider := &fakeProvider{}
	svc := newService(config.Config{}, clk, provider)

	snapshot, err := svc.Lookup(context.Background(), "123456")
	assert.NoError(t, err)
	assert.Equal(t, "123456", snapshot.MCNumber)
	assert.Equal(t, "Fallback Carrier 123456", snapshot.LegalName)
	assert.Equal(t, domain.SourceFallback, snapshot.Source)
	assert.Equal(t, "2025-06-01T12:00:00Z", snapshot.SnapshotDate)
	assert.True(t, snapshot.Eligible())
	assert.Equal(t, 0, provider.callCount())
}

func TestLookupCachesLiveSnapshot(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	provider := &fakeProvider{snapshot: domain.Snapshot{
		MCNumber:       "123456",
		LegalName:      "Acme Freight LLC",
		AllowToOperate: "Y",
		OutOfService:   "N",
		Source:         domain.SourceLive,
	}}
	svc := newService(config.Config{FMCSAWebKey: "secret"}, clk, provider)

	first, err := svc.Lookup(context.Background(), "123456")
	assert.NoError(t, err)
	assert.Equal(t, "Acme Freight LLC", first.LegalName)
	assert.Equal(t, 1, provider.callCount())

	clk.Advance(23*time.Hour + 59*time.Minute)

	second, err := svc.Lookup(context.Background(), "123456")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.callCount())
}

func TestLookupRefreshesOnceTTLElapses(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	provider := &fakeProvider{snapshot: domain.Snapshot{
		MCNumber: "123456",
		Source:   domain.SourceLive,
	}}
	svc := newService(config.Config{FMCSAWebKey: "secret"}, clk, provider)

	_, err := svc.Lookup(context.Background(), "123456")
	assert.NoError(t, err)

	clk.Advance(24 * time.Hour)

	_, err = svc.Lookup(context.Background(), "123456")
	assert.NoError(t, err)
	assert.Equal(t, 2, provider.callCount())
}

func TestLookupTrimsMCNumber(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	provider := &fakeProvider{snapshot: domain.Snapshot{
		MCNumber: "123456",
		Source:   domain.SourceLive,
	}}
	svc := newService(config.Config{FMCSAWebKey: "secret"}, clk, provider)

	_, err := svc.Lookup(context.Background(), "  123456  ")
	assert.NoError(t, err)

	_, err = svc.Lookup(context.Background(), "123456")
	assert.NoError(t, err)
	assert.Equal(t, 1, provider.callCount())
}

func TestLookupCachesFallbackWhenProviderFails(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	provider := &fakeProvider{err: errors.New("registry returned status 502")}
	svc := newService(config.Config{FMCSAWebKey: "secret"}, clk, provider)

	snapshot, err := svc.Lookup(context.Background(), "777001")
	assert.NoError(t, err)
	assert.Equal(t, domain.SourceFallback, snapshot.Source)
	assert.True(t, snapshot.Eligible())

	// The failure outcome holds the cache slot for a full TTL window.
	_, err = svc.Lookup(context.Background(), "777001")
	assert.NoError(t, err)
	assert.Equal(t, 1, provider.callCount())

	clk.Advance(24 * time.Hour)

	_, err = svc.Lookup(context.Background(), "777001")
	assert.NoError(t, err)
	assert.Equal(t, 2, provider.callCount())
}
