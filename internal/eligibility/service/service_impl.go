package service

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/haulware/carriergate/internal/cache"
	"github.com/haulware/carriergate/internal/clock"
	"github.com/haulware/carriergate/internal/config"
	"github.com/haulware/carriergate/internal/eligibility/domain"
)

type Params struct {
	fx.In

	Config   config.Config
	Log      *zap.Logger
	Clock    clock.Clock
	Provider domain.Provider
}

type service struct {
	cfg      config.Config
	log      *zap.Logger
	clock    clock.Clock
	provider domain.Provider
	cache    cache.SnapshotCache
}

func New(p Params) domain.Service {
	return &service{
		cfg:      p.Config,
		log:      p.Log.Named("eligibility.service"),
		clock:    p.Clock,
		provider: p.Provider,
		cache:    cache.NewSnapshotCache(p.Clock),
	}
}

// Lookup serves the cached snapshot when it is younger than the TTL,
// otherwise refreshes it. The registry call runs with no lock held; two
// concurrent misses for one carrier may both fetch, and the later write
// wins. Both fetch the same record, so the race is harmless.
func (s *service) Lookup(ctx context.Context, mcNumber string) (domain.Snapshot, error) {
	mc := strings.TrimSpace(mcNumber)

	if snapshot, ok := s.cache.GetSnapshot(mc); ok {
		return snapshot, nil
	}
	return s.refresh(ctx, mc), nil
}

// refresh fetches a live snapshot, substituting a fallback record when no
// registry key is configured or the fetch fails. Every outcome is cached,
// failures included.
func (s *service) refresh(ctx context.Context, mc string) domain.Snapshot {
	now := s.clock.Now()

	var snapshot domain.Snapshot
	if s.cfg.FMCSAWebKey == "" {
		snapshot = domain.FallbackSnapshot(mc, now)
	} else {
		live, err := s.provider.FetchSnapshot(ctx, mc)
		if err != nil {
			s.log.Warn("carrier snapshot fetch failed, serving fallback",
				zap.String("mc_number", mc),
				zap.Error(err))
			snapshot = domain.FallbackSnapshot(mc, now)
		} else {
			snapshot = live
		}
	}

	s.cache.SetSnapshot(mc, snapshot)
	return snapshot
}
