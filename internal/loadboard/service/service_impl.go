package service

import (
	"context"
	"strings"

	"github.com/haulware/carriergate/internal/loadboard/catalog"
	"github.com/haulware/carriergate/internal/loadboard/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// maxListResults caps list responses no matter how loose the filters are.
const maxListResults = 10

type Params struct {
	fx.In

	Log     *zap.Logger
	Catalog *catalog.Catalog
}

type Service struct {
	log     *zap.Logger
	catalog *catalog.Catalog
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("loadboard.service"),
		catalog: p.Catalog,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListLoadsRequest) ([]domain.Load, error) {
	origin := strings.ToLower(req.Origin)
	destination := strings.ToLower(req.Destination)

	out := make([]domain.Load, 0, maxListResults)
	for _, l := range s.catalog.Loads() {
		if origin != "" && !strings.Contains(strings.ToLower(l.Origin), origin) {
			continue
		}
		if destination != "" && !strings.Contains(strings.ToLower(l.Destination), destination) {
			continue
		}
		// A zero bound means no distance limit. Loads without a distance
		// always pass the miles bound.
		if req.MaxMiles != nil && *req.MaxMiles != 0 && l.Miles != nil && *l.Miles > *req.MaxMiles {
			continue
		}
		out = append(out, l)
		if len(out) == maxListResults {
			break
		}
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, loadID string) (domain.Load, error) {
	want := strings.TrimSpace(loadID)
	for _, l := range s.catalog.Loads() {
		if strings.TrimSpace(l.LoadID) == want {
			return l, nil
		}
	}
	return domain.Load{}, domain.ErrNotFound
}
