package service

import (
	"context"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/haulware/carriergate/internal/config"
	loadboarddomain "github.com/haulware/carriergate/internal/loadboard/domain"
	"github.com/haulware/carriergate/internal/money"
	"github.com/haulware/carriergate/internal/negotiation/domain"
	obsmetrics "github.com/haulware/carriergate/internal/observability/metrics"
)

type Params struct {
	fx.In

	Config  config.Config
	Log     *zap.Logger
	Loads   loadboarddomain.Service
	Metrics *obsmetrics.Metrics
}

// session tracks one carrier+load negotiation. Its mutex serializes
// evaluations for the key so round counting stays consistent under
// concurrent calls.
type session struct {
	mu      sync.Mutex
	round   int
	settled bool
	price   float64
}

type service struct {
	log        *zap.Logger
	loads      loadboarddomain.Service
	metrics    *obsmetrics.Metrics
	maxOverPct float64

	mu       sync.Mutex
	sessions map[string]*session
}

func New(p Params) domain.Service {
	return &service{
		log:        p.Log.Named("negotiation.service"),
		loads:      p.Loads,
		metrics:    p.Metrics,
		maxOverPct: p.Config.MaxOverPct,
		sessions:   make(map[string]*session),
	}
}

func (s *service) Evaluate(ctx context.Context, req domain.EvaluateRequest) (domain.Outcome, error) {
	load, err := s.loads.GetByID(ctx, req.LoadID)
	if err != nil {
		return domain.Outcome{}, err
	}

	// The ceiling is never cached on the session: it is recomputed from the
	// listed rate on every call.
	listed := load.LoadboardRate
	ceiling := money.Round2(listed * (1 + s.maxOverPct))

	sess := s.session(req.MCNumber + ":" + req.LoadID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// A settled session answers with its price before the new offer is even
	// parsed.
	if sess.settled {
		price := sess.price
		return domain.Outcome{
			Accepted: true,
			Price:    &price,
			Note:     "already settled",
			Round:    sess.round,
		}, nil
	}

	offer, err := money.Parse(req.Offer)
	if err != nil {
		return domain.Outcome{}, err
	}

	switch {
	case offer <= ceiling:
		sess.settled = true
		sess.price = offer
		s.metrics.RecordSettlement(ctx, sess.round)
		s.log.Info("offer settled",
			zap.String("mc_number", req.MCNumber),
			zap.String("load_id", req.LoadID),
			zap.Float64("price", offer),
			zap.Int("round", sess.round))
		return domain.Outcome{
			Accepted: true,
			Price:    &offer,
			Round:    sess.round,
			Listed:   &listed,
			Ceiling:  &ceiling,
		}, nil

	case sess.round >= domain.MaxRounds:
		// Terminal rejection leaves the session open: a later offer within
		// the ceiling may still settle.
		s.metrics.RecordTerminalRejection(ctx, sess.round)
		s.log.Info("offer rejected, rounds exhausted",
			zap.String("mc_number", req.MCNumber),
			zap.String("load_id", req.LoadID),
			zap.Float64("offer", offer),
			zap.Int("round", sess.round))
		return domain.Outcome{
			Accepted: false,
			Reason:   "max rounds reached",
			Round:    sess.round,
			Listed:   &listed,
			Ceiling:  &ceiling,
		}, nil

	default:
		sess.round++
		return domain.Outcome{
			Accepted:     false,
			CounterOffer: &ceiling,
			Round:        sess.round,
			Listed:       &listed,
			Ceiling:      &ceiling,
		}, nil
	}
}

func (s *service) session(key string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		sess = &session{}
		s.sessions[key] = sess
	}
	return sess
}
