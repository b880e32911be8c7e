package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/haulware/carriergate/internal/config"
	loadboarddomain "github.com/haulware/carriergate/internal/loadboard/domain"
	"github.com/haulware/carriergate/internal/money"
	"github.com/haulware/carriergate/internal/negotiation/domain"
	obsmetrics "github.com/haulware/carriergate/internal/observability/metrics"
)

type fakeLoadboard struct {
	mu    sync.Mutex
	loads map[string]loadboarddomain.Load
}

func newFakeLoadboard(loads ...loadboarddomain.Load) *fakeLoadboard {
	f := &fakeLoadboard{loads: make(map[string]loadboarddomain.Load)}
	for _, l := range loads {
		f.loads[l.LoadID] = l
	}
	return f
}

func (f *fakeLoadboard) List(ctx context.Context, req loadboarddomain.ListLoadsRequest) ([]loadboarddomain.Load, error) {
	_ = ctx
	_ = req
	return nil, nil
}

func (f *fakeLoadboard) GetByID(ctx context.Context, loadID string) (loadboarddomain.Load, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.loads[loadID]
	if !ok {
		return loadboarddomain.Load{}, loadboarddomain.ErrNotFound
	}
	return l, nil
}

func (f *fakeLoadboard) setRate(loadID string, rate float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l := f.loads[loadID]
	l.LoadboardRate = rate
	f.loads[loadID] = l
}

func newService(loads loadboarddomain.Service) (domain.Service, *obsmetrics.Metrics) {
	m, err := obsmetrics.New(obsmetrics.Config{}, noop.NewMeterProvider())
	if err != nil {
		panic(err)
	}
	svc := New(Params{
		Config:  config.Config{MaxOverPct: 0.10},
		Log:     zap.NewNop(),
		Loads:   loads,
		Metrics: m,
	})
	return svc, m
}

func evaluate(t *testing.T, svc domain.Service, offer money.Amount) domain.Outcome {
	t.Helper()
	out, err := svc.Evaluate(context.Background(), domain.EvaluateRequest{
		MCNumber: "123456",
		LoadID:   "L1001",
		Offer:    offer,
	})
	assert.NoError(t, err)
	return out
}

func boardWith(rate float64) *fakeLoadboard {
	return newFakeLoadboard(loadboarddomain.Load{LoadID: "L1001", LoadboardRate: rate})
}

func TestEvaluateAcceptsOfferWithinCeiling(t *testing.T) {
	svc, m := newService(boardWith(1000))

	out := evaluate(t, svc, money.FromString("1050"))
	assert.True(t, out.Accepted)
	assert.Equal(t, 1050.0, *out.Price)
	assert.Equal(t, 0, out.Round)
	assert.Equal(t, 1000.0, *out.Listed)
	assert.Equal(t, 1100.0, *out.Ceiling)

	lifetime := m.Lifetime()
	assert.Equal(t, int64(1), lifetime.OffersAccepted)
	assert.Equal(t, int64(0), lifetime.OffersRejected)
}

func TestEvaluateCountersThenRejectsWhenRoundsExhaust(t *testing.T) {
	svc, m := newService(boardWith(1000))

	for want := 1; want <= 3; want++ {
		out := evaluate(t, svc, money.FromFloat(5000))
		assert.False(t, out.Accepted)
		assert.Equal(t, want, out.Round)
		assert.Equal(t, 1100.0, *out.CounterOffer)
		assert.Empty(t, out.Reason)
	}

	out := evaluate(t, svc, money.FromFloat(5000))
	assert.False(t, out.Accepted)
	assert.Equal(t, "max rounds reached", out.Reason)
	assert.Equal(t, 3, out.Round)
	assert.Nil(t, out.CounterOffer)

	lifetime := m.Lifetime()
	assert.Equal(t, int64(1), lifetime.OffersRejected)
	assert.Equal(t, int64(3), lifetime.NegotiationRoundsTotal)
}

func TestEvaluateSettlementIsIdempotent(t *testing.T) {
	svc, m := newService(boardWith(1000))

	first := evaluate(t, svc, money.FromFloat(1050))
	assert.True(t, first.Accepted)

	second := evaluate(t, svc, money.FromFloat(2000))
	assert.True(t, second.Accepted)
	assert.Equal(t, 1050.0, *second.Price)
	assert.Equal(t, "already settled", second.Note)
	assert.Nil(t, second.Listed)
	assert.Nil(t, second.Ceiling)

	assert.Equal(t, int64(1), m.Lifetime().OffersAccepted)
}

func TestEvaluateSettledSessionIgnoresUnparsableOffer(t *testing.T) {
	svc, _ := newService(boardWith(1000))

	evaluate(t, svc, money.FromFloat(1050))

	out := evaluate(t, svc, money.FromString("call me back"))
	assert.True(t, out.Accepted)
	assert.Equal(t, "already settled", out.Note)
}

func TestEvaluateLowerOfferSettlesAfterTerminalRejection(t *testing.T) {
	svc, m := newService(boardWith(1000))

	for i := 0; i < 4; i++ {
		evaluate(t, svc, money.FromFloat(5000))
	}

	out := evaluate(t, svc, money.FromFloat(1080))
	assert.True(t, out.Accepted)
	assert.Equal(t, 1080.0, *out.Price)

	lifetime := m.Lifetime()
	assert.Equal(t, int64(1), lifetime.OffersAccepted)
	assert.Equal(t, int64(1), lifetime.OffersRejected)
}

func TestEvaluateListedRateChangeTakesEffectImmediately(t *testing.T) {
	board := boardWith(1000)
	svc, _ := newService(board)

	out := evaluate(t, svc, money.FromFloat(1150))
	assert.False(t, out.Accepted)
	assert.Equal(t, 1100.0, *out.Ceiling)

	board.setRate("L1001", 1100)

	out = evaluate(t, svc, money.FromFloat(1150))
	assert.True(t, out.Accepted)
	assert.Equal(t, 1210.0, *out.Ceiling)
}

func TestEvaluateCeilingRoundsToCents(t *testing.T) {
	svc, _ := newService(boardWith(999.99))

	out := evaluate(t, svc, money.FromFloat(1099.99))
	assert.True(t, out.Accepted)
	assert.Equal(t, 1099.99, *out.Ceiling)
}

func TestEvaluateUnknownLoadLeavesNoSession(t *testing.T) {
	svc, _ := newService(boardWith(1000))

	_, err := svc.Evaluate(context.Background(), domain.EvaluateRequest{
		MCNumber: "123456",
		LoadID:   "L9999",
		Offer:    money.FromFloat(1000),
	})
	assert.ErrorIs(t, err, loadboarddomain.ErrNotFound)

	impl := svc.(*service)
	impl.mu.Lock()
	defer impl.mu.Unlock()
	assert.Empty(t, impl.sessions)
}

func TestEvaluateInvalidOfferFailsParse(t *testing.T) {
	svc, m := newService(boardWith(1000))

	_, err := svc.Evaluate(context.Background(), domain.EvaluateRequest{
		MCNumber: "123456",
		LoadID:   "L1001",
		Offer:    money.FromString("no number here"),
	})
	assert.True(t, errors.Is(err, money.ErrInvalidAmount))

	lifetime := m.Lifetime()
	assert.Equal(t, int64(0), lifetime.OffersAccepted)
	assert.Equal(t, int64(0), lifetime.OffersRejected)
}
