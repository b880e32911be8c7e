package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/haulware/carriergate/internal/calllog/domain"
	"github.com/haulware/carriergate/internal/clock"
	loadboarddomain "github.com/haulware/carriergate/internal/loadboard/domain"
	"github.com/haulware/carriergate/internal/money"
	obsmetrics "github.com/haulware/carriergate/internal/observability/metrics"
	"github.com/haulware/carriergate/internal/transcript"
)

const recentCallLimit = 10

type Params struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	GenID     *snowflake.Node
	Loads     loadboarddomain.Service
	Extractor *transcript.Extractor
	Metrics   *obsmetrics.Metrics
}

type service struct {
	log       *zap.Logger
	clock     clock.Clock
	genID     *snowflake.Node
	loads     loadboarddomain.Service
	extractor *transcript.Extractor
	metrics   *obsmetrics.Metrics

	mu      sync.Mutex
	records []domain.CallRecord
}

func New(p Params) domain.Service {
	return &service{
		log:       p.Log.Named("calllog.service"),
		clock:     p.Clock,
		genID:     p.GenID,
		loads:     p.Loads,
		extractor: p.Extractor,
		metrics:   p.Metrics,
	}
}

func (s *service) Append(ctx context.Context, req domain.AppendRequest) (domain.CallRecord, error) {
	entities := s.extractor.Entities(req.Transcript)
	sentiment := s.extractor.Sentiment(req.Transcript)

	// An unparsable final price is recorded as absent, not rejected.
	var finalPrice *float64
	if v, err := money.Parse(req.FinalPrice); err == nil {
		finalPrice = &v
	}

	mcNumber := coalesce(req.MCNumber, entities.MCNumber)
	loadID := coalesce(req.LoadID, entities.LoadID)

	var boardRate *float64
	if loadID != nil {
		if load, err := s.loads.GetByID(ctx, *loadID); err == nil {
			rate := load.LoadboardRate
			boardRate = &rate
		}
	}

	record := domain.CallRecord{
		ID:         s.genID.Generate(),
		TS:         s.clock.Now().Truncate(time.Second),
		MCNumber:   mcNumber,
		LoadID:     loadID,
		FinalPrice: finalPrice,
		Accepted:   req.Accepted,
		Sentiment:  sentiment,
		BoardRate:  boardRate,
		Entities:   entities,
		Transcript: req.Transcript,
	}

	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()

	s.metrics.RecordCallResult(ctx, sentiment)
	s.log.Info("call result recorded",
		zap.String("sentiment", sentiment),
		zap.Bool("has_final_price", finalPrice != nil))

	return record, nil
}

func (s *service) Query(ctx context.Context, req domain.QueryRequest) (domain.Report, error) {
	_ = ctx

	from := validDate(req.From)
	to := validDate(req.To)

	filtered := s.filteredSnapshot(from, to)

	var acceptedInRange, rejectedInRange, boardMatches int
	var totalFinalSum, acceptedFinalSum float64
	buckets := make(map[string]*domain.DailyCount)

	for i := range filtered {
		r := &filtered[i]
		day := r.TS.Format("2006-01-02")

		bucket, ok := buckets[day]
		if !ok {
			bucket = &domain.DailyCount{Date: day}
			buckets[day] = bucket
		}

		if r.Accepted != nil {
			if *r.Accepted {
				acceptedInRange++
				bucket.Accepted++
			} else {
				rejectedInRange++
				bucket.Rejected++
			}
		}

		if r.FinalPrice != nil {
			totalFinalSum += *r.FinalPrice
			if r.Accepted != nil && *r.Accepted {
				acceptedFinalSum += *r.FinalPrice
			}
		}

		if r.Accepted != nil && *r.Accepted &&
			r.FinalPrice != nil && r.BoardRate != nil &&
			*r.FinalPrice == *r.BoardRate {
			boardMatches++
		}
	}

	callsInRange := acceptedInRange + rejectedInRange

	var matchRate *float64
	if callsInRange > 0 {
		rate := round1(float64(boardMatches) / float64(callsInRange) * 100)
		matchRate = &rate
	}

	recent := filtered
	if len(recent) > recentCallLimit {
		recent = recent[len(recent)-recentCallLimit:]
	}

	daily := make([]domain.DailyCount, 0, len(buckets))
	for _, bucket := range buckets {
		daily = append(daily, *bucket)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	lifetime := s.metrics.Lifetime()

	return domain.Report{
		Metrics: domain.LifetimeMetrics{
			CallsTotal:     lifetime.CallsTotal,
			OffersAccepted: lifetime.OffersAccepted,
			OffersRejected: lifetime.OffersRejected,
		},
		CallsLogged:             callsInRange,
		RecentCalls:             recent,
		TotalFinalSum:           money.Round2(totalFinalSum),
		AcceptedFinalSum:        money.Round2(acceptedFinalSum),
		BoardMatchAcceptedCount: boardMatches,
		BoardMatchRatePercent:   matchRate,
		AcceptedInRange:         acceptedInRange,
		RejectedInRange:         rejectedInRange,
		DailyCounts:             daily,
	}, nil
}

// filteredSnapshot copies the records whose timestamp date falls inside the
// bounds, preserving append order.
func (s *service) filteredSnapshot(from, to string) []domain.CallRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CallRecord, 0, len(s.records))
	for _, r := range s.records {
		day := r.TS.Format("2006-01-02")
		if from != "" && day < from {
			continue
		}
		if to != "" && day > to {
			continue
		}
		out = append(out, r)
	}
	return out
}

func coalesce(explicit string, guessed *string) *string {
	if v := strings.TrimSpace(explicit); v != "" {
		return &v
	}
	return guessed
}

// validDate keeps a bound only when it looks like YYYY-MM-DD.
func validDate(d string) string {
	if len(d) == 10 && d[4] == '-' && d[7] == '-' {
		return d
	}
	return ""
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
