package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/haulware/carriergate/internal/money"
	"github.com/haulware/carriergate/internal/transcript"
)

// CallRecord is one ledger entry. BoardRate is a snapshot taken at append
// time; later catalog changes do not alter it. Pointer fields serialize as
// explicit nulls when absent.
type CallRecord struct {
	ID         snowflake.ID        `json:"id"`
	TS         time.Time           `json:"ts"`
	MCNumber   *string             `json:"mc_number"`
	LoadID     *string             `json:"load_id"`
	FinalPrice *float64            `json:"final_price"`
	Accepted   *bool               `json:"accepted"`
	Sentiment  string              `json:"sentiment"`
	BoardRate  *float64            `json:"board_rate"`
	Entities   transcript.Entities `json:"entities"`
	Transcript string              `json:"transcript"`
}

// AppendRequest carries one finished call. MCNumber and LoadID fall back to
// the transcript extraction when empty; FinalPrice arrives unparsed.
type AppendRequest struct {
	MCNumber   string
	LoadID     string
	FinalPrice money.Amount
	Accepted   *bool
	Transcript string
}

// QueryRequest bounds the report window. Bounds are YYYY-MM-DD date strings;
// malformed bounds are treated as absent.
type QueryRequest struct {
	From string
	To   string
}

// DailyCount is one day's decision histogram bucket.
type DailyCount struct {
	Date     string `json:"date"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"`
}

// LifetimeMetrics mirrors the process-lifetime counters on the wire. These
// are unfiltered; the *_in_range figures next to them are not.
type LifetimeMetrics struct {
	CallsTotal     int64 `json:"calls_total"`
	OffersAccepted int64 `json:"offers_accepted"`
	OffersRejected int64 `json:"offers_rejected"`
}

// Report is the dashboard payload for one date window.
type Report struct {
	Metrics                 LifetimeMetrics `json:"metrics"`
	CallsLogged             int             `json:"calls_logged"`
	RecentCalls             []CallRecord    `json:"recent_calls"`
	TotalFinalSum           float64         `json:"total_final_sum"`
	AcceptedFinalSum        float64         `json:"accepted_final_sum"`
	BoardMatchAcceptedCount int             `json:"board_match_accepted_count"`
	BoardMatchRatePercent   *float64        `json:"board_match_rate_percent"`
	AcceptedInRange         int             `json:"accepted_in_range"`
	RejectedInRange         int             `json:"rejected_in_range"`
	DailyCounts             []DailyCount    `json:"daily_counts"`
}

type Service interface {
	Append(ctx context.Context, req AppendRequest) (CallRecord, error)
	Query(ctx context.Context, req QueryRequest) (Report, error)
}
