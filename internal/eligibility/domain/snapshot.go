package domain

import (
	"context"
	"strings"
	"time"
)

const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// Snapshot is one carrier authority record, either fetched live from the
// registry or synthesized as a fallback when the registry is unreachable.
type Snapshot struct {
	MCNumber       string `json:"mc_number"`
	LegalName      string `json:"legal_name"`
	AllowToOperate string `json:"allow_to_operate"`
	OutOfService   string `json:"out_of_service"`
	SnapshotDate   string `json:"snapshot_date"`
	Source         string `json:"source"`
}

// Eligible derives the operating verdict. Fallback snapshots always pass;
// anything else must be allowed to operate and not out of service.
func (s Snapshot) Eligible() bool {
	if s.Source == SourceFallback {
		return true
	}
	return truthy(s.AllowToOperate) && !truthy(s.OutOfService)
}

func truthy(flag string) bool {
	switch strings.ToLower(flag) {
	case "y", "yes", "true":
		return true
	default:
		return false
	}
}

// FallbackSnapshot synthesizes a permissive stand-in record for a carrier.
func FallbackSnapshot(mcNumber string, now time.Time) Snapshot {
	return Snapshot{
		MCNumber:       mcNumber,
		LegalName:      "Fallback Carrier " + mcNumber,
		AllowToOperate: "Y",
		OutOfService:   "N",
		SnapshotDate:   now.UTC().Format(time.RFC3339),
		Source:         SourceFallback,
	}
}

// Provider fetches live snapshots from the carrier registry.
type Provider interface {
	FetchSnapshot(ctx context.Context, mcNumber string) (Snapshot, error)
}

type Service interface {
	Lookup(ctx context.Context, mcNumber string) (Snapshot, error)
}
