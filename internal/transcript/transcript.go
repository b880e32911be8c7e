package transcript

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/haulware/carriergate/internal/config"
	"go.uber.org/fx"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

var (
	mcRe = regexp.MustCompile(`(?i)\bMC(?:\s|#|:)?\s*(\d{4,10})\b`)
	// priceRe runs against comma-stripped text so "$1,600" reads as one figure.
	priceRe  = regexp.MustCompile(`\b\$?\s*(\d{2,6}(?:\.\d{1,2})?)\b`)
	loadIDRe = regexp.MustCompile(`(?i)\bL\d{3,}\b`)
)

var positiveTokens = []string{"good", "great", "ok", "thanks", "thank", "yes", "happy", "accept"}
var negativeTokens = []string{"no", "not", "reject", "angry", "bad", "hate", "problem", "can't", "cannot"}

// Entities holds the references recognized in a call transcript. Fields
// stay nil when the transcript never mentions them.
type Entities struct {
	MCNumber *string  `json:"mc_number,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	LoadID   *string  `json:"load_id,omitempty"`
}

// Extractor pulls carrier references and a coarse mood out of raw call
// transcripts. With NLP disabled it yields empty entities and a neutral
// sentiment so downstream records stay well-formed.
type Extractor struct {
	enabled bool
}

var Module = fx.Module("transcript",
	fx.Provide(New),
)

func New(cfg config.Config) *Extractor {
	return &Extractor{enabled: cfg.EnableNLP}
}

// Entities scans the transcript for an MC number, a dollar figure and a
// load reference. The first hit wins for each.
func (e *Extractor) Entities(text string) Entities {
	if !e.enabled {
		return Entities{}
	}

	var out Entities
	if m := mcRe.FindStringSubmatch(text); m != nil {
		out.MCNumber = strPtr(m[1])
	}
	if m := priceRe.FindStringSubmatch(strings.ReplaceAll(text, ",", "")); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			out.Price = &v
		}
	}
	if m := loadIDRe.FindString(text); m != "" {
		out.LoadID = strPtr(m)
	}
	return out
}

// Sentiment classifies the transcript by counting positive and negative
// keyword occurrences on the lowercased text. Ties are neutral.
func (e *Extractor) Sentiment(text string) string {
	if !e.enabled || text == "" {
		return SentimentNeutral
	}

	t := strings.ToLower(text)
	pos := countTokens(t, positiveTokens)
	neg := countTokens(t, negativeTokens)

	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func countTokens(text string, tokens []string) int {
	total := 0
	for _, tok := range tokens {
		total += strings.Count(text, tok)
	}
	return total
}

func strPtr(s string) *string { return &s }
