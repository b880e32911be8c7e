package transcript

import (
	"testing"

	"github.com/haulware/carriergate/internal/config"
)

func enabledExtractor() *Extractor {
	return New(config.Config{EnableNLP: true})
}

func TestEntitiesFindsReferences(t *testing.T) {
	cases := []struct {
		name       string
		transcript string
		wantMC     string
		wantLoad   string
	}{
		{
			name:       "hash separator",
			transcript: "Hi, this is MC#123456 calling about L1234",
			wantMC:     "123456",
			wantLoad:   "L1234",
		},
		{
			name:       "colon separator keeps matched case",
			transcript: "mc: 4567 here about load l987",
			wantMC:     "4567",
			wantLoad:   "l987",
		},
		{
			name:       "space separator",
			transcript: "MC 99887766 asking about L555000",
			wantMC:     "99887766",
			wantLoad:   "L555000",
		},
	}

	e := enabledExtractor()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Entities(tc.transcript)
			if got.MCNumber == nil || *got.MCNumber != tc.wantMC {
				t.Fatalf("mc_number: got %v want %q", got.MCNumber, tc.wantMC)
			}
			if got.LoadID == nil || *got.LoadID != tc.wantLoad {
				t.Fatalf("load_id: got %v want %q", got.LoadID, tc.wantLoad)
			}
		})
	}
}

func TestEntitiesPrice(t *testing.T) {
	e := enabledExtractor()

	got := e.Entities("we could take $2,350.75 on that lane")
	if got.Price == nil || *got.Price != 2350.75 {
		t.Fatalf("price: got %v want 2350.75", got.Price)
	}

	got = e.Entities("no numbers here")
	if got.Price != nil {
		t.Fatalf("price: got %v want nil", *got.Price)
	}
}

func TestEntitiesEmptyWhenNothingMatches(t *testing.T) {
	e := enabledExtractor()
	got := e.Entities("just checking in about freight")
	if got.MCNumber != nil || got.Price != nil || got.LoadID != nil {
		t.Fatalf("expected empty entities, got %+v", got)
	}
}

func TestSentiment(t *testing.T) {
	cases := []struct {
		name       string
		transcript string
		want       string
	}{
		{name: "positive", transcript: "great, thanks, that works for us, happy to accept", want: SentimentPositive},
		{name: "negative", transcript: "no, that rate is bad, we cannot do it", want: SentimentNegative},
		{name: "tie is neutral", transcript: "ok but no", want: SentimentNeutral},
		{name: "empty", transcript: "", want: SentimentNeutral},
		{name: "no keywords", transcript: "we will call back tomorrow", want: SentimentNeutral},
	}

	e := enabledExtractor()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.Sentiment(tc.transcript); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestDisabledExtractorSkipsAnalysis(t *testing.T) {
	e := New(config.Config{EnableNLP: false})

	got := e.Entities("MC#123456 wants $1,600 for L1234")
	if got.MCNumber != nil || got.Price != nil || got.LoadID != nil {
		t.Fatalf("expected empty entities, got %+v", got)
	}
	if s := e.Sentiment("great, thanks"); s != SentimentNeutral {
		t.Fatalf("got %q want neutral", s)
	}
}
