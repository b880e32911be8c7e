package money

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidAmount flags an offer that cannot be read as a dollar amount.
var ErrInvalidAmount = errors.New("invalid_amount")

// amountRe picks the first plausible dollar figure out of a cleaned string,
// up to seven integer digits and at most two decimals.
var amountRe = regexp.MustCompile(`-?\d{1,7}(?:\.\d{1,2})?`)

type kind int

const (
	kindNone kind = iota
	kindNumber
	kindText
)

// Amount carries a raw offer value exactly as it arrived on the wire.
// Callers send either a JSON number or a free-form string such as
// "$1,600.50"; Parse resolves both to a float. Anything else stays
// unset and fails Parse.
type Amount struct {
	number float64
	text   string
	kind   kind
}

func FromFloat(v float64) Amount {
	return Amount{number: v, kind: kindNumber}
}

func FromString(s string) Amount {
	return Amount{text: s, kind: kindText}
}

// IsSet reports whether the value was present and was a number or string.
func (a Amount) IsSet() bool {
	return a.kind != kindNone
}

// UnmarshalJSON accepts a number or a string. Other JSON values (null,
// booleans, arrays, objects) leave the Amount unset rather than failing
// the bind, so the rejection surfaces as an invalid amount instead of a
// malformed request.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*a = Amount{}
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = FromString(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		*a = Amount{}
		return nil
	}
	*a = FromFloat(n)
	return nil
}

// Parse resolves the raw value to a float. Numbers pass through
// untouched. Strings are trimmed, stripped of "," and "$", and the
// first embedded figure wins: "$1,600.50 per mile" parses to 1600.50.
func Parse(a Amount) (float64, error) {
	switch a.kind {
	case kindNumber:
		return a.number, nil
	case kindText:
		s := strings.TrimSpace(a.text)
		s = strings.ReplaceAll(s, ",", "")
		s = strings.ReplaceAll(s, "$", "")
		match := amountRe.FindString(s)
		if match == "" {
			return 0, ErrInvalidAmount
		}
		v, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		return v, nil
	default:
		return 0, ErrInvalidAmount
	}
}

// Round2 rounds to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
