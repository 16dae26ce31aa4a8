package types

import (
	"strconv"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/shopspring/decimal"
)

// MaxScoreScale bounds the decimal exponent of a score in either direction.
const MaxScoreScale = 28

var (
	scoreMin = decimal.NewFromInt(-1)
	scoreMax = decimal.NewFromInt(1)
)

// Score is an attention weight in [-1, 1]. The zero value is unset and is
// never written to output.
type Score struct {
	value decimal.Decimal
	set   bool
}

// NewScore rejects values outside [-1, 1] and values whose exponent exceeds
// MaxScoreScale.
func NewScore(value decimal.Decimal) (Score, error) {
	if exp := value.Exponent(); exp < -MaxScoreScale || exp > MaxScoreScale {
		return Score{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("score exponent " + strconv.Itoa(int(exp)) + " exceeds scale " + strconv.Itoa(MaxScoreScale))
	}
	if value.LessThan(scoreMin) || value.GreaterThan(scoreMax) {
		return Score{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("score " + value.String() + " is outside [-1, 1]")
	}
	return Score{value: value, set: true}, nil
}

// MustScore parses a literal score and panics when it is invalid. Intended
// for fixtures and tests.
func MustScore(literal string) Score {
	value, err := decimal.NewFromString(literal)
	if err != nil {
		panic(err)
	}
	s, err := NewScore(value)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Score) IsSet() bool { return s.set }

// Decimal returns the stored value; zero when unset.
func (s Score) Decimal() decimal.Decimal { return s.value }

// Format renders the score with at least two fraction digits, keeping any
// extra precision the value carries.
func (s Score) Format() string {
	if !s.set {
		return ""
	}
	places := int32(2)
	if exp := -s.value.Exponent(); exp > places {
		places = exp
	}
	return s.value.StringFixed(places)
}

// Canonical renders the score in its normalized form, so equal scores with
// different scale produce the same text.
func (s Score) Canonical() string {
	if !s.set {
		return ""
	}
	return s.value.String()
}

// Compare orders unset before set, then by numeric value.
func (s Score) Compare(other Score) int {
	switch {
	case !s.set && !other.set:
		return 0
	case !s.set:
		return -1
	case !other.set:
		return 1
	}
	return s.value.Cmp(other.value)
}

func (s Score) String() string {
	if !s.set {
		return "<unset>"
	}
	return s.Format()
}
