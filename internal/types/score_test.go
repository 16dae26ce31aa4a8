package types

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScoreRange(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "lower bound", value: "-1"},
		{name: "upper bound", value: "1.00"},
		{name: "zero is a set value", value: "0"},
		{name: "above", value: "1.01", wantErr: true},
		{name: "below", value: "-1.5", wantErr: true},
		{name: "finest scale", value: "0.1234567890123456789012345678"},
		{name: "scale too fine", value: "0e-50000000", wantErr: true},
		{name: "scale too coarse", value: "0e50000000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScore(decimal.RequireFromString(tt.value))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
				assert.False(t, s.IsSet())
				return
			}
			require.NoError(t, err)
			assert.True(t, s.IsSet())
		})
	}
}

func TestScoreFormatting(t *testing.T) {
	assert.Equal(t, "", Score{}.Format())
	assert.Equal(t, "", Score{}.Canonical())
	assert.Equal(t, "<unset>", Score{}.String())
	assert.Equal(t, "0.50", MustScore("0.5").Format())
	assert.Equal(t, "0.5", MustScore("0.50").Canonical())
	assert.Equal(t, "-0.125", MustScore("-0.125").Format())
}

func TestScoreCompare(t *testing.T) {
	assert.Equal(t, 0, Score{}.Compare(Score{}))
	assert.Equal(t, -1, Score{}.Compare(MustScore("-1")))
	assert.Equal(t, 1, MustScore("0").Compare(Score{}))
	assert.Equal(t, 0, MustScore("0.5").Compare(MustScore("0.50")))
	assert.Equal(t, -1, MustScore("0.25").Compare(MustScore("0.5")))
}
