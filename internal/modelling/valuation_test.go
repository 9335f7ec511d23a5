package modelling

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentValue_QuantityTimesClose(t *testing.T) {
	rows, err := CurrentQuantity(nvdaFixture())
	require.NoError(t, err)
	out := CurrentValue(rows)

	// the two Jan 6 rows collapse to the first one after sorting
	expected := []struct {
		date  int
		value float64
	}{
		{7, 5720}, {6, 5200}, {5, 5000}, {4, 4500}, {3, 5000}, {2, 2200}, {1, 0},
	}
	require.Len(t, out, len(expected))
	for i, want := range expected {
		assert.Equal(t, day(want.date), out[i].Date, "row %d", i)
		assert.True(t, out[i].Value.Equal(dec(want.value)),
			"row %d: expected value %v, got %s", i, want.value, out[i].Value)
	}
}

func TestCurrentValue_ValueMatchesProductExactly(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("value equals quantity times close pre-rounding", prop.ForAll(
		func(deltas, splits []int, closeCents int) bool {
			rows, err := CurrentQuantity(randomSeries(deltas, splits))
			if err != nil {
				return false
			}
			close := decimal.New(int64(closeCents), -2)
			for i := range rows {
				rows[i].Close = close
			}
			for _, r := range CurrentValue(rows) {
				if !r.Value.Equal(r.Quantity.Mul(r.Close)) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(-5, 5)),
		gen.SliceOf(gen.IntRange(1, 3)),
		gen.IntRange(1, 100000),
	))

	properties.TestingRun(t)
}
