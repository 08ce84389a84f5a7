package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndex_AveragesDuplicates(t *testing.T) {
	ix := BuildIndex([]Record{
		{CountryCode: "USA", Year: 2015, Value: 10},
		{CountryCode: "USA", Year: 2015, Value: 30},
		{CountryCode: "USA", Year: 2015, Value: math.NaN()},
		{CountryCode: "CAN", Year: 2015, Value: math.NaN()},
	})

	assert.Equal(t, 1, ix.Len())
	v, ok := ix.Lookup(Key{CountryCode: "USA", Year: 2015})
	require.True(t, ok)
	assert.Equal(t, 20.0, v)

	_, ok = ix.Lookup(Key{CountryCode: "CAN", Year: 2015})
	assert.False(t, ok)
}

func TestJoin(t *testing.T) {
	left := []Record{
		{Country: "United States", CountryCode: "USA", Year: 2015, Value: 5},
		{Country: "Canada", CountryCode: "CAN", Year: 2015, Value: 3},
		{Country: "Mexico", CountryCode: "MEX", Year: 2015, Value: math.NaN()},
		{Country: "Chile", CountryCode: "CHL", Year: 2015, Value: 1},
	}
	right := []Record{
		{CountryCode: "USA", Year: 2015, Value: 50},
		{CountryCode: "USA", Year: 2016, Value: 99},
		{CountryCode: "CAN", Year: 2015, Value: 0},
		{CountryCode: "MEX", Year: 2015, Value: 10},
		{CountryCode: "CHL", Year: 2015, Value: -4},
	}

	got := Join(left, right)
	assert.Equal(t, []Pair{{Left: 5, Right: 50, Country: "United States", CountryCode: "USA", Year: 2015}}, got)

	all := Pairs(left, right)
	assert.Len(t, all, 3, "Pairs keeps non-positive right values")
}

func TestJoin_OrderIndependent(t *testing.T) {
	left := []Record{{CountryCode: "USA", Year: 2015, Value: 1}}
	a := []Record{{CountryCode: "USA", Year: 2015, Value: 10}, {CountryCode: "USA", Year: 2015, Value: 20}}
	b := []Record{a[1], a[0]}

	assert.Equal(t, Join(left, a), Join(left, b))
	assert.Equal(t, Join(left, a), JoinIndex(left, BuildIndex(b)))
}

func TestCorrelation(t *testing.T) {
	xs := []Record{
		{CountryCode: "USA", Year: 2015, Value: 1},
		{CountryCode: "USA", Year: 2016, Value: 2},
		{CountryCode: "CAN", Year: 2015, Value: 3},
		{CountryCode: "CAN", Year: 2016, Value: 4},
	}

	t.Run("self correlation", func(t *testing.T) {
		assert.InDelta(t, 1.0, Correlation(xs, xs), 1e-9)
	})

	t.Run("perfect negative", func(t *testing.T) {
		ys := make([]Record, len(xs))
		for i, r := range xs {
			r.Value = -2 * r.Value
			ys[i] = r
		}
		assert.InDelta(t, -1.0, Correlation(xs, ys), 1e-9)
	})

	t.Run("fewer than two pairs", func(t *testing.T) {
		ys := []Record{{CountryCode: "USA", Year: 2015, Value: 9}}
		assert.Equal(t, 0.0, Correlation(xs, ys))
		assert.Equal(t, 0.0, Correlation(nil, nil))
	})

	t.Run("zero variance", func(t *testing.T) {
		ys := make([]Record, len(xs))
		for i, r := range xs {
			r.Value = 7
			ys[i] = r
		}
		assert.Equal(t, 0.0, Correlation(xs, ys))
	})
}

func TestCorrelationMatrix(t *testing.T) {
	water := []Record{
		{CountryCode: "USA", Year: 2015, Value: 1},
		{CountryCode: "USA", Year: 2016, Value: 2},
		{CountryCode: "CAN", Year: 2015, Value: 3},
	}
	land := []Record{
		{CountryCode: "USA", Year: 2015, Value: 10},
		{CountryCode: "USA", Year: 2016, Value: 30},
		{CountryCode: "CAN", Year: 2015, Value: 20},
	}
	series := []Series{{Dataset: Water, Records: water}, {Dataset: Land, Records: land}}

	m := CorrelationMatrix(series, DefaultSelection())
	require.Len(t, m.Values, 2)
	assert.Equal(t, []string{"Water Use", "Land Area"}, m.Labels)
	assert.InDelta(t, 1.0, m.Values[0][0], 1e-9)
	assert.InDelta(t, 1.0, m.Values[1][1], 1e-9)
	assert.InDelta(t, m.Values[0][1], m.Values[1][0], 1e-9)
	assert.False(t, m.AllZero())

	// Only the United States reports in 2016, leaving a single pair.
	single := CorrelationMatrix(series, DefaultSelection().WithYear(2016))
	assert.True(t, single.AllZero())
}
