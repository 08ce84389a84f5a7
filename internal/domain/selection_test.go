package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name                   string
		dataset, year, country string
		want                   Selection
	}{
		{"defaults", "", "", "", Selection{Dataset: Water}},
		{"all sentinels", "energy", "All", "all", Selection{Dataset: Energy}},
		{"explicit", "Land", "2015", " USA ", Selection{Dataset: Land, Year: 2015, Country: "USA"}},
		{"nutrients alias", "nutrients", "2010", "", Selection{Dataset: Nutrient, Year: 2010}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection(tt.dataset, tt.year, tt.country)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSelection_Invalid(t *testing.T) {
	_, err := ParseSelection("soil", "", "")
	require.ErrorIs(t, err, ErrInvalidSelection)
	require.ErrorIs(t, err, ErrUnknownDataset)

	_, err = ParseSelection("water", "twenty", "")
	require.ErrorIs(t, err, ErrInvalidSelection)
}

func TestSelection_CopyOnWrite(t *testing.T) {
	base := DefaultSelection()
	next := base.WithDataset(Energy).WithYear(2015).WithCountry("USA")

	assert.Equal(t, DefaultSelection(), base)
	assert.Equal(t, Selection{Dataset: Energy, Year: 2015, Country: "USA"}, next)
	assert.Equal(t, Selection{Dataset: Energy, Year: 2015}, next.YearOnly())
	assert.Equal(t, Selection{Dataset: Energy, Country: "USA"}, next.CountryOnly())
	assert.True(t, next.WithCountry("All").AllCountries())
}

func TestSelection_String(t *testing.T) {
	assert.Equal(t, "All Years • All Countries • Water Use", DefaultSelection().String())
	assert.Equal(t, "2015 • USA • Energy Use", Selection{Dataset: Energy, Year: 2015, Country: "USA"}.String())
}

func TestSelection_Filter(t *testing.T) {
	sel := Selection{Dataset: Water, Year: 2015, Country: "USA"}
	got := sel.Filter(sampleRecords())
	require.Len(t, got, 1)
	assert.Equal(t, 100.0, got[0].Value)
}

func TestDatasetType(t *testing.T) {
	dt, err := ParseDatasetType("Agricultural")
	require.NoError(t, err)
	assert.Equal(t, Land, dt)
	assert.True(t, dt.Valid())
	assert.False(t, DatasetType("soil").Valid())

	assert.Equal(t, Land, Water.ScatterPartner())
	assert.Equal(t, Water, Nutrient.ScatterPartner())
	assert.Equal(t, Nutrient, Energy.ScatterPartner())
	assert.Equal(t, Energy, Land.ScatterPartner())
}

func TestResolveISO3(t *testing.T) {
	code, ok := ResolveISO3("United States")
	require.True(t, ok)
	assert.Equal(t, "USA", code)

	code, ok = ResolveISO3(" Viet Nam ")
	require.True(t, ok)
	assert.Equal(t, "VNM", code)

	_, ok = ResolveISO3("Atlantis")
	assert.False(t, ok)
	assert.Positive(t, KnownCountries())
}
