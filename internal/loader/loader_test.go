package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelindex/parcels"
	"github.com/parcelindex/parcels/parcel"
)

func allFor(idx *parcels.Index, country string) []parcel.Parcel {
	var out []parcel.Parcel
	for p := range idx.AllForCountry(country) {
		out = append(out, p)
	}
	return out
}

func TestLoad(t *testing.T) {
	idx := parcels.New()
	res, err := Load(strings.NewReader("Canada, 500, 20.0\nCanada, 200, 8.0\nNew Zealand, 800, 35.5\n"), idx)
	require.NoError(t, err)
	require.NoError(t, res.Stopped)
	require.Equal(t, 3, res.Loaded)

	require.Equal(t, []parcel.Parcel{
		{Destination: "Canada", Weight: 200, Valuation: 8},
		{Destination: "Canada", Weight: 500, Valuation: 20},
	}, allFor(idx, "Canada"))
	require.Equal(t, []parcel.Parcel{
		{Destination: "New Zealand", Weight: 800, Valuation: 35.5},
	}, allFor(idx, "New Zealand"))
}

func TestLoadStopsAtFirstBadLine(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		loaded int
	}{
		{"bad weight", "Canada, 500, 20\nCanada, abc, 8\nCanada, 800, 35\n", 1},
		{"bad valuation", "Canada, 500, 20\nCanada, 200, x\nCanada, 800, 35\n", 1},
		{"missing field", "Canada, 500\nCanada, 800, 35\n", 0},
		{"extra field", "Canada, 500, 20\nCanada, 800, 35, 1\n", 1},
		{"negative weight", "Canada, 500, 20\nCanada, 600, 1\nCanada, -5, 1\nCanada, 800, 35\n", 2},
		{"negative valuation", "Canada, 500, -20\n", 0},
		{"empty destination", ", 500, 20\n", 0},
		{"hex weight", "Canada, 500, 20\nCanada, 0x10, 20\nCanada, 800, 35\n", 1},
		{"fractional weight", "Canada, 500, 20\nCanada, 12.7, 20\nCanada, 800, 35\n", 1},
		{"empty weight", "Canada, 500, 20\nCanada, , 20\nCanada, 800, 35\n", 1},
		{"empty valuation", "Canada, 500, 20\nCanada, 600, \nCanada, 800, 35\n", 1},
		{"hex valuation", "Canada, 500, 0x1p4\nCanada, 800, 35\n", 0},
		{"infinite valuation", "Canada, 500, 20\nCanada, 600, Inf\nCanada, 800, 35\n", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			idx := parcels.New()
			res, err := Load(strings.NewReader(tc.input), idx)
			require.NoError(t, err)
			require.ErrorIs(t, res.Stopped, ErrMalformedLine)
			require.Equal(t, tc.loaded, res.Loaded)
			require.Equal(t, tc.loaded, idx.Stats().Parcels)
			for _, p := range allFor(idx, "Canada") {
				require.Contains(t, []int{500, 600}, p.Weight)
			}
		})
	}
}

func TestLoadDecimalWeights(t *testing.T) {
	idx := parcels.New()
	res, err := Load(strings.NewReader("Canada, 010, 20.0\nCanada,  42 , 1e1\n"), idx)
	require.NoError(t, err)
	require.NoError(t, res.Stopped)
	require.Equal(t, []parcel.Parcel{
		{Destination: "Canada", Weight: 10, Valuation: 20},
		{Destination: "Canada", Weight: 42, Valuation: 10},
	}, allFor(idx, "Canada"))
}

func TestLoadKeepsQuotes(t *testing.T) {
	idx := parcels.New()
	res, err := Load(strings.NewReader("Cote d\"Ivoire, 500, 20.0\n\"Chad\", 300, 5\n\nChad, 100, 1\n"), idx)
	require.NoError(t, err)
	require.NoError(t, res.Stopped)
	require.Equal(t, 3, res.Loaded)

	require.Equal(t, []parcel.Parcel{
		{Destination: `Cote d"Ivoire`, Weight: 500, Valuation: 20},
	}, allFor(idx, `Cote d"Ivoire`))
	require.Equal(t, []parcel.Parcel{
		{Destination: `"Chad"`, Weight: 300, Valuation: 5},
	}, allFor(idx, `"Chad"`))
	require.Equal(t, []parcel.Parcel{
		{Destination: "Chad", Weight: 100, Valuation: 1},
	}, allFor(idx, "Chad"))
}

func TestLoadEmpty(t *testing.T) {
	idx := parcels.New()
	res, err := Load(strings.NewReader(""), idx)
	require.NoError(t, err)
	require.NoError(t, res.Stopped)
	require.Zero(t, res.Loaded)
}

type failingSink struct {
	calls int
}

func (s *failingSink) InsertParcel(parcel.Parcel) error {
	s.calls++
	return errors.New("boom")
}

func TestLoadSinkError(t *testing.T) {
	sink := &failingSink{}
	res, err := Load(strings.NewReader("Canada, 500, 20\nCanada, 200, 8\n"), sink)
	require.EqualError(t, err, "boom")
	require.Zero(t, res.Loaded)
	require.Equal(t, 1, sink.calls)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "couriers.txt")
	require.NoError(t, os.WriteFile(path, []byte("France, 10, 1.5\nFrance, 20, 2.5\n"), 0o644))

	idx := parcels.New()
	res, err := LoadFile(path, idx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Loaded)

	totals, ok := idx.Totals("France")
	require.True(t, ok)
	assert.Equal(t, int64(30), totals.Weight)
	assert.Equal(t, 4.0, totals.Valuation)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"), parcels.New())
	require.ErrorIs(t, err, os.ErrNotExist)
}
