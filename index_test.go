package parcels

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelindex/parcels/parcel"
)

func weights(seq func(func(parcel.Parcel) bool)) []int {
	var out []int
	for p := range seq {
		out = append(out, p.Weight)
	}
	return out
}

func newCanada(t *testing.T) *Index {
	t.Helper()
	idx := New()
	require.NoError(t, idx.Insert("Canada", 500, 20.0))
	require.NoError(t, idx.Insert("Canada", 200, 8.0))
	require.NoError(t, idx.Insert("Canada", 800, 35.0))
	return idx
}

func TestIndexCanada(t *testing.T) {
	idx := newCanada(t)
	defer idx.Destroy()

	require.Equal(t, []int{200, 500, 800}, weights(idx.AllForCountry("Canada")))

	totals, ok := idx.Totals("Canada")
	require.True(t, ok)
	require.Equal(t, Totals{Count: 3, Weight: 1500, Valuation: 63.0}, totals)

	ext, ok := idx.WeightExtremes("Canada")
	require.True(t, ok)
	require.Equal(t, parcel.Parcel{Destination: "Canada", Weight: 200, Valuation: 8}, ext.Min)
	require.Equal(t, parcel.Parcel{Destination: "Canada", Weight: 800, Valuation: 35}, ext.Max)

	ext, ok = idx.ValuationExtremes("Canada")
	require.True(t, ok)
	require.Equal(t, 8.0, ext.Min.Valuation)
	require.Equal(t, 35.0, ext.Max.Valuation)

	p, ok := idx.FindByWeight("Canada", 500)
	require.True(t, ok)
	require.Equal(t, 20.0, p.Valuation)

	_, ok = idx.FindByWeight("Canada", 501)
	require.False(t, ok)

	require.Equal(t, []int{800}, weights(idx.HeavierThan("Canada", 500)))
	require.Equal(t, []int{500, 800}, weights(idx.HeavierThan("Canada", 499)))
	require.Equal(t, []int{200}, weights(idx.LighterThan("Canada", 500)))
	require.Empty(t, weights(idx.LighterThan("Canada", 200)))
}

func TestIndexUnknownCountry(t *testing.T) {
	idx := newCanada(t)

	_, ok := idx.FindByWeight("France", 10)
	assert.False(t, ok)
	_, ok = idx.Totals("France")
	assert.False(t, ok)
	_, ok = idx.ValuationExtremes("France")
	assert.False(t, ok)
	_, ok = idx.WeightExtremes("France")
	assert.False(t, ok)
	_, ok = idx.Lookup("France")
	assert.False(t, ok)
	assert.Empty(t, weights(idx.AllForCountry("France")))
	assert.Empty(t, weights(idx.HeavierThan("France", 0)))
	assert.Empty(t, weights(idx.LighterThan("France", 1000)))

	empty := New()
	_, ok = empty.Totals("Canada")
	assert.False(t, ok)
}

func TestIndexInsertInvalid(t *testing.T) {
	idx := New()
	require.ErrorIs(t, idx.Insert("Canada", -1, 1), ErrInvalidParcel)
	require.ErrorIs(t, idx.Insert("Canada", 1, -1), ErrInvalidParcel)
	_, ok := idx.Lookup("Canada")
	require.False(t, ok)
	require.Zero(t, idx.Stats().Parcels)
}

func TestIndexEmptyDestination(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Insert("", 250, 3))
	require.Equal(t, uint32(47), Hash(""))

	got, ok := idx.FindByWeight("", 250)
	require.True(t, ok)
	require.Equal(t, parcel.Parcel{Destination: "", Weight: 250, Valuation: 3}, got)
	require.Equal(t, []string{""}, idx.Countries())
	require.Equal(t, 1, idx.Stats().UsedSlots)
}

func TestIndexDuplicateWeights(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Insert("Canada", 300, 1))
	require.NoError(t, idx.Insert("Canada", 300, 2))
	require.NoError(t, idx.Insert("Canada", 100, 5))
	require.NoError(t, idx.Insert("Canada", 300, 2))

	require.Equal(t, []int{100, 300, 300, 300}, weights(idx.AllForCountry("Canada")))

	p, ok := idx.FindByWeight("Canada", 300)
	require.True(t, ok)
	require.Equal(t, 1.0, p.Valuation)

	// Pre-order is 300/1, 100/5, 300/2, 300/2. Ties keep the first one met.
	ext, _ := idx.ValuationExtremes("Canada")
	require.Equal(t, parcel.Parcel{Destination: "Canada", Weight: 300, Valuation: 1}, ext.Min)
	require.Equal(t, parcel.Parcel{Destination: "Canada", Weight: 100, Valuation: 5}, ext.Max)

	ext, _ = idx.WeightExtremes("Canada")
	require.Equal(t, 100, ext.Min.Weight)
	require.Equal(t, parcel.Parcel{Destination: "Canada", Weight: 300, Valuation: 1}, ext.Max)

	require.Empty(t, weights(idx.HeavierThan("Canada", 300)))
	require.Equal(t, []int{100}, weights(idx.LighterThan("Canada", 300)))
}

func TestIndexTotalsAnyOrder(t *testing.T) {
	records := []parcel.Parcel{
		{Destination: "India", Weight: 120, Valuation: 10.5},
		{Destination: "India", Weight: 40, Valuation: 2.25},
		{Destination: "India", Weight: 900, Valuation: 100},
		{Destination: "India", Weight: 40, Valuation: 7.75},
		{Destination: "India", Weight: 5000, Valuation: 0.5},
		{Destination: "India", Weight: 1, Valuation: 0},
	}
	for i := 0; i < 20; i++ {
		idx := New()
		for _, j := range rand.Perm(len(records)) {
			require.NoError(t, idx.InsertParcel(records[j]))
		}
		totals, ok := idx.Totals("India")
		require.True(t, ok)
		require.Equal(t, 6, totals.Count)
		require.Equal(t, int64(6101), totals.Weight)
		require.InDelta(t, 121.0, totals.Valuation, 1e-9)

		got := weights(idx.AllForCountry("India"))
		require.True(t, slices.IsSorted(got))
		require.Len(t, got, 6)

		for _, r := range records {
			p, ok := idx.FindByWeight("India", r.Weight)
			require.True(t, ok)
			require.Equal(t, r.Weight, p.Weight)
		}
	}
}

func TestIndexDestroy(t *testing.T) {
	idx := newCanada(t)
	idx.Destroy()
	idx.Destroy()

	_, ok := idx.Lookup("Canada")
	require.False(t, ok)
	require.ErrorIs(t, idx.Insert("Canada", 1, 1), ErrDestroyed)
	require.Zero(t, idx.Stats().Parcels)
}

func TestIndexStats(t *testing.T) {
	idx := newCanada(t)
	require.NoError(t, idx.Insert("India", 10, 1))
	require.Equal(t, Stats{Parcels: 4, Countries: 2, UsedSlots: 2, Policy: SeparateCountries}, idx.Stats())
	require.Equal(t, []string{"Canada", "India"}, idx.Countries())
}

func TestCountryView(t *testing.T) {
	idx := newCanada(t)
	c, ok := idx.Lookup("Canada")
	require.True(t, ok)
	require.Equal(t, "Canada", c.Name())
	require.Equal(t, 3, c.Len())
	require.Equal(t, []int{200, 500, 800}, weights(c.All()))
}
