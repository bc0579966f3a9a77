package lfpid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProcessor wraps the response functions of p to count model calls.
func countingProcessor(p *SpeciesProcessor) *int {
	calls := new(int)
	signal, resolution := p.expectedSignal, p.expectedResolution
	p.expectedSignal = func(s Species, innerParam float32, params ParameterSet) float32 {
		*calls++
		return signal(s, innerParam, params)
	}
	p.expectedResolution = func(s Species, innerParam float32, params ParameterSet) float32 {
		*calls++
		return resolution(s, innerParam, params)
	}
	return calls
}

func sampleTracks() []Track {
	tracks := []Track{
		{InnerParam: 0.3, Signal: 80},
		{InnerParam: 0.5, Signal: 50},
		{InnerParam: 1.1, Signal: 55},
		{InnerParam: 4.0, Signal: 60},
	}
	for i := range tracks {
		for s := range NSpecies {
			tracks[i].TinyNSigma[s] = int8(10*i + s)
			tracks[i].ExpSigma[s] = float32(i) + 0.25
			tracks[i].NSigma[s] = -float32(s) - 0.5
		}
	}
	return tracks
}

func TestProcessTinyPassthrough(t *testing.T) {
	table := NewLabeledArray()
	table.Set("Ka", LabelUseDefaultTiny, 2)
	p := NewSpeciesProcessor(Kaon, DefaultParameters(), table)
	require.True(t, p.UseDefaultTiny)
	require.False(t, p.UseDefaultFull)
	calls := countingProcessor(p)

	tracks := sampleTracks()
	got := p.ProcessTiny(tracks)
	require.Len(t, got, len(tracks))
	for i, trk := range tracks {
		assert.Equal(t, trk.TinyNSigma[Kaon], got[i])
	}
	assert.Zero(t, *calls)
}

func TestProcessFullPassthrough(t *testing.T) {
	table := NewLabeledArray()
	table.Set("Tr", LabelUseDefaultFull, 1.5)
	p := NewSpeciesProcessor(Triton, DefaultParameters(), table)
	calls := countingProcessor(p)

	tracks := sampleTracks()
	nan := math.Float32frombits(0x7fc00123)
	tracks[2].NSigma[Triton] = nan

	got := p.ProcessFull(tracks)
	require.Len(t, got, len(tracks))
	for i, trk := range tracks {
		assert.Equal(t, math.Float32bits(trk.ExpSigma[Triton]), math.Float32bits(got[i].ExpSigma))
		assert.Equal(t, math.Float32bits(trk.NSigma[Triton]), math.Float32bits(got[i].NSigma))
	}
	assert.Zero(t, *calls)
}

func TestProcessComputed(t *testing.T) {
	params := DefaultParameters()
	p := NewSpeciesProcessor(Pion, params, NewLabeledArray())
	calls := countingProcessor(p)
	tracks := sampleTracks()

	full := p.ProcessFull(tracks)
	tiny := p.ProcessTiny(tracks)
	require.Len(t, full, len(tracks))
	require.Len(t, tiny, len(tracks))
	assert.Equal(t, 4*len(tracks), *calls)

	for i, trk := range tracks {
		expSigma := ExpectedResolution(Pion, trk.InnerParam, params)
		nSigma := (trk.Signal - ExpectedSignal(Pion, trk.InnerParam, params)) / expSigma
		assert.Equal(t, expSigma, full[i].ExpSigma)
		assert.Equal(t, nSigma, full[i].NSigma)
		assert.Equal(t, PackTiny(nSigma), tiny[i])
	}
}

func TestResidualZeroAtExpectedSignal(t *testing.T) {
	params := DefaultParameters()
	// Electrons sit on the Fermi plateau at this momentum, where the
	// resolution can vanish in single precision.
	for _, s := range AllSpecies()[1:] {
		p := NewSpeciesProcessor(s, params, nil)
		trk := Track{InnerParam: 0.8, Signal: ExpectedSignal(s, 0.8, params)}
		_, nSigma := p.Response(trk)
		assert.Equal(t, float32(0), nSigma, s.String())
		assert.Equal(t, int8(0), p.ProcessTiny([]Track{trk})[0], s.String())
	}
}

func TestProcessNonFiniteResidual(t *testing.T) {
	params := DefaultParameters()
	params.Res = 0
	p := NewSpeciesProcessor(Pion, params, nil)
	trk := Track{InnerParam: 0.5, Signal: 50}

	full := p.ProcessFull([]Track{trk})
	assert.Equal(t, float32(0), full[0].ExpSigma)
	assert.True(t, math.IsInf(float64(full[0].NSigma), 1))
	assert.Equal(t, TinyOverflowBin, p.ProcessTiny([]Track{trk})[0])

	trk.Signal = ExpectedSignal(Pion, 0.5, params)
	full = p.ProcessFull([]Track{trk})
	assert.True(t, math.IsNaN(float64(full[0].NSigma)))
}

func TestProcessEmptyBatch(t *testing.T) {
	p := NewSpeciesProcessor(Alpha, DefaultParameters(), nil)
	assert.Empty(t, p.ProcessTiny(nil))
	assert.Empty(t, p.ProcessFull(nil))
}
