package lfpid

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestExpectedSignalReference(t *testing.T) {
	tests := []struct {
		species  Species
		expected float64
	}{
		{Pion, 47.69377},
		{Kaon, 79.63472},
		{Proton, 200.31488},
	}
	for _, tt := range tests {
		t.Run(tt.species.String(), func(t *testing.T) {
			got := ExpectedSignal(tt.species, 0.5, DefaultParameters())
			assert.True(t, scalar.EqualWithinRel(float64(got), tt.expected, 1e-4),
				"expected signal %v, want %v", got, tt.expected)
		})
	}
}

func TestBetheBlochAlephPionBetaGamma(t *testing.T) {
	p := DefaultParameters()
	bg := float32(0.5) * (1 / Pion.Mass())
	curve := BetheBlochAleph(bg, p.BB1, p.BB2, p.BB3, p.BB4, p.BB5)
	// Singly charged: the charge factor is one and the signal is mip*curve.
	assert.True(t, scalar.EqualWithinRel(float64(p.Mip*curve), 47.69377, 1e-4))
}

func TestChargeFactor(t *testing.T) {
	p := DefaultParameters()
	// Same rigidity, same mass/Z: only the charge factor differs.
	bg := float32(1.2)
	curve := BetheBlochAleph(bg, p.BB1, p.BB2, p.BB3, p.BB4, p.BB5)
	innerParam := bg * Helium3.MassOverZ()
	got := ExpectedSignal(Helium3, innerParam, p)
	want := p.Mip * curve * powf(2, p.Exp)
	assert.True(t, scalar.EqualWithinRel(float64(got), float64(want), 1e-5))
}

func TestExpectedResolutionNonNegative(t *testing.T) {
	p := DefaultParameters()
	checked := 0
	for _, s := range AllSpecies() {
		for innerParam := float32(0.05); innerParam <= 10; innerParam += 0.05 {
			// Below the zero crossing of the curve sqrt(dEdx) is undefined.
			if ExpectedSignal(s, innerParam, p) <= 0 {
				continue
			}
			res := ExpectedResolution(s, innerParam, p)
			assert.GreaterOrEqual(t, res, float32(0), fmt.Sprintf("%s at %v", s, innerParam))
			checked++
		}
	}
	assert.Positive(t, checked)
}

func TestExpectedResolutionBelowZeroCrossing(t *testing.T) {
	p := DefaultParameters()
	tests := []struct {
		species    Species
		innerParam float32
	}{
		{Triton, 0.1},
		{Deuteron, 0.05},
		{Muon, 1e-4},
	}
	for _, tt := range tests {
		t.Run(tt.species.String(), func(t *testing.T) {
			require.Negative(t, ExpectedSignal(tt.species, tt.innerParam, p))
			res := ExpectedResolution(tt.species, tt.innerParam, p)
			assert.True(t, math.IsNaN(float64(res)), "resolution %v", res)

			proc := NewSpeciesProcessor(tt.species, p, nil)
			tracks := []Track{{InnerParam: tt.innerParam, Signal: 50}}
			full := proc.ProcessFull(tracks)
			require.Len(t, full, 1)
			assert.True(t, math.IsNaN(float64(full[0].ExpSigma)))
			assert.True(t, math.IsNaN(float64(full[0].NSigma)))
			assert.Equal(t, []int8{TinyOverflowBin}, proc.ProcessTiny(tracks))
		})
	}
}

func TestExpectedResolutionZeroSmearing(t *testing.T) {
	p := DefaultParameters()
	p.Res = 0
	// For singly charged species both betaGamma conventions coincide.
	assert.Equal(t, float32(0), ExpectedResolution(Pion, 0.7, p))
	assert.NotEqual(t, float32(0), ExpectedResolution(Alpha, 0.7, p))
}
