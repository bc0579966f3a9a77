package lfpid

import "fmt"

// FullPID is one row of a full precision table.
type FullPID struct {
	ExpSigma float32 `hdf5:"tpcExpSigma"`
	NSigma   float32 `hdf5:"tpcNSigma"`
}

type responseFunc func(s Species, innerParam float32, p ParameterSet) float32

// SpeciesProcessor fills the output tables of one mass hypothesis.
type SpeciesProcessor struct {
	Species Species
	Params  ParameterSet
	// When set, the values stored in the tracks are copied verbatim instead
	// of being recomputed.
	UseDefaultTiny bool
	UseDefaultFull bool

	expectedSignal     responseFunc
	expectedResolution responseFunc
}

// NewSpeciesProcessor reads the pass-through toggles of s from table.
func NewSpeciesProcessor(s Species, params ParameterSet, table *LabeledArray) *SpeciesProcessor {
	return &SpeciesProcessor{
		Species:            s,
		Params:             params,
		UseDefaultTiny:     table.Enabled(s.ShortName(), LabelUseDefaultTiny),
		UseDefaultFull:     table.Enabled(s.ShortName(), LabelUseDefaultFull),
		expectedSignal:     ExpectedSignal,
		expectedResolution: ExpectedResolution,
	}
}

// Response returns the expected resolution and the nSigma of a track.
func (p *SpeciesProcessor) Response(t Track) (expSigma float32, nSigma float32) {
	expSigma = p.expectedResolution(p.Species, t.InnerParam, p.Params)
	nSigma = (t.Signal - p.expectedSignal(p.Species, t.InnerParam, p.Params)) / expSigma
	return expSigma, nSigma
}

// ProcessTiny returns one compact nSigma per track, in input order.
func (p *SpeciesProcessor) ProcessTiny(tracks []Track) []int8 {
	if configuration.Verbosity > 1 {
		logger.Info(fmt.Sprintf("Filling table for particle: %s", p.Species.ShortName()), "processor")
	}
	table := make([]int8, 0, len(tracks))
	if p.UseDefaultTiny {
		for _, trk := range tracks {
			table = append(table, trk.TinyNSigma[p.Species])
		}
		return table
	}
	for _, trk := range tracks {
		_, nSigma := p.Response(trk)
		table = append(table, PackTiny(nSigma))
	}
	return table
}

// ProcessFull returns one (expected sigma, nSigma) pair per track, in input
// order. Non finite values are kept as they are.
func (p *SpeciesProcessor) ProcessFull(tracks []Track) []FullPID {
	if configuration.Verbosity > 1 {
		logger.Info(fmt.Sprintf("Filling full table for particle: %s", p.Species.ShortName()), "processor")
	}
	table := make([]FullPID, 0, len(tracks))
	if p.UseDefaultFull {
		for _, trk := range tracks {
			table = append(table, FullPID{
				ExpSigma: trk.ExpSigma[p.Species],
				NSigma:   trk.NSigma[p.Species],
			})
		}
		return table
	}
	for _, trk := range tracks {
		expSigma, nSigma := p.Response(trk)
		table = append(table, FullPID{ExpSigma: expSigma, NSigma: nSigma})
	}
	return table
}
