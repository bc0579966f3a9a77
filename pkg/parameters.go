package lfpid

import "fmt"

// Labels of the configuration table columns. The first three are toggles,
// the last eight are the Bethe-Bloch constants in ParameterSet order.
const (
	LabelUseDefaultTiny = "Use default tiny"
	LabelUseDefaultFull = "Use default full"
	LabelSetParameters  = "Set parameters"
)

var ParameterLabels = [8]string{
	"bb1", "bb2", "bb3", "bb4", "bb5",
	"MIP value", "Charge exponent", "Resolution",
}

// ColumnLabels is the full column set of the bb_parameters table.
func ColumnLabels() []string {
	labels := []string{LabelUseDefaultTiny, LabelUseDefaultFull, LabelSetParameters}
	return append(labels, ParameterLabels[:]...)
}

// Toggles in the configuration table are floats; a toggle is on at or above
// this value.
const toggleThreshold = 1.5

// ParameterSet holds the Bethe-Bloch-Aleph constants of one species.
// Values are never modified in place: every override returns a new set.
type ParameterSet struct {
	BB1 float32
	BB2 float32
	BB3 float32
	BB4 float32
	BB5 float32
	Mip float32 // MIP value
	Exp float32 // exponent of the charge factor
	Res float32 // relative momentum smearing used by the resolution
}

// DefaultParameters are the compiled-in constants, shared by all species.
func DefaultParameters() ParameterSet {
	return ParameterSet{
		BB1: 0.03209809958934784,
		BB2: 19.9768009185791,
		BB3: 2.5266601063857674e-16,
		BB4: 2.7212300300598145,
		BB5: 6.080920219421387,
		Mip: 50,
		Exp: 2.299999952316284,
		Res: 0.002,
	}
}

// WithValues returns a new set built from v, which must have exactly eight
// entries in ParameterLabels order. On error p is returned unchanged.
func (p ParameterSet) WithValues(v []float32) (ParameterSet, error) {
	if len(v) != len(ParameterLabels) {
		return p, &ErrMalformedVector{Got: len(v)}
	}
	return ParameterSet{
		BB1: v[0],
		BB2: v[1],
		BB3: v[2],
		BB4: v[3],
		BB5: v[4],
		Mip: v[5],
		Exp: v[6],
		Res: v[7],
	}, nil
}

// Values returns the constants in ParameterLabels order.
func (p ParameterSet) Values() []float32 {
	return []float32{p.BB1, p.BB2, p.BB3, p.BB4, p.BB5, p.Mip, p.Exp, p.Res}
}

func (p ParameterSet) String() string {
	return fmt.Sprintf("bb1: %g, bb2: %g, bb3: %g, bb4: %g, bb5: %g, mip: %g, exp: %g, res: %g",
		p.BB1, p.BB2, p.BB3, p.BB4, p.BB5, p.Mip, p.Exp, p.Res)
}
