package lfpid

import "fmt"

// Species is a mass hypothesis for the TPC response.
type Species int

const (
	Electron Species = iota
	Muon
	Pion
	Kaon
	Proton
	Deuteron
	Triton
	Helium3
	Alpha
)

const NSpecies = 9

type speciesInfo struct {
	short  string
	long   string
	mass   float32
	charge float32
}

// Masses in GeV/c^2
var speciesTable = [NSpecies]speciesInfo{
	Electron: {"El", "Electron", 0.00051099895, 1},
	Muon:     {"Mu", "Muon", 0.1056583755, 1},
	Pion:     {"Pi", "Pion", 0.13957039, 1},
	Kaon:     {"Ka", "Kaon", 0.493677, 1},
	Proton:   {"Pr", "Proton", 0.93827208816, 1},
	Deuteron: {"De", "Deuteron", 1.87561294257, 1},
	Triton:   {"Tr", "Triton", 2.80892113298, 1},
	Helium3:  {"He", "Helium3", 2.80839160743, 2},
	Alpha:    {"Al", "Alpha", 3.7273794066, 2},
}

// AllSpecies lists the hypotheses in table order.
func AllSpecies() []Species {
	all := make([]Species, NSpecies)
	for i := range all {
		all[i] = Species(i)
	}
	return all
}

func (s Species) Valid() bool {
	return s >= Electron && s <= Alpha
}

// ShortName is the two-letter label used in configuration and table names.
func (s Species) ShortName() string {
	if !s.Valid() {
		return "Unknown"
	}
	return speciesTable[s].short
}

func (s Species) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return speciesTable[s].long
}

// Mass is zero for an invalid species.
func (s Species) Mass() float32 {
	if !s.Valid() {
		return 0
	}
	return speciesTable[s].mass
}

// Charge is zero for an invalid species.
func (s Species) Charge() float32 {
	if !s.Valid() {
		return 0
	}
	return speciesTable[s].charge
}

// MassOverZ is the rest mass divided by the charge number. The energy loss
// curve is evaluated at innerParam/MassOverZ because the TPC inner parameter
// is a rigidity. It is zero for an invalid species.
func (s Species) MassOverZ() float32 {
	if !s.Valid() {
		return 0
	}
	return speciesTable[s].mass / speciesTable[s].charge
}

// TinyTableName is the name of the compact output table of the species.
func (s Species) TinyTableName() string {
	return "pidTPCLf" + s.ShortName()
}

// FullTableName is the name of the full precision output table of the species.
func (s Species) FullTableName() string {
	return "pidTPCLfFull" + s.ShortName()
}

// ParseSpecies accepts either the short or the long name.
func ParseSpecies(name string) (Species, error) {
	for i, info := range speciesTable {
		if name == info.short || name == info.long {
			return Species(i), nil
		}
	}
	return -1, fmt.Errorf("unknown species %q", name)
}

// SpeciesForTable returns the species owning an output table name.
func SpeciesForTable(table string) (Species, bool) {
	for _, s := range AllSpecies() {
		if table == s.TinyTableName() || table == s.FullTableName() {
			return s, true
		}
	}
	return -1, false
}
