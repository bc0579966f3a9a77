package lfpid

import (
	"encoding/json"
	"fmt"
)

// LabeledArray is the species x parameter configuration table. Its JSON form
// mirrors the one used by the analysis framework:
//
//	{"labels_rows": ["El", ...], "labels_cols": ["Use default tiny", ...], "values": [[...], ...]}
//
// Rows may be shorter than the column list; missing cells read as zero.
type LabeledArray struct {
	Rows   []string    `json:"labels_rows"`
	Cols   []string    `json:"labels_cols"`
	Values [][]float32 `json:"values"`

	rowIndex map[string]int
	colIndex map[string]int
}

// NewLabeledArray returns a zero-filled table with all species rows and all
// parameter columns.
func NewLabeledArray() *LabeledArray {
	a := &LabeledArray{Cols: ColumnLabels()}
	for _, s := range AllSpecies() {
		a.Rows = append(a.Rows, s.ShortName())
		a.Values = append(a.Values, make([]float32, len(a.Cols)))
	}
	a.index()
	return a
}

func (a *LabeledArray) UnmarshalJSON(data []byte) error {
	type plain LabeledArray
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if len(p.Values) > len(p.Rows) {
		return fmt.Errorf("labeled array has %d value rows but %d row labels", len(p.Values), len(p.Rows))
	}
	*a = LabeledArray(p)
	a.index()
	return nil
}

func (a *LabeledArray) index() {
	a.rowIndex = make(map[string]int, len(a.Rows))
	for i, r := range a.Rows {
		a.rowIndex[r] = i
	}
	a.colIndex = make(map[string]int, len(a.Cols))
	for i, c := range a.Cols {
		a.colIndex[c] = i
	}
}

func (a *LabeledArray) lookup(row, col string) (float32, bool) {
	if a == nil {
		return 0, false
	}
	if a.rowIndex == nil {
		a.index()
	}
	i, ok := a.rowIndex[row]
	if !ok || i >= len(a.Values) {
		return 0, false
	}
	j, ok := a.colIndex[col]
	if !ok || j >= len(a.Values[i]) {
		return 0, false
	}
	return a.Values[i][j], true
}

// Get returns the cell at (row, col), zero when absent.
func (a *LabeledArray) Get(row, col string) float32 {
	v, _ := a.lookup(row, col)
	return v
}

// Set writes a cell, growing the table as needed.
func (a *LabeledArray) Set(row, col string, value float32) {
	if a.rowIndex == nil {
		a.index()
	}
	i, ok := a.rowIndex[row]
	if !ok {
		a.Rows = append(a.Rows, row)
		i = len(a.Rows) - 1
		a.rowIndex[row] = i
	}
	for len(a.Values) <= i {
		a.Values = append(a.Values, nil)
	}
	j, ok := a.colIndex[col]
	if !ok {
		a.Cols = append(a.Cols, col)
		j = len(a.Cols) - 1
		a.colIndex[col] = j
	}
	for len(a.Values[i]) <= j {
		a.Values[i] = append(a.Values[i], 0)
	}
	a.Values[i][j] = value
}

// Enabled reports whether a toggle column is on for the row.
func (a *LabeledArray) Enabled(row, col string) bool {
	return a.Get(row, col) >= toggleThreshold
}

// ParameterVector collects the eight Bethe-Bloch columns of a row. Cells that
// are not present are skipped, so a malformed row yields a short vector.
func (a *LabeledArray) ParameterVector(row string) []float32 {
	v := make([]float32, 0, len(ParameterLabels))
	for _, label := range ParameterLabels {
		if value, ok := a.lookup(row, label); ok {
			v = append(v, value)
		}
	}
	return v
}
