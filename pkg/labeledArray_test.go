package lfpid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bbParametersJSON = `{
	"labels_rows": ["El", "Pi", "He"],
	"labels_cols": ["Use default tiny", "Use default full", "Set parameters", "bb1", "bb2", "bb3", "bb4", "bb5", "MIP value", "Charge exponent", "Resolution"],
	"values": [
		[2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0],
		[0, 0, 2, 0.1, 20, 1e-10, 2, 5, 45, 2, 0.01],
		[0, 2, 2, 0.1, 20]
	]
}`

func TestLabeledArrayJSON(t *testing.T) {
	var table LabeledArray
	require.NoError(t, json.Unmarshal([]byte(bbParametersJSON), &table))

	assert.True(t, table.Enabled("El", LabelUseDefaultTiny))
	assert.False(t, table.Enabled("El", LabelSetParameters))
	assert.Equal(t, float32(45), table.Get("Pi", "MIP value"))
	assert.Equal(t, tableParameters.Values(), table.ParameterVector("Pi"))
	assert.Len(t, table.ParameterVector("He"), 2)
	// Missing rows and cells read as zero.
	assert.Zero(t, table.Get("Ka", "bb1"))
	assert.Zero(t, table.Get("He", "Resolution"))
	assert.Empty(t, table.ParameterVector("Ka"))
}

func TestLabeledArrayTooManyRows(t *testing.T) {
	var table LabeledArray
	err := json.Unmarshal([]byte(`{"labels_rows": ["El"], "labels_cols": ["bb1"], "values": [[1], [2]]}`), &table)
	assert.Error(t, err)
}

func TestNewLabeledArray(t *testing.T) {
	table := NewLabeledArray()
	assert.Len(t, table.Rows, NSpecies)
	assert.Equal(t, ColumnLabels(), table.Cols)
	for _, s := range AllSpecies() {
		assert.Len(t, table.ParameterVector(s.ShortName()), len(ParameterLabels))
	}
	table.Set("Xx", "bb1", 3)
	assert.Equal(t, float32(3), table.Get("Xx", "bb1"))
}
