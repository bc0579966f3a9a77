package main

import (
	"path/filepath"
	"testing"

	lfpid "github.com/next-exp/lfpid_go/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfiguration(t *testing.T, config lfpid.Configuration) {
	t.Helper()
	previous := configuration
	configuration = config
	t.Cleanup(func() { configuration = previous })
}

func TestExportParameters(t *testing.T) {
	table := lfpid.NewLabeledArray()
	table.Set("Pr", lfpid.LabelSetParameters, 2)
	table.Set("Pr", "MIP value", 42)
	withConfiguration(t, lfpid.Configuration{NoDB: true, BBParameters: table})

	path := filepath.Join(t.TempDir(), "hpar.h5")
	require.NoError(t, exportParameters("Pr", path))

	h, err := lfpid.ReadParameterFile(path)
	require.NoError(t, err)
	params, err := lfpid.ParametersFromHistogram(lfpid.ParameterSet{}, h)
	require.NoError(t, err)
	assert.Equal(t, float32(42), params.Mip)
}

func TestExportParametersRefusesFallback(t *testing.T) {
	// No store is available, so the ccdb locator falls back to the defaults.
	withConfiguration(t, lfpid.Configuration{
		NoDB:         true,
		BBParameters: lfpid.NewLabeledArray(),
		FileParamBB:  map[string]string{"Pi": "ccdb://Analysis/PID/TPC/Pi"},
	})

	path := filepath.Join(t.TempDir(), "hpar.h5")
	assert.Error(t, exportParameters("Pi", path))
	assert.NoFileExists(t, path)

	assert.Error(t, exportParameters("Xi", path))
}
