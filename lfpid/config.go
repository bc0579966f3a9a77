package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	lfpid "github.com/next-exp/lfpid_go/pkg"
)

func LoadConfiguration(filename string) (lfpid.Configuration, error) {
	var config lfpid.Configuration

	// Set default values
	config.Verbosity = 0
	config.BatchSize = 10000
	config.NumWorkers = 1
	config.CompressionLevel = 4
	config.NoDB = false
	config.Host = "localhost"
	config.User = "pidreader"
	config.Passwd = "readonly"
	config.DBName = "TPCPID"
	config.CcdbTimestamp = -1
	config.BBParameters = lfpid.NewLabeledArray()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	if config.BBParameters == nil {
		config.BBParameters = lfpid.NewLabeledArray()
	}
	if err := validateSpeciesKeys(config); err != nil {
		return config, err
	}
	return config, nil
}

// Species keys of the configuration maps are the short names (El, Mu, ...).
func validateSpeciesKeys(config lfpid.Configuration) error {
	keys := slices.Concat(slices.Collect(maps.Keys(config.Process)),
		slices.Collect(maps.Keys(config.ProcessFull)),
		slices.Collect(maps.Keys(config.FileParamBB)))
	for _, key := range keys {
		s, err := lfpid.ParseSpecies(key)
		if err != nil {
			return err
		}
		if s.ShortName() != key {
			return fmt.Errorf("use the short name %q instead of %q", s.ShortName(), key)
		}
	}
	return nil
}

func enabledSpecies(m map[string]bool) string {
	enabled := make([]string, 0, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		if m[key] {
			enabled = append(enabled, key)
		}
	}
	return strings.Join(enabled, ", ")
}

func printConfiguration(config lfpid.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("CCDB timestamp: %d", config.CcdbTimestamp), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max tracks: %d", config.MaxTracks), "config")
	logger.Info(fmt.Sprintf("Batch size: %d", config.BatchSize), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Process tiny: %s", enabledSpecies(config.Process)), "config")
	logger.Info(fmt.Sprintf("Process full: %s", enabledSpecies(config.ProcessFull)), "config")
	for _, key := range slices.Sorted(maps.Keys(config.FileParamBB)) {
		logger.Info(fmt.Sprintf("Parameters for %s from: %s", key, config.FileParamBB[key]), "config")
	}
	logger.Info(fmt.Sprintf("Requested tables: %s", strings.Join(config.RequestedTables, ", ")), "config")
}
