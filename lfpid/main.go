package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	sqlx "github.com/jmoiron/sqlx"
	lfpid "github.com/next-exp/lfpid_go/pkg"
)

var dbConn *sqlx.DB
var configuration lfpid.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	exportSpecies := flag.String("export-params", "", "Write the resolved parameters of this species (El, Mu, ...) to -export-file and exit")
	exportFile := flag.String("export-file", "hpar.h5", "Output file for -export-params")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	lfpid.SetConfiguration(configuration)
	lfpid.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	if *exportSpecies != "" {
		if err := exportParameters(*exportSpecies, *exportFile); err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	// Inconsistent table requests abort before touching any input
	if err := lfpid.CheckRequestedTables(configuration); err != nil {
		logger.Error(fmt.Sprintf("fatal configuration error: %v", err))
		os.Exit(1)
	}

	if err := run(context.Background()); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// calibrationStore connects to the calibration database. A failed connection
// is not fatal: locators served by the store fall back to lower tiers.
func calibrationStore() lfpid.CalibrationStore {
	if configuration.NoDB {
		return nil
	}
	var err error
	dbConn, err = lfpid.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
	if err != nil {
		message := fmt.Errorf("Error connection to database: %w", err)
		logger.Error(message.Error())
		return nil
	}
	store := lfpid.NewDBCalibrationStore(dbConn, configuration.CcdbTimestamp)
	if VerbosityLevel > 0 {
		logger.Info(fmt.Sprintf("Calibration objects valid at %d", store.Timestamp()), "main")
	}
	return store
}

func run(ctx context.Context) error {
	start := time.Now()
	store := calibrationStore()
	if dbConn != nil {
		defer dbConn.Close()
	}

	response, warnings, err := lfpid.Initialize(ctx, configuration, lfpid.Resolver{Store: store})
	if err != nil {
		return fmt.Errorf("fatal configuration error: %w", err)
	}
	if warnings != nil && VerbosityLevel > 0 {
		logger.Info("Some parameters fell back to a lower priority source, see the error log", "main")
	}
	if len(response.Streams) == 0 {
		logger.Info("No output table enabled, nothing to do", "main")
		return nil
	}

	source, err := lfpid.NewHDF5TrackSource(configuration.FileIn, configuration.BatchSize, configuration.Skip, configuration.MaxTracks)
	if err != nil {
		return fmt.Errorf("Error opening track file: %w", err)
	}
	defer source.Close()
	if VerbosityLevel > 0 {
		logger.Info(fmt.Sprintf("Number of tracks: %d", source.NTracks), "main")
	}

	runID := uuid.New()
	logger.Info(fmt.Sprintf("Run %s", runID), "main")
	writer, err := lfpid.NewWriter(configuration.FileOut, runID, response.Streams)
	if err != nil {
		return fmt.Errorf("Error creating output file: %w", err)
	}

	nTracks, err := processTracks(source, response, writer)
	if closeErr := writer.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	if err != nil {
		return err
	}

	duration := time.Since(start)
	logger.Info(fmt.Sprintf("Total tracks processed: %d in %d ms", nTracks, duration.Milliseconds()), "main")
	return nil
}

func processTracks(source lfpid.TrackSource, response *lfpid.Response, writer *lfpid.Writer) (int, error) {
	nTracks := 0
	for {
		tracks, err := source.NextBatch()
		if err != nil {
			if err == io.EOF {
				return nTracks, nil
			}
			return nTracks, fmt.Errorf("error reading tracks: %w", err)
		}
		results, err := processBatch(response, tracks, configuration.NumWorkers)
		if err != nil {
			return nTracks, err
		}
		if err := writer.WriteBatch(results, len(tracks)); err != nil {
			return nTracks, err
		}
		nTracks += len(tracks)
	}
}

func exportParameters(species string, filename string) error {
	s, err := lfpid.ParseSpecies(species)
	if err != nil {
		return err
	}
	store := calibrationStore()
	if dbConn != nil {
		defer dbConn.Close()
	}
	resolver := lfpid.Resolver{Table: configuration.BBParameters, Store: store}
	params, err := resolver.Resolve(context.Background(), s, configuration.Locator(s))
	if err != nil {
		return fmt.Errorf("not exporting %s parameters, resolution fell back: %w", s, err)
	}
	logger.Info(fmt.Sprintf("Writing %s parameters to %s: %v", s, filename, params), "main")
	return lfpid.WriteParameterFile(filename, params)
}
