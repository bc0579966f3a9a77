package lfpid

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// Writer stores the PID tables of a run in an HDF5 file. Only the streams
// passed to NewWriter get a table.
type Writer struct {
	File         *hdf5.File
	Filename     string
	RunID        uuid.UUID
	RunGroup     *hdf5.Group
	PIDGroup     *hdf5.Group
	RunInfoTable *hdf5.Dataset
	Tables       map[Stream]*hdf5.Dataset
	Rows         map[Stream]int
	TrackCounter int
	// Set once every table exists; a half built file gets no run info.
	ready bool
}

const PIDGroupName = "PID"

func NewWriter(filename string, runID uuid.UUID, streams []Stream) (*Writer, error) {
	logger.Info(fmt.Sprintf("Creating file: %s", filename), "hdf5writer")
	file, err := openFile(filename)
	if err != nil {
		return nil, err
	}
	writer := &Writer{
		File:     file,
		Filename: filename,
		RunID:    runID,
		Tables:   make(map[Stream]*hdf5.Dataset, len(streams)),
		Rows:     make(map[Stream]int, len(streams)),
	}
	if err := writer.init(streams); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	writer.ready = true
	return writer, nil
}

func (w *Writer) init(streams []Stream) error {
	var err error
	if w.RunGroup, err = createGroup(w.File, "Run"); err != nil {
		return err
	}
	if w.PIDGroup, err = createGroup(w.File, PIDGroupName); err != nil {
		return err
	}
	if w.RunInfoTable, err = createTable(w.RunGroup, "runInfo", RunInfoHDF5{}); err != nil {
		return err
	}
	for _, stream := range streams {
		var datatype interface{} = int8(0)
		if stream.Full {
			datatype = FullPID{}
		}
		table, err := createTable(w.PIDGroup, stream.TableName(), datatype)
		if err != nil {
			return err
		}
		w.Tables[stream] = table
	}
	return nil
}

// WriteBatch appends the rows of every stream of one batch of nTracks tracks.
func (w *Writer) WriteBatch(results []StreamResult, nTracks int) error {
	for _, result := range results {
		table, ok := w.Tables[result.Stream]
		if !ok {
			return fmt.Errorf("no table for stream %s", result.Stream.TableName())
		}
		var err error
		var n int
		if result.Stream.Full {
			n = len(result.Full)
			err = writeArrayToTable(table, &result.Full, w.Rows[result.Stream])
		} else {
			n = len(result.Tiny)
			err = writeArrayToTable(table, &result.Tiny, w.Rows[result.Stream])
		}
		if err != nil {
			return fmt.Errorf("error writing table %s: %w", result.Stream.TableName(), err)
		}
		if n != nTracks {
			logger.Error(fmt.Sprintf("table %s got %d rows for %d tracks", result.Stream.TableName(), n, nTracks))
		}
		w.Rows[result.Stream] += n
	}
	w.TrackCounter += nTracks
	return nil
}

func (w *Writer) writeRunInfo() error {
	var runID [36]byte
	copy(runID[:], w.RunID.String())
	info := RunInfoHDF5{
		runID:     runID,
		createdAt: time.Now().UnixMilli(),
		nTracks:   int64(w.TrackCounter),
	}
	return writeEntryToTable(w.RunInfoTable, info, 0)
}

func (w *Writer) Close() error {
	logger.Info(fmt.Sprintf("Closing file %s", w.Filename), "hdf5writer")
	var errs []error

	if w.RunInfoTable != nil {
		if w.ready {
			if err := w.writeRunInfo(); err != nil {
				errs = append(errs, fmt.Errorf("error writing run info: %w", err))
			}
		}
		if err := w.RunInfoTable.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing run info table: %w", err))
		}
	}
	for stream, table := range w.Tables {
		if err := table.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing table %s: %w", stream.TableName(), err))
		}
	}
	if w.PIDGroup != nil {
		if err := w.PIDGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing PID group: %w", err))
		}
	}
	if w.RunGroup != nil {
		if err := w.RunGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing run group: %w", err))
		}
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
