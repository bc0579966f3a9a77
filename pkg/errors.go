package lfpid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error { return e.Err }

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

func (e *ErrCreateGroup) Unwrap() error { return e.Err }

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

func (e *ErrCreateTable) Unwrap() error { return e.Err }

// ErrMalformedVector is returned when a parameter vector does not hold
// exactly eight values.
type ErrMalformedVector struct {
	Got int
}

func (e *ErrMalformedVector) Error() string {
	return fmt.Sprintf("the vector of Bethe-Bloch parameters has the wrong size %d, expected %d", e.Got, len(ParameterLabels))
}

// ErrMissingBins is returned when a parameter histogram lacks named bins.
type ErrMissingBins struct {
	Histogram string
	Missing   []string
}

func (e *ErrMissingBins) Error() string {
	return fmt.Sprintf("histogram %q is missing bins: %s", e.Histogram, strings.Join(e.Missing, ", "))
}

// ErrInvalidBins is returned when named bins of a parameter histogram hold
// NaN or infinite values.
type ErrInvalidBins struct {
	Histogram string
	Labels    []string
}

func (e *ErrInvalidBins) Error() string {
	return fmt.Sprintf("histogram %q has non finite bins: %s", e.Histogram, strings.Join(e.Labels, ", "))
}

// ErrMissingObject is returned when a file does not contain the expected object.
type ErrMissingObject struct {
	Filename string
	Object   string
	Err      error
}

func (e *ErrMissingObject) Error() string {
	return fmt.Sprintf("the input file %q does not contain the object %q: %v", e.Filename, e.Object, e.Err)
}

func (e *ErrMissingObject) Unwrap() error { return e.Err }

// ErrTableNotEnabled is the fatal configuration error raised when an output
// table is requested for a species whose processing is disabled.
type ErrTableNotEnabled struct {
	Table   string
	Species Species
}

func (e *ErrTableNotEnabled) Error() string {
	return fmt.Sprintf("requested %s table %q but not enabled in configuration", e.Species, e.Table)
}

// ErrNotFound is returned by a CalibrationStore when no object matches a key.
var ErrNotFound = errors.New("calibration object not found")
