package lfpid

import "context"

// CalibrationStore fetches parameter histograms by key. Keys are the part of
// a locator after CalibrationScheme.
type CalibrationStore interface {
	Fetch(ctx context.Context, key string) (*Histogram, error)
}

// CalibrationScheme marks a locator served by the CalibrationStore instead of
// a local file.
const CalibrationScheme = "ccdb://"
