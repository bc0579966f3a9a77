package lfpid

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// FromConfigTable applies the configuration table tier over prev. The tier is
// skipped (prev, nil) unless the "Set parameters" toggle of the species is on.
func FromConfigTable(prev ParameterSet, s Species, table *LabeledArray) (ParameterSet, error) {
	particle := s.ShortName()
	if !table.Enabled(particle, LabelSetParameters) {
		message := fmt.Sprintf("Using default for %s, %s %g < %g", particle, LabelSetParameters, table.Get(particle, LabelSetParameters), toggleThreshold)
		logger.Info(message, "parameters")
		return prev, nil
	}
	logger.Info(fmt.Sprintf("Setting custom Bethe-Bloch parameters for mass hypothesis %s", particle), "parameters")
	next, err := prev.WithValues(table.ParameterVector(particle))
	if err != nil {
		return prev, fmt.Errorf("config table parameters for %s: %w", particle, err)
	}
	return next, nil
}

// Resolver runs the three tier cascade: compiled-in defaults, then the
// configuration table, then an external object which has the last word.
type Resolver struct {
	Table *LabeledArray
	Store CalibrationStore
	// OpenFile reads the parameter histogram of a local file. Defaults to
	// ReadParameterFile.
	OpenFile func(path string) (*Histogram, error)
}

// FromLocator applies the external object tier over prev. Locators of one
// character or less are placeholders and leave prev untouched.
func (r Resolver) FromLocator(ctx context.Context, prev ParameterSet, locator string) (ParameterSet, error) {
	if len(locator) <= 1 {
		return prev, nil
	}
	logger.Info(fmt.Sprintf("Loading parameters from %s", locator), "parameters")

	var h *Histogram
	var err error
	if strings.HasPrefix(locator, CalibrationScheme) {
		key := strings.TrimPrefix(locator, CalibrationScheme)
		if r.Store == nil {
			return prev, fmt.Errorf("no calibration store available for %s", locator)
		}
		h, err = r.Store.Fetch(ctx, key)
	} else {
		open := r.OpenFile
		if open == nil {
			open = ReadParameterFile
		}
		h, err = open(locator)
	}
	if err != nil {
		return prev, fmt.Errorf("loading parameters from %s: %w", locator, err)
	}
	next, err := ParametersFromHistogram(prev, h)
	if err != nil {
		return prev, fmt.Errorf("loading parameters from %s: %w", locator, err)
	}
	return next, nil
}

// Resolve returns the parameter set of s. Failures of a tier are logged and
// returned joined, but never abort the cascade: the value of the previous
// tier is kept instead.
func (r Resolver) Resolve(ctx context.Context, s Species, locator string) (ParameterSet, error) {
	var errs []error
	params := DefaultParameters()

	next, err := FromConfigTable(params, s, r.Table)
	if err != nil {
		logger.Error(err.Error())
		errs = append(errs, err)
	} else if next != params {
		logParameterChange(s, params, next)
	}
	params = next

	next, err = r.FromLocator(ctx, params, locator)
	if err != nil {
		logger.Error(err.Error())
		errs = append(errs, err)
	} else if next != params {
		logParameterChange(s, params, next)
	}
	params = next

	return params, errors.Join(errs...)
}

// Resolve is the functional form of Resolver.Resolve with the default file
// reader.
func Resolve(ctx context.Context, s Species, table *LabeledArray, locator string, store CalibrationStore) (ParameterSet, error) {
	return Resolver{Table: table, Store: store}.Resolve(ctx, s, locator)
}

func logParameterChange(s Species, before, after ParameterSet) {
	logger.Info(fmt.Sprintf("%s before: set of parameters -> %v", s.ShortName(), before), "parameters")
	logger.Info(fmt.Sprintf("%s after: set of parameters -> %v", s.ShortName(), after), "parameters")
}
