package lfpid

import (
	"fmt"
	"math"
)

// Histogram is a one dimensional histogram with alphanumeric bin labels, the
// shape in which parameter sets are stored in files and in the calibration
// database.
type Histogram struct {
	Name     string
	Labels   []string
	Contents []float64
}

// NewParameterHistogram stores a parameter set as a labeled histogram.
func NewParameterHistogram(name string, p ParameterSet) *Histogram {
	h := &Histogram{Name: name}
	for i, v := range p.Values() {
		h.Labels = append(h.Labels, ParameterLabels[i])
		h.Contents = append(h.Contents, float64(v))
	}
	return h
}

func (h *Histogram) NBins() int {
	return len(h.Labels)
}

// FindBin returns the index of the bin with the given label.
func (h *Histogram) FindBin(label string) (int, bool) {
	for i, l := range h.Labels {
		if l == label {
			return i, true
		}
	}
	return -1, false
}

func (h *Histogram) BinContent(bin int) float64 {
	if bin < 0 || bin >= len(h.Contents) {
		return 0
	}
	return h.Contents[bin]
}

// ParametersFromHistogram reads the eight Bethe-Bloch bins of h over prev.
// Every label in ParameterLabels must be present with a finite content; on
// error prev is returned.
func ParametersFromHistogram(prev ParameterSet, h *Histogram) (ParameterSet, error) {
	if h == nil {
		return prev, fmt.Errorf("nil parameter histogram")
	}
	values := make([]float32, 0, len(ParameterLabels))
	var missing, invalid []string
	for _, label := range ParameterLabels {
		bin, ok := h.FindBin(label)
		if !ok {
			missing = append(missing, label)
			continue
		}
		v := float32(h.BinContent(bin))
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			invalid = append(invalid, label)
		}
		values = append(values, v)
	}
	if len(missing) > 0 {
		return prev, &ErrMissingBins{Histogram: h.Name, Missing: missing}
	}
	if len(invalid) > 0 {
		return prev, &ErrInvalidBins{Histogram: h.Name, Labels: invalid}
	}
	logger.Info(fmt.Sprintf("Setting custom Bethe-Bloch parameters from histogram %s", h.Name), "parameters")
	return prev.WithValues(values)
}
