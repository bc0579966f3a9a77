package lfpid

import (
	"context"
	"errors"
	"fmt"
)

// Stream identifies one output table: a species in compact or full mode.
type Stream struct {
	Species Species
	Full    bool
}

func (s Stream) TableName() string {
	if s.Full {
		return s.Species.FullTableName()
	}
	return s.Species.TinyTableName()
}

// Response holds the resolved processors of a run. Processors of disabled
// species are nil.
type Response struct {
	Processors [NSpecies]*SpeciesProcessor
	Streams    []Stream
}

// CheckRequestedTables verifies that every requested table belongs to a
// species with at least one processing mode enabled.
func CheckRequestedTables(cfg Configuration) error {
	for _, table := range cfg.RequestedTables {
		s, ok := SpeciesForTable(table)
		if !ok {
			logger.Error(fmt.Sprintf("requested unknown table %q", table))
			continue
		}
		if !cfg.TinyEnabled(s) && !cfg.FullEnabled(s) {
			return &ErrTableNotEnabled{Table: table, Species: s}
		}
		disabledTiny := table == s.TinyTableName() && !cfg.TinyEnabled(s)
		disabledFull := table == s.FullTableName() && !cfg.FullEnabled(s)
		if disabledTiny || disabledFull {
			logger.Error(fmt.Sprintf("requested table %q whose mode is disabled, it will not be produced", table))
		}
	}
	return nil
}

// Initialize resolves the parameters of every enabled species. The only
// error it returns is the fatal *ErrTableNotEnabled, raised before any
// parameter is loaded; fallbacks during resolution are logged and reported
// through warnings.
func Initialize(ctx context.Context, cfg Configuration, resolver Resolver) (resp *Response, warnings error, err error) {
	if err := CheckRequestedTables(cfg); err != nil {
		return nil, nil, err
	}
	if resolver.Table == nil {
		resolver.Table = cfg.BBParameters
	}

	resp = &Response{}
	var errs []error
	for _, s := range AllSpecies() {
		tiny, full := cfg.TinyEnabled(s), cfg.FullEnabled(s)
		if !tiny && !full {
			logger.Info(fmt.Sprintf("Skipping %s", s), "init")
			continue
		}
		logger.Info(fmt.Sprintf("Enabling %s", s), "init")
		params, err := resolver.Resolve(ctx, s, cfg.Locator(s))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s, err))
		}
		if cfg.Verbosity > 0 {
			logger.Info(fmt.Sprintf("%s parameters: %v", s, params), "init")
		}
		resp.Processors[s] = NewSpeciesProcessor(s, params, resolver.Table)
		if tiny {
			resp.Streams = append(resp.Streams, Stream{Species: s})
		}
		if full {
			resp.Streams = append(resp.Streams, Stream{Species: s, Full: true})
		}
	}
	return resp, errors.Join(errs...), nil
}

// StreamResult holds the rows produced for one stream from one batch.
type StreamResult struct {
	Stream Stream
	Tiny   []int8
	Full   []FullPID
}

// ProcessStream runs the processor of stream over a batch.
func (r *Response) ProcessStream(stream Stream, tracks []Track) StreamResult {
	p := r.Processors[stream.Species]
	result := StreamResult{Stream: stream}
	if stream.Full {
		result.Full = p.ProcessFull(tracks)
	} else {
		result.Tiny = p.ProcessTiny(tracks)
	}
	return result
}
