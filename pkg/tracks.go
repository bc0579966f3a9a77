package lfpid

import "io"

// Track is the input record of the PID producer. The stored values are the
// ones computed upstream by the central PID task and are only read when a
// species is configured to pass them through.
type Track struct {
	InnerParam float32
	Signal     float32
	TinyNSigma [NSpecies]int8
	ExpSigma   [NSpecies]float32
	NSigma     [NSpecies]float32
}

// TrackSource yields tracks in batches. It returns io.EOF once exhausted.
type TrackSource interface {
	NextBatch() ([]Track, error)
}

// SliceTrackSource serves tracks from memory in batches of Size.
type SliceTrackSource struct {
	Tracks []Track
	Size   int
	pos    int
}

func (s *SliceTrackSource) NextBatch() ([]Track, error) {
	if s.pos >= len(s.Tracks) {
		return nil, io.EOF
	}
	size := s.Size
	if size <= 0 {
		size = len(s.Tracks)
	}
	end := s.pos + size
	if end > len(s.Tracks) {
		end = len(s.Tracks)
	}
	batch := s.Tracks[s.pos:end]
	s.pos = end
	return batch, nil
}
