package main

import (
	"context"
	"testing"

	lfpid "github.com/next-exp/lfpid_go/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResponse(t *testing.T) *lfpid.Response {
	t.Helper()
	cfg := lfpid.Configuration{
		Process:     map[string]bool{"Pi": true, "Ka": true, "Pr": true},
		ProcessFull: map[string]bool{"Pi": true, "De": true},
	}
	response, warnings, err := lfpid.Initialize(context.Background(), cfg, lfpid.Resolver{})
	require.NoError(t, err)
	require.NoError(t, warnings)
	return response
}

func sampleTracks(n int) []lfpid.Track {
	out := make([]lfpid.Track, n)
	for i := range out {
		out[i] = lfpid.Track{InnerParam: 0.2 + 0.1*float32(i), Signal: 40 + float32(i)}
	}
	return out
}

func TestProcessBatchOrder(t *testing.T) {
	response := newResponse(t)
	batch := sampleTracks(50)

	serial, err := processBatch(response, batch, 1)
	require.NoError(t, err)
	parallel, err := processBatch(response, batch, 8)
	require.NoError(t, err)

	require.Len(t, parallel, len(response.Streams))
	for i, stream := range response.Streams {
		assert.Equal(t, stream, parallel[i].Stream)
		if stream.Full {
			assert.Len(t, parallel[i].Full, len(batch))
		} else {
			assert.Len(t, parallel[i].Tiny, len(batch))
		}
	}
	assert.Equal(t, serial, parallel)
}

func TestProcessTracks(t *testing.T) {
	response := newResponse(t)
	source := &lfpid.SliceTrackSource{Tracks: sampleTracks(25), Size: 10}

	var sizes []int
	for {
		batch, err := source.NextBatch()
		if err != nil {
			break
		}
		sizes = append(sizes, len(batch))
		results, err := processBatch(response, batch, 3)
		require.NoError(t, err)
		require.Len(t, results, len(response.Streams))
	}
	assert.Equal(t, []int{10, 10, 5}, sizes)
}
