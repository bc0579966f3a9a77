package main

import (
	"fmt"

	lfpid "github.com/next-exp/lfpid_go/pkg"
)

type WorkerData struct {
	Index  int
	Stream lfpid.Stream
	Tracks []lfpid.Track
}

type WorkerResult struct {
	Index  int
	Result lfpid.StreamResult
	Err    error
}

func worker(id int, response *lfpid.Response, jobs <-chan WorkerData, results chan<- WorkerResult) {
	for job := range jobs {
		results <- processJob(id, response, job)
	}
}

func processJob(id int, response *lfpid.Response, job WorkerData) (result WorkerResult) {
	result.Index = job.Index
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("worker %d recovered from panic on table %s: %v", id, job.Stream.TableName(), r)
		}
	}()
	if VerbosityLevel > 2 {
		logger.Info(fmt.Sprintf("Worker %d processing table %s", id, job.Stream.TableName()), "worker")
	}
	result.Result = response.ProcessStream(job.Stream, job.Tracks)
	return result
}

// processBatch evaluates every stream of a batch with numWorkers goroutines
// and returns the results in stream order.
func processBatch(response *lfpid.Response, tracks []lfpid.Track, numWorkers int) ([]lfpid.StreamResult, error) {
	nStreams := len(response.Streams)
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numWorkers > nStreams {
		numWorkers = nStreams
	}

	jobs := make(chan WorkerData, nStreams)
	results := make(chan WorkerResult, nStreams)
	for w := 1; w <= numWorkers; w++ {
		go worker(w, response, jobs, results)
	}
	for i, stream := range response.Streams {
		jobs <- WorkerData{Index: i, Stream: stream, Tracks: tracks}
	}
	close(jobs)

	ordered := make([]lfpid.StreamResult, nStreams)
	var firstErr error
	for i := 0; i < nStreams; i++ {
		r := <-results
		if r.Err != nil && firstErr == nil {
			firstErr = r.Err
		}
		ordered[r.Index] = r.Result
	}
	return ordered, firstErr
}
