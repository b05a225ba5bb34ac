package pool

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/dano-checksum/dano/internal/request"
)

// Run establishes a bounded worker pool of numWorkers goroutines (0 meaning
// "use runtime.NumCPU()"), fans requests out across them, and streams
// results back on the returned channel as they complete. The channel is
// closed once every request has produced exactly one Result; a single
// consumer (the classifier) is expected to range over it to completion.
//
// A per-request failure never aborts the pool: it logs to stderr and the
// worker moves on to its next request, per the run-continues-with-fewer-
// records policy the rest of the pipeline also follows.
func Run(requests []request.FileInfoRequest, numWorkers int) <-chan Result {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(requests) && len(requests) > 0 {
		numWorkers = len(requests)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	work := make(chan request.FileInfoRequest)
	// Buffered to the full request count so no worker ever blocks handing off
	// a result, mirroring the spec's unbounded-channel, no-backpressure model.
	results := make(chan Result, len(requests))

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for req := range work {
				res := hashOne(req)
				if res.Err != nil {
					fmt.Fprintf(os.Stderr, "error: %s: %v\n", req.Path, res.Err)
				}
				results <- res
			}
		}()
	}

	go func() {
		for _, req := range requests {
			work <- req
		}
		close(work)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// SummaryLine formats a human-readable end-of-run count, the way the
// original tool's run summary read out how many files were processed.
func SummaryLine(total int) string {
	return fmt.Sprintf("processed %s files", humanize.Comma(int64(total)))
}
