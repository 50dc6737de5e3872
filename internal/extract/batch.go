package extract

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// File is one artifact queued for batch extraction.
type File struct {
	Name string
	Data []byte
}

const defaultWorkers = 4

// Batch extracts files with a fixed-size worker pool. Results are indexed
// by input position, not completion order, so downstream context assembly
// stays deterministic. A failed file yields an OK=false Result for its slot
// and never aborts the batch.
func (r *Registry) Batch(ctx context.Context, files []File, workers int) []Result {
	if workers <= 0 {
		workers = defaultWorkers
	}

	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			results[i] = r.Extract(gctx, f.Name, f.Data)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in results

	return results
}
