package driver

import (
	"context"
	"runtime"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// formatAll fans files out across workers. Every file is an independent
// pipeline run with no shared mutable state, so the only coordination
// is collecting results. Cancellation is honored between files, never
// mid-file: a worker checks the context before starting a file and then
// runs that file to completion.
func formatAll(ctx context.Context, fsys afero.Fs, files []string, opts FormatOptions) []FormatResult {
	results := make([]FormatResult, len(files))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = FormatResult{Path: path, Err: err}
				return nil
			}
			results[i] = formatSingleFile(fsys, path, opts)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
