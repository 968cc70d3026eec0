package core

import (
	"fmt"
	"sync"

	"github.com/sizegate/sizegate/internal/contract"
	"github.com/sizegate/sizegate/schema"
)

// fileSize holds the per-file measurements produced by a worker.
type fileSize struct {
	raw    int64
	gzip   int64
	brotli int64
	err    error
}

// Calculator reads file sets and sums their raw and compressed sizes.
type Calculator struct {
	fs      contract.FileSystem
	gzip    contract.Compressor
	brotli  contract.Compressor
	workers int
}

// NewCalculator creates a Calculator with the given collaborators. workers
// bounds the per-file read/compress concurrency.
func NewCalculator(fs contract.FileSystem, gzip, brotli contract.Compressor, workers int) *Calculator {
	if workers < 1 {
		workers = 1
	}
	return &Calculator{fs: fs, gzip: gzip, brotli: brotli, workers: workers}
}

// Calculate reads every file and returns the summed raw and compressed sizes.
// Per-file reads and compressions run in a worker pool; the reduction only
// happens after every worker has finished, so results are identical
// regardless of concurrency. An empty file set yields a zero result.
func (c *Calculator) Calculate(paths []string, opts contract.CompressionConfig) (schema.SizeResult, error) {
	result := schema.SizeResult{Gzip: opts.Gzip, Brotli: opts.Brotli}
	if len(paths) == 0 {
		return result, nil
	}

	pathCh := make(chan string, len(paths))
	sizeCh := make(chan fileSize, len(paths))
	var wg sync.WaitGroup

	for range c.workers {
		wg.Go(func() {
			for p := range pathCh {
				sizeCh <- c.measure(p, opts)
			}
		})
	}

	for _, p := range paths {
		pathCh <- p
	}
	close(pathCh)

	// The sum must see a complete, consistent set of per-file results.
	wg.Wait()
	close(sizeCh)

	for fs := range sizeCh {
		if fs.err != nil {
			return schema.SizeResult{}, fs.err
		}
		result.RawBytes += fs.raw
		result.GzipBytes += fs.gzip
		result.BrotliBytes += fs.brotli
	}
	return result, nil
}

// measure reads one file and computes its raw and per-codec sizes.
func (c *Calculator) measure(path string, opts contract.CompressionConfig) fileSize {
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return fileSize{err: fmt.Errorf("failed to read %s: %w", path, err)}
	}

	fs := fileSize{raw: int64(len(data))}
	if opts.Gzip {
		fs.gzip, err = c.gzip.CompressedSize(data)
		if err != nil {
			return fileSize{err: fmt.Errorf("%s compression failed: %w", c.gzip.Name(), err)}
		}
	}
	if opts.Brotli {
		fs.brotli, err = c.brotli.CompressedSize(data)
		if err != nil {
			return fileSize{err: fmt.Errorf("%s compression failed: %w", c.brotli.Name(), err)}
		}
	}
	return fs
}
