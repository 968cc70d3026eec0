package contract

import (
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
)

// countingWriter counts bytes without buffering them; compressed output is
// only ever measured, never stored.
type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

// GzipCompressor measures gzip-compressed lengths at the default level,
// matching what web servers typically serve.
type GzipCompressor struct{}

var _ Compressor = GzipCompressor{} // Compile-time check

// NewGzipCompressor returns the production gzip Compressor.
func NewGzipCompressor() Compressor {
	return GzipCompressor{}
}

// Name identifies the codec in error messages.
func (GzipCompressor) Name() string { return "gzip" }

// CompressedSize returns the gzip-compressed byte length of data. Errors are
// returned bare; the calculator prefixes them with the codec name.
func (GzipCompressor) CompressedSize(data []byte) (int64, error) {
	counter := &countingWriter{}
	zw, err := gzip.NewWriterLevel(counter, gzip.DefaultCompression)
	if err != nil {
		return 0, err
	}
	if _, err := zw.Write(data); err != nil {
		return 0, err
	}
	if err := zw.Close(); err != nil {
		return 0, err
	}
	return counter.n, nil
}

// BrotliCompressor measures brotli-compressed lengths at the default quality.
type BrotliCompressor struct{}

var _ Compressor = BrotliCompressor{} // Compile-time check

// NewBrotliCompressor returns the production brotli Compressor.
func NewBrotliCompressor() Compressor {
	return BrotliCompressor{}
}

// Name identifies the codec in error messages.
func (BrotliCompressor) Name() string { return "brotli" }

// CompressedSize returns the brotli-compressed byte length of data. Errors are
// returned bare; the calculator prefixes them with the codec name.
func (BrotliCompressor) CompressedSize(data []byte) (int64, error) {
	counter := &countingWriter{}
	bw := brotli.NewWriter(counter)
	if _, err := bw.Write(data); err != nil {
		return 0, err
	}
	if err := bw.Close(); err != nil {
		return 0, err
	}
	return counter.n, nil
}
