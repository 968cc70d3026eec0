package contract

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressors(t *testing.T) {
	// Highly repetitive payload compresses well under both codecs
	payload := bytes.Repeat([]byte("export const answer = 42;\n"), 200)

	compressors := []Compressor{NewGzipCompressor(), NewBrotliCompressor()}
	for _, c := range compressors {
		t.Run(c.Name(), func(t *testing.T) {
			size, err := c.CompressedSize(payload)
			require.NoError(t, err)
			assert.Greater(t, size, int64(0))
			assert.Less(t, size, int64(len(payload)))

			// Same input, same measurement
			again, err := c.CompressedSize(payload)
			require.NoError(t, err)
			assert.Equal(t, size, again)
		})
	}
}

func TestCompressors_EmptyInput(t *testing.T) {
	for _, c := range []Compressor{NewGzipCompressor(), NewBrotliCompressor()} {
		size, err := c.CompressedSize(nil)
		require.NoError(t, err, c.Name())
		// Codec framing still costs a few bytes
		assert.GreaterOrEqual(t, size, int64(0), c.Name())
	}
}
