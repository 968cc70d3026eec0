package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sizegate/sizegate/internal/contract"
	"github.com/sizegate/sizegate/schema"
)

func TestEvaluate_MaxSizeOnRawBytes(t *testing.T) {
	// 25600 raw bytes against a 20 KB cap: 5.00 KB over
	size := schema.SizeResult{RawBytes: 25600}
	cr := Evaluate(size, "button", schema.BaselineMap{}, Limits{MaxSize: "20 KB"})

	assert.True(t, cr.ExceedsMaxSize)
	require.NotNil(t, cr.MaxSizeBytes)
	assert.Equal(t, int64(20480), *cr.MaxSizeBytes)
	assert.Equal(t, int64(5120), cr.OverflowBytes)
	assert.Equal(t, "5.00 KB", contract.FormatKB(cr.OverflowBytes))
}

func TestEvaluate_NoOverflowWithinLimit(t *testing.T) {
	cr := Evaluate(schema.SizeResult{RawBytes: 10240}, "button", schema.BaselineMap{}, Limits{MaxSize: "20 KB"})
	assert.False(t, cr.ExceedsMaxSize)
	assert.Zero(t, cr.OverflowBytes)
}

func TestEvaluate_MaxSizeGatesRawNotCompressed(t *testing.T) {
	// Compressed sizes above the cap never matter; only raw bytes gate maxSize
	size := schema.SizeResult{RawBytes: 1000, GzipBytes: 90000, BrotliBytes: 90000}
	cr := Evaluate(size, "button", schema.BaselineMap{}, Limits{MaxSize: "2KB"})
	assert.False(t, cr.ExceedsMaxSize)
}

func TestEvaluate_NoLimitWhenUnparsable(t *testing.T) {
	for _, maxSize := range []string{"", "abc", "5XB"} {
		cr := Evaluate(schema.SizeResult{RawBytes: 1 << 30}, "k", schema.BaselineMap{}, Limits{MaxSize: maxSize})
		assert.Nil(t, cr.MaxSizeBytes, maxSize)
		assert.False(t, cr.ExceedsMaxSize, maxSize)
	}
}

func TestEvaluate_GrowthOverBaseline(t *testing.T) {
	baseline := schema.BaselineMap{"button": 1000}
	cr := Evaluate(schema.SizeResult{RawBytes: 1100}, "button", baseline, Limits{WarnOnIncrease: "5%"})

	assert.True(t, cr.HasBaseline)
	assert.Equal(t, int64(1000), cr.PreviousSizeBytes)
	assert.Equal(t, int64(100), cr.SizeIncreaseBytes)
	assert.Equal(t, "10.00", cr.PercentageIncrease)
	assert.InDelta(t, 10.0, cr.PercentageIncreaseValue, 1e-9)
	assert.True(t, cr.ExceedsWarnIncrease)
}

func TestEvaluate_GrowthWithinLimit(t *testing.T) {
	baseline := schema.BaselineMap{"button": 1000}
	cr := Evaluate(schema.SizeResult{RawBytes: 1040}, "button", baseline, Limits{WarnOnIncrease: "5%"})

	assert.Equal(t, "4.00", cr.PercentageIncrease)
	assert.False(t, cr.ExceedsWarnIncrease)
}

func TestEvaluate_ShrinkageIsNegative(t *testing.T) {
	baseline := schema.BaselineMap{"button": 2000}
	cr := Evaluate(schema.SizeResult{RawBytes: 1500}, "button", baseline, Limits{WarnOnIncrease: "5%"})

	assert.Equal(t, int64(-500), cr.SizeIncreaseBytes)
	assert.Equal(t, "-25.00", cr.PercentageIncrease)
	assert.False(t, cr.ExceedsWarnIncrease)
}

func TestEvaluate_NoBaselineSentinel(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		cr := Evaluate(schema.SizeResult{RawBytes: 1100}, "button", schema.BaselineMap{}, Limits{WarnOnIncrease: "5%"})
		assert.False(t, cr.HasBaseline)
		assert.Equal(t, schema.NoBaselineSentinel, cr.PercentageIncrease)
		assert.False(t, cr.ExceedsWarnIncrease)
	})

	t.Run("recorded zero", func(t *testing.T) {
		// A zero entry is indistinguishable from an absent one
		baseline := schema.BaselineMap{"button": 0}
		cr := Evaluate(schema.SizeResult{RawBytes: 1100}, "button", baseline, Limits{WarnOnIncrease: "5%"})
		assert.False(t, cr.HasBaseline)
		assert.Equal(t, schema.NoBaselineSentinel, cr.PercentageIncrease)
		assert.False(t, cr.ExceedsWarnIncrease)
	})
}

func TestEvaluate_NoGrowthLimitConfigured(t *testing.T) {
	baseline := schema.BaselineMap{"button": 100}
	// Huge growth, but warnOnIncrease is absent/unparsable: informational only
	for _, warn := range []string{"", "10"} {
		cr := Evaluate(schema.SizeResult{RawBytes: 10000}, "button", baseline, Limits{WarnOnIncrease: warn})
		assert.True(t, cr.HasBaseline, warn)
		assert.False(t, cr.ExceedsWarnIncrease, warn)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	baseline := schema.BaselineMap{"button": 1000}
	size := schema.SizeResult{RawBytes: 25600, GzipBytes: 8000}
	limits := Limits{MaxSize: "20KB", WarnOnIncrease: "5%"}

	first := Evaluate(size, "button", baseline, limits)
	second := Evaluate(size, "button", baseline, limits)
	assert.Equal(t, first, second)
}
