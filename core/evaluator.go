package core

import (
	"fmt"

	"github.com/sizegate/sizegate/internal/contract"
	"github.com/sizegate/sizegate/schema"
)

// Limits carries the configured thresholds for one component, as strings
// straight from configuration. Parsing happens here so that unparsable values
// degrade to "no limit" in exactly one place.
type Limits struct {
	MaxSize        string
	WarnOnIncrease string
}

// Evaluate compares a size result against the absolute cap and the
// growth-over-baseline limit for the given result key.
//
// The growth check only runs against a strictly positive baseline entry;
// a missing key (indistinguishable from a recorded zero) yields the "N/A"
// sentinel and can never produce a false failure. Threshold comparisons
// operate on parsed numeric values, never on the formatted display string.
func Evaluate(size schema.SizeResult, key string, baseline schema.BaselineMap, limits Limits) schema.ComparisonResult {
	cr := schema.ComparisonResult{
		Key:                key,
		Size:               size,
		MaxSize:            limits.MaxSize,
		WarnOnIncrease:     limits.WarnOnIncrease,
		PercentageIncrease: schema.NoBaselineSentinel,
	}

	maxBytes := contract.ParseMaxSize(limits.MaxSize)
	cr.MaxSizeBytes = maxBytes
	cr.ExceedsMaxSize = maxBytes != nil && size.RawBytes > *maxBytes
	if cr.ExceedsMaxSize {
		cr.OverflowBytes = size.RawBytes - *maxBytes
	}

	previous := baseline[key] // zero when absent
	cr.PreviousSizeBytes = previous
	cr.SizeIncreaseBytes = size.RawBytes - previous

	if previous > 0 {
		cr.HasBaseline = true
		cr.PercentageIncreaseValue = float64(cr.SizeIncreaseBytes) / float64(previous) * 100
		cr.PercentageIncrease = fmt.Sprintf("%.2f", cr.PercentageIncreaseValue)

		if warn := contract.ParsePercentage(limits.WarnOnIncrease); warn != nil {
			cr.ExceedsWarnIncrease = cr.PercentageIncreaseValue > *warn
		}
	}

	return cr
}
