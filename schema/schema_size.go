package schema

// KibiByte is the divisor used when presenting byte counts as kibibytes.
const KibiByte = 1024.0

// NoBaselineSentinel is rendered for percentage increase when no strictly
// positive baseline entry exists for a result key.
const NoBaselineSentinel = "N/A"

// SizeResult holds the aggregate sizes for one variant's file set.
// Compressed totals are sums of per-file compressed lengths, never the
// compressed length of a concatenation.
type SizeResult struct {
	RawBytes    int64 `json:"rawBytes"`
	GzipBytes   int64 `json:"gzipBytes"`
	BrotliBytes int64 `json:"brotliBytes"`
	Gzip        bool  `json:"gzip"`
	Brotli      bool  `json:"brotli"`
}

// RawKB returns the raw total in kibibytes.
func (r SizeResult) RawKB() float64 { return float64(r.RawBytes) / KibiByte }

// GzipKB returns the gzip total in kibibytes.
func (r SizeResult) GzipKB() float64 { return float64(r.GzipBytes) / KibiByte }

// BrotliKB returns the brotli total in kibibytes.
func (r SizeResult) BrotliKB() float64 { return float64(r.BrotliBytes) / KibiByte }

// ComparisonResult augments a SizeResult with the outcome of the absolute-cap
// and growth-over-baseline checks for one (component, variant) pair.
type ComparisonResult struct {
	Key       string       `json:"key"`
	Component string       `json:"component"`
	Variant   VariantLabel `json:"variant"`
	FileCount int          `json:"fileCount"`

	Size SizeResult `json:"size"`

	MaxSize        string `json:"maxSize"`
	MaxSizeBytes   *int64 `json:"maxSizeBytes,omitempty"` // nil means no limit
	ExceedsMaxSize bool   `json:"exceedsMaxSize"`

	// OverflowBytes is how far the raw size exceeds the cap. Zero unless
	// ExceedsMaxSize is set.
	OverflowBytes int64 `json:"overflowBytes,omitempty"`

	PreviousSizeBytes int64 `json:"previousSizeBytes"`
	SizeIncreaseBytes int64 `json:"sizeIncreaseBytes"`

	// PercentageIncrease is the display string ("N/A" without a baseline).
	// PercentageIncreaseValue carries the parsed numeric value so that
	// threshold comparisons never operate on the formatted string.
	PercentageIncrease      string  `json:"percentageIncrease"`
	PercentageIncreaseValue float64 `json:"-"`
	HasBaseline             bool    `json:"hasBaseline"`

	WarnOnIncrease      string `json:"warnOnIncrease,omitempty"`
	ExceedsWarnIncrease bool   `json:"exceedsWarnIncrease"`
}

// Failed reports whether this result trips either threshold.
func (c *ComparisonResult) Failed() bool {
	return c.ExceedsMaxSize || c.ExceedsWarnIncrease
}

// FailureRecord notes that a component/variant exceeded its absolute size cap.
// Records feed the dedicated failure-report artifact.
type FailureRecord struct {
	Component         string  `json:"component"`
	ExpectedThreshold string  `json:"expectedThreshold"`
	ActualSizeKB      float64 `json:"actualSizeKB"`
	OverflowKB        float64 `json:"overflowKB"`
}

// CheckRunResult holds everything a single size check run produced.
type CheckRunResult struct {
	Results         []ComparisonResult `json:"results"`
	Failures        []FailureRecord    `json:"failures,omitempty"`
	HasWarnings     bool               `json:"hasWarnings"`
	TotalComponents int                `json:"totalComponents"`
}

// ResultByKey returns the comparison result for a key, if present.
func (r *CheckRunResult) ResultByKey(key string) (ComparisonResult, bool) {
	for _, cr := range r.Results {
		if cr.Key == key {
			return cr, true
		}
	}
	return ComparisonResult{}, false
}
