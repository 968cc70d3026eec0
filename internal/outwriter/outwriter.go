// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/sizegate/sizegate/internal/contract"
	"golang.org/x/term"
)

// getMaxTableKeyWidth calculates the maximum width for result keys in table
// output based on terminal width and table configuration.
func getMaxTableKeyWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 45 // Files + Raw + Max + Status with borders/padding

	// Add compressed size columns with formatting
	if cfg.Compression.Gzip {
		baseWidth += 12
	}
	if cfg.Compression.Brotli {
		baseWidth += 12
	}

	// Baseline delta columns
	baseWidth += 24

	// Calculate available space for the key
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable key width
		return 15
	}
	if available > 70 {
		// Maximum key width to prevent overly long keys
		return 70
	}
	return available
}
