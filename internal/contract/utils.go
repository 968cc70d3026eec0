package contract

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sizegate/sizegate/schema"
)

// Status label constants.
const (
	PassValue = "PASS" // within every threshold
	WarnValue = "WARN" // grew past warnOnIncrease
	FailValue = "FAIL" // exceeded maxSize
)

// Color variables for console output.
var (
	PassColor = color.New(color.FgGreen)           // PassColor marks healthy results.
	WarnColor = color.New(color.FgYellow)          // WarnColor marks growth-threshold violations.
	FailColor = color.New(color.FgRed, color.Bold) // FailColor marks absolute-cap violations.
)

// sizePattern accepts "<number>" with an optional B/KB/MB unit, case-insensitive,
// with optional whitespace between number and unit.
var sizePattern = regexp.MustCompile(`(?i)^\s*([0-9]+(?:\.[0-9]+)?)\s*(B|KB|MB)?\s*$`)

// percentPattern accepts "<number>%". The percent sign is mandatory.
var percentPattern = regexp.MustCompile(`^\s*([0-9]+(?:\.[0-9]+)?)\s*%\s*$`)

// ParseMaxSize parses an absolute size limit like "5", "5KB" or "5 MB" into
// bytes. The unit defaults to bytes when omitted. Unparsable strings return
// nil, meaning no limit is enforced for that component.
func ParseMaxSize(s string) *int64 {
	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	switch strings.ToUpper(m[2]) {
	case "KB":
		value *= schema.KibiByte
	case "MB":
		value *= schema.KibiByte * schema.KibiByte
	}
	bytes := int64(value)
	return &bytes
}

// ParsePercentage parses a growth threshold like "10%" into its numeric
// value. Unparsable or absent values return nil, meaning the growth check is
// skipped.
func ParsePercentage(s string) *float64 {
	m := percentPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &value
}

// FormatKB renders a byte count as "N.NN KB" for human-readable reports.
func FormatKB(bytes int64) string {
	return fmt.Sprintf("%.2f KB", float64(bytes)/schema.KibiByte)
}

// ParseBoolString converts a yes/no style flag value to a bool.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yes", "true", "1", "on":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	}
	return false, fmt.Errorf("expected yes/no/true/false/1/0 (received %q)", s)
}

// GetPlainStatus returns a plain text label for a comparison result. This is
// the core logic used for CSV, JSON, and table printing.
func GetPlainStatus(cr *schema.ComparisonResult) string {
	switch {
	case cr.ExceedsMaxSize:
		return FailValue
	case cr.ExceedsWarnIncrease:
		return WarnValue
	default:
		return PassValue
	}
}

// GetColorStatus returns a colored status label for console table output.
func GetColorStatus(cr *schema.ComparisonResult) string {
	text := GetPlainStatus(cr)
	switch text {
	case FailValue:
		return FailColor.Sprint(text)
	case WarnValue:
		return WarnColor.Sprint(text)
	default: // "PASS"
		return PassColor.Sprint(text)
	}
}

// TruncateKey shortens a result key for table display, keeping the trailing
// path segments which carry the most information.
func TruncateKey(key string, maxWidth int) string {
	if len(key) <= maxWidth || maxWidth <= 3 {
		return key
	}
	return "..." + key[len(key)-(maxWidth-3):]
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path selects standard output.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warning %s: %v\n", msg, err)
}
