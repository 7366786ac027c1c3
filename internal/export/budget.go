package export

import (
	"fmt"

	"github.com/klauspost/compress/gzip"
)

// Check statuses. An unmeasured metric is not a failure: absence of a
// measurement is not evidence of one.
const (
	CheckPass        = "pass"
	CheckFail        = "fail"
	CheckNotMeasured = "not-measured"
)

// Default thresholds, in bytes.
const (
	DefaultJSGzipBudget         = 95 * 1024
	DefaultCSSGzipBudget        = 12 * 1024
	DefaultFirstViewImageBudget = 1_200_000
)

// Thresholds are the budget limits a bundle is measured against.
type Thresholds struct {
	JSGzipBytes         int64 `json:"jsGzipBytes"`
	CSSGzipBytes        int64 `json:"cssGzipBytes"`
	FirstViewImageBytes int64 `json:"firstViewImageBytes"`
}

// DefaultThresholds returns the fixed default budget limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		JSGzipBytes:         DefaultJSGzipBudget,
		CSSGzipBytes:        DefaultCSSGzipBudget,
		FirstViewImageBytes: DefaultFirstViewImageBudget,
	}
}

// Metrics are the measured sizes. A nil metric means the measurement was
// unavailable (e.g. compression failed) and yields a not-measured check.
type Metrics struct {
	JSGzipBytes         *int64
	CSSGzipBytes        *int64
	FirstViewImageBytes *int64
}

// Check is one budget comparison.
type Check struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Actual    *int64 `json:"actual"`
	Threshold int64  `json:"threshold"`
}

// BudgetEvaluation is the overall result. Passed is true iff no check
// failed; not-measured checks never flip it.
type BudgetEvaluation struct {
	Passed bool    `json:"passed"`
	Checks []Check `json:"checks"`
}

// EvaluateBudgets compares measured sizes against thresholds. A value
// exactly at its threshold passes.
func EvaluateBudgets(m Metrics, thresholds *Thresholds) BudgetEvaluation {
	t := DefaultThresholds()
	if thresholds != nil {
		t = *thresholds
	}

	checks := []Check{
		evaluateCheck("js-gzip", m.JSGzipBytes, t.JSGzipBytes),
		evaluateCheck("css-gzip", m.CSSGzipBytes, t.CSSGzipBytes),
		evaluateCheck("first-view-images", m.FirstViewImageBytes, t.FirstViewImageBytes),
	}

	passed := true
	for _, c := range checks {
		if c.Status == CheckFail {
			passed = false
		}
	}
	return BudgetEvaluation{Passed: passed, Checks: checks}
}

func evaluateCheck(name string, actual *int64, threshold int64) Check {
	check := Check{Name: name, Actual: actual, Threshold: threshold}
	switch {
	case actual == nil:
		check.Status = CheckNotMeasured
	case *actual <= threshold:
		check.Status = CheckPass
	default:
		check.Status = CheckFail
	}
	return check
}

// GzipSize returns the gzip-compressed size of data. Any transform failure
// is returned as an error so the caller can degrade the metric to
// not-measured instead of failing the export.
func GzipSize(data []byte) (int64, error) {
	var counter countingWriter
	zw, err := gzip.NewWriterLevel(&counter, gzip.BestCompression)
	if err != nil {
		return 0, fmt.Errorf("gzip init failed: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return 0, fmt.Errorf("gzip write failed: %w", err)
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("gzip flush failed: %w", err)
	}
	return counter.n, nil
}

// countingWriter sums emitted chunk lengths without keeping the bytes.
type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

// gzipSizeOrNil measures and degrades failure to a nil metric.
func gzipSizeOrNil(data []byte) *int64 {
	size, err := GzipSize(data)
	if err != nil {
		return nil
	}
	return &size
}
