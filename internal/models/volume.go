package models

import "fmt"

// Severity classifies a volume's usage ratio against the configured
// thresholds. Ordering matters: a run's overall status is the maximum
// severity across its volumes.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalJSON renders the severity as its name so collectors see
// "OK"/"WARNING"/"CRITICAL" rather than an opaque integer.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Volume represents one mounted storage device or partition at the
// moment it was sampled.
type Volume struct {
	Path       string `json:"path"`
	Device     string `json:"device,omitempty"`
	Filesystem string `json:"filesystem,omitempty"`
	TotalBytes uint64 `json:"total_bytes"`
	UsedBytes  uint64 `json:"used_bytes"`
}

// Ratio returns used/total in [0,1]. A volume with no capacity has no
// meaningful ratio and reports 0; the enumerator filters those out
// before evaluation.
func (v Volume) Ratio() float64 {
	if v.TotalBytes == 0 {
		return 0
	}
	return float64(v.UsedBytes) / float64(v.TotalBytes)
}

// VolumeVerdict pairs a volume snapshot with its classification.
type VolumeVerdict struct {
	Volume  Volume   `json:"volume"`
	Ratio   float64  `json:"ratio"`
	Verdict Severity `json:"verdict"`
}

// SoftFailure records a volume that was skipped because its usage could
// not be read. Soft failures never abort the run but must surface in
// the final report.
type SoftFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// RunResult is the outcome of one invocation: every verdict in
// enumeration order plus the volumes that could not be evaluated.
type RunResult struct {
	Verdicts []VolumeVerdict `json:"volumes"`
	Failures []SoftFailure   `json:"failures,omitempty"`
}

// Overall returns the most severe verdict across all volumes.
func (r RunResult) Overall() Severity {
	overall := SeverityOK
	for _, v := range r.Verdicts {
		if v.Verdict > overall {
			overall = v.Verdict
		}
	}
	return overall
}

// Evaluated reports whether at least one volume was actually evaluated.
// A run with only soft failures (or nothing discoverable at all) has no
// verdicts and maps to its own exit status.
func (r RunResult) Evaluated() bool {
	return len(r.Verdicts) > 0
}
