package services

import (
	"encoding/json"
	"fmt"
	"io"

	"diskwarn/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Exit codes follow the Nagios plugin convention: OK, WARNING,
// CRITICAL, then UNKNOWN for runs where nothing could be evaluated.
const (
	ExitOK       = 0
	ExitWarning  = 1
	ExitCritical = 2
	ExitUnknown  = 3
)

// ReportOptions selects the output format of a run report.
type ReportOptions struct {
	Format  string
	NoColor bool
}

// Reporter renders a RunResult. OK lines go to stdout; WARNING and
// CRITICAL lines, soft failures, and the empty-run notice go to stderr.
type Reporter struct {
	stdout io.Writer
	stderr io.Writer
	opts   ReportOptions

	paint map[models.Severity]func(a ...interface{}) string
}

func NewReporter(stdout, stderr io.Writer, opts ReportOptions) *Reporter {
	newPaint := func(attr color.Attribute) func(a ...interface{}) string {
		c := color.New(attr)
		if opts.NoColor {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &Reporter{
		stdout: stdout,
		stderr: stderr,
		opts:   opts,
		paint: map[models.Severity]func(a ...interface{}) string{
			models.SeverityOK:       newPaint(color.FgGreen),
			models.SeverityWarning:  newPaint(color.FgYellow),
			models.SeverityCritical: newPaint(color.FgRed),
		},
	}
}

// Emit writes the report in the configured format.
func (r *Reporter) Emit(result models.RunResult) error {
	if r.opts.Format == FormatJSON {
		return r.emitJSON(result)
	}
	return r.emitText(result)
}

type runReport struct {
	Volumes  []models.VolumeVerdict `json:"volumes"`
	Failures []models.SoftFailure   `json:"failures,omitempty"`
	Overall  string                 `json:"overall"`
}

func (r *Reporter) emitJSON(result models.RunResult) error {
	report := runReport{
		Volumes:  result.Verdicts,
		Failures: result.Failures,
		Overall:  "UNKNOWN",
	}
	if result.Evaluated() {
		report.Overall = result.Overall().String()
	}

	enc := json.NewEncoder(r.stdout)
	return enc.Encode(report)
}

func (r *Reporter) emitText(result models.RunResult) error {
	for _, v := range result.Verdicts {
		out := r.stdout
		if v.Verdict > models.SeverityOK {
			out = r.stderr
		}
		_, err := fmt.Fprintf(out, "%-24s %9s / %-9s %5.1f%%  %s\n",
			v.Volume.Path,
			humanize.IBytes(v.Volume.UsedBytes),
			humanize.IBytes(v.Volume.TotalBytes),
			v.Ratio*100,
			r.paint[v.Verdict](v.Verdict.String()))
		if err != nil {
			return err
		}
	}

	for _, f := range result.Failures {
		if _, err := fmt.Fprintf(r.stderr, "warning: skipped %s: %s\n", f.Path, f.Reason); err != nil {
			return err
		}
	}

	if !result.Evaluated() {
		if _, err := fmt.Fprintln(r.stderr, "no volumes evaluated"); err != nil {
			return err
		}
	}
	return nil
}

// ExitCode maps a run's outcome to the process exit status.
func ExitCode(result models.RunResult) int {
	if !result.Evaluated() {
		return ExitUnknown
	}
	switch result.Overall() {
	case models.SeverityCritical:
		return ExitCritical
	case models.SeverityWarning:
		return ExitWarning
	default:
		return ExitOK
	}
}
