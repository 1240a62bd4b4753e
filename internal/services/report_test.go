package services

import (
	"bytes"
	"encoding/json"
	"testing"

	"diskwarn/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emit(t *testing.T, result models.RunResult, opts ReportOptions) (stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	r := NewReporter(&out, &errOut, opts)
	require.NoError(t, r.Emit(result))
	return out.String(), errOut.String()
}

func TestTextReportStreamRouting(t *testing.T) {
	result := EvaluateAll([]models.Volume{
		{Path: "/", TotalBytes: 100, UsedBytes: 50},
		{Path: "/data", TotalBytes: 100, UsedBytes: 95},
	}, testThresholds, []models.SoftFailure{{Path: "/mnt/nfs", Reason: "timeout"}})

	stdout, stderr := emit(t, result, ReportOptions{Format: FormatText, NoColor: true})

	assert.Contains(t, stdout, "/")
	assert.Contains(t, stdout, "OK")
	assert.NotContains(t, stdout, "/data")

	assert.Contains(t, stderr, "/data")
	assert.Contains(t, stderr, "CRITICAL")
	assert.Contains(t, stderr, "warning: skipped /mnt/nfs: timeout")
}

func TestTextReportWarningGoesToStderr(t *testing.T) {
	result := EvaluateAll([]models.Volume{
		{Path: "/data", TotalBytes: 100, UsedBytes: 75},
	}, testThresholds, nil)

	stdout, stderr := emit(t, result, ReportOptions{Format: FormatText, NoColor: true})
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "/data")
	assert.Contains(t, stderr, "WARNING")
	assert.Contains(t, stderr, "75.0%")
}

func TestTextReportNoVolumes(t *testing.T) {
	stdout, stderr := emit(t, models.RunResult{}, ReportOptions{Format: FormatText, NoColor: true})
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no volumes evaluated")
}

func TestJSONReport(t *testing.T) {
	result := EvaluateAll([]models.Volume{
		{Path: "/", Filesystem: "ext4", TotalBytes: 100, UsedBytes: 95},
	}, testThresholds, []models.SoftFailure{{Path: "/proc", Reason: "volume reports zero capacity"}})

	stdout, _ := emit(t, result, ReportOptions{Format: FormatJSON})

	var report struct {
		Volumes []struct {
			Volume  models.Volume `json:"volume"`
			Ratio   float64       `json:"ratio"`
			Verdict string        `json:"verdict"`
		} `json:"volumes"`
		Failures []models.SoftFailure `json:"failures"`
		Overall  string               `json:"overall"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	require.Len(t, report.Volumes, 1)
	assert.Equal(t, "/", report.Volumes[0].Volume.Path)
	assert.Equal(t, 0.95, report.Volumes[0].Ratio)
	assert.Equal(t, "CRITICAL", report.Volumes[0].Verdict)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "/proc", report.Failures[0].Path)
	assert.Equal(t, "CRITICAL", report.Overall)
}

func TestJSONReportNoVolumes(t *testing.T) {
	stdout, stderr := emit(t, models.RunResult{}, ReportOptions{Format: FormatJSON})
	assert.Empty(t, stderr)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "UNKNOWN", report["overall"])
}

func TestExitCodes(t *testing.T) {
	makeResult := func(used ...uint64) models.RunResult {
		var volumes []models.Volume
		for _, u := range used {
			volumes = append(volumes, models.Volume{Path: "/", TotalBytes: 100, UsedBytes: u})
		}
		return EvaluateAll(volumes, testThresholds, nil)
	}

	assert.Equal(t, ExitOK, ExitCode(makeResult(50)))
	assert.Equal(t, ExitWarning, ExitCode(makeResult(75)))
	assert.Equal(t, ExitCritical, ExitCode(makeResult(95)))
	assert.Equal(t, ExitCritical, ExitCode(makeResult(50, 95)))
	assert.Equal(t, ExitUnknown, ExitCode(models.RunResult{}))
	assert.Equal(t, ExitUnknown, ExitCode(models.RunResult{
		Failures: []models.SoftFailure{{Path: "/mnt/nfs", Reason: "timeout"}},
	}))
}
