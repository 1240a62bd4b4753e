package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeRatio(t *testing.T) {
	v := Volume{Path: "/", TotalBytes: 100, UsedBytes: 50}
	assert.Equal(t, 0.5, v.Ratio())

	full := Volume{Path: "/data", TotalBytes: 100, UsedBytes: 100}
	assert.Equal(t, 1.0, full.Ratio())

	empty := Volume{Path: "/proc", TotalBytes: 0, UsedBytes: 0}
	assert.Equal(t, 0.0, empty.Ratio())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "OK", SeverityOK.String())
	assert.Equal(t, "WARNING", SeverityWarning.String())
	assert.Equal(t, "CRITICAL", SeverityCritical.String())
}

func TestSeverityMarshalJSON(t *testing.T) {
	out, err := json.Marshal(VolumeVerdict{
		Volume:  Volume{Path: "/", TotalBytes: 100, UsedBytes: 95},
		Ratio:   0.95,
		Verdict: SeverityCritical,
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"verdict":"CRITICAL"`)
}

func TestRunResultOverall(t *testing.T) {
	result := RunResult{Verdicts: []VolumeVerdict{
		{Verdict: SeverityOK},
		{Verdict: SeverityCritical},
		{Verdict: SeverityWarning},
	}}
	assert.Equal(t, SeverityCritical, result.Overall())

	assert.Equal(t, SeverityOK, RunResult{}.Overall())
}

func TestRunResultEvaluated(t *testing.T) {
	assert.False(t, RunResult{}.Evaluated())
	assert.False(t, RunResult{Failures: []SoftFailure{{Path: "/mnt/nfs"}}}.Evaluated())
	assert.True(t, RunResult{Verdicts: []VolumeVerdict{{}}}.Evaluated())
}
