package services

import "diskwarn/internal/models"

// Evaluate classifies a volume's usage ratio against the thresholds.
// Boundary ratios belong to the stricter band: a volume sitting exactly
// on the warning threshold is WARNING, exactly on the critical
// threshold is CRITICAL. Pure function, no side effects.
func Evaluate(v models.Volume, cfg models.ThresholdConfig) models.VolumeVerdict {
	ratio := v.Ratio()
	verdict := models.SeverityOK
	switch {
	case ratio >= cfg.Critical:
		verdict = models.SeverityCritical
	case ratio >= cfg.Warning:
		verdict = models.SeverityWarning
	}
	return models.VolumeVerdict{Volume: v, Ratio: ratio, Verdict: verdict}
}

// EvaluateAll classifies every volume, preserving enumeration order,
// and carries the soft failures through to the final report.
func EvaluateAll(volumes []models.Volume, cfg models.ThresholdConfig, failures []models.SoftFailure) models.RunResult {
	result := models.RunResult{Failures: failures}
	for _, v := range volumes {
		result.Verdicts = append(result.Verdicts, Evaluate(v, cfg))
	}
	return result
}
