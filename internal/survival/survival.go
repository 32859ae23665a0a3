// Package survival derives the survival window from a patient's predicted
// death timestamp and runs the early-exit classification that short-circuits
// dispatch for a deceased patient, an expired window, or a missing location.
package survival

import (
	"math"

	"github.com/kaelan-ross/transferdecision/pkg/model"
)

// WindowMinutes returns the survival window in minutes: max(0, (deathTs -
// currentTime) / 60) when a predicted death timestamp is present, or
// +Inf when it is absent (no hard deadline).
func WindowMinutes(patient model.Patient, currentTimeSeconds int64) float64 {
	if patient.PredictedDeathTimestamp == nil {
		return math.Inf(1)
	}
	remaining := float64(*patient.PredictedDeathTimestamp-currentTimeSeconds) / 60.0
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Classification is the outcome of the ordered early-exit checks in Classify.
type Classification int

const (
	// ClassificationProceed means the caller should continue to dispatch.
	ClassificationProceed Classification = iota
	ClassificationDeceased
	ClassificationNoLocation
)

// Classify runs the ordered checks: deceased/Dead acuity, expired window,
// then missing location.
func Classify(patient model.Patient, windowMinutes float64) Classification {
	if patient.Deceased || patient.CanonicalAcuity() == model.AcuityDead {
		return ClassificationDeceased
	}
	if windowMinutes <= 0 {
		return ClassificationDeceased
	}
	if patient.Location == nil {
		return ClassificationNoLocation
	}
	return ClassificationProceed
}
