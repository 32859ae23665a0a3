// Package cost implements the assignment cost function: time-to-care
// weighted by acuity, capability mismatch penalty, scarcity stewardship,
// and resource-stress. Kept deliberately simple: one scalar objective, no
// Pareto logic.
package cost

import (
	"math"

	"github.com/kaelan-ross/transferdecision/internal/feasibility"
	"github.com/kaelan-ross/transferdecision/internal/rules"
	"github.com/kaelan-ross/transferdecision/pkg/model"
)

// Breakdown exposes the individual cost terms for logging/debugging; only
// Total is used by the solver.
type Breakdown struct {
	TimeAcuityTerm       float64
	MismatchTerm         float64
	StewardshipTerm      float64
	ResourceStressTerm   float64
	ResourceDeficitTerm  float64
	Total                float64
}

// Evaluate scores a (patient, facility) pair given a precomputed ETA in
// minutes.
func Evaluate(patient model.Patient, facility model.Facility, etaMinutes float64, table rules.Table) Breakdown {
	b := Breakdown{}

	b.TimeAcuityTerm = etaMinutes * table.AcuityWeight(patient.CanonicalAcuity())

	missing := feasibility.MissingCapabilities(patient, facility)
	b.MismatchTerm = float64(len(missing)) * table.CapabilityMismatchCost

	b.StewardshipTerm = stewardshipPenalty(patient, facility, table)

	b.ResourceStressTerm = resourceStress(patient, facility, table)

	if feasibility.HasResourceDeficit(patient, facility) {
		b.ResourceDeficitTerm = table.ResourceDeficitCost
	}

	b.Total = b.TimeAcuityTerm + b.MismatchTerm + b.StewardshipTerm +
		b.ResourceStressTerm + b.ResourceDeficitTerm
	return b
}

// stewardshipPenalty sums the scarcity penalty for every capability the
// facility has but the patient does not need. This fires unconditionally:
// whether a scarce capability is the last of its kind in the region is not
// tracked, so no regional-scarcity override is applied here.
func stewardshipPenalty(patient model.Patient, facility model.Facility, table rules.Table) float64 {
	total := 0.0
	for capability, has := range facility.Capabilities {
		if !has {
			continue
		}
		if patient.RequiredMedicalCapabilities[capability] {
			continue
		}
		total += table.ScarcityPenalty(capability)
	}
	return total
}

// resourceStress sums 100 * min(1, required/capacity)^exponent across every
// resource the patient requires.
func resourceStress(patient model.Patient, facility model.Facility, table rules.Table) float64 {
	total := 0.0
	for resource, required := range patient.RequiredMedicalResources {
		if required <= 0 {
			continue
		}
		capacity := facility.MedicalResources[resource]
		if capacity < 1 {
			capacity = 1
		}
		utilization := float64(required) / float64(capacity)
		if utilization > 1 {
			utilization = 1
		}
		total += 100.0 * math.Pow(utilization, table.ResourceStressExponent)
	}
	return total
}

// Less implements the mandatory tie-break: lower cost first, then lower
// ETA, then lexicographically smaller facility ID.
func Less(aCost, aETA float64, aID string, bCost, bETA float64, bID string) bool {
	if aCost != bCost {
		return aCost < bCost
	}
	if aETA != bETA {
		return aETA < bETA
	}
	return aID < bID
}
