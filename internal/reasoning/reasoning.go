// Package reasoning renders a ReasoningCode into the free-text "reasoning"
// string every TransferDecision carries alongside its machine-readable
// code. Templates are deterministic and parameterized, never randomized
// or LLM-generated.
package reasoning

import (
	"fmt"

	"github.com/kaelan-ross/transferdecision/pkg/model"
)

// TransferOptimal describes a single-destination assignment.
func TransferOptimal(facilityName string, etaMinutes float64) string {
	return fmt.Sprintf("assigned to %s, estimated arrival in %.1f minutes", facilityName, etaMinutes)
}

// EvacuationChainOptimal describes a completed MEDEVAC chain.
func EvacuationChainOptimal(hops int, totalMinutes, survivalWindowMinutes float64) string {
	return fmt.Sprintf("%d-hop evacuation chain built, total time %.1f minutes within survival window of %.1f minutes", hops, totalMinutes, survivalWindowMinutes)
}

// PatientDeceased explains a forfeit on deceased/expired-window grounds.
func PatientDeceased(deceasedFlag bool, acuity model.Acuity, windowMinutes float64) string {
	switch {
	case deceasedFlag:
		return "patient marked deceased"
	case acuity == model.AcuityDead:
		return "patient acuity is Dead"
	default:
		return fmt.Sprintf("survival window has expired (%.1f minutes remaining)", windowMinutes)
	}
}

// DeadOnArrival explains a forfeit where the best option still misses the
// survival window.
func DeadOnArrival(bestMinutes, survivalWindowMinutes float64) string {
	return fmt.Sprintf("best option requires %.1f minutes, exceeding the survival window of %.1f minutes", bestMinutes, survivalWindowMinutes)
}

// NoFacilitiesAvailable explains an empty or infeasible facility set.
func NoFacilitiesAvailable(detail string) string {
	if detail == "" {
		return "no facilities were available to evaluate"
	}
	return fmt.Sprintf("no feasible assignment found: %s", detail)
}

// NoViableChain explains a MEDEVAC chain that could not be completed.
func NoViableChain(roleName string) string {
	return fmt.Sprintf("no facility could satisfy the %s timeline budget", roleName)
}

// NoLocation explains a forfeit due to a missing patient location.
func NoLocation() string {
	return "patient location is unavailable; cannot compute ETA"
}
