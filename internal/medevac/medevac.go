// Package medevac implements the MEDEVAC chain builder: a sequential
// greedy construction of a Role 1 -> 2 -> 3 evacuation chain bounded by
// cumulative timeline budgets and the patient's survival window.
package medevac

import (
	"github.com/kaelan-ross/transferdecision/internal/cost"
	"github.com/kaelan-ross/transferdecision/internal/geo"
	"github.com/kaelan-ross/transferdecision/internal/rules"
	"github.com/kaelan-ross/transferdecision/pkg/model"
)

// roleLevels lists facility levels in the order the chain visits them:
// Role 1 (level 3) first, then Role 2 (level 2), then Role 3 (level 1).
var roleLevels = []int{3, 2, 1}

// Outcome is the chain builder's verdict.
type Outcome struct {
	Chain         []model.EvacuationHop
	TotalMinutes  float64
	FailedAtLevel int
	Complete      bool
}

// Build walks the roles in order, picking the cheapest in-budget facility
// at each level and chaining onward from it, failing closed the first
// level with no eligible facility.
func Build(patient model.Patient, facilities []model.Facility, table rules.Table, mode model.TransportMode, survivalWindowMinutes float64) Outcome {
	remaining := make([]model.Facility, len(facilities))
	copy(remaining, facilities)

	origin := patient.Location
	cumulative := 0.0
	var chain []model.EvacuationHop

	for _, level := range roleLevels {
		budget := roleBudget(level, table, survivalWindowMinutes)

		type scored struct {
			facility model.Facility
			eta      float64
			cost     float64
		}
		var candidates []scored

		if origin != nil {
			for _, f := range remaining {
				if f.Level != level || f.Location == nil {
					continue
				}
				eta := geo.ETAMinutes(*origin, *f.Location, mode, table)
				if cumulative+eta > budget {
					continue
				}
				c := cost.Evaluate(patient, f, eta, table)
				candidates = append(candidates, scored{facility: f, eta: eta, cost: c.Total})
			}
		}

		if len(candidates) == 0 {
			return Outcome{Chain: chain, TotalMinutes: cumulative, FailedAtLevel: level, Complete: false}
		}

		best := candidates[0]
		for _, c := range candidates[1:] {
			if cost.Less(c.cost, c.eta, c.facility.FacilityID, best.cost, best.eta, best.facility.FacilityID) {
				best = c
			}
		}

		cumulative += best.eta
		chain = append(chain, model.EvacuationHop{
			Role:               rules.RoleName(level),
			Level:              level,
			FacilityID:         best.facility.FacilityID,
			FacilityName:       best.facility.FacilityName,
			ETAMinutes:         geo.RoundMinutes(best.eta),
			CumulativeTime:     geo.RoundMinutes(cumulative),
			TimelineCompliance: true,
		})
		origin = best.facility.Location
		remaining = removeFacility(remaining, best.facility.FacilityID)
	}

	return Outcome{Chain: chain, TotalMinutes: cumulative, Complete: true}
}

// roleBudget resolves the cumulative-time ceiling for a role: the fixed
// Role 1/2 budgets from the rules table, or the patient's own survival
// window for Role 3 (the terminal, definitive-care hop).
func roleBudget(level int, table rules.Table, survivalWindowMinutes float64) float64 {
	if level == 1 {
		return survivalWindowMinutes
	}
	return table.RoleBudgetMinutes(level)
}

func removeFacility(facilities []model.Facility, id string) []model.Facility {
	out := make([]model.Facility, 0, len(facilities))
	for _, f := range facilities {
		if f.FacilityID != id {
			out = append(out, f)
		}
	}
	return out
}
