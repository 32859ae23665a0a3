// Package optimizer implements the MCI/PHE optimizer: a binary assignment
// over facilities for a single patient, with a hard exclusion constraint
// and a soft, weighted cost objective, plus alternatives enumeration by
// repeated exclusion re-solve. Resource capacity is not a hard constraint
// here: a facility short of a required resource stays eligible and carries
// the cost model's resource-deficit penalty instead.
package optimizer

import (
	"context"

	"github.com/kaelan-ross/transferdecision/internal/cost"
	"github.com/kaelan-ross/transferdecision/internal/geo"
	"github.com/kaelan-ross/transferdecision/internal/rules"
	"github.com/kaelan-ross/transferdecision/internal/solver"
	"github.com/kaelan-ross/transferdecision/pkg/model"
)

// MaxAlternatives bounds how many additional destinations are surfaced
// alongside the primary choice.
const MaxAlternatives = 3

// Outcome is the optimizer's verdict before the orchestrator attaches a
// reasoning code: either a chosen destination with alternatives, or no
// feasible destination at all.
type Outcome struct {
	Chosen       solver.Candidate
	ChosenName   string
	Alternatives []model.Destination
	Status       model.SolverStatus
	Found        bool
}

// Run scores every facility against the patient, solves for the best
// assignment, and enumerates up to MaxAlternatives additional re-solves
// with the previous choice excluded each time.
func Run(ctx context.Context, patient model.Patient, facilities []model.Facility, table rules.Table, mode model.TransportMode) Outcome {
	names := make(map[string]string, len(facilities))
	candidates := make([]solver.Candidate, 0, len(facilities))
	for _, f := range facilities {
		if patient.Location == nil || f.Location == nil {
			continue
		}
		eta := geo.ETAMinutes(*patient.Location, *f.Location, mode, table)
		scored := cost.Evaluate(patient, f, eta, table)
		candidates = append(candidates, solver.Candidate{
			FacilityID: f.FacilityID,
			ETAMinutes: eta,
			Cost:       scored.Total,
		})
		names[f.FacilityID] = f.FacilityName
	}

	less := func(a, b solver.Candidate) bool {
		return cost.Less(a.Cost, a.ETAMinutes, a.FacilityID, b.Cost, b.ETAMinutes, b.FacilityID)
	}
	s := solver.ExhaustiveSolver{Less: less}

	excluded := map[string]bool{}
	primary := s.Solve(ctx, solver.Problem{
		Candidates: candidates,
		Constraint: solver.ExclusionConstraint(excluded),
	})
	if !primary.Found {
		return Outcome{Status: primary.Status, Found: false}
	}

	out := Outcome{
		Chosen:     primary.Chosen,
		ChosenName: names[primary.Chosen.FacilityID],
		Status:     primary.Status,
		Found:      true,
	}

	excluded[primary.Chosen.FacilityID] = true
	for i := 0; i < MaxAlternatives; i++ {
		result := s.Solve(ctx, solver.Problem{
			Candidates: candidates,
			Constraint: solver.ExclusionConstraint(excluded),
		})
		if !result.Found || result.Status == model.SolverInfeasible {
			break
		}
		out.Alternatives = append(out.Alternatives, model.Destination{
			FacilityID:   result.Chosen.FacilityID,
			FacilityName: names[result.Chosen.FacilityID],
			ETAMinutes:   geo.RoundMinutes(result.Chosen.ETAMinutes),
		})
		excluded[result.Chosen.FacilityID] = true
	}

	return out
}
