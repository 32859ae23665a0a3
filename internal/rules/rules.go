// Package rules holds the Rules Registry: the static cost/timeline tables
// the cost model and timeline checks consult, expressed as a Table value
// so the optional YAML overlay (internal/rulesconfig) can produce a
// modified copy without any package-level mutable state.
package rules

import "github.com/kaelan-ross/transferdecision/pkg/model"

// Transport speeds in km/h.
const (
	GroundSpeedKMH = 50.0
	AirSpeedKMH    = 200.0
)

// Cost model constants.
const (
	CapabilityMismatchPenalty = 10000.0
	ResourceDeficitPenalty    = 5000.0
	ResourceStressExponent    = 2.0
)

// Timeline budgets, cumulative minutes.
const (
	Role1BudgetMinutes = 60.0
	Role2BudgetMinutes = 120.0
)

// DefaultAcuityWeight is applied when a patient's acuity is not in the table.
const DefaultAcuityWeight = 50.0

// Table is the full set of tunable constants the cost model and timeline
// checks consult. The zero value is not meaningful; use Default().
type Table struct {
	AcuityWeights          map[model.Acuity]float64
	ScarcityPenalties      map[string]float64
	CapabilityMismatchCost float64
	ResourceDeficitCost    float64
	ResourceStressExponent float64
	Role1BudgetMinutes     float64
	Role2BudgetMinutes     float64
	GroundSpeedKMH         float64
	AirSpeedKMH            float64
}

// Default returns the compile-time constant Rules Registry.
func Default() Table {
	return Table{
		AcuityWeights: map[model.Acuity]float64{
			model.AcuityDead:      0,
			model.AcuityExpectant: 80,
			model.AcuityImmediate: 100,
			model.AcuityDelayed:   50,
			model.AcuityMinimal:   10,
		},
		ScarcityPenalties: map[string]float64{
			"burn":          500,
			"pediatric":     500,
			"neurosurgical": 400,
			"cardiac":       300,
			"obstetric":     200,
			"ophthalmology": 150,
		},
		CapabilityMismatchCost: CapabilityMismatchPenalty,
		ResourceDeficitCost:    ResourceDeficitPenalty,
		ResourceStressExponent: ResourceStressExponent,
		Role1BudgetMinutes:     Role1BudgetMinutes,
		Role2BudgetMinutes:     Role2BudgetMinutes,
		GroundSpeedKMH:         GroundSpeedKMH,
		AirSpeedKMH:            AirSpeedKMH,
	}
}

// AcuityWeight resolves a (possibly legacy) acuity tag to its cost weight,
// canonicalizing first and falling back to DefaultAcuityWeight when the
// canonical tag is still not in the table.
func (t Table) AcuityWeight(a model.Acuity) float64 {
	canon := a.Canonical()
	if w, ok := t.AcuityWeights[canon]; ok {
		return w
	}
	return DefaultAcuityWeight
}

// ScarcityPenalty returns the stewardship penalty for a capability key,
// or 0 for capabilities not on the scarce list.
func (t Table) ScarcityPenalty(capability string) float64 {
	return t.ScarcityPenalties[capability]
}

// TransportSpeedKMH resolves the travel speed for a transport mode.
func (t Table) TransportSpeedKMH(mode model.TransportMode) float64 {
	if mode == model.TransportAir {
		return t.AirSpeedKMH
	}
	return t.GroundSpeedKMH
}

// RoleBudgetMinutes returns the cumulative timeline budget for facility
// level 3 (Role 1), 2 (Role 2), or 1 (Role 3 -- the survival window itself,
// which the caller supplies separately).
func (t Table) RoleBudgetMinutes(level int) float64 {
	switch level {
	case 3:
		return t.Role1BudgetMinutes
	case 2:
		return t.Role2BudgetMinutes
	default:
		return 0
	}
}

// RoleName maps a facility level to its NATO role label.
func RoleName(level int) string {
	switch level {
	case 3:
		return "Role 1"
	case 2:
		return "Role 2"
	case 1:
		return "Role 3"
	default:
		return "Unknown"
	}
}

// CapabilityKeys is the closed set of capability keys the engine recognizes.
var CapabilityKeys = []string{
	"trauma_center", "neurosurgical", "orthopedic", "ophthalmology", "burn",
	"pediatric", "obstetric", "cardiac", "thoracic", "vascular", "ent",
	"hepatobiliary",
}

// ResourceKeys is the closed set of resource keys the engine recognizes.
var ResourceKeys = []string{
	"ward", "ordinary_icu", "operating_room", "ventilator", "prbc_unit",
	"isolation", "decontamination_unit", "ct_scanner", "oxygen_cylinder",
	"interventional_radiology",
}
