// Package rulesconfig loads an optional YAML overlay onto the compile-time
// Rules Registry (internal/rules), layering file-based overrides onto code
// defaults. Unset fields in the YAML file keep rules.Default()'s value --
// the loader merges, it never starts from zero.
package rulesconfig

import (
	"os"

	"github.com/kaelan-ross/transferdecision/internal/rules"
	"github.com/kaelan-ross/transferdecision/internal/xerrors"
	"github.com/kaelan-ross/transferdecision/pkg/model"
	"gopkg.in/yaml.v3"
)

// overlay mirrors rules.Table but with pointer/omittable fields so the
// loader can distinguish "not set in YAML" from "explicitly zero".
type overlay struct {
	AcuityWeights          map[string]float64 `yaml:"acuity_weights"`
	ScarcityPenalties      map[string]float64 `yaml:"scarcity_penalties"`
	CapabilityMismatchCost *float64           `yaml:"capability_mismatch_cost"`
	ResourceDeficitCost    *float64           `yaml:"resource_deficit_cost"`
	ResourceStressExponent *float64           `yaml:"resource_stress_exponent"`
	Role1BudgetMinutes     *float64           `yaml:"role1_budget_minutes"`
	Role2BudgetMinutes     *float64           `yaml:"role2_budget_minutes"`
	GroundSpeedKMH         *float64           `yaml:"ground_speed_kmh"`
	AirSpeedKMH            *float64           `yaml:"air_speed_kmh"`
}

// Load reads a YAML overlay from path and merges it onto rules.Default().
// A missing file is not an error -- it returns the unmodified default, since
// the overlay is opt-in.
func Load(path string) (rules.Table, error) {
	table := rules.Default()

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return table, nil
	}
	if err != nil {
		return table, xerrors.RulesError("read rules overlay", err)
	}

	var ov overlay
	if err := yaml.Unmarshal(raw, &ov); err != nil {
		return table, xerrors.RulesError("parse rules overlay", err)
	}

	return merge(table, ov), nil
}

func merge(base rules.Table, ov overlay) rules.Table {
	for tag, weight := range ov.AcuityWeights {
		base.AcuityWeights[model.Acuity(tag)] = weight
	}
	for capability, penalty := range ov.ScarcityPenalties {
		base.ScarcityPenalties[capability] = penalty
	}
	if ov.CapabilityMismatchCost != nil {
		base.CapabilityMismatchCost = *ov.CapabilityMismatchCost
	}
	if ov.ResourceDeficitCost != nil {
		base.ResourceDeficitCost = *ov.ResourceDeficitCost
	}
	if ov.ResourceStressExponent != nil {
		base.ResourceStressExponent = *ov.ResourceStressExponent
	}
	if ov.Role1BudgetMinutes != nil {
		base.Role1BudgetMinutes = *ov.Role1BudgetMinutes
	}
	if ov.Role2BudgetMinutes != nil {
		base.Role2BudgetMinutes = *ov.Role2BudgetMinutes
	}
	if ov.GroundSpeedKMH != nil {
		base.GroundSpeedKMH = *ov.GroundSpeedKMH
	}
	if ov.AirSpeedKMH != nil {
		base.AirSpeedKMH = *ov.AirSpeedKMH
	}
	return base
}
