// Package feasibility implements the two boolean predicates that describe
// whether a facility can actually receive a patient: capability match and
// resource sufficiency. Nothing here filters a facility out of the
// optimizer or the MEDEVAC builder: the cost model calls the detail
// variants (MissingCapabilities, HasResourceDeficit) to add soft
// penalties, and both callers prefer compliant facilities only through
// that cost.
package feasibility

import "github.com/kaelan-ross/transferdecision/pkg/model"

// CapabilitiesMatch reports whether facility has every capability the
// patient flags as required (true).
func CapabilitiesMatch(patient model.Patient, facility model.Facility) bool {
	for capability, required := range patient.RequiredMedicalCapabilities {
		if !required {
			continue
		}
		if !facility.Capabilities[capability] {
			return false
		}
	}
	return true
}

// MissingCapabilities returns the required-but-absent capability keys.
func MissingCapabilities(patient model.Patient, facility model.Facility) []string {
	var missing []string
	for capability, required := range patient.RequiredMedicalCapabilities {
		if required && !facility.Capabilities[capability] {
			missing = append(missing, capability)
		}
	}
	return missing
}

// ResourcesSufficient reports whether facility has at least the required
// count of every resource the patient needs (count > 0).
func ResourcesSufficient(patient model.Patient, facility model.Facility) bool {
	for resource, required := range patient.RequiredMedicalResources {
		if required <= 0 {
			continue
		}
		if facility.MedicalResources[resource] < required {
			return false
		}
	}
	return true
}

// HasResourceDeficit reports whether any required resource exceeds the
// facility's available count.
func HasResourceDeficit(patient model.Patient, facility model.Facility) bool {
	for resource, required := range patient.RequiredMedicalResources {
		if required > 0 && facility.MedicalResources[resource] < required {
			return true
		}
	}
	return false
}
