// Package model defines the public data contract of the transfer decision
// engine: the Patient and Facility records it consumes and the
// TransferDecision it produces. These types are the boundary with the
// upstream triage pipeline and any downstream consumer; everything else in
// this module is internal machinery.
package model

// Acuity is the SALT triage tag the cost model keys its acuity weight on.
type Acuity string

const (
	AcuityDead      Acuity = "Dead"
	AcuityExpectant Acuity = "Expectant"
	AcuityImmediate Acuity = "Immediate"
	AcuityDelayed   Acuity = "Delayed"
	AcuityMinimal   Acuity = "Minimal"
	AcuityUnknown   Acuity = ""
)

// legacyAcuityAliases maps deprecated tags onto the canonical SALT alphabet.
var legacyAcuityAliases = map[Acuity]Acuity{
	"Critical":  AcuityImmediate,
	"Severe":    AcuityDelayed,
	"Minor":     AcuityMinimal,
	"Deceased":  AcuityDead,
	"Undefined": AcuityDelayed,
}

// Canonical resolves legacy acuity tags to their SALT equivalent. Unknown
// legacy tags or an already-canonical tag pass through unchanged.
func (a Acuity) Canonical() Acuity {
	if canon, ok := legacyAcuityAliases[a]; ok {
		return canon
	}
	return a
}

// IncidentType selects the dispatch mode: MCI/PHE use single-destination
// optimization, MEDEVAC uses chain construction.
type IncidentType string

const (
	IncidentMCI     IncidentType = "MCI"
	IncidentPHE     IncidentType = "PHE"
	IncidentMEDEVAC IncidentType = "MEDEVAC"
)

// TransportMode selects the travel speed used by the ETA model.
type TransportMode string

const (
	TransportGround TransportMode = "Ground"
	TransportAir    TransportMode = "Air"
)

// Location is a WGS-84 coordinate pair in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Patient is the subset of the upstream triage record this engine consumes.
// Unknown/extra fields on the producer side are ignored by design.
type Patient struct {
	PatientID                   string          `json:"patient_id" validate:"required"`
	Acuity                      Acuity          `json:"acuity"`
	Location                    *Location       `json:"location,omitempty"`
	PredictedDeathTimestamp     *int64          `json:"predicted_death_timestamp,omitempty"`
	RequiredMedicalCapabilities map[string]bool `json:"required_medical_capabilities,omitempty"`
	RequiredMedicalResources    map[string]int  `json:"required_medical_resources,omitempty" validate:"omitempty,dive,gte=0"`
	Deceased                    bool            `json:"deceased"`
}

// CanonicalAcuity resolves legacy acuity tags; defaulting an unknown/empty
// tag's weight is the rules table's job (it applies its own "unknown -> 50"
// fallback), not this method's.
func (p Patient) CanonicalAcuity() Acuity {
	return p.Acuity.Canonical()
}

// Facility is a candidate destination for a transfer or evacuation hop.
type Facility struct {
	FacilityID       string          `json:"facility_id" validate:"required"`
	FacilityName     string          `json:"facility_name"`
	Level            int             `json:"level" validate:"required,oneof=1 2 3"`
	Location         *Location       `json:"location,omitempty"`
	Capabilities     map[string]bool `json:"capabilities,omitempty"`
	MedicalResources map[string]int  `json:"medical_resources,omitempty" validate:"omitempty,dive,gte=0"`
}

// ReasoningCode is the closed taxonomy of decision outcomes.
type ReasoningCode string

const (
	CodeEvacuationChainOptimal ReasoningCode = "EVACUATION_CHAIN_OPTIMAL"
	CodeTransferOptimal        ReasoningCode = "TRANSFER_OPTIMAL"
	CodePatientDeceased        ReasoningCode = "PATIENT_DECEASED"
	CodeDeadOnArrival          ReasoningCode = "DEAD_ON_ARRIVAL"
	CodeNoFacilitiesAvailable  ReasoningCode = "NO_FACILITIES_AVAILABLE"
	CodeNoViableChain          ReasoningCode = "NO_VIABLE_CHAIN"
	CodeNoLocation             ReasoningCode = "NO_LOCATION"
)

// Action is the top-level tag of a TransferDecision.
type Action string

const (
	ActionTransfer Action = "Transfer"
	ActionForfeit  Action = "Forfeit"
)

// SolverStatus reports the ILP/exhaustive-scan solver's outcome.
type SolverStatus string

const (
	SolverOptimal    SolverStatus = "OPTIMAL"
	SolverFeasible   SolverStatus = "FEASIBLE"
	SolverInfeasible SolverStatus = "INFEASIBLE"
	SolverUnknown    SolverStatus = "UNKNOWN"
)

// Destination is a single-hop transfer target with its alternatives.
type Destination struct {
	FacilityID   string  `json:"facility_id"`
	FacilityName string  `json:"facility_name"`
	ETAMinutes   float64 `json:"eta_minutes"`
}

// EvacuationHop is one leg of a MEDEVAC chain.
type EvacuationHop struct {
	Role               string  `json:"role"`
	Level              int     `json:"level"`
	FacilityID         string  `json:"facility_id"`
	FacilityName       string  `json:"facility_name"`
	ETAMinutes         float64 `json:"eta_minutes"`
	CumulativeTime     float64 `json:"cumulative_time"`
	TimelineCompliance bool    `json:"timeline_compliance"`
}

// NatoCompliance summarizes the three MEDEVAC timeline checks.
type NatoCompliance struct {
	Role1Compliant    bool `json:"role1_compliant"`
	Role2Compliant    bool `json:"role2_compliant"`
	SurvivalCompliant bool `json:"survival_compliant"`
}

// TransferDecision is the engine's single output type, tagged by Action.
// Forfeit decisions carry a zero Destination/EvacuationChain -- the
// reasoning code explains why.
type TransferDecision struct {
	Action        Action        `json:"action"`
	ReasoningCode ReasoningCode `json:"reasoning_code"`
	Reasoning     string        `json:"reasoning"`

	// MCI/PHE Transfer fields.
	Destination  *Destination  `json:"destination,omitempty"`
	Alternatives []Destination `json:"alternatives,omitempty"`
	SolverStatus SolverStatus  `json:"solver_status,omitempty"`

	// MEDEVAC Transfer fields.
	EvacuationChain       []EvacuationHop `json:"evacuation_chain,omitempty"`
	TotalTimeMinutes      float64         `json:"total_time_minutes,omitempty"`
	SurvivalWindowMinutes float64         `json:"survival_window_minutes,omitempty"`
	NatoCompliance        *NatoCompliance `json:"nato_compliance,omitempty"`
}

// Options carries per-call tuning that is not part of the input data model.
type Options struct {
	DeadlineMS    int64         `json:"deadline_ms,omitempty"`
	TransportMode TransportMode `json:"transport_mode,omitempty"`
}

// DefaultOptions returns the spec-mandated defaults: a 5 second solver
// deadline and ground transport.
func DefaultOptions() Options {
	return Options{DeadlineMS: 5000, TransportMode: TransportGround}
}
