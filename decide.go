// Package transferdecision implements the Transfer Decision Engine:
// given one triaged patient and a set of candidate facilities, it produces
// a deterministic TransferDecision -- a single-destination transfer, a
// MEDEVAC evacuation chain, or an explicit forfeit.
//
// The Engine is pure and reentrant: it holds no cross-call mutable state
// beyond its own Rules Registry (read-only) and an optional metrics
// recorder, so a single Engine value is safe to call concurrently from
// multiple goroutines on disjoint inputs.
package transferdecision

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kaelan-ross/transferdecision/internal/geo"
	"github.com/kaelan-ross/transferdecision/internal/logging"
	"github.com/kaelan-ross/transferdecision/internal/medevac"
	"github.com/kaelan-ross/transferdecision/internal/metrics"
	"github.com/kaelan-ross/transferdecision/internal/optimizer"
	"github.com/kaelan-ross/transferdecision/internal/reasoning"
	"github.com/kaelan-ross/transferdecision/internal/rules"
	"github.com/kaelan-ross/transferdecision/internal/solver"
	"github.com/kaelan-ross/transferdecision/internal/survival"
	"github.com/kaelan-ross/transferdecision/pkg/model"
)

var validate = validator.New()

// Engine holds the engine's read-only configuration: the Rules Registry,
// a structured logger, and an optional metrics recorder. A nil Logger is
// replaced by a no-op logger at call time; a zero Rules table is used as
// is (no weights, speeds or budgets), so build with NewEngine or set Rules
// to rules.Default() explicitly.
type Engine struct {
	Rules   rules.Table
	Logger  *zap.Logger
	Metrics *metrics.Recorder
}

// NewEngine builds an Engine with the default Rules Registry, a no-op
// logger, and no metrics recorder. Use the Engine struct literal directly
// to override any of these.
func NewEngine() *Engine {
	return &Engine{
		Rules:  rules.Default(),
		Logger: zap.NewNop(),
	}
}

// Decide is the package-level convenience entry point, equivalent to
// NewEngine().Decide(...). Most callers that do not need a custom Rules
// Registry or logger should use this.
func Decide(ctx context.Context, patient model.Patient, facilities []model.Facility, incidentType model.IncidentType, currentTime int64, opts model.Options) model.TransferDecision {
	return NewEngine().Decide(ctx, patient, facilities, incidentType, currentTime, opts)
}

// Decide is the single public operation of the engine: it dispatches by
// incident type and assembles a TransferDecision.
func (e *Engine) Decide(ctx context.Context, patient model.Patient, facilities []model.Facility, incidentType model.IncidentType, currentTime int64, opts model.Options) (decision model.TransferDecision) {
	logger := e.logger()
	traceID := uuid.NewString()
	start := time.Now()

	span := trace.SpanFromContext(ctx)
	defer func() {
		// Internal panics (malformed rules tables, solver invariant
		// violations) never escape decide(): they become a Forfeit instead
		// of an out-of-band error or a silent fallback.
		if r := recover(); r != nil {
			logger.Error("internal panic recovered",
				logging.NewFields().Component("transferdecision").TraceID(traceID).Custom("panic", fmt.Sprintf("%v", r)).Zap()...,
			)
			decision = forfeit(model.CodeNoFacilitiesAvailable, fmt.Sprintf("internal error: %v", r))
		}

		span.SetAttributes(
			attribute.String("incident_type", string(incidentType)),
			attribute.String("reasoning_code", string(decision.ReasoningCode)),
			attribute.String("solver_status", string(decision.SolverStatus)),
		)
		elapsed := time.Since(start)
		span.AddEvent("transferdecision.decide", trace.WithAttributes(
			attribute.Float64("duration_ms", float64(elapsed)/float64(time.Millisecond)),
		))
		e.recordMetrics(decision, elapsed)
		logger.Info("decision complete",
			logging.NewFields().
				Component("transferdecision").
				Operation("decide").
				TraceID(traceID).
				Custom("action", string(decision.Action)).
				Custom("incident_type", string(incidentType)).
				Custom("code", string(decision.ReasoningCode)).
				Duration(elapsed).
				Zap()...,
		)
	}()

	if err := validate.Struct(patient); err != nil {
		return forfeit(model.CodeNoFacilitiesAvailable, fmt.Sprintf("invalid patient record: %v", err))
	}
	for _, f := range facilities {
		if err := validate.Struct(f); err != nil {
			return forfeit(model.CodeNoFacilitiesAvailable, fmt.Sprintf("invalid facility record %q: %v", f.FacilityID, err))
		}
	}

	windowMinutes := survival.WindowMinutes(patient, currentTime)
	switch survival.Classify(patient, windowMinutes) {
	case survival.ClassificationDeceased:
		return forfeit(model.CodePatientDeceased, reasoning.PatientDeceased(patient.Deceased, patient.CanonicalAcuity(), windowMinutes))
	case survival.ClassificationNoLocation:
		return forfeit(model.CodeNoLocation, reasoning.NoLocation())
	}

	if len(facilities) == 0 {
		return forfeit(model.CodeNoFacilitiesAvailable, reasoning.NoFacilitiesAvailable(""))
	}

	deadline := opts.DeadlineMS
	if deadline <= 0 {
		deadline = model.DefaultOptions().DeadlineMS
	}
	solveCtx, cancel := solver.WithDeadline(ctx, deadline)
	defer cancel()

	switch incidentType {
	case model.IncidentMEDEVAC:
		return e.decideMedevac(patient, facilities, opts, windowMinutes)
	default:
		return e.decideSingleDestination(solveCtx, patient, facilities, opts, windowMinutes)
	}
}

func (e *Engine) decideSingleDestination(ctx context.Context, patient model.Patient, facilities []model.Facility, opts model.Options, windowMinutes float64) model.TransferDecision {
	out := optimizer.Run(ctx, patient, facilities, e.Rules, opts.TransportMode)
	if !out.Found {
		return forfeit(model.CodeNoFacilitiesAvailable, reasoning.NoFacilitiesAvailable("no facility could be assigned"))
	}
	if out.Chosen.ETAMinutes > windowMinutes {
		return forfeit(model.CodeDeadOnArrival, reasoning.DeadOnArrival(out.Chosen.ETAMinutes, windowMinutes))
	}

	eta := geo.RoundMinutes(out.Chosen.ETAMinutes)
	return model.TransferDecision{
		Action:        model.ActionTransfer,
		ReasoningCode: model.CodeTransferOptimal,
		Reasoning:     reasoning.TransferOptimal(out.ChosenName, eta),
		Destination: &model.Destination{
			FacilityID:   out.Chosen.FacilityID,
			FacilityName: out.ChosenName,
			ETAMinutes:   eta,
		},
		Alternatives: out.Alternatives,
		SolverStatus: out.Status,
	}
}

// decideMedevac builds the chain synchronously; unlike the MCI/PHE
// optimizer it has no ILP solve to bound with a deadline, so it takes no
// context. The chain walk is a greedy per-level scan, O(levels * facilities).
func (e *Engine) decideMedevac(patient model.Patient, facilities []model.Facility, opts model.Options, windowMinutes float64) model.TransferDecision {
	out := medevac.Build(patient, facilities, e.Rules, opts.TransportMode, windowMinutes)
	if !out.Complete {
		return forfeit(model.CodeNoViableChain, reasoning.NoViableChain(rules.RoleName(out.FailedAtLevel)))
	}
	if out.TotalMinutes > windowMinutes {
		return forfeit(model.CodeDeadOnArrival, reasoning.DeadOnArrival(out.TotalMinutes, windowMinutes))
	}

	compliance := natoCompliance(out.Chain, out.TotalMinutes, windowMinutes, e.Rules)
	return model.TransferDecision{
		Action:                model.ActionTransfer,
		ReasoningCode:         model.CodeEvacuationChainOptimal,
		Reasoning:             reasoning.EvacuationChainOptimal(len(out.Chain), out.TotalMinutes, windowMinutes),
		EvacuationChain:       out.Chain,
		TotalTimeMinutes:      geo.RoundMinutes(out.TotalMinutes),
		SurvivalWindowMinutes: windowMinutes,
		NatoCompliance:        &compliance,
	}
}

func natoCompliance(chain []model.EvacuationHop, totalMinutes, windowMinutes float64, table rules.Table) model.NatoCompliance {
	var role1, role2 bool
	for _, hop := range chain {
		switch hop.Level {
		case 3:
			role1 = hop.CumulativeTime <= table.Role1BudgetMinutes
		case 2:
			role2 = hop.CumulativeTime <= table.Role2BudgetMinutes
		}
	}
	return model.NatoCompliance{
		Role1Compliant:    role1,
		Role2Compliant:    role2,
		SurvivalCompliant: totalMinutes <= windowMinutes,
	}
}

func forfeit(code model.ReasoningCode, reason string) model.TransferDecision {
	return model.TransferDecision{
		Action:        model.ActionForfeit,
		ReasoningCode: code,
		Reasoning:     reason,
	}
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.NewNop()
}

func (e *Engine) recordMetrics(decision model.TransferDecision, elapsed time.Duration) {
	if e.Metrics == nil {
		return
	}
	e.Metrics.ObserveDecision(string(decision.ReasoningCode))
	e.Metrics.ObserveSolverStatus(string(decision.SolverStatus))
	e.Metrics.ObserveSolveSeconds(elapsed.Seconds())
}
