package transferdecision

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kaelan-ross/transferdecision/pkg/model"
)

func loc(lat, lon float64) *model.Location {
	return &model.Location{Lat: lat, Lon: lon}
}

var _ = Describe("Engine.Decide", func() {
	var engine *Engine

	BeforeEach(func() {
		engine = NewEngine()
	})

	Context("a single capability-compliant facility within the survival window", func() {
		It("transfers to that facility with no alternatives", func() {
			patient := model.Patient{
				PatientID:                   "P1",
				Acuity:                      model.AcuityImmediate,
				Location:                    loc(43.6532, -79.3832),
				PredictedDeathTimestamp:     int64Ptr(7200),
				RequiredMedicalCapabilities: map[string]bool{"trauma_center": true, "cardiac": true},
			}
			facilities := []model.Facility{
				{
					FacilityID:   "F1",
					FacilityName: "General Hospital",
					Level:        1,
					Location:     loc(43.6591, -79.3877),
					Capabilities: map[string]bool{"trauma_center": true, "cardiac": true},
				},
			}

			decision := engine.Decide(context.Background(), patient, facilities, model.IncidentMCI, 0, model.DefaultOptions())

			Expect(decision.Action).To(Equal(model.ActionTransfer))
			Expect(decision.ReasoningCode).To(Equal(model.CodeTransferOptimal))
			Expect(decision.Destination).NotTo(BeNil())
			Expect(decision.Destination.FacilityID).To(Equal("F1"))
			Expect(decision.Destination.ETAMinutes).To(BeNumerically("~", 0.8, 0.3))
			Expect(decision.Alternatives).To(BeEmpty())
		})
	})

	Context("the survival window has already expired", func() {
		It("forfeits with PATIENT_DECEASED and no destination", func() {
			patient := model.Patient{
				PatientID:               "P1",
				Acuity:                  model.AcuityImmediate,
				Location:                loc(43.6532, -79.3832),
				PredictedDeathTimestamp: int64Ptr(-1),
			}
			facilities := []model.Facility{{FacilityID: "F1", Level: 1, Location: loc(43.6591, -79.3877)}}

			decision := engine.Decide(context.Background(), patient, facilities, model.IncidentMCI, 0, model.DefaultOptions())

			Expect(decision.Action).To(Equal(model.ActionForfeit))
			Expect(decision.ReasoningCode).To(Equal(model.CodePatientDeceased))
			Expect(decision.Destination).To(BeNil())
		})
	})

	// Deceased flag wins regardless of other inputs, even an ideal facility.
	Context("the patient is flagged deceased", func() {
		It("always forfeits with PATIENT_DECEASED, even with an ideal facility available", func() {
			patient := model.Patient{
				PatientID:               "P1",
				Acuity:                  model.AcuityImmediate,
				Location:                loc(0, 0),
				Deceased:                true,
				PredictedDeathTimestamp: int64Ptr(999999),
			}
			facilities := []model.Facility{{FacilityID: "F1", Level: 1, Location: loc(0, 0.01)}}

			decision := engine.Decide(context.Background(), patient, facilities, model.IncidentMCI, 0, model.DefaultOptions())

			Expect(decision.Action).To(Equal(model.ActionForfeit))
			Expect(decision.ReasoningCode).To(Equal(model.CodePatientDeceased))
		})
	})

	Context("the patient has no location", func() {
		It("forfeits with NO_LOCATION", func() {
			patient := model.Patient{
				PatientID:               "P1",
				PredictedDeathTimestamp: int64Ptr(7200),
			}
			facilities := []model.Facility{{FacilityID: "F1", Level: 1, Location: loc(0, 0.01)}}

			decision := engine.Decide(context.Background(), patient, facilities, model.IncidentMCI, 0, model.DefaultOptions())

			Expect(decision.Action).To(Equal(model.ActionForfeit))
			Expect(decision.ReasoningCode).To(Equal(model.CodeNoLocation))
		})
	})

	Context("no facilities are supplied", func() {
		It("forfeits with NO_FACILITIES_AVAILABLE", func() {
			patient := model.Patient{
				PatientID:               "P1",
				Location:                loc(0, 0),
				PredictedDeathTimestamp: int64Ptr(7200),
			}

			decision := engine.Decide(context.Background(), patient, nil, model.IncidentMCI, 0, model.DefaultOptions())

			Expect(decision.Action).To(Equal(model.ActionForfeit))
			Expect(decision.ReasoningCode).To(Equal(model.CodeNoFacilitiesAvailable))
		})
	})

	Context("a MEDEVAC incident with a complete, compliant chain", func() {
		It("transfers via the evacuation chain with NATO compliance flags set", func() {
			patient := model.Patient{
				PatientID:               "P1",
				Acuity:                  model.AcuityImmediate,
				Location:                loc(0, 0),
				PredictedDeathTimestamp: int64Ptr(180 * 60),
			}
			facilities := []model.Facility{
				{FacilityID: "F_L3", Level: 3, Location: loc(0, 0.10)},
				{FacilityID: "F_L2", Level: 2, Location: loc(0, 0.40)},
				{FacilityID: "F_L1", Level: 1, Location: loc(0, 1.00)},
			}

			decision := engine.Decide(context.Background(), patient, facilities, model.IncidentMEDEVAC, 0, model.DefaultOptions())

			Expect(decision.Action).To(Equal(model.ActionTransfer))
			Expect(decision.ReasoningCode).To(Equal(model.CodeEvacuationChainOptimal))
			Expect(decision.EvacuationChain).To(HaveLen(3))
			Expect(decision.NatoCompliance).NotTo(BeNil())
			Expect(decision.NatoCompliance.Role1Compliant).To(BeTrue())
			Expect(decision.NatoCompliance.Role2Compliant).To(BeTrue())
			Expect(decision.NatoCompliance.SurvivalCompliant).To(BeTrue())
		})
	})

	Context("a MEDEVAC incident where Role 2 cannot be reached in time", func() {
		It("forfeits with NO_VIABLE_CHAIN", func() {
			patient := model.Patient{
				PatientID:               "P1",
				Location:                loc(0, 0),
				PredictedDeathTimestamp: int64Ptr(180 * 60),
			}
			facilities := []model.Facility{
				{FacilityID: "F_L3", Level: 3, Location: loc(0, 0.10)},
				{FacilityID: "F_L2", Level: 2, Location: loc(0, 2.00)},
				{FacilityID: "F_L1", Level: 1, Location: loc(0, 1.00)},
			}

			decision := engine.Decide(context.Background(), patient, facilities, model.IncidentMEDEVAC, 0, model.DefaultOptions())

			Expect(decision.Action).To(Equal(model.ActionForfeit))
			Expect(decision.ReasoningCode).To(Equal(model.CodeNoViableChain))
		})
	})

	Context("invalid patient record", func() {
		It("forfeits with NO_FACILITIES_AVAILABLE rather than panicking", func() {
			patient := model.Patient{} // missing required patient_id
			facilities := []model.Facility{{FacilityID: "F1", Level: 1, Location: loc(0, 0.01)}}

			decision := engine.Decide(context.Background(), patient, facilities, model.IncidentMCI, 0, model.DefaultOptions())

			Expect(decision.Action).To(Equal(model.ActionForfeit))
			Expect(decision.ReasoningCode).To(Equal(model.CodeNoFacilitiesAvailable))
		})
	})

	Context("two calls with identical inputs", func() {
		It("produce byte-identical decisions (determinism)", func() {
			patient := model.Patient{
				PatientID:               "P1",
				Acuity:                  model.AcuityDelayed,
				Location:                loc(0, 0),
				PredictedDeathTimestamp: int64Ptr(7200),
			}
			facilities := []model.Facility{
				{FacilityID: "F1", Level: 1, Location: loc(0, 0.10)},
				{FacilityID: "F2", Level: 1, Location: loc(0, 0.20)},
			}

			d1 := engine.Decide(context.Background(), patient, facilities, model.IncidentMCI, 0, model.DefaultOptions())
			d2 := engine.Decide(context.Background(), patient, facilities, model.IncidentMCI, 0, model.DefaultOptions())

			Expect(d1).To(Equal(d2))
		})
	})
})

func int64Ptr(v int64) *int64 { return &v }
