package optimizer

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kaelan-ross/transferdecision/internal/rules"
	"github.com/kaelan-ross/transferdecision/pkg/model"
)

func loc(lat, lon float64) *model.Location {
	return &model.Location{Lat: lat, Lon: lon}
}

var _ = Describe("Run", func() {
	var table rules.Table

	BeforeEach(func() {
		table = rules.Default()
	})

	Context("a single feasible facility", func() {
		It("assigns the patient with no alternatives", func() {
			patient := model.Patient{
				PatientID: "P1",
				Acuity:    model.AcuityImmediate,
				Location:  loc(43.6532, -79.3832),
				RequiredMedicalCapabilities: map[string]bool{
					"trauma_center": true, "cardiac": true,
				},
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

			out := Run(context.Background(), patient, facilities, table, model.TransportGround)

			Expect(out.Found).To(BeTrue())
			Expect(out.Chosen.FacilityID).To(Equal("F1"))
			Expect(out.Alternatives).To(BeEmpty())
			Expect(out.Status).To(Equal(model.SolverOptimal))
			Expect(out.Chosen.ETAMinutes).To(BeNumerically("~", 0.8, 0.3))
		})
	})

	Context("stewardship penalty between two equal-ETA facilities", func() {
		It("prefers the facility without unneeded scarce capabilities", func() {
			patient := model.Patient{
				PatientID: "P1",
				Acuity:    model.AcuityDelayed,
				Location:  loc(0, 0),
				RequiredMedicalCapabilities: map[string]bool{
					"trauma_center": true,
				},
			}
			facilities := []model.Facility{
				{
					FacilityID:   "F_A",
					FacilityName: "Plain Trauma Center",
					Level:        1,
					Location:     loc(0, 0.10),
					Capabilities: map[string]bool{"trauma_center": true},
				},
				{
					FacilityID:   "F_B",
					FacilityName: "Tertiary Referral Center",
					Level:        1,
					Location:     loc(0, 0.10),
					Capabilities: map[string]bool{
						"trauma_center": true, "burn": true, "pediatric": true, "neurosurgical": true,
					},
				},
			}

			out := Run(context.Background(), patient, facilities, table, model.TransportGround)

			Expect(out.Found).To(BeTrue())
			Expect(out.Chosen.FacilityID).To(Equal("F_A"))
			Expect(out.Alternatives).To(HaveLen(1))
			Expect(out.Alternatives[0].FacilityID).To(Equal("F_B"))
		})
	})

	Context("four eligible facilities with distinct costs", func() {
		It("enumerates up to 3 alternatives ordered by ascending cost, excluding the chosen one", func() {
			patient := model.Patient{PatientID: "P1", Acuity: model.AcuityDelayed, Location: loc(0, 0)}
			facilities := []model.Facility{
				{FacilityID: "F1", Level: 1, Location: loc(0, 0.10)},
				{FacilityID: "F2", Level: 1, Location: loc(0, 0.20)},
				{FacilityID: "F3", Level: 1, Location: loc(0, 0.30)},
				{FacilityID: "F4", Level: 1, Location: loc(0, 0.40)},
			}

			out := Run(context.Background(), patient, facilities, table, model.TransportGround)

			Expect(out.Found).To(BeTrue())
			Expect(out.Chosen.FacilityID).To(Equal("F1"))
			Expect(out.Alternatives).To(HaveLen(3))
			Expect(out.Alternatives[0].FacilityID).To(Equal("F2"))
			Expect(out.Alternatives[1].FacilityID).To(Equal("F3"))
			Expect(out.Alternatives[2].FacilityID).To(Equal("F4"))
			for i := 1; i < len(out.Alternatives); i++ {
				Expect(out.Alternatives[i].ETAMinutes).To(BeNumerically(">=", out.Alternatives[i-1].ETAMinutes))
			}
		})
	})

	Context("no facility has a usable location", func() {
		It("reports not found", func() {
			patient := model.Patient{PatientID: "P1"}
			facilities := []model.Facility{{FacilityID: "F1", Level: 1}}

			out := Run(context.Background(), patient, facilities, table, model.TransportGround)

			Expect(out.Found).To(BeFalse())
		})
	})
})
