package medevac

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kaelan-ross/transferdecision/internal/rules"
	"github.com/kaelan-ross/transferdecision/pkg/model"
)

func loc(lat, lon float64) *model.Location {
	return &model.Location{Lat: lat, Lon: lon}
}

func compliantFacilities() []model.Facility {
	caps := map[string]bool{"trauma_center": true}
	return []model.Facility{
		{FacilityID: "F_L3", FacilityName: "Forward Surgical Team", Level: 3, Location: loc(0, 0.10), Capabilities: caps},
		{FacilityID: "F_L2", FacilityName: "Combat Support Hospital", Level: 2, Location: loc(0, 0.40), Capabilities: caps},
		{FacilityID: "F_L1", FacilityName: "Definitive Care Center", Level: 1, Location: loc(0, 1.00), Capabilities: caps},
	}
}

var _ = Describe("Build", func() {
	var table rules.Table
	var patient model.Patient

	BeforeEach(func() {
		table = rules.Default()
		patient = model.Patient{PatientID: "P1", Acuity: model.AcuityImmediate, Location: loc(0, 0)}
	})

	Context("three facilities within every timeline budget", func() {
		It("builds a complete, correctly ordered chain with compliant timelines", func() {
			out := Build(patient, compliantFacilities(), table, model.TransportGround, 180)

			Expect(out.Complete).To(BeTrue())
			Expect(out.Chain).To(HaveLen(3))
			Expect(out.Chain[0].FacilityID).To(Equal("F_L3"))
			Expect(out.Chain[1].FacilityID).To(Equal("F_L2"))
			Expect(out.Chain[2].FacilityID).To(Equal("F_L1"))

			Expect(out.Chain[0].Level).To(Equal(3))
			Expect(out.Chain[1].Level).To(Equal(2))
			Expect(out.Chain[2].Level).To(Equal(1))

			Expect(out.Chain[0].ETAMinutes).To(BeNumerically("~", 13.4, 1))
			Expect(out.Chain[1].CumulativeTime).To(BeNumerically("~", 53.4, 1))
			Expect(out.TotalMinutes).To(BeNumerically("~", 133.4, 1))

			Expect(out.TotalMinutes).To(BeNumerically("<=", 180))
		})

		It("reports monotonically increasing cumulative time", func() {
			out := Build(patient, compliantFacilities(), table, model.TransportGround, 180)

			Expect(out.Complete).To(BeTrue())
			for i, hop := range out.Chain {
				if i == 0 {
					Expect(hop.CumulativeTime).To(BeNumerically("~", hop.ETAMinutes, 0.01))
					continue
				}
				Expect(hop.CumulativeTime).To(BeNumerically(">", out.Chain[i-1].CumulativeTime))
			}
		})

		It("never repeats a facility across hops", func() {
			out := Build(patient, compliantFacilities(), table, model.TransportGround, 180)

			seen := map[string]bool{}
			for _, hop := range out.Chain {
				Expect(seen[hop.FacilityID]).To(BeFalse(), "facility %s appeared twice", hop.FacilityID)
				seen[hop.FacilityID] = true
			}
		})
	})

	Context("the Role 2 facility is far outside its cumulative timeline budget", func() {
		It("fails chain construction at Role 2", func() {
			facilities := compliantFacilities()
			facilities[1].Location = loc(0, 2.00) // ~222km, ETA ~267min

			out := Build(patient, facilities, table, model.TransportGround, 180)

			Expect(out.Complete).To(BeFalse())
			Expect(out.FailedAtLevel).To(Equal(2))
		})
	})

	Context("no facility at a required level", func() {
		It("fails at the first unfillable tier", func() {
			facilities := []model.Facility{
				{FacilityID: "F_L2", Level: 2, Location: loc(0, 0.40)},
				{FacilityID: "F_L1", Level: 1, Location: loc(0, 1.00)},
			}

			out := Build(patient, facilities, table, model.TransportGround, 180)

			Expect(out.Complete).To(BeFalse())
			Expect(out.FailedAtLevel).To(Equal(3))
		})
	})

	Context("patient location is absent", func() {
		It("fails immediately at Role 1", func() {
			patient.Location = nil
			out := Build(patient, compliantFacilities(), table, model.TransportGround, 180)

			Expect(out.Complete).To(BeFalse())
			Expect(out.FailedAtLevel).To(Equal(3))
		})
	})
})
