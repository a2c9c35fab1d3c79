package console

import "schedule-console/internal/model"

// DemoDataset is the fixed set of records the seed workflow creates.
type DemoDataset struct {
	Providers  []model.Provider  `json:"providers"`
	ShiftTypes []model.ShiftType `json:"shift_types"`
}

// Demo returns a fresh copy of the demo dataset, in creation order.
func Demo() DemoDataset {
	orQualification := "OR"
	return DemoDataset{
		Providers: []model.Provider{
			{
				ID:              "p1",
				Name:            "Dr. Alpha",
				FTE:             1.0,
				AccTarget:       180,
				CallTarget:      6,
				SitePreferences: []string{"UH"},
				Qualifications:  []string{"OR"},
				SeniorityLevel:  5,
				PoliticsWeight:  0.2,
			},
			{
				ID:              "p2",
				Name:            "Dr. Beta",
				FTE:             0.8,
				AccTarget:       160,
				CallTarget:      5,
				SitePreferences: []string{"UH"},
				Qualifications:  []string{"OR"},
				SeniorityLevel:  3,
				PoliticsWeight:  0.1,
			},
		},
		ShiftTypes: []model.ShiftType{
			{
				ID:                    "reg-uh",
				Name:                  "REG",
				Site:                  "UH",
				Weekly:                false,
				RequiresQualification: &orQualification,
			},
		},
	}
}
