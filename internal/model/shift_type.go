package model

// ShiftType is a schedulable unit of work tied to a site.
type ShiftType struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Site                  string  `json:"site"`
	Weekly                bool    `json:"weekly"`
	RequiresQualification *string `json:"requires_qualification"`
}
