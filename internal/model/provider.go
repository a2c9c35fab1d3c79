package model

// Provider is a clinician known to the scheduling service.
type Provider struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	FTE             float64  `json:"fte"`
	AccTarget       float64  `json:"acc_target"`
	CallTarget      int      `json:"call_target"`
	SitePreferences []string `json:"site_preferences"`
	Qualifications  []string `json:"qualifications"`
	SeniorityLevel  int      `json:"seniority_level"`
	PoliticsWeight  float64  `json:"politics_weight"`
}
