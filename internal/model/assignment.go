package model

// Assignment pairs a provider with a shift type on a date. Only the scheduling
// service produces these.
type Assignment struct {
	Date       string `json:"date"`
	ShiftType  string `json:"shift_type"`
	Site       string `json:"site"`
	ProviderID string `json:"provider_id"`
}
