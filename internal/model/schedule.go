package model

// DateRange is the inclusive generation window. Dates are ISO strings and are
// passed to the service verbatim.
type DateRange struct {
	Start string `json:"start_date" form:"start_date"`
	End   string `json:"end_date" form:"end_date"`
}

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// NewGenerateRequest builds the request body for a range.
func NewGenerateRequest(r DateRange) GenerateRequest {
	return GenerateRequest{StartDate: r.Start, EndDate: r.End}
}

// GenerateResult is the successful response of POST /generate.
type GenerateResult struct {
	Conflicts []string `json:"conflicts"`
}
