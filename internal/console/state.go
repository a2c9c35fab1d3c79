package console

import "schedule-console/internal/model"

// View is everything the panel renders. Lists are replaced wholesale by the
// workflow that owns them and never merged.
type View struct {
	Providers   []model.Provider   `json:"providers"`
	Assignments []model.Assignment `json:"assignments"`
	Conflicts   []string           `json:"conflicts"`
	Range       model.DateRange    `json:"range"`
	Loading     bool               `json:"loading"`
	Error       string             `json:"error"`
}

// NewView returns the initial, empty view for a default range.
func NewView(r model.DateRange) View {
	return View{
		Providers:   []model.Provider{},
		Assignments: []model.Assignment{},
		Conflicts:   []string{},
		Range:       r,
	}
}

// clone copies the view so callers can read it without holding the lock.
func (v View) clone() View {
	out := v
	out.Providers = make([]model.Provider, len(v.Providers))
	for i, p := range v.Providers {
		p.SitePreferences = cloneStrings(p.SitePreferences)
		p.Qualifications = cloneStrings(p.Qualifications)
		out.Providers[i] = p
	}
	out.Assignments = append(make([]model.Assignment, 0, len(v.Assignments)), v.Assignments...)
	out.Conflicts = append(make([]string, 0, len(v.Conflicts)), v.Conflicts...)
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

// transition is a pure step applied to the view under the console lock.
type transition func(View) View

func clearError(v View) View {
	v.Error = ""
	return v
}

func beginGenerate(r model.DateRange) transition {
	return func(v View) View {
		v.Loading = true
		v.Error = ""
		v.Conflicts = []string{}
		v.Range = r
		return v
	}
}

func endGenerate(v View) View {
	v.Loading = false
	return v
}

func withRange(r model.DateRange) transition {
	return func(v View) View {
		v.Range = r
		return v
	}
}

func withConflicts(conflicts []string) transition {
	return func(v View) View {
		v.Conflicts = append(make([]string, 0, len(conflicts)), conflicts...)
		return v
	}
}

func withProviders(providers []model.Provider) transition {
	return func(v View) View {
		v.Providers = append(make([]model.Provider, 0, len(providers)), providers...)
		return v
	}
}

func withAssignments(assignments []model.Assignment) transition {
	return func(v View) View {
		v.Assignments = append(make([]model.Assignment, 0, len(assignments)), assignments...)
		return v
	}
}

func withError(msg string) transition {
	return func(v View) View {
		v.Error = msg
		return v
	}
}
