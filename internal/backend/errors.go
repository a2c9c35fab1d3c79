package backend

import "fmt"

// StatusError reports a non-2xx response from the scheduling service.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

// Error returns the raw response text when the service sent one, otherwise a
// message built from the status code.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("%s failed with %d", e.Op, e.StatusCode)
}
