package upstream

import "fmt"

// StatusError is a non-2xx answer from the backend API. The checkout retry
// policy keys off Code: 5xx is retryable, 4xx is not.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api error %d", e.Code)
	}
	return fmt.Sprintf("api error %d: %s", e.Code, e.Body)
}

func (e *StatusError) Retryable() bool { return e.Code >= 500 }
