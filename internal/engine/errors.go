package engine

import "fmt"

// ValidationError reports malformed input to Match. The batch is rejected
// before any scoring work starts.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Message)
}
