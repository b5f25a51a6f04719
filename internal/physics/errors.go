package physics

import "fmt"

// InvalidParameterError reports a collision input that violates the engine's
// preconditions. The engine rejects bad inputs rather than clamping them.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("physics: invalid %s (%g): %s", e.Field, e.Value, e.Reason)
}
