package sim

import (
	"errors"
	"fmt"
)

// Domain errors for controller operations.
var (
	// ErrInvalidParameter indicates a rejected parameter value. The previous valid
	// value is kept.
	ErrInvalidParameter = errors.New("sim: invalid parameter")

	// ErrUnknownParameter indicates a parameter name the model does not define.
	ErrUnknownParameter = errors.New("sim: unknown parameter")

	// ErrUnknownModel indicates a demo name with no registered model.
	ErrUnknownModel = errors.New("sim: unknown model")

	// ErrInvalidTimestep indicates a non-positive or non-finite timestep.
	ErrInvalidTimestep = errors.New("sim: timestep must be positive and finite")
)

// ParamError wraps a parameter rejection with the offending name and value.
type ParamError struct {
	Model   string
	Name    string
	Value   float64
	Reason  string
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%g: %s", e.Model, e.Name, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
