// Package demos implements the three motion demos as validated parameter stores
// over the closed-form kinematics.
package demos

import (
	"fmt"
	"math"

	"github.com/san-kum/motionlab/internal/sim"
)

type boundKind int

const (
	anyReal boundKind = iota
	positiveReal
	openRange
	flag
)

// bound is the accepted domain of one parameter. Every demo rejects out-of-domain
// values and keeps the previous one.
type bound struct {
	kind   boundKind
	lo, hi float64
}

func (b bound) check(model, name string, v float64) error {
	reject := func(reason string) error {
		return &sim.ParamError{Model: model, Name: name, Value: v, Reason: reason, Wrapped: sim.ErrInvalidParameter}
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return reject("must be a finite number")
	}
	switch b.kind {
	case positiveReal:
		if v <= 0 {
			return reject("must be greater than 0")
		}
	case openRange:
		if v <= b.lo || v >= b.hi {
			return reject(fmt.Sprintf("must be between %g and %g exclusive", b.lo, b.hi))
		}
	case flag:
		if v != 0 && v != 1 {
			return reject("must be 0 or 1")
		}
	}
	return nil
}

func unknown(model, name string, v float64) error {
	return &sim.ParamError{Model: model, Name: name, Value: v, Reason: "no such parameter", Wrapped: sim.ErrUnknownParameter}
}

func boolParam(on bool) float64 {
	if on {
		return 1
	}
	return 0
}
