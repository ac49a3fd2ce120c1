package rocket

import (
	"fmt"
)

// Interpolation selects the shape of the transition from a key to the
// next key on a track.
type Interpolation uint8

const (
	InterpolationStep Interpolation = iota
	InterpolationLinear
	InterpolationSmooth
	InterpolationRamp
)

// InterpolationFromCode maps a raw wire code to an Interpolation.
// Codes outside the known set degrade to step so that a newer tracker
// does not break an older client.
func InterpolationFromCode(code uint8) Interpolation {
	switch code {
	case 1:
		return InterpolationLinear
	case 2:
		return InterpolationSmooth
	case 3:
		return InterpolationRamp
	default:
		return InterpolationStep
	}
}

// ParseInterpolation is the inverse of String.
func ParseInterpolation(name string) (Interpolation, error) {
	switch name {
	case "step":
		return InterpolationStep, nil
	case "linear":
		return InterpolationLinear, nil
	case "smooth":
		return InterpolationSmooth, nil
	case "ramp":
		return InterpolationRamp, nil
	}
	return InterpolationStep, fmt.Errorf("unknown interpolation %q", name)
}

func (self Interpolation) String() string {
	switch self {
	case InterpolationLinear:
		return "linear"
	case InterpolationSmooth:
		return "smooth"
	case InterpolationRamp:
		return "ramp"
	default:
		return "step"
	}
}

// Interpolate maps a normalized phase t into a blend factor.
// t outside [0, 1] is accepted; extrapolation is the caller's business.
func (self Interpolation) Interpolate(t float32) float32 {
	switch self {
	case InterpolationLinear:
		return t
	case InterpolationSmooth:
		return t * t * (3.0 - 2.0*t)
	case InterpolationRamp:
		return t * t
	default:
		// step holds the lower key's value over the whole segment
		return 0.0
	}
}
