package rocket

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestInterpolate(t *testing.T) {
	assert.Equal(t, InterpolationStep.Interpolate(0.5), float32(0.0))
	assert.Equal(t, InterpolationLinear.Interpolate(0.5), float32(0.5))
	assert.Equal(t, InterpolationSmooth.Interpolate(0.5), float32(0.5))
	assert.Equal(t, InterpolationRamp.Interpolate(0.5), float32(0.25))

	// endpoints
	assert.Equal(t, InterpolationLinear.Interpolate(0.0), float32(0.0))
	assert.Equal(t, InterpolationLinear.Interpolate(1.0), float32(1.0))
	assert.Equal(t, InterpolationSmooth.Interpolate(0.0), float32(0.0))
	assert.Equal(t, InterpolationSmooth.Interpolate(1.0), float32(1.0))
	assert.Equal(t, InterpolationRamp.Interpolate(1.0), float32(1.0))
	assert.Equal(t, InterpolationStep.Interpolate(1.0), float32(0.0))
}

func TestInterpolationFromCode(t *testing.T) {
	assert.Equal(t, InterpolationFromCode(0), InterpolationStep)
	assert.Equal(t, InterpolationFromCode(1), InterpolationLinear)
	assert.Equal(t, InterpolationFromCode(2), InterpolationSmooth)
	assert.Equal(t, InterpolationFromCode(3), InterpolationRamp)
	// out-of-range codes degrade to step
	assert.Equal(t, InterpolationFromCode(4), InterpolationStep)
	assert.Equal(t, InterpolationFromCode(99), InterpolationStep)
	assert.Equal(t, InterpolationFromCode(255), InterpolationStep)
}

func TestInterpolationNames(t *testing.T) {
	for _, interpolation := range []Interpolation{
		InterpolationStep,
		InterpolationLinear,
		InterpolationSmooth,
		InterpolationRamp,
	} {
		parsed, err := ParseInterpolation(interpolation.String())
		assert.Equal(t, err, nil)
		assert.Equal(t, parsed, interpolation)
	}

	_, err := ParseInterpolation("bezier")
	assert.NotEqual(t, err, nil)
}
