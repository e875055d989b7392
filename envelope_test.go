package remix_test

import (
	"testing"

	"github.com/pipelined/remix"
	"github.com/stretchr/testify/assert"
)

func TestEnvelopeConstant(t *testing.T) {
	e := remix.NewEnvelope(remix.Linear, remix.Point{Time: 0, Value: 0.5})
	data := make([]remix.Sample, 4)
	n, err := e.WriteChunk(data, 10, 4)
	assert.NoError(t, err)
	assert.Equal(t, remix.Count(4), n)
	assert.Equal(t, []remix.Sample{0.5, 0.5, 0.5, 0.5}, data)
}

func TestEnvelopeLinearInterpolates(t *testing.T) {
	e := remix.NewEnvelope(remix.Linear,
		remix.Point{Time: 0, Value: 0},
		remix.Point{Time: 10, Value: 10},
	)
	data := make([]remix.Sample, 11)
	n, err := e.WriteChunk(data, 0, 11)
	assert.NoError(t, err)
	assert.Equal(t, remix.Count(11), n)
	for i, v := range data {
		assert.InDelta(t, float64(i), float64(v), 1e-4)
	}
}

func TestEnvelopeExtrapolatesLinearlyPastEnds(t *testing.T) {
	e := remix.NewEnvelope(remix.Linear,
		remix.Point{Time: 5, Value: 1},
		remix.Point{Time: 15, Value: 2},
	)
	// gradient is 0.1/sample on both sides; extrapolation continues the
	// line rather than holding the nearest point's value flat.
	assert.InDelta(t, 0.5, float64(e.At(0)), 1e-6)
	assert.InDelta(t, 10.5, float64(e.At(100)), 1e-6)
}

func TestEnvelopeSplineUnsupported(t *testing.T) {
	e := remix.NewEnvelope(remix.Spline,
		remix.Point{Time: 0, Value: 0},
		remix.Point{Time: 10, Value: 1},
	)
	data := make([]remix.Sample, 4)
	_, err := e.WriteChunk(data, 0, 4)
	assert.ErrorIs(t, err, remix.ErrInvalid)
}

func TestEnvelopeScaleAndShift(t *testing.T) {
	e := remix.NewEnvelope(remix.Linear,
		remix.Point{Time: 0, Value: 1},
		remix.Point{Time: 10, Value: 2},
	)
	e.Scale(2)
	e.Shift(5)
	points := e.Points()
	assert.Equal(t, remix.Count(5), points[0].Time)
	assert.Equal(t, remix.Sample(2), points[0].Value)
	assert.Equal(t, remix.Count(15), points[1].Time)
	assert.Equal(t, remix.Sample(4), points[1].Value)
}

func TestEnvelopeIntegralTrapezoidal(t *testing.T) {
	e := remix.NewEnvelope(remix.Linear,
		remix.Point{Time: 0, Value: 0},
		remix.Point{Time: 10, Value: 10},
	)
	area := e.Integral(0, 10)
	assert.InDelta(t, 50.0, area, 1e-6) // triangle: 0.5*base*height
}
