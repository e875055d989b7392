package remix_test

import (
	"testing"

	"github.com/pipelined/remix"
	"github.com/stretchr/testify/assert"
)

func TestConvertSamplesSeconds(t *testing.T) {
	t1 := remix.Samples(44100)
	t2 := remix.Convert(t1, remix.UnitSeconds, 44100, 120)
	assert.InDelta(t, 1.0, t2.SecondsValue(), 1e-9)

	back := remix.Convert(t2, remix.UnitSamples, 44100, 120)
	assert.Equal(t, remix.Count(44100), back.SamplesValue())
}

func TestConvertBeat24s(t *testing.T) {
	// at 120bpm, one beat is 0.5s = 24 beat24s units, so 1 beat24s unit
	// is 1/48th of a second.
	t1 := remix.Beat24s(24)
	t2 := remix.Convert(t1, remix.UnitSeconds, 44100, 120)
	assert.InDelta(t, 0.5, t2.SecondsValue(), 1e-9)
}

func TestConvertSameUnitIsIdentity(t *testing.T) {
	t1 := remix.Samples(7)
	t2 := remix.Convert(t1, remix.UnitSamples, 44100, 120)
	assert.Equal(t, t1, t2)
}

func TestTimeArithmeticPanicsOnMismatch(t *testing.T) {
	assert.Panics(t, func() {
		remix.Add(remix.Samples(1), remix.Seconds(1))
	})
}

func TestTimeOrdering(t *testing.T) {
	a, b := remix.Samples(1), remix.Samples(2)
	assert.True(t, remix.Lt(a, b))
	assert.True(t, remix.Le(a, a))
	assert.True(t, remix.Ge(b, a))
	assert.True(t, remix.Eq(remix.Max(a, b), b))
	assert.True(t, remix.Eq(remix.Min(a, b), a))
}
