package remix

import "fmt"

// Unit tags which kind of value a Time carries.
type Unit int

const (
	// UnitInvalid marks a Time with no meaningful value.
	UnitInvalid Unit = iota
	// UnitSamples is an integer sample count.
	UnitSamples
	// UnitSeconds is a floating point second count.
	UnitSeconds
	// UnitBeat24s is an integer count of 24ths of a beat, the engine's
	// native musical time unit.
	UnitBeat24s
)

func (u Unit) String() string {
	switch u {
	case UnitSamples:
		return "samples"
	case UnitSeconds:
		return "seconds"
	case UnitBeat24s:
		return "beat24s"
	default:
		return "invalid"
	}
}

// Time is a tagged value carrying a sample count, a second count or a
// beat24s count. Arithmetic and comparison are only defined between two
// Times of the same Unit; converting between units needs a Context
// (sample rate for samples<->seconds, tempo for beat24s<->{samples,seconds}).
type Time struct {
	unit    Unit
	samples Count
	seconds float64
	beat24s int64
}

// Samples constructs a Time in the samples unit.
func Samples(n Count) Time { return Time{unit: UnitSamples, samples: n} }

// Seconds constructs a Time in the seconds unit.
func Seconds(s float64) Time { return Time{unit: UnitSeconds, seconds: s} }

// Beat24s constructs a Time in the beat24s unit (24ths of a beat).
func Beat24s(b int64) Time { return Time{unit: UnitBeat24s, beat24s: b} }

// Invalid returns the invalid sentinel Time. The unit argument is not
// recorded: every invalid Time carries UnitInvalid, whichever unit was
// asked for.
func Invalid(unit Unit) Time { return Time{unit: UnitInvalid} }

// Zero returns the zero Time for the given unit.
func Zero(unit Unit) Time {
	switch unit {
	case UnitSamples:
		return Samples(0)
	case UnitSeconds:
		return Seconds(0)
	case UnitBeat24s:
		return Beat24s(0)
	default:
		return Invalid(unit)
	}
}

// Unit reports which unit t carries.
func (t Time) Unit() Unit { return t.unit }

// IsInvalid reports whether t is the invalid sentinel.
func (t Time) IsInvalid() bool { return t.unit == UnitInvalid }

// SamplesValue returns the raw samples value; t must carry UnitSamples.
func (t Time) SamplesValue() Count { return t.samples }

// SecondsValue returns the raw seconds value; t must carry UnitSeconds.
func (t Time) SecondsValue() float64 { return t.seconds }

// Beat24sValue returns the raw beat24s value; t must carry UnitBeat24s.
func (t Time) Beat24sValue() int64 { return t.beat24s }

func mustSameUnit(op string, a, b Time) {
	if a.unit != b.unit {
		panic(fmt.Sprintf("remix: %s: mismatched time units %s and %s", op, a.unit, b.unit))
	}
}

// Add returns a+b. Both must carry the same unit.
func Add(a, b Time) Time {
	mustSameUnit("add", a, b)
	switch a.unit {
	case UnitSamples:
		return Samples(a.samples + b.samples)
	case UnitSeconds:
		return Seconds(a.seconds + b.seconds)
	case UnitBeat24s:
		return Beat24s(a.beat24s + b.beat24s)
	default:
		return Invalid(a.unit)
	}
}

// Sub returns a-b. Both must carry the same unit.
func Sub(a, b Time) Time {
	mustSameUnit("sub", a, b)
	switch a.unit {
	case UnitSamples:
		return Samples(a.samples - b.samples)
	case UnitSeconds:
		return Seconds(a.seconds - b.seconds)
	case UnitBeat24s:
		return Beat24s(a.beat24s - b.beat24s)
	default:
		return Invalid(a.unit)
	}
}

// Min returns the smaller of a, b. Both must carry the same unit.
func Min(a, b Time) Time {
	if Gt(a, b) {
		return b
	}
	return a
}

// Max returns the larger of a, b. Both must carry the same unit.
func Max(a, b Time) Time {
	if Gt(a, b) {
		return a
	}
	return b
}

// Eq reports a == b.
func Eq(a, b Time) bool {
	mustSameUnit("eq", a, b)
	switch a.unit {
	case UnitSamples:
		return a.samples == b.samples
	case UnitSeconds:
		return a.seconds == b.seconds
	case UnitBeat24s:
		return a.beat24s == b.beat24s
	default:
		return true
	}
}

// Gt reports a > b.
func Gt(a, b Time) bool {
	mustSameUnit("gt", a, b)
	switch a.unit {
	case UnitSamples:
		return a.samples > b.samples
	case UnitSeconds:
		return a.seconds > b.seconds
	case UnitBeat24s:
		return a.beat24s > b.beat24s
	default:
		return false
	}
}

// Lt reports a < b.
func Lt(a, b Time) bool { return Gt(b, a) }

// Ge reports a >= b.
func Ge(a, b Time) bool { return !Lt(a, b) }

// Le reports a <= b.
func Le(a, b Time) bool { return !Gt(a, b) }

// Convert converts t from its own unit to newUnit, using sampleRate
// (samples<->seconds) and tempo in bpm (beat24s<->{samples,seconds}).
// Converting to the same unit returns t unchanged. Converting from
// UnitInvalid returns Invalid(newUnit).
func Convert(t Time, newUnit Unit, sampleRate float64, tempo float64) Time {
	if t.unit == newUnit {
		return t
	}
	switch t.unit {
	case UnitSamples:
		switch newUnit {
		case UnitSeconds:
			return Seconds(float64(t.samples) / sampleRate)
		case UnitBeat24s:
			return Beat24s(int64(float64(t.samples) * tempo * 24.0 / (sampleRate * 60.0)))
		}
	case UnitSeconds:
		switch newUnit {
		case UnitSamples:
			return Samples(Count(t.seconds * sampleRate))
		case UnitBeat24s:
			return Beat24s(int64(t.seconds * tempo * 24.0 / 60.0))
		}
	case UnitBeat24s:
		switch newUnit {
		case UnitSamples:
			return Samples(Count(float64(t.beat24s) * sampleRate * 60.0 / (tempo * 24.0)))
		case UnitSeconds:
			return Seconds(float64(t.beat24s) * 60.0 / (tempo * 24.0))
		}
	}
	return Invalid(newUnit)
}
