package remix

import "sort"

// Shape selects how an Envelope interpolates between its points.
type Shape int

const (
	// Linear interpolates straight lines between consecutive points.
	Linear Shape = iota
	// Spline is declared for API compatibility with the reference
	// engine but is not implemented: constructing an envelope with
	// Spline shape succeeds, but WriteChunk reports ErrInvalid.
	Spline
)

// Point is one keyframe of an envelope: a time (in samples) and the
// control value the envelope carries at that time.
type Point struct {
	Time  Count
	Value Sample
}

// Envelope is a keyframe-driven control signal used to drive a Sound's
// gain, blend or rate curve. Points are always kept sorted by Time.
// Evaluation before the first point or after the last point
// extrapolates linearly along that endpoint's own segment's gradient
// (a two-point envelope's line simply keeps going); evaluation between
// points interpolates according to Shape.
type Envelope struct {
	points []Point
	shape  Shape
	write  func(e *Envelope, data []Sample, offset, count Count) Count
	cursor int // index of the point at or before the cursor, or -1
}

// NewEnvelope returns an envelope over points (copied and sorted), with
// the given interpolation shape. The method table is bound immediately
// to match the point count, per the rebind-on-topology-change pattern
// used throughout the engine.
func NewEnvelope(shape Shape, points ...Point) *Envelope {
	e := &Envelope{shape: shape, cursor: -1}
	e.points = append(e.points, points...)
	sort.Slice(e.points, func(i, j int) bool { return e.points[i].Time < e.points[j].Time })
	e.rebind()
	return e
}

// rebind selects e's write function by point count and shape: zero
// points writes silence, one point writes a constant, two or more
// writes the interpolated curve for e's shape. This is the envelope's
// optimiser -- the same mechanism a Track or Deck uses to specialise
// its own Process by child count.
func (e *Envelope) rebind() {
	switch {
	case len(e.points) == 0:
		e.write = writeEnvelopeSilence
	case len(e.points) == 1:
		e.write = writeEnvelopeConstant
	case e.shape == Spline:
		e.write = writeEnvelopeUnsupported
	default:
		e.write = writeEnvelopeLinear
	}
}

func writeEnvelopeSilence(e *Envelope, data []Sample, offset, count Count) Count {
	for i := Count(0); i < count; i++ {
		data[i] = 0
	}
	return count
}

func writeEnvelopeConstant(e *Envelope, data []Sample, offset, count Count) Count {
	v := e.points[0].Value
	for i := Count(0); i < count; i++ {
		data[i] = v
	}
	return count
}

func writeEnvelopeUnsupported(e *Envelope, data []Sample, offset, count Count) Count {
	return -1
}

// writeEnvelopeLinear writes count values starting at stream offset
// into data, walking the point list and switching segments as offset
// advances past a point. Before the first point it extrapolates
// backward along the first segment's gradient; after the last point it
// extrapolates forward along the last segment's gradient -- neither
// end is ever held flat.
func writeEnvelopeLinear(e *Envelope, data []Sample, offset, count Count) Count {
	written := Count(0)
	pos := offset
	idx := e.locate(pos)
	for written < count {
		var n Count
		switch {
		case idx < 0:
			// before the first point: extrapolate along the first
			// segment's line until the first point is reached.
			p1, p2 := e.points[0], e.points[1]
			limit := p1.Time
			n = (limit - pos).Min(count - written)
			if n <= 0 {
				n = 1
			}
			WriteLinear(data[written:written+n], p1.Time, p1.Value, p2.Time, p2.Value, pos, n)
		case idx >= len(e.points)-1:
			// at or past the last point: extrapolate along the last
			// segment's line for the rest of the write.
			n = count - written
			p1, p2 := e.points[len(e.points)-2], e.points[len(e.points)-1]
			WriteLinear(data[written:written+n], p1.Time, p1.Value, p2.Time, p2.Value, pos, n)
		default:
			p1, p2 := e.points[idx], e.points[idx+1]
			limit := p2.Time
			n = (limit - pos).Min(count - written)
			if n <= 0 {
				n = 1
			}
			WriteLinear(data[written:written+n], p1.Time, p1.Value, p2.Time, p2.Value, pos, n)
		}
		pos += n
		written += n
		idx = e.locate(pos)
	}
	return written
}

// locate returns the index of the last point with Time <= pos, or -1 if
// pos precedes every point.
func (e *Envelope) locate(pos Count) int {
	i := sort.Search(len(e.points), func(i int) bool { return e.points[i].Time > pos })
	return i - 1
}

// WriteChunk evaluates count samples of the envelope starting at
// stream-absolute offset into data. Returns -1 with ErrInvalid for a
// Spline-shaped envelope, which is unimplemented.
func (e *Envelope) WriteChunk(data []Sample, offset, count Count) (Count, error) {
	n := e.write(e, data, offset, count)
	if n == -1 {
		return -1, ErrInvalid
	}
	return n, nil
}

// Points returns the envelope's keyframes in ascending time order. The
// returned slice must not be mutated by the caller.
func (e *Envelope) Points() []Point { return e.points }

// Length returns the envelope's total duration: the last point's time,
// or 0 for an empty envelope.
func (e *Envelope) Length() Count {
	if len(e.points) == 0 {
		return 0
	}
	return e.points[len(e.points)-1].Time
}

// Scale multiplies every point's value by k, in place.
func (e *Envelope) Scale(k Sample) {
	for i := range e.points {
		e.points[i].Value *= k
	}
}

// Shift adds delta to every point's time, in place.
func (e *Envelope) Shift(delta Count) {
	for i := range e.points {
		e.points[i].Time += delta
	}
}

// Integral approximates the area under the envelope between t1 and t2
// (t1 <= t2) using the trapezoid rule over the envelope's own points,
// extrapolated linearly outside the point range exactly as WriteChunk
// does. Only meaningful for Linear shape.
func (e *Envelope) Integral(t1, t2 Count) float64 {
	if len(e.points) == 0 || t2 <= t1 {
		return 0
	}
	if len(e.points) == 1 {
		return float64(e.points[0].Value) * float64(t2-t1)
	}
	line := func(p1, p2 Point, t Count) float64 {
		grad := (float64(p2.Value) - float64(p1.Value)) / float64(p2.Time-p1.Time)
		return float64(p1.Value) + float64(t-p1.Time)*grad
	}
	eval := func(t Count) float64 {
		idx := e.locate(t)
		switch {
		case idx < 0:
			return line(e.points[0], e.points[1], t)
		case idx >= len(e.points)-1:
			return line(e.points[len(e.points)-2], e.points[len(e.points)-1], t)
		default:
			return line(e.points[idx], e.points[idx+1], t)
		}
	}
	// integrate trapezoidally, breaking at every point inside [t1,t2].
	xs := []Count{t1}
	for _, p := range e.points {
		if p.Time > t1 && p.Time < t2 {
			xs = append(xs, p.Time)
		}
	}
	xs = append(xs, t2)
	var sum float64
	for i := 0; i+1 < len(xs); i++ {
		a, b := xs[i], xs[i+1]
		sum += (eval(a) + eval(b)) / 2 * float64(b-a)
	}
	return sum
}

// Seek repositions the envelope's internal cursor to the index of the
// point at or before offset. WriteChunk and At are always given an
// explicit offset and do not read the cursor.
func (e *Envelope) Seek(offset Count) Count {
	e.cursor = e.locate(offset)
	return offset
}

// EnvelopeGainChunk returns a ChunkFunc that multiplies a chunk's region
// in place by e's value at each sample, with e's own time axis measured
// relative to base (so a sound's envelope is evaluated in the sound's
// own local time, not the stream's absolute index).
func EnvelopeGainChunk(e *Envelope, base Count) ChunkFunc {
	return func(c *Chunk, start, count Count, _ ChannelName) (Count, error) {
		offset, n, ok := chunkRegion(c, start, count)
		if !ok {
			return 0, nil
		}
		tmp := make([]Sample, n)
		if _, err := e.WriteChunk(tmp, start-base, n); err != nil {
			return -1, err
		}
		region := c.Data[offset : offset+n]
		for i := range region {
			region[i] *= tmp[i]
		}
		return n, nil
	}
}

// EnvelopeWriteChunk returns a ChunkFunc that overwrites a chunk's
// region with e's value at each sample, relative to base.
func EnvelopeWriteChunk(e *Envelope, base Count) ChunkFunc {
	return func(c *Chunk, start, count Count, _ ChannelName) (Count, error) {
		offset, n, ok := chunkRegion(c, start, count)
		if !ok {
			return 0, nil
		}
		if _, err := e.WriteChunk(c.Data[offset:offset+n], start-base, n); err != nil {
			return -1, err
		}
		return n, nil
	}
}

// At evaluates the envelope at a single stream offset.
func (e *Envelope) At(offset Count) Sample {
	buf := [1]Sample{}
	n, err := e.WriteChunk(buf[:], offset, 1)
	if err != nil || n != 1 {
		return 0
	}
	return buf[0]
}
