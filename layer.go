package remix

import "sort"

// Layer sequences a set of Sounds along a single timeline: gaps between
// sounds are transparent (whatever the layer received as input passes
// through to its output unchanged, falling back to silence only where
// there is no input), and an earlier sound that would overlap a later
// one is truncated at the later sound's start (the later sound always
// wins). TimeUnit is the unit Sounds' StartTime is
// scheduled in; changing it (SetTimeUnit) converts every sound's
// StartTime into the new unit using the ambient context's sample rate
// and tempo. Start times are resolved to samples under the context of
// each Process call, so a beat24s start time follows the current tempo;
// the layer's own cursor is kept in samples and is not re-anchored when
// the tempo changes.
type Layer struct {
	Track    *Track // weak back-reference, cleared on unlink
	TimeUnit Unit
	sounds   []*Sound
	cursor   Count
}

// NewLayer returns an empty layer scheduled in the given time unit.
func NewLayer(unit Unit) *Layer {
	return &Layer{TimeUnit: unit}
}

// AddSound appends sound to the layer and links its back-reference.
func (l *Layer) AddSound(s *Sound) {
	s.Layer = l
	l.sounds = append(l.sounds, s)
}

// RemoveSound removes sound from the layer, if present, clearing its
// back-reference.
func (l *Layer) RemoveSound(s *Sound) {
	for i, c := range l.sounds {
		if c == s {
			l.sounds = append(l.sounds[:i], l.sounds[i+1:]...)
			s.Layer = nil
			return
		}
	}
}

// Sounds returns the layer's sounds in insertion order. The returned
// slice must not be mutated by the caller.
func (l *Layer) Sounds() []*Sound { return l.sounds }

// SetTimeUnit converts every sound's StartTime from the layer's current
// unit into newUnit under ctx, then records newUnit as the layer's unit.
// A no-op if newUnit already matches.
func (l *Layer) SetTimeUnit(newUnit Unit, ctx *Context) {
	if newUnit == l.TimeUnit {
		return
	}
	for _, s := range l.sounds {
		s.StartTime = Convert(s.StartTime, newUnit, ctx.SampleRate, ctx.Tempo)
	}
	l.TimeUnit = newUnit
}

// scheduledSound is a sound's start and (overlap-truncated) length in
// absolute samples, computed fresh against a particular context.
type scheduledSound struct {
	sound  *Sound
	start  Count
	length Count
}

// schedule resolves every sound's StartTime to an absolute sample
// offset under ctx, sorts by start, and truncates any sound whose
// length would run into the next sound's start.
func (l *Layer) schedule(ctx *Context) []scheduledSound {
	sched := make([]scheduledSound, len(l.sounds))
	for i, s := range l.sounds {
		start := Convert(s.StartTime, UnitSamples, ctx.SampleRate, ctx.Tempo).SamplesValue()
		sched[i] = scheduledSound{sound: s, start: start, length: s.Length()}
	}
	sort.Slice(sched, func(i, j int) bool { return sched[i].start < sched[j].start })
	for i := 0; i+1 < len(sched); i++ {
		if sched[i].length == Infinite {
			continue
		}
		if sched[i].start+sched[i].length > sched[i+1].start {
			sched[i].length = sched[i+1].start - sched[i].start
		}
	}
	return sched
}

// Length returns the layer's total duration in samples under ctx: the
// furthest (start+duration) among its sounds, or Infinite if any sound
// is unbounded.
func (l *Layer) Length(ctx *Context) Count {
	var max Count
	for _, sc := range l.schedule(ctx) {
		if sc.length == Infinite {
			return Infinite
		}
		if end := sc.start + sc.length; end > max {
			max = end
		}
	}
	return max
}

// transparentFill advances out by count samples at the point where the
// layer has no sound to render: it copies in straight through to out
// (a layer is transparent where it has nothing of its own to say),
// falling back to silence only where in itself has nothing to offer
// (no input stream at all, or input that has itself run dry).
func transparentFill(ctx *Context, in, out *Stream, count Count) Count {
	if in == nil {
		return out.WriteZeros(ctx, count)
	}
	got := Copy(ctx, out, in, count)
	if got < count {
		got += out.WriteZeros(ctx, count-got)
	}
	return got
}

// Process renders up to count samples of the layer's timeline into out,
// starting at the layer's own cursor, and advances the cursor by the
// number of samples produced. Where the cursor falls in a gap between
// sounds the layer is transparent: in is passed straight through to
// out rather than silenced.
func (l *Layer) Process(ctx *Context, in *Stream, out *Stream, count Count) (Count, error) {
	sched := l.schedule(ctx)
	remaining := count
	var total Count

	for remaining > 0 {
		idx, next := l.locate(sched, l.cursor)
		if idx < 0 {
			var n Count
			if next == -1 {
				n = remaining
			} else {
				n = (next - l.cursor).Min(remaining)
			}
			got := transparentFill(ctx, in, out, n)
			total += got
			l.cursor += got
			remaining -= got
			if got < n {
				break
			}
			continue
		}

		sc := sched[idx]
		local := l.cursor - sc.start
		if sc.sound.offset != local {
			sc.sound.Seek(local)
		}
		span := remaining
		if sc.length != Infinite {
			span = (sc.length - local).Min(remaining)
		}
		if span <= 0 {
			l.cursor = sc.start + sc.length
			continue
		}
		got, err := sc.sound.Process(ctx, in, out, span)
		if err != nil && !Recoverable(err) {
			return total, err
		}
		if in != nil {
			// keep in aligned with out past the samples the sound covered.
			for _, name := range in.names {
				ch := in.channels[name]
				ch.Seek(ch.cursorOffset + got)
			}
		}
		total += got
		l.cursor += got
		remaining -= got
		if got < span {
			if got == 0 {
				// sound came up silent or exhausted mid-span: stay
				// transparent for the rest of its slot so the layer
				// keeps making progress.
				fill := transparentFill(ctx, in, out, span-got)
				total += fill
				l.cursor += fill
				remaining -= fill
			}
			break
		}
	}
	return total, nil
}

// locate returns the scheduled index whose span contains offset, or -1
// with next set to the nearest following sound's start (-1 if none).
func (l *Layer) locate(sched []scheduledSound, offset Count) (idx int, next Count) {
	next = -1
	for i, sc := range sched {
		end := sc.start + sc.length
		inBounds := sc.start <= offset && (sc.length == Infinite || offset < end)
		if inBounds {
			return i, -1
		}
		if sc.start > offset && (next == -1 || sc.start < next) {
			next = sc.start
		}
	}
	return -1, next
}

// Seek moves the layer's cursor to offset samples from its own start.
func (l *Layer) Seek(offset Count) Count {
	l.cursor = offset
	return offset
}

// Flush resets the layer's cursor and every contained sound.
func (l *Layer) Flush() {
	l.cursor = 0
	for _, s := range l.sounds {
		s.Flush()
	}
}
