package remix

// Track chains a set of Layers: the track's own input feeds the first
// layer, and every subsequent layer takes the previous layer's output
// as its own input, a two-buffer ping-pong (the layer just rendered
// becomes the next layer's in, a freshly zeroed scratch stream becomes
// the next out) so the engine never holds more than two
// count-sized buffers live at once regardless of layer count. This
// is why a layer's transparency (passing its input through where it
// has no sound of its own to contribute) matters: a gap in an earlier
// layer lets whatever came before it continue downstream unchanged.
// Track.Process is rebound by layer count exactly the way
// Envelope.rebind specialises by point count: zero layers passes the
// track's input straight through, one layer needs no ping-pong buffer
// at all, two or more share the general chained path.
//
// Track gain is deliberately not applied here: a Deck applies each of
// its tracks' gain once, after the track has produced its output,
// because that is where the reference engine applies it.
type Track struct {
	Deck    *Deck // weak back-reference, cleared on unlink
	Gain    Sample
	layers  []*Layer
	process func(t *Track, ctx *Context, in *Stream, out *Stream, count Count) (Count, error)
}

// NewTrack returns an empty track at unity gain.
func NewTrack() *Track {
	t := &Track{Gain: 1}
	t.rebind()
	return t
}

// AddLayer appends layer to the track and rebinds its process function.
func (t *Track) AddLayer(l *Layer) {
	l.Track = t
	t.layers = append(t.layers, l)
	t.rebind()
}

// RemoveLayer removes layer from the track, if present, and rebinds.
func (t *Track) RemoveLayer(l *Layer) {
	for i, c := range t.layers {
		if c == l {
			t.layers = append(t.layers[:i], t.layers[i+1:]...)
			l.Track = nil
			t.rebind()
			return
		}
	}
}

// Layers returns the track's layers in insertion order. The returned
// slice must not be mutated by the caller.
func (t *Track) Layers() []*Layer { return t.layers }

// rebind selects t's process function by layer count.
func (t *Track) rebind() {
	switch len(t.layers) {
	case 0:
		t.process = trackProcessEmpty
	case 1:
		t.process = trackProcessOne
	default:
		t.process = trackProcessMany
	}
}

func trackProcessEmpty(t *Track, ctx *Context, in *Stream, out *Stream, count Count) (Count, error) {
	return transparentFill(ctx, in, out, count), nil
}

func trackProcessOne(t *Track, ctx *Context, in *Stream, out *Stream, count Count) (Count, error) {
	return t.layers[0].Process(ctx, in, out, count)
}

func trackProcessMany(t *Track, ctx *Context, in *Stream, out *Stream, count Count) (Count, error) {
	names := out.active(ctx)
	cur := scratchStream(names, count)
	if _, err := t.layers[0].Process(ctx, in, cur, count); err != nil && !Recoverable(err) {
		return 0, err
	}
	// every subsequent layer takes the previous layer's rendered output
	// as its own input, chaining rather than summing; cur and next
	// ping-pong so only two count-sized buffers are ever live. cur is
	// rewound before each read, since the layer that wrote it left its
	// cursor at the end.
	for i := 1; i < len(t.layers); i++ {
		next := scratchStream(names, count)
		cur.Seek(0)
		if _, err := t.layers[i].Process(ctx, cur, next, count); err != nil && !Recoverable(err) {
			return 0, err
		}
		cur = next
	}
	cur.Seek(0)
	return Copy(ctx, out, cur, count), nil
}

// Process renders up to count samples of the track's chained layers into
// out, from the track's own implicit timeline.
func (t *Track) Process(ctx *Context, in *Stream, out *Stream, count Count) (Count, error) {
	return t.process(t, ctx, in, out, count)
}

// Length returns the furthest layer length under ctx, or Infinite if any
// layer is unbounded.
func (t *Track) Length(ctx *Context) Count {
	var max Count
	for _, l := range t.layers {
		n := l.Length(ctx)
		if n == Infinite {
			return Infinite
		}
		if n > max {
			max = n
		}
	}
	return max
}

// Seek moves every layer's cursor to offset.
func (t *Track) Seek(offset Count) Count {
	for _, l := range t.layers {
		l.Seek(offset)
	}
	return offset
}

// Flush resets every layer in the track.
func (t *Track) Flush() {
	for _, l := range t.layers {
		l.Flush()
	}
}
