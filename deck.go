package remix

// Deck mixes a set of Tracks together, applying each track's own Gain
// after that track has produced its mix -- gain lives at this level,
// not inside Track.Process, matching where the reference engine applies
// it (once per track, in the deck's own process step) rather than a
// literal reading of "track gain" as something a track applies to
// itself. Deck.Process is rebound by track count the same way Track and
// Envelope specialise by their own child count.
type Deck struct {
	tracks  []*Track
	process func(d *Deck, ctx *Context, in *Stream, out *Stream, count Count) (Count, error)
}

// NewDeck returns an empty deck.
func NewDeck() *Deck {
	d := &Deck{}
	d.rebind()
	return d
}

// AddTrack appends track to the deck and rebinds its process function.
func (d *Deck) AddTrack(t *Track) {
	t.Deck = d
	d.tracks = append(d.tracks, t)
	d.rebind()
}

// RemoveTrack removes track from the deck, if present, and rebinds.
func (d *Deck) RemoveTrack(t *Track) {
	for i, c := range d.tracks {
		if c == t {
			d.tracks = append(d.tracks[:i], d.tracks[i+1:]...)
			t.Deck = nil
			d.rebind()
			return
		}
	}
}

// Tracks returns the deck's tracks in insertion order. The returned
// slice must not be mutated by the caller.
func (d *Deck) Tracks() []*Track { return d.tracks }

func (d *Deck) rebind() {
	switch len(d.tracks) {
	case 0:
		d.process = deckProcessEmpty
	case 1:
		d.process = deckProcessOne
	default:
		d.process = deckProcessMany
	}
}

func deckProcessEmpty(d *Deck, ctx *Context, in *Stream, out *Stream, count Count) (Count, error) {
	return out.WriteZeros(ctx, count), nil
}

func deckProcessOne(d *Deck, ctx *Context, in *Stream, out *Stream, count Count) (Count, error) {
	t := d.tracks[0]
	outAt := map[*Channel]Count{}
	for _, ch := range out.channels {
		outAt[ch] = ch.Tell()
	}
	if _, err := t.Process(ctx, in, out, count); err != nil && !Recoverable(err) {
		return 0, err
	}
	if t.Gain != 1 {
		// the track left out's cursors past what it wrote; go back so the
		// gain lands on those same samples.
		for ch, at := range outAt {
			ch.Seek(at)
		}
		Gain(ctx, out, count, t.Gain)
	}
	return count, nil
}

func deckProcessMany(d *Deck, ctx *Context, in *Stream, out *Stream, count Count) (Count, error) {
	names := out.active(ctx)
	// every track reads in from the same position.
	inAt := map[*Channel]Count{}
	if in != nil {
		for _, ch := range in.channels {
			inAt[ch] = ch.Tell()
		}
	}

	first := d.tracks[0]
	acc := scratchStream(names, count)
	if _, err := first.Process(ctx, in, acc, count); err != nil && !Recoverable(err) {
		return 0, err
	}
	if first.Gain != 1 {
		acc.Seek(0)
		Gain(ctx, acc, count, first.Gain)
	}

	for i := 1; i < len(d.tracks); i++ {
		t := d.tracks[i]
		for ch, at := range inAt {
			ch.Seek(at)
		}
		other := scratchStream(names, count)
		if _, err := t.Process(ctx, in, other, count); err != nil && !Recoverable(err) {
			return 0, err
		}
		if t.Gain != 1 {
			other.Seek(0)
			Gain(ctx, other, count, t.Gain)
		}
		acc.Seek(0)
		other.Seek(0)
		Mix(ctx, acc, other, count)
	}
	acc.Seek(0)
	return Copy(ctx, out, acc, count), nil
}

// Process renders up to count samples of the deck's mixed tracks into
// out. Every track mixes in parallel against the same deck-level in,
// unlike a track's own layers, which chain.
func (d *Deck) Process(ctx *Context, in *Stream, out *Stream, count Count) (Count, error) {
	return d.process(d, ctx, in, out, count)
}

// Length returns the furthest track length under ctx, or Infinite if
// any track is unbounded.
func (d *Deck) Length(ctx *Context) Count {
	var max Count
	for _, t := range d.tracks {
		n := t.Length(ctx)
		if n == Infinite {
			return Infinite
		}
		if n > max {
			max = n
		}
	}
	return max
}

// Seek moves every track's cursor to offset.
func (d *Deck) Seek(offset Count) Count {
	for _, t := range d.tracks {
		t.Seek(offset)
	}
	return offset
}

// Flush resets every track in the deck.
func (d *Deck) Flush() {
	for _, t := range d.tracks {
		t.Flush()
	}
}
