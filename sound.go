package remix

// Sound places a source Node at a position within a Layer: where
// playback starts inside the source (CutIn), how long it plays
// (CutLength, or Infinite to ride the source to its own end), a static
// Gain, and up to three envelopes layered on top: GainEnvelope (a
// time-varying multiplier on the rendered signal), BlendEnvelope (a
// time-varying crossfade between the rendered signal and whatever
// already occupies the output at that position) and RateEnvelope
// (accepted and stored for API completeness, but playback rate is not
// resampled -- see the rate envelope entry in the design notes).
type Sound struct {
	Source        *Node
	Layer         *Layer
	StartTime     Time
	CutIn         Count
	CutLength     Count
	Gain          Sample
	GainEnvelope  *Envelope
	BlendEnvelope *Envelope
	RateEnvelope  *Envelope

	offset Count // samples played since CutIn, i.e. position within the cut
}

// NewSound returns a Sound playing source from its own start, for its
// own full length, at unity gain.
func NewSound(source *Node, start Time) *Sound {
	return &Sound{
		Source:    source,
		StartTime: start,
		CutLength: Infinite,
		Gain:      1,
	}
}

// remaining returns how many samples are left to play in this sound's
// cut, or Infinite if both the cut and the source are unbounded.
func (s *Sound) remaining() Count {
	limit := s.CutLength
	if limit == Infinite {
		if l := s.Source.Length(); l > 0 {
			limit = l - s.CutIn
		}
	}
	if limit == Infinite {
		return Infinite
	}
	rem := limit - s.offset
	if rem < 0 {
		return 0
	}
	return rem
}

// Length returns the sound's total duration in samples: its cut length,
// or its source's own length (less CutIn) when uncut.
func (s *Sound) Length() Count {
	if s.CutLength != Infinite {
		return s.CutLength
	}
	if l := s.Source.Length(); l > 0 {
		return l - s.CutIn
	}
	return Infinite
}

// Process renders up to count samples of the sound's output into out,
// applying gain and envelopes, and returns the number of samples
// actually produced. in is whatever signal already occupies out's
// position from upstream (e.g. an earlier layer in the same track's
// chain); it is handed to the source node. While the cut plays, a blend
// envelope crossfades the rendered signal against what out already
// holds at that position; in is not read on that path. Once the play
// cursor runs past the source's end the sound degrades: with a blend
// envelope it keeps fading in into out (the source's contribution
// drops to nothing, so out converges on in); with no blend envelope it
// returns ErrNoop (recoverable) to signal the cut is exhausted.
func (s *Sound) Process(ctx *Context, in *Stream, out *Stream, count Count) (Count, error) {
	rem := s.remaining()
	if rem <= 0 {
		if s.BlendEnvelope == nil {
			return 0, ErrNoop
		}
		names := out.active(ctx)
		blend := scratchStream(names, count)
		blend.ApplyChunkFunc(ctx, count, EnvelopeWriteChunk(s.BlendEnvelope, -s.offset))
		blend.Seek(0)
		written := Blend(ctx, out, in, blend, count)
		if written == 0 {
			return 0, ErrNoop
		}
		s.offset += written
		return written, nil
	}
	n := count.Min(rem)
	names := out.active(ctx)
	raw := scratchStream(names, n)

	if _, err := s.Source.Seek(SeekAbsolute, s.CutIn+s.offset); err != nil {
		return 0, err
	}
	got, err := s.Source.Process(ctx, in, raw, n)
	if err != nil && !Recoverable(err) {
		return 0, err
	}
	if got < n {
		n = got
	}
	if n <= 0 {
		return 0, ErrNoop
	}

	// every pass over raw or blend starts from index 0: each pass leaves
	// the stream's cursor at the end of what it touched.
	if s.GainEnvelope != nil {
		raw.Seek(0)
		if got := raw.ApplyChunkFunc(ctx, n, EnvelopeGainChunk(s.GainEnvelope, -s.offset)); got < n {
			n = got
		}
	}
	if s.Gain != 1 {
		raw.Seek(0)
		raw.ApplyChunkFunc(ctx, n, GainChunk(s.Gain))
	}

	raw.Seek(0)
	var written Count
	if s.BlendEnvelope != nil {
		blend := scratchStream(names, n)
		blend.ApplyChunkFunc(ctx, n, EnvelopeWriteChunk(s.BlendEnvelope, -s.offset))
		blend.Seek(0)
		written = Blend(ctx, out, raw, blend, n)
	} else {
		written = Copy(ctx, out, raw, n)
	}
	s.offset += written
	if written == 0 {
		return 0, ErrNoop
	}
	return written, nil
}

// Seek moves the sound's internal cursor to offset samples into its
// cut, clamped to the cut's own length.
func (s *Sound) Seek(offset Count) Count {
	if s.CutLength != Infinite && offset > s.CutLength {
		offset = s.CutLength
	}
	s.offset = offset
	return offset
}

// Flush resets the sound to the start of its cut and flushes its source.
func (s *Sound) Flush() {
	s.offset = 0
	s.Source.Flush()
}
