package remix

// Stream is an unordered mapping from channel name to Channel, iterated
// in channel insertion order so results are deterministic. All
// channels in one stream represent parallel spatialised voices of the
// same signal.
type Stream struct {
	names    []ChannelName
	channels map[ChannelName]*Channel
}

// NewStream returns an empty stream with no channels.
func NewStream() *Stream {
	return &Stream{channels: make(map[ChannelName]*Channel)}
}

// NewStreamFor returns a stream with an empty Channel for each name, in
// the given order.
func NewStreamFor(names ...ChannelName) *Stream {
	s := NewStream()
	for _, n := range names {
		s.AddChannel(n, NewChannel())
	}
	return s
}

// AddChannel adds (or replaces) a named channel, appending to the
// iteration order if the name is new.
func (s *Stream) AddChannel(name ChannelName, ch *Channel) {
	if _, ok := s.channels[name]; !ok {
		s.names = append(s.names, name)
	}
	s.channels[name] = ch
}

// Channel returns the named channel, or nil if the stream has none.
func (s *Stream) Channel(name ChannelName) *Channel { return s.channels[name] }

// Names returns the channel names in the stream's iteration order.
func (s *Stream) Names() []ChannelName { return s.names }

// Has reports whether the stream has a channel with the given name.
func (s *Stream) Has(name ChannelName) bool {
	_, ok := s.channels[name]
	return ok
}

// Clone deep-copies the stream and all its channels.
func (s *Stream) Clone() *Stream {
	clone := NewStream()
	for _, n := range s.names {
		clone.AddChannel(n, s.channels[n].Clone())
	}
	return clone
}

// Seek sets every channel's cursor to offset and returns it.
func (s *Stream) Seek(offset Count) Count {
	for _, n := range s.names {
		s.channels[n].Seek(offset)
	}
	return offset
}

// active returns the channels present in both the stream and ctx's
// channel set, in the stream's iteration order.
func (s *Stream) active(ctx *Context) []ChannelName {
	var out []ChannelName
	for _, n := range s.names {
		if ctx == nil || ctx.HasChannel(n) {
			out = append(out, n)
		}
	}
	return out
}

// minAdvance folds a per-channel advance function over the stream's
// active channels and returns the minimum result, which becomes the
// stream cursor's advance (channels stay aligned).
func (s *Stream) minAdvance(ctx *Context, count Count, each func(ch *Channel) Count) Count {
	names := s.active(ctx)
	if len(names) == 0 {
		return count
	}
	min := Count(-1)
	for _, n := range names {
		n := each(s.channels[n])
		if min == -1 || n < min {
			min = n
		}
	}
	if min == -1 {
		return 0
	}
	return min
}

// WriteZeros zero-skips count samples on every active channel of the
// stream, honouring each channel's own short-write behaviour.
func (s *Stream) WriteZeros(ctx *Context, count Count) Count {
	return s.minAdvance(ctx, count, func(ch *Channel) Count {
		return ch.Write0(count)
	})
}

// streamChunkChunk applies a ChunkChunkFunc between every active
// channel of src and the corresponding channel of dst, honouring the
// channel gap policy, and returns the stream-level advance (the min
// over channels).
func streamChunkChunk(ctx *Context, dst *Stream, src *Stream, count Count, fn ChunkChunkFunc) Count {
	names := dst.active(ctx)
	if len(names) == 0 {
		return count
	}
	min := Count(-1)
	for _, n := range names {
		dch := dst.channels[n]
		var got Count
		if src != nil && src.Has(n) {
			sch := src.channels[n]
			got = sch.Chunkchunkfuncify(dch, count, n, fn)
		} else {
			got = dch.Write0(count)
		}
		if min == -1 || got < min {
			min = got
		}
	}
	if min == -1 {
		return 0
	}
	return min
}

// Copy copies count samples from src into dst, per-channel.
func Copy(ctx *Context, dst *Stream, src *Stream, count Count) Count {
	return streamChunkChunk(ctx, dst, src, count, CopyChunk)
}

// Mix adds count samples of src into dst in place, per-channel.
func Mix(ctx *Context, dst *Stream, src *Stream, count Count) Count {
	return streamChunkChunk(ctx, dst, src, count, AddChunk)
}

// Multiply multiplies dst by src in place, per-channel.
func Multiply(ctx *Context, dst *Stream, src *Stream, count Count) Count {
	return streamChunkChunk(ctx, dst, src, count, MultChunk)
}

// Fade fades dst by (1-src) in place, per-channel: dst *= 1-src.
func Fade(ctx *Context, dst *Stream, src *Stream, count Count) Count {
	return streamChunkChunk(ctx, dst, src, count, FadeChunk)
}

// ApplyChunkFunc applies fn to count samples of every active channel of
// s in place, returning the minimum number of samples actually touched
// (channels can come up short independently).
func (s *Stream) ApplyChunkFunc(ctx *Context, count Count, fn ChunkFunc) Count {
	names := s.active(ctx)
	if len(names) == 0 {
		return count
	}
	min := Count(-1)
	for _, n := range names {
		got := s.channels[n].Chunkfuncify(count, n, fn)
		if min == -1 || got < min {
			min = got
		}
	}
	if min == -1 {
		return 0
	}
	return min
}

// Gain multiplies count samples of every active channel of s by gain.
func Gain(ctx *Context, s *Stream, count Count, gain Sample) Count {
	return s.ApplyChunkFunc(ctx, count, GainChunk(gain))
}

// scratchStream builds a stream with one freshly zeroed chunk per name,
// each of length count starting at stream index 0. Used to give a node
// or an envelope write somewhere to land before it is copied, mixed or
// blended into a caller's own output stream.
func scratchStream(names []ChannelName, count Count) *Stream {
	s := NewStream()
	for _, n := range names {
		ch := NewChannel()
		ch.AddNewChunk(0, count)
		s.AddChannel(n, ch)
	}
	return s
}

// Blend blends src into dst by blend values in blendStream, per-channel:
// dst = dst*b + src*(1-b).
func Blend(ctx *Context, dst *Stream, src *Stream, blendStream *Stream, count Count) Count {
	names := dst.active(ctx)
	if len(names) == 0 {
		return count
	}
	min := Count(-1)
	for _, n := range names {
		if !src.Has(n) || !blendStream.Has(n) {
			continue
		}
		dch := dst.channels[n]
		sch := src.channels[n]
		bch := blendStream.channels[n]
		got := blendChannels(sch, bch, dch, count, n)
		if min == -1 || got < min {
			min = got
		}
	}
	if min == -1 {
		return 0
	}
	return min
}

// blendChannels walks dst's chunk list (as the authority for windowing,
// matching Chunkchunkfuncify's dst-first traversal) applying BlendChunk
// against the corresponding src and blend regions.
func blendChannels(src, blend, dst *Channel, count Count, name ChannelName) Count {
	remaining := count
	var done Count
	for remaining > 0 {
		di := dst.indexAt(dst.cursorOffset)
		if di < 0 {
			break
		}
		du := dst.chunks[di]
		vl := dst.validLength(di)
		n := remaining.Min(vl)

		si := src.indexAt(src.cursorOffset)
		bi := blend.indexAt(blend.cursorOffset)
		if si < 0 || bi < 0 {
			n, _ = ClearRegion(du, dst.cursorOffset, n, name)
			if n == 0 {
				break
			}
		} else {
			su := src.chunks[si]
			bu := blend.chunks[bi]
			got, err := BlendChunk(su, src.cursorOffset, bu, blend.cursorOffset, du, dst.cursorOffset, n, name)
			if err != nil || got == -1 {
				break
			}
			n = got
			if n == 0 {
				break
			}
		}
		done += n
		remaining -= n
		dst.cursorOffset += n
		src.cursorOffset += n
		blend.cursorOffset += n
	}
	return done
}

// Interleave2 interleaves count sample-frames of channels a and b into
// an external float buffer (2*count elements), for device I/O.
func Interleave2(s *Stream, a, b ChannelName, count Count, out []Sample) Count {
	ach, bch := s.Channel(a), s.Channel(b)
	if ach == nil || bch == nil {
		return 0
	}
	written := Count(0)
	for written < count {
		ai := ach.indexAt(ach.cursorOffset)
		bi := bch.indexAt(bch.cursorOffset)
		if ai < 0 || bi < 0 {
			break
		}
		au, bu := ach.chunks[ai], bch.chunks[bi]
		avl, bvl := ach.validLength(ai), bch.validLength(bi)
		n := (count - written).Min(avl).Min(bvl)
		ao := ach.cursorOffset - au.StartIndex
		bo := bch.cursorOffset - bu.StartIndex
		for i := Count(0); i < n; i++ {
			out[(written+i)*2] = au.Data[ao+i]
			out[(written+i)*2+1] = bu.Data[bo+i]
		}
		ach.cursorOffset += n
		bch.cursorOffset += n
		written += n
		if n == 0 {
			break
		}
	}
	return written
}

// Deinterleave2 deinterleaves count sample-frames from an external float
// buffer (2*count elements) into channels a and b of s, for device I/O.
func Deinterleave2(s *Stream, a, b ChannelName, count Count, in []Sample) Count {
	ach, bch := s.Channel(a), s.Channel(b)
	if ach == nil || bch == nil {
		return 0
	}
	written := Count(0)
	for written < count {
		ai := ach.indexAt(ach.cursorOffset)
		bi := bch.indexAt(bch.cursorOffset)
		if ai < 0 || bi < 0 {
			break
		}
		au, bu := ach.chunks[ai], bch.chunks[bi]
		avl, bvl := ach.validLength(ai), bch.validLength(bi)
		n := (count - written).Min(avl).Min(bvl)
		ao := ach.cursorOffset - au.StartIndex
		bo := bch.cursorOffset - bu.StartIndex
		for i := Count(0); i < n; i++ {
			au.Data[ao+i] = in[(written+i)*2]
			bu.Data[bo+i] = in[(written+i)*2+1]
		}
		ach.cursorOffset += n
		bch.cursorOffset += n
		written += n
		if n == 0 {
			break
		}
	}
	return written
}
