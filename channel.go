package remix

import "sort"

// Channel is a monophonic, sparse, sample-indexed container: an ordered
// sequence of chunks sorted by StartIndex, plus a cursor for resumable
// traversal.
//
// Invariants: chunks are kept sorted by StartIndex; when two chunks
// overlap, the one with the greater StartIndex wins for both read and
// write in the overlapped region (enforced by validLength, below);
// reads from regions where no chunk is defined return silence; writes
// to such regions are skipped and the write stops early.
type Channel struct {
	chunks       []*Chunk
	cursorOffset Count
	cursorIndex  int // index into chunks of the "current" chunk, or -1
}

// NewChannel returns an empty channel.
func NewChannel() *Channel {
	return &Channel{cursorIndex: -1}
}

// Clone deep-copies the channel and all its chunks; the cursor resets.
func (ch *Channel) Clone() *Channel {
	clone := NewChannel()
	clone.chunks = make([]*Chunk, len(ch.chunks))
	for i, c := range ch.chunks {
		clone.chunks[i] = c.Clone()
	}
	return clone
}

// AddChunk inserts chunk, keeping chunks sorted ascending by StartIndex.
func (ch *Channel) AddChunk(chunk *Chunk) {
	i := sort.Search(len(ch.chunks), func(i int) bool {
		return ch.chunks[i].StartIndex > chunk.StartIndex
	})
	ch.chunks = append(ch.chunks, nil)
	copy(ch.chunks[i+1:], ch.chunks[i:])
	ch.chunks[i] = chunk
}

// AddNewChunk allocates and adds a new chunk of the given length.
func (ch *Channel) AddNewChunk(startIndex, length Count) *Chunk {
	c := NewChunk(startIndex, length)
	ch.AddChunk(c)
	return c
}

// RemoveChunk removes chunk from the channel, if present.
func (ch *Channel) RemoveChunk(chunk *Chunk) {
	for i, c := range ch.chunks {
		if c == chunk {
			ch.chunks = append(ch.chunks[:i], ch.chunks[i+1:]...)
			return
		}
	}
}

// Chunks returns the channel's chunks in ascending StartIndex order.
// The returned slice must not be mutated by the caller.
func (ch *Channel) Chunks() []*Chunk { return ch.chunks }

// validLength returns the length for which the chunk at chunks[i] is
// valid: the minimum of its own length and the distance to the next
// chunk's start, so a later-starting chunk always truncates an earlier
// overlapping one.
func (ch *Channel) validLength(i int) Count {
	c := ch.chunks[i]
	if i+1 >= len(ch.chunks) {
		return c.Length()
	}
	next := ch.chunks[i+1]
	return c.Length().Min(next.StartIndex - c.StartIndex)
}

// indexAt returns the index of the chunk validly spanning offset, or -1.
func (ch *Channel) indexAt(offset Count) int {
	for i, c := range ch.chunks {
		vl := ch.validLength(i)
		if c.StartIndex <= offset && c.StartIndex+vl > offset {
			return i
		}
	}
	return -1
}

// indexAfter returns the index of the first chunk starting at or after
// offset, or -1.
func (ch *Channel) indexAfter(offset Count) int {
	for i, c := range ch.chunks {
		if c.StartIndex >= offset {
			return i
		}
	}
	return -1
}

// Seek sets the channel's cursor to offset and returns it.
func (ch *Channel) Seek(offset Count) Count {
	ch.cursorOffset = offset
	ch.cursorIndex = ch.indexAt(offset)
	return offset
}

// Tell returns the channel's current cursor offset.
func (ch *Channel) Tell() Count { return ch.cursorOffset }

// Write0 skips the cursor forward by length, zeroing any chunk data it
// passes over, and stops early if the channel runs out of chunks
// (a short write). Returns length always, matching the reference: the
// cursor advances by the full requested length regardless.
func (ch *Channel) Write0(length Count) Count {
	remaining := length
	offset := ch.cursorOffset
	i := ch.indexAt(offset)
	if i < 0 {
		i = ch.indexAfter(offset)
	}
	for remaining > 0 {
		if i < 0 || i >= len(ch.chunks) {
			break
		}
		c := ch.chunks[i]
		if c.StartIndex > offset {
			n := (c.StartIndex - offset).Min(remaining)
			offset += n
			remaining -= n
		}
		if remaining > 0 {
			vl := ch.validLength(i)
			n, _ := ClearRegion(c, offset, remaining.Min(c.StartIndex+vl-offset), 0)
			if n == 0 {
				break
			}
			offset += n
			remaining -= n
		}
		i++
	}
	ch.cursorIndex = i
	ch.cursorOffset += length
	return length
}

// Chunkfuncify applies fn to count samples of consecutive chunks
// starting at the channel's cursor, advancing the cursor as it goes.
// It stops early if the channel runs out of chunks (short write/read).
// A -1 return from fn with ErrSilence zero-fills that region; any other
// error aborts the call for that region (0 samples processed there).
func (ch *Channel) Chunkfuncify(count Count, channel ChannelName, fn ChunkFunc) Count {
	remaining := count
	var funced Count
	for remaining > 0 {
		i := ch.indexAt(ch.cursorOffset)
		ch.cursorIndex = i
		if i < 0 {
			return funced // channel incomplete
		}
		c := ch.chunks[i]
		win := remaining.Min(c.StartIndex + ch.validLength(i) - ch.cursorOffset)
		n, err := fn(c, ch.cursorOffset, win, channel)
		if n == -1 || err != nil {
			if err == ErrSilence {
				n, _ = ClearRegion(c, ch.cursorOffset, win, channel)
			} else {
				n = 0
			}
		}
		if n == 0 {
			return funced
		}
		funced += n
		remaining -= n
		ch.cursorOffset += n
	}
	return funced
}

// Chunkchunkfuncify applies fn to corresponding chunks of src (this
// channel's cursor reads from src) and dst, implementing the channel
// gap policy: when src has no chunk at its cursor, the next chunk is
// consulted and the gap zero-filled on dst; when src has no following
// chunk, dst is zeroed for the remainder and the call returns early.
// When dst has no chunk at its cursor, the call returns what's been
// done so far (short write).
func (src *Channel) Chunkchunkfuncify(dst *Channel, count Count, channel ChannelName, fn ChunkChunkFunc) Count {
	remaining := count
	var funced Count
	for remaining > 0 {
		var n Count

		di := dst.indexAt(dst.cursorOffset)
		if di < 0 {
			return funced // destination channel incomplete
		}

		si := src.indexAt(src.cursorOffset)
		if si < 0 {
			si = src.indexAfter(src.cursorOffset)
			if si < 0 {
				// no following source data at all: zero the rest of dst
				n = dst.Write0(remaining)
				funced += n
				return funced
			}
		}

		su := src.chunks[si]
		if su.StartIndex > src.cursorOffset {
			n = dst.Write0((su.StartIndex - src.cursorOffset).Min(remaining))
			funced += n
			remaining -= n
			src.cursorOffset += n
		}

		if remaining <= 0 {
			break
		}

		if n > 0 {
			di = dst.indexAt(dst.cursorOffset)
			if di < 0 {
				return funced
			}
		}
		du := dst.chunks[di]
		win := remaining.Min(du.StartIndex + dst.validLength(di) - dst.cursorOffset)
		win = win.Min(su.StartIndex + src.validLength(si) - src.cursorOffset)
		m, err := fn(su, src.cursorOffset, du, dst.cursorOffset, win, channel)
		if m == -1 || err != nil {
			if err == ErrSilence {
				m, _ = ClearRegion(du, dst.cursorOffset, win, channel)
			} else {
				m = 0
			}
		}
		if m == 0 {
			return funced
		}
		funced += m
		remaining -= m
		src.cursorOffset += m
		dst.cursorOffset += m
	}
	return funced
}
