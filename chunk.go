package remix

// Chunk is a contiguous block of samples tagged with its stream-absolute
// start index. A chunk owns its backing buffer unless it was created
// from an externally supplied buffer (a zero-copy adaptor), in which
// case the caller retains ownership.
type Chunk struct {
	StartIndex Count
	Data       []Sample
	fromBuffer bool
}

// NewChunk allocates a chunk of the given length starting at startIndex.
func NewChunk(startIndex Count, length Count) *Chunk {
	return &Chunk{StartIndex: startIndex, Data: make([]Sample, length)}
}

// NewChunkFromBuffer wraps an externally owned buffer as a chunk without
// copying. The caller retains ownership of buf.
func NewChunkFromBuffer(startIndex Count, buf []Sample) *Chunk {
	return &Chunk{StartIndex: startIndex, Data: buf, fromBuffer: true}
}

// Length returns the chunk's own length, irrespective of any following
// chunk that might truncate its valid region within a channel.
func (c *Chunk) Length() Count { return Count(len(c.Data)) }

// EndIndex returns the stream index one past the chunk's own length.
func (c *Chunk) EndIndex() Count { return c.StartIndex + c.Length() }

// Clone deep-copies the chunk, always allocating a fresh buffer even if
// the original was borrowed.
func (c *Chunk) Clone() *Chunk {
	data := make([]Sample, len(c.Data))
	copy(data, c.Data)
	return &Chunk{StartIndex: c.StartIndex, Data: data}
}

// Clear zeroes the entire chunk and returns its length.
func (c *Chunk) Clear() Count {
	for i := range c.Data {
		c.Data[i] = 0
	}
	return Count(len(c.Data))
}

// chunkRegion resolves [start, start+count) against the chunk's own
// bounds, clamping both ends. It returns the slice offset within the
// chunk's Data and the clamped count, or ok=false if nothing overlaps.
func chunkRegion(c *Chunk, start, count Count) (offset Count, n Count, ok bool) {
	offset = start - c.StartIndex
	if offset < 0 {
		count += offset
		offset = 0
	}
	if count <= 0 {
		return 0, 0, false
	}
	if offset+count > c.Length() {
		count = c.Length() - offset
	}
	if count <= 0 {
		return 0, 0, false
	}
	return offset, count, true
}

// ChunkFunc operates on a single chunk's region: clear, fill, gain, or
// an envelope write. It returns the number of samples processed, or -1
// with an error (typically ErrSilence, meaning "zero this region").
type ChunkFunc func(c *Chunk, start, count Count, channel ChannelName) (Count, error)

// ChunkChunkFunc operates on corresponding regions of a source and a
// destination chunk: copy, add, multiply, fade, interleave...
type ChunkChunkFunc func(src *Chunk, srcStart Count, dst *Chunk, dstStart Count, count Count, channel ChannelName) (Count, error)

// ChunkChunkChunkFunc operates on two sources and one destination: blend.
type ChunkChunkChunkFunc func(src1 *Chunk, src1Start Count, src2 *Chunk, src2Start Count, dst *Chunk, dstStart Count, count Count, channel ChannelName) (Count, error)

// ClearRegion zeroes count samples of c starting at the stream index
// start, clamped to the chunk's own bounds. Returns the count cleared.
func ClearRegion(c *Chunk, start, count Count, _ ChannelName) (Count, error) {
	offset, n, ok := chunkRegion(c, start, count)
	if !ok {
		return 0, nil
	}
	region := c.Data[offset : offset+n]
	for i := range region {
		region[i] = 0
	}
	return n, nil
}

// GainChunk multiplies count samples of c by gain, in place.
func GainChunk(gain Sample) ChunkFunc {
	return func(c *Chunk, start, count Count, _ ChannelName) (Count, error) {
		offset, n, ok := chunkRegion(c, start, count)
		if !ok {
			return 0, nil
		}
		region := c.Data[offset : offset+n]
		for i := range region {
			region[i] *= gain
		}
		return n, nil
	}
}

// chunkChunkRegion resolves a paired (src, dst) window, clamping to both
// chunks' own bounds.
func chunkChunkRegion(src *Chunk, srcStart Count, dst *Chunk, dstStart Count, count Count) (srcOff, dstOff, n Count, ok bool) {
	dstOff = dstStart - dst.StartIndex
	if dstOff < 0 {
		count += dstOff
		srcStart -= dstOff
		dstOff = 0
	}
	srcOff = srcStart - src.StartIndex
	if srcOff < 0 {
		count += srcOff
		dstOff -= srcOff
		srcOff = 0
	}
	if count <= 0 {
		return 0, 0, 0, false
	}
	if srcOff+count > src.Length() {
		count = src.Length() - srcOff
	}
	if dstOff+count > dst.Length() {
		count = dst.Length() - dstOff
	}
	if count <= 0 {
		return 0, 0, 0, false
	}
	return srcOff, dstOff, count, true
}

// CopyChunk copies src into dst over the overlapping region.
func CopyChunk(src *Chunk, srcStart Count, dst *Chunk, dstStart Count, count Count, _ ChannelName) (Count, error) {
	so, do, n, ok := chunkChunkRegion(src, srcStart, dst, dstStart, count)
	if !ok {
		return 0, nil
	}
	copy(dst.Data[do:do+n], src.Data[so:so+n])
	return n, nil
}

// AddChunk adds src into dst in place over the overlapping region.
func AddChunk(src *Chunk, srcStart Count, dst *Chunk, dstStart Count, count Count, _ ChannelName) (Count, error) {
	so, do, n, ok := chunkChunkRegion(src, srcStart, dst, dstStart, count)
	if !ok {
		return 0, nil
	}
	s, d := src.Data[so:so+n], dst.Data[do:do+n]
	for i := range d {
		d[i] += s[i]
	}
	return n, nil
}

// MultChunk multiplies dst by src in place over the overlapping region.
func MultChunk(src *Chunk, srcStart Count, dst *Chunk, dstStart Count, count Count, _ ChannelName) (Count, error) {
	so, do, n, ok := chunkChunkRegion(src, srcStart, dst, dstStart, count)
	if !ok {
		return 0, nil
	}
	s, d := src.Data[so:so+n], dst.Data[do:do+n]
	for i := range d {
		d[i] *= s[i]
	}
	return n, nil
}

// FadeChunk fades dst by (1-src) in place: dst *= 1-src.
func FadeChunk(src *Chunk, srcStart Count, dst *Chunk, dstStart Count, count Count, _ ChannelName) (Count, error) {
	so, do, n, ok := chunkChunkRegion(src, srcStart, dst, dstStart, count)
	if !ok {
		return 0, nil
	}
	s, d := src.Data[so:so+n], dst.Data[do:do+n]
	for i := range d {
		d[i] *= 1.0 - s[i]
	}
	return n, nil
}

// BlendChunk blends src into dst according to blend values in blend:
// dst = dst*b + src*(1-b).
func BlendChunk(src *Chunk, srcStart Count, blend *Chunk, blendStart Count, dst *Chunk, dstStart Count, count Count, _ ChannelName) (Count, error) {
	// resolve dst/blend overlap first, then clamp src against the result.
	bo, do, n, ok := chunkChunkRegion(blend, blendStart, dst, dstStart, count)
	if !ok {
		return 0, nil
	}
	so := srcStart - src.StartIndex
	if so < 0 {
		n += so
		so = 0
	}
	if n <= 0 {
		return 0, nil
	}
	if so+n > src.Length() {
		n = src.Length() - so
	}
	if n <= 0 {
		return 0, nil
	}
	s, b, d := src.Data[so:so+n], blend.Data[bo:bo+n], dst.Data[do:do+n]
	for i := range d {
		d[i] = d[i]*b[i] + s[i]*(1-b[i])
	}
	return n, nil
}

// WriteLinear writes count samples at data[offset:], following the line
// through (x1,y1) and (x2,y2), where data[i] corresponds to stream index
// offset+i. Used by the linear envelope evaluator.
func WriteLinear(data []Sample, x1 Count, y1 Sample, x2 Count, y2 Sample, offset, count Count) Count {
	gradient := (float64(y2) - float64(y1)) / float64(x2-x1)
	for i := Count(0); i < count; i++ {
		data[i] = y1 + Sample(float64(offset+i-x1)*gradient)
	}
	return count
}
