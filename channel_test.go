package remix_test

import (
	"testing"

	"github.com/pipelined/remix"
	"github.com/stretchr/testify/assert"
)

func TestChannelOverlapLaterWins(t *testing.T) {
	ch := remix.NewChannel()
	early := ch.AddNewChunk(0, 10)
	for i := range early.Data {
		early.Data[i] = 1
	}
	late := ch.AddNewChunk(5, 3)
	for i := range late.Data {
		late.Data[i] = 2
	}

	out := remix.NewChannel()
	out.AddNewChunk(0, 10)
	got := ch.Chunkchunkfuncify(out, 10, remix.Left, remix.CopyChunk)
	assert.Equal(t, remix.Count(10), got)
	// the later chunk truncates the earlier one at index 5, so 8 and 9 lie
	// outside every chunk's valid region and read as silence.
	expect := []remix.Sample{1, 1, 1, 1, 1, 2, 2, 2, 0, 0}
	assert.Equal(t, expect, out.Chunks()[0].Data)
}

func TestChannelWrite0AdvancesFullLength(t *testing.T) {
	ch := remix.NewChannel()
	c := ch.AddNewChunk(0, 4)
	c.Data[0] = 9
	n := ch.Write0(4)
	assert.Equal(t, remix.Count(4), n)
	assert.Equal(t, remix.Count(4), ch.Tell())
	assert.Equal(t, []remix.Sample{0, 0, 0, 0}, c.Data)
}

func TestChannelChunkfuncifySilenceRecovers(t *testing.T) {
	ch := remix.NewChannel()
	c := ch.AddNewChunk(0, 4)
	for i := range c.Data {
		c.Data[i] = 5
	}
	n := ch.Chunkfuncify(4, remix.Left, func(c *remix.Chunk, start, count remix.Count, _ remix.ChannelName) (remix.Count, error) {
		return -1, remix.ErrSilence
	})
	assert.Equal(t, remix.Count(4), n)
	assert.Equal(t, []remix.Sample{0, 0, 0, 0}, c.Data)
}

func TestChannelchunkfuncifyGapFill(t *testing.T) {
	src := remix.NewChannel()
	s := src.AddNewChunk(5, 5)
	for i := range s.Data {
		s.Data[i] = 1
	}

	dst := remix.NewChannel()
	dst.AddNewChunk(0, 10)

	got := src.Chunkchunkfuncify(dst, 10, remix.Left, remix.CopyChunk)
	assert.Equal(t, remix.Count(10), got)
	expect := []remix.Sample{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	assert.Equal(t, expect, dst.Chunks()[0].Data)
}

func TestChannelChunkchunkfuncifyShortDst(t *testing.T) {
	src := remix.NewChannel()
	s := src.AddNewChunk(0, 10)
	for i := range s.Data {
		s.Data[i] = 1
	}
	dst := remix.NewChannel()
	dst.AddNewChunk(0, 4) // shorter than requested count

	got := src.Chunkchunkfuncify(dst, 10, remix.Left, remix.CopyChunk)
	assert.Equal(t, remix.Count(4), got)
}
