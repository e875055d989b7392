package remix_test

import (
	"testing"

	"github.com/pipelined/remix"
	"github.com/stretchr/testify/assert"
)

func TestChunkClear(t *testing.T) {
	c := remix.NewChunk(10, 4)
	c.Data[0] = 1
	c.Data[3] = 2
	n, err := remix.ClearRegion(c, 11, 2, remix.Left)
	assert.NoError(t, err)
	assert.Equal(t, remix.Count(2), n)
	assert.Equal(t, remix.Sample(1), c.Data[0])
	assert.Equal(t, remix.Sample(0), c.Data[1])
	assert.Equal(t, remix.Sample(0), c.Data[2])
	assert.Equal(t, remix.Sample(2), c.Data[3])
}

func TestGainChunk(t *testing.T) {
	c := remix.NewChunk(0, 3)
	c.Data[0], c.Data[1], c.Data[2] = 1, 2, 3
	fn := remix.GainChunk(2)
	n, err := fn(c, 0, 3, remix.Left)
	assert.NoError(t, err)
	assert.Equal(t, remix.Count(3), n)
	assert.Equal(t, []remix.Sample{2, 4, 6}, c.Data)
}

func TestCopyChunkOverlap(t *testing.T) {
	src := remix.NewChunk(5, 4)
	for i := range src.Data {
		src.Data[i] = remix.Sample(i + 1)
	}
	dst := remix.NewChunk(0, 10)
	n, err := remix.CopyChunk(src, 5, dst, 0, 10, remix.Left)
	assert.NoError(t, err)
	assert.Equal(t, remix.Count(4), n)
	// srcStart 5 pairs with dstStart 0, so the four source samples land
	// at the start of dst; the copy stops where src ends.
	assert.Equal(t, []remix.Sample{1, 2, 3, 4, 0, 0, 0, 0, 0, 0}, dst.Data)
}

func TestAddChunk(t *testing.T) {
	src := remix.NewChunk(0, 3)
	src.Data[0], src.Data[1], src.Data[2] = 1, 1, 1
	dst := remix.NewChunk(0, 3)
	dst.Data[0], dst.Data[1], dst.Data[2] = 1, 2, 3
	n, err := remix.AddChunk(src, 0, dst, 0, 3, remix.Left)
	assert.NoError(t, err)
	assert.Equal(t, remix.Count(3), n)
	assert.Equal(t, []remix.Sample{2, 3, 4}, dst.Data)
}

func TestBlendChunk(t *testing.T) {
	src := remix.NewChunk(0, 2)
	src.Data[0], src.Data[1] = 1, 1
	dst := remix.NewChunk(0, 2)
	dst.Data[0], dst.Data[1] = 0, 0
	blend := remix.NewChunk(0, 2)
	blend.Data[0], blend.Data[1] = 1, 0 // fully dst, fully src

	n, err := remix.BlendChunk(src, 0, blend, 0, dst, 0, 2, remix.Left)
	assert.NoError(t, err)
	assert.Equal(t, remix.Count(2), n)
	assert.Equal(t, remix.Sample(0), dst.Data[0]) // all dst (which was 0)
	assert.Equal(t, remix.Sample(1), dst.Data[1]) // all src
}

func TestWriteLinear(t *testing.T) {
	data := make([]remix.Sample, 5)
	n := remix.WriteLinear(data, 0, 0, 10, 10, 0, 5)
	assert.Equal(t, remix.Count(5), n)
	for i, v := range data {
		assert.InDelta(t, float64(i), float64(v), 1e-6)
	}
}
