package remix_test

import (
	"testing"

	"github.com/pipelined/remix"
	"pgregory.net/rapid"
)

// TestChannelSortedInvariant checks that AddChunk keeps a channel's
// chunks sorted by StartIndex no matter what order chunks arrive in,
// and that Chunkfuncify never processes more samples than requested.
func TestChannelSortedInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		starts := rapid.SliceOfN(rapid.IntRange(0, 200), 1, 12).Draw(rt, "starts")
		ch := remix.NewChannel()
		for _, s := range starts {
			ch.AddNewChunk(remix.Count(s), remix.Count(rapid.IntRange(1, 20).Draw(rt, "len")))
		}
		chunks := ch.Chunks()
		for i := 0; i+1 < len(chunks); i++ {
			if chunks[i].StartIndex > chunks[i+1].StartIndex {
				rt.Fatalf("chunks not sorted: %d appears before %d", chunks[i].StartIndex, chunks[i+1].StartIndex)
			}
		}

		count := remix.Count(rapid.IntRange(1, 50).Draw(rt, "count"))
		got := ch.Chunkfuncify(count, remix.Left, func(c *remix.Chunk, start, n remix.Count, _ remix.ChannelName) (remix.Count, error) {
			return n, nil
		})
		if got > count {
			rt.Fatalf("chunkfuncify processed more than requested: %d > %d", got, count)
		}
	})
}

// TestLaterChunkAlwaysWinsOverlap checks the later-StartIndex-wins
// invariant holds for every pairwise overlap, regardless of insertion
// order.
func TestLaterChunkAlwaysWinsOverlap(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ch := remix.NewChannel()
		early := ch.AddNewChunk(0, remix.Count(rapid.IntRange(5, 30).Draw(rt, "earlyLen")))
		for i := range early.Data {
			early.Data[i] = 1
		}
		lateStart := remix.Count(rapid.IntRange(1, int(early.Length())-1).Draw(rt, "lateStart"))
		late := ch.AddNewChunk(lateStart, remix.Count(rapid.IntRange(1, 10).Draw(rt, "lateLen")))
		for i := range late.Data {
			late.Data[i] = 2
		}

		out := remix.NewChannel()
		out.AddNewChunk(0, early.Length()+late.Length())
		ch.Chunkchunkfuncify(out, early.Length()+late.Length(), remix.Left, remix.CopyChunk)

		data := out.Chunks()[0].Data
		for i := lateStart; i < lateStart+late.Length(); i++ {
			if data[i] != 2 {
				rt.Fatalf("index %d: expected later chunk's value 2, got %v", i, data[i])
			}
		}
	})
}
