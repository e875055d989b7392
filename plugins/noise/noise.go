// Package noise implements a deterministic white-noise source plugin,
// grounded on the reference engine's remix_noise plugin: a leaf node
// with no input, seeded for reproducible output rather than relying on
// an unseeded global generator.
package noise

import (
	"math/rand"

	"github.com/pipelined/remix"
)

const paramSeed = 1

// Plugin returns the registered noise plugin description.
func Plugin() *remix.Plugin {
	return &remix.Plugin{
		Meta: remix.Meta{
			Name:        "noise",
			Description: "deterministic seeded white noise source",
			Author:      "remix",
		},
		Flags: remix.Seekable,
		InitScheme: []remix.ParamScheme{
			{Key: paramSeed, Name: "seed", Label: "Seed", Type: remix.ParamInt, Default: remix.IntParam(1)},
		},
		InitFn: initNoise,
	}
}

type instance struct {
	seed int64
	rng  *rand.Rand
	pos  remix.Count
}

func initNoise(ctx *remix.Context, init []remix.Parameter) (interface{}, *remix.Context, *remix.Methods, error) {
	seed := int64(1)
	if len(init) > 0 && init[0].Type == remix.ParamInt {
		seed = init[0].I
	}
	inst := &instance{seed: seed, rng: rand.New(rand.NewSource(seed))}
	methods := &remix.Methods{
		Clone:   cloneNoise,
		Destroy: destroyNoise,
		Process: processNoise,
		Seek:    seekNoise,
		Length:  lengthNoise,
	}
	return inst, nil, methods, nil
}

// lengthNoise returns 0: noise is an unbounded source, matching the
// reference plugin's behaviour (no natural end).
func lengthNoise(n *remix.Node) remix.Count { return 0 }

func processNoise(n *remix.Node, ctx *remix.Context, in *remix.Stream, out *remix.Stream, count remix.Count) (remix.Count, error) {
	inst := n.Data.(*instance)
	for _, name := range out.Names() {
		ch := out.Channel(name)
		if ch == nil {
			continue
		}
		fillNoise(ch, inst, count, name)
	}
	inst.pos += count
	return count, nil
}

// fillNoise writes count freshly-generated samples into every chunk the
// destination channel has starting at its own cursor, matching the
// gap-aware semantics used throughout the engine: a channel with no
// chunk defined at a position is simply skipped, not zero-filled,
// because a source node has nothing the transparency rule applies to.
func fillNoise(ch *remix.Channel, inst *instance, count remix.Count, name remix.ChannelName) {
	ch.Chunkfuncify(count, name, func(c *remix.Chunk, start, n remix.Count, _ remix.ChannelName) (remix.Count, error) {
		offset := start - c.StartIndex
		region := c.Data[offset : offset+n]
		for i := range region {
			region[i] = remix.Sample(inst.rng.Float64()*2 - 1)
		}
		return n, nil
	})
}

func seekNoise(n *remix.Node, mode remix.SeekMode, offset remix.Count) (remix.Count, error) {
	inst := n.Data.(*instance)
	switch mode {
	case remix.SeekRelative:
		inst.pos += offset
	default:
		inst.pos = offset
	}
	// re-seed deterministically from the seek position so repeated reads
	// of the same region reproduce the same noise.
	inst.rng = rand.New(rand.NewSource(inst.seed + int64(inst.pos)))
	return inst.pos, nil
}

func cloneNoise(n *remix.Node) (*remix.Node, error) {
	inst := n.Data.(*instance)
	clone := *n
	clone.Data = &instance{seed: inst.seed, rng: rand.New(rand.NewSource(inst.seed)), pos: inst.pos}
	return &clone, nil
}

func destroyNoise(n *remix.Node) {}
