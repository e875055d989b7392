// Package tone implements a constant and square-wave tone source,
// grounded on the reference engine's squaredemo sample plugin: a simple
// leaf source useful for exercising gain and blend envelopes against a
// signal whose value is trivial to predict by hand.
package tone

import "github.com/pipelined/remix"

const (
	paramFrequency = 1
	paramAmplitude = 2
)

// Plugin returns the registered tone plugin description. With
// frequency 0 the source is a constant at its amplitude, matching the
// "constant-1.0 source" shape used to exercise envelopes in isolation;
// with frequency > 0 it produces a square wave.
func Plugin() *remix.Plugin {
	return &remix.Plugin{
		Meta: remix.Meta{
			Name:        "tone",
			Description: "constant or square-wave tone source",
			Author:      "remix",
		},
		Flags: remix.Seekable,
		InitScheme: []remix.ParamScheme{
			{Key: paramFrequency, Name: "frequency", Label: "Frequency (Hz)", Type: remix.ParamFloat, Default: remix.FloatParam(0)},
			{Key: paramAmplitude, Name: "amplitude", Label: "Amplitude", Type: remix.ParamFloat, Default: remix.FloatParam(1)},
		},
		InitFn: initTone,
	}
}

type instance struct {
	frequency float64
	amplitude float64
	sampleHz  float64
	pos       remix.Count
}

func initTone(ctx *remix.Context, init []remix.Parameter) (interface{}, *remix.Context, *remix.Methods, error) {
	inst := &instance{amplitude: 1, sampleHz: ctx.SampleRate}
	if len(init) > 0 {
		inst.frequency = init[0].F
	}
	if len(init) > 1 {
		inst.amplitude = init[1].F
	}
	methods := &remix.Methods{
		Clone:   cloneTone,
		Destroy: destroyTone,
		Process: processTone,
		Seek:    seekTone,
		Length:  lengthTone,
	}
	return inst, nil, methods, nil
}

func lengthTone(n *remix.Node) remix.Count { return 0 }

func processTone(n *remix.Node, ctx *remix.Context, in *remix.Stream, out *remix.Stream, count remix.Count) (remix.Count, error) {
	inst := n.Data.(*instance)
	for _, name := range out.Names() {
		ch := out.Channel(name)
		if ch == nil {
			continue
		}
		ch.Chunkfuncify(count, name, func(c *remix.Chunk, start, n remix.Count, _ remix.ChannelName) (remix.Count, error) {
			offset := start - c.StartIndex
			region := c.Data[offset : offset+n]
			base := inst.pos + start
			for i := range region {
				region[i] = remix.Sample(inst.valueAt(base + remix.Count(i)))
			}
			return n, nil
		})
	}
	inst.pos += count
	return count, nil
}

// valueAt evaluates the tone at absolute sample index t.
func (inst *instance) valueAt(t remix.Count) float64 {
	if inst.frequency <= 0 {
		return inst.amplitude
	}
	period := inst.sampleHz / inst.frequency
	phase := float64(t)
	for phase >= period {
		phase -= period
	}
	if phase < period/2 {
		return inst.amplitude
	}
	return -inst.amplitude
}

func seekTone(n *remix.Node, mode remix.SeekMode, offset remix.Count) (remix.Count, error) {
	inst := n.Data.(*instance)
	switch mode {
	case remix.SeekRelative:
		inst.pos += offset
	default:
		inst.pos = offset
	}
	return inst.pos, nil
}

func cloneTone(n *remix.Node) (*remix.Node, error) {
	inst := n.Data.(*instance)
	clone := *n
	c := *inst
	clone.Data = &c
	return &clone, nil
}

func destroyTone(n *remix.Node) {}
