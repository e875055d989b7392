// Package gain implements a trivial in-place gain filter plugin,
// grounded on the single filter-type node shape the reference engine's
// plugin contract describes: a node that wraps another node and scales
// that node's output by one runtime-adjustable parameter.
package gain

import "github.com/pipelined/remix"

const paramGain = 1

// Plugin returns the registered gain plugin description. A gain node
// is placed downstream of a source node in the render graph; it has no
// input of its own in this engine's pull model, so it wraps another
// node and scales that node's output in place.
func Plugin() *remix.Plugin {
	return &remix.Plugin{
		Meta: remix.Meta{
			Name:        "gain",
			Description: "scales another node's output by a runtime gain",
			Author:      "remix",
		},
		Flags: remix.Seekable,
		ProcessScheme: []remix.ParamScheme{
			{
				Key: paramGain, Name: "gain", Label: "Gain", Type: remix.ParamFloat,
				Default:    remix.FloatParam(1),
				Constraint: remix.ParamConstraint{Kind: remix.ConstraintRange, Lower: remix.FloatParam(0), Upper: remix.FloatParam(4)},
			},
		},
		InitFn: initGain,
	}
}

type instance struct {
	wrapped *remix.Node
}

// pendingWrapped hands the node to be wrapped to the next NewNode call
// made against the gain plugin. The engine instantiates nodes one at a
// time and single-threaded, so this simple hand-off is sufficient.
var pendingWrapped *remix.Node

// WithWrapped sets the node to be wrapped for the next NewNode call made
// against the gain plugin.
func WithWrapped(n *remix.Node) { pendingWrapped = n }

func initGain(ctx *remix.Context, init []remix.Parameter) (interface{}, *remix.Context, *remix.Methods, error) {
	wrapped := pendingWrapped
	pendingWrapped = nil
	inst := &instance{wrapped: wrapped}
	methods := &remix.Methods{
		Clone:   cloneGain,
		Destroy: destroyGain,
		Process: processGain,
		Seek:    seekGain,
		Length:  lengthGain,
	}
	return inst, nil, methods, nil
}

func lengthGain(n *remix.Node) remix.Count {
	inst := n.Data.(*instance)
	if inst.wrapped == nil {
		return 0
	}
	return inst.wrapped.Length()
}

func processGain(n *remix.Node, ctx *remix.Context, in *remix.Stream, out *remix.Stream, count remix.Count) (remix.Count, error) {
	inst := n.Data.(*instance)
	if inst.wrapped == nil {
		return 0, remix.ErrNoop
	}
	starts := make(map[remix.ChannelName]remix.Count)
	for _, name := range out.Names() {
		starts[name] = out.Channel(name).Tell()
	}
	got, err := inst.wrapped.Process(ctx, in, out, count)
	if err != nil && !remix.Recoverable(err) {
		return got, err
	}
	g, gerr := n.GetParameter(paramGain)
	if gerr == nil && g.F != 1 {
		// rewind to where the wrapped node started writing, so the gain
		// scales the samples it just produced.
		for name, at := range starts {
			out.Channel(name).Seek(at)
		}
		remix.Gain(ctx, out, got, remix.Sample(g.F))
	}
	return got, err
}

func seekGain(n *remix.Node, mode remix.SeekMode, offset remix.Count) (remix.Count, error) {
	inst := n.Data.(*instance)
	if inst.wrapped == nil {
		return offset, nil
	}
	return inst.wrapped.Seek(mode, offset)
}

func cloneGain(n *remix.Node) (*remix.Node, error) {
	inst := n.Data.(*instance)
	var wrappedClone *remix.Node
	var err error
	if inst.wrapped != nil {
		wrappedClone, err = inst.wrapped.Clone()
		if err != nil {
			return nil, err
		}
	}
	clone := *n
	clone.Data = &instance{wrapped: wrappedClone}
	return &clone, nil
}

func destroyGain(n *remix.Node) {
	inst := n.Data.(*instance)
	if inst.wrapped != nil {
		inst.wrapped.Destroy()
	}
}
