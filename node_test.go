package remix_test

import (
	"testing"

	"github.com/pipelined/remix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constantPlugin is a minimal stub plugin used to exercise Node/World
// wiring without depending on any of the reference plugins.
func constantPlugin(value remix.Sample) *remix.Plugin {
	return &remix.Plugin{
		Meta: remix.Meta{Name: "constant"},
		InitFn: func(ctx *remix.Context, init []remix.Parameter) (interface{}, *remix.Context, *remix.Methods, error) {
			methods := &remix.Methods{
				Clone:   func(n *remix.Node) (*remix.Node, error) { c := *n; return &c, nil },
				Destroy: func(n *remix.Node) {},
				Process: func(n *remix.Node, ctx *remix.Context, in *remix.Stream, out *remix.Stream, count remix.Count) (remix.Count, error) {
					for _, name := range out.Names() {
						out.Channel(name).Chunkfuncify(count, name, func(c *remix.Chunk, start, n remix.Count, _ remix.ChannelName) (remix.Count, error) {
							off := start - c.StartIndex
							region := c.Data[off : off+n]
							for i := range region {
								region[i] = value
							}
							return n, nil
						})
					}
					return count, nil
				},
			}
			return nil, nil, methods, nil
		},
	}
}

func TestWorldRegisterAndLookup(t *testing.T) {
	w := remix.NewWorld()
	p := constantPlugin(1)
	require.NoError(t, w.Register(p))

	got, err := w.Lookup("constant")
	require.NoError(t, err)
	assert.Same(t, p, got)

	err = w.Register(p)
	assert.ErrorIs(t, err, remix.ErrExists)

	_, err = w.Lookup("missing")
	assert.ErrorIs(t, err, remix.ErrNoEntity)
}

func TestNodeProcessAndOffset(t *testing.T) {
	w := remix.NewWorld()
	p := constantPlugin(0.25)
	require.NoError(t, w.Register(p))
	ctx := remix.NewContext()
	n, err := remix.NewNode(w, p, ctx, nil)
	require.NoError(t, err)

	out := remix.NewStream()
	ch := remix.NewChannel()
	ch.AddNewChunk(0, 8)
	out.AddChannel(remix.Left, ch)

	got, err := n.Process(ctx, nil, out, 8)
	require.NoError(t, err)
	assert.Equal(t, remix.Count(8), got)
	assert.Equal(t, remix.Count(8), n.Offset())
	for _, v := range ch.Chunks()[0].Data {
		assert.Equal(t, remix.Sample(0.25), v)
	}
}

func TestNodeDestroyUntracksFromWorld(t *testing.T) {
	w := remix.NewWorld()
	p := constantPlugin(1)
	require.NoError(t, w.Register(p))
	ctx := remix.NewContext()
	n, err := remix.NewNode(w, p, ctx, nil)
	require.NoError(t, err)

	n.Destroy()
	w.Purge() // must not panic or re-destroy n
}

func TestEnvSharePurgesOnLastRelease(t *testing.T) {
	env := remix.NewEnv()
	shared := env.Share()
	env.Release()
	// world must still be usable: shared handle keeps it alive.
	p := constantPlugin(1)
	require.NoError(t, shared.World.Register(p))
	shared.Release()
}

func TestNodeParameterRoundTrip(t *testing.T) {
	w := remix.NewWorld()
	p := &remix.Plugin{
		Meta: remix.Meta{Name: "param-test"},
		ProcessScheme: []remix.ParamScheme{
			{Key: 1, Name: "level", Type: remix.ParamFloat, Default: remix.FloatParam(1)},
		},
		InitFn: func(ctx *remix.Context, init []remix.Parameter) (interface{}, *remix.Context, *remix.Methods, error) {
			return nil, nil, &remix.Methods{
				Clone:   func(n *remix.Node) (*remix.Node, error) { c := *n; return &c, nil },
				Destroy: func(n *remix.Node) {},
			}, nil
		},
	}
	require.NoError(t, w.Register(p))
	ctx := remix.NewContext()
	n, err := remix.NewNode(w, p, ctx, nil)
	require.NoError(t, err)

	v, err := n.GetParameter(1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.F)

	require.NoError(t, n.SetParameter(1, remix.FloatParam(0.5)))
	v, err = n.GetParameter(1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v.F)

	err = n.SetParameter(1, remix.BoolParam(true))
	assert.ErrorIs(t, err, remix.ErrInvalid)
}
