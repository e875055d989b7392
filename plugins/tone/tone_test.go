package tone_test

import (
	"testing"

	"github.com/pipelined/remix"
	"github.com/pipelined/remix/plugins/tone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneConstantSource(t *testing.T) {
	w := remix.NewWorld()
	p := tone.Plugin()
	require.NoError(t, w.Register(p))
	ctx := remix.NewContext()

	n, err := remix.NewNode(w, p, ctx, []remix.Parameter{remix.FloatParam(0), remix.FloatParam(1)})
	require.NoError(t, err)

	out := remix.NewStream()
	ch := remix.NewChannel()
	ch.AddNewChunk(0, 16)
	out.AddChannel(remix.Left, ch)
	_, err = n.Process(ctx, nil, out, 16)
	require.NoError(t, err)
	for _, v := range ch.Chunks()[0].Data {
		assert.Equal(t, remix.Sample(1), v)
	}
}

func TestToneSquareAlternates(t *testing.T) {
	w := remix.NewWorld()
	p := tone.Plugin()
	require.NoError(t, w.Register(p))
	ctx := remix.NewContext()
	ctx.SampleRate = 8

	n, err := remix.NewNode(w, p, ctx, []remix.Parameter{remix.FloatParam(1), remix.FloatParam(1)})
	require.NoError(t, err)

	out := remix.NewStream()
	ch := remix.NewChannel()
	ch.AddNewChunk(0, 8)
	out.AddChannel(remix.Left, ch)
	_, err = n.Process(ctx, nil, out, 8)
	require.NoError(t, err)
	data := ch.Chunks()[0].Data
	assert.Equal(t, remix.Sample(1), data[0])
	assert.Equal(t, remix.Sample(-1), data[4])
}
