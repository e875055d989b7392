package remix_test

import (
	"testing"

	"github.com/pipelined/remix"
	"github.com/stretchr/testify/assert"
)

func TestNewContextDefaults(t *testing.T) {
	ctx := remix.NewContext()
	assert.Equal(t, 44100.0, ctx.SampleRate)
	assert.Equal(t, 120.0, ctx.Tempo)
	assert.Equal(t, remix.Count(1024), ctx.Mixlength)
	assert.True(t, ctx.HasChannel(remix.Left))
	assert.False(t, ctx.HasChannel(remix.Right))
}

func TestContextMergeTakesMaxAndUnion(t *testing.T) {
	a := remix.NewContext()
	a.SetMixlength(512)
	a.SetChannels(remix.Left)

	b := remix.NewContext()
	b.SetMixlength(2048)
	b.SetChannels(remix.Right)

	a.Merge(b)
	assert.Equal(t, remix.Count(2048), b.Mixlength)
	assert.True(t, b.HasChannel(remix.Left))
	assert.True(t, b.HasChannel(remix.Right))
}

func TestContextEncompasses(t *testing.T) {
	limit := remix.NewContext()
	limit.SetMixlength(1024)
	limit.SetChannels(remix.Left, remix.Right)

	ambient := remix.NewContext()
	ambient.SetMixlength(512)
	ambient.SetChannels(remix.Left, remix.Right)
	assert.False(t, ambient.Encompasses(limit))

	ambient.SetMixlength(2048)
	assert.True(t, ambient.Encompasses(limit))
}

func TestContextCopyIsIndependent(t *testing.T) {
	a := remix.NewContext()
	dest := remix.NewContext()
	a.Copy(dest)
	dest.SetChannels(remix.Rear)
	assert.True(t, a.HasChannel(remix.Left))
	assert.False(t, a.HasChannel(remix.Rear))
}
