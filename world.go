package remix

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// World is a plugin registry plus the set of live nodes instantiated
// from it. Nodes are tracked so a World can be purged: every live node
// is destroyed, in registration order, when the last handle sharing the
// world releases it.
type World struct {
	plugins map[string]*Plugin
	nodes   []*Node
	purging bool
	log     *log.Logger
}

// NewWorld returns an empty world with its own logger.
func NewWorld() *World {
	return &World{
		plugins: make(map[string]*Plugin),
		log:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "remix"}),
	}
}

// Register adds a plugin to the world under its Meta.Name. Registering
// a second plugin under a name already taken returns ErrExists.
func (w *World) Register(p *Plugin) error {
	if _, ok := w.plugins[p.Meta.Name]; ok {
		return fmt.Errorf("register %q: %w", p.Meta.Name, ErrExists)
	}
	w.plugins[p.Meta.Name] = p
	w.log.Debug("registered plugin", "name", p.Meta.Name)
	return nil
}

// Lookup returns the plugin registered under name, or ErrNoEntity.
func (w *World) Lookup(name string) (*Plugin, error) {
	p, ok := w.plugins[name]
	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", name, ErrNoEntity)
	}
	return p, nil
}

// PluginNames returns the names of every registered plugin.
func (w *World) PluginNames() []string {
	names := make([]string, 0, len(w.plugins))
	for n := range w.plugins {
		names = append(names, n)
	}
	return names
}

// track records a live node so Purge can destroy it later.
func (w *World) track(n *Node) {
	if w.purging {
		return
	}
	w.nodes = append(w.nodes, n)
}

// untrack removes a node from the live set, e.g. on explicit Destroy.
func (w *World) untrack(n *Node) {
	for i, c := range w.nodes {
		if c == n {
			w.nodes = append(w.nodes[:i], w.nodes[i+1:]...)
			return
		}
	}
}

// Purge destroys every live node created from this world, in
// registration order, and marks the world as purging so further
// tracking is a no-op (a node destroying itself mid-purge must not
// re-enter the live set).
func (w *World) Purge() {
	w.purging = true
	defer func() { w.purging = false }()
	nodes := w.nodes
	w.nodes = nil
	for _, n := range nodes {
		n.Destroy()
	}
}

// EnvHandle is a reference-counted handle onto a shared World and its
// rendering Context. LastError
// mirrors the most recent call's error for hosts that prefer a
// check-after-call idiom over inspecting a Go error return directly.
type EnvHandle struct {
	LastError error
	Context   *Context
	World     *World
	refs      *int32
}

// NewEnv returns a fresh handle over a new world and a default context.
func NewEnv() *EnvHandle {
	n := int32(1)
	return &EnvHandle{Context: NewContext(), World: NewWorld(), refs: &n}
}

// Share returns a new handle referencing the same world and context,
// incrementing the shared reference count.
func (e *EnvHandle) Share() *EnvHandle {
	atomic.AddInt32(e.refs, 1)
	return &EnvHandle{Context: e.Context, World: e.World, refs: e.refs}
}

// Release decrements the shared reference count and purges the world
// once the last handle sharing it is released.
func (e *EnvHandle) Release() {
	if atomic.AddInt32(e.refs, -1) == 0 {
		e.World.Purge()
	}
}

// Fail records err as LastError and returns it unchanged, so a call
// site that still wants an idiomatic Go error return can be written as
// `return env.Fail(err)` while also updating LastError for callers that
// check it C-API-style after the fact.
func (e *EnvHandle) Fail(err error) error {
	e.LastError = err
	return err
}
