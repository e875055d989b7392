package remix

// SeekMode selects how a Node.Seek offset is interpreted.
type SeekMode int

const (
	SeekAbsolute SeekMode = iota
	SeekRelative
	SeekRelativeEnd
)

// Methods is a node's dispatch table: every behaviour a Node exposes is
// a function field here, rather than a method on a concrete type. A
// plugin rebinds this table as its topology or parameters change shape
// (an envelope with one point binds a constant-value table, one with
// many binds a search-and-interpolate table; a track with one layer
// binds a table that calls it directly, with no scratch buffers) so the hot path
// never branches on a case that can't occur for this instance.
//
// Any nil field falls back to the corresponding default in
// defaultMethods: absent Clone, Destroy or Process make the node
// unusable (ErrInvalid); absent Seek records the new offset without
// touching any internal position; absent Flush is a no-op.
type Methods struct {
	Clone   func(n *Node) (*Node, error)
	Destroy func(n *Node)
	Ready   func(n *Node, ctx *Context) bool
	Prepare func(n *Node, ctx *Context) error
	Process func(n *Node, ctx *Context, in *Stream, out *Stream, count Count) (Count, error)
	Length  func(n *Node) Count
	Seek    func(n *Node, mode SeekMode, offset Count) (Count, error)
	Flush   func(n *Node)
}

// Node is a live instance of a Plugin: its private data, current method
// table, parameter values, and the universal bookkeeping common to
// every node regardless of kind (stream offset, the context limit it
// was last prepared against).
type Node struct {
	World        *World
	Plugin       *Plugin
	methods      Methods
	Parameters   map[int]Parameter
	Data         interface{}
	offset       Count
	contextLimit *Context
}

// nullLength and nullSeek are the method-table defaults a Node falls
// back to for an absent Length or Seek; nullProcess is the matching null
// Process (ErrNoop) that a method table can bind explicitly.
func nullLength(n *Node) Count { return 0 }

func nullProcess(n *Node, ctx *Context, in *Stream, out *Stream, count Count) (Count, error) {
	return 0, ErrNoop
}

func nullSeek(n *Node, mode SeekMode, offset Count) (Count, error) {
	switch mode {
	case SeekRelative:
		n.offset += offset
	case SeekRelativeEnd:
		n.offset = n.methods.Length(n) + offset
	default:
		n.offset = offset
	}
	return n.offset, nil
}

func nullReady(n *Node, ctx *Context) bool {
	return n.contextLimit == nil || ctx.Encompasses(n.contextLimit)
}

func nullFlush(n *Node) {}

// NewNode instantiates plugin into a live Node under world, given the
// ambient context and constructor parameters. The plugin's InitFn
// supplies the node's private data, context limit and method table;
// absent table entries take their universal defaults.
func NewNode(world *World, plugin *Plugin, ctx *Context, init []Parameter) (*Node, error) {
	if plugin == nil || plugin.InitFn == nil {
		return nil, ErrInvalid
	}
	data, limit, methods, err := plugin.InitFn(ctx, init)
	if err != nil {
		return nil, err
	}
	n := &Node{
		World:        world,
		Plugin:       plugin,
		Data:         data,
		contextLimit: limit,
		Parameters:   make(map[int]Parameter),
	}
	if methods != nil {
		n.methods = *methods
	}
	n.fillDefaults()
	if n.methods.Clone == nil || n.methods.Destroy == nil {
		return nil, ErrInvalid
	}
	if world != nil {
		world.track(n)
	}
	return n, nil
}

// fillDefaults patches nil method-table entries with the universal
// defaults described on Methods.
func (n *Node) fillDefaults() {
	if n.methods.Ready == nil {
		n.methods.Ready = nullReady
	}
	if n.methods.Prepare == nil {
		n.methods.Prepare = func(n *Node, ctx *Context) error { return nil }
	}
	if n.methods.Process == nil {
		n.methods.Process = func(n *Node, ctx *Context, in *Stream, out *Stream, count Count) (Count, error) {
			return 0, ErrInvalid
		}
	}
	if n.methods.Length == nil {
		n.methods.Length = nullLength
	}
	if n.methods.Seek == nil {
		n.methods.Seek = nullSeek
	}
	if n.methods.Flush == nil {
		n.methods.Flush = nullFlush
	}
}

// Rebind replaces n's method table wholesale, e.g. when a parent's
// optimiser reselects n's implementation for a new topology. Absent
// entries again fall back to the universal defaults.
func (n *Node) Rebind(methods Methods) {
	n.methods = methods
	n.fillDefaults()
}

// Ready reports whether ctx satisfies the context limit this node was
// built against -- i.e. whether Process may be called without first
// calling Prepare.
func (n *Node) Ready(ctx *Context) bool {
	return n.methods.Ready(n, ctx)
}

// Prepare readies n against ctx if it is not already ready, recording
// ctx as n's new context limit on success.
func (n *Node) Prepare(ctx *Context) error {
	if n.Ready(ctx) {
		return nil
	}
	if err := n.methods.Prepare(n, ctx); err != nil {
		return err
	}
	limit := NewContext()
	ctx.Copy(limit)
	n.contextLimit = limit
	return nil
}

// Process runs count samples of n's output into out, preparing n
// against ctx first if necessary. in carries whatever upstream signal n
// sits in front of (nil at the top of a render graph); a source node
// ignores it, a filter-shaped node passes it to Methods.Process to
// mix, gate or chain against. On success it advances n's offset by the
// number of samples actually processed.
func (n *Node) Process(ctx *Context, in *Stream, out *Stream, count Count) (Count, error) {
	if err := n.Prepare(ctx); err != nil {
		return 0, err
	}
	got, err := n.methods.Process(n, ctx, in, out, count)
	if err != nil && !Recoverable(err) {
		return got, err
	}
	n.offset += got
	return got, err
}

// Length returns n's total duration in samples, or 0 for unbounded or
// unsupporting nodes.
func (n *Node) Length() Count { return n.methods.Length(n) }

// Seek moves n's playback position and returns the resulting absolute
// offset.
func (n *Node) Seek(mode SeekMode, offset Count) (Count, error) {
	return n.methods.Seek(n, mode, offset)
}

// Offset returns n's last recorded stream offset.
func (n *Node) Offset() Count { return n.offset }

// Flush resets any internal buffering n holds, without altering offset.
func (n *Node) Flush() { n.methods.Flush(n) }

// Clone returns an independent copy of n, sharing the same Plugin and
// World but with its own private data and method table.
func (n *Node) Clone() (*Node, error) {
	if n.methods.Clone == nil {
		return nil, ErrInvalid
	}
	return n.methods.Clone(n)
}

// Destroy releases n's private data and removes it from its world's
// live-node set.
func (n *Node) Destroy() {
	if n.methods.Destroy != nil {
		n.methods.Destroy(n)
	}
	if n.World != nil {
		n.World.untrack(n)
	}
}

// GetParameter returns the current value of parameter key, falling back
// to the plugin's declared default if it has never been set.
func (n *Node) GetParameter(key int) (Parameter, error) {
	if v, ok := n.Parameters[key]; ok {
		return v, nil
	}
	if n.Plugin != nil {
		if s := n.Plugin.ParamSchemeByKey(key); s != nil {
			return s.Default, nil
		}
	}
	return Parameter{}, ErrNoEntity
}

// SetParameter validates value against the plugin's declared scheme for
// key (if any) and records it.
func (n *Node) SetParameter(key int, value Parameter) error {
	if n.Plugin != nil {
		if s := n.Plugin.ParamSchemeByKey(key); s != nil {
			if s.Type != value.Type {
				return ErrInvalid
			}
			if !constraintAllows(s.Constraint, value) {
				return ErrInvalid
			}
		}
	}
	n.Parameters[key] = value
	return nil
}

func constraintAllows(c ParamConstraint, v Parameter) bool {
	switch c.Kind {
	case ConstraintList:
		for _, item := range c.List {
			if item == v {
				return true
			}
		}
		return false
	case ConstraintRange:
		switch v.Type {
		case ParamInt:
			return v.I >= c.Lower.I && v.I <= c.Upper.I
		case ParamFloat:
			return v.F >= c.Lower.F && v.F <= c.Upper.F
		}
	}
	return true
}
