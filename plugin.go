package remix

// Flags describes static capabilities of a plugin, queried by hosts that
// need to know before instantiation whether a node can be written to,
// seeked within, cached, or whether it behaves causally (output at time
// t depends only on input up to t).
type Flags uint8

const (
	Writeable Flags = 1 << iota
	Seekable
	Cacheable
	Causal
)

// Has reports whether all of want is set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// ParamType tags the representation of a Parameter value.
type ParamType int

const (
	ParamBool ParamType = iota
	ParamInt
	ParamFloat
	ParamString
)

// ParamHint suggests how a host should present a parameter to a user.
type ParamHint int

const (
	HintDefault ParamHint = iota
	HintLog
	HintTime
	HintFilename
)

// ParamConstraintKind selects how ParamConstraint restricts a value.
type ParamConstraintKind int

const (
	ConstraintNone ParamConstraintKind = iota
	ConstraintList
	ConstraintRange
)

// ParamConstraint restricts the legal values of a parameter, either to
// an explicit list or to a bounded, optionally stepped, numeric range.
type ParamConstraint struct {
	Kind  ParamConstraintKind
	List  []Parameter
	Lower Parameter
	Upper Parameter
	Step  Parameter
}

// ParamScheme describes one parameter a plugin instance exposes: its
// key, type, default, constraint and presentation hint.
type ParamScheme struct {
	Key        int
	Name       string
	Label      string
	Type       ParamType
	Default    Parameter
	Constraint ParamConstraint
	Hint       ParamHint
}

// Parameter is a small sum type holding one typed parameter value.
// Exactly one of the fields is meaningful, selected by Type.
type Parameter struct {
	Type ParamType
	B    bool
	I    int64
	F    float64
	S    string
}

// BoolParam, IntParam, FloatParam and StringParam build typed Parameters.
func BoolParam(v bool) Parameter    { return Parameter{Type: ParamBool, B: v} }
func IntParam(v int64) Parameter    { return Parameter{Type: ParamInt, I: v} }
func FloatParam(v float64) Parameter { return Parameter{Type: ParamFloat, F: v} }
func StringParam(v string) Parameter { return Parameter{Type: ParamString, S: v} }

// Meta carries a plugin's identity: name, description, author, for
// display and logging purposes.
type Meta struct {
	Name        string
	Description string
	Author      string
}

// InitFunc constructs a new instance of a plugin's private data, given
// the ambient context and any constructor parameters. It returns the
// instance's private data, the context limit the node requires to
// operate (see Node.Ready) and the method table the node should dispatch
// through -- plugins that specialise their behaviour by topology or
// parameter shape rebind this table, rather than branching inside a
// single fixed Process implementation.
type InitFunc func(ctx *Context, init []Parameter) (data interface{}, limit *Context, methods *Methods, err error)

// SuggestFunc lets a plugin propose its own context requirements before
// full initialisation. Nothing in this package calls it; a World stores
// plugins without consulting SuggestFn.
type SuggestFunc func(ctx *Context) *Context

// DestroyFunc releases any resources held by a plugin instance's data.
type DestroyFunc func(data interface{})

// Plugin is the static, registered description of a node type: identity,
// capability flags, parameter schemes for construction and per-instance
// control, and the functions that build and tear down instances. A
// Plugin is registered once into a World and then instantiated many
// times as Nodes.
type Plugin struct {
	Meta          Meta
	Flags         Flags
	InitScheme    []ParamScheme
	InitFn        InitFunc
	ProcessScheme []ParamScheme
	SuggestFn     SuggestFunc
	DestroyFn     DestroyFunc
}

// ParamSchemeByKey returns the ProcessScheme entry with the given key,
// or nil if none matches.
func (p *Plugin) ParamSchemeByKey(key int) *ParamScheme {
	for i := range p.ProcessScheme {
		if p.ProcessScheme[i].Key == key {
			return &p.ProcessScheme[i]
		}
	}
	return nil
}
