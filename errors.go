package remix

import "errors"

// Sentinel errors returned by node operations. ErrSilence and ErrNoop are
// recovered locally by the caller (a container turns them into a zero-fill
// or a pass-through); the rest surface and abort the current call.
var (
	// ErrInvalid means the operation is not valid for this node's methods.
	ErrInvalid = errors.New("remix: invalid operation for node")
	// ErrNoEntity means a required lookup, or a nil input, was missing.
	ErrNoEntity = errors.New("remix: no such entity")
	// ErrExists means a duplicate key was already present.
	ErrExists = errors.New("remix: entity already exists")
	// ErrSilence means the operation would yield zero samples; the caller
	// zero-fills the destination region for the requested count instead.
	ErrSilence = errors.New("remix: silence")
	// ErrNoop means the operation would not modify data; the caller copies
	// input straight to output instead.
	ErrNoop = errors.New("remix: noop")
	// ErrSystem means a backing OS or library call failed.
	ErrSystem = errors.New("remix: system error")
)

// Recoverable reports whether err is one a container can recover from
// locally (ErrSilence or ErrNoop) rather than having to abort the call.
func Recoverable(err error) bool {
	return errors.Is(err, ErrSilence) || errors.Is(err, ErrNoop)
}
