package inetcore

import (
	"errors"
	"fmt"
)

// Sentinel errors for the hard failure taxonomy: conditions a Machine
// cannot recover from by retrying. Transient resource contention is not
// reported through any of them.
var (
	// ErrArenaExhausted is returned when a single interaction needs more
	// node or variable slots, or more redex-bag room, than the Machine
	// was ever configured with — no amount of retrying changes that.
	ErrArenaExhausted = errors.New("inetcore: arena permanently exhausted")
	// ErrMalformedBook is returned when Run's entry reference or a CALL's
	// Ref has no matching Def. Template-local node and variable indices
	// are not validated; an out-of-range index panics when the definition
	// is instantiated.
	ErrMalformedBook = errors.New("inetcore: malformed book")
	// ErrThreadCountInvalid is returned when a Machine is constructed
	// with a thread count that is not a power of two, which the
	// work-stealing tournament tree requires.
	ErrThreadCountInvalid = errors.New("inetcore: thread count must be a power of two")
)

// ResourceKind identifies which shared resource a ResourceError concerns.
type ResourceKind uint8

const (
	// ResourceRedexBag indicates the shortfall was in a worker's own
	// redex bag capacity.
	ResourceRedexBag ResourceKind = iota
	// ResourceNodeArena indicates the shortfall was in the shared node
	// arena.
	ResourceNodeArena
	// ResourceVarsArena indicates the shortfall was in the shared
	// variable arena.
	ResourceVarsArena
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceRedexBag:
		return "redex bag"
	case ResourceNodeArena:
		return "node arena"
	case ResourceVarsArena:
		return "variable arena"
	default:
		return "unknown resource"
	}
}

// ResourceError describes an interaction that needs more redex-bag room,
// node slots or variable slots than the Machine was configured with at
// all. It wraps ErrArenaExhausted and is fatal: the reduction stops. A
// transient shortfall (the capacity exists but is busy right now) is not
// reported as a ResourceError; the redex is pushed back onto the bag and
// retried, and the retry is logged as a rate-limited warning.
type ResourceError struct {
	Kind    ResourceKind
	Needed  int
	Rule    Rule
	Cause   error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("inetcore: insufficient %s for %s interaction (needed %d)", e.Kind, e.Rule, e.Needed)
}

func (e *ResourceError) Unwrap() error {
	return e.Cause
}

// FatalError wraps a hard failure (one of the Err* sentinels above) with
// the context that triggered it.
type FatalError struct {
	Cause   error
	Message string
}

func (e *FatalError) Error() string {
	if e.Message == "" {
		return e.Cause.Error()
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Cause
}

// WrapError wraps an error with a message and cause chain, matching
// errors.Is(result, cause) == true.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
