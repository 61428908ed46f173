package reservation

// LookupState tags the outcome of a single-row lookup.
type LookupState int

const (
	LookupFound LookupState = iota
	LookupNotFound
	LookupFailed
)

func (s LookupState) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupNotFound:
		return "not_found"
	default:
		return "failed"
	}
}

// Lookup is the result of fetching one row: Found(v), NotFound or
// Failed(err). Callers switch on State instead of checking nil values.
type Lookup[T any] struct {
	state LookupState
	value T
	err   error
}

func Found[T any](v T) Lookup[T] {
	return Lookup[T]{state: LookupFound, value: v}
}

func NotFound[T any]() Lookup[T] {
	return Lookup[T]{state: LookupNotFound}
}

func Failed[T any](err error) Lookup[T] {
	return Lookup[T]{state: LookupFailed, err: err}
}

func (l Lookup[T]) State() LookupState {
	return l.state
}

// Value is the row for Found, the zero value otherwise.
func (l Lookup[T]) Value() T {
	return l.value
}

func (l Lookup[T]) Err() error {
	return l.err
}

// Ptr returns a pointer to the row for Found and nil otherwise.
func (l Lookup[T]) Ptr() *T {
	if l.state != LookupFound {
		return nil
	}
	v := l.value
	return &v
}
