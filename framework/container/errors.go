package container

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConstructor is returned by Register when the last signature element
	// is not a constructible type. The table is left untouched.
	ErrConstructor = errors.New("only constructible types are supported")

	// ErrRegistration is returned by Get when a label has no entry, either for
	// the requested label itself or for any label in its dependency chain.
	ErrRegistration = errors.New("service not registered")

	// ErrCircularDependency is returned when a label is requested again while
	// it is still being resolved. The message carries the full chain.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrInvalidLabel is returned when a label cannot be used as a map key.
	ErrInvalidLabel = errors.New("label must be comparable")

	// ErrTypeMismatch is returned by Resolve when the resolved instance is not
	// of the requested type.
	ErrTypeMismatch = errors.New("service type mismatch")
)

// ConstructionError wraps a failure raised by a constructor itself, as
// opposed to a failure resolving one of its dependencies.
type ConstructionError struct {
	Label any
	Err   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("constructing %v: %v", e.Label, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

func registrationError(label any) error {
	return fmt.Errorf("%w: %v", ErrRegistration, label)
}

func circularError(stack []any, label any) error {
	chain := make([]string, 0, len(stack)+1)
	for _, l := range stack {
		chain = append(chain, fmt.Sprint(l))
	}
	chain = append(chain, fmt.Sprint(label))

	return fmt.Errorf("%w: %s", ErrCircularDependency, strings.Join(chain, " -> "))
}
