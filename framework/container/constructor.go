package container

import (
	"errors"
	"fmt"
	"reflect"
)

// Constructor is the capability a signature tail must carry. Register
// rejects anything else, including plain Go functions.
//
// Construct receives the resolved dependencies in the order they were listed
// in the signature and returns the new instance.
type Constructor interface {
	Construct(args ...any) (any, error)
}

// arityChecker is implemented by constructors that can tell at registration
// time whether a given number of dependencies fits them.
type arityChecker interface {
	checkArity(deps int) error
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// class adapts a constructor function to the Constructor capability.
type class struct {
	fn  reflect.Value
	err error
}

// Class marks fn as a constructible type. fn must be a function with the
// signature func(deps...) T or func(deps...) (T, error); its parameters are
// filled from the dependency labels listed before it in the signature.
//
//	c.Register("superhero", "superpower", container.Class(NewSuperhero))
//
// An invalid fn is not reported here: Register fails with ErrConstructor.
func Class(fn any) Constructor {
	cl := &class{fn: reflect.ValueOf(fn)}
	cl.err = cl.validate()
	return cl
}

func (cl *class) validate() error {
	if !cl.fn.IsValid() || cl.fn.Kind() != reflect.Func {
		return errors.New("constructor must be a function")
	}
	if cl.fn.IsNil() {
		return errors.New("constructor must not be nil")
	}

	typ := cl.fn.Type()
	switch typ.NumOut() {
	case 1:
	case 2:
		if typ.Out(1) != errorType {
			return errors.New("second return value must be error")
		}
	default:
		return errors.New("constructor must return (T) or (T, error)")
	}
	return nil
}

func (cl *class) checkArity(deps int) error {
	if cl.err != nil {
		return cl.err
	}

	typ := cl.fn.Type()
	if typ.IsVariadic() {
		if deps < typ.NumIn()-1 {
			return fmt.Errorf("constructor takes at least %d arguments, signature lists %d", typ.NumIn()-1, deps)
		}
		return nil
	}
	if deps != typ.NumIn() {
		return fmt.Errorf("constructor takes %d arguments, signature lists %d", typ.NumIn(), deps)
	}
	return nil
}

func (cl *class) Construct(args ...any) (any, error) {
	if err := cl.checkArity(len(args)); err != nil {
		return nil, err
	}

	typ := cl.fn.Type()
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		pt := paramType(typ, i)
		if arg == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(pt) {
			return nil, fmt.Errorf("argument %d: %w: %s is not assignable to %s", i, ErrTypeMismatch, v.Type(), pt)
		}
		in[i] = v
	}

	out := cl.fn.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

func (cl *class) String() string {
	if cl.err != nil {
		return "invalid constructor"
	}
	return cl.fn.Type().String()
}

func paramType(typ reflect.Type, i int) reflect.Type {
	if typ.IsVariadic() && i >= typ.NumIn()-1 {
		return typ.In(typ.NumIn() - 1).Elem()
	}
	return typ.In(i)
}

// value is a dependency-free constructor that always yields the same value.
type value struct {
	v any
}

// Value returns a Constructor with no dependencies that yields v. It is
// useful for registering configuration values lazily under a label.
func Value(v any) Constructor {
	return value{v: v}
}

func (val value) Construct(args ...any) (any, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("value constructor takes no arguments, got %d", len(args))
	}
	return val.v, nil
}

func (val value) checkArity(deps int) error {
	if deps != 0 {
		return fmt.Errorf("value constructor takes no arguments, signature lists %d", deps)
	}
	return nil
}

// IsConstructible reports whether v can be used as the last element of a
// registration signature.
func IsConstructible(v any) bool {
	ctor, ok := v.(Constructor)
	if !ok || ctor == nil {
		return false
	}
	if cl, ok := ctor.(*class); ok {
		return cl.err == nil
	}
	return true
}
