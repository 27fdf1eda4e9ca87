package container

import (
	"fmt"
	"reflect"
)

// SelfLabel is the label under which every Container registers itself.
const SelfLabel = "SimpleInject"

// Container is the public face of a Registry. It owns exactly one Registry
// for its lifetime and is bound inside it under SelfLabel, so any service can
// declare the container as a dependency.
type Container struct {
	registry *Registry
}

// New creates a container whose only entry is itself.
func New(opts ...Option) *Container {
	c := &Container{registry: NewRegistry(opts...)}
	_ = c.registry.Instance(SelfLabel, c)
	return c
}

// Get returns the service registered under label. See Registry.Get.
func (c *Container) Get(label any) (any, error) {
	return c.registry.Get(label)
}

// Register stores a signature under label. See Registry.Register.
//
//	c.Register("superpower", container.Class(NewSuperpower))
//	c.Register("superhero", "superpower", container.Class(NewSuperhero))
func (c *Container) Register(label any, signature ...any) error {
	return c.registry.Register(label, signature...)
}

// Invoke constructs ctor with the services registered under deps, without
// storing the result.
func (c *Container) Invoke(ctor Constructor, deps ...any) (any, error) {
	return c.registry.Invoke(ctor, deps...)
}

// Instance registers a pre-built value.
func (c *Container) Instance(label, instance any) error {
	return c.registry.Instance(label, instance)
}

// Alias registers an alternative label for an existing one.
func (c *Container) Alias(label, alias any) error {
	return c.registry.Alias(label, alias)
}

// When starts a contextual binding chain for consumer.
func (c *Container) When(consumer any) *ContextualBuilder {
	return c.registry.When(consumer)
}

// Defer registers a loader that runs on the first Get of label.
func (c *Container) Defer(label any, load func() error) error {
	return c.registry.Defer(label, load)
}

// Bound reports whether label has been registered.
func (c *Container) Bound(label any) bool { return c.registry.Bound(label) }

// Resolved reports whether label has already been constructed.
func (c *Container) Resolved(label any) bool { return c.registry.Resolved(label) }

// Labels returns every registered label, in no particular order.
func (c *Container) Labels() []any { return c.registry.Labels() }

// AfterResolving registers a callback fired after a label is constructed.
func (c *Container) AfterResolving(cb func(label, instance any)) {
	c.registry.AfterResolving(cb)
}

// TypeKey returns the package-qualified type name of v, useful as a stable
// label when working with interfaces.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "main.UserRepository"
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}

// Resolve is a generic helper that calls Get and type-asserts the result.
//
//	hero, err := container.Resolve[*Superhero](c, "superhero")
func Resolve[T any](c *Container, label any) (T, error) {
	var zero T
	instance, err := c.Get(label)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %v resolved to %T, not %T", ErrTypeMismatch, label, instance, zero)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, label any) T {
	typed, err := Resolve[T](c, label)
	if err != nil {
		panic(fmt.Sprintf("container: %v", err))
	}
	return typed
}
