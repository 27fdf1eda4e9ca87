package container

import "fmt"

// ContextualBuilder implements the fluent contextual binding API.
//
//	c.When("superhero").Needs("superpower").Give("flight")
type ContextualBuilder struct {
	registry *Registry
	consumer any
	needs    any
}

// When starts a contextual binding for the dependencies of consumer.
func (r *Registry) When(consumer any) *ContextualBuilder {
	if isComparable(consumer) {
		consumer = r.canonical(consumer)
	}
	return &ContextualBuilder{registry: r, consumer: consumer}
}

// Needs names the dependency label to override.
func (b *ContextualBuilder) Needs(dependency any) *ContextualBuilder {
	b.needs = dependency
	return b
}

// Give resolves label instead of the dependency named by Needs whenever the
// consumer is constructed.
func (b *ContextualBuilder) Give(label any) error {
	r := b.registry
	return b.bind(factoryFunc(func() (any, error) { return r.get(label) }))
}

// GiveValue injects v instead of the dependency named by Needs.
//
//	c.When("mailer").Needs("host").GiveValue("smtp.example.com")
func (b *ContextualBuilder) GiveValue(v any) error {
	return b.bind(constant{value: v})
}

func (b *ContextualBuilder) bind(f factory) error {
	if !isComparable(b.consumer) || !isComparable(b.needs) {
		return fmt.Errorf("%w: contextual binding %T needs %T", ErrInvalidLabel, b.consumer, b.needs)
	}

	r := b.registry
	if _, ok := r.contextual[b.consumer]; !ok {
		r.contextual[b.consumer] = make(map[any]factory)
	}
	r.contextual[b.consumer][b.needs] = f
	return nil
}

type factoryFunc func() (any, error)

func (f factoryFunc) produce() (any, error) {
	return f()
}
