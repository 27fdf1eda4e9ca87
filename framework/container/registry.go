package container

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// factory produces the instance stored under a label.
type factory interface {
	produce() (any, error)
}

// lazy is a registered signature that has not been resolved yet.
type lazy struct {
	registry *Registry
	label    any
	ctor     Constructor
	deps     []any
}

func (f *lazy) produce() (any, error) {
	return f.registry.invoke(f.label, f.ctor, f.deps)
}

// constant is a resolved entry. Lookups on it are pure reads.
type constant struct {
	value any
}

func (f constant) produce() (any, error) {
	return f.value, nil
}

// deferred runs load on first lookup; load is expected to register label.
type deferred struct {
	registry *Registry
	label    any
	load     func() error
	loading  bool
}

func (f *deferred) produce() (any, error) {
	r := f.registry
	if f.loading {
		return nil, circularError(r.stack, f.label)
	}

	if err := f.runLoad(); err != nil {
		return nil, err
	}

	if current, ok := r.table[f.label]; !ok || current == factory(f) {
		return nil, registrationError(f.label)
	}
	return r.get(f.label)
}

func (f *deferred) runLoad() error {
	f.loading = true
	defer func() { f.loading = false }()
	return f.load()
}

// Registry maps labels to lazily-instantiated services. Every entry is a
// singleton: the first Get constructs it, later calls return the same
// instance.
//
// A Registry is not safe for concurrent use. Resolution is synchronous and
// recursive on the caller's stack.
type Registry struct {
	table   map[any]factory
	aliases map[any]any

	// contextual[consumer][dependency] overrides a dependency label while
	// consumer is being constructed.
	contextual map[any]map[any]factory

	afterResolving []func(label, instance any)

	// labels currently being resolved, outermost first
	stack     []any
	resolving map[any]bool

	logger *zap.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	o := buildOptions(opts)
	return &Registry{
		table:      make(map[any]factory),
		aliases:    make(map[any]any),
		contextual: make(map[any]map[any]factory),
		resolving:  make(map[any]bool),
		logger:     o.logger,
	}
}

// Register stores signature under label. The last signature element must be
// a Constructor; the elements before it are dependency labels, resolved in
// order and passed to the constructor when label is first requested.
//
//	r.Register("superpower", container.Class(NewSuperpower))
//	r.Register("superhero", "superpower", container.Class(NewSuperhero))
//
// Nothing is constructed here. Registering an existing label replaces its
// entry; instances already handed out are not affected. Dependency labels are
// not checked until resolution. Registering under a name that is currently
// an alias drops the alias; the aliased entry is left untouched.
func (r *Registry) Register(label any, signature ...any) error {
	if !isComparable(label) {
		return fmt.Errorf("%w: %T", ErrInvalidLabel, label)
	}
	if len(signature) == 0 {
		return fmt.Errorf("%w: empty signature for %v", ErrConstructor, label)
	}

	tail := signature[len(signature)-1]
	ctor, ok := tail.(Constructor)
	if !ok {
		return fmt.Errorf("%w: %v is %T", ErrConstructor, label, tail)
	}

	deps := make([]any, len(signature)-1)
	copy(deps, signature[:len(signature)-1])

	if ac, ok := ctor.(arityChecker); ok {
		if err := ac.checkArity(len(deps)); err != nil {
			return fmt.Errorf("%w: %v: %v", ErrConstructor, label, err)
		}
	}

	key := r.own(label)
	if _, exists := r.table[key]; exists {
		r.logger.Debug("overwriting registration", zap.Any("label", key))
	}
	r.table[key] = &lazy{registry: r, label: key, ctor: ctor, deps: deps}

	r.logger.Debug("registered", zap.Any("label", key), zap.Any("deps", deps))
	return nil
}

// Instance stores an already-built value under label.
func (r *Registry) Instance(label, instance any) error {
	if !isComparable(label) {
		return fmt.Errorf("%w: %T", ErrInvalidLabel, label)
	}
	key := r.own(label)
	r.table[key] = constant{value: instance}
	r.logger.Debug("instance registered", zap.Any("label", key))
	return nil
}

// Defer registers load to run the first time label is requested. load must
// register label itself; resolution then continues with that registration.
func (r *Registry) Defer(label any, load func() error) error {
	if !isComparable(label) {
		return fmt.Errorf("%w: %T", ErrInvalidLabel, label)
	}
	key := r.own(label)
	r.table[key] = &deferred{registry: r, label: key, load: load}
	return nil
}

// Get returns the instance registered under label, constructing it and its
// dependencies on first use.
//
// An unknown label fails with ErrRegistration. When a dependency is missing,
// the ErrRegistration for that dependency is returned as is.
func (r *Registry) Get(label any) (any, error) {
	return r.get(label)
}

func (r *Registry) get(label any) (any, error) {
	if !isComparable(label) {
		return nil, registrationError(label)
	}

	key := r.canonical(label)
	f, ok := r.table[key]
	if !ok {
		return nil, registrationError(label)
	}

	switch f := f.(type) {
	case constant:
		return f.value, nil
	case *deferred:
		return f.produce()
	}

	if r.resolving[key] {
		err := circularError(r.stack, key)
		r.logger.Warn("circular dependency", zap.Error(err))
		return nil, err
	}

	instance, err := r.construct(key, f)
	if err != nil {
		return nil, err
	}

	r.table[key] = constant{value: instance}
	r.logger.Debug("resolved", zap.Any("label", key), zap.String("type", fmt.Sprintf("%T", instance)))

	for _, cb := range r.afterResolving {
		cb(key, instance)
	}
	return instance, nil
}

// construct runs f with key marked in progress. The mark is cleared on every
// exit, including a panicking constructor.
func (r *Registry) construct(key any, f factory) (any, error) {
	r.resolving[key] = true
	r.stack = append(r.stack, key)
	defer func() {
		r.stack = r.stack[:len(r.stack)-1]
		delete(r.resolving, key)
	}()
	return f.produce()
}

// Invoke resolves deps in order and constructs a new instance of ctor with
// them. The result is not memoized. Any dependency error is returned
// unchanged.
func (r *Registry) Invoke(ctor Constructor, deps ...any) (any, error) {
	if ctor == nil {
		return nil, fmt.Errorf("%w: nil constructor", ErrConstructor)
	}
	if ac, ok := ctor.(arityChecker); ok {
		if err := ac.checkArity(len(deps)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConstructor, err)
		}
	}
	return r.invoke(nil, ctor, deps)
}

// invoke builds ctor for consumer. consumer is nil for direct Invoke calls.
func (r *Registry) invoke(consumer any, ctor Constructor, deps []any) (any, error) {
	args := make([]any, 0, len(deps))
	for _, dep := range deps {
		v, err := r.dependency(consumer, dep)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	instance, err := ctor.Construct(args...)
	if err != nil {
		label := consumer
		if label == nil {
			label = fmt.Sprint(ctor)
		}
		return nil, &ConstructionError{Label: label, Err: err}
	}
	return instance, nil
}

func (r *Registry) dependency(consumer, dep any) (any, error) {
	if isComparable(consumer) && isComparable(dep) {
		if f, ok := r.contextual[consumer][dep]; ok {
			return f.produce()
		}
	}
	return r.get(dep)
}

// Alias makes alias resolve to the same entry as label.
func (r *Registry) Alias(label, alias any) error {
	if !isComparable(label) || !isComparable(alias) {
		return fmt.Errorf("%w: alias %T -> %T", ErrInvalidLabel, alias, label)
	}
	target := r.canonical(label)
	if target == alias {
		return fmt.Errorf("%v is aliased to itself", alias)
	}
	r.aliases[alias] = target
	return nil
}

// Bound reports whether label has an entry, resolved or not.
func (r *Registry) Bound(label any) bool {
	if !isComparable(label) {
		return false
	}
	_, ok := r.table[r.canonical(label)]
	return ok
}

// Resolved reports whether label has been constructed (or was registered
// as an instance).
func (r *Registry) Resolved(label any) bool {
	if !isComparable(label) {
		return false
	}
	_, ok := r.table[r.canonical(label)].(constant)
	return ok
}

// Labels returns every label with an entry, in no particular order.
// Aliases are not included.
func (r *Registry) Labels() []any {
	out := make([]any, 0, len(r.table))
	for k := range r.table {
		out = append(out, k)
	}
	return out
}

// AfterResolving registers cb to run each time a label is constructed for
// the first time.
func (r *Registry) AfterResolving(cb func(label, instance any)) {
	r.afterResolving = append(r.afterResolving, cb)
}

func (r *Registry) canonical(label any) any {
	if target, ok := r.aliases[label]; ok {
		return target
	}
	return label
}

// own returns label as a table key for a new entry, dropping any alias that
// currently redirects it.
func (r *Registry) own(label any) any {
	if target, ok := r.aliases[label]; ok {
		delete(r.aliases, label)
		r.logger.Debug("alias dropped", zap.Any("alias", label), zap.Any("label", target))
	}
	return label
}

func isComparable(v any) bool {
	return v != nil && reflect.TypeOf(v).Comparable()
}
