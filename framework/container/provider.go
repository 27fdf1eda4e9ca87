package container

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related registrations.
//
// Register is called when the provider is added (or, for deferred providers,
// on the first Get of a label it provides). Boot is called after all eager
// providers have been registered, making it safe to resolve other services
// inside Boot.
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    return app.Register("greeter", "logger", container.Class(NewGreeter))
//	}
type ServiceProvider interface {
	// Register adds signatures to the container.
	// Do NOT resolve other services here; use Boot for that.
	Register(app *Container) error

	// Boot is called after all providers are registered.
	Boot(app *Container) error

	// Provides returns the labels this provider registers.
	// Only consulted for deferred providers.
	Provides() []any

	// IsDeferred returns true if this provider should be loaded lazily,
	// on the first Get of one of its Provides() labels.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op implementations of Boot,
// Provides and IsDeferred.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []any         { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred ones.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register method, unless the
// provider is deferred. Adding the same provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		return r.deferProvider(provider)
	}

	if err := provider.Register(r.app); err != nil {
		return err
	}
	r.eager = append(r.eager, provider)

	// Late providers are booted right away
	if r.booted {
		return provider.Boot(r.app)
	}
	return nil
}

// deferProvider installs a loader for each provided label. The first Get of
// any of them registers (and, if already booted, boots) the provider once. A
// failed Register is retried on the next Get.
func (r *ProviderRegistry) deferProvider(provider ServiceProvider) error {
	loaded := false
	load := func() error {
		if loaded {
			return nil
		}
		if err := provider.Register(r.app); err != nil {
			return err
		}
		loaded = true
		if r.booted {
			return provider.Boot(r.app)
		}
		return nil
	}

	for _, label := range provider.Provides() {
		if err := r.app.Defer(label, load); err != nil {
			return err
		}
	}
	return nil
}

// Boot calls Boot on all eager providers, in registration order. Calling it
// again is a no-op.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, provider := range r.eager {
		if err := provider.Boot(r.app); err != nil {
			return err
		}
	}
	return nil
}

// Booted returns true if Boot has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }
