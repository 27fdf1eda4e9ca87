// Package container provides a small IoC (Inversion of Control) container
// that maps labels to lazily-instantiated singleton services.
//
// # Overview
//
// A service is registered under a label together with its signature: the
// labels of its dependencies, in the order its constructor expects them,
// followed by the constructor itself. Nothing is built at registration time.
// The first Get of a label resolves every dependency (recursively, left to
// right), constructs the service once and memoizes it; every later Get
// returns that same instance.
//
// # Constructors
//
// Go has no runtime class reflection, so the last signature element must
// carry the Constructor capability. Wrap a constructor function with Class:
//
//	type Superpower struct{ Ability string }
//	func NewSuperpower() *Superpower { return &Superpower{Ability: "heat vision"} }
//
//	type Superhero struct{ Superpower *Superpower }
//	func NewSuperhero(p *Superpower) *Superhero { return &Superhero{Superpower: p} }
//
//	c := container.New()
//	c.Register("superpower", container.Class(NewSuperpower))
//	c.Register("superhero", "superpower", container.Class(NewSuperhero))
//
//	hero, err := container.Resolve[*Superhero](c, "superhero")
//
// A plain function passed as the tail is rejected with ErrConstructor.
//
// # Self reference
//
// Every container is bound inside itself under SelfLabel, so services can
// receive the container as a dependency:
//
//	c.Register("plugins", container.SelfLabel, container.Class(NewPluginLoader))
//
// # Errors
//
//   - ErrConstructor: the signature tail is not constructible (Register).
//   - ErrRegistration: a label, or one of its dependencies, is unknown (Get).
//   - ErrCircularDependency: a label was requested while being resolved.
//
// Use errors.Is to tell them apart.
//
// # Contextual Binding
//
//	c.When("superhero").Needs("superpower").Give("flight")
//	c.When("mailer").Needs("host").GiveValue("smtp.example.com")
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    return app.Register("mailer", "config", container.Class(mail.New))
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// A Container is not safe for concurrent use.
package container
