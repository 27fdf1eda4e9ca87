package providers

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/km-arc/simple-inject/framework/config"
	"github.com/km-arc/simple-inject/framework/container"
	"github.com/km-arc/simple-inject/framework/inspect"
	"github.com/km-arc/simple-inject/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration.
//
// Bound labels:
//   - "config"  → *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	return app.Instance("config", p.Config)
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Bound labels:
//   - "logger"  → *zap.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(app *container.Container) error {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	return app.Instance("logger", p.Logger)
}

// Boot logs every first-time resolution.
func (p *LoggingServiceProvider) Boot(app *container.Container) error {
	l := p.Logger
	app.AfterResolving(func(label, instance any) {
		l.Debug("service ready", zap.Any("label", label), zap.String("type", fmt.Sprintf("%T", instance)))
	})
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound labels:
//   - "router"  → *routing.Router   (depends on "logger")
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	return app.Register("router", "logger", container.Class(routing.New))
}

// ── InspectorServiceProvider ──────────────────────────────────────────────────

// InspectorServiceProvider mounts the container inspector on the router. It
// is deferred: nothing is mounted until "inspector" is first requested.
//
// Bound labels:
//   - "inspector"  → *inspect.Inspector   (depends on the container and "router")
type InspectorServiceProvider struct {
	container.BaseProvider
}

func (p *InspectorServiceProvider) Register(app *container.Container) error {
	return app.Register("inspector", container.SelfLabel, "router", container.Class(inspect.Mount))
}

func (p *InspectorServiceProvider) IsDeferred() bool { return true }
func (p *InspectorServiceProvider) Provides() []any  { return []any{"inspector"} }
