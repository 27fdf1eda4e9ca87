package app_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/km-arc/simple-inject/framework/app"
	"github.com/km-arc/simple-inject/framework/container"
)

func newApp(t *testing.T) *app.Application {
	t.Helper()
	a, err := app.New(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	return a
}

func TestNew_BindsFrameworkServices(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	a := newApp(t)

	for _, label := range []string{container.SelfLabel, "container", "config", "logger", "router", "inspector"} {
		if !a.Bound(label) {
			t.Errorf("%s should be bound", label)
		}
	}

	self, err := a.Get("container")
	if err != nil {
		t.Fatalf("Get(container): %v", err)
	}
	if self != a.Container {
		t.Error("container alias should resolve to the application's container")
	}
}

func TestNew_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	if _, err := app.New(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error for invalid LOG_LEVEL")
	}
}

func TestApplication_Environment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_DEBUG", "false")
	a := newApp(t)

	if a.Environment() != "production" {
		t.Errorf("Environment: got %q want production", a.Environment())
	}
	if !a.IsProduction() || a.IsLocal() {
		t.Error("expected production, not local")
	}
	if a.IsDebug() {
		t.Error("expected debug off")
	}
}

func TestRun_InspectorDisabled(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("INSPECTOR_ENABLED", "false")
	a := newApp(t)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !a.Providers.Booted() {
		t.Error("Run should boot providers")
	}
	if a.Resolved("inspector") {
		t.Error("inspector should stay unresolved when disabled")
	}
}

func TestRun_InspectorStopsOnCancel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("INSPECTOR_ENABLED", "true")
	t.Setenv("INSPECTOR_PORT", "0")
	a := newApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !a.Resolved("inspector") {
		t.Error("inspector should be resolved when enabled")
	}
}
