package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/km-arc/simple-inject/framework/app"
	"github.com/km-arc/simple-inject/framework/container"
)

// Superpower has no dependencies.
type Superpower struct {
	Ability string
}

func NewSuperpower() *Superpower {
	return &Superpower{Ability: "heat vision"}
}

// Superhero needs a Superpower and logs through the application logger.
type Superhero struct {
	Superpower *Superpower
	logger     *zap.Logger
}

func NewSuperhero(power *Superpower, logger *zap.Logger) *Superhero {
	return &Superhero{Superpower: power, logger: logger}
}

func (h *Superhero) Fly() {
	h.logger.Info("up, up and away", zap.String("ability", h.Superpower.Ability))
}

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	// Registration order does not matter; nothing is built until Get.
	must(application.Register("superhero", "superpower", "logger", container.Class(NewSuperhero)))
	must(application.Register("superpower", container.Class(NewSuperpower)))

	must(application.Boot())

	hero := container.MustResolve[*Superhero](application.Container, "superhero")
	hero.Fly()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Logger().Fatal("run", zap.Error(err))
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
