package container_test

import (
	"errors"
	"fmt"

	"github.com/km-arc/simple-inject/framework/container"
)

// Types used in examples only.
type Superpower struct{ Ability string }

func NewSuperpower() *Superpower { return &Superpower{Ability: "heat vision"} }

type Superhero struct{ Superpower *Superpower }

func NewSuperhero(p *Superpower) *Superhero { return &Superhero{Superpower: p} }

func ExampleNew() {
	c := container.New()
	_ = c.Register("superhero", "superpower", container.Class(NewSuperhero))
	_ = c.Register("superpower", container.Class(NewSuperpower))

	hero, err := container.Resolve[*Superhero](c, "superhero")
	if err != nil {
		panic(err)
	}
	fmt.Println(hero.Superpower.Ability)
	// Output: heat vision
}

func ExampleContainer_Register_rejected() {
	c := container.New()
	err := c.Register("superpower", NewSuperpower)
	fmt.Println(errors.Is(err, container.ErrConstructor))
	// Output: true
}

func ExampleContainer_Get_circular() {
	c := container.New()
	_ = c.Register("chicken", "egg", container.Class(func(any) string { return "chicken" }))
	_ = c.Register("egg", "chicken", container.Class(func(any) string { return "egg" }))

	_, err := c.Get("chicken")
	fmt.Println(err)
	// Output: circular dependency detected: chicken -> egg -> chicken
}

func ExampleContainer_When() {
	c := container.New()
	_ = c.Register("superpower", container.Class(NewSuperpower))
	_ = c.Register("flight", container.Value(&Superpower{Ability: "flight"}))
	_ = c.Register("superman", "superpower", container.Class(NewSuperhero))
	_ = c.When("superman").Needs("superpower").Give("flight")

	hero := container.MustResolve[*Superhero](c, "superman")
	fmt.Println(hero.Superpower.Ability)
	// Output: flight
}
