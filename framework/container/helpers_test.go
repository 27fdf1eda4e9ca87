package container

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Shared test types and constructors used across test files.

// mustRegister fails the test if registration fails.
func mustRegister(t *testing.T, r interface {
	Register(label any, signature ...any) error
}, label any, signature ...any) {
	t.Helper()
	require.NoError(t, r.Register(label, signature...), "Register(%v)", label)
}

type echo struct{}

func (e *echo) Echo(s string) string { return s }

func newEcho() *echo { return &echo{} }

type superpower struct{ Ability string }

func newSuperpower() *superpower { return &superpower{Ability: "heat vision"} }

type superhero struct{ Superpower *superpower }

func newSuperhero(p *superpower) *superhero { return &superhero{Superpower: p} }

type levelC struct{ Name string }
type levelB struct{ C *levelC }
type levelA struct{ B *levelB }

func newLevelC() *levelC          { return &levelC{Name: "c"} }
func newLevelB(c *levelC) *levelB { return &levelB{C: c} }
func newLevelA(b *levelB) *levelA { return &levelA{B: b} }

// counter returns a constructor that counts its invocations.
func counter(n *int) func() *echo {
	return func() *echo {
		*n++
		return &echo{}
	}
}
