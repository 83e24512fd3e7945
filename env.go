package calc

import (
	"math/big"
	"sync"

	"github.com/zephyrtronium/bigfloat"
)

// Env is the table of variables available to expressions. Parsing an
// assignment with an Env adds to it, and parsing a name reads from it. An Env
// is safe for concurrent use, although expressions parsed concurrently see
// each other's assignments in no particular order.
//
// Lookups find the earliest binding of a name and assignments append new
// bindings, so once a name is defined, its first definition is the one that
// is used. The Rebind option changes this so that the latest binding wins.
type Env struct {
	mu     sync.Mutex
	vars   []binding
	rebind bool
}

type binding struct {
	name  string
	value *node
	// constant marks bindings that cannot be reassigned.
	constant bool
}

// constprec is the precision in bits to which constants are computed before
// rounding to float64.
const constprec = 128

// constants are the predefined bindings in every Env.
var constants = []binding{
	{name: "e", value: num(bigconst(func(out *big.Float) *big.Float {
		one := new(big.Float).SetPrec(constprec).SetInt64(1)
		return bigfloat.Exp(out, one)
	})), constant: true},
	{name: "pi", value: num(bigconst(bigfloat.Pi)), constant: true},
	{name: "phi", value: num(bigconst(func(out *big.Float) *big.Float {
		out.SetInt64(5)
		out.Sqrt(out)
		out.Add(out, big.NewFloat(1))
		return out.Quo(out, big.NewFloat(2))
	})), constant: true},
}

// bigconst computes a constant to constprec bits and rounds it to float64.
// The constants are built the same way as the arbitrary-precision ones of
// expressions: e from bigfloat.Exp(1) and pi from bigfloat.Pi. At this
// precision they round to math.E and math.Pi.
func bigconst(f func(out *big.Float) *big.Float) float64 {
	r, _ := f(new(big.Float).SetPrec(constprec)).Float64()
	return r
}

// NewEnv creates a new environment holding only the constants, then applies
// options to it.
func NewEnv(opts ...EnvOption) *Env {
	env := Env{vars: make([]binding, len(constants), len(constants)+8)}
	for i, c := range constants {
		env.vars[i] = binding{name: c.name, value: c.value.clone(), constant: true}
	}
	env.apply(opts)
	return &env
}

// Set binds a variable to a value. Returns env for chaining.
func (env *Env) Set(name string, value float64) *Env {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.vars = append(env.vars, binding{name: name, value: num(value)})
	return env
}

// Lookup returns a copy of the expression bound to a name. The second result
// is false if the name is not bound.
func (env *Env) Lookup(name string) (*Expr, bool) {
	env.mu.Lock()
	defer env.mu.Unlock()
	b := env.find(name)
	if b == nil {
		return nil, false
	}
	return &Expr{n: b.value.clone()}, true
}

// Vars returns the names of all variables bound in env, in the order in which
// they were first bound.
func (env *Env) Vars() []string {
	env.mu.Lock()
	defer env.mu.Unlock()
	seen := make(map[string]bool, len(env.vars))
	r := make([]string, 0, len(env.vars))
	for _, b := range env.vars {
		if seen[b.name] {
			continue
		}
		seen[b.name] = true
		r = append(r, b.name)
	}
	return r
}

// Clone creates a copy of env and applies options to it. Assignments made
// through either Env are not visible to the other.
func (env *Env) Clone(opts ...EnvOption) *Env {
	env.mu.Lock()
	n := Env{
		vars:   make([]binding, len(env.vars)),
		rebind: env.rebind,
	}
	for i, b := range env.vars {
		n.vars[i] = binding{name: b.name, value: b.value.clone(), constant: b.constant}
	}
	env.mu.Unlock()
	n.apply(opts)
	return &n
}

// find locates the binding used for a name. The caller must hold env.mu.
func (env *Env) find(name string) *binding {
	if env.rebind {
		for i := len(env.vars) - 1; i >= 0; i-- {
			if env.vars[i].name == name {
				return &env.vars[i]
			}
		}
		return nil
	}
	for i := range env.vars {
		if env.vars[i].name == name {
			return &env.vars[i]
		}
	}
	return nil
}

// resolve returns a copy of the value bound to name and whether the binding
// is a constant. The result is nil if there is no binding.
func (env *Env) resolve(name string) (*node, bool) {
	env.mu.Lock()
	defer env.mu.Unlock()
	b := env.find(name)
	if b == nil {
		return nil, false
	}
	return b.value.clone(), b.constant
}

// commit appends bindings made while parsing an expression.
func (env *Env) commit(bs []binding) {
	if len(bs) == 0 {
		return
	}
	env.mu.Lock()
	defer env.mu.Unlock()
	env.vars = append(env.vars, bs...)
}

// rebinds reports whether the Rebind option is in effect.
func (env *Env) rebinds() bool {
	env.mu.Lock()
	defer env.mu.Unlock()
	return env.rebind
}
