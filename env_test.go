package calc

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstants(t *testing.T) {
	env := NewEnv()
	cases := []struct {
		name string
		v    float64
	}{
		{"e", math.E},
		{"pi", math.Pi},
		{"phi", math.Phi},
	}
	for _, c := range cases {
		x, ok := env.Lookup(c.name)
		require.True(t, ok, c.name)
		assert.InDelta(t, c.v, x.Eval(), 1e-15, c.name)
	}
	assert.Equal(t, []string{"e", "pi", "phi"}, env.Vars())
}

func TestEnvSet(t *testing.T) {
	env := NewEnv()
	assert.Same(t, env, env.Set("x", 1).Set("y", 2))
	x, ok := env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 1.0, x.Eval())
	_, ok = env.Lookup("z")
	assert.False(t, ok)

	// The first binding wins.
	env.Set("x", 3)
	x, _ = env.Lookup("x")
	assert.Equal(t, 1.0, x.Eval())
	assert.Equal(t, []string{"e", "pi", "phi", "x", "y"}, env.Vars())
}

func TestEnvRebind(t *testing.T) {
	env := NewEnv(SetVar("x", 1), Rebind())
	env.Set("x", 3)
	x, _ := env.Lookup("x")
	assert.Equal(t, 3.0, x.Eval())
	assert.True(t, env.rebinds())
}

func TestEnvOptions(t *testing.T) {
	env := NewEnv(SetVars(map[string]float64{"c": 3, "a": 1, "b": 2}), nil, SetVar("d", 4))
	assert.Equal(t, []string{"e", "pi", "phi", "a", "b", "c", "d"}, env.Vars())
	assert.False(t, env.rebinds())
}

func TestEnvClone(t *testing.T) {
	env := NewEnv(SetVar("x", 1))
	c := env.Clone(SetVar("y", 2), Rebind())
	_, err := ParseString("z = 3", env)
	require.NoError(t, err)
	_, err = ParseString("x = 5", c)
	require.NoError(t, err)

	assert.Equal(t, []string{"e", "pi", "phi", "x", "z"}, env.Vars())
	assert.Equal(t, []string{"e", "pi", "phi", "x", "y"}, c.Vars())
	x, _ := env.Lookup("x")
	assert.Equal(t, 1.0, x.Eval())
	x, _ = c.Lookup("x")
	assert.Equal(t, 5.0, x.Eval())
	assert.False(t, env.rebinds())
	assert.True(t, c.rebinds())
}

func TestEnvLookupCopies(t *testing.T) {
	env := NewEnv(SetVar("x", 1))
	x, _ := env.Lookup("x")
	x.n.num = 7
	y, _ := env.Lookup("x")
	assert.Equal(t, 1.0, y.Eval())
}

func TestEnvConcurrent(t *testing.T) {
	env := NewEnv(Rebind())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, err := ParseString("x = 2 + pi", env)
				assert.NoError(t, err)
				_, err = ParseString("x * 2", env)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	x, ok := env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 2+math.Pi, x.Eval())
}

func TestUnknownOption(t *testing.T) {
	type bogus struct{ EnvOption }
	assert.Panics(t, func() { NewEnv(bogus{}) })
}
