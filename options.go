package calc

// EnvOption is an option used when creating an Env.
type EnvOption interface {
	envOption()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt   map[string]float64
	rebindopt struct{}
)

func (varopt) envOption()    {}
func (varsopt) envOption()   {}
func (rebindopt) envOption() {}

// SetVar binds a variable in the environment.
func SetVar(name string, val float64) EnvOption {
	return varopt{name, val}
}

// SetVars binds any number of variables in the environment. Since map order
// is unspecified, the variables are bound in order of name.
func SetVars(vars map[string]float64) EnvOption {
	return varsopt(vars)
}

// Rebind makes the latest binding of a name the one that lookups find, and
// allows assigning to a name that is already bound as long as it is not a
// constant. Without Rebind, the first binding of a name always wins.
func Rebind() EnvOption {
	return rebindopt{}
}

func (env *Env) apply(opts []EnvOption) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			env.Set(opt.name, opt.val)
		case varsopt:
			names := make([]string, 0, len(opt))
			for k := range opt {
				names = append(names, k)
			}
			sortstrs(names)
			for _, k := range names {
				env.Set(k, opt[k])
			}
		case rebindopt:
			env.mu.Lock()
			env.rebind = true
			env.mu.Unlock()
		default:
			panic("calc: unknown option type")
		}
	}
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}
