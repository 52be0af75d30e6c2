package ratcalc

import (
	"errors"
	"sort"
)

// Vars is the set of variables an evaluation may use. It is either Stateless
// or an *Env.
type Vars interface {
	// lookup returns the value bound to name. The result may be shared with
	// the environment; callers clone it before modifying it.
	lookup(name string) (*Number, error)
	// assign binds name to v, which becomes owned by the environment.
	assign(name string, v *Number) error
}

// Stateless is the Vars that has no variables. Evaluating any variable
// reference or assignment with it fails with ErrNoVariables.
var Stateless Vars = stateless{}

type stateless struct{}

func (stateless) lookup(name string) (*Number, error) { return nil, ErrNoVariables }

func (stateless) assign(name string, v *Number) error { return ErrNoVariables }

// Env is a set of variable bindings shared by the lines of a session. The
// only way expressions modify an Env is by assignment. It is not safe to use
// an Env concurrently.
type Env struct {
	names map[string]*Number
}

// EnvOption is an option used when creating an environment.
type EnvOption interface {
	envOption()
}

type (
	varopt struct {
		name string
		val  *Number
	}
	varsopt map[string]*Number
)

func (varopt) envOption()  {}
func (varsopt) envOption() {}

// SetVar sets the value of a variable in the environment.
func SetVar(name string, val *Number) EnvOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the environment.
func SetVars(vars map[string]*Number) EnvOption {
	return varsopt(vars)
}

// NewEnv creates a new environment with the bindings given by opts.
func NewEnv(opts ...EnvOption) *Env {
	env := Env{}
	return env.Clone(opts...)
}

// Set binds a copy of value to name. Returns env for chaining.
func (env *Env) Set(name string, value *Number) *Env {
	if env.names == nil {
		env.names = make(map[string]*Number)
	}
	env.names[name] = value.Clone()
	return env
}

// Lookup returns a copy of the value of a variable. If there is no such
// variable in the environment, then the result is nil.
func (env *Env) Lookup(name string) *Number {
	v := env.names[name]
	if v == nil {
		return nil
	}
	return v.Clone()
}

// Len returns the number of variables in the environment.
func (env *Env) Len() int {
	return len(env.names)
}

// Names returns the names of the variables in the environment in sorted
// order.
func (env *Env) Names() []string {
	r := make([]string, 0, len(env.names))
	for k := range env.names {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// Clone creates a copy of an environment and applies options to it. Later
// assignments in either environment do not affect the other.
func (env *Env) Clone(opts ...EnvOption) *Env {
	n := Env{names: make(map[string]*Number, len(env.names))}
	// Bound values are never modified in place, so the copy can share them.
	for name, val := range env.names {
		n.names[name] = val
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val.Clone()
		case varsopt:
			for k, v := range opt {
				n.names[k] = v.Clone()
			}
		default:
			panic("ratcalc: unknown option type")
		}
	}
	return &n
}

func (env *Env) lookup(name string) (*Number, error) {
	v := env.names[name]
	if v == nil {
		return nil, errUndefined
	}
	return v, nil
}

func (env *Env) assign(name string, v *Number) error {
	if env.names == nil {
		env.names = make(map[string]*Number)
	}
	env.names[name] = v
	return nil
}

// errUndefined is the signal from lookup that the parser turns into a
// *NameError with position information.
var errUndefined = errors.New("undefined variable")
