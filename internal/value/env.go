package value

// Env is an immutable lexical frame with a parent link.
// `let` always creates a fresh child frame rather than mutating an
// existing one, so captured closures never observe later bindings.
type Env struct {
	parent *Env
	vars   map[string]Value
}

// NewRootEnv creates the outermost environment, typically seeded with
// builtins and CLI-injected `-name value` bindings.
func NewRootEnv() *Env {
	return &Env{vars: make(map[string]Value)}
}

// Child returns a new environment extending e with a single binding.
func (e *Env) Child(name string, v Value) *Env {
	return &Env{parent: e, vars: map[string]Value{name: v}}
}

// Bind sets name in e's own frame, overwriting any existing binding.
// Used only to tie the self-referential knot for `let f = ... f ... in`:
// the child frame is created with a nil placeholder so the RHS closure
// can capture it, then Bind fills in the real value.
func (e *Env) Bind(name string, v Value) {
	e.vars[name] = v
}

// Lookup walks child-to-parent, returning the nearest binding.
func (e *Env) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Names returns every identifier visible from e, nearest-shadowing-first,
// used to build "did you mean" hints for UnknownSymbol errors.
func (e *Env) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for env := e; env != nil; env = env.parent {
		for name := range env.vars {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
