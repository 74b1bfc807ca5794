package calc

// Env is an environment for evaluating expressions: the session's global
// names, the local bindings of function calls in progress, and output
// settings. It is not safe to use an Env concurrently.
type Env struct {
	globals map[string]Value
	// locals maps each name bound by an active call to the stack of values
	// bound to it, innermost last.
	locals map[string][]Value
	digits uint
	sci    bool
	depth  int
	result Value
	err    error
}

// DefaultPrec is the default precision in significant decimal digits.
const DefaultPrec = 20

// maxDepth is the maximum nesting of function calls.
const maxDepth = 4096

// EnvOption is an option used when creating an environment.
type EnvOption interface {
	envOption()
}

type (
	varopt struct {
		name string
		val  Value
	}
	varsopt map[string]Value
	precopt uint
	sciopt  bool
)

func (varopt) envOption()  {}
func (varsopt) envOption() {}
func (precopt) envOption() {}
func (sciopt) envOption()  {}

// SetVar sets the value of a variable in the environment.
func SetVar(name string, val Value) EnvOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the environment.
func SetVars(vars map[string]Value) EnvOption {
	return varsopt(vars)
}

// Prec sets the precision of approximate calculations in significant decimal
// digits.
func Prec(digits uint) EnvOption {
	if digits == 0 {
		panic("calc: zero precision")
	}
	return precopt(digits)
}

// Scientific sets whether Format uses scientific notation.
func Scientific(on bool) EnvOption {
	return sciopt(on)
}

// NewEnv creates a new environment holding the default names. If no precision
// is given, the default is DefaultPrec.
func NewEnv(opts ...EnvOption) *Env {
	env := Env{globals: make(map[string]Value), digits: DefaultPrec}
	return env.Clone(opts...)
}

// Clone creates a copy of an environment and applies options to it. The copy
// has its own globals and no calls in progress.
func (env *Env) Clone(opts ...EnvOption) *Env {
	if env.depth > 0 {
		panic("calc: Clone during evaluation")
	}
	n := Env{
		globals: make(map[string]Value, len(env.globals)),
		locals:  make(map[string][]Value),
		digits:  env.digits,
		sci:     env.sci,
		result:  env.result,
	}
	// Apply the last precision and notation settings first, so that
	// constants are computed at the right precision.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.digits = uint(p)
			break
		}
	}
	for i := len(opts) - 1; i >= 0; i-- {
		if s, ok := opts[i].(sciopt); ok {
			n.sci = bool(s)
			break
		}
	}
	for k, v := range env.globals {
		n.globals[k] = v
	}
	if n.digits != env.digits || len(env.globals) == 0 {
		n.loadDefaults()
	}
	n.globals["precision"] = Int(int64(n.digits))
	n.globals["scientific"] = boolValue(n.sci)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.Set(opt.name, opt.val)
		case varsopt:
			for k, v := range opt {
				n.Set(k, v)
			}
		case precopt, sciopt:
			// Already done. Do nothing.
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}

// loadDefaults computes the default names at the environment's precision.
// The previous result is kept if there is one.
func (env *Env) loadDefaults() {
	bits := env.Bits()
	for name, mk := range defaults {
		if name == "ans" && env.globals[name] != nil {
			continue
		}
		env.globals[name] = mk(bits)
	}
}

// Prec returns the precision in significant decimal digits.
func (env *Env) Prec() uint {
	return env.digits
}

// Bits returns the precision in bits used for approximate calculations.
func (env *Env) Bits() uint {
	return digitsToBits(env.digits)
}

// Scientific returns whether the environment formats approximate values in
// scientific notation.
func (env *Env) Scientific() bool {
	return env.sci
}

// Format renders a value using the environment's precision and notation.
func (env *Env) Format(v Value) string {
	return formatter{digits: int(env.digits), sci: env.sci}.format(v)
}

// Lookup returns the value bound to a name. A local binding of a function
// call in progress shadows a global one.
func (env *Env) Lookup(name string) (Value, error) {
	if s := env.locals[name]; len(s) > 0 {
		return s[len(s)-1], nil
	}
	if v, ok := env.globals[name]; ok {
		return v, nil
	}
	return nil, &NameError{Name: name}
}

// Define binds a global name. Names of builtins and constants are protected.
// Defining "precision" or "scientific" also changes the corresponding
// setting. The result is the value actually stored.
func (env *Env) Define(name string, v Value) (Value, error) {
	if _, ok := defaults[name]; ok {
		return nil, &ProtectedNameError{Name: name}
	}
	return env.define(name, v)
}

// Set binds a global name, including protected ones. Returns env for
// chaining. Panics if v is invalid for "precision" or "scientific", or if
// env is evaluating an expression.
func (env *Env) Set(name string, v Value) *Env {
	if env.depth > 0 {
		panic("calc: Set on in-use environment")
	}
	if _, err := env.define(name, v); err != nil {
		panic("calc: Set " + name + ": " + err.Error())
	}
	return env
}

func (env *Env) define(name string, v Value) (Value, error) {
	v = specified(v)
	switch name {
	case "precision":
		n, err := toInt("precision", v)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, &DomainError{X: v, Func: "precision"}
		}
		v = Int(n)
		if uint(n) != env.digits {
			env.digits = uint(n)
			env.loadDefaults()
		}
	case "scientific":
		if !isScalar(v) {
			return nil, &TypeError{Op: "scientific", X: v}
		}
		env.sci = !isZero(v)
		v = boolValue(env.sci)
	}
	env.globals[name] = v
	return v, nil
}

// Names returns the sorted names of all global bindings.
func (env *Env) Names() []string {
	names := make([]string, 0, len(env.globals))
	for k := range env.globals {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// pushLocal binds name to v until the matching popLocal.
func (env *Env) pushLocal(name string, v Value) {
	env.locals[name] = append(env.locals[name], v)
}

// popLocal removes the innermost local binding of name.
func (env *Env) popLocal(name string) {
	s := env.locals[name]
	if len(s) == 0 {
		panic("calc: pop of unbound local " + name)
	}
	s[len(s)-1] = nil
	if len(s) == 1 {
		delete(env.locals, name)
		return
	}
	env.locals[name] = s[:len(s)-1]
}

// bind pushes a local binding for each parameter. The returned function pops
// exactly those bindings; callers must defer it so that the environment is
// restored on every exit path.
func (env *Env) bind(params []string, vals []Value) (release func()) {
	for i, p := range params {
		env.pushLocal(p, vals[i])
	}
	return func() {
		for i := len(params) - 1; i >= 0; i-- {
			env.popLocal(params[i])
		}
	}
}

// boolValue converts a truth value to 1 or 0.
func boolValue(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

// specified replaces Unspecified in v, including inside vectors, with a
// distinct zero so that a stored value never reads as a missing argument.
func specified(v Value) Value {
	switch x := v.(type) {
	case *Rational:
		if v == Unspecified {
			return Int(0)
		}
	case *Vector:
		var r []Value
		for i, e := range x.elems {
			n := specified(e)
			if n != e && r == nil {
				r = append(make([]Value, 0, len(x.elems)), x.elems[:i]...)
			}
			if r != nil {
				r = append(r, n)
			}
		}
		if r != nil {
			return &Vector{elems: r}
		}
	}
	return v
}
