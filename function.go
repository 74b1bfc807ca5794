package calc

// Call calls f with the given arguments. A single argument is passed as is,
// so that a vector argument to a function of one parameter is distributed
// over its elements; more or fewer are passed as an argument list.
func (f *Function) Call(env *Env, args ...Value) (Value, error) {
	if len(args) == 1 {
		return f.call(env, args[0])
	}
	return f.call(env, &List{elems: args})
}

// call applies f to an argument value.
//
// A list binds its elements to parameters positionally. Parameters with no
// corresponding argument are bound to Unspecified. If there are more
// arguments than parameters, a function of one parameter is called once per
// argument, giving a vector of results; any other function is an error. A
// vector with more than one element passed to a function of one parameter is
// treated likewise, except that builtins receive vectors whole. Any other
// value is a single argument.
func (f *Function) call(env *Env, arg Value) (Value, error) {
	var args []Value
	switch a := arg.(type) {
	case *List:
		args = a.elems
	case *Vector:
		if len(f.Params) == 1 && len(a.elems) > 1 && !f.native() {
			return f.distribute(env, a.elems)
		}
		args = []Value{a}
	default:
		args = []Value{a}
	}
	if len(args) > len(f.Params) {
		if len(f.Params) == 1 {
			return f.distribute(env, args)
		}
		return nil, &ArityError{Func: f.Name, Want: len(f.Params), Got: len(args)}
	}
	vals := make([]Value, len(f.Params))
	copy(vals, args)
	for i := len(args); i < len(vals); i++ {
		vals[i] = Unspecified
	}
	if env.depth >= maxDepth {
		return nil, ErrDepth
	}
	env.depth++
	defer func() { env.depth-- }()
	if n, ok := f.Body.(*Native); ok {
		// Builtin parameters are not names in the session.
		return n.Fn(env, vals)
	}
	release := env.bind(f.Params, vals)
	defer release()
	return env.eval(f.Body)
}

// distribute calls a function of one parameter on each argument and collects
// the results into a vector.
func (f *Function) distribute(env *Env, args []Value) (Value, error) {
	r := make([]Value, len(args))
	for i, a := range args {
		v, err := f.call(env, &List{elems: []Value{a}})
		if err != nil {
			return nil, err
		}
		r[i] = v
	}
	return &Vector{elems: r}, nil
}

// Builtin creates a function implemented in Go. fn receives one value per
// parameter; parameters that received no argument are Unspecified.
func Builtin(name string, params []string, fn NativeFunc) *Function {
	p := append([]string(nil), params...)
	return &Function{
		Name:   name,
		Params: p,
		Body:   &Native{Name: name, Fn: fn},
	}
}
