package nodes

import (
	"github.com/sibyl-lang/sibyl/internal/diag"
)

// pathContext is the recording recursion guard used across the inference
// tests. It refuses a node already on the path, like a host context would.
type pathContext struct {
	stack []Node
}

func (c *pathContext) Push(n Node) bool {
	for _, seen := range c.stack {
		if seen == n {
			return false
		}
	}
	c.stack = append(c.stack, n)
	return true
}

func (c *pathContext) Pop() {
	c.stack = c.stack[:len(c.stack)-1]
}

type fakeBuiltins map[string]Value

func (f fakeBuiltins) Lookup(typeName string) (Value, error) {
	if v, ok := f[typeName]; ok {
		return v, nil
	}
	return nil, diag.Errorf(diag.CodeNotSupported, diag.Span{}, "no builtin %q", typeName)
}

type fakeScopes map[string][]Node

func (f fakeScopes) Bindings(name string, from Node) ([]Node, error) {
	if bindings, ok := f[name]; ok {
		return bindings, nil
	}
	return nil, diag.Errorf(diag.CodeNotSupported, diag.Span{}, "unbound name %q", name)
}

type fakeMethod func(arg Value, ctx Context) ([]Value, error)

func (m fakeMethod) Invoke(arg Value, ctx Context) ([]Value, error) {
	return m(arg, ctx)
}

// fakeObjects is a configurable object model. Unconfigured capabilities
// report OPERATION_NOT_SUPPORTED.
type fakeObjects struct {
	special     func(recv Value, method string) (SpecialMethod, error)
	attr        func(recv Value, name string, ctx Context) ([]Value, error)
	call        func(callee Value, call *Call, ctx Context) ([]Value, error)
	instantiate func(class Value) (Value, error)
	module      func(name string) (Value, error)
}

func (f *fakeObjects) Special(recv Value, method string) (SpecialMethod, error) {
	if f.special == nil {
		return nil, diag.Errorf(diag.CodeNotSupported, diag.Span{}, "no special methods")
	}
	return f.special(recv, method)
}

func (f *fakeObjects) Attr(recv Value, name string, ctx Context) ([]Value, error) {
	if f.attr == nil {
		return nil, diag.Errorf(diag.CodeNotSupported, diag.Span{}, "no attributes")
	}
	return f.attr(recv, name, ctx)
}

func (f *fakeObjects) Call(callee Value, call *Call, ctx Context) ([]Value, error) {
	if f.call == nil {
		return nil, diag.Errorf(diag.CodeNotSupported, diag.Span{}, "no calls")
	}
	return f.call(callee, call, ctx)
}

func (f *fakeObjects) Instantiate(class Value) (Value, error) {
	if f.instantiate == nil {
		return nil, diag.Errorf(diag.CodeNotSupported, diag.Span{}, "no instantiation")
	}
	return f.instantiate(class)
}

func (f *fakeObjects) Module(name string) (Value, error) {
	if f.module == nil {
		return nil, diag.Errorf(diag.CodeNotSupported, diag.Span{}, "no modules")
	}
	return f.module(name)
}

// intObjects builds an object model that evaluates arithmetic special
// methods over integer constants, the way builtin ints behave: a
// non-integer operand answers OPERATOR_NOT_IMPLEMENTED so the protocol
// moves to the reflected method.
func intObjects() *fakeObjects {
	intOf := func(v Value) (int64, bool) {
		c, ok := asConstValue(v)
		if !ok {
			return 0, false
		}
		i, ok := c.Val.(int64)
		return i, ok
	}
	apply := func(method string, recv, arg int64) (int64, bool) {
		switch method {
		case "__add__", "__radd__", "__iadd__":
			return recv + arg, true
		case "__sub__":
			return recv - arg, true
		case "__rsub__":
			return arg - recv, true
		case "__mul__", "__rmul__":
			return recv * arg, true
		case "__neg__":
			return -recv, true
		}
		return 0, false
	}
	return &fakeObjects{
		special: func(recv Value, method string) (SpecialMethod, error) {
			r, ok := intOf(recv)
			if !ok {
				return nil, diag.Errorf(diag.CodeNotImplemented, diag.Span{},
					"%s is not defined for this value", method)
			}
			return fakeMethod(func(arg Value, ctx Context) ([]Value, error) {
				if method == "__neg__" {
					out, _ := apply(method, r, 0)
					return []Value{NewConst(out, Span{}, nil)}, nil
				}
				a, ok := intOf(arg)
				if !ok {
					return nil, diag.Errorf(diag.CodeNotImplemented, diag.Span{},
						"%s operand type mismatch", method)
				}
				out, ok := apply(method, r, a)
				if !ok {
					return nil, diag.Errorf(diag.CodeNotImplemented, diag.Span{},
						"%s is not defined for ints", method)
				}
				return []Value{NewConst(out, Span{}, nil)}, nil
			}), nil
		},
	}
}

func at(line, col int) Span { return Span{Line: line, Column: col} }

func intConst(v int64) *Const { return NewConst(v, Span{}, nil) }

func strConst(s string) *Const { return NewConst(s, Span{}, nil) }

func listOf(elts ...Node) *List {
	l := NewList(Load, Span{}, nil)
	l.PostInit(elts)
	return l
}

func tupleOf(elts ...Node) *Tuple {
	t := NewTuple(Load, Span{}, nil)
	t.PostInit(elts)
	return t
}

func dictOf(pairs ...Node) *Dict {
	d := NewDict(Span{}, nil)
	var keys, values []Node
	for i := 0; i < len(pairs); i += 2 {
		keys = append(keys, pairs[i])
		values = append(values, pairs[i+1])
	}
	d.PostInit(keys, values)
	return d
}

// collect drains an inference sequence.
func collect(seq Seq) []Value {
	var out []Value
	for v := range seq {
		out = append(out, v)
	}
	return out
}
