package nodes

import (
	"strings"

	"github.com/sibyl-lang/sibyl/internal/diag"
)

// binaryMethods maps each binary operator to the special method the left
// operand is asked for first.
var binaryMethods = map[string]string{
	"+":  "__add__",
	"-":  "__sub__",
	"*":  "__mul__",
	"/":  "__truediv__",
	"//": "__floordiv__",
	"%":  "__mod__",
	"**": "__pow__",
	"<<": "__lshift__",
	">>": "__rshift__",
	"&":  "__and__",
	"|":  "__or__",
	"^":  "__xor__",
	"@":  "__matmul__",
}

// unaryMethods maps each unary operator to its special method. "not" is
// absent: it folds over truthiness instead of dispatching.
var unaryMethods = map[string]string{
	"-": "__neg__",
	"+": "__pos__",
	"~": "__invert__",
}

// reflectedMethod returns the right operand's fallback method, e.g.
// __radd__ for +.
func reflectedMethod(op string) (string, bool) {
	name, ok := binaryMethods[op]
	if !ok {
		return "", false
	}
	return "__r" + name[2:], true
}

// inplaceMethod returns the augmented-assignment method, e.g. __iadd__
// for +=.
func inplaceMethod(op string) (string, bool) {
	name, ok := binaryMethods[op]
	if !ok {
		return "", false
	}
	return "__i" + name[2:], true
}

// inferBinOp infers a binary operation over the cartesian product of the
// operand values. With filtered set, bad-operation markers are masked as
// Uninferable; TypeErrors runs unfiltered to collect them.
func (v *Inferrer) inferBinOp(n *BinOp, ctx Context, filtered bool, yield func(Value) bool) {
	for lhs := range v.Infer(n.Left, ctx) {
		if lhs == Uninferable {
			if !yield(Uninferable) {
				return
			}
			continue
		}
		for rhs := range v.Infer(n.Right, ctx) {
			if rhs == Uninferable {
				if !yield(Uninferable) {
					return
				}
				continue
			}
			for _, out := range v.binaryResults(n.Op, lhs, rhs, ctx) {
				if !yield(maskBadOperation(out, filtered)) {
					return
				}
			}
		}
	}
}

// binaryResults applies the operator protocol to one pair of operand
// values: the left operand's special method first, then the right
// operand's reflected method. When neither applies the result is a single
// bad-operation marker.
func (v *Inferrer) binaryResults(op string, lhs, rhs Value, ctx Context) []Value {
	type step struct {
		recv, arg Value
		method    string
		ok        bool
	}
	leftMethod, leftOK := binaryMethods[op]
	rightMethod, rightOK := reflectedMethod(op)
	steps := []step{
		{recv: lhs, arg: rhs, method: leftMethod, ok: leftOK},
		{recv: rhs, arg: lhs, method: rightMethod, ok: rightOK},
	}

	for _, s := range steps {
		if !s.ok {
			continue
		}
		results, err := v.invokeSpecial(s.recv, s.method, s.arg, ctx)
		if err == nil {
			return results
		}
		if !diag.IsNotImplemented(err) {
			break
		}
	}
	return []Value{&BadBinaryOp{Op: op, Left: lhs, Right: rhs}}
}

// inferAugAssign infers an augmented assignment: current target values
// against operand values, in-place method first, then the plain binary
// chain.
func (v *Inferrer) inferAugAssign(n *AugAssign, ctx Context, filtered bool, yield func(Value) bool) {
	op := strings.TrimSuffix(n.Op, "=")
	for lhs := range v.InferLHS(n.Target, ctx) {
		if lhs == Uninferable {
			if !yield(Uninferable) {
				return
			}
			continue
		}
		for rhs := range v.Infer(n.Value, ctx) {
			if rhs == Uninferable {
				if !yield(Uninferable) {
					return
				}
				continue
			}
			for _, out := range v.augResults(op, lhs, rhs, ctx) {
				if !yield(maskBadOperation(out, filtered)) {
					return
				}
			}
		}
	}
}

func (v *Inferrer) augResults(op string, lhs, rhs Value, ctx Context) []Value {
	if method, ok := inplaceMethod(op); ok {
		results, err := v.invokeSpecial(lhs, method, rhs, ctx)
		if err == nil {
			return results
		}
		if !diag.IsNotImplemented(err) {
			return []Value{&BadBinaryOp{Op: op, Left: lhs, Right: rhs}}
		}
	}
	return v.binaryResults(op, lhs, rhs, ctx)
}

// inferUnaryOp infers a unary operation over each operand value. "not"
// folds determinable truthiness; the rest dispatch through the operand's
// special method.
func (v *Inferrer) inferUnaryOp(n *UnaryOp, ctx Context, filtered bool, yield func(Value) bool) {
	for operand := range v.Infer(n.Operand, ctx) {
		if operand == Uninferable {
			if !yield(Uninferable) {
				return
			}
			continue
		}
		if n.Op == "not" {
			truth, known := truthiness(operand)
			var out Value = Uninferable
			if known {
				out = NewConst(!truth, n.Span(), nil)
			}
			if !yield(out) {
				return
			}
			continue
		}
		method, ok := unaryMethods[n.Op]
		if !ok {
			if !yield(maskBadOperation(&BadUnaryOp{Op: n.Op, Operand: operand}, filtered)) {
				return
			}
			continue
		}
		results, err := v.invokeSpecial(operand, method, nil, ctx)
		if err != nil {
			if !yield(maskBadOperation(&BadUnaryOp{Op: n.Op, Operand: operand}, filtered)) {
				return
			}
			continue
		}
		for _, val := range results {
			if !yield(val) {
				return
			}
		}
	}
}

func (v *Inferrer) invokeSpecial(recv Value, method string, arg Value, ctx Context) ([]Value, error) {
	if v.objects == nil {
		return nil, diag.Errorf(diag.CodeNotSupported, diag.Span{},
			"no object model configured")
	}
	sm, err := v.objects.Special(recv, method)
	if err != nil {
		return nil, err
	}
	return sm.Invoke(arg, ctx)
}

func maskBadOperation(val Value, filtered bool) Value {
	if !filtered {
		return val
	}
	switch val.(type) {
	case *BadBinaryOp, *BadUnaryOp:
		return Uninferable
	}
	return val
}

// TypeErrors runs the unfiltered operator inference for n and returns
// exactly the bad-operation markers it produced. Non-operator nodes have
// no type errors.
func (v *Inferrer) TypeErrors(n Node, ctx Context) []Value {
	var out []Value
	collect := func(val Value) bool {
		switch val.(type) {
		case *BadBinaryOp, *BadUnaryOp:
			out = append(out, val)
		}
		return true
	}
	switch n := n.(type) {
	case *BinOp:
		v.inferBinOp(n, ctx, false, collect)
	case *UnaryOp:
		v.inferUnaryOp(n, ctx, false, collect)
	case *AugAssign:
		v.inferAugAssign(n, ctx, false, collect)
	}
	return out
}
