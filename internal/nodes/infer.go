package nodes

import (
	"iter"

	"github.com/sibyl-lang/sibyl/internal/diag"
)

// Seq is a lazy, finite, restartable stream of inference outcomes. A
// consumer may stop ranging after any element; re-ranging recomputes the
// stream, which is pure given the same context.
type Seq = iter.Seq[Value]

// Uninferable is the distinguished "could not determine" outcome. It is
// distinct from the language's own nil constant: nil means the program
// produces nil here, Uninferable means inference gave up.
var Uninferable Value = uninferable{}

type uninferable struct{}

func (uninferable) valueNode()     {}
func (uninferable) String() string { return "Uninferable" }

// RuntimeValue adapts an arbitrary host object into an inference outcome.
type RuntimeValue struct {
	Object any
}

func (RuntimeValue) valueNode() {}

// BadBinaryOp records a binary or augmented operator applied to operands
// that cannot support it. It travels inside the inference sequence so
// callers can both keep consuming other possibilities and collect strict
// type-mismatch diagnostics via TypeErrors.
type BadBinaryOp struct {
	Op          string
	Left, Right Value
}

func (*BadBinaryOp) valueNode() {}

// BadUnaryOp records a unary operator applied to an unsupported operand.
type BadUnaryOp struct {
	Op      string
	Operand Value
}

func (*BadUnaryOp) valueNode() {}

// Context is the opaque recursion-guard token threaded unchanged through
// every recursive inference call. It is the sole cycle-detection
// mechanism; a nil Context disables the guard.
type Context interface {
	// Push records n on the inference path, reporting false when n is
	// already present and continuing would recurse forever.
	Push(n Node) bool
	// Pop removes the most recently pushed node.
	Pop()
}

// Builtins supplies canonical stub objects for builtin types.
type Builtins interface {
	Lookup(typeName string) (Value, error)
}

// Scopes finds the ordered candidate binding statements for a name visible
// from a given node.
type Scopes interface {
	Bindings(name string, from Node) ([]Node, error)
}

// SpecialMethod is a bound special method resolved through the object
// model.
type SpecialMethod interface {
	// Invoke runs inference through the method. A method that does not
	// apply to the operand returns an OPERATOR_NOT_IMPLEMENTED error.
	Invoke(arg Value, ctx Context) ([]Value, error)
}

// Objects is the object-model capability: special-method lookup,
// attribute access, call result inference and instantiation.
type Objects interface {
	Special(recv Value, method string) (SpecialMethod, error)
	Attr(recv Value, name string, ctx Context) ([]Value, error)
	Call(callee Value, call *Call, ctx Context) ([]Value, error)
	Instantiate(class Value) (Value, error)
	Module(name string) (Value, error)
}

// Inferrer answers value-inference queries over a tree. The collaborators
// are injected by the host and live for the process; the Inferrer itself
// holds no per-query state.
type Inferrer struct {
	builtins Builtins
	scopes   Scopes
	objects  Objects
}

// NewInferrer constructs an inference engine around the host-supplied
// collaborators. Any of them may be nil; queries needing a missing
// collaborator come back Uninferable.
func NewInferrer(builtins Builtins, scopes Scopes, objects Objects) *Inferrer {
	return &Inferrer{builtins: builtins, scopes: scopes, objects: objects}
}

// First returns the first element of seq.
func First(seq Seq) (Value, bool) {
	for v := range seq {
		return v, true
	}
	return nil, false
}

// Infer returns the possible values of n: concrete nodes, runtime values,
// bad-operation markers masked as Uninferable, or Uninferable itself.
func (v *Inferrer) Infer(n Node, ctx Context) Seq {
	return func(yield func(Value) bool) {
		if ctx != nil {
			if !ctx.Push(n) {
				yield(Uninferable)
				return
			}
			defer ctx.Pop()
		}
		v.infer(n, ctx, yield)
	}
}

// infer dispatches over the closed variant set.
func (v *Inferrer) infer(n Node, ctx Context, yield func(Value) bool) {
	switch n := n.(type) {
	case *Const, *NameConstant, *List, *Tuple, *Set, *Dict, *Slice, *Ellipsis, *EmptyNode:
		yield(n)
	case *Name:
		v.inferName(n.Name, n, ctx, yield)
	case *AssignName:
		v.inferName(n.Name, n, ctx, yield)
	case *Parameter:
		v.inferTarget(n, ctx, yield)
	case *BinOp:
		v.inferBinOp(n, ctx, true, yield)
	case *UnaryOp:
		v.inferUnaryOp(n, ctx, true, yield)
	case *AugAssign:
		v.inferAugAssign(n, ctx, true, yield)
	case *BoolOp:
		v.inferBoolOp(n, ctx, yield)
	case *Call:
		v.inferCall(n, ctx, yield)
	case *Attribute:
		v.inferAttribute(n.Expr, n.Attr, ctx, yield)
	case *AssignAttr:
		v.inferAttribute(n.Expr, n.Attr, ctx, yield)
	case *Subscript:
		v.inferSubscript(n, ctx, yield)
	case *IfExp:
		if v.inferSub(n.Body, ctx, yield) {
			v.inferSub(n.OrElse, ctx, yield)
		}
	case *Index:
		v.inferSub(n.Value, ctx, yield)
	case *Await:
		v.inferSub(n.Value, ctx, yield)
	case *ReservedName:
		v.inferSub(n.Val, ctx, yield)
	case *InterpreterObject:
		if n.HasObject() {
			yield(n.Object)
		} else {
			yield(Uninferable)
		}
	default:
		yield(Uninferable)
	}
}

// inferSub forwards the inference of a child expression.
func (v *Inferrer) inferSub(n Node, ctx Context, yield func(Value) bool) bool {
	if n == nil {
		return yield(Uninferable)
	}
	for val := range v.Infer(n, ctx) {
		if !yield(val) {
			return false
		}
	}
	return true
}

// inferName resolves a name to its candidate bindings and infers the
// value each binding carries.
func (v *Inferrer) inferName(name string, from Node, ctx Context, yield func(Value) bool) {
	if v.scopes == nil {
		yield(Uninferable)
		return
	}
	bindings, err := v.scopes.Bindings(name, from)
	if err != nil || len(bindings) == 0 {
		yield(Uninferable)
		return
	}
	for _, binding := range bindings {
		if tgt, ok := binding.(Assignable); ok {
			if !v.inferTarget(tgt, ctx, yield) {
				return
			}
			continue
		}
		if !v.inferSub(binding, ctx, yield) {
			return
		}
	}
}

// inferTarget infers the value bound to an assignment target by resolving
// what was assigned and inferring each resolved node.
func (v *Inferrer) inferTarget(tgt Assignable, ctx Context, yield func(Value) bool) bool {
	resolved, err := v.ResolveLHS(tgt, ctx)
	if err != nil {
		return yield(Uninferable)
	}
	for _, val := range resolved {
		node, ok := val.(Node)
		if !ok {
			if !yield(val) {
				return false
			}
			continue
		}
		if !v.inferSub(node, ctx, yield) {
			return false
		}
	}
	return true
}

// InferLHS infers the current value of a write target, used by augmented
// assignment to find the left operand.
func (v *Inferrer) InferLHS(target Node, ctx Context) Seq {
	return func(yield func(Value) bool) {
		switch n := target.(type) {
		case *AssignName:
			v.inferName(n.Name, n, ctx, yield)
		case *AssignAttr:
			v.inferAttribute(n.Expr, n.Attr, ctx, yield)
		case *Subscript:
			v.inferSubscript(n, ctx, yield)
		default:
			yield(Uninferable)
		}
	}
}

// inferBoolOp yields the operand values a short-circuit evaluation could
// stop at. Operands with undeterminable truthiness stay in the result set;
// later operands are considered only while some value could still move
// evaluation past the current one.
func (v *Inferrer) inferBoolOp(n *BoolOp, ctx Context, yield func(Value) bool) {
	isAnd := n.Op == "and"
	for i, operand := range n.Values {
		last := i == len(n.Values)-1
		continues := false
		for val := range v.Infer(operand, ctx) {
			if last {
				if !yield(val) {
					return
				}
				continue
			}
			truth, known := truthiness(val)
			if known && ((isAnd && truth) || (!isAnd && !truth)) {
				// Evaluation always moves past this operand.
				continues = true
				continue
			}
			if !known {
				continues = true
			}
			if !yield(val) {
				return
			}
		}
		if !last && !continues {
			return
		}
	}
}

func truthiness(val Value) (bool, bool) {
	if b, ok := val.(BoolValuer); ok {
		return b.BoolValue(), true
	}
	return false, false
}

// inferCall infers each possible callee and asks the object model for the
// call's result values.
func (v *Inferrer) inferCall(n *Call, ctx Context, yield func(Value) bool) {
	for callee := range v.Infer(n.Func, ctx) {
		if callee == Uninferable || v.objects == nil {
			if !yield(Uninferable) {
				return
			}
			continue
		}
		results, err := v.objects.Call(callee, n, ctx)
		if err != nil {
			if !yield(Uninferable) {
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

// inferAttribute resolves attribute access on each inferred receiver,
// falling back to the receiver's builtin-type proxy for literals.
func (v *Inferrer) inferAttribute(expr Node, name string, ctx Context, yield func(Value) bool) {
	for recv := range v.Infer(expr, ctx) {
		if recv == Uninferable || v.objects == nil {
			if !yield(Uninferable) {
				return
			}
			continue
		}
		if sl, ok := recv.(*Slice); ok {
			if bound, found := sl.Attr(name); found {
				if !v.inferSub(bound, ctx, yield) {
					return
				}
				continue
			}
		}
		results, err := v.objects.Attr(recv, name, ctx)
		if err != nil {
			if node, ok := recv.(Node); ok {
				if proxy, perr := v.Proxy(node); perr == nil {
					results, err = v.objects.Attr(proxy, name, ctx)
				}
			}
		}
		if err != nil {
			if !yield(Uninferable) {
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

// inferSubscript resolves container[index] for each inferred receiver
// using the first inferred index, then infers the resolved item.
func (v *Inferrer) inferSubscript(n *Subscript, ctx Context, yield func(Value) bool) {
	for recv := range v.Infer(n.Value, ctx) {
		recvNode, ok := recv.(Node)
		if !ok || recv == Uninferable {
			if !yield(Uninferable) {
				return
			}
			continue
		}
		index := n.Slice
		if _, isSlice := index.(*Slice); !isSlice {
			first, found := First(v.Infer(n.Slice, ctx))
			idxNode, isNode := first.(Node)
			if !found || !isNode {
				if !yield(Uninferable) {
					return
				}
				continue
			}
			index = idxNode
		}
		item, err := v.GetItem(recvNode, index, ctx)
		if err != nil {
			if !yield(Uninferable) {
				return
			}
			continue
		}
		if !v.inferSub(item, ctx, yield) {
			return
		}
	}
}

// InferNameModule resolves the module bound by an import alias. It starts
// a fresh inference chain: module resolution is unrelated to the caller's
// current path.
func (v *Inferrer) InferNameModule(imp *Import, name string) ([]Value, error) {
	if v.objects == nil {
		return []Value{Uninferable}, nil
	}
	for _, alias := range imp.Names {
		if alias.Bound() != name {
			continue
		}
		mod, err := v.objects.Module(alias.Name)
		if err != nil {
			return nil, err
		}
		return []Value{mod}, nil
	}
	return nil, diag.Errorf(diag.CodeNoAssignment, toDiagSpan(imp.Span()),
		"name %q is not bound by this import", name)
}

// Proxy returns the canonical builtin-type stub a literal delegates to for
// attribute and method lookup. The stub is fetched from the builtins
// registry at most once per node and cached for the node's lifetime;
// callers on multiple threads must supply their own synchronization for
// that first write.
func (v *Inferrer) Proxy(n Node) (Value, error) {
	switch c := n.(type) {
	case *List:
		return v.proxyFor(&c.proxied, "list")
	case *Tuple:
		return v.proxyFor(&c.proxied, "tuple")
	case *Set:
		return v.proxyFor(&c.proxied, "set")
	case *Dict:
		return v.proxyFor(&c.proxied, "dict")
	case *Slice:
		return v.proxyFor(&c.proxied, "slice")
	case *NameConstant:
		return v.proxyFor(&c.Const.proxied, c.TypeName())
	case *Const:
		return v.proxyFor(&c.proxied, c.TypeName())
	}
	return nil, diag.Errorf(diag.CodeNotSupported, toDiagSpan(n.Span()),
		"no builtin proxy for this node")
}

func (v *Inferrer) proxyFor(cell *Value, typeName string) (Value, error) {
	if *cell != nil {
		return *cell, nil
	}
	if v.builtins == nil {
		return nil, diag.Errorf(diag.CodeNotSupported, diag.Span{},
			"no builtins registry configured")
	}
	stub, err := v.builtins.Lookup(typeName)
	if err != nil {
		return nil, err
	}
	*cell = stub
	return stub, nil
}
