package nodes

import (
	"github.com/sibyl-lang/sibyl/internal/diag"
)

// ResolveLHS answers "what values does this binding target receive"
// for a target node nested anywhere inside an assigning statement. The
// result is eager: unlike expression inference, an unresolvable target
// is a condition the caller must handle, not an in-band marker.
func (v *Inferrer) ResolveLHS(target Node, ctx Context) ([]Value, error) {
	if star, ok := target.(*Starred); ok {
		return v.starredAssigned(star, ctx)
	}
	def, path, err := climbToDefinition(target)
	if err != nil {
		return nil, err
	}
	return v.assignedFrom(def, target, path, ctx)
}

// climbToDefinition walks from a nested target up to the construct that
// binds it, recording the index taken at each sequence-pattern level.
// The path reads outermost-first once the climb completes.
func climbToDefinition(target Node) (Node, []int, error) {
	var path []int
	node := target
	for {
		parent := node.Parent()
		if parent == nil {
			return nil, nil, diag.Errorf(diag.CodeNoAssignment, toDiagSpan(target.Span()),
				"target is not part of an assigning statement")
		}
		switch p := parent.(type) {
		case *Tuple:
			path = append([]int{indexOf(p.Elts, node)}, path...)
		case *List:
			path = append([]int{indexOf(p.Elts, node)}, path...)
		case *Starred, *WithItem, *Comprehension, *Arguments, Statement:
			// A starred parent owns everything beneath it: the name
			// binds the captured range, not a position in the RHS.
			return p, path, nil
		}
		node = parent
	}
}

// assignedFrom maps a binding construct to the values it binds. An
// empty path means the target is the construct's direct binding; a
// non-empty path unwinds the right-hand side structurally.
func (v *Inferrer) assignedFrom(def Node, target Node, path []int, ctx Context) ([]Value, error) {
	switch d := def.(type) {
	case *Starred:
		vals, err := v.starredAssigned(d, ctx)
		if err != nil || len(path) == 0 {
			return vals, err
		}
		var out []Value
		for _, val := range vals {
			node, ok := val.(Node)
			if !ok {
				out = append(out, Uninferable)
				continue
			}
			unwound, err := v.unwind(node, path, ctx)
			if err != nil {
				out = append(out, Uninferable)
				continue
			}
			out = append(out, unwound...)
		}
		return out, nil
	case *Assign:
		if len(path) == 0 {
			return []Value{d.Value}, nil
		}
		return v.unwind(d.Value, path, ctx)
	case *AugAssign:
		// Augmented targets rebind the statement's own result.
		return []Value{d}, nil
	case *For:
		return v.loopAssigned(d.Iter, path, ctx)
	case *AsyncFor:
		return v.loopAssigned(d.Iter, path, ctx)
	case *Comprehension:
		return v.loopAssigned(d.Iter, path, ctx)
	case *WithItem:
		if len(path) == 0 {
			return []Value{d.ContextExpr}, nil
		}
		return v.unwind(d.ContextExpr, path, ctx)
	case *ExceptHandler:
		return v.handlerAssigned(d, ctx)
	case *Arguments:
		return v.parameterAssigned(d, target, ctx)
	}
	return nil, diag.Errorf(diag.CodeNoAssignment, toDiagSpan(target.Span()),
		"statement does not bind this target")
}

// loopAssigned resolves loop and comprehension targets. The whole-target
// case yields the iterable itself; callers iterate it one level further
// on their own. A nested path unwinds each inferred iteration element.
func (v *Inferrer) loopAssigned(iter Node, path []int, ctx Context) ([]Value, error) {
	if len(path) == 0 {
		return []Value{iter}, nil
	}
	var out []Value
	for val := range v.Infer(iter, ctx) {
		if val == Uninferable {
			out = append(out, Uninferable)
			continue
		}
		n, ok := val.(Node)
		if !ok {
			out = append(out, Uninferable)
			continue
		}
		elts, err := Itered(n)
		if err != nil {
			out = append(out, Uninferable)
			continue
		}
		for _, elt := range elts {
			vals, err := v.unwind(elt, path, ctx)
			if err != nil {
				out = append(out, Uninferable)
				continue
			}
			out = append(out, vals...)
		}
	}
	if out == nil {
		out = []Value{Uninferable}
	}
	return out, nil
}

// handlerAssigned resolves the bound name of an exception handler to an
// instance of the caught type.
func (v *Inferrer) handlerAssigned(h *ExceptHandler, ctx Context) ([]Value, error) {
	if h.Type == nil || v.objects == nil {
		return []Value{Uninferable}, nil
	}
	first, ok := First(v.Infer(h.Type, ctx))
	if !ok || first == Uninferable {
		return []Value{Uninferable}, nil
	}
	inst, err := v.objects.Instantiate(first)
	if err != nil {
		return []Value{Uninferable}, nil
	}
	return []Value{inst}, nil
}

// parameterAssigned resolves a parameter target to its declared default,
// or Uninferable when the parameter has none. Call-site argument flow is
// the object model's concern, not the node layer's.
func (v *Inferrer) parameterAssigned(args *Arguments, target Node, ctx Context) ([]Value, error) {
	p, ok := target.(*Parameter)
	if !ok {
		return nil, diag.Errorf(diag.CodeNoAssignment, toDiagSpan(target.Span()),
			"argument list does not bind this target")
	}
	def, err := args.DefaultValue(p.Name)
	if err != nil {
		return []Value{Uninferable}, nil
	}
	return []Value{def}, nil
}

// unwind resolves a structural path against a right-hand side: each
// path step indexes one level into every value the expression infers
// to. A failed step contributes Uninferable rather than aborting the
// other candidates.
func (v *Inferrer) unwind(rhs Node, path []int, ctx Context) ([]Value, error) {
	if len(path) == 0 {
		return nil, diag.Errorf(diag.CodeNoAssignment, toDiagSpan(rhs.Span()),
			"empty unpacking path")
	}
	idx, rest := path[0], path[1:]
	var out []Value
	for val := range v.Infer(rhs, ctx) {
		part, ok := val.(Node)
		if !ok {
			out = append(out, Uninferable)
			continue
		}
		index := NewConst(int64(idx), part.Span(), nil)
		item, err := v.GetItem(part, index, ctx)
		if err != nil {
			out = append(out, Uninferable)
			continue
		}
		if len(rest) == 0 {
			out = append(out, item)
			continue
		}
		vals, err := v.unwind(item, rest, ctx)
		if err != nil {
			out = append(out, Uninferable)
			continue
		}
		out = append(out, vals...)
	}
	if out == nil {
		out = []Value{Uninferable}
	}
	return out, nil
}

// starredAssigned resolves a starred target inside a sequence-pattern
// assignment: the star captures whatever the fixed targets on either
// side of it leave over, materialized as a fresh list parented to the
// star itself.
func (v *Inferrer) starredAssigned(star *Starred, ctx Context) ([]Value, error) {
	var pattern []Node
	switch p := star.Parent().(type) {
	case *Tuple:
		pattern = p.Elts
	case *List:
		pattern = p.Elts
	default:
		return nil, diag.Errorf(diag.CodeAmbiguousUnpack, toDiagSpan(star.Span()),
			"starred target outside a sequence pattern")
	}
	def, _, err := climbToDefinition(star)
	if err != nil {
		return nil, err
	}
	assign, ok := def.(*Assign)
	if !ok {
		return []Value{Uninferable}, nil
	}

	starIdx := indexOf(pattern, Node(star))
	fixedBefore := starIdx
	fixedAfter := len(pattern) - starIdx - 1

	first, ok := First(v.Infer(assign.Value, ctx))
	if !ok || first == Uninferable {
		return []Value{Uninferable}, nil
	}
	elts, err := sequenceElts(first)
	if err != nil {
		return nil, diag.Errorf(diag.CodeAmbiguousUnpack, toDiagSpan(star.Span()),
			"cannot determine the elements captured by the starred target")
	}
	if len(elts) < fixedBefore+fixedAfter {
		return nil, diag.Errorf(diag.CodeAmbiguousUnpack, toDiagSpan(star.Span()),
			"too few elements to satisfy the sequence pattern")
	}
	captured := elts[fixedBefore : len(elts)-fixedAfter]

	out := NewList(Load, star.Span(), star)
	out.PostInit(append([]Node(nil), captured...))
	return []Value{out}, nil
}

func sequenceElts(val Value) ([]Node, error) {
	switch c := val.(type) {
	case *List:
		return c.Elts, nil
	case *Tuple:
		return c.Elts, nil
	}
	n, _ := val.(Node)
	var span Span
	if n != nil {
		span = n.Span()
	}
	return nil, diag.Errorf(diag.CodeBadOperand, toDiagSpan(span),
		"value is not a literal sequence")
}
