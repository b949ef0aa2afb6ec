package nodes

import (
	"bytes"

	"github.com/sibyl-lang/sibyl/internal/diag"
)

// boundKind classifies a resolved slice bound. The sentinel is distinct
// from an absent bound: absent is a valid defaulted bound, the sentinel
// means resolution failed.
type boundKind int

const (
	boundSentinel boundKind = iota
	boundAbsent
	boundInt
)

type sliceBound struct {
	kind boundKind
	val  int64
}

type sliceBounds struct {
	lower, upper, step sliceBound
}

// sliceValue resolves one slice bound: a literal integer or nil constant
// is used directly; anything else gets a single inference step, accepted
// only if it reduces to such a constant. Every other outcome is the
// sentinel.
func (v *Inferrer) sliceValue(bound Node, ctx Context) sliceBound {
	if bound == nil {
		return sliceBound{kind: boundAbsent}
	}
	if _, ok := bound.(*EmptyNode); ok {
		return sliceBound{kind: boundAbsent}
	}
	if c, ok := asConst(bound); ok {
		return constBound(c)
	}
	first, ok := First(v.Infer(bound, ctx))
	if !ok {
		return sliceBound{}
	}
	if c, ok := asConstValue(first); ok {
		return constBound(c)
	}
	return sliceBound{}
}

func constBound(c *Const) sliceBound {
	switch val := c.Val.(type) {
	case int64:
		return sliceBound{kind: boundInt, val: val}
	case nil:
		return sliceBound{kind: boundAbsent}
	}
	return sliceBound{}
}

// resolveSlice resolves all three bounds of a slice node. A slice is
// usable only when no bound is the sentinel and the step is nonzero.
func (v *Inferrer) resolveSlice(s *Slice, ctx Context) (sliceBounds, error) {
	b := sliceBounds{
		lower: v.sliceValue(s.Lower, ctx),
		upper: v.sliceValue(s.Upper, ctx),
		step:  v.sliceValue(s.Step, ctx),
	}
	if b.lower.kind == boundSentinel || b.upper.kind == boundSentinel || b.step.kind == boundSentinel {
		return sliceBounds{}, diag.Errorf(diag.CodeInvalidSlice, toDiagSpan(s.Span()),
			"could not infer slice bounds")
	}
	if b.step.kind == boundInt && b.step.val == 0 {
		return sliceBounds{}, diag.Errorf(diag.CodeInvalidSlice, toDiagSpan(s.Span()),
			"slice step cannot be zero")
	}
	return b, nil
}

// applySlice returns the elements selected by resolved bounds, following
// the language's native slice semantics including negative steps.
func applySlice[T any](elts []T, b sliceBounds) []T {
	n := int64(len(elts))
	step := int64(1)
	if b.step.kind == boundInt {
		step = b.step.val
	}
	var start, stop int64
	if step > 0 {
		start = adjustIndex(b.lower, n, 0, 0, n)
		stop = adjustIndex(b.upper, n, n, 0, n)
	} else {
		start = adjustIndex(b.lower, n, n-1, -1, n-1)
		stop = adjustIndex(b.upper, n, -1, -1, n-1)
	}
	var out []T
	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		out = append(out, elts[i])
	}
	return out
}

// adjustIndex normalizes one bound: end-relative when negative, clamped
// to [min, max], defaulted when absent.
func adjustIndex(b sliceBound, n, def, min, max int64) int64 {
	if b.kind != boundInt {
		return def
	}
	v := b.val
	if v < 0 {
		v += n
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func asConst(n Node) (*Const, bool) {
	switch c := n.(type) {
	case *Const:
		return c, true
	case *NameConstant:
		return &c.Const, true
	}
	return nil, false
}

func asConstValue(val Value) (*Const, bool) {
	if n, ok := val.(Node); ok {
		return asConst(n)
	}
	return nil, false
}

func constEqual(a, b *Const) bool {
	if ab, ok := a.Val.([]byte); ok {
		bb, ok2 := b.Val.([]byte)
		return ok2 && bytes.Equal(ab, bb)
	}
	if _, ok := b.Val.([]byte); ok {
		return false
	}
	return a.Val == b.Val
}

// GetItem resolves container[index] for literal containers and constants.
// Unlike operator inference, direct indexing has no multi-valued fallback:
// failures come back as conditions, not in-band values.
func (v *Inferrer) GetItem(container Node, index Node, ctx Context) (Node, error) {
	switch c := container.(type) {
	case *List:
		return v.sequenceItem(c.Elts, index, ctx, func(elts []Node) Node {
			out := NewList(c.Ctx, c.Span(), c.Parent())
			out.PostInit(elts)
			return out
		})
	case *Tuple:
		return v.sequenceItem(c.Elts, index, ctx, func(elts []Node) Node {
			out := NewTuple(c.Ctx, c.Span(), c.Parent())
			out.PostInit(elts)
			return out
		})
	case *Dict:
		return v.dictItem(c, index, ctx)
	case *NameConstant:
		return v.constItem(&c.Const, index, ctx)
	case *Const:
		return v.constItem(c, index, ctx)
	}
	return nil, diag.Errorf(diag.CodeBadOperand, toDiagSpan(container.Span()),
		"value does not support item access")
}

// sequenceItem resolves one index against an ordered literal sequence. A
// slice index synthesizes a new container of the same variant via rebuild,
// parented to the original container's parent: the result is a fresh
// value, not a child of the original.
func (v *Inferrer) sequenceItem(elts []Node, index Node, ctx Context, rebuild func([]Node) Node) (Node, error) {
	if s, ok := index.(*Slice); ok {
		bounds, err := v.resolveSlice(s, ctx)
		if err != nil {
			return nil, err
		}
		sliced := applySlice(elts, bounds)
		return rebuild(append([]Node(nil), sliced...)), nil
	}
	if c, ok := asConst(index); ok {
		i, ok := c.Val.(int64)
		if !ok {
			return nil, diag.Errorf(diag.CodeBadOperand, toDiagSpan(index.Span()),
				"sequence index must be an integer, not %s", c.TypeName())
		}
		pos := i
		if pos < 0 {
			pos += int64(len(elts))
		}
		if pos < 0 || pos >= int64(len(elts)) {
			return nil, diag.Errorf(diag.CodeIndexOutOfRange, toDiagSpan(index.Span()),
				"sequence index %d out of range", i)
		}
		return elts[pos], nil
	}
	return nil, diag.Errorf(diag.CodeBadOperand, toDiagSpan(index.Span()),
		"cannot use this expression as a subscript index")
}

// dictItem performs ordered first-match key lookup. The language's own
// literal semantics give the last duplicate key priority; the first match
// is kept here and locked in by tests. A pair whose key is a mapping
// unpack recurses into the unpacked value and continues past a not-found
// there.
func (v *Inferrer) dictItem(d *Dict, key Node, ctx Context) (Node, error) {
	lookup, lookupIsConst := asConst(key)
	for i, k := range d.Keys {
		value := d.Values[i]
		if _, ok := k.(*DictUnpack); ok {
			item, err := v.GetItem(value, key, ctx)
			if err == nil {
				return item, nil
			}
			if diag.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		if !lookupIsConst {
			continue
		}
		for cand := range v.Infer(k, ctx) {
			if cand == Uninferable {
				continue
			}
			if c, ok := asConstValue(cand); ok && constEqual(c, lookup) {
				return value, nil
			}
		}
	}
	return nil, diag.Errorf(diag.CodeKeyNotFound, toDiagSpan(key.Span()),
		"key not found in mapping literal")
}

// constItem resolves indexing into a string or bytes constant. Character
// access on strings yields one-character strings; on bytes it yields the
// integer value, as the runtime does.
func (v *Inferrer) constItem(c *Const, index Node, ctx Context) (Node, error) {
	switch val := c.Val.(type) {
	case string:
		runes := []rune(val)
		if s, ok := index.(*Slice); ok {
			bounds, err := v.resolveSlice(s, ctx)
			if err != nil {
				return nil, err
			}
			return NewConst(string(applySlice(runes, bounds)), c.Span(), nil), nil
		}
		pos, err := v.constIndex(index, int64(len(runes)))
		if err != nil {
			return nil, err
		}
		return NewConst(string(runes[pos]), c.Span(), nil), nil
	case []byte:
		if s, ok := index.(*Slice); ok {
			bounds, err := v.resolveSlice(s, ctx)
			if err != nil {
				return nil, err
			}
			return NewConst(applySlice(val, bounds), c.Span(), nil), nil
		}
		pos, err := v.constIndex(index, int64(len(val)))
		if err != nil {
			return nil, err
		}
		return NewConst(int64(val[pos]), c.Span(), nil), nil
	}
	return nil, diag.Errorf(diag.CodeBadOperand, toDiagSpan(c.Span()),
		"%s is not subscriptable", c.TypeName())
}

func (v *Inferrer) constIndex(index Node, length int64) (int64, error) {
	c, ok := asConst(index)
	if !ok {
		return 0, diag.Errorf(diag.CodeBadOperand, toDiagSpan(index.Span()),
			"cannot use this expression as a subscript index")
	}
	i, ok := c.Val.(int64)
	if !ok {
		return 0, diag.Errorf(diag.CodeBadOperand, toDiagSpan(index.Span()),
			"index must be an integer, not %s", c.TypeName())
	}
	pos := i
	if pos < 0 {
		pos += length
	}
	if pos < 0 || pos >= length {
		return 0, diag.Errorf(diag.CodeIndexOutOfRange, toDiagSpan(index.Span()),
			"index %d out of range", i)
	}
	return pos, nil
}

// Itered returns the values iterating over a literal would produce:
// elements for sequences, keys for mappings, characters for strings.
func Itered(n Node) ([]Node, error) {
	switch c := n.(type) {
	case *List:
		return c.Elts, nil
	case *Tuple:
		return c.Elts, nil
	case *Set:
		return c.Elts, nil
	case *Dict:
		return c.Keys, nil
	case *NameConstant:
		return c.Const.Itered()
	case *Const:
		return c.Itered()
	}
	return nil, diag.Errorf(diag.CodeBadOperand, toDiagSpan(n.Span()),
		"value is not iterable")
}
