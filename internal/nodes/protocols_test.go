package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sibyl-lang/sibyl/internal/diag"
)

func TestResolveDirectAssign(t *testing.T) {
	assign := NewAssign(at(1, 0), nil)
	target := NewAssignName("x", at(1, 0), assign)
	value := intConst(5)
	assign.PostInit([]Node{target}, value)

	v := NewInferrer(nil, nil, nil)
	vals, err := v.ResolveLHS(target, nil)
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Same(t, value, vals[0])
}

func TestResolveNestedPattern(t *testing.T) {
	// a, (b, c) = (1, (2, 3))
	assign := NewAssign(at(1, 0), nil)
	pattern := NewTuple(Store, at(1, 0), assign)
	a := NewAssignName("a", at(1, 0), pattern)
	inner := NewTuple(Store, at(1, 3), pattern)
	b := NewAssignName("b", at(1, 4), inner)
	c := NewAssignName("c", at(1, 7), inner)
	inner.PostInit([]Node{b, c})
	pattern.PostInit([]Node{a, inner})

	value := NewTuple(Load, at(1, 12), assign)
	one := intConst(1)
	innerVal := tupleOf(intConst(2), intConst(3))
	value.PostInit([]Node{one, innerVal})
	assign.PostInit([]Node{pattern}, value)

	v := NewInferrer(nil, nil, nil)

	vals, err := v.ResolveLHS(a, &pathContext{})
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Same(t, one, vals[0])

	vals, err = v.ResolveLHS(c, &pathContext{})
	require.NoError(t, err)
	require.Len(t, vals, 1)
	got, ok := asConstValue(vals[0])
	require.True(t, ok)
	assert.Equal(t, int64(3), got.Val)
}

func TestResolveNestedPatternOpaqueValue(t *testing.T) {
	// a, b = f() where nothing is known about f.
	assign := NewAssign(at(1, 0), nil)
	pattern := NewTuple(Store, at(1, 0), assign)
	a := NewAssignName("a", at(1, 0), pattern)
	b := NewAssignName("b", at(1, 3), pattern)
	pattern.PostInit([]Node{a, b})
	call := NewCall(at(1, 7), assign)
	call.PostInit(NewName("f", at(1, 7), call), nil, nil)
	assign.PostInit([]Node{pattern}, call)

	v := NewInferrer(nil, nil, nil)
	vals, err := v.ResolveLHS(b, &pathContext{})
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Equal(t, Uninferable, vals[0])
}

func TestResolveStarredCapture(t *testing.T) {
	// a, *b, c = [1, 2, 3, 4, 5]
	assign := NewAssign(at(1, 0), nil)
	pattern := NewTuple(Store, at(1, 0), assign)
	a := NewAssignName("a", at(1, 0), pattern)
	star := NewStarred(Store, at(1, 3), pattern)
	star.PostInit(NewAssignName("b", at(1, 4), star))
	c := NewAssignName("c", at(1, 7), pattern)
	pattern.PostInit([]Node{a, star, c})

	elems := []Node{intConst(1), intConst(2), intConst(3), intConst(4), intConst(5)}
	value := NewList(Load, at(1, 11), assign)
	value.PostInit(elems)
	assign.PostInit([]Node{pattern}, value)

	v := NewInferrer(nil, nil, nil)
	vals, err := v.ResolveLHS(star, &pathContext{})
	require.NoError(t, err)
	require.Len(t, vals, 1)
	captured, ok := vals[0].(*List)
	require.True(t, ok)
	require.Len(t, captured.Elts, 3)
	assert.Same(t, elems[1], captured.Elts[0])
	assert.Same(t, elems[2], captured.Elts[1])
	assert.Same(t, elems[3], captured.Elts[2])
	assert.Same(t, star, captured.Parent(), "the synthesized list hangs off the star")
}

func TestResolveStarredTooFewElements(t *testing.T) {
	// a, *b, c = [1]
	assign := NewAssign(at(1, 0), nil)
	pattern := NewTuple(Store, at(1, 0), assign)
	a := NewAssignName("a", at(1, 0), pattern)
	star := NewStarred(Store, at(1, 3), pattern)
	star.PostInit(NewAssignName("b", at(1, 4), star))
	c := NewAssignName("c", at(1, 7), pattern)
	pattern.PostInit([]Node{a, star, c})
	value := NewList(Load, at(1, 11), assign)
	value.PostInit([]Node{intConst(1)})
	assign.PostInit([]Node{pattern}, value)

	v := NewInferrer(nil, nil, nil)
	_, err := v.ResolveLHS(star, &pathContext{})
	require.Error(t, err)
	assert.Equal(t, diag.CodeAmbiguousUnpack, diag.CodeOf(err))
}

func TestResolveStarredOpaqueValue(t *testing.T) {
	assign := NewAssign(at(1, 0), nil)
	pattern := NewTuple(Store, at(1, 0), assign)
	a := NewAssignName("a", at(1, 0), pattern)
	star := NewStarred(Store, at(1, 3), pattern)
	star.PostInit(NewAssignName("b", at(1, 4), star))
	pattern.PostInit([]Node{a, star})
	call := NewCall(at(1, 9), assign)
	call.PostInit(NewName("f", at(1, 9), call), nil, nil)
	assign.PostInit([]Node{pattern}, call)

	v := NewInferrer(nil, nil, nil)
	vals, err := v.ResolveLHS(star, &pathContext{})
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Equal(t, Uninferable, vals[0])
}

func TestResolveForTarget(t *testing.T) {
	loop := NewFor(at(1, 0), nil)
	target := NewAssignName("i", at(1, 4), loop)
	iter := listOf(intConst(1), intConst(2))
	loop.PostInit(target, iter, []Statement{NewPass(at(2, 4), loop)}, nil)

	v := NewInferrer(nil, nil, nil)
	vals, err := v.ResolveLHS(target, &pathContext{})
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Same(t, iter, vals[0], "the whole target resolves to the iterable itself")
}

func TestResolveForNestedTarget(t *testing.T) {
	// for a, b in [(1, 2), (3, 4)]
	loop := NewFor(at(1, 0), nil)
	pattern := NewTuple(Store, at(1, 4), loop)
	a := NewAssignName("a", at(1, 4), pattern)
	b := NewAssignName("b", at(1, 7), pattern)
	pattern.PostInit([]Node{a, b})

	second1, second2 := intConst(2), intConst(4)
	iter := listOf(
		tupleOf(intConst(1), second1),
		tupleOf(intConst(3), second2),
	)
	loop.PostInit(pattern, iter, []Statement{NewPass(at(2, 4), loop)}, nil)

	v := NewInferrer(nil, nil, nil)
	vals, err := v.ResolveLHS(b, &pathContext{})
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.Same(t, second1, vals[0])
	assert.Same(t, second2, vals[1])
}

func TestResolveComprehensionTarget(t *testing.T) {
	comp := NewComprehension(at(1, 0), nil)
	target := NewAssignName("x", at(1, 0), comp)
	iter := listOf(intConst(1))
	comp.PostInit(target, iter, nil)

	v := NewInferrer(nil, nil, nil)
	vals, err := v.ResolveLHS(target, &pathContext{})
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Same(t, iter, vals[0])
}

func TestResolveWithItemTarget(t *testing.T) {
	with := NewWith(at(1, 0), nil)
	item := NewWithItem(at(1, 5), with)
	cm := NewName("cm", at(1, 5), item)
	bound := NewAssignName("x", at(1, 11), item)
	item.PostInit(cm, bound)
	with.PostInit([]*WithItem{item}, []Statement{NewPass(at(2, 4), with)})

	v := NewInferrer(nil, nil, nil)
	vals, err := v.ResolveLHS(bound, &pathContext{})
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Same(t, cm, vals[0])
}

func TestResolveExceptHandlerTarget(t *testing.T) {
	cls := RuntimeValue{Object: "ValueError-class"}
	instance := RuntimeValue{Object: "ValueError-instance"}
	objects := &fakeObjects{
		instantiate: func(class Value) (Value, error) {
			require.Equal(t, cls, class)
			return instance, nil
		},
	}

	handler := NewExceptHandler(at(3, 0), nil)
	typeNode := NewInterpreterObject(cls, "ValueError", at(3, 7), handler)
	bound := NewAssignName("err", at(3, 21), handler)
	handler.PostInit(typeNode, bound, []Statement{NewPass(at(4, 4), handler)})

	v := NewInferrer(nil, nil, objects)
	vals, err := v.ResolveLHS(bound, &pathContext{})
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Equal(t, instance, vals[0])
}

func TestResolveBareExceptHandlerTarget(t *testing.T) {
	handler := NewExceptHandler(at(3, 0), nil)
	bound := NewAssignName("err", at(3, 7), handler)
	handler.PostInit(nil, bound, []Statement{NewPass(at(4, 4), handler)})

	v := NewInferrer(nil, nil, nil)
	vals, err := v.ResolveLHS(bound, &pathContext{})
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Equal(t, Uninferable, vals[0])
}

func TestResolveParameterTarget(t *testing.T) {
	args := NewArguments(at(1, 0), nil)
	def := intConst(3)
	withDefault := NewParameter("b", at(1, 7), args)
	withDefault.PostInit(def, nil)
	plain := NewParameter("a", at(1, 4), args)
	plain.PostInit(nil, nil)
	args.PostInit([]Node{plain, withDefault}, nil, nil, nil, nil)

	v := NewInferrer(nil, nil, nil)
	vals, err := v.ResolveLHS(withDefault, nil)
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Same(t, def, vals[0])

	vals, err = v.ResolveLHS(plain, nil)
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Equal(t, Uninferable, vals[0])
}

func TestResolveAugAssignTarget(t *testing.T) {
	aug := NewAugAssign("+=", at(1, 0), nil)
	target := NewAssignName("x", at(1, 0), aug)
	aug.PostInit(target, intConst(1))

	v := NewInferrer(nil, nil, nil)
	vals, err := v.ResolveLHS(target, nil)
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Same(t, aug, vals[0], "augmented targets rebind the statement's own result")
}

func TestResolveDetachedTarget(t *testing.T) {
	v := NewInferrer(nil, nil, nil)
	_, err := v.ResolveLHS(NewAssignName("x", at(1, 0), nil), nil)
	require.Error(t, err)
	assert.Equal(t, diag.CodeNoAssignment, diag.CodeOf(err))
}

func TestResolveNameInsideStarredTarget(t *testing.T) {
	// a, *b, c = [1, 2, 3, 4, 5]: the name bound inside the star gets
	// the captured range, not the element at the star's position.
	assign := NewAssign(at(1, 0), nil)
	pattern := NewTuple(Store, at(1, 0), assign)
	a := NewAssignName("a", at(1, 0), pattern)
	star := NewStarred(Store, at(1, 3), pattern)
	b := NewAssignName("b", at(1, 4), star)
	star.PostInit(b)
	c := NewAssignName("c", at(1, 7), pattern)
	pattern.PostInit([]Node{a, star, c})

	elems := []Node{intConst(1), intConst(2), intConst(3), intConst(4), intConst(5)}
	value := NewList(Load, at(1, 11), assign)
	value.PostInit(elems)
	assign.PostInit([]Node{pattern}, value)

	v := NewInferrer(nil, nil, nil)
	vals, err := v.ResolveLHS(b, &pathContext{})
	require.NoError(t, err)
	require.Len(t, vals, 1)
	captured, ok := vals[0].(*List)
	require.True(t, ok, "the inner name binds the captured list, got %T", vals[0])
	require.Len(t, captured.Elts, 3)
	assert.Same(t, elems[1], captured.Elts[0])
	assert.Same(t, elems[2], captured.Elts[1])
	assert.Same(t, elems[3], captured.Elts[2])
}

func TestResolveTypedExceptHandlerWithoutObjects(t *testing.T) {
	cls := RuntimeValue{Object: "ValueError-class"}
	handler := NewExceptHandler(at(3, 0), nil)
	typeNode := NewInterpreterObject(cls, "ValueError", at(3, 7), handler)
	bound := NewAssignName("err", at(3, 21), handler)
	handler.PostInit(typeNode, bound, []Statement{NewPass(at(4, 4), handler)})

	v := NewInferrer(nil, nil, nil)
	vals, err := v.ResolveLHS(bound, &pathContext{})
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Equal(t, Uninferable, vals[0], "a missing object model degrades, never panics")
}
