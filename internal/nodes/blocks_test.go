package nodes

import (
	"testing"
)

func checkRange(t *testing.T, n BlockRanger, line, wantFrom, wantTo int) {
	t.Helper()
	from, to := n.BlockRange(line)
	if from != wantFrom || to != wantTo {
		t.Fatalf("line %d: expected (%d, %d), got (%d, %d)", line, wantFrom, wantTo, from, to)
	}
}

func TestIfBlockRangeWithoutElse(t *testing.T) {
	ifStmt := NewIf(at(10, 0), nil)
	body := []Statement{
		NewPass(at(10, 8), ifStmt),
		NewPass(at(12, 4), ifStmt),
		NewPass(at(15, 4), ifStmt),
	}
	ifStmt.PostInit(NewName("cond", at(10, 3), ifStmt), body, nil)

	checkRange(t, ifStmt, 10, 10, 10)
	checkRange(t, ifStmt, 12, 12, 15)
	checkRange(t, ifStmt, 15, 15, 15)
	// Past the body the boundary is the line before the body opened.
	checkRange(t, ifStmt, 18, 18, 9)
}

func TestIfBlockRangeWithElse(t *testing.T) {
	ifStmt := NewIf(at(20, 0), nil)
	body := []Statement{NewPass(at(21, 4), ifStmt), NewPass(at(22, 4), ifStmt)}
	orElse := []Statement{NewPass(at(24, 4), ifStmt), NewPass(at(25, 4), ifStmt)}
	ifStmt.PostInit(NewName("cond", at(20, 3), ifStmt), body, orElse)

	checkRange(t, ifStmt, 21, 21, 21)
	checkRange(t, ifStmt, 22, 22, 22)
	checkRange(t, ifStmt, 23, 23, 23)
	checkRange(t, ifStmt, 24, 24, 25)
	checkRange(t, ifStmt, 25, 25, 25)
}

func TestWhileBlockRange(t *testing.T) {
	loop := NewWhile(at(5, 0), nil)
	body := []Statement{NewPass(at(6, 4), loop), NewPass(at(7, 4), loop)}
	orElse := []Statement{NewPass(at(9, 4), loop)}
	loop.PostInit(NewName("cond", at(5, 6), loop), body, orElse)

	checkRange(t, loop, 5, 5, 5)
	checkRange(t, loop, 6, 6, 8)
	checkRange(t, loop, 9, 9, 9)
}

func TestWhileBlockRangeWithoutElse(t *testing.T) {
	loop := NewWhile(at(5, 0), nil)
	body := []Statement{NewPass(at(6, 4), loop), NewPass(at(7, 4), loop)}
	loop.PostInit(NewName("cond", at(5, 6), loop), body, nil)

	checkRange(t, loop, 6, 6, 7)
}

func TestForBlockRange(t *testing.T) {
	loop := NewFor(at(2, 0), nil)
	target := NewAssignName("i", at(2, 4), loop)
	iter := NewName("items", at(2, 9), loop)
	body := []Statement{NewPass(at(3, 4), loop)}
	orElse := []Statement{NewPass(at(5, 4), loop)}
	loop.PostInit(target, iter, body, orElse)

	checkRange(t, loop, 2, 2, 2)
	checkRange(t, loop, 3, 3, 4)
	checkRange(t, loop, 5, 5, 5)
}

func TestWithBlockRange(t *testing.T) {
	with := NewWith(at(3, 0), nil)
	item := NewWithItem(at(3, 5), with)
	item.PostInit(NewName("cm", at(3, 5), item), nil)
	body := []Statement{NewPass(at(4, 4), with), NewPass(at(5, 4), with)}
	with.PostInit([]*WithItem{item}, body)

	checkRange(t, with, 3, 3, 3)
	checkRange(t, with, 4, 4, 5)
}

func TestTryExceptBlockRange(t *testing.T) {
	try := NewTryExcept(at(1, 0), nil)
	body := []Statement{NewPass(at(2, 4), try)}
	handler := NewExceptHandler(at(3, 0), try)
	handlerType := NewName("ValueError", at(3, 7), handler)
	handler.PostInit(handlerType, nil, []Statement{NewPass(at(4, 4), handler)})
	orElse := []Statement{NewPass(at(6, 4), try)}
	try.PostInit(body, []*ExceptHandler{handler}, orElse)

	checkRange(t, try, 1, 1, 1)
	checkRange(t, try, 2, 2, 5)
	checkRange(t, try, 3, 3, 3)
	checkRange(t, try, 4, 4, 4)
	checkRange(t, try, 6, 6, 6)
}

func TestTryExceptBlockRangeWithoutElse(t *testing.T) {
	try := NewTryExcept(at(1, 0), nil)
	body := []Statement{NewPass(at(2, 4), try)}
	handler := NewExceptHandler(at(3, 0), try)
	handler.PostInit(NewName("ValueError", at(3, 7), handler), nil,
		[]Statement{NewPass(at(4, 4), handler)})
	try.PostInit(body, []*ExceptHandler{handler}, nil)

	checkRange(t, try, 2, 2, 3)
}

func TestTryFinallyBlockRange(t *testing.T) {
	tryFin := NewTryFinally(at(1, 0), nil)
	inner := NewTryExcept(at(1, 0), tryFin)
	innerBody := []Statement{NewPass(at(2, 4), inner)}
	handler := NewExceptHandler(at(3, 0), inner)
	handler.PostInit(NewName("ValueError", at(3, 7), handler), nil,
		[]Statement{NewPass(at(4, 4), handler)})
	inner.PostInit(innerBody, []*ExceptHandler{handler}, nil)
	finalBody := []Statement{NewPass(at(6, 4), tryFin)}
	tryFin.PostInit([]Statement{inner}, finalBody)

	checkRange(t, tryFin, 1, 1, 1)
	// Lines inside the same-line nested try/except delegate to it.
	checkRange(t, tryFin, 4, 4, 4)
	checkRange(t, tryFin, 5, 5, 5)
	checkRange(t, tryFin, 6, 6, 6)
}

func TestExceptHandlerBlockStartLine(t *testing.T) {
	handler := NewExceptHandler(at(3, 0), nil)
	handlerType := NewName("ValueError", at(3, 7), handler)
	bound := NewAssignName("err", at(3, 21), handler)
	handler.PostInit(handlerType, bound, []Statement{NewPass(at(4, 4), handler)})
	if got := handler.BlockStartLine(); got != 3 {
		t.Fatalf("expected block start 3, got %d", got)
	}

	bare := NewExceptHandler(at(7, 0), nil)
	bare.PostInit(nil, nil, []Statement{NewPass(at(8, 4), bare)})
	if got := bare.BlockStartLine(); got != 7 {
		t.Fatalf("expected block start 7, got %d", got)
	}
}

func TestExceptHandlerCatch(t *testing.T) {
	handler := NewExceptHandler(at(3, 0), nil)
	handler.PostInit(NewName("ValueError", at(3, 7), handler), nil,
		[]Statement{NewPass(at(4, 4), handler)})

	if !handler.Catch([]string{"ValueError", "TypeError"}) {
		t.Fatalf("expected the handler to catch ValueError")
	}
	if handler.Catch([]string{"KeyError"}) {
		t.Fatalf("expected the handler not to catch KeyError")
	}
	if !handler.Catch(nil) {
		t.Fatalf("expected a nil name set to match")
	}

	bare := NewExceptHandler(at(5, 0), nil)
	bare.PostInit(nil, nil, []Statement{NewPass(at(6, 4), bare)})
	if !bare.Catch([]string{"KeyError"}) {
		t.Fatalf("expected a bare handler to catch everything")
	}
}

func TestCatchTupleOfTypes(t *testing.T) {
	handler := NewExceptHandler(at(3, 0), nil)
	types := NewTuple(Load, at(3, 8), handler)
	types.PostInit([]Node{
		NewName("ValueError", at(3, 8), types),
		NewName("KeyError", at(3, 20), types),
	})
	handler.PostInit(types, nil, []Statement{NewPass(at(4, 4), handler)})

	if !handler.Catch([]string{"KeyError"}) {
		t.Fatalf("expected the tuple handler to catch KeyError")
	}
	if handler.Catch([]string{"OSError"}) {
		t.Fatalf("expected the tuple handler not to catch OSError")
	}
}
