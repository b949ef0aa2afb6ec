package nodes

// BlockRanger is implemented by compound statements that can attribute an
// arbitrary source line to the clause owning it.
type BlockRanger interface {
	Statement
	// BlockRange returns the inclusive line span owned by whichever clause
	// contains line.
	BlockRange(line int) (int, int)
}

// If represents a conditional statement.
type If struct {
	stmt
	Test   Node
	Body   []Statement
	OrElse []Statement
}

// NewIf constructs a conditional node.
func NewIf(span Span, parent Node) *If {
	return &If{stmt: stmt{makeBase(span, parent)}}
}

// PostInit installs the condition and both branches.
func (n *If) PostInit(test Node, body, orElse []Statement) {
	n.Test = test
	n.Body = body
	n.OrElse = orElse
	n.markReady("If")
}

func (n *If) Children() []Node {
	n.mustReady("If")
	out := kids(n.Test)
	out = appendStmts(out, n.Body)
	return appendStmts(out, n.OrElse)
}

// BlockRange attributes a line to the branch owning it: the first body
// line stands alone, lines inside the body span to its end, anything else
// falls to the else branch with the line before the body as boundary.
func (n *If) BlockRange(line int) (int, int) {
	if line == FromLine(n.Body[0]) {
		return line, line
	}
	if line <= ToLine(n.Body[len(n.Body)-1]) {
		return line, ToLine(n.Body[len(n.Body)-1])
	}
	return elsedBlockRange(n, line, n.OrElse, FromLine(n.Body[0])-1)
}

// For represents a loop over an iterable.
type For struct {
	stmt
	Target Node
	Iter   Node
	Body   []Statement
	OrElse []Statement
}

// NewFor constructs a loop node.
func NewFor(span Span, parent Node) *For {
	return &For{stmt: stmt{makeBase(span, parent)}}
}

// PostInit installs the loop target, iterable and bodies.
func (n *For) PostInit(target, iter Node, body, orElse []Statement) {
	n.Target = target
	n.Iter = iter
	n.Body = body
	n.OrElse = orElse
	n.markReady("For")
}

func (n *For) Children() []Node {
	n.mustReady("For")
	out := kids(n.Target, n.Iter)
	out = appendStmts(out, n.Body)
	return appendStmts(out, n.OrElse)
}

// BlockRange delegates to the else-branch span with no extra boundary.
func (n *For) BlockRange(line int) (int, int) {
	return elsedBlockRange(n, line, n.OrElse, 0)
}

// AsyncFor represents a loop built with the async keyword.
type AsyncFor struct{ For }

// NewAsyncFor constructs an asynchronous loop node.
func NewAsyncFor(span Span, parent Node) *AsyncFor {
	return &AsyncFor{For{stmt: stmt{makeBase(span, parent)}}}
}

// While represents a condition-driven loop.
type While struct {
	stmt
	Test   Node
	Body   []Statement
	OrElse []Statement
}

// NewWhile constructs a while node.
func NewWhile(span Span, parent Node) *While {
	return &While{stmt: stmt{makeBase(span, parent)}}
}

// PostInit installs the condition and bodies.
func (n *While) PostInit(test Node, body, orElse []Statement) {
	n.Test = test
	n.Body = body
	n.OrElse = orElse
	n.markReady("While")
}

func (n *While) Children() []Node {
	n.mustReady("While")
	out := kids(n.Test)
	out = appendStmts(out, n.Body)
	return appendStmts(out, n.OrElse)
}

// BlockRange delegates to the else-branch span with no extra boundary.
func (n *While) BlockRange(line int) (int, int) {
	return elsedBlockRange(n, line, n.OrElse, 0)
}

// With represents a context-manager statement.
type With struct {
	stmt
	Items []*WithItem
	Body  []Statement
}

// NewWith constructs a with node.
func NewWith(span Span, parent Node) *With {
	return &With{stmt: stmt{makeBase(span, parent)}}
}

// PostInit installs the context items and the body.
func (n *With) PostInit(items []*WithItem, body []Statement) {
	n.Items = items
	n.Body = body
	n.markReady("With")
}

func (n *With) Children() []Node {
	n.mustReady("With")
	out := make([]Node, 0, len(n.Items)+len(n.Body))
	for _, item := range n.Items {
		out = append(out, item)
	}
	return appendStmts(out, n.Body)
}

// BlockRange spans the body; a with statement has no else branch.
func (n *With) BlockRange(line int) (int, int) {
	return elsedBlockRange(n, line, nil, 0)
}

// AsyncWith represents a context-manager statement built with the async
// keyword.
type AsyncWith struct{ With }

// NewAsyncWith constructs an asynchronous with node.
func NewAsyncWith(span Span, parent Node) *AsyncWith {
	return &AsyncWith{With{stmt: stmt{makeBase(span, parent)}}}
}

// WithItem pairs one context expression with its optional bound target.
type WithItem struct {
	base
	ContextExpr  Node
	OptionalVars Node
}

// NewWithItem constructs a context-item node.
func NewWithItem(span Span, parent Node) *WithItem {
	return &WithItem{base: makeBase(span, parent)}
}

// PostInit installs the context expression and the optional target.
func (n *WithItem) PostInit(contextExpr, optionalVars Node) {
	n.ContextExpr = contextExpr
	n.OptionalVars = optionalVars
	n.markReady("WithItem")
}

func (n *WithItem) Children() []Node {
	n.mustReady("WithItem")
	return kids(n.ContextExpr, n.OptionalVars)
}

// TryExcept represents a try statement with exception handlers.
type TryExcept struct {
	stmt
	Body     []Statement
	Handlers []*ExceptHandler
	OrElse   []Statement
}

// NewTryExcept constructs a try/except node.
func NewTryExcept(span Span, parent Node) *TryExcept {
	return &TryExcept{stmt: stmt{makeBase(span, parent)}}
}

// PostInit installs the guarded body, the handlers and the else branch.
func (n *TryExcept) PostInit(body []Statement, handlers []*ExceptHandler, orElse []Statement) {
	n.Body = body
	n.Handlers = handlers
	n.OrElse = orElse
	n.markReady("TryExcept")
}

func (n *TryExcept) Children() []Node {
	n.mustReady("TryExcept")
	out := appendStmts(nil, n.Body)
	for _, h := range n.Handlers {
		out = append(out, h)
	}
	return appendStmts(out, n.OrElse)
}

// BlockRange scans handlers in order: a line on a handler's matched-type
// line stands alone, a line inside a handler body spans that body, and
// anything else falls to the else branch bounded by the line before the
// first handler.
func (n *TryExcept) BlockRange(line int) (int, int) {
	last := 0
	for _, handler := range n.Handlers {
		if handler.Type != nil && line == FromLine(handler.Type) {
			return line, line
		}
		if len(handler.Body) > 0 &&
			FromLine(handler.Body[0]) <= line && line <= ToLine(handler.Body[len(handler.Body)-1]) {
			return line, ToLine(handler.Body[len(handler.Body)-1])
		}
		if last == 0 && len(handler.Body) > 0 {
			last = FromLine(handler.Body[0]) - 1
		}
	}
	return elsedBlockRange(n, line, n.OrElse, last)
}

// TryFinally represents a try statement with a finally clause.
type TryFinally struct {
	stmt
	Body      []Statement
	FinalBody []Statement
}

// NewTryFinally constructs a try/finally node.
func NewTryFinally(span Span, parent Node) *TryFinally {
	return &TryFinally{stmt: stmt{makeBase(span, parent)}}
}

// PostInit installs the guarded body and the finally clause.
func (n *TryFinally) PostInit(body, finalBody []Statement) {
	n.Body = body
	n.FinalBody = finalBody
	n.markReady("TryFinally")
}

func (n *TryFinally) Children() []Node {
	n.mustReady("TryFinally")
	out := appendStmts(nil, n.Body)
	return appendStmts(out, n.FinalBody)
}

// BlockRange delegates into a nested try/except opening on the same line,
// otherwise attributes the line against the finally clause.
func (n *TryFinally) BlockRange(line int) (int, int) {
	if len(n.Body) > 0 {
		if child, ok := n.Body[0].(*TryExcept); ok &&
			FromLine(child) == FromLine(n) && line > FromLine(n) && line <= ToLine(child) {
			return child.BlockRange(line)
		}
	}
	return elsedBlockRange(n, line, n.FinalBody, 0)
}

// ExceptHandler represents one exception-binding clause of a try statement.
type ExceptHandler struct {
	stmt
	Type Node
	Name Node
	Body []Statement
}

// NewExceptHandler constructs an exception-handler node.
func NewExceptHandler(span Span, parent Node) *ExceptHandler {
	return &ExceptHandler{stmt: stmt{makeBase(span, parent)}}
}

// PostInit installs the matched type, the binding target and the body.
func (n *ExceptHandler) PostInit(typ, name Node, body []Statement) {
	n.Type = typ
	n.Name = name
	n.Body = body
	n.markReady("ExceptHandler")
}

func (n *ExceptHandler) Children() []Node {
	n.mustReady("ExceptHandler")
	out := kids(n.Type, n.Name)
	return appendStmts(out, n.Body)
}

// BlockStartLine returns the line on which the handler clause opens.
func (n *ExceptHandler) BlockStartLine() int {
	switch {
	case n.Name != nil:
		return ToLine(n.Name)
	case n.Type != nil:
		return ToLine(n.Type)
	}
	return n.Span().Line
}

// Catch reports whether the handler catches any of the named exception
// types. A bare handler, or a nil name set, catches everything.
func (n *ExceptHandler) Catch(names []string) bool {
	if n.Type == nil || names == nil {
		return true
	}
	for _, name := range NodesOfType[*Name](n.Type) {
		for _, want := range names {
			if name.Name == want {
				return true
			}
		}
	}
	return false
}

// Comprehension represents one for-clause of a comprehension or generator
// expression.
type Comprehension struct {
	base
	Target Node
	Iter   Node
	Ifs    []Node
}

// NewComprehension constructs a comprehension-clause node.
func NewComprehension(span Span, parent Node) *Comprehension {
	return &Comprehension{base: makeBase(span, parent)}
}

// PostInit installs the target, the iterable and the filter conditions.
func (n *Comprehension) PostInit(target, iter Node, ifs []Node) {
	n.Target = target
	n.Iter = iter
	n.Ifs = ifs
	n.markReady("Comprehension")
}

func (n *Comprehension) Children() []Node {
	n.mustReady("Comprehension")
	out := kids(n.Target, n.Iter)
	return append(out, kids(n.Ifs...)...)
}

// FilteredStmts adjusts a scope lookup that crossed this comprehension
// clause. A Const or Name lookup originating inside the comprehension's
// own scope is returned verbatim; a lookup from the clause's enclosing
// statement keeps only the current node. The boolean reports whether
// filtering is finished.
func (n *Comprehension) FilteredStmts(lookup, node Node, stmts []Node, mystmt Node) ([]Node, bool) {
	if Node(n) == mystmt {
		switch lookup.(type) {
		case *Const, *Name:
			return []Node{lookup}, true
		}
	} else if enclosing := EnclosingStatement(n); enclosing != nil && Node(enclosing) == mystmt {
		return []Node{node}, true
	}
	return stmts, false
}

// elsedBlockRange attributes line against an else-style trailing branch.
// A last value of zero means the statement's own end line.
func elsedBlockRange(n Statement, line int, orElse []Statement, last int) (int, int) {
	if line == FromLine(n) {
		return line, line
	}
	if len(orElse) > 0 {
		if line >= FromLine(orElse[0]) {
			return line, ToLine(orElse[len(orElse)-1])
		}
		return line, FromLine(orElse[0]) - 1
	}
	if last == 0 {
		last = ToLine(n)
	}
	return line, last
}

// NextSibling returns the statement following s in its parent's statement
// sequence, or nil at the boundary.
func NextSibling(s Statement) Statement {
	block := childSequence(s.Parent(), s)
	for i, cur := range block {
		if Node(cur) == Node(s) && i+1 < len(block) {
			return block[i+1]
		}
	}
	return nil
}

// PreviousSibling returns the statement preceding s in its parent's
// statement sequence, or nil at the boundary.
func PreviousSibling(s Statement) Statement {
	block := childSequence(s.Parent(), s)
	for i, cur := range block {
		if Node(cur) == Node(s) && i >= 1 {
			return block[i-1]
		}
	}
	return nil
}

// childSequence returns the statement block of parent that contains child.
func childSequence(parent, child Node) []Statement {
	if parent == nil {
		return nil
	}
	for _, block := range statementBlocks(parent) {
		for _, s := range block {
			if Node(s) == child {
				return block
			}
		}
	}
	return nil
}

// statementBlocks lists the ordered statement sequences a node owns.
func statementBlocks(n Node) [][]Statement {
	switch p := n.(type) {
	case *If:
		return [][]Statement{p.Body, p.OrElse}
	case *For:
		return [][]Statement{p.Body, p.OrElse}
	case *AsyncFor:
		return [][]Statement{p.Body, p.OrElse}
	case *While:
		return [][]Statement{p.Body, p.OrElse}
	case *With:
		return [][]Statement{p.Body}
	case *AsyncWith:
		return [][]Statement{p.Body}
	case *TryExcept:
		return [][]Statement{p.Body, handlerStmts(p.Handlers), p.OrElse}
	case *TryFinally:
		return [][]Statement{p.Body, p.FinalBody}
	case *ExceptHandler:
		return [][]Statement{p.Body}
	}
	return nil
}

func handlerStmts(handlers []*ExceptHandler) []Statement {
	out := make([]Statement, len(handlers))
	for i, h := range handlers {
		out[i] = h
	}
	return out
}
