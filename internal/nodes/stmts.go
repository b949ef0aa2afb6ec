package nodes

// Assign represents a plain assignment statement.
type Assign struct {
	stmt
	Targets []Node
	Value   Node
}

// NewAssign constructs an assignment node.
func NewAssign(span Span, parent Node) *Assign {
	return &Assign{stmt: stmt{makeBase(span, parent)}}
}

// PostInit installs the targets and the assigned expression.
func (n *Assign) PostInit(targets []Node, value Node) {
	n.Targets = targets
	n.Value = value
	n.markReady("Assign")
}

func (n *Assign) Children() []Node {
	n.mustReady("Assign")
	out := make([]Node, 0, len(n.Targets)+1)
	out = append(out, n.Targets...)
	return kids(append(out, n.Value)...)
}

// AugAssign represents an augmented assignment statement; Op carries the
// operator with its trailing "=", e.g. "+=".
type AugAssign struct {
	stmt
	Op     string
	Target Node
	Value  Node
}

// NewAugAssign constructs an augmented-assignment node.
func NewAugAssign(op string, span Span, parent Node) *AugAssign {
	return &AugAssign{stmt: stmt{makeBase(span, parent)}, Op: op}
}

// PostInit installs the target and the operand expression.
func (n *AugAssign) PostInit(target, value Node) {
	n.Target = target
	n.Value = value
	n.markReady("AugAssign")
}

func (n *AugAssign) Children() []Node {
	n.mustReady("AugAssign")
	return kids(n.Target, n.Value)
}

// Assert represents an assert statement.
type Assert struct {
	stmt
	Test Node
	Fail Node
}

// NewAssert constructs an assert node.
func NewAssert(span Span, parent Node) *Assert {
	return &Assert{stmt: stmt{makeBase(span, parent)}}
}

// PostInit installs the condition and the optional failure message.
func (n *Assert) PostInit(test, fail Node) {
	n.Test = test
	n.Fail = fail
	n.markReady("Assert")
}

func (n *Assert) Children() []Node {
	n.mustReady("Assert")
	return kids(n.Test, n.Fail)
}

// Delete represents a delete statement.
type Delete struct {
	stmt
	Targets []Node
}

// NewDelete constructs a delete node.
func NewDelete(span Span, parent Node) *Delete {
	return &Delete{stmt: stmt{makeBase(span, parent)}}
}

// PostInit installs the delete targets.
func (n *Delete) PostInit(targets []Node) {
	n.Targets = targets
	n.markReady("Delete")
}

func (n *Delete) Children() []Node {
	n.mustReady("Delete")
	return kids(n.Targets...)
}

// ExprStmt represents a bare expression used as a statement.
type ExprStmt struct {
	stmt
	Value Node
}

// NewExprStmt constructs an expression-statement node.
func NewExprStmt(span Span, parent Node) *ExprStmt {
	return &ExprStmt{stmt: stmt{makeBase(span, parent)}}
}

// PostInit installs the wrapped expression.
func (n *ExprStmt) PostInit(value Node) {
	n.Value = value
	n.markReady("ExprStmt")
}

func (n *ExprStmt) Children() []Node {
	n.mustReady("ExprStmt")
	return kids(n.Value)
}

// Return represents a return statement.
type Return struct {
	stmt
	Value Node
}

// NewReturn constructs a return node.
func NewReturn(span Span, parent Node) *Return {
	return &Return{stmt: stmt{makeBase(span, parent)}}
}

// PostInit installs the returned expression, which may be nil.
func (n *Return) PostInit(value Node) {
	n.Value = value
	n.markReady("Return")
}

func (n *Return) Children() []Node {
	n.mustReady("Return")
	return kids(n.Value)
}

// Raise represents a raise statement.
type Raise struct {
	stmt
	Exc   Node
	Cause Node
}

// NewRaise constructs a raise node.
func NewRaise(span Span, parent Node) *Raise {
	return &Raise{stmt: stmt{makeBase(span, parent)}}
}

// PostInit installs the raised expression and the optional cause.
func (n *Raise) PostInit(exc, cause Node) {
	n.Exc = exc
	n.Cause = cause
	n.markReady("Raise")
}

func (n *Raise) Children() []Node {
	n.mustReady("Raise")
	return kids(n.Exc, n.Cause)
}

// RaisesNotImplemented reports whether the statement raises the
// not-implemented error type.
func (n *Raise) RaisesNotImplemented() bool {
	if n.Exc == nil {
		return false
	}
	for _, name := range NodesOfType[*Name](n.Exc) {
		if name.Name == "NotImplementedError" {
			return true
		}
	}
	return false
}

// Pass represents a pass statement.
type Pass struct{ stmt }

// NewPass constructs a pass node.
func NewPass(span Span, parent Node) *Pass {
	n := &Pass{stmt{makeBase(span, parent)}}
	n.markReady("Pass")
	return n
}

func (n *Pass) Children() []Node { return nil }

// Break represents a break statement.
type Break struct{ stmt }

// NewBreak constructs a break node.
func NewBreak(span Span, parent Node) *Break {
	n := &Break{stmt{makeBase(span, parent)}}
	n.markReady("Break")
	return n
}

func (n *Break) Children() []Node { return nil }

// Continue represents a continue statement.
type Continue struct{ stmt }

// NewContinue constructs a continue node.
func NewContinue(span Span, parent Node) *Continue {
	n := &Continue{stmt{makeBase(span, parent)}}
	n.markReady("Continue")
	return n
}

func (n *Continue) Children() []Node { return nil }

// Global represents a global declaration statement.
type Global struct {
	stmt
	Names []string
}

// NewGlobal constructs a global-declaration node.
func NewGlobal(names []string, span Span, parent Node) *Global {
	n := &Global{stmt: stmt{makeBase(span, parent)}, Names: names}
	n.markReady("Global")
	return n
}

func (n *Global) Children() []Node { return nil }

// Nonlocal represents a nonlocal declaration statement.
type Nonlocal struct {
	stmt
	Names []string
}

// NewNonlocal constructs a nonlocal-declaration node.
func NewNonlocal(names []string, span Span, parent Node) *Nonlocal {
	n := &Nonlocal{stmt: stmt{makeBase(span, parent)}, Names: names}
	n.markReady("Nonlocal")
	return n
}

func (n *Nonlocal) Children() []Node { return nil }

// Alias pairs an imported name with its optional binding name.
type Alias struct {
	Name   string
	AsName string
}

// Bound returns the name the alias binds in the importing scope.
func (a Alias) Bound() string {
	if a.AsName != "" {
		return a.AsName
	}
	return a.Name
}

// Import represents an import statement.
type Import struct {
	stmt
	Names []Alias
}

// NewImport constructs an import node.
func NewImport(names []Alias, span Span, parent Node) *Import {
	n := &Import{stmt: stmt{makeBase(span, parent)}, Names: names}
	n.markReady("Import")
	return n
}

func (n *Import) Children() []Node { return nil }

// ImportFrom represents a from-import statement.
type ImportFrom struct {
	stmt
	Module string
	Names  []Alias
	Level  int
}

// NewImportFrom constructs a from-import node.
func NewImportFrom(module string, names []Alias, level int, span Span, parent Node) *ImportFrom {
	n := &ImportFrom{stmt: stmt{makeBase(span, parent)}, Module: module, Names: names, Level: level}
	n.markReady("ImportFrom")
	return n
}

func (n *ImportFrom) Children() []Node { return nil }

// Decorators represents the decorator list attached to a definition.
type Decorators struct {
	base
	Nodes []Node
}

// NewDecorators constructs a decorator-list node.
func NewDecorators(span Span, parent Node) *Decorators {
	return &Decorators{base: makeBase(span, parent)}
}

// PostInit installs the decorator expressions.
func (n *Decorators) PostInit(nodes []Node) {
	n.Nodes = nodes
	n.markReady("Decorators")
}

func (n *Decorators) Children() []Node {
	n.mustReady("Decorators")
	return kids(n.Nodes...)
}
