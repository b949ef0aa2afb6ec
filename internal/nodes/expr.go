package nodes

// BinOp represents a binary operation.
type BinOp struct {
	base
	Op    string
	Left  Node
	Right Node
}

// NewBinOp constructs a binary-operation node.
func NewBinOp(op string, span Span, parent Node) *BinOp {
	return &BinOp{base: makeBase(span, parent), Op: op}
}

// PostInit installs the operand expressions.
func (n *BinOp) PostInit(left, right Node) {
	n.Left = left
	n.Right = right
	n.markReady("BinOp")
}

func (n *BinOp) Children() []Node {
	n.mustReady("BinOp")
	return kids(n.Left, n.Right)
}

// BoolOp represents a short-circuit boolean operation over two or more
// operands.
type BoolOp struct {
	base
	Op     string
	Values []Node
}

// NewBoolOp constructs a boolean-operation node.
func NewBoolOp(op string, span Span, parent Node) *BoolOp {
	return &BoolOp{base: makeBase(span, parent), Op: op}
}

// PostInit installs the operand expressions.
func (n *BoolOp) PostInit(values []Node) {
	n.Values = values
	n.markReady("BoolOp")
}

func (n *BoolOp) Children() []Node {
	n.mustReady("BoolOp")
	return kids(n.Values...)
}

// UnaryOp represents a unary operation.
type UnaryOp struct {
	base
	Op      string
	Operand Node
}

// NewUnaryOp constructs a unary-operation node.
func NewUnaryOp(op string, span Span, parent Node) *UnaryOp {
	return &UnaryOp{base: makeBase(span, parent), Op: op}
}

// PostInit installs the operand expression.
func (n *UnaryOp) PostInit(operand Node) {
	n.Operand = operand
	n.markReady("UnaryOp")
}

func (n *UnaryOp) Children() []Node {
	n.mustReady("UnaryOp")
	return kids(n.Operand)
}

// Compare represents a chained comparison.
type Compare struct {
	base
	Ops         []string
	Left        Node
	Comparators []Node
}

// NewCompare constructs a comparison node.
func NewCompare(ops []string, span Span, parent Node) *Compare {
	return &Compare{base: makeBase(span, parent), Ops: ops}
}

// PostInit installs the first operand and the comparator chain.
func (n *Compare) PostInit(left Node, comparators []Node) {
	n.Left = left
	n.Comparators = comparators
	n.markReady("Compare")
}

func (n *Compare) Children() []Node {
	n.mustReady("Compare")
	out := make([]Node, 0, len(n.Comparators)+1)
	out = append(out, n.Left)
	out = append(out, n.Comparators...)
	return out
}

// Call represents a call expression.
type Call struct {
	base
	Func     Node
	Args     []Node
	Keywords []*Keyword
}

// NewCall constructs a call node.
func NewCall(span Span, parent Node) *Call {
	return &Call{base: makeBase(span, parent)}
}

// PostInit installs the callee and argument nodes.
func (n *Call) PostInit(fn Node, args []Node, keywords []*Keyword) {
	n.Func = fn
	n.Args = args
	n.Keywords = keywords
	n.markReady("Call")
}

func (n *Call) Children() []Node {
	n.mustReady("Call")
	out := make([]Node, 0, 1+len(n.Args)+len(n.Keywords))
	out = append(out, n.Func)
	out = append(out, n.Args...)
	for _, kw := range n.Keywords {
		out = append(out, kw)
	}
	return out
}

// StarArgs returns the positional arguments marked for unpacking.
func (n *Call) StarArgs() []*Starred {
	var out []*Starred
	for _, arg := range n.Args {
		if s, ok := arg.(*Starred); ok {
			out = append(out, s)
		}
	}
	return out
}

// KwArgs returns the keyword arguments with no explicit name.
func (n *Call) KwArgs() []*Keyword {
	var out []*Keyword
	for _, kw := range n.Keywords {
		if kw.Arg == "" {
			out = append(out, kw)
		}
	}
	return out
}

// Keyword represents one keyword argument; an empty Arg marks a
// keyword-splat.
type Keyword struct {
	base
	Arg   string
	Value Node
}

// NewKeyword constructs a keyword-argument node.
func NewKeyword(arg string, span Span, parent Node) *Keyword {
	return &Keyword{base: makeBase(span, parent), Arg: arg}
}

// PostInit installs the argument value.
func (n *Keyword) PostInit(value Node) {
	n.Value = value
	n.markReady("Keyword")
}

func (n *Keyword) Children() []Node {
	n.mustReady("Keyword")
	return kids(n.Value)
}

// IfExp represents a conditional expression.
type IfExp struct {
	base
	Test   Node
	Body   Node
	OrElse Node
}

// NewIfExp constructs a conditional-expression node.
func NewIfExp(span Span, parent Node) *IfExp {
	return &IfExp{base: makeBase(span, parent)}
}

// PostInit installs the condition and both branches.
func (n *IfExp) PostInit(test, body, orElse Node) {
	n.Test = test
	n.Body = body
	n.OrElse = orElse
	n.markReady("IfExp")
}

func (n *IfExp) Children() []Node {
	n.mustReady("IfExp")
	return kids(n.Test, n.Body, n.OrElse)
}

// Subscript represents an item access expression.
type Subscript struct {
	base
	Ctx   ExprContext
	Value Node
	Slice Node
}

// NewSubscript constructs a subscript node.
func NewSubscript(ctx ExprContext, span Span, parent Node) *Subscript {
	return &Subscript{base: makeBase(span, parent), Ctx: ctx}
}

// PostInit installs the receiver and index expressions.
func (n *Subscript) PostInit(value, slice Node) {
	n.Value = value
	n.Slice = slice
	n.markReady("Subscript")
}

func (n *Subscript) Children() []Node {
	n.mustReady("Subscript")
	return kids(n.Value, n.Slice)
}

func (*Subscript) assignTarget() {}

// Index wraps a plain subscript index expression.
type Index struct {
	base
	Value Node
}

// NewIndex constructs an index node.
func NewIndex(span Span, parent Node) *Index {
	return &Index{base: makeBase(span, parent)}
}

// PostInit installs the index expression.
func (n *Index) PostInit(value Node) {
	n.Value = value
	n.markReady("Index")
}

func (n *Index) Children() []Node {
	n.mustReady("Index")
	return kids(n.Value)
}

// Slice represents a slice expression; absent bounds are nil.
type Slice struct {
	base
	Lower   Node
	Upper   Node
	Step    Node
	proxied Value
}

// NewSlice constructs a slice node.
func NewSlice(span Span, parent Node) *Slice {
	return &Slice{base: makeBase(span, parent)}
}

// PostInit installs the slice bounds; any of them may be nil.
func (n *Slice) PostInit(lower, upper, step Node) {
	n.Lower = lower
	n.Upper = upper
	n.Step = step
	n.markReady("Slice")
}

func (n *Slice) Children() []Node {
	n.mustReady("Slice")
	return kids(n.Lower, n.Upper, n.Step)
}

// Attr exposes start, stop and step the way the runtime slice object does,
// wrapping an absent bound in a nil constant so callers always see a node.
func (n *Slice) Attr(name string) (Node, bool) {
	switch name {
	case "start":
		return n.wrapBound(n.Lower), true
	case "stop":
		return n.wrapBound(n.Upper), true
	case "step":
		return n.wrapBound(n.Step), true
	}
	return nil, false
}

func (n *Slice) wrapBound(bound Node) Node {
	if bound == nil || bound == Node(Empty) {
		return NewConst(nil, n.Span(), n)
	}
	return bound
}

// ExtSlice represents a multi-dimensional subscript index.
type ExtSlice struct {
	base
	Dims []Node
}

// NewExtSlice constructs an extended-slice node.
func NewExtSlice(span Span, parent Node) *ExtSlice {
	return &ExtSlice{base: makeBase(span, parent)}
}

// PostInit installs the dimension expressions.
func (n *ExtSlice) PostInit(dims []Node) {
	n.Dims = dims
	n.markReady("ExtSlice")
}

func (n *ExtSlice) Children() []Node {
	n.mustReady("ExtSlice")
	return kids(n.Dims...)
}

// Starred represents a *-marked expression, in call arguments or in
// destructuring targets.
type Starred struct {
	base
	Ctx   ExprContext
	Value Node
}

// NewStarred constructs a starred-expression node.
func NewStarred(ctx ExprContext, span Span, parent Node) *Starred {
	return &Starred{base: makeBase(span, parent), Ctx: ctx}
}

// PostInit installs the wrapped expression.
func (n *Starred) PostInit(value Node) {
	n.Value = value
	n.markReady("Starred")
}

func (n *Starred) Children() []Node {
	n.mustReady("Starred")
	return kids(n.Value)
}

func (*Starred) assignTarget() {}

// Await represents an await expression.
type Await struct {
	base
	Value Node
}

// NewAwait constructs an await node.
func NewAwait(span Span, parent Node) *Await {
	return &Await{base: makeBase(span, parent)}
}

// PostInit installs the awaited expression.
func (n *Await) PostInit(value Node) {
	n.Value = value
	n.markReady("Await")
}

func (n *Await) Children() []Node {
	n.mustReady("Await")
	return kids(n.Value)
}

// Yield represents a yield expression.
type Yield struct {
	base
	Value Node
}

// NewYield constructs a yield node.
func NewYield(span Span, parent Node) *Yield {
	return &Yield{base: makeBase(span, parent)}
}

// PostInit installs the yielded expression, which may be nil.
func (n *Yield) PostInit(value Node) {
	n.Value = value
	n.markReady("Yield")
}

func (n *Yield) Children() []Node {
	n.mustReady("Yield")
	return kids(n.Value)
}

// YieldFrom represents a yield-from expression.
type YieldFrom struct {
	Yield
}

// NewYieldFrom constructs a yield-from node.
func NewYieldFrom(span Span, parent Node) *YieldFrom {
	return &YieldFrom{Yield{base: makeBase(span, parent)}}
}
