// Package nodes implements the semantic tree of a dynamic, object-oriented
// scripting language together with lazy, multi-valued value inference over
// it. A host builds the tree bottom-up from a parsed syntax tree, wires
// children with PostInit, and queries any node through an Inferrer carrying
// the injected collaborators (builtins registry, scope service, object
// model).
package nodes

import (
	"fmt"

	"github.com/sibyl-lang/sibyl/internal/diag"
)

// Span locates a node in source text.
type Span struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the span.
func (s Span) String() string { return fmt.Sprintf("%d:%d", s.Line, s.Column) }

func toDiagSpan(s Span) diag.Span {
	return diag.Span{Line: s.Line, Column: s.Column}
}

// Value is a single inference outcome. Every Node is a Value; so are the
// Uninferable sentinel, the bad-operation markers and wrapped runtime
// objects.
type Value interface {
	valueNode()
}

// Node represents one element of the semantic tree.
type Node interface {
	Value
	Span() Span
	Parent() Node
	// Children returns the direct child nodes in declared order, skipping
	// absent optional children.
	Children() []Node
}

// Statement marks nodes that are direct members of a block's ordered
// statement sequence.
type Statement interface {
	Node
	stmtNode()
}

// Assignable marks node variants that can appear as a write target.
type Assignable interface {
	Node
	assignTarget()
}

// BoolValuer is implemented by nodes whose truthiness is determinable
// without inference.
type BoolValuer interface {
	BoolValue() bool
}

// base carries the state shared by every variant: the source position, the
// non-owning parent back-reference and the deferred-initialization latch.
type base struct {
	span   Span
	parent Node
	ready  bool
}

func makeBase(span Span, parent Node) base {
	return base{span: span, parent: parent}
}

func (b *base) Span() Span   { return b.span }
func (b *base) Parent() Node { return b.parent }
func (*base) valueNode()     {}

// markReady flags the node traversable. Leaf constructors call it directly;
// variants with child fields call it from PostInit. A second call is a
// caller contract violation.
func (b *base) markReady(kind string) {
	if b.ready {
		panic("nodes: " + kind + ": PostInit called twice")
	}
	b.ready = true
}

// mustReady guards traversal of a node whose children were never installed.
func (b *base) mustReady(kind string) {
	if !b.ready {
		panic("nodes: " + kind + ": traversed before PostInit")
	}
}

// stmt is the base of every statement variant.
type stmt struct{ base }

func (*stmt) stmtNode() {}

// kids collects the non-absent children in declared order.
func kids(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func appendStmts(dst []Node, stmts []Statement) []Node {
	for _, s := range stmts {
		dst = append(dst, s)
	}
	return dst
}

// LastChild returns the last non-absent child of n, or nil.
func LastChild(n Node) Node {
	children := n.Children()
	if len(children) == 0 {
		return nil
	}
	return children[len(children)-1]
}

// FromLine is the first source line covered by n.
func FromLine(n Node) int { return n.Span().Line }

// ToLine is the last source line covered by n, derived from its last child.
func ToLine(n Node) int {
	if last := LastChild(n); last != nil {
		return ToLine(last)
	}
	return n.Span().Line
}

// EnclosingStatement returns the closest enclosing statement, including n
// itself, or nil for a detached expression tree.
func EnclosingStatement(n Node) Statement {
	for cur := n; cur != nil; cur = cur.Parent() {
		if s, ok := cur.(Statement); ok {
			return s
		}
	}
	return nil
}

// Walk traverses the tree starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range node.Children() {
		Walk(child, fn)
	}
}

// NodesOfType collects every descendant of n, including n itself, whose
// variant is T.
func NodesOfType[T Node](n Node) []T {
	var out []T
	Walk(n, func(d Node) bool {
		if v, ok := d.(T); ok {
			out = append(out, v)
		}
		return true
	})
	return out
}

func indexOf(elts []Node, n Node) int {
	for i, e := range elts {
		if e == n {
			return i
		}
	}
	return -1
}
