package nodes

import (
	"fmt"

	"github.com/sibyl-lang/sibyl/internal/diag"
)

// ExprContext records whether an expression loads, stores or deletes.
type ExprContext int

const (
	Load ExprContext = iota
	Store
	Del
)

// Const represents a literal primitive: int64, float64, string, []byte,
// bool or the language's own nil.
type Const struct {
	base
	Val     any
	proxied Value
}

// NewConst constructs a constant node.
func NewConst(val any, span Span, parent Node) *Const {
	c := &Const{base: makeBase(span, parent), Val: val}
	c.markReady("Const")
	return c
}

func (c *Const) Children() []Node { return nil }

// BoolValue reports the literal's truthiness.
func (c *Const) BoolValue() bool {
	switch v := c.Val.(type) {
	case nil:
		return false
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != ""
	case []byte:
		return len(v) != 0
	}
	return true
}

// TypeName returns the builtin type name keying the proxy lookup.
func (c *Const) TypeName() string {
	switch c.Val.(type) {
	case nil:
		return "NoneType"
	case bool:
		return "bool"
	case int64:
		return "int"
	case float64:
		return "float"
	case string:
		return "str"
	case []byte:
		return "bytes"
	}
	return "object"
}

// ValueString renders the constant the way it would appear in source.
func (c *Const) ValueString() string {
	switch v := c.Val.(type) {
	case nil:
		return "None"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Itered returns the values iterating over the constant would produce.
// Only strings are iterable.
func (c *Const) Itered() ([]Node, error) {
	s, ok := c.Val.(string)
	if !ok {
		return nil, diag.Errorf(diag.CodeBadOperand, toDiagSpan(c.Span()),
			"%s is not iterable", c.TypeName())
	}
	out := make([]Node, 0, len(s))
	for _, r := range s {
		out = append(out, NewConst(string(r), c.Span(), nil))
	}
	return out, nil
}

// NameConstant represents a builtin singleton literal: True, False, None.
type NameConstant struct{ Const }

// NewNameConstant constructs a singleton-literal node.
func NewNameConstant(val any, span Span, parent Node) *NameConstant {
	n := &NameConstant{Const{base: makeBase(span, parent), Val: val}}
	n.markReady("NameConstant")
	return n
}

// ReservedName assigns a name to a singleton in a manufactured builtins
// tree.
type ReservedName struct {
	base
	Name string
	Val  Node
}

// NewReservedName constructs a reserved-name node.
func NewReservedName(name string, span Span, parent Node) *ReservedName {
	return &ReservedName{base: makeBase(span, parent), Name: name}
}

// PostInit installs the named value.
func (n *ReservedName) PostInit(val Node) {
	n.Val = val
	n.markReady("ReservedName")
}

func (n *ReservedName) Children() []Node {
	n.mustReady("ReservedName")
	return kids(n.Val)
}

// container is the shared shape of the ordered literal sequence variants.
type container struct {
	base
	Elts    []Node
	proxied Value
}

// BoolValue reports the literal's truthiness.
func (c *container) BoolValue() bool { return len(c.Elts) > 0 }

// List represents a list literal.
type List struct {
	container
	Ctx ExprContext
}

// NewList constructs a list-literal node.
func NewList(ctx ExprContext, span Span, parent Node) *List {
	return &List{container: container{base: makeBase(span, parent)}, Ctx: ctx}
}

// PostInit installs the element nodes.
func (l *List) PostInit(elts []Node) {
	l.Elts = elts
	l.markReady("List")
}

func (l *List) Children() []Node {
	l.mustReady("List")
	return kids(l.Elts...)
}

func (*List) assignTarget() {}

// Tuple represents a tuple literal.
type Tuple struct {
	container
	Ctx ExprContext
}

// NewTuple constructs a tuple-literal node.
func NewTuple(ctx ExprContext, span Span, parent Node) *Tuple {
	return &Tuple{container: container{base: makeBase(span, parent)}, Ctx: ctx}
}

// PostInit installs the element nodes.
func (t *Tuple) PostInit(elts []Node) {
	t.Elts = elts
	t.markReady("Tuple")
}

func (t *Tuple) Children() []Node {
	t.mustReady("Tuple")
	return kids(t.Elts...)
}

func (*Tuple) assignTarget() {}

// Set represents a set literal.
type Set struct {
	container
}

// NewSet constructs a set-literal node.
func NewSet(span Span, parent Node) *Set {
	return &Set{container{base: makeBase(span, parent)}}
}

// PostInit installs the element nodes.
func (s *Set) PostInit(elts []Node) {
	s.Elts = elts
	s.markReady("Set")
}

func (s *Set) Children() []Node {
	s.mustReady("Set")
	return kids(s.Elts...)
}

// Dict represents a mapping literal. Keys and Values run in parallel; a
// DictUnpack key marks a **-style unpacked entry.
type Dict struct {
	base
	Keys    []Node
	Values  []Node
	proxied Value
}

// NewDict constructs a mapping-literal node.
func NewDict(span Span, parent Node) *Dict {
	return &Dict{base: makeBase(span, parent)}
}

// PostInit installs the parallel key and value nodes.
func (d *Dict) PostInit(keys, values []Node) {
	d.Keys = keys
	d.Values = values
	d.markReady("Dict")
}

func (d *Dict) Children() []Node {
	d.mustReady("Dict")
	out := make([]Node, 0, len(d.Keys)*2)
	for i := range d.Keys {
		out = append(out, d.Keys[i], d.Values[i])
	}
	return out
}

// DictItem is one key/value pair of a mapping literal.
type DictItem struct {
	Key   Node
	Value Node
}

// Items returns the key/value pairs in source order.
func (d *Dict) Items() []DictItem {
	out := make([]DictItem, len(d.Keys))
	for i := range d.Keys {
		out[i] = DictItem{Key: d.Keys[i], Value: d.Values[i]}
	}
	return out
}

// BoolValue reports the literal's truthiness.
func (d *Dict) BoolValue() bool { return len(d.Keys) > 0 }

// DictUnpack marks the unpacking of one mapping into another.
type DictUnpack struct{ base }

// NewDictUnpack constructs a mapping-unpack marker node.
func NewDictUnpack(span Span, parent Node) *DictUnpack {
	n := &DictUnpack{makeBase(span, parent)}
	n.markReady("DictUnpack")
	return n
}

func (n *DictUnpack) Children() []Node { return nil }

// Ellipsis represents the ellipsis literal.
type Ellipsis struct{ base }

// NewEllipsis constructs an ellipsis node.
func NewEllipsis(span Span, parent Node) *Ellipsis {
	n := &Ellipsis{makeBase(span, parent)}
	n.markReady("Ellipsis")
	return n
}

func (n *Ellipsis) Children() []Node { return nil }

// BoolValue reports the literal's truthiness.
func (n *Ellipsis) BoolValue() bool { return true }

// EmptyNode represents the lack of something, for positions where the
// language's own nil is itself a meaningful value.
type EmptyNode struct{ base }

func (n *EmptyNode) Children() []Node { return nil }

// BoolValue reports the placeholder's truthiness.
func (n *EmptyNode) BoolValue() bool { return false }

// Empty is the shared empty-placeholder instance.
var Empty = &EmptyNode{base{ready: true}}

// Unknown is a placeholder for tree positions where introspection failed.
// Its inference terminates immediately with Uninferable.
type Unknown struct{ base }

// NewUnknown constructs an unknown-placeholder node.
func NewUnknown(span Span, parent Node) *Unknown {
	n := &Unknown{makeBase(span, parent)}
	n.markReady("Unknown")
	return n
}

func (n *Unknown) Children() []Node { return nil }

// InterpreterObject lets a runtime object supplied by the host masquerade
// as a node inside a manufactured tree. It mimics the object it wraps for
// the purposes of inference.
type InterpreterObject struct {
	base
	Name   string
	Object Value
}

// NewInterpreterObject constructs a wrapper node around a host value.
func NewInterpreterObject(object Value, name string, span Span, parent Node) *InterpreterObject {
	n := &InterpreterObject{base: makeBase(span, parent), Name: name, Object: object}
	n.markReady("InterpreterObject")
	return n
}

func (n *InterpreterObject) Children() []Node { return nil }

// HasObject reports whether a runtime object was attached.
func (n *InterpreterObject) HasObject() bool { return n.Object != nil }
