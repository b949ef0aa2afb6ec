package nodes

import (
	"strings"

	"github.com/sibyl-lang/sibyl/internal/diag"
)

// Name represents a load-context identifier.
type Name struct {
	base
	Name string
}

// NewName constructs a name node.
func NewName(name string, span Span, parent Node) *Name {
	n := &Name{base: makeBase(span, parent), Name: name}
	n.markReady("Name")
	return n
}

func (n *Name) Children() []Node { return nil }

// AssignName represents an identifier appearing as a write target.
type AssignName struct {
	base
	Name string
}

// NewAssignName constructs an assignment-target name node.
func NewAssignName(name string, span Span, parent Node) *AssignName {
	n := &AssignName{base: makeBase(span, parent), Name: name}
	n.markReady("AssignName")
	return n
}

func (n *AssignName) Children() []Node { return nil }
func (*AssignName) assignTarget()      {}

// DelName represents an identifier being unbound.
type DelName struct {
	base
	Name string
}

// NewDelName constructs a delete-target name node.
func NewDelName(name string, span Span, parent Node) *DelName {
	n := &DelName{base: makeBase(span, parent), Name: name}
	n.markReady("DelName")
	return n
}

func (n *DelName) Children() []Node { return nil }

// Parameter represents one formal parameter, with optional default and
// annotation children.
type Parameter struct {
	base
	Name       string
	Default    Node
	Annotation Node
}

// NewParameter constructs a parameter node; Default and Annotation are
// installed by PostInit.
func NewParameter(name string, span Span, parent Node) *Parameter {
	return &Parameter{base: makeBase(span, parent), Name: name}
}

// PostInit installs the parameter's child nodes. Either may be nil.
func (p *Parameter) PostInit(def, annotation Node) {
	p.Default = def
	p.Annotation = annotation
	p.markReady("Parameter")
}

func (p *Parameter) Children() []Node {
	p.mustReady("Parameter")
	return kids(p.Default, p.Annotation)
}

func (*Parameter) assignTarget() {}

// Attribute represents a load-context attribute access.
type Attribute struct {
	base
	Attr string
	Expr Node
}

// NewAttribute constructs an attribute-access node.
func NewAttribute(attr string, span Span, parent Node) *Attribute {
	return &Attribute{base: makeBase(span, parent), Attr: attr}
}

// PostInit installs the receiver expression.
func (a *Attribute) PostInit(expr Node) {
	a.Expr = expr
	a.markReady("Attribute")
}

func (a *Attribute) Children() []Node {
	a.mustReady("Attribute")
	return kids(a.Expr)
}

// AssignAttr represents an attribute appearing as a write target.
type AssignAttr struct {
	base
	Attr string
	Expr Node
}

// NewAssignAttr constructs an attribute assignment-target node.
func NewAssignAttr(attr string, span Span, parent Node) *AssignAttr {
	return &AssignAttr{base: makeBase(span, parent), Attr: attr}
}

// PostInit installs the receiver expression.
func (a *AssignAttr) PostInit(expr Node) {
	a.Expr = expr
	a.markReady("AssignAttr")
}

func (a *AssignAttr) Children() []Node {
	a.mustReady("AssignAttr")
	return kids(a.Expr)
}

func (*AssignAttr) assignTarget() {}

// DelAttr represents an attribute being unbound.
type DelAttr struct {
	base
	Attr string
	Expr Node
}

// NewDelAttr constructs an attribute delete-target node.
func NewDelAttr(attr string, span Span, parent Node) *DelAttr {
	return &DelAttr{base: makeBase(span, parent), Attr: attr}
}

// PostInit installs the receiver expression.
func (a *DelAttr) PostInit(expr Node) {
	a.Expr = expr
	a.markReady("DelAttr")
}

func (a *DelAttr) Children() []Node {
	a.mustReady("DelAttr")
	return kids(a.Expr)
}

// Arguments represents a callable's formal parameter list.
type Arguments struct {
	base
	Args           []Node
	Vararg         Node
	Kwarg          Node
	KeywordOnly    []Node
	PositionalOnly []Node
}

// NewArguments constructs a parameter-list node.
func NewArguments(span Span, parent Node) *Arguments {
	return &Arguments{base: makeBase(span, parent)}
}

// PostInit installs the parameter groups. Vararg and Kwarg may be nil.
func (a *Arguments) PostInit(args []Node, vararg, kwarg Node, keywordOnly, positionalOnly []Node) {
	a.Args = args
	a.Vararg = vararg
	a.Kwarg = kwarg
	a.KeywordOnly = keywordOnly
	a.PositionalOnly = positionalOnly
	a.markReady("Arguments")
}

func (a *Arguments) Children() []Node {
	a.mustReady("Arguments")
	out := make([]Node, 0, len(a.Args)+len(a.KeywordOnly)+len(a.PositionalOnly)+2)
	out = append(out, a.Args...)
	if a.Vararg != nil {
		out = append(out, a.Vararg)
	}
	if a.Kwarg != nil {
		out = append(out, a.Kwarg)
	}
	out = append(out, a.KeywordOnly...)
	out = append(out, a.PositionalOnly...)
	return out
}

// PositionalAndKeyword returns the parameters bindable by position or name.
func (a *Arguments) PositionalAndKeyword() []Node {
	out := make([]Node, 0, len(a.Args)+len(a.PositionalOnly))
	out = append(out, a.Args...)
	out = append(out, a.PositionalOnly...)
	return out
}

// DefaultValue returns the declared default for the named argument, or a
// NO_DEFAULT condition when none is declared.
func (a *Arguments) DefaultValue(name string) (Node, error) {
	for _, group := range [][]Node{a.PositionalAndKeyword(), a.KeywordOnly} {
		_, p := findArg(name, group, false)
		if p == nil || p.Default == nil {
			continue
		}
		return p.Default, nil
	}
	return nil, diag.Errorf(diag.CodeNoDefault, toDiagSpan(a.Span()),
		"no default value for argument %q", name)
}

// FindArg returns the index and parameter node with the given name among
// the positional-and-keyword parameters, recursing into nested patterns
// when rec is set. The index is -1 when the name is absent.
func (a *Arguments) FindArg(name string, rec bool) (int, *Parameter) {
	return findArg(name, a.PositionalAndKeyword(), rec)
}

// IsArgument reports whether the name is bound by this parameter list.
func (a *Arguments) IsArgument(name string) bool {
	if p, ok := a.Vararg.(*Parameter); ok && p.Name == name {
		return true
	}
	if p, ok := a.Kwarg.(*Parameter); ok && p.Name == name {
		return true
	}
	_, p := findArg(name, a.PositionalAndKeyword(), true)
	return p != nil
}

// Format renders the parameter list the way it would appear in a signature.
func (a *Arguments) Format() string {
	var parts []string
	if pak := a.PositionalAndKeyword(); len(pak) > 0 {
		parts = append(parts, formatArgs(pak))
	}
	if p, ok := a.Vararg.(*Parameter); ok {
		parts = append(parts, "*"+p.Name)
	}
	if len(a.KeywordOnly) > 0 {
		if a.Vararg == nil {
			parts = append(parts, "*")
		}
		parts = append(parts, formatArgs(a.KeywordOnly))
	}
	if p, ok := a.Kwarg.(*Parameter); ok {
		parts = append(parts, "**"+p.Name)
	}
	return strings.Join(parts, ", ")
}

func findArg(name string, args []Node, rec bool) (int, *Parameter) {
	for i, arg := range args {
		switch a := arg.(type) {
		case *Tuple:
			if !rec {
				continue
			}
			if _, p := findArg(name, a.Elts, rec); p != nil {
				return i, p
			}
		case *Parameter:
			if a.Name == name {
				return i, a
			}
		}
	}
	return -1, nil
}

func formatArgs(args []Node) string {
	var values []string
	for _, arg := range args {
		switch a := arg.(type) {
		case *Tuple:
			values = append(values, "("+formatArgs(a.Elts)+")")
		case *Parameter:
			text := a.Name
			if name, ok := a.Annotation.(*Name); ok {
				text += ":" + name.Name
			}
			if c, ok := a.Default.(*Const); ok {
				text += "=" + c.ValueString()
			}
			values = append(values, text)
		}
	}
	return strings.Join(values, ", ")
}
