package models

import (
	"bytes"

	"github.com/go-json-experiment/json/jsontext"
)

// Kind identifies which case of the Node union is populated.
type Kind int

const (
	Object Kind = iota
	Array
	Scalar
)

func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Array:
		return "array"
	case Scalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// ScalarType distinguishes the JSON literal a Scalar node came from.
type ScalarType int

const (
	String ScalarType = iota
	Number
	Bool
	Null
)

// Member is one key/value pair of an Object node. Members keep the order
// they had in the source text.
type Member struct {
	Key   string
	Value *Node
}

// Node is a parsed JSON value: an Object, an Array, or a Scalar.
//
// Only the fields belonging to Kind are meaningful. For scalars Raw holds the
// textual form: the unescaped string, the number literal as written, "true"
// or "false", and "" for null.
type Node struct {
	Kind       Kind
	Members    []Member
	Items      []*Node
	ScalarType ScalarType
	Raw        string
}

// NewObject builds an Object node from members in order.
func NewObject(members ...Member) *Node {
	return &Node{Kind: Object, Members: members}
}

// NewArray builds an Array node.
func NewArray(items ...*Node) *Node {
	return &Node{Kind: Array, Items: items}
}

// NewString builds a string Scalar.
func NewString(s string) *Node {
	return &Node{Kind: Scalar, ScalarType: String, Raw: s}
}

// NewNumber builds a number Scalar from its literal text.
func NewNumber(literal string) *Node {
	return &Node{Kind: Scalar, ScalarType: Number, Raw: literal}
}

// NewBool builds a boolean Scalar.
func NewBool(b bool) *Node {
	if b {
		return &Node{Kind: Scalar, ScalarType: Bool, Raw: "true"}
	}
	return &Node{Kind: Scalar, ScalarType: Bool, Raw: "false"}
}

// NewNull builds a null Scalar.
func NewNull() *Node {
	return &Node{Kind: Scalar, ScalarType: Null}
}

// M is shorthand for a Member literal.
func M(key string, value *Node) Member {
	return Member{Key: key, Value: value}
}

// IsObject reports whether n is a non-nil Object node.
func (n *Node) IsObject() bool {
	return n != nil && n.Kind == Object
}

// IsArray reports whether n is a non-nil Array node.
func (n *Node) IsArray() bool {
	return n != nil && n.Kind == Array
}

// IsScalar reports whether n is a non-nil Scalar node.
func (n *Node) IsScalar() bool {
	return n != nil && n.Kind == Scalar
}

// IsNull reports whether n is absent or a JSON null.
func (n *Node) IsNull() bool {
	return n == nil || (n.Kind == Scalar && n.ScalarType == Null)
}

// Get returns the value of the first member named key. It returns false for
// non-object nodes.
func (n *Node) Get(key string) (*Node, bool) {
	if !n.IsObject() {
		return nil, false
	}
	for _, m := range n.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Text returns the textual form of a node. Null and absent nodes yield "".
// Objects and arrays yield their compact JSON encoding.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	if n.Kind == Scalar {
		return n.Raw
	}
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf)
	if err := n.encode(enc); err != nil {
		return ""
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

func (n *Node) encode(enc *jsontext.Encoder) error {
	if n == nil {
		return enc.WriteToken(jsontext.Null)
	}
	switch n.Kind {
	case Object:
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		for _, m := range n.Members {
			if err := enc.WriteToken(jsontext.String(m.Key)); err != nil {
				return err
			}
			if err := m.Value.encode(enc); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndObject)
	case Array:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, item := range n.Items {
			if err := item.encode(enc); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	default:
		switch n.ScalarType {
		case Number:
			return enc.WriteValue(jsontext.Value(n.Raw))
		case Bool:
			return enc.WriteToken(jsontext.Bool(n.Raw == "true"))
		case Null:
			return enc.WriteToken(jsontext.Null)
		default:
			return enc.WriteToken(jsontext.String(n.Raw))
		}
	}
}

// Document is a parsed page description ready for rendering.
type Document struct {
	Root *Node
	// RootIsObject is false when the input was valid JSON of another shape;
	// such documents render as if the root were an empty object.
	RootIsObject bool
}

// Issue is a non-fatal observation about a document, reported by the schema
// checker and the analyzer. Path uses dotted keys with [i] for array items.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}
