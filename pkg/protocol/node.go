// Package protocol implements the Kafka wire format for the admin APIs: the
// primitive codec, the schema tree each message version is described by, and
// the versioned request/response registry.
//
// Schemas are data, not code. Every (api key, version) pair maps to a
// Descriptor holding the request and response schema trees; encoding and
// decoding walk the exact tree for the negotiated version. Field order in a
// Struct is wire order.
package protocol

// Kind enumerates the primitive wire types.
type Kind int

const (
	KindInt8 Kind = iota
	KindInt16
	KindInt32
	KindInt64
	KindFloat64
	KindBool
	KindString
	KindNullableString
	KindBytes
	KindCompactString
	KindCompactBytes
	KindVarint
	KindUvarint
	KindTaggedFields
	KindBitField32
)

func (k Kind) String() string {
	switch k {
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindNullableString:
		return "nullable_string"
	case KindBytes:
		return "bytes"
	case KindCompactString:
		return "compact_string"
	case KindCompactBytes:
		return "compact_bytes"
	case KindVarint:
		return "varint"
	case KindUvarint:
		return "uvarint"
	case KindTaggedFields:
		return "tagged_fields"
	case KindBitField32:
		return "bitfield32"
	}
	return "unknown"
}

// Node is a node of a schema tree. The three variants are Prim, ArrayNode
// and StructNode.
type Node interface {
	isNode()
}

// Prim is a primitive leaf of a schema tree.
type Prim struct {
	Kind Kind
}

func (Prim) isNode() {}

// ArrayNode is a length-prefixed sequence of elements. Arrays are nullable:
// a count of -1 (or 0 in the compact encoding) decodes to nil.
type ArrayNode struct {
	Elem    Node
	Compact bool
}

func (*ArrayNode) isNode() {}

// StructNode is an ordered sequence of named fields. Wire order equals field
// order. When a tagged-fields section is present it is always the last field.
type StructNode struct {
	Fields []Field
}

func (*StructNode) isNode() {}

// Field is a named member of a StructNode.
type Field struct {
	Name string
	Type Node
}

// TaggedField is one entry of a sparse tagged-fields section.
type TaggedField struct {
	Tag  uint32
	Data []byte
}

// Primitive leaves used by the schema tables.
var (
	Int8           = Prim{KindInt8}
	Int16          = Prim{KindInt16}
	Int32          = Prim{KindInt32}
	Int64          = Prim{KindInt64}
	Float64        = Prim{KindFloat64}
	Bool           = Prim{KindBool}
	String         = Prim{KindString}
	NullableString = Prim{KindNullableString}
	Bytes          = Prim{KindBytes}
	CompactString  = Prim{KindCompactString}
	CompactBytes   = Prim{KindCompactBytes}
	Varint         = Prim{KindVarint}
	Uvarint        = Prim{KindUvarint}
	Tags           = Prim{KindTaggedFields}
	BitField32     = Prim{KindBitField32}
)

// Array returns a classic (Int32-count) array of elem.
func Array(elem Node) *ArrayNode {
	return &ArrayNode{Elem: elem}
}

// CompactArray returns a compact (uvarint count+1) array of elem.
func CompactArray(elem Node) *ArrayNode {
	return &ArrayNode{Elem: elem, Compact: true}
}

// Struct returns a struct schema with the given fields, in wire order.
func Struct(fields ...Field) *StructNode {
	return &StructNode{Fields: fields}
}

// F names a schema field.
func F(name string, typ Node) Field {
	return Field{Name: name, Type: typ}
}
