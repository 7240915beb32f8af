package protocol

import (
	"fmt"
	"strings"
)

// Record is a decoded struct: the schema it was decoded against plus the
// field values in wire order. Accessors return the zero value when a field is
// absent from the schema version at hand; Has distinguishes "absent" from
// "zero" for version-dependent fields.
type Record struct {
	schema *StructNode
	values []any
}

// NewRecord builds a Record from positional values. Intended for tests and
// for fakes that script broker responses.
func NewRecord(schema *StructNode, values ...any) *Record {
	return &Record{schema: schema, values: values}
}

// Schema returns the schema the record was decoded against.
func (r *Record) Schema() *StructNode { return r.schema }

// Values returns the field values in wire order.
func (r *Record) Values() []any { return r.values }

// Has reports whether the schema version carries the named field.
func (r *Record) Has(name string) bool {
	_, ok := r.index(name)
	return ok
}

// Get returns the named field value, or nil if the schema lacks it.
func (r *Record) Get(name string) any {
	i, ok := r.index(name)
	if !ok {
		return nil
	}
	return r.values[i]
}

func (r *Record) index(name string) (int, bool) {
	for i, f := range r.schema.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

func (r *Record) Int8(name string) int8 {
	v, _ := r.Get(name).(int8)
	return v
}

func (r *Record) Int16(name string) int16 {
	v, _ := r.Get(name).(int16)
	return v
}

func (r *Record) Int32(name string) int32 {
	v, _ := r.Get(name).(int32)
	return v
}

func (r *Record) Int64(name string) int64 {
	v, _ := r.Get(name).(int64)
	return v
}

func (r *Record) Float64(name string) float64 {
	v, _ := r.Get(name).(float64)
	return v
}

func (r *Record) Bool(name string) bool {
	v, _ := r.Get(name).(bool)
	return v
}

// Str returns the named string field. Nullable strings dereference to ""
// when null.
func (r *Record) Str(name string) string {
	switch v := r.Get(name).(type) {
	case string:
		return v
	case *string:
		if v != nil {
			return *v
		}
	}
	return ""
}

// StrPtr returns the named nullable string as decoded.
func (r *Record) StrPtr(name string) *string {
	switch v := r.Get(name).(type) {
	case *string:
		return v
	case string:
		return &v
	}
	return nil
}

func (r *Record) Bytes(name string) []byte {
	v, _ := r.Get(name).([]byte)
	return v
}

// Array returns the named array field; nil for a null array.
func (r *Record) Array(name string) []any {
	v, _ := r.Get(name).([]any)
	return v
}

// Bits returns the set bit indexes of the named bitfield, ascending.
func (r *Record) Bits(name string) []int32 {
	v, _ := r.Get(name).([]int32)
	return v
}

// String renders the record as name=value pairs. Used when embedding a
// response in an error message.
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, f := range r.schema.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", f.Name, renderValue(r.values[i]))
	}
	sb.WriteByte('}')
	return sb.String()
}

func renderValue(v any) any {
	switch v := v.(type) {
	case *string:
		if v == nil {
			return "<nil>"
		}
		return *v
	case *Record:
		return v.String()
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = fmt.Sprintf("%v", renderValue(e))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return v
	}
}
