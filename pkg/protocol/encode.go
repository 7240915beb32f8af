package protocol

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// appendValue encodes v per the schema node n and appends the wire bytes to b.
// Values are strictly typed: a mismatch between the schema and the supplied Go
// value is an error, never a silent coercion.
func appendValue(b []byte, n Node, v any) ([]byte, error) {
	switch n := n.(type) {
	case Prim:
		return appendPrim(b, n.Kind, v)
	case *ArrayNode:
		return appendArray(b, n, v)
	case *StructNode:
		return appendStruct(b, n, v)
	}
	return nil, errors.Errorf("protocol: unknown schema node %T", n)
}

func appendPrim(b []byte, k Kind, v any) ([]byte, error) {
	switch k {
	case KindInt8:
		i, ok := v.(int8)
		if !ok {
			return nil, typeErr(k, v)
		}
		return append(b, byte(i)), nil
	case KindInt16:
		i, ok := v.(int16)
		if !ok {
			return nil, typeErr(k, v)
		}
		return binary.BigEndian.AppendUint16(b, uint16(i)), nil
	case KindInt32:
		i, ok := v.(int32)
		if !ok {
			return nil, typeErr(k, v)
		}
		return binary.BigEndian.AppendUint32(b, uint32(i)), nil
	case KindInt64:
		i, ok := v.(int64)
		if !ok {
			return nil, typeErr(k, v)
		}
		return binary.BigEndian.AppendUint64(b, uint64(i)), nil
	case KindFloat64:
		f, ok := v.(float64)
		if !ok {
			return nil, typeErr(k, v)
		}
		return binary.BigEndian.AppendUint64(b, math.Float64bits(f)), nil
	case KindBool:
		t, ok := v.(bool)
		if !ok {
			return nil, typeErr(k, v)
		}
		if t {
			return append(b, 1), nil
		}
		return append(b, 0), nil
	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, typeErr(k, v)
		}
		if len(s) > math.MaxInt16 {
			return nil, errors.Errorf("protocol: string of length %d exceeds the int16 length prefix", len(s))
		}
		b = binary.BigEndian.AppendUint16(b, uint16(len(s)))
		return append(b, s...), nil
	case KindNullableString:
		s, ok := v.(*string)
		if !ok {
			return nil, typeErr(k, v)
		}
		if s == nil {
			return binary.BigEndian.AppendUint16(b, uint16(0xFFFF)), nil
		}
		if len(*s) > math.MaxInt16 {
			return nil, errors.Errorf("protocol: string of length %d exceeds the int16 length prefix", len(*s))
		}
		b = binary.BigEndian.AppendUint16(b, uint16(len(*s)))
		return append(b, *s...), nil
	case KindBytes:
		p, ok := v.([]byte)
		if !ok && v != nil {
			return nil, typeErr(k, v)
		}
		if p == nil {
			return binary.BigEndian.AppendUint32(b, 0xFFFFFFFF), nil
		}
		b = binary.BigEndian.AppendUint32(b, uint32(len(p)))
		return append(b, p...), nil
	case KindCompactString:
		// Compact strings are nullable on the wire, so *string is the
		// canonical value; plain string is accepted the same way String is.
		switch s := v.(type) {
		case string:
			b = appendUvarint(b, uint32(len(s)+1))
			return append(b, s...), nil
		case *string:
			if s == nil {
				return appendUvarint(b, 0), nil
			}
			b = appendUvarint(b, uint32(len(*s)+1))
			return append(b, *s...), nil
		}
		return nil, typeErr(k, v)
	case KindCompactBytes:
		p, ok := v.([]byte)
		if !ok && v != nil {
			return nil, typeErr(k, v)
		}
		if p == nil {
			return appendUvarint(b, 0), nil
		}
		b = appendUvarint(b, uint32(len(p)+1))
		return append(b, p...), nil
	case KindVarint:
		i, ok := v.(int64)
		if !ok {
			return nil, typeErr(k, v)
		}
		return binary.AppendVarint(b, i), nil
	case KindUvarint:
		u, ok := v.(uint32)
		if !ok {
			return nil, typeErr(k, v)
		}
		return appendUvarint(b, u), nil
	case KindTaggedFields:
		tf, ok := v.([]TaggedField)
		if !ok && v != nil {
			return nil, typeErr(k, v)
		}
		b = appendUvarint(b, uint32(len(tf)))
		for _, f := range tf {
			b = appendUvarint(b, f.Tag)
			b = appendUvarint(b, uint32(len(f.Data)))
			b = append(b, f.Data...)
		}
		return b, nil
	case KindBitField32:
		bits, ok := v.([]int32)
		if !ok && v != nil {
			return nil, typeErr(k, v)
		}
		var u uint32
		for _, bit := range bits {
			if bit < 0 || bit > 31 {
				return nil, errors.Errorf("protocol: bitfield32 bit %d out of range", bit)
			}
			u |= 1 << uint(bit)
		}
		return binary.BigEndian.AppendUint32(b, u), nil
	}
	return nil, errors.Errorf("protocol: unknown primitive kind %v", k)
}

func appendArray(b []byte, n *ArrayNode, v any) ([]byte, error) {
	elems, ok := v.([]any)
	if v != nil && !ok {
		return nil, errors.Errorf("protocol: cannot encode %T as array", v)
	}
	// A nil slice is a null array; an empty non-nil slice is an empty one.
	if elems == nil {
		if n.Compact {
			return appendUvarint(b, 0), nil
		}
		return binary.BigEndian.AppendUint32(b, 0xFFFFFFFF), nil
	}
	if n.Compact {
		b = appendUvarint(b, uint32(len(elems)+1))
	} else {
		b = binary.BigEndian.AppendUint32(b, uint32(len(elems)))
	}
	var err error
	for _, e := range elems {
		if b, err = appendValue(b, n.Elem, e); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func appendStruct(b []byte, n *StructNode, v any) ([]byte, error) {
	var vals []any
	switch v := v.(type) {
	case []any:
		vals = v
	case *Record:
		vals = v.values
	default:
		return nil, errors.Errorf("protocol: cannot encode %T as struct", v)
	}
	if len(vals) != len(n.Fields) {
		return nil, errors.Errorf("protocol: struct wants %d fields, got %d values", len(n.Fields), len(vals))
	}
	var err error
	for i, f := range n.Fields {
		if b, err = appendValue(b, f.Type, vals[i]); err != nil {
			return nil, errors.Wrapf(err, "field %q", f.Name)
		}
	}
	return b, nil
}

func appendUvarint(b []byte, u uint32) []byte {
	return binary.AppendUvarint(b, uint64(u))
}

func typeErr(k Kind, v any) error {
	return errors.Errorf("protocol: cannot encode %T as %s", v, k)
}
