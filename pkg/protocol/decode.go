package protocol

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DecodeError is returned for any malformed or truncated buffer. Decoding is
// strictly positional: a length that exceeds the remaining buffer is always an
// error, never a partial result.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("protocol: decode error at offset %d: %s", e.Offset, e.Reason)
}

type decoder struct {
	b   []byte
	off int
}

func (d *decoder) errf(format string, args ...any) error {
	return &DecodeError{Offset: d.off, Reason: fmt.Sprintf(format, args...)}
}

func (d *decoder) remaining() int { return len(d.b) - d.off }

func (d *decoder) take(n int) ([]byte, error) {
	if n < 0 || n > d.remaining() {
		return nil, d.errf("need %d bytes, %d remain", n, d.remaining())
	}
	p := d.b[d.off : d.off+n]
	d.off += n
	return p, nil
}

func (d *decoder) int8() (int8, error) {
	p, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return int8(p[0]), nil
}

func (d *decoder) int16() (int16, error) {
	p, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(p)), nil
}

func (d *decoder) int32() (int32, error) {
	p, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(p)), nil
}

func (d *decoder) int64() (int64, error) {
	p, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(p)), nil
}

func (d *decoder) uvarint() (uint32, error) {
	u, n := binary.Uvarint(d.b[d.off:])
	if n <= 0 {
		return 0, d.errf("bad uvarint")
	}
	if u > math.MaxUint32 {
		return 0, d.errf("uvarint %d overflows uint32", u)
	}
	d.off += n
	return uint32(u), nil
}

func (d *decoder) varint() (int64, error) {
	v, n := binary.Varint(d.b[d.off:])
	if n <= 0 {
		return 0, d.errf("bad varint")
	}
	d.off += n
	return v, nil
}

func (d *decoder) taggedFields() ([]TaggedField, error) {
	n, err := d.uvarint()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	fields := make([]TaggedField, 0, n)
	for i := uint32(0); i < n; i++ {
		tag, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		size, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		data, err := d.take(int(size))
		if err != nil {
			return nil, err
		}
		fields = append(fields, TaggedField{Tag: tag, Data: append([]byte(nil), data...)})
	}
	return fields, nil
}

func (d *decoder) value(n Node) (any, error) {
	switch n := n.(type) {
	case Prim:
		return d.prim(n.Kind)
	case *ArrayNode:
		return d.array(n)
	case *StructNode:
		return d.record(n)
	}
	return nil, d.errf("unknown schema node %T", n)
}

func (d *decoder) prim(k Kind) (any, error) {
	switch k {
	case KindInt8:
		return d.int8()
	case KindInt16:
		return d.int16()
	case KindInt32:
		return d.int32()
	case KindInt64:
		return d.int64()
	case KindFloat64:
		u, err := d.int64()
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(uint64(u)), nil
	case KindBool:
		p, err := d.take(1)
		if err != nil {
			return nil, err
		}
		return p[0] != 0, nil
	case KindString:
		size, err := d.int16()
		if err != nil {
			return nil, err
		}
		if size < 0 {
			return nil, d.errf("null for non-nullable string")
		}
		p, err := d.take(int(size))
		if err != nil {
			return nil, err
		}
		return string(p), nil
	case KindNullableString:
		size, err := d.int16()
		if err != nil {
			return nil, err
		}
		if size < 0 {
			return (*string)(nil), nil
		}
		p, err := d.take(int(size))
		if err != nil {
			return nil, err
		}
		s := string(p)
		return &s, nil
	case KindBytes:
		size, err := d.int32()
		if err != nil {
			return nil, err
		}
		if size < 0 {
			return []byte(nil), nil
		}
		p, err := d.take(int(size))
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), p...), nil
	case KindCompactString:
		size, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return (*string)(nil), nil
		}
		p, err := d.take(int(size - 1))
		if err != nil {
			return nil, err
		}
		s := string(p)
		return &s, nil
	case KindCompactBytes:
		size, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return []byte(nil), nil
		}
		p, err := d.take(int(size - 1))
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), p...), nil
	case KindVarint:
		return d.varint()
	case KindUvarint:
		return d.uvarint()
	case KindTaggedFields:
		return d.taggedFields()
	case KindBitField32:
		u, err := d.int32()
		if err != nil {
			return nil, err
		}
		var bits []int32
		for i := int32(0); i < 32; i++ {
			if uint32(u)&(1<<uint(i)) != 0 {
				bits = append(bits, i)
			}
		}
		return bits, nil
	}
	return nil, d.errf("unknown primitive kind %v", k)
}

func (d *decoder) array(n *ArrayNode) (any, error) {
	var count int
	if n.Compact {
		u, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		if u == 0 {
			return nil, nil
		}
		count = int(u - 1)
	} else {
		c, err := d.int32()
		if err != nil {
			return nil, err
		}
		if c < 0 {
			return nil, nil
		}
		count = int(c)
	}
	// Every element occupies at least one byte, so a count beyond the
	// remaining buffer is malformed input, not a short read.
	if count > d.remaining() {
		return nil, d.errf("array count %d exceeds %d remaining bytes", count, d.remaining())
	}
	elems := make([]any, 0, count)
	for i := 0; i < count; i++ {
		e, err := d.value(n.Elem)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return elems, nil
}

func (d *decoder) record(n *StructNode) (*Record, error) {
	vals := make([]any, 0, len(n.Fields))
	for _, f := range n.Fields {
		v, err := d.value(f.Type)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return &Record{schema: n, values: vals}, nil
}

// DecodeStruct decodes data against schema. Trailing bytes are an error
// unless flexible is set, in which case a trailing tagged-fields section is
// consumed and must exhaust the buffer.
func DecodeStruct(schema *StructNode, data []byte, flexible bool) (*Record, error) {
	d := &decoder{b: data}
	rec, err := d.record(schema)
	if err != nil {
		return nil, err
	}
	if d.remaining() > 0 && flexible {
		if _, err := d.taggedFields(); err != nil {
			return nil, err
		}
	}
	if d.remaining() > 0 {
		return nil, d.errf("%d trailing bytes after decode", d.remaining())
	}
	return rec, nil
}
