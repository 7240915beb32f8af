package protocol

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Request is one outbound RPC: a descriptor plus the positional body values
// matching the descriptor's request schema.
type Request struct {
	Descriptor    *Descriptor
	CorrelationID int32
	ClientID      *string
	Body          []any
}

// NewRequest builds a request for (key, version), returning an error when the
// version is not registered.
func NewRequest(key ApiKey, version int16, body ...any) (*Request, error) {
	d, err := Lookup(key, version)
	if err != nil {
		return nil, err
	}
	return &Request{Descriptor: d, Body: body}, nil
}

// Key returns the api key of the request.
func (r *Request) Key() ApiKey { return r.Descriptor.Key }

// Version returns the api version of the request.
func (r *Request) Version() int16 { return r.Descriptor.Version }

// AppendTo encodes header and body and appends the wire bytes to b. The
// header is v1 (api key, api version, correlation id, client id); flexible
// versions append an empty tagged-fields section (header v2).
func (r *Request) AppendTo(b []byte) ([]byte, error) {
	b = binary.BigEndian.AppendUint16(b, uint16(r.Descriptor.Key))
	b = binary.BigEndian.AppendUint16(b, uint16(r.Descriptor.Version))
	b = binary.BigEndian.AppendUint32(b, uint32(r.CorrelationID))
	var err error
	if b, err = appendPrim(b, KindNullableString, r.ClientID); err != nil {
		return nil, err
	}
	if r.Descriptor.Flexible {
		b = appendUvarint(b, 0)
	}
	if b, err = appendStruct(b, r.Descriptor.Request, r.Body); err != nil {
		return nil, errors.Wrapf(err, "encoding %s v%d", r.Descriptor.Key, r.Descriptor.Version)
	}
	return b, nil
}

// MarshalFrame encodes the request with its 4-byte size prefix.
func (r *Request) MarshalFrame() ([]byte, error) {
	payload, err := r.AppendTo(nil)
	if err != nil {
		return nil, err
	}
	frame := binary.BigEndian.AppendUint32(make([]byte, 0, 4+len(payload)), uint32(len(payload)))
	return append(frame, payload...), nil
}

// ParseResponse decodes an unframed response payload for the request: the
// correlation id header (plus tagged fields when flexible), then the body
// against the response schema.
func (r *Request) ParseResponse(payload []byte) (*Record, error) {
	d := &decoder{b: payload}
	correlationID, err := d.int32()
	if err != nil {
		return nil, err
	}
	if correlationID != r.CorrelationID {
		return nil, errors.Errorf("protocol: correlation id mismatch: sent %d, received %d", r.CorrelationID, correlationID)
	}
	if r.Descriptor.Flexible {
		if _, err := d.taggedFields(); err != nil {
			return nil, err
		}
	}
	rec, err := DecodeStruct(r.Descriptor.Response, payload[d.off:], r.Descriptor.Flexible)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s v%d response", r.Descriptor.Key, r.Descriptor.Version)
	}
	return rec, nil
}
