package types

import (
	"fmt"
	"strings"

	"storemy/pkg/primitives"
)

// StringValue is a variable-length character string, charset-decoded per
// its FieldSpec.
type StringValue struct{ V string }

func NewStringValue(v string) StringValue { return StringValue{V: v} }

func (v StringValue) Kind() Kind { return KindString }

func (v StringValue) WidthFromValue(spec FieldSpec) (int, error) {
	raw, err := spec.Charset.EncodeString(v.V)
	if err != nil {
		return 0, EncodingErr("string charset encode failed", err)
	}
	if spec.MaxSize > 0 && len(raw) > spec.MaxSize {
		return 0, EncodingErr(fmt.Sprintf("string value of %d bytes exceeds max size %d", len(raw), spec.MaxSize), nil)
	}
	return len(raw), nil
}

func (v StringValue) EncodeInto(spec FieldSpec, buf []byte, offset int) (int, error) {
	raw, err := spec.Charset.EncodeString(v.V)
	if err != nil {
		return 0, EncodingErr("string charset encode failed", err)
	}
	n := copy(buf[offset:], raw)
	return n, nil
}

func (v StringValue) Compare(op Predicate, other Value) (bool, error) {
	o, ok := other.(StringValue)
	if !ok {
		return false, fmt.Errorf("types: cannot compare StringValue with %T", other)
	}
	if op == Like {
		return strings.Contains(v.V, o.V), nil
	}
	c := strings.Compare(v.V, o.V)
	switch op {
	case Equals:
		return c == 0, nil
	case LessThan:
		return c < 0, nil
	case GreaterThan:
		return c > 0, nil
	case LessThanOrEqual:
		return c <= 0, nil
	case GreaterThanOrEqual:
		return c >= 0, nil
	case NotEqual:
		return c != 0, nil
	default:
		return false, nil
	}
}

func (v StringValue) Hash(c Collator) (primitives.HashCode, error) {
	if c != nil {
		// A collator only orders strings; hashing still uses the raw
		// bytes so equal-under-collation values may hash differently.
		// Collation-aware equality is out of scope (no collator ships).
		_ = c
	}
	return fnvHash([]byte(v.V)), nil
}

func (v StringValue) String() string { return v.V }

func (v StringValue) Equals(other Value) bool {
	o, ok := other.(StringValue)
	return ok && v.V == o.V
}

func decodeString(spec FieldSpec, buf []byte, offset, width int) (Value, error) {
	s, err := spec.Charset.DecodeString(buf[offset : offset+width])
	if err != nil {
		return nil, EncodingErr("string charset decode failed", err)
	}
	return StringValue{V: s}, nil
}

// BinaryValue is a variable-length uninterpreted byte string.
type BinaryValue struct{ V []byte }

func NewBinaryValue(v []byte) BinaryValue { return BinaryValue{V: v} }

func (v BinaryValue) Kind() Kind { return KindBinary }

func (v BinaryValue) WidthFromValue(spec FieldSpec) (int, error) {
	if spec.MaxSize > 0 && len(v.V) > spec.MaxSize {
		return 0, EncodingErr(fmt.Sprintf("binary value of %d bytes exceeds max size %d", len(v.V), spec.MaxSize), nil)
	}
	return len(v.V), nil
}

func (v BinaryValue) EncodeInto(_ FieldSpec, buf []byte, offset int) (int, error) {
	n := copy(buf[offset:], v.V)
	return n, nil
}

func (v BinaryValue) Compare(op Predicate, other Value) (bool, error) {
	o, ok := other.(BinaryValue)
	if !ok {
		return false, fmt.Errorf("types: cannot compare BinaryValue with %T", other)
	}
	c := compareBytes(v.V, o.V)
	switch op {
	case Equals:
		return c == 0, nil
	case LessThan:
		return c < 0, nil
	case GreaterThan:
		return c > 0, nil
	case LessThanOrEqual:
		return c <= 0, nil
	case GreaterThanOrEqual:
		return c >= 0, nil
	case NotEqual:
		return c != 0, nil
	default:
		return false, nil
	}
}

func compareBytes(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func (v BinaryValue) Hash(Collator) (primitives.HashCode, error) {
	return fnvHash(v.V), nil
}

func (v BinaryValue) String() string { return fmt.Sprintf("%x", v.V) }

func (v BinaryValue) Equals(other Value) bool {
	o, ok := other.(BinaryValue)
	return ok && compareBytes(v.V, o.V) == 0
}

func decodeBinary(buf []byte, offset, width int) (Value, error) {
	out := make([]byte, width)
	copy(out, buf[offset:offset+width])
	return BinaryValue{V: out}, nil
}
