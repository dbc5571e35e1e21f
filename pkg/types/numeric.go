package types

import (
	"fmt"
	"math"
	"strconv"

	"storemy/pkg/primitives"
)

// Int32Value is a 32-bit signed integer.
type Int32Value struct{ V int32 }

func NewInt32Value(v int32) Int32Value { return Int32Value{V: v} }

func (v Int32Value) Kind() Kind { return KindInt32 }

func (v Int32Value) WidthFromValue(FieldSpec) (int, error) { return 4, nil }

func (v Int32Value) EncodeInto(_ FieldSpec, buf []byte, offset int) (int, error) {
	primitives.PutUint(buf, offset, 4, uint64(uint32(v.V)))
	return 4, nil
}

func (v Int32Value) Compare(op Predicate, other Value) (bool, error) {
	o, ok := other.(Int32Value)
	if !ok {
		return false, fmt.Errorf("types: cannot compare Int32Value with %T", other)
	}
	return compareOrdered(v.V, o.V, op), nil
}

func (v Int32Value) Hash(Collator) (primitives.HashCode, error) {
	buf := make([]byte, 4)
	primitives.PutUint(buf, 0, 4, uint64(uint32(v.V)))
	return fnvHash(buf), nil
}

func (v Int32Value) String() string { return strconv.FormatInt(int64(v.V), 10) }

func (v Int32Value) Equals(other Value) bool {
	o, ok := other.(Int32Value)
	return ok && v.V == o.V
}

func decodeInt32(buf []byte, offset, width int) (Value, error) {
	if width != 4 {
		return nil, fmt.Errorf("types: int32 field width must be 4, got %d", width)
	}
	return Int32Value{V: int32(primitives.GetUint(buf, offset, 4))}, nil
}

// Int64Value is a 64-bit signed integer.
type Int64Value struct{ V int64 }

func NewInt64Value(v int64) Int64Value { return Int64Value{V: v} }

func (v Int64Value) Kind() Kind { return KindInt64 }

func (v Int64Value) WidthFromValue(FieldSpec) (int, error) { return 8, nil }

func (v Int64Value) EncodeInto(_ FieldSpec, buf []byte, offset int) (int, error) {
	primitives.PutUint(buf, offset, 8, uint64(v.V))
	return 8, nil
}

func (v Int64Value) Compare(op Predicate, other Value) (bool, error) {
	o, ok := other.(Int64Value)
	if !ok {
		return false, fmt.Errorf("types: cannot compare Int64Value with %T", other)
	}
	return compareOrdered(v.V, o.V, op), nil
}

func (v Int64Value) Hash(Collator) (primitives.HashCode, error) {
	buf := make([]byte, 8)
	primitives.PutUint(buf, 0, 8, uint64(v.V))
	return fnvHash(buf), nil
}

func (v Int64Value) String() string { return strconv.FormatInt(v.V, 10) }

func (v Int64Value) Equals(other Value) bool {
	o, ok := other.(Int64Value)
	return ok && v.V == o.V
}

func decodeInt64(buf []byte, offset, width int) (Value, error) {
	if width != 8 {
		return nil, fmt.Errorf("types: int64 field width must be 8, got %d", width)
	}
	return Int64Value{V: int64(primitives.GetUint(buf, offset, 8))}, nil
}

// Uint32Value is a 32-bit unsigned integer.
type Uint32Value struct{ V uint32 }

func NewUint32Value(v uint32) Uint32Value { return Uint32Value{V: v} }

func (v Uint32Value) Kind() Kind                            { return KindUint32 }
func (v Uint32Value) WidthFromValue(FieldSpec) (int, error) { return 4, nil }

func (v Uint32Value) EncodeInto(_ FieldSpec, buf []byte, offset int) (int, error) {
	primitives.PutUint(buf, offset, 4, uint64(v.V))
	return 4, nil
}

func (v Uint32Value) Compare(op Predicate, other Value) (bool, error) {
	o, ok := other.(Uint32Value)
	if !ok {
		return false, fmt.Errorf("types: cannot compare Uint32Value with %T", other)
	}
	return compareOrdered(v.V, o.V, op), nil
}

func (v Uint32Value) Hash(Collator) (primitives.HashCode, error) {
	buf := make([]byte, 4)
	primitives.PutUint(buf, 0, 4, uint64(v.V))
	return fnvHash(buf), nil
}

func (v Uint32Value) String() string { return strconv.FormatUint(uint64(v.V), 10) }

func (v Uint32Value) Equals(other Value) bool {
	o, ok := other.(Uint32Value)
	return ok && v.V == o.V
}

func decodeUint32(buf []byte, offset, width int) (Value, error) {
	if width != 4 {
		return nil, fmt.Errorf("types: uint32 field width must be 4, got %d", width)
	}
	return Uint32Value{V: uint32(primitives.GetUint(buf, offset, 4))}, nil
}

// Uint64Value is a 64-bit unsigned integer.
type Uint64Value struct{ V uint64 }

func NewUint64Value(v uint64) Uint64Value { return Uint64Value{V: v} }

func (v Uint64Value) Kind() Kind                            { return KindUint64 }
func (v Uint64Value) WidthFromValue(FieldSpec) (int, error) { return 8, nil }

func (v Uint64Value) EncodeInto(_ FieldSpec, buf []byte, offset int) (int, error) {
	primitives.PutUint(buf, offset, 8, v.V)
	return 8, nil
}

func (v Uint64Value) Compare(op Predicate, other Value) (bool, error) {
	o, ok := other.(Uint64Value)
	if !ok {
		return false, fmt.Errorf("types: cannot compare Uint64Value with %T", other)
	}
	return compareOrdered(v.V, o.V, op), nil
}

func (v Uint64Value) Hash(Collator) (primitives.HashCode, error) {
	buf := make([]byte, 8)
	primitives.PutUint(buf, 0, 8, v.V)
	return fnvHash(buf), nil
}

func (v Uint64Value) String() string { return strconv.FormatUint(v.V, 10) }

func (v Uint64Value) Equals(other Value) bool {
	o, ok := other.(Uint64Value)
	return ok && v.V == o.V
}

func decodeUint64(buf []byte, offset, width int) (Value, error) {
	if width != 8 {
		return nil, fmt.Errorf("types: uint64 field width must be 8, got %d", width)
	}
	return Uint64Value{V: primitives.GetUint(buf, offset, 8)}, nil
}

// Float64Value is a 64-bit IEEE-754 float.
type Float64Value struct{ V float64 }

func NewFloat64Value(v float64) Float64Value { return Float64Value{V: v} }

func (v Float64Value) Kind() Kind                            { return KindFloat64 }
func (v Float64Value) WidthFromValue(FieldSpec) (int, error) { return 8, nil }

func (v Float64Value) EncodeInto(_ FieldSpec, buf []byte, offset int) (int, error) {
	primitives.PutUint(buf, offset, 8, math.Float64bits(v.V))
	return 8, nil
}

func (v Float64Value) Compare(op Predicate, other Value) (bool, error) {
	o, ok := other.(Float64Value)
	if !ok {
		return false, fmt.Errorf("types: cannot compare Float64Value with %T", other)
	}
	return compareOrdered(v.V, o.V, op), nil
}

func (v Float64Value) Hash(Collator) (primitives.HashCode, error) {
	buf := make([]byte, 8)
	primitives.PutUint(buf, 0, 8, math.Float64bits(v.V))
	return fnvHash(buf), nil
}

func (v Float64Value) String() string { return strconv.FormatFloat(v.V, 'g', -1, 64) }

func (v Float64Value) Equals(other Value) bool {
	o, ok := other.(Float64Value)
	return ok && v.V == o.V
}

func decodeFloat64(buf []byte, offset, width int) (Value, error) {
	if width != 8 {
		return nil, fmt.Errorf("types: float64 field width must be 8, got %d", width)
	}
	return Float64Value{V: math.Float64frombits(primitives.GetUint(buf, offset, 8))}, nil
}

// BoolValue is a single-byte boolean.
type BoolValue struct{ V bool }

func NewBoolValue(v bool) BoolValue { return BoolValue{V: v} }

func (v BoolValue) Kind() Kind                            { return KindBool }
func (v BoolValue) WidthFromValue(FieldSpec) (int, error) { return 1, nil }

func (v BoolValue) EncodeInto(_ FieldSpec, buf []byte, offset int) (int, error) {
	b := uint64(0)
	if v.V {
		b = 1
	}
	primitives.PutUint(buf, offset, 1, b)
	return 1, nil
}

func (v BoolValue) Compare(op Predicate, other Value) (bool, error) {
	o, ok := other.(BoolValue)
	if !ok {
		return false, fmt.Errorf("types: cannot compare BoolValue with %T", other)
	}
	a, b := 0, 0
	if v.V {
		a = 1
	}
	if o.V {
		b = 1
	}
	return compareOrdered(a, b, op), nil
}

func (v BoolValue) Hash(Collator) (primitives.HashCode, error) {
	if v.V {
		return fnvHash([]byte{1}), nil
	}
	return fnvHash([]byte{0}), nil
}

func (v BoolValue) String() string { return strconv.FormatBool(v.V) }

func (v BoolValue) Equals(other Value) bool {
	o, ok := other.(BoolValue)
	return ok && v.V == o.V
}

func decodeBool(buf []byte, offset, width int) (Value, error) {
	if width != 1 {
		return nil, fmt.Errorf("types: bool field width must be 1, got %d", width)
	}
	return BoolValue{V: primitives.GetUint(buf, offset, 1) != 0}, nil
}
