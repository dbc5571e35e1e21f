package types

import (
	"fmt"
	"strconv"

	"storemy/pkg/primitives"
)

// temporalValue is the shared representation for KindDate, KindTime, and
// KindInterval: a raw int64 scale value (Unix days, Unix nanos-of-day, and
// signed nanos respectively). Human-readable date/time formatting is out of
// scope; callers needing that convert via Int64() themselves.
type temporalValue struct {
	kind Kind
	v    int64
}

func NewDateValue(unixDays int64) Value     { return temporalValue{kind: KindDate, v: unixDays} }
func NewTimeValue(nanosOfDay int64) Value   { return temporalValue{kind: KindTime, v: nanosOfDay} }
func NewIntervalValue(nanos int64) Value    { return temporalValue{kind: KindInterval, v: nanos} }

func (v temporalValue) Kind() Kind { return v.kind }

func (v temporalValue) Int64() int64 { return v.v }

func (v temporalValue) WidthFromValue(FieldSpec) (int, error) { return 8, nil }

func (v temporalValue) EncodeInto(_ FieldSpec, buf []byte, offset int) (int, error) {
	primitives.PutUint(buf, offset, 8, uint64(v.v))
	return 8, nil
}

func (v temporalValue) Compare(op Predicate, other Value) (bool, error) {
	o, ok := other.(temporalValue)
	if !ok || o.kind != v.kind {
		return false, fmt.Errorf("types: cannot compare %s with %T", v.kind, other)
	}
	return compareOrdered(v.v, o.v, op), nil
}

func (v temporalValue) Hash(Collator) (primitives.HashCode, error) {
	buf := make([]byte, 8)
	primitives.PutUint(buf, 0, 8, uint64(v.v))
	return fnvHash(buf), nil
}

func (v temporalValue) String() string { return strconv.FormatInt(v.v, 10) }

func (v temporalValue) Equals(other Value) bool {
	o, ok := other.(temporalValue)
	return ok && o.kind == v.kind && o.v == v.v
}

func decodeTemporal(kind Kind, buf []byte, offset, width int) (Value, error) {
	if width != 8 {
		return nil, fmt.Errorf("types: %s field width must be 8, got %d", kind, width)
	}
	return temporalValue{kind: kind, v: int64(primitives.GetUint(buf, offset, 8))}, nil
}
