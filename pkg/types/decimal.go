package types

import (
	"fmt"

	"github.com/shopspring/decimal"
	"storemy/pkg/primitives"
	"storemy/pkg/qerrors"
)

// DecimalValue is an exact decimal number, stored on the wire as a scaled
// int64 (the FieldSpec's declared scale is fixed per field, matching a
// SQL DECIMAL(p,s) column).
type DecimalValue struct {
	V     decimal.Decimal
	Scale int32
}

func NewDecimalValue(v decimal.Decimal, scale int32) DecimalValue {
	return DecimalValue{V: v, Scale: scale}
}

func (v DecimalValue) Kind() Kind { return KindDecimal }

func (v DecimalValue) WidthFromValue(FieldSpec) (int, error) { return 8, nil }

func (v DecimalValue) EncodeInto(_ FieldSpec, buf []byte, offset int) (int, error) {
	scaled := v.V.Shift(v.Scale).Round(0)
	bi := scaled.BigInt()
	if !bi.IsInt64() {
		return 0, qerrors.EncodingError(fmt.Sprintf("decimal value %s overflows int64 at scale %d", v.V.String(), v.Scale), nil)
	}
	primitives.PutUint(buf, offset, 8, uint64(bi.Int64()))
	return 8, nil
}

func (v DecimalValue) Compare(op Predicate, other Value) (bool, error) {
	o, ok := other.(DecimalValue)
	if !ok {
		return false, fmt.Errorf("types: cannot compare DecimalValue with %T", other)
	}
	c := v.V.Cmp(o.V)
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

func (v DecimalValue) Hash(Collator) (primitives.HashCode, error) {
	return fnvHash([]byte(v.V.String())), nil
}

func (v DecimalValue) String() string { return v.V.String() }

func (v DecimalValue) Equals(other Value) bool {
	o, ok := other.(DecimalValue)
	return ok && v.V.Equal(o.V)
}

// decodeDecimal decodes a scaled int64 back into a decimal.Decimal given
// the field's declared scale.
func decodeDecimal(buf []byte, offset, width int, scale int32) (Value, error) {
	if width != 8 {
		return nil, fmt.Errorf("types: decimal field width must be 8, got %d", width)
	}
	unscaled := int64(primitives.GetUint(buf, offset, 8))
	d := decimal.New(unscaled, -scale)
	return DecimalValue{V: d, Scale: scale}, nil
}
