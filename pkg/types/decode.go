package types

import "fmt"

// DecodeValue is the decode half of the field type system: given a field's
// spec and its located wire bytes, it returns the decoded Value.
func DecodeValue(spec FieldSpec, buf []byte, offset, width int) (Value, error) {
	switch spec.Kind {
	case KindInt32:
		return decodeInt32(buf, offset, width)
	case KindInt64:
		return decodeInt64(buf, offset, width)
	case KindUint32:
		return decodeUint32(buf, offset, width)
	case KindUint64:
		return decodeUint64(buf, offset, width)
	case KindFloat64:
		return decodeFloat64(buf, offset, width)
	case KindBool:
		return decodeBool(buf, offset, width)
	case KindString:
		return decodeString(spec, buf, offset, width)
	case KindBinary:
		return decodeBinary(buf, offset, width)
	case KindDecimal:
		return decodeDecimal(buf, offset, width, spec.Scale)
	case KindDate, KindTime, KindInterval:
		return decodeTemporal(spec.Kind, buf, offset, width)
	default:
		return nil, fmt.Errorf("types: cannot decode kind %s", spec.Kind)
	}
}
