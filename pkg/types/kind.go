package types

// Kind tags the variant a Value holds, the scalar kind vocabulary a row
// field's stored bytes decode into.
type Kind int

const (
	KindInt32 Kind = iota
	KindInt64
	KindUint32
	KindUint64
	KindFloat64
	KindBool
	KindString
	KindBinary
	KindDecimal
	KindDate
	KindTime
	KindInterval
	// KindCursor is declared for completeness of the tagged-variant
	// vocabulary; no Value type in this package has this kind, so it has
	// no wire encoding, no decoder and no Hash.
	KindCursor
)

func (k Kind) String() string {
	switch k {
	case KindInt32:
		return "INT32"
	case KindInt64:
		return "INT64"
	case KindUint32:
		return "UINT32"
	case KindUint64:
		return "UINT64"
	case KindFloat64:
		return "FLOAT64"
	case KindBool:
		return "BOOL"
	case KindString:
		return "STRING"
	case KindBinary:
		return "BINARY"
	case KindDecimal:
		return "DECIMAL"
	case KindDate:
		return "DATE"
	case KindTime:
		return "TIME"
	case KindInterval:
		return "INTERVAL"
	case KindCursor:
		return "CURSOR"
	default:
		return "UNKNOWN"
	}
}

// IsFixedSize reports whether values of this kind always occupy the same
// number of bytes on the wire, independent of the value itself.
func (k Kind) IsFixedSize() bool {
	switch k {
	case KindString, KindBinary:
		return false
	default:
		return true
	}
}
