package types

import (
	"cmp"
	"hash/fnv"
	"storemy/pkg/primitives"
)

// compareOrdered applies op to two ordered scalars, the shared comparison
// core every fixed-width numeric kind reduces its Compare to.
func compareOrdered[T cmp.Ordered](a, b T, op Predicate) bool {
	switch op {
	case Equals:
		return a == b
	case LessThan:
		return a < b
	case GreaterThan:
		return a > b
	case LessThanOrEqual:
		return a <= b
	case GreaterThanOrEqual:
		return a >= b
	case NotEqual:
		return a != b
	default:
		return false
	}
}

// fnvHash computes an FNV-1a hash of the given bytes.
func fnvHash(data []byte) primitives.HashCode {
	h := fnv.New32a()
	_, _ = h.Write(data)
	return primitives.HashCode(h.Sum32())
}
