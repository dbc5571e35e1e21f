// Package rowtype defines hierarchical keys and row type identities
// (component C5): the ordinal/value segment chain that orders rows within
// a group, and the RowType family operators and adapters exchange.
package rowtype

import "storemy/pkg/types"

// HKeySegment is one segment of a hierarchical key: either the ordinal
// position of a child table under its parent in the group, or a primary
// key column value.
type HKeySegment struct {
	IsOrdinal     bool
	OrdinalSegment int32
	ValueSegment  types.Value
}

// Ordinal constructs an ordinal HKeySegment.
func Ordinal(n int32) HKeySegment { return HKeySegment{IsOrdinal: true, OrdinalSegment: n} }

// SegmentValue constructs a value HKeySegment.
func SegmentValue(v types.Value) HKeySegment { return HKeySegment{ValueSegment: v} }

func (s HKeySegment) compare(other HKeySegment) int {
	if s.IsOrdinal != other.IsOrdinal {
		// Ordinal segments sort before value segments at the same
		// depth; this only happens comparing hkeys of different
		// table shapes, which the operator framework never does in
		// practice, but the ordering must still be total.
		if s.IsOrdinal {
			return -1
		}
		return 1
	}
	if s.IsOrdinal {
		switch {
		case s.OrdinalSegment < other.OrdinalSegment:
			return -1
		case s.OrdinalSegment > other.OrdinalSegment:
			return 1
		default:
			return 0
		}
	}
	lt, _ := s.ValueSegment.Compare(types.LessThan, other.ValueSegment)
	if lt {
		return -1
	}
	gt, _ := s.ValueSegment.Compare(types.GreaterThan, other.ValueSegment)
	if gt {
		return 1
	}
	return 0
}

// HKey is a hierarchical key: an ordered chain of segments locating a row
// within its group's tree.
type HKey []HKeySegment

// Compare returns -1, 0, or 1 comparing hk to other lexicographically,
// segment by segment, with a shorter prefix sorting before a longer key
// that extends it.
func (hk HKey) Compare(other HKey) int {
	n := len(hk)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if c := hk[i].compare(other[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(hk) < len(other):
		return -1
	case len(hk) > len(other):
		return 1
	default:
		return 0
	}
}

// IsPrefixOf reports whether hk is a prefix of other; memadapter uses it
// to find a row's descendants and ancestors.
func (hk HKey) IsPrefixOf(other HKey) bool {
	if len(hk) > len(other) {
		return false
	}
	for i := range hk {
		if hk[i].compare(other[i]) != 0 {
			return false
		}
	}
	return true
}

// Truncate returns the first n segments of hk (hk itself when n is at
// least len(hk)).
func (hk HKey) Truncate(n int) HKey {
	if n >= len(hk) {
		return hk
	}
	out := make(HKey, n)
	copy(out, hk[:n])
	return out
}

// DiffersAtSegment returns the lowest segment index at which hk and prev
// differ, or len(prev) (== len(hk) when equal length) if hk extends prev
// with no differing prefix. Used to compute
// Row.DiffersFromPredecessorAtKeySegment for a scan's row stream.
func DiffersAtSegment(prev, hk HKey) int {
	n := len(prev)
	if len(hk) < n {
		n = len(hk)
	}
	for i := 0; i < n; i++ {
		if prev[i].compare(hk[i]) != 0 {
			return i
		}
	}
	return n
}
