// Package adapter defines the storage boundary (component C6's execution
// counterpart, spec §6.4): the contract a physical operator tree drives to
// read and mutate group-organized, hkey-ordered row storage. This package
// has no dependency on pkg/operator so operator can depend on it freely.
package adapter

import (
	"storemy/pkg/cursor"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
)

// GroupID identifies a group of hkey-related tables, the unit an adapter
// scans or looks up against.
type GroupID uint32

// Limit is a polymorphic predicate over a row, letting an operator ask an
// adapter to stop a scan early without both sides agreeing on a row count
// up front. NoLimit is the always-false singleton.
type Limit interface {
	LimitReached(row *rowcodec.Row) bool
}

type noLimit struct{}

func (noLimit) LimitReached(*rowcodec.Row) bool { return false }

// NoLimit is the Limit that never stops a scan early.
var NoLimit Limit = noLimit{}

// KeyRange bounds an index scan: Lo/Hi are index key values (nil means
// unbounded on that side), LoInclusive/HiInclusive select boundary
// inclusivity.
type KeyRange struct {
	Lo, Hi                   *rowcodec.Row
	LoInclusive, HiInclusive bool
}

// RowSource is a plain forward row iterator returned by an adapter, prior
// to being wrapped in the operator framework's Cursor lifecycle.
type RowSource interface {
	Next() (*rowcodec.Row, error) // nil, nil at end
	Close() error
}

// StoreAdapter is the storage boundary a physical operator tree drives.
// All methods are synchronous; storage-layer failures are reported as
// qerrors.AdapterError.
type StoreAdapter interface {
	// GroupCursor scans a group starting at hKey (nil for the start of
	// the group), honoring limit; deep selects whether descendants of
	// hKey's row are included or only its direct row.
	GroupCursor(group GroupID, hKey rowtype.HKey, deep bool, limit Limit) (RowSource, error)

	// IndexCursor scans an index within r, in forward or reverse order.
	IndexCursor(index *rowtype.IndexRowType, r *KeyRange, reverse bool) (RowSource, error)

	// Lookup fetches the ancestor rows of hKey in group for each type in
	// ancestorTypes.
	Lookup(group GroupID, hKey rowtype.HKey, ancestorTypes []rowtype.RowType) ([]*rowcodec.Row, error)

	// Branch scans the subtree rooted at hKey within group.
	Branch(group GroupID, hKey rowtype.HKey) (RowSource, error)

	WriteRow(group GroupID, row *rowcodec.Row) error
	UpdateRow(group GroupID, old, new *rowcodec.Row) error
	DeleteRow(group GroupID, row *rowcodec.Row) error

	// Bindings returns the binding table for the execution this adapter
	// call is part of.
	Bindings() *cursor.Bindings
}
