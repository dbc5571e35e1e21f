package rowtype

import (
	"fmt"
	"sync/atomic"

	"storemy/pkg/schema"
)

// JoinVariant names how two row types were combined by flatten_HKeyOrdered.
type JoinVariant int

const (
	JoinInner JoinVariant = iota
	JoinLeft
	JoinRight
	JoinFull
)

// RowType identifies the shape rows flowing through an operator tree take:
// a base table, an index, or a flattened parent/child combination.
type RowType interface {
	ID() int32
	Equals(RowType) bool
	String() string
}

// TableRowType wraps a table's RowDef.
type TableRowType struct {
	RowDef *schema.RowDef
}

func NewTableRowType(rd *schema.RowDef) *TableRowType { return &TableRowType{RowDef: rd} }

func (t *TableRowType) ID() int32 { return t.RowDef.ID }

func (t *TableRowType) Equals(other RowType) bool {
	o, ok := other.(*TableRowType)
	return ok && o.RowDef.ID == t.RowDef.ID
}

func (t *TableRowType) String() string { return fmt.Sprintf("Table(%d)", t.RowDef.ID) }

// IndexRowType wraps an index over a table, carrying its underlying
// TableRowType for innerJoinUntilType bookkeeping (spec §9 Open Question).
type IndexRowType struct {
	IndexID   int32
	TableType *TableRowType
}

func NewIndexRowType(indexID int32, tableType *TableRowType) *IndexRowType {
	return &IndexRowType{IndexID: indexID, TableType: tableType}
}

func (t *IndexRowType) ID() int32 { return t.IndexID }

func (t *IndexRowType) Equals(other RowType) bool {
	o, ok := other.(*IndexRowType)
	return ok && o.IndexID == t.IndexID
}

func (t *IndexRowType) String() string { return fmt.Sprintf("Index(%d)", t.IndexID) }

// FlattenedRowType is the output type of flatten_HKeyOrdered: two
// flattened types are equal iff their parent and child types and join
// variant are all equal.
type FlattenedRowType struct {
	id     int32
	Parent RowType
	Child  RowType
	Join   JoinVariant
}

var flattenedIDCounter int64 = 1 << 24 // keep flattened ids out of table/index id space

func NewFlattenedRowType(parent, child RowType, join JoinVariant) *FlattenedRowType {
	id := atomic.AddInt64(&flattenedIDCounter, 1)
	return &FlattenedRowType{id: int32(id), Parent: parent, Child: child, Join: join}
}

func (t *FlattenedRowType) ID() int32 { return t.id }

func (t *FlattenedRowType) Equals(other RowType) bool {
	o, ok := other.(*FlattenedRowType)
	if !ok {
		return false
	}
	return t.Parent.Equals(o.Parent) && t.Child.Equals(o.Child) && t.Join == o.Join
}

func (t *FlattenedRowType) String() string {
	return fmt.Sprintf("Flatten(%s, %s)", t.Parent.String(), t.Child.String())
}
