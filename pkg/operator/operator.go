// Package operator implements the physical query operator framework
// (component C7): a tree of Operator values, each producing a
// cursor.Cursor of rowcodec.Row against a adapter.StoreAdapter. Grounded
// on original_source/API.java for operator names and parameter shape, and
// on the teacher's pkg/execution/{query,join,aggregation,setops} packages
// for the Go cursor-construction idiom: a constructor returns an Operator
// with no error result, and Cursor builds a cursor.Base closing over a
// readNext closure private to that operator's cursor state.
package operator

import (
	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
	"storemy/pkg/types"
)

// Operator is one node of a physical query plan.
type Operator interface {
	Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor
	OutputType() rowtype.RowType
}

// openNow opens c immediately at tree-construction time: Operator.Cursor
// already plays the role of Volcano's open() cascading down to children,
// since there is no separate build-then-open step in this framework. The
// error is captured for the wrapping cursor's first Next call to report;
// the caller's own Open() call on the returned root cursor is a harmless
// second open, since cursor.Base.Open is idempotent for an already-open,
// not-yet-closed cursor.
func openNow(c cursor.Cursor) (cursor.Cursor, error) {
	return c, c.Open()
}

// Expression is the opaque scalar-evaluation contract every operator that
// touches row values (select, project, sort, aggregate, join) is built
// against. It never inspects a row's type beyond rt, so the same
// Expression can be reused across compatible row types.
type Expression func(row *rowcodec.Row, rt rowtype.RowType) (types.Value, error)

// LookupOption selects how an ancestor/branch lookup treats an input row
// that itself already matches one of the target types.
type LookupOption int

const (
	// KeepInput passes the input row through in addition to its
	// looked-up ancestors/branch rows.
	KeepInput LookupOption = iota
	// DiscardInput drops the input row once its lookup rows are produced.
	DiscardInput
)

// JoinType selects the emission variant of a two-sided join operator.
type JoinType int

const (
	JoinTypeInner JoinType = iota
	JoinTypeLeft
	JoinTypeRight
	JoinTypeFull
)

func (j JoinType) toVariant() rowtype.JoinVariant {
	switch j {
	case JoinTypeLeft:
		return rowtype.JoinLeft
	case JoinTypeRight:
		return rowtype.JoinRight
	case JoinTypeFull:
		return rowtype.JoinFull
	default:
		return rowtype.JoinInner
	}
}

// FlattenOption is one bit of flatten_HKeyOrdered's flag set.
type FlattenOption int

const (
	// LeftJoinShortensHKey truncates a flattened row's hkey to the
	// parent's length when the child side is absent. Without this flag,
	// such a row is left with no hkey at all -- combine has no child
	// hkey to draw a wider one from, so it declines to fabricate one.
	LeftJoinShortensHKey FlattenOption = iota
	// KeepParent additionally emits each parent row unmodified alongside
	// the flattened rows it produces.
	KeepParent
	// KeepChild additionally emits each child row unmodified alongside
	// the flattened row it produces.
	KeepChild
)

// FlattenOptionSet is a small set of FlattenOption flags.
type FlattenOptionSet map[FlattenOption]struct{}

func NewFlattenOptionSet(opts ...FlattenOption) FlattenOptionSet {
	s := make(FlattenOptionSet, len(opts))
	for _, o := range opts {
		s[o] = struct{}{}
	}
	return s
}

func (s FlattenOptionSet) has(o FlattenOption) bool {
	_, ok := s[o]
	return ok
}

// orderingTerm is one (Expression, ascending) pair of an Ordering.
type orderingTerm struct {
	expr      Expression
	ascending bool
}

// Ordering is an accumulating sort key list, mirroring API.Ordering.
type Ordering struct {
	terms []orderingTerm
}

// NewOrdering returns an empty Ordering.
func NewOrdering() *Ordering { return &Ordering{} }

// Append adds a sort term, returning the same Ordering for chaining.
func (o *Ordering) Append(expr Expression, ascending bool) *Ordering {
	o.terms = append(o.terms, orderingTerm{expr: expr, ascending: ascending})
	return o
}

func (o *Ordering) compare(rt rowtype.RowType, a, b *rowcodec.Row) (int, error) {
	for _, t := range o.terms {
		va, err := t.expr(a, rt)
		if err != nil {
			return 0, err
		}
		vb, err := t.expr(b, rt)
		if err != nil {
			return 0, err
		}
		c, err := compareValues(va, vb)
		if err != nil {
			return 0, err
		}
		if !t.ascending {
			c = -c
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// compareValues orders nil (SQL NULL) before any non-nil value.
func compareValues(a, b types.Value) (int, error) {
	if a == nil && b == nil {
		return 0, nil
	}
	if a == nil {
		return -1, nil
	}
	if b == nil {
		return 1, nil
	}
	lt, err := a.Compare(types.LessThan, b)
	if err != nil {
		return 0, err
	}
	if lt {
		return -1, nil
	}
	gt, err := a.Compare(types.GreaterThan, b)
	if err != nil {
		return 0, err
	}
	if gt {
		return 1, nil
	}
	return 0, nil
}

// UpdateFunction computes a replacement row for update_Default, given the
// old row it is replacing.
type UpdateFunction func(old *rowcodec.Row) (*rowcodec.Row, error)

// UpdatePlannable is the operator surface for the three write plans:
// insert_Default, update_Default, delete_Default. RunUpdate drives the
// input to completion, applying the write via a to a group, and returns
// the number of rows the plan touched; per spec, a partial failure still
// reports rowsProcessed via qerrors.AdapterError.
type UpdatePlannable interface {
	Operator
	RunUpdate(a adapter.StoreAdapter, ec *cursor.ExecutionContext, group adapter.GroupID) (rowsProcessed int, err error)
}
