package operator

import (
	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
	"storemy/pkg/types"
)

// isTruthy treats a nil predicate result (SQL NULL) as false, the same
// three-valued-to-boolean collapse WHERE clauses use.
func isTruthy(v types.Value) bool {
	b, ok := v.(types.BoolValue)
	return ok && b.V
}

// selectHKeyOrdered keeps a row of predicateRowType iff predicate holds,
// and drops every descendant of a row it rejected, using
// DiffersFromPredecessorAtKeySegment to detect a descendant without
// re-testing every ancestor segment -- the "select_HKeyOrdered" shortcut
// spec §4.2 names.
type selectHKeyOrdered struct {
	input            Operator
	predicateRowType rowtype.RowType
	predicate        Expression
}

// SelectHKeyOrdered keeps rows of predicateRowType passing predicate, and
// every row of other types, except descendants of a rejected row.
func SelectHKeyOrdered(input Operator, predicateRowType rowtype.RowType, predicate Expression) Operator {
	return &selectHKeyOrdered{input: input, predicateRowType: predicateRowType, predicate: predicate}
}

func (op *selectHKeyOrdered) OutputType() rowtype.RowType { return op.input.OutputType() }

func (op *selectHKeyOrdered) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	in, openErr := openNow(op.input.Cursor(a, ec))
	rejectedAt := -1 // hkey segment index the last rejected row differed at, or -1 if none pending

	return cursor.NewBase("select_hkey_ordered", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		for {
			row, err := in.Next()
			if err != nil || row == nil {
				return row, err
			}
			if rejectedAt >= 0 && row.DiffersFromPredecessorAtKeySegment() > rejectedAt {
				continue // descendant of a rejected row, drop without evaluating
			}
			rejectedAt = -1

			if !rowTypeMatches(op.predicateRowType, row) {
				return row, nil
			}
			keep, err := op.predicate(row, op.predicateRowType)
			if err != nil {
				return nil, err
			}
			if isTruthy(keep) {
				return row, nil
			}
			rejectedAt = row.DiffersFromPredecessorAtKeySegment()
		}
	})
}

// filterDefault keeps only rows whose RowDefID matches one of keepTypes.
type filterDefault struct {
	input     Operator
	keepTypes map[rowtype.RowType]struct{}
}

// FilterDefault keeps only rows whose type is a member of keepTypes.
func FilterDefault(input Operator, keepTypes map[rowtype.RowType]struct{}) Operator {
	return &filterDefault{input: input, keepTypes: keepTypes}
}

func (op *filterDefault) OutputType() rowtype.RowType { return op.input.OutputType() }

func (op *filterDefault) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	in, openErr := openNow(op.input.Cursor(a, ec))
	return cursor.NewBase("filter_default", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		for {
			row, err := in.Next()
			if err != nil || row == nil {
				return row, err
			}
			for rt := range op.keepTypes {
				if rowTypeMatches(rt, row) {
					return row, nil
				}
			}
		}
	})
}

// rowTypeMatches reports whether row was built against rt, comparing
// row's wire rowDefId to rt.ID() -- every operator in this package that
// constructs a row (table scans, flatten/product's combinedDef,
// aggregate/project's outDef) sets the row's rowDefId to its output
// type's ID, so this check is valid across every RowType kind, not just
// TableRowType.
func rowTypeMatches(rt rowtype.RowType, row *rowcodec.Row) bool {
	return rt != nil && rt.ID() == row.RowDefID()
}
