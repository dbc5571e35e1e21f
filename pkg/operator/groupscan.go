package operator

import (
	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
)

// groupScanDefault scans an entire group in hkey order, grounded on the
// teacher's seqscan.go full-table scan idiom generalized from a flat heap
// file to a group tree.
type groupScanDefault struct {
	group     adapter.GroupID
	limit     adapter.Limit
	outputType rowtype.RowType
}

// GroupScanDefault scans every row of group in hkey order, stopping early
// once limit reports LimitReached.
func GroupScanDefault(group adapter.GroupID, limit adapter.Limit, outputType rowtype.RowType) Operator {
	if limit == nil {
		limit = adapter.NoLimit
	}
	return &groupScanDefault{group: group, limit: limit, outputType: outputType}
}

func (op *groupScanDefault) OutputType() rowtype.RowType { return op.outputType }

func (op *groupScanDefault) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	var src adapter.RowSource
	var prev rowcodec.Row
	havePrev := false

	return cursor.NewBase("group_scan_default", func() (*rowcodec.Row, error) {
		if src == nil {
			s, err := a.GroupCursor(op.group, nil, true, op.limit)
			if err != nil {
				return nil, err
			}
			src = s
		}
		row, err := src.Next()
		if err != nil || row == nil {
			return row, err
		}
		annotateOrdering(&prev, &havePrev, row)
		return row, nil
	})
}

// annotateOrdering sets row's DiffersFromPredecessorAtKeySegment relative
// to the last row this scan produced, the annotation select_HKeyOrdered
// relies on downstream.
func annotateOrdering(prev *rowcodec.Row, havePrev *bool, row *rowcodec.Row) {
	if !*havePrev {
		row.SetDiffersFromPredecessorAtKeySegment(0)
	} else {
		row.SetDiffersFromPredecessorAtKeySegment(rowtype.DiffersAtSegment(prev.HKey(), row.HKey()))
	}
	*prev = *row
	*havePrev = true
}

// groupScanPositional scans a group starting at the hkey bound to
// hKeyBindingPos, honoring deep exactly as adapter.StoreAdapter.GroupCursor
// does.
type groupScanPositional struct {
	group          adapter.GroupID
	limit          adapter.Limit
	hKeyBindingPos int
	deep           bool
	outputType     rowtype.RowType
}

// GroupScanPositional scans group starting at the hkey bound to
// hKeyBindingPos in the execution's bindings, honoring deep and limit.
func GroupScanPositional(group adapter.GroupID, limit adapter.Limit, hKeyBindingPos int, deep bool, outputType rowtype.RowType) Operator {
	if limit == nil {
		limit = adapter.NoLimit
	}
	return &groupScanPositional{group: group, limit: limit, hKeyBindingPos: hKeyBindingPos, deep: deep, outputType: outputType}
}

func (op *groupScanPositional) OutputType() rowtype.RowType { return op.outputType }

func (op *groupScanPositional) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	var src adapter.RowSource
	var prev rowcodec.Row
	havePrev := false

	return cursor.NewBase("group_scan_positional", func() (*rowcodec.Row, error) {
		if src == nil {
			v, err := ec.Bindings().Get(op.hKeyBindingPos)
			if err != nil {
				return nil, err
			}
			hKey, _ := v.(rowtype.HKey)
			s, err := a.GroupCursor(op.group, hKey, op.deep, op.limit)
			if err != nil {
				return nil, err
			}
			src = s
		}
		row, err := src.Next()
		if err != nil || row == nil {
			return row, err
		}
		annotateOrdering(&prev, &havePrev, row)
		return row, nil
	})
}
