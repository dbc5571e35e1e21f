package operator

import (
	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
)

// valuesScanDefault replays a fixed, pre-built row slice, the leaf
// operator a literal VALUES list or a test fixture plugs into a tree
// without going through a StoreAdapter.
type valuesScanDefault struct {
	rows     []*rowcodec.Row
	rowType  rowtype.RowType
}

// ValuesScanDefault replays rows verbatim, in order.
func ValuesScanDefault(rows []*rowcodec.Row, rowType rowtype.RowType) Operator {
	return &valuesScanDefault{rows: rows, rowType: rowType}
}

func (op *valuesScanDefault) OutputType() rowtype.RowType { return op.rowType }

func (op *valuesScanDefault) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	pos := 0
	return cursor.NewBase("values_scan_default", func() (*rowcodec.Row, error) {
		if pos >= len(op.rows) {
			return nil, nil
		}
		row := op.rows[pos]
		pos++
		return row, nil
	})
}
