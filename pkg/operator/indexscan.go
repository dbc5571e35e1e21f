package operator

import (
	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
)

// indexScanDefault scans an index within a key range, grounded on the
// teacher's IndexScan (pkg/execution/scanner) equality/range distinction,
// generalized to a single KeyRange with independently inclusive bounds.
// innerJoinUntilType is stored as given; the scan never reads it and does
// not pass it to the adapter's IndexCursor, so every index row in range is
// emitted the same way whatever its value.
type indexScanDefault struct {
	indexType          *rowtype.IndexRowType
	reverse            bool
	keyRange           *adapter.KeyRange
	innerJoinUntilType rowtype.RowType
}

// IndexScanDefault scans indexType's index within r (nil for unbounded),
// forward or reverse.
func IndexScanDefault(indexType *rowtype.IndexRowType, reverse bool, r *adapter.KeyRange, innerJoinUntilType rowtype.RowType) Operator {
	return &indexScanDefault{indexType: indexType, reverse: reverse, keyRange: r, innerJoinUntilType: innerJoinUntilType}
}

func (op *indexScanDefault) OutputType() rowtype.RowType { return op.indexType }

func (op *indexScanDefault) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	var src adapter.RowSource
	var prev rowcodec.Row
	havePrev := false

	return cursor.NewBase("index_scan_default", func() (*rowcodec.Row, error) {
		if src == nil {
			s, err := a.IndexCursor(op.indexType, op.keyRange, op.reverse)
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
