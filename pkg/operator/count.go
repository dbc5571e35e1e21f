package operator

import (
	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
	"storemy/pkg/schema"
	"storemy/pkg/types"
)

var countRowDef = schema.NewRowDef(-1, []schema.FieldDef{schema.NewFixedFieldDef("count", types.KindInt64, 8)})

// countRowType is the fixed single-column row type every countDefault
// operator emits, regardless of countType.
var countRowType = rowtype.NewTableRowType(countRowDef)

// countDefault emits one row per maximal run of consecutive countType rows
// in its input, carrying that run's length. The count for a run is emitted
// as soon as the run ends -- either a row of a different type arrives or
// the input is exhausted -- rather than after a full drain, so multiple
// separated runs of countType produce multiple count rows.
type countDefault struct {
	input     Operator
	countType rowtype.RowType
}

// CountDefault counts consecutive runs of countType rows input produces,
// emitting one row per run with that run's length.
func CountDefault(input Operator, countType rowtype.RowType) Operator {
	return &countDefault{input: input, countType: countType}
}

func (op *countDefault) OutputType() rowtype.RowType { return countRowType }

func (op *countDefault) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	in, openErr := openNow(op.input.Cursor(a, ec))
	var runCount int64
	inRun := false
	done := false

	emitRun := func() (*rowcodec.Row, error) {
		n := runCount
		runCount = 0
		inRun = false
		return rowcodec.BuildRow(rowcodec.NewBuffer(64), 0, countRowDef, []types.Value{types.NewInt64Value(n)}, true)
	}

	return cursor.NewBase("count_default", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		for {
			if done {
				if inRun {
					return emitRun()
				}
				return nil, nil
			}
			row, err := in.Next()
			if err != nil {
				return nil, err
			}
			if row == nil {
				done = true
				continue
			}
			if rowTypeMatches(op.countType, row) {
				runCount++
				inRun = true
				continue
			}
			if inRun {
				return emitRun()
			}
		}
	})
}
