package operator

import (
	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
	"storemy/pkg/schema"
	"storemy/pkg/types"
)

// projectDefault evaluates expressions against each input row, producing a
// new row of outputRowType, generalized from the teacher's project.go
// column-selection operator to arbitrary Expression evaluation.
type projectDefault struct {
	input         Operator
	outputRowType rowtype.RowType
	expressions   []Expression
	outDef        *schema.RowDef
}

// ProjectDefault evaluates expressions against each row of input's declared
// output type, emitting one row of outputRowType per match. Rows of other
// types pass through unchanged.
func ProjectDefault(input Operator, outputRowType rowtype.RowType, expressions []Expression) Operator {
	op := &projectDefault{input: input, outputRowType: outputRowType, expressions: expressions}
	if d, err := tableDef(outputRowType); err == nil {
		op.outDef = d
	}
	return op
}

func (op *projectDefault) OutputType() rowtype.RowType { return op.outputRowType }

func (op *projectDefault) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	in, openErr := openNow(op.input.Cursor(a, ec))
	inType := op.input.OutputType()

	return cursor.NewBase("project_default", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		row, err := in.Next()
		if err != nil || row == nil {
			return row, err
		}
		if !rowTypeMatches(inType, row) {
			return row, nil
		}
		values := make([]types.Value, len(op.expressions))
		for i, expr := range op.expressions {
			v, err := expr(row, inType)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		out, err := rowcodec.BuildRow(rowcodec.NewBuffer(256), 0, op.outDef, values, true)
		if err != nil {
			return nil, err
		}
		out.SetHKey(row.HKey())
		out.SetDiffersFromPredecessorAtKeySegment(row.DiffersFromPredecessorAtKeySegment())
		return out, nil
	})
}

// projectTable is project_Default's table-preserving variant: it projects
// while keeping rowType's identity available to expressions (used when an
// expression needs to distinguish which of several flattened row types a
// row currently is, e.g. a projection downstream of flatten_HKeyOrdered).
type projectTable struct {
	input                Operator
	rowType, outputType  rowtype.RowType
	expressions          []Expression
	outDef               *schema.RowDef
}

// ProjectTable evaluates expressions against each row of rowType from
// input, emitting a row of outputRowType. Rows of other types pass
// through unchanged.
func ProjectTable(input Operator, rowType, outputRowType rowtype.RowType, expressions []Expression) Operator {
	op := &projectTable{input: input, rowType: rowType, outputType: outputRowType, expressions: expressions}
	if d, err := tableDef(outputRowType); err == nil {
		op.outDef = d
	}
	return op
}

func (op *projectTable) OutputType() rowtype.RowType { return op.outputType }

func (op *projectTable) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	in, openErr := openNow(op.input.Cursor(a, ec))

	return cursor.NewBase("project_table", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		for {
			row, err := in.Next()
			if err != nil || row == nil {
				return row, err
			}
			if !rowTypeMatches(op.rowType, row) {
				return row, nil
			}
			values := make([]types.Value, len(op.expressions))
			for i, expr := range op.expressions {
				v, err := expr(row, op.rowType)
				if err != nil {
					return nil, err
				}
				values[i] = v
			}
			out, err := rowcodec.BuildRow(rowcodec.NewBuffer(256), 0, op.outDef, values, true)
			if err != nil {
				return nil, err
			}
			out.SetHKey(row.HKey())
			return out, nil
		}
	})
}
