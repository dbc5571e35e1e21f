package operator

import (
	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
)

// limitDefault passes through at most n rows of input, then reports end.
type limitDefault struct {
	input Operator
	n     int
}

// LimitDefault caps input's output at n rows.
func LimitDefault(input Operator, n int) Operator {
	return &limitDefault{input: input, n: n}
}

func (op *limitDefault) OutputType() rowtype.RowType { return op.input.OutputType() }

func (op *limitDefault) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	in, openErr := openNow(op.input.Cursor(a, ec))
	seen := 0
	closed := false

	closeInput := func() error {
		if closed {
			return nil
		}
		closed = true
		return in.Close()
	}

	return cursor.NewBase("limit_default", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		if seen >= op.n {
			return nil, closeInput()
		}
		row, err := in.Next()
		if err != nil || row == nil {
			return row, err
		}
		seen++
		if seen >= op.n {
			return row, closeInput()
		}
		return row, nil
	})
}
