package operator

import (
	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/qerrors"
	"storemy/pkg/rowtype"
)

// insertPlan writes every row input produces into a group, the terminal
// plan a caller drives via RunUpdate rather than Cursor.
type insertPlan struct {
	input Operator
}

// InsertDefault writes every row input produces into a group when driven.
func InsertDefault(input Operator) UpdatePlannable { return &insertPlan{input: input} }

func (op *insertPlan) OutputType() rowtype.RowType { return op.input.OutputType() }

func (op *insertPlan) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	return op.input.Cursor(a, ec)
}

func (op *insertPlan) RunUpdate(a adapter.StoreAdapter, ec *cursor.ExecutionContext, group adapter.GroupID) (int, error) {
	c := cursor.Guard(op.Cursor(a, ec), ec)
	if err := c.Open(); err != nil {
		return 0, err
	}
	defer c.Close()
	n := 0
	for {
		row, err := c.Next()
		if err != nil {
			return n, qerrors.AdapterError(err, n)
		}
		if row == nil {
			return n, nil
		}
		if err := a.WriteRow(group, row); err != nil {
			return n, qerrors.AdapterError(err, n)
		}
		n++
	}
}

// updatePlan replaces every row input produces with fn's result.
type updatePlan struct {
	input Operator
	fn    UpdateFunction
}

// UpdateDefault replaces every row input produces with fn(row) when
// driven.
func UpdateDefault(input Operator, fn UpdateFunction) UpdatePlannable {
	return &updatePlan{input: input, fn: fn}
}

func (op *updatePlan) OutputType() rowtype.RowType { return op.input.OutputType() }

func (op *updatePlan) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	return op.input.Cursor(a, ec)
}

func (op *updatePlan) RunUpdate(a adapter.StoreAdapter, ec *cursor.ExecutionContext, group adapter.GroupID) (int, error) {
	c := cursor.Guard(op.Cursor(a, ec), ec)
	if err := c.Open(); err != nil {
		return 0, err
	}
	defer c.Close()
	n := 0
	for {
		old, err := c.Next()
		if err != nil {
			return n, qerrors.AdapterError(err, n)
		}
		if old == nil {
			return n, nil
		}
		newRow, err := op.fn(old)
		if err != nil {
			return n, qerrors.AdapterError(err, n)
		}
		if err := a.UpdateRow(group, old, newRow); err != nil {
			return n, qerrors.AdapterError(err, n)
		}
		n++
	}
}

// deletePlan deletes every row input produces.
type deletePlan struct {
	input Operator
}

// DeleteDefault deletes every row input produces when driven.
func DeleteDefault(input Operator) UpdatePlannable { return &deletePlan{input: input} }

func (op *deletePlan) OutputType() rowtype.RowType { return op.input.OutputType() }

func (op *deletePlan) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	return op.input.Cursor(a, ec)
}

func (op *deletePlan) RunUpdate(a adapter.StoreAdapter, ec *cursor.ExecutionContext, group adapter.GroupID) (int, error) {
	c := cursor.Guard(op.Cursor(a, ec), ec)
	if err := c.Open(); err != nil {
		return 0, err
	}
	defer c.Close()
	n := 0
	for {
		row, err := c.Next()
		if err != nil {
			return n, qerrors.AdapterError(err, n)
		}
		if row == nil {
			return n, nil
		}
		if err := a.DeleteRow(group, row); err != nil {
			return n, qerrors.AdapterError(err, n)
		}
		n++
	}
}
