package operator

import (
	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
)

// ancestorLookupDefault fetches, for each input row, its ancestor rows of
// ancestorTypes from group, grounded on the teacher's nested-loop-driven
// dependent lookup idiom in pkg/execution/join generalized from an
// equi-join predicate to an hkey-prefix lookup.
type ancestorLookupDefault struct {
	input         Operator
	group         adapter.GroupID
	rowType       rowtype.RowType
	ancestorTypes []rowtype.RowType
	flag          LookupOption
}

// AncestorLookupDefault fetches the ancestor rows of ancestorTypes for
// each row input produces, within group. If flag is KeepInput the input
// row itself is also emitted, immediately before its ancestor rows.
func AncestorLookupDefault(input Operator, group adapter.GroupID, rowType rowtype.RowType, ancestorTypes []rowtype.RowType, flag LookupOption) Operator {
	return &ancestorLookupDefault{input: input, group: group, rowType: rowType, ancestorTypes: ancestorTypes, flag: flag}
}

func (op *ancestorLookupDefault) OutputType() rowtype.RowType { return op.rowType }

func (op *ancestorLookupDefault) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	in, openErr := openNow(op.input.Cursor(a, ec))
	var pending []*rowcodec.Row

	return cursor.NewBase("ancestor_lookup_default", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		for {
			if len(pending) > 0 {
				row := pending[0]
				pending = pending[1:]
				return row, nil
			}
			row, err := in.Next()
			if err != nil || row == nil {
				return row, err
			}
			ancestors, err := a.Lookup(op.group, row.HKey(), op.ancestorTypes)
			if err != nil {
				return nil, err
			}
			if op.flag == KeepInput {
				pending = append(pending, row)
			}
			pending = append(pending, ancestors...)
		}
	})
}

// ancestorLookupNested is the inner-side lookup driven by a nested-loop
// operator: it reads its input hkey from a binding rather than from an
// input Operator, matching API.java's *_Nested naming convention.
type ancestorLookupNested struct {
	group          adapter.GroupID
	rowType        rowtype.RowType
	ancestorTypes  []rowtype.RowType
	hKeyBindingPos int
}

// AncestorLookupNested fetches ancestor rows for the hkey bound at
// hKeyBindingPos, once per Open, for use as the inner operator of a
// map_NestedLoops/product_NestedLoops tree.
func AncestorLookupNested(group adapter.GroupID, rowType rowtype.RowType, ancestorTypes []rowtype.RowType, hKeyBindingPos int) Operator {
	return &ancestorLookupNested{group: group, rowType: rowType, ancestorTypes: ancestorTypes, hKeyBindingPos: hKeyBindingPos}
}

func (op *ancestorLookupNested) OutputType() rowtype.RowType { return op.rowType }

func (op *ancestorLookupNested) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	fetched := false
	var rows []*rowcodec.Row

	return cursor.NewBase("ancestor_lookup_nested", func() (*rowcodec.Row, error) {
		if !fetched {
			v, err := ec.Bindings().Get(op.hKeyBindingPos)
			if err != nil {
				return nil, err
			}
			hKey, _ := v.(rowtype.HKey)
			r, err := a.Lookup(op.group, hKey, op.ancestorTypes)
			if err != nil {
				return nil, err
			}
			rows = r
			fetched = true
		}
		if len(rows) == 0 {
			return nil, nil
		}
		row := rows[0]
		rows = rows[1:]
		return row, nil
	})
}

// branchLookupDefault scans, for each input row, the subtree rooted at
// its hkey within group.
type branchLookupDefault struct {
	input                          Operator
	group                          adapter.GroupID
	inputRowType, outputRowType    rowtype.RowType
	flag                           LookupOption
	limit                          adapter.Limit
}

// BranchLookupDefault scans the subtree rooted at each input row's hkey,
// within group. If flag is KeepInput the input row itself is emitted
// first.
func BranchLookupDefault(input Operator, group adapter.GroupID, inputRowType, outputRowType rowtype.RowType, flag LookupOption, limit adapter.Limit) Operator {
	if limit == nil {
		limit = adapter.NoLimit
	}
	return &branchLookupDefault{input: input, group: group, inputRowType: inputRowType, outputRowType: outputRowType, flag: flag, limit: limit}
}

func (op *branchLookupDefault) OutputType() rowtype.RowType { return op.outputRowType }

func (op *branchLookupDefault) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	in, openErr := openNow(op.input.Cursor(a, ec))
	var branch adapter.RowSource
	var pendingInput *rowcodec.Row

	return cursor.NewBase("branch_lookup_default", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		for {
			if pendingInput != nil {
				row := pendingInput
				pendingInput = nil
				return row, nil
			}
			if branch != nil {
				row, err := branch.Next()
				if err != nil {
					return nil, err
				}
				if row != nil {
					return row, nil
				}
				branch = nil
			}
			row, err := in.Next()
			if err != nil || row == nil {
				return row, err
			}
			b, err := a.Branch(op.group, row.HKey())
			if err != nil {
				return nil, err
			}
			branch = b
			if op.flag == KeepInput {
				pendingInput = row
			}
		}
	})
}

// branchLookupNested is BranchLookupDefault's *_Nested counterpart: its
// hkey comes from a binding rather than an input Operator.
type branchLookupNested struct {
	group                        adapter.GroupID
	inputRowType, outputRowType rowtype.RowType
	flag                        LookupOption
	inputBindingPos             int
}

// BranchLookupNested scans the subtree rooted at the hkey bound to
// inputBindingPos, within group.
func BranchLookupNested(group adapter.GroupID, inputRowType, outputRowType rowtype.RowType, flag LookupOption, inputBindingPos int) Operator {
	return &branchLookupNested{group: group, inputRowType: inputRowType, outputRowType: outputRowType, flag: flag, inputBindingPos: inputBindingPos}
}

func (op *branchLookupNested) OutputType() rowtype.RowType { return op.outputRowType }

func (op *branchLookupNested) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	var branch adapter.RowSource

	return cursor.NewBase("branch_lookup_nested", func() (*rowcodec.Row, error) {
		if branch == nil {
			v, err := ec.Bindings().Get(op.inputBindingPos)
			if err != nil {
				return nil, err
			}
			hKey, _ := v.(rowtype.HKey)
			b, err := a.Branch(op.group, hKey)
			if err != nil {
				return nil, err
			}
			branch = b
		}
		return branch.Next()
	})
}
