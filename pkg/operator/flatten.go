package operator

import (
	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/qerrors"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
	"storemy/pkg/schema"
	"storemy/pkg/types"
)

// flattenHKeyOrdered combines a parent row with each of its children into
// one wider row, relying on its input being hkey-ordered (a parent
// immediately precedes its own children, per the group tree's ordinal
// segments). Grounded on original_source/API.java's flatten_HKeyOrdered
// and the teacher's join package for the emit-on-match / emit-orphan-at-
// boundary nested-loop shape, generalized from an equality predicate to
// hkey adjacency.
type flattenHKeyOrdered struct {
	input                 Operator
	parentType, childType *rowtype.TableRowType
	join                  JoinType
	flags                 FlattenOptionSet
	outType               *rowtype.FlattenedRowType
	combinedDef           *schema.RowDef
}

// FlattenHKeyOrdered combines parentType/childType rows from input's
// hkey-ordered stream. parentType and childType must be *rowtype.TableRowType
// values (a caller error otherwise, reported as an EncodingError from
// the returned cursor's first Next call).
func FlattenHKeyOrdered(input Operator, parentType, childType rowtype.RowType, join JoinType, flags FlattenOptionSet) Operator {
	pt, _ := parentType.(*rowtype.TableRowType)
	ct, _ := childType.(*rowtype.TableRowType)
	op := &flattenHKeyOrdered{input: input, parentType: pt, childType: ct, join: join, flags: flags}
	if pt != nil && ct != nil {
		op.outType = rowtype.NewFlattenedRowType(pt, ct, join.toVariant())
		fields := make([]schema.FieldDef, 0, len(pt.RowDef.Fields)+len(ct.RowDef.Fields))
		fields = append(fields, pt.RowDef.Fields...)
		fields = append(fields, ct.RowDef.Fields...)
		op.combinedDef = schema.NewRowDef(op.outType.ID(), fields)
	}
	return op
}

func (op *flattenHKeyOrdered) OutputType() rowtype.RowType { return op.outType }

// combine builds one flattened row from parent and child, either of which
// may be nil (an unmatched side of a LEFT/RIGHT/FULL join), with the
// missing side's fields filled with nulls.
func (op *flattenHKeyOrdered) combine(parent, child *rowcodec.Row) (*rowcodec.Row, error) {
	values := make([]types.Value, 0, op.combinedDef.FieldCount())
	if parent != nil {
		for i := range op.parentType.RowDef.Fields {
			v, err := parent.GetValue(op.parentType.RowDef, i)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	} else {
		values = append(values, make([]types.Value, len(op.parentType.RowDef.Fields))...)
	}
	if child != nil {
		for i := range op.childType.RowDef.Fields {
			v, err := child.GetValue(op.childType.RowDef, i)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	} else {
		values = append(values, make([]types.Value, len(op.childType.RowDef.Fields))...)
	}

	buf := rowcodec.NewBuffer(512)
	row, err := rowcodec.BuildRow(buf, 0, op.combinedDef, values, true)
	if err != nil {
		return nil, err
	}
	switch {
	case child != nil:
		// A real child hkey exists whether or not a parent matched it
		// (RIGHT/FULL child-alone rows carry the child's own hkey).
		row.SetHKey(child.HKey())
	case op.flags.has(LeftJoinShortensHKey):
		row.SetHKey(parent.HKey())
	default:
		// No child row to draw a wider hkey from, and the flag doesn't
		// authorize falling back to the parent's shorter one -- leave
		// the row without an hkey rather than fabricate one.
	}
	return row, nil
}

func (op *flattenHKeyOrdered) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	if op.combinedDef == nil {
		return cursor.NewBase("flatten_hkey_ordered", func() (*rowcodec.Row, error) {
			return nil, qerrors.EncodingError("flatten_HKeyOrdered requires table row types", nil)
		})
	}

	in, openErr := openNow(op.input.Cursor(a, ec))
	var currentParent *rowcodec.Row
	parentMatched := false
	done := false
	var pending []*rowcodec.Row

	emitsOrphanParent := op.join == JoinTypeLeft || op.join == JoinTypeFull
	emitsOrphanChild := op.join == JoinTypeRight || op.join == JoinTypeFull

	emitOrphanParent := func() (*rowcodec.Row, bool, error) {
		if currentParent == nil || parentMatched || !emitsOrphanParent {
			return nil, false, nil
		}
		row, err := op.combine(currentParent, nil)
		return row, true, err
	}

	return cursor.NewBase("flatten_hkey_ordered", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		for {
			if len(pending) > 0 {
				row := pending[0]
				pending = pending[1:]
				return row, nil
			}
			if done {
				row, emitted, err := emitOrphanParent()
				if err != nil {
					return nil, err
				}
				if emitted {
					currentParent = nil
					return row, nil
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

			switch row.RowDefID() {
			case op.parentType.RowDef.ID:
				orphan, emitted, err := emitOrphanParent()
				if err != nil {
					return nil, err
				}
				currentParent = row
				parentMatched = false
				if op.flags.has(KeepParent) {
					pending = append(pending, row)
				}
				if emitted {
					return orphan, nil
				}
			case op.childType.RowDef.ID:
				if currentParent == nil {
					if !emitsOrphanChild {
						continue
					}
					combined, err := op.combine(nil, row)
					if err != nil {
						return nil, err
					}
					if op.flags.has(KeepChild) {
						pending = append(pending, row)
					}
					return combined, nil
				}
				parentMatched = true
				combined, err := op.combine(currentParent, row)
				if err != nil {
					return nil, err
				}
				if op.flags.has(KeepChild) {
					pending = append(pending, row)
				}
				return combined, nil
			default:
				pending = append(pending, row)
			}
		}
	})
}
