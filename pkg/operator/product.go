package operator

import (
	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/primitives"
	"storemy/pkg/qerrors"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
	"storemy/pkg/schema"
	"storemy/pkg/types"
)

// combineRows concatenates leftDef's and rightDef's field values from left
// and right (right may be nil) into a row of combinedDef, the row-widening
// step every product/flatten operator in this package shares.
func combineRows(leftDef, rightDef, combinedDef *schema.RowDef, left, right *rowcodec.Row) (*rowcodec.Row, error) {
	values := make([]types.Value, 0, combinedDef.FieldCount())
	for i := range leftDef.Fields {
		v, err := left.GetValue(leftDef, i)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if right != nil {
		for i := range rightDef.Fields {
			v, err := right.GetValue(rightDef, i)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	} else {
		values = append(values, make([]types.Value, len(rightDef.Fields))...)
	}
	buf := rowcodec.NewBuffer(512)
	return rowcodec.BuildRow(buf, 0, combinedDef, values, true)
}

func tableDef(rt rowtype.RowType) (*schema.RowDef, error) {
	if t, ok := rt.(*rowtype.TableRowType); ok {
		return t.RowDef, nil
	}
	return nil, qerrors.EncodingError("row type does not carry a concrete schema", nil)
}

// productByRun combines a run of left-type rows with the following run of
// right-type rows sharing a common hkey prefix, deprecated in
// original_source/API.java in favour of productNestedLoops but still
// exercised by the group-run product path that predates
// map_NestedLoops becoming the default join mechanism.
//
// Deprecated: use ProductNestedLoops.
type productByRun struct {
	input             Operator
	left, right       *rowtype.TableRowType
	outputType        *rowtype.FlattenedRowType
	combinedDef       *schema.RowDef
}

// ProductByRun combines contiguous runs of left rows and right rows from
// input's hkey-ordered stream into their cross product.
//
// Deprecated: use ProductNestedLoops.
func ProductByRun(input Operator, left, right rowtype.RowType) Operator {
	lt, _ := left.(*rowtype.TableRowType)
	rt, _ := right.(*rowtype.TableRowType)
	op := &productByRun{input: input, left: lt, right: rt}
	if lt != nil && rt != nil {
		op.outputType = rowtype.NewFlattenedRowType(lt, rt, rowtype.JoinInner)
		fields := append(append([]schema.FieldDef{}, lt.RowDef.Fields...), rt.RowDef.Fields...)
		op.combinedDef = schema.NewRowDef(op.outputType.ID(), fields)
	}
	return op
}

func (op *productByRun) OutputType() rowtype.RowType { return op.outputType }

func (op *productByRun) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	if op.combinedDef == nil {
		return cursor.NewBase("product_by_run", func() (*rowcodec.Row, error) {
			return nil, qerrors.EncodingError("product_ByRun requires table row types", nil)
		})
	}

	in, openErr := openNow(op.input.Cursor(a, ec))
	var leftRun, rightRun []*rowcodec.Row
	var pairs [][2]*rowcodec.Row
	pos := 0
	drained := false

	flushRuns := func() {
		if len(leftRun) > 0 && len(rightRun) > 0 {
			for _, l := range leftRun {
				for _, r := range rightRun {
					pairs = append(pairs, [2]*rowcodec.Row{l, r})
				}
			}
		}
	}

	return cursor.NewBase("product_by_run", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		for {
			if pos < len(pairs) {
				pair := pairs[pos]
				pos++
				return combineRows(op.left.RowDef, op.right.RowDef, op.combinedDef, pair[0], pair[1])
			}
			pairs = pairs[:0]
			pos = 0
			if drained {
				return nil, nil
			}
			row, err := in.Next()
			if err != nil {
				return nil, err
			}
			if row == nil {
				flushRuns()
				leftRun, rightRun = nil, nil
				drained = true
				continue
			}
			switch row.RowDefID() {
			case op.left.RowDef.ID:
				if len(rightRun) > 0 {
					flushRuns()
					leftRun, rightRun = nil, nil
				}
				leftRun = append(leftRun, row)
			case op.right.RowDef.ID:
				rightRun = append(rightRun, row)
			}
		}
	})
}

// productNestedLoops joins outer with inner, binding bindingPos to each
// outer row's hkey before driving inner to completion -- the classic
// nested-loop shape the teacher's pkg/execution/join package implements
// as its fallback strategy, generalized here to the primary (rather than
// fallback) join mechanism per original_source/API.java.
type productNestedLoops struct {
	outer, inner          Operator
	leftType, rightType   rowtype.RowType
	bindingPos            int
	outputType            *rowtype.FlattenedRowType
	combinedDef           *schema.RowDef
	leftDef, rightDef     *schema.RowDef
}

// ProductNestedLoops joins outer with inner: for each outer row, hkey is
// bound at bindingPos and inner is driven to completion, each of its rows
// combined with the current outer row.
func ProductNestedLoops(outer, inner Operator, leftType, rightType rowtype.RowType, bindingPos int) Operator {
	op := &productNestedLoops{outer: outer, inner: inner, leftType: leftType, rightType: rightType, bindingPos: bindingPos}
	ld, lerr := tableDef(leftType)
	rd, rerr := tableDef(rightType)
	if lerr == nil && rerr == nil {
		op.leftDef, op.rightDef = ld, rd
		op.outputType = rowtype.NewFlattenedRowType(leftType, rightType, rowtype.JoinInner)
		fields := append(append([]schema.FieldDef{}, ld.Fields...), rd.Fields...)
		op.combinedDef = schema.NewRowDef(op.outputType.ID(), fields)
	}
	return op
}

func (op *productNestedLoops) OutputType() rowtype.RowType { return op.outputType }

func (op *productNestedLoops) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	if op.combinedDef == nil {
		return cursor.NewBase("product_nested_loops", func() (*rowcodec.Row, error) {
			return nil, qerrors.EncodingError("product_NestedLoops requires table row types", nil)
		})
	}

	out, openErr := openNow(op.outer.Cursor(a, ec))
	var in cursor.Cursor
	var currentOuter *rowcodec.Row

	return cursor.NewBase("product_nested_loops", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		for {
			if in != nil {
				row, err := in.Next()
				if err != nil {
					return nil, err
				}
				if row != nil {
					return combineRows(op.leftDef, op.rightDef, op.combinedDef, currentOuter, row)
				}
				if err := in.Close(); err != nil {
					return nil, err
				}
				in = nil
			}
			row, err := out.Next()
			if err != nil || row == nil {
				return row, err
			}
			currentOuter = row
			ec.Bindings().Set(op.bindingPos, row.HKey())
			in = op.inner.Cursor(a, ec)
			if err := in.Open(); err != nil {
				return nil, err
			}
		}
	})
}

// mapNestedLoops evaluates inner once per outer row and emits inner's
// rows directly without combining columns: the shape a *_Nested lookup
// operator already produces a fully formed row, so map, unlike product,
// does not widen it further. outerJoinExprs are bound at bindingPos+1.. so
// inner can reference outer column values, not just its hkey.
type mapNestedLoops struct {
	outer, inner     Operator
	outerJoinRowType rowtype.RowType
	outerJoinExprs   []Expression
	bindingPos       int
}

// MapNestedLoops evaluates inner once per outer row, binding the outer
// row's hkey at bindingPos and each outerJoinExprs result at
// bindingPos+1+i, and emits inner's rows unchanged.
func MapNestedLoops(outer, inner Operator, outerJoinRowType rowtype.RowType, outerJoinExprs []Expression, bindingPos int) Operator {
	return &mapNestedLoops{outer: outer, inner: inner, outerJoinRowType: outerJoinRowType, outerJoinExprs: outerJoinExprs, bindingPos: bindingPos}
}

func (op *mapNestedLoops) OutputType() rowtype.RowType { return op.inner.OutputType() }

func (op *mapNestedLoops) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	out, openErr := openNow(op.outer.Cursor(a, ec))
	var in cursor.Cursor

	return cursor.NewBase("map_nested_loops", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		for {
			if in != nil {
				row, err := in.Next()
				if err != nil {
					return nil, err
				}
				if row != nil {
					return row, nil
				}
				if err := in.Close(); err != nil {
					return nil, err
				}
				in = nil
			}
			row, err := out.Next()
			if err != nil || row == nil {
				return row, err
			}
			ec.Bindings().Set(op.bindingPos, row.HKey())
			for i, expr := range op.outerJoinExprs {
				v, err := expr(row, op.outerJoinRowType)
				if err != nil {
					return nil, err
				}
				ec.Bindings().Set(op.bindingPos+1+i, v)
			}
			in = op.inner.Cursor(a, ec)
			if err := in.Open(); err != nil {
				return nil, err
			}
		}
	})
}

// hashJoin supplements the operator surface with an equality-driven join
// strategy for callers that already know the join predicate is an
// equality, grounded on the teacher's pkg/execution/join/hash_join.go
// build/probe shape.
type hashJoin struct {
	outer, inner        Operator
	outerKey, innerKey  Expression
	joinType            JoinType
	outputType          *rowtype.FlattenedRowType
	combinedDef         *schema.RowDef
	leftDef, rightDef   *schema.RowDef
}

// HashJoin builds a hash table over inner keyed by innerKey, then probes
// it once per outer row using outerKey, combining matches. joinType
// selects whether an unmatched outer row is emitted with a null-filled
// inner side (JoinTypeLeft/JoinTypeFull).
func HashJoin(outer, inner Operator, outerKey, innerKey Expression, joinType JoinType) Operator {
	op := &hashJoin{outer: outer, inner: inner, outerKey: outerKey, innerKey: innerKey, joinType: joinType}
	ld, lerr := tableDef(outer.OutputType())
	rd, rerr := tableDef(inner.OutputType())
	if lerr == nil && rerr == nil {
		op.leftDef, op.rightDef = ld, rd
		op.outputType = rowtype.NewFlattenedRowType(outer.OutputType(), inner.OutputType(), joinType.toVariant())
		fields := append(append([]schema.FieldDef{}, ld.Fields...), rd.Fields...)
		op.combinedDef = schema.NewRowDef(op.outputType.ID(), fields)
	}
	return op
}

func (op *hashJoin) OutputType() rowtype.RowType { return op.outputType }

func (op *hashJoin) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	if op.combinedDef == nil {
		return cursor.NewBase("hash_join", func() (*rowcodec.Row, error) {
			return nil, qerrors.EncodingError("HashJoin requires table row types", nil)
		})
	}

	built := false
	buckets := make(map[primitives.HashCode][]*rowcodec.Row)
	out, openErr := openNow(op.outer.Cursor(a, ec))
	var matches []*rowcodec.Row
	matchPos := 0
	var currentOuter *rowcodec.Row

	build := func() error {
		in := op.inner.Cursor(a, ec)
		if err := in.Open(); err != nil {
			return err
		}
		defer in.Close()
		for {
			row, err := in.Next()
			if err != nil {
				return err
			}
			if row == nil {
				return nil
			}
			v, err := op.innerKey(row, op.inner.OutputType())
			if err != nil {
				return err
			}
			if v == nil {
				continue
			}
			h, err := v.Hash(nil)
			if err != nil {
				return err
			}
			buckets[h] = append(buckets[h], row)
		}
	}

	return cursor.NewBase("hash_join", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		if !built {
			if err := build(); err != nil {
				return nil, err
			}
			built = true
		}
		for {
			if matchPos < len(matches) {
				row := matches[matchPos]
				matchPos++
				return combineRows(op.leftDef, op.rightDef, op.combinedDef, currentOuter, row)
			}
			row, err := out.Next()
			if err != nil || row == nil {
				return row, err
			}
			currentOuter = row
			v, err := op.outerKey(row, op.outer.OutputType())
			if err != nil {
				return nil, err
			}
			matches, matchPos = nil, 0
			if v != nil {
				h, err := v.Hash(nil)
				if err != nil {
					return nil, err
				}
				for _, cand := range buckets[h] {
					cv, err := op.innerKey(cand, op.inner.OutputType())
					if err != nil {
						return nil, err
					}
					eq, err := v.Compare(types.Equals, cv)
					if err != nil {
						return nil, err
					}
					if eq {
						matches = append(matches, cand)
					}
				}
			}
			if len(matches) == 0 && (op.joinType == JoinTypeLeft || op.joinType == JoinTypeFull) {
				return combineRows(op.leftDef, op.rightDef, op.combinedDef, currentOuter, nil)
			}
		}
	})
}
