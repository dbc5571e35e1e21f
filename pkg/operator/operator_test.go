package operator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
	"storemy/pkg/schema"
	"storemy/pkg/types"
)

func mustBuildRow(t *testing.T, def *schema.RowDef, values []types.Value, hkey rowtype.HKey) *rowcodec.Row {
	t.Helper()
	row, err := rowcodec.BuildRow(rowcodec.NewBuffer(256), 0, def, values, true)
	require.NoError(t, err)
	row.SetHKey(hkey)
	return row
}

func hkOf(n int64) rowtype.HKey {
	return rowtype.HKey{rowtype.Ordinal(0), rowtype.SegmentValue(types.NewInt64Value(n))}
}

func drainAll(t *testing.T, op Operator) []*rowcodec.Row {
	t.Helper()
	c := op.Cursor(nil, cursor.NewExecutionContext())
	require.NoError(t, c.Open())
	var out []*rowcodec.Row
	for {
		row, err := c.Next()
		require.NoError(t, err)
		if row == nil {
			break
		}
		out = append(out, row)
	}
	require.NoError(t, c.Close())
	return out
}

// trackingCursor/trackingOperator wrap a plain Operator to observe whether
// its cursor was actually closed, so LimitDefault's close-on-limit-reached
// behavior can be verified without inspecting private cursor state.
type trackingCursor struct {
	inner  cursor.Cursor
	closed *bool
}

func (t *trackingCursor) Open() error                    { return t.inner.Open() }
func (t *trackingCursor) Next() (*rowcodec.Row, error)    { return t.inner.Next() }
func (t *trackingCursor) Close() error                    { *t.closed = true; return t.inner.Close() }

type trackingOperator struct {
	inner  Operator
	closed *bool
}

func (t *trackingOperator) OutputType() rowtype.RowType { return t.inner.OutputType() }
func (t *trackingOperator) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	return &trackingCursor{inner: t.inner.Cursor(a, ec), closed: t.closed}
}

func valueDef(id int32) *schema.RowDef {
	return schema.NewRowDef(id, []schema.FieldDef{schema.NewFixedFieldDef("v", types.KindInt64, 8)})
}

func valueRows(t *testing.T, def *schema.RowDef, vs []int64) []*rowcodec.Row {
	rows := make([]*rowcodec.Row, len(vs))
	for i, v := range vs {
		rows[i] = mustBuildRow(t, def, []types.Value{types.NewInt64Value(v)}, hkOf(int64(i)))
	}
	return rows
}

func TestLimitDefaultClosesInputOnNthRow(t *testing.T) {
	def := valueDef(200)
	rows := valueRows(t, def, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	rowType := rowtype.NewTableRowType(def)

	closed := false
	scan := &trackingOperator{inner: ValuesScanDefault(rows, rowType), closed: &closed}
	limited := LimitDefault(scan, 3)

	out := drainAll(t, limited)
	require.Len(t, out, 3)
	require.True(t, closed)
}

func TestLimitDefaultPassesThroughFewerRowsThanLimit(t *testing.T) {
	def := valueDef(201)
	rows := valueRows(t, def, []int64{1, 2})
	rowType := rowtype.NewTableRowType(def)

	out := drainAll(t, LimitDefault(ValuesScanDefault(rows, rowType), 5))
	require.Len(t, out, 2)
}

func TestSortInsertionLimitedKeepsTopNDescending(t *testing.T) {
	def := valueDef(202)
	rows := valueRows(t, def, []int64{5, 3, 9, 1, 7})
	rowType := rowtype.NewTableRowType(def)

	ordering := NewOrdering().Append(func(row *rowcodec.Row, rt rowtype.RowType) (types.Value, error) {
		return row.GetValue(def, 0)
	}, false)

	out := drainAll(t, SortInsertionLimited(ValuesScanDefault(rows, rowType), rowType, ordering, 2))
	require.Len(t, out, 2)
	v0, err := out[0].GetValue(def, 0)
	require.NoError(t, err)
	v1, err := out[1].GetValue(def, 0)
	require.NoError(t, err)
	require.Equal(t, int64(9), v0.(types.Int64Value).V)
	require.Equal(t, int64(7), v1.(types.Int64Value).V)
}

func TestSortInsertionLimitedRejectsNegativeLimit(t *testing.T) {
	def := valueDef(203)
	rows := valueRows(t, def, []int64{1})
	rowType := rowtype.NewTableRowType(def)
	ordering := NewOrdering().Append(func(row *rowcodec.Row, rt rowtype.RowType) (types.Value, error) {
		return row.GetValue(def, 0)
	}, true)

	c := SortInsertionLimited(ValuesScanDefault(rows, rowType), rowType, ordering, -1).Cursor(nil, cursor.NewExecutionContext())
	require.NoError(t, c.Open())
	_, err := c.Next()
	require.Error(t, err)
}

func regionDef(id int32) *schema.RowDef {
	return schema.NewRowDef(id, []schema.FieldDef{
		schema.NewVariableFieldDef("region", types.KindString, 8, types.CharsetUTF8),
		schema.NewFixedFieldDef("amount", types.KindInt64, 8),
	})
}

func TestAggregatePartialSumsConsecutiveGroups(t *testing.T) {
	def := regionDef(210)
	rowType := rowtype.NewTableRowType(def)
	rows := []*rowcodec.Row{
		mustBuildRow(t, def, []types.Value{types.NewStringValue("E"), types.NewInt64Value(10)}, hkOf(0)),
		mustBuildRow(t, def, []types.Value{types.NewStringValue("E"), types.NewInt64Value(20)}, hkOf(1)),
		mustBuildRow(t, def, []types.Value{types.NewStringValue("W"), types.NewInt64Value(5)}, hkOf(2)),
	}

	agg := AggregatePartial(ValuesScanDefault(rows, rowType), 1, DefaultAggregatorFactory, []string{"sum"})
	out := drainAll(t, agg)
	require.Len(t, out, 2)

	outDef := agg.OutputType().(*rowtype.TableRowType).RowDef
	region0, err := out[0].GetValue(outDef, 0)
	require.NoError(t, err)
	sum0, err := out[0].GetValue(outDef, 1)
	require.NoError(t, err)
	require.Equal(t, "E", region0.(types.StringValue).V)
	require.Equal(t, int64(30), sum0.(types.Int64Value).V)

	region1, err := out[1].GetValue(outDef, 0)
	require.NoError(t, err)
	sum1, err := out[1].GetValue(outDef, 1)
	require.NoError(t, err)
	require.Equal(t, "W", region1.(types.StringValue).V)
	require.Equal(t, int64(5), sum1.(types.Int64Value).V)
}

func TestAggregatePartialRejectsNonTableInput(t *testing.T) {
	nonTable := &rowtype.FlattenedRowType{}
	agg := AggregatePartial(ValuesScanDefault(nil, nonTable), 1, DefaultAggregatorFactory, []string{"sum"})
	require.Nil(t, agg.OutputType())

	c := agg.Cursor(nil, cursor.NewExecutionContext())
	require.NoError(t, c.Open())
	_, err := c.Next()
	require.Error(t, err)
}

func TestCountDefaultEmitsOnePerMaximalRun(t *testing.T) {
	defA := valueDef(220)
	defB := valueDef(221)
	rtA := rowtype.NewTableRowType(defA)

	// A, A, B, A: two runs of A (length 2, then length 1), split by B.
	rows := []*rowcodec.Row{
		mustBuildRow(t, defA, []types.Value{types.NewInt64Value(1)}, hkOf(0)),
		mustBuildRow(t, defA, []types.Value{types.NewInt64Value(2)}, hkOf(1)),
		mustBuildRow(t, defB, []types.Value{types.NewInt64Value(3)}, hkOf(2)),
		mustBuildRow(t, defA, []types.Value{types.NewInt64Value(4)}, hkOf(3)),
	}

	out := drainAll(t, CountDefault(ValuesScanDefault(rows, rtA), rtA))
	require.Len(t, out, 2)
	v0, err := out[0].GetValue(countRowDef, 0)
	require.NoError(t, err)
	v1, err := out[1].GetValue(countRowDef, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), v0.(types.Int64Value).V)
	require.Equal(t, int64(1), v1.(types.Int64Value).V)
}

func TestCountDefaultRunEndingAtStreamEnd(t *testing.T) {
	defA := valueDef(222)
	rtA := rowtype.NewTableRowType(defA)

	rows := []*rowcodec.Row{
		mustBuildRow(t, defA, []types.Value{types.NewInt64Value(1)}, hkOf(0)),
		mustBuildRow(t, defA, []types.Value{types.NewInt64Value(2)}, hkOf(1)),
		mustBuildRow(t, defA, []types.Value{types.NewInt64Value(3)}, hkOf(2)),
	}

	out := drainAll(t, CountDefault(ValuesScanDefault(rows, rtA), rtA))
	require.Len(t, out, 1)
	v, err := out[0].GetValue(countRowDef, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), v.(types.Int64Value).V)
}

func TestHashJoinCombinesMatchingKeys(t *testing.T) {
	leftDef := schema.NewRowDef(230, []schema.FieldDef{
		schema.NewFixedFieldDef("id", types.KindInt64, 8),
		schema.NewVariableFieldDef("name", types.KindString, 8, types.CharsetUTF8),
	})
	rightDef := schema.NewRowDef(231, []schema.FieldDef{
		schema.NewFixedFieldDef("customer_id", types.KindInt64, 8),
		schema.NewFixedFieldDef("amount", types.KindInt64, 8),
	})
	leftType := rowtype.NewTableRowType(leftDef)
	rightType := rowtype.NewTableRowType(rightDef)

	left := []*rowcodec.Row{
		mustBuildRow(t, leftDef, []types.Value{types.NewInt64Value(1), types.NewStringValue("alice")}, hkOf(0)),
		mustBuildRow(t, leftDef, []types.Value{types.NewInt64Value(2), types.NewStringValue("bob")}, hkOf(1)),
	}
	right := []*rowcodec.Row{
		mustBuildRow(t, rightDef, []types.Value{types.NewInt64Value(1), types.NewInt64Value(100)}, hkOf(2)),
		mustBuildRow(t, rightDef, []types.Value{types.NewInt64Value(2), types.NewInt64Value(200)}, hkOf(3)),
	}

	leftKey := func(row *rowcodec.Row, rt rowtype.RowType) (types.Value, error) { return row.GetValue(leftDef, 0) }
	rightKey := func(row *rowcodec.Row, rt rowtype.RowType) (types.Value, error) { return row.GetValue(rightDef, 0) }

	join := HashJoin(ValuesScanDefault(left, leftType), ValuesScanDefault(right, rightType), leftKey, rightKey, JoinTypeInner)
	out := drainAll(t, join)
	require.Len(t, out, 2)

	combinedDef := join.(*hashJoin).combinedDef
	name0, err := out[0].GetValue(combinedDef, 1)
	require.NoError(t, err)
	amount0, err := out[0].GetValue(combinedDef, 3)
	require.NoError(t, err)
	require.Equal(t, "alice", name0.(types.StringValue).V)
	require.Equal(t, int64(100), amount0.(types.Int64Value).V)
}

func TestHashJoinLeftEmitsNullFilledRowForUnmatchedOuter(t *testing.T) {
	leftDef := schema.NewRowDef(232, []schema.FieldDef{schema.NewFixedFieldDef("id", types.KindInt64, 8)})
	rightDef := schema.NewRowDef(233, []schema.FieldDef{schema.NewFixedFieldDef("id", types.KindInt64, 8)})
	leftType := rowtype.NewTableRowType(leftDef)
	rightType := rowtype.NewTableRowType(rightDef)

	left := []*rowcodec.Row{mustBuildRow(t, leftDef, []types.Value{types.NewInt64Value(9)}, hkOf(0))}
	var right []*rowcodec.Row

	key := func(row *rowcodec.Row, rt rowtype.RowType) (types.Value, error) { return row.GetValue(leftDef, 0) }
	rkey := func(row *rowcodec.Row, rt rowtype.RowType) (types.Value, error) { return row.GetValue(rightDef, 0) }

	join := HashJoin(ValuesScanDefault(left, leftType), ValuesScanDefault(right, rightType), key, rkey, JoinTypeLeft)
	out := drainAll(t, join)
	require.Len(t, out, 1)
	require.True(t, out[0].IsNull(1))
}

func boolDef(id int32) *schema.RowDef {
	return schema.NewRowDef(id, []schema.FieldDef{schema.NewFixedFieldDef("keep", types.KindBool, 1)})
}

func TestSelectHKeyOrderedDropsDescendantsOfRejectedRow(t *testing.T) {
	parentDef := boolDef(240)
	childDef := valueDef(241)
	parentType := rowtype.NewTableRowType(parentDef)

	parentHKey1 := rowtype.HKey{rowtype.Ordinal(0), rowtype.SegmentValue(types.NewInt64Value(1))}
	childHKey1 := rowtype.HKey{rowtype.Ordinal(0), rowtype.SegmentValue(types.NewInt64Value(1)), rowtype.Ordinal(1), rowtype.SegmentValue(types.NewInt64Value(10))}
	parentHKey2 := rowtype.HKey{rowtype.Ordinal(0), rowtype.SegmentValue(types.NewInt64Value(2))}
	childHKey2 := rowtype.HKey{rowtype.Ordinal(0), rowtype.SegmentValue(types.NewInt64Value(2)), rowtype.Ordinal(1), rowtype.SegmentValue(types.NewInt64Value(20))}

	p1 := mustBuildRow(t, parentDef, []types.Value{types.NewBoolValue(false)}, parentHKey1)
	c1 := mustBuildRow(t, childDef, []types.Value{types.NewInt64Value(10)}, childHKey1)
	p2 := mustBuildRow(t, parentDef, []types.Value{types.NewBoolValue(true)}, parentHKey2)
	c2 := mustBuildRow(t, childDef, []types.Value{types.NewInt64Value(20)}, childHKey2)

	p1.SetDiffersFromPredecessorAtKeySegment(0)
	c1.SetDiffersFromPredecessorAtKeySegment(2)
	p2.SetDiffersFromPredecessorAtKeySegment(0)
	c2.SetDiffersFromPredecessorAtKeySegment(2)

	rows := []*rowcodec.Row{p1, c1, p2, c2}
	predicate := func(row *rowcodec.Row, rt rowtype.RowType) (types.Value, error) { return row.GetValue(parentDef, 0) }

	sel := SelectHKeyOrdered(ValuesScanDefault(rows, parentType), parentType, predicate)
	out := drainAll(t, sel)

	require.Len(t, out, 2)
	require.Equal(t, int32(240), out[0].RowDefID())
	require.Equal(t, int32(241), out[1].RowDefID())
	v, err := out[1].GetValue(childDef, 0)
	require.NoError(t, err)
	require.Equal(t, int64(20), v.(types.Int64Value).V)
}

func flattenFixture(id1, id2 int32) (*schema.RowDef, *schema.RowDef, rowtype.HKey, rowtype.HKey) {
	parentDef := schema.NewRowDef(id1, []schema.FieldDef{schema.NewFixedFieldDef("id", types.KindInt64, 8)})
	childDef := schema.NewRowDef(id2, []schema.FieldDef{schema.NewFixedFieldDef("amount", types.KindInt64, 8)})
	parentHKey := rowtype.HKey{rowtype.Ordinal(0), rowtype.SegmentValue(types.NewInt64Value(1))}
	childHKey := append(append(rowtype.HKey{}, parentHKey...), rowtype.Ordinal(1), rowtype.SegmentValue(types.NewInt64Value(10)))
	return parentDef, childDef, parentHKey, childHKey
}

func TestFlattenHKeyOrderedLeftJoinEmitsParentAloneWithNullChild(t *testing.T) {
	parentDef, childDef, parentHKey, _ := flattenFixture(250, 251)
	parentType := rowtype.NewTableRowType(parentDef)
	childType := rowtype.NewTableRowType(childDef)

	p := mustBuildRow(t, parentDef, []types.Value{types.NewInt64Value(1)}, parentHKey)
	rows := []*rowcodec.Row{p}

	flatten := FlattenHKeyOrdered(ValuesScanDefault(rows, parentType), parentType, childType, JoinTypeLeft, NewFlattenOptionSet())
	out := drainAll(t, flatten)
	require.Len(t, out, 1)
	require.True(t, out[0].IsNull(1))
	require.Nil(t, out[0].HKey())
}

func TestFlattenHKeyOrderedLeftJoinShortensHKeyWhenFlagSet(t *testing.T) {
	parentDef, childDef, parentHKey, _ := flattenFixture(252, 253)
	parentType := rowtype.NewTableRowType(parentDef)
	childType := rowtype.NewTableRowType(childDef)

	p := mustBuildRow(t, parentDef, []types.Value{types.NewInt64Value(1)}, parentHKey)
	rows := []*rowcodec.Row{p}

	flatten := FlattenHKeyOrdered(ValuesScanDefault(rows, parentType), parentType, childType, JoinTypeLeft, NewFlattenOptionSet(LeftJoinShortensHKey))
	out := drainAll(t, flatten)
	require.Len(t, out, 1)
	require.Equal(t, 0, out[0].HKey().Compare(parentHKey))
}

func TestFlattenHKeyOrderedInnerNeverEmitsChildlessRowEvenWithKeepParent(t *testing.T) {
	parentDef, childDef, parentHKey, _ := flattenFixture(254, 255)
	parentType := rowtype.NewTableRowType(parentDef)
	childType := rowtype.NewTableRowType(childDef)

	p := mustBuildRow(t, parentDef, []types.Value{types.NewInt64Value(1)}, parentHKey)
	rows := []*rowcodec.Row{p}

	flatten := FlattenHKeyOrdered(ValuesScanDefault(rows, parentType), parentType, childType, JoinTypeInner, NewFlattenOptionSet(KeepParent))
	out := drainAll(t, flatten)
	require.Len(t, out, 1)
	require.Equal(t, parentDef.ID, out[0].RowDefID())
}

func TestFlattenHKeyOrderedRightJoinEmitsChildAloneWithNullParent(t *testing.T) {
	parentDef, childDef, _, childHKey := flattenFixture(256, 257)
	parentType := rowtype.NewTableRowType(parentDef)
	childType := rowtype.NewTableRowType(childDef)

	c := mustBuildRow(t, childDef, []types.Value{types.NewInt64Value(10)}, childHKey)
	rows := []*rowcodec.Row{c}

	flatten := FlattenHKeyOrdered(ValuesScanDefault(rows, parentType), parentType, childType, JoinTypeRight, NewFlattenOptionSet())
	out := drainAll(t, flatten)
	require.Len(t, out, 1)
	require.True(t, out[0].IsNull(0))
	ft := flatten.(*flattenHKeyOrdered)
	v, err := out[0].GetValue(ft.combinedDef, 1)
	require.NoError(t, err)
	require.Equal(t, int64(10), v.(types.Int64Value).V)
	require.Equal(t, 0, out[0].HKey().Compare(childHKey))
}

func TestFlattenHKeyOrderedInnerJoinDropsOrphanChild(t *testing.T) {
	parentDef, childDef, _, childHKey := flattenFixture(258, 259)
	parentType := rowtype.NewTableRowType(parentDef)
	childType := rowtype.NewTableRowType(childDef)

	c := mustBuildRow(t, childDef, []types.Value{types.NewInt64Value(10)}, childHKey)
	rows := []*rowcodec.Row{c}

	flatten := FlattenHKeyOrdered(ValuesScanDefault(rows, parentType), parentType, childType, JoinTypeInner, NewFlattenOptionSet())
	out := drainAll(t, flatten)
	require.Len(t, out, 0)
}

func TestFlattenHKeyOrderedFullJoinCombinesMatchedAndOrphans(t *testing.T) {
	parentDef := schema.NewRowDef(260, []schema.FieldDef{schema.NewFixedFieldDef("id", types.KindInt64, 8)})
	childDef := schema.NewRowDef(261, []schema.FieldDef{schema.NewFixedFieldDef("amount", types.KindInt64, 8)})
	parentType := rowtype.NewTableRowType(parentDef)
	childType := rowtype.NewTableRowType(childDef)

	orphanChildHKey := rowtype.HKey{rowtype.Ordinal(0), rowtype.SegmentValue(types.NewInt64Value(0)), rowtype.Ordinal(1), rowtype.SegmentValue(types.NewInt64Value(30))}
	p1HKey := rowtype.HKey{rowtype.Ordinal(0), rowtype.SegmentValue(types.NewInt64Value(1))}
	c1HKey := append(append(rowtype.HKey{}, p1HKey...), rowtype.Ordinal(1), rowtype.SegmentValue(types.NewInt64Value(10)))
	p2HKey := rowtype.HKey{rowtype.Ordinal(0), rowtype.SegmentValue(types.NewInt64Value(2))}

	orphanChild := mustBuildRow(t, childDef, []types.Value{types.NewInt64Value(30)}, orphanChildHKey)
	p1 := mustBuildRow(t, parentDef, []types.Value{types.NewInt64Value(1)}, p1HKey)
	c1 := mustBuildRow(t, childDef, []types.Value{types.NewInt64Value(10)}, c1HKey)
	p2 := mustBuildRow(t, parentDef, []types.Value{types.NewInt64Value(2)}, p2HKey)

	// orphanChild arrives before any parent (never matched), p1/c1 match
	// normally, and p2 is left childless at end of stream: FULL emits all
	// three -- child-alone, matched pair, and parent-alone.
	rows := []*rowcodec.Row{orphanChild, p1, c1, p2}
	flatten := FlattenHKeyOrdered(ValuesScanDefault(rows, parentType), parentType, childType, JoinTypeFull, NewFlattenOptionSet())
	out := drainAll(t, flatten)
	require.Len(t, out, 3)

	ft := flatten.(*flattenHKeyOrdered)
	require.True(t, out[0].IsNull(0))
	v0, err := out[0].GetValue(ft.combinedDef, 1)
	require.NoError(t, err)
	require.Equal(t, int64(30), v0.(types.Int64Value).V)

	require.False(t, out[1].IsNull(0))
	require.False(t, out[1].IsNull(1))

	require.True(t, out[2].IsNull(1))
}

func TestFlattenHKeyOrderedKeepChildAlsoEmitsRawChildRow(t *testing.T) {
	parentDef, childDef, parentHKey, childHKey := flattenFixture(262, 263)
	parentType := rowtype.NewTableRowType(parentDef)
	childType := rowtype.NewTableRowType(childDef)

	p := mustBuildRow(t, parentDef, []types.Value{types.NewInt64Value(1)}, parentHKey)
	c := mustBuildRow(t, childDef, []types.Value{types.NewInt64Value(10)}, childHKey)
	rows := []*rowcodec.Row{p, c}

	flatten := FlattenHKeyOrdered(ValuesScanDefault(rows, parentType), parentType, childType, JoinTypeInner, NewFlattenOptionSet(KeepChild))
	out := drainAll(t, flatten)
	require.Len(t, out, 2)
	require.NotEqual(t, childDef.ID, out[0].RowDefID())
	require.Equal(t, childDef.ID, out[1].RowDefID())
}

func TestSortTreeBypassesRowsOfOtherTypesAfterSortedBatch(t *testing.T) {
	sortDef := valueDef(270)
	otherDef := valueDef(271)
	sortType := rowtype.NewTableRowType(sortDef)

	other1 := mustBuildRow(t, otherDef, []types.Value{types.NewInt64Value(99)}, hkOf(0))
	a := mustBuildRow(t, sortDef, []types.Value{types.NewInt64Value(3)}, hkOf(1))
	b := mustBuildRow(t, sortDef, []types.Value{types.NewInt64Value(1)}, hkOf(2))
	other2 := mustBuildRow(t, otherDef, []types.Value{types.NewInt64Value(98)}, hkOf(3))

	ordering := NewOrdering().Append(func(row *rowcodec.Row, rt rowtype.RowType) (types.Value, error) {
		return row.GetValue(sortDef, 0)
	}, true)

	rows := []*rowcodec.Row{other1, a, b, other2}
	out := drainAll(t, SortTree(ValuesScanDefault(rows, sortType), sortType, ordering))
	require.Len(t, out, 4)
	v0, err := out[0].GetValue(sortDef, 0)
	require.NoError(t, err)
	v1, err := out[1].GetValue(sortDef, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), v0.(types.Int64Value).V)
	require.Equal(t, int64(3), v1.(types.Int64Value).V)
	require.Equal(t, otherDef.ID, out[2].RowDefID())
	require.Equal(t, otherDef.ID, out[3].RowDefID())
	bv2, err := out[2].GetValue(otherDef, 0)
	require.NoError(t, err)
	require.Equal(t, int64(99), bv2.(types.Int64Value).V)
}

func TestProjectDefaultPassesThroughRowsOfOtherTypes(t *testing.T) {
	inDef := valueDef(280)
	otherDef := valueDef(281)
	inType := rowtype.NewTableRowType(inDef)
	outDef := schema.NewRowDef(282, []schema.FieldDef{schema.NewFixedFieldDef("doubled", types.KindInt64, 8)})
	outType := rowtype.NewTableRowType(outDef)

	match := mustBuildRow(t, inDef, []types.Value{types.NewInt64Value(3)}, hkOf(0))
	other := mustBuildRow(t, otherDef, []types.Value{types.NewInt64Value(99)}, hkOf(1))

	expressions := []Expression{func(row *rowcodec.Row, rt rowtype.RowType) (types.Value, error) {
		v, err := row.GetValue(inDef, 0)
		if err != nil {
			return nil, err
		}
		return types.NewInt64Value(2 * v.(types.Int64Value).V), nil
	}}

	rows := []*rowcodec.Row{match, other}
	proj := ProjectDefault(ValuesScanDefault(rows, inType), outType, expressions)
	out := drainAll(t, proj)
	require.Len(t, out, 2)

	v0, err := out[0].GetValue(outDef, 0)
	require.NoError(t, err)
	require.Equal(t, int64(6), v0.(types.Int64Value).V)
	require.Equal(t, otherDef.ID, out[1].RowDefID())
}

func TestSortInsertionLimitedBypassesRowsOfOtherTypes(t *testing.T) {
	sortDef := valueDef(272)
	otherDef := valueDef(273)
	sortType := rowtype.NewTableRowType(sortDef)

	other := mustBuildRow(t, otherDef, []types.Value{types.NewInt64Value(50)}, hkOf(0))
	a := mustBuildRow(t, sortDef, []types.Value{types.NewInt64Value(9)}, hkOf(1))
	b := mustBuildRow(t, sortDef, []types.Value{types.NewInt64Value(1)}, hkOf(2))

	ordering := NewOrdering().Append(func(row *rowcodec.Row, rt rowtype.RowType) (types.Value, error) {
		return row.GetValue(sortDef, 0)
	}, false)

	rows := []*rowcodec.Row{other, a, b}
	out := drainAll(t, SortInsertionLimited(ValuesScanDefault(rows, sortType), sortType, ordering, 1))
	require.Len(t, out, 2)
	v0, err := out[0].GetValue(sortDef, 0)
	require.NoError(t, err)
	require.Equal(t, int64(9), v0.(types.Int64Value).V)
	require.Equal(t, otherDef.ID, out[1].RowDefID())
}
