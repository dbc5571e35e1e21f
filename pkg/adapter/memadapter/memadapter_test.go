package memadapter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/qerrors"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
	"storemy/pkg/schema"
	"storemy/pkg/types"
)

func testDef() *schema.RowDef {
	return schema.NewRowDef(1, []schema.FieldDef{
		schema.NewFixedFieldDef("id", types.KindInt64, 8),
		schema.NewVariableFieldDef("name", types.KindString, 16, types.CharsetUTF8),
	})
}

func buildRow(t *testing.T, def *schema.RowDef, id int64, name string, hkey rowtype.HKey) *rowcodec.Row {
	t.Helper()
	row, err := rowcodec.BuildRow(rowcodec.NewBuffer(128), 0, def, []types.Value{types.NewInt64Value(id), types.NewStringValue(name)}, true)
	require.NoError(t, err)
	row.SetHKey(hkey)
	return row
}

func hk(id int64) rowtype.HKey {
	return rowtype.HKey{rowtype.Ordinal(0), rowtype.SegmentValue(types.NewInt64Value(id))}
}

func TestWriteRowRejectsMissingHKey(t *testing.T) {
	def := testDef()
	s := New(cursor.NewExecutionContext())
	row, err := rowcodec.BuildRow(rowcodec.NewBuffer(64), 0, def, []types.Value{types.NewInt64Value(1), types.NewStringValue("a")}, true)
	require.NoError(t, err)

	err = s.WriteRow(adapter.GroupID(1), row)
	require.True(t, qerrors.Is(err, qerrors.CodeAdapterError))
}

func TestGroupCursorReturnsRowsInHKeyOrder(t *testing.T) {
	def := testDef()
	s := New(cursor.NewExecutionContext())
	group := adapter.GroupID(1)

	require.NoError(t, s.WriteRow(group, buildRow(t, def, 3, "c", hk(3))))
	require.NoError(t, s.WriteRow(group, buildRow(t, def, 1, "a", hk(1))))
	require.NoError(t, s.WriteRow(group, buildRow(t, def, 2, "b", hk(2))))

	src, err := s.GroupCursor(group, nil, true, adapter.NoLimit)
	require.NoError(t, err)

	var ids []int64
	for {
		row, err := src.Next()
		require.NoError(t, err)
		if row == nil {
			break
		}
		v, err := row.GetValue(def, 0)
		require.NoError(t, err)
		ids = append(ids, v.(types.Int64Value).V)
	}
	require.Equal(t, []int64{1, 2, 3}, ids)
}

func TestUpdateRowReplacesInPlace(t *testing.T) {
	def := testDef()
	s := New(cursor.NewExecutionContext())
	group := adapter.GroupID(1)

	old := buildRow(t, def, 1, "a", hk(1))
	require.NoError(t, s.WriteRow(group, old))

	newRow := buildRow(t, def, 1, "updated", hk(1))
	require.NoError(t, s.UpdateRow(group, old, newRow))

	src, err := s.GroupCursor(group, nil, true, adapter.NoLimit)
	require.NoError(t, err)
	row, err := src.Next()
	require.NoError(t, err)
	require.NotNil(t, row)
	v, err := row.GetValue(def, 1)
	require.NoError(t, err)
	require.Equal(t, "updated", v.(types.StringValue).V)
}

func TestUpdateRowMissingReturnsAdapterError(t *testing.T) {
	def := testDef()
	s := New(cursor.NewExecutionContext())
	group := adapter.GroupID(1)

	ghost := buildRow(t, def, 9, "x", hk(9))
	err := s.UpdateRow(group, ghost, ghost)
	require.True(t, qerrors.Is(err, qerrors.CodeAdapterError))
}

func TestDeleteRowRemovesExactMatch(t *testing.T) {
	def := testDef()
	s := New(cursor.NewExecutionContext())
	group := adapter.GroupID(1)

	row := buildRow(t, def, 1, "a", hk(1))
	require.NoError(t, s.WriteRow(group, row))
	require.NoError(t, s.DeleteRow(group, row))

	src, err := s.GroupCursor(group, nil, true, adapter.NoLimit)
	require.NoError(t, err)
	got, err := src.Next()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLookupFetchesAncestorByPrefix(t *testing.T) {
	def := testDef()
	s := New(cursor.NewExecutionContext())
	group := adapter.GroupID(1)
	tableType := rowtype.NewTableRowType(def)

	parent := buildRow(t, def, 1, "parent", hk(1))
	require.NoError(t, s.WriteRow(group, parent))

	childHKey := rowtype.HKey{rowtype.Ordinal(0), rowtype.SegmentValue(types.NewInt64Value(1)), rowtype.Ordinal(1), rowtype.SegmentValue(types.NewInt64Value(5))}
	got, err := s.Lookup(group, childHKey, []rowtype.RowType{tableType})
	require.NoError(t, err)
	require.Len(t, got, 1)
	v, err := got[0].GetValue(def, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), v.(types.Int64Value).V)
}

func TestBranchScansSubtree(t *testing.T) {
	def := testDef()
	s := New(cursor.NewExecutionContext())
	group := adapter.GroupID(1)

	require.NoError(t, s.WriteRow(group, buildRow(t, def, 1, "p", hk(1))))
	child := rowtype.HKey{rowtype.Ordinal(0), rowtype.SegmentValue(types.NewInt64Value(1)), rowtype.Ordinal(1), rowtype.SegmentValue(types.NewInt64Value(2))}
	require.NoError(t, s.WriteRow(group, buildRow(t, def, 2, "c", child)))
	require.NoError(t, s.WriteRow(group, buildRow(t, def, 2, "other", hk(2))))

	src, err := s.Branch(group, hk(1))
	require.NoError(t, err)
	var names []string
	for {
		row, err := src.Next()
		require.NoError(t, err)
		if row == nil {
			break
		}
		v, err := row.GetValue(def, 1)
		require.NoError(t, err)
		names = append(names, v.(types.StringValue).V)
	}
	require.Equal(t, []string{"p", "c"}, names)
}

func TestIndexCursorFiltersByRangeAndReverses(t *testing.T) {
	def := testDef()
	s := New(cursor.NewExecutionContext())
	group := adapter.GroupID(1)
	tableType := rowtype.NewTableRowType(def)
	indexType := rowtype.NewIndexRowType(50, tableType)

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, s.WriteRow(group, buildRow(t, def, i, "n", hk(i))))
	}

	lo, _ := rowcodec.BuildRow(rowcodec.NewBuffer(64), 0, def, []types.Value{types.NewInt64Value(2), types.NewStringValue("n")}, true)
	lo.SetHKey(hk(2))
	hi, _ := rowcodec.BuildRow(rowcodec.NewBuffer(64), 0, def, []types.Value{types.NewInt64Value(4), types.NewStringValue("n")}, true)
	hi.SetHKey(hk(4))
	r := &adapter.KeyRange{Lo: lo, Hi: hi, LoInclusive: true, HiInclusive: true}

	src, err := s.IndexCursor(indexType, r, true)
	require.NoError(t, err)
	var ids []int64
	for {
		row, err := src.Next()
		require.NoError(t, err)
		if row == nil {
			break
		}
		v, err := row.GetValue(def, 0)
		require.NoError(t, err)
		ids = append(ids, v.(types.Int64Value).V)
	}
	require.Equal(t, []int64{4, 3, 2}, ids)
}
