package main

import (
	"fmt"

	"storemy/pkg/adapter"
	"storemy/pkg/adapter/memadapter"
	"storemy/pkg/cursor"
	"storemy/pkg/operator"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
	"storemy/pkg/schema"
	"storemy/pkg/types"
)

// scenario is one of the six canned end-to-end demonstrations.
type scenario struct {
	name string
	desc string
	run  func() error
}

func scenarios() []scenario {
	return []scenario{
		{"S1", "codec round-trip of two rows", runS1},
		{"S2", "group scan + flatten inner join", runS2},
		{"S3", "index scan + ancestor lookup nested", runS3},
		{"S4", "aggregate_Partial with grouping", runS4},
		{"S5", "sort_InsertionLimited bounded top-2 desc", runS5},
		{"S6", "limit_Default closes its input", runS6},
	}
}

func customerID(v int64) types.Value { return types.NewInt64Value(v) }

func customerHKey(id int64) rowtype.HKey {
	return rowtype.HKey{rowtype.Ordinal(0), rowtype.SegmentValue(customerID(id))}
}

func orderHKey(customer, order int64) rowtype.HKey {
	return rowtype.HKey{
		rowtype.Ordinal(0), rowtype.SegmentValue(customerID(customer)),
		rowtype.Ordinal(1), rowtype.SegmentValue(customerID(order)),
	}
}

// S1 -- codec of two rows: schema {a:int32, b:varchar(16)}, rows (1,"x")
// and (2,null), packed into one buffer and walked by preparing each row
// at the previous row's end.
func runS1() error {
	def := schema.NewRowDef(1, []schema.FieldDef{
		schema.NewFixedFieldDef("a", types.KindInt32, 4),
		schema.NewVariableFieldDef("b", types.KindString, 16, types.CharsetUTF8),
	})

	buf := rowcodec.NewBuffer(4096)
	r1, err := rowcodec.BuildRow(buf, 0, def, []types.Value{types.NewInt32Value(1), types.NewStringValue("x")}, true)
	if err != nil {
		return fmt.Errorf("build row 1: %w", err)
	}
	_, err = rowcodec.BuildRow(buf, r1.RowSize(), def, []types.Value{types.NewInt32Value(2), nil}, true)
	if err != nil {
		return fmt.Errorf("build row 2: %w", err)
	}

	walker := rowcodec.NewRow()
	offset := 0
	var got []int32
	for i := 0; i < 2; i++ {
		more, err := walker.Prepare(buf, offset)
		if err != nil {
			return fmt.Errorf("prepare at %d: %w", offset, err)
		}
		if !more {
			return fmt.Errorf("expected a second row at offset %d", offset)
		}
		wantNull := i == 1
		if walker.IsNull(1) != wantNull {
			return fmt.Errorf("row %d: isNull(1) = %v, want %v", i, walker.IsNull(1), wantNull)
		}
		v, err := walker.GetValue(def, 0)
		if err != nil {
			return fmt.Errorf("row %d field 0: %w", i, err)
		}
		iv, ok := v.(types.Int32Value)
		if !ok {
			return fmt.Errorf("row %d field 0 is %T, want Int32Value", i, v)
		}
		got = append(got, iv.V)
		offset += walker.RowSize()
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		return fmt.Errorf("field 0 values = %v, want [1 2]", got)
	}
	fmt.Println("  field0 values in order:", got)
	return nil
}

// buildStore seeds a two-level Customer/Order group: (C:1), (O:1,1),
// (O:1,2), (C:2), matching S2's fixture.
func buildStore(ec *cursor.ExecutionContext) (*memadapter.Store, adapter.GroupID, *rowtype.TableRowType, *rowtype.TableRowType) {
	customerDef := schema.NewRowDef(10, []schema.FieldDef{
		schema.NewFixedFieldDef("id", types.KindInt64, 8),
		schema.NewVariableFieldDef("name", types.KindString, 32, types.CharsetUTF8),
	})
	orderDef := schema.NewRowDef(11, []schema.FieldDef{
		schema.NewFixedFieldDef("customer_id", types.KindInt64, 8),
		schema.NewFixedFieldDef("order_id", types.KindInt64, 8),
		schema.NewFixedFieldDef("amount", types.KindInt64, 8),
	})
	customerType := rowtype.NewTableRowType(customerDef)
	orderType := rowtype.NewTableRowType(orderDef)

	store := memadapter.New(ec)
	group := adapter.GroupID(1)

	mustWrite := func(row *rowcodec.Row, err error) {
		if err != nil {
			panic(err)
		}
		if err := store.WriteRow(group, row); err != nil {
			panic(err)
		}
	}

	c1, _ := rowcodec.BuildRow(rowcodec.NewBuffer(128), 0, customerDef, []types.Value{customerID(1), types.NewStringValue("alice")}, true)
	c1.SetHKey(customerHKey(1))
	mustWrite(c1, nil)

	o11, _ := rowcodec.BuildRow(rowcodec.NewBuffer(128), 0, orderDef, []types.Value{customerID(1), customerID(1), customerID(100)}, true)
	o11.SetHKey(orderHKey(1, 1))
	mustWrite(o11, nil)

	o12, _ := rowcodec.BuildRow(rowcodec.NewBuffer(128), 0, orderDef, []types.Value{customerID(1), customerID(2), customerID(200)}, true)
	o12.SetHKey(orderHKey(1, 2))
	mustWrite(o12, nil)

	c2, _ := rowcodec.BuildRow(rowcodec.NewBuffer(128), 0, customerDef, []types.Value{customerID(2), types.NewStringValue("bob")}, true)
	c2.SetHKey(customerHKey(2))
	mustWrite(c2, nil)

	return store, group, customerType, orderType
}

// S2 -- group scan + flatten_HKeyOrdered inner join over Customer/Order.
func runS2() error {
	ec := cursor.NewExecutionContext()
	store, group, customerType, orderType := buildStore(ec)

	scan := operator.GroupScanDefault(group, adapter.NoLimit, customerType)
	flatten := operator.FlattenHKeyOrdered(scan, customerType, orderType, operator.JoinTypeInner, operator.NewFlattenOptionSet())

	rows, err := drain(flatten, store, ec)
	if err != nil {
		return err
	}
	if len(rows) != 2 {
		return fmt.Errorf("got %d flattened rows, want 2", len(rows))
	}
	combinedDef := schema.NewRowDef(rows[0].RowDefID(), append(append([]schema.FieldDef{}, customerType.RowDef.Fields...), orderType.RowDef.Fields...))
	for _, row := range rows {
		name, _ := row.GetValue(combinedDef, 1)
		amount, _ := row.GetValue(combinedDef, 4)
		fmt.Printf("  customer=%v order_amount=%v\n", name, amount)
	}
	return nil
}

// S3 -- index scan of Order rows over the half-open range from order
// (1,1) to order (1,2), joined via map_NestedLoops to
// ancestor_lookup_Nested fetching each hit's Customer. The bound rows
// carry amounts 100 and 200, but memadapter's IndexCursor compares the
// bounds' hkeys, not the amount field.
func runS3() error {
	ec := cursor.NewExecutionContext()
	store, group, customerType, orderType := buildStore(ec)

	indexType := rowtype.NewIndexRowType(20, orderType)
	lo, _ := rowcodec.BuildRow(rowcodec.NewBuffer(64), 0, orderType.RowDef, []types.Value{nil, nil, customerID(100)}, true)
	hi, _ := rowcodec.BuildRow(rowcodec.NewBuffer(64), 0, orderType.RowDef, []types.Value{nil, nil, customerID(200)}, true)
	lo.SetHKey(orderHKey(1, 1))
	hi.SetHKey(orderHKey(1, 2))
	r := &adapter.KeyRange{Lo: lo, Hi: hi, LoInclusive: true, HiInclusive: false}

	indexScan := operator.IndexScanDefault(indexType, false, r, nil)
	lookup := operator.AncestorLookupNested(group, customerType, []rowtype.RowType{customerType}, 0)
	plan := operator.MapNestedLoops(indexScan, lookup, indexType, nil, 0)

	rows, err := drain(plan, store, ec)
	if err != nil {
		return err
	}
	if len(rows) != 1 {
		return fmt.Errorf("got %d customer rows, want 1", len(rows))
	}
	name, _ := rows[0].GetValue(customerType.RowDef, 1)
	fmt.Println("  matched customer:", name)
	return nil
}

// S4 -- aggregate_Partial(input sorted on region, 1, sum, ["s"]) over
// (E,10),(E,20),(W,5) -> (E,30),(W,5).
func runS4() error {
	regionDef := schema.NewRowDef(30, []schema.FieldDef{
		schema.NewVariableFieldDef("region", types.KindString, 4, types.CharsetUTF8),
		schema.NewFixedFieldDef("amount", types.KindInt64, 8),
	})
	regionType := rowtype.NewTableRowType(regionDef)

	rows := mustBuildRows(regionDef, [][]types.Value{
		{types.NewStringValue("E"), customerID(10)},
		{types.NewStringValue("E"), customerID(20)},
		{types.NewStringValue("W"), customerID(5)},
	})

	scan := operator.ValuesScanDefault(rows, regionType)
	agg := operator.AggregatePartial(scan, 1, operator.DefaultAggregatorFactory, []string{"sum"})

	ec := cursor.NewExecutionContext()
	out, err := drain(agg, memadapter.New(ec), ec)
	if err != nil {
		return err
	}
	outDef := schema.NewRowDef(out[0].RowDefID(), []schema.FieldDef{regionDef.Fields[0], schema.NewFixedFieldDef("sum_amount", types.KindInt64, 8)})
	for _, row := range out {
		region, _ := row.GetValue(outDef, 0)
		sum, _ := row.GetValue(outDef, 1)
		fmt.Printf("  region=%v sum=%v\n", region, sum)
	}
	return nil
}

// S5 -- sort_InsertionLimited(desc(v), 2) over 5,3,9,1,7 -> 9,7.
func runS5() error {
	valueDef := schema.NewRowDef(40, []schema.FieldDef{schema.NewFixedFieldDef("v", types.KindInt64, 8)})
	valueType := rowtype.NewTableRowType(valueDef)

	rows := mustBuildRows(valueDef, [][]types.Value{
		{customerID(5)}, {customerID(3)}, {customerID(9)}, {customerID(1)}, {customerID(7)},
	})

	scan := operator.ValuesScanDefault(rows, valueType)
	ordering := operator.NewOrdering().Append(func(row *rowcodec.Row, rt rowtype.RowType) (types.Value, error) {
		return row.GetValue(valueDef, 0)
	}, false)
	top2 := operator.SortInsertionLimited(scan, valueType, ordering, 2)

	ec := cursor.NewExecutionContext()
	out, err := drain(top2, memadapter.New(ec), ec)
	if err != nil {
		return err
	}
	if len(out) != 2 {
		return fmt.Errorf("got %d rows, want 2", len(out))
	}
	var got []int64
	for _, row := range out {
		v, _ := row.GetValue(valueDef, 0)
		got = append(got, v.(types.Int64Value).V)
	}
	if got[0] != 9 || got[1] != 7 {
		return fmt.Errorf("top-2 = %v, want [9 7]", got)
	}
	fmt.Println("  top-2:", got)
	return nil
}

// closeTrackingOperator wraps an Operator's cursor to record whether Close
// was called, letting runS6 verify limit_Default's early-close contract.
type closeTrackingOperator struct {
	operator.Operator
	closed *bool
}

func (op closeTrackingOperator) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	return &closeTrackingCursor{Cursor: op.Operator.Cursor(a, ec), closed: op.closed}
}

type closeTrackingCursor struct {
	cursor.Cursor
	closed *bool
}

func (c *closeTrackingCursor) Close() error {
	*c.closed = true
	return c.Cursor.Close()
}

// S6 -- limit_Default(valuesScan(v1..v10), 3): exactly 3 rows emerge and
// the underlying scan is closed no later than the 3rd next.
func runS6() error {
	valueDef := schema.NewRowDef(50, []schema.FieldDef{schema.NewFixedFieldDef("v", types.KindInt64, 8)})
	valueType := rowtype.NewTableRowType(valueDef)

	values := make([][]types.Value, 10)
	for i := range values {
		values[i] = []types.Value{customerID(int64(i + 1))}
	}
	rows := mustBuildRows(valueDef, values)

	closed := false
	scan := closeTrackingOperator{Operator: operator.ValuesScanDefault(rows, valueType), closed: &closed}
	limited := operator.LimitDefault(scan, 3)

	ec := cursor.NewExecutionContext()
	c := cursor.Guard(limited.Cursor(memadapter.New(ec), ec), ec)
	if err := c.Open(); err != nil {
		return err
	}
	defer c.Close()

	n := 0
	for {
		row, err := c.Next()
		if err != nil {
			return err
		}
		if row == nil {
			break
		}
		n++
	}
	if n != 3 {
		return fmt.Errorf("got %d rows, want 3", n)
	}
	if !closed {
		return fmt.Errorf("input scan was not closed")
	}
	fmt.Println("  rows emitted:", n, "input closed:", closed)
	return nil
}

func mustBuildRows(def *schema.RowDef, values [][]types.Value) []*rowcodec.Row {
	rows := make([]*rowcodec.Row, len(values))
	for i, vs := range values {
		row, err := rowcodec.BuildRow(rowcodec.NewBuffer(128), 0, def, vs, true)
		if err != nil {
			panic(err)
		}
		row.SetHKey(rowtype.HKey{rowtype.Ordinal(0), rowtype.SegmentValue(types.NewInt64Value(int64(i)))})
		rows[i] = row
	}
	return rows
}

func drain(op operator.Operator, a adapter.StoreAdapter, ec *cursor.ExecutionContext) ([]*rowcodec.Row, error) {
	c := cursor.Guard(op.Cursor(a, ec), ec)
	if err := c.Open(); err != nil {
		return nil, err
	}
	defer c.Close()
	var out []*rowcodec.Row
	for {
		row, err := c.Next()
		if err != nil {
			return nil, err
		}
		if row == nil {
			return out, nil
		}
		out = append(out, row)
	}
}
