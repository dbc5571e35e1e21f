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

// aggregatePartial groups consecutive input rows by their first
// groupingFieldsCount field values (input must already be ordered by
// those fields, typically by an upstream sort_Tree or an index scan),
// running one Aggregator per remaining column, grounded on the teacher's
// pkg/execution/aggregation package's group-by-adjacent-key shape.
type aggregatePartial struct {
	input               Operator
	groupingFieldsCount int
	factory             AggregatorFactory
	aggregatorNames     []string
	inDef               *schema.RowDef
	outType             rowtype.RowType
	outDef              *schema.RowDef
}

// AggregatePartial groups consecutive rows sharing their first
// groupingFieldsCount field values, applying factory(aggregatorNames[i])
// to column groupingFieldsCount+i of every row in the group.
func AggregatePartial(input Operator, groupingFieldsCount int, factory AggregatorFactory, aggregatorNames []string) Operator {
	op := &aggregatePartial{input: input, groupingFieldsCount: groupingFieldsCount, factory: factory, aggregatorNames: aggregatorNames}
	if d, err := tableDef(input.OutputType()); err == nil {
		op.inDef = d
		fields := append([]schema.FieldDef{}, d.Fields[:groupingFieldsCount]...)
		for i, name := range aggregatorNames {
			src := d.Fields[groupingFieldsCount+i]
			fields = append(fields, schema.NewFixedFieldDef(name+"_"+src.Name, src.Kind, src.MaxSize))
		}
		out := rowtype.NewTableRowType(schema.NewRowDef(d.ID+1<<20, fields))
		op.outType = out
		op.outDef = out.RowDef
	}
	return op
}

func (op *aggregatePartial) OutputType() rowtype.RowType { return op.outType }

func (op *aggregatePartial) groupKey(row *rowcodec.Row) ([]types.Value, error) {
	key := make([]types.Value, op.groupingFieldsCount)
	for i := 0; i < op.groupingFieldsCount; i++ {
		v, err := row.GetValue(op.inDef, i)
		if err != nil {
			return nil, err
		}
		key[i] = v
	}
	return key, nil
}

func sameGroup(a, b []types.Value) bool {
	for i := range a {
		switch {
		case a[i] == nil && b[i] == nil:
			continue
		case a[i] == nil || b[i] == nil:
			return false
		case !a[i].Equals(b[i]):
			return false
		}
	}
	return true
}

func (op *aggregatePartial) emit(key []types.Value, aggs []Aggregator) (*rowcodec.Row, error) {
	values := append([]types.Value{}, key...)
	for _, agg := range aggs {
		v, err := agg.Finish()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return rowcodec.BuildRow(rowcodec.NewBuffer(256), 0, op.outDef, values, true)
}

func (op *aggregatePartial) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	if op.inDef == nil {
		return cursor.NewBase("aggregate_partial", func() (*rowcodec.Row, error) {
			return nil, qerrors.EncodingError("aggregate_Partial requires a table row type input", nil)
		})
	}

	in, openErr := openNow(op.input.Cursor(a, ec))
	var currentKey []types.Value
	var aggs []Aggregator
	done := false

	newAggs := func() ([]Aggregator, error) {
		out := make([]Aggregator, len(op.aggregatorNames))
		for i, name := range op.aggregatorNames {
			agg, err := op.factory(name)
			if err != nil {
				return nil, err
			}
			out[i] = agg
		}
		return out, nil
	}

	feed := func(row *rowcodec.Row) error {
		for i, agg := range aggs {
			v, err := row.GetValue(op.inDef, op.groupingFieldsCount+i)
			if err != nil {
				return err
			}
			if err := agg.Accumulate(v); err != nil {
				return err
			}
		}
		return nil
	}

	return cursor.NewBase("aggregate_partial", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		for {
			if done {
				return nil, nil
			}
			row, err := in.Next()
			if err != nil {
				return nil, err
			}
			if row == nil {
				done = true
				if currentKey == nil {
					return nil, nil
				}
				return op.emit(currentKey, aggs)
			}
			key, err := op.groupKey(row)
			if err != nil {
				return nil, err
			}
			if currentKey == nil {
				currentKey = key
				if aggs, err = newAggs(); err != nil {
					return nil, err
				}
				if err := feed(row); err != nil {
					return nil, err
				}
				continue
			}
			if sameGroup(currentKey, key) {
				if err := feed(row); err != nil {
					return nil, err
				}
				continue
			}
			out, err := op.emit(currentKey, aggs)
			if err != nil {
				return nil, err
			}
			currentKey = key
			if aggs, err = newAggs(); err != nil {
				return nil, err
			}
			if err := feed(row); err != nil {
				return nil, err
			}
			return out, nil
		}
	})
}
