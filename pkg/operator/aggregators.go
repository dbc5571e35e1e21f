package operator

import (
	"fmt"

	"storemy/pkg/types"
)

// Aggregator accumulates a stream of values into a single result,
// generalized from the teacher's pkg/execution/aggregation
// integer/float/boolean/string kind-specific accumulators to the
// types.Value interface.
type Aggregator interface {
	Accumulate(types.Value) error
	Finish() (types.Value, error)
}

// AggregatorFactory constructs a fresh Aggregator by name, letting
// aggregate_Partial build one accumulator per output column without a
// switch statement of its own.
type AggregatorFactory func(name string) (Aggregator, error)

// DefaultAggregatorFactory resolves "sum", "count", "min", "max", "avg".
func DefaultAggregatorFactory(name string) (Aggregator, error) {
	switch name {
	case "sum":
		return &sumAggregator{}, nil
	case "count":
		return &countAggregator{}, nil
	case "min":
		return &minMaxAggregator{keepMin: true}, nil
	case "max":
		return &minMaxAggregator{keepMin: false}, nil
	case "avg":
		return &avgAggregator{}, nil
	default:
		return nil, fmt.Errorf("operator: unknown aggregator %q", name)
	}
}

func numericAdd(a, b types.Value) (types.Value, error) {
	switch av := a.(type) {
	case types.Int64Value:
		bv, ok := b.(types.Int64Value)
		if !ok {
			return nil, fmt.Errorf("operator: cannot sum %T with %T", a, b)
		}
		return types.NewInt64Value(av.V + bv.V), nil
	case types.Float64Value:
		bv, ok := b.(types.Float64Value)
		if !ok {
			return nil, fmt.Errorf("operator: cannot sum %T with %T", a, b)
		}
		return types.NewFloat64Value(av.V + bv.V), nil
	default:
		return nil, fmt.Errorf("operator: sum aggregator does not support %T", a)
	}
}

type sumAggregator struct {
	total types.Value
}

func (s *sumAggregator) Accumulate(v types.Value) error {
	if v == nil {
		return nil
	}
	if s.total == nil {
		s.total = v
		return nil
	}
	sum, err := numericAdd(s.total, v)
	if err != nil {
		return err
	}
	s.total = sum
	return nil
}

func (s *sumAggregator) Finish() (types.Value, error) { return s.total, nil }

type countAggregator struct {
	n int64
}

func (c *countAggregator) Accumulate(v types.Value) error {
	if v != nil {
		c.n++
	}
	return nil
}

func (c *countAggregator) Finish() (types.Value, error) { return types.NewInt64Value(c.n), nil }

type minMaxAggregator struct {
	keepMin bool
	best    types.Value
}

func (m *minMaxAggregator) Accumulate(v types.Value) error {
	if v == nil {
		return nil
	}
	if m.best == nil {
		m.best = v
		return nil
	}
	pred := types.GreaterThan
	if m.keepMin {
		pred = types.LessThan
	}
	better, err := v.Compare(pred, m.best)
	if err != nil {
		return err
	}
	if better {
		m.best = v
	}
	return nil
}

func (m *minMaxAggregator) Finish() (types.Value, error) { return m.best, nil }

type avgAggregator struct {
	sum sumAggregator
	n   int64
}

func (a *avgAggregator) Accumulate(v types.Value) error {
	if v == nil {
		return nil
	}
	a.n++
	return a.sum.Accumulate(v)
}

func (a *avgAggregator) Finish() (types.Value, error) {
	if a.n == 0 {
		return nil, nil
	}
	total, err := a.sum.Finish()
	if err != nil {
		return nil, err
	}
	switch t := total.(type) {
	case types.Int64Value:
		return types.NewFloat64Value(float64(t.V) / float64(a.n)), nil
	case types.Float64Value:
		return types.NewFloat64Value(t.V / float64(a.n)), nil
	default:
		return nil, fmt.Errorf("operator: avg aggregator does not support %T", total)
	}
}
