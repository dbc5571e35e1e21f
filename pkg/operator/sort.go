package operator

import (
	"sort"

	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/qerrors"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
)

// sortTree materializes input fully, sorts by ordering, then streams the
// result -- grounded on the teacher's sort operator materializing to a
// slice and calling sort.Slice, generalized to Ordering's multi-key
// comparator. Rows whose type isn't sortType bypass the sort entirely and
// are streamed after the sorted batch, in their original arrival order.
type sortTree struct {
	input    Operator
	sortType rowtype.RowType
	ordering *Ordering
}

// SortTree sorts input's full output by ordering.
func SortTree(input Operator, sortType rowtype.RowType, ordering *Ordering) Operator {
	return &sortTree{input: input, sortType: sortType, ordering: ordering}
}

func (op *sortTree) OutputType() rowtype.RowType { return op.input.OutputType() }

func (op *sortTree) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	in, openErr := openNow(op.input.Cursor(a, ec))
	var rows []*rowcodec.Row
	var bypassed []*rowcodec.Row
	var sortErr error
	sorted := false
	pos := 0
	bypassPos := 0

	return cursor.NewBase("sort_tree", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		if !sorted {
			for {
				row, err := in.Next()
				if err != nil {
					return nil, err
				}
				if row == nil {
					break
				}
				if !rowTypeMatches(op.sortType, row) {
					bypassed = append(bypassed, row)
					continue
				}
				rows = append(rows, row)
			}
			sort.SliceStable(rows, func(i, j int) bool {
				if sortErr != nil {
					return false
				}
				c, err := op.ordering.compare(op.sortType, rows[i], rows[j])
				if err != nil {
					sortErr = err
				}
				return c < 0
			})
			if sortErr != nil {
				return nil, sortErr
			}
			sorted = true
		}
		if pos < len(rows) {
			row := rows[pos]
			pos++
			return row, nil
		}
		if bypassPos < len(bypassed) {
			row := bypassed[bypassPos]
			bypassPos++
			return row, nil
		}
		return nil, nil
	})
}

// sortInsertionLimited keeps only the least limit rows by ordering,
// grounded on the teacher's top-N insertion-sort idiom: each new row is
// inserted into a bounded slice in order, and any row that would sort
// past the limit-th position is discarded immediately instead of being
// materialized. Preferred over sortTree when limit is much smaller than
// the input size. Rows whose type isn't sortType bypass the limit
// entirely and are streamed after the kept batch, in arrival order.
type sortInsertionLimited struct {
	input    Operator
	sortType rowtype.RowType
	ordering *Ordering
	limit    int
}

// SortInsertionLimited keeps the least limit rows of input by ordering.
func SortInsertionLimited(input Operator, sortType rowtype.RowType, ordering *Ordering, limit int) Operator {
	return &sortInsertionLimited{input: input, sortType: sortType, ordering: ordering, limit: limit}
}

func (op *sortInsertionLimited) OutputType() rowtype.RowType { return op.input.OutputType() }

func (op *sortInsertionLimited) Cursor(a adapter.StoreAdapter, ec *cursor.ExecutionContext) cursor.Cursor {
	in, openErr := openNow(op.input.Cursor(a, ec))
	var kept []*rowcodec.Row
	var bypassed []*rowcodec.Row
	built := false
	pos := 0
	bypassPos := 0

	return cursor.NewBase("sort_insertion_limited", func() (*rowcodec.Row, error) {
		if openErr != nil {
			return nil, openErr
		}
		if !built {
			if op.limit < 0 {
				return nil, qerrors.EncodingError("sort_InsertionLimited requires a non-negative limit", nil)
			}
			for {
				row, err := in.Next()
				if err != nil {
					return nil, err
				}
				if row == nil {
					break
				}
				if !rowTypeMatches(op.sortType, row) {
					bypassed = append(bypassed, row)
					continue
				}
				i := sort.Search(len(kept), func(i int) bool {
					c, cerr := op.ordering.compare(op.sortType, kept[i], row)
					if cerr != nil {
						return false
					}
					return c > 0
				})
				if i >= op.limit {
					continue
				}
				kept = append(kept, nil)
				copy(kept[i+1:], kept[i:])
				kept[i] = row
				if len(kept) > op.limit {
					kept = kept[:op.limit]
				}
			}
			built = true
		}
		if pos < len(kept) {
			row := kept[pos]
			pos++
			return row, nil
		}
		if bypassPos < len(bypassed) {
			row := bypassed[bypassPos]
			bypassPos++
			return row, nil
		}
		return nil, nil
	})
}
