// Package memadapter is an in-memory reference implementation of
// adapter.StoreAdapter, grounded on the teacher's page-oriented
// heap.HeapFile/HeapPage pair but simplified to plain hkey-ordered slices
// per group, since durable paging and a real B-tree index are explicitly
// out of this module's scope.
package memadapter

import (
	"sort"
	"sync"

	"storemy/pkg/adapter"
	"storemy/pkg/cursor"
	"storemy/pkg/qerrors"
	"storemy/pkg/rowcodec"
	"storemy/pkg/rowtype"
)

// Store is an in-memory group store: each group is a slice of rows kept
// sorted by hkey, and every group is guarded by one store-wide RWMutex.
type Store struct {
	mu     sync.RWMutex
	groups map[adapter.GroupID][]*rowcodec.Row
	binds  *cursor.Bindings
}

// New returns an empty Store bound to a fresh execution context's bindings.
func New(ec *cursor.ExecutionContext) *Store {
	return &Store{groups: make(map[adapter.GroupID][]*rowcodec.Row), binds: ec.Bindings()}
}

func (s *Store) Bindings() *cursor.Bindings { return s.binds }

func hkeyLess(a, b *rowcodec.Row) bool { return a.HKey().Compare(b.HKey()) < 0 }

func (s *Store) insertSorted(group adapter.GroupID, row *rowcodec.Row) {
	rows := s.groups[group]
	i := sort.Search(len(rows), func(i int) bool { return rows[i].HKey().Compare(row.HKey()) >= 0 })
	rows = append(rows, nil)
	copy(rows[i+1:], rows[i:])
	rows[i] = row
	s.groups[group] = rows
}

func (s *Store) WriteRow(group adapter.GroupID, row *rowcodec.Row) error {
	if row.HKey() == nil {
		return qerrors.AdapterError(qerrors.EncodingError("row has no hkey attached", nil), 0)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertSorted(group, row)
	return nil
}

func (s *Store) findIndex(group adapter.GroupID, row *rowcodec.Row) int {
	rows := s.groups[group]
	for i, r := range rows {
		if r.HKey().Compare(row.HKey()) == 0 {
			return i
		}
	}
	return -1
}

func (s *Store) UpdateRow(group adapter.GroupID, old, newRow *rowcodec.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findIndex(group, old)
	if i < 0 {
		return qerrors.AdapterError(qerrors.CorruptRow("row to update not found"), 0)
	}
	rows := s.groups[group]
	rows = append(rows[:i], rows[i+1:]...)
	s.groups[group] = rows
	s.insertSorted(group, newRow)
	return nil
}

func (s *Store) DeleteRow(group adapter.GroupID, row *rowcodec.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findIndex(group, row)
	if i < 0 {
		return qerrors.AdapterError(qerrors.CorruptRow("row to delete not found"), 0)
	}
	rows := s.groups[group]
	s.groups[group] = append(rows[:i], rows[i+1:]...)
	return nil
}

// sliceSource is a RowSource over a pre-materialized slice, the memadapter
// idiom for every scan/lookup method below since the whole group already
// lives in memory.
type sliceSource struct {
	rows  []*rowcodec.Row
	pos   int
	limit adapter.Limit
}

func (s *sliceSource) Next() (*rowcodec.Row, error) {
	if s.pos >= len(s.rows) {
		return nil, nil
	}
	row := s.rows[s.pos]
	if s.limit != nil && s.limit.LimitReached(row) {
		return nil, nil
	}
	s.pos++
	return row, nil
}

func (s *sliceSource) Close() error { return nil }

func (s *Store) GroupCursor(group adapter.GroupID, hKey rowtype.HKey, deep bool, limit adapter.Limit) (adapter.RowSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.groups[group]
	if hKey == nil {
		out := make([]*rowcodec.Row, len(all))
		copy(out, all)
		return &sliceSource{rows: out, limit: limit}, nil
	}
	var out []*rowcodec.Row
	for _, r := range all {
		if deep {
			if hKey.IsPrefixOf(r.HKey()) {
				out = append(out, r)
			}
		} else if hKey.Compare(r.HKey()) == 0 {
			out = append(out, r)
		}
	}
	return &sliceSource{rows: out, limit: limit}, nil
}

func (s *Store) IndexCursor(index *rowtype.IndexRowType, r *adapter.KeyRange, reverse bool) (adapter.RowSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []*rowcodec.Row
	for _, rows := range s.groups {
		for _, row := range rows {
			if row.RowDefID() == index.TableType.RowDef.ID {
				all = append(all, row)
			}
		}
	}
	sort.Slice(all, func(i, j int) bool { return hkeyLess(all[i], all[j]) })

	if r != nil {
		filtered := all[:0:0]
		for _, row := range all {
			if r.Lo != nil {
				c := r.Lo.HKey().Compare(row.HKey())
				if c > 0 || (c == 0 && !r.LoInclusive) {
					continue
				}
			}
			if r.Hi != nil {
				c := r.Hi.HKey().Compare(row.HKey())
				if c < 0 || (c == 0 && !r.HiInclusive) {
					continue
				}
			}
			filtered = append(filtered, row)
		}
		all = filtered
	}
	if reverse {
		for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
			all[i], all[j] = all[j], all[i]
		}
	}
	return &sliceSource{rows: all}, nil
}

func (s *Store) Lookup(group adapter.GroupID, hKey rowtype.HKey, ancestorTypes []rowtype.RowType) ([]*rowcodec.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*rowcodec.Row
	for _, at := range ancestorTypes {
		for _, r := range s.groups[group] {
			if r.RowDefID() != at.ID() {
				continue
			}
			if r.HKey().IsPrefixOf(hKey) {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (s *Store) Branch(group adapter.GroupID, hKey rowtype.HKey) (adapter.RowSource, error) {
	return s.GroupCursor(group, hKey, true, adapter.NoLimit)
}
