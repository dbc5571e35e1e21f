package cursor

import (
	"sync"

	"github.com/google/uuid"
	"storemy/pkg/qerrors"
)

// Bindings is the small integer-indexed side channel an outer operator uses
// to pass values (typically hkey column values, or a binding position for a
// nested lookup) down to an inner operator, scoped to one execution
// context. Backed by a sparse map since most binding positions in a real
// plan are never used.
type Bindings struct {
	mu     sync.RWMutex
	values map[int]any
}

func newBindings() *Bindings {
	return &Bindings{values: make(map[int]any)}
}

// Get returns the value bound at pos, or a BindingMissing error if unset.
func (b *Bindings) Get(pos int) (any, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.values[pos]
	if !ok {
		return nil, qerrors.BindingMissing(pos)
	}
	return v, nil
}

// Set binds a value at pos, overwriting any prior value there.
func (b *Bindings) Set(pos int, v any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[pos] = v
}

// ExecutionContext is shared by every cursor in one operator tree: its
// Bindings instance and a stable identifier used to correlate log lines
// across the tree's lifetime.
type ExecutionContext struct {
	ID       string
	bindings *Bindings
}

// NewExecutionContext creates a fresh execution context with its own
// Bindings and a v7 UUID identifier.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{
		ID:       uuid.Must(uuid.NewV7()).String(),
		bindings: newBindings(),
	}
}

// Bindings returns this context's binding table.
func (ec *ExecutionContext) Bindings() *Bindings { return ec.bindings }
