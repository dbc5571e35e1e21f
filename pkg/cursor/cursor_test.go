package cursor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"storemy/pkg/qerrors"
	"storemy/pkg/rowcodec"
)

func TestBaseCursorClosedAfterClose(t *testing.T) {
	b := NewBase("test", func() (*rowcodec.Row, error) { return nil, nil })
	require.NoError(t, b.Open())
	require.NoError(t, b.Close())
	require.NoError(t, b.Close()) // idempotent

	_, err := b.Next()
	require.True(t, qerrors.Is(err, qerrors.CodeCursorClosed))
}

func TestBaseCursorEndIsIdempotent(t *testing.T) {
	calls := 0
	b := NewBase("test", func() (*rowcodec.Row, error) {
		calls++
		return nil, nil
	})
	require.NoError(t, b.Open())
	r1, err := b.Next()
	require.NoError(t, err)
	require.Nil(t, r1)
	r2, err := b.Next()
	require.NoError(t, err)
	require.Nil(t, r2)
	require.Equal(t, 1, calls, "readNext should not be called again after end")
}

func TestBindingsMissingReturnsError(t *testing.T) {
	ec := NewExecutionContext()
	_, err := ec.Bindings().Get(3)
	require.True(t, qerrors.Is(err, qerrors.CodeBindingMissing))

	ec.Bindings().Set(3, "value")
	v, err := ec.Bindings().Get(3)
	require.NoError(t, err)
	require.Equal(t, "value", v)
}

func TestGuardClosesOnceOnNextError(t *testing.T) {
	closeCalls := 0
	inner := &failingCursor{closeCalls: &closeCalls}
	ec := NewExecutionContext()
	g := Guard(inner, ec)
	require.NoError(t, g.Open())

	_, err := g.Next()
	require.Error(t, err)
	require.Equal(t, 1, closeCalls)

	require.NoError(t, g.Close())
	require.Equal(t, 1, closeCalls, "guard close after error must not double-close")
}

type failingCursor struct {
	closeCalls *int
}

func (f *failingCursor) Open() error { return nil }
func (f *failingCursor) Next() (*rowcodec.Row, error) {
	return nil, errors.New("boom")
}
func (f *failingCursor) Close() error {
	*f.closeCalls++
	return nil
}
