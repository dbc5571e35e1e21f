package cursor

import (
	"storemy/pkg/qlog"
	"storemy/pkg/rowcodec"
)

// rootCursor wraps the cursor returned by an operator tree's root
// operator, guaranteeing Close is invoked exactly once and that an error
// returned from Next triggers a Close before the error propagates, so a
// caller that abandons a tree on error never leaks the cursors beneath it.
// A secondary error from that Close is logged, never returned, so it does
// not mask the original failure.
type rootCursor struct {
	inner  Cursor
	execID string
	closed bool
}

// Guard wraps root as the single execution entry point for a cursor tree:
// every caller of an operator tree should open and drive this cursor, not
// the tree's root cursor directly.
func Guard(root Cursor, ec *ExecutionContext) Cursor {
	return &rootCursor{inner: root, execID: ec.ID}
}

func (g *rootCursor) Open() error {
	return g.inner.Open()
}

func (g *rootCursor) Next() (*rowcodec.Row, error) {
	row, err := g.inner.Next()
	if err != nil {
		return nil, g.closeOnError(err)
	}
	return row, nil
}

func (g *rootCursor) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	return g.inner.Close()
}

// closeOnError closes the wrapped tree and logs (without returning) any
// secondary error, then returns the original error unchanged.
func (g *rootCursor) closeOnError(original error) error {
	if err := g.Close(); err != nil {
		qlog.Get().Warn("root cursor close after error failed",
			"exec_id", g.execID, "close_error", err, "original_error", original)
	}
	return original
}
