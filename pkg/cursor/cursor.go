// Package cursor implements the cursor protocol (component C6): a
// single-threaded, cooperative-pull open/next/close contract, execution
// bindings, and the root cursor guard that owns close-once semantics for
// an entire operator tree.
package cursor

import (
	"storemy/pkg/qerrors"
	"storemy/pkg/rowcodec"
)

// Cursor is the pull-based row source contract every physical operator's
// output conforms to. Next returns (nil, nil) at end of stream, matching
// this module's operator-tree convention more directly than a sentinel
// value would. Close is idempotent; Next after Close (or after end) does
// not panic and does not re-invoke the underlying reader.
type Cursor interface {
	Open() error
	Next() (*rowcodec.Row, error)
	Close() error
}

// ReadNextFunc reads the next row from an operator's underlying source,
// returning (nil, nil) at end of stream.
type ReadNextFunc func() (*rowcodec.Row, error)

// Base is the cursor every operator's Cursor() implementation builds on:
// it owns open/closed/ended state and calls the ReadNextFunc closure
// supplied by the operator once per Next, without reading ahead,
// generalizing the teacher's tuple-oriented BaseIterator to this row
// codec's Row type and END-as-nil convention.
type Base struct {
	readNext ReadNextFunc
	opened   bool
	closed   bool
	ended    bool
	name     string
}

// NewBase constructs a Base cursor around readNext. name identifies the
// owning operator in CursorClosed error details.
func NewBase(name string, readNext ReadNextFunc) *Base {
	return &Base{readNext: readNext, name: name}
}

func (b *Base) Open() error {
	if b.closed {
		return qerrors.CursorClosed(b.name + ".Open")
	}
	b.opened = true
	return nil
}

func (b *Base) Next() (*rowcodec.Row, error) {
	if b.closed {
		return nil, qerrors.CursorClosed(b.name + ".Next")
	}
	if !b.opened {
		return nil, qerrors.CursorClosed(b.name + ".Next: not opened")
	}
	if b.ended {
		return nil, nil
	}
	row, err := b.readNext()
	if err != nil {
		return nil, err
	}
	if row == nil {
		b.ended = true
	}
	return row, nil
}

func (b *Base) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	return nil
}
