package rowcodec

import (
	"storemy/pkg/qerrors"
	"storemy/pkg/schema"
	"storemy/pkg/types"
)

// Copy returns a deep copy of this row in its own freshly allocated
// buffer, preserving the hkey and differsFromPredecessorAtKeySegment
// annotations.
func (r *Row) Copy() (*Row, error) {
	size := r.rowEnd - r.rowStart
	buf := NewBuffer(size)
	copy(buf.bytes, r.buf.bytes[r.rowStart:r.rowEnd])

	out := NewRow()
	if _, err := out.Prepare(buf, 0); err != nil {
		return nil, err
	}
	out.hkey = r.hkey
	out.differsAt = r.differsAt
	return out, nil
}

// ProjectionCopy builds a new row over a subset of rd's fields, keeping
// only the fields flagged true in keep (indexed by rd field position,
// nullOffset added to each index before consulting keep). Every kept field must be fixed-size; a variable-size
// field in the keep set is a caller programming error, reported as an
// EncodingError, since the projection copy path never re-derives a
// variable field's payload length independently of the source row.
func (r *Row) ProjectionCopy(rd *schema.RowDef, keep []bool, nullOffset int) (*Row, error) {
	locs, err := r.locate(rd)
	if err != nil {
		return nil, err
	}

	values := make([]types.Value, rd.FieldCount())
	for i, fd := range rd.Fields {
		if i+nullOffset >= len(keep) || !keep[i+nullOffset] {
			continue
		}
		if locs[i].isNull {
			continue
		}
		if !fd.Fixed {
			return nil, qerrors.EncodingError("projection copy cannot keep a variable-size field: "+fd.Name, nil)
		}
		v, err := types.DecodeValue(fd.FieldSpec, r.buf.bytes, locs[i].offset, locs[i].width)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	buf := NewBuffer(r.rowEnd - r.rowStart + MinimumRecordLength)
	return BuildRow(buf, 0, rd, values, true)
}
