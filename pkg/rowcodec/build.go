package rowcodec

import (
	"storemy/pkg/primitives"
	"storemy/pkg/qerrors"
	"storemy/pkg/schema"
	"storemy/pkg/types"
)

// BuildRow encodes values against rd into buf starting at offset, following
// the two-pass construction algorithm the wire format requires: fixed
// fields and variable-length offset-table slots are written interleaved in
// schema order immediately after the null map (a null fixed field consumes
// no bytes), then all variable payloads follow in schema order.
//
// If growBuffer is true and buf is owned, encoding failures caused by the
// row not fitting are retried against a doubled buffer until it fits or
// the row would exceed MaximumRecordLength.
func BuildRow(buf *Buffer, offset int, rd *schema.RowDef, values []types.Value, growBuffer bool) (*Row, error) {
	if len(values) > rd.FieldCount() {
		return nil, qerrors.EncodingError("too many values for RowDef", nil)
	}
	for {
		row, err := buildRowOnce(buf, offset, rd, values)
		if err == nil {
			return row, nil
		}
		if !growBuffer || !qerrors.Is(err, qerrors.CodeBufferImmutable) {
			return nil, err
		}
		if grErr := buf.grow(); grErr != nil {
			return nil, grErr
		}
	}
}

func buildRowOnce(buf *Buffer, offset int, rd *schema.RowDef, values []types.Value) (*Row, error) {
	fieldCount := rd.FieldCount()

	need := func(end int) error {
		if end > buf.bufferEnd {
			return qerrors.BufferImmutableError("row does not fit in buffer")
		}
		return nil
	}

	if err := need(offset + offsetNullMap); err != nil {
		return nil, err
	}
	primitives.PutChar(buf.bytes, offset+offsetSignatureA, signatureA)
	primitives.PutInt32(buf.bytes, offset+offsetRowDefID, rd.ID)
	primitives.PutUint16(buf.bytes, offset+offsetFieldCount, uint16(fieldCount))

	cursor := offset + offsetNullMap
	nullMapSize := rd.NullBitmapSize()
	if err := need(cursor + nullMapSize); err != nil {
		return nil, err
	}
	for i := 0; i < nullMapSize; i++ {
		var b byte
		for j := i * 8; j < i*8+8 && j < fieldCount; j++ {
			if j >= len(values) || values[j] == nil {
				b |= 1 << uint(j-i*8)
			}
		}
		buf.bytes[cursor+i] = b
	}
	cursor += nullMapSize

	vmax, vlen := 0, 0

	for i := 0; i < fieldCount; i++ {
		fd := rd.Fields[i]
		var v types.Value
		if i < len(values) {
			v = values[i]
		}
		if fd.Fixed {
			if v == nil {
				continue
			}
			if err := need(cursor + fd.MaxSize); err != nil {
				return nil, err
			}
			n, err := v.EncodeInto(fd.FieldSpec, buf.bytes, cursor)
			if err != nil {
				return nil, err
			}
			cursor += n
			continue
		}

		vmax += fd.MaxSize
		if v == nil {
			continue
		}
		fieldWidth, err := v.WidthFromValue(fd.FieldSpec)
		if err != nil {
			return nil, err
		}
		vlen += fieldWidth
		width := primitives.VarWidth(uint64(vmax))
		if err := need(cursor + width); err != nil {
			return nil, err
		}
		if width > 0 {
			primitives.PutUint(buf.bytes, cursor, width, uint64(vlen))
		}
		cursor += width
	}

	for i := 0; i < fieldCount; i++ {
		fd := rd.Fields[i]
		var v types.Value
		if i < len(values) {
			v = values[i]
		}
		if v == nil || fd.Fixed {
			continue
		}
		n, err := v.EncodeInto(fd.FieldSpec, buf.bytes, cursor)
		if err != nil {
			return nil, err
		}
		cursor += n
	}

	if err := need(cursor + 6); err != nil {
		return nil, err
	}
	primitives.PutChar(buf.bytes, cursor, signatureB)
	cursor += 6
	length := cursor - offset
	if length > MaximumRecordLength {
		return nil, qerrors.EncodingError("row exceeds MaximumRecordLength", nil)
	}
	primitives.PutInt32(buf.bytes, offset+offsetLengthA, int32(length))
	primitives.PutInt32(buf.bytes, cursor-trailerLengthB, int32(length))

	row := NewRow()
	row.buf = buf
	row.rowStart = offset
	row.rowEnd = cursor
	return row, nil
}
