package rowcodec

import (
	"storemy/pkg/primitives"
	"storemy/pkg/qerrors"
	"storemy/pkg/rowtype"
	"storemy/pkg/schema"
	"storemy/pkg/types"
)

// Row is a read-only view onto one record within a Buffer, established by
// Prepare or by BuildRow. hkey and differsFromPredecessorAtKeySegment are
// transient scan-time annotations, never part of the wire encoding.
type Row struct {
	buf      *Buffer
	rowStart int
	rowEnd   int

	hkey      rowtype.HKey
	differsAt int
}

// NewRow returns an empty Row ready for Prepare or BuildRow.
func NewRow() *Row {
	return &Row{differsAt: -1}
}

// Prepare interprets the record at offset within buf, validating its
// envelope, and returns true. It returns false (with a nil error) if offset
// is exactly the end of the buffer -- the natural "no more rows" signal for
// a caller walking a packed sequence of rows. Any other structural problem
// is reported as a CorruptRow error.
func (r *Row) Prepare(buf *Buffer, offset int) (bool, error) {
	if offset == buf.bufferEnd {
		return false, nil
	}
	if err := validateRow(buf, offset); err != nil {
		return false, err
	}
	r.buf = buf
	r.rowStart = offset
	r.rowEnd = offset + int(primitives.GetInt32(buf.bytes, offset+offsetLengthA))
	return true, nil
}

func validateRow(buf *Buffer, offset int) error {
	if offset < 0 || offset+MinimumRecordLength > buf.bufferEnd {
		return qerrors.CorruptRow("invalid offset")
	}
	recordLength := int(primitives.GetInt32(buf.bytes, offset+offsetLengthA))
	if recordLength < MinimumRecordLength || recordLength > MaximumRecordLength || recordLength+offset > buf.bufferEnd {
		return qerrors.CorruptRow("invalid record length")
	}
	if primitives.GetChar(buf.bytes, offset+offsetSignatureA) != signatureA {
		return qerrors.CorruptRow("invalid leading signature")
	}
	trailingLength := int(primitives.GetInt32(buf.bytes, offset+recordLength-trailerLengthB))
	if trailingLength != recordLength {
		return qerrors.CorruptRow("trailing record length mismatch")
	}
	if primitives.GetChar(buf.bytes, offset+recordLength-trailerSignatureB) != signatureB {
		return qerrors.CorruptRow("invalid trailing signature")
	}
	return nil
}

// Next advances to the record immediately following this one and prepares
// it. It returns false once the buffer is exhausted, or when the length
// slot at this row's end is zero: the unused, zero-filled space a Buffer
// keeps after the last row built into it.
func (r *Row) Next() (bool, error) {
	if r.rowEnd >= r.buf.bufferEnd {
		return false, nil
	}
	if r.rowEnd+4 <= r.buf.bufferEnd && primitives.GetInt32(r.buf.bytes, r.rowEnd+offsetLengthA) == 0 {
		return false, nil
	}
	return r.Prepare(r.buf, r.rowEnd)
}

// FieldCount returns the number of fields declared in this row's header.
func (r *Row) FieldCount() int {
	return int(primitives.GetUint16(r.buf.bytes, r.rowStart+offsetFieldCount))
}

// RowDefID returns the rowDefId this row was built against.
func (r *Row) RowDefID() int32 {
	return primitives.GetInt32(r.buf.bytes, r.rowStart+offsetRowDefID)
}

// RowSize returns the total encoded size of this row in bytes, envelope
// included.
func (r *Row) RowSize() int { return r.rowEnd - r.rowStart }

func (r *Row) nullMapByte(i int) byte {
	return r.buf.bytes[r.rowStart+offsetNullMap+i]
}

// IsNull reports whether field i is null.
func (r *Row) IsNull(i int) bool {
	return (r.nullMapByte(i/8) & (1 << uint(i%8))) != 0
}

// fieldLocation describes where field i's payload bytes live, or that it
// is null.
type fieldLocation struct {
	isNull bool
	offset int
	width  int
}

// locate scans this row's fixed fields, offset table, and variable payload
// region once, returning each field's location. Fixed and variable-offset
// slots are interleaved in schema order immediately after the null map,
// exactly as they were written by BuildRow; a null fixed field contributes
// no bytes at all, so later fields shift left around it.
func (r *Row) locate(rd *schema.RowDef) ([]fieldLocation, error) {
	fieldCount := r.FieldCount()
	if fieldCount != rd.FieldCount() {
		return nil, qerrors.CorruptRow("row field count does not match RowDef")
	}

	locs := make([]fieldLocation, fieldCount)
	offset := r.rowStart + offsetNullMap + rd.NullBitmapSize()

	type pendingVar struct {
		fieldIndex int
		cumulative int
	}
	var slots []pendingVar
	vmax, prevCumulative := 0, 0

	for i, fd := range rd.Fields {
		isNull := r.IsNull(i)
		if fd.Fixed {
			locs[i] = fieldLocation{isNull: isNull}
			if !isNull {
				locs[i].offset = offset
				locs[i].width = fd.MaxSize
				offset += fd.MaxSize
			}
			continue
		}

		vmax += fd.MaxSize
		locs[i] = fieldLocation{isNull: isNull}
		if isNull {
			continue
		}
		width := primitives.VarWidth(uint64(vmax))
		cumulative := int(primitives.GetUint(r.buf.bytes, offset, width))
		offset += width
		slots = append(slots, pendingVar{fieldIndex: i, cumulative: cumulative})
	}

	payloadStart := offset
	for _, s := range slots {
		locs[s.fieldIndex].offset = payloadStart + prevCumulative
		locs[s.fieldIndex].width = s.cumulative - prevCumulative
		prevCumulative = s.cumulative
	}
	return locs, nil
}

// FieldLocation returns the (offset, width) of field i's payload within
// the row's buffer, per the wire format's fieldLocation contract. Width is
// 0 for a null field.
func (r *Row) FieldLocation(rd *schema.RowDef, i int) (offset, width int, err error) {
	locs, err := r.locate(rd)
	if err != nil {
		return 0, 0, err
	}
	if i < 0 || i >= len(locs) {
		return 0, 0, qerrors.CorruptRow("field index out of range")
	}
	loc := locs[i]
	if loc.isNull {
		return 0, 0, nil
	}
	return loc.offset, loc.width, nil
}

// GetValue decodes field i into a types.Value, or returns nil if the field
// is null.
func (r *Row) GetValue(rd *schema.RowDef, i int) (types.Value, error) {
	locs, err := r.locate(rd)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(locs) {
		return nil, qerrors.CorruptRow("field index out of range")
	}
	loc := locs[i]
	if loc.isNull {
		return nil, nil
	}
	return types.DecodeValue(rd.Fields[i].FieldSpec, r.buf.bytes, loc.offset, loc.width)
}

// HKey returns this row's hierarchical key annotation, set by a scan
// operator; nil if none has been attached.
func (r *Row) HKey() rowtype.HKey { return r.hkey }

// SetHKey attaches an hkey annotation to this row.
func (r *Row) SetHKey(hk rowtype.HKey) { r.hkey = hk }

// DiffersFromPredecessorAtKeySegment returns the hkey segment index at
// which this row's hkey first differed from its predecessor's in an
// hkey-ordered scan, or -1 if not set.
func (r *Row) DiffersFromPredecessorAtKeySegment() int { return r.differsAt }

// SetDiffersFromPredecessorAtKeySegment sets the annotation above.
func (r *Row) SetDiffersFromPredecessorAtKeySegment(seg int) { r.differsAt = seg }
