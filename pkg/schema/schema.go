// Package schema defines the row schema types (component C3): FieldDef,
// the per-column metadata a row's fields are encoded and decoded against,
// and RowDef, the ordered field list identified by a wire rowDefId.
package schema

import "storemy/pkg/types"

// FieldDef is one column's metadata: its name plus the types.FieldSpec the
// field type system needs to encode/decode it.
type FieldDef struct {
	Name string
	types.FieldSpec
}

// NewFixedFieldDef builds a fixed-width FieldDef.
func NewFixedFieldDef(name string, kind types.Kind, size int) FieldDef {
	return FieldDef{Name: name, FieldSpec: types.FieldSpec{Kind: kind, Fixed: true, MaxSize: size}}
}

// NewVariableFieldDef builds a variable-width FieldDef.
func NewVariableFieldDef(name string, kind types.Kind, maxSize int, charset types.Charset) FieldDef {
	return FieldDef{Name: name, FieldSpec: types.FieldSpec{Kind: kind, Fixed: false, MaxSize: maxSize, Charset: charset}}
}

// NewDecimalFieldDef builds a fixed-width DECIMAL(p,scale) FieldDef.
func NewDecimalFieldDef(name string, scale int32) FieldDef {
	return FieldDef{Name: name, FieldSpec: types.FieldSpec{Kind: types.KindDecimal, Fixed: true, MaxSize: 8, Scale: scale}}
}

// RowDef is the ordered field list a rowDefId in the wire format resolves
// to. Fixed-field byte offsets are precomputed once here since they never
// depend on row data.
type RowDef struct {
	ID     int32
	Fields []FieldDef

	fixedOffsets []int // byte offset of each fixed field within the fixed region
	fixedSize    int    // total size of the fixed-field region
}

// NewRowDef builds a RowDef, precomputing fixed-field offsets.
func NewRowDef(id int32, fields []FieldDef) *RowDef {
	rd := &RowDef{ID: id, Fields: fields, fixedOffsets: make([]int, len(fields))}
	offset := 0
	for i, f := range fields {
		if f.Fixed {
			rd.fixedOffsets[i] = offset
			offset += f.MaxSize
		} else {
			rd.fixedOffsets[i] = -1
		}
	}
	rd.fixedSize = offset
	return rd
}

// FieldCount returns the number of fields in this RowDef.
func (rd *RowDef) FieldCount() int { return len(rd.Fields) }

// FixedFields returns the ordinal positions of fixed-size fields.
func (rd *RowDef) FixedFields() []int {
	var out []int
	for i, f := range rd.Fields {
		if f.Fixed {
			out = append(out, i)
		}
	}
	return out
}

// VariableFields returns the ordinal positions of variable-size fields.
func (rd *RowDef) VariableFields() []int {
	var out []int
	for i, f := range rd.Fields {
		if !f.Fixed {
			out = append(out, i)
		}
	}
	return out
}

// NullBitmapSize returns ceil(FieldCount/8), the number of bytes the null
// bitmap occupies.
func (rd *RowDef) NullBitmapSize() int {
	return (len(rd.Fields) + 7) / 8
}

// FixedFieldOffset returns the byte offset of field i within the fixed
// region, or -1 if field i is variable-size.
func (rd *RowDef) FixedFieldOffset(i int) int {
	return rd.fixedOffsets[i]
}

// FixedRegionSize returns the total size in bytes of the fixed-field region.
func (rd *RowDef) FixedRegionSize() int { return rd.fixedSize }
