// Package types is the field type system (component C2): a tagged-variant
// Value over the scalar kinds a row field can hold, and the encode/decode
// half of the binary row codec's per-field payload.
package types

import "storemy/pkg/primitives"

// FieldSpec is the minimal per-field metadata a Value needs to size and
// encode itself: kind, whether it is fixed-width, its declared maximum
// storage size, and (for strings) its character set. schema.FieldDef
// embeds a FieldSpec and adds a name; this package has no dependency on
// schema to keep the type system importable on its own.
type FieldSpec struct {
	Kind    Kind
	Fixed   bool
	MaxSize int
	Charset Charset
	// Scale is the number of decimal places for KindDecimal fields;
	// unused otherwise.
	Scale int32
}

// Collator is the hook Value.Hash accepts. No Value implementation in this
// package consults it: strings hash and compare by their raw bytes. Out of
// scope beyond this hook per spec Non-goals (no collation tables are
// implemented).
type Collator interface {
	Compare(a, b string) int
}

// Value is a single decoded field value, tagged by Kind.
type Value interface {
	Kind() Kind

	// WidthFromValue returns the number of bytes this value occupies on
	// the wire given its FieldSpec (the declared width for fixed kinds,
	// or the actual payload length for variable kinds).
	WidthFromValue(spec FieldSpec) (int, error)

	// EncodeInto writes the value's payload bytes into buf at offset and
	// returns the number of bytes written.
	EncodeInto(spec FieldSpec, buf []byte, offset int) (int, error)

	Compare(op Predicate, other Value) (bool, error)
	Hash(c Collator) (primitives.HashCode, error)
	String() string
	Equals(other Value) bool
}
