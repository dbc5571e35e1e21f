package types

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Charset names the character set a variable-length string field's bytes
// are decoded through, per FieldSpec.Charset.
type Charset int

const (
	// CharsetUTF8 is the default; string bytes are already valid UTF-8
	// and pass through unchanged.
	CharsetUTF8 Charset = iota
	// CharsetLatin1 decodes bytes through ISO-8859-1.
	CharsetLatin1
)

func (c Charset) encoding() encoding.Encoding {
	switch c {
	case CharsetLatin1:
		return charmap.ISO8859_1
	default:
		return unicode.UTF8
	}
}

// DecodeString decodes raw field bytes into a Go string using the charset.
func (c Charset) DecodeString(raw []byte) (string, error) {
	if c == CharsetUTF8 {
		return string(raw), nil
	}
	out, err := c.encoding().NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeString encodes a Go string into raw field bytes using the charset.
func (c Charset) EncodeString(s string) ([]byte, error) {
	if c == CharsetUTF8 {
		return []byte(s), nil
	}
	return c.encoding().NewEncoder().Bytes([]byte(s))
}
