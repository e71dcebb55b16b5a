// Package encoding provides text encoding helpers for I3D asset files.
// The target engine reads scene files in a single-byte Western encoding,
// so exported documents are written as ISO-8859-1 rather than UTF-8.
package encoding

import (
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// NewLatin1Writer wraps w so that UTF-8 text written to it is stored as
// ISO-8859-1. Runes outside the Latin-1 range are replaced with the
// encoding's substitute byte instead of failing the write.
func NewLatin1Writer(w io.Writer) io.WriteCloser {
	enc := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	return transform.NewWriter(w, enc)
}

// Latin1Bytes converts a UTF-8 string to ISO-8859-1 bytes.
// Returns the raw bytes unchanged if conversion fails.
func Latin1Bytes(s string) []byte {
	enc := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	out, _, err := transform.Bytes(enc, []byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}

// Latin1ToUTF8 converts ISO-8859-1 encoded bytes to a UTF-8 string.
func Latin1ToUTF8(data []byte) string {
	dec := charmap.ISO8859_1.NewDecoder()
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return string(data)
	}
	return string(out)
}
