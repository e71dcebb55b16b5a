package encoding

import (
	"bytes"
	"testing"
)

func TestLatin1Bytes(t *testing.T) {
	got := Latin1Bytes("café")
	want := []byte{0x63, 0x61, 0x66, 0xE9}

	if !bytes.Equal(got, want) {
		t.Errorf("Latin1Bytes: got % x, want % x", got, want)
	}
}

func TestLatin1Bytes_Unsupported(t *testing.T) {
	// The euro sign has no Latin-1 code point; it must collapse to a
	// single substitute byte instead of failing.
	got := Latin1Bytes("€")
	if len(got) != 1 {
		t.Errorf("expected one substitute byte, got % x", got)
	}
}

func TestLatin1RoundTrip(t *testing.T) {
	const text = "Straße für Bäume"

	encoded := Latin1Bytes(text)
	if len(encoded) != 16 {
		t.Errorf("encoded length: got %d, want 16", len(encoded))
	}

	decoded := Latin1ToUTF8(encoded)
	if decoded != text {
		t.Errorf("round trip: got %q, want %q", decoded, text)
	}
}

func TestLatin1Writer(t *testing.T) {
	var buf bytes.Buffer

	w := NewLatin1Writer(&buf)
	if _, err := w.Write([]byte("Straße")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	want := []byte{0x53, 0x74, 0x72, 0x61, 0xDF, 0x65}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("writer output: got % x, want % x", buf.Bytes(), want)
	}
}
