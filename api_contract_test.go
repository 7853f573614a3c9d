package lzo

import (
	"bytes"
	"errors"
	"testing"
)

// Decompress treats trailing bytes after the end-of-stream marker as
// malformed input; DecompressN is the escape valve for consuming one block
// out of a longer byte stream (e.g. back-to-back compressed records).
func TestAPIContract_DecompressRejectsTrailingBytes(t *testing.T) {
	src := bytes.Repeat([]byte("api-contract"), 64)

	compressed, err := Compress(src, &CompressOptions{Level: 5})
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	payload := append(append([]byte{}, compressed...), []byte("tail")...)

	if _, err := Decompress(payload, DefaultDecompressOptions(len(src))); !errors.Is(err, ErrTrailingInput) {
		t.Fatalf("Decompress with trailing bytes: want ErrTrailingInput, got %v", err)
	}

	out, nRead, err := DecompressN(payload, DefaultDecompressOptions(len(src)))
	if err != nil {
		t.Fatalf("DecompressN failed: %v", err)
	}
	if nRead != len(compressed) {
		t.Fatalf("DecompressN consumed %d bytes, want %d", nRead, len(compressed))
	}
	if !bytes.Equal(out, src) {
		t.Fatal("decoded output mismatch for trailing-byte input")
	}
}

// A buffer larger than the stream's actual decoded length is an output
// length error, not a silently shorter result.
func TestAPIContract_DecompressRejectsOversizedOutLen(t *testing.T) {
	src := bytes.Repeat([]byte("short-output"), 32)

	compressed, err := Compress(src, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	if _, err := Decompress(compressed, DefaultDecompressOptions(len(src)+256)); !errors.Is(err, ErrOutputLength) {
		t.Fatalf("Decompress with oversized OutLen: want ErrOutputLength, got %v", err)
	}
}

func TestAPIContract_DecompressCanonicalStream(t *testing.T) {
	// This stream is used as a canonical example in lzokay-rs docs:
	// it expands to 512 zero bytes.
	compressed := []byte{0x12, 0x00, 0x20, 0x00, 0xdf, 0x00, 0x00, 0x11, 0x00, 0x00}
	expected := make([]byte, 512)

	out, err := Decompress(compressed, DefaultDecompressOptions(512))
	if err != nil {
		t.Fatalf("Decompress failed for canonical stream: %v", err)
	}

	if !bytes.Equal(out, expected) {
		t.Fatal("canonical stream decoded data mismatch")
	}
}
