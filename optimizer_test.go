package lzo

import (
	"bytes"
	"testing"
)

func TestOptimize_RoundTripPreservesDecodedBytes(t *testing.T) {
	for _, in := range testInputSet() {
		for _, level := range []int{1, 5, 9, 13} {
			name := in.name
			t.Run(name, func(t *testing.T) {
				cmp, err := CompressLevel(in.data, level)
				if err != nil {
					t.Fatalf("CompressLevel failed: %v", err)
				}

				optimized, err := Optimize(cmp, len(in.data))
				if err != nil {
					t.Fatalf("Optimize failed: %v", err)
				}

				out, err := Decompress(optimized, DefaultDecompressOptions(len(in.data)))
				if err != nil {
					t.Fatalf("Decompress(optimized) failed: %v", err)
				}
				if !bytes.Equal(out, in.data) {
					t.Fatalf("optimized stream decodes to different bytes")
				}
			})
		}
	}
}

// Optimize never makes a stream longer, and its result decodes to the same
// bytes. At level 1 this input compresses to one short literal run followed
// by one long match, so there is nothing to merge and the length is kept.
func TestOptimize_NeverGrowsStream(t *testing.T) {
	data := bytes.Repeat([]byte("ab"), 400)

	cmp, err := CompressLevel(data, 1)
	if err != nil {
		t.Fatalf("CompressLevel failed: %v", err)
	}

	optimized, err := Optimize(cmp, len(data))
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if len(optimized) > len(cmp) {
		t.Fatalf("optimized stream grew: %d -> %d", len(cmp), len(optimized))
	}

	out, err := Decompress(optimized, DefaultDecompressOptions(len(data)))
	if err != nil {
		t.Fatalf("Decompress(optimized) failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("optimized stream decodes to different bytes")
	}
}

func TestOptimize_CanonicalStream(t *testing.T) {
	compressed := []byte{0x12, 0x00, 0x20, 0x00, 0xdf, 0x00, 0x00, 0x11, 0x00, 0x00}

	optimized, err := Optimize(compressed, 512)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	out, err := Decompress(optimized, DefaultDecompressOptions(512))
	if err != nil {
		t.Fatalf("Decompress(optimized) failed: %v", err)
	}
	if !bytes.Equal(out, make([]byte, 512)) {
		t.Fatal("optimized canonical stream decoded data mismatch")
	}
}

func TestOptimize_TruncatedInputFails(t *testing.T) {
	cmp, err := CompressLevel(bytes.Repeat([]byte("truncate-me"), 50), 1)
	if err != nil {
		t.Fatalf("CompressLevel failed: %v", err)
	}

	if _, err := Optimize(cmp[:len(cmp)-4], 50*len("truncate-me")); err == nil {
		t.Fatal("Optimize on truncated input: want error, got nil")
	}
}

func FuzzOptimizeRoundTrip(f *testing.F) {
	f.Add([]byte("hello world"), uint8(1))
	f.Add(bytes.Repeat([]byte{0x00}, 1024), uint8(9))
	f.Add(bytes.Repeat([]byte("abc"), 500), uint8(7))

	f.Fuzz(func(t *testing.T, data []byte, level uint8) {
		if len(data) > 1<<16 {
			data = data[:1<<16]
		}

		cmp, err := CompressLevel(data, int(level%13)+1)
		if err != nil {
			t.Fatalf("CompressLevel failed: %v", err)
		}

		optimized, err := Optimize(cmp, len(data))
		if err != nil {
			t.Fatalf("Optimize failed: %v", err)
		}

		out, err := Decompress(optimized, DefaultDecompressOptions(len(data)))
		if err != nil {
			t.Fatalf("Decompress(optimized) failed: %v", err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf("round-trip mismatch: got=%d want=%d", len(out), len(data))
		}
	})
}
