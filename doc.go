// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

/*
Package lzo implements LZO1X compression and decompression (lzo1x_decompress_safe–compatible).

The format uses match types M1–M4 with different offset and length bounds; the
stream ends with a terminator (the long-match bytes 0x11 0x00 0x00, distance
0x4000). Suitable for archives
and binary formats that use LZO1X.

# Decompress

OutLen is required (use DecompressOptions). From a byte slice:

	out, err := lzo.Decompress(compressed, lzo.DefaultDecompressOptions(expectedLen))

To get the number of input bytes consumed (e.g. for back-to-back compressed blocks):

	out, nRead, err := lzo.DecompressN(compressed, lzo.DefaultDecompressOptions(expectedLen))
	// advance: compressed = compressed[nRead:]

From an io.Reader (e.g. stream with known decompressed size):

	out, err := lzo.DecompressFromReader(r, lzo.DefaultDecompressOptions(expectedLen))

DecompressInto and DecompressNInto decode into a caller-supplied buffer
instead of allocating one.

# Compress

Levels 1-4 select the fast LZO1X-1 compressor (windowed, hash-table size grows
with level); levels 5-13 select LZO1X-999, which trades speed for ratio via
lazy matching and, at 12-13, a best-offset bias in the match finder. Compress
and CompressLevel clamp out-of-range levels into [1, 13]; NewCompressor
rejects them instead, for callers that want a validated, reusable compressor:

	out, err := lzo.Compress(data, nil) // level 1
	out, err := lzo.Compress(data, &lzo.CompressOptions{Level: 9})

	c, err := lzo.NewCompressor(9)
	out, err := c.Compress(data)

# Optimize

Optimize takes an already-compressed stream and folds short back-references
sandwiched between literal runs into the surrounding literal run where that
is cheaper to encode. Decoding the result produces the same bytes as decoding
the input:

	packed, err := lzo.Optimize(compressed, len(data))
*/
package lzo
