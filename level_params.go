// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo (level table shape); parameter
// progression grounded on the Rust reimplementation's single fixed-level
// Compress1X999 call (original_source/src/compress_999.rs) and the
// teacher's own unwired level_params.go.

package lzo

// compressLevelParams holds internal parameters for one LZO1X-999 compression level.
// All fields are unexported; the type is used only inside the package.
type compressLevelParams struct {
	tryLazy  int    // try lazy matching (0/1/2)
	goodLen  uint   // good match length threshold
	maxLazy  uint   // max lazy match length
	niceLen  uint   // nice match length (stop searching)
	maxChain uint   // max hash chain length
	flags    uint32 // bit 0: use best-offset substitution
}

// useBestOffFlag marks compressLevelParams.flags bit 0.
const useBestOffFlag uint32 = 1

// fastLevelDictBits maps levels 1-4 to the LZO1X-1 hash table size (2^d_bits
// entries). Level 1 is the smallest/fastest table; level 4 the largest.
var fastLevelDictBits = [4]uint{11, 12, 14, 15}

// slowLevelParams maps levels 5-13 to LZO1X-999 parameters. Index 0 is
// level 5. Levels 5-7 never try lazy matching; 8-11 try one ahead position;
// 12-13 try two and bias the match finder toward cheaply-encoded offsets.
var slowLevelParams = [9]compressLevelParams{
	{tryLazy: 0, niceLen: 8, maxChain: 4},
	{tryLazy: 0, niceLen: 16, maxChain: 8},
	{tryLazy: 0, niceLen: 32, maxChain: 16},
	{tryLazy: 1, goodLen: 4, maxLazy: 4, niceLen: 16, maxChain: 16},
	{tryLazy: 1, goodLen: 8, maxLazy: 16, niceLen: 32, maxChain: 32},
	{tryLazy: 1, goodLen: 8, maxLazy: 16, niceLen: 128, maxChain: 128},
	{tryLazy: 1, goodLen: 8, maxLazy: 32, niceLen: 128, maxChain: 256},
	{tryLazy: 2, goodLen: 32, maxLazy: 128, niceLen: swdLookahead, maxChain: 2048, flags: useBestOffFlag},
	{tryLazy: 2, goodLen: swdLookahead, maxLazy: swdLookahead, niceLen: swdLookahead, maxChain: 4096, flags: useBestOffFlag},
}

// isFastLevel reports whether level selects the LZO1X-1 fast compressor.
func isFastLevel(level int) bool {
	return level >= 1 && level <= 4
}

// validLevel reports whether level is in the documented range [1, 13].
func validLevel(level int) bool {
	return level >= 1 && level <= 13
}
