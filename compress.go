// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package lzo

// Compressor compresses at a fixed, validated level. Use NewCompressor to
// obtain one; the zero value is not usable.
type Compressor struct {
	level int
}

// NewCompressor returns a Compressor for level, or ErrInvalidLevel if level
// is outside [1, 13]. Unlike Compress/CompressLevel, this never clamps.
func NewCompressor(level int) (*Compressor, error) {
	if !validLevel(level) {
		return nil, ErrInvalidLevel
	}

	return &Compressor{level: level}, nil
}

// Level reports the level this Compressor was constructed with.
func (c *Compressor) Level() int {
	return c.level
}

// Compress compresses src at the Compressor's level.
func (c *Compressor) Compress(src []byte) ([]byte, error) {
	return compressAtLevel(src, c.level)
}

// Compress compresses src with LZO1X. opts may be nil (uses default level 1).
// Levels outside [1, 13] are clamped rather than rejected, for drop-in
// ergonomics; use NewCompressor when invalid levels should be an error.
func Compress(src []byte, opts *CompressOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultCompressOptions()
	}

	level := opts.Level
	if level < 1 {
		level = 1
	}
	if level > 13 {
		level = 13
	}

	return compressAtLevel(src, level)
}

// CompressLevel compresses src at the given level, clamped to [1, 13].
func CompressLevel(src []byte, level int) ([]byte, error) {
	return Compress(src, &CompressOptions{Level: level})
}

// compressAtLevel dispatches to the fast (1-4) or slow (5-13) compressor.
func compressAtLevel(src []byte, level int) ([]byte, error) {
	if isFastLevel(level) {
		return compress1xFast(src, fastLevelDictBits[level-1]), nil
	}

	return compress999(src, slowLevelParams[level-5])
}
