// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lzo

import (
	"errors"
	"fmt"
)

// Category errors for decompression and optimization. Every stream-decoding
// error below wraps exactly one of these so callers can classify a
// failure with errors.Is without inspecting message text; ErrOptionsRequired,
// ErrInputTooLarge, ErrCompressInternal and ErrInvalidLevel wrap neither.
var (
	// ErrInvalidInput marks a malformed or truncated instruction stream.
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutputLength marks a well-formed stream that does not fit, or
	// underfills, the caller-provided output buffer.
	ErrOutputLength = errors.New("output length mismatch")
)

// Sentinel errors for decompression, optimization and compression.
var (
	// ErrEmptyInput is returned when the input slice or stream is empty.
	ErrEmptyInput = fmt.Errorf("empty input: %w", ErrInvalidInput)
	// ErrInputOverrun is returned when the decoder reads past the end of input.
	ErrInputOverrun = fmt.Errorf("input overrun: %w", ErrInvalidInput)
	// ErrZeroRunOverflow is returned when a zero-extension run is implausibly long.
	ErrZeroRunOverflow = fmt.Errorf("zero-run counter overflow: %w", ErrInvalidInput)
	// ErrLookBehindUnderrun is returned when a back-reference points before the start of the output.
	ErrLookBehindUnderrun = fmt.Errorf("lookbehind underrun: %w", ErrInvalidInput)
	// ErrTrailingInput is returned when bytes remain in src after the end-of-stream instruction.
	ErrTrailingInput = fmt.Errorf("trailing input after end marker: %w", ErrInvalidInput)
	// ErrUnexpectedEOF is returned when the stream ends before the terminator or expected size.
	ErrUnexpectedEOF = fmt.Errorf("unexpected end of input: %w", ErrInvalidInput)

	// ErrOutputOverrun is returned when the decoder would write past the output buffer.
	ErrOutputOverrun = fmt.Errorf("output overrun: %w", ErrOutputLength)
	// ErrOutputUnderrun is returned when the stream decodes to fewer bytes than the output buffer's length.
	ErrOutputUnderrun = fmt.Errorf("output underrun: %w", ErrOutputLength)

	// ErrOptionsRequired is returned when Decompress is called with nil options (OutLen is required).
	ErrOptionsRequired = errors.New("options required: OutLen must be set")
	// ErrInputTooLarge is returned when DecompressFromReader reads more than MaxInputSize bytes.
	ErrInputTooLarge = errors.New("input exceeds MaxInputSize")

	// ErrCompressInternal is returned when the compressor hits an internal
	// invariant violation (e.g. invalid match state, invalid window state).
	ErrCompressInternal = errors.New("internal compressor error")

	// ErrInvalidLevel is returned by NewCompressor for a level outside [1, 13].
	ErrInvalidLevel = errors.New("invalid compression level: must be in [1, 13]")
)
