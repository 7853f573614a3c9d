// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package lzo

// LZO1X format constants: M1/M2/M3/M4 offset and length bounds, and the
// sliding-window dictionary's memory parameters.
//
// Naming follows the historical LZO opcode classes (M1..M4), which map
// onto this module's grammar description as:
//
//	M1 (markerM1, 2-byte and 3-byte short match)  -> state-B / state-C short match
//	M2 (markerM2, tiny/small match, 1 distance byte) -> tiny/small match
//	M3 (markerM3, medium match, 2 distance bytes)    -> medium match
//	M4 (markerM4, long match, 2 distance bytes)      -> long match / end marker

// Match offset bounds (max distance for each match type).
const (
	maxOffsetM1 = 0x0400
	maxOffsetM2 = 0x0800
	maxOffsetM3 = 0x4000
	maxOffsetM4 = 0xbfff
	maxOffsetMX = maxOffsetM1 + maxOffsetM2
)

// Match length bounds per type.
const (
	minLenM2 = 3
	maxLenM2 = 8
	maxLenM3 = 33
	maxLenM4 = 9
)

// Instruction byte markers for match types.
const (
	markerM1 = 0
	markerM2 = 64
	markerM3 = 32
	markerM4 = 16
)

// fastCompressWindow is the maximum number of input bytes the LZO1X-1 fast
// compressor hashes into one dictionary before clearing it and starting a
// fresh window; bounds how much memory a single compress call pins down and
// matches the reference window size for this codec family.
const fastCompressWindow = 49152

// Sliding-window dictionary memory parameters for the slow (LZO1X-999)
// compressor's match finder (the "SWD"). swdWindow and swdLookahead are
// the N and F of the data model: the matcher only ever searches and
// evicts within this reach, independent of the larger offsets the wire
// format itself can encode (maxOffsetM4 above).
const (
	swdWindow        = 16384 // N: match-finder search window
	swdLookahead     = 2048  // F: match-finder lookahead
	swdThreshold     = 1     // minimum match length the SWD will report
	swdBestOffCount  = maxLenM3 + 1
	swdHashSize      = 16384
	swdDefaultChain  = 2048
	swdNilChainIndex = 0xffff
)
