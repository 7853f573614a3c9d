// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo (decode helpers); merge heuristic
// grounded on original_source/src/optimize.rs (lzo1x_optimize), reworked
// as a parse/merge/re-encode pass instead of in-place opcode shifting.

package lzo

// optToken is one literal run or match in a parsed compressed stream. For a
// match, data holds the decoded bytes it copies (so a match can be folded
// into a literal run without re-deriving its content).
type optToken struct {
	isMatch bool
	data    []byte
	dist    int
}

// Optimize rewrites compressed (an LZO1X stream that decodes to exactly
// originalLen bytes) into an equivalent stream, usually a few bytes shorter,
// by folding short back-references sandwiched between two literal runs into
// one combined literal run when that is cheaper to encode. Decoding the
// result is byte-identical to decoding the input.
func Optimize(compressed []byte, originalLen int) ([]byte, error) {
	tokens, err := parseOptTokens(compressed, originalLen)
	if err != nil {
		return nil, err
	}

	return encodeOptTokensMerging(tokens), nil
}

// parseOptTokens walks compressed the same way decompressCore does, but
// records each literal run and match as a token instead of only writing
// bytes to a scratch output buffer.
func parseOptTokens(src []byte, originalLen int) ([]optToken, error) {
	scratch := make([]byte, originalLen)
	var tokens []optToken

	var (
		inst      byte
		state     int
		nextState int
		matchLen  int
		matchDist int
		inPos     int
		outPos    int
	)

	inst, err := readCompressedByte(src, &inPos)
	if err != nil {
		return nil, err
	}

	pushLiteral := func(n int) error {
		if err := copyLiteralRun(src, &inPos, scratch, &outPos, n); err != nil {
			return err
		}
		tokens = append(tokens, optToken{data: append([]byte(nil), scratch[outPos-n:outPos]...)})
		return nil
	}

	switch {
	case inst >= 22:
		if err := pushLiteral(int(inst) - 17); err != nil {
			return nil, err
		}
		state = stateC

	case inst >= 18:
		nextState = int(inst - 17)
		if err := pushLiteral(nextState); err != nil {
			return nil, err
		}
		state = nextState
	}

	for {
		if inPos > 1 || state > 0 {
			if inPos >= len(src) {
				return nil, ErrUnexpectedEOF
			}

			inst = src[inPos]
			inPos++
		}

		switch {
		case inst >= markerM2:
			b, err := readCompressedByte(src, &inPos)
			if err != nil {
				return nil, err
			}

			matchDist = (int(b) << 3) + ((int(inst) >> 2) & 0x7) + 1
			matchLen = (int(inst) >> 5) + 1
			nextState = int(inst & 0x03)

		case inst >= markerM3:
			matchLen = int(inst&0x1f) + 2
			if matchLen == 2 {
				ext, err := readZeroExtendedChunks(src, &inPos)
				if err != nil {
					return nil, err
				}
				tail, err := readCompressedByte(src, &inPos)
				if err != nil {
					return nil, err
				}
				matchLen += ext*255 + 31 + int(tail)
			}

			v16, err := readCompressedLE16(src, &inPos)
			if err != nil {
				return nil, err
			}

			matchDist = (int(v16) >> 2) + 1
			nextState = int(v16 & 0x03)

		case inst >= markerM4:
			matchLen = int(inst&0x7) + 2
			if matchLen == 2 {
				ext, err := readZeroExtendedChunks(src, &inPos)
				if err != nil {
					return nil, err
				}
				tail, err := readCompressedByte(src, &inPos)
				if err != nil {
					return nil, err
				}
				matchLen += ext*255 + 7 + int(tail)
			}

			v16, err := readCompressedLE16(src, &inPos)
			if err != nil {
				return nil, err
			}

			baseDist := ((int(inst) & 0x8) << 11) + (int(v16) >> 2)
			if baseDist == 0 {
				if matchLen != 3 {
					return nil, ErrInputOverrun
				}
				return tokens, nil
			}

			matchDist = baseDist + 0x4000
			nextState = int(v16 & 0x03)

		default:
			if state == stateA {
				runLen := int(inst) + 3
				if runLen == 3 {
					ext, err := readZeroExtendedChunks(src, &inPos)
					if err != nil {
						return nil, err
					}
					tail, err := readCompressedByte(src, &inPos)
					if err != nil {
						return nil, err
					}
					runLen += ext*255 + 15 + int(tail)
				}

				if err := pushLiteral(runLen); err != nil {
					return nil, err
				}

				if inPos >= len(src) {
					return nil, ErrInputOverrun
				}

				state = stateC
				continue
			}

			tail, err := readCompressedByte(src, &inPos)
			if err != nil {
				return nil, err
			}

			nextState = int(inst & 0x03)
			switch {
			case state != stateC:
				matchDist = (int(inst) >> 2) + (int(tail) << 2) + 1
				matchLen = 2
			default:
				matchDist = shortMatchBaseOffset + 1 + (int(inst) >> 2) + (int(tail) << 2)
				matchLen = 3
			}
		}

		if err := copyBackRef(scratch, outPos, matchDist, matchLen); err != nil {
			return nil, err
		}
		tokens = append(tokens, optToken{
			isMatch: true,
			data:    append([]byte(nil), scratch[outPos:outPos+matchLen]...),
			dist:    matchDist,
		})
		outPos += matchLen

		if nextState > 0 {
			if err := pushLiteral(nextState); err != nil {
				return nil, err
			}
		}

		state = nextState
	}
}

// encodeOptTokensMerging re-serializes a token stream into LZO1X wire
// format, folding literal/short-match/literal triples into one combined
// literal run wherever that measurably shrinks the encoding. Unlike a
// separate merge-then-encode pass, the merge decision is made by actually
// encoding both the merged and unmerged form from the current output state
// and keeping whichever is shorter, so a merge can never grow the stream
// (Testable Property 3) even though the true encoded cost of a literal run
// or match depends on what precedes it (first-token form, low-bit patching
// of the previous token, M1's literal-class bias).
//
// A match of length 2 can only be encoded when immediately preceded by a
// 1-3 byte literal run (the decoder tells it apart from a length-3 match
// purely by that preceding run's length class), so a merge is skipped
// whenever it would grow the literal run in front of a following length-2
// match past 3 bytes.
func encodeOptTokensMerging(tokens []optToken) []byte {
	var out []byte
	lastRunLiteralCount := 0

	for i := 0; i < len(tokens); {
		if mergeCandidate(tokens, i) {
			mergedLit := make([]byte, 0, len(tokens[i].data)+len(tokens[i+1].data)+len(tokens[i+2].data))
			mergedLit = append(mergedLit, tokens[i].data...)
			mergedLit = append(mergedLit, tokens[i+1].data...)
			mergedLit = append(mergedLit, tokens[i+2].data...)

			merged := appendOptLiteral(append([]byte(nil), out...), mergedLit)

			unmerged := appendOptLiteral(append([]byte(nil), out...), tokens[i].data)
			unmerged = appendOptMatch(unmerged, tokens[i+1].data, tokens[i+1].dist, len(tokens[i].data))
			unmerged = appendOptLiteral(unmerged, tokens[i+2].data)

			if len(merged) < len(unmerged) {
				out = merged
				lastRunLiteralCount = len(mergedLit)
				i += 3
				continue
			}
		}

		tok := tokens[i]
		if !tok.isMatch {
			out = appendOptLiteral(out, tok.data)
			lastRunLiteralCount = len(tok.data)
		} else {
			out = appendOptMatch(out, tok.data, tok.dist, lastRunLiteralCount)
			lastRunLiteralCount = 0
		}
		i++
	}

	out = append(out, markerM4|1, 0, 0)
	return out
}

// mergeCandidate reports whether tokens[i:i+3] is a literal/short-match/
// literal triple eligible for merging: the shapes encodeOptTokensMerging
// considers at all. It does not by itself guarantee the merge is cheaper
// (that is checked by comparing actual encoded lengths) but it does
// guarantee the merge stays re-encodable: merging must never grow the
// literal run in front of a following length-2 match past 3 bytes, since a
// length-2 match can only be told apart from a length-3 match by that
// preceding run's length class.
func mergeCandidate(tokens []optToken, i int) bool {
	if i+2 >= len(tokens) {
		return false
	}
	if tokens[i].isMatch || !tokens[i+1].isMatch || tokens[i+2].isMatch {
		return false
	}
	if len(tokens[i+1].data) > 3 {
		return false
	}

	mergedLen := len(tokens[i].data) + len(tokens[i+1].data) + len(tokens[i+2].data)
	if mergedLen > 3 && nextMatchNeedsShortLiteral(tokens, i+3) {
		return false
	}

	return true
}

// nextMatchNeedsShortLiteral reports whether tokens[i] is a length-2 match,
// which requires its preceding literal run to stay at 1-3 bytes.
func nextMatchNeedsShortLiteral(tokens []optToken, i int) bool {
	return i < len(tokens) && tokens[i].isMatch && len(tokens[i].data) == 2
}

// appendOptLiteral appends a literal run in the same grammar as storeRun.
func appendOptLiteral(out []byte, lit []byte) []byte {
	n := len(lit)

	switch {
	case len(out) == 0 && n <= 238:
		out = append(out, byte(17+n))
	case n <= 3:
		out[len(out)-2] |= byte(n)
	case n <= 18:
		out = append(out, byte(n-3))
	default:
		out = append(out, 0)
		out = appendMultiple(out, n-18)
	}

	return append(out, lit...)
}

// appendOptMatch appends a match in the same grammar and opcode-class
// selection as codeMatch (compress_999.go). lastRunLiteralCount is the
// length of the literal run immediately preceding this match, needed to
// choose between the M1 short-match and M1-with-bias opcode forms.
func appendOptMatch(out []byte, data []byte, dist int, lastRunLiteralCount int) []byte {
	matchLen := len(data)
	matchOffset := dist

	switch {
	case matchLen == 2:
		matchOffset--
		out = append(out,
			byte(markerM1|((matchOffset&3)<<2)),
			byte(matchOffset>>2))

	case matchLen <= maxLenM2 && matchOffset <= maxOffsetM2:
		matchOffset--
		out = append(out,
			byte((matchLen-1)<<5|(matchOffset&7)<<2),
			byte(matchOffset>>3))

	case matchLen == minLenM2 && matchOffset <= maxOffsetMX && lastRunLiteralCount >= 4:
		matchOffset -= 1 + maxOffsetM2
		out = append(out,
			byte(markerM1|((matchOffset&3)<<2)),
			byte(matchOffset>>2))

	case matchOffset <= maxOffsetM3:
		matchOffset--
		if matchLen <= maxLenM3 {
			out = append(out, byte(markerM3|(matchLen-2)))
		} else {
			matchLen -= maxLenM3
			out = append(out, byte(markerM3))
			out = appendMultiple(out, matchLen)
		}
		out = append(out, byte(matchOffset<<2), byte(matchOffset>>6))

	default:
		matchOffset -= 0x4000
		k := (matchOffset & 0x4000) >> 11
		if matchLen <= maxLenM4 {
			out = append(out, byte(markerM4|k|(matchLen-2)))
		} else {
			matchLen -= maxLenM4
			out = append(out, byte(markerM4|k))
			out = appendMultiple(out, matchLen)
		}
		out = append(out, byte(matchOffset<<2), byte(matchOffset>>6))
	}

	// Unlike a literal run, a match instruction carries no content bytes of
	// its own: it is a pure back-reference, resolved by the decoder from
	// already-decoded output. data is only the decoded preview kept on the
	// token for merge bookkeeping (see optToken) and must not be emitted.
	return out
}
