// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package annotate

import (
	"unicode"
	"unicode/utf8"
)

// closeTag turns one open tag into zero or one span, per its recovery
// strategy, and appends the span (if any) to *spans. buf is the clean text
// accumulated so far; closePos is the byte offset in buf this closure
// happens against (len(buf) at the time of an explicit close, an autoclose,
// or end-of-document drain).
func closeTag(tag openTag, closePos int, buf []byte, trim bool, spans *[]span) {
	switch tag.strategy {
	case RetroLine:
		s, e := tag.lineStartAtOpen, tag.startPos
		s, e = trimSpan(buf, s, e, trim)
		emit(spans, s, e, tag)

	case ForwardUntilTag, ForwardUntilNewline:
		s, e := tag.startPos, closePos
		if nl := indexByte(buf[s:closePos], '\n'); nl != -1 {
			e = s + nl
		}
		s, e = trimSpan(buf, s, e, trim)
		emit(spans, s, e, tag)

	case ForwardNextToken:
		runStart, runEnd := findAlnumRun(buf[tag.startPos:closePos])
		if runStart == -1 {
			return
		}
		s, e := trimSpan(buf, tag.startPos+runStart, tag.startPos+runEnd, trim)
		emit(spans, s, e, tag)

	case Noop:
		// Emit nothing.
	}
}

func emit(spans *[]span, s, e int, tag openTag) {
	if s >= e {
		return
	}
	*spans = append(*spans, span{
		start:      s,
		end:        e,
		annotation: Annotation{Tag: tag.name, Attrs: tag.attrs},
	})
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

// findAlnumRun returns the bounds of the first maximal run of letters and
// digits in seg, or (-1, -1) if seg contains none.
func findAlnumRun(seg []byte) (start, end int) {
	start, end = -1, -1
	i := 0
	for i < len(seg) {
		r, size := utf8.DecodeRune(seg[i:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start == -1 {
				start = i
			}
			end = i + size
			i += size
			continue
		}
		if start != -1 {
			break
		}
		i += size
	}
	return start, end
}

// trimSpan narrows [s, e) by advancing/retreating past whitespace and the
// punctuation set { , . ; : ! ? ( ) }, both bounds remaining on UTF-8
// codepoint boundaries. It is the identity when trim is false.
func trimSpan(buf []byte, s, e int, trim bool) (int, int) {
	if !trim {
		return s, e
	}
	for s < e {
		r, size := utf8.DecodeRune(buf[s:e])
		if !isTrimChar(r) {
			break
		}
		s += size
	}
	for e > s {
		r, size := utf8.DecodeLastRune(buf[s:e])
		if !isTrimChar(r) {
			break
		}
		e -= size
	}
	return s, e
}

func isTrimChar(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', ',', '.', ';', ':', '!', '?', '(', ')':
		return true
	}
	return false
}
