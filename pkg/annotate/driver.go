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

import "strings"

const (
	cdataOpen  = "<![CDATA["
	cdataClose = "]]>"
)

// run walks input once, emitting clean text into buf, maintaining the
// open-tag stack, and accumulating spans and markers. It is the only place
// that understands the tag dispatch table in §4.3 of the design.
func run(input string, cfg ParserConfig, compiled *compiledConfig) (buf []byte, spans []span, markers []Marker) {
	buf = make([]byte, 0, len(input))
	lineStart := 0
	var stack []openTag

	appendText := func(s string) {
		base := len(buf)
		for idx := 0; idx < len(s); idx++ {
			if s[idx] == '\n' {
				lineStart = base + idx + 1
			}
		}
		buf = append(buf, s...)
	}

	i, n := 0, len(input)
	for i < n {
		if strings.HasPrefix(input[i:], cdataOpen) {
			bodyStart := i + len(cdataOpen)
			if end := strings.Index(input[bodyStart:], cdataClose); end != -1 {
				appendText(input[bodyStart : bodyStart+end])
				i = bodyStart + end + len(cdataClose)
			} else {
				appendText(input[bodyStart:])
				i = n
			}
			continue
		}

		if input[i] != '<' {
			next := strings.IndexByte(input[i:], '<')
			if next == -1 {
				appendText(input[i:])
				i = n
			} else {
				appendText(input[i : i+next])
				i += next
			}
			continue
		}

		tok, ok := tokenizeTag(input, i)
		if !ok {
			// Neither TreatAsText nor any other unknown_mode changes this:
			// a '<' that isn't a tag at all is always literal text.
			appendText("<")
			i++
			continue
		}

		normalized := foldName(tok.name, cfg.CaseSensitiveTags)
		recognized := compiled.isRecognized(normalized)

		if !recognized && cfg.UnknownMode == TreatAsText {
			appendText(tok.raw)
			i = tok.end
			continue
		}

		switch tok.kind {
		case startTagKind, selfClosingTagKind:
			if !recognized {
				if cfg.UnknownMode == Passthrough {
					appendText(tok.raw)
				}
				// Strip: drop silently.
				break
			}

			closePos := len(buf)
			if cfg.AutocloseOnSameTag {
				if idx := topmostMatch(stack, normalized); idx != -1 {
					for len(stack) > idx {
						top := stack[len(stack)-1]
						stack = stack[:len(stack)-1]
						closeTag(top, closePos, buf, cfg.TrimPunctuation, &spans)
					}
				}
			}
			if cfg.AutocloseOnAnyTag {
				for len(stack) > 0 {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					closeTag(top, closePos, buf, cfg.TrimPunctuation, &spans)
				}
			}

			attrs := scanAttributes(tok.attrsRegion)
			if tok.kind == startTagKind {
				stack = append(stack, openTag{
					name:            tok.name,
					normalizedName:  normalized,
					attrs:           attrs,
					startPos:        len(buf),
					lineStartAtOpen: lineStart,
					strategy:        compiled.strategyFor(normalized),
				})
			} else {
				markers = append(markers, Marker{
					Pos:        len(buf),
					Annotation: Annotation{Tag: tok.name, Attrs: attrs},
				})
			}

		case endTagKind:
			if !recognized {
				if cfg.UnknownMode == Passthrough {
					appendText(tok.raw)
				}
				break
			}

			closePos := len(buf)
			if idx := topmostMatch(stack, normalized); idx != -1 {
				for len(stack)-1 > idx {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					closeTag(top, closePos, buf, cfg.TrimPunctuation, &spans)
				}
				match := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if match.startPos < closePos {
					spans = append(spans, span{
						start:      match.startPos,
						end:        closePos,
						annotation: Annotation{Tag: match.name, Attrs: match.attrs},
					})
				}
			} else if cfg.StrayEndTagPolicy == StrayPassthrough {
				appendText(tok.raw)
			}
		}

		i = tok.end
	}

	closePos := len(buf)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		closeTag(top, closePos, buf, cfg.TrimPunctuation, &spans)
	}

	return buf, spans, markers
}

// topmostMatch returns the index of the nearest-to-top OpenTag on stack
// whose normalized name matches, or -1.
func topmostMatch(stack []openTag, normalizedName string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].normalizedName == normalizedName {
			return i
		}
	}
	return -1
}
