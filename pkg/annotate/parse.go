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

// Parse recovers clean text and its annotations from input, a blob of
// LLM-generated text that may embed well-formed, malformed, or entirely
// unrecognized XML-ish markup. It never returns an error: every malformed
// construct is handled by the recovery strategy configured for its tag (or
// the fallback behavior in cfg for tags it has never heard of), and Parse
// always returns a usable result.
//
// Parse is pure and holds no state across calls; concurrent calls on
// different input are safe.
func Parse(input string, cfg ParserConfig) ParseResult {
	compiled := compile(cfg)
	buf, spans, markers := run(input, cfg, compiled)
	segments := segment(buf, spans)

	return ParseResult{
		Text:     string(buf),
		Segments: segments,
		Markers:  markers,
	}
}
