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

// Package annotate parses XML-ish inline annotations out of free-form text
// produced by language models.
//
// Unlike encoding/xml, it never fails: unclosed tags, broken quotes, postfix
// citations, stray closers, mixed case and unquoted attributes are all
// recovered according to a configurable policy rather than rejected. Parse
// runs in a single pass over the input and returns the clean text with all
// recognized markup removed, a flat sequence of Segments describing which
// annotations cover each byte range, and zero-width Markers for self-closing
// tags.
//
// Parse is a pure, synchronous function of (input, ParserConfig). It holds no
// global state, performs no I/O, and is safe to call concurrently from
// multiple goroutines as long as each call owns its own config. For
// streaming many documents through the parser concurrently, see the
// pipeline wiring in the sibling pkg/textual package (AnnotationCarrier,
// ParseAnnotations).
package annotate
