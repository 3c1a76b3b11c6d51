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

package textual

import (
	"context"

	"github.com/benoit-pereira-da-silva/inlinexml/pkg/annotate"
)

// ParseAnnotations returns a Processor that runs annotate.Parse on every
// AnnotationCarrier flowing through the stage, using a single shared
// ParserConfig. It is a 1:1 stage built directly on Async, so it inherits
// Async's context-cancellation and panic-recovery behavior.
//
// Parse itself is pure and holds no state, so running it concurrently across
// many documents (by fanning a stream of AnnotationCarrier through several
// ParseAnnotations stages, or by raising Async's single worker into a
// Router of many) is always safe.
func ParseAnnotations(cfg annotate.ParserConfig) Processor[AnnotationCarrier] {
	return ProcessorFunc[AnnotationCarrier](func(ctx context.Context, in <-chan AnnotationCarrier) <-chan AnnotationCarrier {
		return Async(ctx, in, func(a AnnotationCarrier) AnnotationCarrier {
			a.Result = annotate.Parse(a.Source, cfg)
			a.Parsed = true
			return a
		})
	})
}

// NewAnnotationTranscoder returns a Transcoder that parses each scanned
// String token into an AnnotationCarrier, preserving its ordering index and
// any upstream error.
func NewAnnotationTranscoder(cfg annotate.ParserConfig) Transcoder[String, AnnotationCarrier] {
	return TranscoderFunc[String, AnnotationCarrier](func(ctx context.Context, in <-chan String) <-chan AnnotationCarrier {
		return Async(ctx, in, func(s String) AnnotationCarrier {
			a := AnnotationCarrier{Source: s.Value, Index: s.Index}
			a.Result = annotate.Parse(a.Source, cfg)
			a.Parsed = true
			if err := s.GetError(); err != nil {
				a = a.WithError(err)
			}
			return a
		})
	})
}
