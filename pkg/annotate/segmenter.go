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

import "sort"

// segment sweeps the boundary set of spans and flattens them into a gapless,
// non-overlapping sequence of Segments covering [0, len(text)). Segments with
// no covering span still appear, with a nil Annotations slice.
//
// Within a Segment, Annotations are ordered the way spans were appended to
// the original spans slice (push order), not re-sorted by position: a span
// closed earlier during parsing appears earlier in the Annotations slice,
// regardless of how its bounds nest against its siblings.
func segment(text []byte, spans []span) []Segment {
	if len(text) == 0 {
		return nil
	}

	bounds := map[int]struct{}{0: {}, len(text): {}}
	for _, sp := range spans {
		bounds[sp.start] = struct{}{}
		bounds[sp.end] = struct{}{}
	}
	cuts := make([]int, 0, len(bounds))
	for b := range bounds {
		cuts = append(cuts, b)
	}
	sort.Ints(cuts)

	segments := make([]Segment, 0, len(cuts)-1)
	for k := 0; k+1 < len(cuts); k++ {
		start, end := cuts[k], cuts[k+1]
		if start == end {
			continue
		}
		var anns []Annotation
		for _, sp := range spans {
			if sp.start <= start && sp.end >= end {
				anns = append(anns, sp.annotation)
			}
		}
		segments = append(segments, Segment{
			Text:        string(text[start:end]),
			Annotations: anns,
		})
	}
	return segments
}
