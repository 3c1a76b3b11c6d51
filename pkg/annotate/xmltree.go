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
	"sort"
	"strconv"

	"github.com/beevik/etree"
)

// ToElementTree renders a ParseResult as a real element tree, for tooling
// that wants to walk or re-serialize a document rather than consume a flat
// segment/marker list.
//
// The root element is "document". Each segment becomes a nested sequence of
// "span" elements, one per Annotation in Segment.Annotations order (the
// order spans were closed while parsing, outermost last), with the segment
// text as the innermost element's character data. Segments with no
// annotations become bare text nodes. Markers are spliced in as empty
// "marker" elements at their recorded byte offset, interleaved with segment
// text in offset order.
//
// Attribute values are rendered in sorted-key order for determinism. A
// Bool(true) attribute is rendered as the string "true": etree attributes are
// always strings, so the Bool/Str distinction does not round-trip through
// this export. That is acceptable here because the export is a one-way
// interop view of a ParseResult, not a wire format Parse reads back.
func ToElementTree(result ParseResult) *etree.Document {
	doc := etree.NewDocument()
	root := doc.CreateElement("document")

	type boundary struct {
		pos    int
		marker *Marker
	}
	var bounds []boundary
	for i := range result.Markers {
		bounds = append(bounds, boundary{pos: result.Markers[i].Pos, marker: &result.Markers[i]})
	}
	sort.SliceStable(bounds, func(i, j int) bool { return bounds[i].pos < bounds[j].pos })

	offset := 0
	boundIdx := 0
	emitMarkersUpTo := func(pos int) {
		for boundIdx < len(bounds) && bounds[boundIdx].pos <= pos {
			appendMarkerElement(root, *bounds[boundIdx].marker)
			boundIdx++
		}
	}

	for _, seg := range result.Segments {
		emitMarkersUpTo(offset)
		appendSegmentElement(root, seg)
		offset += len(seg.Text)
	}
	emitMarkersUpTo(offset)

	return doc
}

func appendSegmentElement(parent *etree.Element, seg Segment) {
	if len(seg.Annotations) == 0 {
		parent.CreateText(seg.Text)
		return
	}

	cursor := parent
	for _, ann := range seg.Annotations {
		span := cursor.CreateElement("span")
		span.CreateAttr("tag", ann.Tag)
		for _, k := range sortedAttrKeys(ann.Attrs) {
			span.CreateAttr(k, attrValueString(ann.Attrs[k]))
		}
		cursor = span
	}
	cursor.CreateText(seg.Text)
}

func appendMarkerElement(parent *etree.Element, m Marker) {
	el := parent.CreateElement("marker")
	el.CreateAttr("tag", m.Annotation.Tag)
	el.CreateAttr("pos", strconv.Itoa(m.Pos))
	for _, k := range sortedAttrKeys(m.Annotation.Attrs) {
		el.CreateAttr(k, attrValueString(m.Annotation.Attrs[k]))
	}
}

func sortedAttrKeys(attrs map[string]AttrValue) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func attrValueString(v AttrValue) string {
	if v.IsBool() {
		return "true"
	}
	return v.Str
}
