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
	"errors"
	"sort"
	"strings"

	"github.com/benoit-pereira-da-silva/inlinexml/pkg/annotate"
)

// AnnotationCarrier carries one document through the pipeline: its raw
// source text, and, once ParseAnnotations has run, the annotate.ParseResult
// recovered from it.
//
// Before parsing, UTF8String returns Source. After parsing, it returns
// Result.Text, the clean text with markup removed, so a carrier can be fed
// straight into another text-oriented stage (a tokenizer, a summarizer, ...)
// without that stage ever needing to know annotate.Parse ran.
type AnnotationCarrier struct {
	Source string
	Result annotate.ParseResult
	Parsed bool
	Index  int
	Error  error
}

func (a AnnotationCarrier) UTF8String() UTF8String {
	if a.Parsed {
		return a.Result.Text
	}
	return a.Source
}

func (a AnnotationCarrier) FromUTF8String(s UTF8String) AnnotationCarrier {
	return AnnotationCarrier{Source: s}
}

func (a AnnotationCarrier) WithIndex(idx int) AnnotationCarrier {
	a.Index = idx
	return a
}

func (a AnnotationCarrier) GetIndex() int {
	return a.Index
}

func (a AnnotationCarrier) WithError(err error) AnnotationCarrier {
	if err == nil {
		return a
	}
	if a.Error == nil {
		a.Error = err
	} else {
		a.Error = errors.Join(a.Error, err)
	}
	return a
}

func (a AnnotationCarrier) GetError() error {
	return a.Error
}

// AnnotationTags returns the distinct tag names covering any segment of the
// parsed result, in first-seen order. It implements tagSource, which
// CompilePredicate uses to expose a "tags" variable to compiled expressions.
func (a AnnotationCarrier) AnnotationTags() []string {
	if !a.Parsed {
		return nil
	}
	seen := make(map[string]struct{})
	var tags []string
	for _, seg := range a.Result.Segments {
		for _, ann := range seg.Annotations {
			if _, ok := seen[ann.Tag]; ok {
				continue
			}
			seen[ann.Tag] = struct{}{}
			tags = append(tags, ann.Tag)
		}
	}
	return tags
}

// Aggregate joins multiple documents' clean text back into a single
// unparsed carrier, stably ordered by Index and separated the same way
// ScanDocuments expects to find them (a blank line), so the result can be
// re-fed through the pipeline.
func (a AnnotationCarrier) Aggregate(items []AnnotationCarrier) AnnotationCarrier {
	sorted := make([]AnnotationCarrier, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Index != sorted[j].Index {
			return sorted[i].Index < sorted[j].Index
		}
		return sorted[i].UTF8String() < sorted[j].UTF8String()
	})

	parts := make([]string, len(sorted))
	for i, it := range sorted {
		parts[i] = it.UTF8String()
	}

	return AnnotationCarrier{Source: strings.Join(parts, "\n\n")}
}
