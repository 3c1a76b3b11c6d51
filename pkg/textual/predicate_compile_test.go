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
	"testing"
	"time"

	"github.com/benoit-pereira-da-silva/inlinexml/pkg/annotate"
)

func TestCompilePredicate_MatchesOnText(t *testing.T) {
	pred, err := CompilePredicate[String](`text contains "urgent"`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if !pred(context.Background(), String{Value: "this is urgent work"}) {
		t.Fatalf("expected predicate to match")
	}
	if pred(context.Background(), String{Value: "nothing to see here"}) {
		t.Fatalf("expected predicate not to match")
	}
}

func TestCompilePredicate_MatchesOnAnnotationTags(t *testing.T) {
	pred, err := CompilePredicate[AnnotationCarrier](`len(tags) > 0 && tags[0] == "risk"`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	cfg := annotate.NewParserConfig().WithRecognizedTags("risk")
	withRisk := AnnotationCarrier{Source: "<risk>late</risk> delivery"}
	withRisk.Result = annotate.Parse(withRisk.Source, cfg)
	withRisk.Parsed = true

	withoutRisk := AnnotationCarrier{Source: "all clear"}
	withoutRisk.Result = annotate.Parse(withoutRisk.Source, cfg)
	withoutRisk.Parsed = true

	if !pred(context.Background(), withRisk) {
		t.Fatalf("expected predicate to match carrier tagged risk")
	}
	if pred(context.Background(), withoutRisk) {
		t.Fatalf("expected predicate not to match carrier without risk tag")
	}
}

func TestCompilePredicate_InvalidExpressionFailsToCompile(t *testing.T) {
	_, err := CompilePredicate[String](`text ===`)
	if err == nil {
		t.Fatalf("expected a compile error for malformed expression")
	}
}

func TestCompilePredicate_WiresIntoRouter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	isUrgent, err := CompilePredicate[String](`text contains "urgent"`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	r := NewRouter[String](RoutingStrategyFirstMatch)
	r.AddRoute(isUrgent, upperProcessor())
	r.AddProcessor(lowerProcessor())

	in := make(chan String, 2)
	in <- String{Value: "urgent fix", Index: 0}
	in <- String{Value: "Routine Check", Index: 1}
	close(in)

	items, err := collectWithContext(ctx, r.Apply(ctx, in))
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	sortByIndex(items)

	if got, want := items[0].Value, "URGENT FIX"; got != want {
		t.Fatalf("unexpected item[0]: got %q want %q", got, want)
	}
	if got, want := items[1].Value, "routine check"; got != want {
		t.Fatalf("unexpected item[1]: got %q want %q", got, want)
	}
}
