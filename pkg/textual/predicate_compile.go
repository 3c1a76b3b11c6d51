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

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// predicateEnv is the environment an expression compiled by CompilePredicate
// is evaluated against. text is the carrier's UTF8String, index its ordering
// index, and tags the annotation tags present on the carrier (empty for
// carriers that are not annotation-bearing, such as a bare String).
type predicateEnv struct {
	Text  string   `expr:"text"`
	Index int      `expr:"index"`
	Tags  []string `expr:"tags"`
}

// tagSource is implemented by carriers that can report which annotation tags
// they carry. AnnotationCarrier implements it; String does not, and compiles
// down to an always-empty tags slice.
type tagSource interface {
	AnnotationTags() []string
}

// CompilePredicate compiles expression into a Predicate[S] evaluated, per
// item, against an environment exposing text (the carrier's UTF8String),
// index (GetIndex()), and tags (the annotation tags present on the carrier,
// if it implements tagSource; otherwise empty).
//
// This lets Router/If/Try branch conditions be driven by configuration data
// instead of a hand-written Go closure, e.g.:
//
//	p, err := CompilePredicate[AnnotationCarrier](`len(tags) > 0 && text contains "risk"`)
//
// CompilePredicate returns an error if expression fails to compile against
// the predicateEnv shape. An error while evaluating the compiled program for
// an item (for example an out-of-range index) makes the predicate report
// false for that item.
func CompilePredicate[S Carrier[S]](expression string) (Predicate[S], error) {
	program, err := expr.Compile(expression, expr.Env(predicateEnv{}), expr.AsBool())
	if err != nil {
		return nil, err
	}
	return newCompiledPredicate[S](program), nil
}

func newCompiledPredicate[S Carrier[S]](program *vm.Program) Predicate[S] {
	return func(ctx context.Context, item S) bool {
		_ = ctx
		env := predicateEnv{
			Text:  string(item.UTF8String()),
			Index: item.GetIndex(),
		}
		if ts, ok := any(item).(tagSource); ok {
			env.Tags = ts.AnnotationTags()
		}
		out, err := expr.Run(program, env)
		if err != nil {
			return false
		}
		matched, _ := out.(bool)
		return matched
	}
}
