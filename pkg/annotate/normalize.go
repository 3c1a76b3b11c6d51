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

// foldName normalizes a tag name for comparison against RecognizedTags and
// PerTagRecovery. It never touches Annotation.Tag, which always keeps the
// casing written in the source.
//
// The name grammar (§6) restricts names to ASCII, so a plain byte-wise fold
// is exact here; it also keeps Parse safe to call concurrently on different
// input, unlike a shared golang.org/x/text/cases.Caser, which is stateful
// and not safe for concurrent reuse.
func foldName(name string, caseSensitive bool) string {
	if caseSensitive {
		return name
	}
	return strings.ToLower(name)
}
