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

// scanAttributes walks an attribute-bearing region left to right and
// returns whatever mapping it can build. It never fails: an empty residue,
// a name that doesn't parse, or a broken quote all just end scanning (or,
// for a broken quote, consume the rest of the region as the value).
//
// Duplicate names: the last occurrence wins, which falls out naturally from
// writing into a map.
func scanAttributes(region string) map[string]AttrValue {
	attrs := map[string]AttrValue{}
	i, n := 0, len(region)

	for i < n {
		for i < n && isAttrSpace(region[i]) {
			i++
		}
		if i >= n {
			break
		}

		name, _, ok := scanName(region[i:])
		if !ok || name == "" {
			break
		}
		i += len(name)

		j := i
		for j < n && isAttrSpace(region[j]) {
			j++
		}
		if j >= n || region[j] != '=' {
			attrs[name] = BoolAttr()
			i = j
			continue
		}
		j++
		for j < n && isAttrSpace(region[j]) {
			j++
		}

		if j < n && (region[j] == '\'' || region[j] == '"') {
			quote := region[j]
			j++
			if end := strings.IndexByte(region[j:], quote); end != -1 {
				attrs[name] = StrAttr(region[j : j+end])
				i = j + end + 1
				continue
			}
			// Broken quote: the rest of the region is the value, and
			// scanning terminates.
			attrs[name] = StrAttr(region[j:])
			break
		}

		start := j
		for j < n && !isAttrSpace(region[j]) && region[j] != '/' && region[j] != '>' {
			j++
		}
		if j == start && start < n {
			j = n
		}
		attrs[name] = StrAttr(region[start:j])
		i = j
	}

	return attrs
}
