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

import "bytes"

// ScanDocuments is a bufio.SplitFunc that tokenizes a stream of many
// LLM-generated documents into one token per document.
//
// Framing behaviour:
//
//   - Documents are separated by a blank line, i.e. two or more consecutive
//     '\n' characters.
//   - The returned token does NOT include the separating blank line(s).
//   - A document may itself contain unbalanced or malformed annotation
//     markup; ScanDocuments only frames records; it does not look inside
//     them. Parsing and recovery happen downstream, in pkg/annotate.
//
// Example:
//
//	scanner := bufio.NewScanner(r)
//	scanner.Split(textual.ScanDocuments)
//	for scanner.Scan() {
//	    doc := scanner.Text() // one complete document, no surrounding blank lines
//	}
func ScanDocuments(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.Index(data, []byte("\n\n")); i >= 0 {
		end := i
		j := i + 2
		for j < len(data) && data[j] == '\n' {
			j++
		}
		return j, data[:end], nil
	}

	if atEOF {
		return len(data), bytes.TrimRight(data, "\n"), nil
	}

	return 0, nil, nil
}
