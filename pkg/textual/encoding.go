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
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// SourceEncoding names a non-UTF-8 source encoding NewUTF8Reader can decode
// on the fly, so a reader feeding an IOReaderProcessor or IOReaderTranscoder
// can sit in front of a legacy or regionally-encoded document without the
// caller pre-converting it.
type SourceEncoding int

const (
	// ISO8859_1 is Latin-1, the common encoding for older Western European text.
	ISO8859_1 SourceEncoding = iota
	// Windows1252 is the Windows superset of ISO8859_1.
	Windows1252
	// ShiftJIS is the common legacy encoding for Japanese text.
	ShiftJIS
	// EUCKR is the common legacy encoding for Korean text.
	EUCKR
	// GBK is a common encoding for simplified Chinese text.
	GBK
	// Big5 is a common encoding for traditional Chinese text.
	Big5
)

func (e SourceEncoding) decoder() (encoding.Encoding, bool) {
	switch e {
	case ISO8859_1:
		return charmap.ISO8859_1, true
	case Windows1252:
		return charmap.Windows1252, true
	case ShiftJIS:
		return japanese.ShiftJIS, true
	case EUCKR:
		return korean.EUCKR, true
	case GBK:
		return simplifiedchinese.GBK, true
	case Big5:
		return traditionalchinese.Big5, true
	default:
		return nil, false
	}
}

// NewUTF8Reader wraps r so that every byte read back through the result has
// already been transcoded from enc into UTF-8. Decoding is streamed via
// transform.NewReader; it never buffers the whole input.
func NewUTF8Reader(r io.Reader, enc SourceEncoding) (io.Reader, error) {
	dec, ok := enc.decoder()
	if !ok {
		return nil, &UnsupportedEncodingError{Encoding: enc}
	}
	return transform.NewReader(r, dec.NewDecoder()), nil
}

// UnsupportedEncodingError is returned by NewUTF8Reader when asked to decode
// a SourceEncoding it does not recognize.
type UnsupportedEncodingError struct {
	Encoding SourceEncoding
}

func (e *UnsupportedEncodingError) Error() string {
	return "textual: unsupported source encoding"
}
