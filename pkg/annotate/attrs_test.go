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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanAttributes(t *testing.T) {
	attrs := scanAttributes(` id="42" verified source='a b c'`)
	assert.Equal(t, StrAttr("42"), attrs["id"])
	assert.True(t, attrs["verified"].IsBool())
	assert.Equal(t, StrAttr("a b c"), attrs["source"])
}

func TestScanAttributes_UnquotedValueStopsAtSpaceOrSlash(t *testing.T) {
	attrs := scanAttributes(` id=42 /`)
	assert.Equal(t, StrAttr("42"), attrs["id"])
	assert.Len(t, attrs, 1)
}

func TestScanAttributes_BrokenQuoteConsumesRestOfRegion(t *testing.T) {
	attrs := scanAttributes(` id="unterminated value continues`)
	assert.Equal(t, StrAttr("unterminated value continues"), attrs["id"])
	assert.Len(t, attrs, 1)
}

func TestScanAttributes_DuplicateNameLastWins(t *testing.T) {
	attrs := scanAttributes(` id="1" id="2"`)
	assert.Equal(t, StrAttr("2"), attrs["id"])
}

func TestScanAttributes_EmptyRegion(t *testing.T) {
	assert.Empty(t, scanAttributes(""))
	assert.Empty(t, scanAttributes("   "))
}

func TestScanAttributes_GarbageNameStopsScan(t *testing.T) {
	attrs := scanAttributes(` id="1" =bad more="2"`)
	assert.Equal(t, StrAttr("1"), attrs["id"])
	assert.Len(t, attrs, 1)
}
