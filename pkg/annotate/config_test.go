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

func TestNewParserConfig_Defaults(t *testing.T) {
	cfg := NewParserConfig()
	assert.Equal(t, Strip, cfg.UnknownMode)
	assert.True(t, cfg.AutocloseOnAnyTag)
	assert.True(t, cfg.AutocloseOnSameTag)
	assert.True(t, cfg.TrimPunctuation)
	assert.True(t, cfg.CaseSensitiveTags)
	assert.Equal(t, StrayDrop, cfg.StrayEndTagPolicy)
	assert.Empty(t, cfg.RecognizedTags)
}

func TestParserConfig_WithRecognizedTagsAndRecovery(t *testing.T) {
	cfg := NewParserConfig().
		WithRecognizedTags("source", "cite").
		WithRecovery("cite", ForwardNextToken)

	_, isSource := cfg.RecognizedTags["source"]
	_, isCite := cfg.RecognizedTags["cite"]
	assert.True(t, isSource)
	assert.True(t, isCite)
	assert.Equal(t, ForwardNextToken, cfg.PerTagRecovery["cite"])
}

func TestCompile_FoldsNamesWhenCaseInsensitive(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("Source")
	cfg.CaseSensitiveTags = false
	cfg = cfg.WithRecovery("Source", ForwardUntilNewline)

	compiled := compile(cfg)
	assert.True(t, compiled.isRecognized("source"))
	assert.Equal(t, ForwardUntilNewline, compiled.strategyFor("source"))
}

func TestCompile_CaseSensitiveKeepsNamesDistinct(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("Source")
	compiled := compile(cfg)
	assert.True(t, compiled.isRecognized("Source"))
	assert.False(t, compiled.isRecognized("source"))
}

func TestCompiledConfig_StrategyForDefaultsToRetroLine(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("source")
	compiled := compile(cfg)
	assert.Equal(t, RetroLine, compiled.strategyFor("source"))
}

func TestNewLLMFriendlyConfig_RecognizesExpectedTagsAndStrategies(t *testing.T) {
	cfg := NewLLMFriendlyConfig()
	assert.False(t, cfg.CaseSensitiveTags)
	for _, tag := range []string{"cite", "note", "todo", "claim", "risk", "code"} {
		_, ok := cfg.RecognizedTags[tag]
		assert.True(t, ok, "expected %q to be recognized", tag)
	}
	assert.Equal(t, RetroLine, cfg.PerTagRecovery["cite"])
	for _, tag := range []string{"note", "todo", "claim", "risk", "code"} {
		assert.Equal(t, ForwardUntilTag, cfg.PerTagRecovery[tag], "tag %q", tag)
	}
}

func TestNewCiteConfig_RecognizesOnlyCiteWithRetroLine(t *testing.T) {
	cfg := NewCiteConfig()
	assert.False(t, cfg.CaseSensitiveTags)
	assert.Len(t, cfg.RecognizedTags, 1)
	_, ok := cfg.RecognizedTags["cite"]
	assert.True(t, ok)
	assert.Equal(t, RetroLine, cfg.PerTagRecovery["cite"])
}
