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
	"github.com/stretchr/testify/require"
)

func TestParse_WellFormedTagProducesExplicitSpan(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("source")
	res := Parse(`The sky is blue <source id="1">NASA</source> today.`, cfg)

	assert.Equal(t, `The sky is blue NASA today.`, res.Text)
	require.Len(t, res.Segments, 3)
	assert.Equal(t, "The sky is blue ", res.Segments[0].Text)
	assert.Empty(t, res.Segments[0].Annotations)
	assert.Equal(t, "NASA", res.Segments[1].Text)
	require.Len(t, res.Segments[1].Annotations, 1)
	assert.Equal(t, "source", res.Segments[1].Annotations[0].Tag)
	assert.Equal(t, StrAttr("1"), res.Segments[1].Annotations[0].Attrs["id"])
	assert.Equal(t, " today.", res.Segments[2].Text)
}

func TestParse_PostfixCitationRecoversRetroLine(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("source")
	res := Parse("Paris is the capital of France <source>today.", cfg)

	require.Len(t, res.Segments, 2)
	assert.Equal(t, "Paris is the capital of France", res.Segments[0].Text)
	require.Len(t, res.Segments[0].Annotations, 1)
	assert.Equal(t, "source", res.Segments[0].Annotations[0].Tag)
	assert.Equal(t, " today.", res.Segments[1].Text)
	assert.Empty(t, res.Segments[1].Annotations)
}

func TestParse_UnclosedTagDrainsAtEndOfDocument(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("source")
	res := Parse("Water boils at 100C. <source>", cfg)

	assert.Equal(t, "Water boils at 100C. ", res.Text)
	require.Len(t, res.Segments, 2)
	assert.Equal(t, "Water boils at 100C", res.Segments[0].Text)
	require.Len(t, res.Segments[0].Annotations, 1)
	assert.Equal(t, "source", res.Segments[0].Annotations[0].Tag)
	assert.Equal(t, ". ", res.Segments[1].Text)
	assert.Empty(t, res.Segments[1].Annotations)
}

func TestParse_RetroLineEmitsNothingWhenOpenerStartsALineWithNoPrecedingText(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("source")
	res := Parse("Water boils at 100C.\n<source>", cfg)

	assert.Equal(t, "Water boils at 100C.\n", res.Text)
	require.Len(t, res.Segments, 1)
	assert.Equal(t, "Water boils at 100C.\n", res.Segments[0].Text)
	assert.Empty(t, res.Segments[0].Annotations)
}

func TestParse_SelfClosingTagProducesZeroWidthMarker(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("cite")
	res := Parse(`See the appendix<cite id="7"/> for details.`, cfg)

	assert.Equal(t, "See the appendix for details.", res.Text)
	require.Len(t, res.Markers, 1)
	assert.Equal(t, len("See the appendix"), res.Markers[0].Pos)
	assert.Equal(t, "cite", res.Markers[0].Annotation.Tag)
	assert.Equal(t, StrAttr("7"), res.Markers[0].Annotation.Attrs["id"])
}

func TestParse_StrayEndTagDroppedByDefault(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("source")
	res := Parse("Nothing was open.</source> Continuing.", cfg)

	assert.Equal(t, "Nothing was open. Continuing.", res.Text)
	for _, seg := range res.Segments {
		assert.Empty(t, seg.Annotations)
	}
}

func TestParse_StrayEndTagPassthrough(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("source")
	cfg.StrayEndTagPolicy = StrayPassthrough
	res := Parse("Nothing was open.</source> Continuing.", cfg)

	assert.Contains(t, res.Text, "</source>")
}

func TestParse_UnknownTagStripByDefault(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("source")
	res := Parse("A <widget>sprocket</widget> B", cfg)
	assert.Equal(t, "A sprocket B", res.Text)
}

func TestParse_UnknownTagPassthrough(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("source")
	cfg.UnknownMode = Passthrough
	res := Parse("A <widget>sprocket</widget> B", cfg)
	assert.Equal(t, "A <widget>sprocket</widget> B", res.Text)
}

func TestParse_UnknownTagTreatAsTextDisablesAutoclose(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("source")
	cfg.UnknownMode = TreatAsText
	res := Parse(`<source>kept open<widget>literal</widget>still open</source>`, cfg)

	require.Len(t, res.Segments, 1)
	assert.Equal(t, "kept open<widget>literal</widget>still open", res.Segments[0].Text)
	require.Len(t, res.Segments[0].Annotations, 1)
	assert.Equal(t, "source", res.Segments[0].Annotations[0].Tag)
}

func TestParse_AutocloseOnSameTagClosesPreviousBeforeNesting(t *testing.T) {
	cfg := NewParserConfig().
		WithRecognizedTags("source").
		WithRecovery("source", ForwardUntilTag)
	res := Parse(`<source id="1">first<source id="2">second</source>`, cfg)

	require.Len(t, res.Segments, 2)
	assert.Equal(t, "first", res.Segments[0].Text)
	assert.Equal(t, StrAttr("1"), res.Segments[0].Annotations[0].Attrs["id"])
	assert.Equal(t, "second", res.Segments[1].Text)
	assert.Equal(t, StrAttr("2"), res.Segments[1].Annotations[0].Attrs["id"])
}

func TestParse_CaseInsensitiveTagMatchingPreservesOriginalCasing(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("source")
	cfg.CaseSensitiveTags = false
	res := Parse(`<SOURCE>claim</Source>`, cfg)

	require.Len(t, res.Segments, 1)
	require.Len(t, res.Segments[0].Annotations, 1)
	assert.Equal(t, "SOURCE", res.Segments[0].Annotations[0].Tag)
}

func TestParse_UnquotedAttributeValue(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("source")
	res := Parse(`<source id=42>value</source>`, cfg)
	require.Len(t, res.Segments, 1)
	assert.Equal(t, StrAttr("42"), res.Segments[0].Annotations[0].Attrs["id"])
}

func TestParse_NestedDistinctTagsShareOneSegmentWithTwoAnnotations(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("source", "emphasis")
	cfg.AutocloseOnAnyTag = false
	res := Parse(`<source><emphasis>bold claim</emphasis></source>`, cfg)

	require.Len(t, res.Segments, 1)
	assert.Equal(t, "bold claim", res.Segments[0].Text)
	require.Len(t, res.Segments[0].Annotations, 2)

	tags := []string{res.Segments[0].Annotations[0].Tag, res.Segments[0].Annotations[1].Tag}
	assert.Equal(t, []string{"emphasis", "source"}, tags)
}

func TestParse_EmptyInput(t *testing.T) {
	res := Parse("", NewParserConfig())
	assert.Equal(t, "", res.Text)
	assert.Empty(t, res.Segments)
	assert.Empty(t, res.Markers)
}

func TestParse_CDATAIsCopiedVerbatimAndNeverTokenized(t *testing.T) {
	cfg := NewParserConfig().WithRecognizedTags("source")
	res := Parse(`<![CDATA[<source>not a real tag</source>]]> plain text`, cfg)

	assert.Equal(t, "<source>not a real tag</source> plain text", res.Text)
	assert.Empty(t, res.Segments[0].Annotations)
}

func TestParse_UnrecognizedBareAngleBracketIsLiteralText(t *testing.T) {
	res := Parse("3 < 5 and 5 > 3", NewParserConfig())
	assert.Equal(t, "3 < 5 and 5 > 3", res.Text)
}
