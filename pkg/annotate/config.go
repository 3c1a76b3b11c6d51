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

// RecoveryStrategy determines the byte range a retroactively closed tag
// annotates.
type RecoveryStrategy int

const (
	// RetroLine annotates the text on the line preceding the opener. This is
	// the default strategy for a recognized tag with no explicit override,
	// and models the "postfix citation" idiom models love: the evidence
	// precedes the tag that names it.
	RetroLine RecoveryStrategy = iota

	// ForwardUntilTag annotates from the opener up to the point the tag is
	// closed (explicitly, by autoclose, or at end of document), stopping
	// early at a newline.
	//
	// It is behaviorally identical to ForwardUntilNewline in this version;
	// the two are kept as distinct identifiers because a future revision may
	// make ForwardUntilTag stop at the next tag start in input coordinates
	// instead.
	ForwardUntilTag

	// ForwardUntilNewline annotates from the opener up to the first newline
	// or the close position, whichever comes first. See ForwardUntilTag.
	ForwardUntilNewline

	// ForwardNextToken annotates only the first maximal run of alphanumeric
	// characters found between the opener and its close position.
	ForwardNextToken

	// Noop never emits a span for the tag; the tag is consumed (and its
	// markup removed from the clean text) but annotates nothing.
	Noop
)

// UnknownMode controls how tags whose name is not in RecognizedTags are
// handled.
type UnknownMode int

const (
	// Strip drops unknown tags entirely; none of their markup reaches the
	// clean text.
	Strip UnknownMode = iota

	// Passthrough copies an unknown tag's raw markup into the clean text
	// verbatim.
	Passthrough

	// TreatAsText copies an unknown tag's raw markup into the clean text
	// verbatim, like Passthrough, but additionally disables autoclose for
	// that token: it never pops or pushes the open-tag stack.
	TreatAsText
)

// StrayEndTagPolicy controls how a recognized-name end tag with no matching
// open tag on the stack is handled.
type StrayEndTagPolicy int

const (
	// StrayDrop discards a stray end tag silently.
	StrayDrop StrayEndTagPolicy = iota

	// StrayPassthrough copies a stray end tag's raw markup into the clean
	// text verbatim.
	StrayPassthrough
)

// ParserConfig controls how Parse recognizes and recovers tags. The zero
// value is usable but disables autoclose and trimming; call NewParserConfig
// to obtain the documented defaults.
type ParserConfig struct {
	// RecognizedTags is the set of tag names Parse treats as annotations.
	// Tags whose name is not a member follow UnknownMode. An empty set
	// means no tag is recognized.
	RecognizedTags map[string]struct{}

	// PerTagRecovery overrides the recovery strategy for a recognized tag.
	// A recognized tag with no entry here defaults to RetroLine.
	PerTagRecovery map[string]RecoveryStrategy

	// UnknownMode applies to tags whose name is not in RecognizedTags.
	UnknownMode UnknownMode

	// AutocloseOnAnyTag, when true, drains the entire open-tag stack before
	// pushing any new recognized start-like opener.
	AutocloseOnAnyTag bool

	// AutocloseOnSameTag, when true, closes through (and including) the
	// nearest open tag of the same name before pushing a new one of that
	// name, instead of nesting.
	AutocloseOnSameTag bool

	// TrimPunctuation, when true, trims whitespace and the punctuation set
	// { , . ; : ! ? ( ) } from the edges of recovered (non-explicit) spans.
	TrimPunctuation bool

	// CaseSensitiveTags, when false, compares RecognizedTags and
	// PerTagRecovery keys ASCII-case-insensitively. Annotation.Tag always
	// retains the casing written in the source, regardless of this setting.
	CaseSensitiveTags bool

	// StrayEndTagPolicy governs recognized-name end tags with no matching
	// open tag.
	StrayEndTagPolicy StrayEndTagPolicy
}

// NewParserConfig returns a ParserConfig with the documented defaults:
// Strip unknown tags, autoclose on both any and same tag, trim recovered
// spans, compare tag names case-sensitively, and drop stray closers.
func NewParserConfig() ParserConfig {
	return ParserConfig{
		RecognizedTags:     map[string]struct{}{},
		PerTagRecovery:     map[string]RecoveryStrategy{},
		UnknownMode:        Strip,
		AutocloseOnAnyTag:  true,
		AutocloseOnSameTag: true,
		TrimPunctuation:    true,
		CaseSensitiveTags:  true,
		StrayEndTagPolicy:  StrayDrop,
	}
}

// WithRecognizedTags replaces RecognizedTags with the given names and
// returns the config for chaining.
func (c ParserConfig) WithRecognizedTags(names ...string) ParserConfig {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	c.RecognizedTags = set
	return c
}

// WithRecovery sets a per-tag recovery strategy override and returns the
// config for chaining.
func (c ParserConfig) WithRecovery(name string, strategy RecoveryStrategy) ParserConfig {
	if c.PerTagRecovery == nil {
		c.PerTagRecovery = map[string]RecoveryStrategy{}
	}
	c.PerTagRecovery[name] = strategy
	return c
}

// NewLLMFriendlyConfig returns the ParserConfig tuned for the tag vocabulary
// language models reach for unprompted: cite, note, todo, claim, risk and
// code. cite recovers RetroLine (the evidence precedes the tag that names
// it); the rest recover ForwardUntilTag. Tag matching is case-insensitive.
func NewLLMFriendlyConfig() ParserConfig {
	c := NewParserConfig().
		WithRecognizedTags("cite", "note", "todo", "claim", "risk", "code").
		WithRecovery("cite", RetroLine)
	for _, tag := range []string{"note", "todo", "claim", "risk", "code"} {
		c = c.WithRecovery(tag, ForwardUntilTag)
	}
	c.CaseSensitiveTags = false
	return c
}

// NewCiteConfig returns a ParserConfig recognizing only cite, recovered
// RetroLine, case-insensitively. It is the minimal configuration for
// postfix-citation annotation.
func NewCiteConfig() ParserConfig {
	c := NewParserConfig().
		WithRecognizedTags("cite").
		WithRecovery("cite", RetroLine)
	c.CaseSensitiveTags = false
	return c
}

// compiledConfig is built once per Parse call from the normalized copies of
// RecognizedTags and PerTagRecovery, so tokenizing a document with many tags
// does not re-fold the same names over and over.
type compiledConfig struct {
	cfg        ParserConfig
	recognized map[string]struct{}
	recovery   map[string]RecoveryStrategy
}

func compile(cfg ParserConfig) *compiledConfig {
	recognized := make(map[string]struct{}, len(cfg.RecognizedTags))
	for name := range cfg.RecognizedTags {
		recognized[foldName(name, cfg.CaseSensitiveTags)] = struct{}{}
	}
	recovery := make(map[string]RecoveryStrategy, len(cfg.PerTagRecovery))
	for name, strat := range cfg.PerTagRecovery {
		recovery[foldName(name, cfg.CaseSensitiveTags)] = strat
	}
	return &compiledConfig{cfg: cfg, recognized: recognized, recovery: recovery}
}

func (c *compiledConfig) isRecognized(normalizedName string) bool {
	_, ok := c.recognized[normalizedName]
	return ok
}

func (c *compiledConfig) strategyFor(normalizedName string) RecoveryStrategy {
	if strat, ok := c.recovery[normalizedName]; ok {
		return strat
	}
	return RetroLine
}
