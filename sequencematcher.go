// Copyright 2016 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sdcmatch

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring"
	"github.com/dustin/go-humanize"
	sglog "github.com/sourcegraph/log"
)

// MatcherState is the two-state lifecycle of a SequenceMatcher described in
// spec.md §4.3: BUILDING accepts Reserve/Append/Emplace, QUERYING means at
// least one MatchIter obtained from Match is still open. The transition is
// purely diagnostic — overlapping match iterators are permitted, and (per
// spec.md §5) mutating the token list while QUERYING is undefined behaviour
// the matcher does not detect, not an error this package raises.
type MatcherState int32

const (
	Building MatcherState = iota
	Querying
)

func (s MatcherState) String() string {
	if s == Querying {
		return "QUERYING"
	}
	return "BUILDING"
}

// MatcherOptions configures a SequenceMatcher at construction time. The
// zero value is a matcher with no logging and no metrics, matching the
// teacher's convention of an in-process options struct (zoekt.SearchOptions)
// rather than parsed external configuration — no config concern belongs to
// this library per spec.md §1/§6.
type MatcherOptions struct {
	// Logger receives one Debug-level line per emitted match; nothing else
	// is logged. A nil Logger (the zero value) is replaced by sglog.NoOp().
	Logger sglog.Logger

	// Metrics, if non-nil, is incremented as match() calls progress.
	Metrics *Metrics
}

// tokenEntry is one reference-sequence token's Bigrams. The "strip" flag
// (may this token open/close a match?) lives out-of-line in
// SequenceMatcher.strip, a roaring.Bitmap, so a reference with few or no
// stripped tokens costs close to nothing regardless of N — the same
// compact-posting-list idiom query.Q's Repos *roaring.Bitmap uses for id
// sets.
type tokenEntry struct {
	bigrams Bigrams
}

// SequenceMatcher holds a reference token sequence as a flat vector of
// per-token Bigrams and finds contiguous sub-ranges whose combined bigrams
// reach a Sørensen–Dice similarity threshold against a query.
type SequenceMatcher struct {
	tokens []tokenEntry
	strip  *roaring.Bitmap

	opts MatcherOptions

	// activeIters is incremented by Match and decremented when the
	// returned MatchIter is closed (exhausted or explicitly Close'd); it
	// backs State purely for diagnostics.
	activeIters int32
}

// NewSequenceMatcher returns an empty matcher with reserve slots
// pre-allocated for later 1-by-1 Append/Emplace calls.
func NewSequenceMatcher(reserve int, opts MatcherOptions) *SequenceMatcher {
	m := &SequenceMatcher{opts: opts, strip: roaring.New()}
	m.Reserve(reserve)
	return m
}

// sequenceToken is the union of the four shapes the source's constructor
// and match() accept for one token: a string, a Bigrams, or either paired
// with a strip flag.
type sequenceToken struct {
	value any // string or Bigrams
	strip bool
}

// Token builds a sequenceToken with strip=false, for NewSequenceMatcherFromTokens.
func Token(value any) sequenceToken { return sequenceToken{value: value} }

// StrippedToken builds a sequenceToken flagged as a structural separator.
func StrippedToken(value any) sequenceToken { return sequenceToken{value: value, strip: true} }

// NewSequenceMatcherFromTokens reproduces the source's SequenceMatcher
// constructor that accepts an initial token iterable (spec.md §9 /
// SPEC_FULL.md §4): it pre-sizes the reservation from len(tokens) and
// appends each one in order. Returns ErrUnsupportedToken if any token's
// value is neither a string nor a Bigrams.
func NewSequenceMatcherFromTokens(tokens []sequenceToken, opts MatcherOptions) (*SequenceMatcher, error) {
	m := NewSequenceMatcher(len(tokens), opts)
	for _, t := range tokens {
		if err := m.appendValue(t.value, t.strip); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Reserve hints at the eventual token count; it is an O(1) amortized-cost
// optimization, never required for correctness.
func (m *SequenceMatcher) Reserve(n int) {
	if n > cap(m.tokens) {
		grown := make([]tokenEntry, len(m.tokens), n)
		copy(grown, m.tokens)
		m.tokens = grown
	}
}

// Append adds bigrams as the next token. If strip is true, the matcher
// will never emit a match beginning or ending with this token (it is
// structurally a separator), though its bigrams still contribute to the
// unions of ranges that pass through it.
func (m *SequenceMatcher) Append(bigrams Bigrams, strip bool) {
	idx := len(m.tokens)
	m.tokens = append(m.tokens, tokenEntry{bigrams: bigrams})
	if strip {
		m.strip.Add(uint32(idx))
	}
}

// Emplace is equivalent to Append(FromString(s), strip).
func (m *SequenceMatcher) Emplace(s string, strip bool) {
	m.Append(FromString(s), strip)
}

// appendValue accepts the string|Bigrams union used by the convenience
// constructor and by NewQueryBigrams's sibling on the matcher side.
func (m *SequenceMatcher) appendValue(value any, strip bool) error {
	switch v := value.(type) {
	case Bigrams:
		m.Append(v, strip)
	case string:
		m.Emplace(v, strip)
	default:
		return ErrUnsupportedToken
	}
	return nil
}

// Size returns the number of tokens appended so far.
func (m *SequenceMatcher) Size() int {
	return len(m.tokens)
}

// State reports whether any MatchIter obtained from Match is still open.
func (m *SequenceMatcher) State() MatcherState {
	if atomic.LoadInt32(&m.activeIters) > 0 {
		return Querying
	}
	return Building
}

// Clone always fails: SequenceMatcher does not support copy or deep-copy,
// matching the source's __copy__/__deepcopy__, which unconditionally raise
// SequenceMatcher.Error. A matcher can only be built up via Append/Emplace.
func (m *SequenceMatcher) Clone() (*SequenceMatcher, error) {
	return nil, ErrCopyUnsupported
}

// SizeBytes is a rough estimate of the matcher's resident memory, in the
// same spirit as arrayNgramOffset.SizeBytes: it does not materialize the
// union matrix (which is built per match() call and never persisted), only
// the stored per-token Bigrams and the strip bitmap.
func (m *SequenceMatcher) SizeBytes() int {
	total := int(m.strip.GetSizeInBytes())
	for _, t := range m.tokens {
		total += 24 + 16*len(t.bigrams.entries) // slice header + (Bigram,count) entries
	}
	return total
}

func (m *SequenceMatcher) String() string {
	return fmt.Sprintf("SequenceMatcher(tokens: %d, size: %s)", len(m.tokens), humanize.Bytes(uint64(m.SizeBytes())))
}

// Match returns a MatchIter over every contiguous token range whose SDC
// against query is at least threshold and whose first and last tokens are
// not strip tokens, in canonical order: ascending
// begin, ties broken by ascending end. If includeBigrams is true, each
// emitted Match carries its own independent clone of the range's Bigrams.
//
// The matcher itself is not mutated by Match and may be shared across
// overlapping match() calls; all per-call state (the running per-column
// union) lives in the returned MatchIter, matching the "iterator owns the
// rolling buffer" option spec.md §5 calls out as keeping the matcher
// read-only and shareable during a match call.
func (m *SequenceMatcher) Match(query Bigrams, threshold float64, includeBigrams bool) *MatchIter {
	atomic.AddInt32(&m.activeIters, 1)

	base := m.opts.Logger
	if base == nil {
		base = sglog.NoOp()
	}
	logger := base.Scoped("match", "one SequenceMatcher.Match() call").
		With(sglog.Int("tokens", len(m.tokens)), sglog.Float64("threshold", threshold))

	return &MatchIter{
		m:              m,
		query:          query,
		threshold:      threshold,
		includeBigrams: includeBigrams,
		n:              len(m.tokens),
		logger:         logger,
		start:          time.Now(),
	}
}
