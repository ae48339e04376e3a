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
	"sort"
	"strings"
)

// bigramCount is one (bigram, positive count) entry of a Bigrams multiset.
type bigramCount struct {
	b     Bigram
	count int
}

// Bigrams is a counted multiset of Bigram values, maintained as a slice
// ordered ascending by key (mirrors the sorted-array-plus-binary-search
// representation arrayNgramOffset uses for trigram postings: a merge over
// two ordered key sequences is the cheapest way to union or intersect).
//
// The zero value is an empty Bigrams ready to use.
type Bigrams struct {
	entries []bigramCount
	size    int
}

// NewBigrams returns an empty Bigrams.
func NewBigrams() Bigrams {
	return Bigrams{}
}

// FromString builds the Bigrams of s: for each i in [0, len(runes)-1), the
// pair (s[i], s[i+1]), with repeated pairs aggregated into one counted
// entry. Strings shorter than two scalars produce an empty Bigrams.
func FromString(s string) Bigrams {
	pairs := bigramsOf(s)
	if len(pairs) == 0 {
		return Bigrams{}
	}

	counts := make(map[Bigram]int, len(pairs))
	for _, p := range pairs {
		counts[p]++
	}
	return BigramsFromCounts(counts)
}

// BigramsFromCounts rebuilds a Bigrams from a bigram->count histogram, e.g.
// one produced by draining Iter. Entries with a non-positive count are
// dropped, honouring the "no zero counts" invariant.
func BigramsFromCounts(counts map[Bigram]int) Bigrams {
	entries := make([]bigramCount, 0, len(counts))
	size := 0
	for b, c := range counts {
		if c <= 0 {
			continue
		}
		entries = append(entries, bigramCount{b, c})
		size += c
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].b.Less(entries[j].b) })
	return Bigrams{entries: entries, size: size}
}

// Size is the total cardinality (sum of counts) of the multiset, in O(1).
func (bg Bigrams) Size() int {
	return bg.size
}

// Clone returns a deep, independent copy of bg.
func (bg Bigrams) Clone() Bigrams {
	if len(bg.entries) == 0 {
		return Bigrams{}
	}
	entries := make([]bigramCount, len(bg.entries))
	copy(entries, bg.entries)
	return Bigrams{entries: entries, size: bg.size}
}

// BigramsIter is a finite, non-restartable cursor over a Bigrams' entries in
// ascending key order. Obtain a fresh cursor with Bigrams.Iter.
type BigramsIter struct {
	entries []bigramCount
	idx     int
}

// Iter returns a fresh cursor positioned before the first entry.
func (bg Bigrams) Iter() *BigramsIter {
	return &BigramsIter{entries: bg.entries}
}

// Next returns the next (bigram, count) pair in ascending key order, and
// true, or the zero value and false once the cursor is exhausted.
func (it *BigramsIter) Next() (Bigram, int, bool) {
	if it.idx >= len(it.entries) {
		return Bigram{}, 0, false
	}
	e := it.entries[it.idx]
	it.idx++
	return e.b, e.count, true
}

// UnionInPlace adds every (bigram, count) of other into bg, leaving other
// unchanged. Implemented as a single linear merge over the two ordered key
// sequences, as spec'd for the counted multiset.
func (bg *Bigrams) UnionInPlace(other Bigrams) {
	if len(other.entries) == 0 {
		return
	}
	if len(bg.entries) == 0 {
		bg.entries = append([]bigramCount(nil), other.entries...)
		bg.size = other.size
		return
	}

	merged := make([]bigramCount, 0, len(bg.entries)+len(other.entries))
	i, j := 0, 0
	for i < len(bg.entries) && j < len(other.entries) {
		a, b := bg.entries[i], other.entries[j]
		switch a.b.Compare(b.b) {
		case -1:
			merged = append(merged, a)
			i++
		case 1:
			merged = append(merged, b)
			j++
		default:
			merged = append(merged, bigramCount{a.b, a.count + b.count})
			i++
			j++
		}
	}
	merged = append(merged, bg.entries[i:]...)
	merged = append(merged, other.entries[j:]...)

	bg.entries = merged
	bg.size += other.size
}

// Union returns clone(a) with b unioned in; neither a nor b is modified.
func Union(a, b Bigrams) Bigrams {
	out := a.Clone()
	out.UnionInPlace(b)
	return out
}

// IntersectSize returns sum(min(a[k], b[k])) over keys present in both a and
// b, computed by a single linear merge over the two ordered key sequences.
func IntersectSize(a, b Bigrams) int {
	total := 0
	i, j := 0, 0
	for i < len(a.entries) && j < len(b.entries) {
		x, y := a.entries[i], b.entries[j]
		switch x.b.Compare(y.b) {
		case -1:
			i++
		case 1:
			j++
		default:
			if x.count < y.count {
				total += x.count
			} else {
				total += y.count
			}
			i++
			j++
		}
	}
	return total
}

// SorensenDice returns the Sørensen–Dice coefficient of a and b,
// 2*|a∩b|/(|a|+|b|). By convention two empty multisets are identical and
// score 1.0 (the source this package is modeled on leaves this case
// undefined; see DESIGN.md).
func SorensenDice(a, b Bigrams) float64 {
	denom := a.size + b.size
	if denom == 0 {
		return 1.0
	}
	return 2 * float64(IntersectSize(a, b)) / float64(denom)
}

// String renders the diagnostic form "wbigrams(size: N, {k1: c1, k2: c2, ...})"
// in ascending key order, with no length bound.
func (bg Bigrams) String() string {
	return bg.Truncated(-1)
}

// Truncated renders the same diagnostic form as String, but if the result
// would exceed limit runes, cuts it to limit and appends a trailing "..." —
// the Go analogue of serialising into a fixed-size caller buffer and
// running out of room. limit < 0 means unbounded.
func (bg Bigrams) Truncated(limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "wbigrams(size: %d, {", bg.size)
	for i, e := range bg.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %d", e.b, e.count)
	}
	b.WriteString("})")

	full := b.String()
	if limit >= 0 {
		if runes := []rune(full); len(runes) > limit {
			return string(runes[:limit]) + "..."
		}
	}
	return full
}
