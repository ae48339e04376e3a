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
	"strings"

	"golang.org/x/exp/slices"
)

// OrderedMultiset and UnorderedMultiset exist purely for parity with
// benchmarks that compare the counted Bigrams representation against a
// plain bag of elements; SequenceMatcher always uses Bigrams. Neither type
// is required for correctness and either may be omitted by a minimal
// reimplementation (spec.md §4.2).

// OrderedMultiset is a bag of Bigram occurrences kept sorted ascending,
// with duplicates represented as repeated elements rather than counts.
type OrderedMultiset struct {
	elems []Bigram
}

// NewOrderedMultiset returns an empty OrderedMultiset.
func NewOrderedMultiset() OrderedMultiset { return OrderedMultiset{} }

// OrderedMultisetFromString builds the sorted bag of s's bigrams.
func OrderedMultisetFromString(s string) OrderedMultiset {
	elems := bigramsOf(s)
	slices.SortFunc(elems, Bigram.Compare)
	return OrderedMultiset{elems: elems}
}

// Size returns the number of elements, O(1).
func (m OrderedMultiset) Size() int { return len(m.elems) }

// Clone returns a deep, independent copy.
func (m OrderedMultiset) Clone() OrderedMultiset {
	return OrderedMultiset{elems: append([]Bigram(nil), m.elems...)}
}

// Iter returns the bag's elements in ascending order, without counts.
func (m OrderedMultiset) Iter() []Bigram { return m.elems }

// UnionInPlace merges other's elements into m, leaving other unchanged.
func (m *OrderedMultiset) UnionInPlace(other OrderedMultiset) {
	merged := make([]Bigram, 0, len(m.elems)+len(other.elems))
	i, j := 0, 0
	for i < len(m.elems) && j < len(other.elems) {
		if other.elems[j].Less(m.elems[i]) {
			merged = append(merged, other.elems[j])
			j++
		} else {
			merged = append(merged, m.elems[i])
			i++
		}
	}
	merged = append(merged, m.elems[i:]...)
	merged = append(merged, other.elems[j:]...)
	m.elems = merged
}

// OrderedMultisetUnion returns clone(a) unioned with b.
func OrderedMultisetUnion(a, b OrderedMultiset) OrderedMultiset {
	out := a.Clone()
	out.UnionInPlace(b)
	return out
}

// OrderedMultisetIntersectSize sums min(count, count) over shared elements
// via a linear merge over the two sorted element sequences.
func OrderedMultisetIntersectSize(a, b OrderedMultiset) int {
	total := 0
	i, j := 0, 0
	for i < len(a.elems) && j < len(b.elems) {
		switch a.elems[i].Compare(b.elems[j]) {
		case -1:
			i++
		case 1:
			j++
		default:
			total++
			i++
			j++
		}
	}
	return total
}

// OrderedMultisetSorensenDice mirrors SorensenDice for two sorted bags.
func OrderedMultisetSorensenDice(a, b OrderedMultiset) float64 {
	denom := len(a.elems) + len(b.elems)
	if denom == 0 {
		return 1.0
	}
	return 2 * float64(OrderedMultisetIntersectSize(a, b)) / float64(denom)
}

func (m OrderedMultiset) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "wbigram_multiset(size: %d, {", len(m.elems))
	for i, e := range m.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteString("})")
	return b.String()
}

// UnorderedMultiset is a bag of Bigram occurrences whose iteration order is
// unspecified but deterministic within a single process run: elements are
// kept in insertion order, which is itself a deterministic function of the
// inputs, rather than relying on Go's randomized map iteration.
type UnorderedMultiset struct {
	elems []Bigram
}

// NewUnorderedMultiset returns an empty UnorderedMultiset.
func NewUnorderedMultiset() UnorderedMultiset { return UnorderedMultiset{} }

// UnorderedMultisetFromString builds the bag of s's bigrams in scan order.
func UnorderedMultisetFromString(s string) UnorderedMultiset {
	return UnorderedMultiset{elems: bigramsOf(s)}
}

// Size returns the number of elements, O(1).
func (m UnorderedMultiset) Size() int { return len(m.elems) }

// Clone returns a deep, independent copy.
func (m UnorderedMultiset) Clone() UnorderedMultiset {
	return UnorderedMultiset{elems: append([]Bigram(nil), m.elems...)}
}

// Iter returns the bag's elements in their (unspecified, deterministic)
// internal order, without counts.
func (m UnorderedMultiset) Iter() []Bigram { return m.elems }

// UnionInPlace appends other's elements to m, leaving other unchanged.
func (m *UnorderedMultiset) UnionInPlace(other UnorderedMultiset) {
	m.elems = append(m.elems, other.elems...)
}

// UnorderedMultisetUnion returns clone(a) unioned with b.
func UnorderedMultisetUnion(a, b UnorderedMultiset) UnorderedMultiset {
	out := a.Clone()
	out.UnionInPlace(b)
	return out
}

// UnorderedMultisetIntersectSize builds a transient counted histogram of the
// smaller side and sums min(count, lookups) against the larger side.
func UnorderedMultisetIntersectSize(a, b UnorderedMultiset) int {
	small, large := a.elems, b.elems
	if len(large) < len(small) {
		small, large = large, small
	}

	hist := make(map[Bigram]int, len(small))
	for _, e := range small {
		hist[e]++
	}

	total := 0
	for _, e := range large {
		if hist[e] > 0 {
			hist[e]--
			total++
		}
	}
	return total
}

// UnorderedMultisetSorensenDice mirrors SorensenDice for two bags.
func UnorderedMultisetSorensenDice(a, b UnorderedMultiset) float64 {
	denom := len(a.elems) + len(b.elems)
	if denom == 0 {
		return 1.0
	}
	return 2 * float64(UnorderedMultisetIntersectSize(a, b)) / float64(denom)
}

func (m UnorderedMultiset) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "wbigram_multiset(size: %d, {", len(m.elems))
	for i, e := range m.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteString("})")
	return b.String()
}
