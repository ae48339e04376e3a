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

// Package sdcmatch provides approximate matching of a query token sequence
// against a longer reference token sequence, ranked by Sørensen–Dice
// similarity over character bigram multisets.
package sdcmatch

import "fmt"

// Bigram is an ordered pair of adjacent Unicode scalar values drawn from a
// string. Bigrams are totally ordered lexicographically on (First, Second).
type Bigram struct {
	First, Second rune
}

// Less reports whether b sorts strictly before other.
func (b Bigram) Less(other Bigram) bool {
	if b.First != other.First {
		return b.First < other.First
	}
	return b.Second < other.Second
}

// Compare returns -1, 0 or 1 as b is less than, equal to, or greater than
// other, following the same total order as Less.
func (b Bigram) Compare(other Bigram) int {
	switch {
	case b.First < other.First:
		return -1
	case b.First > other.First:
		return 1
	case b.Second < other.Second:
		return -1
	case b.Second > other.Second:
		return 1
	default:
		return 0
	}
}

func (b Bigram) String() string {
	return fmt.Sprintf("%c%c", b.First, b.Second)
}

// bigramsOf splits s into its ordered sequence of adjacent-scalar bigrams.
// Iteration is over Unicode scalar values (runes), so a surrogate-unsafe
// encoding never produces a split scalar.
func bigramsOf(s string) []Bigram {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}
	out := make([]Bigram, 0, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		out = append(out, Bigram{runes[i], runes[i+1]})
	}
	return out
}
