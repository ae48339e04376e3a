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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1 of spec.md §8.
func TestFromStringAbcd(t *testing.T) {
	bg := FromString("abcd")
	require.Equal(t, 3, bg.Size())

	var got []string
	it := bg.Iter()
	for {
		b, c, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, b.String())
		assert.Equal(t, 1, c)
	}
	assert.Equal(t, []string{"ab", "bc", "cd"}, got)
	assert.Equal(t, "wbigrams(size: 3, {ab: 1, bc: 1, cd: 1})", bg.String())
}

// Scenario 2 of spec.md §8.
func TestFromStringSorensenNameCounts(t *testing.T) {
	bg := FromString("Sørensen")
	require.Equal(t, 7, bg.Size())

	want := map[string]int{"Sø": 1, "en": 2, "ns": 1, "re": 1, "se": 1, "ør": 1}
	got := map[string]int{}
	it := bg.Iter()
	for {
		b, c, ok := it.Next()
		if !ok {
			break
		}
		got[b.String()] = c
	}
	assert.Equal(t, want, got)
}

func TestFromStringSizeIsLenMinusOne(t *testing.T) {
	for n, s := range []string{"", "a", "ab", "abc", "abcd", "Sørensen", "aaaa"} {
		want := len([]rune(s)) - 1
		if want < 0 {
			want = 0
		}
		if got := FromString(s).Size(); got != want {
			t.Errorf("#%d: FromString(%q).Size() = %d, want %d", n, s, got, want)
		}
	}
}

// Scenario 3 of spec.md §8.
func TestIntersectSizeAndSorensenDice(t *testing.T) {
	a, b := FromString("abcd"), FromString("bcd")
	require.Equal(t, 2, IntersectSize(a, b))
	assert.InDelta(t, 0.8, SorensenDice(a, b), 1e-9)
}

// Scenario 4 of spec.md §8: union must not mutate either operand.
func TestUnionDoesNotMutateOperands(t *testing.T) {
	a, b := FromString("abcd"), FromString("bcd")
	aBefore, bBefore := a.String(), b.String()

	u := Union(a, b)
	assert.Equal(t, 5, u.Size())
	assert.Equal(t, "wbigrams(size: 5, {ab: 1, bc: 2, cd: 2})", u.String())

	assert.Equal(t, aBefore, a.String())
	assert.Equal(t, bBefore, b.String())
}

func TestUnionInPlaceLeavesOtherUnchanged(t *testing.T) {
	a, b := FromString("abcd"), FromString("bcd")
	bBefore := b.Clone()

	a.UnionInPlace(b)
	assert.Equal(t, 5, a.Size())

	it1, it2 := b.Iter(), bBefore.Iter()
	for {
		b1, c1, ok1 := it1.Next()
		b2, c2, ok2 := it2.Next()
		if ok1 != ok2 {
			t.Fatalf("union_in_place mutated b: iterator length changed")
		}
		if !ok1 {
			break
		}
		if b1 != b2 || c1 != c2 {
			t.Fatalf("union_in_place mutated b: got (%v,%d), want (%v,%d)", b1, c1, b2, c2)
		}
	}
}

func TestSizeAdditiveUnderUnion(t *testing.T) {
	for n, pair := range [][2]string{
		{"abcd", "bcd"}, {"", ""}, {"a", "bcdefg"}, {"hello world", "world hello"},
	} {
		a, b := FromString(pair[0]), FromString(pair[1])
		u := Union(a, b)
		if got, want := u.Size(), a.Size()+b.Size(); got != want {
			t.Errorf("#%d: size(union(a,b)) = %d, want %d", n, got, want)
		}
	}
}

func TestIntersectSizeBounds(t *testing.T) {
	for n, pair := range [][2]string{
		{"abcd", "bcde"}, {"", "abcd"}, {"same", "same"}, {"xyz", "abc"},
	} {
		a, b := FromString(pair[0]), FromString(pair[1])
		got := IntersectSize(a, b)
		if got < 0 || got > a.Size() || got > b.Size() {
			t.Errorf("#%d: intersect_size(%q,%q) = %d out of bounds [0, min(%d,%d)]",
				n, pair[0], pair[1], got, a.Size(), b.Size())
		}
		if got2 := IntersectSize(b, a); got2 != got {
			t.Errorf("#%d: intersect_size is not symmetric: %d vs %d", n, got, got2)
		}
	}
}

func TestSorensenDiceSelfIsOne(t *testing.T) {
	for _, s := range []string{"ab", "abcdef", "Sørensen"} {
		a := FromString(s)
		if got := SorensenDice(a, a); got != 1.0 {
			t.Errorf("sorensen_dice(%q,%q) = %v, want 1.0", s, s, got)
		}
	}
}

// The empty-set convention spec.md §9 fixes at 1.0.
func TestSorensenDiceEmptyEmptyIsOne(t *testing.T) {
	if got := SorensenDice(Bigrams{}, Bigrams{}); got != 1.0 {
		t.Errorf("sorensen_dice(empty,empty) = %v, want 1.0", got)
	}
}

func TestSorensenDiceRange(t *testing.T) {
	for n, pair := range [][2]string{
		{"abcd", "bcde"}, {"", "abcd"}, {"xyz", "abc"}, {"same", "same"},
	} {
		a, b := FromString(pair[0]), FromString(pair[1])
		got := SorensenDice(a, b)
		if got < 0 || got > 1 {
			t.Errorf("#%d: sorensen_dice(%q,%q) = %v out of [0,1]", n, pair[0], pair[1], got)
		}
	}
}

// Round-trip property of spec.md §8.
func TestRoundTripViaCounts(t *testing.T) {
	bg := FromString("Sørensen")

	counts := map[Bigram]int{}
	it := bg.Iter()
	for {
		b, c, ok := it.Next()
		if !ok {
			break
		}
		counts[b] = c
	}

	rebuilt := BigramsFromCounts(counts)
	assert.Equal(t, bg.String(), rebuilt.String())
}

func TestCloneIsIndependent(t *testing.T) {
	a := FromString("abcd")
	clone := a.Clone()
	clone.UnionInPlace(FromString("xyz"))

	assert.NotEqual(t, a.Size(), clone.Size())
	assert.Equal(t, 3, a.Size())
}

func TestTruncatedAppendsEllipsisWhenExhausted(t *testing.T) {
	bg := FromString("abcdefgh")
	full := bg.String()

	got := bg.Truncated(10)
	assert.True(t, len(got) > 10)
	assert.Equal(t, full[:10]+"...", got)

	assert.Equal(t, full, bg.Truncated(-1))
	assert.Equal(t, full, bg.Truncated(len(full)))
}
