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

// NewQueryBigrams builds a single Bigrams out of one or more query tokens,
// unioning them left to right. Each token must be a string or a Bigrams;
// anything else is ErrUnsupportedToken. This is the adaptor spec.md §9
// calls for: the source's match() accepts a bare string/Bigrams or an
// iterable of either, combining them by union before matching.
func NewQueryBigrams(tokens ...any) (Bigrams, error) {
	var out Bigrams
	for _, t := range tokens {
		b, err := tokenBigrams(t)
		if err != nil {
			return Bigrams{}, err
		}
		out.UnionInPlace(b)
	}
	return out, nil
}

func tokenBigrams(t any) (Bigrams, error) {
	switch v := t.(type) {
	case Bigrams:
		return v, nil
	case string:
		return FromString(v), nil
	default:
		return Bigrams{}, ErrUnsupportedToken
	}
}
