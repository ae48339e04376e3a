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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueryBigramsUnionsTokens(t *testing.T) {
	got, err := NewQueryBigrams("Sørenson", "and", "Dice")
	require.NoError(t, err)

	want := Union(Union(FromString("Sørenson"), FromString("and")), FromString("Dice"))
	assert.Equal(t, want.String(), got.String())
}

func TestNewQueryBigramsAcceptsBigramsValue(t *testing.T) {
	got, err := NewQueryBigrams(FromString("abc"), "def")
	require.NoError(t, err)

	want := Union(FromString("abc"), FromString("def"))
	assert.Equal(t, want.String(), got.String())
}

func TestNewQueryBigramsSingleToken(t *testing.T) {
	got, err := NewQueryBigrams("single")
	require.NoError(t, err)
	assert.Equal(t, FromString("single").String(), got.String())
}

func TestNewQueryBigramsRejectsUnsupportedToken(t *testing.T) {
	_, err := NewQueryBigrams("ok", 3.14)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedToken))
}

func TestNewQueryBigramsEmptyIsEmpty(t *testing.T) {
	got, err := NewQueryBigrams()
	require.NoError(t, err)
	assert.Equal(t, 0, got.Size())
}
