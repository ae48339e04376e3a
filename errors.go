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

import "errors"

// ErrUnsupportedToken is returned by NewQueryBigrams and
// NewSequenceMatcherFromTokens when a token value is neither a string nor a
// Bigrams. Append, Emplace and Match take typed arguments and return no error.
var ErrUnsupportedToken = errors.New("sdcmatch: unsupported token type")

// ErrCopyUnsupported is returned by SequenceMatcher.Clone: the matcher does
// not support copy/deep-copy, matching the source's __copy__/__deepcopy__
// that unconditionally raise.
var ErrCopyUnsupported = errors.New("sdcmatch: SequenceMatcher does not support copying")

// OutOfMemory is not a Go error value: allocator exhaustion is a fatal
// runtime condition (Go panics and, if unrecovered, exits the process), not
// a returned error, so no sentinel is defined for it. Documented here per
// spec.md §7 rather than modeled with a value nothing ever returns.
