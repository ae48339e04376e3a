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
	"sync/atomic"
	"time"

	sglog "github.com/sourcegraph/log"
	"github.com/rs/xid"
)

// Match is one contiguous token range [Begin, End) whose combined bigrams
// reached the query threshold. Bigrams is nil unless the match() call that
// produced it was asked to include it, in which case it is an independent
// owned clone — mutating it never affects the matcher.
type Match struct {
	Begin, End int
	Score      float64
	Bigrams    *Bigrams
}

// MatchIter is the lazy sequence of Match values produced by
// SequenceMatcher.Match. It walks the conceptual upper-triangular union
// matrix column by column (ascending begin), and within a column row by row
// (ascending length), which is exactly canonical order (spec.md §4.3): no
// sorting step is needed, the walk order already is the emission order.
//
// Only one Bigrams accumulator is ever live at a time — the running union
// for the column currently being walked — which is a strictly tighter
// memory bound than the "retain a rolling buffer of length N-c" strategy
// spec.md §4.3 describes for a row-major internal traversal: because
// U[r][c] only ever depends on U[r-1][c] from the *same* column, a column
// can be accumulated and discarded independently of its neighbours.
type MatchIter struct {
	m              *SequenceMatcher
	query          Bigrams
	threshold      float64
	includeBigrams bool
	n              int

	c, r        int
	u           Bigrams
	initialized bool
	exhausted   bool

	logger    sglog.Logger
	id        xid.ID
	idMinted  bool
	start     time.Time
	closed    bool
}

// step moves (c, r, u) to the next candidate position, applying the SDC
// upper-bound prune (spec.md §4.3 "Early termination per column") to skip
// the rest of a column once no larger range in it can possibly match.
// Returns false once every column has been exhausted.
func (it *MatchIter) step() bool {
	if !it.initialized {
		it.initialized = true
		if it.n == 0 {
			it.exhausted = true
			return false
		}
		it.c, it.r = 0, 0
		it.u = it.m.tokens[0].bigrams.Clone()
		if it.m.opts.Metrics != nil {
			it.m.opts.Metrics.columnsStarted.Inc()
		}
		return true
	}

	// SDC(U, Q) <= 2*min(|U|,|Q|)/(|U|+|Q|); once |U| >= |Q| this bound is
	// strictly decreasing as |U| grows, so once it drops below threshold no
	// larger range in this column can reach threshold either (|U| only
	// grows as r increases). The bound is *not* monotonic while |U| < |Q|
	// (it rises toward 1 as |U| approaches |Q|), so pruning is only safe to
	// apply once |U| has reached |Q|.
	uSize, qSize := it.u.Size(), it.query.Size()
	if uSize >= qSize {
		bound := 2 * float64(qSize) / float64(uSize+qSize)
		if bound < it.threshold {
			if it.m.opts.Metrics != nil {
				it.m.opts.Metrics.columnsPruned.Inc()
			}
			return it.nextColumn()
		}
	}

	nextIdx := it.c + it.r + 1
	if nextIdx >= it.n {
		return it.nextColumn()
	}
	it.u.UnionInPlace(it.m.tokens[nextIdx].bigrams)
	it.r++
	return true
}

func (it *MatchIter) nextColumn() bool {
	it.c++
	if it.c >= it.n {
		it.exhausted = true
		return false
	}
	it.r = 0
	it.u = it.m.tokens[it.c].bigrams.Clone()
	if it.m.opts.Metrics != nil {
		it.m.opts.Metrics.columnsStarted.Inc()
	}
	return true
}

func (it *MatchIter) strip(idx int) bool {
	return it.m.strip.Contains(uint32(idx))
}

// Next returns the next Match in canonical order, and true, or the zero
// Match and false once every candidate range has been considered.
func (it *MatchIter) Next() (Match, bool) {
	if it.exhausted {
		return Match{}, false
	}
	if !it.step() {
		it.Close()
		return Match{}, false
	}

	for {
		c, r := it.c, it.r
		if !it.strip(c) && !it.strip(c+r) {
			score := SorensenDice(it.u, it.query)
			if score >= it.threshold {
				match := Match{Begin: c, End: c + r + 1, Score: score}
				if it.includeBigrams {
					clone := it.u.Clone()
					match.Bigrams = &clone
				}
				if it.m.opts.Metrics != nil {
					it.m.opts.Metrics.matchesEmitted.Inc()
				}
				it.logger.Debug("emitted match",
					sglog.Int("begin", match.Begin),
					sglog.Int("end", match.End),
					sglog.Float64("score", match.Score),
					sglog.String("matchID", it.correlationID().String()),
				)
				return match, true
			}
		}
		if !it.step() {
			it.Close()
			return Match{}, false
		}
	}
}

func (it *MatchIter) correlationID() xid.ID {
	if !it.idMinted {
		it.id = xid.New()
		it.idMinted = true
	}
	return it.id
}

// Close releases the iterator's resources (its running union accumulator
// and the matcher's QUERYING refcount) and may be called at any point,
// including before Next has ever returned false — spec.md §5's "a match
// iterator may be dropped at any yield point". Calling Close more than
// once, or after Next has exhausted the iterator naturally, is a no-op.
func (it *MatchIter) Close() {
	if it.closed {
		return
	}
	it.closed = true
	it.exhausted = true
	it.u = Bigrams{}

	if it.m.opts.Metrics != nil {
		it.m.opts.Metrics.matchDuration.Observe(time.Since(it.start).Seconds())
	}
	atomic.AddInt32(&it.m.activeIters, -1)
}
