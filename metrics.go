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
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the optional Prometheus instrumentation for a
// SequenceMatcher, grounded on the promauto.NewCounter/NewHistogramVec block
// in cmd/zoekt-sourcegraph-indexserver/main.go. Unlike that block this type
// is not auto-registered: callers own a registry and opt in via Register,
// so a matcher embedded in an unrelated process doesn't fight over the
// default registry.
type Metrics struct {
	columnsStarted prometheus.Counter
	columnsPruned  prometheus.Counter
	matchesEmitted prometheus.Counter
	matchDuration  prometheus.Histogram
}

// NewMetrics constructs an unregistered Metrics. Pass it to
// MatcherOptions.Metrics and call Register once a *prometheus.Registry is
// available, or leave it unregistered for a matcher with no metrics sink.
func NewMetrics() *Metrics {
	return &Metrics{
		columnsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sdcmatch_columns_started_total",
			Help: "Number of union-matrix columns a match() call began accumulating.",
		}),
		columnsPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sdcmatch_columns_pruned_total",
			Help: "Number of union-matrix columns abandoned early by the SDC upper-bound prune.",
		}),
		matchesEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sdcmatch_matches_emitted_total",
			Help: "Number of Match values yielded across all match() calls.",
		}),
		matchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sdcmatch_match_seconds",
			Help:    "Wall-clock duration of a single match() call, start to iterator exhaustion.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8), // 100µs -> ~1.6s
		}),
	}
}

// Register adds m's collectors to reg. A duplicate registration is wrapped
// with call-site context rather than left as a bare
// prometheus.AlreadyRegisteredError, mirroring how the teacher's service
// layers (not promauto, which panics) report registry conflicts.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.columnsStarted, m.columnsPruned, m.matchesEmitted, m.matchDuration} {
		if err := reg.Register(c); err != nil {
			return errors.Wrap(err, "sdcmatch: registering matcher metric")
		}
	}
	return nil
}
