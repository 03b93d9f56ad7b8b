/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"context"
	"time"

	"github.com/golang/glog"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	// Cumulative metrics.
	NumDocsIndexed = stats.Int64("num_docs_indexed_total",
		"Total number of documents indexed", stats.UnitDimensionless)
	NumQueries = stats.Int64("num_queries_total",
		"Total number of queries scored or matched", stats.UnitDimensionless)
	NumScoreCacheHits = stats.Int64("score_cache_hits_total",
		"Number of score requests served from the cache", stats.UnitDimensionless)
	LatencyMs = stats.Float64("latency",
		"Latency of the various methods", stats.UnitMilliseconds)

	// KeyMethod is the tag key for the method being measured.
	KeyMethod, _ = tag.NewKey("method")

	defaultLatencyMsDistribution = view.Distribution(
		0, 0.01, 0.05, 0.1, 0.3, 0.6, 0.8, 1, 2, 3, 4, 5, 6, 8, 10, 13, 16,
		20, 25, 30, 40, 50, 65, 80, 100, 130, 160, 200, 250, 300, 400, 500,
		650, 800, 1000, 2000, 5000, 10000)

	allTagKeys = []tag.Key{KeyMethod}

	allViews = []*view.View{
		{
			Name:        LatencyMs.Name(),
			Measure:     LatencyMs,
			Description: LatencyMs.Description(),
			Aggregation: defaultLatencyMsDistribution,
			TagKeys:     allTagKeys,
		},
		{
			Name:        NumQueries.Name(),
			Measure:     NumQueries,
			Description: NumQueries.Description(),
			Aggregation: view.Count(),
			TagKeys:     allTagKeys,
		},
		{
			Name:        NumDocsIndexed.Name(),
			Measure:     NumDocsIndexed,
			Description: NumDocsIndexed.Description(),
			Aggregation: view.Sum(),
		},
		{
			Name:        NumScoreCacheHits.Name(),
			Measure:     NumScoreCacheHits,
			Description: NumScoreCacheHits.Description(),
			Aggregation: view.Count(),
		},
	}
)

// RegisterViews registers the metric views so that recorded measures are
// aggregated.
func RegisterViews() {
	if err := view.Register(allViews...); err != nil {
		glog.Errorf("Unable to register metric views: %v", err)
	}
}

// MethodContext returns a context tagged with the given method name.
func MethodContext(method string) context.Context {
	ctx, err := tag.New(context.Background(), tag.Upsert(KeyMethod, method))
	if err != nil {
		glog.V(2).Infof("Unable to tag context with method %q: %v", method, err)
		return context.Background()
	}
	return ctx
}

// SinceMs returns the time since startTime in milliseconds (as a float).
func SinceMs(startTime time.Time) float64 {
	return float64(time.Since(startTime)) / 1e6
}

// RecordLatency records the latency of a method that started at startTime.
func RecordLatency(ctx context.Context, startTime time.Time) {
	stats.Record(ctx, LatencyMs.M(SinceMs(startTime)))
}
