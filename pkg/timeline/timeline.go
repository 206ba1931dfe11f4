// Package timeline partitions the observed event span into equal width
// buckets and counts events of every severity per bucket.
package timeline

import (
	"errors"
	"time"

	"github.com/activecm/wafreport/pkg/record"
	"github.com/activecm/wafreport/util"
)

const (
	// MinBuckets is the lowest resolution of the dynamics chart
	MinBuckets = 24
	// BucketsPerHour scales the resolution with the declared reporting window
	BucketsPerHour = 4
)

// ErrBucketCount is returned when fewer than one bucket is requested
var ErrBucketCount = errors.New("bucket count must be positive")

//Bucket is one fixed width interval of the time series
type Bucket struct {
	Start  time.Time             `json:"start"`
	End    time.Time             `json:"end"`
	Counts record.SeverityCounts `json:"counts"`
}

// BucketCount returns max(MinBuckets, BucketsPerHour*rangeHours)
func BucketCount(rangeHours int) int {
	return util.Max(MinBuckets, BucketsPerHour*rangeHours)
}

// Bucketize histograms the events of every severity into n buckets sharing the
// same edges. The edges span the earliest to the latest event timestamp, the
// last bucket includes its right edge. Without events the result is n buckets
// of zero counts with zero timestamps.
func Bucketize(events []record.SecurityEvent, n int) ([]Bucket, error) {
	return BucketizeWindow(events, n, time.Time{}, time.Time{})
}

// BucketizeWindow behaves like Bucketize. The start and end are only used to
// lay out the zero buckets when there are no events at all.
func BucketizeWindow(events []record.SecurityEvent, n int, start, end time.Time) ([]Bucket, error) {
	if n < 1 {
		return nil, ErrBucketCount
	}

	var lo, hi time.Time
	if len(events) == 0 {
		lo, hi = start, end
	} else {
		lo, hi = span(events)
	}

	edges := Edges(lo, hi, n)
	buckets := make([]Bucket, n)
	for i := range buckets {
		buckets[i].Start = edges[i]
		buckets[i].End = edges[i+1]
	}

	for _, evt := range events {
		idx := bucketIndex(evt.Timestamp, edges)
		buckets[idx].Counts.Add(evt.Severity)
	}
	return buckets, nil
}

// Edges returns the n+1 monotonically increasing bucket edges between lo and
// hi. A degenerate range is widened by half a second on both sides so every
// bucket keeps a positive width. Two zero times stay zero.
func Edges(lo, hi time.Time, n int) []time.Time {
	edges := make([]time.Time, n+1)
	if lo.IsZero() && hi.IsZero() {
		return edges
	}
	if !hi.After(lo) {
		lo = lo.Add(-time.Second / 2)
		hi = lo.Add(time.Second)
	}

	width := hi.Sub(lo)
	for i := 0; i < n; i++ {
		edges[i] = lo.Add(time.Duration(float64(width) * float64(i) / float64(n)))
	}
	// pin the last edge so the maximum timestamp always lands inside
	edges[n] = hi
	return edges
}

// span finds the earliest and the latest event timestamp
func span(events []record.SecurityEvent) (time.Time, time.Time) {
	lo, hi := events[0].Timestamp, events[0].Timestamp
	for _, evt := range events[1:] {
		if evt.Timestamp.Before(lo) {
			lo = evt.Timestamp
		}
		if evt.Timestamp.After(hi) {
			hi = evt.Timestamp
		}
	}
	return lo, hi
}

// bucketIndex estimates the bucket arithmetically and corrects the estimate
// against the computed edges, buckets are [edge_i, edge_i+1) except the last
func bucketIndex(ts time.Time, edges []time.Time) int {
	n := len(edges) - 1
	width := edges[n].Sub(edges[0])
	idx := int(float64(ts.Sub(edges[0])) / float64(width) * float64(n))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	for idx > 0 && ts.Before(edges[idx]) {
		idx--
	}
	for idx < n-1 && !ts.Before(edges[idx+1]) {
		idx++
	}
	return idx
}

// Starts returns the left edge of every bucket, the x values of the chart
func Starts(buckets []Bucket) []time.Time {
	starts := make([]time.Time, len(buckets))
	for i, b := range buckets {
		starts[i] = b.Start
	}
	return starts
}

// Counts returns the per bucket counts of one severity, the y values of its series
func Counts(buckets []Bucket, sev record.Severity) []int {
	counts := make([]int, len(buckets))
	for i, b := range buckets {
		counts[i] = b.Counts.Get(sev)
	}
	return counts
}

// Totals sums the buckets per severity
func Totals(buckets []Bucket) record.SeverityCounts {
	var totals record.SeverityCounts
	for _, b := range buckets {
		totals.Info += b.Counts.Info
		totals.Low += b.Counts.Low
		totals.Medium += b.Counts.Medium
		totals.High += b.Counts.High
	}
	return totals
}
