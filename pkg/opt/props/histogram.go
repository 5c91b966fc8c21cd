// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package props

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/cockroachdb/docce/pkg/opt/constraint"
	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
)

// HistogramBucket contains the data for a single histogram bucket. Buckets
// are ordered by UpperBound, and each bucket describes the values in the
// half-open range (previous UpperBound, UpperBound].
type HistogramBucket struct {
	// UpperBound is the upper bound of the bucket.
	UpperBound constraint.Value

	// NumEq is the estimated number of values equal to UpperBound.
	NumEq float64

	// NumRange is the estimated number of values between the previous upper
	// bound and UpperBound, both exclusive.
	NumRange float64

	// DistinctRange is the estimated number of distinct values between the
	// previous upper bound and UpperBound, both exclusive.
	DistinctRange float64
}

// Histogram captures the distribution of scalar values for a particular
// field. Histograms are immutable.
type Histogram struct {
	buckets []HistogramBucket

	// cumulative[i] is the number of values in buckets [0, i).
	cumulative []float64
}

// NewHistogram validates the buckets and returns a histogram over them. The
// bucket slice is copied.
func NewHistogram(buckets []HistogramBucket) (*Histogram, error) {
	h := &Histogram{
		buckets:    make([]HistogramBucket, len(buckets)),
		cumulative: make([]float64, len(buckets)+1),
	}
	copy(h.buckets, buckets)
	for i := range h.buckets {
		b := &h.buckets[i]
		if !b.UpperBound.IsConstant() {
			return nil, errors.Newf("bucket %d: upper bound %s is not a constant", i, b.UpperBound)
		}
		if b.NumEq < 0 || b.NumRange < 0 || b.DistinctRange < 0 {
			return nil, errors.Newf("bucket %d: negative count", i)
		}
		if i > 0 && h.buckets[i-1].UpperBound.Compare(b.UpperBound) >= 0 {
			return nil, errors.Newf(
				"bucket %d: upper bound %s is not greater than %s", i, b.UpperBound, h.buckets[i-1].UpperBound,
			)
		}
		h.cumulative[i+1] = h.cumulative[i] + b.NumEq + b.NumRange
	}
	return h, nil
}

// MustNewHistogram is like NewHistogram but panics on invalid input. It is
// intended for tests.
func MustNewHistogram(buckets []HistogramBucket) *Histogram {
	h, err := NewHistogram(buckets)
	if err != nil {
		panic(err)
	}
	return h
}

func (h *Histogram) String() string {
	w := histogramWriter{}
	w.init(h.buckets)
	var buf bytes.Buffer
	w.write(&buf)
	return buf.String()
}

// BucketCount returns the number of buckets in the histogram.
func (h *Histogram) BucketCount() int {
	if h == nil {
		return 0
	}
	return len(h.buckets)
}

// Bucket returns a pointer to the ith bucket in the histogram.
// i must be greater than or equal to 0 and less than BucketCount.
func (h *Histogram) Bucket(i int) *HistogramBucket {
	return &h.buckets[i]
}

// ValuesCount returns the total number of values in the histogram.
func (h *Histogram) ValuesCount() float64 {
	if h == nil {
		return 0
	}
	return h.cumulative[len(h.buckets)]
}

// EqualCount estimates the number of values equal to v.
func (h *Histogram) EqualCount(v constraint.Value) float64 {
	eq, _ := h.estimate(v)
	return eq
}

// LessCount estimates the number of values strictly less than v.
func (h *Histogram) LessCount(v constraint.Value) float64 {
	_, less := h.estimate(v)
	return less
}

// LessOrEqualCount estimates the number of values less than or equal to v.
func (h *Histogram) LessOrEqualCount(v constraint.Value) float64 {
	eq, less := h.estimate(v)
	return less + eq
}

// RangeCount estimates the number of values between the two bounds. Both
// bounds must be constants.
func (h *Histogram) RangeCount(low, high constraint.Bound) float64 {
	var upTo, below float64
	if high.Inclusive {
		upTo = h.LessOrEqualCount(high.Value)
	} else {
		upTo = h.LessCount(high.Value)
	}
	if low.Inclusive {
		below = h.LessCount(low.Value)
	} else {
		below = h.LessOrEqualCount(low.Value)
	}
	if upTo < below {
		return 0
	}
	return upTo - below
}

// estimate returns the estimated number of values equal to v and strictly
// less than v.
func (h *Histogram) estimate(v constraint.Value) (eq, less float64) {
	if h == nil || len(h.buckets) == 0 {
		return 0, 0
	}
	switch v.Kind {
	case constraint.MinKeyKind:
		return 0, 0
	case constraint.MaxKeyKind:
		return 0, h.ValuesCount()
	}

	i := sort.Search(len(h.buckets), func(i int) bool {
		return h.buckets[i].UpperBound.Compare(v) >= 0
	})
	if i == len(h.buckets) {
		return 0, h.ValuesCount()
	}

	b := &h.buckets[i]
	less = h.cumulative[i]
	if b.UpperBound.Compare(v) == 0 {
		return b.NumEq, less + b.NumRange
	}

	// v falls strictly inside the range part of bucket i.
	if b.NumRange == 0 {
		return 0, less
	}
	if b.DistinctRange > 0 {
		eq = b.NumRange / b.DistinctRange
		if eq > b.NumRange {
			eq = b.NumRange
		}
	}
	fraction := 0.5
	if i > 0 {
		fraction = rangeFraction(h.buckets[i-1].UpperBound, v, b.UpperBound)
	}
	less += fraction * b.NumRange
	if less+eq > h.cumulative[i]+b.NumRange {
		eq = h.cumulative[i] + b.NumRange - less
	}
	return eq, less
}

// rangeFraction returns the fraction of the range (lo, hi) that lies below v.
// Only numeric ranges are interpolated; any other range is split in half.
func rangeFraction(lo, v, hi constraint.Value) float64 {
	if lo.Kind != constraint.NumberKind || v.Kind != constraint.NumberKind ||
		hi.Kind != constraint.NumberKind || hi.Num <= lo.Num {
		return 0.5
	}
	f := (v.Num - lo.Num) / (hi.Num - lo.Num)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// TypeCounts holds the number of values of types that are not kept in the
// bucketed histograms.
type TypeCounts struct {
	Null  float64
	True  float64
	False float64
}

// ArrayStats describes the array values of a field.
type ArrayStats struct {
	// Count is the number of documents in which the field holds an array.
	Count float64
	// EmptyCount is the number of documents in which the field holds an empty
	// array.
	EmptyCount float64
	// Unique is a histogram over the distinct elements of each array.
	Unique *Histogram
	// Min and Max are histograms over the smallest and the largest element of
	// each non-empty array.
	Min *Histogram
	Max *Histogram
}

// ArrayHistogram captures the distribution of values of a field that may
// hold arrays as well as scalars. It is immutable.
type ArrayHistogram struct {
	scalar *Histogram
	types  TypeCounts
	arrays ArrayStats
}

// NewArrayHistogram returns a histogram over the given components. A nil
// scalar histogram is treated as empty.
func NewArrayHistogram(scalar *Histogram, types TypeCounts, arrays ArrayStats) *ArrayHistogram {
	return &ArrayHistogram{scalar: scalar, types: types, arrays: arrays}
}

// Scalar returns the histogram of non-array values.
func (h *ArrayHistogram) Scalar() *Histogram { return h.scalar }

// ArrayUnique returns the histogram of distinct array elements.
func (h *ArrayHistogram) ArrayUnique() *Histogram { return h.arrays.Unique }

// ArrayMin returns the histogram of the smallest element of each array.
func (h *ArrayHistogram) ArrayMin() *Histogram { return h.arrays.Min }

// ArrayMax returns the histogram of the largest element of each array.
func (h *ArrayHistogram) ArrayMax() *Histogram { return h.arrays.Max }

// ArrayCount returns the number of documents holding an array in this field.
func (h *ArrayHistogram) ArrayCount() float64 { return h.arrays.Count }

// EmptyArrayCount returns the number of documents holding an empty array.
func (h *ArrayHistogram) EmptyArrayCount() float64 { return h.arrays.EmptyCount }

// TypeCounts returns the counts of null and boolean values.
func (h *ArrayHistogram) TypeCounts() TypeCounts { return h.types }

// IsArray returns true if the field holds an array in any document.
func (h *ArrayHistogram) IsArray() bool { return h.arrays.Count > 0 }

func (h *ArrayHistogram) String() string {
	var buf bytes.Buffer
	section := func(name string, hist *Histogram) {
		if hist.BucketCount() == 0 {
			return
		}
		fmt.Fprintf(&buf, "%s:\n", name)
		buf.WriteString(hist.String())
		buf.WriteString("\n")
	}
	section("scalar", h.scalar)
	section("array unique", h.arrays.Unique)
	section("array min", h.arrays.Min)
	section("array max", h.arrays.Max)
	fmt.Fprintf(&buf, "arrays=%.5g empty=%.5g null=%.5g true=%.5g false=%.5g\n",
		h.arrays.Count, h.arrays.EmptyCount, h.types.Null, h.types.True, h.types.False)
	return buf.String()
}

// histogramWriter prints histograms with the following formatting:
//   NumRange1/DistinctRange1  NumEq1  NumRange2/DistinctRange2  NumEq2  ....
// <-------------------------- UpperBound1 ------------------------ UpperBound2 ....
//
// For example:
//   0/0  1  90/9  10   0/0  20
// <----- 0 ------ 100 ----- 200
//
// This describes a histogram with 3 buckets. The first bucket contains 1 value
// equal to 0. The second bucket contains 90 values between 0 and 100, 9 of
// them distinct, and 10 values equal to 100. Finally, the third bucket
// contains 20 values equal to 200.
type histogramWriter struct {
	cells     [][]string
	colWidths []int
}

const (
	// These constants describe the two rows that are printed.
	counts = iota
	boundaries
)

func (w *histogramWriter) init(buckets []HistogramBucket) {
	w.cells = [][]string{
		make([]string, len(buckets)*2),
		make([]string, len(buckets)*2),
	}
	w.colWidths = make([]int, len(buckets)*2)

	for i, b := range buckets {
		w.cells[counts][i*2] = fmt.Sprintf(" %.5g/%.5g ", b.NumRange, b.DistinctRange)
		w.cells[counts][i*2+1] = fmt.Sprintf("%.5g", b.NumEq)
		w.cells[boundaries][i*2+1] = fmt.Sprintf(" %s ", b.UpperBound.String())
		for row := range w.cells {
			for col := i * 2; col <= i*2+1; col++ {
				if width := tablewriter.DisplayWidth(w.cells[row][col]); width > w.colWidths[col] {
					w.colWidths[col] = width
				}
			}
		}
	}
}

func (w *histogramWriter) write(out io.Writer) {
	if len(w.cells[counts]) == 0 {
		return
	}

	// Print a space to match up with the "<" character below.
	fmt.Fprint(out, " ")
	for i := range w.cells[counts] {
		fmt.Fprintf(out, "%s", tablewriter.Pad(w.cells[counts][i], " ", w.colWidths[i]))
	}
	fmt.Fprint(out, "\n")
	fmt.Fprint(out, "<")
	for i := range w.cells[boundaries] {
		fmt.Fprintf(out, "%s", tablewriter.Pad(w.cells[boundaries][i], "-", w.colWidths[i]))
	}
}
