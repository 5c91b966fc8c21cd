// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package stats

import (
	"io"
	"os"

	"github.com/cockroachdb/docce/pkg/opt/constraint"
	"github.com/cockroachdb/docce/pkg/opt/props"
	"github.com/cockroachdb/errors"
	yaml "gopkg.in/yaml.v2"
)

// YAMLStatistics is used for YAML marshaling and unmarshaling of collection
// statistics:
//
//	cardinality: 1000
//	histograms:
//	  age:
//	    scalar:
//	      - {bound: 10, eq: 5, range: 0, ndv: 0}
//	      - {bound: 50, eq: 10, range: 85, ndv: 20}
//	    arrays: {count: 0, empty: 0, unique: [], min: [], max: []}
//	    types: {nulls: 0, trues: 0, falses: 0}
type YAMLStatistics struct {
	Cardinality float64                  `yaml:"cardinality"`
	Histograms  map[string]YAMLHistogram `yaml:"histograms,omitempty"`
}

// YAMLHistogram is the YAML form of props.ArrayHistogram.
type YAMLHistogram struct {
	Scalar []YAMLBucket `yaml:"scalar,omitempty"`
	Arrays YAMLArrays   `yaml:"arrays,omitempty"`
	Types  YAMLTypes    `yaml:"types,omitempty"`
}

// YAMLArrays is the YAML form of props.ArrayStats.
type YAMLArrays struct {
	Count  float64      `yaml:"count"`
	Empty  float64      `yaml:"empty"`
	Unique []YAMLBucket `yaml:"unique,omitempty"`
	Min    []YAMLBucket `yaml:"min,omitempty"`
	Max    []YAMLBucket `yaml:"max,omitempty"`
}

// YAMLTypes is the YAML form of props.TypeCounts.
type YAMLTypes struct {
	Nulls  float64 `yaml:"nulls"`
	Trues  float64 `yaml:"trues"`
	Falses float64 `yaml:"falses"`
}

// YAMLBucket is the YAML form of props.HistogramBucket. Bound is a YAML
// number, string, boolean or null.
type YAMLBucket struct {
	Bound interface{} `yaml:"bound"`
	Eq    float64     `yaml:"eq"`
	Range float64     `yaml:"range"`
	NDV   float64     `yaml:"ndv"`
}

// LoadYAMLFile reads collection statistics from the named file.
func LoadYAMLFile(path string) (*CollectionStatistics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening statistics file")
	}
	defer f.Close()
	return LoadYAML(f)
}

// LoadYAML reads collection statistics in YAML form.
func LoadYAML(r io.Reader) (*CollectionStatistics, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading statistics")
	}
	var ys YAMLStatistics
	if err := yaml.UnmarshalStrict(data, &ys); err != nil {
		return nil, errors.Wrap(err, "parsing statistics")
	}
	return ys.Build()
}

// Build converts the YAML form into immutable statistics.
func (ys *YAMLStatistics) Build() (*CollectionStatistics, error) {
	histograms := make(map[string]*props.ArrayHistogram, len(ys.Histograms))
	for path, yh := range ys.Histograms {
		h, err := yh.build()
		if err != nil {
			return nil, errors.Wrapf(err, "histogram for path %q", path)
		}
		histograms[path] = h
	}
	return Build(ys.Cardinality, histograms)
}

func (yh *YAMLHistogram) build() (*props.ArrayHistogram, error) {
	scalar, err := buildHistogram("scalar", yh.Scalar)
	if err != nil {
		return nil, err
	}
	arrays := props.ArrayStats{Count: yh.Arrays.Count, EmptyCount: yh.Arrays.Empty}
	if arrays.Count < 0 || arrays.EmptyCount < 0 || arrays.EmptyCount > arrays.Count {
		return nil, errors.Newf("invalid array counts: count=%v empty=%v", arrays.Count, arrays.EmptyCount)
	}
	if arrays.Unique, err = buildHistogram("unique", yh.Arrays.Unique); err != nil {
		return nil, err
	}
	if arrays.Min, err = buildHistogram("min", yh.Arrays.Min); err != nil {
		return nil, err
	}
	if arrays.Max, err = buildHistogram("max", yh.Arrays.Max); err != nil {
		return nil, err
	}
	types := props.TypeCounts{Null: yh.Types.Nulls, True: yh.Types.Trues, False: yh.Types.Falses}
	return props.NewArrayHistogram(scalar, types, arrays), nil
}

func buildHistogram(name string, yb []YAMLBucket) (*props.Histogram, error) {
	buckets := make([]props.HistogramBucket, len(yb))
	for i := range yb {
		v, err := boundValue(yb[i].Bound)
		if err != nil {
			return nil, errors.Wrapf(err, "%s bucket %d", name, i)
		}
		buckets[i] = props.HistogramBucket{
			UpperBound:    v,
			NumEq:         yb[i].Eq,
			NumRange:      yb[i].Range,
			DistinctRange: yb[i].NDV,
		}
	}
	h, err := props.NewHistogram(buckets)
	if err != nil {
		return nil, errors.Wrapf(err, "%s histogram", name)
	}
	return h, nil
}

func boundValue(b interface{}) (constraint.Value, error) {
	switch t := b.(type) {
	case nil:
		return constraint.Null(), nil
	case int:
		return constraint.Number(float64(t)), nil
	case int64:
		return constraint.Number(float64(t)), nil
	case uint64:
		return constraint.Number(float64(t)), nil
	case float64:
		return constraint.Number(t), nil
	case string:
		return constraint.String(t), nil
	case bool:
		return constraint.Bool(t), nil
	default:
		return constraint.Value{}, errors.Newf("unsupported bound %v of type %T", b, b)
	}
}
