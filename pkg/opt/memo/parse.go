// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package memo

import (
	"os"

	"github.com/cockroachdb/docce/pkg/opt"
	"github.com/cockroachdb/docce/pkg/opt/constraint"
	"github.com/cockroachdb/docce/pkg/opt/props"
	"github.com/cockroachdb/errors"
	yaml "gopkg.in/yaml.v2"
)

// Plan is a parsed plan together with the context it refers to.
type Plan struct {
	Root     Node
	Memo     *Memo
	Metadata *opt.Metadata
}

// ParsePlanFile reads a plan from the named YAML file. See ParsePlan.
func ParsePlanFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading plan file")
	}
	return ParsePlan(data)
}

// ParsePlan parses a plan in YAML form:
//
//	scans:
//	  c1: {collection: users, cardinality: 500}
//	groups:
//	  - card: 40
//	    node: {scan: {def: c1, projection: p0}}
//	plan:
//	  root:
//	    projections: [p0]
//	    input:
//	      sargable:
//	        reqs:
//	          - {projection: p0, path: "age", interval: "[18, 65]"}
//	          - {projection: p0, path: "tags/*", interval: "$array", perf: true}
//	        input:
//	          delegator: {group: 1}
//
// Each node is a map with a single key naming its kind, as printed by
// opt.Operator.String. Groups are numbered from 1 in the order they are
// listed. Paths use the syntax of ParsePath and intervals the syntax of
// constraint.ParseIntervalExpr.
func ParsePlan(data []byte) (*Plan, error) {
	var yp yamlPlan
	if err := yaml.UnmarshalStrict(data, &yp); err != nil {
		return nil, errors.Wrap(err, "parsing plan")
	}
	b := planBuilder{plan: &Plan{Memo: &Memo{}, Metadata: &opt.Metadata{}}}
	if err := b.build(&yp); err != nil {
		return nil, errors.Wrap(err, "building plan")
	}
	return b.plan, nil
}

type yamlPlan struct {
	Scans  map[string]yamlScanDef `yaml:"scans,omitempty"`
	Groups []yamlGroup            `yaml:"groups,omitempty"`
	Plan   *yamlNode              `yaml:"plan"`
}

type yamlScanDef struct {
	Collection  string  `yaml:"collection"`
	Cardinality float64 `yaml:"cardinality"`
}

type yamlGroup struct {
	Card *float64  `yaml:"card,omitempty"`
	Node *yamlNode `yaml:"node"`
}

type yamlNode struct {
	Root       *yamlRoot       `yaml:"root,omitempty"`
	Scan       *yamlScan       `yaml:"scan,omitempty"`
	Sargable   *yamlSargable   `yaml:"sargable,omitempty"`
	Filter     *yamlFilter     `yaml:"filter,omitempty"`
	Evaluation *yamlEvaluation `yaml:"evaluation,omitempty"`
	LimitSkip  *yamlLimitSkip  `yaml:"limit-skip,omitempty"`
	GroupBy    *yamlGroupBy    `yaml:"group-by,omitempty"`
	Union      *yamlUnion      `yaml:"union,omitempty"`
	Unwind     *yamlUnwind     `yaml:"unwind,omitempty"`
	Collation  *yamlCollation  `yaml:"collation,omitempty"`
	Delegator  *yamlDelegator  `yaml:"delegator,omitempty"`
	References *yamlReferences `yaml:"references,omitempty"`
	Binder     *yamlBinder     `yaml:"binder,omitempty"`
}

type yamlRoot struct {
	Projections []string  `yaml:"projections,omitempty"`
	Input       *yamlNode `yaml:"input"`
}

type yamlScan struct {
	Def        string `yaml:"def"`
	Projection string `yaml:"projection,omitempty"`
}

type yamlSargable struct {
	Reqs  []yamlReq `yaml:"reqs,omitempty"`
	Input *yamlNode `yaml:"input"`
}

type yamlReq struct {
	Projection string `yaml:"projection,omitempty"`
	Path       string `yaml:"path"`
	Interval   string `yaml:"interval"`
	Perf       bool   `yaml:"perf,omitempty"`
}

type yamlFilter struct {
	Expr  string    `yaml:"expr,omitempty"`
	Input *yamlNode `yaml:"input"`
}

type yamlEvaluation struct {
	Projection string    `yaml:"projection,omitempty"`
	Expr       string    `yaml:"expr,omitempty"`
	Input      *yamlNode `yaml:"input"`
}

type yamlLimitSkip struct {
	Limit *int64    `yaml:"limit,omitempty"`
	Skip  int64     `yaml:"skip,omitempty"`
	Input *yamlNode `yaml:"input"`
}

type yamlGroupBy struct {
	Keys  []string  `yaml:"keys,omitempty"`
	Input *yamlNode `yaml:"input"`
}

type yamlUnion struct {
	Inputs []*yamlNode `yaml:"inputs"`
}

type yamlUnwind struct {
	Projection string    `yaml:"projection,omitempty"`
	Input      *yamlNode `yaml:"input"`
}

type yamlCollation struct {
	Spec  []string  `yaml:"spec,omitempty"`
	Input *yamlNode `yaml:"input"`
}

type yamlDelegator struct {
	Group GroupID `yaml:"group"`
}

type yamlReferences struct {
	Projections []string `yaml:"projections,omitempty"`
}

type yamlBinder struct {
	Names []string `yaml:"names,omitempty"`
	Exprs []string `yaml:"exprs,omitempty"`
}

type planBuilder struct {
	plan       *Plan
	delegators []GroupID
}

func (b *planBuilder) build(yp *yamlPlan) error {
	for name, def := range yp.Scans {
		if err := b.plan.Metadata.AddScanDefinition(name, opt.ScanDefinition{
			Collection:  def.Collection,
			Cardinality: def.Cardinality,
		}); err != nil {
			return err
		}
	}
	for i := range yp.Groups {
		rep, err := b.buildNode(yp.Groups[i].Node)
		if err != nil {
			return errors.Wrapf(err, "group %d", i+1)
		}
		var logical props.Logical
		if card := yp.Groups[i].Card; card != nil {
			if *card < 0 {
				return errors.Newf("group %d: negative cardinality", i+1)
			}
			logical = logical.WithCardinality(*card)
		}
		b.plan.Memo.AddGroup(rep, logical)
	}
	if yp.Plan == nil {
		return errors.New("missing plan")
	}
	root, err := b.buildNode(yp.Plan)
	if err != nil {
		return err
	}
	b.plan.Root = root
	for _, id := range b.delegators {
		if id < 1 || int(id) > b.plan.Memo.GroupCount() {
			return errors.Newf("delegator refers to unknown group %d", id)
		}
	}
	return nil
}

func (b *planBuilder) buildNode(yn *yamlNode) (Node, error) {
	if yn == nil {
		return nil, errors.New("missing node")
	}
	if kinds := yn.kindCount(); kinds != 1 {
		return nil, errors.Newf("a node must have exactly one kind, found %d", kinds)
	}

	switch {
	case yn.Root != nil:
		return b.buildSingle(yn.Root.Input, func(in Node) Node {
			return &RootNode{Projections: yn.Root.Projections, Input: in}
		})

	case yn.Scan != nil:
		if yn.Scan.Def == "" {
			return nil, errors.New("scan requires a def")
		}
		return &ScanNode{ScanDef: yn.Scan.Def, Projection: yn.Scan.Projection}, nil

	case yn.Sargable != nil:
		return b.buildSargable(yn.Sargable)

	case yn.Filter != nil:
		return b.buildSingle(yn.Filter.Input, func(in Node) Node {
			return &FilterNode{Expr: yn.Filter.Expr, Input: in}
		})

	case yn.Evaluation != nil:
		return b.buildSingle(yn.Evaluation.Input, func(in Node) Node {
			return &EvaluationNode{Projection: yn.Evaluation.Projection, Expr: yn.Evaluation.Expr, Input: in}
		})

	case yn.LimitSkip != nil:
		return b.buildLimitSkip(yn.LimitSkip)

	case yn.GroupBy != nil:
		return b.buildSingle(yn.GroupBy.Input, func(in Node) Node {
			return &GroupByNode{Keys: yn.GroupBy.Keys, Input: in}
		})

	case yn.Union != nil:
		return b.buildUnion(yn.Union)

	case yn.Unwind != nil:
		return b.buildSingle(yn.Unwind.Input, func(in Node) Node {
			return &UnwindNode{Projection: yn.Unwind.Projection, Input: in}
		})

	case yn.Collation != nil:
		return b.buildSingle(yn.Collation.Input, func(in Node) Node {
			return &CollationNode{Spec: yn.Collation.Spec, Input: in}
		})

	case yn.Delegator != nil:
		b.delegators = append(b.delegators, yn.Delegator.Group)
		return &DelegatorNode{Group: yn.Delegator.Group}, nil

	case yn.References != nil:
		return &ReferencesNode{Projections: yn.References.Projections}, nil

	default:
		if len(yn.Binder.Names) != len(yn.Binder.Exprs) {
			return nil, errors.Newf(
				"binder has %d names and %d expressions", len(yn.Binder.Names), len(yn.Binder.Exprs),
			)
		}
		return &ExpressionBinderNode{Names: yn.Binder.Names, Exprs: yn.Binder.Exprs}, nil
	}
}

func (yn *yamlNode) kindCount() int {
	count := 0
	for _, set := range []bool{
		yn.Root != nil, yn.Scan != nil, yn.Sargable != nil, yn.Filter != nil,
		yn.Evaluation != nil, yn.LimitSkip != nil, yn.GroupBy != nil, yn.Union != nil,
		yn.Unwind != nil, yn.Collation != nil, yn.Delegator != nil, yn.References != nil,
		yn.Binder != nil,
	} {
		if set {
			count++
		}
	}
	return count
}

func (b *planBuilder) buildSingle(input *yamlNode, fn func(in Node) Node) (Node, error) {
	in, err := b.buildNode(input)
	if err != nil {
		return nil, err
	}
	return fn(in), nil
}

func (b *planBuilder) buildSargable(ys *yamlSargable) (Node, error) {
	n := &SargableNode{}
	for i, yr := range ys.Reqs {
		path, err := ParsePath(yr.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "requirement %d", i)
		}
		intervals, err := constraint.ParseIntervalExpr(yr.Interval)
		if err != nil {
			return nil, errors.Wrapf(err, "requirement %d", i)
		}
		key := ReqKey{Projection: yr.Projection, Path: path}
		if err := n.Reqs.Add(key, Requirement{Intervals: intervals, IsPerfOnly: yr.Perf}); err != nil {
			return nil, err
		}
	}
	in, err := b.buildNode(ys.Input)
	if err != nil {
		return nil, err
	}
	n.Input = in
	return n, nil
}

func (b *planBuilder) buildLimitSkip(yl *yamlLimitSkip) (Node, error) {
	n := &LimitSkipNode{Limit: NoLimit, Skip: yl.Skip}
	if yl.Limit != nil {
		if *yl.Limit < 0 {
			return nil, errors.Newf("negative limit %d", *yl.Limit)
		}
		n.Limit = *yl.Limit
	}
	if n.Skip < 0 {
		return nil, errors.Newf("negative skip %d", n.Skip)
	}
	in, err := b.buildNode(yl.Input)
	if err != nil {
		return nil, err
	}
	n.Input = in
	return n, nil
}

func (b *planBuilder) buildUnion(yu *yamlUnion) (Node, error) {
	if len(yu.Inputs) == 0 {
		return nil, errors.New("union requires at least one input")
	}
	n := &UnionNode{Inputs: make([]Node, len(yu.Inputs))}
	for i := range yu.Inputs {
		in, err := b.buildNode(yu.Inputs[i])
		if err != nil {
			return nil, err
		}
		n.Inputs[i] = in
	}
	return n, nil
}
