// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package memo

import (
	"bytes"
	"fmt"
	"strings"
)

// NodeFmtInterceptor returns extra text to print after a node's header, or
// the empty string.
type NodeFmtInterceptor func(n Node) string

// FormatNode returns a tree representation of the plan rooted at n:
//
//	root
//	└── sargable
//	    ├── "age" [18, 65]
//	    └── scan c1 (p0)
//
// If annotate is not nil, its result is appended to each node's header.
func FormatNode(n Node, annotate NodeFmtInterceptor) string {
	f := nodeFmtCtx{annotate: annotate}
	f.format(n, "", "")
	return f.buf.String()
}

type nodeFmtCtx struct {
	buf      bytes.Buffer
	annotate NodeFmtInterceptor
}

// format writes n. first prefixes the header line and rest prefixes every
// line below it.
func (f *nodeFmtCtx) format(n Node, first, rest string) {
	f.buf.WriteString(first)
	f.buf.WriteString(nodeHeader(n))
	if f.annotate != nil {
		if extra := f.annotate(n); extra != "" {
			f.buf.WriteByte(' ')
			f.buf.WriteString(extra)
		}
	}
	f.buf.WriteByte('\n')

	details := nodeDetails(n)
	count := len(details) + n.ChildCount()
	item := 0
	prefixes := func() (string, string) {
		item++
		if item == count {
			return rest + "└── ", rest + "    "
		}
		return rest + "├── ", rest + "│   "
	}
	for _, d := range details {
		p, _ := prefixes()
		f.buf.WriteString(p)
		f.buf.WriteString(d)
		f.buf.WriteByte('\n')
	}
	for i := 0; i < n.ChildCount(); i++ {
		p, r := prefixes()
		f.format(n.Child(i), p, r)
	}
}

func nodeHeader(n Node) string {
	var buf strings.Builder
	buf.WriteString(n.Op().String())
	switch t := n.(type) {
	case *ScanNode:
		fmt.Fprintf(&buf, " %s", t.ScanDef)
		if t.Projection != "" {
			fmt.Fprintf(&buf, " (%s)", t.Projection)
		}
	case *RootNode:
		writeList(&buf, t.Projections)
	case *FilterNode:
		if t.Expr != "" {
			fmt.Fprintf(&buf, " %s", t.Expr)
		}
	case *EvaluationNode:
		fmt.Fprintf(&buf, " %s", t.Projection)
		if t.Expr != "" {
			fmt.Fprintf(&buf, " := %s", t.Expr)
		}
	case *LimitSkipNode:
		if t.Limit != NoLimit {
			fmt.Fprintf(&buf, " limit=%d", t.Limit)
		}
		if t.Skip != 0 {
			fmt.Fprintf(&buf, " skip=%d", t.Skip)
		}
	case *GroupByNode:
		writeList(&buf, t.Keys)
	case *UnwindNode:
		fmt.Fprintf(&buf, " %s", t.Projection)
	case *CollationNode:
		writeList(&buf, t.Spec)
	case *DelegatorNode:
		fmt.Fprintf(&buf, " group=%d", t.Group)
	case *ReferencesNode:
		writeList(&buf, t.Projections)
	case *ExpressionBinderNode:
		for i := range t.Names {
			fmt.Fprintf(&buf, " %s := %s", t.Names[i], t.Exprs[i])
		}
	}
	return buf.String()
}

func writeList(buf *strings.Builder, items []string) {
	if len(items) > 0 {
		buf.WriteByte(' ')
		buf.WriteString(strings.Join(items, ","))
	}
}

// nodeDetails returns leaf lines printed before a node's children.
func nodeDetails(n Node) []string {
	s, ok := n.(*SargableNode)
	if !ok {
		return nil
	}
	details := make([]string, 0, s.Reqs.Len())
	s.Reqs.ForEach(func(key ReqKey, req Requirement) {
		d := key.String() + " " + req.Intervals.String()
		if req.IsPerfOnly {
			d += " (perf)"
		}
		details = append(details, d)
	})
	return details
}
