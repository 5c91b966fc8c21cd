// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package memo

import (
	"strings"

	"github.com/cockroachdb/docce/pkg/opt/constraint"
	"github.com/cockroachdb/errors"
)

// PathExpr is a chain of steps that reaches a value inside a document. The
// set of implementations is closed.
type PathExpr interface {
	// String returns the text form of the path, as accepted by ParsePath.
	String() string

	pathExpr()
}

// PathGet reads the field Name and continues with Child.
type PathGet struct {
	Name  string
	Child PathExpr
}

// PathTraverse descends into the elements of an array and continues with
// Child. A non-array value is passed to Child as is.
type PathTraverse struct {
	Child PathExpr
}

// PathIdentity ends a path. It returns its input unchanged.
type PathIdentity struct{}

// PathArr returns true if its input is an array.
type PathArr struct{}

// PathObj returns true if its input is an object.
type PathObj struct{}

// PathDefault replaces a missing value with null and continues with Child.
type PathDefault struct {
	Child PathExpr
}

// PathCompare compares its input with Value using Op.
type PathCompare struct {
	Op    string
	Value constraint.Value
}

func (*PathGet) pathExpr()      {}
func (*PathTraverse) pathExpr() {}
func (*PathIdentity) pathExpr() {}
func (*PathArr) pathExpr()      {}
func (*PathObj) pathExpr()      {}
func (*PathDefault) pathExpr()  {}
func (*PathCompare) pathExpr()  {}

const (
	pathSep           = "/"
	traverseStep      = "*"
	arrStep           = "$arr"
	objStep           = "$obj"
	defaultStep       = "$default"
	compareStepPrefix = "$cmp"
)

func (p *PathGet) String() string      { return joinStep(p.Name, p.Child) }
func (p *PathTraverse) String() string { return joinStep(traverseStep, p.Child) }
func (p *PathIdentity) String() string { return "" }
func (p *PathArr) String() string      { return arrStep }
func (p *PathObj) String() string      { return objStep }
func (p *PathDefault) String() string  { return joinStep(defaultStep, p.Child) }
func (p *PathCompare) String() string {
	return compareStepPrefix + "(" + p.Op + " " + p.Value.String() + ")"
}

func joinStep(step string, child PathExpr) string {
	if child == nil {
		return step
	}
	if rest := child.String(); rest != "" {
		return step + pathSep + rest
	}
	return step
}

// MakePath builds a path of field accesses and traversals ending in an
// identity. A "*" step is a traversal and every other step is a field name.
func MakePath(steps ...string) PathExpr {
	var p PathExpr = &PathIdentity{}
	for i := len(steps) - 1; i >= 0; i-- {
		if steps[i] == traverseStep {
			p = &PathTraverse{Child: p}
		} else {
			p = &PathGet{Name: steps[i], Child: p}
		}
	}
	return p
}

// ParsePath parses the text form of a path. Steps are separated by "/":
// "*" is a traversal, "$default" replaces missing values, "$arr" and "$obj"
// test the type of the value and must be the last step. Every other step is
// a field name. The identity is implicit at the end of the path, so the
// empty string is the identity path.
func ParsePath(s string) (PathExpr, error) {
	if s == "" {
		return &PathIdentity{}, nil
	}
	steps := strings.Split(s, pathSep)
	var p PathExpr = &PathIdentity{}
	for i := len(steps) - 1; i >= 0; i-- {
		last := i == len(steps)-1
		switch step := steps[i]; step {
		case "":
			return nil, errors.Newf("empty step in path %q", s)
		case traverseStep:
			p = &PathTraverse{Child: p}
		case defaultStep:
			p = &PathDefault{Child: p}
		case arrStep, objStep:
			if !last {
				return nil, errors.Newf("%s must be the last step in path %q", step, s)
			}
			if step == arrStep {
				p = &PathArr{}
			} else {
				p = &PathObj{}
			}
		default:
			if strings.HasPrefix(step, "$") {
				return nil, errors.Newf("unknown path step %q", step)
			}
			p = &PathGet{Name: step, Child: p}
		}
	}
	return p, nil
}

// MustParsePath is like ParsePath but panics on error. It is intended for
// tests.
func MustParsePath(s string) PathExpr {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PathsEqual returns true if the two paths have the same structure.
func PathsEqual(a, b PathExpr) bool {
	switch t := a.(type) {
	case *PathGet:
		o, ok := b.(*PathGet)
		return ok && t.Name == o.Name && PathsEqual(t.Child, o.Child)
	case *PathTraverse:
		o, ok := b.(*PathTraverse)
		return ok && PathsEqual(t.Child, o.Child)
	case *PathDefault:
		o, ok := b.(*PathDefault)
		return ok && PathsEqual(t.Child, o.Child)
	case *PathCompare:
		o, ok := b.(*PathCompare)
		return ok && t.Op == o.Op && t.Value.Equal(o.Value)
	case *PathIdentity:
		_, ok := b.(*PathIdentity)
		return ok
	case *PathArr:
		_, ok := b.(*PathArr)
		return ok
	case *PathObj:
		_, ok := b.(*PathObj)
		return ok
	case nil:
		return b == nil
	}
	return false
}
