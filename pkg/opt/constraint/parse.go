// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package constraint

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

const arrayOnlyKeyword = "$array"

// ParseIntervalExpr parses the text form of an interval expression:
//
//	[1, 5] ^ (2, +inf] U ['a', 'a']
//
// Disjuncts are separated by U and the intervals of a conjunction by ^.
// Values can be numbers, 'strings', null, true, false, -inf, +inf, the empty
// array [] and placeholders like ?p1. The keyword $array stands for the
// array-only interval.
func ParseIntervalExpr(s string) (IntervalExpr, error) {
	p := parser{input: s}
	e, err := p.parseExpr()
	if err != nil {
		return IntervalExpr{}, errors.Wrapf(err, "parsing interval expression %q", s)
	}
	return e, nil
}

// MustParseIntervalExpr is like ParseIntervalExpr but panics on error. It is
// intended for tests.
func MustParseIntervalExpr(s string) IntervalExpr {
	e, err := ParseIntervalExpr(s)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *parser) eof() bool {
	p.skipSpace()
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) expect(c byte) error {
	if p.peek() != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(errors.Newf(format, args...), "at position %d", p.pos)
}

func (p *parser) parseExpr() (IntervalExpr, error) {
	p.skipSpace()
	if strings.HasPrefix(p.input[p.pos:], arrayOnlyKeyword) {
		p.pos += len(arrayOnlyKeyword)
		if !p.eof() {
			return IntervalExpr{}, p.errorf("unexpected input after %s", arrayOnlyKeyword)
		}
		return ArrayOnlyIntervalExpr(), nil
	}

	var e IntervalExpr
	for {
		conj, err := p.parseConjunction()
		if err != nil {
			return IntervalExpr{}, err
		}
		e.Disjuncts = append(e.Disjuncts, conj)
		if p.eof() {
			return e, nil
		}
		if p.peek() != 'U' {
			return IntervalExpr{}, p.errorf("expected U or end of input")
		}
		p.pos++
	}
}

func (p *parser) parseConjunction() (Conjunction, error) {
	var c Conjunction
	for {
		i, err := p.parseInterval()
		if err != nil {
			return Conjunction{}, err
		}
		c.Atoms = append(c.Atoms, i)
		if p.peek() != '^' {
			return c, nil
		}
		p.pos++
	}
}

func (p *parser) parseInterval() (Interval, error) {
	var i Interval
	switch p.peek() {
	case '[':
		i.Low.Inclusive = true
	case '(':
	default:
		return Interval{}, p.errorf("expected [ or (")
	}
	p.pos++

	var err error
	if i.Low.Value, err = p.parseValue(); err != nil {
		return Interval{}, err
	}
	if err := p.expect(','); err != nil {
		return Interval{}, err
	}
	if i.High.Value, err = p.parseValue(); err != nil {
		return Interval{}, err
	}

	switch p.peek() {
	case ']':
		i.High.Inclusive = true
	case ')':
	default:
		return Interval{}, p.errorf("expected ] or )")
	}
	p.pos++
	return i, nil
}

func (p *parser) parseValue() (Value, error) {
	p.skipSpace()
	rest := p.input[p.pos:]
	switch {
	case strings.HasPrefix(rest, "[]"):
		p.pos += 2
		return EmptyArray(), nil

	case strings.HasPrefix(rest, "'"):
		return p.parseString()

	case strings.HasPrefix(rest, "?"):
		p.pos++
		name := p.scanWord()
		if name == "" {
			return Value{}, p.errorf("expected placeholder name")
		}
		return Placeholder(name), nil
	}

	word := p.scanWord()
	switch word {
	case "":
		return Value{}, p.errorf("expected value")
	case "-inf":
		return MinKey(), nil
	case "+inf":
		return MaxKey(), nil
	case "null":
		return Null(), nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	f, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return Value{}, p.errorf("invalid value %q", word)
	}
	return Number(f), nil
}

// parseString scans a single-quoted string. A doubled quote stands for a
// literal quote.
func (p *parser) parseString() (Value, error) {
	p.pos++
	var buf strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		p.pos++
		if c != '\'' {
			buf.WriteByte(c)
			continue
		}
		if p.pos < len(p.input) && p.input[p.pos] == '\'' {
			buf.WriteByte('\'')
			p.pos++
			continue
		}
		return String(buf.String()), nil
	}
	return Value{}, p.errorf("unterminated string")
}

func (p *parser) scanWord() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == ',' || c == ']' || c == ')' || unicode.IsSpace(rune(c)) {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}
