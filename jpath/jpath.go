// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

// Package jpath implements dotted/bracketed path addressing over a jton
// document tree.
package jpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	jton "github.com/chillblox/jton-lib"
)

/*
Grammar:

	 path = segment step*
	 step = "." segment
	 step = bracket
	segment = IDENT
	segment = bracket
	bracket = "[" (INDEX | name) "]"
	 name = "'" QTEXT "'"
	 name = `"` QTEXT `"`

	IDENT = letters, digits, and underscores
	INDEX = optional spaces, digits, optional spaces
	QTEXT = any text; the quote character is escaped by doubling it

A bracketed segment addresses an array index when the parent is an array,
and is otherwise used as a literal object key (which may contain dots and
brackets when quoted).
*/

// A Segment is a single step of a parsed path.
type Segment struct {
	Key       string // the identifier, index text, or quoted content
	Bracketed bool   // the segment was written in [...] form
	Quoted    bool   // the bracketed content was quoted
}

// Index returns the segment's array index, or an error if the segment is
// not a plain bracketed number.
func (s Segment) Index() (int, error) {
	if !s.Bracketed || s.Quoted {
		return 0, fmt.Errorf("jpath: %q is not an array index", s.Key)
	}
	return strconv.Atoi(strings.TrimSpace(s.Key))
}

// Parse parses a path into its segments.
func Parse(path string) ([]Segment, error) {
	if path == "" {
		return nil, errors.New("jpath: empty path")
	}
	var segs []Segment
	s := path
	for s != "" {
		seg, rest, err := parseSegment(s)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)

		// A dot separator must be followed by another segment; a bracket
		// opens the next segment directly.
		if t, ok := strings.CutPrefix(rest, "."); ok {
			if t == "" {
				return nil, errors.New("jpath: path cannot end with '.'")
			}
			s = t
		} else {
			s = rest
		}
	}
	return segs, nil
}

func parseSegment(s string) (_ Segment, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "["); ok {
		return parseBracket(t)
	}
	i := 0
	for i < len(s) && s[i] != '.' && s[i] != '[' {
		i++
	}
	name := s[:i]
	if name == "" {
		return Segment{}, s, errors.New("jpath: missing identifier")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return Segment{}, s, fmt.Errorf("jpath: illegal identifier character %q", r)
		}
	}
	return Segment{Key: name}, s[i:], nil
}

func parseBracket(s string) (_ Segment, rest string, _ error) {
	if q := s[:min(1, len(s))]; q == `'` || q == `"` {
		return parseQuoted(s[1:], q[0])
	}
	i := strings.IndexByte(s, ']')
	if i < 0 {
		return Segment{}, s, errors.New("jpath: unterminated bracketed identifier")
	}
	key := s[:i]
	if strings.TrimSpace(key) == "" {
		return Segment{}, s, errors.New("jpath: missing identifier")
	}
	return Segment{Key: key, Bracketed: true}, s[i+1:], nil
}

func parseQuoted(s string, quote byte) (_ Segment, rest string, _ error) {
	var key strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != quote {
			if s[i] < ' ' {
				return Segment{}, s, errors.New("jpath: illegal identifier character")
			}
			key.WriteByte(s[i])
			i++
			continue
		}
		// A doubled quote is a literal quote character.
		if i+1 < len(s) && s[i+1] == quote {
			key.WriteByte(quote)
			i += 2
			continue
		}
		if i+1 >= len(s) || s[i+1] != ']' {
			return Segment{}, s, errors.New("jpath: unterminated bracketed identifier")
		}
		return Segment{Key: key.String(), Bracketed: true, Quoted: true}, s[i+2:], nil
	}
	return Segment{}, s, errors.New("jpath: unterminated quoted identifier")
}

// Get returns the element at path below root. Lookups degrade gracefully:
// stepping into a primitive or null, an absent member, an out-of-range or
// malformed array index all yield jton.Null rather than an error. Get
// reports an error only when the path itself does not parse.
func Get(root jton.Element, path string) (jton.Element, error) {
	if root == nil {
		return nil, errors.New("jpath: root is nil")
	}
	segs, err := Parse(path)
	if err != nil {
		return nil, err
	}
	e := root
	for _, seg := range segs {
		switch cur := e.(type) {
		case *jton.Object:
			e = cur.Get(seg.Key)
		case *jton.Array:
			i, err := seg.Index()
			if err != nil || i < 0 {
				return jton.Null, nil
			}
			e = cur.Get(i)
		default:
			return jton.Null, nil
		}
	}
	return e, nil
}

// Set stores value at path below root, materializing missing intermediate
// containers: a null or primitive met along the way is replaced by a new
// Array when the next segment is bracketed, and a new Object otherwise.
// Non-Element values are wrapped as primitives. Set returns root.
func Set(root *jton.Object, path string, value any) (*jton.Object, error) {
	if root == nil {
		return nil, errors.New("jpath: root is nil")
	}
	segs, err := Parse(path)
	if err != nil {
		return nil, err
	}

	e := jton.Element(root)
	for i := 0; i < len(segs)-1; i++ {
		seg := segs[i]
		parent := e
		index := -1

		switch cur := e.(type) {
		case *jton.Object:
			e = cur.Get(seg.Key)
		case *jton.Array:
			index, err = seg.Index()
			if err != nil {
				return nil, fmt.Errorf("jpath: expecting array index: %q", seg.Key)
			} else if index < 0 {
				return nil, fmt.Errorf("jpath: negative array index: %q", seg.Key)
			}
			e = cur.Get(index)
		}

		if e.IsNull() || e.IsPrimitive() {
			var fresh jton.Element
			if segs[i+1].Bracketed {
				fresh = jton.NewArray()
			} else {
				fresh = jton.NewObject()
			}
			switch p := parent.(type) {
			case *jton.Object:
				p.Set(seg.Key, fresh)
			case *jton.Array:
				p.Set(index, fresh)
			}
			e = fresh
		}
	}

	last := segs[len(segs)-1]
	switch cur := e.(type) {
	case *jton.Object:
		cur.Set(last.Key, value)
	case *jton.Array:
		index, err := last.Index()
		if err != nil {
			return nil, fmt.Errorf("jpath: expecting array index: %q", last.Key)
		} else if index < 0 {
			return nil, fmt.Errorf("jpath: negative array index: %q", last.Key)
		}
		cur.Set(index, value)
	}
	return root, nil
}

// Has reports whether path resolves to a non-null element below root.
func Has(root jton.Element, path string) (bool, error) {
	e, err := Get(root, path)
	if err != nil {
		return false, err
	}
	return !e.IsNull(), nil
}
