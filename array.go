// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

package jton

import "iter"

// An Array is an ordered, index-addressable sequence of Elements.
//
// Reads past the end return Null rather than failing, and writes past the
// end pad the intervening slots with Null, so an array can be populated
// sparsely in any order.
type Array struct {
	base
	elems []Element
}

// NewArray returns a new Array holding the given values, wrapped as by
// [Array.Add].
func NewArray(values ...any) *Array {
	a := &Array{base: base{"array"}}
	return a.Add(values...)
}

// Add appends the given values, wrapping non-Element values as Primitives
// and nil as Null. It panics if any value is the array itself. Add returns
// a to allow chaining.
func (a *Array) Add(values ...any) *Array {
	for _, value := range values {
		if v, ok := value.(*Array); ok && v == a {
			panic("jton: cyclic reference")
		}
		a.elems = append(a.elems, wrap(value))
	}
	return a
}

// Set stores value at index i, padding any intervening slots with Null
// when i is at or past the current length. It returns the element
// previously at i, or Null for a newly created slot. Set panics if value
// is the array itself, or if i is negative.
func (a *Array) Set(i int, value any) Element {
	if v, ok := value.(*Array); ok && v == a {
		panic("jton: cyclic reference")
	}
	if i < 0 {
		panic("jton: negative array index")
	}
	for len(a.elems) <= i {
		a.elems = append(a.elems, Null)
	}
	prev := a.elems[i]
	a.elems[i] = wrap(value)
	return prev
}

// Get returns the element at index i, or Null when i is at or past the
// current length. Get panics if i is negative.
func (a *Array) Get(i int) Element {
	if i >= len(a.elems) {
		return Null
	}
	return a.elems[i]
}

// Remove deletes the element at index i, shifting subsequent elements
// left, and returns it. It panics if i is out of range.
func (a *Array) Remove(i int) Element {
	e := a.elems[i]
	a.elems = append(a.elems[:i], a.elems[i+1:]...)
	return e
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.elems) }

// All ranges over the elements in order.
func (a *Array) All() iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		for i, e := range a.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Clone returns a deep copy of a.
func (a *Array) Clone() Element {
	out := &Array{base: a.base, elems: make([]Element, len(a.elems))}
	for i, e := range a.elems {
		out.elems[i] = e.Clone()
	}
	return out
}

func (a *Array) IsArray() bool { return true }

func (a *Array) Array() (*Array, error) { return a, nil }
func (a *Array) ArrayOr(*Array) *Array  { return a }

func (a *Array) Equal(other Element) bool {
	q, ok := other.(*Array)
	if !ok || len(a.elems) != len(q.elems) {
		return false
	}
	for i, e := range a.elems {
		if !e.Equal(q.elems[i]) {
			return false
		}
	}
	return true
}

// Hash chains element hashes in order, matching the ordered Equal.
func (a *Array) Hash() uint64 {
	h := uint64(1)
	for _, e := range a.elems {
		h = 31*h + e.Hash()
	}
	return h
}
