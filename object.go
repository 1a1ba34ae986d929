// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

package jton

import "iter"

// An Object is an insertion-ordered mapping from string keys to Elements.
// The member order is semantically significant: it controls serialization
// order. Replacing an existing key keeps its original position.
//
// Equality between objects is map equality: order-insensitive over all
// members, transient ones included.
type Object struct {
	base
	names   []string
	members map[string]Element
}

// NewObject returns a new empty Object.
func NewObject() *Object {
	return &Object{base: base{"object"}, members: make(map[string]Element)}
}

// Set associates key with value, wrapping non-Element values as Primitives
// and nil as Null. It panics if value is the object itself. Set returns o
// to allow chaining.
func (o *Object) Set(key string, value any) *Object {
	if v, ok := value.(*Object); ok && v == o {
		panic("jton: cyclic reference")
	}
	o.put(key, wrap(value))
	return o
}

// SetTransient associates key with a transient primitive wrapping value.
func (o *Object) SetTransient(key string, value any) *Object {
	o.put(key, NewTransient(value))
	return o
}

func (o *Object) put(key string, e Element) {
	if _, ok := o.members[key]; !ok {
		o.names = append(o.names, key)
	}
	o.members[key] = e
}

// Get returns the member named key, or Null if no such member exists.
func (o *Object) Get(key string) Element {
	if e, ok := o.members[key]; ok {
		return e
	}
	return Null
}

// Has reports whether a member named key exists.
func (o *Object) Has(key string) bool {
	_, ok := o.members[key]
	return ok
}

// Remove deletes the member named key and returns its value, or Null if no
// such member existed.
func (o *Object) Remove(key string) Element {
	e, ok := o.members[key]
	if !ok {
		return Null
	}
	delete(o.members, key)
	for i, name := range o.names {
		if name == key {
			o.names = append(o.names[:i], o.names[i+1:]...)
			break
		}
	}
	return e
}

// Len returns the number of members.
func (o *Object) Len() int { return len(o.members) }

// Keys returns the member keys in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.names...)
}

// All ranges over the members in insertion order.
func (o *Object) All() iter.Seq2[string, Element] {
	return func(yield func(string, Element) bool) {
		for _, name := range o.names {
			if !yield(name, o.members[name]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of o.
func (o *Object) Clone() Element {
	out := NewObject()
	for _, name := range o.names {
		out.put(name, o.members[name].Clone())
	}
	return out
}

func (o *Object) IsObject() bool { return true }

func (o *Object) Object() (*Object, error)    { return o, nil }
func (o *Object) ObjectOr(*Object) *Object    { return o }

func (o *Object) Equal(other Element) bool {
	q, ok := other.(*Object)
	if !ok || len(o.members) != len(q.members) {
		return false
	}
	for key, v := range o.members {
		w, ok := q.members[key]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}

// Hash is order-insensitive, matching Equal: the sum over members of the
// key hash combined with the value hash.
func (o *Object) Hash() uint64 {
	var sum uint64
	for key, v := range o.members {
		sum += hashString(key) ^ v.Hash()
	}
	return sum
}
