// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

// Package jton implements an in-memory, loosely-typed document tree and
// the data model shared by its wire codecs.
//
// # Elements
//
// A document is a tree of [Element] values with four variants: [Object]
// (an insertion-ordered string-keyed mapping), [Array] (an ordered
// sequence), [Primitive] (a single scalar value), and the [Null]
// singleton. Trees are built directly:
//
//	doc := jton.NewObject().
//	   Set("name", "widget").
//	   Set("count", 3).
//	   Set("tags", jton.NewArray("a", "b"))
//
// or obtained from one of the codecs in the serial package.
//
// # Reading values
//
// Every element answers the full accessor surface. The As forms report an
// error when the element cannot supply the requested representation; the
// Or forms swallow any failure and return the caller's fallback:
//
//	n, err := doc.Get("count").AsInt()   // 3, nil
//	s := doc.Get("missing").StringOr("") // ""
//
// Missing object members and out-of-range array slots read as [Null], so
// lookups over absent structure degrade gracefully instead of failing.
//
// # Scalar values
//
// A Primitive wraps a boolean, string, signed integer, float, *big.Int,
// *big.Float, lazily-parsed [Number], or temporal value (time.Time,
// [SQLDate], [SQLTime], [SQLTimestamp]). A transient primitive, created
// with [NewTransient], may wrap any value at all; it is excluded from
// serialization and from deep copies.
//
// # Sharing
//
// Inserting an element into a container stores it by reference: an
// element placed in two containers is genuinely shared, and mutations are
// visible through both. Clone breaks sharing. Documents are not
// synchronized; concurrent mutation of one tree requires external
// locking.
package jton
