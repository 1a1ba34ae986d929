// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

package jton

// Null is the singleton element representing an explicit null value.
// Missing object members and out-of-range array slots read as Null.
var Null Element = nullValue{base{"null"}}

type nullValue struct{ base }

func (nullValue) Clone() Element   { return Null }
func (nullValue) IsNull() bool     { return true }
func (nullValue) Hash() uint64     { return 0 }
func (nullValue) String() string   { return "null" }

func (nullValue) Equal(other Element) bool {
	return other != nil && other.IsNull()
}
