// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

package jton

import (
	"fmt"
	"hash/fnv"
	"math/big"
	"time"
)

// An Element is a node of a jton document tree. The concrete types of an
// Element are exactly *Object, *Array, *Primitive, and the Null singleton.
//
// Every accessor that reports an error has an Or counterpart that swallows
// the error and returns the supplied fallback instead. The Or forms never
// fail; they are the "best-effort read" surface of the tree.
type Element interface {
	// Clone returns a deep copy of the element. Null and transient
	// primitives return themselves; containers copy recursively.
	Clone() Element

	// Equal reports whether the element is structurally equal to other.
	Equal(other Element) bool

	// Hash returns a hash code consistent with Equal.
	Hash() uint64

	IsObject() bool
	IsArray() bool
	IsPrimitive() bool
	IsNull() bool

	// IsTransient reports whether the element is a transient primitive.
	IsTransient() bool

	Object() (*Object, error)
	ObjectOr(fallback *Object) *Object
	Array() (*Array, error)
	ArrayOr(fallback *Array) *Array
	Primitive() (*Primitive, error)
	PrimitiveOr(fallback *Primitive) *Primitive

	AsBool() (bool, error)
	BoolOr(fallback bool) bool
	AsString() (string, error)
	StringOr(fallback string) string
	AsInt() (int, error)
	IntOr(fallback int) int
	AsInt64() (int64, error)
	Int64Or(fallback int64) int64
	AsFloat64() (float64, error)
	Float64Or(fallback float64) float64
	AsBigInt() (*big.Int, error)
	BigIntOr(fallback *big.Int) *big.Int
	AsBigFloat() (*big.Float, error)
	BigFloatOr(fallback *big.Float) *big.Float
	AsNumber() (Number, error)
	NumberOr(fallback Number) Number
	AsTime() (time.Time, error)
	TimeOr(fallback time.Time) time.Time
	AsSQLDate() (SQLDate, error)
	SQLDateOr(fallback SQLDate) SQLDate
	AsSQLTime() (SQLTime, error)
	SQLTimeOr(fallback SQLTime) SQLTime
	AsSQLTimestamp() (SQLTimestamp, error)
	SQLTimestampOr(fallback SQLTimestamp) SQLTimestamp
}

// A TypeError reports that an element was read as an incompatible type.
type TypeError struct {
	Kind string // the element variant, e.g. "object"
	Want string // the representation requested by the caller
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("jton: %s element cannot be read as %s", e.Kind, e.Want)
}

// base carries the failing accessor set shared by the variants that do not
// hold a scalar value. The embedding type overrides the accessors it can
// actually satisfy.
type base struct{ kind string }

func (b base) typeErr(want string) *TypeError { return &TypeError{Kind: b.kind, Want: want} }

func (b base) IsObject() bool    { return false }
func (b base) IsArray() bool     { return false }
func (b base) IsPrimitive() bool { return false }
func (b base) IsNull() bool      { return false }
func (b base) IsTransient() bool { return false }

func (b base) Object() (*Object, error)           { return nil, b.typeErr("object") }
func (b base) ObjectOr(fallback *Object) *Object  { return fallback }
func (b base) Array() (*Array, error)             { return nil, b.typeErr("array") }
func (b base) ArrayOr(fallback *Array) *Array     { return fallback }
func (b base) Primitive() (*Primitive, error)     { return nil, b.typeErr("primitive") }
func (b base) PrimitiveOr(f *Primitive) *Primitive { return f }

func (b base) AsBool() (bool, error)                { return false, b.typeErr("bool") }
func (b base) BoolOr(fallback bool) bool            { return fallback }
func (b base) AsString() (string, error)            { return "", b.typeErr("string") }
func (b base) StringOr(fallback string) string      { return fallback }
func (b base) AsInt() (int, error)                  { return 0, b.typeErr("int") }
func (b base) IntOr(fallback int) int               { return fallback }
func (b base) AsInt64() (int64, error)              { return 0, b.typeErr("int64") }
func (b base) Int64Or(fallback int64) int64         { return fallback }
func (b base) AsFloat64() (float64, error)          { return 0, b.typeErr("float64") }
func (b base) Float64Or(fallback float64) float64   { return fallback }
func (b base) AsBigInt() (*big.Int, error)          { return nil, b.typeErr("big integer") }
func (b base) BigIntOr(fallback *big.Int) *big.Int  { return fallback }
func (b base) AsBigFloat() (*big.Float, error)      { return nil, b.typeErr("big decimal") }
func (b base) BigFloatOr(f *big.Float) *big.Float   { return f }
func (b base) AsNumber() (Number, error)            { return "", b.typeErr("number") }
func (b base) NumberOr(fallback Number) Number      { return fallback }
func (b base) AsTime() (time.Time, error)           { return time.Time{}, b.typeErr("time") }
func (b base) TimeOr(fallback time.Time) time.Time  { return fallback }
func (b base) AsSQLDate() (SQLDate, error)          { return SQLDate{}, b.typeErr("SQL date") }
func (b base) SQLDateOr(fallback SQLDate) SQLDate   { return fallback }
func (b base) AsSQLTime() (SQLTime, error)          { return SQLTime{}, b.typeErr("SQL time") }
func (b base) SQLTimeOr(fallback SQLTime) SQLTime   { return fallback }
func (b base) AsSQLTimestamp() (SQLTimestamp, error) {
	return SQLTimestamp{}, b.typeErr("SQL timestamp")
}
func (b base) SQLTimestampOr(fallback SQLTimestamp) SQLTimestamp { return fallback }

// Equal reports whether a and b are structurally equal. Both may be nil;
// a nil Element is equal only to another nil Element.
func Equal(a, b Element) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// wrap converts an arbitrary value into an Element for insertion into a
// container. Elements pass through unchanged; nil becomes Null; everything
// else is wrapped as a Primitive (which panics on unsupported kinds).
func wrap(value any) Element {
	switch v := value.(type) {
	case nil:
		return Null
	case Element:
		return v
	default:
		return NewPrimitive(value)
	}
}

func hashBytes(bs []byte) uint64 {
	h := fnv.New64a()
	h.Write(bs)
	return h.Sum64()
}

func hashString(s string) uint64 { return hashBytes([]byte(s)) }
