// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

package jton

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// A Primitive is a leaf element wrapping exactly one scalar value.
//
// The payload of an ordinary primitive is one of: bool, string, a signed
// integer (int8, int16, int32, int, int64), a float (float32, float64),
// *big.Int, *big.Float, a lazily-parsed Number, or a temporal value
// (time.Time, SQLDate, SQLTime, SQLTimestamp). Unsigned integers are
// normalized to int64 (or *big.Int when they do not fit) at construction.
//
// A transient primitive may wrap any value at all; it is skipped by the
// serializers and returned as-is by Clone.
type Primitive struct {
	base
	transient bool
	value     any
}

// NewPrimitive returns a new Primitive wrapping value. It panics if value
// is not one of the supported scalar kinds.
func NewPrimitive(value any) *Primitive {
	p := &Primitive{base: base{"primitive"}}
	p.value = normalize(value)
	return p
}

// NewTransient returns a new transient Primitive wrapping value. The value
// may be of any type.
func NewTransient(value any) *Primitive {
	return &Primitive{base: base{"primitive"}, transient: true, value: value}
}

func normalize(value any) any {
	switch v := value.(type) {
	case bool, string, int8, int16, int32, int, int64,
		float32, float64, *big.Int, *big.Float, Number,
		time.Time, SQLDate, SQLTime, SQLTimestamp:
		return v
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint:
		if uint64(v) > math.MaxInt64 {
			return new(big.Int).SetUint64(uint64(v))
		}
		return int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return new(big.Int).SetUint64(v)
		}
		return int64(v)
	default:
		panic(fmt.Sprintf("jton: unsupported primitive value %T", value))
	}
}

// Value returns the wrapped payload.
func (p *Primitive) Value() any { return p.value }

// Clone returns a copy of p. A transient primitive is returned unchanged,
// since its payload is not assumed copyable.
func (p *Primitive) Clone() Element {
	if p.transient {
		return p
	}
	return &Primitive{base: p.base, value: p.value}
}

func (p *Primitive) IsPrimitive() bool { return true }
func (p *Primitive) IsTransient() bool { return p.transient }

// IsBool reports whether the payload is a boolean.
func (p *Primitive) IsBool() bool { _, ok := p.value.(bool); return ok }

// IsString reports whether the payload is a string.
func (p *Primitive) IsString() bool { _, ok := p.value.(string); return ok }

// IsNumber reports whether the payload is any numeric kind.
func (p *Primitive) IsNumber() bool {
	switch p.value.(type) {
	case int8, int16, int32, int, int64, float32, float64, *big.Int, *big.Float, Number:
		return true
	}
	return false
}

// IsTime reports whether the payload is any temporal kind.
func (p *Primitive) IsTime() bool {
	switch p.value.(type) {
	case time.Time, SQLDate, SQLTime, SQLTimestamp:
		return true
	}
	return false
}

// IsSQLDate reports whether the payload is a date-only value.
func (p *Primitive) IsSQLDate() bool { _, ok := p.value.(SQLDate); return ok }

// IsSQLTime reports whether the payload is a time-only value.
func (p *Primitive) IsSQLTime() bool { _, ok := p.value.(SQLTime); return ok }

// IsSQLTimestamp reports whether the payload is a timestamp value.
func (p *Primitive) IsSQLTimestamp() bool { _, ok := p.value.(SQLTimestamp); return ok }

func (p *Primitive) Primitive() (*Primitive, error)     { return p, nil }
func (p *Primitive) PrimitiveOr(*Primitive) *Primitive  { return p }

func (p *Primitive) AsBool() (bool, error) {
	if b, ok := p.value.(bool); ok {
		return b, nil
	}
	s, err := p.AsString()
	if err != nil {
		return false, err
	}
	return strings.EqualFold(s, "true"), nil
}

func (p *Primitive) BoolOr(fallback bool) bool {
	v, err := p.AsBool()
	if err != nil {
		return fallback
	}
	return v
}

func (p *Primitive) AsString() (string, error) {
	switch v := p.value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case SQLDate:
		return FormatDate(time.Time(v)), nil
	case SQLTime:
		return FormatTime(time.Time(v)), nil
	case SQLTimestamp:
		return FormatDateTime(time.Time(v)), nil
	case time.Time:
		return FormatDateTime(v), nil
	}
	if p.IsNumber() {
		return p.numberText(), nil
	}
	return "", p.typeErr("string")
}

func (p *Primitive) StringOr(fallback string) string {
	v, err := p.AsString()
	if err != nil {
		return fallback
	}
	return v
}

// numberText renders a numeric payload as decimal text.
// Precondition: p.IsNumber().
func (p *Primitive) numberText() string {
	switch v := p.value.(type) {
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case *big.Int:
		return v.String()
	case *big.Float:
		return v.Text('g', -1)
	case Number:
		return string(v)
	}
	panic("jton: not a number")
}

func (p *Primitive) AsInt() (int, error) {
	v, err := p.AsInt64()
	return int(v), err
}

func (p *Primitive) IntOr(fallback int) int {
	v, err := p.AsInt()
	if err != nil {
		return fallback
	}
	return v
}

func (p *Primitive) AsInt64() (int64, error) {
	switch v := p.value.(type) {
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case *big.Int:
		return v.Int64(), nil
	case *big.Float:
		i, _ := v.Int64()
		return i, nil
	case Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(v, 10, 64)
	}
	return 0, p.typeErr("int64")
}

func (p *Primitive) Int64Or(fallback int64) int64 {
	v, err := p.AsInt64()
	if err != nil {
		return fallback
	}
	return v
}

func (p *Primitive) AsFloat64() (float64, error) {
	switch v := p.value.(type) {
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case *big.Int:
		f, _ := new(big.Float).SetInt(v).Float64()
		return f, nil
	case *big.Float:
		f, _ := v.Float64()
		return f, nil
	case Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(v, 64)
	}
	return 0, p.typeErr("float64")
}

func (p *Primitive) Float64Or(fallback float64) float64 {
	v, err := p.AsFloat64()
	if err != nil {
		return fallback
	}
	return v
}

func (p *Primitive) AsBigInt() (*big.Int, error) {
	if z, ok := p.value.(*big.Int); ok {
		return z, nil
	}
	text, err := p.AsString()
	if err != nil {
		return nil, err
	}
	z, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, fmt.Errorf("jton: %q is not a valid big integer", text)
	}
	return z, nil
}

func (p *Primitive) BigIntOr(fallback *big.Int) *big.Int {
	v, err := p.AsBigInt()
	if err != nil {
		return fallback
	}
	return v
}

func (p *Primitive) AsBigFloat() (*big.Float, error) {
	if d, ok := p.value.(*big.Float); ok {
		return d, nil
	}
	text, err := p.AsString()
	if err != nil {
		return nil, err
	}
	d, ok := new(big.Float).SetString(text)
	if !ok {
		return nil, fmt.Errorf("jton: %q is not a valid big decimal", text)
	}
	return d, nil
}

func (p *Primitive) BigFloatOr(fallback *big.Float) *big.Float {
	v, err := p.AsBigFloat()
	if err != nil {
		return fallback
	}
	return v
}

func (p *Primitive) AsNumber() (Number, error) {
	if n, ok := p.value.(Number); ok {
		return n, nil
	}
	if s, ok := p.value.(string); ok {
		return Number(s), nil
	}
	if p.IsNumber() {
		return Number(p.numberText()), nil
	}
	return "", p.typeErr("number")
}

func (p *Primitive) NumberOr(fallback Number) Number {
	v, err := p.AsNumber()
	if err != nil {
		return fallback
	}
	return v
}

func (p *Primitive) AsTime() (time.Time, error) {
	switch v := p.value.(type) {
	case time.Time:
		return v, nil
	case SQLDate:
		return time.Time(v), nil
	case SQLTime:
		return time.Time(v), nil
	case SQLTimestamp:
		return time.Time(v), nil
	case string:
		return ParseDateTime(v)
	}
	return time.Time{}, p.typeErr("time")
}

func (p *Primitive) TimeOr(fallback time.Time) time.Time {
	v, err := p.AsTime()
	if err != nil {
		return fallback
	}
	return v
}

// AsSQLDate reinterprets the payload as a date-only value. A generic
// temporal payload is truncated to its date; a string payload is parsed.
func (p *Primitive) AsSQLDate() (SQLDate, error) {
	if d, ok := p.value.(SQLDate); ok {
		return d, nil
	}
	if s, ok := p.value.(string); ok {
		t, err := ParseDate(s)
		return SQLDate(t), err
	}
	t, err := p.AsTime()
	if err != nil {
		return SQLDate{}, p.typeErr("SQL date")
	}
	return SQLDate(truncateToDate(t)), nil
}

func (p *Primitive) SQLDateOr(fallback SQLDate) SQLDate {
	v, err := p.AsSQLDate()
	if err != nil {
		return fallback
	}
	return v
}

// AsSQLTime reinterprets the payload as a time-of-day value.
func (p *Primitive) AsSQLTime() (SQLTime, error) {
	if d, ok := p.value.(SQLTime); ok {
		return d, nil
	}
	if s, ok := p.value.(string); ok {
		t, err := ParseTime(s)
		return SQLTime(t), err
	}
	t, err := p.AsTime()
	if err != nil {
		return SQLTime{}, p.typeErr("SQL time")
	}
	return SQLTime(truncateToClock(t)), nil
}

func (p *Primitive) SQLTimeOr(fallback SQLTime) SQLTime {
	v, err := p.AsSQLTime()
	if err != nil {
		return fallback
	}
	return v
}

// AsSQLTimestamp reinterprets the payload as a timestamp, keeping full
// precision.
func (p *Primitive) AsSQLTimestamp() (SQLTimestamp, error) {
	if d, ok := p.value.(SQLTimestamp); ok {
		return d, nil
	}
	t, err := p.AsTime()
	if err != nil {
		return SQLTimestamp{}, p.typeErr("SQL timestamp")
	}
	return SQLTimestamp(t), nil
}

func (p *Primitive) SQLTimestampOr(fallback SQLTimestamp) SQLTimestamp {
	v, err := p.AsSQLTimestamp()
	if err != nil {
		return fallback
	}
	return v
}

// isIntegral reports whether the payload is one of the integral numeric
// kinds. Lazily-parsed numbers are not integral even when their text is.
func (p *Primitive) isIntegral() bool {
	switch p.value.(type) {
	case int8, int16, int32, int, int64, *big.Int:
		return true
	}
	return false
}

// Equal implements the primitive equality rules: integral values compare
// by int64 value, other numeric pairs by float64 value with NaN equal to
// NaN, and everything else by payload equality. Temporal payloads compare
// by instant regardless of subtype.
func (p *Primitive) Equal(other Element) bool {
	q, ok := other.(*Primitive)
	if !ok {
		return false
	}
	if p == q {
		return true
	}
	if p.value == nil || q.value == nil {
		return p.value == nil && q.value == nil
	}
	if p.isIntegral() && q.isIntegral() {
		a, _ := p.AsInt64()
		b, _ := q.AsInt64()
		return a == b
	}
	if p.IsNumber() && q.IsNumber() {
		a, ea := p.AsFloat64()
		b, eb := q.AsFloat64()
		if ea != nil || eb != nil {
			return false
		}
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	}
	if p.IsTime() && q.IsTime() {
		a, _ := p.AsTime()
		b, _ := q.AsTime()
		return a.Equal(b)
	}
	if p.transient || q.transient {
		return reflect.DeepEqual(p.value, q.value)
	}
	return p.value == q.value
}

// Hash mirrors Equal: integral values hash by their int64 value, other
// numerics by the bit pattern of their float64 value.
func (p *Primitive) Hash() uint64 {
	switch {
	case p.value == nil:
		return 31
	case p.isIntegral():
		v, _ := p.AsInt64()
		return uint64(v)
	case p.IsNumber():
		// An integral-valued float must hash like the integer it equals.
		v, _ := p.AsFloat64()
		if v == math.Trunc(v) && v >= math.MinInt64 && v <= math.MaxInt64 {
			return uint64(int64(v))
		}
		return math.Float64bits(v)
	case p.IsTime():
		t, _ := p.AsTime()
		return uint64(t.UnixNano())
	}
	switch v := p.value.(type) {
	case bool:
		if v {
			return 1231
		}
		return 1237
	case string:
		return hashString(v)
	}
	return hashString(fmt.Sprint(p.value))
}
