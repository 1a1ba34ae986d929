// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

package jton

import (
	"fmt"
	"math/big"
	"strconv"
)

// A Number is a numeric value held as its original decimal text. It defers
// committing to a concrete numeric shape until the caller asks for one, so
// a parsed document does not lose precision before the consumer decides
// how much it needs.
type Number string

func (n Number) String() string { return string(n) }

// Int64 returns the value as an int64. Text with a fraction or exponent is
// parsed as a float and truncated.
func (n Number) Int64() (int64, error) {
	if v, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return v, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// Float64 returns the value as a float64.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// BigInt returns the value as an arbitrary-precision integer.
func (n Number) BigInt() (*big.Int, error) {
	z, ok := new(big.Int).SetString(string(n), 10)
	if !ok {
		return nil, fmt.Errorf("jton: %q is not a valid big integer", string(n))
	}
	return z, nil
}

// BigFloat returns the value as an arbitrary-precision decimal.
func (n Number) BigFloat() (*big.Float, error) {
	d, ok := new(big.Float).SetString(string(n))
	if !ok {
		return nil, fmt.Errorf("jton: %q is not a valid big decimal", string(n))
	}
	return d, nil
}
