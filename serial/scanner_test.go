// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

package serial_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"

	"github.com/chillblox/jton-lib/serial"
)

func scanAll(t *testing.T, input string) []serial.Token {
	t.Helper()
	var got []serial.Token
	s := serial.NewScanner(strings.NewReader(input))
	for {
		if err := s.Next(); err == io.EOF {
			return got
		} else if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		got = append(got, s.Token())
	}
}

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []serial.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []serial.Token{serial.True, serial.False, serial.Null}},

		// Punctuation
		{"{ [ ] } , :", []serial.Token{
			serial.LBrace, serial.LSquare, serial.RSquare, serial.RBrace, serial.Comma, serial.Colon,
		}},

		// Strings, in both quoting styles
		{`"" "a b c" "a\nb\tc"`, []serial.Token{serial.String, serial.String, serial.String}},
		{`"\"\\\/\b\f\n\r\t"`, []serial.Token{serial.String}},
		{"\"h\u00e9llo \u2603\"", []serial.Token{serial.String}},
		{`'' 'a b c' 'don\'t'`, []serial.Token{serial.String, serial.String, serial.String}},
		{`"it's" 'say "hi"'`, []serial.Token{serial.String, serial.String}},

		// Numbers, including the leading-plus extension
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100 +17`, []serial.Token{
			serial.Integer, serial.Integer, serial.Integer,
			serial.Number, serial.Number, serial.Number, serial.Number,
			serial.Integer,
		}},

		// Bare identifiers
		{`alpha _x $ref x9`, []serial.Token{serial.Name, serial.Name, serial.Name, serial.Name}},
		{`truex nulled`, []serial.Token{serial.Name, serial.Name}},

		// Comments
		{"// to end of line\n1", []serial.Token{serial.LineComment, serial.Integer}},
		{"/* boxed */ 2", []serial.Token{serial.BlockComment, serial.Integer}},
		{"/* multi\nline\n*comment* */ 3", []serial.Token{serial.BlockComment, serial.Integer}},

		// A byte-order mark is consumed silently.
		{"\uFEFF{}", []serial.Token{serial.LBrace, serial.RBrace}},

		// Mixed types
		{`{a: true, 'b':[null, 1, 0.5]}`, []serial.Token{
			serial.LBrace,
			serial.Name, serial.Colon, serial.True, serial.Comma,
			serial.String, serial.Colon,
			serial.LSquare,
			serial.Null, serial.Comma, serial.Integer, serial.Comma, serial.Number,
			serial.RSquare,
			serial.RBrace,
		}},
	}

	for _, test := range tests {
		got := scanAll(t, test.input)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerText(t *testing.T) {
	s := serial.NewScanner(strings.NewReader(`{key: "va\nl", n: -3.5}`))
	want := []string{"{", "key", ":", `"va\nl"`, ",", "n", ":", "-3.5", "}"}
	for i, text := range want {
		if err := s.Next(); err != nil {
			t.Fatalf("Next %d failed: %v", i, err)
		}
		if got := string(s.Text()); got != text {
			t.Errorf("Token %d: got %#q, want %#q", i, got, text)
		}
	}
	if err := s.Next(); err != io.EOF {
		t.Errorf("Next at end: got %v, want io.EOF", err)
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		input string
		line  int
	}{
		{`"unterminated`, 1},
		{"{\n\"open", 2},
		{`'also open`, 1},
		{`"bad \x escape"`, 1},
		{`"bad \u00ZZ escape"`, 1},
		{`01.5`, 1},
		{`1.`, 1},
		{`-`, 1},
		{`5e+`, 1},
		{"/* runs off the end", 1},
		{"/- not a comment", 1},
		{"\n\n&", 3},
		{"\x00", 1},
	}
	for _, test := range tests {
		s := serial.NewScanner(strings.NewReader(test.input))
		var err error
		for {
			if err = s.Next(); err != nil {
				break
			}
		}
		if err == io.EOF {
			t.Errorf("Input %#q: scan unexpectedly succeeded", test.input)
			continue
		}
		serr, ok := err.(*serial.Error)
		if !ok {
			t.Errorf("Input %#q: got error %v, want *serial.Error", test.input, err)
		} else if serr.Line != test.line {
			t.Errorf("Input %#q: error on line %d, want %d: %v", test.input, serr.Line, test.line, serr)
		}
	}
}

// A failure of the underlying reader must surface as-is, not dressed up
// as a syntax error.
func TestScannerTransportError(t *testing.T) {
	broken := errors.New("device gone")
	inputs := []string{
		`"abc`,     // mid-string
		`123`,      // mid-number
		`/* open`,  // mid-comment
		`{"a": tr`, // mid-name
	}
	for _, input := range inputs {
		s := serial.NewScanner(io.MultiReader(strings.NewReader(input), iotest.ErrReader(broken)))
		var err error
		for {
			if err = s.Next(); err != nil {
				break
			}
		}
		if !errors.Is(err, broken) {
			t.Errorf("Input %#q: got error %v, want %v", input, err, broken)
		}
		var serr *serial.Error
		if errors.As(err, &serr) {
			t.Errorf("Input %#q: got *serial.Error %v, want raw transport error", input, err)
		}
	}
}
