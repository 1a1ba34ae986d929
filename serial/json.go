// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

package serial

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"time"

	"go4.org/mem"

	jton "github.com/chillblox/jton-lib"
	"github.com/chillblox/jton-lib/internal/escape"
)

// JSON is the JSON codec. The zero value is ready to use and produces
// maximally compact output; the fields control the output shape only,
// reading is unaffected.
type JSON struct {
	// Indent is the number of spaces of indentation per nesting level.
	// When zero, output is written on a single line.
	Indent int

	// AlwaysQuoteKeys forces every object key to be written quoted, even
	// keys that are valid bare identifiers.
	AlwaysQuoteKeys bool

	// ASCII forces all non-ASCII characters in strings to be written as
	// \uXXXX escapes.
	ASCII bool
}

// ParseJSON decodes a single document from text with the default options.
func ParseJSON(text string) (jton.Element, error) {
	return JSON{}.Read(strings.NewReader(text))
}

// JSONString encodes e to a string with the default options.
func JSONString(e jton.Element) (string, error) {
	var sb strings.Builder
	if err := (JSON{}).Write(&sb, e); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Read decodes a single document from r. The input must contain exactly
// one value; anything but whitespace or comments after it is an error.
// In case of malformed input the returned error has type [*Error] and
// carries the 1-based input line of the problem.
func (JSON) Read(r io.Reader) (e jton.Element, err error) {
	p := &jsonParser{sc: NewScanner(r)}
	defer p.recoverParseError(&err)

	p.advance()
	e = p.parseElement()

	for {
		if err := p.sc.Next(); err == io.EOF {
			return e, nil
		} else if err != nil {
			return nil, err
		}
		if tok := p.sc.Token(); tok != LineComment && tok != BlockComment {
			return nil, errorf(p.sc.Line(), "unexpected %v after value", tok)
		}
	}
}

// A jsonParser is a recursive-descent parser over a token scanner. Parse
// failures are panicked as *Error values and recovered at the top level.
type jsonParser struct {
	sc *Scanner
}

func (p *jsonParser) recoverParseError(errp *error) {
	if v := recover(); v != nil {
		switch t := v.(type) {
		case *Error:
			*errp = t
		case transportError:
			*errp = t.err
		default:
			panic(v)
		}
	}
}

// A transportError carries an I/O failure from the underlying reader up
// through the parser without converting it into a syntax error.
type transportError struct{ err error }

// advance fetches the next non-comment token, and checks it against the
// wanted token types when any are given.
func (p *jsonParser) advance(want ...Token) Token {
	for {
		if err := p.sc.Next(); err == io.EOF {
			panic(errorf(p.sc.Line(), "unexpected end of input"))
		} else if err != nil {
			if serr, ok := err.(*Error); ok {
				panic(serr)
			}
			panic(transportError{err})
		}
		tok := p.sc.Token()
		if tok == LineComment || tok == BlockComment {
			continue
		}
		if len(want) != 0 && !slices.Contains(want, tok) {
			panic(errorf(p.sc.Line(), "%s", tokLabel(want, tok)))
		}
		return tok
	}
}

// parseElement consumes a single value of any type.
// Precondition: the scanner is positioned on the first token of the value.
func (p *jsonParser) parseElement() jton.Element {
	switch tok := p.sc.Token(); tok {
	case LBrace:
		return p.parseObject()
	case LSquare:
		return p.parseArray()
	case String:
		return jton.NewPrimitive(p.stringText())
	case Integer, Number:
		return jton.NewPrimitive(jton.Number(p.sc.Text()))
	case True:
		return jton.NewPrimitive(true)
	case False:
		return jton.NewPrimitive(false)
	case Null:
		return jton.Null
	default:
		panic(errorf(p.sc.Line(), "unexpected %v", tok))
	}
}

// parseObject consumes the members of an object.
// Precondition: token == LBrace.
func (p *jsonParser) parseObject() *jton.Object {
	obj := jton.NewObject()
	if tok := p.advance(RBrace, String, Name); tok == RBrace {
		return obj
	}
	for {
		key := p.memberKey()
		p.advance(Colon)
		p.advance()
		obj.Set(key, p.parseElement())

		if tok := p.advance(RBrace, Comma); tok == RBrace {
			return obj
		}
		p.advance(String, Name)
	}
}

// parseArray consumes the elements of an array.
// Precondition: token == LSquare.
func (p *jsonParser) parseArray() *jton.Array {
	arr := jton.NewArray()
	if tok := p.advance(); tok == RSquare {
		return arr
	}
	arr.Add(p.parseElement())
	for {
		if tok := p.advance(RSquare, Comma); tok == RSquare {
			return arr
		}
		p.advance()
		arr.Add(p.parseElement())
	}
}

// memberKey decodes the current token as an object key.
// Precondition: token == String or token == Name.
func (p *jsonParser) memberKey() string {
	if p.sc.Token() == Name {
		return string(p.sc.Text())
	}
	return p.stringText()
}

// stringText decodes the current String token, stripping the enclosing
// quotation marks and replacing escape sequences.
func (p *jsonParser) stringText() string {
	text := p.sc.Text()
	dec, err := escape.Unquote(mem.B(text[1 : len(text)-1]))
	if err != nil {
		panic(errorf(p.sc.Line(), "invalid string: %v", err))
	}
	return string(dec)
}

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprint(got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, len(tokens)-1)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return "expected " + exp + ", got " + fmt.Sprint(got)
}

// Write encodes e to w. Transient members of objects are omitted; NaN and
// infinite floating values are rejected with an [*Error], since JSON has
// no representation for them.
func (s JSON) Write(w io.Writer, e jton.Element) error {
	bw := bufio.NewWriter(w)
	if err := s.writeElement(bw, e, 0); err != nil {
		return err
	}
	return bw.Flush()
}

func (s JSON) writeElement(bw *bufio.Writer, e jton.Element, level int) error {
	switch {
	case e == nil || e.IsNull() || e.IsTransient():
		bw.WriteString("null")
		return nil
	case e.IsObject():
		return s.writeObject(bw, e.ObjectOr(nil), level)
	case e.IsArray():
		return s.writeArray(bw, e.ArrayOr(nil), level)
	default:
		return s.writePrimitive(bw, e.PrimitiveOr(nil))
	}
}

func (s JSON) writeObject(bw *bufio.Writer, obj *jton.Object, level int) error {
	bw.WriteByte('{')
	i := 0
	for key, value := range obj.All() {
		if value.IsTransient() {
			continue
		}
		if i > 0 {
			if s.Indent > 0 {
				bw.WriteByte(',')
			} else {
				bw.WriteString(", ")
			}
		}
		if s.Indent > 0 {
			bw.WriteByte('\n')
			writePadding(bw, (level+1)*s.Indent)
		}
		s.writeKey(bw, key)
		bw.WriteString(": ")
		if err := s.writeElement(bw, value, level+1); err != nil {
			return err
		}
		i++
	}
	if s.Indent > 0 && i > 0 {
		bw.WriteByte('\n')
		writePadding(bw, level*s.Indent)
	}
	bw.WriteByte('}')
	return nil
}

func (s JSON) writeArray(bw *bufio.Writer, arr *jton.Array, level int) error {
	bw.WriteByte('[')
	if s.Indent > 0 && arr.Len() > 0 {
		for i, item := range arr.All() {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('\n')
			writePadding(bw, (level+1)*s.Indent)
			if err := s.writeElement(bw, item, level+1); err != nil {
				return err
			}
		}
		bw.WriteByte('\n')
		writePadding(bw, level*s.Indent)
	} else {
		for i, item := range arr.All() {
			if i > 0 {
				bw.WriteString(", ")
			}
			if err := s.writeElement(bw, item, level); err != nil {
				return err
			}
		}
	}
	bw.WriteByte(']')
	return nil
}

func (s JSON) writePrimitive(bw *bufio.Writer, p *jton.Primitive) error {
	switch v := p.Value().(type) {
	case string:
		s.writeString(bw, v)
	case bool:
		bw.WriteString(strconv.FormatBool(v))
	case int8:
		bw.WriteString(strconv.FormatInt(int64(v), 10))
	case int16:
		bw.WriteString(strconv.FormatInt(int64(v), 10))
	case int32:
		bw.WriteString(strconv.FormatInt(int64(v), 10))
	case int:
		bw.WriteString(strconv.FormatInt(int64(v), 10))
	case int64:
		bw.WriteString(strconv.FormatInt(v, 10))
	case float32:
		if err := checkFloat(float64(v)); err != nil {
			return err
		}
		bw.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
	case float64:
		if err := checkFloat(v); err != nil {
			return err
		}
		bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case *big.Int:
		bw.WriteString(v.String())
	case *big.Float:
		if v.IsInf() {
			return errorf(0, "%v is not a valid value", v)
		}
		bw.WriteString(v.Text('g', -1))
	case jton.Number:
		bw.WriteString(string(v))
	case time.Time:
		s.writeQuoted(bw, jton.FormatDateTime(v))
	case jton.SQLDate:
		s.writeQuoted(bw, v.String())
	case jton.SQLTime:
		s.writeQuoted(bw, v.String())
	case jton.SQLTimestamp:
		s.writeQuoted(bw, v.String())
	default:
		return errorf(0, "cannot serialize %T value", v)
	}
	return nil
}

func checkFloat(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errorf(0, "%v is not a valid value", v)
	}
	return nil
}

func (s JSON) writeString(bw *bufio.Writer, v string) {
	bw.WriteByte('"')
	bw.Write(escape.Quote(mem.S(v), s.ASCII))
	bw.WriteByte('"')
}

// writeQuoted writes a quote-delimited value known not to need escaping.
func (JSON) writeQuoted(bw *bufio.Writer, v string) {
	bw.WriteByte('"')
	bw.WriteString(v)
	bw.WriteByte('"')
}

// writeKey writes an object key, quote-delimited only if the key is not a
// valid bare identifier or AlwaysQuoteKeys is set.
func (s JSON) writeKey(bw *bufio.Writer, key string) {
	if !s.AlwaysQuoteKeys && isIdentifier(key) {
		bw.WriteString(key)
		return
	}
	s.writeString(bw, key)
}

func isIdentifier(key string) bool {
	for i, r := range key {
		if i == 0 && !isNameStart(r) {
			return false
		} else if !isNameRune(r) {
			return false
		}
	}
	return key != ""
}

func writePadding(bw *bufio.Writer, n int) {
	for i := 0; i < n; i++ {
		bw.WriteByte(' ')
	}
}
