// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

package serial_test

import (
	"errors"
	"math"
	"math/big"
	"strings"
	"testing"
	"time"

	jton "github.com/chillblox/jton-lib"
	"github.com/chillblox/jton-lib/serial"
)

func mustParseXML(t *testing.T, text string) *jton.Object {
	t.Helper()
	obj, err := serial.ParseXML(text)
	if err != nil {
		t.Fatalf("ParseXML(%#q): unexpected error: %v", text, err)
	}
	return obj
}

func mustXMLString(t *testing.T, obj *jton.Object) string {
	t.Helper()
	text, err := serial.XMLString(obj)
	if err != nil {
		t.Fatalf("XMLString: unexpected error: %v", err)
	}
	return text
}

func TestXMLRoundTrip(t *testing.T) {
	when := time.Date(2021, 4, 5, 12, 30, 45, 0, time.UTC)
	tree := jton.NewObject().
		Set("name", "widget & co <ltd>").
		Set("tabbed", "a\tb\nc").
		Set("enabled", true).
		Set("tiny", int8(7)).
		Set("small", int16(-300)).
		Set("mid", int32(70000)).
		Set("count", 12).
		Set("big", int64(1)<<40).
		Set("ratio", float32(0.5)).
		Set("precise", 2.25).
		Set("huge", new(big.Int).Lsh(big.NewInt(1), 80)).
		Set("dec", big.NewFloat(1.5)).
		Set("lazy", jton.Number("6.02e23")).
		Set("at", when).
		Set("day", jton.SQLDate(when)).
		Set("clock", jton.SQLTime(when)).
		Set("stamp", jton.SQLTimestamp(when)).
		Set("nothing", nil).
		Set("pair", jton.NewArray(1, 2)).
		Set("rows", jton.NewArray(
			jton.NewObject().Set("id", 1),
			jton.NewObject().Set("id", 2),
			jton.NewObject().Set("id", 3),
		)).
		Set("nested", jton.NewObject().Set("inner", "x")).
		Set("empty", jton.NewObject())

	text := mustXMLString(t, tree)
	back := mustParseXML(t, text)
	if !jton.Equal(back, tree) {
		t.Errorf("Round trip changed the tree:\n text: %s\n got:  %+v\n want: %+v", text, back, tree)
	}
}

func TestXMLArrayDetection(t *testing.T) {
	obj := mustParseXML(t, `<?xml version="1.0" encoding="UTF-8"?>
	<jton-object>
	  <xs type="int">1</xs>
	  <xs type="int">2</xs>
	  <single type="int">3</single>
	</jton-object>`)

	if !obj.Get("xs").IsArray() {
		t.Errorf("xs should read as an array, got %+v", obj.Get("xs"))
	}
	if got := obj.Get("xs").ArrayOr(nil).Len(); got != 2 {
		t.Errorf("xs length: got %d, want 2", got)
	}

	// One occurrence of a name is always a scalar member.
	if obj.Get("single").IsArray() {
		t.Error("single should not read as an array")
	}
}

// A single-element array is written as one element and cannot be told
// apart from a plain member on the way back in.
func TestXMLSingleElementArrayAmbiguity(t *testing.T) {
	tree := jton.NewObject().Set("xs", jton.NewArray(1))
	back := mustParseXML(t, mustXMLString(t, tree))
	if back.Get("xs").IsArray() {
		t.Error("single-element array unexpectedly survived the round trip")
	}
	if jton.Equal(back, tree) {
		t.Error("ambiguous round trip should not compare equal")
	}
}

func TestXMLWhitespaceStrings(t *testing.T) {
	tree := jton.NewObject().
		Set("padded", " a ").
		Set("leading", "  b").
		Set("inner", "a  b")
	back := mustParseXML(t, mustXMLString(t, tree))
	if !jton.Equal(back, tree) {
		t.Errorf("Round trip changed the strings:\n got:  %+v\n want: %+v", back, tree)
	}
}

func TestXMLNullMember(t *testing.T) {
	text := mustXMLString(t, jton.NewObject().Set("gone", nil))
	if !strings.Contains(text, `type="null"`) {
		t.Errorf("missing null leaf in %#q", text)
	}
	back := mustParseXML(t, text)
	if !back.Get("gone").IsNull() {
		t.Errorf("gone: got %+v, want Null", back.Get("gone"))
	}
}

func TestXMLRootName(t *testing.T) {
	var sb strings.Builder
	err := (serial.XML{RootName: "config"}).Write(&sb, jton.NewObject().Set("a", 1))
	if err != nil {
		t.Fatalf("Write: unexpected error: %v", err)
	}
	if got := sb.String(); !strings.Contains(got, "<config>") {
		t.Errorf("output missing custom root: %#q", got)
	}

	// The reader does not care what the root is called.
	back := mustParseXML(t, sb.String())
	if got := back.Get("a").Int64Or(0); got != 1 {
		t.Errorf("a: got %d, want 1", got)
	}
}

func TestXMLDefaultRoot(t *testing.T) {
	text := mustXMLString(t, jton.NewObject())
	if !strings.Contains(text, "<"+serial.DefaultRootName+">") {
		t.Errorf("output missing default root: %#q", text)
	}
}

func TestXMLTransientExclusion(t *testing.T) {
	tree := jton.NewObject().Set("keep", 1)
	tree.SetTransient("skip", make(chan int))

	text := mustXMLString(t, tree)
	if strings.Contains(text, "skip") {
		t.Errorf("transient member written: %#q", text)
	}
}

func TestXMLUnknownType(t *testing.T) {
	_, err := serial.ParseXML(`<r><a type="wibble">1</a></r>`)
	var serr *serial.Error
	if !errors.As(err, &serr) {
		t.Fatalf("got error %v, want *serial.Error", err)
	}
	if !strings.Contains(serr.Message, "Unknown type: wibble") {
		t.Errorf("error message %q does not name the unknown type", serr.Message)
	}
}

func TestXMLReadErrors(t *testing.T) {
	tests := []string{
		``,                                  // no document
		`<r><a type="int">zap</a></r>`,      // malformed integer text
		`<r><a type="byte">4000</a></r>`,    // out of range
		`<r><a type="bigint">0x2</a></r>`,   // malformed big integer
		`<r><a type="date">today</a></r>`,   // malformed date
		`<r><a type="char"></a></r>`,        // empty char
		`<r><unclosed>`,                     // malformed XML
		`<r type="string">scalar root</r>`,  // root is not an object
	}
	for _, input := range tests {
		if got, err := serial.ParseXML(input); err == nil {
			t.Errorf("ParseXML(%#q): got %+v, want error", input, got)
		}
	}
}

func TestXMLWriteInvalidFloat(t *testing.T) {
	values := []any{math.NaN(), math.Inf(1), big.NewFloat(math.Inf(1))}
	for _, v := range values {
		var sb strings.Builder
		err := (serial.XML{}).Write(&sb, jton.NewObject().Set("bad", v))
		var serr *serial.Error
		if !errors.As(err, &serr) {
			t.Errorf("Write(%v): got error %v, want *serial.Error", v, err)
		}
	}
}

func TestXMLNestedArrayFlattening(t *testing.T) {
	tree := jton.NewObject().Set("xs", jton.NewArray(
		jton.NewArray(1, 2),
		jton.NewArray(3, 4),
	))
	back := mustParseXML(t, mustXMLString(t, tree))

	// Nested arrays collapse onto one level of repeated siblings.
	want := jton.NewObject().Set("xs", jton.NewArray(
		int32(1), int32(2), int32(3), int32(4),
	))
	if !jton.Equal(back, want) {
		t.Errorf("got %+v, want %+v", back, want)
	}
}

func TestXMLASCIIEscaping(t *testing.T) {
	tree := jton.NewObject().Set("s", "héllo")

	var sb strings.Builder
	if err := (serial.XML{ASCII: true}).Write(&sb, tree); err != nil {
		t.Fatalf("Write: unexpected error: %v", err)
	}
	got := sb.String()
	if strings.Contains(got, "héllo") {
		t.Errorf("output not ASCII-escaped: %#q", got)
	}
	if !strings.Contains(got, `\u00e9`) {
		t.Errorf("output missing escape sequence: %#q", got)
	}

	back := mustParseXML(t, sb.String())
	if !jton.Equal(back, tree) {
		t.Errorf("escaped round trip changed the tree: %+v", back)
	}
}
