// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

package serial

import (
	"encoding/xml"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	jton "github.com/chillblox/jton-lib"
)

// DefaultRootName is the element name used for the document root when no
// other name is configured.
const DefaultRootName = "jton-object"

// XML is the XML codec. Documents are objects; member values are nested
// elements, with every leaf carrying a "type" attribute naming its scalar
// kind. An array is written by repeating the member's element name once
// per item, and read back by watching for repeated sibling names. A
// single-element array is therefore indistinguishable from a plain nested
// member after a write/read cycle; callers that need arrays to survive
// the round trip must keep them at zero or two or more elements. A string
// containing only whitespace reads back empty, since its text cannot be
// told from layout between elements.
type XML struct {
	// RootName is the local name of the document root element. When it is
	// empty, DefaultRootName is used.
	RootName string

	// ASCII forces all non-ASCII characters in text nodes to be written
	// as \uXXXX escapes.
	ASCII bool
}

// ParseXML decodes a single document from text with the default options.
func ParseXML(text string) (*jton.Object, error) {
	return XML{}.Read(strings.NewReader(text))
}

// XMLString encodes obj to a string with the default options.
func XMLString(obj *jton.Object) (string, error) {
	var sb strings.Builder
	if err := (XML{}).Write(&sb, obj); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// xmlNode is an in-progress element during reading. Nodes form a tree
// mirroring the element nesting; each parent tracks which child names
// occur more than once, which is what distinguishes arrays from nested
// objects at materialization time.
type xmlNode struct {
	name     string
	typ      string // the "type" attribute; empty for containers
	text     string
	parent   *xmlNode
	children []*xmlNode
	repeated map[string]bool
}

func (n *xmlNode) add(c *xmlNode) {
	c.parent = n
	if n.repeated == nil {
		n.repeated = make(map[string]bool)
	}
	_, seen := n.repeated[c.name]
	n.repeated[c.name] = seen
	n.children = append(n.children, c)
}

// Read decodes a single document from r. The root element must be an
// object. Malformed XML and unknown or unparseable type tags are reported
// as [*Error].
func (XML) Read(r io.Reader) (*jton.Object, error) {
	dec := xml.NewDecoder(r)

	var root, cur *xmlNode
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			if serr, ok := err.(*xml.SyntaxError); ok {
				return nil, &Error{Line: serr.Line, Message: serr.Msg, err: err}
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &xmlNode{name: t.Name.Local}
			for _, a := range t.Attr {
				if strings.EqualFold(a.Name.Local, "type") {
					n.typ = a.Value
					break
				}
			}
			if cur == nil {
				root = n
			} else {
				cur.add(n)
			}
			cur = n
		case xml.EndElement:
			if cur != nil {
				cur = cur.parent
			}
		case xml.CharData:
			// Whitespace-only runs are layout between elements; anything
			// else is the element's text, kept whole.
			if cur != nil && strings.TrimSpace(string(t)) != "" {
				cur.text = string(t)
			}
		}
	}
	if root == nil {
		return nil, errorf(0, "empty input")
	}

	e, err := root.toElement()
	if err != nil {
		return nil, err
	}
	obj, oerr := e.Object()
	if oerr != nil {
		return nil, errorf(0, "root element is not an object")
	}
	return obj, nil
}

// toElement converts a fully-read node into an Element. A node without a
// type attribute becomes an Object; repeated sibling names under it are
// collected into Arrays. A node with a type attribute becomes the scalar
// its tag names.
func (n *xmlNode) toElement() (jton.Element, error) {
	if n.typ == "" {
		obj := jton.NewObject()
		for _, c := range n.children {
			e, err := c.toElement()
			if err != nil {
				return nil, err
			}
			if n.repeated[c.name] {
				arr := obj.Get(c.name).ArrayOr(nil)
				if arr == nil {
					arr = jton.NewArray()
					obj.Set(c.name, arr)
				}
				arr.Add(e)
			} else {
				obj.Set(c.name, e)
			}
		}
		return obj, nil
	}
	return decodeTyped(n.typ, n.text)
}

func decodeTyped(typ, text string) (jton.Element, error) {
	switch typ {
	case "null":
		return jton.Null, nil
	case "string":
		return jton.NewPrimitive(unescapeText(text)), nil
	case "char":
		s := unescapeText(text)
		if s == "" {
			return nil, errorf(0, "empty char value")
		}
		r, _ := utf8.DecodeRuneInString(s)
		return jton.NewPrimitive(string(r)), nil
	case "bool", "boolean":
		v, err := strconv.ParseBool(text)
		if err != nil {
			return nil, wrapError(0, err)
		}
		return jton.NewPrimitive(v), nil
	case "byte":
		v, err := strconv.ParseInt(text, 10, 8)
		if err != nil {
			return nil, wrapError(0, err)
		}
		return jton.NewPrimitive(int8(v)), nil
	case "short":
		v, err := strconv.ParseInt(text, 10, 16)
		if err != nil {
			return nil, wrapError(0, err)
		}
		return jton.NewPrimitive(int16(v)), nil
	case "int":
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, wrapError(0, err)
		}
		return jton.NewPrimitive(int32(v)), nil
	case "long":
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, wrapError(0, err)
		}
		return jton.NewPrimitive(v), nil
	case "float":
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil, wrapError(0, err)
		}
		return jton.NewPrimitive(float32(v)), nil
	case "double":
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, wrapError(0, err)
		}
		return jton.NewPrimitive(v), nil
	case "bigint":
		z, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, errorf(0, "invalid bigint value %q", text)
		}
		return jton.NewPrimitive(z), nil
	case "bigdecimal":
		d, _, err := big.ParseFloat(text, 10, big.MaxPrec, big.ToNearestEven)
		if err != nil {
			return nil, wrapError(0, err)
		}
		return jton.NewPrimitive(d), nil
	case "number":
		return jton.NewPrimitive(jton.Number(text)), nil
	case "date":
		t, err := jton.ParseDateTime(text)
		if err != nil {
			return nil, wrapError(0, err)
		}
		return jton.NewPrimitive(t), nil
	case "sqldate":
		t, err := jton.ParseDate(text)
		if err != nil {
			return nil, wrapError(0, err)
		}
		return jton.NewPrimitive(jton.SQLDate(t)), nil
	case "sqltime":
		t, err := jton.ParseTime(text)
		if err != nil {
			return nil, wrapError(0, err)
		}
		return jton.NewPrimitive(jton.SQLTime(t)), nil
	case "sqltstamp":
		t, err := jton.ParseDateTime(text)
		if err != nil {
			return nil, wrapError(0, err)
		}
		return jton.NewPrimitive(jton.SQLTimestamp(t)), nil
	default:
		return nil, errorf(0, "Unknown type: %s", typ)
	}
}

// Write encodes obj to w as an XML document rooted at RootName. Transient
// members are omitted; NaN and infinite floating values are rejected with
// an [*Error].
func (s XML) Write(w io.Writer, obj *jton.Object) error {
	if obj == nil {
		return errorf(0, "object is nil")
	}
	enc := xml.NewEncoder(w)
	err := enc.EncodeToken(xml.ProcInst{
		Target: "xml",
		Inst:   []byte(`version="1.0" encoding="UTF-8"`),
	})
	if err != nil {
		return err
	}
	name := s.RootName
	if name == "" {
		name = DefaultRootName
	}
	if err := s.writeObject(enc, name, obj); err != nil {
		return err
	}
	return enc.Flush()
}

func (s XML) writeObject(enc *xml.Encoder, name string, obj *jton.Object) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for key, value := range obj.All() {
		if value.IsTransient() {
			continue
		}
		if err := s.writeMember(enc, key, value); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// writeMember writes one named value. An array re-emits the same name
// once per item, which flattens nested arrays onto a single level.
func (s XML) writeMember(enc *xml.Encoder, name string, e jton.Element) error {
	switch {
	case e.IsNull():
		start := xml.StartElement{
			Name: xml.Name{Local: name},
			Attr: []xml.Attr{{Name: xml.Name{Local: "type"}, Value: "null"}},
		}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		return enc.EncodeToken(start.End())
	case e.IsArray():
		for _, item := range e.ArrayOr(nil).All() {
			if item.IsTransient() {
				continue
			}
			if err := s.writeMember(enc, name, item); err != nil {
				return err
			}
		}
		return nil
	case e.IsObject():
		return s.writeObject(enc, name, e.ObjectOr(nil))
	default:
		tag, text, err := s.primitiveText(e.PrimitiveOr(nil))
		if err != nil {
			return err
		}
		start := xml.StartElement{
			Name: xml.Name{Local: name},
			Attr: []xml.Attr{{Name: xml.Name{Local: "type"}, Value: tag}},
		}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
		return enc.EncodeToken(start.End())
	}
}

// primitiveText chooses the type tag and text rendering for a scalar.
func (s XML) primitiveText(p *jton.Primitive) (tag, text string, _ error) {
	switch v := p.Value().(type) {
	case string:
		return "string", s.escapeText(v), nil
	case bool:
		return "bool", strconv.FormatBool(v), nil
	case int8:
		return "byte", strconv.FormatInt(int64(v), 10), nil
	case int16:
		return "short", strconv.FormatInt(int64(v), 10), nil
	case int32:
		return "int", strconv.FormatInt(int64(v), 10), nil
	case int:
		return "long", strconv.FormatInt(int64(v), 10), nil
	case int64:
		return "long", strconv.FormatInt(v, 10), nil
	case float32:
		if err := checkFloat(float64(v)); err != nil {
			return "", "", err
		}
		return "float", strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		if err := checkFloat(v); err != nil {
			return "", "", err
		}
		return "double", strconv.FormatFloat(v, 'g', -1, 64), nil
	case *big.Int:
		return "bigint", v.String(), nil
	case *big.Float:
		if v.IsInf() {
			return "", "", errorf(0, "%v is not a valid value", v)
		}
		return "bigdecimal", v.Text('g', -1), nil
	case jton.Number:
		return "number", string(v), nil
	case time.Time:
		return "date", jton.FormatDateTime(v), nil
	case jton.SQLDate:
		return "sqldate", v.String(), nil
	case jton.SQLTime:
		return "sqltime", v.String(), nil
	case jton.SQLTimestamp:
		return "sqltstamp", v.String(), nil
	default:
		return "", "", errorf(0, "cannot serialize %T value", v)
	}
}

// escapeText applies the text-node escaping used for string leaves: tab
// and newline become backslash escapes, and when ASCII is set runes
// outside the ASCII range become \uXXXX escapes. Reserved XML characters
// are left to the encoder's entity escaping.
func (s XML) escapeText(text string) string {
	var sb strings.Builder
	for _, r := range text {
		switch {
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\n':
			sb.WriteString(`\n`)
		case s.ASCII && r > 0x7F:
			fmtHex4(&sb, r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func fmtHex4(sb *strings.Builder, r rune) {
	const hex = "0123456789abcdef"
	if r > 0xFFFF {
		v := uint32(r) - 0x10000
		fmtHex4(sb, rune(0xD800+v>>10))
		fmtHex4(sb, rune(0xDC00+v&0x3FF))
		return
	}
	sb.WriteString(`\u`)
	sb.WriteByte(hex[r>>12&15])
	sb.WriteByte(hex[r>>8&15])
	sb.WriteByte(hex[r>>4&15])
	sb.WriteByte(hex[r&15])
}

// unescapeText reverses escapeText. Backslashes not opening a recognized
// escape are kept as-is.
func unescapeText(text string) string {
	if !strings.ContainsRune(text, '\\') {
		return text
	}
	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] != '\\' || i+1 >= len(text) {
			sb.WriteByte(text[i])
			continue
		}
		switch text[i+1] {
		case 't':
			sb.WriteByte('\t')
			i++
		case 'n':
			sb.WriteByte('\n')
			i++
		case 'u':
			if i+6 <= len(text) {
				if v, err := strconv.ParseUint(text[i+2:i+6], 16, 32); err == nil {
					r := rune(v)
					i += 5
					// A high surrogate combines with a following \uXXXX
					// low surrogate into one rune.
					if utf16.IsSurrogate(r) && i+7 <= len(text) && text[i+1] == '\\' && text[i+2] == 'u' {
						if w, err := strconv.ParseUint(text[i+3:i+7], 16, 32); err == nil {
							if c := utf16.DecodeRune(r, rune(w)); c != utf8.RuneError {
								r = c
								i += 6
							}
						}
					}
					sb.WriteRune(r)
					continue
				}
			}
			sb.WriteByte(text[i])
		default:
			sb.WriteByte(text[i])
		}
	}
	return sb.String()
}
