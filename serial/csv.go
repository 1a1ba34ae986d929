// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

package serial

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	jton "github.com/chillblox/jton-lib"
)

// CSV is the comma-separated-value codec. A document is an Array of flat
// Objects, one per record, whose members are string primitives keyed by
// the column names.
type CSV struct {
	// Keys names the columns to read or write. When empty, Read takes the
	// column names from the first record of the input; Write requires it
	// to be set.
	Keys []string

	// WriteKeys makes Write emit the column names as the first record.
	WriteKeys bool
}

// Read decodes records from r into an Array of Objects. Records with
// fewer fields than keys produce objects with the trailing members
// absent; extra fields are dropped.
func (s CSV) Read(r io.Reader) (*jton.Array, error) {
	cr := csv.NewReader(skipBOM(r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	keys := s.Keys
	if len(keys) == 0 {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil, errorf(0, "could not read keys from input")
		} else if err != nil {
			return nil, wrapCSVError(err)
		}
		keys = make([]string, len(rec))
		for i, key := range rec {
			keys[i] = strings.TrimSpace(key)
		}
	}

	items := jton.NewArray()
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return items, nil
		} else if err != nil {
			return nil, wrapCSVError(err)
		}
		item := jton.NewObject()
		for i, field := range rec {
			if i >= len(keys) {
				break
			}
			item.Set(keys[i], field)
		}
		items.Add(item)
	}
}

// Write encodes items, an Array of Objects, as CSV records in key order.
// Members missing from an object, and members that cannot be rendered as
// text, are written as empty fields.
func (s CSV) Write(w io.Writer, items *jton.Array) error {
	if len(s.Keys) == 0 {
		return errorf(0, "no keys set")
	}
	cw := csv.NewWriter(w)
	if s.WriteKeys {
		if err := cw.Write(s.Keys); err != nil {
			return err
		}
	}
	rec := make([]string, len(s.Keys))
	for _, item := range items.All() {
		obj := item.ObjectOr(nil)
		for i, key := range s.Keys {
			rec[i] = ""
			if obj != nil {
				rec[i] = obj.Get(key).StringOr("")
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func wrapCSVError(err error) error {
	if perr, ok := err.(*csv.ParseError); ok {
		return &Error{Line: perr.Line, Message: perr.Err.Error(), err: err}
	}
	return err
}

// skipBOM drops a UTF-8 byte-order mark from the start of r.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(3); err == nil && string(lead) == "\xEF\xBB\xBF" {
		br.Discard(3)
	}
	return br
}
