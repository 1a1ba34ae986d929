// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

package serial_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/chillblox/jton-lib/serial"
)

func BenchmarkScanner(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Scanner", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			sc := serial.NewScanner(bytes.NewReader(input))
			for {
				err := sc.Next()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})
}

func BenchmarkRead(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}

	b.Run("Unmarshal", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var v any
			if err := json.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Read", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := (serial.JSON{}).Read(bytes.NewReader(input)); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
