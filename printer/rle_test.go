// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package printer

import (
	"errors"
	"testing"
)

func TestDecompressRepeatAndLiteralRuns(t *testing.T) {
	encoded := []byte{0x82, 0xAB, 0x01, 0x11, 0x22}
	got, err := Decompress(encoded)
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	want := []byte{0xAB, 0xAB, 0xAB, 0xAB, 0x11, 0x22}
	if !bytesEqual(got, want) {
		t.Fatalf("Decompress() = %v, want %v", got, want)
	}
}

func TestDecompressTruncatedRepeatRun(t *testing.T) {
	_, err := Decompress([]byte{0x80})
	var pe *Error
	if !errors.As(err, &pe) || pe.Kind != KindTruncation {
		t.Fatalf("Decompress() error = %v, want KindTruncation", err)
	}
}

func TestDecompressTruncatedLiteralRun(t *testing.T) {
	_, err := Decompress([]byte{0x02, 0x01})
	var pe *Error
	if !errors.As(err, &pe) || pe.Kind != KindTruncation {
		t.Fatalf("Decompress() error = %v, want KindTruncation", err)
	}
}

func TestDecompressEmpty(t *testing.T) {
	got, err := Decompress(nil)
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Decompress() = %v, want empty", got)
	}
}
