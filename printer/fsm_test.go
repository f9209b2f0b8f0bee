// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package printer

import (
	"errors"
	"testing"
)

func feed(f *FSM, bytes []byte) error {
	for _, b := range bytes {
		if err := f.Transition(b); err != nil {
			return err
		}
	}
	return nil
}

func TestFSMMinimalInitPacket(t *testing.T) {
	f := New()
	packet := []byte{0x88, 0x33, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}
	if err := feed(f, packet); err != nil {
		t.Fatalf("feed() error = %v", err)
	}
	if f.State != Done {
		t.Fatalf("State = %v, want Done", f.State)
	}
	if f.Cmd != CmdInit {
		t.Fatalf("Cmd = %v, want CmdInit", f.Cmd)
	}
	if f.Compression != Uncompressed {
		t.Fatalf("Compression = %v, want Uncompressed", f.Compression)
	}
	if len(f.Payload()) != 0 {
		t.Fatalf("Payload() = %v, want empty", f.Payload())
	}
	if f.ChecksumExpected != 1 {
		t.Fatalf("ChecksumExpected = %d, want 1", f.ChecksumExpected)
	}
	if f.ChecksumActual != 0 {
		t.Fatalf("ChecksumActual = %d, want 0", f.ChecksumActual)
	}
}

func TestFSMResyncOnGarbage(t *testing.T) {
	f := New()
	packet := []byte{0x00, 0xFF, 0x88, 0x33, 0x0F, 0x00, 0x00, 0x00, 0x0F, 0x00, 0x00, 0x00}
	if err := feed(f, packet); err != nil {
		t.Fatalf("feed() error = %v, want no error before the magic bytes", err)
	}
	if f.State != Done {
		t.Fatalf("State = %v, want Done", f.State)
	}
	if f.Cmd != CmdStatus {
		t.Fatalf("Cmd = %v, want CmdStatus", f.Cmd)
	}
}

func TestFSMUnknownCommand(t *testing.T) {
	f := New()
	err := feed(f, []byte{0x88, 0x33, 0x07})
	if err == nil {
		t.Fatal("feed() error = nil, want a Protocol error")
	}
	var pe *Error
	if !errors.As(err, &pe) || pe.Kind != KindProtocol {
		t.Fatalf("error = %v, want KindProtocol", err)
	}
}

func TestFSMDoneMisuse(t *testing.T) {
	f := New()
	if err := feed(f, []byte{0x88, 0x33, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}); err != nil {
		t.Fatalf("feed() error = %v", err)
	}
	err := f.Transition(0x00)
	var pe *Error
	if !errors.As(err, &pe) || pe.Kind != KindStateMisuse {
		t.Fatalf("Transition() after Done = %v, want KindStateMisuse", err)
	}
}

func TestFSMWithPayloadChecksum(t *testing.T) {
	f := New()
	// cmd=Data, uncompressed, 2-byte payload {0x11, 0x22}, checksum = 0x33.
	packet := []byte{0x88, 0x33, 0x04, 0x00, 0x02, 0x00, 0x11, 0x22, 0x33, 0x00, 0x00, 0x00}
	if err := feed(f, packet); err != nil {
		t.Fatalf("feed() error = %v", err)
	}
	if f.State != Done {
		t.Fatalf("State = %v, want Done", f.State)
	}
	if got, want := f.Payload(), []byte{0x11, 0x22}; !bytesEqual(got, want) {
		t.Fatalf("Payload() = %v, want %v", got, want)
	}
	if f.ChecksumActual != f.ChecksumExpected {
		t.Fatalf("ChecksumActual = %d, ChecksumExpected = %d, want equal", f.ChecksumActual, f.ChecksumExpected)
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
