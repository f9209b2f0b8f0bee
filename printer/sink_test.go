// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package printer

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleSinkPlainRendering(t *testing.T) {
	var buf bytes.Buffer
	s := &ConsoleSink{w: &buf, color: false}

	if err := s.Deliver(CmdPrint, []byte{0x80}); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "#") {
		t.Fatalf("Deliver() output = %q, want to start with '#' for the MSB-set byte 0x80", out)
	}
	if strings.Count(out, "#") != 1 {
		t.Fatalf("Deliver() output = %q, want exactly one set pixel", out)
	}
}

func TestConsoleSinkIgnoresNonImageCommands(t *testing.T) {
	var buf bytes.Buffer
	s := &ConsoleSink{w: &buf, color: false}

	if err := s.Deliver(CmdInit, []byte{0xFF}); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("Deliver(CmdInit, ...) wrote %q, want nothing", buf.String())
	}
}
