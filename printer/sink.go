// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package printer

import (
	"bytes"
	"image/color"
	"io"
	"os"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// rowBytes is the stock thermal printer's row width: 160 one-bit pixels,
// MSB first.
const rowBytes = 20

// ConsoleSink renders Print/Data payloads as 1-bit-per-pixel ANSI blocks on
// the terminal, standing in for the file/print/network destination a real
// deployment would supply.
type ConsoleSink struct {
	w     io.Writer
	color bool
}

// NewConsoleSink returns a ConsoleSink writing to stdout, using color
// blocks when stdout is a real terminal and falling back to plain ASCII
// otherwise.
func NewConsoleSink() *ConsoleSink {
	isTerm := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	var w io.Writer = os.Stdout
	if isTerm {
		w = colorable.NewColorableStdout()
	}
	return &ConsoleSink{w: w, color: isTerm}
}

// Deliver implements Sink. Init and Status packets carry no image data and
// are ignored.
func (s *ConsoleSink) Deliver(cmd Command, payload []byte) error {
	if cmd != CmdPrint && cmd != CmdData {
		return nil
	}
	var buf bytes.Buffer
	for start := 0; start < len(payload); start += rowBytes {
		end := start + rowBytes
		if end > len(payload) {
			end = len(payload)
		}
		for _, b := range payload[start:end] {
			for bit := 7; bit >= 0; bit-- {
				buf.WriteString(s.block(b&(1<<uint(bit)) != 0))
			}
		}
		buf.WriteString("\033[0m\n")
	}
	_, err := buf.WriteTo(s.w)
	return err
}

func (s *ConsoleSink) block(on bool) string {
	if !s.color {
		if on {
			return "#"
		}
		return " "
	}
	v := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if on {
		v = color.NRGBA{A: 255}
	}
	return ansi256.Default.Block(v)
}
