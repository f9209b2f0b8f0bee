// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package printer implements the thermal-printer protocol layered on top of
// a link.Peripheral engine: a packet-framing state machine, an RLE decoder
// for compressed payloads, and an event loop that drives the engine from
// SCK edge events and replies on the wire at the correct protocol beats.
package printer
