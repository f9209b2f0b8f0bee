// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package link implements the two bit engines that sit on either end of a
// 3-wire synchronous serial link (SCK/SIN/SOUT): Console, which drives the
// clock and the outbound data line while sampling the inbound one, and
// Peripheral, which samples the clock and the inbound data line while
// driving the outbound one.
//
// Both engines are pure state machines: they know nothing about real time
// or real hardware. They're driven by a caller-chosen Tick/Recv cadence and
// talk to the outside world through the small Line interfaces declared in
// this package, so a Console and a Peripheral can be wired directly
// together in memory for tests, or wired to real GPIO lines through Bus.
package link
