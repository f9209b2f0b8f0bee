// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// Package gpioioctl provides access to Linux GPIO lines using the chardev
// v2 ioctl interface.
//
// https://docs.kernel.org/userspace-api/gpio/index.html
//
// Lines can be accessed via periph.io/x/conn/v3/gpio/gpioreg, or through
// the Chips collection's ByName()/ByNumber() methods.
//
// The link port's four pins are requested together through a GPIOChip's
// LineSet (see cmd/gblink's primary path) when a single chip exposes all of
// them, so the kernel configures SCK/SIN/SOUT/SD atomically instead of one
// ioctl per line.
package gpioioctl
