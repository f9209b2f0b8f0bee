// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hostgpio registers the GPIO backends the link port can be driven
// through (the Linux GPIO chardev ioctl interface and the legacy sysfs
// interface) and exposes the resolved pins through periph.io/x/conn/v3's
// gpioreg registry.
package hostgpio

import "periph.io/x/conn/v3/driver/driverreg"

// Init calls driverreg.Init() and returns it as-is.
//
// The only difference is that by calling hostgpio.Init(), you are guaranteed
// to have the gpioioctl and sysfs backends in this package implicitly
// loaded and registered.
func Init() (*driverreg.State, error) {
	return driverreg.Init()
}
