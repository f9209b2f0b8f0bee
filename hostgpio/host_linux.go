// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hostgpio

import (
	// Make sure required drivers are registered.
	_ "github.com/retrobus/gblink/hostgpio/gpioioctl"
	_ "github.com/retrobus/gblink/hostgpio/sysfs"
)
