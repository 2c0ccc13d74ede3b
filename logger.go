// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gostlink

import (
	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

// SetLogger replaces the logger used by the usb layer.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		logger = l
	}
}
