/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

// This file contains some functions for error handling. Library code returns
// errors wrapped with github.com/pkg/errors; the command line tools use the
// helpers below.
// Some common use cases are:
// (1) You receive an error from external lib, and would like to check/log fatal.
//     For this, use x.Check, x.Checkf. If you want to check for boolean being
//     true, use x.AssertTruef.
// (2) You receive an error from external lib, and would like to pass on with some
//     stack trace information. In this case, use x.Wrapf or errors.Wrapf.

import (
	"fmt"
	"log"

	"github.com/pkg/errors"
)

// Check logs fatal if err != nil.
func Check(err error) {
	if err != nil {
		log.Fatalf("%+v", errors.Wrap(err, ""))
	}
}

// Checkf is Check with extra info.
func Checkf(err error, format string, args ...interface{}) {
	if err != nil {
		log.Fatalf("%+v", errors.Wrapf(err, format, args...))
	}
}

// AssertTruef is AssertTrue with extra info.
func AssertTruef(b bool, format string, args ...interface{}) {
	if !b {
		log.Fatalf("%+v", errors.Errorf(format, args...))
	}
}

// Wrapf is like errors.Wrapf, but returns nil for a nil error. Useful when the
// error may or may not be set and the caller only wants context added.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}

// Errorf creates a new error with stack trace.
func Errorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// Panic on error.
func Panic(err error) {
	if err != nil {
		panic(fmt.Sprintf("%+v", err))
	}
}
