/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"fmt"
)

var (
	initFunc []func()

	// These variables are set using -ldflags
	tryoutVersion  string
	gitBranch      string
	lastCommitSHA  string
	lastCommitTime string
)

// AddInit adds a function to be run in x.Init, which should be called at the
// beginning of all mains.
func AddInit(f func()) {
	initFunc = append(initFunc, f)
}

// Init runs all functions in initFunc.
func Init() {
	for _, f := range initFunc {
		f()
	}
}

func BuildDetails() string {
	return fmt.Sprintf(`
Tryout version   : %v
Commit SHA-1     : %v
Commit timestamp : %v
Branch           : %v

Licensed under the Apache License, Version 2.0.

`,
		tryoutVersion, lastCommitSHA, lastCommitTime, gitBranch)
}
