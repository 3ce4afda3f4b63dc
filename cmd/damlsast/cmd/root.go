// Copyright 2026 The daml-sast Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd builds the daml-sast root command and its scan subcommand.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	exitOK       = 0
	exitFindings = 1
	exitUsage    = 2
	exitInternal = 3
)

// exitError lets a RunE signal a specific process exit code without
// cobra printing its own usage banner for non-usage failures.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func newExitError(code int, err error) *exitError { return &exitError{code: code, err: err} }

// Execute parses argv and runs the matched subcommand, returning the
// process exit code (0 clean, 1 findings at/above threshold, 2 usage
// error, 3 internal/decode error).
func Execute(argv []string) int {
	root := newRootCommand()
	root.SetArgs(argv)

	err := root.Execute()
	if err == nil {
		return exitOK
	}

	var ee *exitError
	if as(err, &ee) {
		fmt.Fprintln(root.ErrOrStderr(), "error:", ee.err)
		return ee.code
	}
	// Anything else is a cobra-level usage error: unknown flag, missing
	// subcommand, bad flag value.
	fmt.Fprintln(root.ErrOrStderr(), "error:", err)
	return exitUsage
}

func as(err error, target **exitError) bool {
	for err != nil {
		if e, ok := err.(*exitError); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "daml-sast",
		Short:         "Static analysis for Daml smart-contract archives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newScanCommand())
	return root
}
