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

// Package errors defines the error taxonomy shared by the decode pipeline,
// the configuration loader, and the baseline/suppression readers.
//
// The pivotal type is [Error], which carries a [Code] alongside the usual
// wrapped cause. The CLI chooses an exit status by the pipeline stage that
// failed, not by Code; nothing in the core needs to know about exit codes.
package errors

import (
	"errors"
	"fmt"
)

// Code names a class of failure, not a Go type.
type Code int

const (
	// InputLimit means a zip/archive/payload/package size or count limit
	// was violated.
	InputLimit Code = iota
	// MalformedArchive means the zip isn't readable, or envelope/payload
	// fields are missing, the hash function is unsupported, or a declared
	// hash doesn't match.
	MalformedArchive
	// Decode means the inner package bytes didn't parse under the selected
	// dialect.
	Decode
	// StructureLimit means the proto node count or nesting depth bound was
	// exceeded.
	StructureLimit
	// UnsupportedVersion means major.minor is not in the supported set, or
	// the version string didn't parse.
	UnsupportedVersion
	// Config means the TOML config failed to parse or had an invalid value.
	Config
	// Baseline means the baseline file is missing/mismatched version
	// metadata, or unreadable.
	Baseline
	// Usage means a CLI argument was missing or conflicting.
	Usage
	// Internal is a catch-all for failures that are not any of the above.
	Internal
)

func (c Code) String() string {
	switch c {
	case InputLimit:
		return "input-limit"
	case MalformedArchive:
		return "malformed-archive"
	case Decode:
		return "decode"
	case StructureLimit:
		return "structure-limit"
	case UnsupportedVersion:
		return "unsupported-version"
	case Config:
		return "config"
	case Baseline:
		return "baseline"
	case Usage:
		return "usage"
	default:
		return "internal"
	}
}

// Error is the error type returned across package boundaries in the core.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error with no wrapped cause.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Newf builds an *Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error that carries cause as its wrapped error.
func Wrap(code Code, msg string, cause error) *Error {
	return &Error{Code: code, Msg: msg, Err: cause}
}

// CodeOf extracts the Code of err, defaulting to Internal if err is not (or
// does not wrap) an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Internal
}

// Is reports whether err's code equals code, following the chain.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
