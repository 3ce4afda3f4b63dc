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

// Package version reports the scanner's own build version, for use in
// report metadata (the SARIF tool.driver.version field) and the baseline
// file's tool_version. It mirrors util/version.py's approach, adapted to Go's build
// introspection instead of Python's package metadata.
package version

import (
	"runtime/debug"
	"sync"
)

const modulePath = "github.com/daml-sast/daml-sast"

const fallback = "0.0.1"

var getOnce = sync.OnceValue(func() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return fallback
	}
	if bi.Main.Path == modulePath && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return fallback
})

// Get returns the best available version string for the running binary,
// falling back to a fixed default when build info isn't available (e.g.
// a binary built without module support).
func Get() string {
	return getOnce()
}
