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

// Command damlsast is the daml-sast CLI: it scans a compiled Daml archive
// (or builds one from a project directory) and reports the findings of
// the baseline security rule set as JSON or SARIF.
package main

import (
	"os"

	"github.com/daml-sast/daml-sast/cmd/damlsast/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:]))
}
