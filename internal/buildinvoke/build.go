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

// Package buildinvoke shells out to the external "daml build" tool, the
// one external-process collaborator the core delegates to the CLI layer
// rather than invoking internally.
package buildinvoke

import (
	"errors"
	"os/exec"
)

// Build runs "daml build" with project as its working directory. A
// missing "daml" binary is not an error here — it's treated as "nothing
// to build", leaving dar resolution to fail downstream with its own
// clearer message if no .dar turns up.
func Build(project string) error {
	cmd := exec.Command("daml", "build")
	cmd.Dir = project
	err := cmd.Run()
	if errors.Is(err, exec.ErrNotFound) {
		return nil
	}
	return err
}
