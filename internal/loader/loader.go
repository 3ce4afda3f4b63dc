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

// Package loader wires archive extraction, payload decoding, and IR
// lowering into the single entry point the CLI calls:
// LoadProgram(path) -> *ir.Program.
package loader

import (
	"github.com/daml-sast/daml-sast/internal/ir"
	"github.com/daml-sast/daml-sast/internal/lf/archive"
	"github.com/daml-sast/daml-sast/internal/lf/decode"
	lferrors "github.com/daml-sast/daml-sast/internal/lf/errors"
	"github.com/daml-sast/daml-sast/internal/lf/limits"
)

// LoadProgram extracts every .dalf entry from the DAR at path, decodes
// each as a Daml-LF package, and lowers all of them into one Program.
func LoadProgram(path string, lim limits.Limits) (*ir.Program, error) {
	entries, err := archive.ExtractFile(path, lim)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, lferrors.New(lferrors.MalformedArchive, "no .dalf entries found in DAR "+path)
	}

	program := &ir.Program{}
	for _, entry := range entries {
		raw, err := decode.DecodePayload(entry.Raw, lim)
		if err != nil {
			return nil, lferrors.Wrap(lferrors.CodeOf(err), "decoding DAR entry "+entry.Path, err)
		}
		pkg, err := ir.LowerPackage(raw)
		if err != nil {
			return nil, lferrors.Wrap(lferrors.CodeOf(err), "lowering DAR entry "+entry.Path, err)
		}
		program.Packages = append(program.Packages, pkg)
	}
	return program, nil
}
