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

// Package baseline reads and writes the scanner's baseline file: a set of
// finding fingerprints to suppress on later runs. Unlike a bare
// `{fingerprints: [...]}` shape, this format is versioned: a baseline
// records the tool and rules version it was written under, and loading
// refuses to silently trust a baseline from a different version.
package baseline

import (
	"encoding/json"
	"os"

	lferrors "github.com/daml-sast/daml-sast/internal/lf/errors"
	"github.com/daml-sast/daml-sast/internal/rules"
	"github.com/daml-sast/daml-sast/internal/version"
)

// Baseline is the versioned, parsed file contents, plus a set for O(1)
// membership tests.
type Baseline struct {
	ToolVersion  string
	RulesVersion string
	Fingerprints []string

	set map[string]bool
}

type fileShape struct {
	ToolVersion  string   `json:"tool_version"`
	RulesVersion string   `json:"rules_version"`
	Fingerprints []string `json:"fingerprints"`
}

// Contains reports whether fingerprint appears in the baseline.
func (b *Baseline) Contains(fingerprint string) bool {
	if b == nil {
		return false
	}
	return b.set[fingerprint]
}

// Load reads and validates the baseline file at path. A blank path
// returns (nil, nil): no baseline was requested.
func Load(path string) (*Baseline, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lferrors.Wrap(lferrors.Baseline, "reading baseline file "+path, err)
	}

	// A legacy baseline is a bare JSON array of fingerprint strings; reject
	// it explicitly with an upgrade message rather than letting it fail to
	// unmarshal into fileShape with a confusing type error.
	trimmed := firstNonSpace(data)
	if trimmed == '[' {
		return nil, lferrors.New(lferrors.Baseline,
			"legacy list-shaped baseline file detected; re-run with --write-baseline to upgrade it to the versioned format")
	}

	var shape fileShape
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, lferrors.Wrap(lferrors.Baseline, "parsing baseline file "+path, err)
	}
	if shape.ToolVersion == "" || shape.RulesVersion == "" {
		return nil, lferrors.New(lferrors.Baseline, "baseline file is missing tool_version or rules_version")
	}
	if shape.RulesVersion != rules.RulesVersion {
		return nil, lferrors.Newf(lferrors.Baseline,
			"baseline was written for rules_version %q but this build is rules_version %q",
			shape.RulesVersion, rules.RulesVersion)
	}
	if shape.ToolVersion != version.Get() {
		return nil, lferrors.Newf(lferrors.Baseline,
			"baseline was written by tool_version %q but this build is tool_version %q",
			shape.ToolVersion, version.Get())
	}

	set := make(map[string]bool, len(shape.Fingerprints))
	for _, fp := range shape.Fingerprints {
		set[fp] = true
	}
	return &Baseline{
		ToolVersion:  shape.ToolVersion,
		RulesVersion: shape.RulesVersion,
		Fingerprints: shape.Fingerprints,
		set:          set,
	}, nil
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b
		}
	}
	return 0
}

// Write serializes every fingerprint in findings to path, stamped with the
// current tool and rules versions.
func Write(path string, findings []rules.Finding) error {
	fingerprints := make([]string, 0, len(findings))
	for _, f := range findings {
		fingerprints = append(fingerprints, f.Fingerprint)
	}
	shape := fileShape{
		ToolVersion:  version.Get(),
		RulesVersion: rules.RulesVersion,
		Fingerprints: fingerprints,
	}
	data, err := json.MarshalIndent(shape, "", "  ")
	if err != nil {
		return lferrors.Wrap(lferrors.Internal, "encoding baseline file", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return lferrors.Wrap(lferrors.Baseline, "writing baseline file "+path, err)
	}
	return nil
}

// Filter drops every finding whose fingerprint appears in b. A nil
// baseline passes every finding through unchanged.
func Filter(findings []rules.Finding, b *Baseline) []rules.Finding {
	if b == nil {
		return findings
	}
	out := make([]rules.Finding, 0, len(findings))
	for _, f := range findings {
		if !b.Contains(f.Fingerprint) {
			out = append(out, f)
		}
	}
	return out
}
