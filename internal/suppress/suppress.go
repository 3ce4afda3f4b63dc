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

// Package suppress reads the line-based suppression file format, distinct
// from the JSON baseline: one suppression per line,
// `rule_id [module_glob] [definition_glob] [fingerprint]`, blank lines and
// `#` comments allowed, with inline `#` truncating the rest of a line.
package suppress

import (
	"os"
	"path/filepath"
	"strings"

	lferrors "github.com/daml-sast/daml-sast/internal/lf/errors"
	"github.com/daml-sast/daml-sast/internal/rules"
)

// Suppression is one parsed line. Module/Definition/Fingerprint are glob
// patterns (module and definition) or an exact match (fingerprint); a
// blank field matches anything.
type Suppression struct {
	RuleID      string
	Module      string
	Definition  string
	Fingerprint string
}

// Load reads the suppression file at path, returning a nil slice and a nil
// error when path is blank or the file doesn't exist — a missing
// suppression file is not an error, matching the Python's Path.exists()
// check.
func Load(path string) ([]Suppression, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, lferrors.Wrap(lferrors.Usage, "reading suppression file "+path, err)
	}

	var out []Suppression
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		s := Suppression{RuleID: fields[0]}
		if len(fields) > 1 {
			s.Module = fields[1]
		}
		if len(fields) > 2 {
			s.Definition = fields[2]
		}
		if len(fields) > 3 {
			s.Fingerprint = fields[3]
		}
		out = append(out, s)
	}
	return out, nil
}

func globMatch(value, pattern string) bool {
	if pattern == "" {
		return true
	}
	if value == "" {
		return false
	}
	matched, err := filepath.Match(pattern, value)
	return err == nil && matched
}

// IsSuppressed reports whether any suppression in suppressions matches f.
func IsSuppressed(f rules.Finding, suppressions []Suppression) bool {
	for _, s := range suppressions {
		if s.RuleID != f.ID {
			continue
		}
		module, definition := "", ""
		if f.Location != nil {
			module, definition = f.Location.Module, f.Location.Definition
		}
		if !globMatch(module, s.Module) {
			continue
		}
		if !globMatch(definition, s.Definition) {
			continue
		}
		if s.Fingerprint != "" && f.Fingerprint != "" && s.Fingerprint != f.Fingerprint {
			continue
		}
		return true
	}
	return false
}

// Apply returns findings with every suppressed entry removed.
func Apply(findings []rules.Finding, suppressions []Suppression) []rules.Finding {
	if len(suppressions) == 0 {
		return findings
	}
	out := make([]rules.Finding, 0, len(findings))
	for _, f := range findings {
		if !IsSuppressed(f, suppressions) {
			out = append(out, f)
		}
	}
	return out
}
