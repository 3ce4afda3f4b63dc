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

package suppress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/daml-sast/daml-sast/internal/ir"
	"github.com/daml-sast/daml-sast/internal/rules"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suppressions.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	out, err := Load(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err != nil || out != nil {
		t.Fatalf("want (nil, nil) for a missing file, got (%+v, %v)", out, err)
	}
}

func TestLoadParsesLinesAndSkipsComments(t *testing.T) {
	path := writeTemp(t, `
# a full-line comment
DAML-AUTH-001 Main Main.T* # inline comment
DAML-AUTH-002

DAML-AUTH-003 * * abc123
`)
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("want 3 suppressions, got %d: %+v", len(out), out)
	}
	if out[0].RuleID != "DAML-AUTH-001" || out[0].Module != "Main" || out[0].Definition != "Main.T*" {
		t.Fatalf("want parsed fields with inline comment stripped, got %+v", out[0])
	}
	if out[1].RuleID != "DAML-AUTH-002" || out[1].Module != "" {
		t.Fatalf("want a bare rule id with no module, got %+v", out[1])
	}
	if out[2].Fingerprint != "abc123" {
		t.Fatalf("want fingerprint field parsed, got %+v", out[2])
	}
}

func TestIsSuppressedMatchesGlobs(t *testing.T) {
	sups := []Suppression{{RuleID: "DAML-AUTH-001", Module: "Main", Definition: "Main.T*"}}
	f := rules.Finding{ID: "DAML-AUTH-001", Location: &ir.Location{Module: "Main", Definition: "Main.TAuth"}}
	if !IsSuppressed(f, sups) {
		t.Fatalf("want glob Main.T* to match Main.TAuth")
	}

	other := rules.Finding{ID: "DAML-AUTH-001", Location: &ir.Location{Module: "Main", Definition: "Main.Other"}}
	if IsSuppressed(other, sups) {
		t.Fatalf("want glob Main.T* to not match Main.Other")
	}
}

func TestIsSuppressedRequiresFingerprintWhenBothPresent(t *testing.T) {
	sups := []Suppression{{RuleID: "DAML-AUTH-001", Fingerprint: "abc"}}
	match := rules.Finding{ID: "DAML-AUTH-001", Fingerprint: "abc"}
	mismatch := rules.Finding{ID: "DAML-AUTH-001", Fingerprint: "xyz"}
	if !IsSuppressed(match, sups) {
		t.Fatalf("want matching fingerprint to suppress")
	}
	if IsSuppressed(mismatch, sups) {
		t.Fatalf("want mismatched fingerprint to not suppress")
	}
}

func TestApplyFiltersFindings(t *testing.T) {
	sups := []Suppression{{RuleID: "DAML-AUTH-001"}}
	findings := []rules.Finding{{ID: "DAML-AUTH-001"}, {ID: "DAML-AUTH-002"}}
	out := Apply(findings, sups)
	if len(out) != 1 || out[0].ID != "DAML-AUTH-002" {
		t.Fatalf("want only the non-suppressed finding to survive, got %+v", out)
	}
}
