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

package baseline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/daml-sast/daml-sast/internal/rules"
)

func TestLoadBlankPathReturnsNil(t *testing.T) {
	b, err := Load("")
	if err != nil || b != nil {
		t.Fatalf("want (nil, nil) for an empty path, got (%+v, %v)", b, err)
	}
}

func TestWriteThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.json")
	findings := []rules.Finding{{ID: "DAML-AUTH-001", Fingerprint: "abc"}, {ID: "DAML-AUTH-002", Fingerprint: "def"}}
	if err := Write(path, findings); err != nil {
		t.Fatalf("Write: %v", err)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !b.Contains("abc") || !b.Contains("def") {
		t.Fatalf("want both written fingerprints present, got %+v", b.Fingerprints)
	}
	if b.RulesVersion != rules.RulesVersion {
		t.Fatalf("want rules version stamped, got %q", b.RulesVersion)
	}
}

func TestLoadRejectsLegacyListShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.json")
	if err := os.WriteFile(path, []byte(`["abc", "def"]`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("want an error for a legacy list-shaped baseline")
	}
}

func TestLoadRejectsMissingVersions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.json")
	if err := os.WriteFile(path, []byte(`{"fingerprints": ["abc"]}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("want an error for missing version metadata")
	}
}

func TestLoadRejectsMismatchedRulesVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.json")
	contents := `{"tool_version": "0.0.1", "rules_version": "999", "fingerprints": []}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("want an error for a mismatched rules_version")
	}
}

func TestFilterDropsBaselinedFindings(t *testing.T) {
	b := &Baseline{set: map[string]bool{"abc": true}}
	findings := []rules.Finding{{Fingerprint: "abc"}, {Fingerprint: "def"}}
	out := Filter(findings, b)
	if len(out) != 1 || out[0].Fingerprint != "def" {
		t.Fatalf("want only the non-baselined finding to survive, got %+v", out)
	}
}
