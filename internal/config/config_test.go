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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/daml-sast/daml-sast/internal/rules"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadNilPathReturnsNilConfig(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg != nil {
		t.Fatalf("want (nil, nil) for an empty path, got (%+v, %v)", cfg, err)
	}
}

func TestLoadParsesAllSections(t *testing.T) {
	path := writeTemp(t, `
[scanner]
format = "sarif"
severity = "medium"
fail_on = "high"
ci = true

[rules]
allow = "DAML-AUTH-001, DAML-AUTH-002"
deny = ["DAML-PRIV-001"]

[baseline]
path = "baseline.json"
write = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "sarif" {
		t.Fatalf("want format sarif, got %q", cfg.Format)
	}
	if cfg.MinSeverity == nil || *cfg.MinSeverity != rules.Medium {
		t.Fatalf("want min severity MEDIUM, got %v", cfg.MinSeverity)
	}
	if cfg.FailOn == nil || *cfg.FailOn != rules.High {
		t.Fatalf("want fail_on HIGH, got %v", cfg.FailOn)
	}
	if cfg.CI == nil || !*cfg.CI {
		t.Fatalf("want ci true, got %v", cfg.CI)
	}
	if len(cfg.RuleAllowlist) != 2 {
		t.Fatalf("want 2 allowlisted rules, got %v", cfg.RuleAllowlist)
	}
	if len(cfg.RuleDenylist) != 1 || cfg.RuleDenylist[0] != "DAML-PRIV-001" {
		t.Fatalf("want denylist [DAML-PRIV-001], got %v", cfg.RuleDenylist)
	}
	if cfg.WriteBaseline != "baseline.json" {
		t.Fatalf("want write=true to resolve to baseline.path, got %q", cfg.WriteBaseline)
	}
}

func TestLoadUnknownSeverityIsAnError(t *testing.T) {
	path := writeTemp(t, "[scanner]\nseverity = \"bogus\"\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("want an error for an unrecognized severity")
	}
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	path := writeTemp(t, "[scanner]\nformat = \"json\"\nsomething_new = 42\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "json" {
		t.Fatalf("want format json despite an unknown key, got %q", cfg.Format)
	}
}
