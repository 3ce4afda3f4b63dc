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

package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/daml-sast/daml-sast/internal/ir"
	"github.com/daml-sast/daml-sast/internal/rules"
)

func TestEmitSARIFProducesValidJSONWithExpectedShape(t *testing.T) {
	findings := []rules.Finding{
		{
			ID: "DAML-AUTH-003", Title: "Template has no signatories", Severity: rules.Critical, Confidence: rules.ConfHigh,
			Category: "authorization", Message: "template Main.T has no signatories",
			Location: &ir.Location{
				Module: "Main", Definition: "Main.T",
				Span: &ir.SourceSpan{File: "Main.daml", StartLine: 3, StartCol: 1, EndLine: 3, EndCol: 10},
			},
			Fingerprint: "deadbeef",
		},
	}
	ruleset := []rules.Rule{{ID: "DAML-AUTH-003", Title: "Template has no signatories", Category: "authorization"}}

	var buf bytes.Buffer
	if err := EmitSARIF(findings, ruleset, nil, &buf); err != nil {
		t.Fatalf("EmitSARIF: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["version"] != "2.1.0" {
		t.Fatalf("want sarif version 2.1.0, got %v", decoded["version"])
	}
	runs, ok := decoded["runs"].([]interface{})
	if !ok || len(runs) != 1 {
		t.Fatalf("want exactly one run, got %+v", decoded["runs"])
	}
	run := runs[0].(map[string]interface{})
	results := run["results"].([]interface{})
	if len(results) != 1 {
		t.Fatalf("want one result, got %d", len(results))
	}
	result := results[0].(map[string]interface{})
	if result["level"] != "error" {
		t.Fatalf("want CRITICAL to map to SARIF level error, got %v", result["level"])
	}
}

func TestEmitSARIFDedupsRulesById(t *testing.T) {
	findings := []rules.Finding{
		{ID: "DAML-AUTH-001", Title: "t", Severity: rules.High, Confidence: rules.ConfHigh, Location: &ir.Location{Module: "Main", Definition: "Main.A"}},
		{ID: "DAML-AUTH-001", Title: "t", Severity: rules.High, Confidence: rules.ConfHigh, Location: &ir.Location{Module: "Main", Definition: "Main.B"}},
	}

	var buf bytes.Buffer
	if err := EmitSARIF(findings, nil, nil, &buf); err != nil {
		t.Fatalf("EmitSARIF: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	run := decoded["runs"].([]interface{})[0].(map[string]interface{})
	toolRules := run["tool"].(map[string]interface{})["driver"].(map[string]interface{})["rules"].([]interface{})
	if len(toolRules) != 1 {
		t.Fatalf("want rules deduplicated by id, got %d entries", len(toolRules))
	}
}
