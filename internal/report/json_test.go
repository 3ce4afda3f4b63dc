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
	"strings"
	"testing"

	"github.com/daml-sast/daml-sast/internal/ir"
	"github.com/daml-sast/daml-sast/internal/rules"
)

func TestEmitJSONRoundTrips(t *testing.T) {
	findings := []rules.Finding{
		{
			ID: "DAML-AUTH-001", Title: "t", Severity: rules.High, Confidence: rules.ConfHigh,
			Category: "authorization", Message: "m",
			Location:    &ir.Location{Module: "Main", Definition: "Main.T"},
			Metadata:    map[string]string{"template": "Main.T"},
			Fingerprint: "abc123",
		},
	}

	var buf bytes.Buffer
	if err := EmitJSON(findings, &buf); err != nil {
		t.Fatalf("EmitJSON: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Fatalf("want trailing newline")
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["id"] != "DAML-AUTH-001" {
		t.Fatalf("want one finding with id DAML-AUTH-001, got %+v", decoded)
	}
	loc := decoded[0]["location"].(map[string]interface{})
	if loc["module"] != "Main" || loc["definition"] != "Main.T" {
		t.Fatalf("want location fields preserved, got %+v", loc)
	}
}

func TestEmitJSONEmptyFindingsIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	if err := EmitJSON(nil, &buf); err != nil {
		t.Fatalf("EmitJSON: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("want an empty JSON array, got %q", buf.String())
	}
}
