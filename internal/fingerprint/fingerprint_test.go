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

package fingerprint

import (
	"testing"

	"github.com/daml-sast/daml-sast/internal/ir"
	"github.com/daml-sast/daml-sast/internal/rules"
)

func TestComputeIsStableUnderMetadataOrder(t *testing.T) {
	base := rules.Finding{
		ID:       "DAML-AUTH-001",
		Location: &ir.Location{Module: "Main", Definition: "Main.T"},
		Metadata: map[string]string{"a": "1", "b": "2"},
	}
	reordered := base
	reordered.Metadata = map[string]string{"b": "2", "a": "1"}

	if Compute(base) != Compute(reordered) {
		t.Fatalf("fingerprint must not depend on map iteration order")
	}
}

func TestComputeIgnoresMessageAndSeverity(t *testing.T) {
	base := rules.Finding{ID: "DAML-AUTH-001", Location: &ir.Location{Module: "Main", Definition: "Main.T"}}
	reworded := base
	reworded.Message = "a totally different message"
	reworded.Severity = rules.Critical

	if Compute(base) != Compute(reworded) {
		t.Fatalf("fingerprint must depend only on id/module/definition/span/metadata")
	}
}

func TestComputeDistinguishesSpan(t *testing.T) {
	withSpan := rules.Finding{
		ID: "DAML-AUTH-001",
		Location: &ir.Location{
			Module: "Main", Definition: "Main.T",
			Span: &ir.SourceSpan{File: "Main.daml", StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 2},
		},
	}
	withoutSpan := rules.Finding{ID: "DAML-AUTH-001", Location: &ir.Location{Module: "Main", Definition: "Main.T"}}

	if Compute(withSpan) == Compute(withoutSpan) {
		t.Fatalf("fingerprint must distinguish presence/absence of a span")
	}
}

func TestFinalizeOnlyFillsMissingFingerprints(t *testing.T) {
	preset := rules.Finding{ID: "X", Fingerprint: "keep-me"}
	blank := rules.Finding{ID: "Y", Location: &ir.Location{Module: "Main", Definition: "Main.T"}}

	out := Finalize([]rules.Finding{preset, blank})
	if out[0].Fingerprint != "keep-me" {
		t.Fatalf("Finalize must not overwrite an existing fingerprint")
	}
	if out[1].Fingerprint == "" {
		t.Fatalf("Finalize must assign a fingerprint to a finding missing one")
	}
}
