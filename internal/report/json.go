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
	"encoding/json"
	"io"

	"github.com/daml-sast/daml-sast/internal/ir"
	"github.com/daml-sast/daml-sast/internal/rules"
)

// jsonSpan and jsonLocation mirror ir.SourceSpan/ir.Location field-for-field
// so the encoded JSON uses stable snake_case keys rather than Go's default
// CamelCase.
type jsonSpan struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
}

type jsonLocation struct {
	Module     string    `json:"module"`
	Definition string    `json:"definition"`
	Span       *jsonSpan `json:"span"`
}

type jsonEvidence struct {
	Kind  string  `json:"kind"`
	Note  string  `json:"note"`
	LfRef *string `json:"lf_ref,omitempty"`
}

type jsonFinding struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Severity    rules.Severity    `json:"severity"`
	Confidence  rules.Confidence  `json:"confidence"`
	Category    string            `json:"category"`
	Message     string            `json:"message"`
	Location    jsonLocation      `json:"location"`
	Evidence    []jsonEvidence    `json:"evidence"`
	Related     []jsonLocation    `json:"related"`
	Metadata    map[string]string `json:"metadata"`
	Fingerprint string            `json:"fingerprint"`
}

func toJSONLocation(loc *ir.Location) jsonLocation {
	if loc == nil {
		return jsonLocation{Span: nil}
	}
	out := jsonLocation{Module: loc.Module, Definition: loc.Definition}
	if loc.Span != nil {
		out.Span = &jsonSpan{
			File:      loc.Span.File,
			StartLine: loc.Span.StartLine,
			StartCol:  loc.Span.StartCol,
			EndLine:   loc.Span.EndLine,
			EndCol:    loc.Span.EndCol,
		}
	}
	return out
}

func toJSONFinding(f rules.Finding) jsonFinding {
	evidence := make([]jsonEvidence, 0, len(f.Evidence))
	for _, e := range f.Evidence {
		evidence = append(evidence, jsonEvidence{Kind: e.Kind, Note: e.Note, LfRef: e.LfRef})
	}
	related := make([]jsonLocation, 0, len(f.Related))
	for _, r := range f.Related {
		related = append(related, toJSONLocation(r))
	}
	metadata := f.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return jsonFinding{
		ID:          f.ID,
		Title:       f.Title,
		Severity:    f.Severity,
		Confidence:  f.Confidence,
		Category:    f.Category,
		Message:     f.Message,
		Location:    toJSONLocation(f.Location),
		Evidence:    evidence,
		Related:     related,
		Metadata:    metadata,
		Fingerprint: f.Fingerprint,
	}
}

// EmitJSON writes findings to out as a JSON array, two-space indented with
// a trailing newline, in the order given — the caller (engine.Run) is
// responsible for that order being deterministic.
func EmitJSON(findings []rules.Finding, out io.Writer) error {
	payload := make([]jsonFinding, 0, len(findings))
	for _, f := range findings {
		payload = append(payload, toJSONFinding(f))
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return err
	}
	return nil
}
