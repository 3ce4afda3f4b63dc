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

// Package fingerprint computes the stable content fingerprint assigned to
// every finding that reaches the end of a scan without one.
// The fingerprint is the SHA-256, hex-encoded, of a canonical JSON
// serialization of the finding's identity: its rule id, module, definition,
// source span, and sorted metadata. Two findings fingerprint identically
// iff they agree on all five, regardless of message text or evidence, so a
// rule's wording can change release to release without invalidating a
// baseline.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/daml-sast/daml-sast/internal/ir"
	"github.com/daml-sast/daml-sast/internal/rules"
)

// identity is the exact shape hashed. Field order matters for readability
// only; encoding/json always emits struct fields in declaration order, and
// every field here is present (never omitted), so the same Finding always
// produces byte-identical JSON.
type identity struct {
	ID         string            `json:"id"`
	Module     string            `json:"module"`
	Definition string            `json:"definition"`
	Span       *spanIdentity     `json:"span"`
	Metadata   map[string]string `json:"metadata"`
}

type spanIdentity struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
}

// Compute returns the hex-encoded SHA-256 fingerprint for f. Metadata keys
// appear in sorted order in the hashed bytes because encoding/json writes
// map keys sorted; sortedCopy only copies the map and turns nil into an
// empty map.
func Compute(f rules.Finding) string {
	sum := sha256.Sum256(canonicalBytes(f))
	return hex.EncodeToString(sum[:])
}

func canonicalBytes(f rules.Finding) []byte {
	id := identity{
		ID:       f.ID,
		Metadata: sortedCopy(f.Metadata),
	}
	if f.Location != nil {
		id.Module = f.Location.Module
		id.Definition = f.Location.Definition
		id.Span = spanOf(f.Location.Span)
	}
	// Marshal never fails for this shape: every field is a plain string,
	// map[string]string, or struct of ints/strings.
	b, _ := json.Marshal(id)
	return b
}

func spanOf(s *ir.SourceSpan) *spanIdentity {
	if s == nil {
		return nil
	}
	return &spanIdentity{
		File:      s.File,
		StartLine: s.StartLine,
		StartCol:  s.StartCol,
		EndLine:   s.EndLine,
		EndCol:    s.EndCol,
	}
}

func sortedCopy(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]string, len(m))
	for _, k := range keys {
		out[k] = m[k]
	}
	return out
}

// Finalize assigns a fingerprint to every finding in findings that doesn't
// already carry one, returning a new slice (findings itself is left
// untouched since rules.Finding is handled by value throughout the walker).
func Finalize(findings []rules.Finding) []rules.Finding {
	out := make([]rules.Finding, len(findings))
	for i, f := range findings {
		if f.Fingerprint == "" {
			f.Fingerprint = Compute(f)
		}
		out[i] = f
	}
	return out
}
