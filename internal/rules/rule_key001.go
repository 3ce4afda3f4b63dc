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

package rules

import (
	"github.com/daml-sast/daml-sast/internal/analysis"
	"github.com/daml-sast/daml-sast/internal/ir"
)

// key001MaintainerAlignment flags a template key whose maintainers are
// definitely not a subset of the template's signatories, the key-side
// analogue of DAML-AUTH-001.
func key001MaintainerAlignment() Rule {
	return Rule{
		ID:       "DAML-KEY-001",
		Title:    "Key maintainers not aligned with signatories",
		Category: "authorization",
		VisitTemplate: func(ctx Ctx, tmpl *ir.Template, emit Emitter) {
			if tmpl.Key == nil {
				return
			}
			maintainers := analysis.InferPartySet(tmpl.Key.Maintainers)
			signatories := analysis.InferPartySet(tmpl.Signatories)
			if !analysis.IsDefinitelyNotSubsetOf(maintainers, signatories) {
				return
			}
			emit(Finding{
				ID:         "DAML-KEY-001",
				Title:      "Key maintainers not aligned with signatories",
				Severity:   High,
				Confidence: ConfHigh,
				Category:   "authorization",
				Message:    "template " + tmpl.Name + " key maintainers are not definitely a subset of signatories",
				Location:   locationOf(tmpl.Key.Maintainers),
				Metadata:   metadata("template", tmpl.Name),
			})
		},
	}
}
