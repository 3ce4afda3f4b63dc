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

// auth001ControllerAlignment flags a choice whose controllers are
// definitely not a subset of signatories ∪ key maintainers.
func auth001ControllerAlignment() Rule {
	return Rule{
		ID:       "DAML-AUTH-001",
		Title:    "Choice controllers not aligned with signatories",
		Category: "authorization",
		VisitChoice: func(ctx Ctx, tmpl *ir.Template, choice *ir.Choice, emit Emitter) {
			controllers := analysis.InferPartySet(choice.Controllers)
			authorized := analysis.InferPartySet(tmpl.Signatories)
			if tmpl.Key != nil {
				authorized = analysis.Union(authorized, analysis.InferPartySet(tmpl.Key.Maintainers))
			}
			if !analysis.IsDefinitelyNotSubsetOf(controllers, authorized) {
				return
			}
			emit(Finding{
				ID:         "DAML-AUTH-001",
				Title:      "Choice controllers not aligned with signatories",
				Severity:   High,
				Confidence: ConfHigh,
				Category:   "authorization",
				Message:    "choice " + choice.Name + " on " + tmpl.Name + " has controllers that are not definitely a subset of signatories (or key maintainers)",
				Location:   locationOf(choice.Controllers),
				Metadata:   metadata("template", tmpl.Name, "choice", choice.Name),
			})
		},
	}
}
