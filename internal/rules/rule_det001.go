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

import "github.com/daml-sast/daml-sast/internal/ir"

// det001TimeInAuthOrKey flags ledger-time queries reached from an
// authorization- or key-defining expression, which makes authorization
// non-deterministic relative to the parties who must agree to it.
func det001TimeInAuthOrKey() Rule {
	check := func(tmplName string, role string, e *ir.Expr, emit Emitter) {
		if !containsTimeQuery(e) {
			return
		}
		emit(Finding{
			ID:         "DAML-DET-001",
			Title:      "Time query reachable from authorization or key expression",
			Severity:   Medium,
			Confidence: ConfMedium,
			Category:   "determinism",
			Message:    tmplName + " " + role + " transitively queries ledger time",
			Location:   locationOf(e),
			Metadata:   metadata("template", tmplName, "role", role),
		})
	}

	return Rule{
		ID:       "DAML-DET-001",
		Title:    "Time query reachable from authorization or key expression",
		Category: "determinism",
		VisitTemplate: func(ctx Ctx, tmpl *ir.Template, emit Emitter) {
			check(tmpl.Name, "signatories", tmpl.Signatories, emit)
			check(tmpl.Name, "observers", tmpl.Observers, emit)
			if tmpl.Key != nil {
				check(tmpl.Name, "key.body", tmpl.Key.Body, emit)
				check(tmpl.Name, "key.maintainers", tmpl.Key.Maintainers, emit)
			}
		},
		VisitChoice: func(ctx Ctx, tmpl *ir.Template, choice *ir.Choice, emit Emitter) {
			check(tmpl.Name, "controllers", choice.Controllers, emit)
			check(tmpl.Name, "choice.observers", choice.Observers, emit)
		},
	}
}
