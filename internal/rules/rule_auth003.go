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

// auth003NoSignatories flags a template whose signatories are a definite,
// known, empty set — distinct from "unknown".
func auth003NoSignatories() Rule {
	return Rule{
		ID:       "DAML-AUTH-003",
		Title:    "Template has no signatories",
		Category: "authorization",
		VisitTemplate: func(ctx Ctx, tmpl *ir.Template, emit Emitter) {
			sigs := analysis.InferPartySet(tmpl.Signatories)
			if sigs.Unknown || len(sigs.Known) != 0 {
				return
			}
			emit(Finding{
				ID:         "DAML-AUTH-003",
				Title:      "Template has no signatories",
				Severity:   Critical,
				Confidence: ConfHigh,
				Category:   "authorization",
				Message:    "template " + tmpl.Name + " has a definitely empty signatory set",
				Location:   locationOf(tmpl.Signatories),
				Metadata:   metadata("template", tmpl.Name),
			})
		},
	}
}
