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

// life002NonConsumingOtherCreate flags a non-consuming choice that
// creates an instance of a *different* template, which can grow ledger
// state without the creating contract ever being archived.
func life002NonConsumingOtherCreate() Rule {
	return Rule{
		ID:       "DAML-LIFE-002",
		Title:    "Non-consuming choice creates a different template",
		Category: "lifecycle",
		VisitChoice: func(ctx Ctx, tmpl *ir.Template, choice *ir.Choice, emit Emitter) {
			if choice.Consuming {
				return
			}
			for _, op := range analysis.CollectUpdateOps(choice.Update) {
				if (op.Kind == "create" || op.Kind == "create_interface") && op.Template != "" && op.Template != tmpl.Name {
					emit(Finding{
						ID:         "DAML-LIFE-002",
						Title:      "Non-consuming choice creates a different template",
						Severity:   Medium,
						Confidence: ConfMedium,
						Category:   "lifecycle",
						Message:    "non-consuming choice " + choice.Name + " on " + tmpl.Name + " creates " + op.Template,
						Location:   locationOf(choice.Update),
						Metadata:   metadata("template", tmpl.Name, "choice", choice.Name, "created", op.Template),
					})
					return
				}
			}
		},
	}
}
