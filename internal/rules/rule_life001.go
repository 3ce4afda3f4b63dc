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

// life001SelfReplicatingNonConsuming flags a non-consuming choice that
// creates another instance of its own enclosing template.
func life001SelfReplicatingNonConsuming() Rule {
	return Rule{
		ID:       "DAML-LIFE-001",
		Title:    "Non-consuming choice self-replicates the template",
		Category: "lifecycle",
		VisitChoice: func(ctx Ctx, tmpl *ir.Template, choice *ir.Choice, emit Emitter) {
			if choice.Consuming {
				return
			}
			for _, op := range analysis.CollectUpdateOps(choice.Update) {
				if op.Kind == "create" && op.Template == tmpl.Name {
					emit(Finding{
						ID:         "DAML-LIFE-001",
						Title:      "Non-consuming choice self-replicates the template",
						Severity:   Medium,
						Confidence: ConfHigh,
						Category:   "lifecycle",
						Message:    "non-consuming choice " + choice.Name + " on " + tmpl.Name + " creates another instance of the same template",
						Location:   locationOf(choice.Update),
						Metadata:   metadata("template", tmpl.Name, "choice", choice.Name),
					})
					return
				}
			}
		},
	}
}
