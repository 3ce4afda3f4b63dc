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

var forwardingOps = map[string]bool{
	"exercise": true, "exercise_by_key": true, "exercise_interface": true,
	"dynamic_exercise": true, "soft_exercise": true,
}

// auth004ForwardingNonConsuming flags a non-consuming choice that does
// nothing but forward authority into another exercise.
func auth004ForwardingNonConsuming() Rule {
	return Rule{
		ID:       "DAML-AUTH-004",
		Title:    "Non-consuming choice forwards authority",
		Category: "authorization",
		VisitChoice: func(ctx Ctx, tmpl *ir.Template, choice *ir.Choice, emit Emitter) {
			if choice.Consuming {
				return
			}
			if !containsUpdateOpsOnly(choice.Update, forwardingOps) {
				return
			}
			emit(Finding{
				ID:         "DAML-AUTH-004",
				Title:      "Non-consuming choice forwards authority",
				Severity:   Medium,
				Confidence: ConfMedium,
				Category:   "authorization",
				Message:    "non-consuming choice " + choice.Name + " on " + tmpl.Name + " only exercises other choices",
				Location:   locationOf(choice.Update),
				Metadata:   metadata("template", tmpl.Name, "choice", choice.Name),
			})
		},
	}
}
