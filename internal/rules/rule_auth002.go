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

// auth002UncontrolledControllers flags a choice whose controller set
// cannot be enumerated at all.
func auth002UncontrolledControllers() Rule {
	return Rule{
		ID:       "DAML-AUTH-002",
		Title:    "Choice controllers cannot be statically determined",
		Category: "authorization",
		VisitChoice: func(ctx Ctx, tmpl *ir.Template, choice *ir.Choice, emit Emitter) {
			controllers := analysis.InferPartySet(choice.Controllers)
			if !controllers.Unknown {
				return
			}
			emit(Finding{
				ID:         "DAML-AUTH-002",
				Title:      "Choice controllers cannot be statically determined",
				Severity:   Medium,
				Confidence: ConfMedium,
				Category:   "authorization",
				Message:    "choice " + choice.Name + " on " + tmpl.Name + " has a controller set this scanner could not enumerate",
				Location:   locationOf(choice.Controllers),
				Metadata:   metadata("template", tmpl.Name, "choice", choice.Name),
			})
		},
	}
}
