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

func isBroadPartyListVar(e *ir.Expr) bool {
	return e != nil && e.Kind == "var" && e.Typ.IsPartyList()
}

// priv001OverBroadObservers flags a template- or choice-observers
// expression that is nothing but a bare `list(Party)`-typed variable,
// since such a parameter is typically supplied wholesale by a caller
// rather than computed from contract data.
func priv001OverBroadObservers() Rule {
	return Rule{
		ID:       "DAML-PRIV-001",
		Title:    "Over-broad observers parameter",
		Category: "privacy",
		VisitTemplate: func(ctx Ctx, tmpl *ir.Template, emit Emitter) {
			if !isBroadPartyListVar(tmpl.Observers) {
				return
			}
			emit(Finding{
				ID:         "DAML-PRIV-001",
				Title:      "Over-broad observers parameter",
				Severity:   Low,
				Confidence: ConfMedium,
				Category:   "privacy",
				Message:    "template " + tmpl.Name + " observers is a bare list(Party) parameter",
				Location:   locationOf(tmpl.Observers),
				Metadata:   metadata("template", tmpl.Name),
			})
		},
		VisitChoice: func(ctx Ctx, tmpl *ir.Template, choice *ir.Choice, emit Emitter) {
			if !isBroadPartyListVar(choice.Observers) {
				return
			}
			emit(Finding{
				ID:         "DAML-PRIV-001",
				Title:      "Over-broad observers parameter",
				Severity:   Low,
				Confidence: ConfMedium,
				Category:   "privacy",
				Message:    "choice " + choice.Name + " on " + tmpl.Name + " observers is a bare list(Party) parameter",
				Location:   locationOf(choice.Observers),
				Metadata:   metadata("template", tmpl.Name, "choice", choice.Name),
			})
		},
	}
}
