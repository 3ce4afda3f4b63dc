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

package analysis

import "github.com/daml-sast/daml-sast/internal/ir"

// UpdateOp is one lifecycle operation discovered anywhere under an
// expression: a create, exercise, fetch, key lookup, or time query.
type UpdateOp struct {
	Kind     string
	Template string
	Choice   string
}

var updateOpKinds = map[string]bool{
	"update.create": true, "update.create_interface": true,
	"update.exercise": true, "update.exercise_by_key": true, "update.exercise_interface": true,
	"update.dynamic_exercise": true, "update.soft_exercise": true,
	"update.fetch": true, "update.soft_fetch": true, "update.fetch_interface": true,
	"update.lookup_by_key": true, "update.fetch_by_key": true,
	"update.get_time": true, "update.ledger_time_lt": true,
}

// shortOpKind strips the "update." prefix into the bare op name (e.g.
// "create", "exercise_by_key", "get_time").
func shortOpKind(kind string) string {
	return kind[len("update."):]
}

// CollectUpdateOps walks e pre-order and returns every lifecycle op found,
// in source order. It is a pure, total tree walk: it never fails, and it
// descends into every kind uniformly rather than special-casing update.*
// structure, since the enclosing update tree may nest ops inside
// record/case/app/let constructs just like any other expression.
func CollectUpdateOps(e *ir.Expr) []UpdateOp {
	var out []UpdateOp
	collectUpdateOps(e, &out)
	return out
}

func collectUpdateOps(e *ir.Expr, out *[]UpdateOp) {
	if e == nil {
		return
	}
	if updateOpKinds[e.Kind] {
		op := UpdateOp{Kind: shortOpKind(e.Kind)}
		switch v := e.Value.(type) {
		case ir.TemplateRef:
			op.Template = v.Template
		case ir.InterfaceRef:
			op.Template = v.Interface
		case ir.TemplateChoiceRef:
			op.Template = v.Template
			op.Choice = v.Choice
		case ir.InterfaceChoiceRef:
			op.Template = v.Interface
			op.Choice = v.Choice
		}
		*out = append(*out, op)
	}
	for _, c := range e.Children {
		collectUpdateOps(c, out)
	}
}
