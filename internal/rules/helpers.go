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

func metadata(pairs ...string) map[string]string {
	out := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i]] = pairs[i+1]
	}
	return out
}

func locationOf(e *ir.Expr) *ir.Location {
	if e == nil {
		return nil
	}
	return e.Location
}

// containsUpdateOpsOnly reports whether every op collected under e is one
// of allowed, and at least one op was found. Used by DAML-AUTH-004.
func containsUpdateOpsOnly(e *ir.Expr, allowed map[string]bool) bool {
	ops := analysis.CollectUpdateOps(e)
	if len(ops) == 0 {
		return false
	}
	for _, op := range ops {
		if !allowed[op.Kind] {
			return false
		}
	}
	return true
}

// containsTimeQuery reports whether e transitively contains an
// update.get_time or scenario.get_time op, or a builtin named getTime.
// Used by DAML-DET-001.
func containsTimeQuery(e *ir.Expr) bool {
	if e == nil {
		return false
	}
	found := false
	var walk func(*ir.Expr)
	walk = func(n *ir.Expr) {
		if n == nil || found {
			return
		}
		if n.Kind == "update.get_time" || n.Kind == "scenario.get_time" {
			found = true
			return
		}
		if n.Kind == "builtin" {
			if name, _ := n.Value.(string); name == "getTime" {
				found = true
				return
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(e)
	return found
}
