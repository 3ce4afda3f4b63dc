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

// Package engine is the top-level scan entry point: it runs the rule
// walker over a lowered program and finalizes every finding's fingerprint
// before handing the result to a report encoder.
package engine

import (
	"github.com/daml-sast/daml-sast/internal/fingerprint"
	"github.com/daml-sast/daml-sast/internal/ir"
	"github.com/daml-sast/daml-sast/internal/rules"
	"github.com/daml-sast/daml-sast/internal/walker"
)

// Run walks program with ruleset and returns every finding, each carrying a
// fingerprint. Output order is exactly the walker's traversal order:
// package, then module, then template/value, then choice, then pre-order
// expression position, with rules invoked at each node in ruleset order.
// Order is therefore a pure function of (program, ruleset) and is never
// re-sorted here.
func Run(ruleset []rules.Rule, program *ir.Program) []rules.Finding {
	raw := walker.Walk(ruleset, program)
	return fingerprint.Finalize(raw)
}
