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

// Package analysis holds the pure, total dataflow analyses that rules
// build on: party-set inference and contract-lifecycle op collection.
// Neither analysis can fail; unprovable facts degrade to the
// unknown/top element rather than erroring.
package analysis

import "github.com/daml-sast/daml-sast/internal/ir"

// PartySet is the three-valued abstract domain over sets of party
// literals: known members, plus an unknown flag meaning "this analysis
// cannot enumerate the members." An empty Known set with Unknown=false is
// a *definite* empty set, deliberately distinct from Unknown: an empty
// set is always a subset of any other set, so it never counts as a
// provable authorization mismatch on its own.
type PartySet struct {
	Known   map[string]bool
	Unknown bool
}

// Bottom is the ⊥ element: a definite, empty party set.
func Bottom() PartySet { return PartySet{Known: map[string]bool{}} }

// UnknownSet is the ⊤ element.
func UnknownSet() PartySet { return PartySet{Known: map[string]bool{}, Unknown: true} }

func literal(name string) PartySet {
	return PartySet{Known: map[string]bool{name: true}}
}

// Union computes the lattice join of a and b.
func Union(a, b PartySet) PartySet {
	out := PartySet{Known: map[string]bool{}, Unknown: a.Unknown || b.Unknown}
	for k := range a.Known {
		out.Known[k] = true
	}
	for k := range b.Known {
		out.Known[k] = true
	}
	return out
}

// IsDefinitelySubsetOf reports whether a ⊆ b is provable, which requires
// both sides to be fully known.
func IsDefinitelySubsetOf(a, b PartySet) bool {
	if a.Unknown || b.Unknown {
		return false
	}
	for k := range a.Known {
		if !b.Known[k] {
			return false
		}
	}
	return true
}

// IsDefinitelyNotSubsetOf reports whether a ⊄ b is provable.
func IsDefinitelyNotSubsetOf(a, b PartySet) bool {
	if a.Unknown || b.Unknown {
		return false
	}
	return !IsDefinitelySubsetOf(a, b)
}

// partyEnv binds let-bound variable names to their inferred party sets.
type partyEnv map[string]PartySet

// InferPartySet recursively infers e's party-set. A nil expression is
// treated as unknown — callers must not assume every optional role
// expression is present.
func InferPartySet(e *ir.Expr) PartySet {
	return inferPartySet(e, partyEnv{})
}

func inferPartySet(e *ir.Expr, env partyEnv) PartySet {
	if e == nil {
		return UnknownSet()
	}
	switch e.Kind {
	case "party":
		name, _ := e.Value.(string)
		return literal(name)

	case "list":
		out := Bottom()
		for _, c := range e.Children {
			cs := inferPartySet(c, env)
			if cs.Unknown {
				return UnknownSet()
			}
			out = Union(out, cs)
		}
		return out

	case "cons":
		if len(e.Children) == 0 {
			return UnknownSet()
		}
		out := Bottom()
		for _, c := range e.Children {
			out = Union(out, inferPartySet(c, env))
		}
		return out

	case "var":
		name, _ := e.Value.(string)
		if s, ok := env[name]; ok {
			return s
		}
		return UnknownSet()

	case "let":
		if len(e.Children) == 0 {
			return UnknownSet()
		}
		bindings := e.Children[:len(e.Children)-1]
		body := e.Children[len(e.Children)-1]
		curEnv := make(partyEnv, len(env)+len(bindings))
		for k, v := range env {
			curEnv[k] = v
		}
		for _, b := range bindings {
			if b.Kind != "binding" || len(b.Children) != 1 {
				continue
			}
			name, _ := b.Value.(string)
			curEnv[name] = inferPartySet(b.Children[0], curEnv)
		}
		return inferPartySet(body, curEnv)

	case "case":
		if len(e.Children) < 2 {
			return UnknownSet()
		}
		out := Bottom()
		for _, alt := range e.Children[1:] {
			s := inferPartySet(alt, env)
			if s.Unknown {
				return UnknownSet()
			}
			out = Union(out, s)
		}
		return out

	default:
		return UnknownSet()
	}
}
