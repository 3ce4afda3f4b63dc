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

// RulesVersion identifies the baseline rule set's own revision,
// independent of the tool's build version. A baseline file records the
// RulesVersion it was generated under so that a later run whose rule
// definitions changed doesn't silently misinterpret stale fingerprints.
const RulesVersion = "1"

// All returns the baseline rule set in a fixed, stable order, so the
// order of findings in the final list is a pure function of (program,
// rule list, filter set) across runs.
func All() []Rule {
	return []Rule{
		auth001ControllerAlignment(),
		auth002UncontrolledControllers(),
		auth003NoSignatories(),
		auth004ForwardingNonConsuming(),
		life001SelfReplicatingNonConsuming(),
		life002NonConsumingOtherCreate(),
		priv001OverBroadObservers(),
		key001MaintainerAlignment(),
		det001TimeInAuthOrKey(),
	}
}

// FilterRules applies an allow-list then a deny-list over the baseline
// set, for the --rules/--exclude flags. A nil or empty allow list means
// "allow everything".
func FilterRules(all []Rule, allow, deny []string) []Rule {
	allowSet := toSet(allow)
	denySet := toSet(deny)

	var out []Rule
	for _, r := range all {
		if len(allowSet) > 0 && !allowSet[r.ID] {
			continue
		}
		if denySet[r.ID] {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}
