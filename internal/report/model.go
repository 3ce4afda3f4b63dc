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

// Package report encodes a finalized finding set to the scanner's two
// output formats, JSON and SARIF 2.1.0.
package report

import (
	"time"

	"github.com/daml-sast/daml-sast/internal/rules"
)

// RuleMeta carries the descriptive text a rule contributes to a report
// independent of any single finding: a longer description, a rationale,
// and free-form tags. Baseline rules that don't set these fields fall
// back to a finding's own title/message.
type RuleMeta struct {
	Description string
	Rationale   string
	Tags        []string
}

// metaFor builds a lookup table so encoders can enrich a rule's SARIF
// reportingDescriptor without threading a Rule slice through every call.
func metaFor(ruleset []rules.Rule) map[string]RuleMeta {
	out := make(map[string]RuleMeta, len(ruleset))
	for _, r := range ruleset {
		out[r.ID] = RuleMeta{Description: r.Description, Rationale: r.Rationale, Tags: r.Tags}
	}
	return out
}

// Context carries the run metadata attached to a SARIF report's
// invocation when present; the --ci flag sets only its CI field.
type Context struct {
	CommandLine string
	WorkingDir  string
	CI          bool
	StartTime   time.Time
	EndTime     time.Time
}
