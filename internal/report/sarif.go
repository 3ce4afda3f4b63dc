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

package report

import (
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/daml-sast/daml-sast/internal/rules"
	"github.com/daml-sast/daml-sast/internal/version"
)

func levelFor(sev rules.Severity) string {
	switch sev {
	case rules.Critical, rules.High:
		return "error"
	case rules.Medium:
		return "warning"
	default:
		return "note"
	}
}

// EmitSARIF writes findings as a SARIF 2.1.0 log to out. ruleset supplies
// the longer description/rationale/tags a reportingDescriptor carries
// beyond what any single finding knows; ctx, when non-nil, attaches
// invocation and CI metadata to the run.
func EmitSARIF(findings []rules.Finding, ruleset []rules.Rule, ctx *Context, out io.Writer) error {
	meta := metaFor(ruleset)

	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}
	run := sarif.NewRunWithInformationURI("daml-sast", "")

	seen := map[string]bool{}
	for _, f := range findings {
		if !seen[f.ID] {
			seen[f.ID] = true
			addRule(run, f, meta[f.ID])
		}

		result := sarif.NewRuleResult(f.ID).
			WithMessage(sarif.NewTextMessage(f.Message)).
			WithLevel(levelFor(f.Severity))

		props := map[string]interface{}{"confidence": string(f.Confidence)}
		for k, v := range f.Metadata {
			props[k] = v
		}
		result.Properties = props

		if f.Location != nil && f.Location.Span != nil && f.Location.Span.File != "" {
			span := f.Location.Span
			endLine := span.EndLine
			if endLine == 0 {
				endLine = span.StartLine
			}
			endCol := span.EndCol
			if endCol == 0 {
				endCol = span.StartCol
			}
			region := sarif.NewRegion().
				WithStartLine(orOne(span.StartLine)).
				WithStartColumn(orOne(span.StartCol)).
				WithEndLine(orOne(endLine)).
				WithEndColumn(orOne(endCol))
			physical := sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewSimpleArtifactLocation(span.File)).
				WithRegion(region)
			result.WithLocations([]*sarif.Location{sarif.NewLocationWithPhysicalLocation(physical)})
		}

		if f.Fingerprint != "" {
			result.PartialFingerprints = map[string]interface{}{"damlSast/v1": f.Fingerprint}
		}

		run.AddResult(result)
	}

	if run.Tool.Driver != nil {
		v := version.Get()
		run.Tool.Driver.Version = &v
	}

	if ctx != nil {
		invocation := sarif.NewInvocation(true).
			WithCommandLine(ctx.CommandLine).
			WithWorkingDirectory(sarif.NewSimpleArtifactLocation(ctx.WorkingDir)).
			WithStartTimeUtc(ctx.StartTime.UTC().Format("2006-01-02T15:04:05Z07:00")).
			WithEndTimeUtc(ctx.EndTime.UTC().Format("2006-01-02T15:04:05Z07:00"))
		invocation.Properties = map[string]interface{}{"ci": ctx.CI}
		run.Invocations = append(run.Invocations, invocation)

		if ctx.CI {
			id := "daml-sast-ci"
			run.AutomationDetails = &sarif.RunAutomationDetails{Id: &id}
		}
	}

	doc.AddRun(run)
	return doc.PrettyWrite(out)
}

func addRule(run *sarif.Run, f rules.Finding, meta RuleMeta) {
	description := meta.Description
	if description == "" {
		description = f.Message
	}
	help := meta.Rationale
	if help == "" {
		help = f.Message
	}
	rule := run.AddRule(f.ID).
		WithName(f.Title).
		WithDescription(description).
		WithHelp(sarif.NewMultiformatMessageString(help))
	rule.Properties = map[string]interface{}{
		"category":   f.Category,
		"tags":       meta.Tags,
		"severity":   string(f.Severity),
		"confidence": string(f.Confidence),
	}
}

func orOne(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
