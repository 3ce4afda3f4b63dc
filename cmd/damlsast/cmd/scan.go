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

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/daml-sast/daml-sast/internal/baseline"
	"github.com/daml-sast/daml-sast/internal/buildinvoke"
	"github.com/daml-sast/daml-sast/internal/config"
	"github.com/daml-sast/daml-sast/internal/engine"
	"github.com/daml-sast/daml-sast/internal/fsutil"
	lferrors "github.com/daml-sast/daml-sast/internal/lf/errors"
	"github.com/daml-sast/daml-sast/internal/lf/limits"
	"github.com/daml-sast/daml-sast/internal/loader"
	"github.com/daml-sast/daml-sast/internal/report"
	"github.com/daml-sast/daml-sast/internal/rules"
	"github.com/daml-sast/daml-sast/internal/suppress"
)

var severityOrder = map[rules.Severity]int{
	rules.Low:      1,
	rules.Medium:   2,
	rules.High:     3,
	rules.Critical: 4,
}

type scanFlags struct {
	configPath     string
	dar            string
	project        string
	noBuild        bool
	out            string
	format         string
	rulesCSV       string
	excludeCSV     string
	severity       string
	failOn         string
	baselinePath   string
	writeBaseline  string
	suppressions   string
	ci             bool
}

func newScanCommand() *cobra.Command {
	f := &scanFlags{}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a DAR or Daml project for security findings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, f, os.Args)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "Path to config TOML")
	flags.StringVar(&f.dar, "dar", "", "Path to .dar file")
	flags.StringVar(&f.project, "project", "", "Path to Daml project")
	flags.BoolVar(&f.noBuild, "no-build", false, "Do not run 'daml build'")
	flags.StringVar(&f.out, "out", "", "Output file (default: stdout)")
	flags.StringVar(&f.format, "format", "", "json|sarif|both")
	flags.StringVar(&f.rulesCSV, "rules", "", "Comma-separated allowlist of rule IDs")
	flags.StringVar(&f.excludeCSV, "exclude", "", "Comma-separated denylist of rule IDs")
	flags.StringVar(&f.severity, "severity", "", "Minimum severity to report")
	flags.StringVar(&f.failOn, "fail-on", "", "Exit non-zero if findings >= level")
	flags.StringVar(&f.baselinePath, "baseline", "", "Path to baseline JSON to suppress findings")
	flags.StringVar(&f.writeBaseline, "write-baseline", "", "Write baseline JSON to path")
	flags.StringVar(&f.suppressions, "suppress", "", "Path to a line-based suppression file")
	flags.BoolVar(&f.ci, "ci", false, "Emit CI-oriented metadata")
	return cmd
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseSeverityFlag(s string) (*rules.Severity, error) {
	if s == "" {
		return nil, nil
	}
	sev := rules.Severity(strings.ToUpper(s))
	if _, ok := severityOrder[sev]; !ok {
		return nil, lferrors.Newf(lferrors.Usage, "unrecognized severity %q", s)
	}
	return &sev, nil
}

func mergeStrings(primary []string, fallback []string) []string {
	if primary != nil {
		return primary
	}
	return fallback
}

func mergeSeverity(primary, fallback *rules.Severity) *rules.Severity {
	if primary != nil {
		return primary
	}
	return fallback
}

func mergeString(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}

func resolveDAR(dar, project string, noBuild bool) (string, error) {
	if dar != "" {
		return dar, nil
	}
	if project == "" {
		return "", lferrors.New(lferrors.Usage, "--dar or --project is required")
	}
	if !noBuild {
		if err := buildinvoke.Build(project); err != nil {
			return "", lferrors.Wrap(lferrors.Usage, "daml build failed", err)
		}
	}
	darPath := fsutil.FindNewestDAR(project)
	if darPath == "" {
		return "", lferrors.New(lferrors.Usage, "no .dar found under project path "+project)
	}
	return darPath, nil
}

func filterBySeverity(findings []rules.Finding, minimum *rules.Severity) []rules.Finding {
	if minimum == nil {
		return findings
	}
	threshold := severityOrder[*minimum]
	out := make([]rules.Finding, 0, len(findings))
	for _, f := range findings {
		if severityOrder[f.Severity] >= threshold {
			out = append(out, f)
		}
	}
	return out
}

func exitCodeFor(findings []rules.Finding, failOn *rules.Severity) int {
	if failOn == nil {
		return exitOK
	}
	threshold := severityOrder[*failOn]
	for _, f := range findings {
		if severityOrder[f.Severity] >= threshold {
			return exitFindings
		}
	}
	return exitOK
}

func runScan(cmd *cobra.Command, f *scanFlags, argv []string) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return newExitError(exitUsage, err)
	}

	dar, err := resolveDAR(f.dar, f.project, f.noBuild)
	if err != nil {
		return newExitError(exitUsage, err)
	}

	allowlist := splitCSV(f.rulesCSV)
	denylist := splitCSV(f.excludeCSV)
	minSeverity, err := parseSeverityFlag(f.severity)
	if err != nil {
		return newExitError(exitUsage, err)
	}
	failOn, err := parseSeverityFlag(f.failOn)
	if err != nil {
		return newExitError(exitUsage, err)
	}

	if cfg != nil {
		allowlist = mergeStrings(allowlist, cfg.RuleAllowlist)
		denylist = mergeStrings(denylist, cfg.RuleDenylist)
		minSeverity = mergeSeverity(minSeverity, cfg.MinSeverity)
		failOn = mergeSeverity(failOn, cfg.FailOn)
	}
	format := f.format
	if cfg != nil {
		format = mergeString(format, cfg.Format)
	}
	if format == "" {
		format = "json"
	}
	ci := f.ci
	if !ci && cfg != nil && cfg.CI != nil {
		ci = *cfg.CI
	}
	baselinePath := f.baselinePath
	if cfg != nil {
		baselinePath = mergeString(baselinePath, cfg.BaselinePath)
	}
	writeBaselinePath := f.writeBaseline
	if cfg != nil {
		writeBaselinePath = mergeString(writeBaselinePath, cfg.WriteBaseline)
	}
	if ci && failOn == nil {
		medium := rules.Medium
		failOn = &medium
	}

	program, err := loader.LoadProgram(dar, limits.Default())
	if err != nil {
		return newExitError(exitInternal, err)
	}

	ruleset := rules.FilterRules(rules.All(), allowlist, denylist)
	startTime := time.Now()
	findings := engine.Run(ruleset, program)

	if writeBaselinePath != "" {
		if err := baseline.Write(writeBaselinePath, findings); err != nil {
			return newExitError(exitUsage, err)
		}
	}

	findings = filterBySeverity(findings, minSeverity)

	if baselinePath != "" {
		bl, err := baseline.Load(baselinePath)
		if err != nil {
			return newExitError(exitUsage, err)
		}
		findings = baseline.Filter(findings, bl)
	}

	suppressions, err := suppress.Load(f.suppressions)
	if err != nil {
		return newExitError(exitUsage, err)
	}
	findings = suppress.Apply(findings, suppressions)

	endTime := time.Now()
	reportCtx := &report.Context{
		CommandLine: strings.Join(argv, " "),
		WorkingDir:  workingDir(),
		CI:          ci,
		StartTime:   startTime,
		EndTime:     endTime,
	}

	if err := emit(findings, ruleset, format, f.out, reportCtx); err != nil {
		return newExitError(exitUsage, err)
	}

	code := exitCodeFor(findings, failOn)
	if code != exitOK {
		atOrAbove := len(filterBySeverity(findings, failOn))
		return newExitError(code, lferrors.Newf(lferrors.Internal, "%d finding(s) at or above the fail-on threshold", atOrAbove))
	}
	return nil
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

func emit(findings []rules.Finding, ruleset []rules.Rule, format, outPath string, ctx *report.Context) error {
	if outPath != "" {
		if dir := filepath.Dir(outPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		switch format {
		case "json":
			return report.EmitJSON(findings, f)
		case "sarif":
			return report.EmitSARIF(findings, ruleset, ctx, f)
		default:
			return lferrors.New(lferrors.Usage, "--format must be json or sarif when --out is used")
		}
	}

	if format == "json" || format == "both" {
		if err := report.EmitJSON(findings, os.Stdout); err != nil {
			return err
		}
	}
	if format == "sarif" || format == "both" {
		if err := report.EmitSARIF(findings, ruleset, ctx, os.Stdout); err != nil {
			return err
		}
	}
	return nil
}
