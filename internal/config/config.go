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

// Package config loads an optional TOML configuration file: a `[scanner]`
// section for format/severity/fail-on/ci, a `[rules]` section for
// allow/deny lists, and a `[baseline]` section for the baseline path and
// whether to write one. Unknown keys are ignored.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	lferrors "github.com/daml-sast/daml-sast/internal/lf/errors"
	"github.com/daml-sast/daml-sast/internal/rules"
)

// Config is the set of optional overrides a TOML file may supply. A nil
// field (or the zero value for a non-pointer) means "not set"; the CLI
// layer decides precedence against its own flag defaults.
type Config struct {
	RuleAllowlist []string
	RuleDenylist  []string
	MinSeverity   *rules.Severity
	FailOn        *rules.Severity
	BaselinePath  string
	WriteBaseline string
	Format        string
	CI            *bool
}

type fileShape struct {
	Scanner  scannerSection  `toml:"scanner"`
	Rules    rulesSection    `toml:"rules"`
	Baseline baselineSection `toml:"baseline"`
}

type scannerSection struct {
	Format   string `toml:"format"`
	Severity string `toml:"severity"`
	FailOn   string `toml:"fail_on"`
	CI       any    `toml:"ci"`
}

type rulesSection struct {
	Allow any `toml:"allow"`
	Deny  any `toml:"deny"`
}

type baselineSection struct {
	Path  string `toml:"path"`
	Write any    `toml:"write"`
}

// Load reads and parses the TOML file at path. A blank path returns (nil,
// nil): no config file was requested, which is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lferrors.Wrap(lferrors.Config, "reading config file "+path, err)
	}

	var shape fileShape
	if err := toml.Unmarshal(data, &shape); err != nil {
		return nil, lferrors.Wrap(lferrors.Config, "parsing config file "+path, err)
	}

	minSeverity, err := parseSeverity(shape.Scanner.Severity)
	if err != nil {
		return nil, err
	}
	failOn, err := parseSeverity(shape.Scanner.FailOn)
	if err != nil {
		return nil, err
	}

	writePath := ""
	switch v := shape.Baseline.Write.(type) {
	case bool:
		if v {
			writePath = shape.Baseline.Path
		}
	case string:
		writePath = v
	case nil:
		// absent
	default:
		return nil, lferrors.Newf(lferrors.Config, "baseline.write has unsupported type %T", v)
	}

	return &Config{
		RuleAllowlist: parseIDs(shape.Rules.Allow),
		RuleDenylist:  parseIDs(shape.Rules.Deny),
		MinSeverity:   minSeverity,
		FailOn:        failOn,
		BaselinePath:  shape.Baseline.Path,
		WriteBaseline: writePath,
		Format:        shape.Scanner.Format,
		CI:            parseBool(shape.Scanner.CI),
	}, nil
}

func parseIDs(value any) []string {
	switch v := value.(type) {
	case string:
		return splitAndTrim(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(toString(item)); s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

func parseSeverity(value string) (*rules.Severity, error) {
	if value == "" {
		return nil, nil
	}
	sev := rules.Severity(strings.ToUpper(value))
	switch sev {
	case rules.Low, rules.Medium, rules.High, rules.Critical:
		return &sev, nil
	default:
		return nil, lferrors.Newf(lferrors.Config, "unrecognized severity %q", value)
	}
}

func parseBool(value any) *bool {
	switch v := value.(type) {
	case bool:
		return &v
	case string:
		lowered := strings.ToLower(strings.TrimSpace(v))
		switch lowered {
		case "true", "1", "yes":
			t := true
			return &t
		case "false", "0", "no":
			f := false
			return &f
		}
	}
	return nil
}
