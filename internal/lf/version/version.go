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

// Package version normalizes and validates Daml-LF dialect versions.
package version

import (
	"sort"
	"strconv"
	"strings"

	lferrors "github.com/daml-sast/daml-sast/internal/lf/errors"
)

// Version is a Daml-LF language version, major.minor[.patch].
type Version struct {
	Major int
	Minor int
	Patch *int
}

// Short renders "major.minor".
func (v Version) Short() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

// Full renders "major.minor.patch" when patch is known, else Short().
func (v Version) Full() string {
	if v.Patch == nil {
		return v.Short()
	}
	return v.Short() + "." + strconv.Itoa(*v.Patch)
}

// supported is the closed set of major.minor pairs this scanner accepts.
var supported = map[string]bool{
	"1.6":  true,
	"1.7":  true,
	"1.8":  true,
	"1.11": true,
	"1.14": true,
	"1.15": true,
	"1.17": true,
	"2.1":  true,
}

// Supported returns the supported major.minor strings in ascending order.
func Supported() []string {
	out := make([]string, 0, len(supported))
	for k := range supported {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		return lessVersionString(out[i], out[j])
	})
	return out
}

func lessVersionString(a, b string) bool {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		na, _ := strconv.Atoi(pa[i])
		nb, _ := strconv.Atoi(pb[i])
		if na != nb {
			return na < nb
		}
	}
	return len(pa) < len(pb)
}

// Normalize parses the payload's minor text field, which may be either
// "N" or "M.N". When it is "M.N", M must equal major or normalization
// fails. patch may be nil when the payload omitted it.
func Normalize(major int, minorText string, patch *int32) (Version, error) {
	if minorText == "" {
		return Version{}, lferrors.New(lferrors.Decode, "missing Daml-LF minor version")
	}
	var patchOut *int
	if patch != nil {
		p := int(*patch)
		patchOut = &p
	}

	parts := strings.Split(minorText, ".")
	switch len(parts) {
	case 1:
		minor, err := strconv.Atoi(parts[0])
		if err != nil {
			return Version{}, lferrors.Wrap(lferrors.UnsupportedVersion, "unrecognized Daml-LF version format: "+minorText, err)
		}
		return Version{Major: major, Minor: minor, Patch: patchOut}, nil
	case 2:
		majorPart, err := strconv.Atoi(parts[0])
		if err != nil {
			return Version{}, lferrors.Wrap(lferrors.UnsupportedVersion, "unrecognized Daml-LF version format: "+minorText, err)
		}
		minor, err := strconv.Atoi(parts[1])
		if err != nil {
			return Version{}, lferrors.Wrap(lferrors.UnsupportedVersion, "unrecognized Daml-LF version format: "+minorText, err)
		}
		if majorPart != major {
			return Version{}, lferrors.Newf(lferrors.Decode, "version major mismatch: payload %d vs envelope %d", majorPart, major)
		}
		return Version{Major: major, Minor: minor, Patch: patchOut}, nil
	default:
		return Version{}, lferrors.Newf(lferrors.UnsupportedVersion, "unrecognized Daml-LF version format: %s", minorText)
	}
}

// IsSupported reports whether v.Short() is in the supported set.
func IsSupported(v Version) bool {
	return supported[v.Short()]
}
