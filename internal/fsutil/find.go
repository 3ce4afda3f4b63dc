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

// Package fsutil holds small filesystem helpers used by --project
// resolution.
package fsutil

import (
	"io/fs"
	"path/filepath"
)

// FindNewestDAR walks root looking for the most recently modified file
// whose name ends in ".dar", returning "" if none is found. Unreadable
// entries are skipped rather than aborting the walk, matching the
// original's per-file OSError swallow.
func FindNewestDAR(root string) string {
	newestPath := ""
	var newestMod int64 = -1

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(d.Name()) != ".dar" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if mtime := info.ModTime().UnixNano(); mtime > newestMod {
			newestMod = mtime
			newestPath = path
		}
		return nil
	})
	return newestPath
}
