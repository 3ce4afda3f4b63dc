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

package fsutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindNewestDARPicksMostRecentlyModified(t *testing.T) {
	root := t.TempDir()
	older := filepath.Join(root, "older.dar")
	newer := filepath.Join(root, "sub", "newer.dar")

	if err := os.WriteFile(older, []byte("a"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(newer), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(newer, []byte("b"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	now := time.Now()
	os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour))
	os.Chtimes(newer, now, now)

	got := FindNewestDAR(root)
	if got != newer {
		t.Fatalf("want %q, got %q", newer, got)
	}
}

func TestFindNewestDARIgnoresNonDarFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got := FindNewestDAR(root); got != "" {
		t.Fatalf("want empty string when no .dar files exist, got %q", got)
	}
}
