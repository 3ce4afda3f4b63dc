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

// Package archive extracts Daml-LF payload blobs from the outer DAR zip
// container, enforcing size and entry-count bounds before a single byte of
// payload is parsed.
package archive

import (
	"archive/zip"
	"io"
	"os"
	"strings"

	lferrors "github.com/daml-sast/daml-sast/internal/lf/errors"
	"github.com/daml-sast/daml-sast/internal/lf/limits"
)

// payloadExt is the file-name suffix the extractor recognizes as an inner
// Daml-LF payload blob.
const payloadExt = ".dalf"

// Entry is one payload blob recovered from the DAR, with its in-archive
// path preserved for diagnostics.
type Entry struct {
	Path string
	Raw  []byte
}

// ExtractFile opens path as a zip container and returns its payload entries.
func ExtractFile(path string, lim limits.Limits) ([]Entry, error) {
	f, err := openSizeChecked(path, lim)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return extract(f, lim)
}

func openSizeChecked(path string, lim limits.Limits) (*sizeCheckedZip, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, lferrors.Wrap(lferrors.MalformedArchive, "failed to stat DAR", err)
	}
	if info.Size() > lim.MaxDarBytes {
		return nil, lferrors.Newf(lferrors.InputLimit, "DAR is %d bytes, exceeds limit of %d", info.Size(), lim.MaxDarBytes)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, lferrors.Wrap(lferrors.MalformedArchive, "failed to open DAR as zip", err)
	}
	return &sizeCheckedZip{ReadCloser: zr}, nil
}

type sizeCheckedZip struct {
	*zip.ReadCloser
}

func extract(zr *sizeCheckedZip, lim limits.Limits) ([]Entry, error) {
	if err := checkContainerBounds(zr.ReadCloser, lim); err != nil {
		return nil, err
	}

	var entries []Entry
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, payloadExt) {
			continue
		}
		raw, err := readBounded(f, lim.MaxDalfBytes)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Path: f.Name, Raw: raw})
	}
	return entries, nil
}

// checkContainerBounds enforces the entry-count and cumulative
// uncompressed-size limits before any entry is read.
func checkContainerBounds(zr *zip.ReadCloser, lim limits.Limits) error {
	if len(zr.File) > lim.MaxDarEntries {
		return lferrors.Newf(lferrors.InputLimit, "DAR has %d entries, exceeds limit of %d", len(zr.File), lim.MaxDarEntries)
	}
	var total int64
	for _, f := range zr.File {
		total += int64(f.UncompressedSize64)
		if total > lim.MaxDarUncompressedBytes {
			return lferrors.Newf(lferrors.InputLimit, "DAR uncompressed size exceeds limit of %d bytes", lim.MaxDarUncompressedBytes)
		}
	}
	return nil
}

// readBounded reads at most maxBytes+1 bytes from f so that a declared
// uncompressed size that understates the real payload (a zip-bomb style
// mismatch) is caught rather than silently truncated.
func readBounded(f *zip.File, maxBytes int64) ([]byte, error) {
	if int64(f.UncompressedSize64) > maxBytes {
		return nil, lferrors.Newf(lferrors.InputLimit, "payload entry %q declares %d bytes, exceeds limit of %d", f.Name, f.UncompressedSize64, maxBytes)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, lferrors.Wrap(lferrors.MalformedArchive, "failed to open DAR entry "+f.Name, err)
	}
	defer rc.Close()

	limited := io.LimitReader(rc, maxBytes+1)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, lferrors.Wrap(lferrors.MalformedArchive, "failed to read DAR entry "+f.Name, err)
	}
	if int64(len(raw)) > maxBytes {
		return nil, lferrors.Newf(lferrors.InputLimit, "payload entry %q exceeds declared size bound of %d bytes", f.Name, maxBytes)
	}
	return raw, nil
}
