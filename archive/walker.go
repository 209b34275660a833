// Package archive reads stylesheets packed into zip bundles of a widget build.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when requested entry is absent from archive.
var ErrNotFound = errors.New("entry not found in archive")

// WalkFunc is called for each file in archive visited by Walk. If an error
// is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk walks all files in the archive whose names start with pattern,
// calling walkFn for each. Archives with absolute entry names or entries
// containing ".." are rejected.
func Walk(archive, pattern string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() && strings.HasPrefix(name, pattern) {
			if err := walkFn(archive, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadFile returns content of entry name from archive.
func ReadFile(archive, name string) ([]byte, error) {
	var (
		data  []byte
		found bool
	)
	err := Walk(archive, name, func(_ string, f *zip.File) error {
		if f.Name != name {
			return nil
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		if data, err = io.ReadAll(rc); err != nil {
			return err
		}
		found = true
		return io.EOF
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to read %s from %s: %w", name, archive, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, name, archive)
	}
	return data, nil
}

// Split separates path pointing inside an archive, like
// "dist/widget.zip/assets/style.css", into archive file and entry name. It
// reports false when src itself exists or no part of it is a regular file.
func Split(src string) (arc, name string, ok bool) {
	if _, err := os.Stat(src); err == nil {
		return "", "", false
	}

	var parts []string
	for head := filepath.Clean(src); ; {
		dir, file := filepath.Split(head)
		parts = append(parts, file)
		head = strings.TrimSuffix(dir, string(filepath.Separator))
		if len(head) == 0 || len(file) == 0 {
			return "", "", false
		}
		if fi, err := os.Stat(head); err == nil {
			if !fi.Mode().IsRegular() {
				return "", "", false
			}
			// entries in zip always use forward slashes
			for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
				parts[i], parts[j] = parts[j], parts[i]
			}
			return head, path.Join(parts...), true
		}
	}
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
