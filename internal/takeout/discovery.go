package takeout

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExportFileName is the conversation file name Google Takeout
// writes inside each chat directory.
const ExportFileName = "messages.json"

// FindMessageFiles walks root recursively and returns the path
// of every messages.json file beneath it, matched
// case-insensitively. Unreadable directories and entries are
// skipped. Results are sorted by path for deterministic output.
func FindMessageFiles(root string) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(d.Name(), ExportFileName) {
			return nil
		}
		if !d.Type().IsRegular() && !resolvesToRegularFile(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})

	sort.Strings(files)
	return files
}

// resolvesToRegularFile reports whether path is a symlink that
// resolves to a regular file.
func resolvesToRegularFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
