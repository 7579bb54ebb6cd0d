// Package discover expands globs into the files to process.
package discover

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	ignore "github.com/sabhiram/go-gitignore"
)

// Ignorer reports paths that should be skipped.
type Ignorer interface {
	MatchesPath(path string) bool
}

// LoadIgnore compiles the gitignore file at path. A missing or unreadable
// file ignores nothing and yields nil.
func LoadIgnore(path string) Ignorer {
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}

// Files expands the patterns, which may use "**", into regular files in
// pattern order without duplicates. Relative paths matched by ignored are
// skipped; ignored may be nil.
func Files(patterns []string, ignored Ignorer) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.WithMessagef(err, "invalid glob %q", pattern)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			if ignored != nil && !filepath.IsAbs(match) && ignored.MatchesPath(match) {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}
	return files, nil
}
