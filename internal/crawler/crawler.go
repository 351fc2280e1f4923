// Package crawler walks a project tree for files eligible for rewriting.
package crawler

import (
	"io/fs"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// Crawler scans a directory for candidate source files.
type Crawler struct {
	extensions map[string]bool
	ignored    []string
	gitignore  *ignore.GitIgnore
}

// New creates a crawler accepting the given file extensions.
func New(extensions []string) *Crawler {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[e] = true
	}
	return &Crawler{
		extensions: exts,
		ignored:    []string{".git", "node_modules", "dist", "build", ".svelte-kit"},
	}
}

// Scan walks root and streams every eligible file path through onFile,
// honoring a .gitignore at the root when one exists.
func (c *Crawler) Scan(root string, onFile func(path string)) error {
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		c.gitignore = gi
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			if c.gitignore != nil && c.gitignore.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !c.extensions[filepath.Ext(d.Name())] {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if c.gitignore != nil && c.gitignore.MatchesPath(rel) {
			return nil
		}

		onFile(path)
		return nil
	})
}
