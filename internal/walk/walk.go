// Package walk discovers candidate files under a root directory,
// honoring .gitignore-style ignore rules, hidden-file and symlink
// policy, and a maximum traversal depth. It is grounded in the
// layered-ignore-file design of rdump's get_candidate_files; the
// traversal itself is a sequential depth-first recursion.
package walk

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/oxhq/rql/internal/limits"
)

// defaultIgnores mirrors rdump's lowest-precedence built-in ignore
// set: the directories and file patterns almost no search wants to
// descend into.
var defaultIgnores = []string{
	"node_modules/",
	"target/",
	"dist/",
	"build/",
	".git/",
	".svn/",
	".hg/",
	"*.pyc",
	"__pycache__/",
}

// Options configures a single traversal.
type Options struct {
	Hidden       bool // include dotfiles and dot-directories
	NoIgnore     bool // disable all ignore-file handling
	MaxDepth     int  // 0 means limits.DefaultMaxDepth
	FollowLinks  bool
	IgnoreFile   string // project-local ignore filename, default ".rqlignore"
}

// Warning is a non-fatal event encountered during a walk: an
// unreadable directory entry or a symlink that was not followed.
// internal/search converts these into model.Diagnostic{Kind:
// DiagWalkWarning} on its out-of-band channel.
type Warning struct {
	Path    string
	Message string
}

// Walker discovers files under root. The default implementation is
// Walk; Options.Walker in internal/search lets callers substitute their
// own (e.g. to drive search over an in-memory file set in tests).
type Walker interface {
	Walk(root string, opts Options) ([]string, []Warning, error)
}

// Default is the package's Walker, usable directly or as the zero
// value behind internal/search.Options.Walker.
type Default struct{}

func (Default) Walk(root string, opts Options) ([]string, []Warning, error) {
	return Walk(root, opts)
}

// Walk returns the canonical absolute paths of every regular file
// under root that survives the ignore policy, in depth-first order,
// plus any warnings for unreadable directories or un-followed
// symlinks encountered along the way.
func Walk(root string, opts Options) ([]string, []Warning, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = limits.DefaultMaxDepth
	}
	ignoreName := opts.IgnoreFile
	if ignoreName == "" {
		ignoreName = ".rqlignore"
	}

	var files []string
	var warnings []Warning
	visited := make(map[string]struct{})

	var walkDir func(dir string, depth int, matchers []*gitignore.GitIgnore) error
	walkDir = func(dir string, depth int, matchers []*gitignore.GitIgnore) error {
		if depth > maxDepth {
			return nil
		}
		if canon, err := filepath.EvalSymlinks(dir); err == nil {
			visited[canon] = struct{}{}
		}

		local := matchers
		if !opts.NoIgnore {
			if m, err := loadIgnoreFile(filepath.Join(dir, ".gitignore")); err == nil {
				local = append(local, m)
			}
			if m, err := loadIgnoreFile(filepath.Join(dir, ignoreName)); err == nil {
				local = append(local, m)
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			warnings = append(warnings, Warning{Path: dir, Message: "unreadable directory: " + err.Error()})
			return nil // unreadable directory: skip, don't abort the walk
		}

		for _, entry := range entries {
			name := entry.Name()
			if !opts.Hidden && strings.HasPrefix(name, ".") {
				continue
			}
			full := filepath.Join(dir, name)
			rel, _ := filepath.Rel(root, full)
			rel = filepath.ToSlash(rel)

			if !opts.NoIgnore && isIgnored(rel, entry.IsDir(), local) {
				continue
			}

			if entry.Type()&os.ModeSymlink != 0 {
				if !opts.FollowLinks {
					warnings = append(warnings, Warning{Path: full, Message: "symlink not followed"})
					continue
				}
				resolved, err := filepath.EvalSymlinks(full)
				if err != nil {
					warnings = append(warnings, Warning{Path: full, Message: "unresolvable symlink: " + err.Error()})
					continue
				}
				if _, seen := visited[resolved]; seen {
					warnings = append(warnings, Warning{Path: full, Message: "symlink loop"})
					continue
				}
				visited[resolved] = struct{}{}
				info, err := os.Stat(resolved)
				if err != nil {
					warnings = append(warnings, Warning{Path: full, Message: "unresolvable symlink: " + err.Error()})
					continue
				}
				if info.IsDir() {
					if err := walkDir(full, depth+1, local); err != nil {
						return err
					}
					continue
				}
				files = append(files, full)
				continue
			}

			if entry.IsDir() {
				if err := walkDir(full, depth+1, local); err != nil {
					return err
				}
				continue
			}

			files = append(files, full)
		}
		return nil
	}

	var initial []*gitignore.GitIgnore
	if !opts.NoIgnore {
		if m := compileLines(defaultIgnores); m != nil {
			initial = append(initial, m)
		}
		if home, err := os.UserConfigDir(); err == nil {
			if m, err := loadIgnoreFile(filepath.Join(home, "rql", "ignore")); err == nil {
				initial = append(initial, m)
			}
		}
	}

	if err := walkDir(root, 0, initial); err != nil {
		return nil, warnings, err
	}
	return files, warnings, nil
}

func loadIgnoreFile(path string) (*gitignore.GitIgnore, error) {
	return gitignore.CompileIgnoreFile(path)
}

func compileLines(lines []string) *gitignore.GitIgnore {
	return gitignore.CompileIgnoreLines(lines...)
}

func isIgnored(rel string, isDir bool, matchers []*gitignore.GitIgnore) bool {
	candidate := rel
	if isDir {
		candidate = rel + "/"
	}
	for _, m := range matchers {
		if m == nil {
			continue
		}
		if m.MatchesPath(candidate) || m.MatchesPath(rel) {
			return true
		}
	}
	return false
}
