// Package gitutil discovers which wiki files a working tree has touched, so
// the default checking run covers exactly the articles being edited.
package gitutil

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
)

// ChangedFiles returns the root-relative paths of files added or modified in
// the working tree of the repository at root. Deleted files are skipped,
// matching `git diff --diff-filter=d --name-only`.
func ChangedFiles(root string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", root, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("reading worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}

	var changed []string
	for path, s := range status {
		if s.Worktree == git.Deleted || s.Staging == git.Deleted {
			continue
		}
		if s.Worktree == git.Unmodified && s.Staging == git.Unmodified {
			continue
		}
		changed = append(changed, filepath.ToSlash(path))
	}
	sort.Strings(changed)
	return changed, nil
}
