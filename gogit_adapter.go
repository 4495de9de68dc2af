package main

import (
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// go-git backs the read-side git queries where it can. Linked worktrees
// keep a `gitdir:` pointer file instead of a .git directory and go-git's
// support for them is incomplete, so those fall back to the git binary.

func isLinkedWorktreeDir(dir string) bool {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return false
	}
	dotGit := filepath.Join(dir, ".git")
	info, err := os.Stat(dotGit)
	if err != nil || info.IsDir() {
		return false
	}
	data, err := os.ReadFile(dotGit)
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(string(data)), "gitdir:")
}

func gogitRepoRoot(dir string) (string, error) {
	if isLinkedWorktreeDir(dir) {
		return "", git.ErrRepositoryNotExists
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}

// gogitIsDirty reports uncommitted changes via go-git. ok is false when
// go-git cannot answer for this directory and the caller should shell out.
func gogitIsDirty(dir string) (bool, bool) {
	if isLinkedWorktreeDir(dir) {
		return false, false
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return false, false
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, false
	}
	status, err := wt.Status()
	if err != nil {
		return false, false
	}
	return !status.IsClean(), true
}
