package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Worktree is one checked-out working copy. Name is the final path segment
// and doubles as the branch and tmux session name throughout.
type Worktree struct {
	Name   string
	Path   string
	Branch string
}

// commandRunner is the seam between managers and real subprocesses. Tests
// swap in a fake that records argv.
type commandRunner func(dir string, name string, args ...string) ([]byte, error)

func execRunner(dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	if strings.TrimSpace(dir) != "" {
		cmd.Dir = dir
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, commandErrorWithOutput(err, stderr.Bytes())
	}
	return out, nil
}

// commandErrorWithOutput prefers the subprocess's own stderr over the bare
// exit status, which is all exec.ExitError carries.
func commandErrorWithOutput(err error, output []byte) error {
	message := strings.TrimSpace(string(output))
	if message == "" {
		return err
	}
	return errors.New(message)
}

type WorktreeManager struct {
	cwd string
	run commandRunner
}

func NewWorktreeManager(cwd string) *WorktreeManager {
	if strings.TrimSpace(cwd) == "" {
		cwd, _ = os.Getwd()
	}
	return &WorktreeManager{cwd: cwd, run: execRunner}
}

// RepoRoot resolves the main worktree root. The first entry of
// `git worktree list` is always the main worktree; rev-parse only reports
// the root of whichever worktree we happen to be inside.
func (m *WorktreeManager) RepoRoot() (string, error) {
	if root, err := gogitRepoRoot(m.cwd); err == nil && root != "" {
		if worktrees, _ := m.List(); len(worktrees) > 0 {
			return worktrees[0].Path, nil
		}
		return root, nil
	}
	out, err := m.run(m.cwd, "git", "worktree", "list", "--porcelain")
	if err == nil {
		if worktrees := parseWorktrees(string(out)); len(worktrees) > 0 {
			return worktrees[0].Path, nil
		}
	}
	out, err = m.run(m.cwd, "git", "rev-parse", "--show-toplevel")
	if err != nil || strings.TrimSpace(string(out)) == "" {
		return "", errors.New("not in a git repository")
	}
	return strings.TrimSpace(string(out)), nil
}

// List enumerates worktrees fresh from git. Malformed porcelain records are
// skipped; only a failing git invocation is an error.
func (m *WorktreeManager) List() ([]Worktree, error) {
	out, err := m.run(m.cwd, "git", "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("list worktrees: %w", err)
	}
	return parseWorktrees(string(out)), nil
}

func parseWorktrees(output string) []Worktree {
	var worktrees []Worktree
	var path, branch string

	flush := func() {
		if strings.TrimSpace(path) == "" {
			path, branch = "", ""
			return
		}
		worktrees = append(worktrees, Worktree{
			Name:   filepath.Base(path),
			Path:   path,
			Branch: shortBranch(branch),
		})
		path, branch = "", ""
	}

	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "branch "):
			branch = strings.TrimPrefix(line, "branch ")
		case line == "detached":
			if branch == "" {
				branch = "detached"
			}
		}
	}
	flush()
	return worktrees
}

func shortBranch(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "refs/heads/")
	if value == "" {
		return "detached"
	}
	return value
}

// Find returns the worktree with the given name from a fresh listing.
func (m *WorktreeManager) Find(name string) (Worktree, error) {
	worktrees, err := m.List()
	if err != nil {
		return Worktree{}, err
	}
	for _, wt := range worktrees {
		if wt.Name == name {
			return wt, nil
		}
	}
	return Worktree{}, fmt.Errorf("worktree %q not found", name)
}

// Create makes a new worktree as a sibling of the main repository root and
// checks out a new branch of the same name there.
func (m *WorktreeManager) Create(name string, branch string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("worktree name required")
	}
	repoRoot, err := m.RepoRoot()
	if err != nil {
		return "", err
	}
	target := filepath.Join(filepath.Dir(repoRoot), name)

	args := []string{"worktree", "add"}
	if strings.TrimSpace(branch) != "" {
		args = append(args, "-b", branch)
	}
	args = append(args, target)

	if _, err := m.run(repoRoot, "git", args...); err != nil {
		return "", fmt.Errorf("create worktree: %w", err)
	}
	debugf("created worktree %s at %s", name, target)
	return target, nil
}

// Delete removes a worktree. force must be set when the worktree is dirty
// or git refuses.
func (m *WorktreeManager) Delete(path string, force bool) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("worktree path required")
	}
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	if _, err := m.run(m.cwd, "git", args...); err != nil {
		return fmt.Errorf("delete worktree: %w", err)
	}
	debugf("deleted worktree %s (force=%v)", path, force)
	return nil
}

// IsDirty reports whether the worktree has uncommitted changes.
func (m *WorktreeManager) IsDirty(path string) (bool, error) {
	if dirty, ok := gogitIsDirty(path); ok {
		return dirty, nil
	}
	out, err := m.run(path, "git", "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("check worktree status: %w", err)
	}
	return len(bytes.TrimSpace(out)) > 0, nil
}

// CurrentWorktree names the worktree whose path contains cwd, if any. Used
// only to preselect a list entry.
func (m *WorktreeManager) CurrentWorktree() string {
	worktrees, err := m.List()
	if err != nil {
		return ""
	}
	for _, wt := range worktrees {
		if pathHasPrefix(m.cwd, wt.Path) {
			return wt.Name
		}
	}
	return ""
}

func pathHasPrefix(path string, prefix string) bool {
	rel, err := filepath.Rel(prefix, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}
