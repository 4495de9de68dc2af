package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// TmuxManager wraps the tmux CLI. Attach is a separate seam because it
// takes over the terminal with inherited stdio, unlike the query calls.
type TmuxManager struct {
	run      commandRunner
	attach   func(name string) error
	lookPath func(file string) (string, error)
}

func NewTmuxManager() *TmuxManager {
	return &TmuxManager{run: execRunner, attach: attachSession, lookPath: exec.LookPath}
}

func (t *TmuxManager) Available() bool {
	if tmuxIntegrationDisabled() {
		return false
	}
	_, err := t.lookPath("tmux")
	return err == nil
}

func (t *TmuxManager) SessionExists(name string) bool {
	_, err := t.run("", "tmux", "has-session", "-t", name)
	return err == nil
}

// CurrentSession names the tmux session we are running inside, or "" when
// outside tmux. Best effort.
func (t *TmuxManager) CurrentSession() string {
	if strings.TrimSpace(os.Getenv("TMUX")) == "" {
		return ""
	}
	out, err := t.run("", "tmux", "display-message", "-p", "#{session_name}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// StartSession materializes the window plan in a new detached session
// rooted at dir, then attaches. Joining an existing session of the same
// name skips straight to attach so repeated starts never duplicate
// windows. Failure to create a secondary window is a warning; only the
// session itself (the first window) is load-bearing.
func (t *TmuxManager) StartSession(name string, dir string, windows []TmuxWindow) error {
	if !t.Available() {
		return errors.New("tmux is not installed or not in PATH")
	}
	if t.SessionExists(name) {
		debugf("session %s exists, attaching", name)
		return t.attach(name)
	}

	args := []string{"new-session", "-d", "-s", name, "-c", dir}
	if len(windows) > 0 {
		args = append(args, "-n", windows[0].Name)
		if windows[0].Command != "" {
			args = append(args, windows[0].Command)
		}
	}
	if _, err := t.run("", "tmux", args...); err != nil {
		return fmt.Errorf("create tmux session: %w", err)
	}
	if len(windows) > 0 {
		t.setWindowTitle(name, 0, windows[0].Name)
	}

	for i, window := range windows {
		if i == 0 {
			continue
		}
		args := []string{"new-window", "-t", name, "-c", dir, "-n", window.Name}
		if window.Command != "" {
			args = append(args, window.Command)
		}
		if _, err := t.run("", "tmux", args...); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create window %s: %v\n", window.Name, err)
			continue
		}
		t.setWindowTitle(name, i, window.Name)
	}

	return t.attach(name)
}

func (t *TmuxManager) setWindowTitle(session string, index int, title string) {
	if _, err := t.run("", "tmux", "set-option", "-t", session, "set-titles", "on"); err != nil {
		return
	}
	target := fmt.Sprintf("%s:%d", session, index)
	if _, err := t.run("", "tmux", "set-option", "-t", target, "set-titles-string", title); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to set title for window %s: %v\n", title, err)
	}
}

// KillSession terminates a session. A session that is already gone counts
// as success.
func (t *TmuxManager) KillSession(name string) error {
	if !t.SessionExists(name) {
		return nil
	}
	if _, err := t.run("", "tmux", "kill-session", "-t", name); err != nil {
		return fmt.Errorf("kill tmux session: %w", err)
	}
	return nil
}

func attachSession(name string) error {
	cmd := exec.Command("tmux", "attach-session", "-t", name)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("attach to tmux session %s: %w", name, err)
	}
	return nil
}
