package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type uiMode int

const (
	modeNormal uiMode = iota
	modeCreating
	modeHelp
	modeConfirmDelete
)

// model is the interactive controller. It owns a snapshot of worktrees and
// todos, refreshed on demand, and turns input events into transitions plus
// blocking calls to the git and tmux managers. External process state (cwd
// worktree, managers) is threaded in through newModel so transitions are
// testable without real subprocesses.
type model struct {
	mgr   *WorktreeManager
	tmux  *TmuxManager
	store *TodoStore
	cfg   Config

	worktrees []Worktree

	mode          uiMode
	listIndex     int // -1 when nothing selected
	buttonFocused bool
	width         int
	height        int

	descInput   textinput.Model
	derivedName string
	errMsg      string

	deleteTarget Worktree
	deleteDirty  bool

	pendingWorktree Worktree
	hasPending      bool
}

func newModel(mgr *WorktreeManager, tmux *TmuxManager, store *TodoStore, cfg Config, currentWorktree string) model {
	input := textinput.New()
	input.Placeholder = "What are you working on?"
	input.Prompt = ""

	m := model{
		mgr:       mgr,
		tmux:      tmux,
		store:     store,
		cfg:       cfg,
		mode:      modeNormal,
		listIndex: -1,
		descInput: input,
	}
	m.worktrees, _ = mgr.List()

	if len(store.Todos) > 0 {
		m.listIndex = 0
		if currentWorktree != "" {
			for i, todo := range store.Todos {
				if todo.Worktree == currentWorktree {
					m.listIndex = i
					break
				}
			}
		}
	}
	return m
}

// PendingWorktree reports the worktree the user picked for a tmux session.
// The program has to exit before the attach can take the terminal over.
func (m model) PendingWorktree() (Worktree, bool) {
	return m.pendingWorktree, m.hasPending
}

func (m model) Init() tea.Cmd {
	return nil
}

// dasherize derives the worktree (and branch, and session) name from a
// todo description: lower-cased, whitespace runs collapsed to hyphens.
func dasherize(input string) string {
	return strings.Join(strings.Fields(strings.ToLower(input)), "-")
}

func (m *model) next() {
	if m.buttonFocused {
		if len(m.store.Todos) > 0 {
			m.buttonFocused = false
			m.listIndex = 0
		}
		return
	}
	switch {
	case m.listIndex < 0:
		if len(m.store.Todos) == 0 {
			m.buttonFocused = true
			return
		}
		m.listIndex = 0
	case m.listIndex >= len(m.store.Todos)-1:
		m.buttonFocused = true
		m.listIndex = -1
	default:
		m.listIndex++
	}
}

func (m *model) previous() {
	if m.buttonFocused {
		if len(m.store.Todos) > 0 {
			m.buttonFocused = false
			m.listIndex = len(m.store.Todos) - 1
		}
		return
	}
	switch {
	case m.listIndex < 0:
		if len(m.store.Todos) == 0 {
			m.buttonFocused = true
			return
		}
		m.listIndex = 0
	case m.listIndex == 0:
		m.buttonFocused = true
		m.listIndex = -1
	default:
		m.listIndex--
	}
}

// toggleButtonFocus swaps focus between list and button. Unlike ring
// movement it keeps the list position, so toggling twice is a no-op.
func (m *model) toggleButtonFocus() {
	if m.buttonFocused {
		if len(m.store.Todos) > 0 {
			m.buttonFocused = false
			if m.listIndex < 0 {
				m.listIndex = 0
			}
		}
		return
	}
	m.buttonFocused = true
}

func (m *model) refresh() {
	worktrees, err := m.mgr.List()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.worktrees = worktrees

	repoRoot, err := m.mgr.RepoRoot()
	if err == nil {
		if store, err := LoadTodoStore(repoRoot); err == nil {
			m.store = store
		}
	}
	if len(m.store.Todos) > 0 && m.listIndex < 0 && !m.buttonFocused {
		m.listIndex = 0
	}
	if m.listIndex >= len(m.store.Todos) {
		m.listIndex = len(m.store.Todos) - 1
	}
}

func (m *model) startCreate() {
	m.mode = modeCreating
	m.descInput.SetValue("")
	m.descInput.Focus()
	m.derivedName = ""
	m.errMsg = ""
}

func (m *model) cancelCreate() {
	m.mode = modeNormal
	m.descInput.Blur()
	m.descInput.SetValue("")
	m.derivedName = ""
	m.errMsg = ""
}

func (m *model) canCreate() bool {
	return strings.TrimSpace(m.descInput.Value()) != "" && strings.TrimSpace(m.derivedName) != ""
}

func (m *model) submitCreate() {
	if !m.canCreate() {
		m.errMsg = "Description and worktree name cannot be empty"
		return
	}
	description := strings.TrimSpace(m.descInput.Value())
	name := strings.TrimSpace(m.derivedName)

	// Branch name is always the worktree name; session naming depends on it.
	if _, err := m.mgr.Create(name, name); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.store.Add(description, name)
	saveErr := m.store.Save()
	m.refresh()
	m.cancelCreate()
	if saveErr != nil {
		// The worktree exists either way; the divergence is surfaced, not
		// rolled back. Set after cancelCreate so the reset cannot eat it.
		m.errMsg = saveErr.Error()
	}
	m.listIndex = len(m.store.Todos) - 1
	m.buttonFocused = false
}

// selectedTodo returns the todo under the cursor, if the cursor is on one.
func (m *model) selectedTodo() (Todo, bool) {
	if m.buttonFocused || m.listIndex < 0 || m.listIndex >= len(m.store.Todos) {
		return Todo{}, false
	}
	return m.store.Todos[m.listIndex], true
}

// resolveWorktree follows a todo's link into the current snapshot. Dangling
// links resolve to nothing and the todo is simply not actionable.
func (m *model) resolveWorktree(todo Todo) (Worktree, bool) {
	if todo.Worktree == "" {
		return Worktree{}, false
	}
	for _, wt := range m.worktrees {
		if wt.Name == todo.Worktree {
			return wt, true
		}
	}
	return Worktree{}, false
}

func (m *model) startDelete() {
	todo, ok := m.selectedTodo()
	if !ok {
		return
	}
	wt, ok := m.resolveWorktree(todo)
	if !ok {
		return
	}
	dirty, err := m.mgr.IsDirty(wt.Path)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.deleteTarget = wt
	m.deleteDirty = dirty
	m.mode = modeConfirmDelete
}

func (m *model) confirmDelete() {
	wt := m.deleteTarget
	shouldKillSession := m.tmux.CurrentSession() == wt.Name

	if err := m.mgr.Delete(wt.Path, m.deleteDirty); err != nil {
		m.errMsg = fmt.Sprintf("Failed to delete worktree: %v", err)
		m.cancelDelete()
		return
	}
	m.store.MarkDone(wt.Name)
	if err := m.store.Save(); err != nil {
		m.errMsg = err.Error()
	}
	if shouldKillSession {
		if err := m.tmux.KillSession(wt.Name); err != nil {
			debugf("failed to kill session %s: %v", wt.Name, err)
		}
	}
	m.refresh()
	m.cancelDelete()
}

func (m *model) cancelDelete() {
	m.mode = modeNormal
	m.deleteTarget = Worktree{}
	m.deleteDirty = false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeNormal:
			return m.updateNormal(msg)
		case modeCreating:
			return m.updateCreating(msg)
		case modeHelp:
			return m.updateHelp(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
	case tea.MouseMsg:
		if m.mode == modeNormal {
			return m.updateMouse(msg)
		}
	}
	return m, nil
}

func (m model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		m.next()
	case "k", "up":
		m.previous()
	case "tab":
		m.toggleButtonFocus()
	case "?":
		m.mode = modeHelp
	case "n", "c":
		m.startCreate()
	case "d", "delete":
		m.startDelete()
	case "r":
		m.errMsg = ""
		m.refresh()
	case "enter":
		if m.buttonFocused {
			m.startCreate()
			return m, nil
		}
		todo, ok := m.selectedTodo()
		if !ok {
			return m, nil
		}
		wt, ok := m.resolveWorktree(todo)
		if !ok {
			return m, nil
		}
		m.pendingWorktree = wt
		m.hasPending = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.submitCreate()
		return m, nil
	case "esc":
		m.cancelCreate()
		return m, nil
	}
	var cmd tea.Cmd
	m.descInput, cmd = m.descInput.Update(msg)
	m.derivedName = dasherize(m.descInput.Value())
	return m, cmd
}

func (m model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "q", "esc":
		m.mode = modeNormal
	}
	return m, nil
}

func (m model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirmDelete()
	case "n", "N", "esc":
		m.cancelDelete()
	}
	return m, nil
}

func (m model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	list, button := m.layoutRegions()
	offset := listScrollOffset(m.listIndex, len(m.store.Todos), list.h-3)
	if idx, ok := listRowAt(list, msg.X, msg.Y, offset, len(m.store.Todos)); ok {
		m.listIndex = idx
		m.buttonFocused = false
		return m, nil
	}
	if button.contains(msg.X, msg.Y) {
		m.startCreate()
	}
	return m, nil
}
