package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type TodoStatus string

const (
	TodoStatusPending TodoStatus = "pending"
	TodoStatusDone    TodoStatus = "done"
)

// Todo links a unit of tracked work to a worktree by name. The link is
// weak: deleting the worktree leaves the todo behind with a dangling name.
type Todo struct {
	Description string     `yaml:"description"`
	Status      TodoStatus `yaml:"status"`
	Worktree    string     `yaml:"worktree,omitempty"`
}

type TodoStore struct {
	Todos []Todo

	path string
	sync SyncBackend
}

const todoFileName = "lfg-todos.yaml"

// LoadTodoStore reads the todo list stored at the main repository root. A
// missing file is an empty store, not an error.
func LoadTodoStore(repoRoot string) (*TodoStore, error) {
	path := filepath.Join(repoRoot, todoFileName)
	store := &TodoStore{path: path, sync: NewSyncBackend()}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read todos: %w", err)
	}

	var doc struct {
		Todos []Todo `yaml:"todos"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", todoFileName, err)
	}
	store.Todos = doc.Todos
	return store, nil
}

func (s *TodoStore) Save() error {
	doc := struct {
		Todos []Todo `yaml:"todos"`
	}{Todos: s.Todos}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write todos: %w", err)
	}
	if s.sync != nil {
		if err := s.sync.Push(s.Todos); err != nil {
			debugf("todo sync push failed: %v", err)
		}
	}
	return nil
}

// Add inserts a pending todo at the head of the list. Most recent work
// stays on top.
func (s *TodoStore) Add(description string, worktree string) {
	s.Todos = append([]Todo{{
		Description: description,
		Status:      TodoStatusPending,
		Worktree:    worktree,
	}}, s.Todos...)
}

// MarkDone flips the first todo linked to the given worktree. Unknown
// worktree names are ignored.
func (s *TodoStore) MarkDone(worktree string) {
	for i := range s.Todos {
		if s.Todos[i].Worktree == worktree {
			s.Todos[i].Status = TodoStatusDone
			return
		}
	}
}

func (s *TodoStore) Path() string {
	return s.path
}
