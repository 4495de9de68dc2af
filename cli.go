package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "lfg [worktree]",
		Short:         "Git worktree manager with tmux sessions and linked todos",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				return jumpToWorktree(args[0])
			}
			return runUI()
		},
		ValidArgsFunction: completeWorktreeNames,
	}

	root.AddCommand(newInitCommand())
	return root
}

// completeWorktreeNames feeds shell completion for the positional argument.
func completeWorktreeNames(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	worktrees, err := NewWorktreeManager("").List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, len(worktrees))
	for _, wt := range worktrees {
		if strings.HasPrefix(wt.Name, toComplete) {
			names = append(names, wt.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// jumpToWorktree skips the UI and lands straight in the worktree's tmux
// session. Unknown names fail loudly; this is the scripted path.
func jumpToWorktree(name string) error {
	name = strings.TrimSpace(name)
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	mgr := NewWorktreeManager("")
	wt, err := mgr.Find(name)
	if err != nil {
		return err
	}
	return NewTmuxManager().StartSession(wt.Name, wt.Path, cfg.Windows)
}

func runUI() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	mgr := NewWorktreeManager("")
	repoRoot, err := mgr.RepoRoot()
	if err != nil {
		return err
	}
	store, err := LoadTodoStore(repoRoot)
	if err != nil {
		return err
	}
	tmux := NewTmuxManager()

	m := newModel(mgr, tmux, store, cfg, mgr.CurrentWorktree())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// The attach has to wait until bubbletea has released the terminal.
	if final, ok := finalModel.(model); ok {
		if wt, ok := final.PendingWorktree(); ok {
			return tmux.StartSession(wt.Name, wt.Path, cfg.Windows)
		}
	}
	return nil
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the tmux window plan config",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, ok, err := runInitForm()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("init cancelled, nothing written")
				return nil
			}
			if err := SaveConfig(cfg); err != nil {
				return err
			}
			path, err := configPath()
			if err != nil {
				return err
			}
			fmt.Println("wrote", path)
			return nil
		},
	}
}
