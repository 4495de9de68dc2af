package main

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func lfgHuhTheme() *huh.Theme {
	t := *huh.ThemeCharm()
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(lipgloss.Color("2"))
	t.Focused.Next = t.Focused.FocusedButton
	return &t
}

// runInitForm asks for the agent window command and confirmation before the
// window plan is written. Returns ok=false when the user backs out.
func runInitForm() (Config, bool, error) {
	agentCommand := defaultAgentCommand
	confirmed := true

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Agent window command").
			Description("Runs in the second window of every session").
			Value(&agentCommand),
		huh.NewConfirm().
			Title("Write window plan?").
			Description("editor, agent, shell").
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed),
	)).
		WithTheme(lfgHuhTheme()).
		WithShowHelp(false)

	if err := form.Run(); err != nil {
		return Config{}, false, err
	}
	if !confirmed {
		return Config{}, false, nil
	}

	cfg := defaultConfig()
	agentCommand = strings.TrimSpace(agentCommand)
	if agentCommand != "" {
		for i := range cfg.Windows {
			if cfg.Windows[i].Name == "agent" {
				cfg.Windows[i].Command = agentCommand
			}
		}
	}
	return cfg, true, nil
}
