package main

import (
	"os"
	"strings"
)

func envFlagEnabled(name string) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func tmuxIntegrationDisabled() bool {
	return envFlagEnabled("LFG_DISABLE_TMUX")
}

func debugEnabled() bool {
	return envFlagEnabled("LFG_DEBUG")
}
