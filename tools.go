// ABOUTME: Pins the Charm libraries behind the interactive browser in go.mod
// ABOUTME: Never compiled; the tools build tag keeps it out of every binary

//go:build tools

package tools

import (
	_ "github.com/charmbracelet/bubbles"
	_ "github.com/charmbracelet/bubbletea"
	_ "github.com/charmbracelet/huh"
	_ "github.com/charmbracelet/lipgloss"
)
