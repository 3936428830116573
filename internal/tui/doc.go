// Package tui provides terminal user interface components for vlsmctl.
//
// This package uses the Bubble Tea framework for the interactive profile
// picker behind "vlsmctl profiles pick".
//
// # Profile Picker
//
// The picker lists saved profiles and returns the one to plan:
//
//	result, err := tui.RunPicker(profiles)
//	switch result.Action {
//	case tui.ActionPlan:
//	    // Plan result.Profile
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// # Picker Features
//
//   - One row per profile: network, subnet count, strategy, scale, labels
//   - Keyboard navigation (j/k or arrows) and filtering (/)
//   - Quick actions: Enter (plan), q or Esc (quit)
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
