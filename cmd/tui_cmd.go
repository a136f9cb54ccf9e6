package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"

	"github.com/xtruder/bookmarks-search/internal/tui"
)

func runInteractive(ctx context.Context, opts *globalOptions) error {
	a, err := setup(opts, true, io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	// The system opener would otherwise write over the screen.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	s := a.start(ctx)
	program := tea.NewProgram(tui.NewApp(s, s.Snapshot().Len()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("search screen: %w", err)
	}
	return nil
}
