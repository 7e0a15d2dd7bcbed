// Package controller provides the output adapters that present unrealctl results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "unrealctl.dev/pkg/unrealctl/internal/model"
)

// TrackFunc is the unit of work observed by UI.Track. Diagnostics the work
// produces go to stderr so they do not fight with the progress display.
type TrackFunc func(ctx context.Context, stderr io.Writer) error

// UI defines how the workflow reports to the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayProjectInfo(ctx context.Context, info m.ProjectInfo, format m.OutputFormat) error
	DisplayToolOutput(ctx context.Context, kind m.ToolKind, output string)
	DisplayDryRun(ctx context.Context, inv m.ToolInvocation)
	DisplayMessage(ctx context.Context, msg string)
	DisplayError(ctx context.Context, msg string)
	// Track runs fn while showing that label is in progress.
	Track(ctx context.Context, label string, fn TrackFunc) error
}

// NewUI returns a TUI for interactive terminals and a SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
