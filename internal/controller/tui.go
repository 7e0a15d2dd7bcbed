package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	m "unrealctl.dev/pkg/unrealctl/internal/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI for interactive terminals: styled headers and a spinner
// on stderr while an external tool runs.
type TUI struct {
	*SimpleUI
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd)}
}

// DisplayToolOutput prints a styled header followed by the captured output.
func (t *TUI) DisplayToolOutput(ctx context.Context, kind m.ToolKind, output string) {
	if err := ctx.Err(); err != nil {
		return
	}

	body := formatToolOutput(output)
	if output == "" {
		body = faintStyle.Render(noOutputMessage) + "\n"
	}

	t.printf("%s\n%s", headerStyle.Render(kind.OutputHeader()), body)
}

// DisplayError prints msg highlighted.
func (t *TUI) DisplayError(_ context.Context, msg string) {
	t.printf("%s\n", errorStyle.Render(msg))
}

// Track runs fn while a spinner labelled with label animates on stderr.
// Lines fn writes to its stderr are printed above the spinner.
func (t *TUI) Track(ctx context.Context, label string, fn TrackFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(
		newSpinnerModel(label),
		tea.WithOutput(t.cmd.ErrOrStderr()),
		tea.WithInput(nil),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)

	var (
		runErr  error
		stopped atomic.Bool
	)

	stderr := &lineWriter{emit: func(line string) {
		if stopped.Load() {
			_, _ = fmt.Fprintln(t.cmd.ErrOrStderr(), line)
			return
		}

		program.Println(line)
	}}

	g := new(errgroup.Group)
	g.Go(func() error {
		runErr = fn(ctx, stderr)
		stderr.Flush()
		program.Send(trackDoneMsg{})

		return nil
	})
	g.Go(func() error {
		defer stopped.Store(true)

		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			slog.Debug("progress display stopped", "error", err)
		}

		return nil
	})

	_ = g.Wait()

	return runErr
}

type trackDoneMsg struct{}

// lineWriter splits a byte stream into lines and hands each complete line to emit.
type lineWriter struct {
	mu   sync.Mutex
	buf  []byte
	emit func(line string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		w.emit(strings.TrimSuffix(string(w.buf[:i]), "\r"))
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

// Flush emits the trailing partial line, if any.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

// spinnerModel is the Bubble Tea model shown while a tool runs.
type spinnerModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newSpinnerModel(label string) spinnerModel {
	return spinnerModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		label:   label,
	}
}

func (sm spinnerModel) Init() tea.Cmd {
	return sm.spinner.Tick
}

func (sm spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trackDoneMsg:
		sm.done = true
		return sm, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd

		sm.spinner, cmd = sm.spinner.Update(msg)

		return sm, cmd
	}

	return sm, nil
}

func (sm spinnerModel) View() string {
	if sm.done {
		return ""
	}

	return fmt.Sprintf("%s %s...\n", sm.spinner.View(), sm.label)
}
