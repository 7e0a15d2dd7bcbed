package controller

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "unrealctl.dev/pkg/unrealctl/internal/model"
)

func TestTUI_DisplayToolOutput(t *testing.T) {
	cmd, out, _ := newTestCommand()

	NewTUI(cmd).DisplayToolOutput(context.Background(), m.BuildTool, "compiled\n")

	assert.Contains(t, out.String(), "Build output:")
	assert.Contains(t, out.String(), "compiled\n")
}

func TestTUI_DisplayToolOutput_Empty(t *testing.T) {
	cmd, out, _ := newTestCommand()

	NewTUI(cmd).DisplayToolOutput(context.Background(), m.PackageTool, "")

	assert.Contains(t, out.String(), "Package output:")
	assert.Contains(t, out.String(), "No output received.")
}

func TestTUI_DisplayError(t *testing.T) {
	cmd, out, _ := newTestCommand()

	NewTUI(cmd).DisplayError(context.Background(), "Error during packaging process: boom")

	assert.Contains(t, out.String(), "Error during packaging process: boom")
}

func TestTUI_Track(t *testing.T) {
	cmd, out, _ := newTestCommand()
	wantErr := errors.New("tool failed")

	done := make(chan error, 1)
	go func() {
		done <- NewTUI(cmd).Track(context.Background(), "Packaging", func(context.Context, io.Writer) error {
			time.Sleep(50 * time.Millisecond)
			return wantErr
		})
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, wantErr)
	case <-time.After(10 * time.Second):
		t.Fatal("Track did not return")
	}

	assert.Empty(t, out.String(), "spinner must not write to stdout")
}

func TestTUI_TrackPrintsToolStderrAboveSpinner(t *testing.T) {
	cmd, out, errOut := newTestCommand()

	done := make(chan error, 1)
	go func() {
		done <- NewTUI(cmd).Track(context.Background(), "Building", func(_ context.Context, stderr io.Writer) error {
			_, _ = io.WriteString(stderr, "warning: deprecated API\nLogInit: ")
			time.Sleep(50 * time.Millisecond)
			_, _ = io.WriteString(stderr, "display ready")

			return nil
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Track did not return")
	}

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "warning: deprecated API")
	assert.Contains(t, errOut.String(), "LogInit: display ready")
}

func TestLineWriter(t *testing.T) {
	tests := []struct {
		name   string
		writes []string
		want   []string
	}{
		{"single line", []string{"a\n"}, []string{"a"}},
		{"split across writes", []string{"a\nb", "c\n"}, []string{"a", "bc"}},
		{"several lines in one write", []string{"a\nb\nc\n"}, []string{"a", "b", "c"}},
		{"carriage returns", []string{"a\r\n"}, []string{"a"}},
		{"trailing partial line", []string{"a\nrest"}, []string{"a", "rest"}},
		{"empty lines kept", []string{"\n\n"}, []string{"", ""}},
		{"nothing written", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string

			w := &lineWriter{emit: func(line string) { got = append(got, line) }}

			for _, chunk := range tt.writes {
				n, err := w.Write([]byte(chunk))
				require.NoError(t, err)
				assert.Equal(t, len(chunk), n)
			}

			w.Flush()

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpinnerModel(t *testing.T) {
	model := newSpinnerModel("Building")

	assert.NotNil(t, model.Init())
	assert.Contains(t, model.View(), "Building...")

	updated, cmd := model.Update(trackDoneMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, updated.View())
}

func TestSpinnerModel_IgnoresUnknownMessages(t *testing.T) {
	model := newSpinnerModel("Building")

	updated, cmd := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Nil(t, cmd)
	assert.Contains(t, updated.View(), "Building...")
}
