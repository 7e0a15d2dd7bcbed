package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"

	m "unrealctl.dev/pkg/unrealctl/internal/model"
)

// waitDelay bounds how long Wait keeps draining pipes after the tool was killed.
const waitDelay = 5 * time.Second

// ToolExitError reports a tool that ran to completion with a non-zero exit code.
type ToolExitError struct {
	Tool string
	Code int
}

func (e *ToolExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.Code)
}

// ToolRunnerAdapter abstracts running the external build utilities.
type ToolRunnerAdapter interface {
	// RunTool runs the invocation to completion and returns its standard output.
	// The tool's standard error is forwarded to stderr; nil discards it.
	// A tool that exits non-zero yields its output together with a *ToolExitError.
	RunTool(ctx context.Context, inv m.ToolInvocation, stderr io.Writer) (stdout string, err error)
}

// LocalToolRunnerAdapter provides a concrete implementation using os/exec.
type LocalToolRunnerAdapter struct{}

// NewLocalToolRunnerAdapter constructs a LocalToolRunnerAdapter.
func NewLocalToolRunnerAdapter() *LocalToolRunnerAdapter {
	return &LocalToolRunnerAdapter{}
}

// RunTool starts the tool, waits for it to exit and returns the captured stdout.
func (a *LocalToolRunnerAdapter) RunTool(ctx context.Context, inv m.ToolInvocation, stderr io.Writer) (string, error) {
	if inv.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	name, args := inv.Argv()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay

	var stdout bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	started := time.Now()
	err := cmd.Run()
	output := stdout.String()

	if ctxErr := ctx.Err(); ctxErr != nil {
		slog.Warn("tool interrupted", "tool", name, "elapsed", time.Since(started), "error", ctxErr)
		return output, fmt.Errorf("%s: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		slog.Info("tool exited", "tool", name, "code", exitErr.ExitCode(), "elapsed", time.Since(started))
		return output, &ToolExitError{Tool: name, Code: exitErr.ExitCode()}
	}

	if err != nil {
		return output, err
	}

	slog.Info("tool finished", "tool", name, "elapsed", time.Since(started), "bytes", len(output))

	return output, nil
}
