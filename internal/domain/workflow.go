package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"unrealctl.dev/pkg/unrealctl/internal/adapter"
	"unrealctl.dev/pkg/unrealctl/internal/controller"
	m "unrealctl.dev/pkg/unrealctl/internal/model"
)

var (
	// ErrEmptyDescriptor is returned when a descriptor holds no project.
	ErrEmptyDescriptor = errors.New("descriptor is empty")
	// ErrToolFailed is returned when an external tool exits non-zero.
	ErrToolFailed = errors.New("external tool failed")
)

// ToolConfig locates an external tool.
type ToolConfig struct {
	Path    string
	Shell   string
	Timeout time.Duration
}

// ShowInfosArgs contains the arguments for printing a descriptor.
type ShowInfosArgs struct {
	Path   m.Path
	Format m.OutputFormat
}

// BuildArgs contains the arguments for building a project.
type BuildArgs struct {
	ProjectPath m.Path
	Tool        ToolConfig
	DryRun      bool
}

// PackageArgs contains the arguments for packaging a project.
type PackageArgs struct {
	ProjectPath m.Path
	OutputPath  m.Path
	Tool        ToolConfig
	DryRun      bool
}

// Workflow defines the unrealctl operations. Every operation reports to the UI
// itself; the returned error only tells the caller that the operation failed.
type Workflow interface {
	ShowInfos(ctx context.Context, args ShowInfosArgs) error
	Build(ctx context.Context, args BuildArgs) error
	Package(ctx context.Context, args PackageArgs) error
}

type workflow struct {
	adapter.DescriptorFSAdapter
	adapter.ToolRunnerAdapter
	ui controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.DescriptorFSAdapter,
	toolRunner adapter.ToolRunnerAdapter,
	ui controller.UI,
) Workflow {
	return &workflow{
		DescriptorFSAdapter: fsAdapter,
		ToolRunnerAdapter:   toolRunner,
		ui:                  ui,
	}
}

func (w *workflow) ShowInfos(ctx context.Context, args ShowInfosArgs) error {
	data, err := w.ReadDescriptor(args.Path)
	if err != nil {
		return w.reportFileError(ctx, args.Path, err)
	}

	info, err := ParseProjectInfo(data)
	if err != nil {
		return w.reportFileError(ctx, args.Path, err)
	}

	if info == nil {
		w.ui.DisplayMessage(ctx, "Failed to deserialize the JSON data.")
		return fmt.Errorf("%s: %w", args.Path, ErrEmptyDescriptor)
	}

	slog.Debug("loaded project descriptor", "path", args.Path, "name", info.Name, "plugins", len(info.Plugins))

	if err := w.ui.DisplayProjectInfo(ctx, *info, args.Format); err != nil {
		return fmt.Errorf("display project info: %w", err)
	}

	return nil
}

func (w *workflow) reportFileError(ctx context.Context, path m.Path, err error) error {
	w.ui.DisplayError(ctx, fmt.Sprintf("Error reading or processing the file: %v", err))
	return fmt.Errorf("show infos %s: %w", path, err)
}

func (w *workflow) Build(ctx context.Context, args BuildArgs) error {
	return w.runTool(ctx, m.ToolInvocation{
		Kind:    m.BuildTool,
		Tool:    args.Tool.Path,
		Shell:   args.Tool.Shell,
		Args:    []string{string(args.ProjectPath)},
		Timeout: args.Tool.Timeout,
	}, args.DryRun)
}

func (w *workflow) Package(ctx context.Context, args PackageArgs) error {
	return w.runTool(ctx, m.ToolInvocation{
		Kind:  m.PackageTool,
		Tool:  args.Tool.Path,
		Shell: args.Tool.Shell,
		Args: []string{
			"-projectPath=" + string(args.ProjectPath),
			"-outputPath=" + string(args.OutputPath),
			"-package",
		},
		Timeout: args.Tool.Timeout,
	}, args.DryRun)
}

// runTool runs inv and prints its output. A tool that ran but exited non-zero
// still has its output shown.
func (w *workflow) runTool(ctx context.Context, inv m.ToolInvocation, dryRun bool) error {
	if dryRun {
		w.ui.DisplayDryRun(ctx, inv)
		return nil
	}

	slog.Info("starting tool", "kind", inv.Kind, "argv", inv.CommandLine(), "timeout", inv.Timeout)

	var output string

	err := w.ui.Track(ctx, inv.Kind.ProgressLabel(), func(ctx context.Context, stderr io.Writer) error {
		var runErr error

		output, runErr = w.RunTool(ctx, inv, stderr)

		return runErr
	})

	var exitErr *adapter.ToolExitError
	if err != nil && !errors.As(err, &exitErr) {
		slog.Error("tool failed to run", "kind", inv.Kind, "error", err)

		// A tool stopped by a timeout or a signal may have printed progress first.
		if output != "" {
			w.ui.DisplayToolOutput(context.WithoutCancel(ctx), inv.Kind, output)
		}

		w.ui.DisplayError(ctx, fmt.Sprintf("Error during %s process: %v", inv.Kind.ProcessName(), err))

		return fmt.Errorf("%s: %w", inv.Kind, err)
	}

	// Output is shown even if ctx was cancelled after the tool exited.
	w.ui.DisplayToolOutput(context.WithoutCancel(ctx), inv.Kind, output)

	if exitErr != nil {
		slog.Warn("tool exited with failure", "kind", inv.Kind, "code", exitErr.Code)
		return fmt.Errorf("%s: %w: %w", inv.Kind, ErrToolFailed, exitErr)
	}

	return nil
}
