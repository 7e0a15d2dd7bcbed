package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "unrealctl.dev/pkg/unrealctl/internal/model"
)

const noOutputMessage = "No output received."

// SimpleUI implements UI with plain text on the command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayProjectInfo prints the descriptor in the requested format.
func (s *SimpleUI) DisplayProjectInfo(ctx context.Context, info m.ProjectInfo, format m.OutputFormat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rendered, err := renderProjectInfo(info, format)
	if err != nil {
		return err
	}

	s.printf("%s", rendered)

	return nil
}

// DisplayToolOutput prints the header for kind followed by the captured output.
func (s *SimpleUI) DisplayToolOutput(ctx context.Context, kind m.ToolKind, output string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n%s", kind.OutputHeader(), formatToolOutput(output))
}

// DisplayDryRun shows the command line that would have been executed.
func (s *SimpleUI) DisplayDryRun(ctx context.Context, inv m.ToolInvocation) {
	if err := ctx.Err(); err != nil {
		return
	}

	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), "+ %s\n", shellescape.QuoteCommand(inv.CommandLine()))
}

// DisplayMessage prints msg on its own line.
func (s *SimpleUI) DisplayMessage(ctx context.Context, msg string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", msg)
}

// DisplayError prints msg on its own line. Errors share stdout with regular output.
func (s *SimpleUI) DisplayError(_ context.Context, msg string) {
	s.printf("%s\n", msg)
}

// Track runs fn without any progress indicator.
func (s *SimpleUI) Track(ctx context.Context, _ string, fn TrackFunc) error {
	return fn(ctx, s.cmd.ErrOrStderr())
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func formatToolOutput(output string) string {
	if output == "" {
		return noOutputMessage + "\n"
	}

	if !strings.HasSuffix(output, "\n") {
		output += "\n"
	}

	return output
}

func renderProjectInfo(info m.ProjectInfo, format m.OutputFormat) (string, error) {
	switch format {
	case m.FormatTable:
		return renderProjectInfoTable(info), nil
	case m.FormatYAML:
		return renderProjectInfoYAML(info)
	case m.FormatText, "":
		return renderProjectInfoText(info), nil
	}

	return "", fmt.Errorf("unsupported output format %q", format)
}

func renderProjectInfoText(info m.ProjectInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Project Name: %s\n", info.Name)
	fmt.Fprintf(&b, "Unreal Version: %s\n", info.UnrealVersion)
	fmt.Fprintf(&b, "From Source: %s\n", formatBool(info.FromSource))
	b.WriteString("Plugins:\n")

	for _, plugin := range info.Plugins {
		fmt.Fprintf(&b, "- %s\n", plugin)
	}

	return b.String()
}

func renderProjectInfoTable(info m.ProjectInfo) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Field", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	plugins := "-"
	if len(info.Plugins) > 0 {
		plugins = strings.Join(info.Plugins, ", ")
	}

	table.AppendBulk([][]string{
		{"Project Name", info.Name},
		{"Unreal Version", info.UnrealVersion},
		{"From Source", formatBool(info.FromSource)},
		{"Plugins", plugins},
	})

	table.Render()

	return tableBuffer.String()
}

func renderProjectInfoYAML(info m.ProjectInfo) (string, error) {
	if info.Plugins == nil {
		info.Plugins = []string{}
	}

	out, err := yaml.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("failed to encode project info: %w", err)
	}

	return string(out), nil
}

// formatBool renders booleans capitalized, the way descriptors are shown to users.
func formatBool(v bool) string {
	if v {
		return "True"
	}

	return "False"
}
