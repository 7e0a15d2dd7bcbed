package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"unrealctl.dev/pkg/unrealctl/internal/domain"
	m "unrealctl.dev/pkg/unrealctl/internal/model"
)

const buildUsageMessage = "No project path provided. Expected: build <projectPath>"

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <projectPath>",
		Short: "Run the build script for a project",
		Long: `Run the configured build script (--build-tool, tools.build) with the
project path as its only argument and print what it writes to stdout.`,
		Args:        cobra.ArbitraryArgs,
		Annotations: map[string]string{usageMessageAnnotation: buildUsageMessage},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				say(cmd, buildUsageMessage)
				return finish(fmt.Errorf("build: %w", errInsufficientArgs))
			}

			return finish(newWorkflow(cmd).Build(cmd.Context(), domain.BuildArgs{
				ProjectPath: m.Path(args[0]),
				Tool:        toolConfig(buildToolConfigKey),
				DryRun:      viper.GetBool(dryRunConfigKey),
			}))
		},
	}
}

// toolConfig reads the location of the tool stored under pathKey together
// with the settings shared by all tools.
func toolConfig(pathKey string) domain.ToolConfig {
	return domain.ToolConfig{
		Path:    viper.GetString(pathKey),
		Shell:   viper.GetString(shellConfigKey),
		Timeout: viper.GetDuration(timeoutConfigKey),
	}
}
