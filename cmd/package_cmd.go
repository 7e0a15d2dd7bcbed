package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"unrealctl.dev/pkg/unrealctl/internal/domain"
	m "unrealctl.dev/pkg/unrealctl/internal/model"
)

const packageUsageMessage = "Insufficient arguments. Expected: package <projectPath> <outputPath>"

func newPackageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "package <projectPath> <outputPath>",
		Short: "Run the packaging script for a project",
		Long: `Run the configured packaging script (--package-tool, tools.package) as
  <tool> -projectPath=<projectPath> -outputPath=<outputPath> -package
and print what it writes to stdout.`,
		Args:        cobra.ArbitraryArgs,
		Annotations: map[string]string{usageMessageAnnotation: packageUsageMessage},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				say(cmd, packageUsageMessage)
				return finish(fmt.Errorf("package: %w", errInsufficientArgs))
			}

			return finish(newWorkflow(cmd).Package(cmd.Context(), domain.PackageArgs{
				ProjectPath: m.Path(args[0]),
				OutputPath:  m.Path(args[1]),
				Tool:        toolConfig(packageToolConfigKey),
				DryRun:      viper.GetBool(dryRunConfigKey),
			}))
		},
	}
}
