package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"unrealctl.dev/pkg/unrealctl/internal/domain"
	m "unrealctl.dev/pkg/unrealctl/internal/model"
)

const showInfosUsageMessage = "No file path provided. Expected: show-infos <filePath>"

var errInsufficientArgs = errors.New("insufficient arguments")

func newShowInfosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-infos <filePath>",
		Short: "Print the content of a project descriptor",
		Long: `Read a project descriptor (JSON with Name, UnrealVersion, FromSource and
Plugins keys, all optional) and print its fields.`,
		Args:        cobra.ArbitraryArgs,
		Annotations: map[string]string{usageMessageAnnotation: showInfosUsageMessage},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				say(cmd, showInfosUsageMessage)
				return finish(fmt.Errorf("show-infos: %w", errInsufficientArgs))
			}

			rawFormat := viper.GetString(formatConfigKey)

			format, ok := m.ParseOutputFormat(rawFormat)
			if !ok {
				say(cmd, fmt.Sprintf("Unknown output format %q. Expected: text, table or yaml", rawFormat))
				return finish(fmt.Errorf("show-infos: unknown format %q", rawFormat))
			}

			return finish(newWorkflow(cmd).ShowInfos(cmd.Context(), domain.ShowInfosArgs{
				Path:   m.Path(args[0]),
				Format: format,
			}))
		},
	}

	cmd.Flags().StringP(formatFlagName, "f", viper.GetString(formatConfigKey), "output format: text, table or yaml")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), formatConfigKey)

	return cmd
}
