// Package cmd provides the root command and CLI setup for unrealctl.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"unrealctl.dev/pkg/unrealctl/internal/adapter"
	"unrealctl.dev/pkg/unrealctl/internal/controller"
	"unrealctl.dev/pkg/unrealctl/internal/domain"
)

// errReported marks failures whose message was already shown to the user.
var errReported = errors.New("reported")

// usageMessageAnnotation holds the message a subcommand prints when it is
// invoked with arguments it cannot use.
const usageMessageAnnotation = "unrealctl/usage-message"

const rootLongDescription = `unrealctl reads Unreal project descriptors and drives the engine's
build and packaging scripts.

Commands:
  show-infos <filePath>                 print the project descriptor
  build <projectPath>                   run the build script
  package <projectPath> <outputPath>    run the packaging script

Tool locations come from flags, UNREALCTL_* environment variables or
unrealctl.yaml. Failures exit 0 unless --strict is set.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd *cobra.Command

// newWorkflow wires the workflow for the command being executed so output
// follows the command's writers.
var newWorkflow = func(cmd *cobra.Command) domain.Workflow {
	return domain.NewWorkflow(
		adapter.NewLocalDescriptorFSAdapter(),
		adapter.NewLocalToolRunnerAdapter(),
		controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout())),
	)
}

func init() {
	cobra.EnableCaseInsensitive = true

	initConfig()

	rootCmd = newRootCmd()
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	cmd.AddCommand(
		newShowInfosCmd(),
		newBuildCmd(),
		newPackageCmd(),
		newVersionCmd(),
		newInitCmd(),
	)

	return cmd
}

func baseRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "unrealctl",
		Short:         "Inspect, build and package Unreal projects",
		Long:          rootLongDescription,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				say(cmd, "No command provided.")
				return finish(errors.New("no command provided"))
			}

			say(cmd, "Invalid command.")

			return finish(fmt.Errorf("invalid command %q", args[0]))
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(flagError)

	return cmd
}

// flagError handles arguments that look like unknown flags. They are usage
// errors like any other: the command's usage message is shown and the exit
// policy decides the status.
func flagError(cmd *cobra.Command, err error) error {
	// Flag parsing failed before PersistentPreRun had a chance to run.
	configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

	msg, ok := cmd.Annotations[usageMessageAnnotation]
	if !ok {
		msg = "Invalid command."
	}

	say(cmd, msg)

	return finish(fmt.Errorf("%s: %w", cmd.Name(), err))
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.Bool(strictFlagName, viper.GetBool(strictConfigKey), "exit with status 1 when a command fails")
	bindFlagToConfig(flags.Lookup(strictFlagName), strictConfigKey)

	flags.String(buildToolFlagName, viper.GetString(buildToolConfigKey), "build script to invoke")
	bindFlagToConfig(flags.Lookup(buildToolFlagName), buildToolConfigKey)

	flags.String(packageToolFlagName, viper.GetString(packageToolConfigKey), "packaging script to invoke")
	bindFlagToConfig(flags.Lookup(packageToolFlagName), packageToolConfigKey)

	flags.String(shellFlagName, viper.GetString(shellConfigKey), "interpreter used to run the scripts (e.g. /bin/bash)")
	bindFlagToConfig(flags.Lookup(shellFlagName), shellConfigKey)

	flags.Duration(timeoutFlagName, viper.GetDuration(timeoutConfigKey), "stop a tool after this long (0 waits forever)")
	bindFlagToConfig(flags.Lookup(timeoutFlagName), timeoutConfigKey)

	flags.Bool(dryRunFlagName, viper.GetBool(dryRunConfigKey), "print the tool command line instead of running it")
	bindFlagToConfig(flags.Lookup(dryRunFlagName), dryRunConfigKey)

	flags.BoolP(verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.String(logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// say prints a user-facing line on the command's standard output.
func say(cmd *cobra.Command, msg string) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
}

// finish applies the exit policy to a failure that was already shown to the
// user: it is logged, and only surfaced to the caller in strict mode.
func finish(err error) error {
	if err == nil {
		return nil
	}

	slog.Error("command failed", "error", err, "strict", viper.GetBool(strictConfigKey))

	if !viper.GetBool(strictConfigKey) {
		return nil
	}

	return fmt.Errorf("%w: %w", errReported, err)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		os.Exit(1)
	}
}
