package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/concat/internal/config"
)

const (
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write a configuration file holding the built-in defaults.
By default the file is written to .concat.yaml in the working directory; use --global to
write ~/.concat/config.yaml instead.`
	initGlobalFlagName          = "global"
	initGlobalFlagDescription   = "write the global configuration file"
	initForceFlagName           = "force"
	initForceFlagDescription    = "overwrite an existing configuration file"
	initCompletionMessageFormat = "Configuration written to %s\n"
)

// createInitCommand returns the init subcommand.
func createInitCommand(dependencies Dependencies) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			path, err := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: dependencies.WorkingDirectory,
				HomeDirectory:    dependencies.HomeDirectory,
			})
			if err != nil {
				return err
			}
			_, writeErr := fmt.Fprintf(command.OutOrStdout(), initCompletionMessageFormat, path)
			return writeErr
		},
	}

	registerBooleanFlag(initCommand.Flags(), &global, initGlobalFlagName, false, initGlobalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, initForceFlagName, false, initForceFlagDescription)
	return initCommand
}
