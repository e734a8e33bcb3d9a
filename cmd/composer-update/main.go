package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/composer-update/internal"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "composer-update",
		Short: "Automated composer dependency updates",
		Long: `Runs composer update against a checked-out repository inside a CI job
and publishes the resulting lockfile changes as a branch and pull request.

Branch naming:
  default           every run pushes a new cu/<random> branch and opens a PR
  APP_SINGLE_BRANCH one <branch>-updated branch per parent, kept current by
                    merging the parent, with at most one open PR`,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}
		ctrl.AddFlags(subCmd)

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	cobraRoot := buildRootCommand()
	addSubcommands(cobraRoot, injectAppContext())

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'composer-update': %s", err)
	}
}
