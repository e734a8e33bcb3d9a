package controllers

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/composer-update/internal/domain/commands"
	"github.com/rios0rios0/composer-update/internal/domain/entities"
)

// UpdateController handles the "update" subcommand.
type UpdateController struct {
	command commands.Update
}

// NewUpdateController creates a new UpdateController.
func NewUpdateController(command commands.Update) *UpdateController {
	return &UpdateController{command: command}
}

// GetBind returns the Cobra command metadata for the update controller.
func (it *UpdateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "update",
		Short: "composer update",
		Long: `Run composer install and update in the checked-out repository and,
if the lockfile changed, push the result to a branch and open a pull request.

Configuration is read from the environment (GITHUB_REPOSITORY, GITHUB_TOKEN,
COMPOSER_PATH, APP_SINGLE_BRANCH, ...) on top of an optional config file.`,
	}
}

// Execute loads the settings and runs one update.
func (it *UpdateController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil && !errors.Is(err, entities.ErrConfigNotFound) {
			return err
		}
		configPath = found
	}
	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)
	}

	settings, err := entities.NewSettings(ctx, configPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	return it.command.Execute(ctx, settings)
}

// AddFlags adds the update-specific flags to the given Cobra command.
func (it *UpdateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "Path to config file (default: auto-detect)")
}
