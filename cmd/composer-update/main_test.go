//go:build unit

package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/composer-update/internal"
	"github.com/rios0rios0/composer-update/internal/domain/entities"
)

type stubController struct {
	executed bool
}

func (s *stubController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{Use: "update", Short: "composer update"}
}

func (s *stubController) Execute(_ *cobra.Command, _ []string) error {
	s.executed = true
	return nil
}

func (s *stubController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "")
}

func TestAddSubcommands(t *testing.T) {
	t.Parallel()

	t.Run("should route the subcommand to its controller", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &stubController{}
		root := buildRootCommand()
		addSubcommands(root, internal.NewAppInternal(&[]entities.Controller{stub}))
		root.SetArgs([]string{"update", "--verbose", "-c", "x.yaml"})

		// when
		err := root.Execute()

		// then
		require.NoError(t, err)
		assert.True(t, stub.executed)
	})
}
