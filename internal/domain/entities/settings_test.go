//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/composer-update/internal/domain/entities"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".composer-update.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewSettingsWithLookuper(t *testing.T) {
	t.Parallel()

	t.Run("should read the environment and apply defaults", func(t *testing.T) {
		t.Parallel()

		// given
		lookuper := envconfig.MapLookuper(map[string]string{
			"GITHUB_REPOSITORY": "acme/shop",
			"GITHUB_WORKSPACE":  "/work",
			"COMPOSER_PATH":     "app",
			"GITHUB_TOKEN":      "secret",
			"GITHUB_REF":        "refs/heads/release/1.x",
		})

		// when
		settings, err := entities.NewSettingsWithLookuper(t.Context(), "", lookuper)

		// then
		require.NoError(t, err)
		assert.Equal(t, "acme/shop", settings.Repository)
		assert.Equal(t, filepath.Join("/work", "app"), settings.WorkingDirectory())
		assert.Equal(t, "secret", settings.Token)
		assert.Equal(t, "cu", settings.GitName)
		assert.Equal(t, "cu@composer-update", settings.GitEmail)
		assert.Equal(t, "composer", settings.ComposerBinary)
		assert.Equal(t, "-updated", settings.SingleBranchPostfix)
		assert.Equal(t, entities.ProviderGitHub, settings.Provider)
		assert.False(t, bool(settings.SingleBranch))
		assert.Equal(t, "1.x", settings.BaseBranch("main"))
	})

	t.Run("should let the environment override the config file", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
repository: acme/from-file
token: file-token
git_name: file-bot
single_branch: true
single_branch_postfix: -deps
`)
		lookuper := envconfig.MapLookuper(map[string]string{
			"GITHUB_REPOSITORY": "acme/from-env",
		})

		// when
		settings, err := entities.NewSettingsWithLookuper(t.Context(), path, lookuper)

		// then
		require.NoError(t, err)
		assert.Equal(t, "acme/from-env", settings.Repository)
		assert.Equal(t, "file-token", settings.Token)
		assert.Equal(t, "file-bot", settings.GitName)
		assert.Equal(t, "-deps", settings.SingleBranchPostfix)
		assert.True(t, bool(settings.SingleBranch))
	})

	t.Run("should read the token from a file path", func(t *testing.T) {
		t.Parallel()

		// given
		tokenFile := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("from-file\n"), 0o600))
		path := writeConfig(t, "repository: acme/shop\ntoken: "+tokenFile+"\n")

		// when
		settings, err := entities.NewSettingsWithLookuper(t.Context(), path, envconfig.MapLookuper(nil))

		// then
		require.NoError(t, err)
		assert.Equal(t, "from-file", settings.Token)
	})

	t.Run("should fail without a token", func(t *testing.T) {
		t.Parallel()

		// given
		lookuper := envconfig.MapLookuper(map[string]string{"GITHUB_REPOSITORY": "acme/shop"})

		// when
		_, err := entities.NewSettingsWithLookuper(t.Context(), "", lookuper)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token is required")
	})

	t.Run("should fail for an unknown provider", func(t *testing.T) {
		t.Parallel()

		// given
		lookuper := envconfig.MapLookuper(map[string]string{
			"GITHUB_REPOSITORY": "acme/shop",
			"GITHUB_TOKEN":      "secret",
			"APP_PROVIDER":      "bitbucket",
		})

		// when
		_, err := entities.NewSettingsWithLookuper(t.Context(), "", lookuper)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bitbucket")
	})

	t.Run("should treat empty provider and binary variables as unset", func(t *testing.T) {
		t.Parallel()

		// given
		lookuper := envconfig.MapLookuper(map[string]string{
			"GITHUB_REPOSITORY":         "acme/shop",
			"GITHUB_TOKEN":              "secret",
			"APP_PROVIDER":              "",
			"COMPOSER_BINARY":           "",
			"APP_SINGLE_BRANCH_POSTFIX": "",
		})

		// when
		settings, err := entities.NewSettingsWithLookuper(t.Context(), "", lookuper)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ProviderGitHub, settings.Provider)
		assert.Equal(t, "composer", settings.ComposerBinary)
		assert.Empty(t, settings.SingleBranchPostfix)
	})

	t.Run("should fail for a missing config file", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.NewSettingsWithLookuper(
			t.Context(), filepath.Join(t.TempDir(), "nope.yaml"), envconfig.MapLookuper(nil),
		)

		// then
		require.Error(t, err)
	})
}

func TestToggle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		initial entities.Toggle
		want    entities.Toggle
	}{
		{value: "1", want: true},
		{value: "true", want: true},
		{value: "yes", want: true},
		{value: "anything", want: true},
		{value: "0", initial: true, want: false},
		{value: "false", initial: true, want: false},
		{value: "OFF", initial: true, want: false},
		{value: "", initial: true, want: true},
		{value: "", want: false},
	}

	for _, tt := range tests {
		t.Run("should decode "+tt.value, func(t *testing.T) {
			t.Parallel()

			// given
			toggle := tt.initial

			// when
			err := toggle.EnvDecode(tt.value)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.want, toggle)
		})
	}
}

func TestSplitRepository(t *testing.T) {
	t.Parallel()

	t.Run("should split owner and name", func(t *testing.T) {
		t.Parallel()

		// when
		owner, name, err := entities.SplitRepository("acme/shop")

		// then
		require.NoError(t, err)
		assert.Equal(t, "acme", owner)
		assert.Equal(t, "shop", name)
	})

	t.Run("should keep subgroups in the owner", func(t *testing.T) {
		t.Parallel()

		// when
		owner, name, err := entities.SplitRepository("acme/web/shop")

		// then
		require.NoError(t, err)
		assert.Equal(t, "acme/web", owner)
		assert.Equal(t, "shop", name)
	})

	for _, invalid := range []string{"", "shop", "/shop", "acme/"} {
		t.Run("should reject "+invalid, func(t *testing.T) {
			t.Parallel()

			// when
			_, _, err := entities.SplitRepository(invalid)

			// then
			require.ErrorIs(t, err, entities.ErrInvalidRepository)
		})
	}
}

func TestSettingsHelpers(t *testing.T) {
	t.Parallel()

	t.Run("should pair the package list with dependency updates", func(t *testing.T) {
		t.Parallel()

		// given
		settings := &entities.Settings{ComposerPackages: "foo/bar  baz/qux"}

		// when
		packages := settings.Packages()

		// then
		assert.Equal(t, []string{"foo/bar", "baz/qux"}, packages)
		assert.True(t, settings.WithDependencies())
	})

	t.Run("should update everything without dependencies flag when no packages are set", func(t *testing.T) {
		t.Parallel()

		// given
		settings := &entities.Settings{}

		// then
		assert.Empty(t, settings.Packages())
		assert.False(t, settings.WithDependencies())
	})

	t.Run("should fall back to the given base when no ref is set", func(t *testing.T) {
		t.Parallel()

		// given
		settings := &entities.Settings{}

		// then
		assert.Equal(t, "develop", settings.BaseBranch("develop"))
	})

	t.Run("should select single mode from the toggle", func(t *testing.T) {
		t.Parallel()

		// given
		settings := &entities.Settings{SingleBranch: true, SingleBranchPostfix: "-x"}

		// when
		policy := settings.BranchPolicy()

		// then
		assert.Equal(t, entities.BranchPolicy{Mode: entities.NamingModeSingle, Postfix: "-x"}, policy)
	})
}
