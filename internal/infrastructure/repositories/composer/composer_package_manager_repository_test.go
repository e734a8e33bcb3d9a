//go:build unit

package composer_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/composer-update/internal/domain/repositories"
	"github.com/rios0rios0/composer-update/internal/infrastructure/repositories/composer"
)

// fakeComposer writes an executable shell script standing in for composer.
func fakeComposer(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "composer")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o700))
	return path
}

func TestComposerArgs(t *testing.T) {
	t.Parallel()

	t.Run("should install without interaction", func(t *testing.T) {
		t.Parallel()

		// when
		args := composer.InstallArgs()

		// then
		assert.Equal(t, []string{"install", "--no-interaction"}, args)
	})

	t.Run("should update everything when no packages are given", func(t *testing.T) {
		t.Parallel()

		// when
		args := composer.UpdateArgs(nil, false)

		// then
		assert.Equal(t, []string{"update", "--no-interaction"}, args)
	})

	t.Run("should append packages and the dependencies flag", func(t *testing.T) {
		t.Parallel()

		// when
		args := composer.UpdateArgs([]string{"foo/bar", "baz/qux"}, true)

		// then
		assert.Equal(t, []string{"update", "--no-interaction", "foo/bar", "baz/qux", "--with-dependencies"}, args)
	})
}

func TestComposerPackageManagerRepository(t *testing.T) {
	// Sequential: writing and exec-ing scripts from parallel tests can hit ETXTBSY.
	t.Run("should run in the working directory and return stdout", func(t *testing.T) {
		// given
		binary := fakeComposer(t, `echo "$(pwd -P) $COMPOSER_MEMORY_LIMIT $*"`)
		workDir := t.TempDir()
		repo := composer.NewPackageManagerRepository(workDir, binary)

		// when
		output, err := repo.Update(t.Context(), []string{"foo/bar"}, true)

		// then
		require.NoError(t, err)
		resolved, evalErr := filepath.EvalSymlinks(workDir)
		require.NoError(t, evalErr)
		assert.Equal(t, resolved+" -1 update --no-interaction foo/bar --with-dependencies\n", output)
	})

	t.Run("should fall back to stderr when stdout is empty", func(t *testing.T) {
		// given
		binary := fakeComposer(t, `echo "  - Upgrading foo/bar (1.0 => 1.1)" >&2`)
		repo := composer.NewPackageManagerRepository(t.TempDir(), binary)

		// when
		output, err := repo.Install(t.Context())

		// then
		require.NoError(t, err)
		assert.Equal(t, "  - Upgrading foo/bar (1.0 => 1.1)\n", output)
	})

	t.Run("should pass the token scope to the global config", func(t *testing.T) {
		// given
		record := filepath.Join(t.TempDir(), "args")
		binary := fakeComposer(t, `echo "$*" > "`+record+`"`)
		repo := composer.NewPackageManagerRepository(t.TempDir(), binary)

		// when
		err := repo.SetToken(t.Context(), "github-oauth.github.com", "secret")

		// then
		require.NoError(t, err)
		data, readErr := os.ReadFile(record)
		require.NoError(t, readErr)
		assert.Equal(t, "config --global github-oauth.github.com secret\n", string(data))
	})

	t.Run("should fail with the output on a non-zero exit", func(t *testing.T) {
		// given
		binary := fakeComposer(t, `echo "Your requirements could not be resolved"; exit 2`)
		repo := composer.NewPackageManagerRepository(t.TempDir(), binary)

		// when
		_, err := repo.Update(t.Context(), nil, false)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Your requirements could not be resolved")
		assert.NotErrorIs(t, err, repositories.ErrProcessTimeout)
	})

	t.Run("should report a timeout when the process runs too long", func(t *testing.T) {
		// given
		binary := fakeComposer(t, `exec sleep 5`)
		repo := composer.NewPackageManagerRepository(t.TempDir(), binary)
		composer.WithTimeouts(repo, 100*time.Millisecond, 100*time.Millisecond)

		// when
		_, err := repo.Install(t.Context())

		// then
		require.ErrorIs(t, err, repositories.ErrProcessTimeout)
	})

	t.Run("should fail when the binary does not exist", func(t *testing.T) {
		// given
		repo := composer.NewPackageManagerRepository(t.TempDir(), filepath.Join(t.TempDir(), "missing"))

		// when
		_, err := repo.Install(t.Context())

		// then
		require.Error(t, err)
	})
}
