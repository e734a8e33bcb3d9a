package composer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/composer-update/internal/domain/repositories"
)

const defaultBinary = "composer"

// ComposerPackageManagerRepository runs composer as a subprocess inside a
// project directory.
type ComposerPackageManagerRepository struct {
	workDir       string
	binary        string
	env           []string
	updateTimeout time.Duration
	tokenTimeout  time.Duration
}

// NewPackageManagerRepository creates a composer runner bound to workDir.
func NewPackageManagerRepository(workDir, binary string) repositories.PackageManagerRepository {
	if binary == "" {
		binary = defaultBinary
	}
	return &ComposerPackageManagerRepository{
		workDir:       workDir,
		binary:        binary,
		env:           []string{"COMPOSER_MEMORY_LIMIT=-1"},
		updateTimeout: repositories.UpdateTimeout,
		tokenTimeout:  repositories.TokenTimeout,
	}
}

// Install runs `composer install`.
func (c *ComposerPackageManagerRepository) Install(ctx context.Context) (string, error) {
	return c.run(ctx, c.updateTimeout, installArgs())
}

// Update runs `composer update`, restricted to packages when given.
func (c *ComposerPackageManagerRepository) Update(
	ctx context.Context,
	packages []string,
	withDependencies bool,
) (string, error) {
	return c.run(ctx, c.updateTimeout, updateArgs(packages, withDependencies))
}

// SetToken stores the token in the global composer auth config.
func (c *ComposerPackageManagerRepository) SetToken(ctx context.Context, scope, token string) error {
	_, err := c.run(ctx, c.tokenTimeout, []string{"config", "--global", scope, token})
	return err
}

func installArgs() []string {
	return []string{"install", "--no-interaction"}
}

func updateArgs(packages []string, withDependencies bool) []string {
	args := []string{"update", "--no-interaction"}
	args = append(args, packages...)
	if withDependencies {
		args = append(args, "--with-dependencies")
	}
	return args
}

// run executes composer with args and returns stdout, or stderr when stdout
// is blank. composer prints most of its progress on stderr.
func (c *ComposerPackageManagerRepository) run(
	ctx context.Context,
	timeout time.Duration,
	args []string,
) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, c.binary, args...)
	cmd.Dir = c.workDir
	cmd.Env = append(os.Environ(), c.env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debugf("Running %s %s in %s", c.binary, args[0], c.workDir)
	runErr := cmd.Run()

	output := stdout.String()
	if strings.TrimSpace(output) == "" {
		output = stderr.String()
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return output, fmt.Errorf("%s %s: %w after %s", c.binary, args[0], repositories.ErrProcessTimeout, timeout)
	}
	if runErr != nil {
		return output, fmt.Errorf("%s %s failed: %w\nOutput:\n%s", c.binary, args[0], runErr, output)
	}

	return output, nil
}
