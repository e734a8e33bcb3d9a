package repositories

import (
	"context"
	"errors"
	"time"
)

const (
	// UpdateTimeout bounds the install and update operations.
	UpdateTimeout = 600 * time.Second
	// TokenTimeout bounds the token configuration operation.
	TokenTimeout = 60 * time.Second
)

// ErrProcessTimeout is wrapped by errors from operations that ran out of time.
var ErrProcessTimeout = errors.New("process timed out")

// PackageManagerRepository abstracts the dependency manager executable.
// Every operation fails when the underlying process exits non-zero.
type PackageManagerRepository interface {
	// Install installs the locked dependencies and returns the captured output.
	Install(ctx context.Context) (string, error)

	// Update updates the lockfile, optionally restricted to packages, and
	// returns the captured output.
	Update(ctx context.Context, packages []string, withDependencies bool) (string, error)

	// SetToken stores an authentication token for private package sources
	// under the given scope (e.g. "github-oauth.github.com").
	SetToken(ctx context.Context, scope, token string) error
}

// PackageManagerFactory builds a package manager bound to workDir using binary.
type PackageManagerFactory func(workDir, binary string) PackageManagerRepository
