package repositories

import (
	"context"
	"errors"
)

// ErrDetachedHead is returned when HEAD does not point at a branch.
var ErrDetachedHead = errors.New("HEAD is detached, not on a branch")

// MergeStrategyTheirs resolves conflicts in favour of the branch being merged in.
const MergeStrategyTheirs = "theirs"

// MergeOptions controls how a branch is merged into the current one.
type MergeOptions struct {
	Strategy string
	Quiet    bool
}

// VersionControlRepository abstracts the working copy the update runs in.
type VersionControlRepository interface {
	// CurrentBranch returns the short name of the checked-out branch.
	CurrentBranch(ctx context.Context) (string, error)

	// ListBranches returns the branch names known to the origin remote.
	ListBranches(ctx context.Context) ([]string, error)

	// CreateBranch creates a branch at HEAD, checking it out when checkout is true.
	CreateBranch(ctx context.Context, name string, checkout bool) error

	// CheckoutBranch fetches an existing remote branch and checks it out locally.
	CheckoutBranch(ctx context.Context, name string) error

	// Merge merges the named branch into the current one.
	Merge(ctx context.Context, branch string, opts MergeOptions) error

	// HasChanges reports whether the working tree differs from the last commit.
	HasChanges(ctx context.Context) (bool, error)

	// AddAll stages every change in the working tree.
	AddAll(ctx context.Context) error

	// Commit records the staged changes.
	Commit(ctx context.Context, message string) error

	// Push pushes a local branch to the named remote.
	Push(ctx context.Context, remote, branch string, force bool) error

	// SetRemoteURL points the named remote at url, creating it if needed.
	SetRemoteURL(ctx context.Context, remote, url string) error

	// SetConfig sets a repository-local configuration key (e.g. "user.name").
	SetConfig(ctx context.Context, key, value string) error
}

// VersionControlOpener opens the working copy containing dir.
type VersionControlOpener func(dir string) (VersionControlRepository, error)
