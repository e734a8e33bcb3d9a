package repositories

import (
	"context"

	"github.com/rios0rios0/composer-update/internal/domain/entities"
)

// HostingRepository abstracts the source-control hosting API.
type HostingRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// Authenticate verifies the token against the repository and returns it
	// enriched with provider data (default branch, clone URL).
	Authenticate(ctx context.Context, repo entities.Repository) (*entities.Repository, error)

	// ListPullRequests returns the pull requests matching filter.
	ListPullRequests(
		ctx context.Context,
		repo entities.Repository,
		filter entities.PullRequestFilter,
	) ([]entities.PullRequest, error)

	// CreatePullRequest opens a pull request.
	CreatePullRequest(
		ctx context.Context,
		repo entities.Repository,
		input entities.PullRequestInput,
	) (*entities.PullRequest, error)

	// CloneURL returns an HTTPS remote URL with embedded credentials.
	CloneURL(repo entities.Repository) string

	// TokenScope is the dependency manager auth key for this host.
	TokenScope() string
}
