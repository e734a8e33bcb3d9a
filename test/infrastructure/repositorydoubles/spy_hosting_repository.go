//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/composer-update/internal/domain/entities"
	"github.com/rios0rios0/composer-update/internal/domain/repositories"
)

// SpyHostingRepository implements repositories.HostingRepository as a
// configurable spy.
type SpyHostingRepository struct {
	ProviderName string
	Scope        string

	AuthErr     error
	ExistingPRs []entities.PullRequest
	ListErr     error
	CreatedPR   *entities.PullRequest
	CreatePRErr error

	AuthenticatedRepos []entities.Repository
	ListFilters        []entities.PullRequestFilter
	CreatePRInputs     []entities.PullRequestInput
}

var _ repositories.HostingRepository = (*SpyHostingRepository)(nil)

func (s *SpyHostingRepository) Name() string { return s.ProviderName }

func (s *SpyHostingRepository) TokenScope() string { return s.Scope }

func (s *SpyHostingRepository) Authenticate(
	_ context.Context,
	repo entities.Repository,
) (*entities.Repository, error) {
	s.AuthenticatedRepos = append(s.AuthenticatedRepos, repo)
	if s.AuthErr != nil {
		return nil, s.AuthErr
	}
	authenticated := repo
	authenticated.RemoteURL = "https://example.com/" + entities.FullName(repo) + ".git"
	return &authenticated, nil
}

func (s *SpyHostingRepository) ListPullRequests(
	_ context.Context,
	_ entities.Repository,
	filter entities.PullRequestFilter,
) ([]entities.PullRequest, error) {
	s.ListFilters = append(s.ListFilters, filter)
	return s.ExistingPRs, s.ListErr
}

func (s *SpyHostingRepository) CreatePullRequest(
	_ context.Context,
	_ entities.Repository,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	s.CreatePRInputs = append(s.CreatePRInputs, input)
	if s.CreatePRErr != nil {
		return nil, s.CreatePRErr
	}
	if s.CreatedPR != nil {
		return s.CreatedPR, nil
	}
	return &entities.PullRequest{ID: 1, Title: input.Title, URL: "https://example.com/pr/1"}, nil
}

func (s *SpyHostingRepository) CloneURL(repo entities.Repository) string {
	return "https://token@example.com/" + entities.FullName(repo) + ".git"
}
