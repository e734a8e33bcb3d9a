package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/composer-update/internal/domain/entities"
	"github.com/rios0rios0/composer-update/internal/domain/repositories"
)

const (
	providerName = "github"
	defaultHost  = "github.com"
	perPage      = 100
)

// GitHubHostingRepository implements repositories.HostingRepository for GitHub.
type GitHubHostingRepository struct {
	token  string
	host   string
	client *gh.Client
}

// NewHostingRepository creates a GitHub provider. A non-empty baseURL points
// the client at a GitHub Enterprise Server API.
func NewHostingRepository(token, baseURL string) (repositories.HostingRepository, error) {
	client := gh.NewClient(nil).WithAuthToken(token)
	host := defaultHost

	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub base URL %q: %w", baseURL, err)
		}
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub base URL %q: %w", baseURL, err)
		}
		host = parsed.Host
	}

	return &GitHubHostingRepository{
		token:  token,
		host:   host,
		client: client,
	}, nil
}

func (p *GitHubHostingRepository) Name() string { return providerName }

// TokenScope is composer's auth key for this GitHub host.
func (p *GitHubHostingRepository) TokenScope() string { return "github-oauth." + p.host }

// Authenticate fetches the repository, which fails for a bad token or a
// repository the token cannot see.
func (p *GitHubHostingRepository) Authenticate(
	ctx context.Context,
	repo entities.Repository,
) (*entities.Repository, error) {
	r, _, err := p.client.Repositories.Get(ctx, repo.Organization, repo.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s: %w", entities.FullName(repo), err)
	}

	authenticated := repo
	authenticated.ID = strconv.FormatInt(r.GetID(), 10)
	authenticated.DefaultBranch = "refs/heads/" + r.GetDefaultBranch()
	authenticated.RemoteURL = r.GetCloneURL()
	authenticated.SSHURL = r.GetSSHURL()
	authenticated.ProviderName = providerName
	return &authenticated, nil
}

func (p *GitHubHostingRepository) ListPullRequests(
	ctx context.Context,
	repo entities.Repository,
	filter entities.PullRequestFilter,
) ([]entities.PullRequest, error) {
	prs, _, err := p.client.PullRequests.List(
		ctx, repo.Organization, repo.Name,
		&gh.PullRequestListOptions{
			Base:        strings.TrimPrefix(filter.Base, "refs/heads/"),
			State:       filter.State,
			ListOptions: gh.ListOptions{PerPage: perPage},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}

	result := make([]entities.PullRequest, 0, len(prs))
	for _, pr := range prs {
		result = append(result, entities.PullRequest{
			ID:     pr.GetNumber(),
			Title:  pr.GetTitle(),
			URL:    pr.GetHTMLURL(),
			Status: pr.GetState(),
		})
	}
	return result, nil
}

func (p *GitHubHostingRepository) CreatePullRequest(
	ctx context.Context,
	repo entities.Repository,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	sourceBranch := strings.TrimPrefix(input.SourceBranch, "refs/heads/")
	targetBranch := strings.TrimPrefix(input.TargetBranch, "refs/heads/")

	pr, _, err := p.client.PullRequests.Create(
		ctx, repo.Organization, repo.Name,
		&gh.NewPullRequest{
			Title: &input.Title,
			Head:  &sourceBranch,
			Base:  &targetBranch,
			Body:  &input.Description,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}

	return &entities.PullRequest{
		ID:     pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
		Status: pr.GetState(),
	}, nil
}

// CloneURL embeds the token as an x-access-token user in the HTTPS URL.
func (p *GitHubHostingRepository) CloneURL(repo entities.Repository) string {
	remoteURL := repo.RemoteURL
	if remoteURL == "" {
		remoteURL = fmt.Sprintf("https://%s/%s/%s.git", p.host, repo.Organization, repo.Name)
	}
	return strings.Replace(
		remoteURL,
		"https://",
		"https://x-access-token:"+p.token+"@",
		1,
	)
}
