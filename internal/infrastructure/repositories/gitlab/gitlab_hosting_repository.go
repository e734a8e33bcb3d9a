package gitlab

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/composer-update/internal/domain/entities"
	"github.com/rios0rios0/composer-update/internal/domain/repositories"
)

const (
	providerName = "gitlab"
	defaultHost  = "gitlab.com"
	perPage      = 100

	// GitLab names the open state "opened".
	stateOpened = "opened"
)

// GitLabHostingRepository implements repositories.HostingRepository for GitLab.
type GitLabHostingRepository struct {
	token  string
	host   string
	client *gl.Client
}

// NewHostingRepository creates a GitLab provider. A non-empty baseURL points
// the client at a self-managed instance.
func NewHostingRepository(token, baseURL string) (repositories.HostingRepository, error) {
	var options []gl.ClientOptionFunc
	host := defaultHost

	if baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitLab base URL %q: %w", baseURL, err)
		}
		host = parsed.Host
		options = append(options, gl.WithBaseURL(baseURL))
	}

	client, err := gl.NewClient(token, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	return &GitLabHostingRepository{
		token:  token,
		host:   host,
		client: client,
	}, nil
}

func (p *GitLabHostingRepository) Name() string { return providerName }

// TokenScope is composer's auth key for this GitLab host.
func (p *GitLabHostingRepository) TokenScope() string { return "gitlab-token." + p.host }

func (p *GitLabHostingRepository) Authenticate(
	ctx context.Context,
	repo entities.Repository,
) (*entities.Repository, error) {
	proj, _, err := p.client.Projects.GetProject(
		entities.FullName(repo), &gl.GetProjectOptions{}, gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", entities.FullName(repo), err)
	}

	authenticated := repo
	authenticated.ID = strconv.FormatInt(proj.ID, 10)
	authenticated.DefaultBranch = "refs/heads/" + proj.DefaultBranch
	authenticated.RemoteURL = proj.HTTPURLToRepo
	authenticated.SSHURL = proj.SSHURLToRepo
	authenticated.ProviderName = providerName
	return &authenticated, nil
}

func (p *GitLabHostingRepository) ListPullRequests(
	ctx context.Context,
	repo entities.Repository,
	filter entities.PullRequestFilter,
) ([]entities.PullRequest, error) {
	state := filter.State
	if state == entities.PullRequestStateOpen {
		state = stateOpened
	}

	opts := &gl.ListProjectMergeRequestsOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
	}
	if filter.Base != "" {
		opts.TargetBranch = gl.Ptr(strings.TrimPrefix(filter.Base, "refs/heads/"))
	}
	if state != "" {
		opts.State = gl.Ptr(state)
	}

	mrs, _, err := p.client.MergeRequests.ListProjectMergeRequests(
		entities.FullName(repo), opts, gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list merge requests: %w", err)
	}

	result := make([]entities.PullRequest, 0, len(mrs))
	for _, mr := range mrs {
		result = append(result, entities.PullRequest{
			ID:     int(mr.IID),
			Title:  mr.Title,
			URL:    mr.WebURL,
			Status: mr.State,
		})
	}
	return result, nil
}

func (p *GitLabHostingRepository) CreatePullRequest(
	ctx context.Context,
	repo entities.Repository,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	sourceBranch := strings.TrimPrefix(input.SourceBranch, "refs/heads/")
	targetBranch := strings.TrimPrefix(input.TargetBranch, "refs/heads/")

	mr, _, err := p.client.MergeRequests.CreateMergeRequest(
		entities.FullName(repo),
		&gl.CreateMergeRequestOptions{
			Title:        gl.Ptr(input.Title),
			Description:  gl.Ptr(input.Description),
			SourceBranch: gl.Ptr(sourceBranch),
			TargetBranch: gl.Ptr(targetBranch),
		},
		gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create merge request: %w", err)
	}

	return &entities.PullRequest{
		ID:     int(mr.IID),
		Title:  mr.Title,
		URL:    mr.WebURL,
		Status: mr.State,
	}, nil
}

// CloneURL embeds the token as an oauth2 user in the HTTPS URL.
func (p *GitLabHostingRepository) CloneURL(repo entities.Repository) string {
	remoteURL := repo.RemoteURL
	if remoteURL == "" {
		remoteURL = fmt.Sprintf("https://%s/%s/%s.git", p.host, repo.Organization, repo.Name)
	}
	return strings.Replace(
		remoteURL,
		"https://",
		"https://oauth2:"+p.token+"@",
		1,
	)
}
