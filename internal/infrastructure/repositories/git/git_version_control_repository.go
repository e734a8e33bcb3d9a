package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/composer-update/internal/domain/repositories"
)

const originRemote = "origin"

// GitVersionControlRepository implements repositories.VersionControlRepository
// on top of go-git. Merging shells out to the git CLI because go-git only
// supports fast-forward merges.
type GitVersionControlRepository struct {
	root string
	repo *gogit.Repository
}

// Open opens the repository containing dir, walking up to find .git.
func Open(dir string) (repositories.VersionControlRepository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %q: %w", dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	return &GitVersionControlRepository{
		root: wt.Filesystem.Root(),
		repo: repo,
	}, nil
}

func (g *GitVersionControlRepository) CurrentBranch(_ context.Context) (string, error) {
	head, err := g.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", repositories.ErrDetachedHead
	}
	return head.Name().Short(), nil
}

func (g *GitVersionControlRepository) ListBranches(ctx context.Context) ([]string, error) {
	remote, err := g.repo.Remote(originRemote)
	if err != nil {
		return nil, fmt.Errorf("failed to get remote %q: %w", originRemote, err)
	}

	refs, err := remote.ListContext(ctx, &gogit.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list remote references: %w", err)
	}

	var branches []string
	for _, ref := range refs {
		if ref.Name().IsBranch() {
			branches = append(branches, ref.Name().Short())
		}
	}
	return branches, nil
}

func (g *GitVersionControlRepository) CreateBranch(_ context.Context, name string, checkout bool) error {
	head, err := g.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	branchRef := plumbing.NewBranchReferenceName(name)
	if !checkout {
		return g.repo.Storer.SetReference(plumbing.NewHashReference(branchRef, head.Hash()))
	}

	wt, err := g.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	// Keep preserves the working tree so uncommitted state survives the switch.
	return wt.Checkout(&gogit.CheckoutOptions{
		Branch: branchRef,
		Hash:   head.Hash(),
		Create: true,
		Keep:   true,
	})
}

func (g *GitVersionControlRepository) CheckoutBranch(ctx context.Context, name string) error {
	remoteRef := plumbing.NewRemoteReferenceName(originRemote, name)
	refSpec := config.RefSpec(fmt.Sprintf("+%s:%s", plumbing.NewBranchReferenceName(name), remoteRef))

	err := g.repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: originRemote,
		RefSpecs:   []config.RefSpec{refSpec},
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch %q: %w", name, err)
	}

	ref, err := g.repo.Reference(remoteRef, true)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", remoteRef, err)
	}

	branchRef := plumbing.NewBranchReferenceName(name)
	if err = g.repo.Storer.SetReference(plumbing.NewHashReference(branchRef, ref.Hash())); err != nil {
		return fmt.Errorf("failed to update %q: %w", branchRef, err)
	}

	wt, err := g.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	return wt.Checkout(&gogit.CheckoutOptions{Branch: branchRef, Force: true})
}

func (g *GitVersionControlRepository) Merge(
	ctx context.Context,
	branch string,
	opts repositories.MergeOptions,
) error {
	_, err := g.git(ctx, mergeArgs(branch, opts)...)
	return err
}

func (g *GitVersionControlRepository) HasChanges(_ context.Context) (bool, error) {
	wt, err := g.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree status: %w", err)
	}
	return !status.IsClean(), nil
}

func (g *GitVersionControlRepository) AddAll(_ context.Context) error {
	wt, err := g.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	return wt.AddWithOptions(&gogit.AddOptions{All: true})
}

func (g *GitVersionControlRepository) Commit(_ context.Context, message string) error {
	wt, err := g.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	logger.Debugf("Committed %s", hash)
	return nil
}

func (g *GitVersionControlRepository) Push(ctx context.Context, remote, branch string, force bool) error {
	ref := plumbing.NewBranchReferenceName(branch)
	refSpec := config.RefSpec(fmt.Sprintf("%s:%s", ref, ref))
	if force {
		refSpec = "+" + refSpec
	}

	err := g.repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{refSpec},
		Force:      force,
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push %q to %q: %w", branch, remote, err)
	}
	return nil
}

func (g *GitVersionControlRepository) SetRemoteURL(_ context.Context, remote, url string) error {
	cfg, err := g.repo.Config()
	if err != nil {
		return fmt.Errorf("failed to read git config: %w", err)
	}

	if existing, ok := cfg.Remotes[remote]; ok {
		existing.URLs = []string{url}
	} else {
		cfg.Remotes[remote] = &config.RemoteConfig{Name: remote, URLs: []string{url}}
	}

	if err = g.repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to write git config: %w", err)
	}
	return nil
}

func (g *GitVersionControlRepository) SetConfig(_ context.Context, key, value string) error {
	cfg, err := g.repo.Config()
	if err != nil {
		return fmt.Errorf("failed to read git config: %w", err)
	}

	switch key {
	case "user.name":
		cfg.User.Name = value
	case "user.email":
		cfg.User.Email = value
	default:
		section, option, ok := strings.Cut(key, ".")
		if !ok {
			return fmt.Errorf("invalid config key %q", key)
		}
		cfg.Raw.Section(section).SetOption(option, value)
	}

	if err = g.repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to write git config: %w", err)
	}
	return nil
}

// git runs the git CLI in the repository root.
func (g *GitVersionControlRepository) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.root

	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("git %s failed: %w\nOutput:\n%s", args[0], err, output)
	}
	return string(output), nil
}

// mergeArgs builds the git merge invocation. Strategy names a -X option of
// the default recursive/ort strategy ("theirs" is not a standalone strategy).
func mergeArgs(branch string, opts repositories.MergeOptions) []string {
	args := []string{"merge", "--no-edit"}
	if opts.Strategy != "" {
		args = append(args, "--strategy-option="+opts.Strategy)
	}
	if opts.Quiet {
		args = append(args, "--quiet")
	}
	return append(args, branch)
}
