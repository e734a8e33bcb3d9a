package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/composer-update/internal/domain/entities"
	"github.com/rios0rios0/composer-update/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/composer-update/internal/infrastructure/repositories"
)

const (
	originRemote = "origin"
	manifestFile = "composer.json"
	lockFile     = "composer.lock"
)

// Update is the interface for the update command.
type Update interface {
	Execute(ctx context.Context, settings *entities.Settings) error
}

// UpdateCommand runs one dependency update: prepare the working branch, run
// composer, and publish any resulting changes as a pull request.
type UpdateCommand struct {
	hostingRegistry    *infraRepos.HostingRegistry
	openVersionControl repositories.VersionControlOpener
	newPackageManager  repositories.PackageManagerFactory
	clock              clockwork.Clock
	randomSuffix       func() string
}

// NewUpdateCommand creates a new UpdateCommand with its collaborators.
func NewUpdateCommand(
	hostingRegistry *infraRepos.HostingRegistry,
	openVersionControl repositories.VersionControlOpener,
	newPackageManager repositories.PackageManagerFactory,
	clock clockwork.Clock,
) *UpdateCommand {
	return &UpdateCommand{
		hostingRegistry:    hostingRegistry,
		openVersionControl: openVersionControl,
		newPackageManager:  newPackageManager,
		clock:              clock,
		randomSuffix:       entities.RandomSuffix,
	}
}

// session is the state shared by the stages of a single run.
type session struct {
	settings *entities.Settings
	repo     entities.Repository
	hosting  repositories.HostingRepository
	vcs      repositories.VersionControlRepository
	composer repositories.PackageManagerRepository
	branch   entities.WorkingBranch
	result   entities.UpdateResult
}

// Execute runs the whole update workflow. A missing manifest and an update
// without changes both end the run successfully.
func (it *UpdateCommand) Execute(ctx context.Context, settings *entities.Settings) error {
	logger.Info("init")

	if err := settings.Validate(); err != nil {
		return err
	}

	workDir := settings.WorkingDirectory()
	if !manifestExists(workDir) {
		logger.Infof("No %s and %s in %s, nothing to update", manifestFile, lockFile, workDir)
		return nil
	}

	s, err := it.setup(ctx, settings, workDir)
	if err != nil {
		return err
	}

	if err = it.runUpdate(ctx, s); err != nil {
		return err
	}

	hasChanges, err := s.vcs.HasChanges(ctx)
	if err != nil {
		return fmt.Errorf("failed to detect changes: %w", err)
	}
	if !hasChanges {
		logger.Info("no changes")
		return nil
	}

	return it.publish(ctx, s)
}

// setup authenticates, prepares the local repository and resolves the
// working branch.
func (it *UpdateCommand) setup(
	ctx context.Context,
	settings *entities.Settings,
	workDir string,
) (*session, error) {
	repo, err := settings.RepositoryEntity()
	if err != nil {
		return nil, err
	}

	hosting, err := it.hostingRegistry.Get(settings.Provider, settings.Token, settings.ProviderURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create hosting provider: %w", err)
	}

	authenticated, err := hosting.Authenticate(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate with %s: %w", hosting.Name(), err)
	}

	vcs, err := it.openVersionControl(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	parent, err := vcs.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to detect current branch: %w", err)
	}

	if err = vcs.SetRemoteURL(ctx, originRemote, hosting.CloneURL(*authenticated)); err != nil {
		return nil, fmt.Errorf("failed to set remote URL: %w", err)
	}
	if err = vcs.SetConfig(ctx, "user.name", settings.GitName); err != nil {
		return nil, fmt.Errorf("failed to set git user name: %w", err)
	}
	if err = vcs.SetConfig(ctx, "user.email", settings.GitEmail); err != nil {
		return nil, fmt.Errorf("failed to set git user email: %w", err)
	}

	branch, err := reconcileBranch(ctx, vcs, parent, settings.BranchPolicy(), it.randomSuffix)
	if err != nil {
		return nil, err
	}

	composer := it.newPackageManager(workDir, settings.ComposerBinary)
	if err = composer.SetToken(ctx, hosting.TokenScope(), settings.Token); err != nil {
		return nil, fmt.Errorf("failed to configure composer token: %w", err)
	}

	return &session{
		settings: settings,
		repo:     *authenticated,
		hosting:  hosting,
		vcs:      vcs,
		composer: composer,
		branch:   branch,
	}, nil
}

// runUpdate runs composer install then update and keeps the filtered output.
func (it *UpdateCommand) runUpdate(ctx context.Context, s *session) error {
	logger.Info("install")
	if _, err := s.composer.Install(ctx); err != nil {
		return fmt.Errorf("failed to run composer install: %w", err)
	}

	packages := s.settings.Packages()
	withDependencies := s.settings.WithDependencies()
	logger.Infof("update %v (with dependencies: %v)", packages, withDependencies)

	output, err := s.composer.Update(ctx, packages, withDependencies)
	if err != nil {
		return fmt.Errorf("failed to run composer update: %w", err)
	}

	s.result = entities.NewUpdateResult(output)
	logger.Debugf("composer update output:\n%s", s.result.Raw)
	logger.Info(s.result.Summary)
	return nil
}

// publish commits, force-pushes and opens the pull request unless an open
// one already tracks the single branch.
func (it *UpdateCommand) publish(ctx context.Context, s *session) error {
	today := it.clock.Now()
	prefix := s.settings.CommitPrefix

	logger.Info("commit")
	if err := s.vcs.AddAll(ctx); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	if err := s.vcs.Commit(ctx, entities.CommitMessage(prefix, today, s.result.Summary)); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	if err := s.vcs.Push(ctx, originRemote, s.branch.Name, true); err != nil {
		return fmt.Errorf("failed to push %q: %w", s.branch.Name, err)
	}

	mode := s.settings.BranchPolicy().Mode
	intent := entities.PullRequestIntent{
		Base:  s.settings.BaseBranch(s.branch.BaseBranch),
		Head:  s.branch.Name,
		Title: entities.PullRequestTitle(prefix, mode, today),
		Body:  s.result.Summary,
	}

	if mode == entities.NamingModeSingle {
		existing, err := s.hosting.ListPullRequests(ctx, s.repo, entities.PullRequestFilter{
			Base:  s.branch.BaseBranch,
			State: entities.PullRequestStateOpen,
		})
		if err != nil {
			return fmt.Errorf("failed to list pull requests: %w", err)
		}
		intent.Suppress = len(existing) > 0
	}

	if intent.Suppress {
		logger.Infof("An open pull request against %q already exists, skipping creation", s.branch.BaseBranch)
		return nil
	}

	logger.Info("Pull Request")
	pr, err := s.hosting.CreatePullRequest(ctx, s.repo, intent.Input())
	if err != nil {
		return fmt.Errorf("failed to create pull request: %w", err)
	}

	logger.Infof("Created PR #%d: %s", pr.ID, pr.URL)
	return nil
}

// manifestExists reports whether both composer.json and composer.lock exist.
func manifestExists(dir string) bool {
	for _, name := range []string{manifestFile, lockFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}
