package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/composer-update/internal/domain/entities"
	"github.com/rios0rios0/composer-update/internal/domain/repositories"
)

// reconcileBranch resolves the working branch for this run and leaves it
// checked out. A failed branch listing counts as "branch absent".
func reconcileBranch(
	ctx context.Context,
	vcs repositories.VersionControlRepository,
	parent string,
	policy entities.BranchPolicy,
	random func() string,
) (entities.WorkingBranch, error) {
	var remoteBranches []string
	if policy.Mode == entities.NamingModeSingle {
		branches, err := vcs.ListBranches(ctx)
		if err != nil {
			logger.Warnf("Failed to list remote branches, assuming none exist: %v", err)
		}
		remoteBranches = branches

		logger.Infof(
			"Using single-branch approach. Branch name: %s",
			entities.SingleBranchName(parent, policy.Postfix),
		)
	}

	branch := entities.PlanWorkingBranch(parent, policy, remoteBranches, random)

	switch branch.Mode {
	case entities.BranchModeFresh:
		logger.Infof("Creating branch %s", branch.Name)
		if err := vcs.CreateBranch(ctx, branch.Name, true); err != nil {
			return branch, fmt.Errorf("failed to create branch %q: %w", branch.Name, err)
		}
	case entities.BranchModeMerged:
		if err := vcs.CheckoutBranch(ctx, branch.Name); err != nil {
			return branch, fmt.Errorf("failed to check out branch %q: %w", branch.Name, err)
		}
		logger.Infof("Merging from %s", parent)
		if err := vcs.Merge(ctx, parent, repositories.MergeOptions{
			Strategy: repositories.MergeStrategyTheirs,
			Quiet:    true,
		}); err != nil {
			return branch, fmt.Errorf("failed to merge %q into %q: %w", parent, branch.Name, err)
		}
	case entities.BranchModeReused:
		logger.Infof("Working branch is the current branch %s", branch.Name)
	}

	return branch, nil
}
