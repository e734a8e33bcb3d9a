package entities

import (
	"crypto/rand"
	"math/big"
	"slices"
)

const (
	// RandomBranchPrefix starts every branch name created in multi-branch mode.
	RandomBranchPrefix = "cu/"
	// RandomSuffixLength is the number of random characters after the prefix.
	RandomSuffixLength = 8
	// DefaultSingleBranchPostfix is appended to the parent branch in single-branch mode.
	DefaultSingleBranchPostfix = "-updated"

	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// NamingMode decides how the working branch is named across runs.
type NamingMode string

const (
	// NamingModeMulti creates an independent random branch on every run.
	NamingModeMulti NamingMode = "multi"
	// NamingModeSingle reuses one deterministic branch per parent branch.
	NamingModeSingle NamingMode = "single"
)

// BranchMode records how the working branch was obtained.
type BranchMode string

const (
	// BranchModeFresh means the branch is created from the current position.
	BranchModeFresh BranchMode = "fresh"
	// BranchModeMerged means an existing remote branch is checked out and the
	// parent is merged into it.
	BranchModeMerged BranchMode = "merged"
	// BranchModeReused means the working branch is the parent itself.
	BranchModeReused BranchMode = "reused"
)

// BranchPolicy is the branch-naming configuration of a run.
type BranchPolicy struct {
	Mode    NamingMode
	Postfix string
}

// WorkingBranch is the branch that receives the update commit for this run.
type WorkingBranch struct {
	Name           string
	BaseBranch     string
	ExistsOnRemote bool
	Mode           BranchMode
}

// PlanWorkingBranch decides which branch receives the update. The random
// generator is only consulted in multi-branch mode.
func PlanWorkingBranch(
	parent string,
	policy BranchPolicy,
	remoteBranches []string,
	random func() string,
) WorkingBranch {
	if policy.Mode != NamingModeSingle {
		return WorkingBranch{
			Name:       RandomBranchPrefix + random(),
			BaseBranch: parent,
			Mode:       BranchModeFresh,
		}
	}

	name := SingleBranchName(parent, policy.Postfix)
	exists := slices.Contains(remoteBranches, name)
	branch := WorkingBranch{
		Name:           name,
		BaseBranch:     parent,
		ExistsOnRemote: exists,
		Mode:           BranchModeFresh,
	}

	switch {
	case name == parent:
		branch.Mode = BranchModeReused
	case exists:
		branch.Mode = BranchModeMerged
	}
	return branch
}

// SingleBranchName is the deterministic branch name used in single-branch mode.
func SingleBranchName(parent, postfix string) string {
	return parent + postfix
}

// RandomSuffix returns RandomSuffixLength random alphanumeric characters.
func RandomSuffix() string {
	limit := big.NewInt(int64(len(alphanumeric)))
	buf := make([]byte, RandomSuffixLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic(err) // crypto/rand never fails on supported platforms
		}
		buf[i] = alphanumeric[n.Int64()]
	}
	return string(buf)
}
