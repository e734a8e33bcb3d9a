//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/composer-update/internal/domain/repositories"
)

// MergeCall records one Merge invocation.
type MergeCall struct {
	Branch  string
	Options repositories.MergeOptions
}

// PushCall records one Push invocation.
type PushCall struct {
	Remote string
	Branch string
	Force  bool
}

// SpyVersionControlRepository implements repositories.VersionControlRepository
// as a configurable spy. Calls records every method name in invocation order.
type SpyVersionControlRepository struct {
	CurrentBranchName string
	CurrentBranchErr  error
	Branches          []string
	ListErr           error
	CreateErr         error
	CheckoutErr       error
	MergeErr          error
	HasChangesResult  bool
	HasChangesErr     error
	CommitErr         error
	PushErr           error
	SetRemoteURLErr   error
	SetConfigErr      error

	Calls           []string
	CreatedBranches []string
	CheckedOut      []string
	Merges          []MergeCall
	CommitMessages  []string
	Pushes          []PushCall
	RemoteURLs      map[string]string
	Config          map[string]string
}

var _ repositories.VersionControlRepository = (*SpyVersionControlRepository)(nil)

func (s *SpyVersionControlRepository) CurrentBranch(_ context.Context) (string, error) {
	s.Calls = append(s.Calls, "CurrentBranch")
	return s.CurrentBranchName, s.CurrentBranchErr
}

func (s *SpyVersionControlRepository) ListBranches(_ context.Context) ([]string, error) {
	s.Calls = append(s.Calls, "ListBranches")
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.Branches, nil
}

func (s *SpyVersionControlRepository) CreateBranch(_ context.Context, name string, _ bool) error {
	s.Calls = append(s.Calls, "CreateBranch")
	s.CreatedBranches = append(s.CreatedBranches, name)
	return s.CreateErr
}

func (s *SpyVersionControlRepository) CheckoutBranch(_ context.Context, name string) error {
	s.Calls = append(s.Calls, "CheckoutBranch")
	s.CheckedOut = append(s.CheckedOut, name)
	return s.CheckoutErr
}

func (s *SpyVersionControlRepository) Merge(
	_ context.Context,
	branch string,
	opts repositories.MergeOptions,
) error {
	s.Calls = append(s.Calls, "Merge")
	s.Merges = append(s.Merges, MergeCall{Branch: branch, Options: opts})
	return s.MergeErr
}

func (s *SpyVersionControlRepository) HasChanges(_ context.Context) (bool, error) {
	s.Calls = append(s.Calls, "HasChanges")
	return s.HasChangesResult, s.HasChangesErr
}

func (s *SpyVersionControlRepository) AddAll(_ context.Context) error {
	s.Calls = append(s.Calls, "AddAll")
	return nil
}

func (s *SpyVersionControlRepository) Commit(_ context.Context, message string) error {
	s.Calls = append(s.Calls, "Commit")
	s.CommitMessages = append(s.CommitMessages, message)
	return s.CommitErr
}

func (s *SpyVersionControlRepository) Push(_ context.Context, remote, branch string, force bool) error {
	s.Calls = append(s.Calls, "Push")
	s.Pushes = append(s.Pushes, PushCall{Remote: remote, Branch: branch, Force: force})
	return s.PushErr
}

func (s *SpyVersionControlRepository) SetRemoteURL(_ context.Context, remote, url string) error {
	s.Calls = append(s.Calls, "SetRemoteURL")
	if s.RemoteURLs == nil {
		s.RemoteURLs = make(map[string]string)
	}
	s.RemoteURLs[remote] = url
	return s.SetRemoteURLErr
}

func (s *SpyVersionControlRepository) SetConfig(_ context.Context, key, value string) error {
	s.Calls = append(s.Calls, "SetConfig")
	if s.Config == nil {
		s.Config = make(map[string]string)
	}
	s.Config[key] = value
	return s.SetConfigErr
}
