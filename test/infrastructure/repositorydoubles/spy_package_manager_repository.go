//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/composer-update/internal/domain/repositories"
)

// SpyPackageManagerRepository implements repositories.PackageManagerRepository.
type SpyPackageManagerRepository struct {
	InstallErr   error
	UpdateOutput string
	UpdateErr    error
	SetTokenErr  error

	Calls            []string
	UpdatedPackages  []string
	WithDependencies bool
	TokenScope       string
	Token            string
}

var _ repositories.PackageManagerRepository = (*SpyPackageManagerRepository)(nil)

func (s *SpyPackageManagerRepository) Install(_ context.Context) (string, error) {
	s.Calls = append(s.Calls, "Install")
	return "", s.InstallErr
}

func (s *SpyPackageManagerRepository) Update(
	_ context.Context,
	packages []string,
	withDependencies bool,
) (string, error) {
	s.Calls = append(s.Calls, "Update")
	s.UpdatedPackages = packages
	s.WithDependencies = withDependencies
	return s.UpdateOutput, s.UpdateErr
}

func (s *SpyPackageManagerRepository) SetToken(_ context.Context, scope, token string) error {
	s.Calls = append(s.Calls, "SetToken")
	s.TokenScope = scope
	s.Token = token
	return s.SetTokenErr
}
