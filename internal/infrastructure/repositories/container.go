package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/composer-update/internal/domain/entities"
	domainRepos "github.com/rios0rios0/composer-update/internal/domain/repositories"
	composerRepo "github.com/rios0rios0/composer-update/internal/infrastructure/repositories/composer"
	gitRepo "github.com/rios0rios0/composer-update/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/composer-update/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/composer-update/internal/infrastructure/repositories/gitlab"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register hosting registry with all provider factories
	if err := container.Provide(func() *HostingRegistry {
		reg := NewHostingRegistry()
		reg.Register(entities.ProviderGitHub, ghRepo.NewHostingRepository)
		reg.Register(entities.ProviderGitLab, glRepo.NewHostingRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.VersionControlOpener {
		return gitRepo.Open
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.PackageManagerFactory {
		return composerRepo.NewPackageManagerRepository
	}); err != nil {
		return err
	}

	return nil
}
