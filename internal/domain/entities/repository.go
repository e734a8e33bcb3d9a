package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// Repository is re-exported from gitforge.
type Repository = gitforgeEntities.Repository

// FullName returns "owner/name".
func FullName(repo Repository) string {
	return repo.Organization + "/" + repo.Name
}
