//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/composer-update/internal/domain/commands"
	"github.com/rios0rios0/composer-update/internal/domain/entities"
)

// StubUpdateCommand is a stub implementation of commands.Update.
type StubUpdateCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
}

var _ commands.Update = (*StubUpdateCommand)(nil)

func (s *StubUpdateCommand) Execute(_ context.Context, settings *entities.Settings) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	return s.ExecuteErr
}
