package entities

import (
	"github.com/jonboulle/clockwork"
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Settings requires a config file path and is built by the controllers layer
	return container.Provide(clockwork.NewRealClock)
}
