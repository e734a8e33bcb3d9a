package repositories

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	domainRepos "github.com/rios0rios0/composer-update/internal/domain/repositories"
)

// ErrUnknownProvider is returned by Get for an unregistered provider name.
var ErrUnknownProvider = errors.New("unknown provider type")

// HostingFactory creates a HostingRepository for a token and optional API base URL.
type HostingFactory func(token, baseURL string) (domainRepos.HostingRepository, error)

// HostingRegistry manages all registered hosting provider implementations.
type HostingRegistry struct {
	providers map[string]HostingFactory
}

// NewHostingRegistry creates an empty hosting registry.
func NewHostingRegistry() *HostingRegistry {
	return &HostingRegistry{
		providers: make(map[string]HostingFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "github").
func (r *HostingRegistry) Register(name string, factory HostingFactory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the given name.
func (r *HostingRegistry) Get(name, token, baseURL string) (domainRepos.HostingRepository, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProvider, name, strings.Join(r.Names(), ", "))
	}
	return factory(token, baseURL)
}

// Names returns the registered provider names in sorted order.
func (r *HostingRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
