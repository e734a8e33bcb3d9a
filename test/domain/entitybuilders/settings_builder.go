//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/composer-update/internal/domain/entities"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	repository       string
	workspace        string
	composerPath     string
	composerPackages string
	token            string
	singleBranch     bool
	postfix          string
	commitPrefix     string
	ref              string
	provider         string
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
func NewSettingsBuilder() *SettingsBuilder {
	b := &SettingsBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *SettingsBuilder) defaults() {
	b.repository = "acme/shop"
	b.workspace = ""
	b.composerPath = ""
	b.composerPackages = ""
	b.token = "t0k3n"
	b.singleBranch = false
	b.postfix = entities.DefaultSingleBranchPostfix
	b.commitPrefix = ""
	b.ref = ""
	b.provider = entities.ProviderGitHub
}

// WithRepository sets the owner/name identifier.
func (b *SettingsBuilder) WithRepository(repository string) *SettingsBuilder {
	b.repository = repository
	return b
}

// WithWorkspace sets the checkout root.
func (b *SettingsBuilder) WithWorkspace(workspace string) *SettingsBuilder {
	b.workspace = workspace
	return b
}

// WithComposerPath sets the manifest directory relative to the workspace.
func (b *SettingsBuilder) WithComposerPath(path string) *SettingsBuilder {
	b.composerPath = path
	return b
}

// WithComposerPackages sets the whitespace-separated package list.
func (b *SettingsBuilder) WithComposerPackages(packages string) *SettingsBuilder {
	b.composerPackages = packages
	return b
}

// WithToken sets the hosting token.
func (b *SettingsBuilder) WithToken(token string) *SettingsBuilder {
	b.token = token
	return b
}

// WithSingleBranch enables single-branch mode.
func (b *SettingsBuilder) WithSingleBranch() *SettingsBuilder {
	b.singleBranch = true
	return b
}

// WithPostfix sets the single-branch postfix.
func (b *SettingsBuilder) WithPostfix(postfix string) *SettingsBuilder {
	b.postfix = postfix
	return b
}

// WithCommitPrefix sets the commit and title prefix.
func (b *SettingsBuilder) WithCommitPrefix(prefix string) *SettingsBuilder {
	b.commitPrefix = prefix
	return b
}

// WithRef sets the triggering ref.
func (b *SettingsBuilder) WithRef(ref string) *SettingsBuilder {
	b.ref = ref
	return b
}

// WithProvider sets the hosting provider name.
func (b *SettingsBuilder) WithProvider(provider string) *SettingsBuilder {
	b.provider = provider
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	return &entities.Settings{
		Repository:          b.repository,
		Workspace:           b.workspace,
		ComposerPath:        b.composerPath,
		ComposerPackages:    b.composerPackages,
		ComposerBinary:      "composer",
		Token:               b.token,
		GitName:             "cu",
		GitEmail:            "cu@composer-update",
		SingleBranch:        entities.Toggle(b.singleBranch),
		SingleBranchPostfix: b.postfix,
		CommitPrefix:        b.commitPrefix,
		Ref:                 b.ref,
		Provider:            b.provider,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	clone := *b
	clone.BaseBuilder = b.BaseBuilder.Clone().(*testkit.BaseBuilder)
	return &clone
}
