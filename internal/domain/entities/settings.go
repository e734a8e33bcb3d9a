package entities

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sethvargo/go-envconfig"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// ProviderGitHub selects the GitHub hosting backend.
	ProviderGitHub = "github"
	// ProviderGitLab selects the GitLab hosting backend.
	ProviderGitLab = "gitlab"

	defaultComposerBinary = "composer"
)

var (
	// ErrInvalidRepository is returned when the repository identifier is not owner/name.
	ErrInvalidRepository = errors.New("repository must be in the form owner/name")
	// ErrConfigNotFound is returned by FindConfigFile when no settings file exists.
	ErrConfigNotFound = errors.New("config file not found in default locations")
)

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Toggle is a boolean switch that is on when the variable is set to anything
// other than an explicit "off" value.
type Toggle bool

// EnvDecode implements envconfig.Decoder. An empty value leaves the toggle untouched.
func (t *Toggle) EnvDecode(val string) error {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "":
	case "0", "false", "no", "off":
		*t = false
	default:
		*t = true
	}
	return nil
}

// Settings is resolved once per invocation and is read-only afterwards.
type Settings struct {
	Repository          string `yaml:"repository"            env:"GITHUB_REPOSITORY,overwrite"`
	Workspace           string `yaml:"workspace"             env:"GITHUB_WORKSPACE,overwrite"`
	ComposerPath        string `yaml:"composer_path"         env:"COMPOSER_PATH,overwrite"`
	ComposerPackages    string `yaml:"composer_packages"     env:"COMPOSER_PACKAGES,overwrite"`
	ComposerBinary      string `yaml:"composer_binary"       env:"COMPOSER_BINARY,overwrite,default=composer"`
	Token               string `yaml:"token"                 env:"GITHUB_TOKEN,overwrite"`
	GitName             string `yaml:"git_name"              env:"GIT_NAME,overwrite,default=cu"`
	GitEmail            string `yaml:"git_email"             env:"GIT_EMAIL,overwrite,default=cu@composer-update"`
	SingleBranch        Toggle `yaml:"single_branch"         env:"APP_SINGLE_BRANCH,overwrite"`
	SingleBranchPostfix string `yaml:"single_branch_postfix" env:"APP_SINGLE_BRANCH_POSTFIX,overwrite,default=-updated"`
	CommitPrefix        string `yaml:"commit_prefix"         env:"GIT_COMMIT_PREFIX,overwrite"`
	Ref                 string `yaml:"ref"                   env:"GITHUB_REF,overwrite"`
	Provider            string `yaml:"provider"              env:"APP_PROVIDER,overwrite,default=github"`
	ProviderURL         string `yaml:"provider_url"          env:"APP_PROVIDER_URL,overwrite"`
}

// NewSettings loads the optional YAML file at path (skipped when empty) and
// overlays the process environment on top of it.
func NewSettings(ctx context.Context, path string) (*Settings, error) {
	return NewSettingsWithLookuper(ctx, path, envconfig.OsLookuper())
}

// NewSettingsWithLookuper is NewSettings with an explicit environment source.
func NewSettingsWithLookuper(
	ctx context.Context,
	path string,
	lookuper envconfig.Lookuper,
) (*Settings, error) {
	var settings Settings

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
		settings.Token = resolveToken(settings.Token)
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &settings,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	settings.applyFallbacks()

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// applyFallbacks restores the defaults of keys that a CI job may pass as set
// but empty. An empty postfix stays empty: it selects the parent branch itself.
func (s *Settings) applyFallbacks() {
	if s.Provider == "" {
		s.Provider = ProviderGitHub
	}
	if s.ComposerBinary == "" {
		s.ComposerBinary = defaultComposerBinary
	}
}

// Validate checks for required configuration values.
func (s *Settings) Validate() error {
	if _, _, err := SplitRepository(s.Repository); err != nil {
		return err
	}
	if s.Token == "" {
		return errors.New("token is required (set GITHUB_TOKEN or token in the config file)")
	}
	switch s.Provider {
	case ProviderGitHub, ProviderGitLab:
	default:
		return fmt.Errorf("unsupported provider %q", s.Provider)
	}
	return nil
}

// WorkingDirectory is the directory that holds composer.json.
func (s *Settings) WorkingDirectory() string {
	return filepath.Join(s.Workspace, s.ComposerPath)
}

// Packages returns the explicit package list to restrict the update to.
func (s *Settings) Packages() []string {
	return strings.Fields(s.ComposerPackages)
}

// WithDependencies mirrors the package list: an explicit list always
// updates its dependencies too.
func (s *Settings) WithDependencies() bool {
	return s.ComposerPackages != ""
}

// BranchPolicy returns the branch-naming policy for this run.
func (s *Settings) BranchPolicy() BranchPolicy {
	mode := NamingModeMulti
	if s.SingleBranch {
		mode = NamingModeSingle
	}
	return BranchPolicy{Mode: mode, Postfix: s.SingleBranchPostfix}
}

// BaseBranch is the pull request base: the ref name after its last slash,
// or fallback when no ref was given.
func (s *Settings) BaseBranch(fallback string) string {
	if s.Ref == "" {
		return fallback
	}
	return s.Ref[strings.LastIndex(s.Ref, "/")+1:]
}

// RepositoryEntity builds the hosting repository identifier.
func (s *Settings) RepositoryEntity() (Repository, error) {
	owner, name, err := SplitRepository(s.Repository)
	if err != nil {
		return Repository{}, err
	}
	return Repository{
		ID:           s.Repository,
		Name:         name,
		Organization: owner,
		ProviderName: s.Provider,
	}, nil
}

// SplitRepository splits "owner/name" at its last slash so that GitLab
// subgroups stay part of the owner.
func SplitRepository(full string) (string, string, error) {
	idx := strings.LastIndex(full, "/")
	if idx <= 0 || idx == len(full)-1 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepository, full)
	}
	return full[:idx], full[idx+1:], nil
}

// FindConfigFile searches for a settings file in standard locations.
func FindConfigFile() (string, error) {
	locations := []string{".", ".config", "configs"}
	patterns := []string{
		".composer-update.yaml",
		".composer-update.yml",
		"composer-update.yaml",
		"composer-update.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", ErrConfigNotFound
}

// resolveToken expands ${VAR} references and, if the result names an
// existing file, reads the token from it.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		return strings.TrimSpace(string(data))
	}

	return resolved
}
