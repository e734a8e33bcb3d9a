package composer

import "time"

// InstallArgs exports installArgs for testing.
var InstallArgs = installArgs //nolint:gochecknoglobals // test export

// UpdateArgs exports updateArgs for testing.
var UpdateArgs = updateArgs //nolint:gochecknoglobals // test export

// WithTimeouts overrides the process timeouts for testing.
func WithTimeouts(repo any, update, token time.Duration) {
	c := repo.(*ComposerPackageManagerRepository)
	c.updateTimeout = update
	c.tokenTimeout = token
}
