package commands

// ReconcileBranch exports reconcileBranch for testing.
var ReconcileBranch = reconcileBranch //nolint:gochecknoglobals // test export

// ManifestExists exports manifestExists for testing.
var ManifestExists = manifestExists //nolint:gochecknoglobals // test export

// WithRandomSuffix replaces the branch suffix generator for testing.
func (it *UpdateCommand) WithRandomSuffix(random func() string) *UpdateCommand {
	it.randomSuffix = random
	return it
}
