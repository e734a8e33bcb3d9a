package git

// MergeArgs exports mergeArgs for testing.
var MergeArgs = mergeArgs //nolint:gochecknoglobals // test export
