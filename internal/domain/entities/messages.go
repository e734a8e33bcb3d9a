package entities

import "time"

const isoDate = "2006-01-02"

// CommitMessage is the update commit message: subject line, blank line, summary.
func CommitMessage(prefix string, today time.Time, summary string) string {
	return prefix + "composer update " + today.Format(isoDate) + "\n\n" + summary
}

// PullRequestTitle omits the date in single-branch mode so the title stays
// stable across runs.
func PullRequestTitle(prefix string, mode NamingMode, today time.Time) string {
	if mode == NamingModeSingle {
		return prefix + "Composer update"
	}
	return prefix + "Composer update " + today.Format(isoDate)
}
