package entities

import "strings"

const (
	changeLineSeparator = " - "
	downloadingMarker   = "Downloading "
	footerMarker        = ":"
)

// LineStep transforms a sequence of output lines.
type LineStep func(lines []string) []string

// SummaryPipeline turns raw composer output into the per-package change list.
var SummaryPipeline = []LineStep{ //nolint:gochecknoglobals // immutable pipeline definition
	KeepContaining(changeLineSeparator),
	DropContaining(downloadingMarker),
	TakeUntilContaining(footerMarker),
}

// UpdateResult is the outcome of the dependency manager invocation.
type UpdateResult struct {
	Raw     string
	Summary string
}

// NewUpdateResult filters raw output with SummaryPipeline.
func NewUpdateResult(raw string) UpdateResult {
	return UpdateResult{Raw: raw, Summary: FilterOutput(raw, SummaryPipeline...)}
}

// FilterOutput splits raw into lines, applies steps in order and joins the
// remainder with a trailing newline.
func FilterOutput(raw string, steps ...LineStep) string {
	lines := strings.Split(raw, "\n")
	for _, step := range steps {
		lines = step(lines)
	}
	return strings.Join(lines, "\n") + "\n"
}

// KeepContaining keeps only the lines containing substr.
func KeepContaining(substr string) LineStep {
	return func(lines []string) []string {
		kept := make([]string, 0, len(lines))
		for _, line := range lines {
			if strings.Contains(line, substr) {
				kept = append(kept, line)
			}
		}
		return kept
	}
}

// DropContaining removes the lines containing substr.
func DropContaining(substr string) LineStep {
	return func(lines []string) []string {
		kept := make([]string, 0, len(lines))
		for _, line := range lines {
			if !strings.Contains(line, substr) {
				kept = append(kept, line)
			}
		}
		return kept
	}
}

// TakeUntilContaining keeps the lines before the first one containing substr.
func TakeUntilContaining(substr string) LineStep {
	return func(lines []string) []string {
		for i, line := range lines {
			if strings.Contains(line, substr) {
				return lines[:i]
			}
		}
		return lines
	}
}
