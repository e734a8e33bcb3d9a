package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// PullRequestInput is re-exported from gitforge.
type PullRequestInput = gitforgeEntities.PullRequestInput

// PullRequest is re-exported from gitforge.
type PullRequest = gitforgeEntities.PullRequest

// PullRequestStateOpen filters pull requests that are still open.
const PullRequestStateOpen = "open"

// PullRequestFilter narrows a pull request listing.
type PullRequestFilter struct {
	Base  string
	State string
}

// PullRequestIntent is the decision of whether and how to open a pull request.
type PullRequestIntent struct {
	Base     string
	Head     string
	Title    string
	Body     string
	Suppress bool
}

// Input converts the intent into the provider request.
func (i PullRequestIntent) Input() PullRequestInput {
	return PullRequestInput{
		SourceBranch: i.Head,
		TargetBranch: i.Base,
		Title:        i.Title,
		Description:  i.Body,
	}
}
