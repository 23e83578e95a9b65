package github

import (
	"context"

	"github.com/google/go-github/v84/github"
)

type Client interface {
	ListIssues(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
	CreateIssue(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

type wrapper struct {
	client *github.Client
}

func (w *wrapper) ListIssues(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error) {
	return w.client.Issues.ListByRepo(ctx, owner, repo, opts)
}

func (w *wrapper) CreateIssue(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error) {
	return w.client.Issues.Create(ctx, owner, repo, issue)
}
