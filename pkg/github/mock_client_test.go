package github

import (
	"context"

	"github.com/google/go-github/v84/github"
	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) ListIssues(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	issues, _ := args.Get(0).([]*github.Issue)
	resp, _ := args.Get(1).(*github.Response)
	return issues, resp, args.Error(2)
}

func (m *MockClient) CreateIssue(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, issue)
	created, _ := args.Get(0).(*github.Issue)
	resp, _ := args.Get(1).(*github.Response)
	return created, resp, args.Error(2)
}
