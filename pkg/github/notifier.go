// Package github opens an issue in a tracking repository when a newer patch is advertised,
// so the upgrade gets scheduled like any other piece of work.
// Both public and enterprise GitHub are supported.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v84/github"
	"go.uber.org/zap"

	"patch-checker/pkg/config"
	"patch-checker/pkg/notify"
	"patch-checker/pkg/version"
)

type IssueNotifier struct {
	client Client
	owner  string
	repo   string
	labels []string
	logger *zap.Logger
}

func New(cfg config.GitHubConfig, timeout time.Duration, logger *zap.Logger) (*IssueNotifier, error) {
	client := github.NewClient(httpClient(timeout))
	if cfg.Token != "" {
		client = client.WithAuthToken(cfg.Token)
	}
	if cfg.Url != "" {
		// Derive the bare host from the enterprise url, e.g. "https://github.mycorp.com"
		u, err := url.Parse(cfg.Url)
		if err != nil || u.Hostname() == "" {
			return nil, fmt.Errorf("invalid enterprise url: '%s'", cfg.Url)
		}
		host := fmt.Sprintf("%s://%s", u.Scheme, u.Hostname())
		client, err = client.WithEnterpriseURLs(
			host,
			strings.ReplaceAll(host, "https://", "https://uploads."),
		)
		if err != nil {
			return nil, fmt.Errorf("can't create GitHub client: %s", err)
		}
	}

	return &IssueNotifier{
		client: &wrapper{client},
		owner:  cfg.Owner,
		repo:   cfg.Repo,
		labels: cfg.Labels,
		logger: logger,
	}, nil
}

func httpClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Notify opens an issue for an available update unless an open issue with the same title exists.
func (n *IssueNotifier) Notify(ctx context.Context, report notify.Report) error {
	if report.Outcome.Kind != version.KindUpdateAvailable {
		return nil
	}
	title := report.Title()

	exists, err := n.issueExists(ctx, title)
	if err != nil {
		return err
	}
	if exists {
		n.logger.Info("issue already open", zap.String("title", title), zap.String("repo", n.owner+"/"+n.repo))
		return nil
	}

	request := &github.IssueRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(issueBody(report)),
	}
	if len(n.labels) != 0 {
		request.Labels = &n.labels
	}
	issue, _, err := n.client.CreateIssue(ctx, n.owner, n.repo, request)
	if err != nil {
		return fmt.Errorf("can't open issue in '%s/%s': %w", n.owner, n.repo, err)
	}
	n.logger.Info("issue opened", zap.String("url", issue.GetHTMLURL()), zap.Int("number", issue.GetNumber()))
	return nil
}

func (n *IssueNotifier) issueExists(ctx context.Context, title string) (bool, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "open",
		Labels:      n.labels,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		issues, resp, err := n.client.ListIssues(ctx, n.owner, n.repo, opts)
		if err != nil {
			return false, fmt.Errorf("can't list issues in '%s/%s': %w", n.owner, n.repo, err)
		}
		for _, issue := range issues {
			if issue.GetTitle() == title {
				return true, nil
			}
		}
		if resp == nil || resp.NextPage == 0 {
			return false, nil
		}
		opts.Page = resp.NextPage
	}
}

func issueBody(report notify.Report) string {
	return fmt.Sprintf("%s\n\n- installed: `%s`\n- advertised: `%s`\n- update page: %s\n",
		report.Message(), report.Outcome.Current, report.Outcome.Latest, report.Link)
}
