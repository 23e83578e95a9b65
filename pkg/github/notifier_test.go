package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v84/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"patch-checker/pkg/config"
	"patch-checker/pkg/notify"
	"patch-checker/pkg/version"
)

func testReport(kind version.Kind, current, latest string) notify.Report {
	return notify.Report{
		Outcome: version.Outcome{
			Kind:    kind,
			Current: version.MustParse(current),
			Latest:  version.MustParse(latest),
		},
		Link: "https://example.com/docs",
	}
}

func newTestNotifier(m *MockClient) *IssueNotifier {
	return &IssueNotifier{
		client: m,
		owner:  "my-org",
		repo:   "infra",
		labels: []string{"patching"},
		logger: zap.NewNop(),
	}
}

func TestIssueNotifier_Notify(t *testing.T) {
	title := "Update available: patch #13.5"
	tests := []struct {
		name      string
		report    notify.Report
		setupMock func(m *MockClient)
		wantErr   bool
	}{
		{
			name:      "up to date does nothing",
			report:    testReport(version.KindUpToDate, "13.0", "13.0"),
			setupMock: func(m *MockClient) {},
		},
		{
			name:      "anomaly does nothing",
			report:    testReport(version.KindAnomaly, "13.5", "13.0"),
			setupMock: func(m *MockClient) {},
		},
		{
			name:   "update opens an issue",
			report: testReport(version.KindUpdateAvailable, "13.0", "13.5"),
			setupMock: func(m *MockClient) {
				m.On("ListIssues", mock.Anything, "my-org", "infra", mock.MatchedBy(func(o *github.IssueListByRepoOptions) bool {
					return o.State == "open" && len(o.Labels) == 1 && o.Labels[0] == "patching"
				})).Return([]*github.Issue{{Title: github.Ptr("Update available: patch #13.4")}}, &github.Response{}, nil)
				m.On("CreateIssue", mock.Anything, "my-org", "infra", mock.MatchedBy(func(r *github.IssueRequest) bool {
					return r.GetTitle() == title && r.Labels != nil && (*r.Labels)[0] == "patching"
				})).Return(&github.Issue{Number: github.Ptr(7)}, &github.Response{}, nil)
			},
		},
		{
			name:   "existing open issue on a later page is not duplicated",
			report: testReport(version.KindUpdateAvailable, "13.0", "13.5"),
			setupMock: func(m *MockClient) {
				m.On("ListIssues", mock.Anything, "my-org", "infra", mock.MatchedBy(func(o *github.IssueListByRepoOptions) bool {
					return o.Page == 0
				})).Return([]*github.Issue{{Title: github.Ptr("other")}}, &github.Response{NextPage: 2}, nil).Once()
				m.On("ListIssues", mock.Anything, "my-org", "infra", mock.MatchedBy(func(o *github.IssueListByRepoOptions) bool {
					return o.Page == 2
				})).Return([]*github.Issue{{Title: github.Ptr(title)}}, &github.Response{}, nil).Once()
			},
		},
		{
			name:   "list failure is returned",
			report: testReport(version.KindUpdateAvailable, "13.0", "13.5"),
			setupMock: func(m *MockClient) {
				m.On("ListIssues", mock.Anything, "my-org", "infra", mock.Anything).
					Return(nil, nil, errors.New("401 Bad credentials"))
			},
			wantErr: true,
		},
		{
			name:   "create failure is returned",
			report: testReport(version.KindUpdateAvailable, "13.0", "13.5"),
			setupMock: func(m *MockClient) {
				m.On("ListIssues", mock.Anything, "my-org", "infra", mock.Anything).
					Return([]*github.Issue{}, &github.Response{}, nil)
				m.On("CreateIssue", mock.Anything, "my-org", "infra", mock.Anything).
					Return(nil, nil, errors.New("410 Issues are disabled"))
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &MockClient{}
			tt.setupMock(m)

			err := newTestNotifier(m).Notify(context.Background(), tt.report)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			m.AssertExpectations(t)
			if tt.report.Outcome.Kind != version.KindUpdateAvailable {
				m.AssertNotCalled(t, "ListIssues", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestIssueNotifier_NotifyOverHTTP(t *testing.T) {
	var created github.IssueRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/my-org/infra/issues", func(res http.ResponseWriter, req *http.Request) {
		res.Header().Set("Content-Type", "application/json")
		if req.Method == http.MethodGet {
			_, _ = res.Write([]byte(`[]`))
			return
		}
		assert.Equal(t, "Bearer ghp_token", req.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&created))
		res.WriteHeader(http.StatusCreated)
		_, _ = res.Write([]byte(`{"number": 12, "html_url": "https://github.com/my-org/infra/issues/12"}`))
	})
	testServer := httptest.NewServer(mux)
	t.Cleanup(testServer.Close)

	n, err := New(config.GitHubConfig{Enabled: true, Owner: "my-org", Repo: "infra", Token: "ghp_token"}, time.Second, zap.NewNop())
	require.NoError(t, err)
	baseURL, err := url.Parse(testServer.URL + "/")
	require.NoError(t, err)
	n.client.(*wrapper).client.BaseURL = baseURL

	err = n.Notify(context.Background(), testReport(version.KindUpdateAvailable, "13.0", "13.5"))

	require.NoError(t, err)
	assert.Equal(t, "Update available: patch #13.5", created.GetTitle())
	assert.Contains(t, created.GetBody(), "https://example.com/docs")
}

func TestNew_EnterpriseURL(t *testing.T) {
	n, err := New(config.GitHubConfig{Url: "https://github.mycorp.com", Token: "t"}, time.Second, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "https://github.mycorp.com/api/v3/", n.client.(*wrapper).client.BaseURL.String())

	_, err = New(config.GitHubConfig{Url: "::not a url"}, time.Second, zap.NewNop())
	assert.Error(t, err)
}
