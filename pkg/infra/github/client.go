package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/coresync/pkg/domain/interfaces"
	"github.com/m-mizutani/coresync/pkg/domain/model"
	"github.com/m-mizutani/coresync/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultDownloadTimeout = 10 * time.Minute
	releasesPerPage        = 30
)

// config holds internal client configuration
type config struct {
	token           string
	baseURL         string
	timeout         time.Duration
	downloadTimeout time.Duration
}

// Option is a functional option for the client
type Option func(*config)

// WithToken sets a token sent as bearer authorization
func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithBaseURL sets the REST API base URL, e.g. for GitHub Enterprise
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the timeout of API requests
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithDownloadTimeout sets the timeout of asset downloads
func WithDownloadTimeout(d time.Duration) Option {
	return func(c *config) {
		c.downloadTimeout = d
	}
}

type client struct {
	githubClient   *github.Client
	downloadClient *http.Client
	token          string
}

// NewClient creates a GitHub release client
func NewClient(opts ...Option) (interfaces.ReleaseClient, error) {
	cfg := &config{
		timeout:         defaultTimeout,
		downloadTimeout: defaultDownloadTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	githubClient := github.NewClient(&http.Client{Timeout: cfg.timeout})
	if cfg.token != "" {
		githubClient = githubClient.WithAuthToken(cfg.token)
	}
	githubClient.UserAgent = fmt.Sprintf("%s/%s", types.AppName, types.Version)

	if cfg.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.baseURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API base URL", goerr.V("base_url", cfg.baseURL))
		}
		githubClient.BaseURL = u
	}

	return &client{
		githubClient: githubClient,
		downloadClient: &http.Client{
			Timeout:       cfg.downloadTimeout,
			CheckRedirect: dropAuthOnHostChange,
		},
		token: cfg.token,
	}, nil
}

// dropAuthOnHostChange keeps the token on the asset host only. Browser
// download URLs redirect to a CDN that must not see it.
func dropAuthOnHostChange(req *http.Request, via []*http.Request) error {
	if len(via) >= 10 {
		return errors.New("stopped after 10 redirects")
	}
	if req.URL.Host != via[0].URL.Host {
		req.Header.Del("Authorization")
	}
	return nil
}

// ListReleases returns the first page of releases of owner/project
func (c *client) ListReleases(ctx context.Context, owner, project string) ([]*model.ReleaseInfo, error) {
	releases, _, err := c.githubClient.Repositories.ListReleases(ctx, owner, project, &github.ListOptions{
		PerPage: releasesPerPage,
	})
	if err != nil {
		if msg, ok := apiErrorMessage(err); ok {
			return nil, goerr.Wrap(err, msg,
				goerr.T(types.ErrTagAPIError),
				goerr.V("owner", owner),
				goerr.V("project", project),
			)
		}
		return nil, goerr.Wrap(err, "failed to list releases",
			goerr.V("owner", owner),
			goerr.V("project", project),
		)
	}

	result := make([]*model.ReleaseInfo, 0, len(releases))
	for _, r := range releases {
		result = append(result, toReleaseInfo(r))
	}
	return result, nil
}

// apiErrorMessage returns the message of an error object returned by the API
func apiErrorMessage(err error) (string, bool) {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr.Message, true
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return abuseErr.Message, true
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		if errResp.Message == "" && errResp.Response != nil {
			return fmt.Sprintf("GitHub API returned status %d", errResp.Response.StatusCode), true
		}
		return errResp.Message, true
	}

	return "", false
}

func toReleaseInfo(r *github.RepositoryRelease) *model.ReleaseInfo {
	info := &model.ReleaseInfo{
		Tag:          r.GetTagName(),
		IsDraft:      r.GetDraft(),
		IsPrerelease: r.GetPrerelease(),
		Assets:       make([]*model.AssetInfo, 0, len(r.Assets)),
	}
	for _, a := range r.Assets {
		info.Assets = append(info.Assets, &model.AssetInfo{
			Name:        a.GetName(),
			ContentType: a.GetContentType(),
			DownloadURL: a.GetBrowserDownloadURL(),
		})
	}
	return info
}

// DownloadAsset downloads a release asset following redirects
func (c *client) DownloadAsset(ctx context.Context, downloadURL string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create download request", goerr.V("url", downloadURL))
	}
	req.Header.Set("Accept", "application/octet-stream")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to download asset", goerr.V("url", downloadURL))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, goerr.New("unexpected status code for asset download",
			goerr.V("url", downloadURL),
			goerr.V("status", resp.StatusCode),
		)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, goerr.Wrap(err, "failed to read asset body", goerr.V("url", downloadURL))
	}
	return n, nil
}
