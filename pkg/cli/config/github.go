package config

import (
	"time"

	"github.com/m-mizutani/coresync/pkg/domain/interfaces"
	githubinfra "github.com/m-mizutani/coresync/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	Token           string `masq:"secret"`
	APIURL          string
	Timeout         time.Duration
	DownloadTimeout time.Duration
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token for API requests (raises the rate limit)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("CORESYNC_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API base URL",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("CORESYNC_GITHUB_API_URL"),
		},
		&cli.DurationFlag{
			Name:        "http-timeout",
			Usage:       "Timeout of a release listing request",
			Value:       30 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("CORESYNC_HTTP_TIMEOUT"),
		},
		&cli.DurationFlag{
			Name:        "download-timeout",
			Usage:       "Timeout of an archive download",
			Value:       10 * time.Minute,
			Destination: &c.DownloadTimeout,
			Sources:     cli.EnvVars("CORESYNC_DOWNLOAD_TIMEOUT"),
		},
	}
}

// NewClient builds a release client from the configuration
func (c *GitHub) NewClient() (interfaces.ReleaseClient, error) {
	opts := []githubinfra.Option{
		githubinfra.WithToken(c.Token),
	}
	if c.APIURL != "" {
		opts = append(opts, githubinfra.WithBaseURL(c.APIURL))
	}
	if c.Timeout > 0 {
		opts = append(opts, githubinfra.WithTimeout(c.Timeout))
	}
	if c.DownloadTimeout > 0 {
		opts = append(opts, githubinfra.WithDownloadTimeout(c.DownloadTimeout))
	}
	return githubinfra.NewClient(opts...)
}
