package config

import "github.com/urfave/cli/v3"

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string `masq:"secret"`
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN to report failures",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("CORESYNC_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Value:       "production",
			Destination: &c.Env,
			Sources:     cli.EnvVars("CORESYNC_SENTRY_ENV"),
		},
	}
}

// Slack holds run summary notification configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL to post run summaries",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("CORESYNC_SLACK_WEBHOOK_URL"),
		},
	}
}
