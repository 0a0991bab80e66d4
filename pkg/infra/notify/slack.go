package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/coresync/pkg/domain/interfaces"
	"github.com/m-mizutani/coresync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

type slackNotifier struct {
	webhookURL string
}

// NewSlack creates a Notifier posting run summaries to a Slack incoming webhook
func NewSlack(webhookURL string) interfaces.Notifier {
	return &slackNotifier{webhookURL: webhookURL}
}

// Notify posts a summary when something was updated or failed. Runs where
// everything was up to date are not posted.
func (n *slackNotifier) Notify(ctx context.Context, summary *model.RunSummary) error {
	text := FormatSummary(summary)
	if text == "" {
		return nil
	}

	if err := slack.PostWebhookContext(ctx, n.webhookURL, &slack.WebhookMessage{Text: text}); err != nil {
		return goerr.Wrap(err, "failed to post slack webhook")
	}
	return nil
}

// FormatSummary renders the updated, pending and failed entries of a run.
// It returns an empty string when there is nothing to report.
func FormatSummary(summary *model.RunSummary) string {
	var lines []string
	for _, r := range summary.Results {
		switch r.Status {
		case model.EntryUpdated:
			lines = append(lines, fmt.Sprintf("• updated %s to %s", r.Entry, r.Tag))
		case model.EntryPending:
			lines = append(lines, fmt.Sprintf("• %s has update %s", r.Entry, r.Tag))
		case model.EntryFailed:
			lines = append(lines, fmt.Sprintf("• failed %s: %v", r.Entry, r.Err))
		}
	}
	if len(lines) == 0 {
		return ""
	}

	header := fmt.Sprintf("coresync run %s", summary.RunID)
	return header + "\n" + strings.Join(lines, "\n")
}
