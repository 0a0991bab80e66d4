package notify

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/coresync/pkg/domain/model"
	"github.com/m-mizutani/coresync/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const sentryFlushTimeout = 2 * time.Second

// Sentry reports entry failures to Sentry
type Sentry struct {
	hub *sentry.Hub
}

// NewSentry initializes a Sentry client for dsn
func NewSentry(dsn, env string) (*Sentry, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     types.AppName + "@" + types.Version,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry client")
	}

	return &Sentry{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// ReportError captures err tagged with the entry's repository
func (s *Sentry) ReportError(ctx context.Context, entry *model.RepoEntry, err error) {
	s.hub.WithScope(func(scope *sentry.Scope) {
		if entry != nil {
			scope.SetTag("repository", entry.String())
		}
		s.hub.CaptureException(err)
	})
}

// Flush waits for buffered events to be delivered
func (s *Sentry) Flush() {
	s.hub.Flush(sentryFlushTimeout)
}
