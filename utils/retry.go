package utils

import (
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

// WithRetry runs op with exponential backoff until it succeeds or a minute
// has elapsed. It is meant for client bootstrap (database, object storage),
// not for per-request operations.
func WithRetry(name string, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxElapsedTime = time.Minute

	return backoff.RetryNotify(op, b, func(err error, next time.Duration) {
		log.WithField("prefix", "init").WithError(err).Warnf("%s unavailable, retrying in %s", name, next)
	})
}
