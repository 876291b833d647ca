package postgres

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"pulse-ads/internal/core/domain"
)

const (
	maxAttempts    = 3
	initialBackoff = 50 * time.Millisecond
)

// withRetry runs fn up to maxAttempts times with exponential backoff,
// retrying only transient store errors. The last error is returned raw so
// callers can distinguish domain conditions from storage failures.
func withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := initialBackoff
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil || !isTransient(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}

// isTransient reports whether the error is worth retrying: serialization
// failures, deadlocks and network timeouts.
func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return true
		}
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// wrapUnexpected passes domain conditions through unchanged and wraps
// anything else into a RepositoryError carrying the original message.
func wrapUnexpected(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		domain.ErrCampaignNotFound,
		domain.ErrClientNotFound,
		domain.ErrNoImpression,
		domain.ErrDuplicateClick,
		domain.ErrClicksLimitReached,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	var repoErr *domain.RepositoryError
	if errors.As(err, &repoErr) {
		return err
	}
	return domain.NewRepositoryError(op, err)
}
