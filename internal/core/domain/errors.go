package domain

import (
	"errors"
	"fmt"
)

// Expected domain conditions. Handlers map these to HTTP statuses; anything
// else is treated as an internal failure.
var (
	ErrClientNotFound     = errors.New("client not found")
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrAdvertiserNotFound = errors.New("advertiser not found")
	ErrAdsNotFound        = errors.New("no eligible ads found")
	ErrNoImpression       = errors.New("click requires a prior impression")
	ErrDuplicateClick     = errors.New("click already registered for this client and campaign")
	ErrClicksLimitReached = errors.New("clicks limit reached for this campaign")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
)

// RepositoryError wraps an unexpected storage failure after retries are
// exhausted. The original error is preserved for logging.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// NewRepositoryError wraps err with the failing operation name.
func NewRepositoryError(op string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Err: err}
}
