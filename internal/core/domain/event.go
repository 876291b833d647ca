package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType discriminates ledger rows. Impressions and clicks are unique
// per (campaign, client); feedback is not.
type EventType string

const (
	EventImpression EventType = "impression"
	EventClick      EventType = "click"
	EventFeedback   EventType = "feedback"
)

// Event is an append-only ledger row. Date is the simulated day stamped at
// registration time. Rating and Comment are set on feedback events only.
type Event struct {
	ID         uuid.UUID
	CampaignID uuid.UUID
	ClientID   uuid.UUID
	Type       EventType
	Date       int
	Rating     *int
	Comment    *string
	CreatedAt  time.Time
}

// EventCounts holds unique impression and click totals for a campaign.
type EventCounts struct {
	Impressions int
	Clicks      int
}

// Feedback is a rating/comment a client left for a campaign.
type Feedback struct {
	ClientID   uuid.UUID
	CampaignID uuid.UUID
	Rating     int
	Comment    *string
	CreatedAt  time.Time
}
