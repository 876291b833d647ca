package domain

import "github.com/google/uuid"

// Campaign represents an advertising campaign. Limits are hard ceilings on
// the number of unique impression and click events the ledger may store.
// Costs are per single event.
type Campaign struct {
	ID                uuid.UUID
	AdvertiserID      uuid.UUID
	ImpressionsLimit  int
	ClicksLimit       int
	CostPerImpression float64
	CostPerClick      float64
	AdTitle           string
	AdText            string
	StartDate         int
	EndDate           int
	ImageURL          *string
	Targeting         Targeting
}

// ActiveOn reports whether the campaign runs on the given simulated day.
func (c Campaign) ActiveOn(day int) bool {
	return c.StartDate <= day && day <= c.EndDate
}
