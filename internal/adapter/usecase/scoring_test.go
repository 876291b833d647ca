package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pulse-ads/internal/core/domain"
	"pulse-ads/internal/core/port"
)

func TestScoreCandidateFreshCampaign(t *testing.T) {
	cand := port.Candidate{
		Campaign: domain.Campaign{
			ImpressionsLimit:  100,
			ClicksLimit:       10,
			CostPerImpression: 0.1,
			CostPerClick:      0.5,
		},
	}

	// profit = 100*0.1 + 10*0.5 = 15; fulfillment = 0 with no events
	got := scoreCandidate(cand, 40)
	assert.InDelta(t, 0.25*40+0.30*15, got, 1e-9)
}

func TestScoreCandidateRemainingQuota(t *testing.T) {
	cand := port.Candidate{
		Campaign: domain.Campaign{
			ImpressionsLimit:  100,
			ClicksLimit:       10,
			CostPerImpression: 0.1,
			CostPerClick:      0.5,
		},
		Impressions: 50,
		Clicks:      5,
	}

	profit := float64(50)*0.1 + float64(5)*0.5
	fulfillment := 0.5 * 0.5
	got := scoreCandidate(cand, 0)
	assert.InDelta(t, 0.30*profit+0.35*fulfillment, got, 1e-9)
}

func TestScoreCandidateExhaustedQuota(t *testing.T) {
	cand := port.Candidate{
		Campaign: domain.Campaign{
			ImpressionsLimit:  10,
			ClicksLimit:       5,
			CostPerImpression: 1,
			CostPerClick:      1,
		},
		// counts past the limit leave no remaining profit and cap the
		// fulfillment ratio at 1
		Impressions: 12,
		Clicks:      7,
	}

	got := scoreCandidate(cand, 0)
	assert.InDelta(t, 0.35, got, 1e-9)
}

func TestScoreCandidateZeroLimitCountsAsFulfilled(t *testing.T) {
	cand := port.Candidate{
		Campaign: domain.Campaign{ImpressionsLimit: 0, ClicksLimit: 0},
	}

	got := scoreCandidate(cand, 0)
	assert.InDelta(t, 0.35, got, 1e-9)
}
