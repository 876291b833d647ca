package usecase

import (
	"context"
	"math"

	"pulse-ads/internal/core/domain"
	"pulse-ads/internal/core/port"
)

// Score weights for the candidate ranking blend.
const (
	mlScoreWeight     = 0.25
	profitWeight      = 0.30
	fulfillmentWeight = 0.35
)

// pickBest scores every candidate and returns the one with the strictly
// greatest score. Ties resolve to the first candidate in filter output
// order.
func (u *AdUseCase) pickBest(ctx context.Context, client domain.Client, candidates []port.Candidate) (*port.Candidate, error) {
	bestIndex := -1
	bestScore := math.Inf(-1)
	for i := range candidates {
		mlScore, err := u.scores.GetScore(ctx, client.ID, candidates[i].Campaign.AdvertiserID)
		if err != nil {
			return nil, err
		}
		candidates[i].Score = scoreCandidate(candidates[i], mlScore)
		if candidates[i].Score > bestScore {
			bestScore = candidates[i].Score
			bestIndex = i
		}
	}
	if bestIndex < 0 {
		return nil, nil
	}
	return &candidates[bestIndex], nil
}

// scoreCandidate blends predicted affinity, expected remaining revenue and
// quota fulfillment. Fulfillment deprioritizes campaigns close to
// exhausting their quotas; a zero limit counts as fully fulfilled.
func scoreCandidate(cand port.Candidate, mlScore int) float64 {
	c := cand.Campaign

	remainingImpressions := max(0, c.ImpressionsLimit-cand.Impressions)
	remainingClicks := max(0, c.ClicksLimit-cand.Clicks)
	expectedProfit := float64(remainingImpressions)*c.CostPerImpression +
		float64(remainingClicks)*c.CostPerClick

	impressionFulfillment := 1.0
	if c.ImpressionsLimit > 0 {
		impressionFulfillment = float64(cand.Impressions) / float64(c.ImpressionsLimit)
	}
	clickFulfillment := 1.0
	if c.ClicksLimit > 0 {
		clickFulfillment = float64(cand.Clicks) / float64(c.ClicksLimit)
	}
	fulfillmentRatio := math.Min(1, impressionFulfillment) * math.Min(1, clickFulfillment)

	return mlScoreWeight*float64(mlScore) +
		profitWeight*expectedProfit +
		fulfillmentWeight*fulfillmentRatio
}
