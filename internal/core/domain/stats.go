package domain

// Stats are derived metrics computed live from the event ledger; nothing
// here is ever stored.
type Stats struct {
	ImpressionsCount int
	ClicksCount      int
	Conversion       float64
	SpentImpressions float64
	SpentClicks      float64
	SpentTotal       float64
}

// NewStats derives metrics from event counts and per-event costs.
// Conversion is clicks over impressions, zero when there are no
// impressions.
func NewStats(impressions, clicks int, costPerImpression, costPerClick float64) Stats {
	s := Stats{
		ImpressionsCount: impressions,
		ClicksCount:      clicks,
		SpentImpressions: float64(impressions) * costPerImpression,
		SpentClicks:      float64(clicks) * costPerClick,
	}
	s.SpentTotal = s.SpentImpressions + s.SpentClicks
	if impressions > 0 {
		s.Conversion = float64(clicks) / float64(impressions)
	}
	return s
}

// Add merges another stats value into s, summing counts and spend and
// recomputing the conversion over the combined counts.
func (s Stats) Add(other Stats) Stats {
	sum := Stats{
		ImpressionsCount: s.ImpressionsCount + other.ImpressionsCount,
		ClicksCount:      s.ClicksCount + other.ClicksCount,
		SpentImpressions: s.SpentImpressions + other.SpentImpressions,
		SpentClicks:      s.SpentClicks + other.SpentClicks,
	}
	sum.SpentTotal = sum.SpentImpressions + sum.SpentClicks
	if sum.ImpressionsCount > 0 {
		sum.Conversion = float64(sum.ClicksCount) / float64(sum.ImpressionsCount)
	}
	return sum
}

// DailyStats are Stats grouped by the simulated day stamped on each event.
type DailyStats struct {
	Stats
	Date int
}

// LocationCount is one entry of the top-locations listing.
type LocationCount struct {
	Location string
	Count    int
}

// ClientStats is the gender/age histogram over the full client directory.
type ClientStats struct {
	TotalClients int
	Demographics map[string]map[string]int
	TopLocations []LocationCount
	AverageAge   float64
}

// FeedbackSummary is the most recent feedback page for a campaign. The
// average is computed over the returned page only, not the full history.
type FeedbackSummary struct {
	AverageRating float64
	TotalRatings  int
	Feedbacks     []Feedback
}

// AgeBucket maps an age to its histogram bucket label.
func AgeBucket(age int) string {
	switch {
	case age < 18:
		return "<18"
	case age <= 24:
		return "18-24"
	case age <= 34:
		return "25-34"
	case age <= 44:
		return "35-44"
	case age <= 54:
		return "45-54"
	default:
		return "55+"
	}
}
