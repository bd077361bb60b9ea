package rules

import "time"

const (
	// FreeSuperLikesPerDay bounds super-likes for the free tier.
	FreeSuperLikesPerDay = 1
	// PlusSuperLikesPerDay bounds super-likes for paid tiers.
	PlusSuperLikesPerDay = 5

	// MatchTTL is how long a free-tier match stays alive unmessaged.
	MatchTTL = 24 * time.Hour
	// RewindWindow bounds how old a pending match can be and still be rewound.
	RewindWindow = 24 * time.Hour
)

// DayKey buckets quota usage by the user's local calendar day.
func DayKey(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format("2006-01-02")
}

// NextResetAt is the start of the next local day, in UTC.
func NextResetAt(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	return next.UTC()
}
