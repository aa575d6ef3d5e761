package review

import (
	"math"
	"time"
)

// Stats aggregates the full, unfiltered collection. Cheap enough to recompute
// on every render at the expected data volumes.
type Stats struct {
	TotalApplications    int
	TotalNominations     int
	TotalShortlisted     int
	TotalInvited         int
	ApplicationsThisWeek int
	NominationsThisWeek  int
	PercentShortlisted   int
	InviteCapacity       int
}

func (s Stats) TotalEntries() int {
	return s.TotalApplications + s.TotalNominations
}

// ComputeStats derives counts, strictly-after-seven-days weekly deltas and
// the rounded shortlist percentage (0 when the collection is empty).
func ComputeStats(entries []Entry, now time.Time, inviteCapacity int) Stats {
	stats := Stats{InviteCapacity: inviteCapacity}
	weekAgo := now.AddDate(0, 0, -7)

	for _, entry := range entries {
		core := entry.Core()
		recent := core.SubmittedAt.After(weekAgo)

		switch entry.Kind() {
		case KindApplication:
			stats.TotalApplications++
			if recent {
				stats.ApplicationsThisWeek++
			}
		case KindNomination:
			stats.TotalNominations++
			if recent {
				stats.NominationsThisWeek++
			}
		}

		switch core.Status {
		case StatusShortlisted:
			stats.TotalShortlisted++
		case StatusInvited:
			stats.TotalInvited++
		}
	}

	if total := stats.TotalEntries(); total > 0 {
		stats.PercentShortlisted = int(math.Round(float64(stats.TotalShortlisted) / float64(total) * 100))
	}
	return stats
}
