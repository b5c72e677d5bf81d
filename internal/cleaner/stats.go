package cleaner

import (
	"sort"

	"github.com/harrison/rclean/internal/models"
)

// Aggregate groups targets by originating pattern. The result is sorted by
// count descending; equal counts keep the order the patterns were first seen.
func Aggregate(targets []models.Target) []models.PatternStat {
	index := make(map[string]int)
	stats := []models.PatternStat{}

	for _, t := range targets {
		i, ok := index[t.Pattern]
		if !ok {
			i = len(stats)
			index[t.Pattern] = i
			stats = append(stats, models.PatternStat{Pattern: t.Pattern})
		}
		stats[i].Count++
		stats[i].TotalSize += t.Metadata.Size
	}

	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].Count > stats[b].Count
	})
	return stats
}

// Totals returns the number of targets and their summed size
func Totals(targets []models.Target) (int, int64) {
	var size int64
	for _, t := range targets {
		size += t.Metadata.Size
	}
	return len(targets), size
}
