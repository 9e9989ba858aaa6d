package domain

import "sort"

// SortRanking orders results by score descending. The sort is stable, so
// results passed in arrival order keep it among equal scores.
func SortRanking(results []AttemptResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
