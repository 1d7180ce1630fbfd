package gen

import (
	"sort"
	"sync"
	"time"

	"github.com/queuesmart/queuesmart/internal/domain/model"
)

// BuildServiceRecords generates a multi-day dataset across branches.
// Weekends are skipped. Branches are independent, so each one runs in its
// own goroutine with its own seeded generator and assigner; results are
// merged in branch order so the output is deterministic for a given seed.
// Within a branch the records are ordered ascending by arrival time.
func BuildServiceRecords(start, end time.Time, branches []string, seed int64) []model.ServiceRecord {
	perBranch := make([][]model.ServiceRecord, len(branches))

	var wg sync.WaitGroup
	for i, branch := range branches {
		wg.Add(1)
		go func(i int, branch string) {
			defer wg.Done()
			gen := NewGenerator(WithGeneratorSeed(seed + int64(i)))
			assign := NewAssigner(WithAssignerSeed(seed + 1000 + int64(i)))

			var records []model.ServiceRecord
			for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
				if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
					continue
				}
				records = append(records, assign.Assign(gen.Arrivals(d, branch))...)
			}
			perBranch[i] = records
		}(i, branch)
	}
	wg.Wait()

	var all []model.ServiceRecord
	for _, records := range perBranch {
		all = append(all, records...)
	}
	return all
}

// Clean drops records with duplicate customer IDs (first occurrence wins)
// or durations outside (0, 120], then sorts the remainder by arrival time.
// It returns the kept records and the number dropped.
func Clean(records []model.ServiceRecord) ([]model.ServiceRecord, int) {
	const maxDurationMinutes = 120

	seen := make(map[string]bool, len(records))
	kept := make([]model.ServiceRecord, 0, len(records))
	for _, r := range records {
		if seen[r.CustomerID] {
			continue
		}
		if r.DurationMinutes <= 0 || r.DurationMinutes > maxDurationMinutes {
			continue
		}
		seen[r.CustomerID] = true
		kept = append(kept, r)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].ArrivalTime.Before(kept[j].ArrivalTime)
	})
	return kept, len(records) - len(kept)
}

// SplitByBranch partitions records by branch, preserving relative order, and
// returns the branch names in first-seen order alongside the partitions.
func SplitByBranch(records []model.ServiceRecord) ([]string, map[string][]model.ServiceRecord) {
	byBranch := make(map[string][]model.ServiceRecord)
	var order []string
	for _, r := range records {
		if _, ok := byBranch[r.Branch]; !ok {
			order = append(order, r.Branch)
		}
		byBranch[r.Branch] = append(byBranch[r.Branch], r)
	}
	return order, byBranch
}
