package services

import (
	"math"
	"time"
)

// OverallBookProgress is the chapter-weighted completion percentage across
// all books: round(100 * Σcompleted / Σtotal). Zero when there are no books.
func OverallBookProgress(books []*ReferenceBook) int {
	total, completed := 0, 0
	for _, b := range books {
		total += b.TotalChapters
		completed += b.CompletedChapters
	}
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// RoadmapOverallProgress averages each book's own completion ratio and scales
// to a percentage. All four roadmaps share this one book-derived value; they
// do not track per-subject book subsets.
func RoadmapOverallProgress(books []*ReferenceBook) int {
	if len(books) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range books {
		if b.TotalChapters > 0 {
			sum += float64(b.CompletedChapters) / float64(b.TotalChapters)
		}
	}
	return int(math.Round(sum / float64(len(books)) * 100))
}

// DailyCompletionRate is the completion percentage over tasks created on the
// same calendar day as today. Zero when there are no tasks for today.
func DailyCompletionRate(todos []*Todo, today time.Time) int {
	count, done := 0, 0
	for _, t := range todos {
		if !sameDay(t.CreatedAt, today) {
			continue
		}
		count++
		if t.Completed {
			done++
		}
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(count) * 100))
}
