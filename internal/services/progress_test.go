package services

import (
	"testing"
	"time"
)

func TestOverallBookProgress(t *testing.T) {
	if got := OverallBookProgress(nil); got != 0 {
		t.Fatalf("empty collection should be 0, got %d", got)
	}
	books := []*ReferenceBook{
		{TotalChapters: 10, CompletedChapters: 10},
		{TotalChapters: 10, CompletedChapters: 0},
	}
	if got := OverallBookProgress(books); got != 50 {
		t.Fatalf("got %d, want 50", got)
	}
	// 1/3 of all chapters -> rounds to 33
	books = []*ReferenceBook{{TotalChapters: 3, CompletedChapters: 1}}
	if got := OverallBookProgress(books); got != 33 {
		t.Fatalf("got %d, want 33", got)
	}
	// 2/3 -> rounds up to 67
	books[0].CompletedChapters = 2
	if got := OverallBookProgress(books); got != 67 {
		t.Fatalf("got %d, want 67", got)
	}
}

func TestRoadmapOverallProgressAveragesPerBook(t *testing.T) {
	if got := RoadmapOverallProgress(nil); got != 0 {
		t.Fatalf("empty collection should be 0, got %d", got)
	}
	// Per-book average: (10/10 + 0/100) / 2 = 50%, while the chapter-weighted
	// overall would be 9%. The roadmap view uses the per-book average.
	books := []*ReferenceBook{
		{TotalChapters: 10, CompletedChapters: 10},
		{TotalChapters: 100, CompletedChapters: 0},
	}
	if got := RoadmapOverallProgress(books); got != 50 {
		t.Fatalf("got %d, want 50", got)
	}
	if got := OverallBookProgress(books); got != 9 {
		t.Fatalf("chapter-weighted overall = %d, want 9", got)
	}
}

func TestDailyCompletionRate(t *testing.T) {
	today := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	if got := DailyCompletionRate(nil, today); got != 0 {
		t.Fatalf("no tasks should be 0, got %d", got)
	}

	todos := []*Todo{
		{ID: "a", CreatedAt: today},
		{ID: "b", CreatedAt: today},
		{ID: "c", CreatedAt: today},
		{ID: "old", CreatedAt: yesterday, Completed: true},
	}
	if got := DailyCompletionRate(todos, today); got != 0 {
		t.Fatalf("yesterday's completed task must not count, got %d", got)
	}

	// Rate is monotonically non-decreasing as tasks flip to complete.
	prev := 0
	for i := range todos[:3] {
		todos[i].Completed = true
		rate := DailyCompletionRate(todos, today)
		if rate < prev {
			t.Fatalf("rate decreased: %d -> %d", prev, rate)
		}
		prev = rate
	}
	if prev != 100 {
		t.Fatalf("all done should be 100, got %d", prev)
	}
}
