package models

// Difficulty labels for reference books. Stored as-is; unknown values are
// kept verbatim rather than rejected.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Priority labels for daily tasks.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// The four subject roadmaps. Each is an independent step list; the set is
// fixed and unknown IDs are rejected at the service layer.
const (
	RoadmapEnglish      = "english"
	RoadmapModernJP     = "modern_jp"
	RoadmapClassicJP    = "classic_jp"
	RoadmapWorldHistory = "world_history"
)

// RoadmapIDs lists the supported roadmaps in display order.
var RoadmapIDs = []string{RoadmapEnglish, RoadmapModernJP, RoadmapClassicJP, RoadmapWorldHistory}
