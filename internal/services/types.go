package services

import "time"

// ReferenceBook is a study material tracked per chapter.
// CompletedChapters is clamped to [0, TotalChapters] on every mutation.
type ReferenceBook struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Subject           string `json:"subject"`
	TotalChapters     int    `json:"totalChapters"`
	CompletedChapters int    `json:"completedChapters"`
	Difficulty        string `json:"difficulty"`
	LastStudied       string `json:"lastStudied"` // calendar date, 2006-01-02
	CoverImage        string `json:"coverImage,omitempty"`
}

// Todo is a daily task. CreatedAt is immutable and decides whether the task
// belongs to today's list; older tasks stay stored but are never shown.
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoadmapStep is a milestone within a subject roadmap. Level is the overall
// progress threshold (0-100) at which the step counts as reached.
// RequiredBooks are display-only title strings, not book references.
type RoadmapStep struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	Description   string   `json:"description"`
	RequiredBooks []string `json:"requiredBooks"`
	Level         int      `json:"level"`
}

// Profile holds the user-editable scalars and image payloads. Images are
// self-describing data URIs (mime type + base64 data in one string).
type Profile struct {
	UserName     string `json:"userName"`
	TargetSchool string `json:"targetSchool"`
	RoadmapGoal  string `json:"roadmapGoal"`
	ProfileImage string `json:"profileImage,omitempty"`
	MentorImage  string `json:"mentorImage,omitempty"`
	VisionBoard  string `json:"visionBoard,omitempty"`
}

// MotivationMessage is a single chat exchange entry. The transcript is owned
// by the caller and never persisted.
type MotivationMessage struct {
	Role      string `json:"role"` // "user" or "assistant"
	Content   string `json:"content"`
	Image     string `json:"image,omitempty"`
	Timestamp string `json:"timestamp"`
}
