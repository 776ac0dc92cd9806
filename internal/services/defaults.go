package services

// Durable store slot names. Kept stable so existing data survives upgrades.
const (
	SlotBooks               = "exampilot_books"
	SlotTodos               = "exampilot_todos"
	SlotRoadmapEnglish      = "exampilot_roadmap_english"
	SlotRoadmapModernJP     = "exampilot_roadmap_modern_jp"
	SlotRoadmapClassicJP    = "exampilot_roadmap_classic_jp"
	SlotRoadmapWorldHistory = "exampilot_roadmap_world_history"
	SlotUserName            = "exampilot_user_name"
	SlotTargetSchool        = "exampilot_target_school"
	SlotRoadmapGoal         = "exampilot_roadmap_goal"
	SlotVisionBoard         = "exampilot_vision_board"
	SlotProfileImage        = "exampilot_profile_image"
	SlotMentorImage         = "exampilot_mentor_image"
)

// Profile defaults shown before the user customizes anything.
const (
	DefaultUserName     = "プロデューサーさん"
	DefaultTargetSchool = "志望校を入力"
	DefaultRoadmapGoal  = "第一志望校合格！"
)

// defaultRoadmapSteps seeds a fresh roadmap. Every subject starts from the
// same four milestones until the user edits them.
func defaultRoadmapSteps() []*RoadmapStep {
	return []*RoadmapStep{
		{ID: "1", Label: "基礎固め", Description: "入門書を1周する", RequiredBooks: []string{}, Level: 20},
		{ID: "2", Label: "標準レベル", Description: "センター試験レベルの問題を解く", RequiredBooks: []string{}, Level: 50},
		{ID: "3", Label: "応用レベル", Description: "MARCHレベルの過去問に挑戦", RequiredBooks: []string{}, Level: 80},
		{ID: "4", Label: "最終目標", Description: "志望校の合格点突破", RequiredBooks: []string{}, Level: 100},
	}
}
