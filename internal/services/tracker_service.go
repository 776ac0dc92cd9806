package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/exampilot/exampilot/internal/models"
)

// TrackerService owns the canonical in-memory study state: books, todos, the
// four subject roadmaps and the profile scalars. Every accepted mutation is
// followed by one explicit snapshot save into the slot store; readers always
// get copies, never internal slices.
type TrackerService struct {
	mu     sync.RWMutex
	store  SlotStore
	logger *zap.Logger
	now    func() time.Time

	books    []*ReferenceBook
	todos    []*Todo
	roadmaps map[string][]*RoadmapStep
	profile  Profile
}

var roadmapSlots = map[string]string{
	models.RoadmapEnglish:      SlotRoadmapEnglish,
	models.RoadmapModernJP:     SlotRoadmapModernJP,
	models.RoadmapClassicJP:    SlotRoadmapClassicJP,
	models.RoadmapWorldHistory: SlotRoadmapWorldHistory,
}

// NewTrackerService rehydrates state from the slot store. Missing or
// malformed slots fall back to the application defaults.
func NewTrackerService(store SlotStore, logger *zap.Logger) *TrackerService {
	s := &TrackerService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	s.rehydrate()
	return s
}

func (s *TrackerService) rehydrate() {
	s.books = loadStructured(s.store, s.logger, SlotBooks, []*ReferenceBook{})
	s.todos = loadStructured(s.store, s.logger, SlotTodos, []*Todo{})
	s.roadmaps = map[string][]*RoadmapStep{}
	for id, slot := range roadmapSlots {
		steps := loadStructured(s.store, s.logger, slot, defaultRoadmapSteps())
		sortSteps(steps)
		s.roadmaps[id] = steps
	}
	s.profile = Profile{
		UserName:     loadScalar(s.store, s.logger, SlotUserName, DefaultUserName),
		TargetSchool: loadScalar(s.store, s.logger, SlotTargetSchool, DefaultTargetSchool),
		RoadmapGoal:  loadScalar(s.store, s.logger, SlotRoadmapGoal, DefaultRoadmapGoal),
		ProfileImage: loadScalar(s.store, s.logger, SlotProfileImage, ""),
		MentorImage:  loadScalar(s.store, s.logger, SlotMentorImage, ""),
		VisionBoard:  loadScalar(s.store, s.logger, SlotVisionBoard, ""),
	}
}

// persist serializes every tracked slot unconditionally. Image slots are only
// written when non-empty. Callers must hold the write lock.
func (s *TrackerService) persist() {
	slots := map[string]string{
		SlotBooks:        marshalSlot(s.books),
		SlotTodos:        marshalSlot(s.todos),
		SlotUserName:     s.profile.UserName,
		SlotTargetSchool: s.profile.TargetSchool,
		SlotRoadmapGoal:  s.profile.RoadmapGoal,
	}
	for id, slot := range roadmapSlots {
		slots[slot] = marshalSlot(s.roadmaps[id])
	}
	if s.profile.VisionBoard != "" {
		slots[SlotVisionBoard] = s.profile.VisionBoard
	}
	if s.profile.ProfileImage != "" {
		slots[SlotProfileImage] = s.profile.ProfileImage
	}
	if s.profile.MentorImage != "" {
		slots[SlotMentorImage] = s.profile.MentorImage
	}
	if err := s.store.SaveAll(slots); err != nil {
		s.logger.Warn("snapshot_save_failed", zap.Error(err))
	}
}

// --- books ---

func (s *TrackerService) ListBooks() []*ReferenceBook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*ReferenceBook, 0, len(s.books))
	for _, b := range s.books {
		copy := *b
		out = append(out, &copy)
	}
	return out
}

// AddBook appends a new book with zero completed chapters and today's date.
// An empty title is silently rejected.
func (s *TrackerService) AddBook(title, subject string, totalChapters int, difficulty string) *ReferenceBook {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	if totalChapters < 1 {
		totalChapters = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := &ReferenceBook{
		ID:                shortID(9),
		Title:             title,
		Subject:           subject,
		TotalChapters:     totalChapters,
		CompletedChapters: 0,
		Difficulty:        difficulty,
		LastStudied:       s.today(),
	}
	s.books = append(s.books, b)
	s.persist()
	copy := *b
	return &copy
}

// SetBookProgress clamps completed to [0, TotalChapters] and bumps
// LastStudied. Unknown ids are a no-op.
func (s *TrackerService) SetBookProgress(id string, completed int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.ID != id {
			continue
		}
		if completed < 0 {
			completed = 0
		}
		if completed > b.TotalChapters {
			completed = b.TotalChapters
		}
		b.CompletedChapters = completed
		b.LastStudied = s.today()
		s.persist()
		return true
	}
	return false
}

func (s *TrackerService) SetBookCover(id, image string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.ID == id {
			b.CoverImage = image
			s.persist()
			return true
		}
	}
	return false
}

func (s *TrackerService) RemoveBook(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.books {
		if b.ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

// --- todos ---

// TodayTodos returns today's tasks, newest first. Tasks created on earlier
// calendar days stay stored but are excluded.
func (s *TrackerService) TodayTodos() []*Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	out := []*Todo{}
	for _, t := range s.todos {
		if sameDay(t.CreatedAt, now) {
			copy := *t
			out = append(out, &copy)
		}
	}
	return out
}

// AddTodo prepends a new task. Whitespace-only text is silently rejected.
func (s *TrackerService) AddTodo(text, priority string) *Todo {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &Todo{
		ID:        shortID(9),
		Text:      text,
		Completed: false,
		Priority:  priority,
		CreatedAt: s.now(),
	}
	s.todos = append([]*Todo{t}, s.todos...)
	s.persist()
	copy := *t
	return &copy
}

func (s *TrackerService) ToggleTodo(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.todos {
		if t.ID == id {
			t.Completed = !t.Completed
			s.persist()
			return true
		}
	}
	return false
}

func (s *TrackerService) RemoveTodo(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.todos {
		if t.ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

// --- roadmaps ---

// Roadmap returns the steps of one roadmap, sorted ascending by level.
func (s *TrackerService) Roadmap(roadmapID string) ([]*RoadmapStep, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	steps, ok := s.roadmaps[roadmapID]
	if !ok {
		return nil, false
	}
	out := make([]*RoadmapStep, 0, len(steps))
	for _, st := range steps {
		copy := *st
		copy.RequiredBooks = append([]string(nil), st.RequiredBooks...)
		out = append(out, &copy)
	}
	return out, true
}

// DefaultNextLevel suggests a level for a newly added step: ten past the
// current last milestone, capped at 100.
func (s *TrackerService) DefaultNextLevel(roadmapID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	steps := s.roadmaps[roadmapID]
	last := 0
	if len(steps) > 0 {
		last = steps[len(steps)-1].Level
	}
	if last+10 > 100 {
		return 100
	}
	return last + 10
}

// UpsertRoadmapStep inserts or replaces a step by id, clamps its level to
// [0,100] and re-sorts the roadmap ascending by level (stable for ties).
func (s *TrackerService) UpsertRoadmapStep(roadmapID string, step RoadmapStep) (*RoadmapStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	steps, ok := s.roadmaps[roadmapID]
	if !ok {
		return nil, NewNotFoundError("roadmap not found")
	}
	if step.ID == "" {
		step.ID = shortID(9)
	}
	if step.Level < 0 {
		step.Level = 0
	}
	if step.Level > 100 {
		step.Level = 100
	}
	if step.RequiredBooks == nil {
		step.RequiredBooks = []string{}
	}
	replaced := false
	for i, st := range steps {
		if st.ID == step.ID {
			copy := step
			steps[i] = &copy
			replaced = true
			break
		}
	}
	if !replaced {
		copy := step
		steps = append(steps, &copy)
	}
	sortSteps(steps)
	s.roadmaps[roadmapID] = steps
	s.persist()
	out := step
	return &out, nil
}

func (s *TrackerService) RemoveRoadmapStep(roadmapID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	steps, ok := s.roadmaps[roadmapID]
	if !ok {
		return false
	}
	for i, st := range steps {
		if st.ID == id {
			s.roadmaps[roadmapID] = append(steps[:i], steps[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

// --- profile ---

func (s *TrackerService) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *TrackerService) SetUserName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.UserName = name
	s.persist()
}

func (s *TrackerService) SetTargetSchool(school string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.TargetSchool = school
	s.persist()
}

func (s *TrackerService) SetRoadmapGoal(goal string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.RoadmapGoal = goal
	s.persist()
}

// Image slot names accepted by SetImage.
const (
	ImageProfile     = "profile"
	ImageMentor      = "mentor"
	ImageVisionBoard = "vision_board"
)

func (s *TrackerService) SetImage(slot, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch slot {
	case ImageProfile:
		s.profile.ProfileImage = payload
	case ImageMentor:
		s.profile.MentorImage = payload
	case ImageVisionBoard:
		s.profile.VisionBoard = payload
	default:
		return NewInvalidError("unknown image slot")
	}
	s.persist()
	return nil
}

// --- reset ---

// ResetAll erases the durable store and reinitializes in-memory state to the
// defaults. The store stays empty until the next mutation.
func (s *TrackerService) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.rehydrate()
	return nil
}

// --- helpers ---

func (s *TrackerService) today() string {
	return s.now().Format("2006-01-02")
}

func sortSteps(steps []*RoadmapStep) {
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Level < steps[j].Level })
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}
