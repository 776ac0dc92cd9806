package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/exampilot/exampilot/internal/models"
	"github.com/exampilot/exampilot/internal/services"
	"github.com/exampilot/exampilot/internal/utils"
)

type memSlotStore struct{ slots map[string]string }

func (s *memSlotStore) Load(key string) (string, bool, error) {
	v, ok := s.slots[key]
	return v, ok, nil
}

func (s *memSlotStore) SaveAll(slots map[string]string) error {
	for k, v := range slots {
		s.slots[k] = v
	}
	return nil
}

func (s *memSlotStore) Clear() error {
	s.slots = map[string]string{}
	return nil
}

type failingAdviceClient struct{}

func (failingAdviceClient) Generate(context.Context, services.AdviceRequest) (string, error) {
	return "", errors.New("remote unavailable")
}

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	logger := zap.NewNop()
	tracker := services.NewTrackerService(&memSlotStore{slots: map[string]string{}}, logger)
	mentor := services.NewMentorService(failingAdviceClient{}, logger)
	mux := http.NewServeMux()
	NewRouter(tracker, mentor, logger).Register(mux)
	return mux
}

func do(t *testing.T, mux *http.ServeMux, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec
}

func TestBookLifecycle(t *testing.T) {
	mux := newTestMux(t)

	var book services.ReferenceBook
	rec := do(t, mux, http.MethodPost, "/api/books", map[string]any{
		"title": "Algebra Basics", "subject": "Math", "totalChapters": 10,
		"difficulty": models.DifficultyIntermediate,
	}, &book)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add book status = %d", rec.Code)
	}

	do(t, mux, http.MethodPut, "/api/books/"+book.ID+"/progress", map[string]any{"completed": 12}, nil)

	var list struct {
		Books           []services.ReferenceBook `json:"books"`
		OverallProgress int                      `json:"overallProgress"`
	}
	do(t, mux, http.MethodGet, "/api/books", nil, &list)
	if len(list.Books) != 1 || list.Books[0].CompletedChapters != 10 {
		t.Fatalf("progress not clamped: %+v", list.Books)
	}
	if list.OverallProgress != 100 {
		t.Fatalf("overall progress = %d, want 100", list.OverallProgress)
	}

	// Delete without confirmation is a no-op.
	var noop struct {
		OK bool `json:"ok"`
	}
	do(t, mux, http.MethodDelete, "/api/books/"+book.ID, nil, &noop)
	if noop.OK {
		t.Fatal("unconfirmed delete must not succeed")
	}
	do(t, mux, http.MethodGet, "/api/books", nil, &list)
	if len(list.Books) != 1 {
		t.Fatal("book should still exist after unconfirmed delete")
	}

	do(t, mux, http.MethodDelete, "/api/books/"+book.ID+"?confirm=true", nil, &noop)
	if !noop.OK {
		t.Fatal("confirmed delete should succeed")
	}
	do(t, mux, http.MethodGet, "/api/books", nil, &list)
	if len(list.Books) != 0 {
		t.Fatal("book should be gone after confirmed delete")
	}
}

func TestAddBookEmptyTitle(t *testing.T) {
	mux := newTestMux(t)
	var resp struct {
		OK bool `json:"ok"`
	}
	rec := do(t, mux, http.MethodPost, "/api/books", map[string]any{"title": ""}, &resp)
	if rec.Code != http.StatusOK || resp.OK {
		t.Fatalf("empty title should be a silent no-op, status=%d ok=%v", rec.Code, resp.OK)
	}
}

func TestTodosEndpoint(t *testing.T) {
	mux := newTestMux(t)

	var todo services.Todo
	do(t, mux, http.MethodPost, "/api/todos", map[string]any{"text": "Review chapter 3", "priority": models.PriorityHigh}, &todo)
	do(t, mux, http.MethodPost, "/api/todos/"+todo.ID+"/toggle", nil, nil)

	var list struct {
		Todos          []services.Todo `json:"todos"`
		CompletionRate int             `json:"completionRate"`
	}
	do(t, mux, http.MethodGet, "/api/todos", nil, &list)
	if len(list.Todos) != 1 || !list.Todos[0].Completed {
		t.Fatalf("unexpected todos: %+v", list.Todos)
	}
	if list.CompletionRate != 100 {
		t.Fatalf("completion rate = %d, want 100", list.CompletionRate)
	}
}

func TestRoadmapsShareOneProgressValue(t *testing.T) {
	mux := newTestMux(t)

	var book services.ReferenceBook
	do(t, mux, http.MethodPost, "/api/books", map[string]any{
		"title": "速読英単語", "subject": "English", "totalChapters": 10,
		"difficulty": models.DifficultyBeginner,
	}, &book)
	do(t, mux, http.MethodPut, "/api/books/"+book.ID+"/progress", map[string]any{"completed": 5}, nil)

	// Every roadmap reports the same book-derived value; none tracks its own
	// book subset.
	for _, id := range models.RoadmapIDs {
		var resp struct {
			Steps           []services.RoadmapStep `json:"steps"`
			OverallProgress int                    `json:"overallProgress"`
			Path            services.RoadmapPath   `json:"path"`
		}
		do(t, mux, http.MethodGet, "/api/roadmaps/"+id, nil, &resp)
		if resp.OverallProgress != 50 {
			t.Fatalf("roadmap %s progress = %d, want 50", id, resp.OverallProgress)
		}
		if len(resp.Steps) != 4 || len(resp.Path.Markers) != 4 {
			t.Fatalf("roadmap %s: %d steps, %d markers", id, len(resp.Steps), len(resp.Path.Markers))
		}
	}
}

func TestRoadmapStepDefaultLevel(t *testing.T) {
	mux := newTestMux(t)

	var step services.RoadmapStep
	do(t, mux, http.MethodPost, "/api/roadmaps/english/steps", map[string]any{"label": "新しい目標"}, &step)
	// Seed roadmap already ends at level 100, so the default caps there.
	if step.Level != 100 {
		t.Fatalf("default level = %d, want 100", step.Level)
	}

	rec := do(t, mux, http.MethodGet, "/api/roadmaps/physics", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown roadmap status = %d", rec.Code)
	}
}

func TestAdviceAlwaysResolves(t *testing.T) {
	mux := newTestMux(t)

	var msg services.MotivationMessage
	rec := do(t, mux, http.MethodPost, "/api/mentor/advice", map[string]any{"prompt": "助けて"}, &msg)
	if rec.Code != http.StatusOK {
		t.Fatalf("advice status = %d", rec.Code)
	}
	if msg.Role != "assistant" {
		t.Fatalf("role = %q", msg.Role)
	}
	if msg.Content != utils.T("ja", "mentor.advice_fallback") {
		t.Fatalf("failing remote must yield the fallback, got %q", msg.Content)
	}
}

func TestQuoteFallback(t *testing.T) {
	mux := newTestMux(t)
	var resp struct {
		Quote string `json:"quote"`
	}
	do(t, mux, http.MethodGet, "/api/mentor/quote", nil, &resp)
	if resp.Quote != utils.T("ja", "mentor.quote_fallback") {
		t.Fatalf("quote = %q", resp.Quote)
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	mux := newTestMux(t)
	do(t, mux, http.MethodPost, "/api/books", map[string]any{"title": "x", "totalChapters": 3}, nil)

	var resp struct {
		OK bool `json:"ok"`
	}
	do(t, mux, http.MethodPost, "/api/reset", nil, &resp)
	if resp.OK {
		t.Fatal("unconfirmed reset must be a no-op")
	}

	var list struct {
		Books []services.ReferenceBook `json:"books"`
	}
	do(t, mux, http.MethodGet, "/api/books", nil, &list)
	if len(list.Books) != 1 {
		t.Fatal("books should survive an unconfirmed reset")
	}

	do(t, mux, http.MethodPost, "/api/reset?confirm=true", nil, &resp)
	if !resp.OK {
		t.Fatal("confirmed reset should succeed")
	}
	do(t, mux, http.MethodGet, "/api/books", nil, &list)
	if len(list.Books) != 0 {
		t.Fatal("books should be gone after reset")
	}
}

func TestProfileUpdate(t *testing.T) {
	mux := newTestMux(t)

	var profile services.Profile
	do(t, mux, http.MethodGet, "/api/profile", nil, &profile)
	if profile.UserName != services.DefaultUserName {
		t.Fatalf("default user name = %q", profile.UserName)
	}

	do(t, mux, http.MethodPut, "/api/profile", map[string]any{"userName": "あいす", "targetSchool": "東京大学"}, &profile)
	if profile.UserName != "あいす" || profile.TargetSchool != "東京大学" {
		t.Fatalf("profile not updated: %+v", profile)
	}
	if profile.RoadmapGoal != services.DefaultRoadmapGoal {
		t.Fatalf("untouched scalar changed: %q", profile.RoadmapGoal)
	}

	rec := do(t, mux, http.MethodPut, "/api/profile/images/banner", map[string]any{"image": "data:image/png;base64,AAAA"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown image slot status = %d", rec.Code)
	}
	rec = do(t, mux, http.MethodPut, "/api/profile/images/vision_board", map[string]any{"image": "data:image/png;base64,AAAA"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("vision board update status = %d", rec.Code)
	}
}
