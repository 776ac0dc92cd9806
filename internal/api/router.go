package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/exampilot/exampilot/internal/middleware"
	"github.com/exampilot/exampilot/internal/services"
	"github.com/exampilot/exampilot/internal/utils"
)

// Router wires the tracker and mentor services to the HTTP surface. It is the
// command boundary of the system: every mutation enters here, and destructive
// operations require an explicit confirm flag (declining is a no-op reply).
type Router struct {
	tracker *services.TrackerService
	mentor  *services.MentorService
	logger  *zap.Logger
	now     func() time.Time
}

func NewRouter(tracker *services.TrackerService, mentor *services.MentorService, logger *zap.Logger) *Router {
	return &Router{tracker: tracker, mentor: mentor, logger: logger, now: time.Now}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/books", rt.handleBooks)           // GET, POST
	mux.HandleFunc("/api/books/", rt.handleBookScoped)     // PUT progress/cover, DELETE
	mux.HandleFunc("/api/todos", rt.handleTodos)           // GET, POST
	mux.HandleFunc("/api/todos/", rt.handleTodoScoped)     // POST toggle, DELETE
	mux.HandleFunc("/api/roadmaps/", rt.handleRoadmaps)    // GET, POST step, DELETE step
	mux.HandleFunc("/api/profile", rt.handleProfile)       // GET, PUT
	mux.HandleFunc("/api/profile/images/", rt.handleImage) // PUT
	mux.HandleFunc("/api/progress", rt.handleProgress)     // GET
	mux.HandleFunc("/api/mentor/advice", rt.handleAdvice)  // POST
	mux.HandleFunc("/api/mentor/quote", rt.handleQuote)    // GET
	mux.HandleFunc("/api/reset", rt.handleReset)           // POST
}

// GET /api/books — insertion order. POST /api/books — add.
func (rt *Router) handleBooks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		books := rt.tracker.ListBooks()
		writeJSON(w, http.StatusOK, map[string]any{
			"books":           books,
			"overallProgress": services.OverallBookProgress(books),
		})
	case http.MethodPost:
		var req struct {
			Title         string `json:"title"`
			Subject       string `json:"subject"`
			TotalChapters int    `json:"totalChapters"`
			Difficulty    string `json:"difficulty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		book := rt.tracker.AddBook(req.Title, req.Subject, req.TotalChapters, req.Difficulty)
		if book == nil {
			// Empty titles are silently rejected by contract.
			writeJSON(w, http.StatusOK, map[string]any{"ok": false})
			return
		}
		writeJSON(w, http.StatusCreated, book)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// PUT /api/books/{id}/progress, PUT /api/books/{id}/cover, DELETE /api/books/{id}
func (rt *Router) handleBookScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/books/")
	parts := strings.Split(rest, "/")
	id := parts[0]
	if id == "" {
		http.NotFound(w, r)
		return
	}
	switch {
	case len(parts) == 2 && parts[1] == "progress" && r.Method == http.MethodPut:
		var req struct {
			Completed int `json:"completed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": rt.tracker.SetBookProgress(id, req.Completed)})
	case len(parts) == 2 && parts[1] == "cover" && r.Method == http.MethodPut:
		var req struct {
			Image string `json:"image"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": rt.tracker.SetBookCover(id, req.Image)})
	case len(parts) == 1 && r.Method == http.MethodDelete:
		if !confirmed(r) {
			rt.writeUnconfirmed(w, r)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": rt.tracker.RemoveBook(id)})
	default:
		http.NotFound(w, r)
	}
}

// GET /api/todos — today's tasks newest first. POST /api/todos — add.
func (rt *Router) handleTodos(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		todos := rt.tracker.TodayTodos()
		writeJSON(w, http.StatusOK, map[string]any{
			"todos":          todos,
			"completionRate": services.DailyCompletionRate(todos, rt.now()),
		})
	case http.MethodPost:
		var req struct {
			Text     string `json:"text"`
			Priority string `json:"priority"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		todo := rt.tracker.AddTodo(req.Text, req.Priority)
		if todo == nil {
			writeJSON(w, http.StatusOK, map[string]any{"ok": false})
			return
		}
		writeJSON(w, http.StatusCreated, todo)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// POST /api/todos/{id}/toggle, DELETE /api/todos/{id}
func (rt *Router) handleTodoScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/todos/")
	parts := strings.Split(rest, "/")
	id := parts[0]
	if id == "" {
		http.NotFound(w, r)
		return
	}
	switch {
	case len(parts) == 2 && parts[1] == "toggle" && r.Method == http.MethodPost:
		writeJSON(w, http.StatusOK, map[string]any{"ok": rt.tracker.ToggleTodo(id)})
	case len(parts) == 1 && r.Method == http.MethodDelete:
		writeJSON(w, http.StatusOK, map[string]any{"ok": rt.tracker.RemoveTodo(id)})
	default:
		http.NotFound(w, r)
	}
}

// GET /api/roadmaps/{id} — steps, shared progress and path geometry.
// POST /api/roadmaps/{id}/steps — upsert one step.
// DELETE /api/roadmaps/{id}/steps/{stepID} — remove (confirm required).
func (rt *Router) handleRoadmaps(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/roadmaps/")
	parts := strings.Split(rest, "/")
	roadmapID := parts[0]
	if roadmapID == "" {
		http.NotFound(w, r)
		return
	}
	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		steps, ok := rt.tracker.Roadmap(roadmapID)
		if !ok {
			http.NotFound(w, r)
			return
		}
		progress := services.RoadmapOverallProgress(rt.tracker.ListBooks())
		writeJSON(w, http.StatusOK, map[string]any{
			"roadmapId":       roadmapID,
			"steps":           steps,
			"overallProgress": progress,
			"path":            services.MapRoadmapPath(steps, progress),
		})
	case len(parts) == 2 && parts[1] == "steps" && r.Method == http.MethodPost:
		var req struct {
			ID            string   `json:"id"`
			Label         string   `json:"label"`
			Description   string   `json:"description"`
			RequiredBooks []string `json:"requiredBooks"`
			Level         *int     `json:"level"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		level := rt.tracker.DefaultNextLevel(roadmapID)
		if req.Level != nil {
			level = *req.Level
		}
		step, err := rt.tracker.UpsertRoadmapStep(roadmapID, services.RoadmapStep{
			ID:            req.ID,
			Label:         req.Label,
			Description:   req.Description,
			RequiredBooks: req.RequiredBooks,
			Level:         level,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, step)
	case len(parts) == 3 && parts[1] == "steps" && r.Method == http.MethodDelete:
		if !confirmed(r) {
			rt.writeUnconfirmed(w, r)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": rt.tracker.RemoveRoadmapStep(roadmapID, parts[2])})
	default:
		http.NotFound(w, r)
	}
}

// GET /api/profile, PUT /api/profile — partial update of the scalars.
func (rt *Router) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, rt.tracker.Profile())
	case http.MethodPut:
		var req struct {
			UserName     *string `json:"userName"`
			TargetSchool *string `json:"targetSchool"`
			RoadmapGoal  *string `json:"roadmapGoal"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.UserName != nil {
			rt.tracker.SetUserName(*req.UserName)
		}
		if req.TargetSchool != nil {
			rt.tracker.SetTargetSchool(*req.TargetSchool)
		}
		if req.RoadmapGoal != nil {
			rt.tracker.SetRoadmapGoal(*req.RoadmapGoal)
		}
		writeJSON(w, http.StatusOK, rt.tracker.Profile())
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// PUT /api/profile/images/{slot} — slot is profile, mentor or vision_board.
func (rt *Router) handleImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	slot := strings.TrimPrefix(r.URL.Path, "/api/profile/images/")
	var req struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := rt.tracker.SetImage(slot, req.Image); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// GET /api/progress — the three derived percentages in one response.
func (rt *Router) handleProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	books := rt.tracker.ListBooks()
	todos := rt.tracker.TodayTodos()
	writeJSON(w, http.StatusOK, map[string]any{
		"overallProgress": services.OverallBookProgress(books),
		"roadmapProgress": services.RoadmapOverallProgress(books),
		"dailyRate":       services.DailyCompletionRate(todos, rt.now()),
	})
}

// POST /api/mentor/advice — one stateless exchange; the reply is always a
// message, even when the remote call failed.
func (rt *Router) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Prompt string `json:"prompt"`
		Image  string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	reply := rt.mentor.RequestAdvice(r.Context(), locale, req.Prompt, req.Image)
	writeJSON(w, http.StatusOK, services.MotivationMessage{
		Role:      "assistant",
		Content:   reply,
		Timestamp: rt.now().Format("15:04"),
	})
}

// GET /api/mentor/quote — short daily motivational phrase.
func (rt *Router) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"quote": rt.mentor.RequestDailyQuote(r.Context(), locale),
	})
}

// POST /api/reset — erase the store and reinitialize defaults.
func (rt *Router) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !confirmed(r) {
		rt.writeUnconfirmed(w, r)
		return
	}
	if err := rt.tracker.ResetAll(); err != nil {
		rt.logger.Error("reset_failed", zap.Error(err))
		http.Error(w, "reset failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// confirmed reports whether the caller supplied confirm=true. Destructive
// operations without it are no-ops, mirroring a declined confirmation dialog.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

func (rt *Router) writeUnconfirmed(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":  false,
		"msg": utils.T(locale, "confirm.required"),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorBadGateway:
			status = http.StatusBadGateway
		}
	}
	http.Error(w, err.Error(), status)
}
