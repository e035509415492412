package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/goalgrid/goalgrid/internal/domain"
	"github.com/goalgrid/goalgrid/internal/lesson"
)

type createLessonRequest struct {
	UserID  string               `json:"user_id"`
	Date    string               `json:"date,omitempty"`
	Context lesson.CreateContext `json:"context,omitempty"`
}

func (s *Server) handleCreateLesson(w http.ResponseWriter, r *http.Request) {
	var req createLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decoding body: %v", errInvalidRequest, err))
		return
	}
	if req.UserID == "" {
		writeError(w, fmt.Errorf("%w: user_id is required", errInvalidRequest))
		return
	}
	if req.Date == "" {
		req.Date = domain.Today()
	}
	if !domain.ValidDate(req.Date) {
		writeError(w, fmt.Errorf("%w: date must be YYYY-MM-DD", errInvalidRequest))
		return
	}

	created, err := s.svc.CreateDailyLesson(r.Context(), req.UserID, req.Date, req.Context)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Lesson created", "lesson": created})
}

type generateTasksRequest struct {
	UserID   string `json:"user_id"`
	Date     string `json:"date"`
	NumTasks int    `json:"num_tasks,omitempty"`
}

func (s *Server) handleGenerateTasks(w http.ResponseWriter, r *http.Request) {
	var req generateTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decoding body: %v", errInvalidRequest, err))
		return
	}
	if req.UserID == "" || req.Date == "" {
		writeError(w, fmt.Errorf("%w: user_id and date are required", errInvalidRequest))
		return
	}

	tasks, err := s.svc.GenerateTasks(r.Context(), req.UserID, req.Date, req.NumTasks)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Tasks generated", "tasks": tasks})
}

type regenerateRequest struct {
	UserID       string `json:"user_id"`
	Date         string `json:"date"`
	Instructions string `json:"instructions,omitempty"`
}

func (s *Server) handleRegenerateTasks(w http.ResponseWriter, r *http.Request) {
	var req regenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decoding body: %v", errInvalidRequest, err))
		return
	}
	if req.UserID == "" || req.Date == "" {
		writeError(w, fmt.Errorf("%w: user_id and date are required", errInvalidRequest))
		return
	}
	if req.Instructions == "" {
		req.Instructions = "Simplify these tasks for a beginner"
	}

	ok, err := s.svc.RegenerateTasksWithAI(r.Context(), req.UserID, req.Date, req.Instructions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": ok})
}

func (s *Server) handleRegenerateLesson(w http.ResponseWriter, r *http.Request) {
	var req regenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decoding body: %v", errInvalidRequest, err))
		return
	}
	if req.UserID == "" || req.Date == "" {
		writeError(w, fmt.Errorf("%w: user_id and date are required", errInvalidRequest))
		return
	}

	ok, err := s.svc.RegenerateLesson(r.Context(), req.UserID, req.Date, req.Instructions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": ok})
}

type completeTaskRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
	TaskID string `json:"task_id"`
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	var req completeTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decoding body: %v", errInvalidRequest, err))
		return
	}
	if req.UserID == "" || req.Date == "" || req.TaskID == "" {
		writeError(w, fmt.Errorf("%w: user_id, date and task_id are required", errInvalidRequest))
		return
	}

	updated, err := s.svc.CompleteTask(r.Context(), req.UserID, req.Date, req.TaskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Task completed", "lesson": updated})
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	date := r.URL.Query().Get("date")
	if userID == "" || date == "" {
		writeError(w, fmt.Errorf("%w: user_id and date are required", errInvalidRequest))
		return
	}

	found, err := s.svc.GetLesson(r.Context(), userID, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lesson": found})
}

func (s *Server) handleTodaysTasks(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, fmt.Errorf("%w: user_id is required", errInvalidRequest))
		return
	}

	tasks, err := s.svc.FetchTodaysTasks(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

// handleSummarizeLesson produces a live oracle summary for today; for past
// dates it returns the stored summary field without an oracle call.
func (s *Server) handleSummarizeLesson(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, fmt.Errorf("%w: user_id is required", errInvalidRequest))
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = domain.Today()
	}

	var summary string
	var err error
	if date == domain.Today() {
		summary, err = s.svc.SummarizeTasks(r.Context(), userID, date)
	} else {
		var stored *domain.Lesson
		stored, err = s.svc.GetLesson(r.Context(), userID, date)
		if err == nil {
			summary = stored.Summary
		}
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"summary": summary})
}

func (s *Server) handleAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.lessons.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
