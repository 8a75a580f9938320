// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"chronicle/internal/models"
	"chronicle/internal/store"
)

// Tracking groups the writing-goal, writing-session, and daily-stats
// handlers.
type Tracking struct {
	goals    *store.GoalStore
	sessions *store.SessionStore
}

// NewTracking creates the tracking handler group.
func NewTracking(goals *store.GoalStore, sessions *store.SessionStore) *Tracking {
	return &Tracking{goals: goals, sessions: sessions}
}

// ListGoals handles GET /api/manuscripts/{id}/goals, returning active goals
// only.
func (h *Tracking) ListGoals(w http.ResponseWriter, r *http.Request) {
	manuscriptID, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid manuscript id")
		return
	}
	goals, err := h.goals.ListByManuscript(manuscriptID)
	if err != nil {
		slog.Error("list goals", "manuscript", manuscriptID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list goals")
		return
	}
	if goals == nil {
		goals = []models.WritingGoal{}
	}
	respondJSON(w, http.StatusOK, goals)
}

type createGoalRequest struct {
	ManuscriptID     uuid.UUID  `json:"manuscriptId"`
	SectionID        *uuid.UUID `json:"sectionId"`
	Type             string     `json:"type"`
	TargetWords      *int       `json:"targetWords"`
	TargetCharacters *int       `json:"targetCharacters"`
	TargetTime       *int       `json:"targetTime"`
	Deadline         *string    `json:"deadline"`
}

func (req createGoalRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ManuscriptID, validation.Required),
		validation.Field(&req.Type, validation.Required, validation.In(
			"daily", "weekly", "monthly", "total", "session",
		)),
		validation.Field(&req.Deadline, validation.Date("2006-01-02")),
	)
}

// CreateGoal handles POST /api/goals.
func (h *Tracking) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondErrorDetails(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	created, err := h.goals.Create(&models.WritingGoal{
		ManuscriptID:     req.ManuscriptID,
		SectionID:        req.SectionID,
		Type:             models.GoalType(req.Type),
		TargetWords:      req.TargetWords,
		TargetCharacters: req.TargetCharacters,
		TargetTime:       req.TargetTime,
		Deadline:         req.Deadline,
		IsActive:         true,
	})
	if err != nil {
		slog.Error("create goal", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create goal")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// DeactivateGoal handles DELETE /api/goals/{id}. Goals are deactivated, not
// removed, so past sessions keep their context.
func (h *Tracking) DeactivateGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	if err := h.goals.Deactivate(id); err != nil {
		slog.Error("deactivate goal", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to deactivate goal")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListSessions handles GET /api/manuscripts/{id}/sessions?limit=.
func (h *Tracking) ListSessions(w http.ResponseWriter, r *http.Request) {
	manuscriptID, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid manuscript id")
		return
	}
	limit := intParam(r.URL.Query().Get("limit"), 30)
	sessions, err := h.sessions.ListByManuscript(manuscriptID, limit)
	if err != nil {
		slog.Error("list sessions", "manuscript", manuscriptID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	if sessions == nil {
		sessions = []models.WritingSession{}
	}
	respondJSON(w, http.StatusOK, sessions)
}

type createSessionRequest struct {
	ManuscriptID      uuid.UUID  `json:"manuscriptId"`
	SectionID         *uuid.UUID `json:"sectionId"`
	WordsWritten      int        `json:"wordsWritten"`
	CharactersWritten int        `json:"charactersWritten"`
	TimeSpent         int        `json:"timeSpent"`
	StartedAt         time.Time  `json:"startedAt"`
	EndedAt           time.Time  `json:"endedAt"`
	SessionGoal       *int       `json:"sessionGoal"`
}

func (req createSessionRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ManuscriptID, validation.Required),
		validation.Field(&req.WordsWritten, validation.Min(0)),
		validation.Field(&req.TimeSpent, validation.Min(0)),
		validation.Field(&req.StartedAt, validation.Required),
		validation.Field(&req.EndedAt, validation.Required),
	)
}

// CreateSession handles POST /api/sessions. GoalAchieved is computed here
// against the session goal, if one was set.
func (h *Tracking) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondErrorDetails(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	achieved := req.SessionGoal != nil && req.WordsWritten >= *req.SessionGoal
	created, err := h.sessions.Create(&models.WritingSession{
		ManuscriptID:      req.ManuscriptID,
		SectionID:         req.SectionID,
		WordsWritten:      req.WordsWritten,
		CharactersWritten: req.CharactersWritten,
		TimeSpent:         req.TimeSpent,
		StartedAt:         req.StartedAt,
		EndedAt:           req.EndedAt,
		SessionGoal:       req.SessionGoal,
		GoalAchieved:      achieved,
	})
	if err != nil {
		slog.Error("create session", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Stats handles GET /api/manuscripts/{id}/stats?date=YYYY-MM-DD, defaulting
// to today in UTC.
func (h *Tracking) Stats(w http.ResponseWriter, r *http.Request) {
	manuscriptID, ok := urlUUID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid manuscript id")
		return
	}

	day := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	stats, err := h.sessions.StatsForDay(manuscriptID, day)
	if err != nil {
		slog.Error("writing stats", "manuscript", manuscriptID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"date":  day.Format("2006-01-02"),
		"stats": stats,
	})
}
