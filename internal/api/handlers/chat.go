package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/umoyo-health/umoyoai/internal/api"
	"github.com/umoyo-health/umoyoai/internal/api/middleware"
	"github.com/umoyo-health/umoyoai/internal/domain"
	"github.com/umoyo-health/umoyoai/internal/service"
)

type ChatService interface {
	Ask(ctx context.Context, userID, sectionID, question string) (*service.AskOutput, error)
	RecentChats(ctx context.Context, userID, sectionID string, limit int) ([]*domain.ChatRecord, error)
	SampleQuestions(ctx context.Context, sectionID string, n int) ([]string, error)
	ListSections(ctx context.Context) ([]*domain.Section, error)
}

type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type AskRequest struct {
	SectionID string `json:"section_id"`
	Question  string `json:"question"`
}

type ChatRecordResponse struct {
	ID        string `json:"id"`
	SectionID string `json:"section_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	CreatedAt string `json:"created_at"`
}

type AskResponse struct {
	Answer      string                `json:"answer"`
	RecentChats []*ChatRecordResponse `json:"recent_chats"`
}

func chatRecordToResponse(c *domain.ChatRecord) *ChatRecordResponse {
	return &ChatRecordResponse{
		ID:        c.ID,
		SectionID: c.SectionID,
		Question:  c.Question,
		Answer:    c.Answer,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func chatRecordsToResponse(records []*domain.ChatRecord) []*ChatRecordResponse {
	responses := make([]*ChatRecordResponse, len(records))
	for i, c := range records {
		responses[i] = chatRecordToResponse(c)
	}
	return responses
}

func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.SectionID == "" {
		api.Error(w, http.StatusBadRequest, "section_id is required")
		return
	}
	if req.Question == "" {
		api.Error(w, http.StatusBadRequest, "question is required")
		return
	}

	output, err := h.svc.Ask(r.Context(), user.ID, req.SectionID, req.Question)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, AskResponse{
		Answer:      output.Record.Answer,
		RecentChats: chatRecordsToResponse(output.RecentChats),
	})
}

func (h *ChatHandler) RecentChats(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sectionID := r.URL.Query().Get("section_id")
	if sectionID == "" {
		api.Error(w, http.StatusBadRequest, "section_id is required")
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.svc.RecentChats(r.Context(), user.ID, sectionID, limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, chatRecordsToResponse(records))
}

func (h *ChatHandler) SampleQuestions(w http.ResponseWriter, r *http.Request) {
	sectionID := r.URL.Query().Get("section_id")
	if sectionID == "" {
		api.Error(w, http.StatusBadRequest, "section_id is required")
		return
	}

	n := 0
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		if parsed, err := strconv.Atoi(nStr); err == nil && parsed > 0 {
			n = parsed
		}
	}

	questions, err := h.svc.SampleQuestions(r.Context(), sectionID, n)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, questions)
}

type SectionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

func (h *ChatHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.svc.ListSections(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*SectionResponse, len(sections))
	for i, s := range sections {
		responses[i] = &SectionResponse{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			CreatedAt:   s.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	api.Success(w, http.StatusOK, responses)
}
