package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/umoyo-health/umoyoai/internal/api"
	"github.com/umoyo-health/umoyoai/internal/api/middleware"
	"github.com/umoyo-health/umoyoai/internal/domain"
	"github.com/umoyo-health/umoyoai/internal/pagination"
	"github.com/umoyo-health/umoyoai/internal/service"
)

type TrainingService interface {
	Generate(ctx context.Context, user *domain.User, sectionID, topic string) (*domain.Handout, error)
	Get(ctx context.Context, id string) (*domain.Handout, error)
	List(ctx context.Context, filter service.HandoutFilter) (*pagination.Page[*domain.Handout], error)
	Pages(ctx context.Context, filter service.HandoutFilter) (int, error)
	Delete(ctx context.Context, user *domain.User, handoutID string) error
}

type TrainingHandler struct {
	svc TrainingService
}

func NewTrainingHandler(svc TrainingService) *TrainingHandler {
	return &TrainingHandler{svc: svc}
}

type GenerateHandoutRequest struct {
	SectionID string `json:"section_id"`
	Topic     string `json:"topic"`
}

type HandoutResponse struct {
	ID          string `json:"id"`
	SectionID   string `json:"section_id"`
	CreatedByID string `json:"created_by_id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	CreatedAt   string `json:"created_at"`
}

func handoutToResponse(h *domain.Handout) *HandoutResponse {
	return &HandoutResponse{
		ID:          h.ID,
		SectionID:   h.SectionID,
		CreatedByID: h.CreatedByID,
		Title:       h.Title,
		Body:        h.Body,
		CreatedAt:   h.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *TrainingHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req GenerateHandoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.SectionID == "" {
		api.Error(w, http.StatusBadRequest, "section_id is required")
		return
	}
	if req.Topic == "" {
		api.Error(w, http.StatusBadRequest, "topic is required")
		return
	}

	handout, err := h.svc.Generate(r.Context(), user, req.SectionID, req.Topic)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, handoutToResponse(handout))
}

func (h *TrainingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	handout, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, handoutToResponse(handout))
}

type HandoutListResponse struct {
	Items      []*HandoutResponse `json:"items"`
	Total      int                `json:"total"`
	TotalPages int                `json:"total_pages"`
}

func (h *TrainingHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := handoutFilterFromQuery(r)
	if err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.svc.List(r.Context(), filter)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*HandoutResponse, len(page.Items))
	for i, handout := range page.Items {
		responses[i] = handoutToResponse(handout)
	}

	api.Success(w, http.StatusOK, HandoutListResponse{
		Items:      responses,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

type TotalPagesResponse struct {
	TotalPages int `json:"total_pages"`
}

func (h *TrainingHandler) Pages(w http.ResponseWriter, r *http.Request) {
	filter, err := handoutFilterFromQuery(r)
	if err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	pages, err := h.svc.Pages(r.Context(), filter)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, TotalPagesResponse{TotalPages: pages})
}

func (h *TrainingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.svc.Delete(r.Context(), user, id); err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func handoutFilterFromQuery(r *http.Request) (service.HandoutFilter, error) {
	query := r.URL.Query()

	order, err := domain.ParseSortOrder(query.Get("order"))
	if err != nil {
		return service.HandoutFilter{}, err
	}

	filter := service.HandoutFilter{
		SectionID:   query.Get("section_id"),
		CreatedByID: query.Get("created_by"),
		Search:      query.Get("search"),
		Order:       order,
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed > 0 {
			filter.Offset = parsed
		}
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			filter.Limit = parsed
		}
	}

	return filter, nil
}
