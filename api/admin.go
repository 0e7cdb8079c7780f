package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/campushub/grievance/internal/grievance"
	"github.com/campushub/grievance/internal/models"
)

type AdminHandler struct {
	svc *grievance.Service
}

func NewAdminHandler(svc *grievance.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Dashboard returns the aggregate counters. Individual counter failures have
// already degraded to zero inside the service.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.DashboardCounts(r.Context()), http.StatusOK)
}

func (h *AdminHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.StudentOverview(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if rows == nil {
		rows = []models.StudentOverview{}
	}
	writeJSON(w, map[string]any{"items": rows}, http.StatusOK)
}

func (h *AdminHandler) ListAwaitingApproval(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.ListAwaitingApproval(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if rows == nil {
		rows = []models.SurveyStatus{}
	}
	writeJSON(w, map[string]any{"items": rows}, http.StatusOK)
}

func (h *AdminHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.ListApproved(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if rows == nil {
		rows = []models.SurveyStatus{}
	}
	writeJSON(w, map[string]any{"items": rows}, http.StatusOK)
}

func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.ApproveSurvey(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "survey approved"}, http.StatusOK)
}

func (h *AdminHandler) ListPendingComplaints(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.ListPendingComplaints(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if rows == nil {
		rows = []models.Complaint{}
	}
	writeJSON(w, map[string]any{"items": rows}, http.StatusOK)
}

func (h *AdminHandler) CloseComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.CloseComplaint(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "complaint closed"}, http.StatusOK)
}

func (h *AdminHandler) RemoveStudent(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.RemoveUser(r.Context(), email); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "student removed"}, http.StatusOK)
}
