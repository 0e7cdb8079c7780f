package api

import (
	"encoding/json"
	"net/http"

	"github.com/campushub/grievance/internal/grievance"
)

type ComplaintsHandler struct {
	svc *grievance.Service
}

func NewComplaintsHandler(svc *grievance.Service) *ComplaintsHandler {
	return &ComplaintsHandler{svc: svc}
}

type submitComplaintRequest struct {
	Text string `json:"text"`
}

type submitComplaintResponse struct {
	ID int64 `json:"id"`
}

func (h *ComplaintsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	name, _ := r.Context().Value(CtxUserName).(string)
	email, _ := r.Context().Value(CtxUserEmail).(string)

	id, err := h.svc.SubmitComplaint(r.Context(), name, email, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, submitComplaintResponse{ID: id}, http.StatusCreated)
}
