package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/campushub/grievance/internal/grievance"
	"github.com/campushub/grievance/internal/survey"
)

type SurveysHandler struct {
	svc *grievance.Service
}

func NewSurveysHandler(svc *grievance.Service) *SurveysHandler {
	return &SurveysHandler{svc: svc}
}

// Questions serves the fixed question list for a track.
func (h *SurveysHandler) Questions(w http.ResponseWriter, r *http.Request) {
	track := survey.Track(mux.Vars(r)["track"])
	qs, ok := survey.Questions(track)
	if !ok {
		http.Error(w, "unknown survey track", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{
		"track":     track,
		"questions": qs,
		"options":   survey.Options,
	}, http.StatusOK)
}

type submitSurveyRequest struct {
	Responses json.RawMessage `json:"responses"`
}

func (h *SurveysHandler) SubmitCollege(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, survey.TrackCollege)
}

func (h *SurveysHandler) SubmitHostel(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, survey.TrackHostel)
}

func (h *SurveysHandler) submit(w http.ResponseWriter, r *http.Request, track survey.Track) {
	var req submitSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	// Identity comes from the token, never the body.
	name, _ := r.Context().Value(CtxUserName).(string)
	email, _ := r.Context().Value(CtxUserEmail).(string)

	var err error
	if track == survey.TrackCollege {
		err = h.svc.SubmitCollegeSurvey(r.Context(), name, email, req.Responses)
	} else {
		err = h.svc.SubmitHostelSurvey(r.Context(), name, email, req.Responses)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "survey submitted"}, http.StatusCreated)
}

// Status returns the caller's own survey row, with pending placeholders when
// nothing was submitted yet.
func (h *SurveysHandler) Status(w http.ResponseWriter, r *http.Request) {
	email, _ := r.Context().Value(CtxUserEmail).(string)
	if email == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	row, err := h.svc.SurveyStatusFor(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, row, http.StatusOK)
}
