package surveys

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/TradeForce/TF-Backend/internal/db"
	"github.com/TradeForce/TF-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// ListSurveys returns tenant surveys, optionally filtered by ?status=.
// Field roles only see approved surveys.
func ListSurveys(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := db.DB.Where("tenant_id = ?", ac.TenantID)
	switch ac.Role {
	case "admin", "supervisor":
		if status := r.URL.Query().Get("status"); status != "" {
			query = query.Where("status = ?", status)
		}
	default:
		query = query.Where("status = ?", StatusApproved)
	}

	var surveys []Survey
	if err := query.Order("created_at DESC").Find(&surveys).Error; err != nil {
		http.Error(w, "Failed to fetch surveys: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(surveys)
}

func GetSurvey(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var survey Survey
	if err := db.DB.First(&survey, "id = ? AND tenant_id = ?", chi.URLParam(r, "survey_id"), ac.TenantID).Error; err != nil {
		http.Error(w, "Survey not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(survey)
}

func CreateSurvey(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var survey Survey
	if err := json.NewDecoder(r.Body).Decode(&survey); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if survey.Title == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	survey.TenantID = ac.TenantID
	survey.Status = StatusDraft
	survey.CreatedBy = ac.UserID

	if err := db.DB.Create(&survey).Error; err != nil {
		http.Error(w, "Failed to create survey: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(survey)
}

// UpdateSurvey edits a draft. Only the author, only while still a draft.
func UpdateSurvey(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var survey Survey
	if err := db.DB.First(&survey, "id = ? AND tenant_id = ?", chi.URLParam(r, "survey_id"), ac.TenantID).Error; err != nil {
		http.Error(w, "Survey not found", http.StatusNotFound)
		return
	}

	if survey.CreatedBy != ac.UserID {
		http.Error(w, "Only the author can edit this survey", http.StatusForbidden)
		return
	}
	if survey.Status != StatusDraft {
		http.Error(w, "Survey is not in draft status", http.StatusBadRequest)
		return
	}

	var input Survey
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if input.Title != "" {
		survey.Title = input.Title
	}
	if input.Description != "" {
		survey.Description = input.Description
	}
	if len(input.Questions) > 0 {
		survey.Questions = input.Questions
	}

	if err := db.DB.Save(&survey).Error; err != nil {
		http.Error(w, "Failed to update survey: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(survey)
}

// SubmitSurvey moves draft → pending_approval. Author only.
func SubmitSurvey(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var survey Survey
	if err := db.DB.First(&survey, "id = ? AND tenant_id = ?", chi.URLParam(r, "survey_id"), ac.TenantID).Error; err != nil {
		http.Error(w, "Survey not found", http.StatusNotFound)
		return
	}

	if survey.CreatedBy != ac.UserID {
		http.Error(w, "Only the author can submit this survey", http.StatusForbidden)
		return
	}
	if survey.Status != StatusDraft {
		http.Error(w, "Survey is not in draft status", http.StatusBadRequest)
		return
	}

	survey.Status = StatusPendingApproval
	if err := db.DB.Save(&survey).Error; err != nil {
		http.Error(w, "Failed to submit survey: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "submitted"})
}

// reviewSurvey applies an admin approve/reject decision.
func reviewSurvey(w http.ResponseWriter, r *http.Request, decision string) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var survey Survey
	if err := db.DB.First(&survey, "id = ? AND tenant_id = ?", chi.URLParam(r, "survey_id"), ac.TenantID).Error; err != nil {
		http.Error(w, "Survey not found", http.StatusNotFound)
		return
	}

	if survey.Status != StatusPendingApproval {
		http.Error(w, "Survey is not pending approval", http.StatusBadRequest)
		return
	}
	// Authors can't approve their own surveys
	if survey.CreatedBy == ac.UserID {
		http.Error(w, "Cannot review your own submission", http.StatusForbidden)
		return
	}

	var input struct {
		Comment string `json:"comment"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&input)
	}

	now := time.Now()
	survey.Status = decision
	survey.ReviewedBy = &ac.UserID
	survey.ReviewedAt = &now
	survey.ReviewComment = input.Comment

	if err := db.DB.Save(&survey).Error; err != nil {
		http.Error(w, "Failed to save review: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(survey)
}

func ApproveSurvey(w http.ResponseWriter, r *http.Request) {
	reviewSurvey(w, r, StatusApproved)
}

func RejectSurvey(w http.ResponseWriter, r *http.Request) {
	reviewSurvey(w, r, StatusRejected)
}
