package visits

import (
	"encoding/json"
	"net/http"

	"github.com/TradeForce/TF-Backend/internal/db"
	"github.com/go-chi/chi/v5"
)

// AddEvidenceHandler appends a tagged photo record. Pure insert; evidence is
// never replaced or merged, and a visit may collect evidence in any status.
func AddEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	visit, _, ok := loadOwnedVisit(w, r)
	if !ok {
		return
	}

	var input EvidenceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(&input); err != nil {
		http.Error(w, "Invalid evidence payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	evidence := Evidence{
		VisitID:       visit.ID,
		EvidenceStage: input.EvidenceStage,
		EvidenceType:  input.EvidenceType,
		FileURL:       input.FileURL,
		Caption:       input.Caption,
		Lat:           input.Lat,
		Lng:           input.Lng,
		Tags:          input.Tags,
	}
	if err := db.DB.Create(&evidence).Error; err != nil {
		http.Error(w, "Failed to save evidence: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONStatus(w, http.StatusCreated, evidence)
}

// ListEvidenceHandler returns the visit's evidence in creation order,
// soft-delete filtered.
func ListEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	visit, _, ok := loadOwnedVisit(w, r)
	if !ok {
		return
	}

	evidence := []Evidence{}
	if err := db.DB.Where("visit_id = ?", visit.ID).Order("created_at ASC").Find(&evidence).Error; err != nil {
		http.Error(w, "Failed to fetch evidence: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(evidence)
}

// DeleteEvidenceHandler tombstones one evidence record.
func DeleteEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	visit, _, ok := loadOwnedVisit(w, r)
	if !ok {
		return
	}

	result := db.DB.Where("id = ? AND visit_id = ?", chi.URLParam(r, "evidence_id"), visit.ID).Delete(&Evidence{})
	if result.Error != nil {
		http.Error(w, "Failed to delete evidence: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Evidence not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
