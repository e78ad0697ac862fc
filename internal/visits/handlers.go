package visits

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/TradeForce/TF-Backend/internal/db"
	"github.com/TradeForce/TF-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// writeJSONStatus writes JSON with a specific HTTP status code.
func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// loadOwnedVisit fetches a tenant-scoped visit and enforces promotor
// ownership. Non-owned and missing visits both come back as 404 so callers
// can't probe for other promotors' visit IDs.
func loadOwnedVisit(w http.ResponseWriter, r *http.Request) (*Visit, utils.AuthContext, bool) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, ac, false
	}

	var visit Visit
	err := db.DB.First(&visit, "id = ? AND tenant_id = ?", chi.URLParam(r, "visit_id"), ac.TenantID).Error
	if err != nil {
		http.Error(w, "Visit not found", http.StatusNotFound)
		return nil, ac, false
	}

	if visit.PromotorID != ac.UserID {
		http.Error(w, "Visit not found", http.StatusNotFound)
		return nil, ac, false
	}

	return &visit, ac, true
}

// CreateVisit schedules a visit. Promotors schedule for themselves;
// supervisors and admins may assign any promotor in the tenant.
func CreateVisit(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		ClientStoreID uuid.UUID `json:"client_store_id"`
		BrandID       uuid.UUID `json:"brand_id"`
		PromotorID    string    `json:"promotor_id"`
		ScheduledDate string    `json:"scheduled_date"`
		Notes         string    `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if input.ClientStoreID == uuid.Nil || input.BrandID == uuid.Nil {
		http.Error(w, "client_store_id and brand_id are required", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse("2006-01-02", input.ScheduledDate); err != nil {
		http.Error(w, "scheduled_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	promotorID := input.PromotorID
	switch ac.Role {
	case "promotor", "advisor":
		// Field roles always own their visits
		promotorID = ac.UserID
	default:
		if promotorID == "" {
			promotorID = ac.UserID
		}
	}

	visit := Visit{
		TenantID:      ac.TenantID,
		ClientStoreID: input.ClientStoreID,
		BrandID:       input.BrandID,
		PromotorID:    promotorID,
		ScheduledDate: input.ScheduledDate,
		Status:        StatusPlanned,
		Notes:         input.Notes,
	}
	if err := db.DB.Create(&visit).Error; err != nil {
		http.Error(w, "Failed to create visit: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONStatus(w, http.StatusCreated, visit)
}

// ListVisits returns the caller's visits; supervisors and admins see the whole
// tenant. Supports ?status=, ?date=, ?client_id= filters.
func ListVisits(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := db.DB.Where("tenant_id = ?", ac.TenantID)
	switch ac.Role {
	case "supervisor", "admin":
		if promotorID := r.URL.Query().Get("promotor_id"); promotorID != "" {
			query = query.Where("promotor_id = ?", promotorID)
		}
	default:
		query = query.Where("promotor_id = ?", ac.UserID)
	}

	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := r.URL.Query().Get("date"); date != "" {
		query = query.Where("scheduled_date = ?", date)
	}
	if clientID := r.URL.Query().Get("client_id"); clientID != "" {
		query = query.Where("client_store_id = ?", clientID)
	}

	var visits []Visit
	if err := query.Order("scheduled_date DESC, created_at DESC").Find(&visits).Error; err != nil {
		http.Error(w, "Failed to fetch visits: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(visits)
}

// GetVisit returns one visit. Promotors may only read their own.
func GetVisit(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var visit Visit
	err := db.DB.First(&visit, "id = ? AND tenant_id = ?", chi.URLParam(r, "visit_id"), ac.TenantID).Error
	if err != nil {
		http.Error(w, "Visit not found", http.StatusNotFound)
		return
	}

	if visit.PromotorID != ac.UserID && ac.Role != "supervisor" && ac.Role != "admin" {
		http.Error(w, "Visit not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(visit)
}

// CheckinHandler transitions planned → in_progress. Geolocation is optional
// and best-effort: a missing location or failed reverse geocode never blocks
// the transition.
func CheckinHandler(w http.ResponseWriter, r *http.Request) {
	visit, _, ok := loadOwnedVisit(w, r)
	if !ok {
		return
	}

	var input struct {
		Lat *float64 `json:"lat,omitempty"`
		Lng *float64 `json:"lng,omitempty"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&input) // empty body is fine
	}

	if !CanTransition(visit.Status, StatusInProgress) {
		http.Error(w, "Visit is not in planned status", http.StatusBadRequest)
		return
	}

	now := time.Now()
	visit.Status = StatusInProgress
	visit.CheckInAt = &now
	visit.CheckInLat = input.Lat
	visit.CheckInLng = input.Lng

	if input.Lat != nil && input.Lng != nil && geocoder != nil {
		result, err := geocoder.ReverseGeocode(r.Context(), *input.Lat, *input.Lng)
		if err != nil {
			log.Printf("[visits] reverse geocode failed for visit %s: %v", visit.ID, err)
		} else {
			visit.CheckInAddress = result.Formatted
		}
	}

	if err := db.DB.Save(visit).Error; err != nil {
		http.Error(w, "Failed to check in: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(visit)
}

// CheckoutHandler transitions in_progress → completed, guarded by the
// completion gate. Duration is derived from the timestamps, never stored.
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	visit, _, ok := loadOwnedVisit(w, r)
	if !ok {
		return
	}

	var input struct {
		Lat *float64 `json:"lat,omitempty"`
		Lng *float64 `json:"lng,omitempty"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&input)
	}

	if !CanTransition(visit.Status, StatusCompleted) {
		http.Error(w, "Visit is not in progress", http.StatusBadRequest)
		return
	}

	assessment, err := findAssessment(visit.ID)
	if err != nil {
		http.Error(w, "Failed to read assessment: "+err.Error(), http.StatusInternalServerError)
		return
	}
	report := GateReport(assessment)
	if !report.AllComplete() {
		writeJSONStatus(w, http.StatusBadRequest, map[string]any{
			"error":  "incomplete stages",
			"stages": report,
		})
		return
	}

	now := time.Now()
	visit.Status = StatusCompleted
	visit.CheckOutAt = &now
	visit.CheckOutLat = input.Lat
	visit.CheckOutLng = input.Lng

	if err := db.DB.Save(visit).Error; err != nil {
		http.Error(w, "Failed to check out: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"visit":            visit,
		"duration_minutes": visit.DurationMinutes(),
	})
}

// CancelHandler moves a non-terminal visit to cancelled or no_show.
func CancelHandler(w http.ResponseWriter, r *http.Request) {
	visit, _, ok := loadOwnedVisit(w, r)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if input.Status != StatusCancelled && input.Status != StatusNoShow {
		http.Error(w, "status must be cancelled or no_show", http.StatusBadRequest)
		return
	}
	if !CanTransition(visit.Status, input.Status) {
		http.Error(w, "Visit is already in a terminal status", http.StatusBadRequest)
		return
	}

	visit.Status = input.Status
	visit.CancelReason = input.Reason
	if err := db.DB.Save(visit).Error; err != nil {
		http.Error(w, "Failed to cancel visit: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(visit)
}

// findAssessment loads the visit's assessment row. nil, nil when none exists.
func findAssessment(visitID uuid.UUID) (*StageAssessment, error) {
	var assessment StageAssessment
	err := db.DB.First(&assessment, "visit_id = ?", visitID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// AssessmentView is the aggregate read for the wizard: the assessment row,
// both pairs of child collections and the evidence list. Assembled from
// independent queries; no cross-query isolation guarantee.
type AssessmentView struct {
	Assessment    *StageAssessment         `json:"assessment"`
	BrandProducts []BrandProductAssessment `json:"brand_products"`
	Competitors   []CompetitorAssessment   `json:"competitors"`
	PopMaterials  []PopMaterialCheck       `json:"pop_materials"`
	Exhibitions   []ExhibitionCheck        `json:"exhibitions"`
	Evidence      []Evidence               `json:"evidence"`
}

func GetAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	visit, _, ok := loadOwnedVisit(w, r)
	if !ok {
		return
	}

	assessment, err := findAssessment(visit.ID)
	if err != nil {
		http.Error(w, "Failed to read assessment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	view := AssessmentView{
		Assessment:    assessment,
		BrandProducts: []BrandProductAssessment{},
		Competitors:   []CompetitorAssessment{},
		PopMaterials:  []PopMaterialCheck{},
		Exhibitions:   []ExhibitionCheck{},
		Evidence:      []Evidence{},
	}

	if err := db.DB.Where("visit_id = ?", visit.ID).Find(&view.BrandProducts).Error; err != nil {
		http.Error(w, "Failed to read brand products: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := db.DB.Where("visit_id = ?", visit.ID).Find(&view.Competitors).Error; err != nil {
		http.Error(w, "Failed to read competitors: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := db.DB.Where("visit_id = ?", visit.ID).Find(&view.PopMaterials).Error; err != nil {
		http.Error(w, "Failed to read POP materials: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := db.DB.Where("visit_id = ?", visit.ID).Find(&view.Exhibitions).Error; err != nil {
		http.Error(w, "Failed to read exhibitions: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := db.DB.Where("visit_id = ?", visit.ID).Order("created_at ASC").Find(&view.Evidence).Error; err != nil {
		http.Error(w, "Failed to read evidence: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// SaveStageHandler upserts one stage of the assessment. Body:
// {"stage": 1|2|3, "data": {...}}. The parent upsert and any child
// replacement run in a single transaction.
func SaveStageHandler(w http.ResponseWriter, r *http.Request) {
	visit, _, ok := loadOwnedVisit(w, r)
	if !ok {
		return
	}

	var input struct {
		Stage int             `json:"stage"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payload, err := ParseStagePayload(input.Stage, input.Data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Assessment data may only be written while the visit is active.
	if visit.Status != StatusInProgress {
		http.Error(w, "Visit is not in progress", http.StatusBadRequest)
		return
	}

	now := time.Now()
	assessment := StageAssessment{VisitID: visit.ID}
	var updates []string

	switch payload.Stage {
	case 1:
		assessment.Stage1CompletedAt = &now
		assessment.PricingNotes = payload.Stage1.PricingNotes
		updates = []string{"stage1_completed_at", "pricing_notes", "updated_at"}
	case 2:
		assessment.Stage2CompletedAt = &now
		assessment.HasInventory = payload.Stage2.HasInventory
		assessment.HasPurchaseOrder = payload.Stage2.HasPurchaseOrder
		assessment.InventoryNotes = payload.Stage2.InventoryNotes
		assessment.OrderNotes = payload.Stage2.OrderNotes
		updates = []string{"stage2_completed_at", "has_inventory", "has_purchase_order", "inventory_notes", "order_notes", "updated_at"}
	case 3:
		assessment.Stage3CompletedAt = &now
		assessment.CommunicationCompliance = payload.Stage3.CommunicationCompliance
		assessment.CommunicationNotes = payload.Stage3.CommunicationNotes
		updates = []string{"stage3_completed_at", "communication_compliance", "communication_notes", "updated_at"}
	}

	err = db.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "visit_id"}},
			DoUpdates: clause.AssignmentColumns(updates),
		}).Create(&assessment).Error; err != nil {
			return err
		}

		switch payload.Stage {
		case 1:
			if err := replaceBrandProducts(tx, visit.ID, payload.Stage1.BrandProductAssessments); err != nil {
				return err
			}
			if err := replaceCompetitors(tx, visit.ID, payload.Stage1.CompetitorAssessments); err != nil {
				return err
			}
		case 3:
			if err := replacePopMaterials(tx, visit.ID, payload.Stage3.PopMaterialChecks); err != nil {
				return err
			}
			if err := replaceExhibitions(tx, visit.ID, payload.Stage3.ExhibitionChecks); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("[visits] stage %d save failed for visit %s: %v", payload.Stage, visit.ID, err)
		http.Error(w, "Failed to save stage", http.StatusInternalServerError)
		return
	}

	saved, err := findAssessment(visit.ID)
	if err != nil || saved == nil {
		http.Error(w, "Failed to reload assessment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saved)
}

// CompleteAssessmentHandler is the completion gate: PUT succeeds iff all three
// stage timestamps are set, reporting exactly the missing stages otherwise.
func CompleteAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	visit, _, ok := loadOwnedVisit(w, r)
	if !ok {
		return
	}

	assessment, err := findAssessment(visit.ID)
	if err != nil {
		http.Error(w, "Failed to read assessment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	report := GateReport(assessment)
	if !report.AllComplete() {
		writeJSONStatus(w, http.StatusBadRequest, map[string]any{
			"error":  "incomplete stages",
			"stages": report,
		})
		return
	}

	if !assessment.AllStagesCompleted {
		if err := db.DB.Model(assessment).Update("all_stages_completed", true).Error; err != nil {
			http.Error(w, "Failed to mark assessment complete: "+err.Error(), http.StatusInternalServerError)
			return
		}
		assessment.AllStagesCompleted = true
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assessment)
}
