package kpi

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/TradeForce/TF-Backend/internal/db"
	"github.com/TradeForce/TF-Backend/internal/utils"
	"github.com/TradeForce/TF-Backend/internal/visits"
	"github.com/go-chi/chi/v5"
)

var periodRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func ListTargets(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := db.DB.Where("tenant_id = ?", ac.TenantID)
	if period := r.URL.Query().Get("period"); period != "" {
		query = query.Where("period = ?", period)
	}
	if brandID := r.URL.Query().Get("brand_id"); brandID != "" {
		query = query.Where("brand_id = ?", brandID)
	}

	var targets []Target
	if err := query.Find(&targets).Error; err != nil {
		http.Error(w, "Failed to fetch targets: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(targets)
}

func CreateTarget(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var target Target
	if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !periodRe.MatchString(target.Period) {
		http.Error(w, "period must be YYYY-MM", http.StatusBadRequest)
		return
	}
	if !ValidMetric(target.Metric) {
		http.Error(w, "Invalid metric", http.StatusBadRequest)
		return
	}
	if target.Value <= 0 {
		http.Error(w, "value must be positive", http.StatusBadRequest)
		return
	}

	target.TenantID = ac.TenantID
	if err := db.DB.Create(&target).Error; err != nil {
		http.Error(w, "Failed to create target: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(target)
}

func UpdateTarget(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var target Target
	if err := db.DB.First(&target, "id = ? AND tenant_id = ?", chi.URLParam(r, "target_id"), ac.TenantID).Error; err != nil {
		http.Error(w, "Target not found", http.StatusNotFound)
		return
	}

	var input struct {
		Value *float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Value == nil || *input.Value <= 0 {
		http.Error(w, "value must be positive", http.StatusBadRequest)
		return
	}

	if err := db.DB.Model(&target).Update("value", *input.Value).Error; err != nil {
		http.Error(w, "Failed to update target: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(target)
}

func DeleteTarget(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result := db.DB.Where("id = ? AND tenant_id = ?", chi.URLParam(r, "target_id"), ac.TenantID).Delete(&Target{})
	if result.Error != nil {
		http.Error(w, "Failed to delete target: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Target not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SummaryHandler computes attainment for every matching target: the actual
// completed-visit figures for the target's period against the goal.
func SummaryHandler(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	period := r.URL.Query().Get("period")
	if !periodRe.MatchString(period) {
		http.Error(w, "period query param must be YYYY-MM", http.StatusBadRequest)
		return
	}

	query := db.DB.Where("tenant_id = ? AND period = ?", ac.TenantID, period)
	if brandID := r.URL.Query().Get("brand_id"); brandID != "" {
		query = query.Where("brand_id = ?", brandID)
	}
	if zoneID := r.URL.Query().Get("zone_id"); zoneID != "" {
		query = query.Where("zone_id = ?", zoneID)
	}

	var targets []Target
	if err := query.Find(&targets).Error; err != nil {
		http.Error(w, "Failed to fetch targets: "+err.Error(), http.StatusInternalServerError)
		return
	}

	summary := make([]Attainment, 0, len(targets))
	for _, target := range targets {
		actual, err := actualFor(target)
		if err != nil {
			http.Error(w, "Failed to compute attainment: "+err.Error(), http.StatusInternalServerError)
			return
		}

		att := Attainment{Target: target, Actual: actual}
		if target.Value > 0 {
			att.Percentage = actual / target.Value * 100
		}
		summary = append(summary, att)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// actualFor computes the real figure behind one target.
func actualFor(target Target) (float64, error) {
	prefix := target.Period + "%" // scheduled_date is YYYY-MM-DD

	base := db.DB.Model(&visits.Visit{}).
		Where("visits.visits.tenant_id = ? AND visits.visits.brand_id = ? AND visits.visits.status = ?",
			target.TenantID, target.BrandID, visits.StatusCompleted).
		Where("visits.visits.scheduled_date LIKE ?", prefix)
	if target.ZoneID != nil {
		base = base.Joins("JOIN catalog.client_stores cs ON cs.id = visits.visits.client_store_id").
			Where("cs.zone_id = ?", *target.ZoneID)
	}

	switch target.Metric {
	case MetricVisitsCompleted:
		var count int64
		if err := base.Count(&count).Error; err != nil {
			return 0, err
		}
		return float64(count), nil

	case MetricCoverage:
		// Distinct stores visited vs stores configured (in the zone, if set)
		var visited int64
		if err := base.Distinct("visits.visits.client_store_id").Count(&visited).Error; err != nil {
			return 0, err
		}

		storeQuery := db.DB.Table("catalog.client_stores").
			Where("tenant_id = ? AND deleted_at IS NULL", target.TenantID)
		if target.ZoneID != nil {
			storeQuery = storeQuery.Where("zone_id = ?", *target.ZoneID)
		}
		var total int64
		if err := storeQuery.Count(&total).Error; err != nil {
			return 0, err
		}
		if total == 0 {
			return 0, nil
		}
		return float64(visited) / float64(total) * 100, nil

	case MetricExhibitions:
		var count int64
		err := base.
			Joins("JOIN visits.exhibition_checks ec ON ec.visit_id = visits.visits.id").
			Where("ec.present = ?", true).
			Count(&count).Error
		if err != nil {
			return 0, err
		}
		return float64(count), nil
	}

	return 0, nil
}
