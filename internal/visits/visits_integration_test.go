package visits_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/TradeForce/TF-Backend/internal/auth"
	"github.com/TradeForce/TF-Backend/internal/db"
	"github.com/TradeForce/TF-Backend/internal/visits"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// dbAvailable tracks whether the database connection was established.
var dbAvailable bool

// testServer is the shared httptest server for all integration tests.
var testServer *httptest.Server

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// No database available, skip all integration tests gracefully.
		os.Exit(m.Run())
	}

	db.Connect()
	dbAvailable = true

	auth.Init()
	visits.Init()

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Mount("/visits", visits.SetupRoutes())

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

// createFieldUser inserts a promotor (or other role) in a fresh tenant with a
// live session, and registers cleanup for everything the test creates under
// that tenant. Returns the user and a session_id usable as a cookie value.
func createFieldUser(t *testing.T, tenantID, role string) (auth.User, string) {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	user := auth.User{
		UserID:   uuid.New().String(),
		TenantID: tenantID,
		Username: fmt.Sprintf("fielduser_%s", uuid.New().String()[:8]),
		Role:     role,
		FullName: "Test User",
		Active:   true,
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	user.HashedPassword = string(hashed)

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	session := auth.Session{
		SessionID: uuid.New().String(),
		UserID:    user.UserID,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := db.DB.Create(&session).Error; err != nil {
		t.Fatalf("failed to create test session: %v", err)
	}

	t.Cleanup(func() {
		var visitIDs []uuid.UUID
		db.DB.Model(&visits.Visit{}).Unscoped().
			Where("tenant_id = ?", tenantID).Pluck("id", &visitIDs)
		if len(visitIDs) > 0 {
			db.DB.Unscoped().Where("visit_id IN ?", visitIDs).Delete(&visits.BrandProductAssessment{})
			db.DB.Unscoped().Where("visit_id IN ?", visitIDs).Delete(&visits.CompetitorAssessment{})
			db.DB.Unscoped().Where("visit_id IN ?", visitIDs).Delete(&visits.PopMaterialCheck{})
			db.DB.Unscoped().Where("visit_id IN ?", visitIDs).Delete(&visits.ExhibitionCheck{})
			db.DB.Unscoped().Where("visit_id IN ?", visitIDs).Delete(&visits.Evidence{})
			db.DB.Unscoped().Where("visit_id IN ?", visitIDs).Delete(&visits.StageAssessment{})
			db.DB.Unscoped().Where("tenant_id = ?", tenantID).Delete(&visits.Visit{})
		}
		db.DB.Where("user_id = ?", user.UserID).Delete(&auth.Session{})
		db.DB.Where("user_id = ?", user.UserID).Delete(&auth.User{})
	})

	return user, session.SessionID
}

// doJSON sends a request with the session cookie and an optional JSON body.
func doJSON(t *testing.T, method, path, sessionID string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, testServer.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	body := readBody(t, resp)
	if err := json.Unmarshal([]byte(body), v); err != nil {
		t.Fatalf("invalid JSON body: %s", body)
	}
}

// createPlannedVisit schedules a visit through the API and returns it.
func createPlannedVisit(t *testing.T, sessionID string) visits.Visit {
	t.Helper()

	resp := doJSON(t, http.MethodPost, "/visits/", sessionID, map[string]any{
		"client_store_id": uuid.New().String(),
		"brand_id":        uuid.New().String(),
		"scheduled_date":  time.Now().Format("2006-01-02"),
	})
	var visit visits.Visit
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create visit: expected 201, got %d; body: %s", resp.StatusCode, readBody(t, resp))
	}
	decodeBody(t, resp, &visit)
	if visit.Status != visits.StatusPlanned {
		t.Fatalf("new visit should be planned, got %q", visit.Status)
	}
	return visit
}

func saveStage(t *testing.T, sessionID string, visitID uuid.UUID, stage int, data map[string]any) *http.Response {
	t.Helper()
	return doJSON(t, http.MethodPost, "/visits/"+visitID.String()+"/assessment", sessionID, map[string]any{
		"stage": stage,
		"data":  data,
	})
}

// TestVisitFullFlow walks the happy path: schedule, check in without location,
// save the three stages across separate requests, close the gate, check out.
func TestVisitFullFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	tenant := "t_" + uuid.New().String()[:8]
	_, sessionID := createFieldUser(t, tenant, auth.RolePromotor)

	visit := createPlannedVisit(t, sessionID)

	// Check in with no body at all. Location is optional.
	resp := doJSON(t, http.MethodPost, "/visits/"+visit.ID.String()+"/checkin", sessionID, nil)
	var checkedIn visits.Visit
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("checkin: expected 200, got %d; body: %s", resp.StatusCode, readBody(t, resp))
	}
	decodeBody(t, resp, &checkedIn)
	if checkedIn.Status != visits.StatusInProgress || checkedIn.CheckInAt == nil {
		t.Fatalf("after checkin expected in_progress with timestamp, got %+v", checkedIn)
	}

	// A second checkin must be rejected, the visit is no longer planned.
	resp = doJSON(t, http.MethodPost, "/visits/"+visit.ID.String()+"/checkin", sessionID, nil)
	readBody(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 on double checkin, got %d", resp.StatusCode)
	}

	// Stage 1 with one own product and one competitor row.
	resp = saveStage(t, sessionID, visit.ID, 1, map[string]any{
		"pricing_notes": "promo tag missing on 150g",
		"brand_product_assessments": []map[string]any{
			{"product_name": "Cascade Chips 150g", "price": 2.5, "shelf_share": 15, "facing_count": 3},
		},
		"competitor_assessments": []map[string]any{
			{"competitor_name": "Altura Foods", "price": 2.2, "shelf_share": 25},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stage 1 save: expected 200, got %d; body: %s", resp.StatusCode, readBody(t, resp))
	}
	readBody(t, resp)

	// Checkout must fail while stages 2 and 3 are missing, naming them.
	resp = doJSON(t, http.MethodPost, "/visits/"+visit.ID.String()+"/checkout", sessionID, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("early checkout: expected 400, got %d", resp.StatusCode)
	}
	var gate struct {
		Error  string `json:"error"`
		Stages struct {
			Stage1 bool `json:"stage1"`
			Stage2 bool `json:"stage2"`
			Stage3 bool `json:"stage3"`
		} `json:"stages"`
	}
	decodeBody(t, resp, &gate)
	if gate.Error != "incomplete stages" {
		t.Errorf("expected incomplete stages error, got %q", gate.Error)
	}
	if !gate.Stages.Stage1 || gate.Stages.Stage2 || gate.Stages.Stage3 {
		t.Errorf("expected only stage1 complete, got %+v", gate.Stages)
	}

	// Stages 2 and 3.
	resp = saveStage(t, sessionID, visit.ID, 2, map[string]any{
		"has_inventory": true, "has_purchase_order": false, "inventory_notes": "two pallets",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stage 2 save: expected 200, got %d; body: %s", resp.StatusCode, readBody(t, resp))
	}
	readBody(t, resp)

	resp = saveStage(t, sessionID, visit.ID, 3, map[string]any{
		"communication_compliance": true,
		"pop_material_checks": []map[string]any{
			{"material_name": "Wobbler", "negotiated": true, "present": true, "condition": "good"},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stage 3 save: expected 200, got %d; body: %s", resp.StatusCode, readBody(t, resp))
	}
	readBody(t, resp)

	// Aggregate read shows all three timestamps and the child rows.
	resp = doJSON(t, http.MethodGet, "/visits/"+visit.ID.String()+"/assessment", sessionID, nil)
	var view struct {
		Assessment    *visits.StageAssessment         `json:"assessment"`
		BrandProducts []visits.BrandProductAssessment `json:"brand_products"`
		Competitors   []visits.CompetitorAssessment   `json:"competitors"`
		PopMaterials  []visits.PopMaterialCheck       `json:"pop_materials"`
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get assessment: expected 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &view)
	if view.Assessment == nil || view.Assessment.Stage1CompletedAt == nil ||
		view.Assessment.Stage2CompletedAt == nil || view.Assessment.Stage3CompletedAt == nil {
		t.Fatalf("expected all three stage timestamps, got %+v", view.Assessment)
	}
	if len(view.BrandProducts) != 1 || len(view.Competitors) != 1 || len(view.PopMaterials) != 1 {
		t.Errorf("unexpected child counts: %d brand products, %d competitors, %d pop materials",
			len(view.BrandProducts), len(view.Competitors), len(view.PopMaterials))
	}

	// Close the gate explicitly.
	resp = doJSON(t, http.MethodPut, "/visits/"+visit.ID.String()+"/assessment", sessionID, nil)
	var completed visits.StageAssessment
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete assessment: expected 200, got %d; body: %s", resp.StatusCode, readBody(t, resp))
	}
	decodeBody(t, resp, &completed)
	if !completed.AllStagesCompleted {
		t.Error("expected all_stages_completed after gate")
	}

	// Checkout now succeeds and reports a derived duration.
	resp = doJSON(t, http.MethodPost, "/visits/"+visit.ID.String()+"/checkout", sessionID, nil)
	var out struct {
		Visit           visits.Visit `json:"visit"`
		DurationMinutes *float64     `json:"duration_minutes"`
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("checkout: expected 200, got %d; body: %s", resp.StatusCode, readBody(t, resp))
	}
	decodeBody(t, resp, &out)
	if out.Visit.Status != visits.StatusCompleted {
		t.Errorf("expected completed, got %q", out.Visit.Status)
	}
	if out.DurationMinutes == nil || *out.DurationMinutes < 0 {
		t.Errorf("expected non-negative duration, got %v", out.DurationMinutes)
	}
}

// TestStageSaveRequiresActiveVisit verifies that assessment writes are rejected
// before check-in.
func TestStageSaveRequiresActiveVisit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	tenant := "t_" + uuid.New().String()[:8]
	_, sessionID := createFieldUser(t, tenant, auth.RolePromotor)

	visit := createPlannedVisit(t, sessionID)

	resp := saveStage(t, sessionID, visit.ID, 2, map[string]any{"has_inventory": true})
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for stage save on planned visit, got %d; body: %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "not in progress") {
		t.Errorf("expected 'not in progress' message, got %q", body)
	}
}

// TestStageResaveKeepsChildrenOnEmptyArray verifies the replace policy: a
// re-save with a non-empty array replaces the rows, while an absent or empty
// array leaves the previously saved rows alone.
func TestStageResaveKeepsChildrenOnEmptyArray(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	tenant := "t_" + uuid.New().String()[:8]
	_, sessionID := createFieldUser(t, tenant, auth.RolePromotor)

	visit := createPlannedVisit(t, sessionID)
	resp := doJSON(t, http.MethodPost, "/visits/"+visit.ID.String()+"/checkin", sessionID, nil)
	readBody(t, resp)

	// First save: one product row.
	resp = saveStage(t, sessionID, visit.ID, 1, map[string]any{
		"brand_product_assessments": []map[string]any{
			{"product_name": "Cascade Chips 150g", "price": 2.5},
		},
	})
	readBody(t, resp)

	// Second save: notes only, no arrays. The product row must survive.
	resp = saveStage(t, sessionID, visit.ID, 1, map[string]any{
		"pricing_notes": "updated notes only",
	})
	readBody(t, resp)

	resp = doJSON(t, http.MethodGet, "/visits/"+visit.ID.String()+"/assessment", sessionID, nil)
	var view struct {
		Assessment    *visits.StageAssessment         `json:"assessment"`
		BrandProducts []visits.BrandProductAssessment `json:"brand_products"`
	}
	decodeBody(t, resp, &view)
	if len(view.BrandProducts) != 1 {
		t.Fatalf("expected product row to survive notes-only re-save, got %d rows", len(view.BrandProducts))
	}
	if view.Assessment == nil || view.Assessment.PricingNotes != "updated notes only" {
		t.Errorf("expected notes to update, got %+v", view.Assessment)
	}

	// Third save: two product rows. Replaces the old set wholesale.
	resp = saveStage(t, sessionID, visit.ID, 1, map[string]any{
		"brand_product_assessments": []map[string]any{
			{"product_name": "Cascade Chips 150g", "price": 2.6},
			{"product_name": "Cascade Chips 300g", "price": 4.1},
		},
	})
	readBody(t, resp)

	resp = doJSON(t, http.MethodGet, "/visits/"+visit.ID.String()+"/assessment", sessionID, nil)
	decodeBody(t, resp, &view)
	if len(view.BrandProducts) != 2 {
		t.Fatalf("expected replacement set of 2 rows, got %d", len(view.BrandProducts))
	}
}

// TestVisitOwnershipHidesExistence verifies that another promotor in the same
// tenant gets 404, not 403, for a visit they don't own.
func TestVisitOwnershipHidesExistence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	tenant := "t_" + uuid.New().String()[:8]
	_, ownerSession := createFieldUser(t, tenant, auth.RolePromotor)
	_, otherSession := createFieldUser(t, tenant, auth.RolePromotor)

	visit := createPlannedVisit(t, ownerSession)

	resp := doJSON(t, http.MethodGet, "/visits/"+visit.ID.String(), otherSession, nil)
	readBody(t, resp)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for non-owned visit read, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, "/visits/"+visit.ID.String()+"/checkin", otherSession, nil)
	readBody(t, resp)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for non-owned checkin, got %d", resp.StatusCode)
	}
}

// TestCancelBlocksFurtherTransitions verifies no_show is terminal.
func TestCancelBlocksFurtherTransitions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	tenant := "t_" + uuid.New().String()[:8]
	_, sessionID := createFieldUser(t, tenant, auth.RolePromotor)

	visit := createPlannedVisit(t, sessionID)

	resp := doJSON(t, http.MethodPost, "/visits/"+visit.ID.String()+"/cancel", sessionID, map[string]any{
		"status": "no_show", "reason": "store closed",
	})
	var cancelled visits.Visit
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cancel: expected 200, got %d; body: %s", resp.StatusCode, readBody(t, resp))
	}
	decodeBody(t, resp, &cancelled)
	if cancelled.Status != visits.StatusNoShow || cancelled.CancelReason != "store closed" {
		t.Errorf("unexpected cancel result: %+v", cancelled)
	}

	resp = doJSON(t, http.MethodPost, "/visits/"+visit.ID.String()+"/checkin", sessionID, nil)
	readBody(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for checkin after no_show, got %d", resp.StatusCode)
	}
}

// TestEvidenceAppendAndDelete verifies evidence accumulates in creation order
// and individual records can be tombstoned.
func TestEvidenceAppendAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	tenant := "t_" + uuid.New().String()[:8]
	_, sessionID := createFieldUser(t, tenant, auth.RolePromotor)

	visit := createPlannedVisit(t, sessionID)
	resp := doJSON(t, http.MethodPost, "/visits/"+visit.ID.String()+"/checkin", sessionID, nil)
	readBody(t, resp)

	addEvidence := func(stage, caption string) visits.Evidence {
		resp := doJSON(t, http.MethodPost, "/visits/"+visit.ID.String()+"/evidence", sessionID, map[string]any{
			"evidence_stage": stage,
			"evidence_type":  "photo",
			"file_url":       "https://cdn.example.com/" + uuid.New().String() + ".jpg",
			"caption":        caption,
			"tags":           []string{"shelf", stage},
		})
		var ev visits.Evidence
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("add evidence: expected 201, got %d; body: %s", resp.StatusCode, readBody(t, resp))
		}
		decodeBody(t, resp, &ev)
		return ev
	}

	first := addEvidence("pricing", "main shelf")
	addEvidence("general", "storefront")

	resp = doJSON(t, http.MethodGet, "/visits/"+visit.ID.String()+"/evidence", sessionID, nil)
	var list []visits.Evidence
	decodeBody(t, resp, &list)
	if len(list) != 2 {
		t.Fatalf("expected 2 evidence records, got %d", len(list))
	}
	if list[0].Caption != "main shelf" {
		t.Errorf("expected creation order, first caption %q", list[0].Caption)
	}

	// Unknown evidence stage is rejected.
	resp = doJSON(t, http.MethodPost, "/visits/"+visit.ID.String()+"/evidence", sessionID, map[string]any{
		"evidence_stage": "stage1", "evidence_type": "photo", "file_url": "https://cdn.example.com/x.jpg",
	})
	readBody(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown evidence stage, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodDelete, "/visits/"+visit.ID.String()+"/evidence/"+first.ID.String(), sessionID, nil)
	readBody(t, resp)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 on evidence delete, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, "/visits/"+visit.ID.String()+"/evidence", sessionID, nil)
	decodeBody(t, resp, &list)
	if len(list) != 1 {
		t.Errorf("expected 1 evidence record after delete, got %d", len(list))
	}
}
