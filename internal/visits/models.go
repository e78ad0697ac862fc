package visits

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Visit statuses. A visit starts planned, becomes in_progress at check-in and
// ends in exactly one of the three terminal states.
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
)

// Evidence stages tag a photo to the assessment phase it supports.
const (
	EvidenceStagePricing       = "pricing"
	EvidenceStageInventory     = "inventory"
	EvidenceStageCommunication = "communication"
	EvidenceStageGeneral       = "general"
)

// Visit is a single promotor-client-brand encounter. Assessment data may only
// be written while the visit is in_progress; the row is tombstoned, never
// hard-deleted.
type Visit struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TenantID      string     `gorm:"not null;index" json:"tenant_id"`
	ClientStoreID uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_store_id"`
	BrandID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"brand_id"`
	PromotorID    string     `gorm:"not null;index" json:"promotor_id"`
	ScheduledDate string     `gorm:"not null" json:"scheduled_date"` // YYYY-MM-DD
	Status        string     `gorm:"default:'planned';index" json:"status"`
	CancelReason  string     `json:"cancel_reason,omitempty"`

	CheckInAt      *time.Time `json:"check_in_at,omitempty"`
	CheckInLat     *float64   `json:"check_in_lat,omitempty"`
	CheckInLng     *float64   `json:"check_in_lng,omitempty"`
	CheckInAddress string     `json:"check_in_address,omitempty"` // reverse-geocoded, best-effort
	CheckOutAt     *time.Time `json:"check_out_at,omitempty"`
	CheckOutLat    *float64   `json:"check_out_lat,omitempty"`
	CheckOutLng    *float64   `json:"check_out_lng,omitempty"`

	Notes     string         `json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Visit) TableName() string { return "visits.visits" }

// DurationMinutes derives the visit duration from the check-in/check-out
// timestamps. Never stored.
func (v Visit) DurationMinutes() *float64 {
	if v.CheckInAt == nil || v.CheckOutAt == nil {
		return nil
	}
	mins := v.CheckOutAt.Sub(*v.CheckInAt).Minutes()
	return &mins
}

// StageAssessment is the one-to-one assessment row for a visit: three
// independent completion timestamps plus per-stage scalar fields.
// all_stages_completed may only be set once all three timestamps are non-null.
type StageAssessment struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VisitID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"visit_id"`

	Stage1CompletedAt *time.Time `json:"stage1_completed_at,omitempty"`
	Stage2CompletedAt *time.Time `json:"stage2_completed_at,omitempty"`
	Stage3CompletedAt *time.Time `json:"stage3_completed_at,omitempty"`

	// Stage 1: pricing / competitor audit
	PricingNotes string `json:"pricing_notes"`

	// Stage 2: inventory / purchase
	HasInventory     bool   `json:"has_inventory"`
	HasPurchaseOrder bool   `json:"has_purchase_order"`
	InventoryNotes   string `json:"inventory_notes"`
	OrderNotes       string `json:"order_notes"`

	// Stage 3: communication / POP compliance
	CommunicationCompliance bool   `json:"communication_compliance"`
	CommunicationNotes      string `json:"communication_notes"`

	AllStagesCompleted bool `gorm:"default:false" json:"all_stages_completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StageAssessment) TableName() string { return "visits.stage_assessments" }

// BrandProductAssessment is a stage-1 observation of one of the tenant's own
// products. The whole collection is replaced on every stage-1 save that
// supplies a non-empty set.
type BrandProductAssessment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VisitID     uuid.UUID `gorm:"type:uuid;not null;index" json:"visit_id"`
	ProductName string    `gorm:"not null" json:"product_name"`
	Price       float64   `json:"price"`
	PromoPrice  *float64  `json:"promo_price,omitempty"`
	OnPromotion bool      `json:"on_promotion"`
	ShelfShare  float64   `json:"shelf_share"` // percent 0-100
	FacingCount int       `json:"facing_count"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

func (BrandProductAssessment) TableName() string { return "visits.brand_product_assessments" }

// CompetitorAssessment is a stage-1 observation of a rival product.
// Replace-on-save, same policy as BrandProductAssessment.
type CompetitorAssessment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VisitID        uuid.UUID `gorm:"type:uuid;not null;index" json:"visit_id"`
	CompetitorName string    `gorm:"not null" json:"competitor_name"`
	ProductName    string    `json:"product_name"`
	Price          float64   `json:"price"`
	OnPromotion    bool      `json:"on_promotion"`
	ShelfShare     float64   `json:"shelf_share"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

func (CompetitorAssessment) TableName() string { return "visits.competitor_assessments" }

// PopMaterialCheck records presence/condition of one negotiated POP material
// (stage 3). Replace-on-save.
type PopMaterialCheck struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VisitID      uuid.UUID `gorm:"type:uuid;not null;index" json:"visit_id"`
	MaterialName string    `gorm:"not null" json:"material_name"`
	Negotiated   bool      `json:"negotiated"`
	Present      bool      `json:"present"`
	Condition    string    `json:"condition"` // good, damaged, missing
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

func (PopMaterialCheck) TableName() string { return "visits.pop_material_checks" }

// ExhibitionCheck records one negotiated exhibition (stage 3). Replace-on-save.
type ExhibitionCheck struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VisitID        uuid.UUID `gorm:"type:uuid;not null;index" json:"visit_id"`
	ExhibitionType string    `gorm:"not null" json:"exhibition_type"` // island, endcap, checkout, ...
	Negotiated     bool      `json:"negotiated"`
	Present        bool      `json:"present"`
	Condition      string    `json:"condition"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

func (ExhibitionCheck) TableName() string { return "visits.exhibition_checks" }

// Evidence is an append-only photo record supporting an assessment claim.
// The file bytes live in external storage; we persist the URL and metadata.
type Evidence struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VisitID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"visit_id"`
	EvidenceStage string         `gorm:"not null" json:"evidence_stage"` // pricing, inventory, communication, general
	EvidenceType  string         `gorm:"not null" json:"evidence_type"`  // shelf, display, invoice, ...
	FileURL       string         `gorm:"not null" json:"file_url"`
	Caption       string         `json:"caption"`
	Lat           *float64       `json:"lat,omitempty"`
	Lng           *float64       `json:"lng,omitempty"`
	Tags          pq.StringArray `gorm:"type:text[]" json:"tags"`
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Evidence) TableName() string { return "visits.evidence" }
