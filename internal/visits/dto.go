package visits

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// BrandProductItem is one stage-1 own-product observation in the request body.
type BrandProductItem struct {
	ProductName string   `json:"product_name" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	PromoPrice  *float64 `json:"promo_price,omitempty" validate:"omitempty,gte=0"`
	OnPromotion bool     `json:"on_promotion"`
	ShelfShare  float64  `json:"shelf_share" validate:"gte=0,lte=100"`
	FacingCount int      `json:"facing_count" validate:"gte=0"`
	Notes       string   `json:"notes"`
}

// CompetitorItem is one stage-1 competitor observation.
type CompetitorItem struct {
	CompetitorName string  `json:"competitor_name" validate:"required"`
	ProductName    string  `json:"product_name"`
	Price          float64 `json:"price" validate:"gte=0"`
	OnPromotion    bool    `json:"on_promotion"`
	ShelfShare     float64 `json:"shelf_share" validate:"gte=0,lte=100"`
	Notes          string  `json:"notes"`
}

// PopMaterialItem is one stage-3 POP material check.
type PopMaterialItem struct {
	MaterialName string `json:"material_name" validate:"required"`
	Negotiated   bool   `json:"negotiated"`
	Present      bool   `json:"present"`
	Condition    string `json:"condition" validate:"omitempty,oneof=good damaged missing"`
	Notes        string `json:"notes"`
}

// ExhibitionItem is one stage-3 exhibition check.
type ExhibitionItem struct {
	ExhibitionType string `json:"exhibition_type" validate:"required"`
	Negotiated     bool   `json:"negotiated"`
	Present        bool   `json:"present"`
	Condition      string `json:"condition" validate:"omitempty,oneof=good damaged missing"`
	Notes          string `json:"notes"`
}

type Stage1Data struct {
	PricingNotes            string             `json:"pricing_notes"`
	BrandProductAssessments []BrandProductItem `json:"brand_product_assessments" validate:"dive"`
	CompetitorAssessments   []CompetitorItem   `json:"competitor_assessments" validate:"dive"`
}

type Stage2Data struct {
	HasInventory     bool   `json:"has_inventory"`
	HasPurchaseOrder bool   `json:"has_purchase_order"`
	InventoryNotes   string `json:"inventory_notes"`
	OrderNotes       string `json:"order_notes"`
}

type Stage3Data struct {
	CommunicationCompliance bool              `json:"communication_compliance"`
	CommunicationNotes      string            `json:"communication_notes"`
	PopMaterialChecks       []PopMaterialItem `json:"pop_material_checks" validate:"dive"`
	ExhibitionChecks        []ExhibitionItem  `json:"exhibition_checks" validate:"dive"`
}

// StagePayload is the tagged union for a stage save: exactly one of the three
// data fields is non-nil, matching Stage.
type StagePayload struct {
	Stage  int
	Stage1 *Stage1Data
	Stage2 *Stage2Data
	Stage3 *Stage3Data
}

// ParseStagePayload decodes and validates the stage-shaped `data` object for
// the given stage number.
func ParseStagePayload(stage int, raw json.RawMessage) (*StagePayload, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("data is required")
	}

	payload := &StagePayload{Stage: stage}

	switch stage {
	case 1:
		var data Stage1Data
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("invalid stage 1 data: %w", err)
		}
		if err := validate.Struct(&data); err != nil {
			return nil, err
		}
		payload.Stage1 = &data
	case 2:
		var data Stage2Data
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("invalid stage 2 data: %w", err)
		}
		if err := validate.Struct(&data); err != nil {
			return nil, err
		}
		payload.Stage2 = &data
	case 3:
		var data Stage3Data
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("invalid stage 3 data: %w", err)
		}
		if err := validate.Struct(&data); err != nil {
			return nil, err
		}
		payload.Stage3 = &data
	default:
		return nil, fmt.Errorf("stage must be 1, 2 or 3")
	}

	return payload, nil
}

// EvidenceInput is the request body for appending an evidence record.
type EvidenceInput struct {
	EvidenceStage string   `json:"evidence_stage" validate:"required,oneof=pricing inventory communication general"`
	EvidenceType  string   `json:"evidence_type" validate:"required"`
	FileURL       string   `json:"file_url" validate:"required,url"`
	Caption       string   `json:"caption"`
	Lat           *float64 `json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lng           *float64 `json:"lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Tags          []string `json:"tags"`
}
