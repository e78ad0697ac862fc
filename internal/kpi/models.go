package kpi

import (
	"time"

	"github.com/google/uuid"
)

// Target metrics.
const (
	MetricVisitsCompleted = "visits_completed"
	MetricCoverage        = "coverage"
	MetricExhibitions     = "exhibitions"
)

func ValidMetric(m string) bool {
	switch m {
	case MetricVisitsCompleted, MetricCoverage, MetricExhibitions:
		return true
	}
	return false
}

// Target is a monthly KPI goal for a brand within a zone.
type Target struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TenantID  string     `gorm:"not null;uniqueIndex:uniq_target" json:"tenant_id"`
	BrandID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_target" json:"brand_id"`
	ZoneID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:uniq_target" json:"zone_id,omitempty"`
	Period    string     `gorm:"not null;uniqueIndex:uniq_target" json:"period"` // YYYY-MM
	Metric    string     `gorm:"not null;uniqueIndex:uniq_target" json:"metric"`
	Value     float64    `gorm:"not null" json:"value"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Target) TableName() string { return "kpi.targets" }

// Attainment pairs a target with the actual figure for its period.
type Attainment struct {
	Target     Target  `json:"target"`
	Actual     float64 `json:"actual"`
	Percentage float64 `json:"percentage"`
}
