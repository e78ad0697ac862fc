package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Brand is a trade-marketing brand a tenant manages in the field.
type Brand struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TenantID  string    `gorm:"not null;uniqueIndex:uniq_tenant_brand" json:"tenant_id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"not null;uniqueIndex:uniq_tenant_brand" json:"slug"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Products []Product `gorm:"foreignKey:BrandID" json:"products,omitempty"`
}

func (Brand) TableName() string { return "catalog.brands" }

// Zone is a geographic sales territory.
type Zone struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TenantID  string    `gorm:"not null;uniqueIndex:uniq_tenant_zone" json:"tenant_id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"not null;uniqueIndex:uniq_tenant_zone" json:"slug"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Zone) TableName() string { return "catalog.zones" }

// ClientStore is a point of sale a promotor visits.
type ClientStore struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TenantID    string         `gorm:"not null;index" json:"tenant_id"`
	ZoneID      *uuid.UUID     `gorm:"type:uuid;index" json:"zone_id,omitempty"`
	Name        string         `gorm:"not null" json:"name"`
	SearchKey   string         `gorm:"index" json:"-"` // folded name for case/diacritic-insensitive search
	Channel     string         `json:"channel"` // supermarket, convenience, wholesale, ...
	Address     string         `json:"address"`
	Lat         *float64       `json:"lat,omitempty"`
	Lng         *float64       `json:"lng,omitempty"`
	ContactName string         `json:"contact_name"`
	ContactTel  string         `json:"contact_tel"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ClientStore) TableName() string { return "catalog.client_stores" }

// Product is one of the tenant's own SKUs tracked during pricing audits.
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TenantID  string    `gorm:"not null;uniqueIndex:uniq_tenant_sku" json:"tenant_id"`
	BrandID   uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id"`
	Name      string    `gorm:"not null" json:"name"`
	SKU       string    `gorm:"not null;uniqueIndex:uniq_tenant_sku" json:"sku"`
	ListPrice float64   `json:"list_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "catalog.products" }

// Competitor is a rival brand observed during stage-1 audits.
type Competitor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TenantID  string    `gorm:"not null;uniqueIndex:uniq_tenant_competitor" json:"tenant_id"`
	Name      string    `gorm:"not null;uniqueIndex:uniq_tenant_competitor" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Competitor) TableName() string { return "catalog.competitors" }

// PopMaterialType is a negotiated point-of-sale material (banner, shelf strip,
// display) checked during stage 3.
type PopMaterialType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TenantID    string    `gorm:"not null;uniqueIndex:uniq_tenant_pop_material" json:"tenant_id"`
	Name        string    `gorm:"not null;uniqueIndex:uniq_tenant_pop_material" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PopMaterialType) TableName() string { return "catalog.pop_material_types" }
