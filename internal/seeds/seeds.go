package seeds

import (
	"fmt"
	"log"
	"os"

	"github.com/TradeForce/TF-Backend/internal/auth"
	"github.com/TradeForce/TF-Backend/internal/catalog"
	"github.com/TradeForce/TF-Backend/internal/db"
	"github.com/TradeForce/TF-Backend/internal/utils"
	"github.com/goccy/go-yaml"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixture is the YAML seed file shape: one tenant with its initial users and
// catalog configuration.
type Fixture struct {
	TenantID string `yaml:"tenant_id"`
	Users    []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		FullName string `yaml:"full_name"`
		Role     string `yaml:"role"`
	} `yaml:"users"`
	Brands []struct {
		Name     string   `yaml:"name"`
		Products []string `yaml:"products"`
	} `yaml:"brands"`
	Zones        []string `yaml:"zones"`
	Competitors  []string `yaml:"competitors"`
	PopMaterials []string `yaml:"pop_materials"`
}

// SeedAll loads a YAML fixture and populates auth + catalog for its tenant.
// Idempotent: existing rows are skipped, not duplicated.
func SeedAll(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}
	if fixture.TenantID == "" {
		return fmt.Errorf("fixture is missing tenant_id")
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		for _, u := range fixture.Users {
			if !auth.ValidRole(u.Role) {
				return fmt.Errorf("user %q has invalid role %q", u.Username, u.Role)
			}

			var existing auth.User
			err := tx.First(&existing, "tenant_id = ? AND username = ?", fixture.TenantID, u.Username).Error
			if err == nil {
				continue
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}

			hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user := auth.User{
				UserID:         utils.GenerateUUID(),
				TenantID:       fixture.TenantID,
				Username:       u.Username,
				HashedPassword: string(hashed),
				FullName:       u.FullName,
				Role:           u.Role,
				Active:         true,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("seed user %q: %w", u.Username, err)
			}
			log.Printf("[seeds] created user %s (%s)", u.Username, u.Role)
		}

		for _, b := range fixture.Brands {
			brand := catalog.Brand{
				TenantID: fixture.TenantID,
				Name:     b.Name,
				Slug:     catalog.Slugify(b.Name),
				Active:   true,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "slug"}},
				DoNothing: true,
			}).Create(&brand).Error; err != nil {
				return fmt.Errorf("seed brand %q: %w", b.Name, err)
			}

			// Resolve the brand row in case the insert was skipped
			var persisted catalog.Brand
			if err := tx.First(&persisted, "tenant_id = ? AND slug = ?", fixture.TenantID, brand.Slug).Error; err != nil {
				return err
			}

			for i, name := range b.Products {
				sku := fmt.Sprintf("%s-%03d", persisted.Slug, i+1)
				product := catalog.Product{
					TenantID: fixture.TenantID,
					BrandID:  persisted.ID,
					Name:     name,
					SKU:      sku,
				}
				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "sku"}},
					DoNothing: true,
				}).Create(&product).Error; err != nil {
					return fmt.Errorf("seed product %q: %w", name, err)
				}
			}
		}

		for _, name := range fixture.Zones {
			zone := catalog.Zone{
				TenantID: fixture.TenantID,
				Name:     name,
				Slug:     catalog.Slugify(name),
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "slug"}},
				DoNothing: true,
			}).Create(&zone).Error; err != nil {
				return fmt.Errorf("seed zone %q: %w", name, err)
			}
		}

		for _, name := range fixture.Competitors {
			competitor := catalog.Competitor{TenantID: fixture.TenantID, Name: name}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "name"}},
				DoNothing: true,
			}).Create(&competitor).Error; err != nil {
				return fmt.Errorf("seed competitor %q: %w", name, err)
			}
		}

		for _, name := range fixture.PopMaterials {
			material := catalog.PopMaterialType{TenantID: fixture.TenantID, Name: name}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "name"}},
				DoNothing: true,
			}).Create(&material).Error; err != nil {
				return fmt.Errorf("seed POP material %q: %w", name, err)
			}
		}

		return nil
	})
}
