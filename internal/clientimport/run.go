package clientimport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/TradeForce/TF-Backend/internal/catalog"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type Config struct {
	CSVPath     string
	DatabaseURL string
	TenantID    string
	Namespace   string // UUID namespace (required, stable forever)
	Wipe        bool   // DANGER: deletes the tenant's client stores first
}

// Run imports client stores for one tenant. Zones referenced by name are
// created on the fly; repeated runs upsert by deterministic ID.
func Run(cfg Config) error {
	if cfg.TenantID == "" {
		return errors.New("tenant id is required")
	}

	ns, err := uuid.Parse(cfg.Namespace)
	if err != nil {
		return fmt.Errorf("invalid namespace uuid: %w", err)
	}

	rows, err := ParseCSV(cfg.CSVPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	conn, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	tx, err := conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op if committed
	}()

	if cfg.Wipe {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM catalog.client_stores WHERE tenant_id = $1`, cfg.TenantID); err != nil {
			return fmt.Errorf("wipe client stores: %w", err)
		}
	}

	// Zones first (distinct names)
	zoneIDs := map[string]uuid.UUID{}
	for _, r := range rows {
		if _, ok := zoneIDs[r.Zone]; ok {
			continue
		}
		id := ZoneID(ns, cfg.TenantID, r.Zone)
		zoneIDs[r.Zone] = id

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog.zones (id, tenant_id, name, slug, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())
			ON CONFLICT (tenant_id, slug) DO NOTHING`,
			id, cfg.TenantID, r.Zone, catalog.Slugify(r.Zone)); err != nil {
			return fmt.Errorf("insert zone %q: %w", r.Zone, err)
		}
	}

	for _, r := range rows {
		zoneID := zoneIDs[r.Zone]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog.client_stores
				(id, tenant_id, zone_id, name, search_key, channel, address, lat, lng, contact_name, contact_tel, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
			ON CONFLICT (id) DO UPDATE SET
				zone_id = excluded.zone_id,
				name = excluded.name,
				search_key = excluded.search_key,
				channel = excluded.channel,
				address = excluded.address,
				lat = excluded.lat,
				lng = excluded.lng,
				contact_name = excluded.contact_name,
				contact_tel = excluded.contact_tel,
				updated_at = now(),
				deleted_at = NULL`,
			ClientID(ns, cfg.TenantID, r.Name), cfg.TenantID, zoneID,
			r.Name, catalog.SearchKey(r.Name), r.Channel, r.Address,
			r.Lat, r.Lng, r.ContactName, r.ContactTel); err != nil {
			return fmt.Errorf("insert client %q: %w", r.Name, err)
		}
	}

	return tx.Commit()
}
