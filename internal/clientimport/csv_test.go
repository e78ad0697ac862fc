package clientimport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clients.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCSV(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"name,zone,channel,address,lat,lng,contact_name,contact_tel",
		"Bodega San Martín,Zona Norte,traditional,Av. Libertad 120,-33.45,-70.66,Rosa Díaz,+56 9 1234 5678",
		"Minimarket El Sol,Zona Norte,traditional,,,,,",
	}, "\n"))

	rows, err := ParseCSV(path)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Name != "Bodega San Martín" || first.Zone != "Zona Norte" {
		t.Errorf("unexpected first row: %+v", first)
	}
	if first.Lat == nil || *first.Lat != -33.45 {
		t.Errorf("expected lat -33.45, got %v", first.Lat)
	}
	if first.ContactName != "Rosa Díaz" {
		t.Errorf("unexpected contact name %q", first.ContactName)
	}

	second := rows[1]
	if second.Lat != nil || second.Lng != nil {
		t.Errorf("expected empty coordinates to stay nil, got %v %v", second.Lat, second.Lng)
	}
}

func TestParseCSV_BOMHeader(t *testing.T) {
	path := writeTempCSV(t, "\ufeffname,zone\nTienda Uno,Zona Sur\n")

	rows, err := ParseCSV(path)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Tienda Uno" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestParseCSV_MissingZoneColumn(t *testing.T) {
	path := writeTempCSV(t, "name,channel\nTienda Uno,traditional\n")

	if _, err := ParseCSV(path); err == nil || !strings.Contains(err.Error(), "zone") {
		t.Errorf("expected missing zone column error, got %v", err)
	}
}

func TestParseCSV_DuplicateName(t *testing.T) {
	path := writeTempCSV(t, "name,zone\nTienda Uno,Zona Sur\nTienda Uno,Zona Norte\n")

	if _, err := ParseCSV(path); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected duplicate name error, got %v", err)
	}
}

func TestParseCSV_BadLat(t *testing.T) {
	path := writeTempCSV(t, "name,zone,lat\nTienda Uno,Zona Sur,north\n")

	if _, err := ParseCSV(path); err == nil || !strings.Contains(err.Error(), "lat") {
		t.Errorf("expected invalid lat error, got %v", err)
	}
}

func TestParseCSV_NoDataRows(t *testing.T) {
	path := writeTempCSV(t, "name,zone\n")

	if _, err := ParseCSV(path); err == nil {
		t.Error("expected error for header-only file")
	}
}

func TestDeterministicIDs(t *testing.T) {
	ns := uuid.MustParse("f4b9e2a0-1111-4222-8333-abcdefabcdef")

	a := ZoneID(ns, "demo", "Zona Norte")
	b := ZoneID(ns, "demo", "Zona Norte")
	if a != b {
		t.Errorf("ZoneID not deterministic: %s != %s", a, b)
	}
	if a == ZoneID(ns, "other-tenant", "Zona Norte") {
		t.Error("ZoneID should differ per tenant")
	}
	if ClientID(ns, "demo", "Tienda Uno") == ClientID(ns, "demo", "Tienda Dos") {
		t.Error("ClientID should differ per client name")
	}
}
