package clientimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Row is one client store parsed from the CSV export.
type Row struct {
	Name        string
	Zone        string
	Channel     string
	Address     string
	Lat         *float64
	Lng         *float64
	ContactName string
	ContactTel  string
}

// ParseCSV reads a client-store export. Required columns: name, zone.
// Optional: channel, address, lat, lng, contact_name, contact_tel.
func ParseCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errors.New("csv has no data rows")
	}

	header := records[0]
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	for _, k := range []string{"name", "zone"} {
		if _, ok := col[k]; !ok {
			return nil, fmt.Errorf("missing required column: %s", k)
		}
	}

	seen := map[string]bool{}
	var out []Row

	for rowIdx := 1; rowIdx < len(records); rowIdx++ {
		rec := records[rowIdx]
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		name := get("name")
		if name == "" {
			return nil, fmt.Errorf("row %d: name is required", rowIdx+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("row %d: duplicate client name %q", rowIdx+1, name)
		}
		seen[name] = true

		zone := get("zone")
		if zone == "" {
			return nil, fmt.Errorf("row %d: zone is required", rowIdx+1)
		}

		row := Row{
			Name:        name,
			Zone:        zone,
			Channel:     get("channel"),
			Address:     get("address"),
			ContactName: get("contact_name"),
			ContactTel:  get("contact_tel"),
		}

		if raw := get("lat"); raw != "" {
			lat, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid lat %q", rowIdx+1, raw)
			}
			row.Lat = &lat
		}
		if raw := get("lng"); raw != "" {
			lng, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid lng %q", rowIdx+1, raw)
			}
			row.Lng = &lng
		}

		out = append(out, row)
	}

	return out, nil
}
