package catalog

import "testing"

func TestSearchKey(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Bodega San Martín", "bodega san martin"},
		{"  Açaí do Norte  ", "acai do norte"},
		{"SUPERMERCADO LÓPEZ", "supermercado lopez"},
		{"plain name", "plain name"},
		{"", ""},
	}

	for _, c := range cases {
		if got := SearchKey(c.in); got != c.want {
			t.Errorf("SearchKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Zona Norte", "zona-norte"},
		{"Bodega San Martín", "bodega-san-martin"},
		{"Centro / Histórico", "centro-historico"},
		{"  --weird--  input!!  ", "weird-input"},
		{"Ruta 5 Sur", "ruta-5-sur"},
		{"", ""},
	}

	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
